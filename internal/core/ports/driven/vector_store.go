package driven

import (
	"context"

	"github.com/corpora-labs/corpora-core/internal/core/domain"
)

// VectorStore persists chunk embeddings and performs similarity search
type VectorStore interface {
	// EnsureCollection creates the backing collection if it does not exist.
	// Existing collections are left untouched, even if their dimension differs.
	EnsureCollection(ctx context.Context, dimension int) error

	// Upsert stores one vector per chunk along with its text and position.
	// vectors[i] must embed texts[i]; the index i is recorded as the chunk's
	// position within the document. Returns the generated point IDs.
	Upsert(ctx context.Context, documentID string, vectors [][]float32, texts []string) ([]string, error)

	// Search returns the topK chunks most similar to the query vector,
	// ordered by descending score.
	Search(ctx context.Context, vector []float32, topK int) ([]domain.ScoredChunk, error)

	// HealthCheck verifies the store is reachable
	HealthCheck(ctx context.Context) error
}
