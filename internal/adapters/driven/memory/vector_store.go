package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/corpora-labs/corpora-core/internal/core/domain"
	"github.com/corpora-labs/corpora-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.VectorStore = (*VectorStore)(nil)

// VectorStore is an in-process implementation of driven.VectorStore.
// Search is brute-force cosine over everything stored, which is fine for
// development and tests but not for large corpora. Nothing survives a
// restart.
type VectorStore struct {
	mu        sync.RWMutex
	dimension int
	points    []point
}

type point struct {
	id         string
	vector     []float32
	documentID string
	chunkIndex int
	text       string
}

// NewVectorStore creates an empty in-memory vector store
func NewVectorStore() *VectorStore {
	return &VectorStore{}
}

// EnsureCollection fixes the store's dimension on first call.
// Later calls with a different dimension are rejected.
func (s *VectorStore) EnsureCollection(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("%w: dimension must be positive, got %d", domain.ErrInvalidConfiguration, dimension)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dimension == 0 {
		s.dimension = dimension
		return nil
	}
	if s.dimension != dimension {
		return fmt.Errorf("%w: collection has dimension %d, requested %d", domain.ErrInvalidConfiguration, s.dimension, dimension)
	}
	return nil
}

// Upsert stores chunk vectors tagged with the document ID.
// Point IDs are fresh UUIDs, returned in chunk order.
func (s *VectorStore) Upsert(ctx context.Context, documentID string, vectors [][]float32, texts []string) ([]string, error) {
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("vector count %d does not match text count %d", len(vectors), len(texts))
	}
	if len(vectors) == 0 {
		return []string{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dimension == 0 {
		return nil, fmt.Errorf("collection not initialised")
	}

	ids := make([]string, len(vectors))
	added := make([]point, len(vectors))
	for i, vector := range vectors {
		if len(vector) != s.dimension {
			return nil, fmt.Errorf("vector %d has dimension %d, collection expects %d", i, len(vector), s.dimension)
		}

		// Callers may reuse their slices; keep an owned copy
		stored := make([]float32, len(vector))
		copy(stored, vector)

		ids[i] = uuid.NewString()
		added[i] = point{
			id:         ids[i],
			vector:     stored,
			documentID: documentID,
			chunkIndex: i,
			text:       texts[i],
		}
	}

	s.points = append(s.points, added...)
	return ids, nil
}

// Search returns the topK most similar chunks, highest score first
func (s *VectorStore) Search(ctx context.Context, vector []float32, topK int) ([]domain.ScoredChunk, error) {
	if topK <= 0 {
		return []domain.ScoredChunk{}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	hits := make([]domain.ScoredChunk, 0, len(s.points))
	for _, p := range s.points {
		hits = append(hits, domain.ScoredChunk{
			DocumentID: p.documentID,
			ChunkIndex: p.chunkIndex,
			Text:       p.text,
			Score:      cosineSimilarity(vector, p.vector),
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
	if len(hits) > topK {
		hits = hits[:topK]
	}
	return hits, nil
}

// HealthCheck always succeeds
func (s *VectorStore) HealthCheck(ctx context.Context) error {
	return nil
}

// Count returns the number of stored points
func (s *VectorStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.points)
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
