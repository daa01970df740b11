package driving

import (
	"context"

	"github.com/corpora-labs/corpora-core/internal/core/domain"
)

// IngestionService handles document ingestion operations
type IngestionService interface {
	// Ingest extracts, chunks, embeds and stores an uploaded document
	Ingest(ctx context.Context, filename string, data []byte) (*domain.IngestResult, error)

	// IngestFile reads a file from disk and ingests its contents
	IngestFile(ctx context.Context, path string) (*domain.IngestResult, error)
}
