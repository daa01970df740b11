package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/corpora-labs/corpora-core/internal/chunker"
	"github.com/corpora-labs/corpora-core/internal/core/domain"
	"github.com/corpora-labs/corpora-core/internal/core/ports/driven"
	"github.com/corpora-labs/corpora-core/internal/core/ports/driving"
)

// Ensure ingestionService implements IngestionService
var _ driving.IngestionService = (*ingestionService)(nil)

// ingestionService implements the document ingestion pipeline:
// extract -> chunk -> embed -> store.
type ingestionService struct {
	extractors driven.ExtractorRegistry
	chunker    *chunker.Chunker
	embedder   driven.EmbeddingService
	store      driven.VectorStore
	logger     *slog.Logger
}

// IngestionConfig holds dependencies for the ingestion service.
type IngestionConfig struct {
	Extractors driven.ExtractorRegistry
	Chunker    *chunker.Chunker
	Embedder   driven.EmbeddingService
	Store      driven.VectorStore
	Logger     *slog.Logger
}

// NewIngestionService creates a new IngestionService
func NewIngestionService(cfg IngestionConfig) driving.IngestionService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &ingestionService{
		extractors: cfg.Extractors,
		chunker:    cfg.Chunker,
		embedder:   cfg.Embedder,
		store:      cfg.Store,
		logger:     logger,
	}
}

// Ingest runs the full pipeline for an uploaded document.
// Each call mints a fresh document ID; nothing is rolled back on failure,
// so a retried ingestion produces a new document rather than repairing the
// old one.
func (s *ingestionService) Ingest(ctx context.Context, filename string, data []byte) (*domain.IngestResult, error) {
	start := time.Now()

	// Step 1: Select the extractor by file extension
	extractor := s.extractors.Get(filename)
	if extractor == nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFileType, filepath.Ext(filename))
	}

	// Step 2: Extract raw text
	text, err := extractor.Extract(filename, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNoExtractableContent, err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrNoExtractableContent
	}

	// Step 3: Mint the document identity
	documentID := domain.NewDocumentID()

	// Step 4: Chunk
	chunks := s.chunker.Split(text)
	if len(chunks) == 0 {
		return &domain.IngestResult{DocumentID: documentID, ChunkCount: 0}, nil
	}

	// Step 5: Embed all chunks in one batch
	vectors, err := s.embedder.Embed(ctx, chunks)
	if err != nil {
		return nil, fmt.Errorf("failed to embed chunks: %w", err)
	}

	// Step 6: Store
	if _, err := s.store.Upsert(ctx, documentID, vectors, chunks); err != nil {
		return nil, fmt.Errorf("failed to store chunks: %w", err)
	}

	s.logger.Info("ingested document",
		"filename", filename,
		"document_id", documentID,
		"chunks", len(chunks),
		"duration", time.Since(start))

	return &domain.IngestResult{
		DocumentID: documentID,
		ChunkCount: len(chunks),
	}, nil
}

// IngestFile reads a file from disk and ingests its contents
func (s *ingestionService) IngestFile(ctx context.Context, path string) (*domain.IngestResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return s.Ingest(ctx, filepath.Base(path), data)
}
