package services

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/corpora-labs/corpora-core/internal/core/domain"
	"github.com/corpora-labs/corpora-core/internal/core/ports/driven"
	"github.com/corpora-labs/corpora-core/internal/core/ports/driving"
)

// DefaultTopK is the default number of chunks retrieved per query
const DefaultTopK = 5

// Ensure retrievalService implements RetrievalService
var _ driving.RetrievalService = (*retrievalService)(nil)

// retrievalService answers queries from the vector store
type retrievalService struct {
	embedder driven.EmbeddingService
	store    driven.VectorStore
	topK     int
	logger   *slog.Logger
}

// NewRetrievalService creates a new RetrievalService.
// topK values below 1 fall back to DefaultTopK.
func NewRetrievalService(embedder driven.EmbeddingService, store driven.VectorStore, topK int, logger *slog.Logger) driving.RetrievalService {
	if topK <= 0 {
		topK = DefaultTopK
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &retrievalService{
		embedder: embedder,
		store:    store,
		topK:     topK,
		logger:   logger,
	}
}

// Retrieve embeds the query, pulls the most similar chunks and reassembles
// them in document order. Dependency failures degrade to an empty context
// rather than an error: a query that cannot be answered returns nothing,
// only an empty query itself is rejected.
func (s *retrievalService) Retrieve(ctx context.Context, query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", domain.ErrEmptyQuery
	}

	vector, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		s.logger.Error("query embedding failed", "error", err)
		return "", nil
	}

	hits, err := s.store.Search(ctx, vector, s.topK)
	if err != nil {
		s.logger.Error("vector search failed", "error", err)
		return "", nil
	}
	if len(hits) == 0 {
		return "", nil
	}

	// Reassemble in original document order, not relevance order
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].ChunkIndex < hits[j].ChunkIndex
	})

	texts := make([]string, len(hits))
	for i, hit := range hits {
		texts[i] = hit.Text
	}
	return strings.TrimSpace(strings.Join(texts, "\n")), nil
}
