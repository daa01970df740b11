package mocks

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"sync"
)

// MockEmbeddingService is a deterministic mock implementation of
// EmbeddingService for testing. Every lowercase token hashes into a fixed
// vector bucket, so texts that share words produce vectors with high
// cosine similarity. Vectors are unit length.
type MockEmbeddingService struct {
	mu         sync.Mutex
	dimensions int
	model      string
	failNext   bool
	calls      int
}

// NewMockEmbeddingService creates a new MockEmbeddingService
func NewMockEmbeddingService() *MockEmbeddingService {
	return &MockEmbeddingService{
		dimensions: 384,
		model:      "mock-embedding-model",
	}
}

func (m *MockEmbeddingService) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	dims, fail := m.recordCall()
	if fail {
		return nil, context.DeadlineExceeded
	}

	result := make([][]float32, len(texts))
	for i, text := range texts {
		result[i] = generateEmbedding(text, dims)
	}
	return result, nil
}

func (m *MockEmbeddingService) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	dims, fail := m.recordCall()
	if fail {
		return nil, context.DeadlineExceeded
	}
	return generateEmbedding(query, dims), nil
}

func (m *MockEmbeddingService) Dimensions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dimensions
}

func (m *MockEmbeddingService) Model() string {
	return m.model
}

func (m *MockEmbeddingService) HealthCheck(ctx context.Context) error {
	return nil
}

func (m *MockEmbeddingService) Close() error {
	return nil
}

func (m *MockEmbeddingService) recordCall() (dims int, fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	fail = m.failNext
	m.failNext = false
	return m.dimensions, fail
}

// generateEmbedding builds a bag-of-words vector: each token increments the
// bucket chosen by its hash, then the vector is scaled to unit length.
func generateEmbedding(text string, dimensions int) []float32 {
	embedding := make([]float32, dimensions)

	for _, token := range strings.Fields(strings.ToLower(text)) {
		token = strings.Trim(token, ".,;:!?\"'()")
		if token == "" {
			continue
		}
		h := fnv.New32a()
		h.Write([]byte(token))
		embedding[h.Sum32()%uint32(dimensions)]++
	}

	var norm float64
	for _, v := range embedding {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		scale := float32(1 / math.Sqrt(norm))
		for i := range embedding {
			embedding[i] *= scale
		}
	}
	return embedding
}

// Helper methods for testing

func (m *MockEmbeddingService) SetFailNext(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failNext = fail
}

func (m *MockEmbeddingService) SetDimensions(dim int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dimensions = dim
}

// CallCount returns how many Embed/EmbedQuery calls were made
func (m *MockEmbeddingService) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
