package mocks

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/corpora-labs/corpora-core/internal/core/domain"
)

type storedPoint struct {
	id         string
	vector     []float32
	documentID string
	chunkIndex int
	text       string
}

// MockVectorStore is an in-memory mock implementation of VectorStore for
// testing. It keeps every upserted point and answers searches with
// brute-force cosine similarity.
type MockVectorStore struct {
	mu        sync.RWMutex
	dimension int
	points    []storedPoint
	failNext  bool
	searches  int
}

// NewMockVectorStore creates a new MockVectorStore
func NewMockVectorStore() *MockVectorStore {
	return &MockVectorStore{}
}

func (m *MockVectorStore) EnsureCollection(ctx context.Context, dimension int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.takeFailure() {
		return context.DeadlineExceeded
	}
	if m.dimension == 0 {
		m.dimension = dimension
	}
	return nil
}

func (m *MockVectorStore) Upsert(ctx context.Context, documentID string, vectors [][]float32, texts []string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.takeFailure() {
		return nil, context.DeadlineExceeded
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("vector count %d does not match text count %d", len(vectors), len(texts))
	}

	ids := make([]string, 0, len(vectors))
	for i, vector := range vectors {
		if m.dimension > 0 && len(vector) != m.dimension {
			return nil, fmt.Errorf("vector %d has dimension %d, collection expects %d", i, len(vector), m.dimension)
		}
		id := uuid.NewString()
		m.points = append(m.points, storedPoint{
			id:         id,
			vector:     vector,
			documentID: documentID,
			chunkIndex: i,
			text:       texts[i],
		})
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *MockVectorStore) Search(ctx context.Context, vector []float32, topK int) ([]domain.ScoredChunk, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.searches++
	if m.takeFailure() {
		return nil, context.DeadlineExceeded
	}

	hits := make([]domain.ScoredChunk, 0, len(m.points))
	for _, p := range m.points {
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
	if topK > 0 && len(hits) > topK {
		hits = hits[:topK]
	}
	return hits, nil
}

func (m *MockVectorStore) HealthCheck(ctx context.Context) error {
	return nil
}

// takeFailure consumes the failNext flag; callers must hold the lock
func (m *MockVectorStore) takeFailure() bool {
	fail := m.failNext
	m.failNext = false
	return fail
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

// Helper methods for testing

func (m *MockVectorStore) SetFailNext(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failNext = fail
}

// Count returns the number of stored points
func (m *MockVectorStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.points)
}

// SearchCount returns how many Search calls were made
func (m *MockVectorStore) SearchCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.searches
}

// Dimension returns the dimension fixed by EnsureCollection
func (m *MockVectorStore) Dimension() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.dimension
}

// TextsFor returns the stored chunk texts of a document in chunk order
func (m *MockVectorStore) TextsFor(documentID string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var texts []string
	for _, p := range m.points {
		if p.documentID == documentID {
			texts = append(texts, p.text)
		}
	}
	return texts
}

// Reset clears all stored points
func (m *MockVectorStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.points = nil
	m.dimension = 0
}
