package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/corpora-labs/corpora-core/internal/core/domain"
)

func newReadyStore(t *testing.T, dimension int) *VectorStore {
	t.Helper()
	store := NewVectorStore()
	if err := store.EnsureCollection(context.Background(), dimension); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return store
}

func TestVectorStore_EnsureCollection_Idempotent(t *testing.T) {
	store := NewVectorStore()

	if err := store.EnsureCollection(context.Background(), 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.EnsureCollection(context.Background(), 3); err != nil {
		t.Errorf("expected repeated call to succeed, got %v", err)
	}
}

func TestVectorStore_EnsureCollection_DimensionConflict(t *testing.T) {
	store := newReadyStore(t, 3)

	err := store.EnsureCollection(context.Background(), 4)
	if !errors.Is(err, domain.ErrInvalidConfiguration) {
		t.Errorf("expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestVectorStore_EnsureCollection_InvalidDimension(t *testing.T) {
	store := NewVectorStore()

	err := store.EnsureCollection(context.Background(), 0)
	if !errors.Is(err, domain.ErrInvalidConfiguration) {
		t.Errorf("expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestVectorStore_Upsert_ReturnsUUIDsInOrder(t *testing.T) {
	store := newReadyStore(t, 2)

	ids, err := store.Upsert(context.Background(), "doc-1",
		[][]float32{{1, 0}, {0, 1}}, []string{"first", "second"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ids) != 2 {
		t.Fatalf("expected 2 ids, got %d", len(ids))
	}
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			t.Errorf("expected UUID point id, got %q", id)
		}
	}
	if ids[0] == ids[1] {
		t.Error("expected distinct point ids")
	}
	if store.Count() != 2 {
		t.Errorf("expected 2 stored points, got %d", store.Count())
	}
}

func TestVectorStore_Upsert_Empty(t *testing.T) {
	store := newReadyStore(t, 2)

	ids, err := store.Upsert(context.Background(), "doc-1", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ids == nil || len(ids) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", ids)
	}
	if store.Count() != 0 {
		t.Errorf("expected no stored points, got %d", store.Count())
	}
}

func TestVectorStore_Upsert_CountMismatch(t *testing.T) {
	store := newReadyStore(t, 2)

	_, err := store.Upsert(context.Background(), "doc-1", [][]float32{{1, 0}}, []string{"a", "b"})
	if err == nil {
		t.Error("expected error when vector and text counts differ")
	}
}

func TestVectorStore_Upsert_DimensionMismatch(t *testing.T) {
	store := newReadyStore(t, 3)

	_, err := store.Upsert(context.Background(), "doc-1", [][]float32{{1, 0}}, []string{"too short"})
	if err == nil {
		t.Error("expected error for wrong vector dimension")
	}
	if store.Count() != 0 {
		t.Errorf("expected rejected upsert to store nothing, got %d points", store.Count())
	}
}

func TestVectorStore_Upsert_NotInitialised(t *testing.T) {
	store := NewVectorStore()

	_, err := store.Upsert(context.Background(), "doc-1", [][]float32{{1, 0}}, []string{"a"})
	if err == nil {
		t.Error("expected error for uninitialised collection")
	}
}

func TestVectorStore_Upsert_CopiesVectors(t *testing.T) {
	store := newReadyStore(t, 2)

	vector := []float32{1, 0}
	if _, err := store.Upsert(context.Background(), "doc-1", [][]float32{vector}, []string{"a"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Mutate the caller's slice and verify the stored copy is unaffected
	vector[0] = 0
	vector[1] = 1

	hits, err := store.Search(context.Background(), []float32{1, 0}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}
	if hits[0].Score < 0.99 {
		t.Errorf("expected stored vector to remain {1,0}, score was %f", hits[0].Score)
	}
}

func TestVectorStore_Search_OrdersByScore(t *testing.T) {
	store := newReadyStore(t, 2)

	vectors := [][]float32{
		{1, 0},     // identical to the query
		{0.7, 0.7}, // diagonal
		{0, 1},     // orthogonal
	}
	texts := []string{"exact", "diagonal", "orthogonal"}
	if _, err := store.Upsert(context.Background(), "doc-1", vectors, texts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	hits, err := store.Search(context.Background(), []float32{1, 0}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(hits) != 3 {
		t.Fatalf("expected 3 hits, got %d", len(hits))
	}
	if hits[0].Text != "exact" || hits[1].Text != "diagonal" || hits[2].Text != "orthogonal" {
		t.Errorf("unexpected order: %q, %q, %q", hits[0].Text, hits[1].Text, hits[2].Text)
	}
	if hits[0].Score < hits[1].Score || hits[1].Score < hits[2].Score {
		t.Error("expected descending scores")
	}
}

func TestVectorStore_Search_LimitsToTopK(t *testing.T) {
	store := newReadyStore(t, 2)

	vectors := [][]float32{{1, 0}, {0.9, 0.1}, {0.5, 0.5}, {0, 1}}
	texts := []string{"a", "b", "c", "d"}
	if _, err := store.Upsert(context.Background(), "doc-1", vectors, texts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	hits, err := store.Search(context.Background(), []float32{1, 0}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 2 {
		t.Errorf("expected 2 hits, got %d", len(hits))
	}
}

func TestVectorStore_Search_EmptyStore(t *testing.T) {
	store := newReadyStore(t, 2)

	hits, err := store.Search(context.Background(), []float32{1, 0}, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("expected no hits, got %d", len(hits))
	}
}

func TestVectorStore_Search_ZeroTopK(t *testing.T) {
	store := newReadyStore(t, 2)

	if _, err := store.Upsert(context.Background(), "doc-1", [][]float32{{1, 0}}, []string{"a"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	hits, err := store.Search(context.Background(), []float32{1, 0}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("expected no hits for topK 0, got %d", len(hits))
	}
}

func TestVectorStore_Search_RecordsChunkIndexes(t *testing.T) {
	store := newReadyStore(t, 2)

	vectors := [][]float32{{1, 0}, {0, 1}}
	if _, err := store.Upsert(context.Background(), "doc-1", vectors, []string{"first", "second"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	hits, err := store.Search(context.Background(), []float32{0, 1}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if hits[0].ChunkIndex != 1 || hits[0].Text != "second" {
		t.Errorf("expected best hit to be chunk 1, got %+v", hits[0])
	}
	if hits[1].ChunkIndex != 0 {
		t.Errorf("expected second hit to be chunk 0, got %+v", hits[1])
	}
}

func TestVectorStore_HealthCheck(t *testing.T) {
	store := NewVectorStore()
	if err := store.HealthCheck(context.Background()); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestVectorStore_ConcurrentAccess(t *testing.T) {
	store := newReadyStore(t, 2)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			docID := fmt.Sprintf("doc-%d", n)
			_, _ = store.Upsert(context.Background(), docID, [][]float32{{1, 0}}, []string{"chunk"})
		}(i)
		go func() {
			defer wg.Done()
			_, _ = store.Search(context.Background(), []float32{1, 0}, 3)
		}()
	}
	wg.Wait()

	if store.Count() != 10 {
		t.Errorf("expected 10 stored points, got %d", store.Count())
	}
}
