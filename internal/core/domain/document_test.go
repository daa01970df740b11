package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewDocumentID(t *testing.T) {
	id1 := NewDocumentID()
	id2 := NewDocumentID()

	if id1 == "" {
		t.Error("expected non-empty document ID")
	}
	if id1 == id2 {
		t.Error("expected fresh ID per call")
	}
	if _, err := uuid.Parse(id1); err != nil {
		t.Errorf("expected UUID-shaped ID, got %q: %v", id1, err)
	}
}

func TestScoredChunk(t *testing.T) {
	hit := ScoredChunk{
		DocumentID: "doc-1",
		ChunkIndex: 3,
		Text:       "some chunk text",
		Score:      0.87,
	}

	if hit.DocumentID != "doc-1" || hit.ChunkIndex != 3 {
		t.Error("expected fields to round-trip")
	}
	if hit.Score != 0.87 {
		t.Errorf("expected score 0.87, got %v", hit.Score)
	}
}
