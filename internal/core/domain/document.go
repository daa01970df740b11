package domain

import "github.com/google/uuid"

// NewDocumentID generates the identifier for a freshly ingested document.
// Documents have no lifecycle object of their own; the ID only exists as the
// document_id payload field shared by the document's stored points.
func NewDocumentID() string {
	return uuid.NewString()
}

// IngestResult is the outcome of a successful ingestion
type IngestResult struct {
	DocumentID string `json:"document_id"`
	ChunkCount int    `json:"chunks_count"`
}

// ScoredChunk is a similarity-search hit: one stored chunk plus its score
type ScoredChunk struct {
	DocumentID string  `json:"document_id"`
	ChunkIndex int     `json:"chunk_index"`
	Text       string  `json:"text"`
	Score      float64 `json:"score"`
}

// Query is a retrieval request. UserID is accepted for forward compatibility
// but is not used for filtering.
type Query struct {
	Text   string `json:"query"`
	UserID string `json:"user_id,omitempty"`
}
