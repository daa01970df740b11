package driving

import (
	"context"
)

// RetrievalService answers free-text queries with stored document context
type RetrievalService interface {
	// Retrieve embeds the query, searches the vector store and returns the
	// matching chunk texts reassembled in document order
	Retrieve(ctx context.Context, query string) (string, error)
}
