package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/corpora-labs/corpora-core/internal/core/domain"
	"github.com/corpora-labs/corpora-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.VectorStore = (*VectorStore)(nil)

// VectorStore implements driven.VectorStore against the Qdrant REST API
type VectorStore struct {
	baseURL    string
	apiKey     string
	collection string
	dimension  int
	httpClient *http.Client
}

// Config holds Qdrant connection configuration
type Config struct {
	// URL is the Qdrant REST endpoint (e.g., http://localhost:6333)
	URL string

	// APIKey is sent as the api-key header when set
	APIKey string

	// Collection overrides the default collection name.
	// Empty means corpora_chunks_<dimension>, resolved at EnsureCollection.
	Collection string

	// Timeout for HTTP requests
	Timeout time.Duration
}

// DefaultConfig returns sensible defaults
func DefaultConfig(url string) Config {
	return Config{
		URL:     url,
		Timeout: 30 * time.Second,
	}
}

// NewVectorStore creates a new Qdrant-backed VectorStore
func NewVectorStore(cfg Config) *VectorStore {
	return &VectorStore{
		baseURL:    strings.TrimSuffix(cfg.URL, "/"),
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// createCollectionRequest is the body for collection creation
type createCollectionRequest struct {
	Vectors vectorParams `json:"vectors"`
}

type vectorParams struct {
	Size     int    `json:"size"`
	Distance string `json:"distance"`
}

// upsertPointsRequest is the body for point upserts
type upsertPointsRequest struct {
	Points []point `json:"points"`
}

type point struct {
	ID      string       `json:"id"`
	Vector  []float32    `json:"vector"`
	Payload chunkPayload `json:"payload"`
}

type chunkPayload struct {
	DocumentID string `json:"document_id"`
	ChunkIndex int    `json:"chunk_index"`
	Text       string `json:"text"`
}

// searchRequest is the body for similarity search
type searchRequest struct {
	Vector      []float32 `json:"vector"`
	Limit       int       `json:"limit"`
	WithPayload bool      `json:"with_payload"`
}

// searchResponse is Qdrant's response envelope for search
type searchResponse struct {
	Result []struct {
		Score   float64      `json:"score"`
		Payload chunkPayload `json:"payload"`
	} `json:"result"`
	Status string  `json:"status"`
	Time   float64 `json:"time"`
}

// EnsureCollection creates the collection if it does not exist.
// Resolves the default collection name from the dimension on first call.
func (s *VectorStore) EnsureCollection(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("%w: dimension must be positive, got %d", domain.ErrInvalidConfiguration, dimension)
	}
	if s.collection == "" {
		s.collection = fmt.Sprintf("corpora_chunks_%d", dimension)
	}
	s.dimension = dimension

	// Probe first: an existing collection is left untouched
	url := fmt.Sprintf("%s/collections/%s", s.baseURL, s.collection)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	s.setHeaders(req)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("qdrant collection probe failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return s.createCollection(ctx, dimension)
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("qdrant collection probe failed: %s - %s", resp.Status, string(respBody))
	}
}

func (s *VectorStore) createCollection(ctx context.Context, dimension int) error {
	body, err := json.Marshal(createCollectionRequest{
		Vectors: vectorParams{
			Size:     dimension,
			Distance: "Cosine",
		},
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/collections/%s", s.baseURL, s.collection)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	s.setHeaders(req)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("qdrant collection create failed: %w", err)
	}
	defer resp.Body.Close()

	// 409 means another process created it between probe and create
	if resp.StatusCode >= 400 && resp.StatusCode != http.StatusConflict {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("qdrant collection create failed: %s - %s", resp.Status, string(respBody))
	}

	return nil
}

// Upsert stores chunk vectors as points tagged with the document ID.
// Point IDs are fresh UUIDs, returned in chunk order.
func (s *VectorStore) Upsert(ctx context.Context, documentID string, vectors [][]float32, texts []string) ([]string, error) {
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("vector count %d does not match text count %d", len(vectors), len(texts))
	}
	if len(vectors) == 0 {
		return []string{}, nil
	}
	if s.collection == "" {
		return nil, fmt.Errorf("collection not initialised")
	}

	ids := make([]string, len(vectors))
	points := make([]point, len(vectors))
	for i, vector := range vectors {
		if s.dimension > 0 && len(vector) != s.dimension {
			return nil, fmt.Errorf("vector %d has dimension %d, collection expects %d", i, len(vector), s.dimension)
		}
		ids[i] = uuid.NewString()
		points[i] = point{
			ID:     ids[i],
			Vector: vector,
			Payload: chunkPayload{
				DocumentID: documentID,
				ChunkIndex: i,
				Text:       texts[i],
			},
		}
	}

	body, err := json.Marshal(upsertPointsRequest{Points: points})
	if err != nil {
		return nil, err
	}

	// wait=true blocks until the points are durably applied
	url := fmt.Sprintf("%s/collections/%s/points?wait=true", s.baseURL, s.collection)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	s.setHeaders(req)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("qdrant upsert failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("qdrant upsert failed: %s - %s", resp.Status, string(respBody))
	}

	return ids, nil
}

// Search returns the topK most similar chunks, highest score first
func (s *VectorStore) Search(ctx context.Context, vector []float32, topK int) ([]domain.ScoredChunk, error) {
	if s.collection == "" {
		return nil, fmt.Errorf("collection not initialised")
	}
	if topK <= 0 {
		return []domain.ScoredChunk{}, nil
	}

	body, err := json.Marshal(searchRequest{
		Vector:      vector,
		Limit:       topK,
		WithPayload: true,
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/collections/%s/points/search", s.baseURL, s.collection)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	s.setHeaders(req)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("qdrant search failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("qdrant search failed: %s - %s", resp.Status, string(respBody))
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, err
	}

	chunks := make([]domain.ScoredChunk, 0, len(searchResp.Result))
	for _, hit := range searchResp.Result {
		chunks = append(chunks, domain.ScoredChunk{
			DocumentID: hit.Payload.DocumentID,
			ChunkIndex: hit.Payload.ChunkIndex,
			Text:       hit.Payload.Text,
			Score:      hit.Score,
		})
	}

	return chunks, nil
}

// HealthCheck verifies the store is reachable
func (s *VectorStore) HealthCheck(ctx context.Context) error {
	url := fmt.Sprintf("%s/healthz", s.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	s.setHeaders(req)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("qdrant health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("qdrant unhealthy: %s", resp.Status)
	}

	return nil
}

func (s *VectorStore) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
}
