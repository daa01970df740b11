package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"github.com/corpora-labs/corpora-core/internal/chunker"
	"github.com/corpora-labs/corpora-core/internal/core/domain"
	"github.com/corpora-labs/corpora-core/internal/core/ports/driven/mocks"
	"github.com/corpora-labs/corpora-core/internal/core/ports/driving"
	"github.com/corpora-labs/corpora-core/internal/extractors"
)

func TestPipelineFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			Strict:   true,
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

// pipelineWorld carries scenario state through the steps
type pipelineWorld struct {
	ingestion driving.IngestionService
	retrieval driving.RetrievalService
	store     *mocks.MockVectorStore

	lastDocumentID string
	answer         string
	queryErr       error
}

func newPipelineWorld() (*pipelineWorld, error) {
	c, err := chunker.New(chunker.DefaultConfig())
	if err != nil {
		return nil, err
	}

	embedder := mocks.NewMockEmbeddingService()
	store := mocks.NewMockVectorStore()
	if err := store.EnsureCollection(context.Background(), embedder.Dimensions()); err != nil {
		return nil, err
	}

	return &pipelineWorld{
		ingestion: NewIngestionService(IngestionConfig{
			Extractors: extractors.DefaultRegistry(),
			Chunker:    c,
			Embedder:   embedder,
			Store:      store,
		}),
		retrieval: NewRetrievalService(embedder, store, DefaultTopK, nil),
		store:     store,
	}, nil
}

func (w *pipelineWorld) anEmptyDocumentStore() error {
	w.store.Reset()
	if err := w.store.EnsureCollection(context.Background(), 384); err != nil {
		return err
	}
	w.lastDocumentID = ""
	w.answer = ""
	w.queryErr = nil
	return nil
}

func (w *pipelineWorld) iIngestADocumentNamedContaining(filename string, content *godog.DocString) error {
	result, err := w.ingestion.Ingest(context.Background(), filename, []byte(content.Content))
	if err != nil {
		return err
	}
	w.lastDocumentID = result.DocumentID
	return nil
}

func (w *pipelineWorld) iQueryFor(query string) error {
	w.answer, w.queryErr = w.retrieval.Retrieve(context.Background(), query)
	return nil
}

func (w *pipelineWorld) theAnswerContextContains(phrase string) error {
	if w.queryErr != nil {
		return fmt.Errorf("query failed: %w", w.queryErr)
	}
	if !strings.Contains(w.answer, phrase) {
		return fmt.Errorf("answer %q does not contain %q", w.answer, phrase)
	}
	return nil
}

func (w *pipelineWorld) theAnswerContextPreservesTheDocumentOrder() error {
	if w.queryErr != nil {
		return fmt.Errorf("query failed: %w", w.queryErr)
	}
	if w.answer == "" {
		return errors.New("expected a non-empty answer")
	}

	stored := w.store.TextsFor(w.lastDocumentID)
	position := func(text string) int {
		for i, s := range stored {
			if s == text {
				return i
			}
		}
		return -1
	}

	previous := -1
	for _, line := range strings.Split(w.answer, "\n") {
		pos := position(line)
		if pos < 0 {
			return fmt.Errorf("answer line %q is not a stored chunk", line)
		}
		if pos < previous {
			return fmt.Errorf("chunk %d appears after chunk %d", pos, previous)
		}
		previous = pos
	}
	return nil
}

func (w *pipelineWorld) theAnswerContextIsEmpty() error {
	if w.queryErr != nil {
		return fmt.Errorf("expected nil error, got: %w", w.queryErr)
	}
	if w.answer != "" {
		return fmt.Errorf("expected empty answer, got %q", w.answer)
	}
	return nil
}

func (w *pipelineWorld) theQueryIsRejected() error {
	if !errors.Is(w.queryErr, domain.ErrEmptyQuery) {
		return fmt.Errorf("expected ErrEmptyQuery, got %v", w.queryErr)
	}
	return nil
}

func InitializeScenario(sc *godog.ScenarioContext) {
	w, err := newPipelineWorld()
	if err != nil {
		panic(err)
	}

	sc.Step(`^an empty document store$`, w.anEmptyDocumentStore)
	sc.Step(`^I ingest a document named "([^"]*)" containing:$`, w.iIngestADocumentNamedContaining)
	sc.Step(`^I query for "([^"]*)"$`, w.iQueryFor)
	sc.Step(`^the answer context contains "([^"]*)"$`, w.theAnswerContextContains)
	sc.Step(`^the answer context preserves the document order$`, w.theAnswerContextPreservesTheDocumentOrder)
	sc.Step(`^the answer context is empty$`, w.theAnswerContextIsEmpty)
	sc.Step(`^the query is rejected$`, w.theQueryIsRejected)
}
