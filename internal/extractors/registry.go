package extractors

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/corpora-labs/corpora-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry implements ExtractorRegistry keyed by file extension.
type Registry struct {
	mu         sync.RWMutex
	extractors map[string]driven.TextExtractor
}

// NewRegistry creates an empty extractor registry.
func NewRegistry() *Registry {
	return &Registry{
		extractors: make(map[string]driven.TextExtractor),
	}
}

// Register registers an extractor for all extensions it reports.
// A later registration for the same extension replaces the earlier one.
func (r *Registry) Register(extractor driven.TextExtractor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ext := range extractor.Extensions() {
		r.extractors[strings.ToLower(ext)] = extractor
	}
}

// Get retrieves the extractor for a filename based on its extension.
// Returns nil when the extension is unknown.
func (r *Registry) Get(filename string) driven.TextExtractor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.extractors[strings.ToLower(filepath.Ext(filename))]
}

// List returns all registered extensions, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := make([]string, 0, len(r.extractors))
	for ext := range r.extractors {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// DefaultRegistry creates a registry with the built-in extractors.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewPDFExtractor())
	r.Register(&PlaintextExtractor{})
	return r
}
