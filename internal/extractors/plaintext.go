package extractors

import (
	"strings"

	"github.com/corpora-labs/corpora-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.TextExtractor = (*PlaintextExtractor)(nil)

// PlaintextExtractor handles plain text and markdown files.
type PlaintextExtractor struct{}

// Extract returns the file content with line endings normalized.
func (e *PlaintextExtractor) Extract(filename string, data []byte) (string, error) {
	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	return strings.TrimSpace(content), nil
}

// Extensions returns the handled file extensions.
func (e *PlaintextExtractor) Extensions() []string {
	return []string{".txt", ".md"}
}
