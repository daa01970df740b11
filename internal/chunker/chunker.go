package chunker

import (
	"fmt"
	"strings"

	"github.com/corpora-labs/corpora-core/internal/core/domain"
)

// Config configures the chunker behavior.
type Config struct {
	// MaxLen is the maximum characters per chunk
	MaxLen int

	// Overlap is the character overlap between adjacent chunks
	Overlap int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxLen:  500,
		Overlap: 100,
	}
}

// Chunker splits document text into overlapping segments sized for
// embedding. Whitespace runs are collapsed before splitting, so chunk
// boundaries are measured on the normalized text.
type Chunker struct {
	maxLen  int
	overlap int
}

// New creates a chunker with the given config.
// The overlap must be smaller than the window or the split cannot advance.
func New(cfg Config) (*Chunker, error) {
	if cfg.MaxLen <= 0 {
		return nil, fmt.Errorf("%w: max length must be positive, got %d", domain.ErrInvalidConfiguration, cfg.MaxLen)
	}
	if cfg.Overlap < 0 || cfg.Overlap >= cfg.MaxLen {
		return nil, fmt.Errorf("%w: overlap %d must be in [0, %d)", domain.ErrInvalidConfiguration, cfg.Overlap, cfg.MaxLen)
	}
	return &Chunker{maxLen: cfg.MaxLen, overlap: cfg.Overlap}, nil
}

// Split breaks text into ordered overlapping chunks.
// Text at most MaxLen long comes back as a single chunk; longer text is
// windowed with each window preferring to end just after a sentence period
// in its second half. The slice index of each chunk is its position in the
// document.
func (c *Chunker) Split(text string) []string {
	normalized := normalize(text)
	if len(normalized) <= c.maxLen {
		return []string{normalized}
	}

	var chunks []string
	start := 0

	for start < len(normalized) {
		end := start + c.maxLen
		if end >= len(normalized) {
			end = len(normalized)
		} else if bp := c.findBreakPoint(normalized, start, end); bp > 0 {
			end = bp
		}

		chunks = append(chunks, strings.TrimSpace(normalized[start:end]))

		if end >= len(normalized) {
			break
		}

		// Move start with overlap, ensuring we always advance
		nextStart := end - c.overlap
		if nextStart <= start {
			nextStart = start + 1
		}
		start = nextStart
	}

	return chunks
}

// findBreakPoint finds the last sentence end inside the window.
// A period only counts when it falls in the second half of the window.
// Returns 0 if no suitable break exists.
func (c *Chunker) findBreakPoint(text string, start, maxEnd int) int {
	idx := strings.LastIndex(text[start:maxEnd], ".")
	if idx == -1 {
		return 0
	}
	period := start + idx
	if period <= start+c.maxLen/2 {
		return 0
	}
	return period + 1
}

// normalize collapses whitespace runs into single spaces and trims the ends.
func normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
