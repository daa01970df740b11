package driven

// TextExtractor converts a raw document payload into plain text.
// Implementations handle one file format each (PDF, plain text, ...).
type TextExtractor interface {
	// Extract returns the textual content of the file.
	// The input is the complete file body as uploaded.
	Extract(filename string, data []byte) (string, error)

	// Extensions returns the lowercase file extensions this extractor
	// handles, including the leading dot (".pdf", ".txt", ...)
	Extensions() []string
}

// ExtractorRegistry manages text extractors, selected by file extension.
type ExtractorRegistry interface {
	// Get retrieves the extractor for a filename based on its extension.
	// Returns nil if no extractor handles the extension.
	Get(filename string) TextExtractor

	// Register registers an extractor for all its extensions.
	// A later registration for the same extension replaces the earlier one.
	Register(extractor TextExtractor)

	// List returns all registered extensions, sorted.
	List() []string
}
