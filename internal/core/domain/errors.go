package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyQuery indicates the query text is empty or whitespace-only
	ErrEmptyQuery = errors.New("query cannot be empty")

	// ErrNoExtractableContent indicates a document yielded no text
	ErrNoExtractableContent = errors.New("no extractable content")

	// ErrUnsupportedFileType indicates the file type has no registered extractor
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrInvalidConfiguration indicates a component was constructed with
	// invalid settings
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrInvalidProvider indicates an unknown AI provider was specified
	ErrInvalidProvider = errors.New("invalid provider")

	// ErrServiceUnavailable indicates an external dependency could not be reached
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrTaskNotFound indicates the task does not exist
	ErrTaskNotFound = errors.New("task not found")

	// ErrTaskNotCancellable indicates the task is no longer pending
	ErrTaskNotCancellable = errors.New("task is not pending")

	// ErrQueueNotConfigured indicates no task queue backend is configured
	ErrQueueNotConfigured = errors.New("task queue not configured")
)
