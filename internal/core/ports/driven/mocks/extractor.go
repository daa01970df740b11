package mocks

import (
	"sync"
)

// MockExtractor is a scripted mock implementation of TextExtractor for
// testing. With no script it echoes the file data as text.
type MockExtractor struct {
	mu sync.Mutex

	// Text is returned from Extract when non-empty
	Text string

	// Err is returned from Extract when set
	Err error

	// Exts overrides the handled extensions (default ".txt")
	Exts []string

	calls int
}

func (m *MockExtractor) Extract(filename string, data []byte) (string, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.Err != nil {
		return "", m.Err
	}
	if m.Text != "" {
		return m.Text, nil
	}
	return string(data), nil
}

func (m *MockExtractor) Extensions() []string {
	if len(m.Exts) == 0 {
		return []string{".txt"}
	}
	return m.Exts
}

// Helper methods for testing

// CallCount returns how many Extract calls were made
func (m *MockExtractor) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
