package domain

import (
	"testing"
)

func TestAIProviderConstants(t *testing.T) {
	tests := []struct {
		provider AIProvider
		expected string
	}{
		{AIProviderOpenAI, "openai"},
		{AIProviderOllama, "ollama"},
	}

	for _, tt := range tests {
		if string(tt.provider) != tt.expected {
			t.Errorf("expected %q, got %q", tt.expected, string(tt.provider))
		}
	}
}

func TestAIProvider_RequiresAPIKey(t *testing.T) {
	if !AIProviderOpenAI.RequiresAPIKey() {
		t.Error("openai should require an API key")
	}
	if AIProviderOllama.RequiresAPIKey() {
		t.Error("ollama should not require an API key")
	}
}

func TestEmbeddingSettings_IsConfigured(t *testing.T) {
	tests := []struct {
		name     string
		settings EmbeddingSettings
		expected bool
	}{
		{
			name:     "empty provider",
			settings: EmbeddingSettings{},
			expected: false,
		},
		{
			name:     "openai without key",
			settings: EmbeddingSettings{Provider: AIProviderOpenAI, Model: "text-embedding-3-small"},
			expected: false,
		},
		{
			name:     "openai with key",
			settings: EmbeddingSettings{Provider: AIProviderOpenAI, Model: "text-embedding-3-small", APIKey: "sk-test"},
			expected: true,
		},
		{
			name:     "openai keyless with custom base url",
			settings: EmbeddingSettings{Provider: AIProviderOpenAI, Model: "all-MiniLM-L6-v2", BaseURL: "http://localhost:8081/v1"},
			expected: true,
		},
		{
			name:     "ollama without key",
			settings: EmbeddingSettings{Provider: AIProviderOllama, Model: "all-minilm"},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.settings.IsConfigured(); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}
