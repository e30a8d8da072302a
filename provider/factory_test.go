package provider

import (
	"testing"
)

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
	}{
		{
			name: "ollama provider with defaults",
			config: Config{
				Type: TypeOllama,
			},
			expectError: false,
		},
		{
			name: "ollama provider with custom config",
			config: Config{
				Type:    TypeOllama,
				BaseURL: "http://localhost:11434",
				Model:   "llama3.1",
			},
			expectError: false,
		},
		{
			name: "openai provider",
			config: Config{
				Type:    TypeOpenAI,
				BaseURL: "https://api.openai.com/v1",
				Model:   "gpt-4o-mini",
				APIKey:  "test-key",
			},
			expectError: false,
		},
		{
			name: "openai provider without key",
			config: Config{
				Type:  TypeOpenAI,
				Model: "gpt-4o-mini",
			},
			expectError: true,
		},
		{
			name: "anthropic provider",
			config: Config{
				Type:   TypeAnthropic,
				Model:  "claude-sonnet-4-5-20250929",
				APIKey: "test-key",
			},
			expectError: false,
		},
		{
			name: "unknown provider type",
			config: Config{
				Type:  Type("unknown"),
				Model: "test",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(tt.config)
			if tt.expectError {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewProvider() error = %v", err)
			}
			if p == nil {
				t.Fatal("NewProvider() returned nil provider")
			}
			if p.GetModel() == "" {
				t.Error("GetModel() returned empty string")
			}
		})
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		id   string
		want Type
	}{
		{"openai", TypeOpenAI},
		{"anthropic", TypeAnthropic},
		{"ollama", TypeOllama},
		{"something-else", Type("something-else")},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := ParseType(tt.id); got != tt.want {
				t.Errorf("ParseType(%q) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}
