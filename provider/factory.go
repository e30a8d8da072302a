package provider

import (
	"fmt"

	"tabla/model"
)

// NewProvider creates a provider from configuration. This is the single
// construction point: the rest of the program only sees model.Provider.
func NewProvider(cfg Config) (model.Provider, error) {
	switch cfg.Type {
	case TypeOpenAI:
		return NewOpenAIProvider(cfg.BaseURL, cfg.APIKey, cfg.Model)
	case TypeAnthropic:
		return NewAnthropicProvider(cfg.BaseURL, cfg.APIKey, cfg.Model)
	case TypeOllama:
		return NewOllamaProvider(cfg.BaseURL, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown provider type: %s", cfg.Type)
	}
}

// ParseType converts a user-facing provider id into a Type. Unknown ids
// pass through so the factory reports them.
func ParseType(id string) Type {
	switch id {
	case "openai":
		return TypeOpenAI
	case "anthropic":
		return TypeAnthropic
	case "ollama":
		return TypeOllama
	default:
		return Type(id)
	}
}
