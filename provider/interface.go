// Package provider implements the reasoning-oracle boundary: concrete
// backends (OpenAI, Anthropic, Ollama) behind the model.Provider interface.
//
// The agent loop never talks to an SDK directly. It hands the provider a
// message list plus the tool menu and receives streamed text and tool calls
// through a callback. All SDK-specific type conversion lives here, so the
// loop can be exercised against a scripted provider in tests.
package provider

// Type identifies the provider implementation.
type Type string

const (
	TypeOpenAI    Type = "openai"
	TypeAnthropic Type = "anthropic"
	TypeOllama    Type = "ollama"
)

// Config holds provider-specific configuration.
type Config struct {
	Type    Type
	BaseURL string
	Model   string
	APIKey  string // unused for Ollama
}
