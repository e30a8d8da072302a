// Package model holds the provider-agnostic types shared between the agent
// loop, the provider implementations, and the UI. The Provider interface
// lives here rather than in the provider package so implementations can
// import model without creating a cycle.
package model

import (
	"context"
	"time"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

// Message is one entry in the conversation sent to the reasoning oracle.
// Role is one of "system", "user", "assistant" or "tool".
type Message struct {
	Role      string
	Content   string
	Timestamp time.Time
}

// ToolCall is one structured action request emitted by the oracle.
type ToolCall struct {
	Name      string
	Arguments map[string]any
}

// StreamCallback receives streamed response chunks and any tool calls the
// oracle emits. Returning an error aborts the stream.
type StreamCallback func(chunk string, toolCalls []ToolCall) error

// Provider abstracts a reasoning-oracle backend (OpenAI, Anthropic, Ollama).
// It is the sole boundary through which non-determinism and external failure
// enter a turn; tests substitute a scripted implementation.
type Provider interface {
	// Chat sends messages and streams the response via callback.
	Chat(ctx context.Context, messages []Message, callback StreamCallback) error

	// ChatWithTools sends messages along with the tool menu. Tool calls
	// selected by the oracle are delivered through the callback.
	ChatWithTools(ctx context.Context, messages []Message, tools []mcptypes.Tool, callback StreamCallback) error

	// GetModel returns the active model name.
	GetModel() string

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error
}
