package testutil

import (
	"context"

	mcptypes "github.com/mark3labs/mcp-go/mcp"

	"tabla/model"
)

// MockProvider implements model.Provider for testing
type MockProvider struct {
	// Configurable responses
	ChatFunc          func(ctx context.Context, messages []model.Message, callback model.StreamCallback) error
	ChatWithToolsFunc func(ctx context.Context, messages []model.Message, tools []mcptypes.Tool, callback model.StreamCallback) error
	PingFunc          func(ctx context.Context) error

	currentModel string
}

// NewMockProvider creates a mock provider with default implementations
func NewMockProvider(modelName string) *MockProvider {
	mock := &MockProvider{
		currentModel: modelName,
	}
	mock.ChatFunc = mock.defaultChat
	mock.ChatWithToolsFunc = mock.defaultChatWithTools
	mock.PingFunc = mock.defaultPing
	return mock
}

func (m *MockProvider) defaultChat(ctx context.Context, messages []model.Message, callback model.StreamCallback) error {
	if len(messages) > 0 {
		return callback("Mock response", nil)
	}
	return nil
}

func (m *MockProvider) defaultChatWithTools(ctx context.Context, messages []model.Message, tools []mcptypes.Tool, callback model.StreamCallback) error {
	return callback("Mock response with tools", nil)
}

func (m *MockProvider) defaultPing(ctx context.Context) error {
	return nil
}

func (m *MockProvider) Chat(ctx context.Context, messages []model.Message, callback model.StreamCallback) error {
	return m.ChatFunc(ctx, messages, callback)
}

func (m *MockProvider) ChatWithTools(ctx context.Context, messages []model.Message, tools []mcptypes.Tool, callback model.StreamCallback) error {
	return m.ChatWithToolsFunc(ctx, messages, tools, callback)
}

func (m *MockProvider) GetModel() string {
	return m.currentModel
}

func (m *MockProvider) Ping(ctx context.Context) error {
	return m.PingFunc(ctx)
}

// ScriptStep is one scripted oracle response: streamed text, tool calls, or
// an error to return instead.
type ScriptStep struct {
	Text      string
	ToolCalls []model.ToolCall
	Err       error
}

// ScriptedProvider replays a fixed sequence of responses, one per
// ChatWithTools call. When the script runs out the last step repeats, which
// models an oracle that keeps issuing the same call forever. It records the
// message history of every call for assertions.
type ScriptedProvider struct {
	Script []ScriptStep
	Calls  [][]model.Message

	next int
}

func NewScriptedProvider(steps ...ScriptStep) *ScriptedProvider {
	return &ScriptedProvider{Script: steps}
}

func (s *ScriptedProvider) Chat(ctx context.Context, messages []model.Message, callback model.StreamCallback) error {
	return s.ChatWithTools(ctx, messages, nil, callback)
}

func (s *ScriptedProvider) ChatWithTools(ctx context.Context, messages []model.Message, tools []mcptypes.Tool, callback model.StreamCallback) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	snapshot := make([]model.Message, len(messages))
	copy(snapshot, messages)
	s.Calls = append(s.Calls, snapshot)

	if len(s.Script) == 0 {
		return callback("", nil)
	}
	idx := s.next
	if idx >= len(s.Script) {
		idx = len(s.Script) - 1
	} else {
		s.next++
	}

	step := s.Script[idx]
	if step.Err != nil {
		return step.Err
	}
	return callback(step.Text, step.ToolCalls)
}

func (s *ScriptedProvider) GetModel() string {
	return "scripted"
}

func (s *ScriptedProvider) Ping(ctx context.Context) error {
	return nil
}
