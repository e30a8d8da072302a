package provider

import (
	"encoding/json"

	"github.com/ollama/ollama/api"
	"github.com/openai/openai-go/v3"

	"tabla/model"
)

// ConvertToOpenAIMessages converts agent messages to OpenAI chat params.
// Tool results are sent as user messages; the tool feedback text already
// identifies which call it answers.
func ConvertToOpenAIMessages(messages []model.Message) []openai.ChatCompletionMessageParamUnion {
	result := make([]openai.ChatCompletionMessageParamUnion, len(messages))
	for i, msg := range messages {
		switch msg.Role {
		case "system":
			result[i] = openai.SystemMessage(msg.Content)
		case "assistant":
			result[i] = openai.AssistantMessage(msg.Content)
		default: // "user", "tool"
			result[i] = openai.UserMessage(msg.Content)
		}
	}
	return result
}

// ConvertToOllamaMessages converts agent messages to Ollama api messages.
// Ollama accepts the "tool" role natively.
func ConvertToOllamaMessages(messages []model.Message) []api.Message {
	result := make([]api.Message, len(messages))
	for i, msg := range messages {
		result[i] = api.Message{Role: msg.Role, Content: msg.Content}
	}
	return result
}

// ConvertFromOllamaToolCalls converts Ollama tool calls to the agent's
// provider-agnostic form.
func ConvertFromOllamaToolCalls(calls []api.ToolCall) []model.ToolCall {
	if len(calls) == 0 {
		return nil
	}
	result := make([]model.ToolCall, len(calls))
	for i, c := range calls {
		result[i] = model.ToolCall{
			Name:      c.Function.Name,
			Arguments: map[string]any(c.Function.Arguments),
		}
	}
	return result
}

// ParseToolArguments decodes a JSON argument string, returning an empty map
// when the payload is malformed so the executor can report a clean error.
func ParseToolArguments(argsJSON string) map[string]any {
	var args map[string]any
	if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
		return make(map[string]any)
	}
	return args
}
