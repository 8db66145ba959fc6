package llm

import "context"

// Message is the wire form of one conversation entry, as sent to a provider.
type Message struct {
	Role       string     `json:"role"` // system, user, assistant, tool
	Content    string     `json:"content,omitempty"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"` // for tool result messages
}

// ToolCall is a model-issued request to run a named tool. Arguments is the
// raw JSON text exactly as the model produced it. Parsing is the caller's
// job, so that malformed arguments can surface back to the model as a tool
// error instead of failing the whole request.
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Response is one completion from the model: final text, tool-call
// requests, or both.
type Response struct {
	Content   string
	ToolCalls []ToolCall
}

// Tool describes a callable function in provider-neutral form.
// Parameters is a JSON Schema object.
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Client is the capability boundary to a language model provider.
type Client interface {
	// Generate requests one completion for the given messages, offering
	// the tools for function calling.
	Generate(ctx context.Context, messages []Message, tools []Tool) (*Response, error)

	// GenerateStream requests a streaming text completion, invoking
	// onChunk for each piece of text as it arrives. Tool calling is not
	// supported on the streaming path.
	GenerateStream(ctx context.Context, messages []Message, onChunk func(string)) error
}
