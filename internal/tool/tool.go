package tool

import (
	"context"

	"github.com/helios-agent/helios/internal/llm"
)

// Parameter describes one input a tool accepts.
type Parameter struct {
	Name        string
	Type        string // string, number, integer, boolean, array, object
	Description string
	Required    bool
	Enum        []string // allowed values, optional
}

// Result is the outcome of one tool invocation. Exactly one of Output and
// Error carries the payload, selected by Success.
type Result struct {
	Success bool
	Output  string
	Error   string
}

// Tool is a capability the model can invoke by name. Implementations must
// be stateless across calls.
type Tool interface {
	Name() string
	Description() string
	Parameters() []Parameter

	// Execute runs the tool with the given named arguments. A returned
	// error is equivalent to a failed Result; the registry folds both
	// into the same shape.
	Execute(ctx context.Context, args map[string]any) (Result, error)
}

// Schema builds the OpenAI function-calling schema for a tool. The shape is
// understood by OpenRouter and most other providers.
func Schema(t Tool) llm.Tool {
	properties := map[string]any{}
	required := []string{}

	for _, p := range t.Parameters() {
		prop := map[string]any{
			"type":        p.Type,
			"description": p.Description,
		}
		if len(p.Enum) > 0 {
			prop["enum"] = p.Enum
		}
		properties[p.Name] = prop

		if p.Required {
			required = append(required, p.Name)
		}
	}

	return llm.Tool{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters: map[string]any{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
