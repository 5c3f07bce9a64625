package providers

import "context"

type ToolCall struct {
	ID           string `json:"id"`
	FunctionName string `json:"function_name"`
	Args         string `json:"args"`
}

type ChatMessage struct {
	Content  *string   `json:"content"`
	Role     string    `json:"role"`
	ToolCall *ToolCall `json:"tool_call"`
}

type ChatResponse struct {
	Content   *string    `json:"content"`
	Role      string     `json:"role"`
	ToolCalls []ToolCall `json:"tool_calls"`
}

// ToolDefinition describes a function the model may call, with a JSON Schema
// object for its parameters.
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

type ToolChoiceBehavior string

const (
	ToolChoiceNone     ToolChoiceBehavior = "none"
	ToolChoiceAuto     ToolChoiceBehavior = "auto"
	ToolChoiceRequired ToolChoiceBehavior = "required"
)

type ChatOptions struct {
	Tools       []ToolDefinition
	ToolChoice  ToolChoiceBehavior
	Temperature *float64
}

type ChatProvider interface {
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (ChatResponse, error)
}
