package probes

import (
	"context"
	"log/slog"

	"github.com/probekit/toolprobe/internal/pkg/providers"
)

const (
	ToolCallProbeName = "tool_call"

	toolCallSystemPrompt = "You are a helpful assistant with access to tools. Use the get_weather tool to answer the user's question."
	toolCallUserPrompt   = "What is the weather in London?"
)

var weatherToolDefinition = []providers.ToolDefinition{
	{
		Name:        "get_weather",
		Description: "Get the current weather in a location",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]interface{}{
				"location": map[string]string{
					"type":        "string",
					"description": "The city and state, e.g. San Francisco, CA",
				},
			},
			"required": []string{"location"},
		},
	},
}

// ToolCallProbe verifies that the served model emits a native tool call when
// tool choice is forced to "required".
type ToolCallProbe struct {
	temperature float64
}

func NewToolCallProbe(temperature float64) *ToolCallProbe {
	return &ToolCallProbe{temperature: temperature}
}

func (p *ToolCallProbe) Name() string {
	return ToolCallProbeName
}

func (p *ToolCallProbe) Run(ctx context.Context, provider providers.ChatProvider) Result {
	systemPrompt := toolCallSystemPrompt
	userPrompt := toolCallUserPrompt
	messages := []providers.ChatMessage{
		{
			Content: &systemPrompt,
			Role:    "system",
		},
		{
			Content: &userPrompt,
			Role:    "user",
		},
	}
	opts := providers.ChatOptions{
		Tools:       weatherToolDefinition,
		ToolChoice:  providers.ToolChoiceRequired,
		Temperature: &p.temperature,
	}

	resp, err := provider.Chat(ctx, messages, opts)
	if err != nil {
		slog.Error("ToolCallProbe: chat failed", "error", err)
		return Result{Probe: p.Name(), Detail: err.Error(), Err: err}
	}
	if len(resp.ToolCalls) == 0 {
		content := ""
		if resp.Content != nil {
			content = *resp.Content
		}
		slog.Warn("ToolCallProbe: model did not call the tool", "content", content)
		return Result{Probe: p.Name(), Detail: content}
	}

	toolCall := resp.ToolCalls[0]
	slog.Info("ToolCallProbe: model called the tool", "function", toolCall.FunctionName, "args", toolCall.Args)
	return Result{Probe: p.Name(), Passed: true, Detail: toolCall.FunctionName}
}
