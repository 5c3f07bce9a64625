package providers_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/probekit/toolprobe/internal/pkg/providers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const toolCallCompletion = `{
	"id": "chatcmpl-test",
	"object": "chat.completion",
	"created": 1700000000,
	"model": "gemma-3-1b-it",
	"choices": [
		{
			"index": 0,
			"message": {
				"role": "assistant",
				"content": null,
				"tool_calls": [
					{
						"id": "call_abc123",
						"type": "function",
						"function": {
							"name": "get_weather",
							"arguments": "{\"location\": \"London\"}"
						}
					}
				]
			},
			"finish_reason": "tool_calls"
		}
	]
}`

const plainCompletion = `{
	"id": "chatcmpl-test",
	"object": "chat.completion",
	"created": 1700000000,
	"model": "gemma-3-1b-it",
	"choices": [
		{
			"index": 0,
			"message": {
				"role": "assistant",
				"content": "This is a test."
			},
			"finish_reason": "stop"
		}
	]
}`

func newTestProvider(t *testing.T, handler http.HandlerFunc) *providers.OpenAIChatProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := openai.NewClient(
		option.WithAPIKey("EMPTY"),
		option.WithBaseURL(server.URL+"/"),
		option.WithMaxRetries(0),
	)
	return providers.NewOpenAIChatProvider(client, "gemma-3-1b-it")
}

func toolCallMessages() []providers.ChatMessage {
	systemPrompt := "You are a helpful assistant with access to tools. Use the get_weather tool to answer the user's question."
	userPrompt := "What is the weather in London?"
	return []providers.ChatMessage{
		{Content: &systemPrompt, Role: "system"},
		{Content: &userPrompt, Role: "user"},
	}
}

func toolCallOptions() providers.ChatOptions {
	temperature := 0.0
	return providers.ChatOptions{
		Tools: []providers.ToolDefinition{
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
		},
		ToolChoice:  providers.ToolChoiceRequired,
		Temperature: &temperature,
	}
}

func TestChatSendsDeclaredSchema(t *testing.T) {
	var captured map[string]any
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, toolCallCompletion)
	})

	resp, err := provider.Chat(context.Background(), toolCallMessages(), toolCallOptions())
	require.NoError(t, err)

	assert.Equal(t, "gemma-3-1b-it", captured["model"])
	assert.Equal(t, "required", captured["tool_choice"])
	assert.Equal(t, 0.0, captured["temperature"])

	messages, ok := captured["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	first := messages[0].(map[string]any)
	second := messages[1].(map[string]any)
	assert.Equal(t, "system", first["role"])
	assert.Equal(t, "user", second["role"])
	assert.Equal(t, "What is the weather in London?", second["content"])

	tools, ok := captured["tools"].([]any)
	require.True(t, ok)
	require.Len(t, tools, 1)
	tool := tools[0].(map[string]any)
	assert.Equal(t, "function", tool["type"])
	function := tool["function"].(map[string]any)
	assert.Equal(t, "get_weather", function["name"])
	parameters := function["parameters"].(map[string]any)
	assert.Equal(t, "object", parameters["type"])
	assert.Equal(t, []any{"location"}, parameters["required"])

	require.Len(t, resp.ToolCalls, 1)
	assert.Equal(t, "call_abc123", resp.ToolCalls[0].ID)
	assert.Equal(t, "get_weather", resp.ToolCalls[0].FunctionName)
	assert.JSONEq(t, `{"location": "London"}`, resp.ToolCalls[0].Args)
}

func TestChatOmitsToolFieldsWhenUnset(t *testing.T) {
	var captured map[string]any
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, plainCompletion)
	})

	userPrompt := "Say this is a test"
	messages := []providers.ChatMessage{{Content: &userPrompt, Role: "user"}}
	resp, err := provider.Chat(context.Background(), messages, providers.ChatOptions{})
	require.NoError(t, err)

	assert.NotContains(t, captured, "tools")
	assert.NotContains(t, captured, "tool_choice")
	assert.NotContains(t, captured, "temperature")
	require.NotNil(t, resp.Content)
	assert.Equal(t, "This is a test.", *resp.Content)
	assert.Empty(t, resp.ToolCalls)
}

func TestChatReturnsAPIErrorWithBody(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error": {"message": "model not loaded", "type": "server_error"}}`)
	})

	_, err := provider.Chat(context.Background(), toolCallMessages(), toolCallOptions())
	require.Error(t, err)

	var apierr *openai.Error
	require.True(t, errors.As(err, &apierr))
	assert.Equal(t, http.StatusInternalServerError, apierr.StatusCode)
}

func TestChatReturnsErrorOnEmptyChoices(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id": "chatcmpl-test", "object": "chat.completion", "created": 1700000000, "model": "gemma-3-1b-it", "choices": []}`)
	})

	_, err := provider.Chat(context.Background(), toolCallMessages(), toolCallOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}
