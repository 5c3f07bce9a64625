package providers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/openai/openai-go"
	"github.com/probekit/toolprobe/internal/pkg/utils"
)

const DefaultModel = "gemma-3-1b-it"

type OpenAIChatProvider struct {
	Client *openai.Client
	Model  string
}

func NewOpenAIChatProvider(client *openai.Client, model string) *OpenAIChatProvider {
	return &OpenAIChatProvider{
		Client: client,
		Model:  utils.GetOrDefault(model, DefaultModel),
	}
}

func (p *OpenAIChatProvider) Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (ChatResponse, error) {
	respMessage, err := p.chatCompletion(ctx, messages, opts)
	if err != nil {
		return ChatResponse{}, err
	}

	resp := p.convertToChatResponse(respMessage)
	return resp, nil
}

func (p *OpenAIChatProvider) assembleChatParams(messages []ChatMessage, opts ChatOptions) openai.ChatCompletionNewParams {
	convertedMessages := p.convertFromChatMessages(messages)
	params := openai.ChatCompletionNewParams{
		Messages: openai.F(convertedMessages),
		Model:    openai.F(p.Model),
	}
	if len(opts.Tools) > 0 {
		params.Tools = openai.F(p.convertFromToolDefinitions(opts.Tools))
	}
	if opts.ToolChoice != "" {
		params.ToolChoice = openai.F[openai.ChatCompletionToolChoiceOptionUnionParam](
			openai.ChatCompletionToolChoiceOptionBehavior(opts.ToolChoice),
		)
	}
	if opts.Temperature != nil {
		params.Temperature = openai.F(*opts.Temperature)
	}
	return params
}

func (p *OpenAIChatProvider) chatCompletion(ctx context.Context, messages []ChatMessage, opts ChatOptions) (*openai.ChatCompletionMessage, error) {
	chatParams := p.assembleChatParams(messages, opts)
	p.debugStruct("Chat params messages", chatParams.Messages)

	chatCompletion, err := p.Client.Chat.Completions.New(ctx, chatParams)
	if err != nil {
		var apierr *openai.Error
		if errors.As(err, &apierr) {
			slog.Error("Chat completion request failed", "status", apierr.StatusCode, "response", string(apierr.DumpResponse(true)))
		} else {
			slog.Error("Chat completion request failed", "error", err)
		}
		return nil, err
	}
	if len(chatCompletion.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}
	respMessage := chatCompletion.Choices[0].Message

	p.debugStruct("Chat completion", chatCompletion)
	return &respMessage, nil
}

func (p *OpenAIChatProvider) convertFromChatMessages(messages []ChatMessage) []openai.ChatCompletionMessageParamUnion {
	convertedMessages := make([]openai.ChatCompletionMessageParamUnion, len(messages))
	for i, msg := range messages {
		convertedMessages[i] = p.convertFromChatMessage(msg)
	}
	return convertedMessages
}

func (p *OpenAIChatProvider) convertFromChatMessage(msg ChatMessage) openai.ChatCompletionMessageParamUnion {
	switch msg.Role {
	case "system":
		return openai.SystemMessage(*msg.Content)
	case "user":
		return openai.UserMessage(*msg.Content)
	case "assistant":
		return openai.AssistantMessage(*msg.Content)
	case "tool":
		return openai.ToolMessage(msg.ToolCall.ID, *msg.Content)
	}
	return nil
}

func (p *OpenAIChatProvider) convertFromToolDefinitions(tools []ToolDefinition) []openai.ChatCompletionToolParam {
	converted := make([]openai.ChatCompletionToolParam, len(tools))
	for i, tool := range tools {
		converted[i] = openai.ChatCompletionToolParam{
			Type: openai.F(openai.ChatCompletionToolTypeFunction),
			Function: openai.F(openai.FunctionDefinitionParam{
				Name:        openai.String(tool.Name),
				Description: openai.String(tool.Description),
				Parameters:  openai.F(openai.FunctionParameters(tool.Parameters)),
			}),
		}
	}
	return converted
}

func (p *OpenAIChatProvider) convertToChatResponse(agentResponse *openai.ChatCompletionMessage) ChatResponse {
	resp := ChatResponse{
		Content: &agentResponse.Content,
		Role:    string(agentResponse.Role),
	}
	if agentResponse.ToolCalls != nil {
		resp.ToolCalls = make([]ToolCall, len(agentResponse.ToolCalls))
		for i, toolCall := range agentResponse.ToolCalls {
			resp.ToolCalls[i] = ToolCall{
				ID:           toolCall.ID,
				FunctionName: toolCall.Function.Name,
				Args:         toolCall.Function.Arguments,
			}
		}
	}
	return resp
}

func (p *OpenAIChatProvider) debugStruct(title string, v any) {
	slog.Info(title)
	utils.PrintStruct(v)
}
