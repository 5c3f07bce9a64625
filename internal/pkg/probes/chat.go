package probes

import (
	"context"
	"log/slog"

	"github.com/probekit/toolprobe/internal/pkg/providers"
)

const (
	ChatProbeName = "chat"

	chatUserPrompt = "Say this is a test"
)

// ChatProbe sends a plain completion with no tools declared, so a failing
// tool-call probe can be told apart from an unreachable or broken model.
type ChatProbe struct{}

func NewChatProbe() *ChatProbe {
	return &ChatProbe{}
}

func (p *ChatProbe) Name() string {
	return ChatProbeName
}

func (p *ChatProbe) Run(ctx context.Context, provider providers.ChatProvider) Result {
	userPrompt := chatUserPrompt
	messages := []providers.ChatMessage{
		{
			Content: &userPrompt,
			Role:    "user",
		},
	}

	resp, err := provider.Chat(ctx, messages, providers.ChatOptions{})
	if err != nil {
		slog.Error("ChatProbe: chat failed", "error", err)
		return Result{Probe: p.Name(), Detail: err.Error(), Err: err}
	}
	if resp.Content == nil || *resp.Content == "" {
		slog.Warn("ChatProbe: model returned empty content")
		return Result{Probe: p.Name(), Detail: "empty content"}
	}

	slog.Info("ChatProbe: model replied", "content", *resp.Content)
	return Result{Probe: p.Name(), Passed: true, Detail: *resp.Content}
}
