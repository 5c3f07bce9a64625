package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/probekit/toolprobe/config"
	"github.com/probekit/toolprobe/internal/pkg/probes"
	"github.com/probekit/toolprobe/internal/pkg/providers"
	"github.com/probekit/toolprobe/internal/pkg/utils"
)

func main() {
	defer utils.RecoverPanic()

	env := utils.GetOrDefault(os.Getenv("TOOLPROBE_ENV"), "dev")
	if err := config.LoadConfig(env); err != nil {
		slog.Error("Error loading configuration:", "error", err)
		panic(err)
	}

	client := openai.NewClient(
		option.WithAPIKey(config.Config.LLM.APIKey),
		option.WithBaseURL(config.Config.LLM.BaseURL),
	)
	provider := providers.NewOpenAIChatProvider(client, config.Config.LLM.Model)

	runner := probes.NewRunner(provider, []probes.Probe{
		probes.NewChatProbe(),
		probes.NewToolCallProbe(config.Config.LLM.Temperature),
	})

	results, passed := runner.Run(context.Background())
	utils.PrintStruct(results)
	if !passed {
		slog.Warn("Some probes failed")
	}

	// The exit code follows the tool-call verdict; the chat probe only narrows
	// down where a failure happened.
	for _, result := range results {
		if result.Probe == probes.ToolCallProbeName && !result.Passed {
			os.Exit(1)
		}
	}
}
