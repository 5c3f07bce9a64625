package probes

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/probekit/toolprobe/internal/pkg/providers"
)

// Runner executes probes in order against a single provider. It is not a
// scheduler; probes run one at a time on the calling goroutine.
type Runner struct {
	provider providers.ChatProvider
	probes   []Probe
}

func NewRunner(provider providers.ChatProvider, probes []Probe) *Runner {
	return &Runner{
		provider: provider,
		probes:   probes,
	}
}

// Run returns the per-probe results and whether every probe passed.
func (r *Runner) Run(ctx context.Context) ([]Result, bool) {
	runID := uuid.New().String()
	slog.Info("Runner: starting probe run", "runID", runID, "probes", len(r.probes))

	results := make([]Result, 0, len(r.probes))
	passed := true
	for _, probe := range r.probes {
		slog.Info("Runner: running probe", "runID", runID, "probe", probe.Name())
		result := probe.Run(ctx, r.provider)
		if result.Passed {
			slog.Info("Runner: probe passed", "runID", runID, "probe", result.Probe, "detail", result.Detail)
		} else {
			slog.Error("Runner: probe failed", "runID", runID, "probe", result.Probe, "detail", result.Detail)
			passed = false
		}
		results = append(results, result)
	}

	slog.Info("Runner: probe run finished", "runID", runID, "passed", passed)
	return results, passed
}
