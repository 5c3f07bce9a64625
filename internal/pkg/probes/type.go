package probes

import (
	"context"

	"github.com/probekit/toolprobe/internal/pkg/providers"
)

// Result is the outcome of a single probe. Detail carries the tool-call
// summary on success, or the model's textual reply / error text on failure.
type Result struct {
	Probe  string `json:"probe"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
	Err    error  `json:"-"`
}

type Probe interface {
	Name() string
	Run(ctx context.Context, provider providers.ChatProvider) Result
}
