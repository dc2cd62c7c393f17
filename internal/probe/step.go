package probe

import (
	"context"
	"time"

	"github.com/tkingovr/mcp-probe/api"
)

// Step is a single request in the probe sequence.
type Step interface {
	// Name returns the step name for logging and reporting.
	Name() string

	// Run performs the request and records what happened. Failures are
	// reported in the result, never returned, so one step cannot stop
	// the next.
	Run(ctx context.Context) *api.StepResult
}

func transportFailure(res *api.StepResult, start time.Time, err error) *api.StepResult {
	res.Outcome = api.OutcomeTransportFailure
	res.Error = err.Error()
	res.Duration = time.Since(start)
	return res
}
