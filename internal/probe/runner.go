// Package probe runs the MCP HTTP transport smoke check: a GET against the
// SSE endpoint followed by a JSON-RPC initialize round-trip.
package probe

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/tkingovr/mcp-probe/api"
	"github.com/tkingovr/mcp-probe/internal/config"
	"github.com/tkingovr/mcp-probe/internal/jsonrpc"
	"github.com/tkingovr/mcp-probe/internal/report"
)

// Runner executes probe steps in order.
type Runner struct {
	target string
	steps  []Step
	client *http.Client
	logger *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithHTTPClient sets the client used for every step.
func WithHTTPClient(c *http.Client) Option {
	return func(r *Runner) { r.client = c }
}

// WithLogger sets the logger for step diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// NewRunner builds the SSE and initialize steps for cfg.
func NewRunner(cfg *config.Config, opts ...Option) (*Runner, error) {
	r := &Runner{
		target: cfg.BaseURL(),
		client: &http.Client{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range opts {
		o(r)
	}

	msg, err := jsonrpc.NewInitializeRequest(cfg.ProtocolVersion, cfg.Client)
	if err != nil {
		return nil, err
	}
	initStep, err := NewInitializeStep(r.client, cfg.MCPURL(), cfg.Timeout, msg)
	if err != nil {
		return nil, err
	}

	r.steps = []Step{
		NewSSEStep(r.client, cfg.SSEURL(), cfg.Timeout),
		initStep,
	}
	return r, nil
}

// Run executes every step in sequence and returns their results. Step
// failures are recorded in the report; Run itself does not fail.
func (r *Runner) Run(ctx context.Context) *api.Report {
	rep := &api.Report{
		Target:    r.target,
		StartedAt: time.Now().UTC(),
		Steps:     make([]*api.StepResult, 0, len(r.steps)),
	}
	r.logger.Debug("starting probe", "target", r.target, "steps", len(r.steps))

	for _, s := range r.steps {
		res := s.Run(ctx)
		rep.Steps = append(rep.Steps, res)
		r.logger.Debug("step executed",
			"step", s.Name(),
			"url", res.URL,
			"outcome", res.Outcome,
			"status", res.StatusCode,
			"duration", res.Duration,
		)
	}
	return rep
}

// Steps returns the configured steps in execution order.
func (r *Runner) Steps() []Step {
	return r.steps
}

// Run probes localhost:port with default settings and prints the text
// report to w.
func Run(ctx context.Context, port int, w io.Writer) error {
	cfg := config.DefaultConfig()
	cfg.Port = port
	if err := cfg.Validate(); err != nil {
		return err
	}
	runner, err := NewRunner(cfg)
	if err != nil {
		return fmt.Errorf("creating runner: %w", err)
	}
	return report.NewPrinter(w, config.FormatText).Print(runner.Run(ctx))
}
