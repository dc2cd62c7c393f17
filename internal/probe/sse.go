package probe

import (
	"context"
	"net/http"
	"time"

	"github.com/tkingovr/mcp-probe/api"
)

// SSEStep checks that the SSE endpoint answers. Only the status code is
// recorded; the event stream itself is never read.
type SSEStep struct {
	url     string
	client  *http.Client
	timeout time.Duration
}

// NewSSEStep creates a step that issues GET url.
func NewSSEStep(client *http.Client, url string, timeout time.Duration) *SSEStep {
	return &SSEStep{url: url, client: client, timeout: timeout}
}

func (s *SSEStep) Name() string { return api.StepSSE }

func (s *SSEStep) Run(ctx context.Context) *api.StepResult {
	start := time.Now()
	res := &api.StepResult{
		Name:   api.StepSSE,
		Method: http.MethodGet,
		URL:    s.url,
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return transportFailure(res, start, err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return transportFailure(res, start, err)
	}
	// The stream stays open on the server side; close it once headers arrive.
	resp.Body.Close()

	res.Outcome = api.OutcomeStatus
	res.StatusCode = resp.StatusCode
	res.Duration = time.Since(start)
	return res
}
