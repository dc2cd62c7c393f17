package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tkingovr/mcp-probe/api"
	"github.com/tkingovr/mcp-probe/internal/jsonrpc"
)

// InitializeStep posts a JSON-RPC initialize request and records the reply.
type InitializeStep struct {
	url     string
	client  *http.Client
	timeout time.Duration
	payload []byte
}

// NewInitializeStep creates a step that POSTs msg to url.
func NewInitializeStep(client *http.Client, url string, timeout time.Duration, msg *api.JSONRPCMessage) (*InitializeStep, error) {
	payload, err := jsonrpc.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encoding initialize request: %w", err)
	}
	return &InitializeStep{
		url:     url,
		client:  client,
		timeout: timeout,
		payload: payload,
	}, nil
}

func (s *InitializeStep) Name() string { return api.StepInitialize }

// Payload returns the encoded request body.
func (s *InitializeStep) Payload() []byte {
	return s.payload
}

// Run sends the request. A 200 reply is decoded as JSON; any other status
// keeps the body as raw text without parsing it.
func (s *InitializeStep) Run(ctx context.Context) *api.StepResult {
	start := time.Now()
	res := &api.StepResult{
		Name:   api.StepInitialize,
		Method: http.MethodPost,
		URL:    s.url,
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(s.payload))
	if err != nil {
		return transportFailure(res, start, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return transportFailure(res, start, err)
	}
	defer resp.Body.Close()

	res.StatusCode = resp.StatusCode
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportFailure(res, start, fmt.Errorf("reading response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		res.Outcome = api.OutcomeNonSuccess
		res.RawBody = string(body)
		res.Duration = time.Since(start)
		return res
	}

	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return transportFailure(res, start, fmt.Errorf("malformed response: %w", err))
	}
	normalized, err := json.Marshal(parsed)
	if err != nil {
		return transportFailure(res, start, fmt.Errorf("malformed response: %w", err))
	}

	res.Outcome = api.OutcomeStatus
	res.Body = normalized
	res.Duration = time.Since(start)
	return res
}
