package api

import (
	"encoding/json"
	"time"
)

// Outcome classifies how a probe step ended.
type Outcome string

const (
	// OutcomeStatus means the server answered and, for the initialize
	// step, answered 200 with a JSON body.
	OutcomeStatus Outcome = "status"
	// OutcomeNonSuccess means the server answered the initialize step
	// with a status other than 200.
	OutcomeNonSuccess Outcome = "non_success"
	// OutcomeTransportFailure means no usable response came back
	// (connection refused, timeout, malformed body).
	OutcomeTransportFailure Outcome = "transport_failure"
)

// Step names.
const (
	StepSSE        = "sse"
	StepInitialize = "initialize"
)

// StepResult is the outcome of a single probe request.
type StepResult struct {
	Name       string          `json:"name"`
	Method     string          `json:"method"`
	URL        string          `json:"url"`
	Outcome    Outcome         `json:"outcome"`
	StatusCode int             `json:"status_code,omitempty"`
	Body       json.RawMessage `json:"body,omitempty"`
	RawBody    string          `json:"raw_body,omitempty"`
	Error      string          `json:"error,omitempty"`
	Duration   time.Duration   `json:"duration"`
}

// Failed reports whether the step ended without a usable response.
func (r *StepResult) Failed() bool {
	return r.Outcome == OutcomeTransportFailure
}

// Report collects the results of one probe run.
type Report struct {
	Target    string        `json:"target"`
	StartedAt time.Time     `json:"started_at"`
	Steps     []*StepResult `json:"steps"`
}

// Step returns the result for the named step, or nil.
func (r *Report) Step(name string) *StepResult {
	for _, s := range r.Steps {
		if s.Name == name {
			return s
		}
	}
	return nil
}
