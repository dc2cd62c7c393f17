package report

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkingovr/mcp-probe/api"
)

func TestPrinterText(t *testing.T) {
	tests := []struct {
		name  string
		steps []*api.StepResult
		want  string
	}{
		{
			name: "all succeed",
			steps: []*api.StepResult{
				{Name: api.StepSSE, Outcome: api.OutcomeStatus, StatusCode: 200},
				{Name: api.StepInitialize, Outcome: api.OutcomeStatus, StatusCode: 200, Body: json.RawMessage(`{"result":"ok"}`)},
			},
			want: Banner + "\n" +
				"SSE endpoint status: 200\n" +
				"Initialize request status: 200\n" +
				`Response: {"result":"ok"}` + "\n",
		},
		{
			name: "non success status",
			steps: []*api.StepResult{
				{Name: api.StepSSE, Outcome: api.OutcomeStatus, StatusCode: 404},
				{Name: api.StepInitialize, Outcome: api.OutcomeNonSuccess, StatusCode: 404, RawBody: "not found"},
			},
			want: Banner + "\n" +
				"SSE endpoint status: 404\n" +
				"Initialize request status: 404\n" +
				"Error response: not found\n",
		},
		{
			name: "transport failures",
			steps: []*api.StepResult{
				{Name: api.StepSSE, Outcome: api.OutcomeTransportFailure, Error: "connection refused"},
				{Name: api.StepInitialize, Outcome: api.OutcomeTransportFailure, Error: "connection refused"},
			},
			want: Banner + "\n" +
				"SSE endpoint failed: connection refused\n" +
				"Initialize request failed: connection refused\n",
		},
		{
			name: "malformed success body",
			steps: []*api.StepResult{
				{Name: api.StepInitialize, Outcome: api.OutcomeTransportFailure, StatusCode: 200, Error: "malformed response: invalid character"},
			},
			want: Banner + "\n" +
				"Initialize request status: 200\n" +
				"Initialize request failed: malformed response: invalid character\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := NewPrinter(&buf, "text").Print(&api.Report{Steps: tt.steps})
			require.NoError(t, err)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPrinterJSON(t *testing.T) {
	rep := &api.Report{
		Target:    "http://localhost:8001",
		StartedAt: time.Date(2025, 6, 18, 12, 0, 0, 0, time.UTC),
		Steps: []*api.StepResult{
			{Name: api.StepSSE, Method: "GET", Outcome: api.OutcomeStatus, StatusCode: 200},
			{Name: api.StepInitialize, Method: "POST", Outcome: api.OutcomeNonSuccess, StatusCode: 500, RawBody: "boom"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, "json").Print(rep))

	var back api.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, rep.Target, back.Target)
	require.Len(t, back.Steps, 2)
	assert.Equal(t, api.OutcomeNonSuccess, back.Step(api.StepInitialize).Outcome)
	assert.Equal(t, "boom", back.Step(api.StepInitialize).RawBody)
}
