// Package report renders probe results for the console.
package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/tkingovr/mcp-probe/api"
)

// Banner is the first line of text output.
const Banner = "Testing MCP HTTP transport..."

var labels = map[string]string{
	api.StepSSE:        "SSE endpoint",
	api.StepInitialize: "Initialize request",
}

// Printer writes a Report in text or JSON form.
type Printer struct {
	w      io.Writer
	format string
}

// NewPrinter creates a Printer. Any format other than "json" prints text.
func NewPrinter(w io.Writer, format string) *Printer {
	return &Printer{w: w, format: format}
}

// Print writes the report.
func (p *Printer) Print(rep *api.Report) error {
	if p.format == "json" {
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}

	bw := bufio.NewWriter(p.w)
	fmt.Fprintln(bw, Banner)
	for _, s := range rep.Steps {
		writeStep(bw, s)
	}
	return bw.Flush()
}

func writeStep(w io.Writer, s *api.StepResult) {
	label, ok := labels[s.Name]
	if !ok {
		label = s.Name
	}

	if s.StatusCode != 0 {
		fmt.Fprintf(w, "%s status: %d\n", label, s.StatusCode)
	}

	switch s.Outcome {
	case api.OutcomeStatus:
		if len(s.Body) > 0 {
			fmt.Fprintf(w, "Response: %s\n", s.Body)
		}
	case api.OutcomeNonSuccess:
		fmt.Fprintf(w, "Error response: %s\n", s.RawBody)
	case api.OutcomeTransportFailure:
		fmt.Fprintf(w, "%s failed: %s\n", label, s.Error)
	}
}
