package fixturecheck

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Report aggregates one suite execution.
type Report struct {
	RunID        string
	Root         string
	Completeness *CompletenessError
	Results      []Result
	Duration     time.Duration
}

// OK reports whether the completeness check passed and every outcome counts
// as success.
func (r *Report) OK() bool {
	if r.Completeness != nil {
		return false
	}
	for _, res := range r.Results {
		if !res.Outcome.OK() {
			return false
		}
	}
	return true
}

type reportSummary struct {
	Total   int `json:"total"`
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Errored int `json:"errored"`
	Muted   int `json:"muted"`

	Completeness struct {
		OK      bool     `json:"ok"`
		Orphans []string `json:"orphans,omitempty"`
		Missing []string `json:"missing,omitempty"`
	} `json:"completeness"`

	ExecutionTimeMs int64 `json:"execution_time_ms"`
}

func (r *Report) summarize() reportSummary {
	var s reportSummary
	s.Total = len(r.Results)
	for _, res := range r.Results {
		switch res.Outcome.Kind {
		case Passed:
			s.Passed++
		case Failed:
			s.Failed++
		case Errored:
			s.Errored++
		case Muted:
			s.Muted++
		}
	}
	s.Completeness.OK = r.Completeness == nil
	if r.Completeness != nil {
		s.Completeness.Orphans = r.Completeness.Orphans
		s.Completeness.Missing = r.Completeness.Missing
	}
	s.ExecutionTimeMs = r.Duration.Milliseconds()
	return s
}

// WriteText writes a human readable report.
func (r *Report) WriteText(w io.Writer) {
	for _, res := range r.Results {
		label := "PASS"
		switch res.Outcome.Kind {
		case Failed:
			label = "FAIL"
		case Errored:
			label = "ERROR"
		case Muted:
			label = "MUTED"
		}
		if res.Outcome.Diagnostic != "" {
			_, _ = fmt.Fprintf(w, "%-5s %s: %s\n", label, res.ID, res.Outcome.Diagnostic)
		} else {
			_, _ = fmt.Fprintf(w, "%-5s %s\n", label, res.ID)
		}
	}

	summary := r.summarize()
	_, _ = fmt.Fprintln(w, "\nFixture Run Summary:")
	_, _ = fmt.Fprintf(w, "Total Fixtures: %d\n", summary.Total)
	_, _ = fmt.Fprintf(w, "Passed: %d, Failed: %d, Errored: %d, Muted: %d\n", summary.Passed, summary.Failed, summary.Errored, summary.Muted)
	if summary.Completeness.OK {
		_, _ = fmt.Fprintln(w, "Completeness: OK")
	} else {
		_, _ = fmt.Fprintf(w, "Completeness: %s\n", r.Completeness.Error())
	}
	_, _ = fmt.Fprintf(w, "Execution Time: %dms\n", summary.ExecutionTimeMs)
}

type reportJSON struct {
	RunID   string        `json:"run_id"`
	Root    string        `json:"root"`
	OK      bool          `json:"ok"`
	Summary reportSummary `json:"summary"`
	Results []Result      `json:"results"`
}

// WriteJSON writes the report as an indented JSON document.
func (r *Report) WriteJSON(w io.Writer) error {
	results := r.Results
	if results == nil {
		results = []Result{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(reportJSON{
		RunID:   r.RunID,
		Root:    r.Root,
		OK:      r.OK(),
		Summary: r.summarize(),
		Results: results,
	})
}
