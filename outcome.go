package fixturecheck

import (
	"encoding/json"
	"fmt"
	"time"
)

// Kind tags an Outcome.
type Kind int

const (
	Passed Kind = iota
	Failed
	Errored
	// Muted is a failure the fixture declared as expected for the configured
	// backend. It counts as success.
	Muted
)

func (k Kind) String() string {
	switch k {
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	case Errored:
		return "errored"
	case Muted:
		return "muted"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText renders the kind name, so JSON reports carry "passed" rather
// than an integer.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Outcome is the normalized result of one test body invocation.
type Outcome struct {
	Kind Kind
	// Diagnostic describes a failure. Empty for Passed.
	Diagnostic string
	// Cause is the underlying error for Failed, Errored and Muted outcomes.
	Cause    error
	Duration time.Duration
}

// OK reports whether the outcome counts as success.
func (o Outcome) OK() bool { return o.Kind == Passed || o.Kind == Muted }

func (o Outcome) String() string {
	if o.Diagnostic == "" {
		return o.Kind.String()
	}
	return fmt.Sprintf("%s: %s", o.Kind, o.Diagnostic)
}

type outcomeJSON struct {
	Kind       Kind   `json:"kind"`
	Diagnostic string `json:"diagnostic,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

func (o Outcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(outcomeJSON{
		Kind:       o.Kind,
		Diagnostic: o.Diagnostic,
		DurationMs: o.Duration.Milliseconds(),
	})
}

// Result is the outcome of one catalog entry in a batch run.
type Result struct {
	ID      string  `json:"id"`
	Outcome Outcome `json:"outcome"`
}
