package fixturecheck

import (
	"fmt"
	"strings"
)

// NotFoundError reports a fixture root that does not exist or is not a
// directory, or a fixture identifier that no file under the root maps to.
type NotFoundError struct {
	Root string
	ID   string
	Err  error
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("fixture %q not found under %s", e.ID, e.Root)
	}
	if e.Err != nil {
		return fmt.Sprintf("fixture root %s: %v", e.Root, e.Err)
	}
	return fmt.Sprintf("fixture root %s not found", e.Root)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// rootMissing reports whether the error concerns the root itself rather than
// a single identifier.
func (e *NotFoundError) rootMissing() bool { return e.ID == "" }

// CompletenessError lists every identifier on which the fixture tree and the
// catalog disagree. Both slices are sorted.
type CompletenessError struct {
	// Orphans are fixtures on disk with no catalog entry.
	Orphans []string
	// Missing are catalog entries with no fixture on disk.
	Missing []string
}

func (e *CompletenessError) Error() string {
	var b strings.Builder
	b.WriteString("catalog out of sync with fixtures")
	if len(e.Orphans) > 0 {
		fmt.Fprintf(&b, "; fixtures without test: %s", strings.Join(e.Orphans, ", "))
	}
	if len(e.Missing) > 0 {
		fmt.Fprintf(&b, "; tests without fixture: %s", strings.Join(e.Missing, ", "))
	}
	return b.String()
}

// UnknownFixtureError is returned when the runner is asked for an identifier
// the catalog does not declare.
type UnknownFixtureError struct {
	ID string
}

func (e *UnknownFixtureError) Error() string {
	return fmt.Sprintf("no catalog entry for fixture %q", e.ID)
}

// Collision is one identifier derived from more than one file.
type Collision struct {
	ID    string
	Paths []string
}

// DuplicateFixtureError reports every identifier that several files under
// the root derive. Collisions are sorted by ID, paths within each by path.
type DuplicateFixtureError struct {
	Collisions []Collision
}

func (e *DuplicateFixtureError) Error() string {
	parts := make([]string, len(e.Collisions))
	for i, c := range e.Collisions {
		parts[i] = fmt.Sprintf("%q derived from %s", c.ID, strings.Join(c.Paths, ", "))
	}
	return "duplicate fixture identifiers: " + strings.Join(parts, "; ")
}

// CatalogError reports an invalid catalog declaration.
type CatalogError struct {
	ID     string
	Reason string
}

func (e *CatalogError) Error() string {
	if e.ID == "" {
		return "invalid catalog entry: " + e.Reason
	}
	return fmt.Sprintf("invalid catalog entry %q: %s", e.ID, e.Reason)
}

// ConfigError reports an unusable index configuration.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config %s: %s", e.Field, e.Reason)
}

// AbortError marks a test body error as abnormal termination rather than an
// ordinary test failure. Use Abort to construct one.
type AbortError struct {
	Err error
}

func (e *AbortError) Error() string { return "aborted: " + e.Err.Error() }

func (e *AbortError) Unwrap() error { return e.Err }

// Abort wraps err so the runner reports the fixture as Errored instead of
// Failed. It returns nil for a nil err.
func Abort(err error) error {
	if err == nil {
		return nil
	}
	return &AbortError{Err: err}
}
