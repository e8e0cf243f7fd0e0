// Package fixturetest runs a fixturecheck suite under go test: one subtest
// for the completeness check and one per catalog entry.
package fixturetest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goatx/fixturecheck"
	"golang.org/x/tools/txtar"
)

// AllFilesPresent is the name of the completeness subtest.
const AllFilesPresent = "AllFilesPresent"

type options struct {
	parallel bool
}

// Option configures Run.
type Option interface {
	apply(*options)
}

type optionFunc func(*options)

func (f optionFunc) apply(o *options) {
	f(o)
}

// Parallel marks every generated subtest with t.Parallel.
func Parallel() Option {
	return optionFunc(func(o *options) {
		o.parallel = true
	})
}

// Run registers the completeness check and one subtest per catalog entry,
// named by its identifier. Each subtest reports only its own fixture.
//
// Example:
//
//	func TestInsertBeforeExtractFunction(t *testing.T) {
//	    fixturetest.Run(t, suite)
//	}
func Run(t *testing.T, suite *fixturecheck.Suite, opts ...Option) {
	t.Helper()

	o := &options{}
	for _, opt := range opts {
		opt.apply(o)
	}

	t.Run(AllFilesPresent, func(t *testing.T) {
		if o.parallel {
			t.Parallel()
		}
		if err := suite.Verify(); err != nil {
			t.Fatal(Describe(err))
		}
	})

	for _, id := range suite.Catalog().IDs() {
		t.Run(id, func(t *testing.T) {
			if o.parallel {
				t.Parallel()
			}
			msg, fatal := check(t.Context(), suite, id)
			if fatal {
				t.Fatal(msg)
			}
			if msg != "" {
				t.Log(msg)
			}
		})
	}
}

// check runs one entry and returns the message to report and whether the
// subtest fails.
func check(ctx context.Context, suite *fixturecheck.Suite, id string) (string, bool) {
	out, err := suite.Runner().Run(ctx, id)
	if err != nil {
		return Describe(err), true
	}

	switch out.Kind {
	case fixturecheck.Passed:
		return "", false
	case fixturecheck.Muted:
		return "muted: " + out.Diagnostic, false
	case fixturecheck.Errored:
		var pe *fixturecheck.PanicError
		if errors.As(out.Cause, &pe) {
			return fmt.Sprintf("%s\n%s", out.Diagnostic, pe.Stack), true
		}
		return "error: " + out.Diagnostic, true
	default:
		return out.Diagnostic, true
	}
}

// Describe renders err for a test log. Completeness errors list one
// identifier per line.
func Describe(err error) string {
	var ce *fixturecheck.CompletenessError
	if !errors.As(err, &ce) {
		return err.Error()
	}

	var b strings.Builder
	b.WriteString("catalog out of sync with fixtures")
	if len(ce.Orphans) > 0 {
		b.WriteString("\nfixtures without test:")
		for _, id := range ce.Orphans {
			b.WriteString("\n  " + id)
		}
	}
	if len(ce.Missing) > 0 {
		b.WriteString("\ntests without fixture:")
		for _, id := range ce.Missing {
			b.WriteString("\n  " + id)
		}
	}
	return b.String()
}

// ReadFixture reads a fixture file or fails the test.
func ReadFixture(t testing.TB, path string) []byte {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read fixture %s: %v", path, err)
	}
	return b
}

// Archive parses a txtar fixture or fails the test.
func Archive(t testing.TB, path string) *txtar.Archive {
	t.Helper()
	ar, err := txtar.ParseFile(path)
	if err != nil {
		t.Fatalf("failed to parse archive %s: %v", path, err)
	}
	return ar
}

// Section returns the named file of a txtar archive.
func Section(ar *txtar.Archive, name string) ([]byte, bool) {
	for _, f := range ar.Files {
		if f.Name == name {
			return f.Data, true
		}
	}
	return nil, false
}

// WriteTree creates files under a fresh temporary directory and returns it.
// Keys are slash separated paths.
func WriteTree(t testing.TB, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}
