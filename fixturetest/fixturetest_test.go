package fixturetest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/goatx/fixturecheck"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/tools/txtar"
)

func insertionBody(_ context.Context, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fixturecheck.Abort(err)
	}
	if len(src) > 0 && !bytes.Contains(src, []byte("<caret>")) {
		return fmt.Errorf("%s: no <caret> marker", filepath.Base(path))
	}
	return nil
}

var insertionSuite = func() *fixturecheck.Suite {
	cat := fixturecheck.MustCatalog(fixturecheck.EntriesFor(insertionBody,
		"emptyImportDirective",
		"emptyImportDirective2",
		"emptyPackageDirective",
		"emptyPackageDirective2",
		"manyImports",
		"nested/insideLambda",
	)...)
	suite, err := fixturecheck.NewSuite(fixturecheck.Config{
		Root:      filepath.Join("..", "testdata", "insertBeforeExtractFunction"),
		Pattern:   regexp.MustCompile(`^(.+)\.kt$`),
		Recursive: true,
		Backend:   "JVM",
	}, cat)
	if err != nil {
		panic(err)
	}
	return suite
}()

func TestInsertBeforeExtractFunction(t *testing.T) {
	Run(t, insertionSuite)
}

func uppercaseBody(_ context.Context, path string) error {
	ar, err := txtar.ParseFile(path)
	if err != nil {
		return fixturecheck.Abort(err)
	}
	input, ok := Section(ar, "input")
	if !ok {
		return fixturecheck.Abort(errors.New("archive has no input section"))
	}
	expected, ok := Section(ar, "expected")
	if !ok {
		return fixturecheck.Abort(errors.New("archive has no expected section"))
	}
	if diff := cmp.Diff(string(expected), strings.ToUpper(string(input))); diff != "" {
		return fmt.Errorf("mismatch (-want +got):\n%s", diff)
	}
	return nil
}

func TestUppercaseArchives(t *testing.T) {
	cat := fixturecheck.MustCatalog(fixturecheck.EntriesFor(uppercaseBody, "blank", "hello", "multiline")...)
	suite, err := fixturecheck.NewSuite(fixturecheck.Config{
		Root:    filepath.Join("..", "testdata", "uppercase"),
		Pattern: regexp.MustCompile(`^(.+)\.txtar$`),
	}, cat)
	if err != nil {
		t.Fatalf("NewSuite() error = %v", err)
	}
	Run(t, suite, Parallel())
}

func TestArchive(t *testing.T) {
	t.Parallel()

	ar := Archive(t, filepath.Join("..", "testdata", "uppercase", "hello.txtar"))
	if got := strings.TrimSpace(string(ar.Comment)); got != "Upper-cases a single line." {
		t.Errorf("Comment = %q", got)
	}
	input, ok := Section(ar, "input")
	if !ok || string(input) != "hello, fixtures\n" {
		t.Errorf("Section(input) = %q, %v", input, ok)
	}
	if _, ok := Section(ar, "missing"); ok {
		t.Error("Section(missing) reported a section that does not exist")
	}
}

func TestCheck(t *testing.T) {
	t.Parallel()

	root := WriteTree(t, map[string]string{
		"pass.kt":  "",
		"fail.kt":  "",
		"err.kt":   "",
		"panic.kt": "",
		"muted.kt": "// IGNORE_BACKEND: JS\n",
	})
	cat := fixturecheck.MustCatalog(
		fixturecheck.NewEntry("pass", func(context.Context, string) error { return nil }),
		fixturecheck.NewEntry("fail", func(context.Context, string) error { return errors.New("want 1, got 2") }),
		fixturecheck.NewEntry("err", func(context.Context, string) error { return fixturecheck.Abort(errors.New("crash")) }),
		fixturecheck.NewEntry("panic", func(context.Context, string) error { panic("boom") }),
		fixturecheck.NewEntry("muted", func(context.Context, string) error { return errors.New("known bug") }),
	)
	suite, err := fixturecheck.NewSuite(fixturecheck.Config{
		Root:    root,
		Pattern: regexp.MustCompile(`^(.+)\.kt$`),
		Backend: "JS",
	}, cat)
	if err != nil {
		t.Fatalf("NewSuite() error = %v", err)
	}

	tests := []struct {
		id        string
		wantFatal bool
		wantMsg   string
	}{
		{id: "pass", wantFatal: false, wantMsg: ""},
		{id: "fail", wantFatal: true, wantMsg: "want 1, got 2"},
		{id: "err", wantFatal: true, wantMsg: "error: aborted: crash"},
		{id: "panic", wantFatal: true, wantMsg: "panic: boom\n"},
		{id: "muted", wantFatal: false, wantMsg: "muted: known bug"},
		{id: "undeclared", wantFatal: true, wantMsg: `no catalog entry for fixture "undeclared"`},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			t.Parallel()

			msg, fatal := check(context.Background(), suite, tt.id)
			if fatal != tt.wantFatal {
				t.Errorf("check(%q) fatal = %v, want %v", tt.id, fatal, tt.wantFatal)
			}
			if !strings.HasPrefix(msg, tt.wantMsg) {
				t.Errorf("check(%q) msg = %q, want prefix %q", tt.id, msg, tt.wantMsg)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("verify: %w", &fixturecheck.CompletenessError{
		Orphans: []string{"x"},
		Missing: []string{"y", "z"},
	})
	want := "catalog out of sync with fixtures\nfixtures without test:\n  x\ntests without fixture:\n  y\n  z"
	if diff := cmp.Diff(want, Describe(err)); diff != "" {
		t.Errorf("Describe() mismatch (-want +got):\n%s", diff)
	}

	plain := errors.New("plain")
	if got := Describe(plain); got != "plain" {
		t.Errorf("Describe(plain) = %q", got)
	}
}
