package declscan

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/goatx/fixturecheck/internal/test"
	"github.com/google/go-cmp/cmp"
)

func TestAnalyze(t *testing.T) {
	decls, err := Analyze(filepath.Join(test.FixtureDir(t), "catalogpkg"))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	want := []string{
		"emptyImportDirective",
		"emptyImportDirective2",
		"emptyPackageDirective",
		"emptyPackageDirective2",
		"manyImports",
		"nested/insideLambda",
	}
	if diff := cmp.Diff(want, IDs(decls)); diff != "" {
		t.Errorf("IDs mismatch (-want +got):\n%s", diff)
	}

	for _, d := range decls {
		if !strings.Contains(d.Position, "catalog") {
			t.Errorf("declaration %q has position %q", d.ID, d.Position)
		}
	}
}

func TestAnalyze_InvalidDeclarations(t *testing.T) {
	_, err := Analyze(filepath.Join(test.FixtureDir(t), "badcatalog"))
	if err == nil {
		t.Fatal("Analyze() error = nil, want invalid declarations")
	}

	msg := err.Error()
	for _, want := range []string{
		"fixture identifier is not a string constant",
		`fixture identifier "dup" already declared`,
		"identifiers passed as a slice cannot be resolved statically",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("Analyze() error missing %q:\n%s", want, msg)
		}
	}
}

func TestAnalyze_MissingPackage(t *testing.T) {
	if _, err := Analyze(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("Analyze() error = nil for a missing package")
	}
}
