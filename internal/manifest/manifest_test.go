package manifest

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr string
	}{
		{name: "ordered", input: "fixtures:\n  - b\n  - a/c\n", want: []string{"b", "a/c"}},
		{name: "empty document", input: "", want: nil},
		{name: "duplicate", input: "fixtures: [a, a]\n", wantErr: `"a" declared more than once`},
		{name: "empty identifier", input: "fixtures: ['']\n", wantErr: "empty identifier"},
		{name: "unknown key", input: "tests: [a]\n", wantErr: "field tests not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m, err := Decode(strings.NewReader(tt.input))
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Decode() error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, m.Fixtures); diff != "" {
				t.Errorf("Fixtures mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncodeLoad(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Encode(&buf, &Manifest{Fixtures: []string{"emptyImportDirective", "nested/insideLambda"}}); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	want := "fixtures:\n  - emptyImportDirective\n  - nested/insideLambda\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("Encode() mismatch (-want +got):\n%s", diff)
	}

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff([]string{"emptyImportDirective", "nested/insideLambda"}, m.Fixtures); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}
