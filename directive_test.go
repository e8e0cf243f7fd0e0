package fixturecheck

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestIgnoredBackends(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{name: "line comment", content: "// IGNORE_BACKEND: JS, JVM_IR\nfun a() {}\n", want: []string{"JS", "JVM_IR"}},
		{name: "hash comment no space", content: "#IGNORE_BACKEND:JS\n", want: []string{"JS"}},
		{name: "several directives", content: "// IGNORE_BACKEND: JS\n// IGNORE_BACKEND: NATIVE\n", want: []string{"JS", "NATIVE"}},
		{name: "empty list", content: "// IGNORE_BACKEND: , \n", want: nil},
		{name: "none", content: "fun a() {}\n", want: nil},
		{name: "empty file", content: "", want: nil},
		{name: "line longer than a scanner token", content: strings.Repeat("x", 70000) + "\n// IGNORE_BACKEND: JS\n", want: []string{"JS"}},
		{name: "no trailing newline", content: "// IGNORE_BACKEND: JVM", want: []string{"JVM"}},
		{name: "too deep", content: strings.Repeat("\n", directiveScanLines) + "// IGNORE_BACKEND: JS\n", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := writeTree(t, map[string]string{"f.kt": tt.content})
			got, err := ignoredBackends(filepath.Join(root, "f.kt"))
			if err != nil {
				t.Fatalf("ignoredBackends() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ignoredBackends() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMutedFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		backend string
		ignored []string
		want    bool
	}{
		{"JS", []string{"JS"}, true},
		{"JVM", []string{"JS"}, false},
		{"JVM", []string{"ANY"}, true},
		{"jvm_ir", []string{"JVM_IR"}, true},
		{"JS", nil, false},
	}

	for _, tt := range tests {
		if got := mutedFor(tt.backend, tt.ignored); got != tt.want {
			t.Errorf("mutedFor(%q, %v) = %v, want %v", tt.backend, tt.ignored, got, tt.want)
		}
	}
}
