package fixturecheck

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"testing"
	"time"
)

var ktPattern = regexp.MustCompile(`^(.+)\.kt$`)

// writeTree creates files (slash separated paths relative to the returned
// root) with the given contents.
func writeTree(t *testing.T, files map[string]string) string {
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

func ktConfig(root string) Config {
	return Config{Root: root, Pattern: ktPattern, Recursive: true}
}

func newTestIndex(t *testing.T, cfg Config) *Index {
	t.Helper()
	ix, err := NewIndex(cfg)
	if err != nil {
		t.Fatalf("NewIndex() error = %v", err)
	}
	return ix
}

func committedFixtures(t *testing.T) string {
	t.Helper()
	return filepath.Join("testdata", "insertBeforeExtractFunction")
}

func passBody(context.Context, string) error { return nil }

// fakeClock advances by step on every reading.
type fakeClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}
