package fixturecheck

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/goatx/fixturecheck/internal/strcase"
)

var errNotDir = errors.New("not a directory")

// Config describes where fixtures live and how their files are named. The
// catalog author and the index must agree on it; a mismatch surfaces as
// spurious orphans or missing entries during verification.
type Config struct {
	// Root is the fixture directory. Relative roots are resolved against the
	// working directory when the index is created.
	Root string
	// Pattern is matched against file names (not paths). When it has a
	// capture group, group 1 is the identifier stem.
	Pattern *regexp.Regexp
	// Exclude drops files whose name it matches. Optional.
	Exclude *regexp.Regexp
	// Recursive descends into subdirectories of Root.
	Recursive bool
	// MaxDepth bounds recursion: 1 scans Root and its direct subdirectories.
	// Zero means unlimited. Ignored unless Recursive is set.
	MaxDepth int
	// Backend enables IGNORE_BACKEND directives for the named backend.
	// Empty disables directive handling.
	Backend string
}

// Fixture is one discovered fixture file.
type Fixture struct {
	ID      string
	RelPath string // slash separated, relative to the root
	Path    string // absolute
}

// Index enumerates fixtures under a root. It holds no scan results; every
// call reads the filesystem again.
type Index struct {
	cfg Config
}

// NewIndex validates cfg and returns an index over it.
func NewIndex(cfg Config) (*Index, error) {
	if cfg.Root == "" {
		return nil, &ConfigError{Field: "root", Reason: "must not be empty"}
	}
	if cfg.Pattern == nil {
		return nil, &ConfigError{Field: "pattern", Reason: "must not be nil"}
	}
	if cfg.MaxDepth < 0 {
		return nil, &ConfigError{Field: "max_depth", Reason: fmt.Sprintf("must not be negative, got %d", cfg.MaxDepth)}
	}

	abs, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve fixture root %s: %w", cfg.Root, err)
	}
	cfg.Root = abs
	return &Index{cfg: cfg}, nil
}

// Config returns the configuration with the root made absolute.
func (ix *Index) Config() Config { return ix.cfg }

// Root returns the absolute fixture root.
func (ix *Index) Root() string { return ix.cfg.Root }

// CheckRoot reports a *NotFoundError when the root is absent or not a directory.
func (ix *Index) CheckRoot() error {
	info, err := os.Stat(ix.cfg.Root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &NotFoundError{Root: ix.cfg.Root}
		}
		return &NotFoundError{Root: ix.cfg.Root, Err: err}
	}
	if !info.IsDir() {
		return &NotFoundError{Root: ix.cfg.Root, Err: errNotDir}
	}
	return nil
}

// Scan walks the root and returns the matching fixtures sorted by relative path.
func (ix *Index) Scan() ([]Fixture, error) {
	if err := ix.CheckRoot(); err != nil {
		return nil, err
	}

	root := ix.cfg.Root
	// WalkDir does not descend into a root that is itself a symlink.
	walkRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, &NotFoundError{Root: root, Err: err}
	}

	var fixtures []Fixture
	seen := make(map[string][]string)

	err = filepath.WalkDir(walkRoot, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		rel, err := filepath.Rel(walkRoot, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel == "." {
				return nil
			}
			if !ix.descend(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		relDir := pathDir(rel)
		id, ok := ix.cfg.deriveID(relDir, d.Name())
		if !ok {
			return nil
		}
		seen[id] = append(seen[id], rel)
		fixtures = append(fixtures, Fixture{ID: id, RelPath: rel, Path: filepath.Join(root, filepath.FromSlash(rel))})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan fixtures in %s: %w", root, err)
	}

	if err := duplicates(seen); err != nil {
		return nil, err
	}

	sort.Slice(fixtures, func(i, j int) bool { return fixtures[i].RelPath < fixtures[j].RelPath })
	return fixtures, nil
}

// List returns the identifiers of Scan in the same order.
func (ix *Index) List() ([]string, error) {
	fixtures, err := ix.Scan()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(fixtures))
	for i, f := range fixtures {
		ids[i] = f.ID
	}
	return ids, nil
}

// Resolve maps an identifier back to its file. Only the directories the
// identifier names are read.
func (ix *Index) Resolve(id string) (Fixture, error) {
	if err := ix.CheckRoot(); err != nil {
		return Fixture{}, err
	}

	dirID, _ := splitID(id)
	dirs, err := ix.resolveDirs(dirID)
	if err != nil {
		return Fixture{}, &NotFoundError{Root: ix.cfg.Root, ID: id, Err: err}
	}

	var found []Fixture
	for _, d := range dirs {
		if d.rel != "" && !ix.descend(d.rel) {
			continue
		}
		entries, err := os.ReadDir(d.abs)
		if err != nil {
			return Fixture{}, &NotFoundError{Root: ix.cfg.Root, ID: id, Err: err}
		}
		for _, e := range entries {
			if !e.Type().IsRegular() {
				continue
			}
			derived, ok := ix.cfg.deriveID(d.rel, e.Name())
			if !ok || derived != id {
				continue
			}
			rel := e.Name()
			if d.rel != "" {
				rel = d.rel + "/" + e.Name()
			}
			found = append(found, Fixture{ID: id, RelPath: rel, Path: filepath.Join(d.abs, e.Name())})
		}
	}

	switch len(found) {
	case 0:
		return Fixture{}, &NotFoundError{Root: ix.cfg.Root, ID: id}
	case 1:
		return found[0], nil
	default:
		paths := make([]string, len(found))
		for i, f := range found {
			paths[i] = f.RelPath
		}
		sort.Strings(paths)
		return Fixture{}, &DuplicateFixtureError{Collisions: []Collision{{ID: id, Paths: paths}}}
	}
}

type fixtureDir struct {
	abs string
	rel string // slash separated; "" for the root
}

// resolveDirs walks the sanitized directory components of an identifier
// down from the root. Several directories on disk may sanitize to the same
// component, so every matching branch is followed.
func (ix *Index) resolveDirs(dirID string) ([]fixtureDir, error) {
	dirs := []fixtureDir{{abs: ix.cfg.Root}}
	if dirID == "" {
		return dirs, nil
	}

	for _, want := range strings.Split(dirID, "/") {
		var next []fixtureDir
		for _, d := range dirs {
			entries, err := os.ReadDir(d.abs)
			if err != nil {
				return nil, err
			}
			for _, e := range entries {
				if !e.IsDir() || strcase.ToIdentifier(e.Name()) != want {
					continue
				}
				rel := e.Name()
				if d.rel != "" {
					rel = d.rel + "/" + e.Name()
				}
				next = append(next, fixtureDir{abs: filepath.Join(d.abs, e.Name()), rel: rel})
			}
		}
		if len(next) == 0 {
			return nil, fs.ErrNotExist
		}
		dirs = next
	}
	return dirs, nil
}

// descend reports whether the directory at rel (slash separated, relative to
// the root) lies within the configured recursion depth.
func (ix *Index) descend(rel string) bool {
	if !ix.cfg.Recursive {
		return false
	}
	if ix.cfg.MaxDepth == 0 {
		return true
	}
	return strings.Count(rel, "/")+1 <= ix.cfg.MaxDepth
}

func pathDir(rel string) string {
	i := strings.LastIndex(rel, "/")
	if i < 0 {
		return ""
	}
	return rel[:i]
}

func duplicates(seen map[string][]string) error {
	var collisions []Collision
	for id, paths := range seen {
		if len(paths) > 1 {
			sorted := append([]string(nil), paths...)
			sort.Strings(sorted)
			collisions = append(collisions, Collision{ID: id, Paths: sorted})
		}
	}
	if len(collisions) == 0 {
		return nil
	}
	sort.Slice(collisions, func(i, j int) bool { return collisions[i].ID < collisions[j].ID })
	return &DuplicateFixtureError{Collisions: collisions}
}
