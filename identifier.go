package fixturecheck

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/goatx/fixturecheck/internal/strcase"
)

// deriveID maps a matched file to its identifier. relDir is the slash
// separated directory of the file relative to the root ("" or "." for the
// root itself). ok is false when the name does not match the pattern or is
// excluded.
func (c Config) deriveID(relDir, name string) (id string, ok bool) {
	m := c.Pattern.FindStringSubmatchIndex(name)
	if m == nil {
		return "", false
	}
	if c.Exclude != nil && c.Exclude.MatchString(name) {
		return "", false
	}

	var stem string
	if len(m) >= 4 && m[2] >= 0 {
		stem = name[m[2]:m[3]]
	} else {
		stem = strings.TrimSuffix(name, filepath.Ext(name))
	}
	if stem == "" {
		return "", false
	}

	stem = strcase.ToIdentifier(stem)
	if relDir == "" || relDir == "." {
		return stem, true
	}

	parts := strings.Split(relDir, "/")
	for i, p := range parts {
		parts[i] = strcase.ToIdentifier(p)
	}
	return path.Join(path.Join(parts...), stem), true
}

// splitID returns the directory part and the stem of an identifier.
func splitID(id string) (dir, stem string) {
	dir, stem = path.Split(id)
	return strings.TrimSuffix(dir, "/"), stem
}
