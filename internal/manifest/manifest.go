// Package manifest reads and writes YAML files declaring catalog identifiers.
//
//	fixtures:
//	  - emptyImportDirective
//	  - nested/insideLambda
package manifest

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest is the list of declared fixture identifiers, in declaration order.
type Manifest struct {
	Fixtures []string `yaml:"fixtures"`
}

// Load reads the manifest at path.
func Load(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest %s: %w", path, err)
	}
	defer f.Close()

	m, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return m, nil
}

// Decode parses a manifest and rejects empty or repeated identifiers.
func Decode(r io.Reader) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	seen := make(map[string]bool, len(m.Fixtures))
	for i, id := range m.Fixtures {
		if id == "" {
			return nil, fmt.Errorf("fixtures[%d]: empty identifier", i)
		}
		if seen[id] {
			return nil, fmt.Errorf("fixtures[%d]: %q declared more than once", i, id)
		}
		seen[id] = true
	}
	return &m, nil
}

// Encode writes m as YAML.
func Encode(w io.Writer, m *Manifest) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return err
	}
	return enc.Close()
}
