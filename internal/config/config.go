// Package config loads fixturecheck.yaml.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"github.com/goatx/fixturecheck"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = "fixturecheck.yaml"

// Config is the on-disk configuration shared by the CLI commands.
type Config struct {
	Root      string `yaml:"root"`
	Pattern   string `yaml:"pattern"`
	Exclude   string `yaml:"exclude"`
	Recursive bool   `yaml:"recursive"`
	MaxDepth  int    `yaml:"max_depth"`
	Backend   string `yaml:"backend"`

	Catalog CatalogConfig `yaml:"catalog"`

	// Exec is the command run per fixture by `fixturecheck run`; "{}" is
	// replaced by the fixture path.
	Exec        []string `yaml:"exec"`
	Parallelism int      `yaml:"parallelism"`

	Logging LoggingConfig `yaml:"logging"`
}

// CatalogConfig names where declared identifiers come from. At most one
// source may be set.
type CatalogConfig struct {
	Manifest string `yaml:"manifest"`
	Package  string `yaml:"package"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Root:        "testdata",
		Pattern:     `^(.+)\.kt$`,
		Recursive:   true,
		Parallelism: 1,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads the config at path on top of Default. Relative paths inside
// the file are resolved against the file's directory. Unknown keys are an
// error.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config %s: %w", path, err)
	}
	defer f.Close()

	cfg := Default()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	base := filepath.Dir(path)
	cfg.Root = resolve(base, cfg.Root)
	cfg.Catalog.Manifest = resolve(base, cfg.Catalog.Manifest)
	cfg.Catalog.Package = resolve(base, cfg.Catalog.Package)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field combinations that cannot be expressed in YAML.
func (c *Config) Validate() error {
	if c.Root == "" {
		return errors.New("root must not be empty")
	}
	if c.Catalog.Manifest != "" && c.Catalog.Package != "" {
		return errors.New("catalog.manifest and catalog.package are mutually exclusive")
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative, got %d", c.MaxDepth)
	}
	if c.Parallelism < 0 {
		return fmt.Errorf("parallelism must not be negative, got %d", c.Parallelism)
	}
	if _, err := c.Index(); err != nil {
		return err
	}
	return nil
}

// Index converts the file representation into an index configuration.
func (c *Config) Index() (fixturecheck.Config, error) {
	pattern, err := regexp.Compile(c.Pattern)
	if err != nil {
		return fixturecheck.Config{}, fmt.Errorf("invalid pattern %q: %w", c.Pattern, err)
	}

	var exclude *regexp.Regexp
	if c.Exclude != "" {
		exclude, err = regexp.Compile(c.Exclude)
		if err != nil {
			return fixturecheck.Config{}, fmt.Errorf("invalid exclude %q: %w", c.Exclude, err)
		}
	}

	return fixturecheck.Config{
		Root:      c.Root,
		Pattern:   pattern,
		Exclude:   exclude,
		Recursive: c.Recursive,
		MaxDepth:  c.MaxDepth,
		Backend:   c.Backend,
	}, nil
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
