/*
Copyright © 2025 Honoka Toda, Shinya Ishitobi

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goatx/fixturecheck"
	"github.com/goatx/fixturecheck/internal/config"
	"github.com/goatx/fixturecheck/internal/declscan"
	"github.com/goatx/fixturecheck/internal/logging"
	"github.com/goatx/fixturecheck/internal/manifest"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitConfig  = 2
)

// exitError carries a process exit code. An empty message means the command
// already reported the problem.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

// app holds the state shared by the commands of one invocation.
type app struct {
	configPath string
	logLevel   string

	root      string
	pattern   string
	exclude   string
	recursive bool
	maxDepth  int
	backend   string
	manifest  string
	pkg       string

	cfg    *config.Config
	logger *zap.Logger
}

// NewRootCmd builds the fixturecheck command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "fixturecheck",
		Short: "Discover test fixtures and keep them in sync with their catalog",
		Long: `fixturecheck enumerates fixture files under a root directory, checks that they
correspond one-to-one with the declared catalog of test identifiers, and runs a
test body per fixture, reporting each outcome independently.

The catalog is declared in a YAML manifest (--manifest) or extracted from the
fixturecheck.NewEntry / fixturecheck.EntriesFor calls of a Go package (--package).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "config file (default ./"+config.DefaultFile+" when present)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&a.root, "root", "", "fixture root directory")
	flags.StringVar(&a.pattern, "pattern", "", "regular expression matched against fixture file names")
	flags.StringVar(&a.exclude, "exclude", "", "regular expression of file names to skip")
	flags.BoolVar(&a.recursive, "recursive", false, "descend into subdirectories of the root")
	flags.IntVar(&a.maxDepth, "max-depth", 0, "maximum recursion depth (0 = unlimited)")
	flags.StringVar(&a.backend, "backend", "", "target backend for IGNORE_BACKEND directives")
	flags.StringVar(&a.manifest, "manifest", "", "YAML manifest declaring the catalog")
	flags.StringVar(&a.pkg, "package", "", "Go package declaring the catalog")

	rootCmd.AddCommand(
		newListCmd(a),
		newVerifyCmd(a),
		newRunCmd(a),
		newWatchCmd(a),
	)
	return rootCmd
}

// Execute runs the command tree and maps the result to an exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}

	var ee *exitError
	if errors.As(err, &ee) {
		if ee.msg != "" {
			_, _ = fmt.Fprintf(stderr, "fixturecheck: %s\n", ee.msg)
		}
		return ee.code
	}
	_, _ = fmt.Fprintf(stderr, "fixturecheck: %v\n", err)
	return exitConfig
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("root") {
		cfg.Root = a.root
	}
	if flags.Changed("pattern") {
		cfg.Pattern = a.pattern
	}
	if flags.Changed("exclude") {
		cfg.Exclude = a.exclude
	}
	if flags.Changed("recursive") {
		cfg.Recursive = a.recursive
	}
	if flags.Changed("max-depth") {
		cfg.MaxDepth = a.maxDepth
	}
	if flags.Changed("backend") {
		cfg.Backend = a.backend
	}
	if flags.Changed("manifest") {
		cfg.Catalog = config.CatalogConfig{Manifest: a.manifest}
	}
	if flags.Changed("package") {
		cfg.Catalog = config.CatalogConfig{Package: a.pkg}
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

func (a *app) loadConfig() (*config.Config, error) {
	if a.configPath != "" {
		return config.Load(a.configPath)
	}
	if _, err := os.Stat(config.DefaultFile); err == nil {
		return config.Load(config.DefaultFile)
	}
	return config.Default(), nil
}

func (a *app) index() (*fixturecheck.Index, error) {
	icfg, err := a.cfg.Index()
	if err != nil {
		return nil, err
	}
	return fixturecheck.NewIndex(icfg)
}

// declaredIDs reads the catalog identifiers from the configured source.
func (a *app) declaredIDs() ([]string, error) {
	switch {
	case a.cfg.Catalog.Manifest != "":
		m, err := manifest.Load(a.cfg.Catalog.Manifest)
		if err != nil {
			return nil, err
		}
		a.logger.Debug("catalog loaded from manifest",
			zap.String("manifest", a.cfg.Catalog.Manifest),
			zap.Int("entries", len(m.Fixtures)))
		return m.Fixtures, nil

	case a.cfg.Catalog.Package != "":
		decls, err := declscan.Analyze(a.cfg.Catalog.Package)
		if err != nil {
			return nil, err
		}
		a.logger.Debug("catalog extracted from package",
			zap.String("package", a.cfg.Catalog.Package),
			zap.Int("entries", len(decls)))
		return declscan.IDs(decls), nil
	}
	return nil, errors.New("no catalog source: set catalog.manifest or catalog.package, or pass --manifest or --package")
}
