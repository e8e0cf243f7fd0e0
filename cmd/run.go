package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/goatx/fixturecheck"
	"github.com/goatx/fixturecheck/internal/execbody"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRunCmd(a *app) *cobra.Command {
	var format string
	var only []string
	var parallelism int

	runCmd := &cobra.Command{
		Use:   "run [flags] [-- command args...]",
		Short: "Run a command against every declared fixture",
		Long: `Run the given command once per catalog entry with the fixture path as an
argument ("{}" marks where it goes; otherwise it is appended). A non-zero exit
fails the fixture. The completeness check runs first and its failure is
reported alongside the per-fixture outcomes.

Without arguments the command configured under "exec" is used.`,
		Example: `  fixturecheck run --manifest catalog.yaml -- kotlinc-check {}
  fixturecheck run --only nested/insideLambda -- ./check.sh`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "json" {
				return fmt.Errorf("unknown format %q: want text or json", format)
			}

			argv := args
			if len(argv) == 0 {
				argv = a.cfg.Exec
			}
			body, err := execbody.New(argv...)
			if err != nil {
				return fmt.Errorf("%w: pass a command after -- or set exec in the config", err)
			}

			declared, err := a.declaredIDs()
			if err != nil {
				return err
			}
			cat, err := fixturecheck.DeclaredCatalog(body.TestBody(), declared...)
			if err != nil {
				return err
			}
			icfg, err := a.cfg.Index()
			if err != nil {
				return err
			}

			n := a.cfg.Parallelism
			if cmd.Flags().Changed("parallelism") {
				n = parallelism
			}
			suite, err := fixturecheck.NewSuite(icfg, cat,
				fixturecheck.WithLogger(a.logger),
				fixturecheck.WithParallelism(n))
			if err != nil {
				return err
			}

			var report *fixturecheck.Report
			if len(only) > 0 {
				report, err = a.runSelected(cmd, suite, only)
			} else {
				report, err = suite.Execute(cmd.Context())
			}
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if format == "json" {
				if err := report.WriteJSON(w); err != nil {
					return err
				}
			} else {
				report.WriteText(w)
			}
			if !report.OK() {
				return &exitError{code: exitFailure}
			}
			return nil
		},
	}

	runCmd.Flags().StringVarP(&format, "format", "f", "text", "report format: text, json")
	runCmd.Flags().StringArrayVar(&only, "only", nil, "run only this fixture identifier (repeatable); skips the completeness check")
	runCmd.Flags().IntVarP(&parallelism, "parallelism", "p", 1, "number of fixtures run concurrently")
	return runCmd
}

// runSelected runs the named entries one after another.
func (a *app) runSelected(cmd *cobra.Command, suite *fixturecheck.Suite, ids []string) (*fixturecheck.Report, error) {
	report := &fixturecheck.Report{
		RunID: uuid.NewString(),
		Root:  suite.Index().Root(),
	}
	start := time.Now()
	for _, id := range ids {
		out, err := suite.Runner().Run(cmd.Context(), id)
		var unknown *fixturecheck.UnknownFixtureError
		if errors.As(err, &unknown) {
			a.logger.Warn("fixture not in catalog", zap.String("id", id))
			out = fixturecheck.Outcome{Kind: fixturecheck.Errored, Diagnostic: err.Error(), Cause: err}
		} else if err != nil {
			return nil, err
		}
		report.Results = append(report.Results, fixturecheck.Result{ID: id, Outcome: out})
	}
	report.Duration = time.Since(start)
	return report, nil
}
