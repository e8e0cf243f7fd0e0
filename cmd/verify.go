package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/goatx/fixturecheck"
	"github.com/goatx/fixturecheck/fixturetest"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newVerifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check that fixtures and catalog entries correspond one-to-one",
		Long: `Compare the fixtures discovered under the root with the identifiers declared
by the catalog. Every fixture without a test and every test without a fixture is
reported; the command exits with status 1 when there is any.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.verify(cmd.OutOrStdout())
		},
	}
}

// verify runs one completeness check and writes its result to w.
func (a *app) verify(w io.Writer) error {
	declared, err := a.declaredIDs()
	if err != nil {
		return err
	}
	ix, err := a.index()
	if err != nil {
		return err
	}
	discovered, err := ix.List()
	if err != nil {
		return err
	}

	err = fixturecheck.Compare(discovered, declared)
	var ce *fixturecheck.CompletenessError
	if errors.As(err, &ce) {
		a.logger.Warn("catalog out of sync with fixtures",
			zap.Strings("orphans", ce.Orphans),
			zap.Strings("missing", ce.Missing))
		_, _ = fmt.Fprintln(w, fixturetest.Describe(ce))
		return &exitError{code: exitFailure}
	}
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "OK: %d fixtures match the catalog\n", len(discovered))
	return nil
}
