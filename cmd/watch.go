package cmd

import (
	"context"
	"errors"
	"time"

	"github.com/goatx/fixturecheck/internal/watch"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newWatchCmd(a *app) *cobra.Command {
	var debounce time.Duration

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-run the completeness check whenever the fixture tree changes",
		Long: `Run verify once, then again after every burst of changes under the fixture
root, until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			check := func(context.Context) {
				err := a.verify(w)
				var ee *exitError
				if err != nil && !errors.As(err, &ee) {
					a.logger.Error("verify failed", zap.Error(err))
				}
			}

			check(cmd.Context())
			return watch.Run(cmd.Context(), watch.Config{
				Root:      a.cfg.Root,
				Recursive: a.cfg.Recursive,
				MaxDepth:  a.cfg.MaxDepth,
				Debounce:  debounce,
				Logger:    a.logger,
			}, check)
		},
	}

	watchCmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period before re-running")
	return watchCmd
}
