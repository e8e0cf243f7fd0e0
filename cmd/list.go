package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/goatx/fixturecheck/internal/manifest"
	"github.com/goatx/fixturecheck/internal/strcase"
	"github.com/spf13/cobra"
)

type listedFixture struct {
	ID       string `json:"id"`
	Path     string `json:"path"`
	TestName string `json:"test_name"`
}

func newListCmd(a *app) *cobra.Command {
	var format string
	var names bool

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the fixtures discovered under the root",
		Long: `Scan the fixture root and print one identifier per line in a stable order.
Use --format yaml to produce a manifest that declares every discovered fixture.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ix, err := a.index()
			if err != nil {
				return err
			}
			fixtures, err := ix.Scan()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch format {
			case "text":
				for _, f := range fixtures {
					if names {
						_, _ = fmt.Fprintf(w, "%s\t%s\n", f.ID, strcase.ToTestName(f.ID))
					} else {
						_, _ = fmt.Fprintln(w, f.ID)
					}
				}
				return nil

			case "json":
				out := make([]listedFixture, len(fixtures))
				for i, f := range fixtures {
					out[i] = listedFixture{ID: f.ID, Path: f.RelPath, TestName: strcase.ToTestName(f.ID)}
				}
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(out)

			case "yaml":
				m := &manifest.Manifest{Fixtures: make([]string, len(fixtures))}
				for i, f := range fixtures {
					m.Fixtures[i] = f.ID
				}
				return manifest.Encode(w, m)
			}
			return fmt.Errorf("unknown format %q: want text, json or yaml", format)
		},
	}

	listCmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json, yaml")
	listCmd.Flags().BoolVar(&names, "names", false, "also print the test name derived from each identifier")
	return listCmd
}
