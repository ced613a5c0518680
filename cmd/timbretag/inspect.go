package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/timbretag/fetch"
	"github.com/katalvlaran/timbretag/patch"
	"github.com/katalvlaran/timbretag/rank"
)

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Show category counts and mean magnitudes of the library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loader := fetch.NewLoader(a.fs, a.cfg.LibraryDir, fetch.WithLogger(a.logger))
			store, sum, err := loader.Load(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "%s: %d files, %d tagged, %d untagged\n",
				loader.Dir(), sum.Files, sum.Tagged, len(sum.Untagged))
			fmt.Fprintln(w, "CATEGORY\tDOMAIN\tPATCHES\tMEAN MAGNITUDE")
			for _, c := range patch.Categories() {
				vs := store.Vectors(c)
				fmt.Fprintf(w, "%s\t%s\t%d\t%.3f\n", c, c.Domain(), len(vs), rank.MeanMagnitude(vs))
			}
			for _, name := range sum.Untagged {
				fmt.Fprintf(w, "untagged\t\t%s\t\n", name)
			}
			return w.Flush()
		},
	}
}
