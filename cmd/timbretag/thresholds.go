package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/timbretag/config"
)

func newThresholdsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "thresholds",
		Short: "Print the effective outlier threshold table as YAML",
		Long: `Prints the default threshold table with every configured override
applied. The output can be pasted under "thresholds:" in the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := a.cfg.Thresholds()
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(config.RulesOf(table)); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}
