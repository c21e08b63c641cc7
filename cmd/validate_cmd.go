package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/specforge/specforge/internal/config"
	"github.com/specforge/specforge/internal/spec"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the transformation spec",
	Long: `Load the transformation spec and group it into per-table units,
reporting what a run would generate. Fails on missing required fields or
units whose rows name different source tables.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		loader, err := newLoader(cfg)
		if err != nil {
			return err
		}

		rows, err := loader.Load(cmd.Context())
		if err != nil {
			return err
		}

		units, err := spec.GroupRows(rows)
		if err != nil {
			return err
		}

		fmt.Printf("Spec OK: %d rows, %d target tables\n", len(rows), len(units))
		for _, u := range units {
			project, dataset, table := u.SourceRef()
			fmt.Printf("  %s  ←  %s.%s.%s  (%d columns)\n", u.Key, project, dataset, table, len(u.Rows))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
