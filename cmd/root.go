package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	logLevel string
	version  = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "specforge",
	Short: "Specforge — transformation specs to version-controlled SQL models",
	Long: `Specforge turns a tabular table-to-table transformation spec into
generated BigQuery SQL models and pushes them to a dbt repository.

Each row of the spec maps one source column to one target column; rows
sharing a target table are generated together as one model.`,
}

func Execute() {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.specforge/specforge.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
}
