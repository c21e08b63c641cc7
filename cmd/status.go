package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/specforge/specforge/internal/report"
	"github.com/specforge/specforge/internal/state"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the outcome of the last run",
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := state.Load("")
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				fmt.Println("No runs recorded yet.")
				return nil
			}
			return err
		}
		fmt.Print(report.LastRun(rec))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
