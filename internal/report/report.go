// Package report renders human-readable run summaries for the CLI.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/specforge/specforge/internal/pipeline"
	"github.com/specforge/specforge/internal/state"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// RunSummary renders the outcome of a completed run.
func RunSummary(res *pipeline.Result) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Run complete") + "\n")
	b.WriteString(fmt.Sprintf("  Units generated: %d\n", res.Units))
	b.WriteString(fmt.Sprintf("  Files written:   %d (%d changed)\n", len(res.Files), res.FilesChanged))

	if res.Committed {
		b.WriteString(successStyle.Render(fmt.Sprintf("  Pushed commit %s", shortHash(res.CommitHash))) + "\n")
	} else {
		b.WriteString(dimStyle.Render("  No changes detected, nothing committed") + "\n")
	}
	return b.String()
}

// LastRun renders the persisted record of the previous run.
func LastRun(rec *state.RunRecord) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Last run") + "\n")
	b.WriteString(fmt.Sprintf("  Started:  %s\n", rec.StartedAt.Format("2006-01-02 15:04:05")))
	b.WriteString(fmt.Sprintf("  Finished: %s\n", rec.FinishedAt.Format("2006-01-02 15:04:05")))
	b.WriteString(fmt.Sprintf("  Units: %d, files: %d (%d changed)\n", rec.Units, rec.FilesWritten, rec.FilesChanged))

	switch {
	case rec.Error != "":
		b.WriteString(errStyle.Render("  Failed: "+rec.Error) + "\n")
	case rec.Committed:
		b.WriteString(successStyle.Render("  Pushed commit "+shortHash(rec.CommitHash)) + "\n")
	default:
		b.WriteString(dimStyle.Render("  No changes, nothing committed") + "\n")
	}
	return b.String()
}

func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
