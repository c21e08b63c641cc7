package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/specforge/specforge/internal/config"
	"github.com/specforge/specforge/internal/gitsync"
	"github.com/specforge/specforge/internal/lock"
	"github.com/specforge/specforge/internal/logging"
	"github.com/specforge/specforge/internal/pipeline"
	"github.com/specforge/specforge/internal/report"
	"github.com/specforge/specforge/internal/state"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Generate SQL models and push them to the repository",
	Long: `Run the full pipeline: load the transformation spec, group it into
per-table units, reset the working copy to the remote branch tip, generate
one SQL model per unit, then stage, commit and push whatever changed.

A run that regenerates byte-identical models makes no commit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		logger, err := logging.Setup(effectiveLogLevel(cmd, cfg), cfg.Logging.Directory)
		if err != nil {
			return err
		}

		workdir := config.ExpandHome(cfg.Repo.Path)
		lockPath := lock.PathFor(workdir)
		if err := lock.Acquire(lockPath); err != nil {
			return err
		}
		defer lock.Release(lockPath)

		loader, err := newLoader(cfg)
		if err != nil {
			return err
		}
		gen, err := newGenerator(cfg)
		if err != nil {
			return err
		}

		p := &pipeline.Pipeline{
			Loader:    loader,
			Oracle:    gen,
			Syncer:    gitsync.New(cfg.Repo.URL, cfg.Repo.Branch, workdir),
			Logger:    logger,
			WorkDir:   workdir,
			ModelsDir: cfg.Repo.ModelsDir,
		}

		rec := state.RunRecord{StartedAt: time.Now()}
		res, runErr := p.Run(cmd.Context())
		rec.FinishedAt = time.Now()

		if res != nil {
			rec.Units = res.Units
			rec.FilesWritten = len(res.Files)
			rec.FilesChanged = res.FilesChanged
			rec.Committed = res.Committed
			rec.CommitHash = res.CommitHash
		}
		if runErr != nil {
			rec.Error = runErr.Error()
		}
		if err := rec.Save(""); err != nil {
			logger.Warn("saving run state", "error", err)
		}

		if runErr != nil {
			return runErr
		}
		fmt.Print(report.RunSummary(res))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
