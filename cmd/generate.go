package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/specforge/specforge/internal/config"
	"github.com/specforge/specforge/internal/gitsync"
	"github.com/specforge/specforge/internal/lock"
	"github.com/specforge/specforge/internal/logging"
	"github.com/specforge/specforge/internal/pipeline"
	"github.com/specforge/specforge/internal/report"
)

var generateOutput string

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate SQL models without committing or pushing",
	Long: `Generate one SQL model per target table, skipping commit and push.
Useful for inspecting what a run would produce.

Without --output the models are written into the working copy, which is
still reset to the remote branch tip first so the result reflects a clean
baseline. With --output they go to a plain directory and the repository is
never touched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		logger, err := logging.Setup(effectiveLogLevel(cmd, cfg), cfg.Logging.Directory)
		if err != nil {
			return err
		}

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
			Logger:    logger,
			ModelsDir: cfg.Repo.ModelsDir,
		}

		if generateOutput != "" {
			p.WorkDir = generateOutput
		} else {
			workdir := config.ExpandHome(cfg.Repo.Path)
			lockPath := lock.PathFor(workdir)
			if err := lock.Acquire(lockPath); err != nil {
				return err
			}
			defer lock.Release(lockPath)

			p.WorkDir = workdir
			p.Syncer = gitsync.New(cfg.Repo.URL, cfg.Repo.Branch, workdir)
			p.SkipSync = true
		}

		res, err := p.Run(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Print(report.RunSummary(res))
		for _, f := range res.Files {
			fmt.Println("  " + f)
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "output directory (default: repo working copy path)")
	rootCmd.AddCommand(generateCmd)
}
