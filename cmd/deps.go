package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/specforge/specforge/internal/config"
	"github.com/specforge/specforge/internal/oracle"
	"github.com/specforge/specforge/internal/spec"
)

// effectiveLogLevel prefers an explicitly set --log-level flag; otherwise
// the config's level applies.
func effectiveLogLevel(cmd *cobra.Command, cfg *config.Config) string {
	if f := cmd.Root().PersistentFlags().Lookup("log-level"); f != nil && f.Changed {
		return f.Value.String()
	}
	if cfg.Logging.Level != "" {
		return cfg.Logging.Level
	}
	return logLevel
}

// newLoader builds the spec loader selected by the config.
func newLoader(cfg *config.Config) (spec.Loader, error) {
	switch cfg.Spec.Source {
	case "csv":
		return spec.NewCSVLoader(cfg.Spec.Path), nil
	case "postgres":
		pg := cfg.Spec.Postgres
		return spec.NewPostgresLoader(pg.ConnectionString, pg.Schema, pg.Table), nil
	default:
		return nil, fmt.Errorf("unknown spec source %q", cfg.Spec.Source)
	}
}

// newGenerator builds the oracle client selected by the config.
func newGenerator(cfg *config.Config) (oracle.Generator, error) {
	switch cfg.Oracle.Provider {
	case "ollama":
		return oracle.NewOllamaClient(cfg.Oracle.Host, cfg.Oracle.Model, cfg.Oracle.ContextWindow), nil
	case "openai":
		return oracle.NewOpenAIClient(cfg.Oracle.Model), nil
	default:
		return nil, fmt.Errorf("unknown oracle provider %q", cfg.Oracle.Provider)
	}
}
