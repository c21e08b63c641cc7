package cmd

import (
	"testing"

	"github.com/spf13/cobra"

	"github.com/specforge/specforge/internal/config"
)

func newTestRoot(t *testing.T) *cobra.Command {
	t.Helper()
	root := &cobra.Command{Use: "specforge"}
	var lvl string
	root.PersistentFlags().StringVar(&lvl, "log-level", "info", "")
	return root
}

func TestEffectiveLogLevelPrefersConfig(t *testing.T) {
	root := newTestRoot(t)
	cfg := &config.Config{Logging: config.LogConfig{Level: "warn"}}

	if got := effectiveLogLevel(root, cfg); got != "warn" {
		t.Errorf("expected config level warn when flag unset, got %q", got)
	}
}

func TestEffectiveLogLevelFlagOverridesConfig(t *testing.T) {
	root := newTestRoot(t)
	if err := root.PersistentFlags().Set("log-level", "debug"); err != nil {
		t.Fatal(err)
	}
	cfg := &config.Config{Logging: config.LogConfig{Level: "warn"}}

	if got := effectiveLogLevel(root, cfg); got != "debug" {
		t.Errorf("expected explicit flag to win, got %q", got)
	}
}

func TestNewLoaderSelection(t *testing.T) {
	cfg := &config.Config{Spec: config.SpecConfig{Source: "csv", Path: "spec.csv"}}
	if _, err := newLoader(cfg); err != nil {
		t.Fatalf("unexpected error for csv source: %v", err)
	}

	cfg.Spec.Source = "excel"
	if _, err := newLoader(cfg); err == nil {
		t.Error("expected error for unknown source")
	}
}

func TestNewGeneratorSelection(t *testing.T) {
	cfg := &config.Config{Oracle: config.OracleConfig{Provider: "ollama", Model: "phi3:mini"}}
	if _, err := newGenerator(cfg); err != nil {
		t.Fatalf("unexpected error for ollama provider: %v", err)
	}

	cfg.Oracle.Provider = "bard"
	if _, err := newGenerator(cfg); err == nil {
		t.Error("expected error for unknown provider")
	}
}
