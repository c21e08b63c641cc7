package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	CurrentVersion = 1
	DefaultPath    = "~/.specforge/specforge.yaml"
)

// Config is the top-level configuration, loaded once at process start and
// immutable thereafter.
type Config struct {
	Version int          `yaml:"version"`
	Spec    SpecConfig   `yaml:"spec"`
	Repo    RepoConfig   `yaml:"repo"`
	Oracle  OracleConfig `yaml:"oracle"`
	Logging LogConfig    `yaml:"logging,omitempty"`
}

// SpecConfig defines where the transformation spec is read from.
type SpecConfig struct {
	Source   string         `yaml:"source"` // csv or postgres
	Path     string         `yaml:"path,omitempty"`
	Postgres PostgresConfig `yaml:"postgres,omitempty"`
}

// PostgresConfig defines the spec metadata table connection.
type PostgresConfig struct {
	ConnectionString string `yaml:"connection_string,omitempty"`
	Schema           string `yaml:"schema,omitempty"`
	Table            string `yaml:"table,omitempty"`
}

// RepoConfig defines the remote repository the artifacts are pushed to.
type RepoConfig struct {
	URL       string `yaml:"url"`
	Branch    string `yaml:"branch,omitempty"`     // default main
	Path      string `yaml:"path,omitempty"`       // local working copy
	ModelsDir string `yaml:"models_dir,omitempty"` // default models
}

// OracleConfig defines the generation model.
type OracleConfig struct {
	Provider      string `yaml:"provider,omitempty"` // ollama or openai
	Model         string `yaml:"model"`
	Host          string `yaml:"host,omitempty"`           // ollama only
	ContextWindow int    `yaml:"context_window,omitempty"` // ollama only
}

// LogConfig defines logging settings.
type LogConfig struct {
	Level     string `yaml:"level,omitempty"`     // debug, info, warn, error
	Directory string `yaml:"directory,omitempty"` // default ~/.specforge/logs/
}

// Load reads and parses the config file from the given path.
func Load(path string) (*Config, error) {
	if path == "" {
		path = ExpandHome(DefaultPath)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Version != CurrentVersion {
		return nil, fmt.Errorf("unsupported config version %d (expected %d)", cfg.Version, CurrentVersion)
	}

	if err := cfg.resolveSecrets(); err != nil {
		return nil, fmt.Errorf("resolving secrets: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to the given path.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ExpandHome(DefaultPath)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return os.WriteFile(path, data, 0o600)
}

// Default returns a starter configuration for `specforge init`.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Spec: SpecConfig{
			Source: "csv",
			Path:   "transformation_spec.csv",
		},
		Repo: RepoConfig{
			URL:       "https://github.com/example/transformations_dbt.git",
			Branch:    "main",
			Path:      "./transformations_dbt",
			ModelsDir: "models",
		},
		Oracle: OracleConfig{
			Provider:      "ollama",
			Model:         "phi3:mini",
			Host:          "http://localhost:11434",
			ContextWindow: 2048,
		},
	}
}

// Validate checks the fields every run needs.
func (c *Config) Validate() error {
	switch c.Spec.Source {
	case "csv":
		if c.Spec.Path == "" {
			return fmt.Errorf("spec.path is required for csv source")
		}
	case "postgres":
		if c.Spec.Postgres.ConnectionString == "" || c.Spec.Postgres.Table == "" {
			return fmt.Errorf("spec.postgres.connection_string and spec.postgres.table are required for postgres source")
		}
	default:
		return fmt.Errorf("unknown spec source %q (expected csv or postgres)", c.Spec.Source)
	}

	if c.Repo.URL == "" {
		return fmt.Errorf("repo.url is required")
	}
	if c.Oracle.Model == "" {
		return fmt.Errorf("oracle.model is required")
	}
	switch c.Oracle.Provider {
	case "ollama", "openai":
	default:
		return fmt.Errorf("unknown oracle provider %q (expected ollama or openai)", c.Oracle.Provider)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Spec.Source == "" {
		c.Spec.Source = "csv"
	}
	if c.Spec.Postgres.Schema == "" {
		c.Spec.Postgres.Schema = "public"
	}
	if c.Repo.Branch == "" {
		c.Repo.Branch = "main"
	}
	if c.Repo.Path == "" {
		c.Repo.Path = filepath.Join(os.TempDir(), "specforge-workdir")
	}
	if c.Repo.ModelsDir == "" {
		c.Repo.ModelsDir = "models"
	}
	if c.Oracle.Provider == "" {
		c.Oracle.Provider = "ollama"
	}
	if c.Oracle.ContextWindow == 0 {
		c.Oracle.ContextWindow = 2048
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Directory == "" {
		c.Logging.Directory = ExpandHome("~/.specforge/logs/")
	}
}

var secretPattern = regexp.MustCompile(`\$\{(ENV|VAULT|AWS_SM):([^}]+)\}`)

func (c *Config) resolveSecrets() error {
	var err error
	c.Repo.URL, err = ResolveValue(c.Repo.URL)
	if err != nil {
		return fmt.Errorf("repo url: %w", err)
	}
	c.Spec.Postgres.ConnectionString, err = ResolveValue(c.Spec.Postgres.ConnectionString)
	if err != nil {
		return fmt.Errorf("postgres connection string: %w", err)
	}
	return nil
}

// ResolveValue resolves a secret reference embedded in a string value.
func ResolveValue(val string) (string, error) {
	matches := secretPattern.FindStringSubmatch(val)
	if matches == nil {
		return val, nil
	}

	provider := matches[1]
	ref := matches[2]

	var resolved string
	var err error
	switch provider {
	case "ENV":
		resolved = os.Getenv(ref)
		if resolved == "" {
			return "", fmt.Errorf("environment variable %s not set", ref)
		}
	case "VAULT":
		resolved, err = resolveVault(ref)
	case "AWS_SM":
		resolved, err = resolveAWSSecretsManager(ref)
	default:
		return "", fmt.Errorf("unknown secrets provider: %s", provider)
	}
	if err != nil {
		return "", err
	}
	return strings.Replace(val, matches[0], resolved, 1), nil
}

// ExpandHome expands ~ to the user's home directory.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
