package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDBPath     = "~/.local/share/knowmap/graph.db"
	DefaultConfigPath = "~/.config/knowmap/config.yaml"
	DefaultSeed       = 1
)

// Config holds the settings shared by the TUI, CLI and MCP server
type Config struct {
	// Seed drives layout jitter and curve lift
	Seed          uint64 `yaml:"seed"`
	CurveSegments int    `yaml:"curve_segments"`

	DBPath   string `yaml:"db_path"`
	SeedPath string `yaml:"seed_path,omitempty"`

	// ArticleBaseURL is prefixed to /article-viewer and /content-management links
	ArticleBaseURL string `yaml:"article_base_url"`

	Minimap MinimapConfig `yaml:"minimap"`
	Logging LoggingConfig `yaml:"logging"`
}

// MinimapConfig sizes the exported minimap image
type MinimapConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// LoggingConfig controls zap output
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Seed:           DefaultSeed,
		CurveSegments:  20,
		DBPath:         DefaultDBPath,
		ArticleBaseURL: "http://localhost:3000",
		Minimap: MinimapConfig{
			Width:  200,
			Height: 150,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from a YAML file. A missing file yields the
// defaults. Environment variables override both.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(ExpandHome(path))
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML
func (c *Config) Save(path string) error {
	path = ExpandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) applyEnvOverrides() error {
	if env := os.Getenv("KNOWMAP_DB"); env != "" {
		c.DBPath = env
	}
	if env := os.Getenv("KNOWMAP_SEED_FILE"); env != "" {
		c.SeedPath = env
	}
	if env := os.Getenv("KNOWMAP_LOG_LEVEL"); env != "" {
		c.Logging.Level = env
	}
	if env := os.Getenv("KNOWMAP_SEED"); env != "" {
		seed, err := strconv.ParseUint(env, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid KNOWMAP_SEED %q: %w", env, err)
		}
		c.Seed = seed
	}
	return nil
}

// Path returns the config file path from KNOWMAP_CONFIG,
// falling back to DefaultConfigPath.
func Path() string {
	if env := os.Getenv("KNOWMAP_CONFIG"); env != "" {
		return env
	}
	return DefaultConfigPath
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[1:])
	}
	return path
}
