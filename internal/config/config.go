// Package config loads liferpg settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// DataDir holds the database and config file by default.
	DataDir    string `yaml:"data_dir"`
	DBPath     string `yaml:"db_path" env:"LIFERPG_DB"`
	LogLevel   string `yaml:"log_level" env:"LIFERPG_LOG_LEVEL"`
	Difficulty string `yaml:"difficulty" env:"LIFERPG_DIFFICULTY"`

	AI      AIConfig      `yaml:"ai" envPrefix:"LIFERPG_AI_"`
	Journal JournalConfig `yaml:"journal" envPrefix:"LIFERPG_JOURNAL_"`
}

// AIConfig configures the optional text-generation service.
type AIConfig struct {
	APIKey      string        `yaml:"api_key,omitempty" env:"API_KEY"`
	BaseURL     string        `yaml:"base_url" env:"BASE_URL"`
	Model       string        `yaml:"model" env:"MODEL"`
	Temperature float64       `yaml:"temperature" env:"TEMPERATURE"`
	MaxTokens   int           `yaml:"max_tokens" env:"MAX_TOKENS"`
	Timeout     time.Duration `yaml:"timeout" env:"TIMEOUT"`
}

// JournalConfig points at the markdown notes to sync.
type JournalConfig struct {
	Dir    string `yaml:"dir" env:"DIR"`
	Folder string `yaml:"folder" env:"FOLDER"`
	Tag    string `yaml:"tag" env:"TAG"`
	UseAI  bool   `yaml:"use_ai" env:"USE_AI"`
}

// Default returns default configuration
func Default() *Config {
	home, _ := os.UserHomeDir()
	dataDir := filepath.Join(home, ".liferpg")

	return &Config{
		DataDir:    dataDir,
		DBPath:     filepath.Join(dataDir, "liferpg.db"),
		LogLevel:   "warn",
		Difficulty: "normal",
		AI: AIConfig{
			BaseURL:     "https://openrouter.ai/api/v1",
			Model:       "anthropic/claude-3.5-sonnet",
			Temperature: 0.7,
			MaxTokens:   1000,
			Timeout:     60 * time.Second,
		},
		Journal: JournalConfig{
			Dir:   filepath.Join(home, "notes"),
			UseAI: true,
		},
	}
}

// DefaultPath is where Load looks when no path is given.
func DefaultPath() string {
	return filepath.Join(Default().DataDir, "config.yaml")
}

// Load reads the config file, falling back to defaults when it does not
// exist, then applies LIFERPG_* environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.DataDir, "liferpg.db")
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Save writes the config file. The API key is never written.
func (c *Config) Save(path string) error {
	if path == "" {
		path = filepath.Join(c.DataDir, "config.yaml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	safe := *c
	safe.AI.APIKey = ""
	data, err := yaml.Marshal(&safe)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

// AIEnabled reports whether an API key is configured.
func (c *Config) AIEnabled() bool {
	return c.AI.APIKey != ""
}
