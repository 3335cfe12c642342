package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := Default()
	if cfg.AI.Model != def.AI.Model || cfg.AI.MaxTokens != 1000 || cfg.AI.Timeout != 60*time.Second {
		t.Fatalf("ai=%+v", cfg.AI)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("log level=%q", cfg.LogLevel)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
db_path: /tmp/game.db
log_level: info
ai:
  model: local-model
  timeout: 15s
journal:
  dir: /vault
  tag: journal
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("LIFERPG_LOG_LEVEL", "debug")
	t.Setenv("LIFERPG_AI_API_KEY", "sk-test")
	t.Setenv("LIFERPG_JOURNAL_USE_AI", "false")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DBPath != "/tmp/game.db" || cfg.Journal.Dir != "/vault" || cfg.Journal.Tag != "journal" {
		t.Fatalf("file values lost: %+v", cfg)
	}
	if cfg.AI.Model != "local-model" || cfg.AI.Timeout != 15*time.Second {
		t.Fatalf("ai=%+v", cfg.AI)
	}
	if cfg.AI.Temperature != 0.7 {
		t.Fatalf("unset field lost its default: %v", cfg.AI.Temperature)
	}
	if cfg.LogLevel != "debug" || cfg.AI.APIKey != "sk-test" || cfg.Journal.UseAI {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
	if !cfg.AIEnabled() {
		t.Fatalf("expected AI enabled")
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("ai: [unclosed"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestSaveOmitsAPIKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := Default()
	cfg.AI.APIKey = "sk-secret"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if strings.Contains(string(data), "sk-secret") {
		t.Fatalf("api key written to disk")
	}
	if cfg.AI.APIKey != "sk-secret" {
		t.Fatalf("Save mutated the receiver")
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.AI.Timeout != cfg.AI.Timeout || loaded.AI.Model != cfg.AI.Model {
		t.Fatalf("roundtrip ai=%+v", loaded.AI)
	}
}
