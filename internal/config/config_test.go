package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DATA_DIR", "DB_PATH", "HOST", "PORT", "WEB_DIR", "COMMISSION_RATE", "AVERAGING",
		"REVIEW_PROVIDER", "REVIEW_BASE_URL", "REVIEW_API_KEY", "REVIEW_MODEL",
	} {
		t.Setenv(envPrefix+key, "")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Port != DefaultPort || cfg.Host != DefaultHost || cfg.DBName != DefaultDBName {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if !cfg.CommissionRate.Equal(decimal.RequireFromString("0.0025")) {
		t.Fatalf("unexpected rate %s", cfg.CommissionRate)
	}
	if cfg.Averaging != AveragingTwoTerm {
		t.Fatalf("unexpected averaging %q", cfg.Averaging)
	}
	if cfg.Addr() != "127.0.0.1:8000" {
		t.Fatalf("unexpected addr %q", cfg.Addr())
	}
}

func TestLoadFromUserConfigAndEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	err := SaveUserConfig(path, UserConfig{
		DataDir:        filepath.Join(dir, "data"),
		DBName:         "main.db",
		Port:           9001,
		CommissionRate: "0.0020",
		Averaging:      AveragingWeighted,
		Review:         ReviewConfig{Provider: "openai", Model: "gpt-4o-mini"},
	})
	if err != nil {
		t.Fatalf("SaveUserConfig: %v", err)
	}

	t.Setenv(envPrefix+"PORT", "9100")
	t.Setenv(envPrefix+"REVIEW_API_KEY", "sk-test")

	cfg, err := LoadFrom(Sources{ConfigFile: path})
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Port != 9100 {
		t.Errorf("env must override file port, got %d", cfg.Port)
	}
	if cfg.DBName != "main.db" || cfg.Averaging != AveragingWeighted {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if !cfg.CommissionRate.Equal(decimal.RequireFromString("0.002")) {
		t.Errorf("unexpected rate %s", cfg.CommissionRate)
	}
	if cfg.Review.Provider != "openai" || cfg.Review.APIKey != "sk-test" || cfg.Review.Model != "gpt-4o-mini" {
		t.Errorf("unexpected review config: %+v", cfg.Review)
	}

	dbPath, err := cfg.ResolveDBPath()
	if err != nil {
		t.Fatalf("ResolveDBPath: %v", err)
	}
	if dbPath != filepath.Join(dir, "data", "main.db") {
		t.Errorf("unexpected db path %q", dbPath)
	}
	if _, err := os.Stat(filepath.Join(dir, "data")); err != nil {
		t.Errorf("data dir not created: %v", err)
	}
}

func TestLoadFromEnvFile(t *testing.T) {
	clearEnv(t)
	os.Unsetenv(envPrefix + "AVERAGING")
	os.Unsetenv(envPrefix + "DB_PATH")
	t.Cleanup(func() {
		os.Unsetenv(envPrefix + "AVERAGING")
		os.Unsetenv(envPrefix + "DB_PATH")
	})
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	dbPath := filepath.Join(dir, "custom.db")
	content := "TRADE_JOURNAL_AVERAGING=weighted\nTRADE_JOURNAL_DB_PATH=" + dbPath + "\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	cfg, err := LoadFrom(Sources{EnvFile: envFile})
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Averaging != AveragingWeighted {
		t.Errorf("expected averaging from .env, got %q", cfg.Averaging)
	}
	got, err := cfg.ResolveDBPath()
	if err != nil || got != dbPath {
		t.Errorf("expected db path %q, got %q (%v)", dbPath, got, err)
	}
}

func TestLoadFromMissingSources(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	cfg, err := LoadFrom(Sources{
		EnvFile:    filepath.Join(dir, "missing.env"),
		ConfigFile: filepath.Join(dir, "missing.json"),
	})
	if err != nil {
		t.Fatalf("missing sources must not fail: %v", err)
	}
	if cfg.Port != DefaultPort {
		t.Errorf("expected default port, got %d", cfg.Port)
	}
}

func TestLoadFromInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"port", "PORT", "abc"},
		{"port range", "PORT", "70000"},
		{"rate", "COMMISSION_RATE", "x"},
		{"rate range", "COMMISSION_RATE", "1.5"},
		{"averaging", "AVERAGING", "fifo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(envPrefix+tt.key, tt.val)
			if _, err := LoadFrom(Sources{}); err == nil {
				t.Fatalf("expected error for %s=%s", tt.key, tt.val)
			}
		})
	}
}

func TestLoadUserConfigInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadUserConfig(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestConfigPath(t *testing.T) {
	path, err := ConfigPath()
	if err != nil {
		t.Skipf("no config dir: %v", err)
	}
	if filepath.Base(path) != "config.json" {
		t.Fatalf("unexpected config path %q", path)
	}
}
