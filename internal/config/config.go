package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const (
	DefaultDBName     = "journal.db"
	DefaultHost       = "127.0.0.1"
	DefaultPort       = 8000
	DefaultRate       = "0.0025"
	AveragingTwoTerm  = "two_term"
	AveragingWeighted = "weighted"
	envPrefix         = "TRADE_JOURNAL_"
	appDirName        = "TradeJournal"
	linuxAppDirName   = "tradejournal"
)

// ReviewConfig selects the AI provider used for journal reviews.
type ReviewConfig struct {
	Provider string `json:"provider"`
	BaseURL  string `json:"base_url"`
	APIKey   string `json:"api_key"`
	Model    string `json:"model"`
}

// Config is the resolved runtime configuration.
type Config struct {
	DataDir        string
	DBName         string
	DBPath         string
	Host           string
	Port           int
	WebDir         string
	CommissionRate decimal.Decimal
	Averaging      string
	Review         ReviewConfig
}

// UserConfig is the persisted JSON config file.
type UserConfig struct {
	DataDir        string       `json:"data_dir,omitempty"`
	DBName         string       `json:"db_name,omitempty"`
	Port           int          `json:"port,omitempty"`
	CommissionRate string       `json:"commission_rate,omitempty"`
	Averaging      string       `json:"averaging,omitempty"`
	Review         ReviewConfig `json:"review"`
}

// Sources lists where Load reads from. Empty paths fall back to defaults.
type Sources struct {
	EnvFile    string
	ConfigFile string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DBName:         DefaultDBName,
		Host:           DefaultHost,
		Port:           DefaultPort,
		CommissionRate: decimal.RequireFromString(DefaultRate),
		Averaging:      AveragingTwoTerm,
	}
}

// Load resolves configuration from a .env file in the working directory,
// the user config file and TRADE_JOURNAL_* environment variables.
func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		path = ""
	}
	return LoadFrom(Sources{EnvFile: ".env", ConfigFile: path})
}

// LoadFrom resolves configuration with explicit sources. Environment
// variables win over the config file; existing env vars win over .env.
func LoadFrom(src Sources) (Config, error) {
	cfg := Default()

	if src.EnvFile != "" {
		if err := godotenv.Load(src.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("load %s: %w", src.EnvFile, err)
		}
	}

	if src.ConfigFile != "" {
		user, err := LoadUserConfig(src.ConfigFile)
		if err != nil {
			return cfg, err
		}
		if err := cfg.applyUser(user); err != nil {
			return cfg, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyUser(u UserConfig) error {
	if u.DataDir != "" {
		c.DataDir = u.DataDir
	}
	if u.DBName != "" {
		c.DBName = u.DBName
	}
	if u.Port > 0 {
		c.Port = u.Port
	}
	if u.CommissionRate != "" {
		rate, err := decimal.NewFromString(u.CommissionRate)
		if err != nil {
			return fmt.Errorf("config file commission_rate: %w", err)
		}
		c.CommissionRate = rate
	}
	if u.Averaging != "" {
		c.Averaging = u.Averaging
	}
	mergeReview(&c.Review, u.Review)
	return nil
}

func (c *Config) applyEnv() error {
	if v := env("DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := env("DB_NAME"); v != "" {
		c.DBName = v
	}
	if v := env("DB_PATH"); v != "" {
		c.DBPath = v
	}
	if v := env("HOST"); v != "" {
		c.Host = v
	}
	if v := env("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sPORT: %w", envPrefix, err)
		}
		c.Port = port
	}
	if v := env("WEB_DIR"); v != "" {
		c.WebDir = v
	}
	if v := env("COMMISSION_RATE"); v != "" {
		rate, err := decimal.NewFromString(v)
		if err != nil {
			return fmt.Errorf("%sCOMMISSION_RATE: %w", envPrefix, err)
		}
		c.CommissionRate = rate
	}
	if v := env("AVERAGING"); v != "" {
		c.Averaging = v
	}
	mergeReview(&c.Review, ReviewConfig{
		Provider: env("REVIEW_PROVIDER"),
		BaseURL:  env("REVIEW_BASE_URL"),
		APIKey:   env("REVIEW_API_KEY"),
		Model:    env("REVIEW_MODEL"),
	})
	return nil
}

// Validate reports settings that cannot be used.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.CommissionRate.IsNegative() || c.CommissionRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("commission rate must be within [0, 1), got %s", c.CommissionRate)
	}
	switch strings.ToLower(strings.TrimSpace(c.Averaging)) {
	case "", AveragingTwoTerm, AveragingWeighted:
	default:
		return fmt.Errorf("unknown averaging strategy %q", c.Averaging)
	}
	return nil
}

// Addr returns host:port for the HTTP listener.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ResolveDBPath returns the database file path, creating the data directory.
func (c Config) ResolveDBPath() (string, error) {
	if c.DBPath != "" {
		return c.DBPath, nil
	}
	dir, err := c.ResolveDataDir()
	if err != nil {
		return "", err
	}
	name := strings.TrimSpace(c.DBName)
	if name == "" {
		name = DefaultDBName
	}
	return filepath.Join(dir, name), nil
}

// ResolveDataDir returns the data directory, creating it if needed.
func (c Config) ResolveDataDir() (string, error) {
	dir := c.DataDir
	if dir == "" {
		appDir, err := appConfigDir()
		if err != nil {
			return "", err
		}
		dir = appDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// ConfigPath returns the user config file location.
func ConfigPath() (string, error) {
	dir, err := appConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadUserConfig reads path. A missing file yields an empty UserConfig.
func LoadUserConfig(path string) (UserConfig, error) {
	var cfg UserConfig
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// SaveUserConfig writes cfg to path, creating parent directories.
func SaveUserConfig(path string, cfg UserConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func appConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	switch runtime.GOOS {
	case "darwin":
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Application Support", appDirName), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, appDirName), nil
		}
		if err != nil {
			return "", err
		}
		return filepath.Join(home, appDirName), nil
	}
	if dir, cfgErr := os.UserConfigDir(); cfgErr == nil {
		return filepath.Join(dir, linuxAppDirName), nil
	}
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", linuxAppDirName), nil
}

func mergeReview(dst *ReviewConfig, src ReviewConfig) {
	if src.Provider != "" {
		dst.Provider = src.Provider
	}
	if src.BaseURL != "" {
		dst.BaseURL = src.BaseURL
	}
	if src.APIKey != "" {
		dst.APIKey = src.APIKey
	}
	if src.Model != "" {
		dst.Model = src.Model
	}
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(envPrefix + key))
}
