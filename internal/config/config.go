package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

const appName = "xpense"

// Config holds all xpense configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Budget     BudgetConfig     `toml:"budget"`
	Rates      RatesConfig      `toml:"rates"`
	Appearance AppearanceConfig `toml:"appearance"`
	Log        LogConfig        `toml:"log"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	Currency    string `toml:"currency"`
	DefaultDays int    `toml:"default_days"`
	DBPath      string `toml:"db_path,omitempty"`
}

// BudgetConfig holds the monthly budget seeded into the store on setup.
type BudgetConfig struct {
	Monthly *float64 `toml:"monthly,omitempty"`
}

// RatesConfig holds exchange-rate endpoint settings.
type RatesConfig struct {
	BaseURL      string `toml:"base_url,omitempty"`
	APIKey       string `toml:"api_key,omitempty"`
	BaseCurrency string `toml:"base_currency"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// LogConfig holds diagnostic logging settings.
type LogConfig struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
}

// envOverrides lists the XPENSE_* variables that win over the file.
type envOverrides struct {
	RatesAPIKey string `envconfig:"RATES_API_KEY"`
	DBPath      string `envconfig:"DB_PATH"`
	LogLevel    string `envconfig:"LOG_LEVEL"`
	Currency    string `envconfig:"CURRENCY"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Currency:    "USD",
			DefaultDays: 30,
		},
		Rates: RatesConfig{
			BaseURL:      "https://open.er-api.com/v6/latest",
			BaseCurrency: "USD",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName)
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// DataDir returns the XDG data directory holding the database.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", appName)
}

// CacheDir returns the XDG cache directory used for TUI logs.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", appName)
}

// DBPath returns the configured database path or the default location.
func (c Config) DBPath() string {
	if c.General.DBPath != "" {
		return c.General.DBPath
	}
	return filepath.Join(DataDir(), "xpense.db")
}

// LogPath returns the diagnostic log file used while the TUI owns the terminal.
func (c Config) LogPath() string {
	return filepath.Join(CacheDir(), "xpense.log")
}

// Load reads the config file, returning defaults if it doesn't exist.
// Environment overrides are applied in both cases.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return cfg, fmt.Errorf("reading config: %w", err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	var env envOverrides
	if err := envconfig.Process(appName, &env); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}
	if env.RatesAPIKey != "" {
		cfg.Rates.APIKey = env.RatesAPIKey
	}
	if env.DBPath != "" {
		cfg.General.DBPath = env.DBPath
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.Currency != "" {
		cfg.General.Currency = strings.ToUpper(env.Currency)
	}
	return nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// MaskKey hides all but the last four characters of a secret.
func MaskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}
