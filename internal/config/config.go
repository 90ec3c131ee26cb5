// Package config loads and saves the payplan TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds all payplan configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Appearance AppearanceConfig `toml:"appearance"`
	Server     ServerConfig     `toml:"server"`
	Journal    JournalConfig    `toml:"journal"`
}

// GeneralConfig holds form defaults and display preferences.
type GeneralConfig struct {
	CurrencySymbol string `toml:"currency_symbol"`
	DefaultTier    string `toml:"default_tier,omitempty"`
	DefaultMonths  int    `toml:"default_months,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// ServerConfig holds settings for `payplan serve`.
type ServerConfig struct {
	Addr         string `toml:"addr"`
	EventsBuffer int    `toml:"events_buffer"`
}

// JournalConfig controls the optional SQLite submission journal.
type JournalConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			CurrencySymbol: "$",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Server: ServerConfig{
			Addr:         "127.0.0.1:8788",
			EventsBuffer: 200,
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "payplan")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "payplan")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// CacheDir returns the XDG-compliant cache directory (journal, TUI log).
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "payplan")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "payplan")
}

// LoadEnv reads a .env file from the working directory, if present.
// Variables already set in the environment win.
func LoadEnv() {
	_ = godotenv.Load()
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// Theme returns the theme name from env var or config, in that order.
func Theme(cfg Config) string {
	if v := os.Getenv("PAYPLAN_THEME"); v != "" {
		return v
	}
	return cfg.Appearance.Theme
}

// ServerAddr returns the listen address from env var or config, in that order.
func ServerAddr(cfg Config) string {
	if v := os.Getenv("PAYPLAN_ADDR"); v != "" {
		return v
	}
	return cfg.Server.Addr
}

// JournalEnabled reports whether submissions should be journaled.
// PAYPLAN_JOURNAL=1/true/yes forces it on, 0/false/no forces it off.
func JournalEnabled(cfg Config) bool {
	switch strings.ToLower(os.Getenv("PAYPLAN_JOURNAL")) {
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	}
	return cfg.Journal.Enabled
}

// JournalPath returns the configured journal path or the default under CacheDir.
func JournalPath(cfg Config) string {
	if cfg.Journal.Path != "" {
		return cfg.Journal.Path
	}
	return filepath.Join(CacheDir(), "journal.db")
}
