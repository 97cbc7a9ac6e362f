// Package config loads application configuration from a TOML file with
// sensible defaults.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config holds all application configuration
type Config struct {
	General       GeneralConfig    `toml:"general"`
	Phases        PhasesConfig     `toml:"phases"`
	Notifications NotifyConfig     `toml:"notifications"`
	Web           WebConfig        `toml:"web"`
	Watch         WatchConfig      `toml:"watch"`
	Schedules     []ScheduleConfig `toml:"schedules"`
}

// GeneralConfig holds general settings
type GeneralConfig struct {
	ProjectRoot    string `toml:"project_root"`
	MaxConcurrency int    `toml:"max_concurrency"`
	DatabasePath   string `toml:"database_path"`
	ReportDir      string `toml:"report_dir"`
	ManifestPath   string `toml:"manifest_path"`
}

// PhasesConfig holds phase execution settings
type PhasesConfig struct {
	// Parallel runs all phases concurrently without dependency enforcement
	Parallel bool `toml:"parallel"`
}

// NotifyConfig holds notification settings
type NotifyConfig struct {
	Desktop      bool   `toml:"desktop"`
	SlackWebhook string `toml:"slack_webhook"`
}

// WebConfig holds status server settings
type WebConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// WatchConfig holds project watcher settings
type WatchConfig struct {
	DebounceMillis int `toml:"debounce_ms"`
}

// ScheduleConfig describes a recurring commission run
type ScheduleConfig struct {
	Name       string   `toml:"name"`
	Cron       string   `toml:"cron"`
	QuickCheck bool     `toml:"quick_check"`
	Phases     []string `toml:"phases"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		General: GeneralConfig{
			ProjectRoot:    "",
			MaxConcurrency: 5,
			DatabasePath:   filepath.Join(home, ".lumenstage-verifier", "verifier.db"),
			ReportDir:      filepath.Join(home, ".lumenstage-verifier", "reports"),
		},
		Notifications: NotifyConfig{
			Desktop: true,
		},
		Web: WebConfig{
			Host: "127.0.0.1",
			Port: 8471,
		},
		Watch: WatchConfig{
			DebounceMillis: 500,
		},
	}
}

// Load reads configuration from a TOML file, falling back to defaults
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.General.ProjectRoot = ExpandPath(cfg.General.ProjectRoot)
	cfg.General.DatabasePath = ExpandPath(cfg.General.DatabasePath)
	cfg.General.ReportDir = ExpandPath(cfg.General.ReportDir)
	cfg.General.ManifestPath = ExpandPath(cfg.General.ManifestPath)

	return cfg, nil
}

// ExpandPath expands ~ to the user's home directory
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// DefaultConfigPath returns the default config file location
func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "lumenstage-verifier", "config.toml")
}
