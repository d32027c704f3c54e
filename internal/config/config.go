// Package config handles configuration loading and defaults for dietstreak.
// Configuration is loaded from XDG-compliant paths (typically ~/.config/dietstreak/config.yaml).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dietstreak/internal/diet"
	"dietstreak/internal/fsutil"
	"dietstreak/internal/kv"

	"gopkg.in/yaml.v3"
)

const appName = "dietstreak"

// Config represents the application configuration.
type Config struct {
	// DataDir overrides the default data directory (~/.dietstreak)
	DataDir string `yaml:"data_dir,omitempty"`

	Storage StorageConfig `yaml:"storage,omitempty"`

	Reports ReportsConfig `yaml:"reports,omitempty"`

	// Theme customizes the visual appearance
	Theme ThemeConfig `yaml:"theme,omitempty"`

	// Keys customizes keyboard shortcuts of the checklist
	Keys KeysConfig `yaml:"keys,omitempty"`

	// Notifications configures missed-meal reminders
	Notifications NotificationConfig `yaml:"notifications,omitempty"`

	Log LogConfig `yaml:"log,omitempty"`
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	// Backend is "json" (one file per key) or "sqlite"
	Backend string `yaml:"backend,omitempty"`
}

// ReportsConfig tunes report generation.
type ReportsConfig struct {
	// WeekStart is the weekday weekly reports begin on
	WeekStart string `yaml:"week_start,omitempty"` // default: "monday"
}

// NotificationConfig defines desktop notification settings.
type NotificationConfig struct {
	// Enabled enables/disables notifications
	Enabled bool `yaml:"enabled,omitempty"`

	// Sound enables notification sounds
	Sound bool `yaml:"sound,omitempty"`

	// MissedAfterMinutes is how late an item may be before it is reported missed
	MissedAfterMinutes int `yaml:"missed_after_minutes,omitempty"` // default: 60
}

// LogConfig controls the log file.
type LogConfig struct {
	// Debug logs at debug level and mirrors logs to stderr
	Debug bool `yaml:"debug,omitempty"`
}

// ThemeConfig defines color and style settings.
type ThemeConfig struct {
	// Primary color for focused elements (hex, e.g., "#FF5733")
	Primary string `yaml:"primary,omitempty"`

	// Accent color for completed items and highlights (hex)
	Accent string `yaml:"accent,omitempty"`

	// Muted color for secondary text (hex)
	Muted string `yaml:"muted,omitempty"`
}

// KeysConfig defines customizable keyboard shortcuts.
// Each field accepts a comma-separated list of key bindings.
// Examples: "q,ctrl+c", "j,down"
type KeysConfig struct {
	Quit   string `yaml:"quit,omitempty"`   // default: "q,ctrl+c"
	Up     string `yaml:"up,omitempty"`     // default: "k,up"
	Down   string `yaml:"down,omitempty"`   // default: "j,down"
	Toggle string `yaml:"toggle,omitempty"` // default: "enter,space,x"
	Water  string `yaml:"water,omitempty"`  // default: "w"
	Help   string `yaml:"help,omitempty"`   // default: "?"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		DataDir: defaultDataDir(),
		Storage: StorageConfig{
			Backend: kv.BackendJSON,
		},
		Reports: ReportsConfig{
			WeekStart: "monday",
		},
		Theme: ThemeConfig{
			Primary: "#7C3AED", // Violet
			Accent:  "#10B981", // Emerald
			Muted:   "#6B7280", // Gray
		},
		Keys: KeysConfig{
			// Empty strings mean built-in defaults
		},
		Notifications: NotificationConfig{
			Enabled:            true,
			Sound:              false,
			MissedAfterMinutes: 60,
		},
	}
}

// defaultDataDir returns the default data directory path.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + appName
	}
	return filepath.Join(home, "."+appName)
}

// configDir returns the configuration directory path (XDG compliant).
func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// Path returns the path to the config file, or "" when no home is known.
func Path() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads configuration from disk, merging with defaults.
// If no config file exists, returns default configuration.
func Load() (*Config, error) {
	cfg := Default()

	path := Path()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	var userCfg Config
	if err := yaml.Unmarshal(data, &userCfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	var doc yaml.Node
	_ = yaml.Unmarshal(data, &doc) // best-effort; fall back to conservative merge if this fails

	cfg.mergeFromYAML(&userCfg, &doc)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case kv.BackendJSON, kv.BackendSQLite:
	default:
		return fmt.Errorf("storage.backend: unknown backend %q (want %s or %s)", c.Storage.Backend, kv.BackendJSON, kv.BackendSQLite)
	}
	if _, err := diet.ParseWeekday(c.Reports.WeekStart); err != nil {
		return fmt.Errorf("reports.week_start: %w", err)
	}
	if c.Notifications.MissedAfterMinutes < 0 {
		return fmt.Errorf("notifications.missed_after_minutes: must not be negative")
	}
	return nil
}

// mergeNonEmpty applies non-empty values from other to c.
// It intentionally does not touch booleans (those require presence-aware merging).
func (c *Config) mergeNonEmpty(other *Config) {
	if other.DataDir != "" {
		c.DataDir = other.DataDir
	}
	if other.Storage.Backend != "" {
		c.Storage.Backend = strings.ToLower(other.Storage.Backend)
	}
	if other.Reports.WeekStart != "" {
		c.Reports.WeekStart = other.Reports.WeekStart
	}

	if other.Theme.Primary != "" {
		c.Theme.Primary = other.Theme.Primary
	}
	if other.Theme.Accent != "" {
		c.Theme.Accent = other.Theme.Accent
	}
	if other.Theme.Muted != "" {
		c.Theme.Muted = other.Theme.Muted
	}

	if other.Keys.Quit != "" {
		c.Keys.Quit = other.Keys.Quit
	}
	if other.Keys.Up != "" {
		c.Keys.Up = other.Keys.Up
	}
	if other.Keys.Down != "" {
		c.Keys.Down = other.Keys.Down
	}
	if other.Keys.Toggle != "" {
		c.Keys.Toggle = other.Keys.Toggle
	}
	if other.Keys.Water != "" {
		c.Keys.Water = other.Keys.Water
	}
	if other.Keys.Help != "" {
		c.Keys.Help = other.Keys.Help
	}

	if other.Notifications.MissedAfterMinutes > 0 {
		c.Notifications.MissedAfterMinutes = other.Notifications.MissedAfterMinutes
	}
}

func (c *Config) mergeFromYAML(other *Config, doc *yaml.Node) {
	c.mergeNonEmpty(other)

	// Fall back to conservative behavior if we can't inspect presence.
	if doc == nil || len(doc.Content) == 0 {
		return
	}

	// Booleans and zero-valued ints apply only when present in YAML.
	if yamlHasPath(doc, "notifications", "enabled") {
		c.Notifications.Enabled = other.Notifications.Enabled
	}
	if yamlHasPath(doc, "notifications", "sound") {
		c.Notifications.Sound = other.Notifications.Sound
	}
	if yamlHasPath(doc, "notifications", "missed_after_minutes") {
		c.Notifications.MissedAfterMinutes = other.Notifications.MissedAfterMinutes
	}
	if yamlHasPath(doc, "log", "debug") {
		c.Log.Debug = other.Log.Debug
	}
}

func yamlHasPath(doc *yaml.Node, path ...string) bool {
	if doc == nil || len(path) == 0 {
		return false
	}

	// Document -> root mapping.
	n := doc
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}
	for _, key := range path {
		if n == nil || n.Kind != yaml.MappingNode {
			return false
		}
		var next *yaml.Node
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind == yaml.ScalarNode && k.Value == key {
				next = n.Content[i+1]
				break
			}
		}
		if next == nil {
			return false
		}
		n = next
	}
	return true
}

// Save writes the configuration to disk.
func (c *Config) Save() error {
	path := Path()
	if path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return fsutil.WriteFileAtomic(path, data, 0600)
}

// GetDataDir returns the resolved data directory path.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return defaultDataDir()
	}
	if c.DataDir == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return c.DataDir
	}
	if strings.HasPrefix(c.DataDir, "~/") || strings.HasPrefix(c.DataDir, `~\`) {
		if home, err := os.UserHomeDir(); err == nil {
			trimmed := strings.TrimPrefix(c.DataDir, "~/")
			trimmed = strings.TrimPrefix(trimmed, `~\`)
			return filepath.Join(home, trimmed)
		}
	}
	return c.DataDir
}

// WeekStart returns the configured first weekday, Monday when unset or invalid.
func (c *Config) WeekStart() time.Weekday {
	d, err := diet.ParseWeekday(c.Reports.WeekStart)
	if err != nil {
		return time.Monday
	}
	return d
}

// MissedGrace returns how late an item may be before a reminder fires.
func (c *Config) MissedGrace() time.Duration {
	return time.Duration(c.Notifications.MissedAfterMinutes) * time.Minute
}
