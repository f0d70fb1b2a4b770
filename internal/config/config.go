// Package config handles the XDG configuration directory, file paths and
// the optional config.yaml settings file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application directory name.
	AppName = "todo"

	// SettingsFile is the optional settings filename.
	SettingsFile = "config.yaml"

	// StorageFile is the file backend's storage filename.
	StorageFile = "storage.json"

	// DatabaseFile is the sqlite backend's database filename.
	DatabaseFile = "storage.db"
)

// Storage backend names.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Settings holds values from config.yaml, with defaults applied.
	Settings Settings
}

// Settings is the schema of config.yaml.
type Settings struct {
	Storage StorageSettings `yaml:"storage"`

	// MaxTasks caps the list size. 0 means unlimited.
	MaxTasks int `yaml:"max_tasks"`

	Log LogSettings `yaml:"log"`
	UI  UISettings  `yaml:"ui"`
}

// StorageSettings selects the persistence backend.
type StorageSettings struct {
	// Backend is one of file, sqlite, memory. Default: file.
	Backend string `yaml:"backend"`

	// Path overrides the backend's file location. Relative paths are
	// resolved against the config directory.
	Path string `yaml:"path,omitempty"`
}

// LogSettings configures diagnostic logging.
type LogSettings struct {
	// Level is one of debug, info, warn, error. Default: warn.
	Level string `yaml:"level"`
}

// UISettings configures the terminal UI and list output.
type UISettings struct {
	// Color enables styled output. Default: true.
	Color *bool `yaml:"color,omitempty"`
}

// ColorEnabled reports whether styled output is enabled.
func (u UISettings) ColorEnabled() bool {
	return u.Color == nil || *u.Color
}

// DefaultSettings returns the settings used when config.yaml is absent.
func DefaultSettings() Settings {
	return Settings{
		Storage: StorageSettings{Backend: BackendFile},
		Log:     LogSettings{Level: "warn"},
	}
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/todo or $HOME/.config/todo.
// Settings are read from config.yaml if it exists.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir, Settings: DefaultSettings()}
	if err := cfg.loadSettings(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// SettingsPath returns the path to config.yaml.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, SettingsFile)
}

// StoragePath returns the storage location for the configured backend.
// The memory backend has no path.
func (c *Config) StoragePath() string {
	if p := c.Settings.Storage.Path; p != "" {
		if filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(c.Dir, p)
	}
	switch c.Settings.Storage.Backend {
	case BackendSQLite:
		return filepath.Join(c.Dir, DatabaseFile)
	case BackendMemory:
		return ""
	default:
		return filepath.Join(c.Dir, StorageFile)
	}
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// LogLevel returns the effective log level. Debug overrides the setting.
func (c *Config) LogLevel() slog.Level {
	if c.Debug {
		return slog.LevelDebug
	}
	level, _ := parseLevel(c.Settings.Log.Level)
	return level
}

// SetBackend overrides the storage backend (the --storage flag).
func (c *Config) SetBackend(name string) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if err := validateBackend(name); err != nil {
		return err
	}
	c.Settings.Storage.Backend = name
	return nil
}

func (c *Config) loadSettings() error {
	data, err := os.ReadFile(c.SettingsPath())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", c.SettingsPath(), err)
	}

	settings := DefaultSettings()
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return fmt.Errorf("parsing %s: %w", c.SettingsPath(), err)
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("%s: %w", c.SettingsPath(), err)
	}
	c.Settings = settings
	return nil
}

// Validate checks settings values.
func (s *Settings) Validate() error {
	s.Storage.Backend = strings.ToLower(strings.TrimSpace(s.Storage.Backend))
	if s.Storage.Backend == "" {
		s.Storage.Backend = BackendFile
	}
	if err := validateBackend(s.Storage.Backend); err != nil {
		return err
	}
	if s.MaxTasks < 0 {
		return fmt.Errorf("max_tasks must be >= 0, got %d", s.MaxTasks)
	}
	if s.Log.Level == "" {
		s.Log.Level = "warn"
	}
	if _, err := parseLevel(s.Log.Level); err != nil {
		return err
	}
	return nil
}

func validateBackend(name string) error {
	switch name {
	case BackendFile, BackendSQLite, BackendMemory:
		return nil
	default:
		return fmt.Errorf("unknown storage backend: %s (want file, sqlite or memory)", name)
	}
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelWarn, fmt.Errorf("unknown log level: %s", s)
	}
	return level, nil
}
