// Package config loads projlist configuration from a YAML file and PROJLIST_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"

	DefaultKey = "yew.crm.Projects"
)

type Config struct {
	Storage Storage `koanf:"storage" json:"storage" yaml:"storage"`
	Log     Log     `koanf:"log" json:"log" yaml:"log"`
	TUI     TUI     `koanf:"tui" json:"tui" yaml:"tui"`
}

type Storage struct {
	// Backend is one of sqlite|file|redis|memory.
	Backend string `koanf:"backend" json:"backend" yaml:"backend"`
	// Dir holds the sqlite database, the JSON files and the default log file.
	Dir string `koanf:"dir" json:"dir" yaml:"dir"`
	// Key is the single storage key the project collection lives under.
	Key string `koanf:"key" json:"key" yaml:"key"`

	RedisAddr string `koanf:"redis_addr" json:"redisAddr,omitempty" yaml:"redis_addr,omitempty"`
	RedisDB   int    `koanf:"redis_db" json:"redisDb,omitempty" yaml:"redis_db,omitempty"`
}

type Log struct {
	// Level is a zap level name, or "off".
	Level string `koanf:"level" json:"level" yaml:"level"`
	// Format is json|console.
	Format string `koanf:"format" json:"format" yaml:"format"`
	// File defaults to <storage.dir>/projlist.log; "-" means stderr.
	File string `koanf:"file" json:"file,omitempty" yaml:"file,omitempty"`
}

type TUI struct {
	// Theme is auto|light|dark.
	Theme string `koanf:"theme" json:"theme" yaml:"theme"`
	// Inline renders in the normal screen buffer instead of the alternate screen.
	Inline bool `koanf:"inline" json:"inline,omitempty" yaml:"inline,omitempty"`
}

// Dir returns the configuration directory. PROJLIST_CONFIG_DIR overrides it
// (keeps tests away from the real home directory).
func Dir() (string, error) {
	if v := strings.TrimSpace(os.Getenv("PROJLIST_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "projlist"), nil
}

func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".projlist"
	}
	return filepath.Join(home, ".projlist")
}

func applyDefaults(cfg *Config) {
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = BackendSQLite
	}
	if cfg.Storage.Dir == "" {
		cfg.Storage.Dir = DefaultDataDir()
	}
	if cfg.Storage.Key == "" {
		cfg.Storage.Key = DefaultKey
	}
	if cfg.Storage.Backend == BackendRedis && cfg.Storage.RedisAddr == "" {
		cfg.Storage.RedisAddr = "localhost:6379"
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(cfg.Storage.Dir, "projlist.log")
	}

	if cfg.TUI.Theme == "" {
		cfg.TUI.Theme = "auto"
	}
}

// Normalize lowercases enum-like fields and fills in defaults. Call it again after
// changing fields (e.g. from CLI flags).
func (c *Config) Normalize() {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	c.TUI.Theme = strings.ToLower(strings.TrimSpace(c.TUI.Theme))
	applyDefaults(c)
}

func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendSQLite, BackendFile, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("unknown storage backend %q (want sqlite|file|redis|memory)", c.Storage.Backend)
	}
	if strings.TrimSpace(c.Storage.Key) == "" {
		return errors.New("storage key must not be empty")
	}
	if strings.ContainsAny(c.Storage.Key, `/\`) && c.Storage.Backend == BackendFile {
		return fmt.Errorf("storage key %q cannot be used as a file name", c.Storage.Key)
	}
	if c.Storage.RedisDB < 0 {
		return fmt.Errorf("invalid redis db: %d", c.Storage.RedisDB)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error", "off":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("unknown log format %q (want json|console)", c.Log.Format)
	}

	switch c.TUI.Theme {
	case "auto", "light", "dark":
	default:
		return fmt.Errorf("unknown tui theme %q (want auto|light|dark)", c.TUI.Theme)
	}
	return nil
}
