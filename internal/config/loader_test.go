package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("PROJLIST_CONFIG_DIR", dir)
	t.Setenv("HOME", dir)
	return dir
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	home := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, DefaultKey, cfg.Storage.Key)
	assert.Equal(t, filepath.Join(home, ".projlist"), cfg.Storage.Dir)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, filepath.Join(home, ".projlist", "projlist.log"), cfg.Log.File)
	assert.Equal(t, "auto", cfg.TUI.Theme)
	assert.False(t, cfg.TUI.Inline)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.yaml")
	yamlContent := `storage:
  backend: file
  dir: /tmp/projlist-test
  key: my.Projects
log:
  level: debug
  format: console
tui:
  theme: dark
  inline: true
`
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.Equal(t, "/tmp/projlist-test", cfg.Storage.Dir)
	assert.Equal(t, "my.Projects", cfg.Storage.Key)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "dark", cfg.TUI.Theme)
	assert.True(t, cfg.TUI.Inline)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  backend: file\n"), 0o600))

	t.Setenv("PROJLIST_STORAGE_BACKEND", "REDIS")
	t.Setenv("PROJLIST_STORAGE_REDIS_ADDR", "127.0.0.1:6390")
	t.Setenv("PROJLIST_STORAGE_REDIS_DB", "3")
	t.Setenv("PROJLIST_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, BackendRedis, cfg.Storage.Backend)
	assert.Equal(t, "127.0.0.1:6390", cfg.Storage.RedisAddr)
	assert.Equal(t, 3, cfg.Storage.RedisDB)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadWithOverrides_WinOverEnvAndDeriveLogFile(t *testing.T) {
	isolate(t)
	t.Setenv("PROJLIST_STORAGE_BACKEND", "sqlite")
	data := t.TempDir()

	cfg, err := LoadWithOverrides("", map[string]any{
		"storage.backend": "file",
		"storage.dir":     data,
	})
	require.NoError(t, err)

	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.Equal(t, data, cfg.Storage.Dir)
	assert.Equal(t, filepath.Join(data, "projlist.log"), cfg.Log.File)
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	isolate(t)
	t.Setenv("PROJLIST_STORAGE_BACKEND", "etcd")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown storage backend")
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("storage: [unclosed"), 0o600))

	_, err := Load("")
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "ok", mutate: func(*Config) {}},
		{name: "empty key", mutate: func(c *Config) { c.Storage.Key = " " }, wantErr: "storage key"},
		{name: "file key with slash", mutate: func(c *Config) {
			c.Storage.Backend = BackendFile
			c.Storage.Key = "a/b"
		}, wantErr: "file name"},
		{name: "log level", mutate: func(c *Config) { c.Log.Level = "loud" }, wantErr: "log level"},
		{name: "log format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: "log format"},
		{name: "theme", mutate: func(c *Config) { c.TUI.Theme = "neon" }, wantErr: "tui theme"},
		{name: "redis db", mutate: func(c *Config) { c.Storage.RedisDB = -1 }, wantErr: "redis db"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Storage: Storage{Dir: t.TempDir()}}
			cfg.Normalize()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "storage.backend", envKey("PROJLIST_STORAGE_BACKEND"))
	assert.Equal(t, "storage.redis_addr", envKey("PROJLIST_STORAGE_REDIS_ADDR"))
	assert.Equal(t, "tui.theme", envKey("PROJLIST_TUI_THEME"))
}
