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
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "xdg"))
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	home := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, filepath.Join(home, ".config", "chores", "chores.db"), cfg.Storage.Path)
	assert.Equal(t, filepath.Join(home, "xdg", AppName, "chores.log"), cfg.Log.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "xid", cfg.IDs.Kind)
}

func TestLoadFromFile(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, `
[storage]
backend = "file"
dir = "~/chores-data"

[log]
level = "debug"

[ids]
kind = "uuid"
`)

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, filepath.Join(home, "chores-data"), cfg.Storage.Dir)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "uuid", cfg.IDs.Kind)
	// Untouched keys keep their defaults
	assert.Equal(t, filepath.Join(home, ".config", "chores", "chores.db"), cfg.Storage.Path)
}

func TestLoadFromBadTOML(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[storage\nbackend=")

	_, err := LoadFrom(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}

func TestEnvironmentOverrides(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	writeFile(t, path, "[storage]\nbackend = \"sqlite\"\n")
	writeFile(t, filepath.Join(dir, ".env"), "CHORES_BACKEND=file\nCHORES_DIR=/tmp/from-dotenv\nCHORES_LOG_LEVEL=warn\n")

	t.Setenv(EnvLogLevel, "error")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "file", cfg.Storage.Backend, ".env beats the config file")
	assert.Equal(t, "/tmp/from-dotenv", cfg.Storage.Dir)
	assert.Equal(t, "error", cfg.Log.Level, "the environment beats .env")
}

func TestValidate(t *testing.T) {
	isolate(t)

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"backend", func(c *Config) { c.Storage.Backend = "mysql" }},
		{"level", func(c *Config) { c.Log.Level = "chatty" }},
		{"ids", func(c *Config) { c.IDs.Kind = "timestamp" }},
		{"log path", func(c *Config) { c.Log.Path = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			require.NoError(t, cfg.Validate())
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	cfg := Default()
	cfg.Storage.Backend = ""
	assert.NoError(t, cfg.Validate(), "empty backend means automatic selection")
}

func TestLoadRejectsInvalidEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv(EnvBackend, "cloud")

	_, err := Load()
	assert.Error(t, err)
}

func TestSaveAndReload(t *testing.T) {
	isolate(t)

	cfg := Default()
	cfg.Storage.Backend = "memory"
	cfg.IDs.Kind = "uuid"
	require.NoError(t, cfg.Save())
	assert.FileExists(t, Path())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestOverridesApply(t *testing.T) {
	home := isolate(t)

	cfg := Default()
	require.NoError(t, Overrides{}.Apply(cfg))
	assert.Equal(t, Default(), cfg, "empty overrides change nothing")

	err := Overrides{Backend: "file", DBPath: "~/elsewhere/chores.db", Debug: true}.Apply(cfg)
	require.NoError(t, err)
	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, filepath.Join(home, "elsewhere", "chores.db"), cfg.Storage.Path)
	assert.Equal(t, "debug", cfg.Log.Level)

	err = Overrides{DBPath: "/abs/chores.db"}.Apply(cfg)
	require.NoError(t, err)
	assert.Equal(t, "/abs/chores.db", cfg.Storage.Path)

	assert.Error(t, Overrides{Backend: "cloud"}.Apply(cfg))
}
