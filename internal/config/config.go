package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/pdxmph/chores-tui/internal/ids"
	"github.com/pdxmph/chores-tui/internal/logging"
)

// AppName is the configuration directory name
const AppName = "chores-tui"

// Backends accepted in [storage].backend; empty means pick automatically
var Backends = []string{"", "sqlite", "file", "memory"}

// Config holds the application configuration
type Config struct {
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
	IDs     IDConfig      `toml:"ids"`
}

// StorageConfig holds storage-related configuration
type StorageConfig struct {
	Backend string `toml:"backend"`
	Path    string `toml:"path"` // sqlite database file
	Dir     string `toml:"dir"`  // file backend directory
}

// LogConfig holds logging configuration
type LogConfig struct {
	Path  string `toml:"path"`
	Level string `toml:"level"`
}

// IDConfig selects the task id generator
type IDConfig struct {
	Kind string `toml:"kind"`
}

// Environment variables that override the config file
const (
	EnvBackend  = "CHORES_BACKEND"
	EnvDB       = "CHORES_DB"
	EnvDir      = "CHORES_DIR"
	EnvLog      = "CHORES_LOG"
	EnvLogLevel = "CHORES_LOG_LEVEL"
	EnvIDs      = "CHORES_IDS"
)

// Default returns the default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	dataDir := filepath.Join(homeDir, ".config", "chores")
	return &Config{
		Storage: StorageConfig{
			Backend: "sqlite",
			Path:    filepath.Join(dataDir, "chores.db"),
			Dir:     filepath.Join(dataDir, "data"),
		},
		Log: LogConfig{
			Path:  filepath.Join(Dir(), "chores.log"),
			Level: "info",
		},
		IDs: IDConfig{
			Kind: ids.KindXID,
		},
	}
}

// Dir returns the configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(homeDir, ".config", AppName)
}

// Path returns the standard config file location
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load loads configuration from the standard location
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom loads configuration from a specific path, then applies
// overrides from a .env file next to it and from the environment.
func LoadFrom(configPath string) (*Config, error) {
	// Start with defaults
	cfg := Default()

	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// No config file, keep defaults
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	dotenv, err := readDotenv(filepath.Join(filepath.Dir(configPath), ".env"))
	if err != nil {
		return nil, err
	}
	cfg.applyEnv(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	})

	// Expand home directory in paths
	cfg.Storage.Path = expandPath(cfg.Storage.Path)
	cfg.Storage.Dir = expandPath(cfg.Storage.Dir)
	cfg.Log.Path = expandPath(cfg.Log.Path)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readDotenv(path string) (map[string]string, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return vars, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	overrides := []struct {
		key   string
		field *string
	}{
		{EnvBackend, &c.Storage.Backend},
		{EnvDB, &c.Storage.Path},
		{EnvDir, &c.Storage.Dir},
		{EnvLog, &c.Log.Path},
		{EnvLogLevel, &c.Log.Level},
		{EnvIDs, &c.IDs.Kind},
	}
	for _, o := range overrides {
		if v, ok := lookup(o.key); ok {
			*o.field = v
		}
	}
}

// Overrides holds command-line settings that win over file and environment.
// Empty fields leave the loaded value alone.
type Overrides struct {
	Backend string
	DBPath  string
	Debug   bool
}

// Apply sets the overrides on c, expanding ~ in paths, and revalidates
func (o Overrides) Apply(c *Config) error {
	if o.Backend != "" {
		c.Storage.Backend = o.Backend
	}
	if o.DBPath != "" {
		c.Storage.Path = expandPath(o.DBPath)
	}
	if o.Debug {
		c.Log.Level = "debug"
	}
	return c.Validate()
}

// Validate rejects settings the application cannot run with
func (c *Config) Validate() error {
	if !slices.Contains(Backends, c.Storage.Backend) {
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if _, err := ids.New(c.IDs.Kind); err != nil {
		return err
	}
	if c.Log.Path == "" {
		return fmt.Errorf("log path is empty")
	}
	return nil
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, path[1:])
	}
	return path
}

// Save saves the configuration to the standard location
func (c *Config) Save() error {
	if err := os.MkdirAll(Dir(), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return c.SaveTo(Path())
}

// SaveTo saves the configuration to a specific path
func (c *Config) SaveTo(configPath string) error {
	f, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	return nil
}
