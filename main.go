package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pdxmph/chores-tui/internal/config"
	"github.com/pdxmph/chores-tui/internal/ids"
	"github.com/pdxmph/chores-tui/internal/logging"
	"github.com/pdxmph/chores-tui/internal/storage"
	_ "github.com/pdxmph/chores-tui/internal/storage/file"
	_ "github.com/pdxmph/chores-tui/internal/storage/sqlite"
	"github.com/pdxmph/chores-tui/internal/tasklist"
	"github.com/pdxmph/chores-tui/internal/tasks"
	"github.com/pdxmph/chores-tui/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", config.Path(), "path to config file")
	backend := flag.String("backend", "", backendUsage())
	dbPath := flag.String("db", "", "sqlite database path")
	initConfig := flag.Bool("init-config", false, "write the default config file and exit")
	debug := flag.Bool("debug", false, "log at debug level")
	flag.Parse()

	if *initConfig {
		return writeDefaultConfig(*configPath)
	}

	// Load configuration; flags win over file and environment
	cfg, err := config.LoadFrom(*configPath)
	if err != nil {
		return err
	}
	overrides := config.Overrides{Backend: *backend, DBPath: *dbPath, Debug: *debug}
	if err := overrides.Apply(cfg); err != nil {
		return err
	}

	logger, err := logging.New(logging.Config{Path: cfg.Log.Path, Level: cfg.Log.Level})
	if err != nil {
		return err
	}
	defer logger.Close()

	// Open storage
	kv, err := storage.Open(cfg.Storage.Backend, storage.Options{
		Path:   cfg.Storage.Path,
		Dir:    cfg.Storage.Dir,
		Logger: logging.Component(logger.Logger, "storage"),
	})
	if err != nil {
		logger.Error().Err(err).Msg("opening storage")
		return err
	}
	defer kv.Close()
	logger.Info().Str("backend", kv.Name()).Msg("storage ready")

	gen, err := ids.New(cfg.IDs.Kind)
	if err != nil {
		return err
	}

	// Create controller and hydrate it from storage
	controller := tasklist.New(tasks.NewKVStore(kv),
		tasklist.WithLogger(logging.Component(logger.Logger, "tasklist")),
		tasklist.WithIDGenerator(gen),
	)
	controller.Load()

	// Start the program
	p := tea.NewProgram(tui.New(controller), tea.WithAltScreen())
	_, err = p.Run()

	// Pending writes must land before storage closes
	controller.Close()

	if err != nil {
		logger.Error().Err(err).Msg("program exited")
		return err
	}
	return nil
}

// backendUsage names every registered storage backend
func backendUsage() string {
	return fmt.Sprintf("storage backend (%s); empty picks one", strings.Join(storage.List(), ", "))
}

func writeDefaultConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config already exists at %s", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking config file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := config.Default().SaveTo(path); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}
