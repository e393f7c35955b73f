// Package internal provides the App struct that wires all components of
// taskhorizon together and initializes the CLI layer.
package internal

import (
	"os"
	"path/filepath"

	"taskhorizon/internal/cli"
	"taskhorizon/internal/core"
	"taskhorizon/internal/observability"
	"taskhorizon/internal/storage"
)

// App holds all service dependencies for taskhorizon.
type App struct {
	BasePath string

	Config   *core.Config
	Store    *storage.CSVStore
	EventLog observability.EventLog
	TaskMgr  core.TaskManager
}

// NewApp creates and wires all components. basePath is the directory
// holding .taskhorizon.yaml, the default tasks.csv, and the event log.
func NewApp(basePath string) (*App, error) {
	app := &App{BasePath: basePath}

	cfgMgr := core.NewConfigurationManager(basePath)
	cfg, err := cfgMgr.Load()
	if err != nil {
		// A broken config file falls back to defaults.
		cfg = core.DefaultConfig(basePath)
	}
	app.Config = cfg

	eventLogPath := filepath.Join(basePath, ".taskhorizon_events.jsonl")
	app.EventLog, err = observability.NewJSONLEventLog(eventLogPath)
	if err != nil {
		// Non-fatal: run without event recording.
		app.EventLog = nil
	}

	app.Store = storage.NewCSVStore(cfg.StorePath)
	app.TaskMgr = core.NewTaskManager(app.Store, app.EventLog, cfg.HorizonYears)

	cli.BasePath = basePath
	cli.StorePath = cfg.StorePath
	cli.TaskMgr = app.TaskMgr
	cli.EventLog = app.EventLog

	return app, nil
}

// ResolveBasePath picks the data directory: TASKHORIZON_HOME if set,
// otherwise the nearest ancestor directory containing .taskhorizon.yaml,
// otherwise the current directory.
func ResolveBasePath() string {
	if home := os.Getenv("TASKHORIZON_HOME"); home != "" {
		return home
	}

	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, ".taskhorizon.yaml")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	cwd, _ := os.Getwd()
	return cwd
}
