// Package core contains the business logic for taskhorizon: the task
// manager, recurrence computation, validation, and configuration.
package core

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
)

// DefaultHorizonYears is how far into the future a recurring series is
// materialized at creation time.
const DefaultHorizonYears = 5

// Config holds the runtime settings for the task store.
type Config struct {
	// StorePath is the location of the persisted CSV file.
	StorePath string
	// HorizonYears bounds recurring-series expansion, measured from the
	// moment of creation.
	HorizonYears int
}

// ConfigurationManager loads configuration from the .taskhorizon file and
// the environment.
type ConfigurationManager interface {
	Load() (*Config, error)
}

// viperConfigManager implements ConfigurationManager using Viper.
type viperConfigManager struct {
	basePath string
}

// NewConfigurationManager creates a ConfigurationManager that reads
// .taskhorizon.yaml relative to basePath.
func NewConfigurationManager(basePath string) ConfigurationManager {
	return &viperConfigManager{basePath: basePath}
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig(basePath string) *Config {
	return &Config{
		StorePath:    filepath.Join(basePath, "tasks.csv"),
		HorizonYears: DefaultHorizonYears,
	}
}

// Load reads .taskhorizon.yaml from the base path. A missing file yields the
// defaults. The TASKS_CSV_PATH environment variable overrides the configured
// store path either way.
func (cm *viperConfigManager) Load() (*Config, error) {
	cfg := DefaultConfig(cm.basePath)

	v := viper.New()
	v.SetConfigName(".taskhorizon")
	v.SetConfigType("yaml")
	v.AddConfigPath(cm.basePath)

	v.SetDefault("store.path", cfg.StorePath)
	v.SetDefault("horizon.years", cfg.HorizonYears)
	_ = v.BindEnv("store.path", "TASKS_CSV_PATH")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading .taskhorizon config: %w", err)
		}
	}

	cfg.StorePath = v.GetString("store.path")
	cfg.HorizonYears = v.GetInt("horizon.years")
	if cfg.HorizonYears <= 0 {
		cfg.HorizonYears = DefaultHorizonYears
	}

	return cfg, nil
}
