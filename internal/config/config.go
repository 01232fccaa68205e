package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/joshsymonds/scanwise/internal/scheduler"
	"github.com/joshsymonds/scanwise/internal/storage"
)

// Defaults applied when the config file and environment are silent.
const (
	DefaultDatabasePath = "$HOME/.local/share/scanwise/scanwise.db"

	defaultMinExamples   = 10
	defaultMinInterval   = 24 * time.Hour
	defaultCheckInterval = time.Hour
)

// Settings is the resolved application configuration.
type Settings struct {
	DatabasePath string
	Training     scheduler.Config
	Store        storage.Limits
}

// Load resolves settings from viper, applying defaults and expanding
// the database path.
func Load() Settings {
	s := Settings{
		DatabasePath: viper.GetString("database.path"),
		Training: scheduler.Config{
			MinExamples:   viper.GetInt("training.min_examples"),
			MinInterval:   viper.GetDuration("training.min_interval"),
			CheckInterval: viper.GetDuration("training.check_interval"),
		},
		Store: storage.Limits{
			MaxExamples:    viper.GetInt("store.max_examples"),
			MaxCorrections: viper.GetInt("store.max_corrections"),
		},
	}

	if s.DatabasePath == "" {
		s.DatabasePath = DefaultDatabasePath
	}
	s.DatabasePath = ExpandPath(s.DatabasePath)

	if s.Training.MinExamples <= 0 {
		s.Training.MinExamples = defaultMinExamples
	}
	if s.Training.MinInterval <= 0 {
		s.Training.MinInterval = defaultMinInterval
	}
	if s.Training.CheckInterval <= 0 {
		s.Training.CheckInterval = defaultCheckInterval
	}

	defaults := storage.DefaultLimits()
	if s.Store.MaxExamples <= 0 {
		s.Store.MaxExamples = defaults.MaxExamples
	}
	if s.Store.MaxCorrections <= 0 {
		s.Store.MaxCorrections = defaults.MaxCorrections
	}

	return s
}
