package main

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/joshsymonds/scanwise/internal/common"
	"github.com/joshsymonds/scanwise/internal/config"
	"github.com/joshsymonds/scanwise/internal/engine"
	"github.com/joshsymonds/scanwise/internal/entity"
	"github.com/joshsymonds/scanwise/internal/learn"
	"github.com/joshsymonds/scanwise/internal/model"
	"github.com/joshsymonds/scanwise/internal/storage"
	"github.com/joshsymonds/scanwise/internal/suggest"
)

// initStorage opens the configured database and applies migrations.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, config.Settings, error) {
	settings := config.Load()

	store, err := storage.NewSQLiteStorageWithLimits(settings.DatabasePath, settings.Store)
	if err != nil {
		return nil, settings, common.NewUserError(
			fmt.Sprintf("could not open database at %s", settings.DatabasePath), err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, settings, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, settings, nil
}

// newEngine assembles the full parsing pipeline over a store. Field
// models are rebuilt from stored examples; a training failure degrades
// to heuristics-only parsing.
func newEngine(ctx context.Context, store *storage.SQLiteStorage) *engine.Engine {
	models := learn.NewModelSet()
	trainer := learn.NewTrainer(store, models)
	if _, err := trainer.TrainAll(ctx); err != nil {
		slog.Warn("model training failed, using heuristics only", "error", err)
	}

	adapter := entity.NewAdapter(entity.NewRegexRecognizer())
	suggester := suggest.NewEngine(store)

	return engine.New(store, adapter, models, suggester)
}

// parseFieldName validates a --field flag value.
func parseFieldName(s string) (model.FieldName, error) {
	for _, field := range model.TrainableFields {
		if string(field) == s {
			return field, nil
		}
	}

	names := make([]string, len(model.TrainableFields))
	for i, field := range model.TrainableFields {
		names[i] = string(field)
	}
	sort.Strings(names)
	return "", fmt.Errorf("unknown field %q (valid: %s)", s, strings.Join(names, ", "))
}
