// Package testutil provides test utilities shared across packages:
// in-memory databases with migrations applied and seed helpers for
// training data.
package testutil

import (
	"context"
	"testing"

	"github.com/joshsymonds/scanwise/internal/model"
	"github.com/joshsymonds/scanwise/internal/storage"
)

// TestDB wraps an in-memory store for one test.
type TestDB struct {
	Storage *storage.SQLiteStorage
	t       *testing.T
}

// SetupTestDB creates a migrated in-memory database. Cleanup is
// registered automatically.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close test database: %v", err)
		}
	})

	return &TestDB{Storage: store, t: t}
}

// SeedExample stores a training example built from text and labels,
// failing the test on error.
func (db *TestDB) SeedExample(text string, labels map[model.FieldName]string) model.TrainingExample {
	db.t.Helper()

	ex := model.NewTrainingExample(text, labels)
	if err := db.Storage.SaveExample(context.Background(), &ex); err != nil {
		db.t.Fatalf("failed to seed example: %v", err)
	}
	return ex
}

// SeedCorrection stores a correction, failing the test on error.
func (db *TestDB) SeedCorrection(text string, field model.FieldName, original, corrected, excerpt string) model.Correction {
	db.t.Helper()

	c := model.NewCorrection(text, field, original, corrected, excerpt)
	if err := db.Storage.SaveCorrection(context.Background(), &c); err != nil {
		db.t.Fatalf("failed to seed correction: %v", err)
	}
	return c
}
