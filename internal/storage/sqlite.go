// Package storage provides the data persistence layer: training
// examples, correction history and scalar settings, all in SQLite.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Limits bound the two append-mostly collections.
type Limits struct {
	// MaxExamples caps the training-example store; oldest entries are
	// evicted first.
	MaxExamples int
	// MaxCorrections caps the correction history FIFO.
	MaxCorrections int
}

// DefaultLimits returns the standard store bounds.
func DefaultLimits() Limits {
	return Limits{
		MaxExamples:    1000,
		MaxCorrections: 500,
	}
}

// SQLiteStorage implements the Storage interface using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	dbPath string
	limits Limits
}

// NewSQLiteStorage creates a storage instance with default limits.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	return NewSQLiteStorageWithLimits(dbPath, DefaultLimits())
}

// NewSQLiteStorageWithLimits creates a storage instance with custom
// collection bounds.
func NewSQLiteStorageWithLimits(dbPath string, limits Limits) (*SQLiteStorage, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}
	if limits.MaxExamples <= 0 || limits.MaxCorrections <= 0 {
		return nil, fmt.Errorf("%w: limits must be positive", ErrInvalidLimits)
	}

	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStorage{
		db:     db,
		dbPath: dbPath,
		limits: limits,
	}, nil
}

// Limits returns the configured collection bounds.
func (s *SQLiteStorage) Limits() Limits {
	return s.limits
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
