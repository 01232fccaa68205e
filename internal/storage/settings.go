package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/joshsymonds/scanwise/internal/common"
)

// ErrSettingNotFound is returned when a settings key has no value.
var ErrSettingNotFound = fmt.Errorf("setting %w", common.ErrNotFound)

// GetSetting returns the value stored under key.
func (s *SQLiteStorage) GetSetting(ctx context.Context, key string) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}
	if err := validateString(key, "key"); err != nil {
		return "", err
	}

	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", ErrSettingNotFound, key)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return value, nil
}

// SetSetting stores a value under key, replacing any prior value.
func (s *SQLiteStorage) SetSetting(ctx context.Context, key, value string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(key, "key"); err != nil {
		return err
	}

	query := `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to set setting %s: %w", key, err)
	}
	return nil
}
