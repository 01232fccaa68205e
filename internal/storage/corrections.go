package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/joshsymonds/scanwise/internal/model"
)

// SaveCorrection appends a correction to the history and evicts the
// oldest entries past the cap.
func (s *SQLiteStorage) SaveCorrection(ctx context.Context, c *model.Correction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCorrection(c); err != nil {
		return err
	}

	query := `
		INSERT INTO corrections (id, field, original, corrected, text_hash, excerpt, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, query,
		c.ID, string(c.Field), c.Original, c.Corrected, c.TextHash, c.Excerpt, c.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to save correction: %w", err)
	}

	evict := `
		DELETE FROM corrections
		WHERE id NOT IN (
			SELECT id FROM corrections
			ORDER BY created_at DESC, rowid DESC
			LIMIT ?
		)`
	if _, err := s.db.ExecContext(ctx, evict, s.limits.MaxCorrections); err != nil {
		return fmt.Errorf("failed to evict old corrections: %w", err)
	}
	return nil
}

// GetCorrections returns the corrections recorded for a field, oldest
// first.
func (s *SQLiteStorage) GetCorrections(ctx context.Context, field model.FieldName) ([]model.Correction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.queryCorrections(ctx, `
		SELECT id, field, original, corrected, text_hash, excerpt, created_at
		FROM corrections
		WHERE field = ?
		ORDER BY created_at ASC, rowid ASC`, string(field))
}

// GetAllCorrections returns the whole correction history, oldest first.
func (s *SQLiteStorage) GetAllCorrections(ctx context.Context) ([]model.Correction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.queryCorrections(ctx, `
		SELECT id, field, original, corrected, text_hash, excerpt, created_at
		FROM corrections
		ORDER BY created_at ASC, rowid ASC`)
}

func (s *SQLiteStorage) queryCorrections(ctx context.Context, query string, args ...any) ([]model.Correction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query corrections: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var corrections []model.Correction
	for rows.Next() {
		var c model.Correction
		if err := rows.Scan(&c.ID, &c.Field, &c.Original, &c.Corrected, &c.TextHash, &c.Excerpt, &c.CreatedAt); err != nil {
			slog.Warn("skipping unreadable correction row", "error", err)
			continue
		}
		corrections = append(corrections, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate corrections: %w", err)
	}
	return corrections, nil
}
