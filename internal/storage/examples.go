package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/joshsymonds/scanwise/internal/model"
)

// SaveExample stores a training example. An example sharing the hash of
// a stored one replaces it; afterwards the store evicts oldest-first
// back down to its cap.
func (s *SQLiteStorage) SaveExample(ctx context.Context, ex *model.TrainingExample) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateExample(ex); err != nil {
		return err
	}

	labels, err := json.Marshal(ex.Labels)
	if err != nil {
		return fmt.Errorf("failed to marshal labels: %w", err)
	}

	query := `
		INSERT INTO training_examples (hash, text, labels, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(hash) DO UPDATE SET
			text = excluded.text,
			labels = excluded.labels,
			created_at = excluded.created_at`

	if _, err := s.db.ExecContext(ctx, query, ex.Hash, ex.Text, string(labels), ex.CreatedAt); err != nil {
		return fmt.Errorf("failed to save training example: %w", err)
	}

	return s.evictOldestExamples(ctx)
}

// evictOldestExamples trims the store to its cap, oldest first.
func (s *SQLiteStorage) evictOldestExamples(ctx context.Context) error {
	query := `
		DELETE FROM training_examples
		WHERE hash NOT IN (
			SELECT hash FROM training_examples
			ORDER BY created_at DESC, rowid DESC
			LIMIT ?
		)`
	if _, err := s.db.ExecContext(ctx, query, s.limits.MaxExamples); err != nil {
		return fmt.Errorf("failed to evict old examples: %w", err)
	}
	return nil
}

// GetExamples returns all stored examples, oldest first. Individually
// malformed rows are skipped, never fatal.
func (s *SQLiteStorage) GetExamples(ctx context.Context) ([]model.TrainingExample, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT hash, text, labels, created_at
		FROM training_examples
		ORDER BY created_at ASC, rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query examples: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var examples []model.TrainingExample
	for rows.Next() {
		var (
			ex        model.TrainingExample
			labelsRaw string
		)
		if err := rows.Scan(&ex.Hash, &ex.Text, &labelsRaw, &ex.CreatedAt); err != nil {
			slog.Warn("skipping unreadable training example row", "error", err)
			continue
		}
		if err := json.Unmarshal([]byte(labelsRaw), &ex.Labels); err != nil {
			slog.Warn("skipping training example with malformed labels",
				"hash", ex.Hash, "error", err)
			continue
		}
		examples = append(examples, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate examples: %w", err)
	}

	return examples, nil
}

// GetExamplesWithLabel returns the examples carrying a non-empty label
// for the given field.
func (s *SQLiteStorage) GetExamplesWithLabel(ctx context.Context, field model.FieldName) ([]model.TrainingExample, error) {
	examples, err := s.GetExamples(ctx)
	if err != nil {
		return nil, err
	}

	var labeled []model.TrainingExample
	for _, ex := range examples {
		if _, ok := ex.Label(field); ok {
			labeled = append(labeled, ex)
		}
	}
	return labeled, nil
}

// CountExamples returns the number of stored examples.
func (s *SQLiteStorage) CountExamples(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM training_examples").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count examples: %w", err)
	}
	return count, nil
}

// ClearExamples removes every stored example.
func (s *SQLiteStorage) ClearExamples(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM training_examples"); err != nil {
		return fmt.Errorf("failed to clear examples: %w", err)
	}
	return nil
}

// exportedExample is the portable serialized form of one example.
type exportedExample struct {
	CreatedAt time.Time                  `json:"created_at"`
	Labels    map[model.FieldName]string `json:"labels"`
	Text      string                     `json:"text"`
	Hash      string                     `json:"hash"`
}

// ExportExamples writes the full example set as a JSON array.
func (s *SQLiteStorage) ExportExamples(ctx context.Context, w io.Writer) error {
	examples, err := s.GetExamples(ctx)
	if err != nil {
		return err
	}

	exported := make([]exportedExample, 0, len(examples))
	for _, ex := range examples {
		exported = append(exported, exportedExample{
			Text:      ex.Text,
			Labels:    ex.Labels,
			Hash:      ex.Hash,
			CreatedAt: ex.CreatedAt,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(exported); err != nil {
		return fmt.Errorf("failed to encode examples: %w", err)
	}
	return nil
}

// ImportExamples replaces the active example set with the contents of a
// previously exported JSON array. Records that fail validation are
// skipped; the rest import normally.
func (s *SQLiteStorage) ImportExamples(ctx context.Context, r io.Reader) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var exported []exportedExample
	if err := json.NewDecoder(r).Decode(&exported); err != nil {
		return 0, fmt.Errorf("failed to decode examples: %w", err)
	}

	if err := s.ClearExamples(ctx); err != nil {
		return 0, err
	}

	imported := 0
	for _, rec := range exported {
		ex := model.TrainingExample{
			Text:      rec.Text,
			Labels:    rec.Labels,
			Hash:      rec.Hash,
			CreatedAt: rec.CreatedAt,
		}
		if ex.Hash == "" {
			ex.Hash = model.ContentHash(ex.Text)
		}
		if err := s.SaveExample(ctx, &ex); err != nil {
			slog.Warn("skipping invalid imported example", "error", err)
			continue
		}
		imported++
	}
	return imported, nil
}
