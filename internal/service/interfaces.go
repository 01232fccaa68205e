// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"io"
	"time"

	"github.com/joshsymonds/scanwise/internal/model"
)

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Training example operations
	SaveExample(ctx context.Context, ex *model.TrainingExample) error
	GetExamples(ctx context.Context) ([]model.TrainingExample, error)
	GetExamplesWithLabel(ctx context.Context, field model.FieldName) ([]model.TrainingExample, error)
	CountExamples(ctx context.Context) (int, error)
	ClearExamples(ctx context.Context) error
	ExportExamples(ctx context.Context, w io.Writer) error
	ImportExamples(ctx context.Context, r io.Reader) (int, error)

	// Correction operations
	SaveCorrection(ctx context.Context, c *model.Correction) error
	GetCorrections(ctx context.Context, field model.FieldName) ([]model.Correction, error)
	GetAllCorrections(ctx context.Context) ([]model.Correction, error)

	// Settings
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// Parser produces a structured record from raw receipt text.
type Parser interface {
	Parse(ctx context.Context, text string) (*model.ExtractionResult, error)
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
