package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/joshsymonds/scanwise/internal/model"
)

// Validation errors.
var (
	ErrNilContext        = errors.New("context cannot be nil")
	ErrEmptyString       = errors.New("string parameter cannot be empty")
	ErrInvalidLimits     = errors.New("invalid storage limits")
	ErrInvalidExample    = errors.New("invalid training example")
	ErrInvalidCorrection = errors.New("invalid correction")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateExample validates a training example before persistence.
func validateExample(ex *model.TrainingExample) error {
	if ex == nil {
		return fmt.Errorf("%w: nil", ErrInvalidExample)
	}
	if strings.TrimSpace(ex.Text) == "" {
		return fmt.Errorf("%w: empty text", ErrInvalidExample)
	}
	if ex.Hash == "" {
		return fmt.Errorf("%w: missing hash", ErrInvalidExample)
	}
	if len(ex.Labels) == 0 {
		return fmt.Errorf("%w: no labels", ErrInvalidExample)
	}
	return nil
}

// validateCorrection validates a correction before persistence.
func validateCorrection(c *model.Correction) error {
	if c == nil {
		return fmt.Errorf("%w: nil", ErrInvalidCorrection)
	}
	if c.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidCorrection)
	}
	if c.Field == "" {
		return fmt.Errorf("%w: missing field", ErrInvalidCorrection)
	}
	if c.TextHash == "" {
		return fmt.Errorf("%w: missing text hash", ErrInvalidCorrection)
	}
	return nil
}
