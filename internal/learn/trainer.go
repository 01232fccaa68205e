package learn

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/joshsymonds/scanwise/internal/model"
)

// ExampleSource supplies labeled training examples, normally the
// storage layer.
type ExampleSource interface {
	GetExamplesWithLabel(ctx context.Context, field model.FieldName) ([]model.TrainingExample, error)
}

// ModelSet is the live snapshot of all field models. Retraining swaps
// whole models in; a reader mid-swap sees either the old or the new
// model, which is acceptable because predictions are confidence-gated.
type ModelSet struct {
	mu     sync.RWMutex
	models map[model.FieldName]*FieldModel
}

// NewModelSet returns an empty snapshot.
func NewModelSet() *ModelSet {
	return &ModelSet{models: make(map[model.FieldName]*FieldModel)}
}

// Predict returns the model's label and confidence for a field, or
// ok=false when no model is trained for it.
func (s *ModelSet) Predict(field model.FieldName, text string) (string, float64, bool) {
	s.mu.RLock()
	m := s.models[field]
	s.mu.RUnlock()
	if m == nil {
		return "", 0, false
	}
	label, confidence := m.Predict(text)
	return label, confidence, true
}

func (s *ModelSet) set(field model.FieldName, m *FieldModel) {
	s.mu.Lock()
	s.models[field] = m
	s.mu.Unlock()
}

// Report summarizes one training run.
type Report struct {
	ExamplesByField map[model.FieldName]int
	// NoData is set when no field had a single labeled example; the
	// prior snapshot stays in place.
	NoData bool
}

// Trainer rebuilds the model set from stored examples.
type Trainer struct {
	source ExampleSource
	models *ModelSet
}

// NewTrainer wires a trainer to its example source and target snapshot.
func NewTrainer(source ExampleSource, models *ModelSet) *Trainer {
	return &Trainer{source: source, models: models}
}

// Models returns the snapshot the trainer maintains.
func (t *Trainer) Models() *ModelSet { return t.models }

// TrainAll retrains every field model from the current example set.
// Fields with no labeled examples keep their previous model.
func (t *Trainer) TrainAll(ctx context.Context) (Report, error) {
	report := Report{ExamplesByField: make(map[model.FieldName]int, len(model.TrainableFields))}

	trainedAny := false
	for _, field := range model.TrainableFields {
		n, err := t.TrainField(ctx, field)
		if err != nil {
			return report, fmt.Errorf("training %s: %w", field, err)
		}
		report.ExamplesByField[field] = n
		if n > 0 {
			trainedAny = true
		}
	}

	if !trainedAny {
		report.NoData = true
		slog.Info("training skipped, no labeled examples")
		return report, nil
	}

	slog.Info("training complete", "examples_by_field", report.ExamplesByField)
	return report, nil
}

// TrainField retrains a single field model and reports how many labeled
// examples backed it. A field with zero examples is left untouched.
func (t *Trainer) TrainField(ctx context.Context, field model.FieldName) (int, error) {
	examples, err := t.source.GetExamplesWithLabel(ctx, field)
	if err != nil {
		return 0, fmt.Errorf("loading examples: %w", err)
	}

	m := Train(field, examples)
	if m == nil {
		return 0, nil
	}

	t.models.set(field, m)
	return m.ExampleCount, nil
}
