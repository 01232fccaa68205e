// Package engine orchestrates the receipt parsing pipeline: classify,
// extract, entity fill-in, model override, suggestions, and training
// example capture.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/joshsymonds/scanwise/internal/classify"
	"github.com/joshsymonds/scanwise/internal/common"
	"github.com/joshsymonds/scanwise/internal/entity"
	"github.com/joshsymonds/scanwise/internal/extract"
	"github.com/joshsymonds/scanwise/internal/learn"
	"github.com/joshsymonds/scanwise/internal/model"
	"github.com/joshsymonds/scanwise/internal/parse"
	"github.com/joshsymonds/scanwise/internal/service"
	"github.com/joshsymonds/scanwise/internal/suggest"
)

// predictionThreshold is the minimum model confidence before a
// prediction overrides the heuristic value.
const predictionThreshold = 0.5

// overrideBonus is added to the confidence for each field a model
// confirmed or supplied.
const overrideBonus = 0.1

// ExampleStore persists captured training examples.
type ExampleStore interface {
	SaveExample(ctx context.Context, ex *model.TrainingExample) error
}

// Engine wires the pipeline stages together. All stages besides the
// classifier and extractor are optional; a nil stage is skipped.
type Engine struct {
	storage    ExampleStore
	classifier *classify.Classifier
	entities   *entity.Adapter
	models     *learn.ModelSet
	suggester  *suggest.Engine
}

// New creates an engine. entities, models, and suggester may be nil.
func New(storage ExampleStore, entities *entity.Adapter, models *learn.ModelSet, suggester *suggest.Engine) *Engine {
	return &Engine{
		storage:    storage,
		classifier: classify.New(),
		entities:   entities,
		models:     models,
		suggester:  suggester,
	}
}

// Parse turns raw OCR text into a structured record. The result is
// deterministic for a given text and store/model state; store write
// failures along the way are logged, never returned.
func (e *Engine) Parse(ctx context.Context, text string) (*model.ExtractionResult, error) {
	lines := nonBlankLines(text)
	if len(lines) == 0 {
		return nil, common.ErrEmptyReceipt
	}

	receiptType := e.classifier.Classify(text)
	result := extract.ForType(receiptType).Extract(lines)

	e.fillFromEntities(ctx, text, result)
	overrides := e.applyPredictions(text, result)
	result.Confidence = clamp(fieldRatio(result) + overrideBonus*float64(overrides))

	e.attachSuggestions(ctx, text, result)
	e.captureExample(ctx, text, result)

	return result, nil
}

// Correct records a user correction and, when the corrected value is
// non-empty, stores a training example labeled with it. Store failures
// on the example write are logged; the correction write is the one
// operation that must succeed.
func (e *Engine) Correct(ctx context.Context, text string, field model.FieldName, original, corrected string) error {
	if e.suggester == nil {
		return fmt.Errorf("no correction store configured")
	}
	if err := e.suggester.RecordCorrection(ctx, text, field, original, corrected); err != nil {
		return fmt.Errorf("recording correction: %w", err)
	}

	if corrected == "" || e.storage == nil {
		return nil
	}

	// Label the example with the heuristic extraction plus the user's
	// corrected value, so retraining learns from the fix.
	labels := e.heuristicLabels(text)
	labels[field] = corrected

	ex := model.NewTrainingExample(text, labels)
	e.saveExample(ctx, &ex)
	return nil
}

// fillFromEntities uses the general entity recognizer as a secondary
// evidence source for fields the heuristics left empty.
func (e *Engine) fillFromEntities(ctx context.Context, text string, result *model.ExtractionResult) {
	if e.entities == nil {
		return
	}
	ents := e.entities.Extract(ctx, text)

	if result.MerchantAddress == "" {
		result.MerchantAddress = ents.First(entity.TypeAddress)
	}
	if result.Amount == nil {
		if amount, currency, ok := ents.BestAmount(); ok {
			result.Amount = &amount
			if currency != "" {
				result.Currency = currency
			}
		}
	}
	if !result.DateFound {
		if raw := ents.First(entity.TypeDate); raw != "" {
			if date, ok := parse.ParseDate(raw); ok {
				result.TransactionDate = date
				result.DateFound = true
			}
		}
	}
	result.MerchantPhone = ents.First(entity.TypePhone)
}

// applyPredictions lets trained field models override the heuristics.
// It returns the number of fields a model confirmed or supplied.
func (e *Engine) applyPredictions(text string, result *model.ExtractionResult) int {
	if e.models == nil {
		return 0
	}

	overrides := 0
	for _, field := range model.TrainableFields {
		label, confidence, ok := e.models.Predict(field, text)
		if !ok || confidence <= predictionThreshold || label == "" {
			continue
		}
		if applyPrediction(result, field, label) {
			overrides++
		}
	}
	return overrides
}

// applyPrediction installs a predicted label into the result. Date and
// amount labels must re-parse into typed values; unparsable predictions
// are ignored.
func applyPrediction(result *model.ExtractionResult, field model.FieldName, label string) bool {
	switch field {
	case model.FieldMerchantName:
		result.MerchantName = label
	case model.FieldMerchantAddress:
		result.MerchantAddress = label
	case model.FieldTransactionDate:
		date, ok := parse.ParseDate(label)
		if !ok {
			return false
		}
		result.TransactionDate = date
		result.DateFound = true
	case model.FieldAmount:
		amount, currency, ok := parse.ParseAmount(label)
		if !ok {
			parsed, err := decimal.NewFromString(strings.TrimSpace(label))
			if err != nil {
				return false
			}
			amount = parsed
		}
		result.Amount = &amount
		if currency != "" {
			result.Currency = currency
		}
	default:
		return false
	}
	return true
}

// attachSuggestions asks the correction history for alternatives to
// each field's current value.
func (e *Engine) attachSuggestions(ctx context.Context, text string, result *model.ExtractionResult) {
	if e.suggester == nil {
		return
	}

	suggestions := make(map[model.FieldName][]string)
	for _, field := range model.TrainableFields {
		values, err := e.suggester.Suggestions(ctx, text, field, result.FieldValue(field))
		if err != nil {
			slog.Warn("suggestion lookup failed", "field", field, "error", err)
			continue
		}
		if len(values) > 0 {
			suggestions[field] = values
		}
	}
	if len(suggestions) > 0 {
		result.Suggestions = suggestions
	}
}

// captureExample stores the parse as a training example when it found
// enough to be worth learning from. Best effort only.
func (e *Engine) captureExample(ctx context.Context, text string, result *model.ExtractionResult) {
	if e.storage == nil {
		return
	}
	if result.MerchantName == "" || result.Amount == nil {
		return
	}

	labels := make(map[model.FieldName]string)
	for _, field := range model.TrainableFields {
		if v := result.FieldValue(field); v != "" {
			labels[field] = v
		}
	}

	ex := model.NewTrainingExample(text, labels)
	e.saveExample(ctx, &ex)
}

func (e *Engine) saveExample(ctx context.Context, ex *model.TrainingExample) {
	err := common.WithRetry(ctx, func() error {
		return e.storage.SaveExample(ctx, ex)
	}, service.RetryOptions{MaxAttempts: 2})
	if err != nil {
		slog.Warn("failed to save training example", "error", err)
	}
}

// heuristicLabels runs the classify and extract stages only, returning
// the non-empty field values as labels.
func (e *Engine) heuristicLabels(text string) map[model.FieldName]string {
	labels := make(map[model.FieldName]string)

	lines := nonBlankLines(text)
	if len(lines) == 0 {
		return labels
	}
	result := extract.ForType(e.classifier.Classify(text)).Extract(lines)
	for _, field := range model.TrainableFields {
		if v := result.FieldValue(field); v != "" {
			labels[field] = v
		}
	}
	return labels
}

// fieldRatio is the share of the four core fields that hold a value.
func fieldRatio(result *model.ExtractionResult) float64 {
	found := 0
	for _, field := range model.TrainableFields {
		if result.FieldValue(field) != "" {
			found++
		}
	}
	return float64(found) / float64(len(model.TrainableFields))
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func nonBlankLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}
