package suggest

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/joshsymonds/scanwise/internal/model"
	"github.com/joshsymonds/scanwise/internal/parse"
)

// Similarity scoring constants. An exact content-hash match dominates;
// excerpt similarity and original-value agreement refine the ranking.
const (
	hashMatchScore     = 10.0
	excerptScoreWeight = 5.0
	originalMatchScore = 3.0
	maxSuggestions     = 5
)

// CorrectionStore is the persistence boundary the engine needs.
type CorrectionStore interface {
	SaveCorrection(ctx context.Context, c *model.Correction) error
	GetCorrections(ctx context.Context, field model.FieldName) ([]model.Correction, error)
}

// Engine records corrections and ranks suggestions for new text.
type Engine struct {
	store CorrectionStore
}

// NewEngine creates a suggestion engine over a correction store.
func NewEngine(store CorrectionStore) *Engine {
	return &Engine{store: store}
}

// RecordCorrection stores one user edit. Edits where nothing changed
// are dropped.
func (e *Engine) RecordCorrection(ctx context.Context, text string, field model.FieldName, original, corrected string) error {
	if original == corrected {
		return nil
	}

	c := model.NewCorrection(text, field, original, corrected, Excerpt(field, text))
	if err := e.store.SaveCorrection(ctx, &c); err != nil {
		return fmt.Errorf("recording correction: %w", err)
	}
	return nil
}

// Suggestions returns up to five alternative values for a field of the
// given text, ranked by accumulated similarity to past corrections.
// Values equal to the currently extracted one are never suggested.
func (e *Engine) Suggestions(ctx context.Context, text string, field model.FieldName, currentValue string) ([]string, error) {
	corrections, err := e.store.GetCorrections(ctx, field)
	if err != nil {
		return nil, fmt.Errorf("loading corrections: %w", err)
	}
	if len(corrections) == 0 {
		return nil, nil
	}

	hash := model.ContentHash(text)
	excerpt := Excerpt(field, text)

	scores := make(map[string]float64)
	for _, c := range corrections {
		if c.Corrected == currentValue {
			continue
		}

		var score float64
		if c.TextHash == hash {
			score += hashMatchScore
		}
		score += excerptScoreWeight * TrigramSimilarity(excerpt, c.Excerpt)
		if c.Original == currentValue {
			score += originalMatchScore
		}

		if score > 0 {
			scores[c.Corrected] += score
		}
	}

	if len(scores) == 0 {
		return nil, nil
	}

	type ranked struct {
		value string
		score float64
	}
	all := make([]ranked, 0, len(scores))
	for value, score := range scores {
		all = append(all, ranked{value: value, score: score})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].score != all[j].score {
			return all[i].score > all[j].score
		}
		return all[i].value < all[j].value
	})

	if len(all) > maxSuggestions {
		all = all[:maxSuggestions]
	}
	values := make([]string, len(all))
	for i, r := range all {
		values[i] = r.value
	}
	return values, nil
}

var (
	amountLineRe = regexp.MustCompile(`(?i)\b(TOTAL|AMOUNT|BALANCE|DUE)\b`)
	dateLineRe   = regexp.MustCompile(`(?i)\bDATE\b`)
	addrLineRe   = regexp.MustCompile(`^\d+\s+\w+|[A-Za-z][A-Za-z .]*,\s*[A-Z]{2}\b|\b\d{5}(-\d{4})?\b`)
)

// Excerpt extracts the part of the text relevant to a field, matching
// the windows the field models draw their features from.
func Excerpt(field model.FieldName, text string) string {
	lines := nonBlankLines(text)

	switch field {
	case model.FieldMerchantName:
		if len(lines) > 5 {
			lines = lines[:5]
		}
		return strings.Join(lines, "\n")
	case model.FieldAmount:
		if match := matchingLines(lines, func(l string) bool {
			return amountLineRe.MatchString(l) || parse.HasAmount(l)
		}); match != "" {
			return match
		}
	case model.FieldTransactionDate:
		if match := matchingLines(lines, func(l string) bool {
			return dateLineRe.MatchString(l) || parse.HasDate(l)
		}); match != "" {
			return match
		}
	case model.FieldMerchantAddress:
		if match := matchingLines(lines, func(l string) bool {
			return addrLineRe.MatchString(strings.TrimSpace(l))
		}); match != "" {
			return match
		}
	}

	return strings.TrimSpace(text)
}

func matchingLines(lines []string, pred func(string) bool) string {
	var matched []string
	for _, line := range lines {
		if pred(line) {
			matched = append(matched, line)
		}
	}
	return strings.Join(matched, "\n")
}

func nonBlankLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
