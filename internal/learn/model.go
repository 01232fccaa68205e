package learn

import (
	"sort"

	"github.com/joshsymonds/scanwise/internal/model"
)

// epsilon guards the confidence denominator.
const epsilon = 1e-9

// FieldModel predicts one field's value from receipt text. Models are
// rebuilt wholesale on each training run and live in memory only.
type FieldModel struct {
	Field model.FieldName
	// Weights holds, per label, the relative feature frequencies:
	// total occurrences across the label's examples divided by the
	// label's example count.
	Weights map[string]map[string]float64
	// DefaultLabel is the majority class, used when no feature overlaps.
	DefaultLabel string
	ExampleCount int
}

// Train builds a model for one field from labeled examples.
// Examples without a label for the field are ignored; nil is returned
// when nothing is labeled.
func Train(field model.FieldName, examples []model.TrainingExample) *FieldModel {
	totals := map[string]map[string]float64{}
	counts := map[string]int{}

	for _, ex := range examples {
		label, ok := ex.Label(field)
		if !ok {
			continue
		}
		bag := Features(field, ex.Text)
		if totals[label] == nil {
			totals[label] = map[string]float64{}
		}
		for feat, v := range bag {
			totals[label][feat] += v
		}
		counts[label]++
	}

	if len(counts) == 0 {
		return nil
	}

	weights := make(map[string]map[string]float64, len(totals))
	for label, feats := range totals {
		n := float64(counts[label])
		table := make(map[string]float64, len(feats))
		for feat, total := range feats {
			table[feat] = total / n
		}
		weights[label] = table
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	return &FieldModel{
		Field:        field,
		Weights:      weights,
		DefaultLabel: majorityLabel(counts),
		ExampleCount: total,
	}
}

// Predict scores text against every label and returns the best label
// with a normalized-margin confidence in [0,1].
func (m *FieldModel) Predict(text string) (string, float64) {
	if len(m.Weights) == 1 {
		return m.DefaultLabel, 1.0
	}

	bag := Features(m.Field, text)

	type scored struct {
		label string
		score float64
	}
	scores := make([]scored, 0, len(m.Weights))
	for label, table := range m.Weights {
		var s float64
		for feat, v := range bag {
			s += v * table[feat]
		}
		scores = append(scores, scored{label: label, score: s})
	}

	// Stable order before ranking so equal scores resolve identically
	// across runs.
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].score != scores[j].score {
			return scores[i].score > scores[j].score
		}
		return scores[i].label < scores[j].label
	})

	top1 := scores[0]
	if top1.score <= 0 {
		return m.DefaultLabel, 0.0
	}

	// Ties go to the default label.
	if len(scores) > 1 && scores[1].score == top1.score {
		for _, s := range scores {
			if s.score == top1.score && s.label == m.DefaultLabel {
				top1 = s
				break
			}
		}
	}

	top2 := scores[1].score
	confidence := (top1.score - top2) / (top1.score + epsilon)
	if confidence < 0 {
		confidence = 0
	} else if confidence > 1 {
		confidence = 1
	}
	return top1.label, confidence
}

// majorityLabel picks the label with the most examples, breaking ties
// lexicographically for determinism.
func majorityLabel(counts map[string]int) string {
	best, bestCount := "", -1
	for label, n := range counts {
		if n > bestCount || (n == bestCount && label < best) {
			best, bestCount = label, n
		}
	}
	return best
}
