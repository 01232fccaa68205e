// Package classify decides which kind of receipt a piece of OCR text
// represents before type-specific extraction runs.
package classify

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/joshsymonds/scanwise/internal/model"
)

// regexSignal adds a fixed score bonus when a strong phrasing pattern
// fires for a type, independent of term counts.
type regexSignal struct {
	re    *regexp.Regexp
	bonus float64
}

// Classifier scores text against per-type term dictionaries plus regex
// signals. It is stateless and safe for concurrent use.
type Classifier struct {
	signals map[model.ReceiptType][]regexSignal
}

// New creates a classifier with the built-in dictionaries and signals.
func New() *Classifier {
	return &Classifier{
		signals: map[model.ReceiptType][]regexSignal{
			model.ReceiptTypeGas: {
				{re: regexp.MustCompile(`(?i)\bgallons?\b`), bonus: 3.0},
				{re: regexp.MustCompile(`(?i)price\s*/?\s*gal(lon)?\b`), bonus: 3.0},
				{re: regexp.MustCompile(`(?i)\bpump\s*#?\s*\d`), bonus: 2.0},
			},
			model.ReceiptTypeRestaurant: {
				{re: regexp.MustCompile(`(?i)\b(tip|gratuity)\b`), bonus: 3.0},
				{re: regexp.MustCompile(`(?i)\bserver\s*:?\s*\w`), bonus: 2.0},
				{re: regexp.MustCompile(`(?i)\btable\s*#?\s*\d`), bonus: 2.0},
			},
			model.ReceiptTypeRetail: {
				{re: regexp.MustCompile(`(?i)\b(sku|upc)\b`), bonus: 3.0},
				{re: regexp.MustCompile(`(?i)\bqty\s*:?\s*\d`), bonus: 2.0},
			},
		},
	}
}

// Classify returns the best-scoring receipt type. Ties and all-zero
// scores resolve to retail; the result is never unknown.
func (c *Classifier) Classify(text string) model.ReceiptType {
	scores := c.Scores(text)

	gas := scores[model.ReceiptTypeGas]
	restaurant := scores[model.ReceiptTypeRestaurant]
	retail := scores[model.ReceiptTypeRetail]

	switch {
	case gas > restaurant && gas > retail:
		return model.ReceiptTypeGas
	case restaurant > gas && restaurant > retail:
		return model.ReceiptTypeRestaurant
	default:
		return model.ReceiptTypeRetail
	}
}

// Scores exposes the raw per-type scores, mostly for diagnostics.
func (c *Classifier) Scores(text string) map[model.ReceiptType]float64 {
	tokens := tokenize(text)

	scores := make(map[model.ReceiptType]float64, 3)
	for typ, dict := range termDictionaries {
		var score float64
		for _, tok := range tokens {
			if w, ok := dict[tok]; ok {
				score += w
			}
		}
		for _, sig := range c.signals[typ] {
			if sig.re.MatchString(text) {
				score += sig.bonus
			}
		}
		scores[typ] = score
	}
	return scores
}

// tokenize case-folds, strips non-alphanumeric runes and splits on
// whitespace. Tokens that become empty after stripping are dropped.
func tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		var b strings.Builder
		for _, r := range f {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				b.WriteRune(r)
			}
		}
		if b.Len() > 0 {
			tokens = append(tokens, b.String())
		}
	}
	return tokens
}
