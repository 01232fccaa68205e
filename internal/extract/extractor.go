// Package extract implements the per-type field extraction heuristics
// that turn line-split OCR text into a baseline ExtractionResult.
package extract

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/joshsymonds/scanwise/internal/model"
	"github.com/joshsymonds/scanwise/internal/parse"
)

// Extractor produces a baseline extraction for one receipt type. The
// engine selects the implementation matching the classifier's output.
// Input lines are blank-trimmed; implementations never see empty lines.
type Extractor interface {
	Type() model.ReceiptType
	Extract(lines []string) *model.ExtractionResult
}

// ForType returns the extractor for a receipt type. Unknown falls back
// to retail, mirroring the classifier's default.
func ForType(t model.ReceiptType) Extractor {
	switch t {
	case model.ReceiptTypeRestaurant:
		return newRestaurantExtractor()
	case model.ReceiptTypeGas:
		return newGasExtractor()
	default:
		return &retailExtractor{}
	}
}

const (
	merchantScanLines = 5
	addressScanEnd    = 7
)

var (
	streetRe    = regexp.MustCompile(`^\d+\s+\w+`)
	cityStateRe = regexp.MustCompile(`[A-Za-z][A-Za-z .]*,\s*[A-Z]{2}\b`)
	zipRe       = regexp.MustCompile(`\b\d{5}(-\d{4})?\b`)

	dateKeywordRe = regexp.MustCompile(`(?i)\bDATE\b`)
)

// amount keyword gating shared by every extractor.
var amountKeywords = []string{"TOTAL", "AMOUNT", "BALANCE DUE", "GRAND TOTAL"}

// base carries the extraction rules shared by all receipt types.
// Variants embed it and override pieces via the options below.
type base struct {
	// useTimeHint enables the time-pattern date heuristic, which only
	// restaurant and gas receipts get.
	useTimeHint bool
	// excludeTipLines drops TIP/GRATUITY lines from amount keyword
	// scanning (restaurant receipts list tips next to the total).
	excludeTipLines bool
}

// extractCommon fills the shared fields of a result.
func (b *base) extractCommon(lines []string, result *model.ExtractionResult) {
	result.MerchantName = b.merchantName(lines)
	result.MerchantAddress = b.merchantAddress(lines)

	if date, ok := b.transactionDate(lines); ok {
		result.TransactionDate = date
		result.DateFound = true
	} else {
		result.TransactionDate = time.Now()
	}

	amount, currency, ok := b.amount(lines)
	if ok {
		result.Amount = &amount
	}
	if currency == "" {
		currency = parse.DefaultCurrency
	}
	result.Currency = currency

	result.Confidence = baselineConfidence(result)
}

// merchantName scans the top of the receipt for the first line that
// looks like a store name rather than metadata.
func (b *base) merchantName(lines []string) string {
	limit := merchantScanLines
	if len(lines) < limit {
		limit = len(lines)
	}

	for i := 0; i < limit; i++ {
		line := strings.TrimSpace(lines[i])
		upper := strings.ToUpper(line)
		if parse.HasDate(line) || parse.HasAmount(line) {
			continue
		}
		if strings.Contains(upper, "RECEIPT") || strings.Contains(upper, "INVOICE") {
			continue
		}
		if isAllUpper(line) || startsWithUpper(line) {
			return line
		}
	}

	if len(lines) > 0 {
		return strings.TrimSpace(lines[0])
	}
	return ""
}

// merchantAddress scans lines 2-7 for street, city/state or ZIP shapes.
func (b *base) merchantAddress(lines []string) string {
	end := addressScanEnd
	if len(lines) < end {
		end = len(lines)
	}
	for i := 1; i < end; i++ {
		line := strings.TrimSpace(lines[i])
		if streetRe.MatchString(line) || cityStateRe.MatchString(line) || zipRe.MatchString(line) {
			return line
		}
	}
	return ""
}

// transactionDate tries keyword-tagged lines, then (for types that want
// it) lines carrying a clock time, then any line with a date.
func (b *base) transactionDate(lines []string) (time.Time, bool) {
	for _, line := range lines {
		if dateKeywordRe.MatchString(line) {
			if t, ok := parse.ParseDate(line); ok {
				return t, true
			}
		}
	}
	if b.useTimeHint {
		for _, line := range lines {
			if parse.HasTime(line) {
				if t, ok := parse.ParseDate(line); ok {
					return t, true
				}
			}
		}
	}
	for _, line := range lines {
		if t, ok := parse.ParseDate(line); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// amount prefers keyword-tagged lines and returns the first hit
// immediately; only when no keyword line parses does it fall back to
// the maximum amount found anywhere (the total is usually the largest
// line item).
func (b *base) amount(lines []string) (decimal.Decimal, string, bool) {
	for _, line := range lines {
		upper := strings.ToUpper(line)

		if b.excludeTipLines && (strings.Contains(upper, "TIP") || strings.Contains(upper, "GRATUITY")) {
			continue
		}
		// SUBTOTAL is not a total, unless the line also carries an
		// explicit "TOTAL:" tag.
		if strings.Contains(upper, "SUBTOTAL") && !strings.Contains(upper, "TOTAL:") {
			continue
		}

		if !containsAny(upper, amountKeywords) {
			continue
		}
		if d, currency, ok := parse.ParseAmount(line); ok {
			return d, currency, true
		}
	}

	return parse.MaxAmount(lines)
}

// baselineConfidence is the pre-override score: the fraction of the
// four core fields the heuristics managed to fill.
func baselineConfidence(r *model.ExtractionResult) float64 {
	extracted := 0
	if r.MerchantName != "" {
		extracted++
	}
	if r.MerchantAddress != "" {
		extracted++
	}
	if r.DateFound {
		extracted++
	}
	if r.Amount != nil {
		extracted++
	}
	return float64(extracted) / 4.0
}

func containsAny(s string, substrs []string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

func startsWithUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}
