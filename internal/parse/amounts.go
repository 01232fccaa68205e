package parse

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// symbolAmountRe matches "$12.50", "€1,234.56", "£ 9.99". The
	// comma-grouped alternative requires at least one separator; a plain
	// run of digits takes the second branch so "$1234.56" keeps its
	// decimal part instead of stopping after three digits.
	symbolAmountRe = regexp.MustCompile(`([$€£])\s*(\d{1,3}(?:,\d{3})+(?:\.\d{1,2})?|\d+(?:\.\d{1,2})?)`)

	// codeAmountRe matches "12.50 USD" and "1,234.56 EUR".
	codeAmountRe = regexp.MustCompile(`(?i)\b(\d{1,3}(?:,\d{3})*\.\d{2}|\d+\.\d{2})\s*(USD|EUR|GBP|CAD)\b`)

	// bareAmountRe matches a keyworded bare decimal like "TOTAL: 12.50".
	bareAmountRe = regexp.MustCompile(`(?i)(?:TOTAL|AMOUNT|BALANCE|DUE)\s*:?\s*(\d{1,3}(?:,\d{3})*\.\d{2}|\d+\.\d{2})\b`)

	// decimalNumberRe matches any decimal number, used as a feature
	// indicator rather than for extraction.
	decimalNumberRe = regexp.MustCompile(`\b\d+\.\d{2}\b`)
)

var currencyBySymbol = map[string]string{
	"$": "USD",
	"€": "EUR",
	"£": "GBP",
}

// DefaultCurrency is assumed when a matched amount carries no symbol or code.
const DefaultCurrency = "USD"

// ParseAmount scans s for the first monetary value and returns it with
// its currency code. Symbol-prefixed amounts win over code-suffixed
// ones, which win over keyworded bare decimals.
func ParseAmount(s string) (decimal.Decimal, string, bool) {
	if m := symbolAmountRe.FindStringSubmatch(s); m != nil {
		if d, ok := parseNumber(m[2]); ok {
			return d, currencyBySymbol[m[1]], true
		}
	}
	if m := codeAmountRe.FindStringSubmatch(s); m != nil {
		if d, ok := parseNumber(m[1]); ok {
			return d, strings.ToUpper(m[2]), true
		}
	}
	if m := bareAmountRe.FindStringSubmatch(s); m != nil {
		if d, ok := parseNumber(m[1]); ok {
			return d, DefaultCurrency, true
		}
	}
	return decimal.Zero, "", false
}

// MaxAmount returns the largest monetary value found across lines, for
// the "biggest line is the total" fallback. The currency comes from the
// line carrying the maximum.
func MaxAmount(lines []string) (decimal.Decimal, string, bool) {
	var (
		best     decimal.Decimal
		currency string
		found    bool
	)
	for _, line := range lines {
		d, cur, ok := ParseAmount(line)
		if !ok {
			continue
		}
		if !found || d.GreaterThan(best) {
			best, currency, found = d, cur, true
		}
	}
	return best, currency, found
}

// HasAmount reports whether s contains a recognizable monetary value.
func HasAmount(s string) bool {
	_, _, ok := ParseAmount(s)
	return ok
}

// HasDecimalNumber reports whether s contains any X.XX decimal number.
func HasDecimalNumber(s string) bool {
	return decimalNumberRe.MatchString(s)
}

func parseNumber(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
