package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/joshsymonds/scanwise/internal/model"
)

var (
	taxRe = regexp.MustCompile(`(?i)\b(?:sales\s+)?tax\s*:?\s*\$?\s*(\d{1,3}(?:,\d{3})*\.\d{2}|\d+\.\d{2})`)

	// paymentMethodRe matches the fixed payment vocabulary.
	paymentMethodRe = regexp.MustCompile(`(?i)\b(VISA|MASTERCARD|AMEX|DISCOVER|DEBIT|CREDIT|CASH|MOBILE)\b`)
)

type retailExtractor struct {
	base
}

func (e *retailExtractor) Type() model.ReceiptType { return model.ReceiptTypeRetail }

func (e *retailExtractor) Extract(lines []string) *model.ExtractionResult {
	result := &model.ExtractionResult{Type: model.ReceiptTypeRetail}
	e.extractCommon(lines, result)

	aux := &model.RetailFields{}
	for _, line := range lines {
		if aux.Tax == nil {
			if m := taxRe.FindStringSubmatch(line); m != nil {
				if d, ok := parseMoneyGroup(m[1]); ok {
					aux.Tax = &d
				}
			}
		}
		if aux.PaymentMethod == "" {
			aux.PaymentMethod = matchPaymentMethod(line)
		}
	}
	result.Aux = aux

	return result
}

func matchPaymentMethod(line string) string {
	if m := paymentMethodRe.FindString(line); m != "" {
		return strings.ToUpper(m)
	}
	return ""
}

// parseMoneyGroup converts a captured numeric group, tolerating
// thousands separators.
func parseMoneyGroup(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
