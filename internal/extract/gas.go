package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/joshsymonds/scanwise/internal/model"
)

var (
	gallonsRe        = regexp.MustCompile(`(?i)\bgallons?\s*:?\s*(\d+(?:\.\d+)?)`)
	pricePerGallonRe = regexp.MustCompile(`(?i)(?:price\s*/?\s*gal(?:lon)?|\$\s*/\s*gal|ppg)\s*:?\s*\$?\s*(\d+\.\d{2,3})`)
	pumpRe           = regexp.MustCompile(`(?i)\bpump\s*#?\s*:?\s*(\d+)`)
	fuelTypeRe       = regexp.MustCompile(`(?i)\b(REGULAR|UNLEADED|MIDGRADE|PLUS|PREMIUM|SUPER|DIESEL|E85)\b`)
)

// gasBrands short-circuits merchant detection: when a known brand
// appears in the first few lines it wins over the generic name rule.
var gasBrands = []string{
	"SHELL", "CHEVRON", "EXXON", "MOBIL", "BP", "TEXACO", "ARCO",
	"CITGO", "SUNOCO", "VALERO", "MARATHON", "SPEEDWAY", "WAWA",
	"CASEY'S", "PILOT", "LOVE'S", "7-ELEVEN", "CIRCLE K", "QUIKTRIP",
	"RACETRAC", "SHEETZ", "MURPHY USA", "COSTCO GAS", "SAM'S CLUB",
}

type gasExtractor struct {
	base
}

func newGasExtractor() *gasExtractor {
	return &gasExtractor{base: base{useTimeHint: true}}
}

func (e *gasExtractor) Type() model.ReceiptType { return model.ReceiptTypeGas }

func (e *gasExtractor) Extract(lines []string) *model.ExtractionResult {
	result := &model.ExtractionResult{Type: model.ReceiptTypeGas}
	e.extractCommon(lines, result)

	if brand := knownBrand(lines); brand != "" {
		result.MerchantName = brand
		result.Confidence = baselineConfidence(result)
	}

	aux := &model.GasFields{}
	for _, line := range lines {
		if aux.Gallons == 0 {
			if m := gallonsRe.FindStringSubmatch(line); m != nil {
				if v, err := strconv.ParseFloat(m[1], 64); err == nil {
					aux.Gallons = v
				}
			}
		}
		if aux.PricePerGallon == nil {
			if m := pricePerGallonRe.FindStringSubmatch(line); m != nil {
				if d, ok := parseMoneyGroup(m[1]); ok {
					aux.PricePerGallon = &d
				}
			}
		}
		if aux.FuelType == "" {
			if m := fuelTypeRe.FindString(line); m != "" {
				aux.FuelType = strings.ToUpper(m)
			}
		}
		if aux.PaymentMethod == "" {
			aux.PaymentMethod = matchPaymentMethod(line)
		}
		if aux.PumpNumber == "" {
			if m := pumpRe.FindStringSubmatch(line); m != nil {
				aux.PumpNumber = m[1]
			}
		}
	}
	result.Aux = aux

	return result
}

// knownBrand scans the merchant window for a fixed brand name.
func knownBrand(lines []string) string {
	limit := merchantScanLines
	if len(lines) < limit {
		limit = len(lines)
	}
	for i := 0; i < limit; i++ {
		upper := strings.ToUpper(lines[i])
		for _, brand := range gasBrands {
			if strings.Contains(upper, brand) {
				return brand
			}
		}
	}
	return ""
}
