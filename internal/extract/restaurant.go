package extract

import (
	"regexp"
	"strconv"

	"github.com/joshsymonds/scanwise/internal/model"
)

var (
	tipRe    = regexp.MustCompile(`(?i)\b(?:tip|gratuity)\s*:?\s*\$?\s*(\d{1,3}(?:,\d{3})*\.\d{2}|\d+\.\d{2})`)
	serverRe = regexp.MustCompile(`(?i)\bserver\s*:?\s*([A-Za-z]+)`)
	tableRe  = regexp.MustCompile(`(?i)\btable\s*#?\s*:?\s*(\w+)`)
	guestsRe = regexp.MustCompile(`(?i)\bguests?\s*:?\s*(\d+)`)
)

type restaurantExtractor struct {
	base
}

func newRestaurantExtractor() *restaurantExtractor {
	return &restaurantExtractor{base: base{useTimeHint: true, excludeTipLines: true}}
}

func (e *restaurantExtractor) Type() model.ReceiptType { return model.ReceiptTypeRestaurant }

func (e *restaurantExtractor) Extract(lines []string) *model.ExtractionResult {
	result := &model.ExtractionResult{Type: model.ReceiptTypeRestaurant}
	e.extractCommon(lines, result)

	aux := &model.RestaurantFields{}
	for _, line := range lines {
		if aux.Tip == nil {
			if m := tipRe.FindStringSubmatch(line); m != nil {
				if d, ok := parseMoneyGroup(m[1]); ok {
					aux.Tip = &d
				}
			}
		}
		if aux.Tax == nil {
			if m := taxRe.FindStringSubmatch(line); m != nil {
				if d, ok := parseMoneyGroup(m[1]); ok {
					aux.Tax = &d
				}
			}
		}
		if aux.ServerName == "" {
			if m := serverRe.FindStringSubmatch(line); m != nil {
				aux.ServerName = m[1]
			}
		}
		if aux.TableNumber == "" {
			if m := tableRe.FindStringSubmatch(line); m != nil {
				aux.TableNumber = m[1]
			}
		}
		if aux.GuestCount == 0 {
			if m := guestsRe.FindStringSubmatch(line); m != nil {
				if n, err := strconv.Atoi(m[1]); err == nil {
					aux.GuestCount = n
				}
			}
		}
	}
	result.Aux = aux

	return result
}
