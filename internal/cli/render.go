package cli

import (
	"fmt"
	"strings"

	"github.com/joshsymonds/scanwise/internal/model"
)

// RenderResult formats an extraction result for the terminal.
func RenderResult(r *model.ExtractionResult) string {
	var b strings.Builder

	b.WriteString(FormatTitle("Parsed receipt"))
	b.WriteString("\n")

	writeField(&b, "Type", string(r.Type))
	writeField(&b, "Merchant", r.MerchantName)
	writeField(&b, "Address", r.MerchantAddress)
	if r.MerchantPhone != "" {
		writeField(&b, "Phone", r.MerchantPhone)
	}
	if r.DateFound {
		writeField(&b, "Date", r.TransactionDate.Format("2006-01-02"))
	} else {
		writeField(&b, "Date", SubtleStyle.Render("(not found)"))
	}
	if r.Amount != nil {
		writeField(&b, "Total", fmt.Sprintf("%s %s", r.Amount.StringFixed(2), r.Currency))
	} else {
		writeField(&b, "Total", SubtleStyle.Render("(not found)"))
	}
	writeField(&b, "Confidence", fmt.Sprintf("%.0f%%", r.Confidence*100))

	renderAux(&b, r.Aux)

	if len(r.Suggestions) > 0 {
		b.WriteString("\n")
		b.WriteString(TitleStyle.Render("Suggestions"))
		b.WriteString("\n")
		for _, field := range model.TrainableFields {
			values, ok := r.Suggestions[field]
			if !ok {
				continue
			}
			writeField(&b, string(field), strings.Join(values, ", "))
		}
	}

	return b.String()
}

func renderAux(b *strings.Builder, aux model.AuxFields) {
	switch a := aux.(type) {
	case *model.RetailFields:
		if a.Tax != nil {
			writeField(b, "Tax", a.Tax.StringFixed(2))
		}
		if a.PaymentMethod != "" {
			writeField(b, "Payment", a.PaymentMethod)
		}
	case *model.RestaurantFields:
		if a.Tip != nil {
			writeField(b, "Tip", a.Tip.StringFixed(2))
		}
		if a.Tax != nil {
			writeField(b, "Tax", a.Tax.StringFixed(2))
		}
		if a.ServerName != "" {
			writeField(b, "Server", a.ServerName)
		}
		if a.TableNumber != "" {
			writeField(b, "Table", a.TableNumber)
		}
		if a.GuestCount > 0 {
			writeField(b, "Guests", fmt.Sprintf("%d", a.GuestCount))
		}
	case *model.GasFields:
		if a.Gallons > 0 {
			writeField(b, "Gallons", fmt.Sprintf("%.3f", a.Gallons))
		}
		if a.PricePerGallon != nil {
			writeField(b, "Price/gal", a.PricePerGallon.StringFixed(3))
		}
		if a.FuelType != "" {
			writeField(b, "Fuel", a.FuelType)
		}
		if a.PumpNumber != "" {
			writeField(b, "Pump", a.PumpNumber)
		}
		if a.PaymentMethod != "" {
			writeField(b, "Payment", a.PaymentMethod)
		}
	}
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		value = SubtleStyle.Render("(none)")
	}
	b.WriteString(LabelStyle.Render(label))
	b.WriteString(" ")
	b.WriteString(value)
	b.WriteString("\n")
}
