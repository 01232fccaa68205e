package cli

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshsymonds/scanwise/internal/model"
)

func TestRenderResult(t *testing.T) {
	amount := decimal.NewFromFloat(36.32)
	ppg := decimal.NewFromFloat(3.459)
	r := &model.ExtractionResult{
		Type:         model.ReceiptTypeGas,
		MerchantName: "SHELL",
		Amount:       &amount,
		Currency:     "USD",
		Confidence:   0.75,
		Aux: &model.GasFields{
			Gallons:        10.5,
			PricePerGallon: &ppg,
			FuelType:       "REGULAR",
		},
		Suggestions: map[model.FieldName][]string{
			model.FieldMerchantName: {"Shell #1234"},
		},
	}

	out := RenderResult(r)
	assert.Contains(t, out, "SHELL")
	assert.Contains(t, out, "36.32 USD")
	assert.Contains(t, out, "75%")
	assert.Contains(t, out, "10.500")
	assert.Contains(t, out, "Shell #1234")
}

func TestReadReceiptText(t *testing.T) {
	t.Run("stdin", func(t *testing.T) {
		text, err := ReadReceiptText("-", strings.NewReader("SHELL\nTOTAL $5.00"))
		require.NoError(t, err)
		assert.Equal(t, "SHELL\nTOTAL $5.00", text)
	})

	t.Run("blank input", func(t *testing.T) {
		_, err := ReadReceiptText("", strings.NewReader("  \n\t"))
		assert.ErrorIs(t, err, ErrNoInput)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadReceiptText("/does/not/exist", nil)
		assert.Error(t, err)
	})
}
