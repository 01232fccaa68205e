package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshsymonds/scanwise/internal/model"
)

func TestRestaurantExtractor_AuxFields(t *testing.T) {
	e := newRestaurantExtractor()
	result := e.Extract([]string{
		"THE RUSTY SPOON",
		"45 Elm Ave",
		"SERVER: MARIA",
		"TABLE 12",
		"GUESTS: 4",
		"SUBTOTAL $44.00",
		"TAX $3.52",
		"TIP $8.00",
		"TOTAL $55.52",
	})

	assert.Equal(t, "THE RUSTY SPOON", result.MerchantName)
	require.NotNil(t, result.Amount)
	assert.Equal(t, "55.52", result.Amount.StringFixed(2))

	aux, ok := result.Aux.(*model.RestaurantFields)
	require.True(t, ok)
	require.NotNil(t, aux.Tip)
	assert.Equal(t, "8.00", aux.Tip.StringFixed(2))
	require.NotNil(t, aux.Tax)
	assert.Equal(t, "3.52", aux.Tax.StringFixed(2))
	assert.Equal(t, "MARIA", aux.ServerName)
	assert.Equal(t, "12", aux.TableNumber)
	assert.Equal(t, 4, aux.GuestCount)
}

func TestRestaurantExtractor_TipLinesExcludedFromTotal(t *testing.T) {
	e := newRestaurantExtractor()
	result := e.Extract([]string{"SUBTOTAL $10.00", "TOTAL $12.50", "TIP $2.00"})

	require.NotNil(t, result.Amount)
	assert.Equal(t, "12.50", result.Amount.StringFixed(2))
}

func TestRetailExtractor_AuxFields(t *testing.T) {
	e := ForType(model.ReceiptTypeRetail)
	result := e.Extract([]string{
		"TARGET",
		"SALES TAX $1.23",
		"VISA ****1234",
		"TOTAL $15.23",
	})

	aux, ok := result.Aux.(*model.RetailFields)
	require.True(t, ok)
	require.NotNil(t, aux.Tax)
	assert.Equal(t, "1.23", aux.Tax.StringFixed(2))
	assert.Equal(t, "VISA", aux.PaymentMethod)
}
