package parse

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     string
		currency string
		found    bool
	}{
		{name: "dollar symbol", input: "TOTAL $12.50", want: "12.50", currency: "USD", found: true},
		{name: "symbol with space", input: "$ 5.00", want: "5.00", currency: "USD", found: true},
		{name: "thousands separator", input: "$1,234.56", want: "1234.56", currency: "USD", found: true},
		{name: "four digits without separator", input: "TOTAL $1234.56", want: "1234.56", currency: "USD", found: true},
		{name: "five digits without separator or decimals", input: "$12345", want: "12345", currency: "USD", found: true},
		{name: "euro symbol", input: "€9.99", want: "9.99", currency: "EUR", found: true},
		{name: "pound symbol", input: "£3.20", want: "3.20", currency: "GBP", found: true},
		{name: "code suffix", input: "23.40 USD", want: "23.40", currency: "USD", found: true},
		{name: "code suffix lowercase", input: "15.00 cad", want: "15.00", currency: "CAD", found: true},
		{name: "keyworded bare decimal", input: "TOTAL: 36.32", want: "36.32", currency: "USD", found: true},
		{name: "plain number without keyword", input: "GALLONS 10.5", found: false},
		{name: "no amount", input: "THANK YOU", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, currency, found := ParseAmount(tt.input)
			require.Equal(t, tt.found, found)
			if !found {
				return
			}
			want, err := decimal.NewFromString(tt.want)
			require.NoError(t, err)
			assert.True(t, want.Equal(got), "got %s, want %s", got, want)
			assert.Equal(t, tt.currency, currency)
		})
	}
}

func TestMaxAmount(t *testing.T) {
	got, currency, found := MaxAmount([]string{"$5.00", "$23.40", "$1.20"})
	require.True(t, found)
	assert.Equal(t, "23.40", got.StringFixed(2))
	assert.Equal(t, "USD", currency)
}

func TestMaxAmount_FourDigitAmountWins(t *testing.T) {
	got, _, found := MaxAmount([]string{"$999.00", "$1234.56"})
	require.True(t, found)
	assert.Equal(t, "1234.56", got.StringFixed(2))
}

func TestMaxAmount_Empty(t *testing.T) {
	_, _, found := MaxAmount([]string{"no amounts here"})
	assert.False(t, found)
}

func TestHasDecimalNumber(t *testing.T) {
	assert.True(t, HasDecimalNumber("GALLONS 10.50"))
	assert.False(t, HasDecimalNumber("GALLONS 10"))
}
