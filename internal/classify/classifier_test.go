package classify

import (
	"testing"

	"github.com/joshsymonds/scanwise/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestClassifier_Classify(t *testing.T) {
	c := New()

	tests := []struct {
		name string
		text string
		want model.ReceiptType
	}{
		{
			name: "gas receipt",
			text: "SHELL\nPUMP #4\nGALLONS 10.5\nPRICE/GAL 3.459\nTOTAL $36.32",
			want: model.ReceiptTypeGas,
		},
		{
			name: "restaurant receipt",
			text: "OLIVE GARDEN\nSERVER: MARIA\nTABLE 12\nGUESTS: 4\nTIP $8.00\nTOTAL $52.00",
			want: model.ReceiptTypeRestaurant,
		},
		{
			name: "retail receipt",
			text: "TARGET\nSKU 003923 SOCKS QTY: 2\nCASHIER JEN\nTOTAL $14.99",
			want: model.ReceiptTypeRetail,
		},
		{
			name: "no signals defaults to retail",
			text: "HELLO\nWORLD",
			want: model.ReceiptTypeRetail,
		},
		{
			name: "empty text defaults to retail",
			text: "",
			want: model.ReceiptTypeRetail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.text))
		})
	}
}

func TestClassifier_NeverUnknown(t *testing.T) {
	c := New()
	for _, text := range []string{"", "x", "1234", "???", "gas tip sku"} {
		got := c.Classify(text)
		assert.NotEqual(t, model.ReceiptTypeUnknown, got, "text %q", text)
	}
}

func TestClassifier_TieGoesToRetail(t *testing.T) {
	c := New()
	// "gal" and "grill" carry equal weight in their dictionaries.
	scores := c.Scores("gal grill")
	assert.Equal(t, scores[model.ReceiptTypeGas], scores[model.ReceiptTypeRestaurant])
	assert.Equal(t, model.ReceiptTypeRetail, c.Classify("gal grill"))
}

func TestClassifier_Deterministic(t *testing.T) {
	c := New()
	text := "SHELL STATION FUEL PUMP 2"
	first := c.Classify(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, c.Classify(text))
	}
}
