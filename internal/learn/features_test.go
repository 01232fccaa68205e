package learn

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joshsymonds/scanwise/internal/model"
)

func TestMerchantFeatures(t *testing.T) {
	bag := Features(model.FieldMerchantName, "SHELL GAS STATION\n123 Main St\nTOTAL $10.00")

	assert.Equal(t, 1.0, bag["w:shell"])
	assert.Equal(t, 1.0, bag["b:shell gas"])
	assert.Equal(t, 1.0, bag["vocab:gas"])
	assert.Zero(t, bag["vocab:restaurant"])
}

func TestMerchantFeatures_OnlyTopLines(t *testing.T) {
	text := "A\nB\nC\nD\nE\nBOTTOMWORD"
	bag := Features(model.FieldMerchantName, text)
	assert.Zero(t, bag["w:bottomword"])
}

func TestAmountFeatures_LineIndicators(t *testing.T) {
	bag := Features(model.FieldAmount, "SHELL\nTOTAL $36.32")

	assert.Equal(t, 1.0, bag["l1:totalkw"])
	assert.Equal(t, 1.0, bag["l1:currency"])
	assert.Equal(t, 1.0, bag["l1:decimal"])
	assert.Zero(t, bag["l0:totalkw"])
}

func TestDateFeatures_LineIndicators(t *testing.T) {
	bag := Features(model.FieldTransactionDate, "DATE: 01/15/24\nTOTAL $5.00")

	assert.Equal(t, 1.0, bag["l0:datekw"])
	assert.Equal(t, 1.0, bag["l0:datepat"])
	assert.Zero(t, bag["l1:datepat"])
}

func TestAddressFeatures_LineIndicators(t *testing.T) {
	bag := Features(model.FieldMerchantAddress, "SHELL\n123 Main St\nAustin, TX 78701")

	assert.Equal(t, 1.0, bag["l1:street"])
	assert.Equal(t, 1.0, bag["l2:city"])
	assert.Equal(t, 1.0, bag["l2:zip"])
}

func TestCharTrigrams(t *testing.T) {
	assert.Equal(t, []string{"ABC", "BCD"}, CharTrigrams("ab cd"))
	assert.Nil(t, CharTrigrams("ab"))
	assert.Nil(t, CharTrigrams(""))
}
