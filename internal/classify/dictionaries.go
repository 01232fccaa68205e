package classify

import "github.com/joshsymonds/scanwise/internal/model"

// termDictionaries weight individual tokens per receipt type. Every
// occurrence of a term contributes its weight to that type's score.
var termDictionaries = map[model.ReceiptType]map[string]float64{
	model.ReceiptTypeGas: {
		"gas":      2.0,
		"fuel":     2.0,
		"gallon":   2.5,
		"gallons":  2.5,
		"gal":      1.5,
		"pump":     2.0,
		"unleaded": 2.5,
		"regular":  1.0,
		"premium":  1.0,
		"midgrade": 2.0,
		"diesel":   2.5,
		"octane":   2.0,
		"shell":    2.0,
		"chevron":  2.0,
		"exxon":    2.0,
		"mobil":    2.0,
		"texaco":   2.0,
		"station":  1.0,
	},
	model.ReceiptTypeRestaurant: {
		"tip":        2.5,
		"gratuity":   2.5,
		"server":     2.0,
		"table":      1.5,
		"guest":      1.5,
		"guests":     1.5,
		"dine":       2.0,
		"appetizer":  2.0,
		"entree":     2.0,
		"beverage":   1.0,
		"restaurant": 2.0,
		"cafe":       1.5,
		"grill":      1.5,
		"bar":        1.0,
		"menu":       1.5,
		"waiter":     2.0,
		"kitchen":    1.0,
	},
	model.ReceiptTypeRetail: {
		"sku":      2.5,
		"upc":      2.5,
		"qty":      2.0,
		"item":     1.0,
		"items":    1.0,
		"cashier":  1.5,
		"register": 1.5,
		"store":    1.0,
		"clearance": 1.5,
		"coupon":   1.5,
		"savings":  1.0,
		"return":   1.0,
		"exchange": 1.0,
		"mart":     1.5,
		"aisle":    1.5,
	},
}
