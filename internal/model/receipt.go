// Package model defines the core domain types shared across the application.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptType identifies the kind of receipt a piece of OCR text represents.
type ReceiptType string

const (
	// ReceiptTypeRetail covers general store purchases.
	ReceiptTypeRetail ReceiptType = "retail"
	// ReceiptTypeRestaurant covers dining receipts.
	ReceiptTypeRestaurant ReceiptType = "restaurant"
	// ReceiptTypeGas covers fuel station receipts.
	ReceiptTypeGas ReceiptType = "gas"
	// ReceiptTypeUnknown is the zero value; the classifier never produces it.
	ReceiptTypeUnknown ReceiptType = "unknown"
)

// FieldName identifies a semantic extraction field. These names key the
// training-example label maps and the correction history.
type FieldName string

const (
	// FieldMerchantName is the store or vendor name.
	FieldMerchantName FieldName = "merchantName"
	// FieldMerchantAddress is the street address on the receipt.
	FieldMerchantAddress FieldName = "merchantAddress"
	// FieldTransactionDate is the purchase date.
	FieldTransactionDate FieldName = "transactionDate"
	// FieldAmount is the receipt total.
	FieldAmount FieldName = "amount"
)

// TrainableFields lists the fields backed by prediction models, in a
// fixed order used for training and reporting.
var TrainableFields = []FieldName{
	FieldMerchantName,
	FieldMerchantAddress,
	FieldTransactionDate,
	FieldAmount,
}

// ExtractionResult is the structured record produced from one receipt's
// OCR text.
type ExtractionResult struct {
	TransactionDate time.Time
	Amount          *decimal.Decimal
	Aux             AuxFields
	Suggestions     map[FieldName][]string
	MerchantName    string
	MerchantAddress string
	MerchantPhone   string
	Currency        string
	Type            ReceiptType
	Confidence      float64
	// DateFound reports whether the date came from the text rather
	// than the current-date fallback.
	DateFound bool
}

// AuxFields is the type-dependent auxiliary payload of an
// ExtractionResult. Exactly one concrete type applies per receipt type.
type AuxFields interface {
	ReceiptType() ReceiptType
}

// RetailFields holds auxiliary values for retail receipts.
type RetailFields struct {
	Tax           *decimal.Decimal
	PaymentMethod string
}

// ReceiptType implements AuxFields.
func (*RetailFields) ReceiptType() ReceiptType { return ReceiptTypeRetail }

// RestaurantFields holds auxiliary values for restaurant receipts.
type RestaurantFields struct {
	Tip         *decimal.Decimal
	Tax         *decimal.Decimal
	ServerName  string
	TableNumber string
	GuestCount  int
}

// ReceiptType implements AuxFields.
func (*RestaurantFields) ReceiptType() ReceiptType { return ReceiptTypeRestaurant }

// GasFields holds auxiliary values for gas station receipts.
type GasFields struct {
	PricePerGallon *decimal.Decimal
	Gallons        float64
	FuelType       string
	PaymentMethod  string
	PumpNumber     string
}

// ReceiptType implements AuxFields.
func (*GasFields) ReceiptType() ReceiptType { return ReceiptTypeGas }

// FieldValue returns the current string rendering of a trainable field,
// used when comparing against corrections and model predictions.
func (r *ExtractionResult) FieldValue(field FieldName) string {
	switch field {
	case FieldMerchantName:
		return r.MerchantName
	case FieldMerchantAddress:
		return r.MerchantAddress
	case FieldTransactionDate:
		if !r.DateFound {
			return ""
		}
		return r.TransactionDate.Format("2006-01-02")
	case FieldAmount:
		if r.Amount == nil {
			return ""
		}
		return r.Amount.StringFixed(2)
	}
	return ""
}
