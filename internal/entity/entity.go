// Package entity wraps a general-purpose entity recognizer as a
// secondary evidence source for receipt extraction. The recognizer is
// pluggable; a regex-based local implementation ships as the default.
package entity

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/joshsymonds/scanwise/internal/parse"
)

// Type tags one category of recognized entity.
type Type string

const (
	// TypeMoney tags monetary values.
	TypeMoney Type = "money"
	// TypeDate tags calendar dates.
	TypeDate Type = "date"
	// TypeAddress tags postal addresses.
	TypeAddress Type = "address"
	// TypePhone tags phone numbers.
	TypePhone Type = "phone"
	// TypeEmail tags email addresses.
	TypeEmail Type = "email"
)

// Entities maps entity types to the raw strings matched in the text,
// in document order.
type Entities map[Type][]string

// Recognizer is the external NER boundary. Implementations receive one
// bounded chunk of text per call.
type Recognizer interface {
	Recognize(ctx context.Context, chunk string) (Entities, error)
}

// First returns the first match of a type, or empty.
func (e Entities) First(t Type) string {
	if vals := e[t]; len(vals) > 0 {
		return vals[0]
	}
	return ""
}

// BestAmount returns the largest parseable money entity with its
// currency. On receipts the total is usually the largest value present.
func (e Entities) BestAmount() (decimal.Decimal, string, bool) {
	return parse.MaxAmount(e[TypeMoney])
}

func (e Entities) merge(other Entities) {
	for t, vals := range other {
		e[t] = append(e[t], vals...)
	}
}
