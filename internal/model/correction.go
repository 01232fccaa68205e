package model

import (
	"time"

	"github.com/google/uuid"
)

// Correction records a single user edit of an extracted field. Records
// are append-only; the history keeps a bounded FIFO of the most recent.
type Correction struct {
	CreatedAt time.Time
	ID        string
	Field     FieldName
	Original  string
	Corrected string
	TextHash  string
	// Excerpt is the slice of the source text relevant to the field,
	// kept for similarity matching against future receipts.
	Excerpt string
}

// NewCorrection builds a correction for the given source text and edit.
func NewCorrection(text string, field FieldName, original, corrected, excerpt string) Correction {
	return Correction{
		ID:        uuid.NewString(),
		Field:     field,
		Original:  original,
		Corrected: corrected,
		TextHash:  ContentHash(text),
		Excerpt:   excerpt,
		CreatedAt: time.Now(),
	}
}
