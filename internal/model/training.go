package model

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"time"
	"unicode"
)

// TrainingExample is one (text, labels) pair accumulated for model
// training. Text is immutable once stored; Labels maps field names to
// the value the user (or a confident parse) assigned.
type TrainingExample struct {
	CreatedAt time.Time
	Labels    map[FieldName]string
	Text      string
	Hash      string
}

// NewTrainingExample builds an example with its content hash set.
func NewTrainingExample(text string, labels map[FieldName]string) TrainingExample {
	return TrainingExample{
		Text:      text,
		Labels:    labels,
		Hash:      ContentHash(text),
		CreatedAt: time.Now(),
	}
}

// Label returns the label for a field and whether one is present.
func (e *TrainingExample) Label(field FieldName) (string, bool) {
	v, ok := e.Labels[field]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// ContentHash produces the identity hash used for training-example
// de-duplication and correction matching. Two texts that differ only in
// whitespace or letter case hash identically.
func ContentHash(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	sum := sha256.Sum256([]byte(b.String()))
	return fmt.Sprintf("%x", sum)
}
