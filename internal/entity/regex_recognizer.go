package entity

import (
	"context"
	"regexp"
)

// RegexRecognizer is the built-in on-device recognizer. External NER
// engines can replace it behind the Recognizer interface.
type RegexRecognizer struct {
	patterns map[Type]*regexp.Regexp
}

// NewRegexRecognizer builds the default recognizer.
func NewRegexRecognizer() *RegexRecognizer {
	return &RegexRecognizer{
		patterns: map[Type]*regexp.Regexp{
			TypeMoney:   regexp.MustCompile(`[$€£]\s*\d{1,3}(?:,\d{3})*(?:\.\d{1,2})?|\b\d+\.\d{2}\s*(?:USD|EUR|GBP|CAD)\b`),
			TypeDate:    regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b|(?i)\b(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+\d{1,2},?\s+\d{4}\b`),
			TypeAddress: regexp.MustCompile(`(?im)^\d+\s+[A-Za-z][A-Za-z .]*(?:ST|STREET|AVE|AVENUE|RD|ROAD|BLVD|DR|DRIVE|LN|LANE|WAY|CT)\b.*$`),
			TypePhone:   regexp.MustCompile(`\(?\d{3}\)?[-. ]?\d{3}[-. ]?\d{4}\b`),
			TypeEmail:   regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`),
		},
	}
}

// Recognize implements Recognizer. It never fails; the error return
// exists for external implementations.
func (r *RegexRecognizer) Recognize(_ context.Context, chunk string) (Entities, error) {
	found := Entities{}
	for t, re := range r.patterns {
		if matches := re.FindAllString(chunk, -1); len(matches) > 0 {
			found[t] = matches
		}
	}
	return found, nil
}
