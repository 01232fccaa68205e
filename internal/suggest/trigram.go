// Package suggest records user corrections and surfaces ranked
// alternative values for fields of new receipts, based on textual
// similarity to past corrections.
package suggest

import (
	"strings"
	"unicode"
)

// TrigramSimilarity compares two strings by the Jaccard index of their
// character-trigram sets after uppercasing and stripping everything
// non-alphanumeric. Identical normalized strings score 1.0; if either
// side is empty the score is 0.0.
func TrigramSimilarity(a, b string) float64 {
	na, nb := normalize(a), normalize(b)
	if na == "" || nb == "" {
		return 0.0
	}
	if na == nb {
		return 1.0
	}

	setA, setB := trigramSet(na), trigramSet(nb)
	if len(setA) == 0 || len(setB) == 0 {
		return 0.0
	}

	intersection := 0
	for tri := range setA {
		if setB[tri] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

func trigramSet(s string) map[string]bool {
	if len(s) < 3 {
		return nil
	}
	set := make(map[string]bool, len(s)-2)
	for i := 0; i+3 <= len(s); i++ {
		set[s[i:i+3]] = true
	}
	return set
}

func normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}
