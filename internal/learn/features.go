// Package learn implements the trainable per-field prediction models
// and their feature extraction strategies.
package learn

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/joshsymonds/scanwise/internal/model"
	"github.com/joshsymonds/scanwise/internal/parse"
)

// FeatureBag maps feature names to occurrence counts (or 1.0 for
// boolean indicators).
type FeatureBag map[string]float64

var (
	totalKeywordRe = regexp.MustCompile(`(?i)\b(TOTAL|AMOUNT|BALANCE|DUE)\b`)
	currencyRe     = regexp.MustCompile(`[$€£]|(?i)\b(USD|EUR|GBP|CAD)\b`)
	dateKeywordRe  = regexp.MustCompile(`(?i)\bDATE\b`)
	streetHintRe   = regexp.MustCompile(`^\d+\s+\w+`)
	cityHintRe     = regexp.MustCompile(`[A-Za-z][A-Za-z .]*,\s*[A-Z]{2}\b`)
	zipHintRe      = regexp.MustCompile(`\b\d{5}(-\d{4})?\b`)
)

// vocabularies indicate merchant character for the merchant-name model.
var (
	storeVocab      = []string{"store", "mart", "market", "shop", "outlet", "supercenter"}
	restaurantVocab = []string{"restaurant", "cafe", "grill", "diner", "kitchen", "bistro", "pizzeria"}
	gasVocab        = []string{"gas", "fuel", "station", "petroleum", "oil"}
)

// Features extracts the feature bag for a field from raw receipt text.
// Each field uses its own strategy so the model sees the signal that
// matters for it; unknown fields get the generic text strategy.
func Features(field model.FieldName, text string) FeatureBag {
	switch field {
	case model.FieldMerchantName:
		return merchantFeatures(text)
	case model.FieldAmount:
		return lineIndicatorFeatures(text, amountLineIndicators)
	case model.FieldTransactionDate:
		return lineIndicatorFeatures(text, dateLineIndicators)
	case model.FieldMerchantAddress:
		return lineIndicatorFeatures(text, addressLineIndicators)
	default:
		return genericFeatures(text)
	}
}

// merchantFeatures takes word n-grams from the top of the receipt plus
// vocabulary indicators for the kind of merchant.
func merchantFeatures(text string) FeatureBag {
	lines := nonBlankLines(text)
	if len(lines) > 5 {
		lines = lines[:5]
	}

	bag := FeatureBag{}
	head := strings.Join(lines, " ")
	addWordNgrams(bag, head)

	lower := strings.ToLower(head)
	if containsAnyWord(lower, storeVocab) {
		bag["vocab:store"] = 1
	}
	if containsAnyWord(lower, restaurantVocab) {
		bag["vocab:restaurant"] = 1
	}
	if containsAnyWord(lower, gasVocab) {
		bag["vocab:gas"] = 1
	}
	return bag
}

func amountLineIndicators(line string) []string {
	var feats []string
	if currencyRe.MatchString(line) {
		feats = append(feats, "currency")
	}
	if totalKeywordRe.MatchString(line) {
		feats = append(feats, "totalkw")
	}
	if parse.HasDecimalNumber(line) {
		feats = append(feats, "decimal")
	}
	return feats
}

func dateLineIndicators(line string) []string {
	var feats []string
	if dateKeywordRe.MatchString(line) {
		feats = append(feats, "datekw")
	}
	if parse.HasDate(line) {
		feats = append(feats, "datepat")
	}
	return feats
}

func addressLineIndicators(line string) []string {
	var feats []string
	if streetHintRe.MatchString(strings.TrimSpace(line)) {
		feats = append(feats, "street")
	}
	if cityHintRe.MatchString(line) {
		feats = append(feats, "city")
	}
	if zipHintRe.MatchString(line) {
		feats = append(feats, "zip")
	}
	return feats
}

// lineIndicatorFeatures emits position-tagged boolean indicators, one
// set per line.
func lineIndicatorFeatures(text string, indicators func(string) []string) FeatureBag {
	bag := FeatureBag{}
	for i, line := range nonBlankLines(text) {
		for _, feat := range indicators(line) {
			bag[fmt.Sprintf("l%d:%s", i, feat)] = 1
		}
	}
	return bag
}

// genericFeatures is the fallback strategy: word n-grams plus character
// trigrams over the whole text.
func genericFeatures(text string) FeatureBag {
	bag := FeatureBag{}
	addWordNgrams(bag, text)
	for _, tri := range CharTrigrams(text) {
		bag["t:"+tri]++
	}
	return bag
}

// addWordNgrams accumulates unigram and bigram counts.
func addWordNgrams(bag FeatureBag, text string) {
	words := normalizeWords(text)
	for i, w := range words {
		bag["w:"+w]++
		if i+1 < len(words) {
			bag["b:"+w+" "+words[i+1]]++
		}
	}
}

// CharTrigrams returns the character trigrams of the normalized
// (upper-cased, alphanumeric-only) text.
func CharTrigrams(text string) []string {
	norm := normalizeAlnum(text)
	if len(norm) < 3 {
		return nil
	}
	trigrams := make([]string, 0, len(norm)-2)
	for i := 0; i+3 <= len(norm); i++ {
		trigrams = append(trigrams, norm[i:i+3])
	}
	return trigrams
}

func normalizeAlnum(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}

func normalizeWords(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		var b strings.Builder
		for _, r := range f {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				b.WriteRune(r)
			}
		}
		if b.Len() > 0 {
			words = append(words, b.String())
		}
	}
	return words
}

func containsAnyWord(text string, vocab []string) bool {
	for _, v := range vocab {
		if strings.Contains(text, v) {
			return true
		}
	}
	return false
}

func nonBlankLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
