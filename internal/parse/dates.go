// Package parse provides the low-level date and amount parsing used by
// every extractor. All functions are pure and safe for concurrent use;
// the regexps are compiled once at package init.
package parse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// numericDateRe matches MM/DD/YY, MM-DD-YYYY and the day-first
	// equivalents; disambiguation happens after capture.
	numericDateRe = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})\b`)

	// dayMonthYearRe matches "15 January 2024" and "15 Jan 2024".
	dayMonthYearRe = regexp.MustCompile(`(?i)\b(\d{1,2})\s+([A-Za-z]{3,9})\.?,?\s+(\d{4})\b`)

	// monthDayYearRe matches "January 15, 2024" and "Jan 15 2024".
	monthDayYearRe = regexp.MustCompile(`(?i)\b([A-Za-z]{3,9})\.?\s+(\d{1,2}),?\s+(\d{4})\b`)

	// timeRe matches an HH:MM (optionally HH:MM:SS) clock time.
	timeRe = regexp.MustCompile(`\b([01]?\d|2[0-3]):[0-5]\d(:[0-5]\d)?\b`)
)

var monthsByName = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may": time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

// ParseDate scans s for the first recognizable date. It tries numeric
// MM/DD/YY(YY) forms, then "DD Month YYYY", then "Month DD, YYYY".
// Numeric dates follow the US convention when the first component can be
// a month (≤12); otherwise they are read day-first. Two-digit years
// below 50 land in the 2000s, 50 and above in the 1900s.
func ParseDate(s string) (time.Time, bool) {
	if m := numericDateRe.FindStringSubmatch(s); m != nil {
		if t, ok := parseNumericDate(m[1], m[2], m[3]); ok {
			return t, true
		}
	}
	if m := dayMonthYearRe.FindStringSubmatch(s); m != nil {
		if month, ok := monthsByName[strings.ToLower(m[2])]; ok {
			if t, ok := buildDate(atoi(m[3]), month, atoi(m[1])); ok {
				return t, true
			}
		}
	}
	if m := monthDayYearRe.FindStringSubmatch(s); m != nil {
		if month, ok := monthsByName[strings.ToLower(m[1])]; ok {
			if t, ok := buildDate(atoi(m[3]), month, atoi(m[2])); ok {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// HasDate reports whether s contains any recognizable date pattern.
func HasDate(s string) bool {
	_, ok := ParseDate(s)
	return ok
}

// HasTime reports whether s contains an HH:MM clock time.
func HasTime(s string) bool {
	return timeRe.MatchString(s)
}

func parseNumericDate(first, second, yearStr string) (time.Time, bool) {
	a, b := atoi(first), atoi(second)
	year := NormalizeYear(atoi(yearStr), len(yearStr))

	month, day := a, b
	if a > 12 {
		// First component cannot be a month; read day-first.
		month, day = b, a
	}
	return buildDate(year, time.Month(month), day)
}

// NormalizeYear resolves two-digit years: values below 50 map to the
// 2000s, 50 and above to the 1900s. Four-digit years pass through.
func NormalizeYear(year, digits int) int {
	if digits > 2 {
		return year
	}
	if year < 50 {
		return 2000 + year
	}
	return 1900 + year
}

func buildDate(year int, month time.Month, day int) (time.Time, bool) {
	if month < time.January || month > time.December || day < 1 || day > 31 || year < 1900 {
		return time.Time{}, false
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
	// time.Date normalizes overflow (e.g. Feb 30 -> Mar 2); reject those.
	if t.Day() != day || t.Month() != month {
		return time.Time{}, false
	}
	return t, true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
