package core

// convert.go derives normalized fields from raw death-record cells.
//
// Each helper is total: malformed input yields an empty or zero result
// rather than an error, matching how these fields degrade in a report.

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// CompactDateLayout is the source date format (YYYYMMDD).
const CompactDateLayout = "20060102"

// daysPerYear is the year length used for age approximation.
const daysPerYear = 365.25

// SplitName splits a combined "FAMILY*GIVEN/" cell. The family segment is
// trimmed; every '/' is removed from the given segment. Further '*'
// segments are ignored.
func SplitName(combined string) (family, given string) {
	parts := strings.Split(combined, "*")
	family = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		given = strings.ReplaceAll(parts[1], "/", "")
	}
	return family, given
}

// SexLabel maps the INSEE sex code: 1 is 'H', anything else is 'F'.
func SexLabel(code string) string {
	if n, err := strconv.Atoi(strings.TrimSpace(code)); err == nil && n == 1 {
		return "H"
	}
	return "F"
}

// ParseCompactDate parses YYYYMMDD. Wrong length, non-digits and
// impossible calendar dates (month 00, 31 February, year 0000) report false.
func ParseCompactDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if len(s) != len(CompactDateLayout) {
		return time.Time{}, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return time.Time{}, false
		}
	}
	t, err := time.Parse(CompactDateLayout, s)
	if err != nil || t.Year() < 1 {
		return time.Time{}, false
	}
	return t, true
}

// DaysBetween counts whole days from a to b for dates at UTC midnight.
func DaysBetween(a, b time.Time) int64 {
	return b.Unix()/86400 - a.Unix()/86400
}

// AgeAt approximates age as days elapsed divided by 365.25, truncated
// toward zero. It is not a calendar-aware count of full years.
func AgeAt(birth, death time.Time) int {
	return int(float64(DaysBetween(birth, death)) / daysPerYear)
}

// Department returns the first two characters of a place code, or the
// whole code when shorter.
func Department(code string) string {
	if utf8.RuneCountInString(code) <= 2 {
		return code
	}
	_, first := utf8.DecodeRuneInString(code)
	_, second := utf8.DecodeRuneInString(code[first:])
	return code[:first+second]
}
