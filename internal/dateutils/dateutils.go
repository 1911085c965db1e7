// Package dateutils provides the Portuguese statement date conversions used throughout the application.
package dateutils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Common date format constants used throughout the application
const (
	DateLayoutISO       = "2006-01-02"
	DateLayoutBrazilian = "02/01/2006"
)

// MonthAbbreviations lists the Portuguese month abbreviations printed on
// statements, January first.
var MonthAbbreviations = []string{
	"JAN", "FEV", "MAR", "ABR", "MAI", "JUN",
	"JUL", "AGO", "SET", "OUT", "NOV", "DEZ",
}

var monthNames = map[string]string{
	"janeiro":   "JAN",
	"fevereiro": "FEV",
	"março":     "MAR",
	"marco":     "MAR",
	"abril":     "ABR",
	"maio":      "MAI",
	"junho":     "JUN",
	"julho":     "JUL",
	"agosto":    "AGO",
	"setembro":  "SET",
	"outubro":   "OUT",
	"novembro":  "NOV",
	"dezembro":  "DEZ",
}

var (
	dayPattern  = regexp.MustCompile(`^\d{1,2}$`)
	yearPattern = regexp.MustCompile(`^\d{4}$`)
)

// MonthIndex returns the zero-based index of a month abbreviation, or -1.
func MonthIndex(abbr string) int {
	abbr = strings.ToUpper(strings.TrimSpace(abbr))
	for i, m := range MonthAbbreviations {
		if m == abbr {
			return i
		}
	}
	return -1
}

// MonthNumber returns the two-digit month for an abbreviation. Unknown
// abbreviations map to "01".
func MonthNumber(abbr string) string {
	idx := MonthIndex(abbr)
	if idx < 0 {
		return "01"
	}
	return fmt.Sprintf("%02d", idx+1)
}

// MonthFromName maps a full Portuguese month name ("outubro", "Março") to
// its abbreviation. It returns "" for anything else.
func MonthFromName(name string) string {
	return monthNames[strings.ToLower(strings.TrimSpace(name))]
}

// ToISODate converts a "DD MMM" or "DD MMM YYYY" token to YYYY-MM-DD. The
// year in the token wins over defaultYear. The input is returned unchanged
// when it does not have that shape.
func ToISODate(token string, defaultYear int) string {
	parts := strings.Fields(token)
	if len(parts) < 2 || !dayPattern.MatchString(parts[0]) {
		return token
	}

	year := strconv.Itoa(defaultYear)
	if len(parts) >= 3 {
		if !yearPattern.MatchString(parts[2]) {
			return token
		}
		year = parts[2]
	}

	day := parts[0]
	if len(day) == 1 {
		day = "0" + day
	}
	return fmt.Sprintf("%s-%s-%s", year, MonthNumber(parts[1]), day)
}

// SlashToISO converts a DD/MM/YYYY date to YYYY-MM-DD, returning the input
// unchanged on failure.
func SlashToISO(dateStr string) string {
	t, err := time.Parse(DateLayoutBrazilian, strings.TrimSpace(dateStr))
	if err != nil {
		return dateStr
	}
	return t.Format(DateLayoutISO)
}

// PreviousMonth returns the abbreviation and year of the month before
// abbr/year. January rolls back to December of the previous year.
func PreviousMonth(abbr string, year int) (string, int, bool) {
	idx := MonthIndex(abbr)
	if idx < 0 {
		return "", 0, false
	}
	if idx == 0 {
		return MonthAbbreviations[11], year - 1, true
	}
	return MonthAbbreviations[idx-1], year, true
}

// FormatReferenceMonth renders a reference month as "MAI/2025".
func FormatReferenceMonth(abbr string, year int) string {
	return fmt.Sprintf("%s/%d", strings.ToUpper(abbr), year)
}

// ReferenceMonthToISO turns "MAI/2025" into "2025-05". It returns false
// when the value is not a reference month.
func ReferenceMonthToISO(ref string) (string, bool) {
	abbr, year, ok := strings.Cut(ref, "/")
	if !ok || MonthIndex(abbr) < 0 || !yearPattern.MatchString(year) {
		return "", false
	}
	return fmt.Sprintf("%s-%s", year, MonthNumber(abbr)), true
}
