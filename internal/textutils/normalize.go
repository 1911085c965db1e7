// Package textutils provides text normalization utilities for statement lines.
package textutils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var spaceRun = regexp.MustCompile(`[ \t\x{00A0}]{2,}|[\t\x{00A0}]`)

// CollapseSpaces replaces runs of blanks with a single space and trims the
// result.
func CollapseSpaces(line string) string {
	return strings.TrimSpace(spaceRun.ReplaceAllString(line, " "))
}

// SplitLines splits extracted text into lines, accepting both "\n" and
// "\r\n" line endings.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}

// FoldAccents strips combining marks so "MOVIMENTAÇÕES" becomes
// "MOVIMENTACOES". A new transformer is built per call since
// transformers keep state.
func FoldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}

// FoldUpper folds accents and upper-cases s, producing the key used for
// keyword comparisons.
func FoldUpper(s string) string {
	return strings.ToUpper(FoldAccents(s))
}

// ContainsAnyFold reports whether text contains any of the keywords,
// ignoring case and accents. It returns the first keyword found.
func ContainsAnyFold(text string, keywords ...string) (string, bool) {
	folded := FoldUpper(text)
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(folded, FoldUpper(kw)) {
			return kw, true
		}
	}
	return "", false
}

// Snippet shortens s for log messages and error values.
func Snippet(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
