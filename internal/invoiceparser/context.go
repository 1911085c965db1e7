package invoiceparser

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"faturas/fatura-csv/internal/models"
)

const (
	minInvoiceYear = 2020
	maxInvoiceYear = 2099
)

// Expense lines only print "DD MMM"; the first full date in the document
// (usually the due date) supplies the year for all of them.
var yearTokenPattern = regexp.MustCompile(`\b(\d{1,2})\s+([A-Z]{3})\s+(\d{4})\b`)

// InferYear returns the invoice year found in text. When no usable year
// token exists it falls back to the year of now() and reports false.
func InferYear(text string, now func() time.Time) (int, bool) {
	if now == nil {
		now = time.Now
	}

	m := yearTokenPattern.FindStringSubmatch(text)
	if m != nil {
		year, err := strconv.Atoi(m[3])
		if err == nil && year >= minInvoiceYear && year <= maxInvoiceYear {
			return year, true
		}
	}
	return now().Year(), false
}

// yearFallbackReason tells an out-of-range year token apart from a missing
// one.
func yearFallbackReason(text string, fallback int) string {
	if m := yearTokenPattern.FindStringSubmatch(text); m != nil {
		return fmt.Sprintf("year %s out of range, using %d", m[3], fallback)
	}
	return fmt.Sprintf("no invoice year found, using %d", fallback)
}

// NewParseContext builds the context for one parse call.
func NewParseContext(text string, now func() time.Time) (models.ParseContext, bool) {
	year, inferred := InferYear(text, now)
	return models.ParseContext{Year: year}, inferred
}
