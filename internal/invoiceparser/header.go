package invoiceparser

import (
	"regexp"
	"strings"

	"faturas/fatura-csv/internal/dateutils"
	"faturas/fatura-csv/internal/models"
)

// Header field names used in field_missing warnings.
const (
	FieldDueDate        = "dueDate"
	FieldTotalValue     = "totalValue"
	FieldMinimumPayment = "minimumPayment"
	FieldReferenceMonth = "referenceMonth"
	FieldClosingDate    = "closingDate"
)

var monthSentencePattern = regexp.MustCompile(`\bfatura\s+de\s+([a-zçãõéíóúâêôàèìòù]+)`)

// referenceFromSentence looks for "fatura de <mês>" anywhere in the
// lower-cased document. Matches whose word is not a month name, such as
// "fatura de cartão", are skipped.
func referenceFromSentence(lines []string, ctx models.ParseContext) (string, bool) {
	joined := strings.ToLower(strings.Join(lines, " "))
	for _, m := range monthSentencePattern.FindAllStringSubmatch(joined, -1) {
		if abbr := dateutils.MonthFromName(m[1]); abbr != "" {
			return dateutils.FormatReferenceMonth(abbr, ctx.Year), true
		}
	}
	return "", false
}

func extractHeader(lines []string, rules HeaderRules, ctx models.ParseContext) (models.InvoiceHeader, []models.Warning) {
	var header models.InvoiceHeader
	var warnings []models.Warning
	missing := func(field string) {
		warnings = append(warnings, models.Warning{Code: models.WarningFieldMissing, Field: field})
	}

	var ok bool
	if header.DueDate, ok = firstMatch(lines, rules.DueDate, ctx); !ok {
		missing(FieldDueDate)
	}
	if header.TotalValue, ok = firstMatch(lines, rules.TotalValue, ctx); !ok {
		missing(FieldTotalValue)
	}
	if header.MinimumPayment, ok = firstMatch(lines, rules.MinimumPayment, ctx); !ok {
		missing(FieldMinimumPayment)
	}

	header.ReferenceMonth, ok = referenceFromSentence(lines, ctx)
	if !ok {
		header.ReferenceMonth, ok = firstMatch(lines, rules.ReferencePeriod, ctx)
	}
	if !ok {
		missing(FieldReferenceMonth)
	}

	if header.ClosingDate, ok = firstMatch(lines, rules.ClosingDate, ctx); !ok {
		missing(FieldClosingDate)
	}

	return header, warnings
}
