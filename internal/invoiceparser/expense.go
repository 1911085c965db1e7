package invoiceparser

import (
	"regexp"
	"strings"

	"faturas/fatura-csv/internal/currencyutils"
	"faturas/fatura-csv/internal/dateutils"
	"faturas/fatura-csv/internal/models"
	"faturas/fatura-csv/internal/textutils"
)

// DefaultFeeKeywords name card charges that are printed without a city.
var DefaultFeeKeywords = []string{"ANUIDADE", "PROTEÇÃO", "PROTECAO"}

// Rejection reasons reported in line_rejected warnings.
const (
	ReasonNotExpense  = "balance, payment or credit entry"
	ReasonNoDate      = "no leading date"
	ReasonNoAmount    = "no amount marker"
	ReasonMissingCity = "no city outside movements section"
)

var nonExpenseKeywords = []string{"SALDO ANTERIOR", "PAGAMENTO", "CREDITO"}

var (
	expenseDatePattern   = regexp.MustCompile(`^(\d{2}\s+[A-Z]{3})\b`)
	negativeAfterMarker  = regexp.MustCompile(`R\$\s*-`)
	installmentPattern   = regexp.MustCompile(`\d{2}/\d{2}`)
	amountDigitsPattern  = regexp.MustCompile(`^[\d.,]+`)
	uppercaseCityPattern = []*regexp.Regexp{
		regexp.MustCompile(`(?:^|\s)(\p{Lu}{2,}\s+\p{Lu}{2,})$`),
		regexp.MustCompile(`(?:^|\s)(\p{Lu}{2,})$`),
	}
)

// lineRejection explains why a candidate did not become an expense.
type lineRejection struct {
	Reason string
}

func (r *lineRejection) Error() string { return r.Reason }

// splitCity separates the establishment from a trailing city, preferring a
// two-word block. Three-word cities are never recognised: "SAO JOSE
// PINHAIS" yields the city "JOSE PINHAIS". When the two-word block would
// swallow the whole text, a one-word city is taken only if requireCity is
// set, so "UBER CURITIBA" still splits while a fee such as "ANUIDADE
// MASTERCARD" keeps its name. matched is false when no block leaves an
// establishment behind; fallback then holds the last two words, when there
// are enough words to leave an establishment behind.
func splitCity(text string, requireCity bool) (establishment, city string, matched bool, fallback string) {
	for i, re := range uppercaseCityPattern {
		loc := re.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}
		est := strings.TrimSpace(text[:loc[2]])
		if est == "" {
			if i == 0 && !requireCity {
				break
			}
			continue
		}
		return est, text[loc[2]:loc[3]], true, ""
	}

	words := strings.Fields(text)
	if len(words) >= 3 {
		fallback = strings.Join(words[len(words)-2:], " ")
	}
	return text, "", false, fallback
}

// parseExpenseLine turns one candidate into an expense line. A nil line
// comes back with the rejection reason.
func parseExpenseLine(line string, inMovements bool, feeKeywords []string, ctx models.ParseContext) (*models.ExpenseLine, *lineRejection) {
	if _, found := textutils.ContainsAnyFold(line, nonExpenseKeywords...); found {
		return nil, &lineRejection{Reason: ReasonNotExpense}
	}

	negative := strings.Contains(line, "-"+currencyutils.Marker) || negativeAfterMarker.MatchString(line)

	dm := expenseDatePattern.FindStringSubmatch(line)
	if dm == nil {
		return nil, &lineRejection{Reason: ReasonNoDate}
	}
	dateToken := dm[1]

	markerAt := strings.Index(line, currencyutils.Marker)
	if markerAt < 0 {
		return nil, &lineRejection{Reason: ReasonNoAmount}
	}

	region := strings.TrimRight(line[:markerAt], " -")
	region = strings.TrimSpace(strings.TrimPrefix(region, dateToken))

	installment := installmentPattern.FindString(region)
	if installment != "" {
		region = textutils.CollapseSpaces(strings.Replace(region, installment, " ", 1))
	}

	fee := isFee(region, feeKeywords)
	establishment, city, matched, fallback := splitCity(region, !inMovements && !fee)

	raw := line[markerAt+len(currencyutils.Marker):]
	raw = strings.ReplaceAll(raw, currencyutils.Marker, "")
	raw = strings.TrimSpace(strings.ReplaceAll(raw, "-", ""))
	value := currencyutils.ToFloat(amountDigitsPattern.FindString(raw))
	if negative {
		value = -value
	}

	if !matched {
		switch {
		case inMovements:
			city = ""
		case fee:
			city = fallback
			if fallback != "" {
				establishment = strings.TrimSpace(strings.TrimSuffix(establishment, fallback))
			}
		default:
			return nil, &lineRejection{Reason: ReasonMissingCity}
		}
	}

	return &models.ExpenseLine{
		Date:          dateutils.ToISODate(dateToken, ctx.Year),
		Description:   establishment,
		Establishment: establishment,
		City:          city,
		Value:         value,
		Installment:   installment,
	}, nil
}

func isFee(text string, keywords []string) bool {
	_, ok := textutils.ContainsAnyFold(text, keywords...)
	return ok
}
