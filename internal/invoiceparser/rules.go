package invoiceparser

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"faturas/fatura-csv/internal/currencyutils"
	"faturas/fatura-csv/internal/dateutils"
	"faturas/fatura-csv/internal/models"
	"faturas/fatura-csv/internal/parsererror"
)

// Rule pairs a pattern with the conversion applied to its first capture
// group. Rules are evaluated in slice order and the first match wins.
type Rule[T any] struct {
	Pattern *regexp.Regexp
	Convert func(raw string, ctx models.ParseContext) T
}

// Apply runs the rule against a single line.
func (r Rule[T]) Apply(line string, ctx models.ParseContext) (T, bool) {
	var zero T
	m := r.Pattern.FindStringSubmatch(line)
	if m == nil || len(m) < 2 {
		return zero, false
	}
	return r.Convert(strings.TrimSpace(m[1]), ctx), true
}

// firstMatch walks lines top to bottom and, for each line, tries every rule
// in priority order. The earliest line with any matching rule decides.
func firstMatch[T any](lines []string, rules []Rule[T], ctx models.ParseContext) (T, bool) {
	for _, line := range lines {
		for _, rule := range rules {
			if v, ok := rule.Apply(line, ctx); ok {
				return v, true
			}
		}
	}
	var zero T
	return zero, false
}

// HeaderRules holds the ordered alternatives for every header field. The
// reference period rules are the fallback tier used when no "fatura de
// <mês>" sentence is present.
type HeaderRules struct {
	DueDate         []Rule[string]
	TotalValue      []Rule[float64]
	MinimumPayment  []Rule[float64]
	ReferencePeriod []Rule[string]
	ClosingDate     []Rule[string]
}

const (
	fullDate  = `(\d{1,2}\s+[A-Z]{3}\s+\d{4})`
	slashDate = `(\d{2}/\d{2}/\d{4})`
	amount    = `R\$\s*([\d\.]+,\d{2})`
	period    = `(\d{2}\s+[A-Z]{3}\s+A\s+\d{2}\s+[A-Z]{3})`
)

var periodSeparator = regexp.MustCompile(`(?i)\s+A\s+`)

func convertDate(raw string, ctx models.ParseContext) string {
	if strings.Contains(raw, "/") {
		return dateutils.SlashToISO(raw)
	}
	return dateutils.ToISODate(strings.ToUpper(raw), ctx.Year)
}

func convertAmount(raw string, _ models.ParseContext) float64 {
	return currencyutils.ToFloat(raw)
}

// convertPeriod maps a "DD MMM A DD MMM" billing period to its reference
// month, which is the month before the closing month. The raw period is
// kept when the closing month is unknown.
func convertPeriod(raw string, ctx models.ParseContext) string {
	parts := periodSeparator.Split(raw, 2)
	if len(parts) != 2 {
		return raw
	}
	end := strings.Fields(parts[1])
	if len(end) < 2 {
		return raw
	}
	abbr, year, ok := dateutils.PreviousMonth(end[1], ctx.Year)
	if !ok {
		return raw
	}
	return dateutils.FormatReferenceMonth(abbr, year)
}

func rules[T any](convert func(string, models.ParseContext) T, patterns ...string) []Rule[T] {
	out := make([]Rule[T], 0, len(patterns))
	for _, p := range patterns {
		out = append(out, Rule[T]{Pattern: regexp.MustCompile(p), Convert: convert})
	}
	return out
}

// DefaultHeaderRules returns the built-in Sicoob/Mastercard header patterns.
func DefaultHeaderRules() HeaderRules {
	return HeaderRules{
		DueDate: rules(convertDate,
			`(?i)\bVENCIMENTO\s+`+fullDate,
			`(?i)\bVENC\s+`+fullDate,
			`(?i)\bVENCIMENTO\s*:?\s*`+fullDate,
			`(?i)\bVENCIMENTO\s*:?\s*`+slashDate,
		),
		TotalValue: rules(convertAmount,
			`(?i)\bTOTAL\s+`+amount,
			`(?i)\bVALOR\s+TOTAL\s+`+amount,
			`(?i)\bTOTAL\s+DA\s+FATURA\s+`+amount,
			`(?i)\bTOTAL\s+A\s+PAGAR\s+`+amount,
			`(?i)\bSALDO\s+TOTAL\s+`+amount,
		),
		MinimumPayment: rules(convertAmount,
			`(?i)\bPAGAMENTO\s+M[IÍ]NIMO\s+`+amount,
			`(?i)\bPAG\s*M[IÍ]N\s+`+amount,
			`(?i)M[IÍ]NIMO\s+`+amount,
		),
		ReferencePeriod: rules(convertPeriod,
			`(?i)\bREF\s*:?\s+`+period,
			`(?i)\bREFER[ÊE]NCIA\s*:?\s+`+period,
			`(?i)\bPER[ÍI]ODO\s*:?\s+`+period,
		),
		ClosingDate: rules(convertDate,
			`(?i)\bDATA\s+DE\s+FECHAMENTO\s+DA\s+FATURA\s+`+fullDate,
			`(?i)\bFECHAMENTO\s+`+fullDate,
			`(?i)\bFECH\s+`+fullDate,
		),
	}
}

// Extend returns a copy of h with the profile patterns appended after the
// built-in ones. Profile patterns are matched case-insensitively and must
// have exactly one capture group.
func (h HeaderRules) Extend(profile models.StatementProfile) (HeaderRules, error) {
	out := HeaderRules{
		DueDate:         slices.Clone(h.DueDate),
		TotalValue:      slices.Clone(h.TotalValue),
		MinimumPayment:  slices.Clone(h.MinimumPayment),
		ReferencePeriod: slices.Clone(h.ReferencePeriod),
		ClosingDate:     slices.Clone(h.ClosingDate),
	}

	var err error
	if out.DueDate, err = appendProfileRules(out.DueDate, profile, "due_date", profile.DueDate, convertDate); err != nil {
		return h, err
	}
	if out.TotalValue, err = appendProfileRules(out.TotalValue, profile, "total_value", profile.TotalValue, convertAmount); err != nil {
		return h, err
	}
	if out.MinimumPayment, err = appendProfileRules(out.MinimumPayment, profile, "minimum_payment", profile.MinimumPayment, convertAmount); err != nil {
		return h, err
	}
	if out.ReferencePeriod, err = appendProfileRules(out.ReferencePeriod, profile, "reference_period", profile.ReferencePeriod, convertPeriod); err != nil {
		return h, err
	}
	if out.ClosingDate, err = appendProfileRules(out.ClosingDate, profile, "closing_date", profile.ClosingDate, convertDate); err != nil {
		return h, err
	}
	return out, nil
}

func appendProfileRules[T any](dst []Rule[T], profile models.StatementProfile, field string, patterns []string,
	convert func(string, models.ParseContext) T) ([]Rule[T], error) {
	for _, p := range patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, &parsererror.ValidationError{
				FilePath: profileName(profile),
				Reason:   fmt.Sprintf("invalid %s pattern %q", field, p),
				Err:      err,
			}
		}
		if re.NumSubexp() != 1 {
			return nil, &parsererror.ValidationError{
				FilePath: profileName(profile),
				Reason:   fmt.Sprintf("%s pattern %q must have exactly one capture group, has %d", field, p, re.NumSubexp()),
			}
		}
		dst = append(dst, Rule[T]{Pattern: re, Convert: convert})
	}
	return dst, nil
}

func profileName(p models.StatementProfile) string {
	if p.Name == "" {
		return "profile"
	}
	return "profile " + p.Name
}
