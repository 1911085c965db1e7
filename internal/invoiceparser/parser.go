// Package invoiceparser extracts the header and expense lines of a Sicoob
// Mastercard invoice from the plain text of its PDF.
//
// A Parser holds only immutable configuration. All per-document state
// lives in a models.ParseContext built inside Parse, so one Parser can be
// shared by concurrent callers.
package invoiceparser

import (
	"fmt"
	"slices"
	"time"

	"faturas/fatura-csv/internal/logging"
	"faturas/fatura-csv/internal/models"
	"faturas/fatura-csv/internal/parsererror"
	"faturas/fatura-csv/internal/textutils"
)

// Pipeline stages reported in a PipelineError.
const (
	StageNormalize = "normalize"
	StageYear      = "year inference"
	StageHeader    = "header extraction"
	StageExpenses  = "expense extraction"
)

const logSnippetLength = 80

// Parser turns statement text into a ParseResult.
type Parser struct {
	logger      logging.Logger
	now         func() time.Time
	profile     models.StatementProfile
	rules       HeaderRules
	feeKeywords []string
}

// New builds a Parser. It fails with a ValidationError when a profile
// pattern does not compile or has the wrong number of capture groups.
func New(opts ...Option) (*Parser, error) {
	p := &Parser{
		logger:      logging.NewDiscardLogger(),
		now:         time.Now,
		feeKeywords: slices.Clone(DefaultFeeKeywords),
	}
	for _, opt := range opts {
		opt(p)
	}

	rules, err := DefaultHeaderRules().Extend(p.profile)
	if err != nil {
		return nil, err
	}
	p.rules = rules
	p.feeKeywords = append(p.feeKeywords, p.profile.FeeKeywords...)
	return p, nil
}

// FeeKeywords returns the keywords that let a city-less line through
// outside the movements section.
func (p *Parser) FeeKeywords() []string {
	return slices.Clone(p.feeKeywords)
}

// Parse extracts the invoice from text. Missing fields and rejected lines
// only produce warnings. An unexpected failure inside the pipeline yields
// an empty invoice together with a *parsererror.PipelineError.
func (p *Parser) Parse(text string) (result models.ParseResult, err error) {
	stage := StageNormalize
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("Invoice parsing aborted",
				logging.F(logging.FieldOperation, stage),
				logging.F(logging.FieldError, fmt.Sprint(r)))
			pe := &parsererror.PipelineError{Stage: stage, Cause: r}
			result = models.ParseResult{
				Invoice:  models.NewEmptyInvoice(),
				Warnings: []models.Warning{{Code: models.WarningPipelineFailed, Reason: pe.Error()}},
			}
			err = pe
		}
	}()

	lines := normalizeLines(text)

	stage = StageYear
	ctx, inferred := NewParseContext(text, p.now)
	result.Year = ctx.Year
	result.YearInferred = inferred
	if !inferred {
		reason := yearFallbackReason(text, ctx.Year)
		result.Warnings = append(result.Warnings, models.Warning{
			Code:   models.WarningYearDefaulted,
			Reason: reason,
		})
		p.logger.Warn("Invoice year defaulted to current year",
			logging.F(logging.FieldYear, ctx.Year),
			logging.F(logging.FieldReason, reason))
	}

	stage = StageHeader
	header, warnings := extractHeader(lines, p.rules, ctx)
	result.Warnings = append(result.Warnings, warnings...)
	for _, w := range warnings {
		p.logger.Debug("Header field not found", logging.F(logging.FieldField, w.Field))
	}

	stage = StageExpenses
	expenses, warnings := p.extractExpenses(lines, ctx)
	result.Warnings = append(result.Warnings, warnings...)

	result.Invoice = models.InvoiceData{Header: header, Expenses: expenses}

	p.logger.Info("Invoice parsed",
		logging.F(logging.FieldReferenceMonth, header.ReferenceMonth),
		logging.F(logging.FieldYear, ctx.Year),
		logging.F(logging.FieldCount, len(expenses)),
		logging.F(logging.FieldWarnings, len(result.Warnings)))

	return result, nil
}

func (p *Parser) extractExpenses(lines []string, ctx models.ParseContext) ([]models.ExpenseLine, []models.Warning) {
	expenses := []models.ExpenseLine{}
	var warnings []models.Warning

	for _, c := range scanCandidates(lines) {
		expense, rejection := parseExpenseLine(c.Text, c.InMovements, p.feeKeywords, ctx)
		if rejection != nil {
			warnings = append(warnings, models.Warning{
				Code:   models.WarningLineRejected,
				Line:   c.Text,
				Reason: rejection.Reason,
			})
			p.logger.Debug("Candidate line rejected",
				logging.F(logging.FieldLine, textutils.Snippet(c.Text, logSnippetLength)),
				logging.F(logging.FieldReason, rejection.Reason))
			continue
		}
		expenses = append(expenses, *expense)
	}
	return expenses, warnings
}

func normalizeLines(text string) []string {
	raw := textutils.SplitLines(text)
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		lines = append(lines, textutils.CollapseSpaces(l))
	}
	return lines
}
