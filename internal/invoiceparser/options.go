package invoiceparser

import (
	"time"

	"faturas/fatura-csv/internal/logging"
	"faturas/fatura-csv/internal/models"
)

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger used for rejected lines and parse summaries.
func WithLogger(logger logging.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithClock overrides the clock used when the document carries no year.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		if now != nil {
			p.now = now
		}
	}
}

// WithProfile adds the header patterns and fee keywords of a statement
// profile on top of the built-in ones.
func WithProfile(profile models.StatementProfile) Option {
	return func(p *Parser) {
		p.profile = profile
	}
}

// WithFeeKeywords appends extra fee keywords.
func WithFeeKeywords(keywords ...string) Option {
	return func(p *Parser) {
		p.feeKeywords = append(p.feeKeywords, keywords...)
	}
}
