package models

import "fmt"

// ParseContext carries the state shared by header and expense parsing
// during a single parse call.
type ParseContext struct {
	Year int
}

// WarningCode classifies a non-fatal parse event.
type WarningCode string

const (
	// WarningFieldMissing is raised when a header field has no matching line.
	WarningFieldMissing WarningCode = "field_missing"
	// WarningLineRejected is raised when a candidate expense line is discarded.
	WarningLineRejected WarningCode = "line_rejected"
	// WarningYearDefaulted is raised when no usable year token was found in the text.
	WarningYearDefaulted WarningCode = "year_defaulted"
	// WarningPipelineFailed marks the empty result returned after the parser aborted.
	WarningPipelineFailed WarningCode = "pipeline_failed"
)

// Warning describes something the parser recovered from.
type Warning struct {
	Code   WarningCode `json:"code"`
	Field  string      `json:"field,omitempty"`
	Line   string      `json:"line,omitempty"`
	Reason string      `json:"reason,omitempty"`
}

func (w Warning) String() string {
	switch {
	case w.Field != "":
		return fmt.Sprintf("%s: %s", w.Code, w.Field)
	case w.Line != "":
		return fmt.Sprintf("%s: %s (%s)", w.Code, w.Line, w.Reason)
	default:
		return fmt.Sprintf("%s: %s", w.Code, w.Reason)
	}
}

// ParseResult is the outcome of one parse call: the best-effort invoice
// plus whatever the parser had to skip or default along the way.
type ParseResult struct {
	RunID        string      `json:"runId"`
	Source       string      `json:"source,omitempty"`
	Year         int         `json:"year"`
	YearInferred bool        `json:"yearInferred"`
	Invoice      InvoiceData `json:"invoice"`
	Warnings     []Warning   `json:"warnings"`
}

// WarningsByCode returns the warnings matching code.
func (r ParseResult) WarningsByCode(code WarningCode) []Warning {
	var out []Warning
	for _, w := range r.Warnings {
		if w.Code == code {
			out = append(out, w)
		}
	}
	return out
}

// MissingFields lists the header fields that fell back to their default.
func (r ParseResult) MissingFields() []string {
	var fields []string
	for _, w := range r.WarningsByCode(WarningFieldMissing) {
		fields = append(fields, w.Field)
	}
	return fields
}
