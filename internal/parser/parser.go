package parser

import (
	"context"

	"faturas/fatura-csv/internal/common"
	"faturas/fatura-csv/internal/logging"
	"faturas/fatura-csv/internal/models"
)

// InvoiceParser reads a statement file into a ParseResult.
// Implementations should return custom error types (e.g., InvalidFormatError,
// DataExtractionError) for input failures and a PipelineError when the
// engine itself failed.
type InvoiceParser interface {
	ParseFile(ctx context.Context, path string) (models.ParseResult, error)
}

// Validator checks that a file can be handled before parsing it.
type Validator interface {
	ValidateFormat(path string) (bool, error)
}

// Converter parses a file and exports the result in one step.
type Converter interface {
	ConvertFile(ctx context.Context, inputFile, outputFile string, opts common.ExportOptions) (models.ParseResult, error)
}

// LoggerConfigurable is implemented by parsers whose logger can be swapped.
type LoggerConfigurable interface {
	SetLogger(logger logging.Logger)
}

// FullParser combines every capability the commands rely on.
type FullParser interface {
	InvoiceParser
	Validator
	Converter
	LoggerConfigurable
}
