// Package parser provides the base parser functionality and common interfaces.
package parser

import (
	"faturas/fatura-csv/internal/common"
	"faturas/fatura-csv/internal/logging"
	"faturas/fatura-csv/internal/models"
)

// BaseParser provides common functionality for all parser implementations.
// Parsers should embed BaseParser to inherit common functionality:
//
//	type MyParser struct {
//		BaseParser
//		// parser-specific fields
//	}
type BaseParser struct {
	logger logging.Logger
}

// NewBaseParser creates a new BaseParser instance with the provided logger.
// If logger is nil, a default logger will be used.
func NewBaseParser(logger logging.Logger) BaseParser {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	return BaseParser{
		logger: logger,
	}
}

// SetLogger implements the LoggerConfigurable interface.
func (b *BaseParser) SetLogger(logger logging.Logger) {
	if logger != nil {
		b.logger = logger
	}
}

// GetLogger returns the current logger instance.
func (b *BaseParser) GetLogger() logging.Logger {
	return b.logger
}

// WriteResult exports a parse result through the common writers so every
// parser produces the same file layout.
func (b *BaseParser) WriteResult(result models.ParseResult, outputFile string, opts common.ExportOptions) error {
	b.logger.Info("Writing invoice using common writer",
		logging.F(logging.FieldFile, outputFile),
		logging.F(logging.FieldCount, len(result.Invoice.Expenses)))

	return common.WriteResult(result, outputFile, opts, b.logger)
}
