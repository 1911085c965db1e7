package common

import (
	"fmt"
	"io"
	"strings"

	"faturas/fatura-csv/internal/fileutils"
	"faturas/fatura-csv/internal/logging"
	"faturas/fatura-csv/internal/models"
	"faturas/fatura-csv/internal/validation"
)

// ExportOptions selects the output format of a parse result.
type ExportOptions struct {
	Format    string
	Delimiter rune
}

// DefaultExportOptions exports comma separated CSV.
func DefaultExportOptions() ExportOptions {
	return ExportOptions{Format: validation.FormatCSV, Delimiter: DefaultDelimiter}
}

// ExtensionFor returns the file extension, with dot, for a format.
func ExtensionFor(format string) string {
	return "." + strings.ToLower(format)
}

// Export writes result to w in the requested format.
func Export(w io.Writer, result models.ParseResult, opts ExportOptions) error {
	if err := validation.IsValidOutputFormat(opts.Format); err != nil {
		return err
	}

	switch strings.ToLower(opts.Format) {
	case validation.FormatJSON:
		return WriteJSON(w, result)
	case validation.FormatXLSX:
		return WriteXLSX(w, result)
	default:
		return WriteExpensesCSV(w, result.Invoice, opts.Delimiter)
	}
}

// WriteResult exports result to path, creating parent directories.
func WriteResult(result models.ParseResult, path string, opts ExportOptions, logger logging.Logger) error {
	if err := validation.IsValidOutputFormat(opts.Format); err != nil {
		return err
	}

	logger.Info("Writing invoice",
		logging.F(logging.FieldOutputFile, path),
		logging.F(logging.FieldFormat, opts.Format),
		logging.F(logging.FieldCount, len(result.Invoice.Expenses)))

	file, err := fileutils.CreateFile(path)
	if err != nil {
		logger.WithError(err).Error("Failed to create output file")
		return fmt.Errorf("error creating output file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file", logging.F(logging.FieldFile, path))
		}
	}()

	return Export(file, result, opts)
}
