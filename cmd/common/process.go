// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"errors"
	"fmt"
	"io"

	exporter "faturas/fatura-csv/internal/common"
	"faturas/fatura-csv/internal/currencyutils"
	"faturas/fatura-csv/internal/logging"
	"faturas/fatura-csv/internal/models"
	"faturas/fatura-csv/internal/parser"
	"faturas/fatura-csv/internal/parsererror"
)

// ErrInvalidFormat is returned when --validate rejects the input file.
var ErrInvalidFormat = errors.New("the file is not in a valid format")

// ProcessFile parses inputFile with the given parser and exports the result.
// An empty outputFile writes the export to stdout. When the parser aborts
// with a PipelineError, the empty result is still exported before the error
// is returned.
func ProcessFile(ctx context.Context, p parser.FullParser, inputFile, outputFile string, validate bool,
	opts exporter.ExportOptions, stdout io.Writer, log logging.Logger) (models.ParseResult, error) {
	if inputFile == "" {
		return models.ParseResult{}, fmt.Errorf("input file must be specified")
	}

	// Set the logger on the parser using the new interface
	p.SetLogger(log)

	if validate {
		log.Info("Validating format...", logging.F(logging.FieldFile, inputFile))
		valid, err := p.ValidateFormat(inputFile)
		if err != nil {
			return models.ParseResult{}, fmt.Errorf("error validating file: %w", err)
		}
		if !valid {
			return models.ParseResult{}, ErrInvalidFormat
		}
		log.Info("Validation successful.")
	}

	if outputFile != "" {
		result, err := p.ConvertFile(ctx, inputFile, outputFile, opts)
		if parsererror.IsPipelineError(err) {
			// empty invoice carrying the pipeline_failed warning
			if werr := exporter.WriteResult(result, outputFile, opts, log); werr != nil {
				log.WithError(werr).Warn("Failed to write empty result")
			}
		}
		if err != nil {
			return result, fmt.Errorf("error converting invoice: %w", err)
		}
		log.Info("Conversion completed successfully!",
			logging.F(logging.FieldOutputFile, outputFile),
			logging.F(logging.FieldFormat, opts.Format))
		return result, nil
	}

	result, err := p.ParseFile(ctx, inputFile)
	if parsererror.IsPipelineError(err) {
		if werr := exporter.Export(stdout, result, opts); werr != nil {
			log.WithError(werr).Warn("Failed to write empty result")
		}
	}
	if err != nil {
		return result, fmt.Errorf("error parsing invoice: %w", err)
	}
	if err := exporter.Export(stdout, result, opts); err != nil {
		return result, fmt.Errorf("error writing output: %w", err)
	}
	return result, nil
}

// PrintSummary writes a human-readable overview of a parse result.
func PrintSummary(w io.Writer, result models.ParseResult) error {
	h := result.Invoice.Header
	lines := []string{
		fmt.Sprintf("Reference month: %s", valueOrDash(h.ReferenceMonth)),
		fmt.Sprintf("Due date:        %s", valueOrDash(h.DueDate)),
		fmt.Sprintf("Closing date:    %s", valueOrDash(h.ClosingDate)),
		fmt.Sprintf("Invoice total:   %s", currencyutils.FormatFloat(h.TotalValue)),
		fmt.Sprintf("Minimum payment: %s", currencyutils.FormatFloat(h.MinimumPayment)),
		fmt.Sprintf("Expenses:        %d", len(result.Invoice.Expenses)),
		fmt.Sprintf("Expense total:   %s", currencyutils.FormatAmount(result.Invoice.ExpenseTotal())),
		fmt.Sprintf("Reversals:       %d", len(result.Invoice.Reversals())),
	}
	if result.Year != 0 {
		source := "from text"
		if !result.YearInferred {
			source = "defaulted to current year"
		}
		lines = append(lines, fmt.Sprintf("Year:            %d (%s)", result.Year, source))
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	if len(result.Warnings) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "Warnings (%d):\n", len(result.Warnings)); err != nil {
		return err
	}
	for _, warning := range result.Warnings {
		if _, err := fmt.Fprintf(w, "  - %s\n", warning); err != nil {
			return err
		}
	}
	return nil
}

func valueOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
