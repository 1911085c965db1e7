// Package summary prints an overview of an invoice or of a previous export
package summary

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"faturas/fatura-csv/cmd/common"
	"faturas/fatura-csv/cmd/root"
	exporter "faturas/fatura-csv/internal/common"
	"faturas/fatura-csv/internal/logging"
	"faturas/fatura-csv/internal/models"
	"faturas/fatura-csv/internal/parser"
	"faturas/fatura-csv/internal/parsererror"
	"faturas/fatura-csv/internal/validation"

	"github.com/spf13/cobra"
)

// Cmd represents the summary command
var Cmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the header, expense count and totals of an invoice",
	Long: `Print the header, expense count, totals and warnings of an invoice.

The input may be an invoice (.pdf or .txt) or an earlier export (.csv or
.json). CSV exports are read with the configured delimiter.

Example:
  fatura-csv summary -i fatura_junho.pdf
  fatura-csv summary -i exports/fatura_2025-05.csv`,
	RunE: summaryFunc,
}

func summaryFunc(cmd *cobra.Command, args []string) error {
	appContainer := root.GetContainer()
	if appContainer == nil {
		return root.ErrContainerNotInitialized
	}

	result, err := LoadResult(cmd.Context(), appContainer.GetParser(), root.SharedFlags.Input,
		root.ExportOptions().Delimiter, appContainer.GetLogger())
	if parsererror.IsPipelineError(err) {
		if perr := common.PrintSummary(cmd.OutOrStdout(), result); perr != nil {
			return perr
		}
	}
	if err != nil {
		return err
	}
	return common.PrintSummary(cmd.OutOrStdout(), result)
}

// LoadResult returns the parse result behind path: exports are read back,
// anything else goes through the invoice parser.
func LoadResult(ctx context.Context, p parser.InvoiceParser, path string, delimiter rune, logger logging.Logger) (models.ParseResult, error) {
	if path == "" {
		return models.ParseResult{}, fmt.Errorf("input file must be specified")
	}

	switch strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".") {
	case validation.FormatCSV:
		records, err := exporter.ReadCSVFile[models.ExpenseRecord](path, delimiter, logger)
		if err != nil {
			return models.ParseResult{}, fmt.Errorf("error reading export: %w", err)
		}
		return models.ParseResult{Source: path, Invoice: models.InvoiceFromRecords(records)}, nil

	case validation.FormatJSON:
		file, err := os.Open(path) // #nosec G304 -- CLI tool requires user-provided file paths
		if err != nil {
			return models.ParseResult{}, fmt.Errorf("error opening export: %w", err)
		}
		defer func() {
			if cerr := file.Close(); cerr != nil {
				logger.WithError(cerr).Warn("Failed to close file")
			}
		}()
		return readJSON(file, path)

	default:
		return p.ParseFile(ctx, path)
	}
}

func readJSON(r io.Reader, path string) (models.ParseResult, error) {
	result, err := exporter.ReadJSON(r)
	if err != nil {
		return models.ParseResult{}, fmt.Errorf("error reading export %s: %w", path, err)
	}
	return result, nil
}
