// Package parse handles single-invoice conversion
package parse

import (
	"faturas/fatura-csv/cmd/common"
	"faturas/fatura-csv/cmd/root"
	"faturas/fatura-csv/internal/logging"

	"github.com/spf13/cobra"
)

// Cmd represents the parse command
var Cmd = &cobra.Command{
	Use:   "parse",
	Short: "Extract one invoice to CSV, JSON or XLSX",
	Long: `Extract the header and expenses of one Sicoob Mastercard invoice.

The input may be the invoice PDF or a .txt file holding its extracted text.
Without -o the export is written to stdout.

Example:
  fatura-csv parse -i fatura_junho.pdf -o fatura_junho.csv
  fatura-csv parse -i fatura_junho.pdf --format json`,
	RunE: parseFunc,
}

func parseFunc(cmd *cobra.Command, args []string) error {
	logger := root.GetLogger()
	logger.Debug("Parse command called",
		logging.F(logging.FieldInputFile, root.SharedFlags.Input),
		logging.F(logging.FieldOutputFile, root.SharedFlags.Output))

	appContainer := root.GetContainer()
	if appContainer == nil {
		return root.ErrContainerNotInitialized
	}

	result, err := common.ProcessFile(cmd.Context(), appContainer.GetParser(),
		root.SharedFlags.Input, root.SharedFlags.Output, root.SharedFlags.Validate,
		root.ExportOptions(), cmd.OutOrStdout(), logger)
	if err != nil {
		return err
	}

	for _, warning := range result.Warnings {
		logger.Debug("Invoice parsed with warning", logging.F(logging.FieldWarnings, warning.String()))
	}
	return nil
}
