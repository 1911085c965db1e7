// Package batch handles batch processing of files
package batch

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"faturas/fatura-csv/cmd/root"
	"faturas/fatura-csv/internal/batch"
	exporter "faturas/fatura-csv/internal/common"
	"faturas/fatura-csv/internal/currencyutils"
	"faturas/fatura-csv/internal/fileutils"
	"faturas/fatura-csv/internal/logging"
	"faturas/fatura-csv/internal/pdfparser"

	"github.com/spf13/cobra"
)

// Workers overrides batch.workers when positive
var Workers int

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Batch process invoices from a directory",
	Long: `Batch process invoices from an input directory and write one export per
invoice to another directory.

Every .pdf and .txt file in the input directory is parsed independently by a
bounded pool of workers. Outputs are named fatura_<YYYY-MM>.<ext> after the
reference month of the invoice, or after the input file when the month is
unknown. Invoices that look like the same statement parsed twice are logged.

Example:
  fatura-csv batch -i faturas/ -o exports/ --workers 8`,
	RunE: batchFunc,
}

func init() {
	Cmd.Flags().IntVarP(&Workers, "workers", "w", 0, "Number of parallel workers (default from batch.workers)")
}

func batchFunc(cmd *cobra.Command, args []string) error {
	appContainer := root.GetContainer()
	if appContainer == nil {
		return root.ErrContainerNotInitialized
	}
	logger := appContainer.GetLogger()

	inputDir := root.SharedFlags.Input
	outputDir := root.SharedFlags.Output
	if inputDir == "" || outputDir == "" {
		return fmt.Errorf("input and output directories must be specified")
	}

	processor := appContainer.GetBatchProcessor()
	if Workers > 0 {
		processor = batch.NewProcessor(appContainer.GetParser(), Workers, logger)
	}

	count, err := BatchConvert(cmd.Context(), processor, inputDir, outputDir, root.ExportOptions(), cmd.OutOrStdout(), logger)
	if err != nil {
		return err
	}

	logger.Info(fmt.Sprintf("Batch processing completed. %d files created.", count))
	return nil
}

// BatchConvert parses every invoice of inputDir and writes one export per
// successfully parsed file to outputDir. It returns the number of files
// written; a summary of the run is printed to out.
func BatchConvert(ctx context.Context, processor *batch.Processor, inputDir, outputDir string,
	opts exporter.ExportOptions, out io.Writer, logger logging.Logger) (int, error) {
	files, err := fileutils.ListFilesWithExtensions(inputDir, pdfparser.ExtPDF, pdfparser.ExtText)
	if err != nil {
		return 0, fmt.Errorf("failed to read input directory: %w", err)
	}
	if len(files) == 0 {
		logger.Warn("No supported files found in input directory", logging.F(logging.FieldFile, inputDir))
		return 0, nil
	}

	if err := fileutils.EnsureDirectoryExists(outputDir); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}

	logger.Info("Found files for processing",
		logging.F(logging.FieldCount, len(files)),
		logging.F(logging.FieldWorkers, processor.Workers()))

	results, err := processor.ProcessFiles(ctx, files)
	if err != nil {
		return 0, fmt.Errorf("batch processing interrupted: %w", err)
	}

	aggregator := batch.NewBatchAggregator(logger)
	ext := exporter.ExtensionFor(opts.Format)
	used := make(map[string]int)
	written := 0

	for _, r := range results {
		if !r.OK() {
			continue
		}
		outputPath := filepath.Join(outputDir, aggregator.GenerateOutputFilename(r, ext, used))
		if err := exporter.WriteResult(r.Result, outputPath, opts, logger); err != nil {
			logger.WithError(err).Error("Failed to write export",
				logging.F(logging.FieldInputFile, r.File),
				logging.F(logging.FieldOutputFile, outputPath))
			continue
		}
		written++
	}

	summary := aggregator.Summarize(results)
	if err := printBatchSummary(out, summary, results); err != nil {
		return written, err
	}

	if summary.Failed > 0 {
		return written, fmt.Errorf("%d of %d files failed to parse", summary.Failed, summary.Files)
	}
	return written, nil
}

func printBatchSummary(w io.Writer, summary batch.Summary, results []batch.FileResult) error {
	if _, err := fmt.Fprintf(w, "Files: %d parsed, %d failed\nExpenses: %d\nWarnings: %d\nInvoice totals: %s\n",
		summary.Succeeded, summary.Failed, summary.Expenses, summary.Warnings,
		currencyutils.FormatAmount(summary.Total)); err != nil {
		return err
	}
	if summary.Duplicates > 0 {
		if _, err := fmt.Fprintf(w, "Potential duplicates: %d\n", summary.Duplicates); err != nil {
			return err
		}
	}
	for _, r := range results {
		if r.OK() {
			continue
		}
		if _, err := fmt.Fprintf(w, "  failed: %s: %v\n", filepath.Base(r.File), r.Err); err != nil {
			return err
		}
	}
	return nil
}
