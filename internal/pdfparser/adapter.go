// Package pdfparser reads Sicoob Mastercard invoice PDFs and hands their
// text to the invoice parser.
package pdfparser

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"faturas/fatura-csv/internal/common"
	"faturas/fatura-csv/internal/fileutils"
	"faturas/fatura-csv/internal/invoiceparser"
	"faturas/fatura-csv/internal/logging"
	"faturas/fatura-csv/internal/models"
	"faturas/fatura-csv/internal/parser"
	"faturas/fatura-csv/internal/parsererror"
)

// Adapter implements parser.FullParser for invoice PDFs and their
// pre-extracted .txt dumps.
type Adapter struct {
	parser.BaseParser
	extractor PDFExtractor
	invoices  *invoiceparser.Parser
	debugText bool
}

// NewAdapter creates a new adapter for the pdfparser with dependency injection.
// A nil extractor selects the native reader and a nil invoice parser the
// default rules.
func NewAdapter(logger logging.Logger, extractor PDFExtractor, invoices *invoiceparser.Parser) *Adapter {
	if extractor == nil {
		extractor = NewNativeExtractor()
	}
	if invoices == nil {
		invoices, _ = invoiceparser.New(invoiceparser.WithLogger(logger))
	}
	return &Adapter{
		BaseParser: parser.NewBaseParser(logger),
		extractor:  extractor,
		invoices:   invoices,
	}
}

// SetDebugText makes ParseFile write the extracted text next to the input
// as <name>.extracted.txt.
func (a *Adapter) SetDebugText(enabled bool) {
	a.debugText = enabled
}

// ExtractText returns the statement text of a .pdf or .txt input.
func (a *Adapter) ExtractText(path string) (string, error) {
	if err := ValidateInputFile(path); err != nil {
		return "", err
	}

	var text string
	if strings.EqualFold(filepath.Ext(path), ExtText) {
		data, err := fileutils.ReadFile(path)
		if err != nil {
			return "", err
		}
		text = string(data)
	} else {
		extracted, err := a.extractor.ExtractText(path)
		if err != nil {
			return "", err
		}
		text = extracted
	}

	if err := ValidateText(path, text); err != nil {
		return "", err
	}
	return text, nil
}

// ParseFile extracts the text of path and parses it. A PipelineError from
// the engine is returned together with the empty result.
func (a *Adapter) ParseFile(ctx context.Context, path string) (models.ParseResult, error) {
	if err := ctx.Err(); err != nil {
		return models.ParseResult{}, err
	}

	runID := uuid.NewString()
	logger := a.GetLogger().WithFields(
		logging.F(logging.FieldRunID, runID),
		logging.F(logging.FieldFile, path))
	start := time.Now()

	logger.Info("Parsing invoice")

	text, err := a.ExtractText(path)
	if err != nil {
		logger.WithError(err).Error("Text extraction failed")
		return models.ParseResult{}, err
	}
	logger.Debug("Extracted text", logging.F(logging.FieldLine, textSnippet(text)))

	if a.debugText {
		a.dumpText(logger, path, text)
	}

	if err := ctx.Err(); err != nil {
		return models.ParseResult{}, err
	}

	result, err := a.invoices.Parse(text)
	result.RunID = runID
	result.Source = path
	if err != nil {
		logger.WithError(err).Error("Invoice parsing failed")
		return result, err
	}

	logger.Info("Invoice parsed",
		logging.F(logging.FieldReferenceMonth, result.Invoice.Header.ReferenceMonth),
		logging.F(logging.FieldCount, len(result.Invoice.Expenses)),
		logging.F(logging.FieldWarnings, len(result.Warnings)),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))
	return result, nil
}

func (a *Adapter) dumpText(logger logging.Logger, path, text string) {
	if strings.EqualFold(filepath.Ext(path), ExtText) {
		return
	}
	debugFile := fileutils.ReplaceExtension(path, ".extracted.txt")
	if err := fileutils.WriteFile(debugFile, []byte(text), 0600); err != nil {
		logger.WithError(err).Warn("Failed to write debug file")
		return
	}
	logger.Debug("Wrote extracted text to debug file", logging.F(logging.FieldOutputFile, debugFile))
}

// ConvertFile parses inputFile and writes the result to outputFile.
func (a *Adapter) ConvertFile(ctx context.Context, inputFile, outputFile string, opts common.ExportOptions) (models.ParseResult, error) {
	result, err := a.ParseFile(ctx, inputFile)
	if err != nil {
		return result, err
	}
	if err := a.WriteResult(result, outputFile, opts); err != nil {
		return result, err
	}
	return result, nil
}

// ValidateFormat checks if a file is a readable invoice input. Invalid
// inputs return false with a nil error; only unexpected failures are
// returned as errors.
func (a *Adapter) ValidateFormat(file string) (bool, error) {
	a.GetLogger().Info("Validating invoice format", logging.F(logging.FieldFile, file))

	if _, err := a.ExtractText(file); err != nil {
		if isInputError(err) {
			a.GetLogger().WithError(err).Warn("Invoice validation failed")
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func isInputError(err error) bool {
	switch err.(type) {
	case *parsererror.InvalidFormatError, *parsererror.DataExtractionError,
		*parsererror.ValidationError, *parsererror.ParseError:
		return true
	}
	return false
}
