package pdfparser

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"faturas/fatura-csv/internal/common"
	"faturas/fatura-csv/internal/invoiceparser"
	"faturas/fatura-csv/internal/logging"
	"faturas/fatura-csv/internal/parser"
	"faturas/fatura-csv/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const invoiceText = `FATURA DE CARTÃO DE CRÉDITO
VENCIMENTO 3 JUL 2025
TOTAL R$ 2.600,35
PAGAMENTO MÍNIMO R$ 418,86
REF 26 MAI A 23 JUN
DATA DE FECHAMENTO DA FATURA 23 JUN 2025
24 MAI CAFE DA ANA CORONEL VIVID R$ 42,00
25 MAI AB SUPERMERCADOS LTD CORONEL VIVID R$ 156,78`

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestAdapter_ImplementsFullParser(t *testing.T) {
	var _ parser.FullParser = (*Adapter)(nil)
}

func TestAdapter_ParseFile(t *testing.T) {
	extractor := NewMockPDFExtractor(invoiceText, nil)
	logger := logging.NewMockLogger()
	adapter := NewAdapter(logger, extractor, nil)

	path := writeInput(t, "fatura.pdf", "%PDF-1.4")
	result, err := adapter.ParseFile(context.Background(), path)
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, path, result.Source)
	assert.Equal(t, "MAI/2025", result.Invoice.Header.ReferenceMonth)
	assert.Len(t, result.Invoice.Expenses, 2)
	assert.Equal(t, []string{path}, extractor.Calls)
	assert.True(t, logger.HasEntry("INFO", "Invoice parsed"))

	again, err := adapter.ParseFile(context.Background(), path)
	require.NoError(t, err)
	assert.NotEqual(t, result.RunID, again.RunID)
}

func TestAdapter_ParseFile_TextInput(t *testing.T) {
	extractor := NewMockPDFExtractor("", errors.New("must not be called"))
	adapter := NewAdapter(logging.NewDiscardLogger(), extractor, nil)

	path := writeInput(t, "fatura.TXT", invoiceText)
	result, err := adapter.ParseFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "2025-07-03", result.Invoice.Header.DueDate)
	assert.Empty(t, extractor.Calls)
}

func TestAdapter_ParseFile_Errors(t *testing.T) {
	tests := []struct {
		name      string
		path      func(t *testing.T) string
		extractor PDFExtractor
		check     func(t *testing.T, err error)
	}{
		{
			name:      "wrong extension",
			path:      func(t *testing.T) string { return writeInput(t, "fatura.docx", "x") },
			extractor: NewMockPDFExtractor(invoiceText, nil),
			check: func(t *testing.T, err error) {
				var target *parsererror.InvalidFormatError
				assert.ErrorAs(t, err, &target)
			},
		},
		{
			name:      "missing file",
			path:      func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.pdf") },
			extractor: NewMockPDFExtractor(invoiceText, nil),
			check: func(t *testing.T, err error) {
				var target *parsererror.ValidationError
				assert.ErrorAs(t, err, &target)
			},
		},
		{
			name:      "blank text",
			path:      func(t *testing.T) string { return writeInput(t, "fatura.pdf", "%PDF") },
			extractor: NewMockPDFExtractor(" \n\t\n", nil),
			check: func(t *testing.T, err error) {
				var target *parsererror.DataExtractionError
				assert.ErrorAs(t, err, &target)
			},
		},
		{
			name:      "extractor failure",
			path:      func(t *testing.T) string { return writeInput(t, "fatura.pdf", "%PDF") },
			extractor: NewMockPDFExtractor("", errors.New("broken xref")),
			check: func(t *testing.T, err error) {
				assert.EqualError(t, err, "broken xref")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter := NewAdapter(logging.NewDiscardLogger(), tt.extractor, nil)
			_, err := adapter.ParseFile(context.Background(), tt.path(t))
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestAdapter_ParseFile_Cancelled(t *testing.T) {
	adapter := NewAdapter(logging.NewDiscardLogger(), NewMockPDFExtractor(invoiceText, nil), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := adapter.ParseFile(ctx, writeInput(t, "fatura.pdf", "%PDF"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAdapter_ParseFile_UsesInjectedParser(t *testing.T) {
	invoices, err := invoiceparser.New(invoiceparser.WithFeeKeywords("NETFLIX"))
	require.NoError(t, err)
	adapter := NewAdapter(logging.NewDiscardLogger(), NewMockPDFExtractor("VENCIMENTO 3 JUL 2025\n26 MAI NETFLIX R$ 39,90", nil), invoices)

	result, err := adapter.ParseFile(context.Background(), writeInput(t, "fatura.pdf", "%PDF"))
	require.NoError(t, err)
	require.Len(t, result.Invoice.Expenses, 1)
	assert.Equal(t, "NETFLIX", result.Invoice.Expenses[0].Establishment)
}

func TestAdapter_DebugText(t *testing.T) {
	adapter := NewAdapter(logging.NewDiscardLogger(), NewMockPDFExtractor(invoiceText, nil), nil)
	adapter.SetDebugText(true)

	path := writeInput(t, "fatura.pdf", "%PDF")
	_, err := adapter.ParseFile(context.Background(), path)
	require.NoError(t, err)

	dump, err := os.ReadFile(filepath.Join(filepath.Dir(path), "fatura.extracted.txt"))
	require.NoError(t, err)
	assert.Equal(t, invoiceText, string(dump))
}

func TestAdapter_ConvertFile(t *testing.T) {
	adapter := NewAdapter(logging.NewDiscardLogger(), NewMockPDFExtractor(invoiceText, nil), nil)
	input := writeInput(t, "fatura.pdf", "%PDF")
	output := filepath.Join(t.TempDir(), "out", "fatura.csv")

	result, err := adapter.ConvertFile(context.Background(), input, output, common.ExportOptions{Format: "csv", Delimiter: ';'})
	require.NoError(t, err)
	assert.Len(t, result.Invoice.Expenses, 2)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(content), "MAI/2025;2025-07-03;2025-06-23;2025-05-24;CAFE DA ANA;CORONEL VIVID;;42")
}

func TestAdapter_ValidateFormat(t *testing.T) {
	adapter := NewAdapter(logging.NewDiscardLogger(), NewMockPDFExtractor(invoiceText, nil), nil)

	ok, err := adapter.ValidateFormat(writeInput(t, "fatura.pdf", "%PDF"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = adapter.ValidateFormat(writeInput(t, "fatura.odt", "x"))
	require.NoError(t, err)
	assert.False(t, ok)

	failing := NewAdapter(logging.NewDiscardLogger(), NewMockPDFExtractor("", errors.New("pdftotext not found")), nil)
	ok, err = failing.ValidateFormat(writeInput(t, "fatura.pdf", "%PDF"))
	assert.Error(t, err)
	assert.False(t, ok)
}
