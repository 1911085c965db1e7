package integration

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"faturas/fatura-csv/internal/batch"
	"faturas/fatura-csv/internal/common"
	"faturas/fatura-csv/internal/config"
	"faturas/fatura-csv/internal/container"
	"faturas/fatura-csv/internal/logging"
	"faturas/fatura-csv/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const sicoobInvoice = `SICOOB
FATURA DE CARTÃO DE CRÉDITO MASTERCARD
VENCIMENTO 3 JUL 2025
TOTAL R$ 2.600,35
PAGAMENTO MÍNIMO R$ 418,86
REF 26 MAI A 23 JUN
DATA DE FECHAMENTO DA FATURA 23 JUN 2025
Movimentações da Conta
DATA DESCRIÇÃO CIDADE VALOR
22 MAI SALDO ANTERIOR R$ 1.980,12
23 MAI PAGAMENTO - OBRIGADO -R$ 1.980,12
24 MAI CAFE DA ANA CORONEL VIVID R$ 42,00
25 MAI AB SUPERMERCADOS LTD CORONEL VIVID R$ 156,78
26 MAI LOJAS COLOMBO 03/10 PATO BRANCO R$ 210,50
02 JUN ANUIDADE DIFERENCIADA R$ 20,00
`

func newContainer(t *testing.T, profileYAML string) *container.Container {
	t.Helper()

	cfg := &config.Config{}
	cfg.Log.Level = "error"
	cfg.Log.Format = "json"
	cfg.Output.Format = "csv"
	cfg.Output.Delimiter = ";"
	cfg.PDF.Backend = "native"
	cfg.Batch.Workers = 2

	if profileYAML != "" {
		path := filepath.Join(t.TempDir(), "profile.yaml")
		require.NoError(t, os.WriteFile(path, []byte(profileYAML), 0600))
		cfg.Profile.File = path
	}

	c, err := container.NewContainer(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func writeInvoice(t *testing.T, dir, name, text string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0600))
	return path
}

// TestPipeline_ConsistentAcrossFormats parses one invoice and checks that
// the CSV, JSON and XLSX exports carry the same expenses.
func TestPipeline_ConsistentAcrossFormats(t *testing.T) {
	c := newContainer(t, "")
	input := writeInvoice(t, t.TempDir(), "fatura.txt", sicoobInvoice)

	result, err := c.GetParser().ParseFile(context.Background(), input)
	require.NoError(t, err)

	h := result.Invoice.Header
	assert.Equal(t, "2025-07-03", h.DueDate)
	assert.Equal(t, 2600.35, h.TotalValue)
	assert.Equal(t, 418.86, h.MinimumPayment)
	assert.Equal(t, "MAI/2025", h.ReferenceMonth)
	assert.Equal(t, "2025-06-23", h.ClosingDate)
	require.Len(t, result.Invoice.Expenses, 4)
	assert.Equal(t, "03/10", result.Invoice.Expenses[2].Installment)

	outDir := t.TempDir()
	logger := logging.NewDiscardLogger()

	csvPath := filepath.Join(outDir, "fatura.csv")
	require.NoError(t, common.WriteResult(result, csvPath, c.ExportOptions(), logger))
	records, err := common.ReadCSVFile[models.ExpenseRecord](csvPath, ';', logger)
	require.NoError(t, err)

	jsonPath := filepath.Join(outDir, "fatura.json")
	require.NoError(t, common.WriteResult(result, jsonPath, common.ExportOptions{Format: "json"}, logger))
	jsonFile, err := os.Open(jsonPath)
	require.NoError(t, err)
	defer jsonFile.Close()
	fromJSON, err := common.ReadJSON(jsonFile)
	require.NoError(t, err)

	var xlsxBuf bytes.Buffer
	require.NoError(t, common.Export(&xlsxBuf, result, common.ExportOptions{Format: "xlsx"}))
	workbook, err := excelize.OpenReader(&xlsxBuf)
	require.NoError(t, err)
	defer workbook.Close()
	rows, err := workbook.GetRows(common.SheetInvoice)
	require.NoError(t, err)

	require.Len(t, records, len(result.Invoice.Expenses))
	require.Len(t, fromJSON.Invoice.Expenses, len(result.Invoice.Expenses))
	for i, e := range result.Invoice.Expenses {
		assert.Equal(t, e.Establishment, records[i].Establishment)
		assert.Equal(t, e.Value, records[i].Value)
		assert.Equal(t, e, fromJSON.Invoice.Expenses[i])
		// header block, blank row, table header, then expenses
		assert.Equal(t, e.Establishment, rows[7+i][1])
	}
	assert.Equal(t, result.Invoice.ExpenseTotal(), models.InvoiceFromRecords(records).ExpenseTotal())
}

// TestPipeline_ProfileExtendsRules checks that a statement profile loaded
// through the container reaches the engine.
func TestPipeline_ProfileExtendsRules(t *testing.T) {
	layout := `PAGAR ATÉ 10 AGO 2025
SALDO DEVEDOR R$ 77,00
Movimentações da Conta
15 JUL SEGURO CARTAO R$ 7,00
16 JUL MERCADO BOM PREÇO CURITIBA R$ 70,00
`
	input := writeInvoice(t, t.TempDir(), "layout.txt", layout)

	plain, err := newContainer(t, "").GetParser().ParseFile(context.Background(), input)
	require.NoError(t, err)
	assert.Empty(t, plain.Invoice.Header.DueDate)
	assert.Contains(t, plain.MissingFields(), "dueDate")

	profile := `name: legado
due_date:
  - 'PAGAR\s+AT[ÉE]\s+(\d{1,2}\s+[A-Z]{3}\s+\d{4})'
total_value:
  - 'SALDO\s+DEVEDOR\s+R\$\s*([\d.,]+)'
fee_keywords: [SEGURO]
`
	withProfile, err := newContainer(t, profile).GetParser().ParseFile(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "2025-08-10", withProfile.Invoice.Header.DueDate)
	assert.Equal(t, 77.0, withProfile.Invoice.Header.TotalValue)
	assert.NotContains(t, withProfile.MissingFields(), "dueDate")
}

// TestPipeline_BatchGroupsByReferenceMonth runs the container's batch
// processor over a directory.
func TestPipeline_BatchGroupsByReferenceMonth(t *testing.T) {
	c := newContainer(t, "")
	dir := t.TempDir()
	files := []string{
		writeInvoice(t, dir, "a.txt", sicoobInvoice),
		writeInvoice(t, dir, "b.txt", sicoobInvoice),
		writeInvoice(t, dir, "c.txt", "VENCIMENTO 3 AGO 2025\nREF 24 JUN A 23 JUL\n25 JUN LOJA CENTRAL CURITIBA R$ 5,00\n"),
	}

	results, err := c.GetBatchProcessor().ProcessFiles(context.Background(), files)
	require.NoError(t, err)

	aggregator := batch.NewBatchAggregator(logging.NewDiscardLogger())
	groups := aggregator.GroupByReferenceMonth(results)
	require.Len(t, groups, 2)
	assert.Equal(t, "MAI/2025", groups[0].ReferenceMonth)
	assert.Len(t, groups[0].Results, 2)
	assert.Equal(t, "JUN/2025", groups[1].ReferenceMonth)

	summary := aggregator.Summarize(results)
	assert.Equal(t, 3, summary.Succeeded)
	assert.Equal(t, 1, summary.Duplicates)
}
