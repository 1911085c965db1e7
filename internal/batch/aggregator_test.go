package batch

import (
	"errors"
	"testing"

	"faturas/fatura-csv/internal/logging"
	"faturas/fatura-csv/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invoiceResult(file, ref, due string, total float64, expenses int) FileResult {
	lines := make([]models.ExpenseLine, expenses)
	for i := range lines {
		lines[i] = models.ExpenseLine{Date: "2025-05-24", Establishment: "LOJA", Value: 10}
	}
	return FileResult{
		File: file,
		Result: models.ParseResult{
			Invoice: models.InvoiceData{
				Header:   models.InvoiceHeader{ReferenceMonth: ref, DueDate: due, TotalValue: total},
				Expenses: lines,
			},
			Warnings: []models.Warning{{Code: models.WarningLineRejected, Line: "x", Reason: "y"}},
		},
	}
}

func TestGroupByReferenceMonth(t *testing.T) {
	aggregator := NewBatchAggregator(logging.NewMockLogger())

	results := []FileResult{
		invoiceResult("jul.pdf", "JUL/2025", "2025-08-03", 300, 1),
		invoiceResult("mai.pdf", "MAI/2025", "2025-07-03", 100, 2),
		invoiceResult("unknown.pdf", "", "", 0, 0),
		{File: "broken.pdf", Err: errors.New("boom")},
		invoiceResult("dez.pdf", "DEZ/2024", "2025-01-03", 50, 1),
		invoiceResult("mai-copy.pdf", "MAI/2025", "2025-07-03", 100, 2),
	}

	groups := aggregator.GroupByReferenceMonth(results)
	require.Len(t, groups, 4)

	assert.Equal(t, "DEZ/2024", groups[0].ReferenceMonth)
	assert.Equal(t, "MAI/2025", groups[1].ReferenceMonth)
	assert.Len(t, groups[1].Results, 2)
	assert.Equal(t, "mai.pdf", groups[1].Results[0].File)
	assert.Equal(t, "JUL/2025", groups[2].ReferenceMonth)
	assert.Equal(t, "", groups[3].ReferenceMonth)
}

func TestDetectAndLogDuplicates(t *testing.T) {
	tests := []struct {
		name    string
		results []FileResult
		want    int
	}{
		{
			name: "same statement twice",
			results: []FileResult{
				invoiceResult("a.pdf", "MAI/2025", "2025-07-03", 2600.35, 3),
				invoiceResult("b.pdf", "MAI/2025", "2025-07-03", 2600.35, 3),
			},
			want: 1,
		},
		{
			name: "different totals",
			results: []FileResult{
				invoiceResult("a.pdf", "MAI/2025", "2025-07-03", 2600.35, 3),
				invoiceResult("b.pdf", "MAI/2025", "2025-07-03", 2600.36, 3),
			},
			want: 0,
		},
		{
			name: "unknown reference month never matches",
			results: []FileResult{
				invoiceResult("a.pdf", "", "", 0, 0),
				invoiceResult("b.pdf", "", "", 0, 0),
			},
			want: 0,
		},
		{
			name: "three copies are two duplicates",
			results: []FileResult{
				invoiceResult("a.pdf", "JUN/2025", "2025-08-03", 10, 1),
				invoiceResult("b.pdf", "JUN/2025", "2025-08-03", 10, 1),
				invoiceResult("c.pdf", "JUN/2025", "2025-08-03", 10, 1),
			},
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := logging.NewMockLogger()
			aggregator := NewBatchAggregator(logger)

			got := aggregator.DetectAndLogDuplicates(aggregator.GroupByReferenceMonth(tt.results))
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want > 0, logger.HasEntry("WARN", "Found potential duplicate invoices"))
		})
	}
}

func TestGenerateOutputFilename(t *testing.T) {
	aggregator := NewBatchAggregator(nil)
	used := map[string]int{}

	first := aggregator.GenerateOutputFilename(invoiceResult("in/a.pdf", "MAI/2025", "", 0, 0), "csv", used)
	second := aggregator.GenerateOutputFilename(invoiceResult("in/b.pdf", "MAI/2025", "", 0, 0), ".csv", used)
	unknown := aggregator.GenerateOutputFilename(invoiceResult("in/scan 01.txt", "", "", 0, 0), "json", used)
	raw := aggregator.GenerateOutputFilename(invoiceResult("in/odd.pdf", "26 XYZ A 23 JUN", "", 0, 0), "xlsx", nil)

	assert.Equal(t, "fatura_2025-05.csv", first)
	assert.Equal(t, "fatura_2025-05_2.csv", second)
	assert.Equal(t, "scan 01.json", unknown)
	assert.Equal(t, "odd.xlsx", raw)
}

func TestSummarize(t *testing.T) {
	aggregator := NewBatchAggregator(nil)
	results := []FileResult{
		invoiceResult("a.pdf", "MAI/2025", "2025-07-03", 2600.35, 3),
		invoiceResult("b.pdf", "JUN/2025", "2025-08-03", 100.10, 2),
		{File: "c.pdf", Err: errors.New("broken")},
	}

	summary := aggregator.Summarize(results)

	assert.Equal(t, 3, summary.Files)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 5, summary.Expenses)
	assert.Equal(t, 2, summary.Warnings)
	assert.Equal(t, 0, summary.Duplicates)
	assert.Equal(t, "2700.45", summary.Total.StringFixed(2))
}
