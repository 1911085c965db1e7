// Package batch provides functionality for batch processing and aggregation of invoice files
package batch

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"faturas/fatura-csv/internal/currencyutils"
	"faturas/fatura-csv/internal/dateutils"
	"faturas/fatura-csv/internal/fileutils"
	"faturas/fatura-csv/internal/logging"
	"faturas/fatura-csv/internal/models"

	"github.com/shopspring/decimal"
)

// InvoiceGroup holds the parsed files that share a reference month
type InvoiceGroup struct {
	ReferenceMonth string
	Results        []FileResult
}

// Summary totals a batch run.
type Summary struct {
	Files      int
	Succeeded  int
	Failed     int
	Expenses   int
	Warnings   int
	Duplicates int
	Total      decimal.Decimal // sum of header totals of the parsed invoices
}

// BatchAggregator groups batch results and names their output files
type BatchAggregator struct {
	logger logging.Logger
}

// NewBatchAggregator creates a new BatchAggregator instance
func NewBatchAggregator(logger logging.Logger) *BatchAggregator {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &BatchAggregator{
		logger: logger,
	}
}

// GroupByReferenceMonth groups successful results by the reference month of
// their invoice. Groups are sorted chronologically, with invoices that have
// no recognisable reference month last.
func (ba *BatchAggregator) GroupByReferenceMonth(results []FileResult) []InvoiceGroup {
	byMonth := make(map[string]*InvoiceGroup)

	for _, r := range results {
		if !r.OK() {
			continue
		}
		ref := r.Result.Invoice.Header.ReferenceMonth

		ba.logger.Debug("File mapped to reference month",
			logging.F(logging.FieldFile, filepath.Base(r.File)),
			logging.F(logging.FieldReferenceMonth, ref))

		group, exists := byMonth[ref]
		if !exists {
			group = &InvoiceGroup{ReferenceMonth: ref}
			byMonth[ref] = group
		}
		group.Results = append(group.Results, r)
	}

	groups := make([]InvoiceGroup, 0, len(byMonth))
	for _, group := range byMonth {
		groups = append(groups, *group)
	}

	sort.Slice(groups, func(i, j int) bool {
		ki, oki := dateutils.ReferenceMonthToISO(groups[i].ReferenceMonth)
		kj, okj := dateutils.ReferenceMonthToISO(groups[j].ReferenceMonth)
		if oki != okj {
			return oki
		}
		if oki {
			return ki < kj
		}
		return groups[i].ReferenceMonth < groups[j].ReferenceMonth
	})

	ba.logger.Info("Grouped invoices by reference month",
		logging.F(logging.FieldCount, len(results)),
		logging.F("groups", len(groups)))

	return groups
}

// DetectAndLogDuplicates logs invoices that look like the same statement
// parsed twice and returns how many were found. Nothing is removed.
func (ba *BatchAggregator) DetectAndLogDuplicates(groups []InvoiceGroup) int {
	duplicateCount := 0

	for _, group := range groups {
		for i := 0; i < len(group.Results)-1; i++ {
			for j := i + 1; j < len(group.Results); j++ {
				a, b := group.Results[i], group.Results[j]
				if !arePotentialDuplicates(a.Result.Invoice, b.Result.Invoice) {
					continue
				}
				duplicateCount++
				ba.logger.Warn("Potential duplicate invoice",
					logging.F(logging.FieldReferenceMonth, group.ReferenceMonth),
					logging.F(logging.FieldFile, filepath.Base(a.File)),
					logging.F("duplicate_of", filepath.Base(b.File)),
					logging.F("total", currencyutils.FormatFloat(a.Result.Invoice.Header.TotalValue)))
				break // Only log once per invoice
			}
		}
	}

	if duplicateCount > 0 {
		ba.logger.Warn("Found potential duplicate invoices", logging.F(logging.FieldCount, duplicateCount))
	}
	return duplicateCount
}

// arePotentialDuplicates checks if two invoices might be the same statement
func arePotentialDuplicates(a, b models.InvoiceData) bool {
	if a.Header.ReferenceMonth == "" || a.Header.ReferenceMonth != b.Header.ReferenceMonth {
		return false
	}
	if a.Header.DueDate != b.Header.DueDate {
		return false
	}
	if a.Header.TotalValue != b.Header.TotalValue {
		return false
	}
	return len(a.Expenses) == len(b.Expenses)
}

// GenerateOutputFilename names the export of one parsed file.
// Format: fatura_{YYYY-MM}.{ext}, falling back to the input file name when
// the reference month is unknown. used tracks names already handed out in
// this run; repeats get a _2, _3, ... suffix.
func (ba *BatchAggregator) GenerateOutputFilename(r FileResult, ext string, used map[string]int) string {
	ext = strings.TrimPrefix(ext, ".")

	base := fileutils.Stem(r.File)
	if month, ok := dateutils.ReferenceMonthToISO(r.Result.Invoice.Header.ReferenceMonth); ok {
		base = "fatura_" + month
	}

	name := fmt.Sprintf("%s.%s", base, ext)
	if used != nil {
		used[base]++
		if n := used[base]; n > 1 {
			name = fmt.Sprintf("%s_%d.%s", base, n, ext)
		}
	}
	return name
}

// Summarize totals the results of a batch run.
func (ba *BatchAggregator) Summarize(results []FileResult) Summary {
	summary := Summary{Files: len(results), Total: decimal.Zero}
	for _, r := range results {
		if !r.OK() {
			summary.Failed++
			continue
		}
		summary.Succeeded++
		summary.Expenses += len(r.Result.Invoice.Expenses)
		summary.Warnings += len(r.Result.Warnings)
		summary.Total = summary.Total.Add(decimal.NewFromFloat(r.Result.Invoice.Header.TotalValue))
	}
	summary.Duplicates = ba.DetectAndLogDuplicates(ba.GroupByReferenceMonth(results))
	return summary
}
