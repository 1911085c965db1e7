package common

import (
	"fmt"
	"io"

	"faturas/fatura-csv/internal/models"

	"github.com/xuri/excelize/v2"
)

// Sheet names used in XLSX exports.
const (
	SheetInvoice  = "Fatura"
	SheetWarnings = "Warnings"
)

// expenseTableRow is the first row of the expense table; rows above it
// hold the header block.
const expenseTableRow = 7

// BuildWorkbook lays the result out on an "Fatura" sheet: the header
// fields first, then one row per expense. Warnings, when present, go to
// a second sheet.
func BuildWorkbook(result models.ParseResult) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetInvoice); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("error naming sheet: %w", err)
	}

	h := result.Invoice.Header
	rows := [][]interface{}{
		{"Due date", h.DueDate},
		{"Total", h.TotalValue},
		{"Minimum payment", h.MinimumPayment},
		{"Reference month", h.ReferenceMonth},
		{"Closing date", h.ClosingDate},
	}
	for i, row := range rows {
		if err := setRow(f, SheetInvoice, i+1, row); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	if err := setRow(f, SheetInvoice, expenseTableRow,
		[]interface{}{"Date", "Establishment", "City", "Installment", "Value"}); err != nil {
		_ = f.Close()
		return nil, err
	}
	for i, e := range result.Invoice.Expenses {
		row := []interface{}{e.Date, e.Establishment, e.City, e.Installment, e.Value}
		if err := setRow(f, SheetInvoice, expenseTableRow+1+i, row); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	if len(result.Warnings) > 0 {
		if _, err := f.NewSheet(SheetWarnings); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("error creating sheet: %w", err)
		}
		if err := setRow(f, SheetWarnings, 1, []interface{}{"Code", "Field", "Line", "Reason"}); err != nil {
			_ = f.Close()
			return nil, err
		}
		for i, w := range result.Warnings {
			row := []interface{}{string(w.Code), w.Field, w.Line, w.Reason}
			if err := setRow(f, SheetWarnings, i+2, row); err != nil {
				_ = f.Close()
				return nil, err
			}
		}
	}

	return f, nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("error resolving cell: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("error writing row %d of %s: %w", row, sheet, err)
	}
	return nil
}

// WriteXLSX writes the workbook for result to w.
func WriteXLSX(w io.Writer, result models.ParseResult) error {
	f, err := BuildWorkbook(result)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("error writing XLSX: %w", err)
	}
	return nil
}
