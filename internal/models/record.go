package models

// ExpenseRecord is the flat row written to CSV and XLSX exports. The
// header fields are repeated on every row so each line stands alone.
type ExpenseRecord struct {
	ReferenceMonth string  `csv:"ReferenceMonth"`
	DueDate        string  `csv:"DueDate"`
	ClosingDate    string  `csv:"ClosingDate"`
	Date           string  `csv:"Date"`
	Establishment  string  `csv:"Establishment"`
	City           string  `csv:"City"`
	Installment    string  `csv:"Installment"`
	Value          float64 `csv:"Value"`
}

// Records flattens the invoice into export rows, preserving expense order.
func (d InvoiceData) Records() []ExpenseRecord {
	records := make([]ExpenseRecord, 0, len(d.Expenses))
	for _, e := range d.Expenses {
		records = append(records, ExpenseRecord{
			ReferenceMonth: d.Header.ReferenceMonth,
			DueDate:        d.Header.DueDate,
			ClosingDate:    d.Header.ClosingDate,
			Date:           e.Date,
			Establishment:  e.Establishment,
			City:           e.City,
			Installment:    e.Installment,
			Value:          e.Value,
		})
	}
	return records
}

// InvoiceFromRecords rebuilds an invoice from exported rows. The header is
// taken from the first row; totals are not part of the row layout and stay
// zero.
func InvoiceFromRecords(records []ExpenseRecord) InvoiceData {
	invoice := NewEmptyInvoice()
	if len(records) == 0 {
		return invoice
	}
	invoice.Header = InvoiceHeader{
		ReferenceMonth: records[0].ReferenceMonth,
		DueDate:        records[0].DueDate,
		ClosingDate:    records[0].ClosingDate,
	}
	for _, r := range records {
		invoice.Expenses = append(invoice.Expenses, ExpenseLine{
			Date:          r.Date,
			Description:   r.Establishment,
			Establishment: r.Establishment,
			City:          r.City,
			Value:         r.Value,
			Installment:   r.Installment,
		})
	}
	return invoice
}
