// Package models provides the data structures used throughout the application.
package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// InvoiceHeader holds the statement-level fields of a credit card invoice.
// Every field is independent: a missing one keeps its zero value.
type InvoiceHeader struct {
	DueDate        string  `json:"dueDate" yaml:"due_date"`               // ISO date, empty when not found
	TotalValue     float64 `json:"totalValue" yaml:"total_value"`         // 0 when not found
	MinimumPayment float64 `json:"minimumPayment" yaml:"minimum_payment"` // 0 when not found
	ReferenceMonth string  `json:"referenceMonth" yaml:"reference_month"` // e.g. "MAI/2025"
	ClosingDate    string  `json:"closingDate" yaml:"closing_date"`       // ISO date, empty when not found
}

// IsEmpty reports whether no header field was recovered.
func (h InvoiceHeader) IsEmpty() bool {
	return h == InvoiceHeader{}
}

// ExpenseLine is a single purchase, fee or reversal listed on the invoice.
type ExpenseLine struct {
	Date          string  `json:"date"`
	Description   string  `json:"description"`
	Establishment string  `json:"establishment"`
	City          string  `json:"city"`
	Value         float64 `json:"value"` // negative for reversals
	Installment   string  `json:"installment"`
}

// HasInstallment reports whether the line belongs to a financed purchase.
func (e ExpenseLine) HasInstallment() bool {
	return e.Installment != ""
}

// MarshalJSON writes an absent installment as null.
func (e ExpenseLine) MarshalJSON() ([]byte, error) {
	type alias ExpenseLine
	var installment *string
	if e.Installment != "" {
		installment = &e.Installment
	}
	return json.Marshal(struct {
		alias
		Installment *string `json:"installment"`
	}{
		alias:       alias(e),
		Installment: installment,
	})
}

// InvoiceData aggregates the header and the expenses in document order.
type InvoiceData struct {
	Header   InvoiceHeader `json:"header"`
	Expenses []ExpenseLine `json:"expenses"`
}

// NewEmptyInvoice returns an invoice with default header and no expenses.
func NewEmptyInvoice() InvoiceData {
	return InvoiceData{Expenses: []ExpenseLine{}}
}

// ExpenseTotal sums the signed expense values without float drift.
func (d InvoiceData) ExpenseTotal() decimal.Decimal {
	total := decimal.Zero
	for _, e := range d.Expenses {
		total = total.Add(decimal.NewFromFloat(e.Value))
	}
	return total.Round(2)
}

// Reversals returns the expenses with a negative value.
func (d InvoiceData) Reversals() []ExpenseLine {
	var out []ExpenseLine
	for _, e := range d.Expenses {
		if e.Value < 0 {
			out = append(out, e)
		}
	}
	return out
}
