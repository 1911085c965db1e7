// Package currencyutils provides Brazilian real parsing and formatting used throughout the application.
package currencyutils

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// BRL is the ISO-4217 code of the Brazilian real.
const BRL = "BRL"

// Marker is the currency symbol printed on statements.
const Marker = "R$"

// ParseAmount parses a statement amount such as "R$ 1.200,50", "42,00",
// "50" or "1200.50" into a decimal.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	standardized := StandardizeAmount(amountStr)
	if standardized == "" {
		return decimal.Zero, fmt.Errorf("empty amount '%s'", amountStr)
	}

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}

	return amount, nil
}

// StandardizeAmount rewrites a Brazilian formatted amount into the dotted
// form accepted by decimal.NewFromString.
//
// A comma is always the decimal separator. Periods found before it are
// thousands separators and are dropped. Without a comma the string is
// returned as is.
func StandardizeAmount(amountStr string) string {
	cleaned := strings.ReplaceAll(amountStr, Marker, "")
	cleaned = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, cleaned)

	comma := strings.Index(cleaned, ",")
	if comma < 0 {
		return cleaned
	}

	if dot := strings.Index(cleaned, "."); dot >= 0 && dot < comma {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
	}
	return strings.ReplaceAll(cleaned, ",", ".")
}

// ToFloat converts a statement amount to float64, returning 0 when the
// input cannot be parsed.
func ToFloat(amountStr string) float64 {
	amount, err := ParseAmount(amountStr)
	if err != nil {
		return 0
	}
	f, _ := amount.Float64()
	return f
}

// NewMoney converts a decimal amount in reais to a go-money value in cents.
func NewMoney(amount decimal.Decimal) *money.Money {
	currency := money.GetCurrency(BRL)
	multiplier := decimal.New(1, int32(currency.Fraction))
	return money.New(amount.Mul(multiplier).Round(0).IntPart(), BRL)
}

// FormatAmount renders an amount the way it is printed on a Brazilian
// statement, e.g. "R$2.600,35".
func FormatAmount(amount decimal.Decimal) string {
	return NewMoney(amount).Display()
}

// FormatFloat is FormatAmount for float64 values.
func FormatFloat(amount float64) string {
	return FormatAmount(decimal.NewFromFloat(amount))
}

// Sum adds float64 amounts using decimal arithmetic.
func Sum(values ...float64) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total
}
