package common

import (
	"encoding/json"
	"fmt"
	"io"

	"faturas/fatura-csv/internal/models"
)

// WriteJSON writes the whole parse result, warnings included, as indented
// JSON.
func WriteJSON(w io.Writer, result models.ParseResult) error {
	if result.Warnings == nil {
		result.Warnings = []models.Warning{}
	}
	if result.Invoice.Expenses == nil {
		result.Invoice.Expenses = []models.ExpenseLine{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("error encoding JSON: %w", err)
	}
	return nil
}

// ReadJSON decodes a result previously written by WriteJSON.
func ReadJSON(r io.Reader) (models.ParseResult, error) {
	var result models.ParseResult
	if err := json.NewDecoder(r).Decode(&result); err != nil {
		return models.ParseResult{}, fmt.Errorf("error decoding JSON: %w", err)
	}
	return result, nil
}
