package parser

import (
	"os"
	"path/filepath"
	"testing"

	"faturas/fatura-csv/internal/common"
	"faturas/fatura-csv/internal/logging"
	"faturas/fatura-csv/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBaseParser(t *testing.T) {
	t.Run("with provided logger", func(t *testing.T) {
		mockLog := logging.NewMockLogger()
		baseParser := NewBaseParser(mockLog)

		assert.Equal(t, mockLog, baseParser.logger)
	})

	t.Run("with nil logger uses default", func(t *testing.T) {
		baseParser := NewBaseParser(nil)
		assert.NotNil(t, baseParser.GetLogger())
	})
}

func TestBaseParser_SetLogger(t *testing.T) {
	t.Run("sets new logger", func(t *testing.T) {
		baseParser := NewBaseParser(nil)
		mockLog := logging.NewMockLogger()

		baseParser.SetLogger(mockLog)

		assert.Equal(t, mockLog, baseParser.GetLogger())
	})

	t.Run("ignores nil logger", func(t *testing.T) {
		mockLog := logging.NewMockLogger()
		baseParser := NewBaseParser(mockLog)

		baseParser.SetLogger(nil)

		assert.Equal(t, mockLog, baseParser.GetLogger())
	})
}

func TestBaseParser_WriteResult(t *testing.T) {
	result := models.ParseResult{
		Invoice: models.InvoiceData{
			Header: models.InvoiceHeader{ReferenceMonth: "MAI/2025"},
			Expenses: []models.ExpenseLine{
				{Date: "2025-05-24", Establishment: "CAFE DA ANA", City: "CORONEL VIVID", Value: 42},
			},
		},
	}

	t.Run("writes CSV", func(t *testing.T) {
		csvFile := filepath.Join(t.TempDir(), "out", "fatura.csv")
		mockLog := logging.NewMockLogger()
		baseParser := NewBaseParser(mockLog)

		require.NoError(t, baseParser.WriteResult(result, csvFile, common.DefaultExportOptions()))

		content, err := os.ReadFile(csvFile)
		require.NoError(t, err)
		assert.Contains(t, string(content), "CAFE DA ANA")
		assert.True(t, mockLog.HasEntry("INFO", "Writing invoice using common writer"))
	})

	t.Run("rejects unknown format", func(t *testing.T) {
		baseParser := NewBaseParser(logging.NewDiscardLogger())
		err := baseParser.WriteResult(result, filepath.Join(t.TempDir(), "f.xml"), common.ExportOptions{Format: "xml"})
		assert.Error(t, err)
	})
}

func TestBaseParser_InterfaceCompliance(t *testing.T) {
	var _ LoggerConfigurable = &BaseParser{}
}
