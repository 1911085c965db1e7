package textutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollapseSpaces(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"layout columns", "24 MAI   CAFE DA ANA      CORONEL VIVID    R$ 42,00", "24 MAI CAFE DA ANA CORONEL VIVID R$ 42,00"},
		{"tabs", "15 MAI\tANUIDADE", "15 MAI ANUIDADE"},
		{"trim", "   TOTAL R$ 2.600,35  ", "TOTAL R$ 2.600,35"},
		{"already clean", "REF 26 MAI A 23 JUN", "REF 26 MAI A 23 JUN"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CollapseSpaces(tt.input))
		})
	}
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"a", "b", ""}, SplitLines("a\r\nb\n"))
}

func TestFoldAccents(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"MOVIMENTAÇÕES DA CONTA", "MOVIMENTACOES DA CONTA"},
		{"PROTEÇÃO", "PROTECAO"},
		{"CRÉDITO", "CREDITO"},
		{"PAGAMENTO MÍNIMO", "PAGAMENTO MINIMO"},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, FoldAccents(tt.input))
		})
	}
}

func TestContainsAnyFold(t *testing.T) {
	kw, ok := ContainsAnyFold("15 MAI Proteção Perda Roubo", "ANUIDADE", "PROTECAO")
	assert.True(t, ok)
	assert.Equal(t, "PROTECAO", kw)

	_, ok = ContainsAnyFold("CAFE DA ANA", "ANUIDADE", "PROTEÇÃO")
	assert.False(t, ok)

	_, ok = ContainsAnyFold("anything", "")
	assert.False(t, ok)
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "abc", Snippet("abc", 5))
	assert.Equal(t, "ação...", Snippet("ação longa", 4))
}
