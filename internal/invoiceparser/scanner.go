package invoiceparser

import (
	"regexp"
	"strings"

	"faturas/fatura-csv/internal/currencyutils"
	"faturas/fatura-csv/internal/textutils"
)

// maxLookahead bounds how many following lines may be merged into a
// date-bearing line that lacks an amount.
const maxLookahead = 3

var (
	dateTokenPattern    = regexp.MustCompile(`\b\d{2}\s+[A-Z]{3}\b`)
	leadingDatePattern  = regexp.MustCompile(`^\d{2}\s+[A-Z]{3}\b`)
	movementsHeader     = regexp.MustCompile(`^MOVIMENTACOES?\s+DA\s+CONTA$`)
	purchaseTableHeader = regexp.MustCompile(`^DATA\s+DESCRICAO\b.*\bCIDADE\b.*\bVALOR\b`)
)

// candidate is a possibly merged line that carries both a date token and
// an amount marker.
type candidate struct {
	Text        string
	LineNo      int
	InMovements bool
}

func isMovementsHeader(line string) bool {
	return movementsHeader.MatchString(textutils.FoldUpper(line))
}

func isPurchaseTableHeader(line string) bool {
	return purchaseTableHeader.MatchString(textutils.FoldUpper(line))
}

func hasMarker(line string) bool {
	return strings.Contains(line, currencyutils.Marker)
}

// scanCandidates walks normalized lines, tracks whether the cursor is in
// the "MOVIMENTAÇÕES DA CONTA" section and rebuilds expense lines that the
// text extractor split across rows.
func scanCandidates(lines []string) []candidate {
	var out []candidate
	inMovements := false

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if isMovementsHeader(line) {
			inMovements = true
			continue
		}
		if isPurchaseTableHeader(line) {
			inMovements = false
			continue
		}

		if !dateTokenPattern.MatchString(line) {
			continue
		}

		text := line
		start := i
		if !hasMarker(line) {
			merged := line
			for k := 1; k <= maxLookahead && i+k < len(lines); k++ {
				next := lines[i+k]
				if leadingDatePattern.MatchString(next) || isMovementsHeader(next) || isPurchaseTableHeader(next) {
					break
				}
				merged = textutils.CollapseSpaces(merged + " " + next)
				if hasMarker(next) {
					text = merged
					i += k
					break
				}
			}
		}

		if hasMarker(text) {
			out = append(out, candidate{Text: text, LineNo: start + 1, InMovements: inMovements})
		}
	}
	return out
}
