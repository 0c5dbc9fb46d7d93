package google

import (
	"fmt"
	"strings"

	"doacoes/internal/core"
)

// parseRows converts a values matrix (as returned by the Sheets API) into
// raw ledger rows. A first row whose amount and date cells are both
// non-numeric text is treated as a header and skipped; fully blank rows
// are dropped. Everything else passes through untouched so the normalizer
// can report malformed rows with their real content.
func parseRows(values [][]interface{}) []core.RawRow {
	var out []core.RawRow
	for i, row := range values {
		raw := core.RawRow{
			DonorID: cellString(row, 0),
			Amount:  cellString(row, 1),
			Date:    cellString(row, 2),
		}
		if raw.DonorID == "" && raw.Amount == "" && raw.Date == "" {
			continue
		}
		if i == 0 && looksLikeHeader(raw) {
			continue
		}
		out = append(out, raw)
	}
	return out
}

func looksLikeHeader(row core.RawRow) bool {
	if _, err := core.ParseDecimalToCents(row.Amount); err == nil {
		return false
	}
	if _, err := core.ParseDate(row.Date); err == nil {
		return false
	}
	return row.DonorID != ""
}

func cellString(row []interface{}, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	if row[idx] == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(row[idx]))
}
