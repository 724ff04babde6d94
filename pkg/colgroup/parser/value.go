// Package parser reads CSV files and Excel workbooks into tables.
package parser

import (
	"strconv"

	"github.com/hfujita/colgroup/pkg/colgroup/models"
)

// parseValue attempts to parse a raw cell string as a number.
// Returns int64 for integers, float64 for decimals, nil for an empty cell,
// or the original string.
func parseValue(s string) models.Value {
	if s == "" {
		return nil
	}
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	// Return as string
	return s
}

// rowFromRecord builds a row from header names and raw cell strings.
// Empty cells are omitted; cells beyond the header are ignored.
func rowFromRecord(header []string, record []string) models.Row {
	row := models.Row{}
	for i, col := range header {
		if i >= len(record) {
			break
		}
		if v := parseValue(record[i]); v != nil {
			row[col] = v
		}
	}
	return row
}
