// Package models defines the in-memory tabular data model.
package models

import (
	"fmt"
	"strconv"
)

// Value is a single cell value. Cells hold int64, float64, or string;
// nil represents an empty cell.
type Value = interface{}

// Empty reports whether a cell value is empty. A nil value and an empty
// string are both empty; a missing row key reads as nil and is therefore
// empty too.
func Empty(v Value) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

// String converts a cell value to its canonical string form. These are the
// coercion rules used for search matching and CSV output: integers in base
// 10, floats in the shortest 'g' form, strings verbatim, empty cells as "".
func String(v Value) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	default:
		// Caller-supplied tables may carry other types.
		return fmt.Sprintf("%v", v)
	}
}
