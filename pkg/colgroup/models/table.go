package models

import (
	"errors"
	"fmt"
)

// Row maps column name to cell value. Empty cells are simply absent from
// the map; reading a missing key yields nil.
type Row map[string]Value

// Table is an in-memory tabular dataset: an ordered list of column names
// and a sequence of rows. Column names are not required to be unique, but
// duplicate names make rows ambiguous and are rejected by grouping.
type Table struct {
	// Columns is the column order, as read from the source header row.
	Columns []string
	// Rows holds the data rows in source order.
	Rows []Row
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int { return len(t.Rows) }

// HasColumn reports whether the named column is declared.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// ColumnEmpty reports whether the named column holds no value in any row.
// An undeclared column and a column of a zero-row table are both empty.
func (t *Table) ColumnEmpty(name string) bool {
	for _, row := range t.Rows {
		if !Empty(row[name]) {
			return false
		}
	}
	return true
}

// NonEmptyColumns returns the declared columns that hold at least one
// value, preserving column order.
func (t *Table) NonEmptyColumns() []string {
	var cols []string
	for _, c := range t.Columns {
		if !t.ColumnEmpty(c) {
			cols = append(cols, c)
		}
	}
	return cols
}

// DropEmptyColumns returns a view of the table restricted to its non-empty
// columns. Rows are shared with the receiver, not copied.
func (t *Table) DropEmptyColumns() *Table {
	return &Table{Columns: t.NonEmptyColumns(), Rows: t.Rows}
}

// ColumnValues returns the non-empty values of the named column in row
// order. The result is nil if the column is absent or entirely empty.
func (t *Table) ColumnValues(name string) []Value {
	if !t.HasColumn(name) {
		return nil
	}
	var vals []Value
	for _, row := range t.Rows {
		if v := row[name]; !Empty(v) {
			vals = append(vals, v)
		}
	}
	return vals
}

// DuplicateColumn returns a column name that appears more than once in the
// declared column order, if any.
func (t *Table) DuplicateColumn() (string, bool) {
	seen := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		if seen[c] {
			return c, true
		}
		seen[c] = true
	}
	return "", false
}

// Validate checks that the table is usable: non-nil, and every row key
// refers to a declared column.
func (t *Table) Validate() error {
	if t == nil {
		return errors.New("nil table")
	}
	declared := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		declared[c] = true
	}
	for i, row := range t.Rows {
		for k := range row {
			if !declared[k] {
				return fmt.Errorf("row %d references undeclared column %q", i, k)
			}
		}
	}
	return nil
}

// Concat combines tables row-wise with outer-union column semantics:
// the result's column order is first-appearance order across the pieces,
// and rows keep only the cells their piece carried. Rows are shared, not
// copied.
func Concat(pieces []*Table) *Table {
	out := &Table{}
	seen := make(map[string]bool)
	for _, p := range pieces {
		for _, c := range p.Columns {
			if !seen[c] {
				seen[c] = true
				out.Columns = append(out.Columns, c)
			}
		}
		out.Rows = append(out.Rows, p.Rows...)
	}
	return out
}
