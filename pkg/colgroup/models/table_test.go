package models

import (
	"reflect"
	"testing"
)

func TestString(t *testing.T) {
	tests := []struct {
		input    Value
		expected string
	}{
		{int64(123), "123"},
		{123.45, "123.45"},
		{int64(-100), "-100"},
		{"hello", "hello"},
		{nil, ""},
		{"", ""},
	}

	for _, tt := range tests {
		result := String(tt.input)
		if result != tt.expected {
			t.Errorf("String(%v) = %q, expected %q", tt.input, result, tt.expected)
		}
	}
}

func TestEmpty(t *testing.T) {
	if !Empty(nil) {
		t.Error("Empty(nil) = false, expected true")
	}
	if !Empty("") {
		t.Error(`Empty("") = false, expected true`)
	}
	if Empty(int64(0)) {
		t.Error("Empty(int64(0)) = true, expected false")
	}
	if Empty("x") {
		t.Error(`Empty("x") = true, expected false`)
	}
}

func TestDropEmptyColumns(t *testing.T) {
	tbl := &Table{
		Columns: []string{"a", "b", "c"},
		Rows: []Row{
			{"a": int64(1)},
			{"a": int64(2), "c": "x"},
		},
	}

	dropped := tbl.DropEmptyColumns()
	expected := []string{"a", "c"}
	if !reflect.DeepEqual(dropped.Columns, expected) {
		t.Errorf("DropEmptyColumns columns = %v, expected %v", dropped.Columns, expected)
	}
	if dropped.NumRows() != 2 {
		t.Errorf("DropEmptyColumns rows = %d, expected 2", dropped.NumRows())
	}
}

func TestColumnEmpty(t *testing.T) {
	tbl := &Table{
		Columns: []string{"a", "b"},
		Rows:    []Row{{"a": "x"}, {"a": "y", "b": ""}},
	}

	if tbl.ColumnEmpty("a") {
		t.Error("ColumnEmpty(a) = true, expected false")
	}
	if !tbl.ColumnEmpty("b") {
		t.Error("ColumnEmpty(b) = false, expected true")
	}
	if !tbl.ColumnEmpty("missing") {
		t.Error("ColumnEmpty(missing) = false, expected true")
	}

	empty := &Table{Columns: []string{"a"}}
	if !empty.ColumnEmpty("a") {
		t.Error("ColumnEmpty on zero-row table = false, expected true")
	}
}

func TestColumnValues(t *testing.T) {
	tbl := &Table{
		Columns: []string{"a"},
		Rows:    []Row{{"a": int64(1)}, {}, {"a": int64(3)}},
	}

	vals := tbl.ColumnValues("a")
	expected := []Value{int64(1), int64(3)}
	if !reflect.DeepEqual(vals, expected) {
		t.Errorf("ColumnValues(a) = %v, expected %v", vals, expected)
	}
	if tbl.ColumnValues("missing") != nil {
		t.Error("ColumnValues(missing) should be nil")
	}
}

func TestValidate(t *testing.T) {
	var nilTable *Table
	if err := nilTable.Validate(); err == nil {
		t.Error("Validate on nil table should fail")
	}

	bad := &Table{
		Columns: []string{"a"},
		Rows:    []Row{{"a": "x", "ghost": "y"}},
	}
	if err := bad.Validate(); err == nil {
		t.Error("Validate should reject a row with an undeclared column")
	}

	good := &Table{Columns: []string{"a"}, Rows: []Row{{"a": "x"}}}
	if err := good.Validate(); err != nil {
		t.Errorf("Validate failed on a valid table: %v", err)
	}
}

func TestConcat(t *testing.T) {
	a := &Table{Columns: []string{"x", "y"}, Rows: []Row{{"x": int64(1), "y": int64(2)}}}
	b := &Table{Columns: []string{"y", "z"}, Rows: []Row{{"y": int64(3), "z": int64(4)}}}

	combined := Concat([]*Table{a, b})
	expectedCols := []string{"x", "y", "z"}
	if !reflect.DeepEqual(combined.Columns, expectedCols) {
		t.Errorf("Concat columns = %v, expected %v", combined.Columns, expectedCols)
	}
	if combined.NumRows() != 2 {
		t.Errorf("Concat rows = %d, expected 2", combined.NumRows())
	}
	// b's rows have no "x" cell: outer-union absence, not an error
	if !Empty(combined.Rows[1]["x"]) {
		t.Errorf("expected absent cell for x in b's row, got %v", combined.Rows[1]["x"])
	}
}

func TestDuplicateColumn(t *testing.T) {
	tbl := &Table{Columns: []string{"a", "b", "a"}}
	dup, ok := tbl.DuplicateColumn()
	if !ok || dup != "a" {
		t.Errorf("DuplicateColumn = %q, %v, expected a, true", dup, ok)
	}

	clean := &Table{Columns: []string{"a", "b"}}
	if _, ok := clean.DuplicateColumn(); ok {
		t.Error("DuplicateColumn on unique columns should be false")
	}
}
