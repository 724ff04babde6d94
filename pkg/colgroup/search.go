package colgroup

import (
	"path/filepath"
	"strings"

	"github.com/hfujita/colgroup/pkg/colgroup/models"
)

// Query selects rows during a search. Build one with AnySubstring,
// ColumnConstraints, or MatchAll; the three variants are mutually
// exclusive and the zero Query matches everything.
type Query struct {
	value   string
	columns map[string]string
}

// AnySubstring matches rows where any column's string form contains the
// value as a case-insensitive substring. Empty cells never match. An empty
// value behaves like MatchAll; the provenance column is always non-empty,
// so the empty substring would match every row either way.
func AnySubstring(value string) Query {
	return Query{value: value}
}

// ColumnConstraints matches rows where every named column contains its
// expected substring, case-insensitive. A source lacking any constrained
// column contributes no rows at all: the constraint cannot be satisfied
// there, it is not ignored.
func ColumnConstraints(constraints map[string]string) Query {
	return Query{columns: constraints}
}

// MatchAll matches every row of every source. This preserves the
// behavior of searching with no value and no constraints; whether that
// default was ever intended is unclear, but it is kept as documented
// behavior.
func MatchAll() Query {
	return Query{}
}

// Search scans every loaded source table and returns the matching rows as
// one combined table. Each source has its all-empty columns dropped and a
// provenance column appended before the query is evaluated, so both query
// modes see provenance like any other column: a substring of a source's
// basename matches every row of that source, and a column constraint on
// the provenance column is satisfiable. Per-source results are
// concatenated with outer-union column semantics and provenance forced
// last. If no source yields a match the result is an empty, schema-less
// table.
func (a *Analyzer) Search(q Query) *models.Table {
	var pieces []*models.Table
	for _, key := range sortedNames(a.tables) {
		t := withProvenance(a.tables[key].DropEmptyColumns(), filepath.Base(key))
		var rows []models.Row
		for _, row := range t.Rows {
			if q.matches(t, row) {
				rows = append(rows, row)
			}
		}
		if len(rows) == 0 {
			continue
		}
		pieces = append(pieces, &models.Table{Columns: t.Columns, Rows: rows})
	}
	if len(pieces) == 0 {
		return &models.Table{}
	}
	combined := models.Concat(pieces)
	forceLast(combined, ProvenanceColumn)
	return combined
}

func (q Query) matches(t *models.Table, row models.Row) bool {
	switch {
	case q.value != "":
		needle := strings.ToLower(q.value)
		for _, col := range t.Columns {
			v := row[col]
			if models.Empty(v) {
				continue
			}
			if strings.Contains(strings.ToLower(models.String(v)), needle) {
				return true
			}
		}
		return false
	case len(q.columns) > 0:
		for col, want := range q.columns {
			if !t.HasColumn(col) {
				return false
			}
			v := row[col]
			if models.Empty(v) {
				return false
			}
			if !strings.Contains(strings.ToLower(models.String(v)), strings.ToLower(want)) {
				return false
			}
		}
		return true
	default:
		return true
	}
}
