package colgroup

import (
	"fmt"
	"sort"

	"github.com/hfujita/colgroup/pkg/colgroup/models"
)

// GroupResult partitions the loaded sources by presence of the group
// column. Every loaded source appears in exactly one of Matched or
// Unmatched; a grouping failure demotes its source to Unmatched and is
// recorded in Demoted.
type GroupResult struct {
	// Matched maps source key to its grouped table.
	Matched map[string]*models.Table
	// Unmatched maps source key to its original table.
	Unmatched map[string]*models.Table
	// Demoted lists sources moved to Unmatched by a grouping failure.
	Demoted []Outcome
}

// GroupByColumn groups every loaded source table by the named column.
// Sources where the column is absent or entirely empty go to Unmatched
// unchanged. Matched sources first have their all-empty columns dropped,
// then each group keeps one representative row: the first non-empty value
// encountered per remaining column, in source row order.
func (a *Analyzer) GroupByColumn(column string) *GroupResult {
	res := &GroupResult{
		Matched:   make(map[string]*models.Table),
		Unmatched: make(map[string]*models.Table),
	}
	for key, t := range a.tables {
		if !t.HasColumn(column) || t.ColumnEmpty(column) {
			res.Unmatched[key] = t
			continue
		}
		grouped, err := groupTable(t.DropEmptyColumns(), column)
		if err != nil {
			gerr := &GroupingError{Source: key, Err: err}
			log.Warn().Err(err).Str("source", key).Msg("grouping failed, keeping original")
			res.Demoted = append(res.Demoted, Outcome{Key: key, Err: gerr})
			res.Unmatched[key] = t
			continue
		}
		res.Matched[key] = grouped
		log.Info().Str("source", key).Int("groups", grouped.NumRows()).Msg("grouped source")
	}
	return res
}

// groupTable reduces a table to one row per distinct value of the group
// column. Rows with an empty group value are excluded. Output rows are
// ordered by the group key's string form; the group column leads, the
// remaining columns keep source order.
func groupTable(t *models.Table, column string) (*models.Table, error) {
	if dup, ok := t.DuplicateColumn(); ok {
		return nil, fmt.Errorf("ambiguous aggregation: duplicate column %q", dup)
	}

	groups := make(map[string]models.Row)
	var keys []string
	for _, row := range t.Rows {
		gv := row[column]
		if models.Empty(gv) {
			continue
		}
		k := models.String(gv)
		g, ok := groups[k]
		if !ok {
			g = models.Row{column: gv}
			groups[k] = g
			keys = append(keys, k)
		}
		for _, col := range t.Columns {
			if col == column {
				continue
			}
			if _, have := g[col]; have {
				continue
			}
			if v := row[col]; !models.Empty(v) {
				g[col] = v
			}
		}
	}
	sort.Strings(keys)

	out := &models.Table{Columns: []string{column}}
	for _, col := range t.Columns {
		if col != column {
			out.Columns = append(out.Columns, col)
		}
	}
	for _, k := range keys {
		out.Rows = append(out.Rows, groups[k])
	}
	return out, nil
}
