package colgroup

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hfujita/colgroup/pkg/colgroup/models"
)

func readCSVRecords(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestExportMatched(t *testing.T) {
	a := NewAnalyzer()
	_, err := a.LoadFromDirectory(fixtureDir(t))
	require.NoError(t, err)

	outDir := filepath.Join(t.TempDir(), "out")
	res := a.GroupByColumn("category")
	rep := a.ExportMatched(outDir, res, "grouped")

	require.True(t, rep.Ok())
	require.Len(t, rep.Written, 1)

	path := filepath.Join(outDir, "grouped_combined.csv")
	assert.Equal(t, path, rep.Written[0])

	records := readCSVRecords(t, path)
	require.Len(t, records, 3)
	// Group key is a regular leading column; provenance is last.
	assert.Equal(t, []string{"category", "id", "value", "source_file"}, records[0])
	assert.Equal(t, []string{"x", "1", "10", "products.csv"}, records[1])
	assert.Equal(t, []string{"y", "2", "20", "products.csv"}, records[2])
}

func TestExportMatchedEmptyIsNoOp(t *testing.T) {
	a := NewAnalyzer()
	outDir := filepath.Join(t.TempDir(), "out")

	rep := a.ExportMatched(outDir, &GroupResult{
		Matched:   map[string]*models.Table{},
		Unmatched: map[string]*models.Table{},
	}, "grouped")

	assert.True(t, rep.Ok())
	assert.Empty(t, rep.Written)
	_, err := os.Stat(outDir)
	assert.True(t, os.IsNotExist(err), "no output directory should be created")
}

func TestExportMatchedOuterUnion(t *testing.T) {
	a := NewAnalyzer()
	a.UseTables(map[string]*models.Table{
		"one": {
			Columns: []string{"category", "alpha"},
			Rows:    []models.Row{{"category": "x", "alpha": int64(1)}},
		},
		"two": {
			Columns: []string{"category", "beta"},
			Rows:    []models.Row{{"category": "y", "beta": int64(2)}},
		},
	})

	outDir := t.TempDir()
	res := a.GroupByColumn("category")
	rep := a.ExportMatched(outDir, res, "grouped")
	require.True(t, rep.Ok())

	records := readCSVRecords(t, filepath.Join(outDir, "grouped_combined.csv"))
	require.Len(t, records, 3)
	// Columns missing from a piece stay absent for its rows; provenance last.
	assert.Equal(t, []string{"category", "alpha", "beta", "source_file"}, records[0])
	assert.Equal(t, []string{"x", "1", "", "one"}, records[1])
	assert.Equal(t, []string{"y", "", "2", "two"}, records[2])
}

func TestExportMatchedFailureIsRecorded(t *testing.T) {
	a := NewAnalyzer()
	_, err := a.LoadFromDirectory(fixtureDir(t))
	require.NoError(t, err)

	// A file where the output directory should be makes MkdirAll fail.
	blocked := filepath.Join(t.TempDir(), "blocked")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0644))

	res := a.GroupByColumn("category")
	rep := a.ExportMatched(blocked, res, "grouped")

	assert.Empty(t, rep.Written)
	require.Len(t, rep.Failed, 1)
	var eerr *ExportError
	require.ErrorAs(t, rep.Failed[0].Err, &eerr)
}

func TestExportUnmatched(t *testing.T) {
	a := NewAnalyzer()
	_, err := a.LoadFromDirectory(fixtureDir(t))
	require.NoError(t, err)

	outDir := filepath.Join(t.TempDir(), "out")
	res := a.GroupByColumn("category")
	rep := a.ExportUnmatched(outDir, res, "grouped")

	require.True(t, rep.Ok())
	require.Len(t, rep.Written, 1)

	records := readCSVRecords(t, filepath.Join(outDir, "grouped_inventory.csv"))
	require.Len(t, records, 2)
	// Unmatched export preserves original column order, no provenance.
	assert.Equal(t, []string{"id", "value"}, records[0])
	assert.Equal(t, []string{"3", "5"}, records[1])
}

func TestExportUnmatchedRoundTrip(t *testing.T) {
	dir := fixtureDir(t)
	a := NewAnalyzer()
	_, err := a.LoadFromDirectory(dir)
	require.NoError(t, err)

	original := a.ColumnData("value")["inventory.csv"]

	outDir := filepath.Join(t.TempDir(), "out")
	res := a.GroupByColumn("category")
	rep := a.ExportUnmatched(outDir, res, "again")
	require.True(t, rep.Ok())

	// Reloading the exported file yields the same columns and row values.
	b := NewAnalyzer()
	brep := b.LoadFromFiles([]string{filepath.Join(outDir, "again_inventory.csv")})
	require.True(t, brep.Ok())

	assert.Equal(t, []string{"id", "value"}, b.SourceColumns()["again_inventory.csv"])
	assert.Equal(t, original, b.ColumnData("value")["again_inventory.csv"])
}
