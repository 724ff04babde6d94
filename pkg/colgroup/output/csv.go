// Package output serializes tables to flat files.
package output

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/hfujita/colgroup/pkg/colgroup/models"
)

// Write writes a table to w as UTF-8 CSV: header row first, then one
// record per row with cell values in canonical string form.
func Write(w io.Writer, t *models.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, col := range t.Columns {
			record[i] = models.String(row[col])
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes a table to the named file, replacing it if it exists.
func WriteFile(path string, t *models.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
