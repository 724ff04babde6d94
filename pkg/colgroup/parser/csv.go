package parser

import (
	"encoding/csv"
	"errors"
	"os"

	"github.com/hfujita/colgroup/pkg/colgroup/models"
)

// ReadCSV reads one CSV file into a table. The first record is the header
// row defining column names; remaining records become data rows. A file
// with no header row is an error.
func ReadCSV(path string) (*models.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("no header row")
	}

	t := &models.Table{Columns: records[0]}
	for _, record := range records[1:] {
		t.Rows = append(t.Rows, rowFromRecord(t.Columns, record))
	}
	return t, nil
}
