package parser

import (
	"github.com/hfujita/colgroup/pkg/colgroup/models"
	"github.com/xuri/excelize/v2"
)

// Sheet is one worksheet read into a table.
type Sheet struct {
	// Name is the worksheet name within the workbook.
	Name string
	// Table holds the sheet data, header row first.
	Table *models.Table
}

// ReadWorkbook reads every sheet of an xlsx file. Sheets are returned in
// workbook order; a sheet with no rows yields an empty table. The first row
// of each sheet is its header row.
func ReadWorkbook(path string) ([]Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var sheets []Sheet
	for _, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, Sheet{Name: sheetName, Table: sheetTable(rows)})
	}
	return sheets, nil
}

func sheetTable(rows [][]string) *models.Table {
	t := &models.Table{}
	if len(rows) == 0 {
		return t
	}
	t.Columns = rows[0]
	for _, record := range rows[1:] {
		t.Rows = append(t.Rows, rowFromRecord(t.Columns, record))
	}
	return t
}
