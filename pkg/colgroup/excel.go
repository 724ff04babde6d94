package colgroup

import (
	"path/filepath"

	"github.com/hfujita/colgroup/pkg/colgroup/models"
	"github.com/hfujita/colgroup/pkg/colgroup/parser"
)

// WorkbookAnalyzer loads Excel workbooks instead of CSV files, flattening
// each sheet of each workbook into its own source table keyed
// "filename|sheetname", and forwards all analysis calls to the wrapped
// Analyzer.
type WorkbookAnalyzer struct {
	analyzer *Analyzer
	books    map[string][]parser.Sheet // file path -> sheets in workbook order
}

// NewWorkbookAnalyzer returns an empty workbook analyzer.
func NewWorkbookAnalyzer() *WorkbookAnalyzer {
	return &WorkbookAnalyzer{
		analyzer: NewAnalyzer(),
		books:    make(map[string][]parser.Sheet),
	}
}

// LoadFromDirectory loads every *.xlsx file in the directory, replacing
// any previously loaded content. It returns ErrDirNotFound if the
// directory does not exist.
func (w *WorkbookAnalyzer) LoadFromDirectory(path string) (*LoadReport, error) {
	matches, err := scanDirectory(path, "*.xlsx")
	if err != nil {
		return nil, err
	}
	return w.LoadFromFiles(matches), nil
}

// LoadFromFiles loads the given workbooks, replacing any previously loaded
// content. A workbook that fails to open is logged and skipped; the rest
// of the batch still loads. Every sheet of a loaded workbook becomes one
// source table keyed "basename|sheetname".
func (w *WorkbookAnalyzer) LoadFromFiles(paths []string) *LoadReport {
	w.books = make(map[string][]parser.Sheet)
	tables := make(map[string]*models.Table)
	rep := &LoadReport{}
	for _, path := range paths {
		sheets, err := parser.ReadWorkbook(path)
		if err != nil {
			lerr := &LoadError{Source: path, Err: err}
			log.Warn().Err(err).Str("file", path).Msg("skipping workbook")
			rep.Skipped = append(rep.Skipped, Outcome{Key: path, Err: lerr})
			continue
		}
		w.books[path] = sheets
		base := filepath.Base(path)
		for _, sheet := range sheets {
			tables[base+"|"+sheet.Name] = sheet.Table
		}
		log.Info().Str("file", path).Int("sheets", len(sheets)).Msg("loaded workbook")
	}
	rep.merge(w.analyzer.UseTables(tables))
	return rep
}

// Workbooks returns, per workbook basename, its sheet names in workbook
// order.
func (w *WorkbookAnalyzer) Workbooks() map[string][]string {
	books := make(map[string][]string, len(w.books))
	for path, sheets := range w.books {
		var names []string
		for _, sheet := range sheets {
			names = append(names, sheet.Name)
		}
		books[filepath.Base(path)] = names
	}
	return books
}

// SheetTable returns the table for one sheet of one workbook, matched by
// workbook basename, or nil if no such sheet is loaded.
func (w *WorkbookAnalyzer) SheetTable(fileName, sheetName string) *models.Table {
	for path, sheets := range w.books {
		if filepath.Base(path) != fileName {
			continue
		}
		for _, sheet := range sheets {
			if sheet.Name == sheetName {
				return sheet.Table
			}
		}
	}
	return nil
}

// GroupByColumn groups every loaded sheet table by the named column.
func (w *WorkbookAnalyzer) GroupByColumn(column string) *GroupResult {
	return w.analyzer.GroupByColumn(column)
}

// ExportMatched writes all matched sheet tables as one combined CSV file.
func (w *WorkbookAnalyzer) ExportMatched(outputDir string, res *GroupResult, prefix string) *ExportReport {
	return w.analyzer.ExportMatched(outputDir, res, prefix)
}

// ExportUnmatched writes one CSV file per unmatched sheet table.
func (w *WorkbookAnalyzer) ExportUnmatched(outputDir string, res *GroupResult, prefix string) *ExportReport {
	return w.analyzer.ExportUnmatched(outputDir, res, prefix)
}

// Search scans every loaded sheet table. See Analyzer.Search.
func (w *WorkbookAnalyzer) Search(q Query) *models.Table {
	return w.analyzer.Search(q)
}

// SourceNames returns the keys of all loaded sheet tables, sorted.
func (w *WorkbookAnalyzer) SourceNames() []string {
	return w.analyzer.SourceNames()
}

// ColumnData returns per-source non-empty values of the named column.
func (w *WorkbookAnalyzer) ColumnData(column string) map[string][]models.Value {
	return w.analyzer.ColumnData(column)
}

// SourceColumns returns per-source declared columns.
func (w *WorkbookAnalyzer) SourceColumns() map[string][]string {
	return w.analyzer.SourceColumns()
}

// MissingColumns returns per-source columns absent relative to the union.
func (w *WorkbookAnalyzer) MissingColumns() map[string][]string {
	return w.analyzer.MissingColumns()
}
