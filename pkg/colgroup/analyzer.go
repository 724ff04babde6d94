// Package colgroup loads tabular data from independently-sourced files,
// groups rows by a chosen column across all of them, and exports the
// consolidated or leftover data. It also provides simple cross-file
// substring search.
package colgroup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/hfujita/colgroup/internal/logger"
	"github.com/hfujita/colgroup/pkg/colgroup/models"
	"github.com/hfujita/colgroup/pkg/colgroup/parser"
)

var log = logger.New()

// Analyzer holds a set of source tables keyed by origin (file path, or
// "file|sheet" for workbook sheets) and answers grouping, export, and
// search requests over them. Every load call replaces the previous
// contents wholesale. Meant for single-owner, sequential use.
type Analyzer struct {
	tables  map[string]*models.Table
	columns map[string]bool // column universe: union over all tables
}

// NewAnalyzer returns an empty analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		tables:  make(map[string]*models.Table),
		columns: make(map[string]bool),
	}
}

// NewAnalyzerFromDirectory returns an analyzer preloaded with every CSV
// file in the directory. See LoadFromDirectory for failure semantics.
func NewAnalyzerFromDirectory(path string) (*Analyzer, *LoadReport, error) {
	a := NewAnalyzer()
	rep, err := a.LoadFromDirectory(path)
	if err != nil {
		return nil, nil, err
	}
	return a, rep, nil
}

// LoadFromDirectory loads every *.csv file in the directory, replacing any
// previously loaded content. It returns ErrDirNotFound if the directory
// does not exist; an empty match list is not an error.
func (a *Analyzer) LoadFromDirectory(path string) (*LoadReport, error) {
	matches, err := scanDirectory(path, "*.csv")
	if err != nil {
		return nil, err
	}
	return a.LoadFromFiles(matches), nil
}

// LoadFromFiles loads the given CSV files, replacing any previously loaded
// content. A file that fails to parse is logged and skipped; the rest of
// the batch still loads. Per-file outcomes are collected in the report.
func (a *Analyzer) LoadFromFiles(paths []string) *LoadReport {
	a.reset()
	rep := &LoadReport{}
	for _, path := range paths {
		t, err := parser.ReadCSV(path)
		if err != nil {
			lerr := &LoadError{Source: path, Err: err}
			log.Warn().Err(err).Str("file", path).Msg("skipping file")
			rep.Skipped = append(rep.Skipped, Outcome{Key: path, Err: lerr})
			continue
		}
		a.register(path, t)
		rep.Loaded = append(rep.Loaded, path)
		log.Info().Str("file", path).Int("rows", t.NumRows()).Msg("loaded file")
	}
	return rep
}

// UseTables replaces all current content with caller-supplied in-memory
// tables. Each entry is validated; an invalid entry is logged and skipped
// while the valid ones still register.
func (a *Analyzer) UseTables(tables map[string]*models.Table) *LoadReport {
	a.reset()
	rep := &LoadReport{}
	for _, name := range sortedNames(tables) {
		t := tables[name]
		if err := t.Validate(); err != nil {
			verr := &ValidationError{Source: name, Err: err}
			log.Warn().Err(err).Str("table", name).Msg("skipping table")
			rep.Skipped = append(rep.Skipped, Outcome{Key: name, Err: verr})
			continue
		}
		a.register(name, t)
		rep.Loaded = append(rep.Loaded, name)
		log.Info().Str("table", name).Int("rows", t.NumRows()).Msg("loaded table")
	}
	return rep
}

func (a *Analyzer) reset() {
	a.tables = make(map[string]*models.Table)
	a.columns = make(map[string]bool)
}

func (a *Analyzer) register(key string, t *models.Table) {
	a.tables[key] = t
	for _, c := range t.Columns {
		a.columns[c] = true
	}
}

// SourceNames returns the basenames of all loaded sources, sorted.
func (a *Analyzer) SourceNames() []string {
	var names []string
	for key := range a.tables {
		names = append(names, filepath.Base(key))
	}
	sort.Strings(names)
	return names
}

// AllColumns returns the column universe, sorted: the union of column
// names across all loaded source tables.
func (a *Analyzer) AllColumns() []string {
	var cols []string
	for c := range a.columns {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols
}

// ColumnData returns, per source basename, the non-empty values of the
// named column in row order. Sources where the column is absent or
// entirely empty are omitted.
func (a *Analyzer) ColumnData(column string) map[string][]models.Value {
	data := make(map[string][]models.Value)
	for key, t := range a.tables {
		if vals := t.ColumnValues(column); len(vals) > 0 {
			data[filepath.Base(key)] = vals
		}
	}
	return data
}

// SourceColumns returns, per source basename, the columns that source
// declares, in source order.
func (a *Analyzer) SourceColumns() map[string][]string {
	cols := make(map[string][]string, len(a.tables))
	for key, t := range a.tables {
		cols[filepath.Base(key)] = t.Columns
	}
	return cols
}

// MissingColumns returns, per source basename, the columns of the column
// universe that the source lacks, sorted. Sources missing nothing are
// omitted.
func (a *Analyzer) MissingColumns() map[string][]string {
	missing := make(map[string][]string)
	for key, t := range a.tables {
		var absent []string
		for c := range a.columns {
			if !t.HasColumn(c) {
				absent = append(absent, c)
			}
		}
		if len(absent) > 0 {
			sort.Strings(absent)
			missing[filepath.Base(key)] = absent
		}
	}
	return missing
}

// scanDirectory enumerates files matching pattern in the directory,
// sorted. A missing directory is ErrDirNotFound.
func scanDirectory(path, pattern string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDirNotFound, path)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrDirNotFound, path)
	}
	matches, err := filepath.Glob(filepath.Join(path, pattern))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}

func sortedNames(tables map[string]*models.Table) []string {
	var names []string
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
