package colgroup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hfujita/colgroup/pkg/colgroup/models"
	"github.com/hfujita/colgroup/pkg/colgroup/output"
)

// ProvenanceColumn is the column appended to combined output identifying
// which source table each row came from.
const ProvenanceColumn = "source_file"

// ExportMatched writes all matched tables as one combined CSV file,
// <outputDir>/<prefix>_combined.csv, creating the directory on demand.
// Each piece has its still-all-empty columns dropped and a provenance
// column appended (the source key's basename); pieces are concatenated
// with outer-union column semantics and provenance forced last. An empty
// Matched set is a logged no-op. Any failure aborts the combined export;
// it is logged and recorded in the report, never raised.
func (a *Analyzer) ExportMatched(outputDir string, res *GroupResult, prefix string) *ExportReport {
	rep := &ExportReport{}
	if len(res.Matched) == 0 {
		log.Info().Msg("no matched data to export")
		return rep
	}

	artifact := prefix + "_combined.csv"
	path, err := writeCombined(outputDir, artifact, res.Matched)
	if err != nil {
		eerr := &ExportError{Artifact: artifact, Err: err}
		log.Error().Err(err).Str("artifact", artifact).Msg("combined export failed")
		rep.Failed = append(rep.Failed, Outcome{Key: artifact, Err: eerr})
		return rep
	}
	rep.Written = append(rep.Written, path)
	log.Info().Str("path", path).Msg("exported combined data")
	return rep
}

func writeCombined(outputDir, artifact string, matched map[string]*models.Table) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", err
	}
	var pieces []*models.Table
	for _, key := range sortedNames(matched) {
		piece := matched[key].DropEmptyColumns()
		pieces = append(pieces, withProvenance(piece, filepath.Base(key)))
	}
	combined := models.Concat(pieces)
	forceLast(combined, ProvenanceColumn)

	path := filepath.Join(outputDir, artifact)
	if err := output.WriteFile(path, combined); err != nil {
		return "", err
	}
	return path, nil
}

// ExportUnmatched writes one CSV file per unmatched source,
// <outputDir>/<prefix>_<sourceBaseNameNoExt>.csv, preserving each source's
// original column order. Failing to write one file is logged and recorded
// but does not stop the others.
func (a *Analyzer) ExportUnmatched(outputDir string, res *GroupResult, prefix string) *ExportReport {
	rep := &ExportReport{}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		eerr := &ExportError{Artifact: outputDir, Err: err}
		log.Error().Err(err).Str("dir", outputDir).Msg("cannot create output directory")
		rep.Failed = append(rep.Failed, Outcome{Key: outputDir, Err: eerr})
		return rep
	}
	for _, key := range sortedNames(res.Unmatched) {
		base := filepath.Base(key)
		base = strings.TrimSuffix(base, filepath.Ext(base))
		artifact := fmt.Sprintf("%s_%s.csv", prefix, base)
		path := filepath.Join(outputDir, artifact)
		if err := output.WriteFile(path, res.Unmatched[key]); err != nil {
			eerr := &ExportError{Artifact: artifact, Err: err}
			log.Error().Err(err).Str("artifact", artifact).Msg("export failed")
			rep.Failed = append(rep.Failed, Outcome{Key: artifact, Err: eerr})
			continue
		}
		rep.Written = append(rep.Written, path)
		log.Info().Str("path", path).Msg("exported unmatched data")
	}
	return rep
}

// withProvenance returns a copy of the table with a provenance column
// recording the source on every row. Rows are cloned; the input table is
// not mutated.
func withProvenance(t *models.Table, source string) *models.Table {
	out := &models.Table{}
	for _, c := range t.Columns {
		out.Columns = append(out.Columns, c)
	}
	if !t.HasColumn(ProvenanceColumn) {
		out.Columns = append(out.Columns, ProvenanceColumn)
	}
	for _, row := range t.Rows {
		nr := make(models.Row, len(row)+1)
		for k, v := range row {
			nr[k] = v
		}
		nr[ProvenanceColumn] = source
		out.Rows = append(out.Rows, nr)
	}
	return out
}

// forceLast moves the named column to the end of the column order.
func forceLast(t *models.Table, column string) {
	var cols []string
	found := false
	for _, c := range t.Columns {
		if c == column {
			found = true
			continue
		}
		cols = append(cols, c)
	}
	if found {
		cols = append(cols, column)
	}
	t.Columns = cols
}
