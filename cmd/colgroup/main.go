// Package main provides the CLI entry point for colgroup.
package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hfujita/colgroup/pkg/colgroup"
	"github.com/hfujita/colgroup/pkg/colgroup/models"
	"github.com/hfujita/colgroup/pkg/colgroup/output"
)

var (
	useXlsx    bool
	column     string
	outDir     string
	prefix     string
	searchVal  string
	whereFlags []string
	outFile    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "colgroup",
		Short: "Group and search tabular data across many files",
		Long: `colgroup loads CSV files or Excel workbooks from a directory, groups
rows by a chosen column across all of them, and exports the consolidated
or leftover data. It can also search all loaded data for a value.`,
	}
	rootCmd.PersistentFlags().BoolVar(&useXlsx, "xlsx", false, "Load *.xlsx workbooks instead of *.csv files")

	groupCmd := &cobra.Command{
		Use:   "group [dir]",
		Short: "Group all files in a directory by a column and export the result",
		Args:  cobra.ExactArgs(1),
		RunE:  runGroup,
	}
	groupCmd.Flags().StringVarP(&column, "column", "c", "", "Column to group by (required)")
	groupCmd.Flags().StringVar(&outDir, "out", "out", "Output directory")
	groupCmd.Flags().StringVar(&prefix, "prefix", "grouped", "Output filename prefix")
	groupCmd.MarkFlagRequired("column")

	searchCmd := &cobra.Command{
		Use:   "search [dir]",
		Short: "Search all files in a directory for a value",
		Args:  cobra.ExactArgs(1),
		RunE:  runSearch,
	}
	searchCmd.Flags().StringVar(&searchVal, "value", "", "Substring to match against every column")
	searchCmd.Flags().StringArrayVar(&whereFlags, "where", nil, "Per-column constraint col=substr (repeatable)")
	searchCmd.Flags().StringVarP(&outFile, "output", "o", "", "Output file path (default: stdout)")

	columnsCmd := &cobra.Command{
		Use:   "columns [dir]",
		Short: "List per-source columns and per-source missing columns",
		Args:  cobra.ExactArgs(1),
		RunE:  runColumns,
	}

	rootCmd.AddCommand(groupCmd, searchCmd, columnsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loader abstracts the CSV and workbook analyzers for the CLI.
type loader interface {
	LoadFromDirectory(path string) (*colgroup.LoadReport, error)
	GroupByColumn(column string) *colgroup.GroupResult
	ExportMatched(outputDir string, res *colgroup.GroupResult, prefix string) *colgroup.ExportReport
	ExportUnmatched(outputDir string, res *colgroup.GroupResult, prefix string) *colgroup.ExportReport
	Search(q colgroup.Query) *models.Table
	SourceColumns() map[string][]string
	MissingColumns() map[string][]string
}

func load(dir string) (loader, error) {
	var l loader
	if useXlsx {
		l = colgroup.NewWorkbookAnalyzer()
	} else {
		l = colgroup.NewAnalyzer()
	}
	rep, err := l.LoadFromDirectory(dir)
	if err != nil {
		return nil, err
	}
	if !rep.Ok() {
		for _, skip := range rep.Skipped {
			fmt.Fprintf(os.Stderr, "skipped %s: %v\n", skip.Key, skip.Err)
		}
	}
	if len(rep.Loaded) == 0 {
		fmt.Fprintln(os.Stderr, "warning: no files loaded")
	}
	return l, nil
}

func runGroup(cmd *cobra.Command, args []string) error {
	l, err := load(args[0])
	if err != nil {
		return err
	}

	res := l.GroupByColumn(column)
	matchedRep := l.ExportMatched(outDir, res, prefix)
	unmatchedRep := l.ExportUnmatched(outDir, res, prefix)

	fmt.Printf("matched: %d source(s), unmatched: %d source(s)\n", len(res.Matched), len(res.Unmatched))
	for _, path := range matchedRep.Written {
		fmt.Printf("wrote %s\n", path)
	}
	for _, path := range unmatchedRep.Written {
		fmt.Printf("wrote %s\n", path)
	}
	for _, fail := range append(matchedRep.Failed, unmatchedRep.Failed...) {
		fmt.Fprintf(os.Stderr, "failed %s: %v\n", fail.Key, fail.Err)
	}
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchVal != "" && len(whereFlags) > 0 {
		return fmt.Errorf("--value and --where are mutually exclusive")
	}

	l, err := load(args[0])
	if err != nil {
		return err
	}

	var q colgroup.Query
	switch {
	case searchVal != "":
		q = colgroup.AnySubstring(searchVal)
	case len(whereFlags) > 0:
		constraints := make(map[string]string, len(whereFlags))
		for _, w := range whereFlags {
			col, val, ok := strings.Cut(w, "=")
			if !ok {
				return fmt.Errorf("invalid --where %q (want col=substr)", w)
			}
			constraints[col] = val
		}
		q = colgroup.ColumnConstraints(constraints)
	default:
		q = colgroup.MatchAll()
	}

	result := l.Search(q)
	if result.NumRows() == 0 {
		fmt.Fprintln(os.Stderr, "no matches")
		return nil
	}
	if outFile != "" {
		return output.WriteFile(outFile, result)
	}
	return output.Write(os.Stdout, result)
}

func runColumns(cmd *cobra.Command, args []string) error {
	l, err := load(args[0])
	if err != nil {
		return err
	}

	cols := l.SourceColumns()
	missing := l.MissingColumns()

	var names []string
	for name := range cols {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Printf("%s: %s\n", name, strings.Join(cols[name], ", "))
		if absent := missing[name]; len(absent) > 0 {
			fmt.Printf("%s missing: %s\n", name, strings.Join(absent, ", "))
		}
	}
	return nil
}
