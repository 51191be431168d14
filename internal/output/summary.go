package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/sondelabs/sonde/pkg/models"
)

// SummaryView renders a folder summary as console output.
type SummaryView struct {
	Summary *models.FolderSummary
}

func (v *SummaryView) RenderData() any {
	return v.Summary
}

func (v *SummaryView) RenderText(w io.Writer, colored bool) error {
	s := v.Summary

	table := v.fileTable()
	if err := table.RenderText(w, colored); err != nil {
		return err
	}

	printf := fmt.Fprintf
	if colored {
		bold := color.New(color.Bold)
		printf = func(w io.Writer, format string, a ...any) (int, error) {
			return bold.Fprintf(w, format, a...)
		}
	}

	printf(w, "Files: %d  Lines: %d  Functions: %d  Classes: %d  Complexity: %d  Issues: %d\n",
		s.Totals.TotalFiles, s.Totals.TotalLines, s.Totals.TotalFunctions,
		s.Totals.TotalClasses, s.Totals.TotalComplexity, s.Totals.TotalIssues)
	fmt.Fprintf(w, "Averages: %.2f lines/file, %.2f complexity, %.2f functions/file\n",
		s.Averages.AvgLinesPerFile, s.Averages.AvgComplexity, s.Averages.AvgFunctionsPerFile)
	fmt.Fprintf(w, "Complexity percentiles: p50=%d p90=%d p95=%d\n",
		s.Percentiles.P50, s.Percentiles.P90, s.Percentiles.P95)

	if len(s.Failures) > 0 {
		if colored {
			color.New(color.FgYellow).Fprintf(w, "%d files failed and were excluded from totals\n", len(s.Failures))
		} else {
			fmt.Fprintf(w, "%d files failed and were excluded from totals\n", len(s.Failures))
		}
		for _, f := range s.Failures {
			fmt.Fprintf(w, "  %s: %s\n", f.Path, f.Reason)
		}
	}

	return nil
}

func (v *SummaryView) RenderMarkdown(w io.Writer) error {
	s := v.Summary

	if err := v.fileTable().RenderMarkdown(w); err != nil {
		return err
	}

	fmt.Fprintf(w, "**Totals:** %d files, %d lines, %d functions, %d classes, complexity %d, %d issues\n\n",
		s.Totals.TotalFiles, s.Totals.TotalLines, s.Totals.TotalFunctions,
		s.Totals.TotalClasses, s.Totals.TotalComplexity, s.Totals.TotalIssues)
	fmt.Fprintf(w, "**Averages:** %.2f lines/file, %.2f complexity, %.2f functions/file\n",
		s.Averages.AvgLinesPerFile, s.Averages.AvgComplexity, s.Averages.AvgFunctionsPerFile)
	return nil
}

func (v *SummaryView) fileTable() *Table {
	rows := make([][]string, 0, len(v.Summary.Files))
	for _, f := range v.Summary.Files {
		path := f.Path
		if f.Fallback {
			path += " (fallback)"
		}
		rows = append(rows, []string{
			path,
			fmt.Sprintf("%d", f.Lines),
			fmt.Sprintf("%d", f.Functions),
			fmt.Sprintf("%d", f.Complexity),
			string(f.Risk),
			fmt.Sprintf("%d", f.Issues),
		})
	}

	return &Table{
		Title:   "Code Quality Metrics",
		Headers: []string{"File", "Lines", "Functions", "Complexity", "Risk", "Issues"},
		Rows:    rows,
		Data:    v.Summary,
	}
}
