package models

import (
	"sort"

	"github.com/sondelabs/sonde/pkg/stats"
)

// FolderTotals are straight sums over the completed per-file records.
type FolderTotals struct {
	TotalFiles      int `json:"total_files"`
	TotalLines      int `json:"total_lines"`
	SourceLines     int `json:"source_lines"`
	TotalFunctions  int `json:"total_functions"`
	TotalClasses    int `json:"total_classes"`
	TotalComplexity int `json:"total_complexity"`
	TotalIssues     int `json:"total_issues"`
}

// FolderAverages are per-file means, rounded to 2 decimals.
type FolderAverages struct {
	AvgLinesPerFile     float64 `json:"avg_lines_per_file"`
	AvgComplexity       float64 `json:"avg_complexity"`
	AvgFunctionsPerFile float64 `json:"avg_functions_per_file"`
}

// ComplexityPercentiles summarize the spread of per-file complexity.
type ComplexityPercentiles struct {
	P50 int `json:"p50"`
	P90 int `json:"p90"`
	P95 int `json:"p95"`
}

// FileLineItem is the per-file row carried inside a folder summary.
type FileLineItem struct {
	Path       string    `json:"path"`
	Lines      int       `json:"lines"`
	Functions  int       `json:"functions"`
	Complexity int       `json:"complexity"`
	Risk       RiskLevel `json:"risk"`
	Issues     int       `json:"issues"`
	Fallback   bool      `json:"fallback,omitempty"`
}

// FileFailure records a file excluded from aggregation.
type FileFailure struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// FolderSummary is the aggregate over one completed batch. It is a pure
// reduction over finished records: no partial aggregation is ever published.
type FolderSummary struct {
	Root        string                `json:"root"`
	Totals      FolderTotals          `json:"totals"`
	Averages    FolderAverages        `json:"averages"`
	Percentiles ComplexityPercentiles `json:"percentiles"`
	Files       []FileLineItem        `json:"files"`
	Failures    []FileFailure         `json:"failures,omitempty"`
}

// NewFolderSummary reduces completed records into a folder summary.
// Records are ordered by path so repeated runs produce identical output.
func NewFolderSummary(root string, records []*MetricsRecord, failures []FileFailure) *FolderSummary {
	s := &FolderSummary{
		Root:     root,
		Files:    make([]FileLineItem, 0, len(records)),
		Failures: failures,
	}

	sorted := make([]*MetricsRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	lines := make([]float64, 0, len(sorted))
	complexities := make([]float64, 0, len(sorted))
	functions := make([]float64, 0, len(sorted))

	for _, r := range sorted {
		s.Totals.TotalFiles++
		s.Totals.TotalLines += r.Size.TotalLines
		s.Totals.SourceLines += r.Size.SourceLines
		s.Totals.TotalFunctions += r.Structure.TotalFunctions
		s.Totals.TotalClasses += r.Structure.Classes
		s.Totals.TotalComplexity += r.Complexity.Complexity
		s.Totals.TotalIssues += r.Lint.TotalIssues

		lines = append(lines, float64(r.Size.TotalLines))
		complexities = append(complexities, float64(r.Complexity.Complexity))
		functions = append(functions, float64(r.Structure.TotalFunctions))

		s.Files = append(s.Files, FileLineItem{
			Path:       r.Path,
			Lines:      r.Size.TotalLines,
			Functions:  r.Structure.TotalFunctions,
			Complexity: r.Complexity.Complexity,
			Risk:       r.Complexity.Risk,
			Issues:     r.Lint.TotalIssues,
			Fallback:   r.Fallback,
		})
	}

	s.Averages.AvgLinesPerFile = Round2(stats.Mean(lines))
	s.Averages.AvgComplexity = Round2(stats.Mean(complexities))
	s.Averages.AvgFunctionsPerFile = Round2(stats.Mean(functions))

	s.Percentiles.P50 = int(stats.Percentile(complexities, 50))
	s.Percentiles.P90 = int(stats.Percentile(complexities, 90))
	s.Percentiles.P95 = int(stats.Percentile(complexities, 95))

	return s
}
