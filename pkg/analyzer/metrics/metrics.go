// Package metrics computes quantitative code-quality metrics from a single
// traversal of a parsed syntax tree: size, structural composition, McCabe
// cyclomatic complexity and Halstead software-science measures.
package metrics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/sondelabs/sonde/internal/cache"
	"github.com/sondelabs/sonde/internal/fileproc"
	"github.com/sondelabs/sonde/pkg/lint"
	"github.com/sondelabs/sonde/pkg/models"
	"github.com/sondelabs/sonde/pkg/parser"
)

// Analyzer derives a MetricsRecord per source file.
type Analyzer struct {
	parser  *parser.Parser
	linter  lint.Runner
	cache   *cache.Cache
	workers int
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithLinter attaches the external lint collaborator. Without one, lint
// summaries are marked skipped.
func WithLinter(r lint.Runner) Option {
	return func(a *Analyzer) { a.linter = r }
}

// WithCache attaches a record cache keyed by source content hash.
func WithCache(c *cache.Cache) Option {
	return func(a *Analyzer) { a.cache = c }
}

// WithWorkers sets the batch worker count (0 = 2x NumCPU).
func WithWorkers(n int) Option {
	return func(a *Analyzer) { a.workers = n }
}

// New creates a metrics analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{parser: parser.New()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Close releases analyzer resources.
func (a *Analyzer) Close() {
	a.parser.Close()
}

// AnalyzeFile analyzes a single file from disk. A missing or unreadable file
// is a per-file failure surfaced as an error; syntax errors are not, they
// route through the fallback path.
func (a *Analyzer) AnalyzeFile(path string) (*models.MetricsRecord, error) {
	return analyzeFile(a.parser, path)
}

// AnalyzeSource analyzes in-memory source text.
func (a *Analyzer) AnalyzeSource(source []byte, lang parser.Language, path string) (*models.MetricsRecord, error) {
	return analyzeSource(a.parser, source, lang, path)
}

func analyzeFile(psr *parser.Parser, path string) (*models.MetricsRecord, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	lang := parser.DetectLanguage(path)
	if lang == parser.LangUnknown {
		return nil, fmt.Errorf("unsupported language for file: %s", path)
	}

	return analyzeSource(psr, source, lang, path)
}

func analyzeSource(psr *parser.Parser, source []byte, lang parser.Language, path string) (*models.MetricsRecord, error) {
	result, err := psr.Parse(source, lang, path)
	if err != nil {
		if errors.Is(err, parser.ErrParseStructure) {
			return Fallback(source, string(lang), path, err.Error()), nil
		}
		return nil, err
	}

	outcome, err := walkTree(result.Tree.RootNode(), source)
	if err != nil {
		// Walker invariant violations degrade the same way parse
		// failures do.
		return Fallback(source, string(lang), path, err.Error()), nil
	}

	return finalize(path, string(lang), source, outcome), nil
}

// finalize computes every derived aggregate from the raw traversal counts.
// Rounding happens only here; accumulation upstream is exact.
func finalize(path, language string, source []byte, outcome *walkOutcome) *models.MetricsRecord {
	record := &models.MetricsRecord{
		Path:      path,
		Language:  language,
		Size:      ScanLines(source),
		Structure: outcome.structure,
	}

	record.Complexity.DecisionPoints = outcome.complexity.decisionPoints
	record.Complexity.MaxNestingDepth = outcome.maxDepth
	record.Complexity.Finalize(outcome.structure.TotalFunctions)

	n1, n2, total1, total2 := outcome.complexity.counts()
	record.Halstead = models.NewHalsteadMetrics(n1, n2, total1, total2)

	return record
}

// Fallback produces the reduced record used when no syntax tree is
// available: real size metrics from text scanning, zeroed structural,
// cyclomatic and Halstead counters, and a lint summary marked skipped.
// It operates on raw text only and never fails.
func Fallback(source []byte, language, path, note string) *models.MetricsRecord {
	record := &models.MetricsRecord{
		Path:     path,
		Language: language,
		Size:     ScanLines(source),
		Fallback: true,
		Lint:     models.SkippedLint("static analysis skipped: " + note),
	}
	record.Complexity.Finalize(0)
	record.Halstead = models.NewHalsteadMetrics(0, 0, 0, 0)
	return record
}

// Analyze runs the full per-file pipeline (read, parse or fall back, walk,
// finalize, lint) over files in parallel and reduces the completed records
// into a folder summary. Per-file failures are collected, never fatal; the
// reduction waits for every file before computing totals.
func (a *Analyzer) Analyze(ctx context.Context, root string, files []string, onProgress fileproc.ProgressFunc) (*models.FolderSummary, []*models.MetricsRecord, error) {
	records, errs := fileproc.MapFiles(ctx, files, a.workers,
		func(psr *parser.Parser, path string) (*models.MetricsRecord, error) {
			return a.analyzeOne(ctx, psr, path)
		}, onProgress)

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	var failures []models.FileFailure
	if errs != nil {
		for _, pe := range errs.Errors {
			failures = append(failures, models.FileFailure{
				Path:   pe.Path,
				Reason: pe.Err.Error(),
			})
		}
	}

	summary := models.NewFolderSummary(root, records, failures)
	return summary, records, nil
}

// analyzeOne is the per-file pipeline body shared by the batch path.
func (a *Analyzer) analyzeOne(ctx context.Context, psr *parser.Parser, path string) (*models.MetricsRecord, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	if record, ok := a.cachedRecord(source); ok {
		record.Path = path
		return record, nil
	}

	lang := parser.DetectLanguage(path)
	if lang == parser.LangUnknown {
		return nil, fmt.Errorf("unsupported language for file: %s", path)
	}

	record, err := analyzeSource(psr, source, lang, path)
	if err != nil {
		return nil, err
	}

	if !record.Fallback {
		record.Lint = a.runLint(ctx, path)
	}

	a.storeRecord(source, record)
	return record, nil
}

// runLint invokes the collaborator, degrading to a skipped summary on any
// failure. Lint output never influences the other metrics.
func (a *Analyzer) runLint(ctx context.Context, path string) models.LintSummary {
	if a.linter == nil {
		return models.SkippedLint("lint disabled")
	}
	summary, err := a.linter.Run(ctx, path)
	if err != nil {
		return models.SkippedLint(fmt.Sprintf("lint collaborator failed: %v", err))
	}
	return summary
}

func (a *Analyzer) cachedRecord(source []byte) (*models.MetricsRecord, bool) {
	if a.cache == nil {
		return nil, false
	}
	data, ok := a.cache.Get(cache.HashBytes(source))
	if !ok {
		return nil, false
	}
	var record models.MetricsRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, false
	}
	// Raw Halstead values are not serialized; rebuild them from the counts.
	if h := record.Halstead; h != nil {
		record.Halstead = models.NewHalsteadMetrics(
			h.OperatorsUnique, h.OperandsUnique, h.OperatorsTotal, h.OperandsTotal)
	}
	return &record, true
}

func (a *Analyzer) storeRecord(source []byte, record *models.MetricsRecord) {
	if a.cache == nil {
		return
	}
	data, err := json.Marshal(record)
	if err != nil {
		return
	}
	a.cache.Put(cache.HashBytes(source), data)
}
