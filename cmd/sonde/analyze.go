package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/sondelabs/sonde/internal/cache"
	"github.com/sondelabs/sonde/internal/output"
	"github.com/sondelabs/sonde/internal/progress"
	"github.com/sondelabs/sonde/internal/report"
	"github.com/sondelabs/sonde/pkg/analyzer/metrics"
	"github.com/sondelabs/sonde/pkg/config"
	"github.com/sondelabs/sonde/pkg/lint"
	"github.com/sondelabs/sonde/pkg/scanner"
)

func analyzeCommand() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "Analyze a source tree and report per-file and folder metrics",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Directory to write the JSON report run into",
			},
			&cli.BoolFlag{
				Name:  "lint",
				Usage: "Run the configured linter per file",
			},
			&cli.BoolFlag{
				Name:  "no-cache",
				Usage: "Bypass the analysis cache",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Number of parallel workers (0 = auto)",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Suppress the progress bar",
			},
		},
		Action: runAnalyze,
	}
}

func runAnalyze(c *cli.Context) error {
	root := c.Args().First()
	if root == "" {
		root = "."
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if c.IsSet("workers") {
		cfg.Analysis.Workers = c.Int("workers")
	}
	if c.Bool("lint") {
		cfg.Lint.Enabled = true
	}
	if c.Bool("no-cache") {
		cfg.Cache.Enabled = false
	}
	if c.Bool("no-color") {
		color.NoColor = true
	}

	files, err := scanner.New(cfg).ScanDir(root)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println("No analyzable files found.")
		return nil
	}

	analyzer, err := buildAnalyzer(cfg)
	if err != nil {
		return err
	}
	defer analyzer.Close()

	var onProgress func()
	if !c.Bool("quiet") {
		tracker := progress.NewTracker("Analyzing", len(files))
		defer tracker.Finish()
		onProgress = tracker.Tick
	}

	summary, records, err := analyzer.Analyze(c.Context, root, files, onProgress)
	if err != nil {
		return err
	}

	if outDir := c.String("output"); outDir != "" {
		sink, err := report.NewSink(outDir, time.Now())
		if err != nil {
			return err
		}
		for _, record := range records {
			if err := sink.WriteRecord(record); err != nil {
				return err
			}
		}
		meta := report.Metadata{
			Root:        root,
			GeneratedAt: time.Now().UTC(),
			Version:     version,
			FileCount:   len(records),
			Failures:    len(summary.Failures),
		}
		if err := sink.WriteSummary(summary, meta); err != nil {
			return err
		}
		color.Green("Report written to %s", sink.Dir())
	}

	formatter, err := output.NewFormatter(output.ParseFormat(c.String("format")), "", !color.NoColor)
	if err != nil {
		return err
	}
	defer formatter.Close()

	// Per-file failures are reported inside the summary; only an
	// unrecoverable error (bad root, unwritable output) exits non-zero.
	return formatter.Output(&output.SummaryView{Summary: summary})
}

func buildAnalyzer(cfg *config.Config) (*metrics.Analyzer, error) {
	opts := []metrics.Option{metrics.WithWorkers(cfg.Analysis.Workers)}

	if cfg.Cache.Enabled {
		store, err := cache.New(cfg.Cache.Dir, cfg.Cache.TTL, true)
		if err != nil {
			return nil, fmt.Errorf("failed to open cache: %w", err)
		}
		opts = append(opts, metrics.WithCache(store))
	}

	if cfg.Lint.Enabled {
		runner := lint.NewESLintRunner(cfg.Lint.Command, cfg.Lint.Args...)
		if cfg.Lint.Timeout > 0 {
			runner.Timeout = time.Duration(cfg.Lint.Timeout) * time.Second
		}
		opts = append(opts, metrics.WithLinter(runner))
	}

	return metrics.New(opts...), nil
}
