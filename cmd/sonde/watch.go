package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/sondelabs/sonde/pkg/watch"
)

func watchCommand() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "Watch a source tree and re-analyze files as they change",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:  "debounce",
				Value: 500 * time.Millisecond,
				Usage: "Delay before re-analyzing after a burst of changes",
			},
		},
		Action: runWatch,
	}
}

func runWatch(c *cli.Context) error {
	root := c.Args().First()
	if root == "" {
		root = "."
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	cfg.Cache.Enabled = false // changed files would miss anyway

	analyzer, err := buildAnalyzer(cfg)
	if err != nil {
		return err
	}
	defer analyzer.Close()

	watcher, err := watch.NewWatcher(root, cfg, c.Duration("debounce"))
	if err != nil {
		return err
	}
	defer watcher.Stop()

	watcher.SetCallback(func(path string) {
		record, err := analyzer.AnalyzeFile(path)
		if err != nil {
			color.Red("  %v", err)
			return
		}
		risk := record.Complexity.Risk
		line := fmt.Sprintf("  lines=%d functions=%d complexity=%d risk=%s",
			record.Size.SourceLines,
			record.Structure.TotalFunctions,
			record.Complexity.Complexity,
			risk)
		if record.Fallback {
			line += " (fallback)"
		}
		fmt.Println(line)
	})

	return watcher.Start(c.Context)
}
