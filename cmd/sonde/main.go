package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/sondelabs/sonde/pkg/config"
)

var (
	version = "dev"
	commit  = "none"    //nolint:unused // set via ldflags at build time
	date    = "unknown" //nolint:unused // set via ldflags at build time
)

func main() {
	app := &cli.App{
		Name:    "sonde",
		Usage:   "Code-quality metrics for JavaScript and TypeScript",
		Version: version,
		Description: `Sonde statically analyzes JS/JSX/TS/TSX sources and reports size,
structural composition, cyclomatic complexity and Halstead software-science
metrics per file, plus aggregated folder summaries for dashboards and CI.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (TOML, YAML, or JSON)",
				EnvVars: []string{"SONDE_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "text",
				Usage:   "Output format: text, json, markdown, toon",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
		},
		Commands: []*cli.Command{
			analyzeCommand(),
			watchCommand(),
			initCommand(),
			mcpCommand(),
		},
		DefaultCommand: "analyze",
	}

	// Ctrl+C cancels the batch; per-file work already done is discarded,
	// no partial aggregate is written.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.RunContext(ctx, os.Args); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration for a command.
func loadConfig(c *cli.Context) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config %q: %w", path, err)
		}
		return cfg, nil
	}
	return config.LoadOrDefault(), nil
}
