package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	toon "github.com/toon-format/toon-go"

	"github.com/sondelabs/sonde/pkg/analyzer/metrics"
	"github.com/sondelabs/sonde/pkg/config"
	"github.com/sondelabs/sonde/pkg/scanner"
)

// MetricsInput is the input for the analyze_metrics tool.
type MetricsInput struct {
	Path    string `json:"path,omitempty" jsonschema:"Source root to analyze. Defaults to the current directory."`
	Workers int    `json:"workers,omitempty" jsonschema:"Worker count for the batch. 0 uses 2x NumCPU."`
}

// FileInput is the input for the analyze_file tool.
type FileInput struct {
	Path string `json:"path" jsonschema:"Path of the file to analyze."`
}

func handleAnalyzeMetrics(ctx context.Context, req *mcp.CallToolRequest, input MetricsInput) (*mcp.CallToolResult, any, error) {
	root := input.Path
	if root == "" {
		root = "."
	}

	cfg := config.LoadOrDefault()
	files, err := scanner.New(cfg).ScanDir(root)
	if err != nil {
		return toolError(err.Error())
	}
	if len(files) == 0 {
		return toolError("no source files found under " + root)
	}

	analyzer := metrics.New(metrics.WithWorkers(input.Workers))
	defer analyzer.Close()

	summary, _, err := analyzer.Analyze(ctx, root, files, nil)
	if err != nil {
		return toolError(err.Error())
	}

	return toolResult(summary)
}

func handleAnalyzeFile(ctx context.Context, req *mcp.CallToolRequest, input FileInput) (*mcp.CallToolResult, any, error) {
	if input.Path == "" {
		return toolError("path is required")
	}

	analyzer := metrics.New()
	defer analyzer.Close()

	record, err := analyzer.AnalyzeFile(input.Path)
	if err != nil {
		return toolError(err.Error())
	}

	return toolResult(record)
}

func toolResult(data any) (*mcp.CallToolResult, any, error) {
	out, err := toon.Marshal(data, toon.WithIndent(2))
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(out)},
		},
	}, nil, nil
}

func toolError(msg string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: "Error: " + msg},
		},
		IsError: true,
	}, nil, nil
}
