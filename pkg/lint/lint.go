// Package lint integrates an external static-lint engine. Lint output is
// merged into the metrics record as an opaque summary; a lint failure never
// aborts file analysis.
package lint

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"

	"github.com/sondelabs/sonde/pkg/models"
)

// Runner produces a lint summary for one file. Implementations must be safe
// for concurrent invocation or serialize internally.
type Runner interface {
	Run(ctx context.Context, path string) (models.LintSummary, error)
}

// ESLintRunner shells out to an ESLint-compatible command that supports
// `--format json`. Each invocation is one process, so concurrent calls are
// naturally isolated.
type ESLintRunner struct {
	Command string
	Args    []string
	Timeout time.Duration
}

// NewESLintRunner builds a runner for the given command (e.g. "eslint" or
// "npx"). Extra args come before the file path.
func NewESLintRunner(command string, args ...string) *ESLintRunner {
	return &ESLintRunner{
		Command: command,
		Args:    args,
		Timeout: 30 * time.Second,
	}
}

// eslintFileResult mirrors one element of ESLint's JSON formatter output.
type eslintFileResult struct {
	FilePath string          `json:"filePath"`
	Messages []eslintMessage `json:"messages"`
}

type eslintMessage struct {
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	RuleID   string `json:"ruleId"`
	Severity int    `json:"severity"` // 1 warning, 2 error
	Message  string `json:"message"`
}

// Run lints a single file. The returned error is advisory: callers should
// substitute a skipped summary and continue.
func (r *ESLintRunner) Run(ctx context.Context, path string) (models.LintSummary, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	args := append(append([]string{}, r.Args...), "--format", "json", path)
	cmd := exec.CommandContext(ctx, r.Command, args...)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	// ESLint exits 1 when issues are found; only treat a run with no JSON
	// output as a collaborator failure.
	runErr := cmd.Run()

	var results []eslintFileResult
	if err := json.Unmarshal(stdout.Bytes(), &results); err != nil {
		if runErr != nil {
			return models.SkippedLint(fmt.Sprintf("lint failed: %v", runErr)), runErr
		}
		return models.SkippedLint(fmt.Sprintf("lint output unreadable: %v", err)), err
	}

	return summarize(results), nil
}

func summarize(results []eslintFileResult) models.LintSummary {
	var s models.LintSummary
	for _, file := range results {
		for _, m := range file.Messages {
			issue := models.LintIssue{
				Line:    m.Line,
				Column:  m.Column,
				Rule:    m.RuleID,
				Message: m.Message,
			}
			switch m.Severity {
			case 2:
				issue.Severity = "error"
				s.Errors++
			default:
				issue.Severity = "warning"
				s.Warnings++
			}
			s.TotalIssues++
			s.Issues = append(s.Issues, issue)
		}
	}
	return s
}
