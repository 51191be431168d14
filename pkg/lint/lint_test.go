package lint

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestSummarize(t *testing.T) {
	results := []eslintFileResult{
		{
			FilePath: "a.js",
			Messages: []eslintMessage{
				{Line: 1, Column: 5, RuleID: "no-unused-vars", Severity: 2, Message: "x is unused"},
				{Line: 3, Column: 1, RuleID: "semi", Severity: 1, Message: "missing semicolon"},
				{Line: 9, Column: 2, RuleID: "eqeqeq", Severity: 2, Message: "use ==="},
			},
		},
	}

	s := summarize(results)

	if s.TotalIssues != 3 {
		t.Errorf("TotalIssues = %d, want 3", s.TotalIssues)
	}
	if s.Errors != 2 {
		t.Errorf("Errors = %d, want 2", s.Errors)
	}
	if s.Warnings != 1 {
		t.Errorf("Warnings = %d, want 1", s.Warnings)
	}
	if len(s.Issues) != 3 {
		t.Fatalf("len(Issues) = %d, want 3", len(s.Issues))
	}
	if s.Issues[0].Severity != "error" || s.Issues[1].Severity != "warning" {
		t.Errorf("severity mapping wrong: %+v", s.Issues)
	}
	if s.Issues[0].Rule != "no-unused-vars" {
		t.Errorf("Rule = %q", s.Issues[0].Rule)
	}
	if s.Skipped {
		t.Error("summarized output should not be marked skipped")
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := summarize(nil)
	if s.TotalIssues != 0 || len(s.Issues) != 0 {
		t.Errorf("summarize(nil) = %+v, want empty", s)
	}
}

func TestRunMissingCommand(t *testing.T) {
	r := NewESLintRunner("definitely-not-a-real-linter-binary")

	s, err := r.Run(context.Background(), "a.js")
	if err == nil {
		t.Fatal("Run() expected error for missing command")
	}
	if !s.Skipped {
		t.Error("failed run should return a skipped summary")
	}
	if s.Note == "" {
		t.Error("skipped summary should explain the failure")
	}
}

func TestRunToleratesNonZeroExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script fixture")
	}

	// A stand-in linter that reports one error and exits 1, like eslint
	// does when issues are found.
	tmpDir := t.TempDir()
	script := filepath.Join(tmpDir, "fakelint")
	body := `#!/bin/sh
echo '[{"filePath":"a.js","messages":[{"line":1,"column":1,"ruleId":"no-debugger","severity":2,"message":"no debugger"}]}]'
exit 1
`
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatal(err)
	}

	r := NewESLintRunner(script)
	s, err := r.Run(context.Background(), "a.js")
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if s.TotalIssues != 1 || s.Errors != 1 {
		t.Errorf("summary = %+v, want 1 error", s)
	}
}
