package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"text", FormatText},
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"markdown", FormatMarkdown},
		{"md", FormatMarkdown},
		{"toon", FormatToon},
		{"", FormatText},
		{"bogus", FormatText},
	}

	for _, tt := range tests {
		if got := ParseFormat(tt.in); got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatterWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	f, err := NewFormatter(FormatJSON, path, true)
	if err != nil {
		t.Fatalf("NewFormatter() error: %v", err)
	}
	if err := f.Output(map[string]int{"files": 3}); err != nil {
		t.Fatalf("Output() error: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]int
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("output not valid JSON: %v", err)
	}
	if got["files"] != 3 {
		t.Errorf("files = %d, want 3", got["files"])
	}
}

func TestTableRenderMarkdown(t *testing.T) {
	table := &Table{
		Title:   "Demo",
		Headers: []string{"File", "Lines"},
		Rows: [][]string{
			{"a.js", "10"},
			{"b.js", "20"},
		},
	}

	var buf bytes.Buffer
	if err := table.RenderMarkdown(&buf); err != nil {
		t.Fatalf("RenderMarkdown() error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "| File | Lines |") {
		t.Errorf("missing header row:\n%s", out)
	}
	if !strings.Contains(out, "| a.js | 10 |") {
		t.Errorf("missing data row:\n%s", out)
	}
}

func TestTableRenderText(t *testing.T) {
	table := &Table{
		Headers: []string{"File", "Complexity"},
		Rows:    [][]string{{"a.js", "4"}},
	}

	var buf bytes.Buffer
	if err := table.RenderText(&buf, false); err != nil {
		t.Fatalf("RenderText() error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "a.js") || !strings.Contains(out, "4") {
		t.Errorf("RenderText() output missing cells:\n%s", out)
	}
}
