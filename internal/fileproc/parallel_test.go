package fileproc

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/sondelabs/sonde/pkg/parser"
)

func TestMapFiles(t *testing.T) {
	files := []string{"a.js", "b.js", "c.js"}

	results, errs := MapFiles(context.Background(), files, 2,
		func(_ *parser.Parser, path string) (string, error) {
			return strings.ToUpper(path), nil
		}, nil)

	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
	sort.Strings(results)
	want := []string{"A.JS", "B.JS", "C.JS"}
	for i, r := range results {
		if r != want[i] {
			t.Errorf("results[%d] = %q, want %q", i, r, want[i])
		}
	}
}

func TestMapFilesEmpty(t *testing.T) {
	results, errs := MapFiles(context.Background(), nil, 2,
		func(_ *parser.Parser, path string) (int, error) { return 0, nil }, nil)

	if results != nil || errs != nil {
		t.Errorf("MapFiles(nil) = %v, %v, want nil, nil", results, errs)
	}
}

func TestMapFilesCollectsErrors(t *testing.T) {
	files := []string{"ok.js", "bad.js", "also-ok.js"}

	results, errs := MapFiles(context.Background(), files, 1,
		func(_ *parser.Parser, path string) (string, error) {
			if path == "bad.js" {
				return "", errors.New("boom")
			}
			return path, nil
		}, nil)

	// One failure does not drop the other results.
	if len(results) != 2 {
		t.Errorf("len(results) = %d, want 2", len(results))
	}
	if errs == nil || !errs.HasErrors() {
		t.Fatal("expected collected errors")
	}
	if len(errs.Errors) != 1 {
		t.Fatalf("len(Errors) = %d, want 1", len(errs.Errors))
	}
	if errs.Errors[0].Path != "bad.js" {
		t.Errorf("error path = %q, want bad.js", errs.Errors[0].Path)
	}
}

func TestMapFilesProgress(t *testing.T) {
	files := make([]string, 10)
	for i := range files {
		files[i] = fmt.Sprintf("f%d.js", i)
	}

	var ticks atomic.Int64
	_, errs := MapFiles(context.Background(), files, 4,
		func(_ *parser.Parser, path string) (struct{}, error) {
			return struct{}{}, nil
		}, func() { ticks.Add(1) })

	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	// Progress fires once per file regardless of outcome.
	if ticks.Load() != int64(len(files)) {
		t.Errorf("ticks = %d, want %d", ticks.Load(), len(files))
	}
}

func TestMapFilesCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, errs := MapFiles(ctx, []string{"a.js", "b.js"}, 1,
		func(_ *parser.Parser, path string) (string, error) {
			return path, nil
		}, nil)

	if errs == nil || !errs.HasErrors() {
		t.Fatal("cancelled context should surface per-file errors")
	}
}

func TestProcessingErrorsError(t *testing.T) {
	e := &ProcessingErrors{}
	if e.Error() != "no errors" {
		t.Errorf("empty Error() = %q", e.Error())
	}

	e.Add("a.js", errors.New("one"))
	if !strings.Contains(e.Error(), "a.js") {
		t.Errorf("Error() = %q, want to mention path", e.Error())
	}

	e.Add("b.js", errors.New("two"))
	if !strings.Contains(e.Error(), "2 files failed") {
		t.Errorf("Error() = %q, want aggregate form", e.Error())
	}
}
