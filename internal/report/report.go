// Package report persists analysis output: one JSON record per file and a
// folder summary, grouped into a timestamped run directory.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sondelabs/sonde/pkg/models"
)

// Metadata describes one report run.
type Metadata struct {
	Root        string    `json:"root"`
	GeneratedAt time.Time `json:"generated_at"`
	Version     string    `json:"version"`
	FileCount   int       `json:"file_count"`
	Failures    int       `json:"failures"`
}

// Sink writes reports under a run directory.
type Sink struct {
	dir string
}

// NewSink creates the run directory `run-<timestamp>` under outputRoot.
// An unwritable output root is an unrecoverable error for the run.
func NewSink(outputRoot string, now time.Time) (*Sink, error) {
	dir := filepath.Join(outputRoot, "run-"+now.Format("20060102-150405"))
	if err := os.MkdirAll(filepath.Join(dir, "files"), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create run directory: %w", err)
	}
	return &Sink{dir: dir}, nil
}

// Dir returns the run directory path.
func (s *Sink) Dir() string {
	return s.dir
}

// WriteRecord persists one per-file metrics record.
func (s *Sink) WriteRecord(record *models.MetricsRecord) error {
	path := filepath.Join(s.dir, "files", slug(record.Path)+".json")
	return writeJSON(path, record)
}

// WriteSummary persists the folder summary and run metadata.
func (s *Sink) WriteSummary(summary *models.FolderSummary, meta Metadata) error {
	if err := writeJSON(filepath.Join(s.dir, "summary.json"), summary); err != nil {
		return err
	}
	return writeJSON(filepath.Join(s.dir, "metadata.json"), meta)
}

func writeJSON(path string, data any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// slug flattens a file path into a safe filename, keeping it recognizable.
func slug(path string) string {
	cleaned := filepath.ToSlash(filepath.Clean(path))
	cleaned = strings.TrimPrefix(cleaned, "./")
	cleaned = strings.ReplaceAll(cleaned, "/", "__")
	cleaned = strings.ReplaceAll(cleaned, "..", "_")
	if cleaned == "" || cleaned == "." {
		return "_"
	}
	return cleaned
}
