package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 0, cfg.Analysis.Workers, "workers should default to auto")
	assert.False(t, cfg.Lint.Enabled)
	assert.Equal(t, "eslint", cfg.Lint.Command)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 24, cfg.Cache.TTL)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.True(t, cfg.Exclude.Gitignore)
	assert.Contains(t, cfg.Exclude.Dirs, "node_modules")
}

func TestLoadTOML(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "sonde.toml")
	content := `[analysis]
workers = 4

[lint]
enabled = true
command = "npx"
args = ["eslint"]

[cache]
enabled = false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Analysis.Workers)
	assert.True(t, cfg.Lint.Enabled)
	assert.Equal(t, "npx", cfg.Lint.Command)
	assert.Equal(t, []string{"eslint"}, cfg.Lint.Args)
	assert.False(t, cfg.Cache.Enabled)
	// Unset keys keep their defaults.
	assert.Equal(t, "text", cfg.Output.Format)
}

func TestLoadYAML(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "sonde.yaml")
	content := `analysis:
  workers: 8
exclude:
  patterns:
    - "*.spec.js"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Analysis.Workers)
	assert.Equal(t, []string{"*.spec.js"}, cfg.Exclude.Patterns)
}

func TestLoadJSON(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "sonde.json")
	content := `{"output": {"format": "json", "verbose": true}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Output.Format)
	assert.True(t, cfg.Output.Verbose)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/sonde.toml")
	assert.Error(t, err)
}

func TestShouldExclude(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		path string
		want bool
	}{
		{"src/app.js", false},
		{"node_modules/lodash/index.js", true},
		{"src/node_modules/pkg/a.js", true},
		{"dist/bundle.js", true},
		{"src/vendor.min.js", true},
		{"src/types.d.ts", true},
		{"src/distance.js", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, cfg.ShouldExclude(tt.path), "path %q", tt.path)
	}
}
