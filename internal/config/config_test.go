package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "Key", cfg.Columns.Key)
	assert.Equal(t, "MAP-", cfg.Activity.KeyPrefix)
	assert.Equal(t, "Idea", cfg.Activity.WorkType)
	assert.InDelta(t, 8.0, cfg.Units["d"], 1e-9)
	assert.InDelta(t, 1.0/60, cfg.Units["m"], 1e-9)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wiproll.yaml")
	content := `
activity:
  key_prefix: "IDEA-"
  work_type: "Idea"
  support_tag: "Platform"
units:
  d: 7.5
  h: 1
  m: 0.0166667
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	// Overridden sections take effect.
	assert.Equal(t, "IDEA-", cfg.Activity.KeyPrefix)
	assert.InDelta(t, 7.5, cfg.Units["d"], 1e-9)

	// Untouched sections keep their defaults.
	assert.Equal(t, "Key", cfg.Columns.Key)
	assert.Equal(t, "Results", cfg.Output.ResultsSheet)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidateRejectsBadUnits(t *testing.T) {
	cfg := Default()
	cfg.Units["d"] = -1
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Units = nil
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsEmptyColumns(t *testing.T) {
	cfg := Default()
	cfg.Columns.Key = ""
	assert.Error(t, cfg.Validate())
}
