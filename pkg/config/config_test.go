package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wdm0006/modelprep/dataio"
)

func TestDefaults(t *testing.T) {
	c, err := Load(New())
	require.NoError(t, err)
	assert.Equal(t, "csv", c.Export.Format)
	assert.Equal(t, 5, c.Pipeline.MaxAttempts)
	assert.Equal(t, 5, c.Display.HeadRows)
	assert.Equal(t, "info", c.Log.Level)
	assert.Zero(t, c.LoadOptions().Delimiter)
	assert.Empty(t, c.LoadOptions().NAValues)
	assert.Equal(t, dataio.ExportOptions{Format: dataio.CSV, Delimiter: ','}, c.ExportOptions())
}

func TestReadFile(t *testing.T) {
	v := New()
	require.NoError(t, ReadFile(v, "testdata/modelprep.yaml"))
	c, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, ';', c.LoadOptions().Delimiter)
	assert.Equal(t, []string{"NA", "?"}, c.Input.NAValues)
	assert.Equal(t, dataio.Parquet, c.ExportOptions().Format)
	assert.Equal(t, 3, c.Pipeline.MaxAttempts)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, 5, c.Display.HeadRows)
}

func TestReadFileMissing(t *testing.T) {
	assert.Error(t, ReadFile(New(), filepath.Join(t.TempDir(), "nope.yaml")))
}

func TestSearchWithoutFile(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer func() { _ = os.Chdir(wd) }()
	t.Setenv("HOME", t.TempDir())

	assert.NoError(t, ReadFile(New(), ""))
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("MODELPREP_EXPORT_FORMAT", "xlsx")
	t.Setenv("MODELPREP_DISPLAY_HEAD_ROWS", "9")
	c, err := Load(New())
	require.NoError(t, err)
	assert.Equal(t, dataio.XLSX, c.ExportOptions().Format)
	assert.Equal(t, 9, c.Display.HeadRows)
}

func TestValidate(t *testing.T) {
	for key, val := range map[string]any{
		"export.format":         "json",
		"pipeline.max_attempts": 0,
		"display.head_rows":     -1,
		"input.delimiter":       ";;",
	} {
		v := New()
		v.Set(key, val)
		_, err := Load(v)
		assert.Error(t, err, key)
	}
}

func TestParseDelimiter(t *testing.T) {
	for in, want := range map[string]rune{"": 0, ",": ',', "tab": '\t', `\t`: '\t', "|": '|'} {
		got, err := ParseDelimiter(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{"ab", `"`, "\n"} {
		_, err := ParseDelimiter(in)
		assert.Error(t, err, in)
	}
}
