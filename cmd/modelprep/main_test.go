package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "modelprep "+version+"\n", out)
}

func TestApply(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "apply", "../../examples/data/sample.csv",
		"--answers", "../../examples/data/answers.yaml", "--out", dir, "--name", "cli", "--quiet")
	require.NoError(t, err)

	b, err := os.ReadFile(filepath.Join(dir, "cli.csv"))
	require.NoError(t, err)
	header := strings.SplitN(string(b), "\n", 2)[0]
	assert.True(t, strings.HasPrefix(header, "price,"), header)
}

func TestApplyNeedsAnswers(t *testing.T) {
	answersFile = ""
	_, err := execute(t, "apply", "../../examples/data/sample.csv")
	assert.Error(t, err)
}

func TestMissingInputEndsRun(t *testing.T) {
	_, err := execute(t, "apply", filepath.Join(t.TempDir(), "none.csv"),
		"--answers", "../../examples/data/answers.yaml", "--quiet")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load")
}
