package ioutils

import (
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
	"github.com/wdm0006/modelprep/pkg/prep"
)

func TestHeader(t *testing.T) {
	got := Header([]string{"\ufeffid", "a", "", "a", "a.1", " b "})
	assert.Equal(t, []string{"id", "a", "Unnamed: 2", "a.1", "a.1.1", "b"}, got)
}

func TestInferSchema(t *testing.T) {
	rows := [][]string{
		{"1", "1.5", "true", "x", "NA", "1"},
		{"2", "", "False", "2", "", "true"},
		{"-3", "4", "n/a", "y"},
	}
	s := InferSchema([]string{"i", "f", "b", "s", "empty", "mixed"}, rows, NASet(nil))
	kinds := make([]prep.Kind, len(s.Columns))
	for i, c := range s.Columns {
		kinds[i] = c.Type
	}
	assert.Equal(t, []prep.Kind{prep.KindInt, prep.KindFloat, prep.KindBool, prep.KindString, prep.KindFloat, prep.KindString}, kinds)
}

func TestBuildFrame(t *testing.T) {
	rows := [][]string{{"1", "x"}, {"NA", "y"}, {"3"}}
	na := NASet(nil)
	s := InferSchema([]string{"a", "b"}, rows, na)
	f, err := BuildFrame(s, rows, na)
	require.NoError(t, err)
	assert.Equal(t, 3, f.Rows())
	a, _ := f.ColumnByName("a")
	assert.True(t, a.IsNull(1))
	assert.Equal(t, "3", a.Format(2))
	b, _ := f.ColumnByName("b")
	assert.True(t, b.IsNull(2))
}

func TestCustomNAValues(t *testing.T) {
	na := NASet([]string{"-"})
	s := InferSchema([]string{"a"}, [][]string{{"-"}, {"NA"}}, na)
	assert.Equal(t, prep.KindString, s.Columns[0].Type)
}

func TestOpenCompressed(t *testing.T) {
	dir := t.TempDir()
	payload := []byte("a,b\n1,2\n")

	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	_, _ = zw.Write(payload)
	require.NoError(t, zw.Close())
	// no .gz extension: detected by magic
	gzPath := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(gzPath, gz.Bytes(), 0o644))

	var xzb bytes.Buffer
	xw, err := xz.NewWriter(&xzb)
	require.NoError(t, err)
	_, _ = xw.Write(payload)
	require.NoError(t, xw.Close())
	xzPath := filepath.Join(dir, "data.csv.xz")
	require.NoError(t, os.WriteFile(xzPath, xzb.Bytes(), 0o644))

	for _, p := range []string{gzPath, xzPath} {
		rc, err := OpenMaybeCompressed(p)
		require.NoError(t, err, p)
		got, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		assert.Equal(t, payload, got, p)
	}
}

func TestCreateCompressedRoundTrip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out.csv.gz")
	w, err := CreateMaybeCompressed(p)
	require.NoError(t, err)
	_, err = io.WriteString(w, "hello\n")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	rc, err := OpenMaybeCompressed(p)
	require.NoError(t, err)
	defer func() { _ = rc.Close() }()
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(got))
}
