package xlsxio

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wdm0006/modelprep/pkg/prep"
)

func TestWriteThenRead(t *testing.T) {
	a := prep.NewIntColumn("a", 0)
	b := prep.NewStringColumn("b", 0)
	a.Append(1)
	b.Append("x")
	a.Append(2)
	b.AppendNull()
	f, err := prep.FromColumns(a, b)
	require.NoError(t, err)

	p := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, Write(p, f, "data"))

	got, err := Read(p, ReaderOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got.Names())
	assert.Equal(t, 2, got.Rows())
	ga, _ := got.ColumnByName("a")
	assert.Equal(t, prep.KindInt, ga.Kind())
	gb, _ := got.ColumnByName("b")
	assert.True(t, gb.IsNull(1))

	_, err = Read(p, ReaderOptions{Sheet: "nope"})
	assert.Error(t, err)
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "none.xlsx"), ReaderOptions{})
	assert.Error(t, err)
}
