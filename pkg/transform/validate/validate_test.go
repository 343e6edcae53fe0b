package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wdm0006/modelprep/pkg/prep"
)

func abcFrame(t *testing.T) *prep.Frame {
	t.Helper()
	a := prep.NewIntColumn("a", 0)
	b := prep.NewStringColumn("b", 0)
	c := prep.NewFloatColumn("c", 0)
	a.Append(1)
	b.Append("x")
	c.Append(1.5)
	f, err := prep.FromColumns(a, b, c)
	require.NoError(t, err)
	return f
}

func TestColumns(t *testing.T) {
	f := abcFrame(t)
	assert.NoError(t, Columns("drop", f))
	assert.NoError(t, Columns("drop", f, "a", "c"))
	assert.True(t, prep.IsValidation(Columns("drop", f, "z")))
	assert.True(t, prep.IsValidation(Columns("drop", f, "a", "a")))
}

func TestNumeric(t *testing.T) {
	f := abcFrame(t)
	assert.NoError(t, Numeric("outliers", f, "a"))
	assert.NoError(t, Numeric("outliers", f, "c"))
	assert.True(t, prep.IsValidation(Numeric("outliers", f, "b")))
	assert.True(t, prep.IsValidation(Numeric("outliers", f, "nope")))
}

func TestRenames(t *testing.T) {
	f := abcFrame(t)
	assert.NoError(t, Renames("rename", f, []string{"a"}, []string{"alpha"}))
	// swapping two names is a valid batch
	assert.NoError(t, Renames("rename", f, []string{"a", "b"}, []string{"b", "a"}))

	err := Renames("rename", f, []string{"a"}, []string{"b"})
	require.Error(t, err)
	assert.True(t, prep.IsValidation(err))

	assert.True(t, prep.IsValidation(Renames("rename", f, []string{"a", "c"}, []string{"x", "x"})))
	assert.True(t, prep.IsValidation(Renames("rename", f, []string{"a"}, []string{" "})))
	assert.True(t, prep.IsValidation(Renames("rename", f, []string{"q"}, []string{"r"})))
}

func TestNewNames(t *testing.T) {
	f := abcFrame(t)
	assert.NoError(t, NewNames("get_dummies", "b", f, []string{"b_y"}))
	assert.True(t, prep.IsValidation(NewNames("get_dummies", "b", f, []string{"a"})))
}
