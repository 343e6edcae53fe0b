package golearn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wdm0006/modelprep/pkg/prep"
)

func TestRoundTrip(t *testing.T) {
	y := prep.NewStringColumn("y", 0)
	x := prep.NewFloatColumn("x", 0)
	n := prep.NewIntColumn("n", 0)
	for i, lbl := range []string{"a", "b", "a"} {
		y.Append(lbl)
		x.Append(float64(i) + 0.5)
		n.Append(int64(i))
	}
	x.SetNull(1)
	f, err := prep.FromColumns(y, x, n)
	require.NoError(t, err)

	inst, err := ToDenseInstances(f, "")
	require.NoError(t, err)
	cols, rows := inst.Size()
	assert.Equal(t, 3, cols)
	assert.Equal(t, 3, rows)
	class := inst.AllClassAttributes()
	require.Len(t, class, 1)
	assert.Equal(t, "y", class[0].GetName())

	back, err := FromDenseInstances(inst)
	require.NoError(t, err)
	assert.Equal(t, []string{"y", "x", "n"}, back.Names())
	bx, _ := back.ColumnByName("x")
	assert.True(t, bx.IsNull(1))
	assert.Equal(t, "2.5", bx.Format(2))
	by, _ := back.ColumnByName("y")
	assert.Equal(t, "b", by.Format(1))
}

func TestClassByName(t *testing.T) {
	a := prep.NewIntColumn("a", 2)
	b := prep.NewIntColumn("b", 2)
	f, err := prep.FromColumns(a, b)
	require.NoError(t, err)
	inst, err := ToDenseInstances(f, "b")
	require.NoError(t, err)
	assert.Equal(t, "b", inst.AllClassAttributes()[0].GetName())
	_, err = ToDenseInstances(f, "zz")
	assert.Error(t, err)
}
