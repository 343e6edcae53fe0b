package readiness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wdm0006/modelprep/pkg/prep"
)

func TestReady(t *testing.T) {
	y := prep.NewIntColumn("y", 0)
	x := prep.NewFloatColumn("x", 0)
	y.Append(1)
	x.Append(0.5)
	f, err := prep.FromColumns(y, x)
	require.NoError(t, err)
	r := Check(f, "")
	assert.True(t, r.Ready())
	assert.Equal(t, "y", r.Class)
	assert.Contains(t, r.String(), "model-ready")
}

func TestNotReady(t *testing.T) {
	y := prep.NewIntColumn("y", 0)
	s := prep.NewStringColumn("s", 0)
	y.AppendNull()
	s.Append("a")
	f, err := prep.FromColumns(y, s)
	require.NoError(t, err)
	r := Check(f, "y")
	assert.False(t, r.Ready())
	assert.Equal(t, []string{"s"}, r.NonNumeric)
	assert.Equal(t, map[string]int{"y": 1}, r.Missing)
	assert.Contains(t, r.String(), "missing cells: y=1")

	r = Check(f, "gone")
	assert.Error(t, r.ConvertErr)
}
