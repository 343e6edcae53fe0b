package impute

import (
	"context"

	"github.com/wdm0006/modelprep/pkg/prep"
)

// DropRows removes every row where Column is missing.
type DropRows struct{ Column string }

func (t *DropRows) Name() string { return string(DropNA) }

func (t *DropRows) Apply(ctx context.Context, f *prep.Frame) (*prep.Frame, error) {
	col, err := lookup(t.Name(), f, t.Column)
	if err != nil {
		return f, err
	}
	keep := make([]bool, col.Len())
	for i := range keep {
		keep[i] = !col.IsNull(i)
	}
	return f, f.FilterRows(keep)
}
