package impute

import (
	"context"

	"github.com/wdm0006/modelprep/pkg/prep"
	"gonum.org/v1/gonum/stat"
)

// MeanFill fills missing cells with the mean of the present values.
type MeanFill struct{ Column string }

func (t *MeanFill) Name() string { return string(Mean) }

func (t *MeanFill) Apply(ctx context.Context, f *prep.Frame) (*prep.Frame, error) {
	col, err := lookup(t.Name(), f, t.Column)
	if err != nil {
		return f, err
	}
	vals, err := present(t.Name(), col)
	if err != nil {
		return f, err
	}
	mean := stat.Mean(vals, nil)
	if col.Kind() == prep.KindInt {
		// the mean of ints is a float even when it happens to be whole
		out := prep.NewFloatColumn(t.Column, col.Len())
		ic := col.(*prep.IntColumn)
		for i := 0; i < ic.Len(); i++ {
			if v, ok := ic.Get(i); ok {
				out.Set(i, float64(v))
			} else {
				out.Set(i, mean)
			}
		}
		return f, f.ReplaceColumn(t.Column, out)
	}
	return f, f.ReplaceColumn(t.Column, fill(col, mean))
}
