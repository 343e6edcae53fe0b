package impute

import (
	"context"
	"sort"

	"github.com/wdm0006/modelprep/pkg/prep"
)

// MedianFill fills missing cells with the median of the present values.
// An even count averages the two middle values.
type MedianFill struct{ Column string }

func (t *MedianFill) Name() string { return string(Median) }

func (t *MedianFill) Apply(ctx context.Context, f *prep.Frame) (*prep.Frame, error) {
	col, err := lookup(t.Name(), f, t.Column)
	if err != nil {
		return f, err
	}
	vals, err := present(t.Name(), col)
	if err != nil {
		return f, err
	}
	return f, f.ReplaceColumn(t.Column, fill(col, median(vals)))
}

func median(vals []float64) float64 {
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
