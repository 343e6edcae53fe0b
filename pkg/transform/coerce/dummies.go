package coerce

import (
	"context"
	"sort"

	"github.com/wdm0006/modelprep/pkg/prep"
	"github.com/wdm0006/modelprep/pkg/transform/validate"
)

// Dummies expands a column into 0/1 indicator columns named
// {column}_{value}, one per distinct value except the lexically first,
// which is the reference. Indicators are appended after the existing
// columns and the source column is removed.
type Dummies struct{ Column string }

func (t *Dummies) Name() string { return string(OneHot) }

func (t *Dummies) Apply(ctx context.Context, f *prep.Frame) (*prep.Frame, error) {
	col, err := lookup(t.Name(), f, t.Column)
	if err != nil {
		return f, err
	}
	vals, present := cells(col)
	seen := map[string]bool{}
	var levels []string
	for i, v := range vals {
		if present[i] && !seen[v] {
			seen[v] = true
			levels = append(levels, v)
		}
	}
	sort.Strings(levels)
	if len(levels) > 0 {
		levels = levels[1:]
	}

	names := make([]string, len(levels))
	for i, lv := range levels {
		names[i] = t.Column + "_" + lv
	}
	probe := f.Clone()
	if err := probe.DropColumns(t.Column); err != nil {
		return f, err
	}
	if err := validate.NewNames(t.Name(), t.Column, probe, names); err != nil {
		return f, err
	}

	indicators := make([]prep.Column, len(levels))
	for j, lv := range levels {
		ic := prep.NewIntColumn(names[j], len(vals))
		for i, v := range vals {
			if present[i] && v == lv {
				ic.Set(i, 1)
			}
		}
		indicators[j] = ic
	}
	if err := f.DropColumns(t.Column); err != nil {
		return f, err
	}
	for _, ic := range indicators {
		if err := f.AddColumn(ic); err != nil {
			return f, err
		}
	}
	return f, nil
}
