package coerce

import (
	"context"

	"github.com/wdm0006/modelprep/pkg/classify"
	"github.com/wdm0006/modelprep/pkg/prep"
)

// Categorical replaces each distinct value with its zero-based index in
// first-seen order. Missing cells stay missing. After Apply, Codes holds
// the values in code order; it is informational and never persisted.
type Categorical struct {
	Column string
	Codes  []string
}

func (t *Categorical) Name() string { return string(Mapping) }

func (t *Categorical) Apply(ctx context.Context, f *prep.Frame) (*prep.Frame, error) {
	col, err := lookup(t.Name(), f, t.Column)
	if err != nil {
		return f, err
	}
	// already coded: re-applying must not reshuffle codes
	if classify.IsNumeric(col.Kind()) {
		return f, nil
	}
	vals, present := cells(col)
	mapping := map[string]int64{}
	var order []string
	out := prep.NewIntColumn(t.Column, len(vals))
	for i, v := range vals {
		if !present[i] {
			out.SetNull(i)
			continue
		}
		code, ok := mapping[v]
		if !ok {
			code = int64(len(order))
			mapping[v] = code
			order = append(order, v)
		}
		out.Set(i, code)
	}
	if err := f.ReplaceColumn(t.Column, out); err != nil {
		return f, err
	}
	t.Codes = order
	return f, nil
}
