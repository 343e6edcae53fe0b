package coerce

import (
	"context"
	"strconv"

	"github.com/wdm0006/modelprep/pkg/classify"
	"github.com/wdm0006/modelprep/pkg/prep"
)

// Numeric parses every present cell as a number. The result is an int
// column when every value is integral text, otherwise a float column.
type Numeric struct{ Column string }

func (t *Numeric) Name() string { return string(ToNumeric) }

func (t *Numeric) Apply(ctx context.Context, f *prep.Frame) (*prep.Frame, error) {
	col, err := lookup(t.Name(), f, t.Column)
	if err != nil {
		return f, err
	}
	if classify.IsNumeric(col.Kind()) {
		return f, nil
	}
	if b, ok := col.(*prep.BoolColumn); ok {
		out := prep.NewIntColumn(t.Column, b.Len())
		for i := 0; i < b.Len(); i++ {
			v, ok := b.Get(i)
			switch {
			case !ok:
				out.SetNull(i)
			case v:
				out.Set(i, 1)
			default:
				out.Set(i, 0)
			}
		}
		return f, f.ReplaceColumn(t.Column, out)
	}

	vals, present := cells(col)
	integral := true
	for i, v := range vals {
		if !present[i] {
			continue
		}
		if _, err := strconv.ParseInt(v, 10, 64); err == nil {
			continue
		}
		integral = false
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return f, &prep.ParseError{Op: t.Name(), Column: t.Column, Row: i, Value: v, Err: strconv.ErrSyntax}
		}
	}

	var out prep.Column
	if integral {
		ic := prep.NewIntColumn(t.Column, len(vals))
		for i, v := range vals {
			if !present[i] {
				ic.SetNull(i)
				continue
			}
			x, _ := strconv.ParseInt(v, 10, 64)
			ic.Set(i, x)
		}
		out = ic
	} else {
		fc := prep.NewFloatColumn(t.Column, len(vals))
		for i, v := range vals {
			if !present[i] {
				fc.SetNull(i)
				continue
			}
			x, _ := strconv.ParseFloat(v, 64)
			fc.Set(i, x)
		}
		out = fc
	}
	return f, f.ReplaceColumn(t.Column, out)
}
