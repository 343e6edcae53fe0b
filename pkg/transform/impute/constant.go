package impute

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/wdm0006/modelprep/pkg/prep"
)

// ConstantFill fills missing cells with an operator-supplied number.
type ConstantFill struct {
	Column string
	Value  float64
}

func (t *ConstantFill) Name() string { return string(Constant) }

func (t *ConstantFill) Apply(ctx context.Context, f *prep.Frame) (*prep.Frame, error) {
	if math.IsNaN(t.Value) || math.IsInf(t.Value, 0) {
		return f, prep.Invalid(t.Name(), t.Column, "fill value must be finite, got %v", t.Value)
	}
	col, err := lookup(t.Name(), f, t.Column)
	if err != nil {
		return f, err
	}
	switch c := col.(type) {
	case *prep.FloatColumn, *prep.IntColumn:
		return f, f.ReplaceColumn(t.Column, fill(col, t.Value))
	case *prep.StringColumn:
		vv := strconv.FormatFloat(t.Value, 'g', -1, 64)
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				c.Set(i, vv)
			}
		}
		return f, nil
	}
	return f, &prep.ParseError{Op: t.Name(), Column: t.Column, Row: -1,
		Value: strconv.FormatFloat(t.Value, 'g', -1, 64),
		Err:   fmt.Errorf("a number cannot fill %s values", col.Kind())}
}
