package outliers

import (
	"context"
	"fmt"
	"math"

	"github.com/wdm0006/modelprep/pkg/prep"
	"github.com/wdm0006/modelprep/pkg/transform/validate"
)

// Op is the comparison that selects rows to remove.
type Op string

const (
	Greater      Op = ">"
	GreaterEqual Op = ">="
	Less         Op = "<"
	LessEqual    Op = "<="
)

var Ops = []Op{Greater, GreaterEqual, Less, LessEqual}

func ParseOp(s string) (Op, error) {
	for _, op := range Ops {
		if string(op) == s {
			return op, nil
		}
	}
	return "", fmt.Errorf("unknown comparison operator %q", s)
}

// Removes reports whether v op cutoff holds, i.e. the row is an outlier.
func (o Op) Removes(v, cutoff float64) bool {
	switch o {
	case Greater:
		return v > cutoff
	case GreaterEqual:
		return v >= cutoff
	case Less:
		return v < cutoff
	case LessEqual:
		return v <= cutoff
	}
	return false
}

// Filter removes rows where column Op Cutoff, keeping the complement.
// Columns are applied in order and narrow the same row set. A missing
// cell never satisfies the complement, so its row goes too.
type Filter struct {
	Columns []string
	Op      Op
	Cutoff  float64
}

func (t *Filter) Name() string { return "remove_outliers" }

func (t *Filter) Apply(ctx context.Context, f *prep.Frame) (*prep.Frame, error) {
	if len(t.Columns) == 0 {
		return f, nil
	}
	if _, err := ParseOp(string(t.Op)); err != nil {
		return f, prep.Invalid(t.Name(), "", "%v", err)
	}
	if math.IsNaN(t.Cutoff) || math.IsInf(t.Cutoff, 0) {
		return f, prep.Invalid(t.Name(), "", "cutoff must be finite, got %v", t.Cutoff)
	}
	if err := validate.Columns(t.Name(), f, t.Columns...); err != nil {
		return f, err
	}
	for _, name := range t.Columns {
		if err := validate.Numeric(t.Name(), f, name); err != nil {
			return f, err
		}
	}
	keep := make([]bool, f.Rows())
	for i := range keep {
		keep[i] = true
	}
	for _, name := range t.Columns {
		col, _ := f.ColumnByName(name)
		switch c := col.(type) {
		case *prep.FloatColumn:
			for i := 0; i < c.Len(); i++ {
				if !keep[i] {
					continue
				}
				v, ok := c.Get(i)
				keep[i] = ok && !t.Op.Removes(v, t.Cutoff)
			}
		case *prep.IntColumn:
			for i := 0; i < c.Len(); i++ {
				if !keep[i] {
					continue
				}
				v, ok := c.Get(i)
				keep[i] = ok && !t.Op.Removes(float64(v), t.Cutoff)
			}
		}
	}
	if err := f.FilterRows(keep); err != nil {
		return f, err
	}
	return f, nil
}
