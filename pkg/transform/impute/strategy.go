// Package impute resolves missing cells in a single column, either by
// dropping rows or by substituting a value.
package impute

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/wdm0006/modelprep/pkg/prep"
)

// Strategy names an imputation as the operator chooses it.
type Strategy string

const (
	DropNA   Strategy = "dropna"
	Mean     Strategy = "fill with mean"
	Median   Strategy = "fill with median"
	Constant Strategy = "fill with specific number"
	// Skip leaves the missing cells in place.
	Skip Strategy = "skip"
)

var Strategies = []Strategy{DropNA, Mean, Median, Constant}

var errNoValues = errors.New("no present values")

func ParseStrategy(s string) (Strategy, error) {
	if Strategy(s) == Skip {
		return Skip, nil
	}
	for _, st := range Strategies {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown fill strategy %q", s)
}

// For returns the transform implementing s on column. value is only used
// by Constant. Skip returns nil.
func For(s Strategy, column string, value float64) (prep.Transform, error) {
	switch s {
	case DropNA:
		return &DropRows{Column: column}, nil
	case Mean:
		return &MeanFill{Column: column}, nil
	case Median:
		return &MedianFill{Column: column}, nil
	case Constant:
		return &ConstantFill{Column: column, Value: value}, nil
	case Skip:
		return nil, nil
	}
	return nil, prep.Invalid("impute", column, "unknown strategy %q", s)
}

func lookup(op string, f *prep.Frame, name string) (prep.Column, error) {
	col, ok := f.ColumnByName(name)
	if !ok {
		return nil, prep.Invalid(op, name, "no such column")
	}
	return col, nil
}

// present collects the non-missing values of a numeric or time column as
// float64; times are unix nanoseconds.
func present(op string, col prep.Column) ([]float64, error) {
	var vals []float64
	switch c := col.(type) {
	case *prep.FloatColumn:
		for i := 0; i < c.Len(); i++ {
			if v, ok := c.Get(i); ok {
				vals = append(vals, v)
			}
		}
	case *prep.IntColumn:
		for i := 0; i < c.Len(); i++ {
			if v, ok := c.Get(i); ok {
				vals = append(vals, float64(v))
			}
		}
	case *prep.TimeColumn:
		for i := 0; i < c.Len(); i++ {
			if v, ok := c.Get(i); ok {
				vals = append(vals, float64(v.UnixNano()))
			}
		}
	default:
		return nil, &prep.ParseError{Op: op, Column: col.Name(), Row: -1,
			Err: fmt.Errorf("cannot average %s values", col.Kind())}
	}
	if len(vals) == 0 {
		return nil, &prep.ParseError{Op: op, Column: col.Name(), Row: -1, Err: errNoValues}
	}
	return vals, nil
}

// fill writes v into every missing cell of col, promoting int columns to
// float when v is not an int64. It returns the column to store.
func fill(col prep.Column, v float64) prep.Column {
	switch c := col.(type) {
	case *prep.FloatColumn:
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				c.Set(i, v)
			}
		}
		return c
	case *prep.IntColumn:
		if v == math.Trunc(v) && v >= math.MinInt64 && v < math.MaxInt64 {
			for i := 0; i < c.Len(); i++ {
				if c.IsNull(i) {
					c.Set(i, int64(v))
				}
			}
			return c
		}
		out := prep.NewFloatColumn(c.Name(), c.Len())
		for i := 0; i < c.Len(); i++ {
			if x, ok := c.Get(i); ok {
				out.Set(i, float64(x))
			} else {
				out.Set(i, v)
			}
		}
		return out
	case *prep.TimeColumn:
		ts := time.Unix(0, int64(v)).UTC()
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				c.Set(i, ts)
			}
		}
		return c
	}
	return col
}
