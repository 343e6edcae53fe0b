// Package golearn converts between Frames and golearn DenseInstances so a
// cleaned dataset can be handed straight to a golearn model.
package golearn

import (
	"fmt"
	"math"

	"github.com/sjwhitworth/golearn/base"

	"github.com/wdm0006/modelprep/pkg/prep"
)

// ToDenseInstances converts a Frame into golearn DenseInstances. Numeric,
// bool and time columns become float attributes (times as unix seconds,
// missing as NaN); everything else is categorical. class names the class
// attribute; "" selects the first column, where the dependent variable
// sits after reordering.
func ToDenseInstances(f *prep.Frame, class string) (*base.DenseInstances, error) {
	if f.Cols() == 0 {
		return nil, fmt.Errorf("frame has no columns")
	}
	classIdx := 0
	if class != "" {
		if classIdx = f.IndexOf(class); classIdx < 0 {
			return nil, fmt.Errorf("unknown class column: %s", class)
		}
	}
	attrs := make([]base.Attribute, f.Cols())
	for i := 0; i < f.Cols(); i++ {
		col := f.Column(i)
		switch col.Kind() {
		case prep.KindString:
			ca := new(base.CategoricalAttribute)
			ca.SetName(col.Name())
			attrs[i] = ca
		default:
			attrs[i] = base.NewFloatAttribute(col.Name())
		}
	}
	inst := base.NewDenseInstances()
	specs := make([]base.AttributeSpec, len(attrs))
	for i, a := range attrs {
		specs[i] = inst.AddAttribute(a)
	}
	if err := inst.Extend(f.Rows()); err != nil {
		return nil, err
	}
	nan := base.PackFloatToBytes(math.NaN())
	for r := 0; r < f.Rows(); r++ {
		for c := 0; c < f.Cols(); c++ {
			switch col := f.Column(c).(type) {
			case *prep.StringColumn:
				v, _ := col.Get(r) // missing is the empty category
				inst.Set(specs[c], r, attrs[c].GetSysValFromString(v))
			default:
				v, ok := asFloat(col, r)
				if !ok {
					inst.Set(specs[c], r, nan)
					continue
				}
				inst.Set(specs[c], r, base.PackFloatToBytes(v))
			}
		}
	}
	if err := inst.AddClassAttribute(attrs[classIdx]); err != nil {
		return nil, err
	}
	return inst, nil
}

func asFloat(c prep.Column, r int) (float64, bool) {
	switch col := c.(type) {
	case *prep.FloatColumn:
		return col.Get(r)
	case *prep.IntColumn:
		v, ok := col.Get(r)
		return float64(v), ok
	case *prep.BoolColumn:
		v, ok := col.Get(r)
		if v {
			return 1, ok
		}
		return 0, ok
	case *prep.TimeColumn:
		v, ok := col.Get(r)
		return float64(v.Unix()), ok
	}
	return 0, false
}

// FromDenseInstances converts golearn DenseInstances into a Frame. Float
// attributes become float columns with NaN read as missing.
func FromDenseInstances(inst *base.DenseInstances) (*prep.Frame, error) {
	attrs := inst.AllAttributes()
	_, nrows := inst.Size()
	cols := make([]prep.Column, len(attrs))
	for i, a := range attrs {
		spec, err := inst.GetAttribute(a)
		if err != nil {
			return nil, err
		}
		if a.GetType() == base.Float64Type {
			c := prep.NewFloatColumn(a.GetName(), 0)
			for r := 0; r < nrows; r++ {
				v := base.UnpackBytesToFloat(inst.Get(spec, r))
				if math.IsNaN(v) {
					c.AppendNull()
				} else {
					c.Append(v)
				}
			}
			cols[i] = c
			continue
		}
		c := prep.NewStringColumn(a.GetName(), 0)
		for r := 0; r < nrows; r++ {
			v := a.GetStringFromSysVal(inst.Get(spec, r))
			if v == "" {
				c.AppendNull()
			} else {
				c.Append(v)
			}
		}
		cols[i] = c
	}
	return prep.FromColumns(cols...)
}
