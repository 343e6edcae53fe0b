// Package classify partitions a frame's columns into numeric and
// non-numeric and counts missing cells per column.
package classify

import (
	"github.com/wdm0006/modelprep/pkg/prep"
)

// ColumnInfo is the classification of a single column.
type ColumnInfo struct {
	Name    string
	Kind    prep.Kind
	Missing int
}

// Report is computed from one frame state. It must be recomputed after any
// stage that mutates the frame.
type Report struct {
	Rows    int
	Columns []ColumnInfo
}

// IsNumeric reports whether k counts as model-ready (numeric or datetime).
func IsNumeric(k prep.Kind) bool {
	switch k {
	case prep.KindInt, prep.KindFloat, prep.KindTime:
		return true
	}
	return false
}

func Classify(f *prep.Frame) Report {
	r := Report{Rows: f.Rows(), Columns: make([]ColumnInfo, f.Cols())}
	for i := 0; i < f.Cols(); i++ {
		c := f.Column(i)
		r.Columns[i] = ColumnInfo{Name: c.Name(), Kind: c.Kind(), Missing: prep.NullCount(c)}
	}
	return r
}

// NonNumeric returns the names of columns whose kind is not numeric or
// datetime, in column order.
func (r Report) NonNumeric() []string {
	var out []string
	for _, c := range r.Columns {
		if !IsNumeric(c.Kind) {
			out = append(out, c.Name)
		}
	}
	return out
}

// MissingColumns returns the names of columns with at least one missing
// cell, in column order.
func (r Report) MissingColumns() []string {
	var out []string
	for _, c := range r.Columns {
		if c.Missing > 0 {
			out = append(out, c.Name)
		}
	}
	return out
}

func (r Report) Missing(name string) int {
	for _, c := range r.Columns {
		if c.Name == name {
			return c.Missing
		}
	}
	return 0
}

func (r Report) TotalMissing() int {
	n := 0
	for _, c := range r.Columns {
		n += c.Missing
	}
	return n
}

func (r Report) HasMissing() bool { return r.TotalMissing() > 0 }
