package coerce

import (
	"strings"

	"github.com/wdm0006/modelprep/pkg/prep"
)

// cells returns the trimmed text of every cell and whether it is present.
func cells(c prep.Column) ([]string, []bool) {
	vals := make([]string, c.Len())
	present := make([]bool, c.Len())
	for i := 0; i < c.Len(); i++ {
		if c.IsNull(i) {
			continue
		}
		vals[i] = strings.TrimSpace(c.Format(i))
		present[i] = true
	}
	return vals, present
}

func lookup(op string, f *prep.Frame, name string) (prep.Column, error) {
	col, ok := f.ColumnByName(name)
	if !ok {
		return nil, prep.Invalid(op, name, "no such column")
	}
	return col, nil
}
