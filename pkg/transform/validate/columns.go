package validate

import (
	"github.com/wdm0006/modelprep/pkg/prep"
)

// Columns checks that every name exists in f and is listed once.
func Columns(op string, f *prep.Frame, names ...string) error {
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if !f.Has(n) {
			return prep.Invalid(op, n, "no such column")
		}
		if _, dup := seen[n]; dup {
			return prep.Invalid(op, n, "selected more than once")
		}
		seen[n] = struct{}{}
	}
	return nil
}

// Numeric checks that name exists and holds int or float values.
func Numeric(op string, f *prep.Frame, name string) error {
	col, ok := f.ColumnByName(name)
	if !ok {
		return prep.Invalid(op, name, "no such column")
	}
	switch col.Kind() {
	case prep.KindInt, prep.KindFloat:
		return nil
	}
	return prep.Invalid(op, name, "numeric cutoff does not apply to %s values", col.Kind())
}
