package validate

import (
	"strings"

	"github.com/wdm0006/modelprep/pkg/prep"
)

// Renames checks a batch of renames against f. from[i] becomes to[i]; all
// old names refer to the frame before any rename is applied.
func Renames(op string, f *prep.Frame, from, to []string) error {
	if len(from) != len(to) {
		return prep.Invalid(op, "", "%d old names but %d new names", len(from), len(to))
	}
	if err := Columns(op, f, from...); err != nil {
		return err
	}
	next := make(map[string]string, len(from))
	for i, old := range from {
		if strings.TrimSpace(to[i]) == "" {
			return prep.Invalid(op, old, "new name is empty")
		}
		next[old] = to[i]
	}
	final := make(map[string]string, f.Cols())
	for _, name := range f.Names() {
		out := name
		if nn, ok := next[name]; ok {
			out = nn
		}
		if prev, clash := final[out]; clash {
			return prep.Invalid(op, name, "would be named %q, same as column %s", out, prev)
		}
		final[out] = name
	}
	return nil
}

// NewNames checks that names can be added to f without colliding.
func NewNames(op, column string, f *prep.Frame, names []string) error {
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if f.Has(n) {
			return prep.Invalid(op, column, "generated column %q already exists", n)
		}
		if _, dup := seen[n]; dup {
			return prep.Invalid(op, column, "generated column %q twice", n)
		}
		seen[n] = struct{}{}
	}
	return nil
}
