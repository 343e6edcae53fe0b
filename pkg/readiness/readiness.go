// Package readiness reports whether a cleaned frame can be fed to a model
// as is.
package readiness

import (
	"fmt"
	"sort"
	"strings"

	lg "github.com/wdm0006/modelprep/adapters/golearn"
	"github.com/wdm0006/modelprep/pkg/classify"
	"github.com/wdm0006/modelprep/pkg/prep"
)

// Report is informational; nothing in it blocks export.
type Report struct {
	Rows       int
	Cols       int
	NonNumeric []string
	Missing    map[string]int
	Class      string
	// ConvertErr is set when the frame does not convert to golearn
	// DenseInstances.
	ConvertErr error
}

// Ready reports that every column is numeric, nothing is missing and the
// golearn conversion succeeded.
func (r Report) Ready() bool {
	return len(r.NonNumeric) == 0 && len(r.Missing) == 0 && r.ConvertErr == nil
}

// Check classifies f and tries the golearn conversion with dependent as
// the class attribute ("" means the first column).
func Check(f *prep.Frame, dependent string) Report {
	c := classify.Classify(f)
	r := Report{Rows: f.Rows(), Cols: f.Cols(), NonNumeric: c.NonNumeric(), Class: dependent}
	for _, name := range c.MissingColumns() {
		if r.Missing == nil {
			r.Missing = map[string]int{}
		}
		r.Missing[name] = c.Missing(name)
	}
	if r.Class == "" && f.Cols() > 0 {
		r.Class = f.Column(0).Name()
	}
	if _, err := lg.ToDenseInstances(f, dependent); err != nil {
		r.ConvertErr = err
	}
	return r
}

func (r Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d rows x %d columns, class attribute %q\n", r.Rows, r.Cols, r.Class)
	if len(r.NonNumeric) > 0 {
		fmt.Fprintf(&b, "non-numeric columns: %s\n", strings.Join(r.NonNumeric, ", "))
	}
	if len(r.Missing) > 0 {
		var parts []string
		for _, name := range sortedKeys(r.Missing) {
			parts = append(parts, fmt.Sprintf("%s=%d", name, r.Missing[name]))
		}
		fmt.Fprintf(&b, "missing cells: %s\n", strings.Join(parts, ", "))
	}
	if r.ConvertErr != nil {
		fmt.Fprintf(&b, "golearn conversion failed: %v\n", r.ConvertErr)
	}
	if r.Ready() {
		b.WriteString("model-ready\n")
	}
	return b.String()
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
