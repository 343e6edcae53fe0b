package coerce

import (
	"context"
	"errors"
	"time"

	"github.com/wdm0006/modelprep/pkg/prep"
)

// DefaultLayouts are tried in order for every cell.
var DefaultLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
	"1/2/2006",
	"02-Jan-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 January 2006",
	time.RFC1123Z,
	time.RFC1123,
}

var errNoLayout = errors.New("no known date/time layout matches")

// Datetime parses every present cell as a date or time in UTC.
type Datetime struct {
	Column  string
	Layouts []string
}

func (t *Datetime) Name() string { return string(ToDatetime) }

func (t *Datetime) Apply(ctx context.Context, f *prep.Frame) (*prep.Frame, error) {
	col, err := lookup(t.Name(), f, t.Column)
	if err != nil {
		return f, err
	}
	switch col.Kind() {
	case prep.KindTime:
		return f, nil
	case prep.KindInt, prep.KindFloat:
		return f, prep.Invalid(t.Name(), t.Column, "already %s", col.Kind())
	}
	layouts := t.Layouts
	if len(layouts) == 0 {
		layouts = DefaultLayouts
	}
	vals, present := cells(col)
	out := prep.NewTimeColumn(t.Column, len(vals))
	for i, v := range vals {
		if !present[i] {
			out.SetNull(i)
			continue
		}
		ts, ok := parseTime(v, layouts)
		if !ok {
			return f, &prep.ParseError{Op: t.Name(), Column: t.Column, Row: i, Value: v, Err: errNoLayout}
		}
		out.Set(i, ts)
	}
	return f, f.ReplaceColumn(t.Column, out)
}

func parseTime(v string, layouts []string) (time.Time, bool) {
	for _, l := range layouts {
		if ts, err := time.ParseInLocation(l, v, time.UTC); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
