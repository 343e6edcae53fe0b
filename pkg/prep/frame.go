package prep

import (
	"fmt"
	"strconv"
	"time"
)

// Schema describes the logical shape of a dataset.
type Schema struct {
	Columns []ColumnSchema
}

type ColumnSchema struct {
	Name     string
	Type     Kind
	Nullable bool
}

// Kind enumerates supported logical types.
type Kind int

const (
	KindInvalid Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int64"
	case KindFloat:
		return "float64"
	case KindString:
		return "object"
	case KindTime:
		return "datetime64"
	default:
		return "invalid"
	}
}

// TimeLayout is used whenever a time cell is rendered as text.
const TimeLayout = time.RFC3339

// Column is a typed, nullable column abstraction.
type Column interface {
	Name() string
	Kind() Kind
	Len() int
	IsNull(i int) bool
	SetNull(i int)
	// Format renders cell i as text; null cells render as "".
	Format(i int) string

	clone(name string) Column
	filter(keep []bool) Column
}

type BoolColumn struct {
	name  string
	data  []bool
	nulls []bool
}

func NewBoolColumn(name string, n int) *BoolColumn {
	return &BoolColumn{name: name, data: make([]bool, n), nulls: make([]bool, n)}
}
func (c *BoolColumn) Name() string           { return c.name }
func (c *BoolColumn) Kind() Kind             { return KindBool }
func (c *BoolColumn) Len() int               { return len(c.data) }
func (c *BoolColumn) IsNull(i int) bool      { return c.nulls[i] }
func (c *BoolColumn) SetNull(i int)          { c.nulls[i] = true }
func (c *BoolColumn) Get(i int) (bool, bool) { return c.data[i], !c.nulls[i] }
func (c *BoolColumn) Set(i int, v bool)      { c.data[i] = v; c.nulls[i] = false }
func (c *BoolColumn) AppendNull()            { c.data = append(c.data, false); c.nulls = append(c.nulls, true) }
func (c *BoolColumn) Append(v bool)          { c.data = append(c.data, v); c.nulls = append(c.nulls, false) }
func (c *BoolColumn) Format(i int) string {
	if c.nulls[i] {
		return ""
	}
	return strconv.FormatBool(c.data[i])
}
func (c *BoolColumn) clone(name string) Column {
	return &BoolColumn{name: name, data: append([]bool(nil), c.data...), nulls: append([]bool(nil), c.nulls...)}
}
func (c *BoolColumn) filter(keep []bool) Column {
	out := &BoolColumn{name: c.name}
	for i := range c.data {
		if keep[i] {
			out.data = append(out.data, c.data[i])
			out.nulls = append(out.nulls, c.nulls[i])
		}
	}
	return out
}

type IntColumn struct {
	name  string
	data  []int64
	nulls []bool
}

func NewIntColumn(name string, n int) *IntColumn {
	return &IntColumn{name: name, data: make([]int64, n), nulls: make([]bool, n)}
}
func (c *IntColumn) Name() string            { return c.name }
func (c *IntColumn) Kind() Kind              { return KindInt }
func (c *IntColumn) Len() int                { return len(c.data) }
func (c *IntColumn) IsNull(i int) bool       { return c.nulls[i] }
func (c *IntColumn) SetNull(i int)           { c.nulls[i] = true }
func (c *IntColumn) Get(i int) (int64, bool) { return c.data[i], !c.nulls[i] }
func (c *IntColumn) Set(i int, v int64)      { c.data[i] = v; c.nulls[i] = false }
func (c *IntColumn) AppendNull()             { c.data = append(c.data, 0); c.nulls = append(c.nulls, true) }
func (c *IntColumn) Append(v int64)          { c.data = append(c.data, v); c.nulls = append(c.nulls, false) }
func (c *IntColumn) Format(i int) string {
	if c.nulls[i] {
		return ""
	}
	return strconv.FormatInt(c.data[i], 10)
}
func (c *IntColumn) clone(name string) Column {
	return &IntColumn{name: name, data: append([]int64(nil), c.data...), nulls: append([]bool(nil), c.nulls...)}
}
func (c *IntColumn) filter(keep []bool) Column {
	out := &IntColumn{name: c.name}
	for i := range c.data {
		if keep[i] {
			out.data = append(out.data, c.data[i])
			out.nulls = append(out.nulls, c.nulls[i])
		}
	}
	return out
}

type FloatColumn struct {
	name  string
	data  []float64
	nulls []bool
}

func NewFloatColumn(name string, n int) *FloatColumn {
	return &FloatColumn{name: name, data: make([]float64, n), nulls: make([]bool, n)}
}
func (c *FloatColumn) Name() string              { return c.name }
func (c *FloatColumn) Kind() Kind                { return KindFloat }
func (c *FloatColumn) Len() int                  { return len(c.data) }
func (c *FloatColumn) IsNull(i int) bool         { return c.nulls[i] }
func (c *FloatColumn) SetNull(i int)             { c.nulls[i] = true }
func (c *FloatColumn) Get(i int) (float64, bool) { return c.data[i], !c.nulls[i] }
func (c *FloatColumn) Set(i int, v float64)      { c.data[i] = v; c.nulls[i] = false }
func (c *FloatColumn) AppendNull()               { c.data = append(c.data, 0); c.nulls = append(c.nulls, true) }
func (c *FloatColumn) Append(v float64)          { c.data = append(c.data, v); c.nulls = append(c.nulls, false) }
func (c *FloatColumn) Format(i int) string {
	if c.nulls[i] {
		return ""
	}
	return strconv.FormatFloat(c.data[i], 'g', -1, 64)
}
func (c *FloatColumn) clone(name string) Column {
	return &FloatColumn{name: name, data: append([]float64(nil), c.data...), nulls: append([]bool(nil), c.nulls...)}
}
func (c *FloatColumn) filter(keep []bool) Column {
	out := &FloatColumn{name: c.name}
	for i := range c.data {
		if keep[i] {
			out.data = append(out.data, c.data[i])
			out.nulls = append(out.nulls, c.nulls[i])
		}
	}
	return out
}

type StringColumn struct {
	name  string
	data  []string
	nulls []bool
}

func NewStringColumn(name string, n int) *StringColumn {
	return &StringColumn{name: name, data: make([]string, n), nulls: make([]bool, n)}
}
func (c *StringColumn) Name() string             { return c.name }
func (c *StringColumn) Kind() Kind               { return KindString }
func (c *StringColumn) Len() int                 { return len(c.data) }
func (c *StringColumn) IsNull(i int) bool        { return c.nulls[i] }
func (c *StringColumn) SetNull(i int)            { c.nulls[i] = true }
func (c *StringColumn) Get(i int) (string, bool) { return c.data[i], !c.nulls[i] }
func (c *StringColumn) Set(i int, v string)      { c.data[i] = v; c.nulls[i] = false }
func (c *StringColumn) AppendNull()              { c.data = append(c.data, ""); c.nulls = append(c.nulls, true) }
func (c *StringColumn) Append(v string)          { c.data = append(c.data, v); c.nulls = append(c.nulls, false) }
func (c *StringColumn) Format(i int) string {
	if c.nulls[i] {
		return ""
	}
	return c.data[i]
}
func (c *StringColumn) clone(name string) Column {
	return &StringColumn{name: name, data: append([]string(nil), c.data...), nulls: append([]bool(nil), c.nulls...)}
}
func (c *StringColumn) filter(keep []bool) Column {
	out := &StringColumn{name: c.name}
	for i := range c.data {
		if keep[i] {
			out.data = append(out.data, c.data[i])
			out.nulls = append(out.nulls, c.nulls[i])
		}
	}
	return out
}

type TimeColumn struct {
	name  string
	data  []time.Time
	nulls []bool
}

func NewTimeColumn(name string, n int) *TimeColumn {
	return &TimeColumn{name: name, data: make([]time.Time, n), nulls: make([]bool, n)}
}
func (c *TimeColumn) Name() string                { return c.name }
func (c *TimeColumn) Kind() Kind                  { return KindTime }
func (c *TimeColumn) Len() int                    { return len(c.data) }
func (c *TimeColumn) IsNull(i int) bool           { return c.nulls[i] }
func (c *TimeColumn) SetNull(i int)               { c.nulls[i] = true }
func (c *TimeColumn) Get(i int) (time.Time, bool) { return c.data[i], !c.nulls[i] }
func (c *TimeColumn) Set(i int, v time.Time)      { c.data[i] = v; c.nulls[i] = false }
func (c *TimeColumn) AppendNull() {
	c.data = append(c.data, time.Time{})
	c.nulls = append(c.nulls, true)
}
func (c *TimeColumn) Append(v time.Time) {
	c.data = append(c.data, v)
	c.nulls = append(c.nulls, false)
}
func (c *TimeColumn) Format(i int) string {
	if c.nulls[i] {
		return ""
	}
	return c.data[i].Format(TimeLayout)
}
func (c *TimeColumn) clone(name string) Column {
	return &TimeColumn{name: name, data: append([]time.Time(nil), c.data...), nulls: append([]bool(nil), c.nulls...)}
}
func (c *TimeColumn) filter(keep []bool) Column {
	out := &TimeColumn{name: c.name}
	for i := range c.data {
		if keep[i] {
			out.data = append(out.data, c.data[i])
			out.nulls = append(out.nulls, c.nulls[i])
		}
	}
	return out
}

// NullCount returns the number of missing cells in c.
func NullCount(c Column) int {
	n := 0
	for i := 0; i < c.Len(); i++ {
		if c.IsNull(i) {
			n++
		}
	}
	return n
}

// Frame is a columnar container for tabular data. All columns share the
// same row count and names are unique.
type Frame struct {
	cols  []Column
	index map[string]int // name -> col index
	nrows int
}

func NewFrame(s Schema) *Frame {
	f := &Frame{cols: make([]Column, len(s.Columns)), index: make(map[string]int)}
	for i, cs := range s.Columns {
		switch cs.Type {
		case KindBool:
			f.cols[i] = NewBoolColumn(cs.Name, 0)
		case KindInt:
			f.cols[i] = NewIntColumn(cs.Name, 0)
		case KindFloat:
			f.cols[i] = NewFloatColumn(cs.Name, 0)
		case KindString:
			f.cols[i] = NewStringColumn(cs.Name, 0)
		case KindTime:
			f.cols[i] = NewTimeColumn(cs.Name, 0)
		default:
			panic("invalid column kind")
		}
		f.index[cs.Name] = i
	}
	return f
}

// FromColumns builds a Frame that takes ownership of cols.
func FromColumns(cols ...Column) (*Frame, error) {
	f := &Frame{index: make(map[string]int, len(cols))}
	for i, c := range cols {
		if i == 0 {
			f.nrows = c.Len()
		} else if c.Len() != f.nrows {
			return nil, fmt.Errorf("column %s has %d rows, want %d", c.Name(), c.Len(), f.nrows)
		}
		if _, dup := f.index[c.Name()]; dup {
			return nil, fmt.Errorf("duplicate column: %s", c.Name())
		}
		f.index[c.Name()] = i
		f.cols = append(f.cols, c)
	}
	return f, nil
}

func (f *Frame) Schema() Schema {
	s := Schema{Columns: make([]ColumnSchema, len(f.cols))}
	for i, c := range f.cols {
		s.Columns[i] = ColumnSchema{Name: c.Name(), Type: c.Kind(), Nullable: true}
	}
	return s
}
func (f *Frame) Rows() int           { return f.nrows }
func (f *Frame) Cols() int           { return len(f.cols) }
func (f *Frame) Column(i int) Column { return f.cols[i] }

func (f *Frame) Has(name string) bool {
	_, ok := f.index[name]
	return ok
}

func (f *Frame) IndexOf(name string) int {
	if i, ok := f.index[name]; ok {
		return i
	}
	return -1
}

// Names returns column names in order.
func (f *Frame) Names() []string {
	out := make([]string, len(f.cols))
	for i, c := range f.cols {
		out[i] = c.Name()
	}
	return out
}

func (f *Frame) ColumnByName(name string) (Column, bool) {
	i, ok := f.index[name]
	if !ok {
		return nil, false
	}
	return f.cols[i], true
}

// Clone returns a deep copy.
func (f *Frame) Clone() *Frame {
	out := &Frame{cols: make([]Column, len(f.cols)), index: make(map[string]int, len(f.cols)), nrows: f.nrows}
	for i, c := range f.cols {
		out.cols[i] = c.clone(c.Name())
		out.index[c.Name()] = i
	}
	return out
}

// Head returns a copy holding at most the first n rows.
func (f *Frame) Head(n int) *Frame {
	if n >= f.nrows {
		return f.Clone()
	}
	if n < 0 {
		n = 0
	}
	keep := make([]bool, f.nrows)
	for i := 0; i < n; i++ {
		keep[i] = true
	}
	out := f.Clone()
	_ = out.FilterRows(keep)
	return out
}

// FilterRows retains rows where keep is true.
func (f *Frame) FilterRows(keep []bool) error {
	if len(keep) != f.nrows {
		return fmt.Errorf("row mask has %d entries, frame has %d rows", len(keep), f.nrows)
	}
	n := 0
	for _, k := range keep {
		if k {
			n++
		}
	}
	for i, c := range f.cols {
		f.cols[i] = c.filter(keep)
	}
	f.nrows = n
	return nil
}

// DropColumns removes the named columns.
func (f *Frame) DropColumns(names ...string) error {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		if _, ok := f.index[n]; !ok {
			return fmt.Errorf("unknown column: %s", n)
		}
		drop[n] = true
	}
	kept := f.cols[:0:0]
	for _, c := range f.cols {
		if !drop[c.Name()] {
			kept = append(kept, c)
		}
	}
	f.cols = kept
	f.reindex()
	return nil
}

// ReplaceColumn swaps the column called name for c at the same position.
// c may carry a different kind; its name must be name.
func (f *Frame) ReplaceColumn(name string, c Column) error {
	i, ok := f.index[name]
	if !ok {
		return fmt.Errorf("unknown column: %s", name)
	}
	if c.Name() != name {
		return fmt.Errorf("replacement for %s is named %s", name, c.Name())
	}
	if c.Len() != f.nrows {
		return fmt.Errorf("column %s has %d rows, want %d", name, c.Len(), f.nrows)
	}
	f.cols[i] = c
	return nil
}

// AddColumn appends c as the last column.
func (f *Frame) AddColumn(c Column) error {
	if _, dup := f.index[c.Name()]; dup {
		return fmt.Errorf("duplicate column: %s", c.Name())
	}
	if len(f.cols) == 0 {
		f.nrows = c.Len()
	} else if c.Len() != f.nrows {
		return fmt.Errorf("column %s has %d rows, want %d", c.Name(), c.Len(), f.nrows)
	}
	f.index[c.Name()] = len(f.cols)
	f.cols = append(f.cols, c)
	return nil
}

// RenameColumns applies old -> new as one batch.
func (f *Frame) RenameColumns(renames map[string]string) error {
	next := make(map[string]bool, len(f.cols))
	for _, c := range f.cols {
		name := c.Name()
		if nn, ok := renames[name]; ok {
			name = nn
		}
		if next[name] {
			return fmt.Errorf("duplicate column after rename: %s", name)
		}
		next[name] = true
	}
	for old := range renames {
		if _, ok := f.index[old]; !ok {
			return fmt.Errorf("unknown column: %s", old)
		}
	}
	for i, c := range f.cols {
		if nn, ok := renames[c.Name()]; ok {
			f.cols[i] = c.clone(nn)
		}
	}
	f.reindex()
	return nil
}

// MoveToFront makes name the first column, keeping the others in order.
func (f *Frame) MoveToFront(name string) error {
	i, ok := f.index[name]
	if !ok {
		return fmt.Errorf("unknown column: %s", name)
	}
	c := f.cols[i]
	copy(f.cols[1:i+1], f.cols[:i])
	f.cols[0] = c
	f.reindex()
	return nil
}

func (f *Frame) reindex() {
	f.index = make(map[string]int, len(f.cols))
	for i, c := range f.cols {
		f.index[c.Name()] = i
	}
}

// AppendNullRow appends a row with all-null values.
func (f *Frame) AppendNullRow() {
	for _, c := range f.cols {
		switch col := c.(type) {
		case *BoolColumn:
			col.AppendNull()
		case *IntColumn:
			col.AppendNull()
		case *FloatColumn:
			col.AppendNull()
		case *StringColumn:
			col.AppendNull()
		case *TimeColumn:
			col.AppendNull()
		default:
			panic("unknown column type")
		}
	}
	f.nrows++
}

// SetCell sets a single cell value by name (row must exist).
func (f *Frame) SetCell(row int, name string, v any) error {
	i, ok := f.index[name]
	if !ok {
		return fmt.Errorf("unknown column: %s", name)
	}
	c := f.cols[i]
	switch col := c.(type) {
	case *BoolColumn:
		if v == nil {
			col.SetNull(row)
			return nil
		}
		b, ok := v.(bool)
		if !ok {
			return fmt.Errorf("column %s expects bool", name)
		}
		col.Set(row, b)
	case *IntColumn:
		if v == nil {
			col.SetNull(row)
			return nil
		}
		switch t := v.(type) {
		case int:
			col.Set(row, int64(t))
		case int64:
			col.Set(row, t)
		case float64:
			col.Set(row, int64(t))
		default:
			return fmt.Errorf("column %s expects int/int64", name)
		}
	case *FloatColumn:
		if v == nil {
			col.SetNull(row)
			return nil
		}
		switch t := v.(type) {
		case float32:
			col.Set(row, float64(t))
		case float64:
			col.Set(row, t)
		case int:
			col.Set(row, float64(t))
		case int64:
			col.Set(row, float64(t))
		default:
			return fmt.Errorf("column %s expects float64", name)
		}
	case *StringColumn:
		if v == nil {
			col.SetNull(row)
			return nil
		}
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("column %s expects string", name)
		}
		col.Set(row, s)
	case *TimeColumn:
		if v == nil {
			col.SetNull(row)
			return nil
		}
		t, ok := v.(time.Time)
		if !ok {
			return fmt.Errorf("column %s expects time.Time", name)
		}
		col.Set(row, t)
	default:
		return fmt.Errorf("unknown column kind")
	}
	return nil
}
