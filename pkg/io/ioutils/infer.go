package ioutils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/wdm0006/modelprep/pkg/prep"
)

// DefaultNAValues are the cell texts read as missing.
var DefaultNAValues = []string{"", "NA", "N/A", "NaN", "nan", "null", "NULL", "None", "#N/A", "n/a", "<NA>"}

var numre = regexp.MustCompile(`^[-+]?[0-9]*\.?[0-9]+([eE][-+]?[0-9]+)?$`)

// NASet turns a list of NA markers into a lookup set. A nil list means
// DefaultNAValues; the empty string is always missing.
func NASet(values []string) map[string]struct{} {
	if values == nil {
		values = DefaultNAValues
	}
	set := make(map[string]struct{}, len(values)+1)
	set[""] = struct{}{}
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// Header cleans raw header cells: a leading BOM is stripped, empty names
// become "Unnamed: i" and repeated names get a ".n" suffix.
func Header(raw []string) []string {
	out := make([]string, len(raw))
	used := make(map[string]bool, len(raw))
	for i, h := range raw {
		h = strings.TrimSpace(strings.ToValidUTF8(h, "?"))
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		if h == "" {
			h = "Unnamed: " + strconv.Itoa(i)
		}
		name := h
		for n := 1; used[name]; n++ {
			name = h + "." + strconv.Itoa(n)
		}
		used[name] = true
		out[i] = name
	}
	return out
}

// InferSchema assigns a kind to every column by looking at all rows.
// A column is Int if every present cell is an integer, Float if every
// present cell is a number, Bool if every present cell is true/false and
// String otherwise. A column with no present cells is Float.
func InferSchema(names []string, rows [][]string, na map[string]struct{}) prep.Schema {
	s := prep.Schema{Columns: make([]prep.ColumnSchema, len(names))}
	for c, name := range names {
		num, integer, boolean, str := 0, 0, 0, 0
		for _, row := range rows {
			v, ok := cell(row, c, na)
			if !ok {
				continue
			}
			switch {
			case numre.MatchString(v):
				num++
				if _, err := strconv.ParseInt(v, 10, 64); err == nil {
					integer++
				}
			case isBool(v):
				boolean++
			default:
				str++
			}
		}
		kind := prep.KindString
		switch {
		case str > 0:
		case num > 0 && boolean == 0 && integer == num:
			kind = prep.KindInt
		case boolean == 0:
			kind = prep.KindFloat
		case num == 0:
			kind = prep.KindBool
		}
		s.Columns[c] = prep.ColumnSchema{Name: name, Type: kind, Nullable: true}
	}
	return s
}

// BuildFrame converts text rows into a Frame of schema s. Short rows are
// padded with missing cells.
func BuildFrame(s prep.Schema, rows [][]string, na map[string]struct{}) (*prep.Frame, error) {
	f := prep.NewFrame(s)
	for r, row := range rows {
		f.AppendNullRow()
		for c, cs := range s.Columns {
			v, ok := cell(row, c, na)
			if !ok {
				continue
			}
			var val any = v
			switch cs.Type {
			case prep.KindInt:
				x, err := strconv.ParseInt(v, 10, 64)
				if err != nil {
					return nil, fmt.Errorf("row %d column %s: %w", r+1, cs.Name, err)
				}
				val = x
			case prep.KindFloat:
				x, err := strconv.ParseFloat(v, 64)
				if err != nil {
					return nil, fmt.Errorf("row %d column %s: %w", r+1, cs.Name, err)
				}
				val = x
			case prep.KindBool:
				val = strings.EqualFold(v, "true")
			}
			if err := f.SetCell(r, cs.Name, val); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}

func cell(row []string, c int, na map[string]struct{}) (string, bool) {
	if c >= len(row) {
		return "", false
	}
	v := strings.TrimSpace(strings.ToValidUTF8(row[c], "?"))
	if _, missing := na[v]; missing {
		return "", false
	}
	return v, true
}

func isBool(v string) bool {
	return strings.EqualFold(v, "true") || strings.EqualFold(v, "false")
}
