package profile

import (
	"io"
	"math"
	"strconv"

	"github.com/go-gota/gota/series"
	"github.com/olekukonko/tablewriter"

	"github.com/wdm0006/modelprep/pkg/classify"
	"github.com/wdm0006/modelprep/pkg/prep"
)

// Summary is one column of a describe table. Statistics other than Count
// are NaN when the column has no present values.
type Summary struct {
	Name  string
	Count int
	Mean  float64
	Std   float64
	Min   float64
	Q25   float64
	Q50   float64
	Q75   float64
	Max   float64
}

// Describe summarises every int and float column over its present values.
func Describe(f *prep.Frame) []Summary {
	var out []Summary
	for i := 0; i < f.Cols(); i++ {
		vals, ok := present(f.Column(i))
		if !ok {
			continue
		}
		s := Summary{Name: f.Column(i).Name(), Count: len(vals)}
		if len(vals) == 0 {
			nan := math.NaN()
			s.Mean, s.Std, s.Min, s.Q25, s.Q50, s.Q75, s.Max = nan, nan, nan, nan, nan, nan, nan
			out = append(out, s)
			continue
		}
		ser := series.New(vals, series.Float, s.Name)
		s.Mean = ser.Mean()
		s.Std = ser.StdDev()
		s.Min = ser.Min()
		s.Q25 = ser.Quantile(0.25)
		s.Q50 = ser.Median()
		s.Q75 = ser.Quantile(0.75)
		s.Max = ser.Max()
		out = append(out, s)
	}
	return out
}

func present(c prep.Column) ([]float64, bool) {
	vals := make([]float64, 0, c.Len())
	switch col := c.(type) {
	case *prep.FloatColumn:
		for i := 0; i < col.Len(); i++ {
			if v, ok := col.Get(i); ok {
				vals = append(vals, v)
			}
		}
	case *prep.IntColumn:
		for i := 0; i < col.Len(); i++ {
			if v, ok := col.Get(i); ok {
				vals = append(vals, float64(v))
			}
		}
	default:
		return nil, false
	}
	return vals, true
}

// WriteDescribe renders Describe(f) with one row per statistic and one
// column per numeric column.
func WriteDescribe(w io.Writer, f *prep.Frame) {
	sums := Describe(f)
	if len(sums) == 0 {
		_, _ = io.WriteString(w, "no numeric columns\n")
		return
	}
	header := []string{""}
	for _, s := range sums {
		header = append(header, s.Name)
	}
	stats := []struct {
		name string
		get  func(Summary) float64
	}{
		{"count", func(s Summary) float64 { return float64(s.Count) }},
		{"mean", func(s Summary) float64 { return s.Mean }},
		{"std", func(s Summary) float64 { return s.Std }},
		{"min", func(s Summary) float64 { return s.Min }},
		{"25%", func(s Summary) float64 { return s.Q25 }},
		{"50%", func(s Summary) float64 { return s.Q50 }},
		{"75%", func(s Summary) float64 { return s.Q75 }},
		{"max", func(s Summary) float64 { return s.Max }},
	}
	rows := make([][]string, len(stats))
	for i, st := range stats {
		row := []string{st.name}
		for _, s := range sums {
			row = append(row, strconv.FormatFloat(st.get(s), 'g', 6, 64))
		}
		rows[i] = row
	}
	WriteTable(w, header, rows)
}

// WriteTable renders rows under header as an ASCII table.
func WriteTable(w io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader(header)
	table.AppendBulk(rows)
	table.Render()
}

// WriteHead renders the first n rows; missing cells show as NaN.
func WriteHead(w io.Writer, f *prep.Frame, n int) {
	h := f.Head(n)
	rows := make([][]string, h.Rows())
	for r := range rows {
		row := make([]string, h.Cols())
		for c := range row {
			col := h.Column(c)
			if col.IsNull(r) {
				row[c] = "NaN"
			} else {
				row[c] = col.Format(r)
			}
		}
		rows[r] = row
	}
	WriteTable(w, h.Names(), rows)
}

// WriteOverview renders each column's kind and missing count.
func WriteOverview(w io.Writer, f *prep.Frame) {
	rep := classify.Classify(f)
	rows := make([][]string, len(rep.Columns))
	for i, c := range rep.Columns {
		rows[i] = []string{c.Name, c.Kind.String(), strconv.Itoa(c.Missing)}
	}
	WriteTable(w, []string{"column", "dtype", "missing"}, rows)
}
