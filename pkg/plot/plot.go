// Package plot renders text charts of a frame: a correlation matrix of the
// numeric columns or one histogram per numeric column.
package plot

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/guptarohit/asciigraph"
	"github.com/olekukonko/tablewriter"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/wdm0006/modelprep/pkg/prep"
)

// Kind is the plot the operator asked for.
type Kind string

const (
	Correlation Kind = "Correlation matrix"
	Histograms  Kind = "Histograms"
)

var Kinds = []Kind{Correlation, Histograms}

func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown plot type %q", s)
}

// Bins is the number of histogram buckets.
const Bins = 10

func Render(w io.Writer, f *prep.Frame, kind Kind) error {
	switch kind {
	case Correlation:
		return renderCorrelation(w, f)
	case Histograms:
		return renderHistograms(w, f)
	}
	return fmt.Errorf("unknown plot type %q", kind)
}

// numeric returns the int and float columns as float slices with a
// parallel presence mask.
func numeric(f *prep.Frame) (names []string, vals [][]float64, ok [][]bool) {
	for i := 0; i < f.Cols(); i++ {
		var v []float64
		var m []bool
		switch c := f.Column(i).(type) {
		case *prep.FloatColumn:
			v, m = make([]float64, c.Len()), make([]bool, c.Len())
			for r := range v {
				v[r], m[r] = c.Get(r)
			}
		case *prep.IntColumn:
			v, m = make([]float64, c.Len()), make([]bool, c.Len())
			for r := range v {
				x, p := c.Get(r)
				v[r], m[r] = float64(x), p
			}
		default:
			continue
		}
		names = append(names, f.Column(i).Name())
		vals = append(vals, v)
		ok = append(ok, m)
	}
	return names, vals, ok
}

// Matrix returns Pearson correlations over rows where both columns are
// present. A pair with fewer than two such rows is NaN.
func Matrix(f *prep.Frame) ([]string, [][]float64) {
	names, vals, ok := numeric(f)
	m := make([][]float64, len(names))
	for i := range m {
		m[i] = make([]float64, len(names))
		for j := range m[i] {
			var x, y []float64
			for r := range vals[i] {
				if ok[i][r] && ok[j][r] {
					x = append(x, vals[i][r])
					y = append(y, vals[j][r])
				}
			}
			if len(x) < 2 {
				m[i][j] = math.NaN()
				continue
			}
			m[i][j] = stat.Correlation(x, y, nil)
		}
	}
	return names, m
}

func renderCorrelation(w io.Writer, f *prep.Frame) error {
	names, m := Matrix(f)
	if len(names) == 0 {
		_, err := io.WriteString(w, "no numeric columns to correlate\n")
		return err
	}
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetHeader(append([]string{""}, names...))
	for i, row := range m {
		cells := []string{names[i]}
		for _, v := range row {
			cells = append(cells, strconv.FormatFloat(v, 'f', 2, 64))
		}
		table.Append(cells)
	}
	table.Render()
	return nil
}

// Histogram buckets the present values of one column into Bins equal
// ranges between its minimum and maximum.
func Histogram(vals []float64) (dividers, counts []float64) {
	x := append([]float64(nil), vals...)
	sort.Float64s(x)
	lo, hi := x[0], x[len(x)-1]
	if lo == hi {
		hi = lo + 1
	}
	dividers = make([]float64, Bins+1)
	floats.Span(dividers, lo, hi)
	dividers[Bins] = math.Nextafter(hi, math.Inf(1))
	counts = stat.Histogram(nil, dividers, x, nil)
	return dividers, counts
}

func renderHistograms(w io.Writer, f *prep.Frame) error {
	names, vals, ok := numeric(f)
	if len(names) == 0 {
		_, err := io.WriteString(w, "no numeric columns to plot\n")
		return err
	}
	for i, name := range names {
		var present []float64
		for r, v := range vals[i] {
			if ok[i][r] {
				present = append(present, v)
			}
		}
		if len(present) == 0 {
			if _, err := fmt.Fprintf(w, "%s: no values\n\n", name); err != nil {
				return err
			}
			continue
		}
		div, counts := Histogram(present)
		g := asciigraph.Plot(counts,
			asciigraph.Height(8),
			asciigraph.Caption(fmt.Sprintf("%s  [%.4g, %.4g]  %d bins", name, div[0], div[Bins], Bins)))
		if _, err := fmt.Fprintf(w, "%s\n\n", g); err != nil {
			return err
		}
	}
	return nil
}
