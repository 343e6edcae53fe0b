// Package profile summarises a frame for the operator: per-column
// statistics, a describe table of numeric columns and a head preview.
package profile

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/wdm0006/modelprep/pkg/prep"
)

type NumStats struct {
	Count int     `json:"count"`
	Nulls int     `json:"nulls"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Sum   float64 `json:"sum"`
}

type BoolStats struct {
	Count int `json:"count"`
	Nulls int `json:"nulls"`
	True  int `json:"true"`
	False int `json:"false"`
}

type StringStats struct {
	Count int            `json:"count"`
	Nulls int            `json:"nulls"`
	Freqs map[string]int `json:"top,omitempty"`
}

type ColumnProfile struct {
	Name string       `json:"name"`
	Kind string       `json:"kind"`
	Num  *NumStats    `json:"num,omitempty"`
	Bool *BoolStats   `json:"bool,omitempty"`
	Str  *StringStats `json:"str,omitempty"`
}

// Collector accumulates column statistics over one or more frames sharing
// a schema.
type Collector struct {
	cols  []ColumnProfile
	index map[string]int
	topK  int
}

func NewCollector(schema prep.Schema, topK int) *Collector {
	c := &Collector{index: make(map[string]int), topK: topK}
	c.cols = make([]ColumnProfile, len(schema.Columns))
	for i, cs := range schema.Columns {
		cp := ColumnProfile{Name: cs.Name, Kind: cs.Type.String()}
		switch cs.Type {
		case prep.KindFloat, prep.KindInt, prep.KindTime:
			cp.Num = &NumStats{Min: math.Inf(1), Max: math.Inf(-1)}
		case prep.KindBool:
			cp.Bool = &BoolStats{}
		default:
			cp.Str = &StringStats{Freqs: make(map[string]int)}
		}
		c.cols[i] = cp
		c.index[cs.Name] = i
	}
	return c
}

func (c *Collector) ConsumeFrame(f *prep.Frame) {
	for ci := 0; ci < f.Cols(); ci++ {
		idx, ok := c.index[f.Column(ci).Name()]
		if !ok {
			continue
		}
		cp := &c.cols[idx]
		switch col := f.Column(ci).(type) {
		case *prep.FloatColumn:
			for i := 0; i < col.Len(); i++ {
				v, ok := col.Get(i)
				cp.Num.add(v, ok)
			}
		case *prep.IntColumn:
			for i := 0; i < col.Len(); i++ {
				v, ok := col.Get(i)
				cp.Num.add(float64(v), ok)
			}
		case *prep.TimeColumn:
			// unix seconds
			for i := 0; i < col.Len(); i++ {
				v, ok := col.Get(i)
				cp.Num.add(float64(v.Unix()), ok)
			}
		case *prep.BoolColumn:
			for i := 0; i < col.Len(); i++ {
				v, ok := col.Get(i)
				switch {
				case !ok:
					cp.Bool.Nulls++
				case v:
					cp.Bool.Count++
					cp.Bool.True++
				default:
					cp.Bool.Count++
					cp.Bool.False++
				}
			}
		case *prep.StringColumn:
			for i := 0; i < col.Len(); i++ {
				v, ok := col.Get(i)
				if !ok {
					cp.Str.Nulls++
					continue
				}
				cp.Str.Count++
				if c.topK > 0 {
					cp.Str.Freqs[v]++
				}
			}
		}
	}
}

func (s *NumStats) add(v float64, ok bool) {
	if !ok {
		s.Nulls++
		return
	}
	s.Count++
	s.Min = math.Min(s.Min, v)
	s.Max = math.Max(s.Max, v)
	s.Sum += v
}

func (s *NumStats) Mean() float64 {
	if s.Count == 0 {
		return math.NaN()
	}
	return s.Sum / float64(s.Count)
}

// Top formats at most k value counts, most frequent first.
func (s *StringStats) Top(k int) []string {
	type kv struct {
		k string
		v int
	}
	arr := make([]kv, 0, len(s.Freqs))
	for k, v := range s.Freqs {
		arr = append(arr, kv{k, v})
	}
	sort.Slice(arr, func(i, j int) bool {
		if arr[i].v != arr[j].v {
			return arr[i].v > arr[j].v
		}
		return arr[i].k < arr[j].k
	})
	if k <= 0 || k > len(arr) {
		k = len(arr)
	}
	out := make([]string, k)
	for i := range out {
		out[i] = fmt.Sprintf("%q: %d", arr[i].k, arr[i].v)
	}
	return out
}

func (c *Collector) Columns() []ColumnProfile { return c.cols }

func (c *Collector) ReportText() string {
	var b strings.Builder
	b.WriteString("Profile Summary\n")
	for _, cp := range c.cols {
		fmt.Fprintf(&b, "- %s (%s): ", cp.Name, cp.Kind)
		switch {
		case cp.Num != nil:
			fmt.Fprintf(&b, "count=%d nulls=%d min=%.6g max=%.6g mean=%.6g\n", cp.Num.Count, cp.Num.Nulls, cp.Num.Min, cp.Num.Max, cp.Num.Mean())
		case cp.Bool != nil:
			fmt.Fprintf(&b, "count=%d nulls=%d true=%d false=%d\n", cp.Bool.Count, cp.Bool.Nulls, cp.Bool.True, cp.Bool.False)
		default:
			fmt.Fprintf(&b, "count=%d nulls=%d distinct=%d\n", cp.Str.Count, cp.Str.Nulls, len(cp.Str.Freqs))
			for _, line := range cp.Str.Top(c.topK) {
				fmt.Fprintf(&b, "  * %s\n", line)
			}
		}
	}
	return b.String()
}
