// Command benchprep times a representative cleaning run over a generated
// frame.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/wdm0006/modelprep/pkg/prep"
	"github.com/wdm0006/modelprep/pkg/transform/coerce"
	"github.com/wdm0006/modelprep/pkg/transform/columns"
	"github.com/wdm0006/modelprep/pkg/transform/impute"
	"github.com/wdm0006/modelprep/pkg/transform/outliers"
)

var levels = []string{"alpha", "beta", "gamma", "delta"}

func generate(schema prep.Schema, rows int, missp float64, rnd *rand.Rand) *prep.Frame {
	f := prep.NewFrame(schema)
	for i := 0; i < rows; i++ {
		f.AppendNullRow()
		for _, cs := range schema.Columns {
			if rnd.Float64() < missp {
				continue
			}
			switch cs.Type {
			case prep.KindFloat:
				_ = f.SetCell(i, cs.Name, rnd.Float64()*100)
			case prep.KindInt:
				_ = f.SetCell(i, cs.Name, int64(rnd.Intn(100)))
			case prep.KindString:
				_ = f.SetCell(i, cs.Name, levels[rnd.Intn(len(levels))])
			}
		}
	}
	return f
}

func main() {
	var (
		rows    = flag.Int("rows", 1_000_000, "rows to generate")
		fcols   = flag.Int("float-cols", 4, "number of float columns")
		icols   = flag.Int("int-cols", 2, "number of int columns")
		scols   = flag.Int("string-cols", 2, "number of string columns")
		missp   = flag.Float64("missing", 0.05, "probability of a missing cell")
		jsonOut = flag.Bool("json", false, "emit JSON summary")
		seed    = flag.Int64("seed", 42, "random seed")
	)
	flag.Parse()
	if *fcols < 1 || *icols < 1 || *scols < 2 {
		fmt.Fprintln(os.Stderr, "need at least 1 float, 1 int and 2 string columns")
		os.Exit(2)
	}

	var cols []prep.ColumnSchema
	for i := 0; i < *fcols; i++ {
		cols = append(cols, prep.ColumnSchema{Name: fmt.Sprintf("f%d", i), Type: prep.KindFloat, Nullable: true})
	}
	for i := 0; i < *icols; i++ {
		cols = append(cols, prep.ColumnSchema{Name: fmt.Sprintf("i%d", i), Type: prep.KindInt, Nullable: true})
	}
	for i := 0; i < *scols; i++ {
		cols = append(cols, prep.ColumnSchema{Name: fmt.Sprintf("s%d", i), Type: prep.KindString, Nullable: true})
	}
	f := generate(prep.Schema{Columns: cols}, *rows, *missp, rand.New(rand.NewSource(*seed)))

	p := prep.NewPipeline().
		Add(&outliers.Filter{Columns: []string{"f0"}, Op: outliers.Greater, Cutoff: 95}).
		Add(&coerce.Dummies{Column: "s0"}).
		Add(&coerce.Categorical{Column: "s1"}).
		Add(&impute.MeanFill{Column: "f1"}).
		Add(&impute.MedianFill{Column: "i0"}).
		Add(&impute.DropRows{Column: "s1"}).
		Add(&columns.Rename{Pairs: []columns.Pair{{From: "f1", To: "target"}}}).
		Add(&columns.MoveFirst{Column: "target"})

	runtime.GC()
	var msBefore, msAfter runtime.MemStats
	runtime.ReadMemStats(&msBefore)
	start := time.Now()
	out, err := p.Run(context.Background(), f)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	elapsed := time.Since(start)
	runtime.ReadMemStats(&msAfter)

	rowsPerSec := float64(*rows) / elapsed.Seconds()
	summary := map[string]any{
		"rows":                  *rows,
		"rows_out":              out.Rows(),
		"cols_out":              out.Cols(),
		"steps":                 p.Len(),
		"elapsed_ms":            elapsed.Milliseconds(),
		"rows_per_sec":          rowsPerSec,
		"mem_alloc_bytes":       msAfter.Alloc,
		"mem_total_alloc_bytes": msAfter.TotalAlloc - msBefore.TotalAlloc,
		"gc_num":                msAfter.NumGC - msBefore.NumGC,
		"cols":                  map[string]int{"float": *fcols, "int": *icols, "string": *scols},
		"missing_prob":          *missp,
	}

	if *jsonOut {
		b, _ := json.MarshalIndent(summary, "", "  ")
		fmt.Println(string(b))
		return
	}
	fmt.Printf("Rows: %d in, %d out\n", *rows, out.Rows())
	fmt.Printf("Elapsed: %s\n", elapsed)
	fmt.Printf("Throughput: %.0f rows/s\n", rowsPerSec)
	fmt.Printf("Current Alloc: %d MB\n", msAfter.Alloc/1024/1024)
	fmt.Printf("Total Alloc (delta): %d MB\n", (msAfter.TotalAlloc-msBefore.TotalAlloc)/1024/1024)
	fmt.Printf("GC cycles (delta): %d\n", msAfter.NumGC-msBefore.NumGC)
}
