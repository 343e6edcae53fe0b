// Package operator is the question/answer surface between a cleaning run
// and whoever makes its decisions: a person at a terminal or an answers
// file.
package operator

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/wdm0006/modelprep/pkg/plot"
	"github.com/wdm0006/modelprep/pkg/prep"
	"github.com/wdm0006/modelprep/pkg/profile"
	"github.com/wdm0006/modelprep/pkg/transform/coerce"
	"github.com/wdm0006/modelprep/pkg/transform/columns"
	"github.com/wdm0006/modelprep/pkg/transform/impute"
	"github.com/wdm0006/modelprep/pkg/transform/outliers"
)

// Operator answers the questions a run asks. Every method blocks until an
// answer is available; an error aborts the run.
type Operator interface {
	// Show displays a snapshot of the data between stages.
	Show(ctx context.Context, s Snapshot) error
	// Warn reports a recoverable error before the question is asked again.
	Warn(ctx context.Context, err error)

	// PlotType returns "" to skip plotting.
	PlotType(ctx context.Context) (plot.Kind, error)
	// Outliers returns nil when no rows should be removed.
	Outliers(ctx context.Context, candidates []string) (*OutlierAnswer, error)
	CoercionStrategy(ctx context.Context, column string, kind prep.Kind) (coerce.Strategy, error)
	FillStrategy(ctx context.Context, column string, missing int) (impute.Strategy, error)
	FillValue(ctx context.Context, column string) (float64, error)
	// DropColumns returns the columns to drop; empty means keep all.
	DropColumns(ctx context.Context, names []string) ([]string, error)
	// RenameColumns returns the renames to apply as one batch.
	RenameColumns(ctx context.Context, names []string) ([]columns.Pair, error)
	// DependentVariable reports the dependent column, if known.
	DependentVariable(ctx context.Context, names []string) (string, bool, error)
	ExportTarget(ctx context.Context) (dir, name string, err error)
}

// OutlierAnswer asks to remove rows where column Op Cutoff, for each column.
type OutlierAnswer struct {
	Columns []string    `json:"columns" yaml:"columns" toml:"columns"`
	Op      outliers.Op `json:"operator" yaml:"operator" toml:"operator"`
	Cutoff  float64     `json:"cutoff" yaml:"cutoff" toml:"cutoff"`
}

// View selects one rendering of a snapshot.
type View int

const (
	Head View = iota
	Dtypes
	Describe
	Header
)

// Snapshot is what the operator sees between stages. Frame is a copy the
// operator may keep.
type Snapshot struct {
	Title    string
	Frame    *prep.Frame
	Views    []View
	HeadRows int
	// Text is shown verbatim after the views (plots, reports).
	Text string
}

// Render writes s as plain text tables.
func Render(w io.Writer, s Snapshot) error {
	if s.Title != "" {
		if _, err := fmt.Fprintf(w, "== %s ==\n", s.Title); err != nil {
			return err
		}
	}
	if s.Frame != nil {
		n := s.HeadRows
		if n <= 0 {
			n = 5
		}
		for _, v := range s.Views {
			switch v {
			case Head:
				fmt.Fprintf(w, "%d rows x %d columns\n", s.Frame.Rows(), s.Frame.Cols())
				profile.WriteHead(w, s.Frame, n)
			case Dtypes:
				profile.WriteOverview(w, s.Frame)
			case Describe:
				profile.WriteDescribe(w, s.Frame)
			case Header:
				fmt.Fprintf(w, "columns: %s\n", strings.Join(s.Frame.Names(), ", "))
			}
		}
	}
	if s.Text != "" {
		_, err := io.WriteString(w, strings.TrimRight(s.Text, "\n")+"\n")
		return err
	}
	return nil
}
