// Package columns holds the structural transforms that touch column
// names and order but never cell values.
package columns

import (
	"context"

	"github.com/wdm0006/modelprep/pkg/prep"
	"github.com/wdm0006/modelprep/pkg/transform/validate"
)

// Drop removes the listed columns. An empty list is a no-op.
type Drop struct{ Columns []string }

func (t *Drop) Name() string { return "drop_columns" }

func (t *Drop) Apply(ctx context.Context, f *prep.Frame) (*prep.Frame, error) {
	if len(t.Columns) == 0 {
		return f, nil
	}
	if err := validate.Columns(t.Name(), f, t.Columns...); err != nil {
		return f, err
	}
	return f, f.DropColumns(t.Columns...)
}

// Pair renames From to To. From always refers to the name before the
// batch is applied.
type Pair struct {
	From string `json:"from" yaml:"from" toml:"from"`
	To   string `json:"to" yaml:"to" toml:"to"`
}

// Rename applies all pairs as one batch.
type Rename struct{ Pairs []Pair }

func (t *Rename) Name() string { return "rename_columns" }

func (t *Rename) Apply(ctx context.Context, f *prep.Frame) (*prep.Frame, error) {
	if len(t.Pairs) == 0 {
		return f, nil
	}
	from := make([]string, len(t.Pairs))
	to := make([]string, len(t.Pairs))
	m := make(map[string]string, len(t.Pairs))
	for i, p := range t.Pairs {
		from[i], to[i] = p.From, p.To
		m[p.From] = p.To
	}
	if err := validate.Renames(t.Name(), f, from, to); err != nil {
		return f, err
	}
	return f, f.RenameColumns(m)
}

// MoveFirst places Column at position 0. An empty Column is a no-op.
type MoveFirst struct{ Column string }

func (t *MoveFirst) Name() string { return "dependent_variable" }

func (t *MoveFirst) Apply(ctx context.Context, f *prep.Frame) (*prep.Frame, error) {
	if t.Column == "" {
		return f, nil
	}
	if err := validate.Columns(t.Name(), f, t.Column); err != nil {
		return f, err
	}
	return f, f.MoveToFront(t.Column)
}
