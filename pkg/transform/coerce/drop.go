package coerce

import (
	"context"

	"github.com/wdm0006/modelprep/pkg/prep"
)

// DropColumn removes the column instead of converting it.
type DropColumn struct{ Column string }

func (t *DropColumn) Name() string { return string(Drop) }

func (t *DropColumn) Apply(ctx context.Context, f *prep.Frame) (*prep.Frame, error) {
	if _, err := lookup(t.Name(), f, t.Column); err != nil {
		return f, err
	}
	return f, f.DropColumns(t.Column)
}
