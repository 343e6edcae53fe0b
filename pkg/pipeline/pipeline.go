// Package pipeline runs the cleaning stages in their fixed order, asking
// an operator.Operator for every decision and committing each stage only
// when it succeeds.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/wdm0006/modelprep/dataio"
	"github.com/wdm0006/modelprep/pkg/classify"
	"github.com/wdm0006/modelprep/pkg/logging"
	"github.com/wdm0006/modelprep/pkg/operator"
	"github.com/wdm0006/modelprep/pkg/plot"
	"github.com/wdm0006/modelprep/pkg/prep"
	"github.com/wdm0006/modelprep/pkg/readiness"
	"github.com/wdm0006/modelprep/pkg/transform/coerce"
	"github.com/wdm0006/modelprep/pkg/transform/columns"
	"github.com/wdm0006/modelprep/pkg/transform/impute"
	"github.com/wdm0006/modelprep/pkg/transform/outliers"
)

const (
	DefaultMaxAttempts = 5
	DefaultHeadRows    = 5
)

// Pipeline owns the frame for the length of a run. Each stage either
// commits a new frame or leaves the last committed one in place.
type Pipeline struct {
	frame  *prep.Frame
	op     operator.Operator
	log    *slog.Logger
	runID  string
	cursor Stage
	status [Finished]Status

	maxAttempts int
	headRows    int
	export      dataio.ExportOptions
	dependent   string
	exported    string
}

type Option func(*Pipeline)

func WithLogger(l *slog.Logger) Option { return func(p *Pipeline) { p.log = l } }

// WithMaxAttempts bounds how often one question is asked after
// recoverable errors.
func WithMaxAttempts(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.maxAttempts = n
		}
	}
}

func WithHeadRows(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.headRows = n
		}
	}
}

func WithExport(opt dataio.ExportOptions) Option { return func(p *Pipeline) { p.export = opt } }

func New(f *prep.Frame, op operator.Operator, opts ...Option) *Pipeline {
	p := &Pipeline{
		frame:       f,
		op:          op,
		log:         logging.Discard(),
		runID:       uuid.NewString(),
		maxAttempts: DefaultMaxAttempts,
		headRows:    DefaultHeadRows,
	}
	for _, o := range opts {
		o(p)
	}
	p.log = p.log.With("run_id", p.runID)
	return p
}

// Frame returns the last committed frame. Callers must not mutate it.
func (p *Pipeline) Frame() *prep.Frame { return p.frame }

func (p *Pipeline) RunID() string        { return p.runID }
func (p *Pipeline) Cursor() Stage        { return p.cursor }
func (p *Pipeline) Done() bool           { return p.cursor == Finished }
func (p *Pipeline) ExportedPath() string { return p.exported }

// Dependent is the designated dependent variable, "" if none.
func (p *Pipeline) Dependent() string { return p.dependent }

func (p *Pipeline) Status(s Stage) Status {
	if s < 0 || s >= Finished {
		return Pending
	}
	return p.status[s]
}

func (p *Pipeline) Readiness() readiness.Report { return readiness.Check(p.frame, p.dependent) }

// Run steps through every remaining stage. It stops at the first error;
// the frame stays at its last committed state and Run may be called again.
func (p *Pipeline) Run(ctx context.Context) error {
	for !p.Done() {
		if err := p.Step(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Step runs the stage at the cursor and advances past it on success.
func (p *Pipeline) Step(ctx context.Context) error {
	if p.Done() {
		return errors.New("pipeline already finished")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	stage := p.cursor
	log := p.log.With("stage", stage.String())
	log.Debug("stage start", "rows", p.frame.Rows(), "cols", p.frame.Cols())

	var st Status
	var err error
	switch stage {
	case Inspect:
		st, err = p.inspect(ctx)
	case Outliers:
		st, err = p.outliers(ctx)
	case Coercion:
		st, err = p.coercion(ctx)
	case Imputation:
		st, err = p.imputation(ctx)
	case Prune:
		st, err = p.prune(ctx)
	case Rename:
		st, err = p.rename(ctx)
	case Reorder:
		st, err = p.reorder(ctx)
	case Export:
		st, err = p.exportFrame(ctx)
	}
	if err != nil {
		log.Error("stage failed", "err", err)
		return errors.Wrapf(err, "%s", stage)
	}
	p.status[stage] = st
	p.cursor++
	log.Info("stage done", "status", st.String(), "rows", p.frame.Rows(), "cols", p.frame.Cols())
	return nil
}

// attempt calls fn until it succeeds, fails with an unrecoverable error or
// runs out of attempts. Recoverable errors go to the operator first.
func (p *Pipeline) attempt(ctx context.Context, fn func() error) error {
	var err error
	for i := 0; i < p.maxAttempts; i++ {
		if err = fn(); err == nil || !prep.Recoverable(err) {
			return err
		}
		p.log.Warn("request rejected", "attempt", i+1, "err", err)
		p.op.Warn(ctx, err)
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
	}
	return errors.Wrapf(err, "giving up after %d attempts", p.maxAttempts)
}

// apply runs t on a copy of f and returns the copy.
func apply(ctx context.Context, f *prep.Frame, t prep.Transform) (*prep.Frame, error) {
	return prep.NewPipeline().Add(t).Run(ctx, f)
}

func (p *Pipeline) show(ctx context.Context, title string, views ...operator.View) error {
	return p.op.Show(ctx, operator.Snapshot{Title: title, Frame: p.frame.Clone(), Views: views, HeadRows: p.headRows})
}

func (p *Pipeline) inspect(ctx context.Context) (Status, error) {
	if err := p.show(ctx, "Raw data", operator.Head, operator.Dtypes, operator.Describe); err != nil {
		return Pending, err
	}
	err := p.attempt(ctx, func() error {
		kind, err := p.op.PlotType(ctx)
		if err != nil || kind == "" {
			return err
		}
		var buf bytes.Buffer
		if err := plot.Render(&buf, p.frame, kind); err != nil {
			return prep.Invalid("plot", "", "%v", err)
		}
		return p.op.Show(ctx, operator.Snapshot{Title: string(kind), Text: buf.String()})
	})
	return Applied, err
}

func (p *Pipeline) outliers(ctx context.Context) (Status, error) {
	var candidates []string
	for _, c := range classify.Classify(p.frame).Columns {
		if c.Kind == prep.KindInt || c.Kind == prep.KindFloat {
			candidates = append(candidates, c.Name)
		}
	}
	if len(candidates) == 0 {
		return Skipped, nil
	}
	st := Skipped
	err := p.attempt(ctx, func() error {
		ans, err := p.op.Outliers(ctx, candidates)
		if err != nil || ans == nil || len(ans.Columns) == 0 {
			return err
		}
		out, err := apply(ctx, p.frame, &outliers.Filter{Columns: ans.Columns, Op: ans.Op, Cutoff: ans.Cutoff})
		if err != nil {
			return err
		}
		p.log.Info("outliers removed", "columns", ans.Columns, "op", string(ans.Op), "cutoff", ans.Cutoff,
			"rows_before", p.frame.Rows(), "rows_after", out.Rows())
		p.frame, st = out, Applied
		return nil
	})
	return st, err
}

// coercion asks for one strategy per non-numeric column. The stage works
// on a copy and commits it only after every column is resolved.
func (p *Pipeline) coercion(ctx context.Context) (Status, error) {
	rep := classify.Classify(p.frame)
	pending := rep.NonNumeric()
	if len(pending) == 0 {
		return Skipped, nil
	}
	work := p.frame.Clone()
	st := Skipped
	for _, name := range pending {
		col, ok := work.ColumnByName(name)
		if !ok {
			continue
		}
		kind := col.Kind()
		err := p.attempt(ctx, func() error {
			s, err := p.op.CoercionStrategy(ctx, name, kind)
			if err != nil {
				return err
			}
			t, err := coerce.For(s, name)
			if err != nil || t == nil {
				return err
			}
			out, err := apply(ctx, work, t)
			if err != nil {
				return err
			}
			p.log.Debug("column coerced", "column", name, "strategy", string(s))
			work, st = out, Applied
			if m, ok := t.(*coerce.Categorical); ok {
				return p.op.Show(ctx, operator.Snapshot{Title: "Codes for " + name, Text: codeTable(m.Codes)})
			}
			return nil
		})
		if err != nil {
			return Pending, err
		}
	}
	p.frame = work
	return st, nil
}

// codeTable lists one "code = value" line per mapped value.
func codeTable(values []string) string {
	var b strings.Builder
	for i, v := range values {
		fmt.Fprintf(&b, "%d = %s\n", i, v)
	}
	return b.String()
}

// imputation resolves missing cells column by column. Missing counts are
// read from the working copy, so a row drop on one column is seen by the
// next.
func (p *Pipeline) imputation(ctx context.Context) (Status, error) {
	rep := classify.Classify(p.frame)
	if !rep.HasMissing() {
		return Skipped, nil
	}
	work := p.frame.Clone()
	st := Skipped
	for _, name := range rep.MissingColumns() {
		col, ok := work.ColumnByName(name)
		if !ok {
			continue
		}
		missing := prep.NullCount(col)
		if missing == 0 {
			continue
		}
		err := p.attempt(ctx, func() error {
			s, err := p.op.FillStrategy(ctx, name, missing)
			if err != nil {
				return err
			}
			var value float64
			if s == impute.Constant {
				if value, err = p.op.FillValue(ctx, name); err != nil {
					return err
				}
			}
			t, err := impute.For(s, name, value)
			if err != nil || t == nil {
				return err
			}
			out, err := apply(ctx, work, t)
			if err != nil {
				return err
			}
			p.log.Debug("column imputed", "column", name, "strategy", string(s), "missing", missing)
			work, st = out, Applied
			return nil
		})
		if err != nil {
			return Pending, err
		}
	}
	p.frame = work
	return st, nil
}

func (p *Pipeline) prune(ctx context.Context) (Status, error) {
	st := Skipped
	err := p.attempt(ctx, func() error {
		drop, err := p.op.DropColumns(ctx, p.frame.Names())
		if err != nil || len(drop) == 0 {
			return err
		}
		out, err := apply(ctx, p.frame, &columns.Drop{Columns: drop})
		if err != nil {
			return err
		}
		p.frame, st = out, Applied
		return nil
	})
	if err != nil {
		return Pending, err
	}
	return st, p.show(ctx, "After dropping columns", operator.Head)
}

func (p *Pipeline) rename(ctx context.Context) (Status, error) {
	st := Skipped
	err := p.attempt(ctx, func() error {
		pairs, err := p.op.RenameColumns(ctx, p.frame.Names())
		if err != nil || len(pairs) == 0 {
			return err
		}
		out, err := apply(ctx, p.frame, &columns.Rename{Pairs: pairs})
		if err != nil {
			return err
		}
		p.frame, st = out, Applied
		return nil
	})
	if err != nil {
		return Pending, err
	}
	return st, p.show(ctx, "Columns", operator.Header)
}

func (p *Pipeline) reorder(ctx context.Context) (Status, error) {
	st := Skipped
	err := p.attempt(ctx, func() error {
		name, known, err := p.op.DependentVariable(ctx, p.frame.Names())
		if err != nil || !known {
			return err
		}
		out, err := apply(ctx, p.frame, &columns.MoveFirst{Column: name})
		if err != nil {
			return err
		}
		p.frame, p.dependent, st = out, name, Applied
		return nil
	})
	if err != nil {
		return Pending, err
	}
	if err := p.show(ctx, "Model-ready data", operator.Head, operator.Dtypes); err != nil {
		return st, err
	}
	return st, p.op.Show(ctx, operator.Snapshot{Title: "Readiness", Text: p.Readiness().String()})
}

func (p *Pipeline) exportFrame(ctx context.Context) (Status, error) {
	err := p.attempt(ctx, func() error {
		dir, name, err := p.op.ExportTarget(ctx)
		if err != nil {
			return err
		}
		path, err := dataio.Export(dir, name, p.frame, p.export)
		if err != nil {
			return err
		}
		p.exported = path
		p.log.Info("exported", "path", path, "rows", p.frame.Rows(), "cols", p.frame.Cols())
		return nil
	})
	if err != nil {
		return Pending, err
	}
	return Applied, nil
}
