package pipeline_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wdm0006/modelprep/pkg/operator"
	"github.com/wdm0006/modelprep/pkg/pipeline"
	"github.com/wdm0006/modelprep/pkg/prep"
	"github.com/wdm0006/modelprep/pkg/transform/coerce"
	"github.com/wdm0006/modelprep/pkg/transform/columns"
	"github.com/wdm0006/modelprep/pkg/transform/impute"
)

// flaky answers from queues before falling back to a script.
type flaky struct {
	*operator.Script
	coercions []coerce.Strategy
	renames   [][]columns.Pair
	targets   [][2]string
	warnings  []error
	fillAsked []string
}

func (o *flaky) FillStrategy(ctx context.Context, column string, missing int) (impute.Strategy, error) {
	o.fillAsked = append(o.fillAsked, column)
	return o.Script.FillStrategy(ctx, column, missing)
}

func (o *flaky) Warn(ctx context.Context, err error) { o.warnings = append(o.warnings, err) }

func (o *flaky) CoercionStrategy(ctx context.Context, column string, kind prep.Kind) (coerce.Strategy, error) {
	if len(o.coercions) == 0 {
		return o.Script.CoercionStrategy(ctx, column, kind)
	}
	s := o.coercions[0]
	o.coercions = o.coercions[1:]
	return s, nil
}

func (o *flaky) RenameColumns(ctx context.Context, names []string) ([]columns.Pair, error) {
	if len(o.renames) == 0 {
		return o.Script.RenameColumns(ctx, names)
	}
	p := o.renames[0]
	o.renames = o.renames[1:]
	return p, nil
}

func (o *flaky) ExportTarget(ctx context.Context) (string, string, error) {
	if len(o.targets) == 0 {
		return o.Script.ExportTarget(ctx)
	}
	t := o.targets[0]
	o.targets = o.targets[1:]
	return t[0], t[1], nil
}

func sample(t *testing.T) *prep.Frame {
	t.Helper()
	a := prep.NewIntColumn("a", 0)
	b := prep.NewStringColumn("b", 0)
	c := prep.NewFloatColumn("c", 0)
	for i, s := range []string{"x", "y", "x"} {
		a.Append(int64(i + 1))
		b.Append(s)
	}
	c.Append(1)
	c.AppendNull()
	c.Append(3)
	f, err := prep.FromColumns(a, b, c)
	require.NoError(t, err)
	return f
}

func floats(t *testing.T, f *prep.Frame, name string) []float64 {
	t.Helper()
	col, ok := f.ColumnByName(name)
	require.True(t, ok, name)
	out := make([]float64, col.Len())
	for i := range out {
		switch c := col.(type) {
		case *prep.IntColumn:
			v, _ := c.Get(i)
			out[i] = float64(v)
		case *prep.FloatColumn:
			out[i], _ = c.Get(i)
		default:
			t.Fatalf("column %s is %s", name, col.Kind())
		}
	}
	return out
}

func TestRunFullScript(t *testing.T) {
	dir := t.TempDir()
	a := &operator.Answers{
		Outliers:   &operator.OutlierAnswer{Columns: []string{"a"}, Op: ">", Cutoff: 2},
		Coercion:   map[string]string{"b": string(coerce.Mapping)},
		Fill:       map[string]string{"c": string(impute.Constant)},
		FillValues: map[string]float64{"c": 0},
		Rename:     []columns.Pair{{From: "a", To: "alpha"}},
		Dependent:  "c",
	}
	a.Export.Dir = dir
	a.Export.Name = "clean"

	p := pipeline.New(sample(t), operator.NewScript(a, nil))
	require.NoError(t, p.Run(context.Background()))
	assert.True(t, p.Done())

	f := p.Frame()
	assert.Equal(t, []string{"c", "alpha", "b"}, f.Names())
	assert.Equal(t, []float64{1, 0}, floats(t, f, "c"))
	assert.Equal(t, []float64{1, 2}, floats(t, f, "alpha"))
	assert.Equal(t, []float64{0, 1}, floats(t, f, "b"))

	assert.Equal(t, pipeline.Applied, p.Status(pipeline.Outliers))
	assert.Equal(t, pipeline.Applied, p.Status(pipeline.Coercion))
	assert.Equal(t, pipeline.Applied, p.Status(pipeline.Imputation))
	assert.Equal(t, pipeline.Skipped, p.Status(pipeline.Prune))
	assert.Equal(t, pipeline.Applied, p.Status(pipeline.Rename))
	assert.Equal(t, pipeline.Applied, p.Status(pipeline.Reorder))
	assert.Equal(t, "c", p.Dependent())
	assert.True(t, p.Readiness().Ready())

	path := filepath.Join(dir, "clean.csv")
	assert.Equal(t, path, p.ExportedPath())
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "c,alpha,b\n1,1,0\n0,2,1\n", string(b))
}

func TestStepAdvancesCursor(t *testing.T) {
	p := pipeline.New(sample(t), operator.NewScript(&operator.Answers{}, nil))
	assert.Equal(t, pipeline.Inspect, p.Cursor())
	require.NoError(t, p.Step(context.Background()))
	assert.Equal(t, pipeline.Outliers, p.Cursor())
	require.NoError(t, p.Step(context.Background()))
	assert.Equal(t, pipeline.Skipped, p.Status(pipeline.Outliers))
	assert.Equal(t, "coercion", p.Cursor().String())
}

func TestParseErrorReprompts(t *testing.T) {
	op := &flaky{
		Script:    operator.NewScript(&operator.Answers{}, nil),
		coercions: []coerce.Strategy{coerce.ToNumeric, coerce.Mapping},
	}
	p := pipeline.New(sample(t), op)
	ctx := context.Background()
	for p.Cursor() != pipeline.Imputation {
		require.NoError(t, p.Step(ctx))
	}
	require.Len(t, op.warnings, 1)
	assert.True(t, prep.IsParse(op.warnings[0]))
	assert.Equal(t, []float64{0, 1, 0}, floats(t, p.Frame(), "b"))
}

func TestMappingCodesAreShown(t *testing.T) {
	var out bytes.Buffer
	a := &operator.Answers{Coercion: map[string]string{"b": string(coerce.Mapping)}}
	p := pipeline.New(sample(t), operator.NewScript(a, &out))
	ctx := context.Background()
	for p.Cursor() != pipeline.Imputation {
		require.NoError(t, p.Step(ctx))
	}
	assert.Contains(t, out.String(), "== Codes for b ==\n0 = x\n1 = y\n")
}

func TestAttemptsExhaustedLeavesFrame(t *testing.T) {
	op := &flaky{
		Script:    operator.NewScript(&operator.Answers{}, nil),
		coercions: []coerce.Strategy{coerce.ToNumeric, coerce.ToNumeric},
	}
	orig := sample(t)
	p := pipeline.New(orig, op, pipeline.WithMaxAttempts(2))
	ctx := context.Background()
	require.NoError(t, p.Step(ctx))
	require.NoError(t, p.Step(ctx))

	err := p.Step(ctx)
	require.Error(t, err)
	var perr *prep.ParseError
	assert.True(t, errors.As(err, &perr))
	assert.Equal(t, pipeline.Coercion, p.Cursor())
	assert.Same(t, orig, p.Frame())
	assert.Equal(t, prep.KindString, p.Frame().Column(1).Kind())
	assert.Len(t, op.warnings, 2)
}

func TestRenameCollisionReprompts(t *testing.T) {
	a := &operator.Answers{Coercion: map[string]string{"b": string(coerce.Drop)}}
	op := &flaky{
		Script: operator.NewScript(a, nil),
		renames: [][]columns.Pair{
			{{From: "a", To: "c"}},
			{{From: "a", To: "alpha"}},
		},
	}
	p := pipeline.New(sample(t), op)
	ctx := context.Background()
	for p.Cursor() != pipeline.Reorder {
		require.NoError(t, p.Step(ctx))
	}
	require.Len(t, op.warnings, 1)
	assert.True(t, prep.IsValidation(op.warnings[0]))
	assert.Equal(t, []string{"alpha", "c"}, p.Frame().Names())
}

func TestExportRetry(t *testing.T) {
	dir := t.TempDir()
	a := &operator.Answers{Coercion: map[string]string{"b": string(coerce.OneHot)}}
	a.Export.Dir = dir
	a.Export.Name = "out"
	op := &flaky{
		Script:  operator.NewScript(a, nil),
		targets: [][2]string{{filepath.Join(dir, "missing"), "out"}},
	}
	p := pipeline.New(sample(t), op)
	require.NoError(t, p.Run(context.Background()))
	require.Len(t, op.warnings, 1)
	assert.True(t, prep.IsExport(op.warnings[0]))
	assert.Equal(t, filepath.Join(dir, "out.csv"), p.ExportedPath())
	assert.Equal(t, []string{"a", "c", "b_y"}, p.Frame().Names())
}

func TestDropnaClearsLaterColumns(t *testing.T) {
	p1 := prep.NewFloatColumn("p", 0)
	q := prep.NewFloatColumn("q", 0)
	for i := 0; i < 4; i++ {
		if i == 1 || i == 3 {
			p1.AppendNull()
			q.AppendNull()
			continue
		}
		p1.Append(float64(i))
		q.Append(float64(10 * i))
	}
	f, err := prep.FromColumns(p1, q)
	require.NoError(t, err)

	op := &flaky{Script: operator.NewScript(&operator.Answers{
		Fill: map[string]string{"p": string(impute.DropNA)},
	}, nil)}
	p := pipeline.New(f, op)
	ctx := context.Background()
	for p.Cursor() != pipeline.Prune {
		require.NoError(t, p.Step(ctx))
	}
	assert.Equal(t, []string{"p"}, op.fillAsked)
	assert.Equal(t, pipeline.Applied, p.Status(pipeline.Imputation))
	assert.Equal(t, 2, p.Frame().Rows())
	col, _ := p.Frame().ColumnByName("q")
	assert.Zero(t, prep.NullCount(col))
	assert.Equal(t, []float64{0, 20}, floats(t, p.Frame(), "q"))
}

func TestSkipsStagesWithoutWork(t *testing.T) {
	a := prep.NewIntColumn("a", 0)
	a.Append(1)
	a.Append(2)
	f, err := prep.FromColumns(a)
	require.NoError(t, err)

	ans := &operator.Answers{}
	ans.Export.Dir = t.TempDir()
	ans.Export.Name = "a"
	p := pipeline.New(f, operator.NewScript(ans, nil))
	require.NoError(t, p.Run(context.Background()))
	assert.Equal(t, pipeline.Skipped, p.Status(pipeline.Coercion))
	assert.Equal(t, pipeline.Skipped, p.Status(pipeline.Imputation))
	assert.Equal(t, pipeline.Skipped, p.Status(pipeline.Reorder))
	assert.Equal(t, pipeline.Applied, p.Status(pipeline.Export))
}

func TestUnrecoverableStops(t *testing.T) {
	ans := &operator.Answers{Fill: map[string]string{"c": string(impute.Constant)}}
	p := pipeline.New(sample(t), operator.NewScript(ans, nil))
	err := p.Run(context.Background())
	require.Error(t, err)
	assert.False(t, prep.Recoverable(err))
	assert.Equal(t, pipeline.Imputation, p.Cursor())
	assert.True(t, strings.HasPrefix(err.Error(), "imputation"))
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := pipeline.New(sample(t), operator.NewScript(&operator.Answers{}, nil))
	assert.ErrorIs(t, p.Run(ctx), context.Canceled)
	assert.Equal(t, pipeline.Inspect, p.Cursor())
}

func TestStepAfterFinish(t *testing.T) {
	ans := &operator.Answers{}
	ans.Export.Dir = t.TempDir()
	ans.Export.Name = "x"
	p := pipeline.New(sample(t), operator.NewScript(ans, nil))
	require.NoError(t, p.Run(context.Background()))
	assert.Error(t, p.Step(context.Background()))
}
