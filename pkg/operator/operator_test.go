package operator

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wdm0006/modelprep/pkg/plot"
	"github.com/wdm0006/modelprep/pkg/prep"
	"github.com/wdm0006/modelprep/pkg/transform/coerce"
	"github.com/wdm0006/modelprep/pkg/transform/columns"
	"github.com/wdm0006/modelprep/pkg/transform/impute"
	"github.com/wdm0006/modelprep/pkg/transform/outliers"
)

var ctx = context.Background()

func TestLoadAnswersYAML(t *testing.T) {
	a, err := LoadAnswers("testdata/answers.yaml")
	require.NoError(t, err)
	s := NewScript(a, nil)

	k, err := s.PlotType(ctx)
	require.NoError(t, err)
	assert.Equal(t, plot.Histograms, k)

	o, err := s.Outliers(ctx, []string{"a"})
	require.NoError(t, err)
	assert.Equal(t, &OutlierAnswer{Columns: []string{"a"}, Op: outliers.Greater, Cutoff: 1}, o)

	st, _ := s.CoercionStrategy(ctx, "b", prep.KindString)
	assert.Equal(t, coerce.Mapping, st)
	st, _ = s.CoercionStrategy(ctx, "zz", prep.KindString)
	assert.Equal(t, coerce.Skip, st)

	fs, _ := s.FillStrategy(ctx, "c", 1)
	assert.Equal(t, impute.Constant, fs)
	v, err := s.FillValue(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)

	pairs, _ := s.RenameColumns(ctx, nil)
	assert.Equal(t, []columns.Pair{{From: "a", To: "alpha"}}, pairs)

	dep, known, _ := s.DependentVariable(ctx, nil)
	assert.True(t, known)
	assert.Equal(t, "b", dep)

	dir, name, err := s.ExportTarget(ctx)
	require.NoError(t, err)
	assert.Equal(t, "out", dir)
	assert.Equal(t, "clean", name)
}

func TestLoadAnswersTOMLAndJSON(t *testing.T) {
	a, err := LoadAnswers("testdata/answers.toml")
	require.NoError(t, err)
	assert.Equal(t, "get_dummies", a.Coercion["b"])
	assert.Equal(t, []string{"d"}, a.Drop)
	assert.Equal(t, "alpha", a.Rename[0].To)
	dir, _, err := NewScript(a, nil).ExportTarget(ctx)
	require.NoError(t, err)
	assert.Equal(t, ".", dir)

	a, err = LoadAnswers("testdata/answers.json")
	require.NoError(t, err)
	o, err := NewScript(a, nil).Outliers(ctx, nil)
	require.NoError(t, err)
	assert.Nil(t, o)
}

func TestAnswersValidate(t *testing.T) {
	for _, in := range []string{
		`{"plot": "Pie"}`,
		`{"coercion": {"b": "to_bytes"}}`,
		`{"fill": {"c": "fill with specific number"}}`,
		`{"outliers": {"columns": ["a"], "operator": "=="}}`,
		`{"unknown": 1}`,
	} {
		_, err := DecodeAnswers([]byte(in), ".json")
		assert.Error(t, err, in)
	}
	_, err := DecodeAnswers([]byte("x"), ".ini")
	assert.Error(t, err)
}

func TestTerminal(t *testing.T) {
	in := strings.Join([]string{
		"2",    // Histograms
		"yes",  // remove outliers
		"1, b", // columns
		"9",    // out of range, asked again
		">=",   // operator
		"abc",  // not a number
		"2.5",  // cutoff
		"3",    // mapping dictionary
		"fill with mean",
		"No",       // drop
		"Yes",      // rename
		"a",        // columns to rename
		"alpha",    // new name
		"Yes", "2", // dependent b
		"/tmp", "clean",
	}, "\n")
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader(in), &out)

	k, err := term.PlotType(ctx)
	require.NoError(t, err)
	assert.Equal(t, plot.Histograms, k)

	o, err := term.Outliers(ctx, []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, &OutlierAnswer{Columns: []string{"a", "b"}, Op: outliers.GreaterEqual, Cutoff: 2.5}, o)
	assert.Contains(t, out.String(), "please pick")
	assert.Contains(t, out.String(), "please enter a number")

	cs, err := term.CoercionStrategy(ctx, "s", prep.KindString)
	require.NoError(t, err)
	assert.Equal(t, coerce.Mapping, cs)

	fs, err := term.FillStrategy(ctx, "x", 2)
	require.NoError(t, err)
	assert.Equal(t, impute.Mean, fs)

	drop, err := term.DropColumns(ctx, []string{"a", "b"})
	require.NoError(t, err)
	assert.Empty(t, drop)

	pairs, err := term.RenameColumns(ctx, []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []columns.Pair{{From: "a", To: "alpha"}}, pairs)

	dep, known, err := term.DependentVariable(ctx, []string{"a", "b"})
	require.NoError(t, err)
	assert.True(t, known)
	assert.Equal(t, "b", dep)

	dir, name, err := term.ExportTarget(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/tmp", dir)
	assert.Equal(t, "clean", name)

	_, err = term.FillValue(ctx, "x")
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
}

func TestTerminalNumberNeedsFinite(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader("nan\ninf\n+Inf\n-7.5\n"), &out)
	v, err := term.FillValue(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, -7.5, v)
	assert.Equal(t, 3, strings.Count(out.String(), "please enter a number"))
}

func TestRender(t *testing.T) {
	c := prep.NewIntColumn("a", 0)
	c.Append(1)
	f, err := prep.FromColumns(c)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Snapshot{Title: "Raw", Frame: f, Views: []View{Head, Dtypes, Describe, Header}, Text: "done"}))
	for _, want := range []string{"== Raw ==", "1 rows x 1 columns", "int64", "mean", "columns: a", "done"} {
		assert.Contains(t, buf.String(), want)
	}
}
