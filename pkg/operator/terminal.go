package operator

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/wdm0006/modelprep/pkg/plot"
	"github.com/wdm0006/modelprep/pkg/prep"
	"github.com/wdm0006/modelprep/pkg/transform/coerce"
	"github.com/wdm0006/modelprep/pkg/transform/columns"
	"github.com/wdm0006/modelprep/pkg/transform/impute"
	"github.com/wdm0006/modelprep/pkg/transform/outliers"
)

// Terminal asks questions line by line. Choices can be answered by
// number or by their text.
type Terminal struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewScanner(in), out: out}
}

func (t *Terminal) ask(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprintf(t.out, "%s ", prompt)
	if !t.in.Scan() {
		if err := t.in.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimSpace(t.in.Text()), nil
}

// choose repeats the question until one of options is picked.
func (t *Terminal) choose(ctx context.Context, prompt string, options []string) (string, error) {
	for i, o := range options {
		fmt.Fprintf(t.out, "  %d) %s\n", i+1, o)
	}
	for {
		ans, err := t.ask(ctx, prompt)
		if err != nil {
			return "", err
		}
		if n, err := strconv.Atoi(ans); err == nil && n >= 1 && n <= len(options) {
			return options[n-1], nil
		}
		for _, o := range options {
			if strings.EqualFold(ans, o) {
				return o, nil
			}
		}
		fmt.Fprintf(t.out, "please pick 1-%d\n", len(options))
	}
}

func (t *Terminal) yes(ctx context.Context, prompt string) (bool, error) {
	ans, err := t.choose(ctx, prompt, []string{"Yes", "No"})
	return ans == "Yes", err
}

// pick reads a comma separated list of option numbers or names. Unknown
// names are passed through so the run can reject them.
func (t *Terminal) pick(ctx context.Context, prompt string, options []string) ([]string, error) {
	for i, o := range options {
		fmt.Fprintf(t.out, "  %d) %s\n", i+1, o)
	}
	ans, err := t.ask(ctx, prompt)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, part := range strings.Split(ans, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if n, err := strconv.Atoi(part); err == nil && n >= 1 && n <= len(options) {
			part = options[n-1]
		}
		out = append(out, part)
	}
	return out, nil
}

func (t *Terminal) number(ctx context.Context, prompt string) (float64, error) {
	for {
		ans, err := t.ask(ctx, prompt)
		if err != nil {
			return 0, err
		}
		if v, err := strconv.ParseFloat(ans, 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
			return v, nil
		}
		fmt.Fprintln(t.out, "please enter a number")
	}
}

func (t *Terminal) Show(ctx context.Context, s Snapshot) error { return Render(t.out, s) }

func (t *Terminal) Warn(ctx context.Context, err error) { fmt.Fprintf(t.out, "error: %v\n", err) }

func (t *Terminal) PlotType(ctx context.Context) (plot.Kind, error) {
	opts := make([]string, 0, len(plot.Kinds)+1)
	for _, k := range plot.Kinds {
		opts = append(opts, string(k))
	}
	opts = append(opts, "None")
	ans, err := t.choose(ctx, "Which plot would you like to see?", opts)
	if err != nil || ans == "None" {
		return "", err
	}
	return plot.Kind(ans), nil
}

func (t *Terminal) Outliers(ctx context.Context, candidates []string) (*OutlierAnswer, error) {
	ok, err := t.yes(ctx, "Do you want to remove outliers?")
	if err != nil || !ok {
		return nil, err
	}
	cols, err := t.pick(ctx, "Columns with outliers (comma separated):", candidates)
	if err != nil || len(cols) == 0 {
		return nil, err
	}
	ops := make([]string, len(outliers.Ops))
	for i, o := range outliers.Ops {
		ops[i] = string(o)
	}
	op, err := t.choose(ctx, "Remove rows where the value is:", ops)
	if err != nil {
		return nil, err
	}
	cut, err := t.number(ctx, "Cutoff value:")
	if err != nil {
		return nil, err
	}
	return &OutlierAnswer{Columns: cols, Op: outliers.Op(op), Cutoff: cut}, nil
}

func (t *Terminal) CoercionStrategy(ctx context.Context, column string, kind prep.Kind) (coerce.Strategy, error) {
	opts := make([]string, 0, len(coerce.Strategies)+1)
	for _, s := range coerce.Strategies {
		opts = append(opts, string(s))
	}
	opts = append(opts, string(coerce.Skip))
	ans, err := t.choose(ctx, fmt.Sprintf("How should %s (%s) be converted?", column, kind), opts)
	return coerce.Strategy(ans), err
}

func (t *Terminal) FillStrategy(ctx context.Context, column string, missing int) (impute.Strategy, error) {
	opts := make([]string, 0, len(impute.Strategies)+1)
	for _, s := range impute.Strategies {
		opts = append(opts, string(s))
	}
	opts = append(opts, string(impute.Skip))
	ans, err := t.choose(ctx, fmt.Sprintf("%s has %d missing values. How should they be handled?", column, missing), opts)
	return impute.Strategy(ans), err
}

func (t *Terminal) FillValue(ctx context.Context, column string) (float64, error) {
	return t.number(ctx, fmt.Sprintf("Value to fill %s with:", column))
}

func (t *Terminal) DropColumns(ctx context.Context, names []string) ([]string, error) {
	ok, err := t.yes(ctx, "Do you want to drop any columns?")
	if err != nil || !ok {
		return nil, err
	}
	return t.pick(ctx, "Columns to drop (comma separated):", names)
}

func (t *Terminal) RenameColumns(ctx context.Context, names []string) ([]columns.Pair, error) {
	ok, err := t.yes(ctx, "Do you want to rename any columns?")
	if err != nil || !ok {
		return nil, err
	}
	cols, err := t.pick(ctx, "Columns to rename (comma separated):", names)
	if err != nil {
		return nil, err
	}
	pairs := make([]columns.Pair, 0, len(cols))
	for _, c := range cols {
		to, err := t.ask(ctx, fmt.Sprintf("New name for %s:", c))
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, columns.Pair{From: c, To: to})
	}
	return pairs, nil
}

func (t *Terminal) DependentVariable(ctx context.Context, names []string) (string, bool, error) {
	ok, err := t.yes(ctx, "Do you know the dependent variable?")
	if err != nil || !ok {
		return "", false, err
	}
	name, err := t.choose(ctx, "Dependent variable:", names)
	return name, err == nil, err
}

func (t *Terminal) ExportTarget(ctx context.Context) (string, string, error) {
	dir, err := t.ask(ctx, "Output directory:")
	if err != nil {
		return "", "", err
	}
	name, err := t.ask(ctx, "File name (without extension):")
	return dir, name, err
}
