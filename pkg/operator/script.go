package operator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v3"

	"github.com/wdm0006/modelprep/pkg/plot"
	"github.com/wdm0006/modelprep/pkg/prep"
	"github.com/wdm0006/modelprep/pkg/transform/coerce"
	"github.com/wdm0006/modelprep/pkg/transform/columns"
	"github.com/wdm0006/modelprep/pkg/transform/impute"
	"github.com/wdm0006/modelprep/pkg/transform/outliers"
)

// Answers is a complete set of decisions for one run. Absent answers mean
// "No" or skip.
type Answers struct {
	Plot       string             `json:"plot" yaml:"plot" toml:"plot"`
	Outliers   *OutlierAnswer     `json:"outliers" yaml:"outliers" toml:"outliers"`
	Coercion   map[string]string  `json:"coercion" yaml:"coercion" toml:"coercion"`
	Fill       map[string]string  `json:"fill" yaml:"fill" toml:"fill"`
	FillValues map[string]float64 `json:"fill_values" yaml:"fill_values" toml:"fill_values"`
	Drop       []string           `json:"drop" yaml:"drop" toml:"drop"`
	Rename     []columns.Pair     `json:"rename" yaml:"rename" toml:"rename"`
	Dependent  string             `json:"dependent" yaml:"dependent" toml:"dependent"`
	Export     struct {
		Dir  string `json:"dir" yaml:"dir" toml:"dir"`
		Name string `json:"name" yaml:"name" toml:"name"`
	} `json:"export" yaml:"export" toml:"export"`
}

// Validate checks that every enumerated answer is one the run understands.
func (a *Answers) Validate() error {
	if a.Plot != "" {
		if _, err := plot.ParseKind(a.Plot); err != nil {
			return err
		}
	}
	if a.Outliers != nil {
		if _, err := outliers.ParseOp(string(a.Outliers.Op)); err != nil {
			return err
		}
	}
	for col, s := range a.Coercion {
		if _, err := coerce.ParseStrategy(s); err != nil {
			return errors.Wrapf(err, "coercion of %s", col)
		}
	}
	for col, s := range a.Fill {
		st, err := impute.ParseStrategy(s)
		if err != nil {
			return errors.Wrapf(err, "fill of %s", col)
		}
		if _, ok := a.FillValues[col]; st == impute.Constant && !ok {
			return fmt.Errorf("fill of %s: no fill value", col)
		}
	}
	return nil
}

// DecodeAnswers parses b as YAML, TOML or JSON according to ext.
func DecodeAnswers(b []byte, ext string) (*Answers, error) {
	var a Answers
	var err error
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &a)
	case ".toml":
		err = toml.Unmarshal(b, &a)
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		err = dec.Decode(&a)
	default:
		return nil, fmt.Errorf("unsupported answers format %q", ext)
	}
	if err != nil {
		return nil, err
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

// LoadAnswers reads an answers file, choosing the decoder by extension.
func LoadAnswers(path string) (*Answers, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read answers")
	}
	a, err := DecodeAnswers(b, filepath.Ext(path))
	return a, errors.Wrapf(err, "answers %s", path)
}

// Script replays Answers. A question asked again after an error gets the
// same answer, so the run's attempt limit ends the loop.
type Script struct {
	Answers *Answers
	// Out receives snapshots and warnings; nil discards them.
	Out io.Writer
}

func NewScript(a *Answers, out io.Writer) *Script {
	if out == nil {
		out = io.Discard
	}
	return &Script{Answers: a, Out: out}
}

func (s *Script) Show(ctx context.Context, snap Snapshot) error { return Render(s.Out, snap) }

func (s *Script) Warn(ctx context.Context, err error) { fmt.Fprintf(s.Out, "error: %v\n", err) }

func (s *Script) PlotType(ctx context.Context) (plot.Kind, error) {
	return plot.Kind(s.Answers.Plot), ctx.Err()
}

func (s *Script) Outliers(ctx context.Context, candidates []string) (*OutlierAnswer, error) {
	if s.Answers.Outliers == nil || len(s.Answers.Outliers.Columns) == 0 {
		return nil, ctx.Err()
	}
	ans := *s.Answers.Outliers
	return &ans, ctx.Err()
}

func (s *Script) CoercionStrategy(ctx context.Context, column string, kind prep.Kind) (coerce.Strategy, error) {
	st, ok := s.Answers.Coercion[column]
	if !ok {
		return coerce.Skip, ctx.Err()
	}
	return coerce.Strategy(st), ctx.Err()
}

func (s *Script) FillStrategy(ctx context.Context, column string, missing int) (impute.Strategy, error) {
	st, ok := s.Answers.Fill[column]
	if !ok {
		return impute.Skip, ctx.Err()
	}
	return impute.Strategy(st), ctx.Err()
}

func (s *Script) FillValue(ctx context.Context, column string) (float64, error) {
	v, ok := s.Answers.FillValues[column]
	if !ok {
		return 0, fmt.Errorf("no fill value for %s", column)
	}
	return v, ctx.Err()
}

func (s *Script) DropColumns(ctx context.Context, names []string) ([]string, error) {
	return s.Answers.Drop, ctx.Err()
}

func (s *Script) RenameColumns(ctx context.Context, names []string) ([]columns.Pair, error) {
	return s.Answers.Rename, ctx.Err()
}

func (s *Script) DependentVariable(ctx context.Context, names []string) (string, bool, error) {
	return s.Answers.Dependent, s.Answers.Dependent != "", ctx.Err()
}

func (s *Script) ExportTarget(ctx context.Context) (string, string, error) {
	e := s.Answers.Export
	if e.Name == "" {
		return "", "", errors.New("answers have no export name")
	}
	dir := e.Dir
	if dir == "" {
		dir = "."
	}
	return dir, e.Name, ctx.Err()
}
