// Package dataio is the file boundary of a run: it loads the raw dataset
// and exports the cleaned one.
package dataio

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/wdm0006/modelprep/pkg/io/csvio"
	"github.com/wdm0006/modelprep/pkg/io/jsonlio"
	"github.com/wdm0006/modelprep/pkg/io/parquetio"
	"github.com/wdm0006/modelprep/pkg/io/xlsxio"
	"github.com/wdm0006/modelprep/pkg/prep"
)

// LoadOptions tune how input files are parsed.
type LoadOptions struct {
	Delimiter rune     // 0 = sniff
	Sheet     string   // xlsx only; "" = first sheet
	NAValues  []string // nil = defaults
	Strict    bool
	// Logger receives repairs made to ragged CSV records; nil discards them.
	Logger    *slog.Logger
}

// Format names an input or output file format.
type Format string

const (
	CSV     Format = "csv"
	JSON    Format = "json"
	XLSX    Format = "xlsx"
	Parquet Format = "parquet"
)

// FormatOf guesses the format from the path, ignoring a compression
// suffix. Anything unrecognised is treated as delimited text.
func FormatOf(path string) Format {
	p := strings.ToLower(path)
	p = strings.TrimSuffix(strings.TrimSuffix(p, ".gz"), ".xz")
	switch filepath.Ext(p) {
	case ".json", ".jsonl", ".ndjson":
		return JSON
	case ".xlsx", ".xlsm":
		return XLSX
	case ".parquet":
		return Parquet
	}
	return CSV
}

// Load reads path into a Frame. Every failure is a *prep.LoadError.
func Load(path string, opt LoadOptions) (*prep.Frame, error) {
	if path != "-" {
		st, err := os.Stat(path)
		if err != nil {
			return nil, &prep.LoadError{Path: path, Err: err}
		}
		if st.IsDir() {
			return nil, &prep.LoadError{Path: path, Err: errors.New("is a directory")}
		}
	}
	f, err := load(path, opt)
	if err != nil {
		return nil, &prep.LoadError{Path: path, Err: err}
	}
	if f.Cols() == 0 {
		return nil, &prep.LoadError{Path: path, Err: errors.New("no columns")}
	}
	return f, nil
}

func load(path string, opt LoadOptions) (*prep.Frame, error) {
	switch FormatOf(path) {
	case JSON:
		r, c, err := jsonlio.Open(path, jsonlio.ReaderOptions{NAValues: opt.NAValues})
		if err != nil {
			return nil, err
		}
		defer func() { _ = c.Close() }()
		return r.Read()
	case XLSX:
		return xlsxio.Read(path, xlsxio.ReaderOptions{Sheet: opt.Sheet, NAValues: opt.NAValues})
	case Parquet:
		return parquetio.Read(path)
	}
	r, c, err := csvio.Open(path, csvio.ReaderOptions{Delimiter: opt.Delimiter, NAValues: opt.NAValues, Strict: opt.Strict})
	if err != nil {
		return nil, err
	}
	defer func() { _ = c.Close() }()
	f, err := r.Read()
	if err != nil {
		return nil, err
	}
	if w := r.Warnings(); w != "" && opt.Logger != nil {
		opt.Logger.Warn("repaired ragged records", "path", path, "detail", w)
	}
	return f, nil
}
