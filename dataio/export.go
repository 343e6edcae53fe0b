package dataio

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/wdm0006/modelprep/pkg/io/csvio"
	"github.com/wdm0006/modelprep/pkg/io/parquetio"
	"github.com/wdm0006/modelprep/pkg/io/xlsxio"
	"github.com/wdm0006/modelprep/pkg/prep"
)

// ExportOptions select the output format. The zero value writes
// comma-separated CSV.
type ExportOptions struct {
	Format    Format
	Delimiter rune
}

// ExportPath is {dir}/{name}.{ext} for the chosen format.
func ExportPath(dir, name string, format Format) string {
	if format == "" {
		format = CSV
	}
	return filepath.Join(dir, name+"."+string(format))
}

// Export writes f under dir and returns the path written. Every failure
// is a *prep.ExportError and leaves f untouched.
func Export(dir, name string, f *prep.Frame, opt ExportOptions) (string, error) {
	path := ExportPath(dir, name, opt.Format)
	if name == "" || filepath.Base(name) != name {
		return path, &prep.ExportError{Path: path, Err: fmt.Errorf("invalid file name %q", name)}
	}
	st, err := os.Stat(dir)
	if err != nil {
		return path, &prep.ExportError{Path: path, Err: err}
	}
	if !st.IsDir() {
		return path, &prep.ExportError{Path: path, Err: errors.Errorf("%s is not a directory", dir)}
	}
	switch opt.Format {
	case "", CSV:
		err = csvio.WriteAll(path, f, csvio.WriterOptions{Delimiter: opt.Delimiter})
	case Parquet:
		err = parquetio.WriteAll(path, f)
	case XLSX:
		err = xlsxio.Write(path, f, "")
	default:
		err = errors.Errorf("unsupported export format %q", opt.Format)
	}
	if err != nil {
		_ = os.Remove(path)
		return path, &prep.ExportError{Path: path, Err: err}
	}
	return path, nil
}
