package csvio

import (
	"encoding/csv"
	"io"

	"github.com/pkg/errors"
	iox "github.com/wdm0006/modelprep/pkg/io/ioutils"
	"github.com/wdm0006/modelprep/pkg/prep"
)

type WriterOptions struct {
	Delimiter rune // default ','
}

// WriteAll writes a Frame to a CSV file with headers. A ".gz" path is
// compressed; "-" writes to stdout.
func WriteAll(path string, f *prep.Frame, opt WriterOptions) (err error) {
	out, err := iox.CreateMaybeCompressed(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = errors.Wrapf(cerr, "close %s", path)
		}
	}()
	return Write(out, f, opt)
}

// Write renders f as CSV: a header row with the column names, then one row
// per record. Missing cells are empty and there is no index column.
func Write(out io.Writer, f *prep.Frame, opt WriterOptions) error {
	w := csv.NewWriter(out)
	if opt.Delimiter != 0 {
		w.Comma = opt.Delimiter
	}
	if err := w.Write(f.Names()); err != nil {
		return err
	}
	row := make([]string, f.Cols())
	for r := 0; r < f.Rows(); r++ {
		for c := range row {
			row[c] = f.Column(c).Format(r)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
