package parquetio

import (
	"io"
	"os"

	"github.com/pkg/errors"
	parquet "github.com/segmentio/parquet-go"

	"github.com/wdm0006/modelprep/pkg/prep"
)

// Read loads a flat Parquet file. Boolean, integer and floating point
// columns keep their kind; every other column is read as text.
func Read(path string) (*prep.Frame, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()
	st, err := fh.Stat()
	if err != nil {
		return nil, err
	}
	pf, err := parquet.OpenFile(fh, st.Size())
	if err != nil {
		return nil, errors.Wrapf(err, "parquet %s", path)
	}

	fields := pf.Schema().Fields()
	cols := make([]prep.Column, len(fields))
	for i, fd := range fields {
		if !fd.Leaf() {
			return nil, errors.Errorf("nested column %s is not tabular", fd.Name())
		}
		switch fd.Type().Kind() {
		case parquet.Boolean:
			cols[i] = prep.NewBoolColumn(fd.Name(), 0)
		case parquet.Int32, parquet.Int64:
			cols[i] = prep.NewIntColumn(fd.Name(), 0)
		case parquet.Float, parquet.Double:
			cols[i] = prep.NewFloatColumn(fd.Name(), 0)
		default:
			cols[i] = prep.NewStringColumn(fd.Name(), 0)
		}
	}

	buf := make([]parquet.Row, 256)
	for _, rg := range pf.RowGroups() {
		rows := rg.Rows()
		for {
			n, err := rows.ReadRows(buf)
			for _, row := range buf[:n] {
				appendRow(cols, row)
			}
			if err == io.EOF {
				break
			}
			if err != nil {
				_ = rows.Close()
				return nil, errors.Wrapf(err, "parquet %s", path)
			}
		}
		_ = rows.Close()
	}
	return prep.FromColumns(cols...)
}

func appendRow(cols []prep.Column, row parquet.Row) {
	set := make([]bool, len(cols))
	for _, v := range row {
		i := v.Column()
		if i < 0 || i >= len(cols) || set[i] {
			continue
		}
		set[i] = true
		if v.IsNull() {
			appendNull(cols[i])
			continue
		}
		switch c := cols[i].(type) {
		case *prep.BoolColumn:
			c.Append(v.Boolean())
		case *prep.IntColumn:
			if v.Kind() == parquet.Int32 {
				c.Append(int64(v.Int32()))
			} else {
				c.Append(v.Int64())
			}
		case *prep.FloatColumn:
			if v.Kind() == parquet.Float {
				c.Append(float64(v.Float()))
			} else {
				c.Append(v.Double())
			}
		case *prep.StringColumn:
			c.Append(string(v.ByteArray()))
		}
	}
	for i, ok := range set {
		if !ok {
			appendNull(cols[i])
		}
	}
}

func appendNull(c prep.Column) {
	switch col := c.(type) {
	case *prep.BoolColumn:
		col.AppendNull()
	case *prep.IntColumn:
		col.AppendNull()
	case *prep.FloatColumn:
		col.AppendNull()
	case *prep.StringColumn:
		col.AppendNull()
	}
}
