// Package parquetio stores frames as Parquet files and reads them back.
package parquetio

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	local "github.com/xitongsys/parquet-go-source/local"
	pw "github.com/xitongsys/parquet-go/writer"

	"github.com/wdm0006/modelprep/pkg/prep"
)

type field struct {
	Tag string `json:"Tag"`
}

type schema struct {
	Tag    string  `json:"Tag"`
	Fields []field `json:"Fields"`
}

// parquetSchemaJSON builds the JSON schema parquet-go's JSONWriter expects.
// Every column is OPTIONAL so missing cells become nulls.
func parquetSchemaJSON(s prep.Schema) (string, error) {
	sc := schema{Tag: "name=schema, repetitiontype=REQUIRED"}
	for _, cs := range s.Columns {
		if strings.ContainsAny(cs.Name, ",=") {
			return "", fmt.Errorf("column name %q cannot be stored in parquet", cs.Name)
		}
		tag := "name=" + cs.Name + ", repetitiontype=OPTIONAL, type="
		switch cs.Type {
		case prep.KindFloat:
			tag += "DOUBLE"
		case prep.KindInt:
			tag += "INT64"
		case prep.KindBool:
			tag += "BOOLEAN"
		default:
			tag += "BYTE_ARRAY, convertedtype=UTF8"
		}
		sc.Fields = append(sc.Fields, field{Tag: tag})
	}
	b, err := json.Marshal(sc)
	return string(b), err
}

// WriteAll writes a Frame to a Parquet file using parquet-go JSONWriter.
// Time cells are stored as RFC3339 text.
func WriteAll(path string, f *prep.Frame) (err error) {
	sc, err := parquetSchemaJSON(f.Schema())
	if err != nil {
		return err
	}
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer func() {
		if cerr := fw.Close(); err == nil && cerr != nil {
			err = errors.Wrapf(cerr, "close %s", path)
		}
	}()
	writer, err := pw.NewJSONWriter(sc, fw, 4)
	if err != nil {
		return errors.Wrap(err, "parquet writer init")
	}
	for r := 0; r < f.Rows(); r++ {
		rec := make(map[string]any, f.Cols())
		for c := 0; c < f.Cols(); c++ {
			switch col := f.Column(c).(type) {
			case *prep.FloatColumn:
				if v, ok := col.Get(r); ok {
					rec[col.Name()] = v
				}
			case *prep.IntColumn:
				if v, ok := col.Get(r); ok {
					rec[col.Name()] = v
				}
			case *prep.BoolColumn:
				if v, ok := col.Get(r); ok {
					rec[col.Name()] = v
				}
			default:
				if !col.IsNull(r) {
					rec[col.Name()] = col.Format(r)
				}
			}
		}
		b, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		if err := writer.Write(string(b)); err != nil {
			return errors.Wrapf(err, "parquet write row %d", r)
		}
	}
	return errors.Wrap(writer.WriteStop(), "parquet flush")
}
