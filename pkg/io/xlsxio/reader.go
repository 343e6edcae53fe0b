// Package xlsxio reads one worksheet of an XLSX workbook into a Frame.
package xlsxio

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	iox "github.com/wdm0006/modelprep/pkg/io/ioutils"
	"github.com/wdm0006/modelprep/pkg/prep"
)

type ReaderOptions struct {
	Sheet    string   // "" = first sheet
	NAValues []string // nil = ioutils.DefaultNAValues
}

// Read loads the sheet at path. The first row is the header; cells are read
// as their formatted text and kinds inferred like CSV input.
func Read(path string, opt ReaderOptions) (*prep.Frame, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer func() { _ = wb.Close() }()

	sheet := opt.Sheet
	if sheet == "" {
		sheets := wb.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("no sheets found in XLSX file")
		}
		sheet = sheets[0]
	}
	rows, err := wb.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "sheet %s", sheet)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %s has no rows", sheet)
	}
	header := iox.Header(rows[0])
	records := rows[1:]
	na := iox.NASet(opt.NAValues)
	return iox.BuildFrame(iox.InferSchema(header, records, na), records, na)
}

// Write stores f as the only sheet of a new workbook.
func Write(path string, f *prep.Frame, sheet string) error {
	wb := excelize.NewFile()
	defer func() { _ = wb.Close() }()
	if sheet == "" {
		sheet = "Sheet1"
	}
	if sheet != "Sheet1" {
		if err := wb.SetSheetName("Sheet1", sheet); err != nil {
			return err
		}
	}
	for c, name := range f.Names() {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		if err := wb.SetCellValue(sheet, cell, name); err != nil {
			return err
		}
	}
	for r := 0; r < f.Rows(); r++ {
		for c := 0; c < f.Cols(); c++ {
			col := f.Column(c)
			if col.IsNull(r) {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := wb.SetCellValue(sheet, cell, col.Format(r)); err != nil {
				return err
			}
		}
	}
	return errors.Wrapf(wb.SaveAs(path), "save %s", path)
}
