package workbook

import (
	"fmt"
	"io"

	"github.com/shakinm/xlsReader/xls"
)

// XLSReader reads legacy BIFF8 (.xls) workbooks.
type XLSReader struct{}

// Format returns the file extension handled by the reader.
func (XLSReader) Format() string { return "xls" }

// Read returns every sheet of the workbook as cell text.
func (XLSReader) Read(r io.ReadSeeker) ([]Sheet, error) {
	wb, err := xls.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening xls: %w", err)
	}

	var sheets []Sheet
	for _, sh := range wb.GetSheets() {
		var rows [][]string
		for _, row := range sh.GetRows() {
			if row == nil {
				rows = append(rows, nil)
				continue
			}
			var cells []string
			for _, cell := range row.GetCols() {
				if cell == nil {
					cells = append(cells, "")
					continue
				}
				cells = append(cells, cell.GetString())
			}
			rows = append(rows, cells)
		}
		sheets = append(sheets, Sheet{Name: sh.GetName(), Rows: rows})
	}
	return sheets, nil
}
