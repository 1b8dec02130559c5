package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Results"

// BuildXLSX renders the report items as a single-sheet workbook with
// fixed columns (#, Item, Status, Comment) and returns the binary buffer.
func BuildXLSX(meta Meta, data *Data) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return nil, err
	}

	for col, header := range []string{"#", "Item", "Status", "Comment"} {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(xlsxSheet, cell, header); err != nil {
			return nil, err
		}
	}

	for i, it := range data.Items {
		row := i + 2
		values := []interface{}{it.Idx, it.ID, it.Status, it.Comment}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(xlsxSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	title := meta.Title
	if title == "" {
		title = "Audit Report"
	}
	if err := f.SetDocProps(&excelize.DocProperties{
		Title:       title,
		Description: fmt.Sprintf("total %d, pass %d, fail %d, na %d, unknown %d", data.Summary.Total, data.Summary.Pass, data.Summary.Fail, data.Summary.NA, data.Summary.Unknown),
	}); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
