package summary

import (
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sagarbarkade/INNControl-MA/internal/layout"
	"github.com/sagarbarkade/INNControl-MA/internal/model"
	"github.com/sagarbarkade/INNControl-MA/internal/runlog"
	"github.com/sagarbarkade/INNControl-MA/internal/workbook"
)

// coreSheets are never finalized or deleted.
var coreSheets = map[string]bool{
	layout.SheetFAR:          true,
	layout.SheetTransactions: true,
	layout.SheetMappings:     true,
	layout.SheetPL:           true,
}

// noDataMarker flags an account sheet whose summary table stayed empty.
// DeleteEmptySheets removes sheets carrying it.
const noDataMarker = "No data found"

// FinalizeSheets sweeps every account sheet, promotes the summary
// table's last numeric figure into the C8 headline cell when one is
// missing, marks sheets with no table at all, and sizes columns to fit.
func FinalizeSheets(wb *workbook.Workbook, log *runlog.Log) error {
	for _, sheet := range wb.SheetNames() {
		if coreSheets[sheet] {
			continue
		}
		if err := finalizeSheet(wb, sheet, log); err != nil {
			return err
		}
	}
	return nil
}

func finalizeSheet(wb *workbook.Workbook, sheet string, log *runlog.Log) error {
	grid, err := wb.Rows(sheet)
	if err != nil {
		return err
	}

	lastRow := 0
	for r := len(grid); r >= layout.SummaryStartRow; r-- {
		if strings.TrimSpace(cell(grid, r-1, 0)) != "" {
			lastRow = r
			break
		}
	}
	if lastRow == 0 {
		log.Add("finalize", sheet, "no summary table")
		return wb.File().SetCellValue(sheet, layout.SummaryValueCell, noDataMarker)
	}

	lastCol := 0
	for c := len(grid[lastRow-1]); c >= 1; c-- {
		if strings.TrimSpace(cell(grid, lastRow-1, c-1)) != "" {
			lastCol = c
			break
		}
	}

	headline, _ := wb.File().GetCellValue(sheet, layout.SummaryValueCell)
	if strings.TrimSpace(headline) == "" {
		value, found := "", false
		for c := 1; c <= lastCol; c++ {
			v := cell(grid, lastRow-1, c-1)
			if _, ok := model.ParseAmountStrict(v); ok {
				value, found = v, true
			}
		}
		if found {
			d, _ := model.ParseAmountStrict(value)
			if err := wb.File().SetCellValue(sheet, layout.SummaryValueCell, f64(d)); err != nil {
				return err
			}
		} else if err := wb.File().SetCellValue(sheet, layout.SummaryValueCell, "No numeric summary value"); err != nil {
			return err
		}
	}

	return fitColumns(wb, sheet, grid, lastRow, lastCol)
}

// fitColumns widens each summary column to its longest value plus
// padding.
func fitColumns(wb *workbook.Workbook, sheet string, grid [][]string, lastRow, lastCol int) error {
	for c := 1; c <= lastCol; c++ {
		width := 0
		for r := layout.SummaryStartRow; r <= lastRow; r++ {
			if n := len(cell(grid, r-1, c-1)); n > width {
				width = n
			}
		}
		if width == 0 {
			continue
		}
		name, err := excelize.ColumnNumberToName(c)
		if err != nil {
			return err
		}
		if err := wb.File().SetColWidth(sheet, name, name, float64(width+2)); err != nil {
			return err
		}
	}
	return nil
}

// DeleteEmptySheets drops every account sheet FinalizeSheets marked as
// having no data. Returns the deleted sheet names.
func DeleteEmptySheets(wb *workbook.Workbook, log *runlog.Log) ([]string, error) {
	var deleted []string
	for _, sheet := range wb.SheetNames() {
		if coreSheets[sheet] {
			continue
		}
		v, err := wb.File().GetCellValue(sheet, layout.SummaryValueCell)
		if err != nil {
			return nil, err
		}
		if v == noDataMarker {
			if err := wb.DeleteSheet(sheet); err != nil {
				return nil, err
			}
			deleted = append(deleted, sheet)
			log.Add("finalize", sheet, "deleted empty sheet")
		}
	}
	return deleted, nil
}
