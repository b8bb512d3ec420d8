// Package far implements the Fixed Asset Register engine: parsing the
// embedded per-category tables, merging newly observed transactions,
// recomputing depreciation schedules and re-rendering the sheet.
package far

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sagarbarkade/INNControl-MA/internal/dates"
	"github.com/sagarbarkade/INNControl-MA/internal/layout"
	"github.com/sagarbarkade/INNControl-MA/internal/model"
	"github.com/sagarbarkade/INNControl-MA/internal/runlog"
)

// StaticHeaders is the fixed column set preceding the fiscal-month columns.
var StaticHeaders = []string{
	"Purchase Date",
	"Details",
	"Cost",
	"Addition",
	"Total Cost",
	"Depreciation Rate",
	"Accumulated Depreciation",
}

var ratePattern = regexp.MustCompile(`(?i)Depreciation rate\s*:\s*([\d.]+)%`)

// cell reads grid[row][col] (0-based) tolerating ragged rows.
func cell(grid [][]string, row, col int) string {
	if row < 0 || row >= len(grid) {
		return ""
	}
	r := grid[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// ParseTables scans the FAR grid for embedded category tables. A non-blank
// first cell starts a table; the next row should carry the depreciation
// rate line (defaulting to 0 with a diagnostic when it does not); the data
// block starts two rows below the rate line and ends at a second-column
// "Total" marker. Zero tables and zero-row tables are both valid.
func ParseTables(grid [][]string, fy model.FiscalYear, dateFormat string, log *runlog.Log) []*model.CategoryTable {
	labels := fy.MonthLabels()
	var tables []*model.CategoryTable

	i := layout.FARScanStartRow - 1
	for i < len(grid) {
		name := strings.TrimSpace(cell(grid, i, 0))
		if name == "" {
			i++
			continue
		}

		t := &model.CategoryTable{Name: name, MonthLabels: labels}
		rateLine := cell(grid, i+layout.FARRateRowOffset, 0)
		if m := ratePattern.FindStringSubmatch(rateLine); m != nil {
			if rate, err := strconv.ParseFloat(m[1], 64); err == nil {
				t.RatePercent = rate
			}
		} else {
			log.Add("far-parse", name, "no depreciation rate line, defaulting to 0%% (got %q)", strings.TrimSpace(rateLine))
		}

		dataStart := i + layout.FARDataRowOffset
		dataEnd := dataStart
		for dataEnd < len(grid) {
			if strings.EqualFold(strings.TrimSpace(cell(grid, dataEnd, layout.FARTerminatorCol-1)), "total") {
				break
			}
			dataEnd++
		}

		for r := dataStart; r < dataEnd; r++ {
			parseAssetRow(t, grid[r], dateFormat)
		}

		tables = append(tables, t)
		i = dataEnd + 1
		for i < len(grid) && blank(cell(grid, i, 0)) {
			i++
		}
	}
	return tables
}

// parseAssetRow converts one raw data row. Non-numeric amount cells coerce
// to zero; unparseable dates keep their raw text and disable the row's
// date-gated math downstream. Fully blank rows are dropped.
func parseAssetRow(t *model.CategoryTable, raw []string, dateFormat string) {
	get := func(col int) string {
		if col-1 < len(raw) {
			return raw[col-1]
		}
		return ""
	}

	allBlank := true
	for _, v := range raw {
		if !blank(v) {
			allBlank = false
			break
		}
	}
	if allBlank {
		return
	}

	dateRaw := strings.TrimSpace(get(layout.FARColPurchaseDate))
	date, _ := dates.ParseCell(dateRaw, dateFormat)

	row := t.NewRow(dateRaw, date, strings.TrimSpace(get(layout.FARColDetails)), model.ParseAmount(get(layout.FARColCost)))
	row.Addition = model.ParseAmount(get(layout.FARColAddition))
}
