package far

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sagarbarkade/INNControl-MA/internal/layout"
	"github.com/sagarbarkade/INNControl-MA/internal/model"
)

// Render clears the FAR sheet below the header metadata and lays the
// recalculated tables back out sequentially. Returns the row after the
// last written block.
func Render(f *excelize.File, tables []*model.CategoryTable, period model.Period, dateFormat string) (int, error) {
	if err := clearBelow(f, layout.SheetFAR, layout.FARScanStartRow); err != nil {
		return 0, err
	}

	widths := map[int]int{}
	cursor := layout.FARScanStartRow
	for _, t := range tables {
		next, err := renderTable(f, t, period, dateFormat, cursor, widths)
		if err != nil {
			return 0, fmt.Errorf("rendering table %s: %w", t.Name, err)
		}
		cursor = next
	}

	for col, width := range widths {
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return 0, err
		}
		if err := f.SetColWidth(layout.SheetFAR, name, name, float64(width+2)); err != nil {
			return 0, err
		}
	}
	return cursor, nil
}

// clearBelow blanks every populated cell from startRow down.
func clearBelow(f *excelize.File, sheet string, startRow int) error {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("reading %s: %w", sheet, err)
	}
	for r := startRow; r <= len(rows); r++ {
		for c := range rows[r-1] {
			cell, err := excelize.CoordinatesToCellName(c+1, r)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, nil); err != nil {
				return err
			}
		}
	}
	return nil
}

// renderTable writes one category block: title, rate line, headers, units,
// data rows with native formulas for the two derived columns, and a totals
// row. The caller's width map tracks the longest string per column.
func renderTable(f *excelize.File, t *model.CategoryTable, period model.Period, dateFormat string, startRow int, widths map[int]int) (int, error) {
	headers := tableHeaders(t, period)
	nCols := len(headers)

	// Column positions of the derived and summed columns (1-based).
	accCol := layout.FARColAccumDep
	firstMonthCol := len(StaticHeaders) + 1
	depCol := nCols - 1
	wdvCol := nCols

	set := func(row, col int, v any) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(layout.SheetFAR, cell, v); err != nil {
			return err
		}
		if s, ok := v.(string); ok {
			noteWidth(widths, col, len(s))
		} else if v != nil {
			noteWidth(widths, col, len(fmt.Sprint(v)))
		}
		return nil
	}
	formula := func(row, col int, expr string) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellFormula(layout.SheetFAR, cell, expr)
	}

	if err := set(startRow, 1, t.Name); err != nil {
		return 0, err
	}
	if err := set(startRow+1, 1, fmt.Sprintf("Depreciation rate: %.0f%%", t.RatePercent)); err != nil {
		return 0, err
	}

	headerRow := startRow + layout.FARHeaderRowOffset
	for i, h := range headers {
		if err := set(headerRow, i+1, h); err != nil {
			return 0, err
		}
	}

	unitsRow := headerRow + 1
	for i, unit := range columnUnits(nCols) {
		if err := set(unitsRow, i+1, unit); err != nil {
			return 0, err
		}
	}

	dataStart := unitsRow + 1
	for i, row := range t.Rows {
		r := dataStart + i
		if err := renderDataRow(f, t, row, r, dateFormat, set, formula, accCol, firstMonthCol, depCol, wdvCol); err != nil {
			return 0, err
		}
	}
	dataEnd := dataStart + len(t.Rows) - 1

	totalRow := dataEnd + 1
	if err := renderTotalsRow(t, totalRow, dataStart, dataEnd, nCols, set, formula); err != nil {
		return 0, err
	}

	return totalRow + 1 + layout.FARTableGapRows, nil
}

func renderDataRow(
	f *excelize.File, t *model.CategoryTable, row *model.AssetRow, r int, dateFormat string,
	set func(int, int, any) error, formula func(int, int, string) error,
	accCol, firstMonthCol, depCol, wdvCol int,
) error {
	date := row.PurchaseRaw
	if row.HasPurchaseDate() {
		date = row.PurchaseDate.Format(dateFormat)
	}
	if err := set(r, layout.FARColPurchaseDate, date); err != nil {
		return err
	}
	if err := set(r, layout.FARColDetails, row.Details); err != nil {
		return err
	}
	if err := set(r, layout.FARColCost, row.Cost.InexactFloat64()); err != nil {
		return err
	}
	if err := set(r, layout.FARColAddition, row.Addition.InexactFloat64()); err != nil {
		return err
	}
	if err := set(r, layout.FARColTotalCost, row.TotalCost.InexactFloat64()); err != nil {
		return err
	}
	if err := set(r, layout.FARColRate, fmt.Sprintf("%.0f%%", t.RatePercent)); err != nil {
		return err
	}
	if err := set(r, accCol, row.AccumulatedDep.InexactFloat64()); err != nil {
		return err
	}

	for i, label := range t.MonthLabels {
		cell := row.Months[label]
		if cell.Blank {
			continue
		}
		if err := set(r, firstMonthCol+i, cell.Amount.InexactFloat64()); err != nil {
			return err
		}
	}

	// Total Depreciation and WDV are written as native formulas so the
	// sheet stays live when a reviewer edits a month cell.
	accRef, err := excelize.CoordinatesToCellName(accCol, r)
	if err != nil {
		return err
	}
	refs := []string{accRef}
	for i := range t.MonthLabels {
		ref, err := excelize.CoordinatesToCellName(firstMonthCol+i, r)
		if err != nil {
			return err
		}
		refs = append(refs, ref)
	}
	if err := formula(r, depCol, fmt.Sprintf("SUM(%s)", strings.Join(refs, ","))); err != nil {
		return err
	}

	costRef, err := excelize.CoordinatesToCellName(layout.FARColTotalCost, r)
	if err != nil {
		return err
	}
	depRef, err := excelize.CoordinatesToCellName(depCol, r)
	if err != nil {
		return err
	}
	return formula(r, wdvCol, fmt.Sprintf("%s-%s", costRef, depRef))
}

// renderTotalsRow writes column SUM formulas over the data range for every
// numeric column; the details column carries the "Total" label and the rate
// column stays blank.
func renderTotalsRow(
	t *model.CategoryTable, totalRow, dataStart, dataEnd, nCols int,
	set func(int, int, any) error, formula func(int, int, string) error,
) error {
	if err := set(totalRow, layout.FARColDetails, "Total"); err != nil {
		return err
	}
	if len(t.Rows) == 0 {
		return nil
	}
	for col := 3; col <= nCols; col++ {
		if col == layout.FARColRate {
			continue
		}
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return err
		}
		if err := formula(totalRow, col, fmt.Sprintf("SUM(%s%d:%s%d)", name, dataStart, name, dataEnd)); err != nil {
			return err
		}
	}
	return nil
}

func tableHeaders(t *model.CategoryTable, period model.Period) []string {
	headers := append([]string{}, StaticHeaders...)
	headers = append(headers, t.MonthLabels...)
	headers = append(headers, "Total Depreciation"+period.HeaderSuffix(), "WDV"+period.HeaderSuffix())
	return headers
}

// columnUnits builds the units row by column role: blank for the date and
// details columns, "%" for the rate, "£" for every monetary column.
func columnUnits(nCols int) []string {
	units := make([]string, nCols)
	for col := 1; col <= nCols; col++ {
		switch col {
		case layout.FARColPurchaseDate, layout.FARColDetails:
			units[col-1] = ""
		case layout.FARColRate:
			units[col-1] = "%"
		default:
			units[col-1] = "£"
		}
	}
	return units
}

func noteWidth(widths map[int]int, col, n int) {
	if n > widths[col] {
		widths[col] = n
	}
}
