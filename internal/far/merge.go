package far

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sagarbarkade/INNControl-MA/internal/dates"
	"github.com/sagarbarkade/INNControl-MA/internal/layout"
	"github.com/sagarbarkade/INNControl-MA/internal/model"
	"github.com/sagarbarkade/INNControl-MA/internal/runlog"
)

// dedupKey identifies a row by purchase date, details and recorded amount.
// Dates stringify as ISO when parseable and raw text otherwise, so a bad
// date still dedupes against the same bad date.
func dedupKey(dateRaw string, date time.Time, details string, amount decimal.Decimal) string {
	d := strings.TrimSpace(dateRaw)
	if !date.IsZero() {
		d = date.Format("2006-01-02")
	}
	return d + "|" + strings.TrimSpace(details) + "|" + amount.String()
}

// MergeTransactions extracts candidate rows for each known category from
// the transactions grid and appends only those not already present in the
// category's table. Returns the number of rows added. Running it twice
// against an unchanged grid adds nothing the second time.
func MergeTransactions(grid [][]string, tables []*model.CategoryTable, dateFormat string, log *runlog.Log) int {
	if len(tables) == 0 {
		return 0
	}

	byName := make(map[string]*model.CategoryTable, len(tables))
	for _, t := range tables {
		byName[t.Name] = t
	}

	colDate, colDetails := headerColumns(grid)

	keys := make(map[string]map[string]bool, len(tables))
	for _, t := range tables {
		set := make(map[string]bool, len(t.Rows))
		for _, r := range t.Rows {
			set[dedupKey(r.PurchaseRaw, r.PurchaseDate, r.Details, r.Amount())] = true
		}
		keys[t.Name] = set
	}

	added := 0
	i := layout.TransHeaderRow
	for i < len(grid) {
		label := strings.TrimSpace(cell(grid, i, 0))
		if label == "" || strings.ToLower(label) == "total" {
			i++
			continue
		}
		t, ok := byName[label]
		if !ok {
			i++
			continue
		}

		dataStart := i + 1
		dataEnd := dataStart
		for dataEnd < len(grid) {
			v := strings.ToLower(strings.TrimSpace(cell(grid, dataEnd, 0)))
			if strings.HasPrefix(v, "total") {
				break
			}
			dataEnd++
		}

		blockAdded := 0
		for r := dataStart; r < dataEnd; r++ {
			first := strings.ToLower(strings.TrimSpace(cell(grid, r, 0)))
			if first == "opening balance" || first == "closing balance" {
				continue
			}
			dateRaw := strings.TrimSpace(cell(grid, r, colDate))
			details := strings.TrimSpace(cell(grid, r, colDetails))
			cost := model.ParseAmount(cell(grid, r, layout.TransCostCol-1))
			if dateRaw == "" && details == "" && cost.IsZero() {
				continue
			}

			date, _ := dates.ParseCell(dateRaw, dateFormat)
			key := dedupKey(dateRaw, date, details, cost)
			if keys[t.Name][key] {
				continue
			}
			keys[t.Name][key] = true
			t.NewRow(dateRaw, date, details, cost)
			blockAdded++
		}
		if blockAdded > 0 {
			log.Add("far-merge", t.Name, "merged %d new transaction row(s)", blockAdded)
		}
		added += blockAdded

		i = dataEnd + 1
	}
	return added
}

// headerColumns resolves the purchase-date and details columns from the
// fixed transactions header row, case-insensitively, falling back to the
// fixed positions when the labels are absent.
func headerColumns(grid [][]string) (dateCol, detailsCol int) {
	dateCol = layout.TransDateCol - 1
	detailsCol = layout.TransDetailsCol - 1
	if layout.TransHeaderRow-1 >= len(grid) {
		return dateCol, detailsCol
	}
	for idx, h := range grid[layout.TransHeaderRow-1] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "purchase date":
			dateCol = idx
		case "details":
			detailsCol = idx
		}
	}
	return dateCol, detailsCol
}
