package summary

import (
	"fmt"
	"strings"

	"github.com/sagarbarkade/INNControl-MA/internal/config"
	"github.com/sagarbarkade/INNControl-MA/internal/layout"
	"github.com/sagarbarkade/INNControl-MA/internal/runlog"
	"github.com/sagarbarkade/INNControl-MA/internal/workbook"
)

// SplitAccounts scans the transactions sheet for account blocks (a blank
// row followed by an account name in column A) and creates one headed
// sheet per account, skipping the excluded fixed-asset accounts. Returns
// the names of the sheets it created or refreshed.
func SplitAccounts(wb *workbook.Workbook, cfg *config.Config, log *runlog.Log) ([]string, error) {
	grid, err := wb.Rows(layout.SheetTransactions)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", layout.SheetTransactions, err)
	}

	clientName := ""
	if len(grid) >= 2 && len(grid[1]) > 0 {
		clientName = grid[1][0]
	}

	excluded := make(map[string]bool, len(cfg.Sheets.ExcludeAccounts))
	for _, name := range cfg.Sheets.ExcludeAccounts {
		excluded[name] = true
	}

	yearEndLabel := fmt.Sprintf("Year End - %s", wb.YearEnd.Format("02 January 2006"))
	periodLabel := fmt.Sprintf("Management Accounts : %s", wb.PeriodEnd.Format("Jan'06"))
	periodCell := wb.PeriodEnd.Format(cfg.Dates.CellFormat)

	var created []string
	for r := 0; r < len(grid)-1; r++ {
		if strings.TrimSpace(cell(grid, r, 0)) != "" {
			continue
		}
		account := strings.TrimSpace(cell(grid, r+1, 0))
		if account == "" {
			continue
		}
		if excluded[account] {
			continue
		}

		sheet := workbook.SanitizeSheetName(account)
		if err := wb.EnsureSheet(sheet); err != nil {
			return nil, fmt.Errorf("creating sheet %q: %w", sheet, err)
		}
		ctx := &Context{File: wb.File(), Sheet: sheet, Account: account, Cfg: cfg, Log: log}

		if err := ctx.write(1, 1, clientName); err != nil {
			return nil, err
		}
		if err := ctx.write(1, 2, yearEndLabel); err != nil {
			return nil, err
		}
		if err := ctx.write(1, 3, periodLabel); err != nil {
			return nil, err
		}
		if err := ctx.write(1, 4, account); err != nil {
			return nil, err
		}

		if err := ctx.writeRow(6, "Date", "Details", "Amount £"); err != nil {
			return nil, err
		}
		if err := ctx.writeRow(layout.SummaryValueRow, periodCell, account); err != nil {
			return nil, err
		}
		if err := ctx.write(1, 10, "Total"); err != nil {
			return nil, err
		}
		if err := ctx.writeFormula(3, 10, layout.SummaryValueCell); err != nil {
			return nil, err
		}

		created = append(created, sheet)
		log.Add("split", account, "created sheet %q", sheet)
	}
	return created, nil
}
