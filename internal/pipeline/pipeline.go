// Package pipeline runs the full management-accounts pass over an input
// workbook: account-sheet splitting, mapped summary builders, the FAR
// depreciation recalculation and the finalization sweep.
package pipeline

import (
	"fmt"

	"github.com/sagarbarkade/INNControl-MA/internal/config"
	"github.com/sagarbarkade/INNControl-MA/internal/far"
	"github.com/sagarbarkade/INNControl-MA/internal/layout"
	"github.com/sagarbarkade/INNControl-MA/internal/model"
	"github.com/sagarbarkade/INNControl-MA/internal/runlog"
	"github.com/sagarbarkade/INNControl-MA/internal/summary"
	"github.com/sagarbarkade/INNControl-MA/internal/workbook"
)

// Result is a processed workbook plus the diagnostics collected on the
// way through.
type Result struct {
	Output []byte
	Log    *runlog.Log
}

// Process transforms one uploaded workbook into its processed form.
// Fatal errors (unreadable workbook, missing dates) abort; per-account
// and per-table findings land in the result log instead.
func Process(input []byte, cfg *config.Config) (*Result, error) {
	log := runlog.New()

	wb, err := workbook.Open(input)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	if wb.HasSheet(layout.SheetTransactions) {
		if _, err := summary.SplitAccounts(wb, cfg, log); err != nil {
			return nil, fmt.Errorf("splitting accounts: %w", err)
		}
		if err := applyMappings(wb, cfg, log); err != nil {
			return nil, fmt.Errorf("applying mappings: %w", err)
		}
	} else {
		log.Add("split", layout.SheetTransactions, "sheet missing, skipping account split")
	}

	if wb.HasSheet(layout.SheetFAR) {
		if err := processFAR(wb, cfg, log); err != nil {
			return nil, fmt.Errorf("processing fixed asset register: %w", err)
		}
	} else {
		log.Add("far", layout.SheetFAR, "sheet missing, skipping depreciation")
	}

	if err := summary.FinalizeSheets(wb, log); err != nil {
		return nil, fmt.Errorf("finalizing sheets: %w", err)
	}
	if _, err := summary.DeleteEmptySheets(wb, log); err != nil {
		return nil, fmt.Errorf("removing empty sheets: %w", err)
	}

	buf, err := wb.WriteBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializing workbook: %w", err)
	}
	return &Result{Output: buf.Bytes(), Log: log}, nil
}

// applyMappings reads the Mappings sheet and runs the named builder
// against each mapped account's sheet. Unknown formats and unmatched
// accounts are diagnostics, not errors.
func applyMappings(wb *workbook.Workbook, cfg *config.Config, log *runlog.Log) error {
	if !wb.HasSheet(layout.SheetMappings) {
		log.Add("mappings", layout.SheetMappings, "sheet missing, skipping summaries")
		return nil
	}
	grid, err := wb.Rows(layout.SheetMappings)
	if err != nil {
		return err
	}
	trans, err := wb.Rows(layout.SheetTransactions)
	if err != nil {
		return err
	}
	var pl [][]string
	if wb.HasSheet(layout.SheetPL) {
		if pl, err = wb.Rows(layout.SheetPL); err != nil {
			return err
		}
	}

	registry := summary.DefaultRegistry()
	for _, m := range readMappings(grid) {
		sheet, ok := findAccountSheet(wb, m.Account)
		if !ok {
			log.Add("mappings", m.Account, "no account sheet, skipping %s", m.Format)
			continue
		}
		builder := registry.Get(m.Format)
		if builder == nil {
			log.Add("mappings", m.Account, "unknown format %q", m.Format)
			continue
		}
		ctx := &summary.Context{
			File:    wb.File(),
			Sheet:   sheet,
			Account: m.Account,
			Trans:   trans,
			PL:      pl,
			Cfg:     cfg,
			Log:     log,
		}
		if err := builder.Build(ctx); err != nil {
			return fmt.Errorf("building %s for %q: %w", m.Format, m.Account, err)
		}
	}
	return nil
}

func readMappings(grid [][]string) []model.Mapping {
	var out []model.Mapping
	for r := layout.MappingsFirstRow - 1; r < len(grid); r++ {
		row := grid[r]
		if len(row) < layout.MappingsFormatCol {
			continue
		}
		account := row[layout.MappingsNameCol-1]
		format := row[layout.MappingsFormatCol-1]
		if account == "" || format == "" {
			continue
		}
		out = append(out, model.Mapping{Account: account, Format: format})
	}
	return out
}

// findAccountSheet locates the split sheet whose A4 heading matches the
// account name.
func findAccountSheet(wb *workbook.Workbook, account string) (string, bool) {
	for _, sheet := range wb.SheetNames() {
		switch sheet {
		case layout.SheetMappings, layout.SheetTransactions, layout.SheetPL, layout.SheetFAR:
			continue
		}
		v, err := wb.File().GetCellValue(sheet, layout.AccountNameCell)
		if err != nil {
			continue
		}
		if v == account {
			return sheet, true
		}
	}
	return "", false
}

// processFAR reparses the register, merges fixed-asset purchases from
// the transactions sheet, recalculates depreciation and rewrites the
// sheet.
func processFAR(wb *workbook.Workbook, cfg *config.Config, log *runlog.Log) error {
	grid, err := wb.Rows(layout.SheetFAR)
	if err != nil {
		return err
	}
	fy := wb.FiscalYear()
	period := wb.Period()

	tables := far.ParseTables(grid, fy, cfg.Dates.CellFormat, log)
	if len(tables) == 0 {
		log.Add("far", layout.SheetFAR, "no category tables found")
		return nil
	}

	if wb.HasSheet(layout.SheetTransactions) {
		trans, err := wb.Rows(layout.SheetTransactions)
		if err != nil {
			return err
		}
		if added := far.MergeTransactions(trans, tables, cfg.Dates.CellFormat, log); added > 0 {
			log.Add("far", layout.SheetFAR, "merged %d new asset row(s)", added)
		}
	}

	for _, t := range tables {
		far.Recalculate(t, fy, period)
	}
	if _, err := far.Render(wb.File(), tables, period, cfg.Dates.CellFormat); err != nil {
		return err
	}
	return nil
}
