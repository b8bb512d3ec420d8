package summary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sagarbarkade/INNControl-MA/internal/config"
	"github.com/sagarbarkade/INNControl-MA/internal/layout"
	"github.com/sagarbarkade/INNControl-MA/internal/runlog"
	"github.com/sagarbarkade/INNControl-MA/internal/workbook"
)

func splitFixture(t *testing.T) *workbook.Workbook {
	t.Helper()
	f := excelize.NewFile()
	for _, sheet := range []string{layout.SheetFAR, layout.SheetTransactions} {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	}
	require.NoError(t, f.DeleteSheet("Sheet1"))

	require.NoError(t, f.SetCellValue(layout.SheetFAR, "A2", "Year End - 31 July 2025"))
	require.NoError(t, f.SetCellValue(layout.SheetFAR, "A3", "Management Accounts 31/01/2025"))

	rows := [][]any{
		{"Account Transactions"},
		{"The Kings Arms"},
		{"1 August 2024 to 31 January 2025"},
		{"Account"},
		{"Date", "Type", "Contact"},
		{},
		{"Wages and Salaries"},
		{"Opening Balance"},
		{},
		{"Goodwill"},
		{"Opening Balance"},
		{},
		{"Repairs/Maintenance"},
		{"Opening Balance"},
	}
	for i, row := range rows {
		for j, v := range row {
			ref, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(layout.SheetTransactions, ref, v))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	wb, err := workbook.Open(buf.Bytes())
	require.NoError(t, err)
	t.Cleanup(func() { wb.Close() })
	return wb
}

func TestSplitAccounts(t *testing.T) {
	wb := splitFixture(t)
	created, err := SplitAccounts(wb, config.Default(), runlog.New())
	require.NoError(t, err)

	// Goodwill is an excluded fixed-asset account; the slash in the
	// repairs account is sanitized.
	assert.Equal(t, []string{"Wages and Salaries", "Repairs_Maintenance"}, created)
	assert.True(t, wb.HasSheet("Wages and Salaries"))
	assert.False(t, wb.HasSheet("Goodwill"))

	get := func(ref string) string {
		v, err := wb.File().GetCellValue("Wages and Salaries", ref)
		require.NoError(t, err)
		return v
	}
	assert.Equal(t, "The Kings Arms", get("A1"))
	assert.Equal(t, "Year End - 31 July 2025", get("A2"))
	assert.Equal(t, "Management Accounts : Jan'25", get("A3"))
	assert.Equal(t, "Wages and Salaries", get("A4"))
	assert.Equal(t, "Date", get("A6"))
	assert.Equal(t, "Amount £", get("C6"))
	assert.Equal(t, "31-01-2025", get("A8"))
	assert.Equal(t, "Wages and Salaries", get("B8"))
	assert.Equal(t, "Total", get("A10"))

	formula, err := wb.File().GetCellFormula("Wages and Salaries", "C10")
	require.NoError(t, err)
	assert.Equal(t, "C8", formula)
}

func TestSplitAccounts_PeriodDateUsesConfigFormat(t *testing.T) {
	wb := splitFixture(t)
	cfg := config.Default()
	cfg.Dates.CellFormat = "2006-01-02"

	_, err := SplitAccounts(wb, cfg, runlog.New())
	require.NoError(t, err)

	v, err := wb.File().GetCellValue("Wages and Salaries", "A8")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC).Format("2006-01-02"), v)
}

func TestFinalizeSheets_PromotesLastNumericToHeadline(t *testing.T) {
	wb := splitFixture(t)
	cfg := config.Default()
	log := runlog.New()
	_, err := SplitAccounts(wb, cfg, log)
	require.NoError(t, err)

	// Simulate a builder that produced a summary but left C8 empty.
	ctx := &Context{File: wb.File(), Sheet: "Wages and Salaries", Cfg: cfg, Log: log}
	require.NoError(t, ctx.writeRow(15, "Month", "Liability"))
	require.NoError(t, ctx.writeRow(16, "Total", 750.0))

	require.NoError(t, FinalizeSheets(wb, log))

	v, err := wb.File().GetCellValue("Wages and Salaries", layout.SummaryValueCell)
	require.NoError(t, err)
	assert.Equal(t, "750", v)
}

func TestFinalizeSheets_MarksAndDeletesEmptySheets(t *testing.T) {
	wb := splitFixture(t)
	log := runlog.New()
	_, err := SplitAccounts(wb, config.Default(), log)
	require.NoError(t, err)

	// Neither split sheet got a summary table; both should be marked and
	// then deleted.
	require.NoError(t, FinalizeSheets(wb, log))

	v, err := wb.File().GetCellValue("Repairs_Maintenance", layout.SummaryValueCell)
	require.NoError(t, err)
	assert.Equal(t, "No data found", v)

	deleted, err := DeleteEmptySheets(wb, log)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Wages and Salaries", "Repairs_Maintenance"}, deleted)
	assert.False(t, wb.HasSheet("Repairs_Maintenance"))
	assert.True(t, wb.HasSheet(layout.SheetTransactions))
}
