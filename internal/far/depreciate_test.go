package far

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarbarkade/INNControl-MA/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// The common fixture: fiscal year Aug 2024 - Jul 2025, management accounts
// to end of January 2025.
var (
	testFY     = model.NewFiscalYear(date(2025, time.July, 31))
	testPeriod = model.Period{End: date(2025, time.January, 31)}
)

func newTable(rate float64) *model.CategoryTable {
	return &model.CategoryTable{
		Name:        "Plant & Machinery",
		RatePercent: rate,
		MonthLabels: testFY.MonthLabels(),
	}
}

func monthAmount(r *model.AssetRow, label string) decimal.Decimal {
	return r.Months[label].Amount
}

func TestRecalculate_BroughtForwardAsset(t *testing.T) {
	tbl := newTable(15)
	row := tbl.NewRow("01-05-2023", date(2023, time.May, 1), "Fryer", dec("1200"))

	Recalculate(tbl, testFY, testPeriod)

	// Purchased before the fiscal year: stays cost, no addition.
	assert.Equal(t, "1200", row.Cost.String())
	assert.True(t, row.Addition.IsZero())
	assert.Equal(t, "1200", row.TotalCost.String())

	// 15 whole months from May 2023 through July 2024 at 15/month.
	assert.Equal(t, "225", row.AccumulatedDep.String())

	// Aug 2024 through Jan 2025 depreciate, later months stay blank.
	assert.Equal(t, "15", monthAmount(row, "Dep Aug-24").String())
	assert.Equal(t, "15", monthAmount(row, "Dep Jan-25").String())
	assert.True(t, row.Months["Dep Feb-25"].Blank)
	assert.True(t, row.Months["Dep Jul-25"].Blank)

	assert.Equal(t, "315", row.TotalDep.String())
	assert.Equal(t, "885", row.WDV.String())
}

func TestRecalculate_InYearAddition(t *testing.T) {
	tbl := newTable(15)
	row := tbl.NewRow("15-09-2024", date(2024, time.September, 15), "New oven", dec("500"))

	Recalculate(tbl, testFY, testPeriod)

	// Purchased inside the fiscal year: reclassified as addition.
	assert.True(t, row.Cost.IsZero())
	assert.Equal(t, "500", row.Addition.String())
	assert.Equal(t, "500", row.TotalCost.String())
	assert.True(t, row.AccumulatedDep.IsZero())

	// Pre-purchase month inside the window is a known zero, not blank.
	aug := row.Months["Dep Aug-24"]
	require.False(t, aug.Blank)
	assert.True(t, aug.Amount.IsZero())

	assert.Equal(t, "6.25", monthAmount(row, "Dep Sep-24").String())
	assert.Equal(t, "6.25", monthAmount(row, "Dep Jan-25").String())
	assert.True(t, row.Months["Dep Feb-25"].Blank)

	assert.Equal(t, "31.25", row.TotalDep.String())
	assert.Equal(t, "468.75", row.WDV.String())
}

func TestRecalculate_CostAdditionSplitIsStable(t *testing.T) {
	tbl := newTable(15)
	row := tbl.NewRow("15-09-2024", date(2024, time.September, 15), "New oven", dec("500"))

	Recalculate(tbl, testFY, testPeriod)
	Recalculate(tbl, testFY, testPeriod)

	assert.True(t, row.Cost.IsZero())
	assert.Equal(t, "500", row.Addition.String())
	assert.Equal(t, "500", row.TotalCost.String())
}

func TestRecalculate_ZeroRate(t *testing.T) {
	tbl := newTable(0)
	row := tbl.NewRow("01-05-2023", date(2023, time.May, 1), "Freehold", dec("100000"))

	Recalculate(tbl, testFY, testPeriod)

	assert.True(t, row.AccumulatedDep.IsZero())
	for _, label := range tbl.MonthLabels[:6] {
		cell := row.Months[label]
		assert.False(t, cell.Blank, label)
		assert.True(t, cell.Amount.IsZero(), label)
	}
	assert.True(t, row.TotalDep.IsZero())
	assert.Equal(t, "100000", row.WDV.String())
}

func TestRecalculate_UnparseableDate(t *testing.T) {
	tbl := newTable(15)
	row := tbl.NewRow("various", time.Time{}, "Sundry tools", dec("300"))

	Recalculate(tbl, testFY, testPeriod)

	// All date-gated math is disabled: every month blank, no accumulated
	// charge, value carried at cost.
	assert.Equal(t, "300", row.Cost.String())
	assert.True(t, row.AccumulatedDep.IsZero())
	for _, label := range tbl.MonthLabels {
		assert.True(t, row.Months[label].Blank, label)
	}
	assert.True(t, row.TotalDep.IsZero())
	assert.Equal(t, "300", row.WDV.String())
}

func TestRecalculate_FullyAmortizedSnapsToTotalCost(t *testing.T) {
	// 120 at 100%: amortized in 12 months, purchased 15 months before the
	// fiscal year starts.
	tbl := newTable(100)
	row := tbl.NewRow("01-05-2023", date(2023, time.May, 1), "Till", dec("120"))

	Recalculate(tbl, testFY, testPeriod)

	assert.Equal(t, "120", row.AccumulatedDep.String())
	for _, label := range tbl.MonthLabels[:6] {
		cell := row.Months[label]
		assert.False(t, cell.Blank, label)
		assert.True(t, cell.Amount.IsZero(), label)
	}
	assert.True(t, row.WDV.IsZero())
}

func TestRecalculate_FinalMonthAbsorbsRemainder(t *testing.T) {
	// 120 at 100%: monthly 10, ten months already charged, so only two
	// fiscal months remain before the cap bites.
	tbl := newTable(100)
	row := tbl.NewRow("01-10-2023", date(2023, time.October, 1), "Printer", dec("120"))

	Recalculate(tbl, testFY, testPeriod)

	// 10 months (Oct 2023 - Jul 2024) at 10/month.
	assert.Equal(t, "100", row.AccumulatedDep.String())
	assert.Equal(t, "10", monthAmount(row, "Dep Aug-24").String())
	assert.Equal(t, "10", monthAmount(row, "Dep Sep-24").String())
	// Fully amortized: remaining in-window months are zero.
	assert.True(t, monthAmount(row, "Dep Oct-24").IsZero())
	assert.True(t, monthAmount(row, "Dep Jan-25").IsZero())
	assert.Equal(t, "120", row.TotalDep.String())
	assert.True(t, row.WDV.IsZero())
}
