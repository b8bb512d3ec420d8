package far

import (
	"github.com/shopspring/decimal"

	"github.com/sagarbarkade/INNControl-MA/internal/dates"
	"github.com/sagarbarkade/INNControl-MA/internal/model"
)

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// Recalculate populates every derived field of a table's rows in place.
// Pure function of the table, fiscal year and management period; no I/O.
func Recalculate(t *model.CategoryTable, fy model.FiscalYear, period model.Period) {
	rate := decimal.NewFromFloat(t.RatePercent)
	for _, row := range t.Rows {
		recalcRow(row, rate, t.MonthLabels, fy, period)
	}
}

func recalcRow(r *model.AssetRow, ratePercent decimal.Decimal, labels []string, fy model.FiscalYear, period model.Period) {
	// Acquisitions inside the fiscal year are additions; anything older is
	// brought-forward cost.
	amount := r.Cost.Add(r.Addition)
	if r.HasPurchaseDate() && fy.Contains(r.PurchaseDate) {
		r.Addition = amount
		r.Cost = decimal.Zero
	} else {
		r.Cost = amount
		r.Addition = decimal.Zero
	}
	r.TotalCost = r.Cost.Add(r.Addition)

	monthlyDep := decimal.Zero
	if r.TotalCost.IsPositive() && ratePercent.IsPositive() {
		monthlyDep = r.TotalCost.Mul(ratePercent).Div(hundred).Div(twelve)
	}

	r.AccumulatedDep = accumulatedPriorToFY(r, monthlyDep, fy)

	// Allocate each fiscal month chronologically, never letting cumulative
	// depreciation exceed total cost; the final depreciating month absorbs
	// any remainder.
	cumulative := r.AccumulatedDep
	monthlySum := decimal.Zero
	for _, label := range labels {
		monthStart, ok := dates.ParseMonthLabel(label)
		switch {
		case !ok || !r.HasPurchaseDate():
			r.Months[label] = model.BlankCell()
		case !period.Includes(monthStart):
			// Beyond the management cutoff: unknown, not zero.
			r.Months[label] = model.BlankCell()
		case r.PurchaseDate.After(dates.MonthEnd(monthStart)):
			// Not yet purchased: known zero.
			r.Months[label] = model.MonthCell{}
		case cumulative.LessThan(r.TotalCost):
			d := decimal.Min(monthlyDep, r.TotalCost.Sub(cumulative))
			r.Months[label] = model.MonthCell{Amount: d}
			cumulative = cumulative.Add(d)
			monthlySum = monthlySum.Add(d)
		default:
			r.Months[label] = model.MonthCell{}
		}
	}

	r.TotalDep = r.AccumulatedDep.Add(monthlySum)
	r.WDV = r.TotalCost.Sub(r.TotalDep)
}

// accumulatedPriorToFY computes depreciation charged before the fiscal
// year began. Whole months are counted from the purchase month to the
// month preceding the fiscal-year start, capped at the full-amortization
// point; a fully amortized row snaps to total cost exactly to avoid
// rounding drift.
func accumulatedPriorToFY(r *model.AssetRow, monthlyDep decimal.Decimal, fy model.FiscalYear) decimal.Decimal {
	if !r.HasPurchaseDate() || monthlyDep.IsZero() {
		return decimal.Zero
	}
	lastPriorMonth := fy.Start.AddDate(0, -1, 0)
	if r.PurchaseDate.After(lastPriorMonth) {
		return decimal.Zero
	}

	monthsElapsed := dates.MonthsBetween(r.PurchaseDate, lastPriorMonth)
	monthsToFull := int(r.TotalCost.Div(monthlyDep).IntPart())
	if monthsElapsed >= monthsToFull {
		return r.TotalCost
	}
	return monthlyDep.Mul(decimal.NewFromInt(int64(monthsElapsed)))
}
