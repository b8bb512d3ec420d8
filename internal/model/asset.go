package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthCell is one fiscal-month depreciation figure. Blank distinguishes
// "beyond the management cutoff / no usable purchase date" from a known
// zero.
type MonthCell struct {
	Amount decimal.Decimal
	Blank  bool
}

// BlankCell returns the blank sentinel.
func BlankCell() MonthCell { return MonthCell{Blank: true} }

// AssetRow is one purchase or addition record in a category table.
type AssetRow struct {
	// PurchaseDate is zero when the cell could not be parsed; PurchaseRaw
	// keeps the original text for rendering and dedup keys.
	PurchaseDate time.Time
	PurchaseRaw  string

	Details  string
	Cost     decimal.Decimal
	Addition decimal.Decimal

	TotalCost      decimal.Decimal
	AccumulatedDep decimal.Decimal
	Months         map[string]MonthCell
	TotalDep       decimal.Decimal
	WDV            decimal.Decimal
}

// HasPurchaseDate reports whether the purchase date parsed.
func (r *AssetRow) HasPurchaseDate() bool { return !r.PurchaseDate.IsZero() }

// Amount is the recorded purchase value regardless of how the engine has
// split it between cost and addition. Dedup keys use it so a row keeps the
// same identity before and after recomputation.
func (r *AssetRow) Amount() decimal.Decimal { return r.Cost.Add(r.Addition) }

// CategoryTable is one embedded FAR block: an asset category, its flat
// depreciation rate and its rows. Tables own their rows exclusively.
type CategoryTable struct {
	Name        string
	RatePercent float64
	Rows        []*AssetRow
	MonthLabels []string
}

// NewRow appends an empty row with every month column zeroed, the state a
// merged transaction candidate starts in.
func (t *CategoryTable) NewRow(purchaseRaw string, purchaseDate time.Time, details string, cost decimal.Decimal) *AssetRow {
	months := make(map[string]MonthCell, len(t.MonthLabels))
	for _, m := range t.MonthLabels {
		months[m] = MonthCell{}
	}
	r := &AssetRow{
		PurchaseDate: purchaseDate,
		PurchaseRaw:  purchaseRaw,
		Details:      details,
		Cost:         cost,
		Months:       months,
	}
	t.Rows = append(t.Rows, r)
	return r
}

// Mapping pairs an account name with the FormatN summary that builds its
// sheet.
type Mapping struct {
	Account string
	Format  string
}
