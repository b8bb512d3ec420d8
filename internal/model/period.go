package model

import (
	"time"

	"github.com/sagarbarkade/INNControl-MA/internal/dates"
)

// FiscalYear is the 12-month period ending on the workbook's declared
// year-end date. Immutable once computed for a run.
type FiscalYear struct {
	Start time.Time
	End   time.Time
}

// NewFiscalYear derives the fiscal year from its year-end date:
// start = end - 1 year + 1 day.
func NewFiscalYear(yearEnd time.Time) FiscalYear {
	return FiscalYear{
		Start: yearEnd.AddDate(-1, 0, 0).AddDate(0, 0, 1),
		End:   yearEnd,
	}
}

// Contains reports whether d falls within the fiscal year, bounds inclusive.
func (fy FiscalYear) Contains(d time.Time) bool {
	return !d.Before(fy.Start) && !d.After(fy.End)
}

// MonthLabels returns the ordered "Dep <Mon-YY>" column headers, one per
// calendar month from the fiscal-year start to its end.
func (fy FiscalYear) MonthLabels() []string {
	var labels []string
	for cur := dates.MonthStart(fy.Start); !cur.After(fy.End); cur = cur.AddDate(0, 1, 0) {
		labels = append(labels, dates.MonthLabel(cur))
	}
	return labels
}

// Period is the management-accounts cutoff. Depreciation is projected only
// up to its end; later fiscal months stay blank.
type Period struct {
	End time.Time
}

// Includes reports whether the month starting at monthStart falls on or
// before the cutoff.
func (p Period) Includes(monthStart time.Time) bool {
	return !monthStart.After(p.End)
}

// HeaderSuffix renders the "(as at <Mon-YYYY>)" column suffix.
func (p Period) HeaderSuffix() string {
	return " (as at " + p.End.Format("Jan-2006") + ")"
}
