// Package dates parses the loosely formatted date tokens found in the
// INNControl workbook and provides the calendar-month arithmetic the
// depreciation engine depends on.
package dates

import (
	"regexp"
	"strings"
	"time"
)

var (
	yearEndPattern  = regexp.MustCompile(`(\d{1,2} [A-Za-z]+ \d{4})`)
	slashPattern    = regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{4})`)
	quarterPattern  = regexp.MustCompile(`QE?\s*([A-Za-z]+)['’]?(\d{2})`)
	monthYrPattern  = regexp.MustCompile(`([A-Za-z]+)\s+(\d{4})`)
	depLabelPattern = regexp.MustCompile(`^Dep\s+(.+)$`)
)

// ParseYearEnd extracts a "d Month yyyy" year-end date from a header cell
// such as "Year End - 31 March 2024".
func ParseYearEnd(s string) (time.Time, bool) {
	m := yearEndPattern.FindString(s)
	if m == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2 January 2006", m)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParsePeriodEnd extracts the management-accounts cutoff from a header cell.
// Accepted forms, first match wins: "dd/mm/yyyy", "Q<Mon>'yy", "Month yyyy".
// The quarter and month forms are normalized to the last day of the month.
func ParsePeriodEnd(s string) (time.Time, bool) {
	if m := slashPattern.FindString(s); m != "" {
		if t, err := time.Parse("2/1/2006", m); err == nil {
			return t, true
		}
	}
	if m := quarterPattern.FindStringSubmatch(s); m != nil {
		if t, err := time.Parse("Jan 2006", m[1]+" 20"+m[2]); err == nil {
			return MonthEnd(t), true
		}
	}
	if m := monthYrPattern.FindStringSubmatch(s); m != nil {
		if t, err := time.Parse("January 2006", m[1]+" "+m[2]); err == nil {
			return MonthEnd(t), true
		}
	}
	return time.Time{}, false
}

// cellFormats are the layouts tried when reading a date cell. excelize
// returns dates as display strings, so both ISO and the workbook's
// day-first renderings have to be accepted.
var cellFormats = []string{
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02-01-2006",
	"02/01/2006",
	"2-1-2006",
	"2/1/2006",
	"01-02-06",
	"2 January 2006",
	"2 Jan 2006",
	"Jan-06",
	"Jan 2006",
	"January 2006",
}

// ParseCell parses a cell value as a date. Layouts in prefer are tried
// before the built-in list. Returns false for blank or unparseable values.
func ParseCell(s string, prefer ...string) (time.Time, bool) {
	v := strings.TrimSpace(s)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range prefer {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	for _, layout := range cellFormats {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// MonthStart returns the first day of t's month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthEnd returns the last day of t's month.
func MonthEnd(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, 1, -1)
}

// MonthsBetween counts whole calendar months from `from` to `to` inclusive
// of both endpoints' months. Returns 0 when `from` is in a later month.
func MonthsBetween(from, to time.Time) int {
	n := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month()) + 1
	if n < 0 {
		return 0
	}
	return n
}

// MonthLabel renders a fiscal-month column header such as "Dep Aug-24".
func MonthLabel(t time.Time) string {
	return "Dep " + t.Format("Jan-06")
}

// ParseMonthLabel recovers the month start from a "Dep <Mon-YY>" header.
func ParseMonthLabel(label string) (time.Time, bool) {
	m := depLabelPattern.FindStringSubmatch(strings.TrimSpace(label))
	if m == nil {
		return time.Time{}, false
	}
	t, err := time.Parse("Jan-06", strings.TrimSpace(m[1]))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
