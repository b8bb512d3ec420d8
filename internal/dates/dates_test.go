package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseYearEnd(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"Year End - 31 March 2024", date(2024, time.March, 31), true},
		{"year end 5 April 2025", date(2025, time.April, 5), true},
		{"Year End", time.Time{}, false},
		{"", time.Time{}, false},
	}
	for _, tc := range tests {
		got, ok := ParseYearEnd(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		if tc.ok {
			assert.Equal(t, tc.want, got, tc.in)
		}
	}
}

func TestParsePeriodEnd(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"Management Accounts 31/01/2025", date(2025, time.January, 31), true},
		{"Management Accounts QE Sep'24", date(2024, time.September, 30), true},
		{"Management Accounts Q Dec'24", date(2024, time.December, 31), true},
		{"Management Accounts January 2025", date(2025, time.January, 31), true},
		{"Management Accounts", time.Time{}, false},
	}
	for _, tc := range tests {
		got, ok := ParsePeriodEnd(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		if tc.ok {
			assert.Equal(t, tc.want, got, tc.in)
		}
	}
}

func TestParseCell_PreferredLayoutWins(t *testing.T) {
	// 01-02-2025 is 1 Feb under the workbook's day-first layout.
	got, ok := ParseCell("01-02-2025", "02-01-2006")
	require.True(t, ok)
	assert.Equal(t, date(2025, time.February, 1), got)
}

func TestParseCell_ISO(t *testing.T) {
	got, ok := ParseCell("2024-08-15")
	require.True(t, ok)
	assert.Equal(t, date(2024, time.August, 15), got)

	_, ok = ParseCell("not a date")
	assert.False(t, ok)

	_, ok = ParseCell("   ")
	assert.False(t, ok)
}

func TestMonthEnd(t *testing.T) {
	assert.Equal(t, date(2024, time.February, 29), MonthEnd(date(2024, time.February, 10)))
	assert.Equal(t, date(2025, time.February, 28), MonthEnd(date(2025, time.February, 1)))
	assert.Equal(t, date(2024, time.December, 31), MonthEnd(date(2024, time.December, 31)))
}

func TestMonthsBetween(t *testing.T) {
	tests := []struct {
		from, to time.Time
		want     int
	}{
		{date(2024, time.January, 15), date(2024, time.January, 20), 1},
		{date(2024, time.January, 1), date(2024, time.March, 31), 3},
		{date(2023, time.November, 1), date(2024, time.February, 1), 4},
		{date(2024, time.June, 1), date(2024, time.January, 1), 0},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, MonthsBetween(tc.from, tc.to))
	}
}

func TestMonthLabelRoundTrip(t *testing.T) {
	label := MonthLabel(date(2024, time.August, 1))
	assert.Equal(t, "Dep Aug-24", label)

	got, ok := ParseMonthLabel(label)
	require.True(t, ok)
	assert.Equal(t, date(2024, time.August, 1), got)

	_, ok = ParseMonthLabel("Total Depreciation")
	assert.False(t, ok)
}
