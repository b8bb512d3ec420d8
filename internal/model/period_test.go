package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewFiscalYear(t *testing.T) {
	fy := NewFiscalYear(date(2025, time.July, 31))
	assert.Equal(t, date(2024, time.August, 1), fy.Start)
	assert.Equal(t, date(2025, time.July, 31), fy.End)
}

func TestFiscalYear_Contains(t *testing.T) {
	fy := NewFiscalYear(date(2025, time.July, 31))
	assert.True(t, fy.Contains(date(2024, time.August, 1)))
	assert.True(t, fy.Contains(date(2025, time.July, 31)))
	assert.True(t, fy.Contains(date(2025, time.January, 15)))
	assert.False(t, fy.Contains(date(2024, time.July, 31)))
	assert.False(t, fy.Contains(date(2025, time.August, 1)))
}

func TestFiscalYear_MonthLabels(t *testing.T) {
	fy := NewFiscalYear(date(2025, time.July, 31))
	labels := fy.MonthLabels()
	assert.Len(t, labels, 12)
	assert.Equal(t, "Dep Aug-24", labels[0])
	assert.Equal(t, "Dep Jul-25", labels[11])
}

func TestPeriod_Includes(t *testing.T) {
	p := Period{End: date(2025, time.January, 31)}
	assert.True(t, p.Includes(date(2025, time.January, 1)))
	assert.True(t, p.Includes(date(2024, time.August, 1)))
	assert.False(t, p.Includes(date(2025, time.February, 1)))
}

func TestPeriod_HeaderSuffix(t *testing.T) {
	p := Period{End: date(2025, time.January, 31)}
	assert.Equal(t, " (as at Jan-2025)", p.HeaderSuffix())
}
