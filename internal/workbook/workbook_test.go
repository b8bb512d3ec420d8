package workbook

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, farHeader map[string]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	_, err := f.NewSheet("FAR")
	require.NoError(t, err)
	require.NoError(t, f.DeleteSheet("Sheet1"))
	for ref, v := range farHeader {
		require.NoError(t, f.SetCellValue("FAR", ref, v))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return buf.Bytes()
}

func TestOpen_ExtractsDates(t *testing.T) {
	data := buildWorkbook(t, map[string]string{
		"A1": "The Kings Arms",
		"A2": "Year End - 31 July 2025",
		"A3": "Management Accounts 31/01/2025",
	})

	wb, err := Open(data)
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, time.Date(2025, time.July, 31, 0, 0, 0, 0, time.UTC), wb.YearEnd)
	assert.Equal(t, time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC), wb.PeriodEnd)

	fy := wb.FiscalYear()
	assert.Equal(t, time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC), fy.Start)
}

func TestOpen_QuarterPeriodForm(t *testing.T) {
	data := buildWorkbook(t, map[string]string{
		"A2": "Year End - 31 July 2025",
		"A3": "Management Accounts QE Sep'24",
	})

	wb, err := Open(data)
	require.NoError(t, err)
	defer wb.Close()
	assert.Equal(t, time.Date(2024, time.September, 30, 0, 0, 0, 0, time.UTC), wb.PeriodEnd)
}

func TestOpen_MissingYearEnd(t *testing.T) {
	data := buildWorkbook(t, map[string]string{
		"A3": "Management Accounts 31/01/2025",
	})

	_, err := Open(data)
	assert.ErrorIs(t, err, ErrMissingYearEnd)
}

func TestOpen_MissingPeriodEnd(t *testing.T) {
	data := buildWorkbook(t, map[string]string{
		"A2": "Year End - 31 July 2025",
	})

	_, err := Open(data)
	assert.ErrorIs(t, err, ErrMissingPeriodEnd)
}

func TestOpen_DatesBelowScanWindowIgnored(t *testing.T) {
	data := buildWorkbook(t, map[string]string{
		"A2": "Year End - 31 July 2025",
		"A9": "Management Accounts 31/01/2025",
	})

	_, err := Open(data)
	assert.ErrorIs(t, err, ErrMissingPeriodEnd)
}

func TestSanitizeSheetName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Wages & Salaries", "Wages & Salaries"},
		{"Repairs/Maintenance", "Repairs_Maintenance"},
		{"A:B?C*D[E]", "A_B_C_D_E_"},
		{"An Extremely Long Account Name That Overflows", "An Extremely Long Account Name "},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, SanitizeSheetName(tc.in))
	}
}
