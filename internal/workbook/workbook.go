// Package workbook wraps the in-memory spreadsheet for one processing run.
// The aggregate is passed by reference through every pipeline stage; there
// is no module-level workbook state.
package workbook

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/sagarbarkade/INNControl-MA/internal/dates"
	"github.com/sagarbarkade/INNControl-MA/internal/layout"
	"github.com/sagarbarkade/INNControl-MA/internal/model"
)

// ErrMissingYearEnd and ErrMissingPeriodEnd are the fatal preconditions:
// without both dates the run aborts before any sheet is mutated.
var (
	ErrMissingYearEnd   = errors.New("could not extract year-end date from FAR sheet")
	ErrMissingPeriodEnd = errors.New("could not extract management-accounts date from FAR sheet")
)

// Workbook owns the excelize file plus the two header dates every stage
// needs.
type Workbook struct {
	file      *excelize.File
	YearEnd   time.Time
	PeriodEnd time.Time
}

// Open loads a workbook from raw .xlsx bytes and extracts the year-end and
// management-accounts dates from the FAR sheet header. Either date missing
// is fatal.
func Open(data []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}

	w := &Workbook{file: f}
	if err := w.extractDates(); err != nil {
		f.Close()
		return nil, err
	}
	return w, nil
}

// FiscalYear derives the run's fiscal year from the extracted year-end.
func (w *Workbook) FiscalYear() model.FiscalYear {
	return model.NewFiscalYear(w.YearEnd)
}

// Period returns the management-accounts cutoff.
func (w *Workbook) Period() model.Period {
	return model.Period{End: w.PeriodEnd}
}

// extractDates scans the first few FAR rows for the "Year End -" and
// "Management Accounts" tokens. For the period date, dd/mm/yyyy is tried
// first, then Q<Mon>'yy, then Month yyyy.
func (w *Workbook) extractDates() error {
	rows, err := w.Rows(layout.SheetFAR)
	if err != nil {
		return fmt.Errorf("reading FAR sheet: %w", err)
	}

	for i := 0; i < layout.MetaScanRows && i < len(rows); i++ {
		for _, cell := range rows[i] {
			lower := strings.ToLower(cell)
			if strings.Contains(lower, "year end") {
				if t, ok := dates.ParseYearEnd(cell); ok {
					w.YearEnd = t
				}
			}
			if strings.Contains(lower, "management accounts") {
				if t, ok := dates.ParsePeriodEnd(cell); ok {
					w.PeriodEnd = t
				}
			}
		}
	}

	if w.YearEnd.IsZero() {
		return ErrMissingYearEnd
	}
	if w.PeriodEnd.IsZero() {
		return ErrMissingPeriodEnd
	}
	return nil
}

// File exposes the underlying excelize file for cell-level access.
func (w *Workbook) File() *excelize.File { return w.file }

// Rows returns the raw cell grid of a sheet.
func (w *Workbook) Rows(sheet string) ([][]string, error) {
	return w.file.GetRows(sheet)
}

// HasSheet reports whether a sheet exists.
func (w *Workbook) HasSheet(name string) bool {
	idx, err := w.file.GetSheetIndex(name)
	return err == nil && idx >= 0
}

// EnsureSheet returns an existing sheet by name, creating it when absent.
func (w *Workbook) EnsureSheet(name string) error {
	if w.HasSheet(name) {
		return nil
	}
	if _, err := w.file.NewSheet(name); err != nil {
		return fmt.Errorf("creating sheet %s: %w", name, err)
	}
	return nil
}

// DeleteSheet removes a sheet.
func (w *Workbook) DeleteSheet(name string) error {
	return w.file.DeleteSheet(name)
}

// SheetNames lists the workbook's sheets in order.
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// WriteBuffer serializes the workbook to a byte buffer.
func (w *Workbook) WriteBuffer() (*bytes.Buffer, error) {
	buf, err := w.file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializing workbook: %w", err)
	}
	return buf, nil
}

// Close releases the underlying file.
func (w *Workbook) Close() error { return w.file.Close() }

// SanitizeSheetName maps an account name onto a legal 31-character Excel
// sheet name.
func SanitizeSheetName(name string) string {
	s := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, name)
	if len(s) > 31 {
		s = s[:31]
	}
	return s
}
