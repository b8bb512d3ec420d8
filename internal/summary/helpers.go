package summary

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/sagarbarkade/INNControl-MA/internal/dates"
	"github.com/sagarbarkade/INNControl-MA/internal/layout"
	"github.com/sagarbarkade/INNControl-MA/internal/model"
)

// cell reads grid[row][col] (0-based) tolerating ragged rows.
func cell(grid [][]string, row, col int) string {
	if row < 0 || row >= len(grid) {
		return ""
	}
	r := grid[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// amount coerces grid[row][col] to a decimal, zero for junk.
func amount(grid [][]string, row, col int) decimal.Decimal {
	return model.ParseAmount(cell(grid, row, col))
}

// write sets a cell on the context's target sheet (1-based col/row).
func (ctx *Context) write(col, row int, v any) error {
	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return ctx.File.SetCellValue(ctx.Sheet, ref, v)
}

// writeFormula sets a native formula on the target sheet.
func (ctx *Context) writeFormula(col, row int, expr string) error {
	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return ctx.File.SetCellFormula(ctx.Sheet, ref, expr)
}

// writeRow writes values left to right starting at col 1.
func (ctx *Context) writeRow(row int, values ...any) error {
	for i, v := range values {
		if v == nil {
			continue
		}
		if err := ctx.write(i+1, row, v); err != nil {
			return err
		}
	}
	return nil
}

// headers writes a bold-row worth of column labels at the summary start
// row and returns the first data row.
func (ctx *Context) headers(labels ...string) (int, error) {
	for i, h := range labels {
		if err := ctx.write(i+1, layout.SummaryStartRow, h); err != nil {
			return 0, err
		}
	}
	return layout.SummaryStartRow + 1, nil
}

// targetCell reads a cell from the target sheet itself (e.g. the A8
// period date every reconciliation format echoes).
func (ctx *Context) targetCell(ref string) string {
	v, _ := ctx.File.GetCellValue(ctx.Sheet, ref)
	return v
}

// findAccountRow locates the 0-based row whose first column equals the
// account name exactly. The second return is false when absent, which the
// caller treats as "skip with diagnostic", not an error.
func findAccountRow(grid [][]string, account string) (int, bool) {
	for i := range grid {
		if cell(grid, i, 0) == account {
			return i, true
		}
	}
	return 0, false
}

// balanceMode selects which way the opening-balance columns subtract.
type balanceMode int

const (
	debitMinusCredit balanceMode = iota // col I - col H
	creditMinusDebit                    // col H - col I
)

// openingBalance reads the balance row immediately under the account
// header.
func openingBalance(grid [][]string, accountRow int, mode balanceMode) decimal.Decimal {
	h := amount(grid, accountRow+1, layout.TransCreditCol-1)
	i := amount(grid, accountRow+1, layout.TransDebitCol-1)
	if mode == creditMinusDebit {
		return h.Sub(i)
	}
	return i.Sub(h)
}

// monthKey renders a transaction date cell as a month bucket label,
// "Jan 2006" when short, "January 2006" otherwise. Unparseable non-empty
// values fall back to their leading characters so junk still buckets
// stably; empty cells return "".
func monthKey(raw string, short bool, cellFormat string) string {
	v := strings.TrimSpace(raw)
	if v == "" {
		return ""
	}
	if t, ok := dates.ParseCell(v, cellFormat); ok {
		if short {
			return t.Format("Jan 2006")
		}
		return t.Format("January 2006")
	}
	if len(v) > 7 {
		return v[:7]
	}
	return v
}

// sortMonthKeys orders labels chronologically, with unparseable labels
// after all dates in lexical order.
func sortMonthKeys(keys []string) {
	sort.SliceStable(keys, func(a, b int) bool {
		ta, oka := dates.ParseCell(keys[a], "Jan 2006", "January 2006")
		tb, okb := dates.ParseCell(keys[b], "Jan 2006", "January 2006")
		switch {
		case oka && okb:
			return ta.Before(tb)
		case oka:
			return true
		case okb:
			return false
		default:
			return keys[a] < keys[b]
		}
	})
}

// monthBuckets accumulates per-month figures preserving first-seen order.
type monthBuckets struct {
	order []string
	data  map[string]map[string]decimal.Decimal
}

func newMonthBuckets() *monthBuckets {
	return &monthBuckets{data: make(map[string]map[string]decimal.Decimal)}
}

func (m *monthBuckets) bucket(key string) map[string]decimal.Decimal {
	b, ok := m.data[key]
	if !ok {
		b = make(map[string]decimal.Decimal)
		m.data[key] = b
		m.order = append(m.order, key)
	}
	return b
}

func (m *monthBuckets) add(key, field string, d decimal.Decimal) {
	b := m.bucket(key)
	b[field] = b[field].Add(d)
}

func (m *monthBuckets) sub(key, field string, d decimal.Decimal) {
	b := m.bucket(key)
	b[field] = b[field].Sub(d)
}

func (m *monthBuckets) get(key, field string) decimal.Decimal {
	return m.data[key][field]
}

func f64(d decimal.Decimal) float64 { return d.InexactFloat64() }

func round2(d decimal.Decimal) decimal.Decimal { return d.Round(2) }
