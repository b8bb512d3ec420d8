package summary

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sagarbarkade/INNControl-MA/internal/layout"
	"github.com/sagarbarkade/INNControl-MA/internal/model"
)

// monthlyPivot (format1) pivots an account's transactions into a
// sub-account × month table with an opening balance and closing total.
type monthlyPivot struct{}

func (b *monthlyPivot) Name() string { return "format1" }

func (b *monthlyPivot) Build(ctx *Context) error {
	accountRow, ok := findAccountRow(ctx.Trans, ctx.Account)
	if !ok {
		ctx.Log.Add("format1", ctx.Account, "account not found in transactions sheet")
		return nil
	}
	opening := openingBalance(ctx.Trans, accountRow, debitMinusCredit)

	buckets := newMonthBuckets()
	var accounts []string
	seen := map[string]bool{}

	for r := accountRow + 2; r < len(ctx.Trans); r++ {
		first := strings.TrimSpace(cell(ctx.Trans, r, 0))
		if first == "Total" || first == "Closing Balance" {
			break
		}

		sub := cell(ctx.Trans, r, layout.TransSubAccountCol-1)
		if len(sub) > layout.TransSubAccountNameIdx {
			sub = sub[layout.TransSubAccountNameIdx:]
		}

		month := monthKey(cell(ctx.Trans, r, 0), true, ctx.Cfg.Dates.CellFormat)
		if month == "" {
			continue
		}
		if !seen[sub] {
			seen[sub] = true
			accounts = append(accounts, sub)
		}

		net := amount(ctx.Trans, r, layout.TransDebitCol-1).Sub(amount(ctx.Trans, r, layout.TransCreditCol-1))
		buckets.add(month, sub, net)
	}

	months := append([]string{}, buckets.order...)
	sortMonthKeys(months)

	if err := ctx.write(1, layout.SummaryStartRow, "Account Name"); err != nil {
		return err
	}
	if err := ctx.write(2, layout.SummaryStartRow, "Opening Balance"); err != nil {
		return err
	}
	for i, m := range months {
		if err := ctx.write(3+i, layout.SummaryStartRow, m); err != nil {
			return err
		}
	}
	if err := ctx.write(3+len(months), layout.SummaryStartRow, "Closing Balance"); err != nil {
		return err
	}

	row := layout.SummaryStartRow + 1
	for _, sub := range accounts {
		if err := ctx.write(1, row, sub); err != nil {
			return err
		}
		for i, m := range months {
			if err := ctx.write(3+i, row, f64(buckets.get(m, sub))); err != nil {
				return err
			}
		}
		row++
	}

	// Totals row: opening balance plus each month's column sum rolls into
	// the closing balance.
	if err := ctx.write(1, row, "Total"); err != nil {
		return err
	}
	if err := ctx.write(2, row, f64(opening)); err != nil {
		return err
	}
	closing := opening
	for i, m := range months {
		sum := decimal.Zero
		for _, sub := range accounts {
			sum = sum.Add(buckets.get(m, sub))
		}
		if err := ctx.write(3+i, row, f64(sum)); err != nil {
			return err
		}
		closing = closing.Add(sum)
	}
	return ctx.write(3+len(months), row, f64(round2(closing)))
}

// transactionCopy (format2) copies the account's transaction block onto
// the sheet and appends closing-balance and total rows.
type transactionCopy struct{}

func (b *transactionCopy) Name() string { return "format2" }

// sourceCols are the transaction columns copied into the summary, in
// output order (1-based).
var sourceCols = []int{1, 2, 5, 7, 8, 9}

func (b *transactionCopy) Build(ctx *Context) error {
	hdr := layout.TransHeaderRow - 1
	for i, c := range sourceCols {
		if err := ctx.write(i+1, layout.SummaryStartRow, cell(ctx.Trans, hdr, c-1)); err != nil {
			return err
		}
	}

	accountRow, ok := findAccountRow(ctx.Trans, ctx.Account)
	if !ok {
		ctx.Log.Add("format2", ctx.Account, "account not found in transactions sheet")
		return nil
	}

	row := layout.SummaryStartRow + 1
	sumH, sumI := decimal.Zero, decimal.Zero
	for r := accountRow + 1; r < len(ctx.Trans); r++ {
		first := strings.TrimSpace(cell(ctx.Trans, r, 0))
		if strings.HasPrefix(first, "Total") || strings.HasPrefix(first, "Closing Balance") {
			break
		}
		for i, c := range sourceCols {
			v := cell(ctx.Trans, r, c-1)
			if v == "" {
				continue
			}
			if d, numeric := model.ParseAmountStrict(v); numeric && c >= layout.TransCreditCol {
				if err := ctx.write(i+1, row, f64(d)); err != nil {
					return err
				}
			} else if err := ctx.write(i+1, row, v); err != nil {
				return err
			}
		}
		sumH = sumH.Add(amount(ctx.Trans, r, layout.TransCreditCol-1))
		sumI = sumI.Add(amount(ctx.Trans, r, layout.TransDebitCol-1))
		row++
	}

	closing := round2(sumI.Sub(sumH))

	closingRow := row + 1
	if err := ctx.write(1, closingRow, "Closing Balance"); err != nil {
		return err
	}
	if closing.IsPositive() {
		if err := ctx.write(5, closingRow, f64(closing)); err != nil {
			return err
		}
	} else if err := ctx.write(6, closingRow, f64(closing.Abs())); err != nil {
		return err
	}

	if err := ctx.write(layout.SummaryValueCol, layout.SummaryValueRow, f64(round2(closing.Abs()))); err != nil {
		return err
	}

	totalRow := closingRow + 1
	totalH, totalI := sumH, sumI
	if closing.IsPositive() {
		totalH = totalH.Add(closing)
	} else {
		totalI = totalI.Sub(closing)
	}
	if err := ctx.write(1, totalRow, "Total"); err != nil {
		return err
	}
	if err := ctx.write(5, totalRow, f64(round2(totalH))); err != nil {
		return err
	}
	return ctx.write(6, totalRow, f64(round2(totalI)))
}
