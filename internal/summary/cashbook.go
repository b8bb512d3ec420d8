package summary

import (
	"strings"

	"github.com/sagarbarkade/INNControl-MA/internal/layout"
)

// cashbook (format8) rolls a bank account forward month by month:
// receipts in, payments and card deposits out, closing balance carried
// into the next month's opening.
type cashbook struct{}

func (b *cashbook) Name() string { return "format8" }

func (b *cashbook) Build(ctx *Context) error {
	accountRow, ok := findAccountRow(ctx.Trans, ctx.Account)
	if !ok {
		ctx.Log.Add("format8", ctx.Account, "account not found in transactions sheet")
		return nil
	}
	opening := amount(ctx.Trans, accountRow+1, layout.TransCreditCol-1)

	buckets := newMonthBuckets()
	for r := accountRow + 2; r < len(ctx.Trans); r++ {
		first := cell(ctx.Trans, r, 0)
		if first == "" || first == "Total PAYE" || first == "Closing Balance" {
			break
		}
		i := amount(ctx.Trans, r, layout.TransDebitCol-1)
		h := amount(ctx.Trans, r, layout.TransCreditCol-1)
		month := monthKey(first, false, ctx.Cfg.Dates.CellFormat)

		switch strings.ToUpper(cell(ctx.Trans, r, 1)) {
		case "RECEIVE MONEY":
			buckets.add(month, "receipts", h)
		case "SPEND MONEY", "PAYABLE PAYMENT", "PAYABLE OVERPAYMENT":
			buckets.add(month, "payments", i)
		case "BANK TRANSFER":
			buckets.add(month, "pdq", i.Sub(h))
		}
	}

	row, err := ctx.headers("Month", "Op Bal", "Receipts", "Payments", "PDQ / Deposits", "Clo Bal")
	if err != nil {
		return err
	}
	if err := ctx.writeRow(row, "Opening Balance", f64(opening)); err != nil {
		return err
	}
	row++

	for _, month := range buckets.order {
		receipts := buckets.get(month, "receipts")
		payments := buckets.get(month, "payments")
		pdq := buckets.get(month, "pdq")
		closing := opening.Add(receipts).Sub(payments).Sub(pdq)
		err := ctx.writeRow(row, month,
			f64(opening), f64(receipts), f64(payments), f64(pdq), f64(closing))
		if err != nil {
			return err
		}
		opening = closing
		row++
	}
	return nil
}
