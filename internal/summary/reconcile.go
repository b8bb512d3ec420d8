package summary

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sagarbarkade/INNControl-MA/internal/layout"
)

// closingFromTransactions walks the account's transaction block and
// accumulates debit minus credit (or the reverse) on top of the opening
// balance. Blocks end at a "Total" or "Closing Balance" marker.
func closingFromTransactions(trans [][]string, accountRow int, opening decimal.Decimal, mode balanceMode) decimal.Decimal {
	closing := opening
	for r := accountRow + 2; r < len(trans); r++ {
		first := cell(trans, r, 0)
		if strings.Contains(first, "Total") || strings.Contains(first, "Closing Balance") {
			break
		}
		h := amount(trans, r, layout.TransCreditCol-1)
		i := amount(trans, r, layout.TransDebitCol-1)
		if mode == creditMinusDebit {
			closing = closing.Add(h.Sub(i))
		} else {
			closing = closing.Add(i.Sub(h))
		}
	}
	return round2(closing)
}

// statementReconcile (format3) writes a two-line bank style
// reconciliation: the statement balance stays blank for manual entry, the
// ledger balance comes from the transactions.
type statementReconcile struct{}

func (b *statementReconcile) Name() string { return "format3" }

func (b *statementReconcile) Build(ctx *Context) error {
	periodEnd := ctx.targetCell(layout.PeriodDateCell)
	if strings.TrimSpace(periodEnd) == "" {
		ctx.Log.Add("format3", ctx.Account, "no period date in %s", layout.PeriodDateCell)
		return nil
	}
	accountRow, ok := findAccountRow(ctx.Trans, ctx.Account)
	if !ok {
		ctx.Log.Add("format3", ctx.Account, "account not found in transactions sheet")
		return nil
	}
	opening := openingBalance(ctx.Trans, accountRow, debitMinusCredit)
	closing := closingFromTransactions(ctx.Trans, accountRow, opening, debitMinusCredit)

	row, err := ctx.headers("Date", "Particular", "£")
	if err != nil {
		return err
	}
	if err := ctx.writeRow(row, periodEnd, "Balance as per statement"); err != nil {
		return err
	}
	return ctx.writeRow(row+1, periodEnd, "Balance as per Xero", f64(closing))
}

// controlReconcile (format9) is the creditor-side variant: opening runs
// credit minus debit and a blank row separates the two balance lines.
type controlReconcile struct{}

func (b *controlReconcile) Name() string { return "format9" }

func (b *controlReconcile) Build(ctx *Context) error {
	periodEnd := ctx.targetCell(layout.PeriodDateCell)
	if strings.TrimSpace(periodEnd) == "" {
		ctx.Log.Add("format9", ctx.Account, "no period date in %s", layout.PeriodDateCell)
		return nil
	}
	accountRow, ok := findAccountRow(ctx.Trans, ctx.Account)
	if !ok {
		ctx.Log.Add("format9", ctx.Account, "account not found in transactions sheet")
		return nil
	}
	opening := openingBalance(ctx.Trans, accountRow, creditMinusDebit)
	closing := closingFromTransactions(ctx.Trans, accountRow, opening, creditMinusDebit)

	row, err := ctx.headers("Date", "Details", "Amount £")
	if err != nil {
		return err
	}
	if err := ctx.writeRow(row, periodEnd, "Balance as per statement"); err != nil {
		return err
	}
	return ctx.writeRow(row+2, periodEnd, "Balance per Control account", f64(closing))
}

// differenceReconcile (format10) adds a Reconciliation title and a third
// line whose amount is a live difference formula so the manual statement
// figure recomputes it in Excel.
type differenceReconcile struct{}

func (b *differenceReconcile) Name() string { return "format10" }

func (b *differenceReconcile) Build(ctx *Context) error {
	periodEnd := ctx.targetCell(layout.PeriodDateCell)
	if strings.TrimSpace(periodEnd) == "" {
		ctx.Log.Add("format10", ctx.Account, "no period date in %s", layout.PeriodDateCell)
		return nil
	}
	accountRow, ok := findAccountRow(ctx.Trans, ctx.Account)
	if !ok {
		ctx.Log.Add("format10", ctx.Account, "account not found in transactions sheet")
		return nil
	}
	opening := openingBalance(ctx.Trans, accountRow, debitMinusCredit)
	closing := closingFromTransactions(ctx.Trans, accountRow, opening, debitMinusCredit)

	if err := ctx.write(1, layout.SummaryStartRow-2, "Reconciliation"); err != nil {
		return err
	}
	row, err := ctx.headers("Date", "£", "Particular")
	if err != nil {
		return err
	}
	if err := ctx.writeRow(row, periodEnd, nil, "Balance as per "); err != nil {
		return err
	}
	if err := ctx.writeRow(row+1, periodEnd, f64(closing), "Balance as per "); err != nil {
		return err
	}
	if err := ctx.write(1, row+2, periodEnd); err != nil {
		return err
	}
	if err := ctx.writeFormula(2, row+2, fmt.Sprintf("B%d-B%d", row, row+1)); err != nil {
		return err
	}
	return ctx.write(3, row+2, "Difference")
}
