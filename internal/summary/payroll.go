package summary

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sagarbarkade/INNControl-MA/internal/dates"
	"github.com/sagarbarkade/INNControl-MA/internal/layout"
)

// payeSummary (format4) tracks monthly PAYE liability against payments
// to HMRC or NEST, carrying an outstanding balance.
type payeSummary struct{}

func (b *payeSummary) Name() string { return "format4" }

func (b *payeSummary) Build(ctx *Context) error {
	accountRow, ok := findAccountRow(ctx.Trans, ctx.Account)
	if !ok {
		ctx.Log.Add("format4", ctx.Account, "account not found in transactions sheet")
		return nil
	}
	opening := amount(ctx.Trans, accountRow+1, layout.TransDebitCol-1)

	buckets := newMonthBuckets()
	for r := accountRow + 2; r < len(ctx.Trans); r++ {
		first := cell(ctx.Trans, r, 0)
		if first == "" || first == "Total PAYE" || first == "Closing Balance" {
			break
		}
		i := amount(ctx.Trans, r, layout.TransDebitCol-1)
		h := amount(ctx.Trans, r, layout.TransCreditCol-1)
		month := monthKey(first, false, ctx.Cfg.Dates.CellFormat)

		colB := strings.ToUpper(cell(ctx.Trans, r, 1))
		colC := strings.ToUpper(cell(ctx.Trans, r, 2))
		colE := strings.ToUpper(cell(ctx.Trans, r, 4))

		hmrcOrNest := strings.Contains(colC, "HMRC") || strings.Contains(colC, "NEST") ||
			strings.Contains(colE, "HMRC") || strings.Contains(colE, "NEST")
		if hmrcOrNest {
			buckets.add(month, "payment", h)
		} else {
			buckets.add(month, "liability", i)
		}
		if colB == "MANUAL JOURNAL" {
			buckets.sub(month, "liability", h)
		}
	}

	row, err := ctx.headers("Month", "Liability", "Payment", "Outstanding")
	if err != nil {
		return err
	}
	if err := ctx.writeRow(row, "Opening Balance", f64(opening), nil, f64(opening)); err != nil {
		return err
	}
	row++

	total := opening
	for _, month := range buckets.order {
		liability := buckets.get(month, "liability")
		payment := buckets.get(month, "payment")
		outstanding := liability.Sub(payment)
		if err := ctx.writeRow(row, month, f64(liability), f64(payment), f64(outstanding)); err != nil {
			return err
		}
		total = total.Add(outstanding)
		row++
	}

	if err := ctx.write(1, row, "Outstanding Total"); err != nil {
		return err
	}
	return ctx.write(4, row, f64(total))
}

// vatSummary (format5) reconciles VAT liability against HMRC payments
// and appends a corporation-tax estimate table fed from the P&L sheet.
type vatSummary struct{}

func (b *vatSummary) Name() string { return "format5" }

func (b *vatSummary) Build(ctx *Context) error {
	accountRow, ok := findAccountRow(ctx.Trans, ctx.Account)
	if !ok {
		ctx.Log.Add("format5", ctx.Account, "account not found in transactions sheet")
		return nil
	}
	opening := amount(ctx.Trans, accountRow+1, layout.TransDebitCol-1)

	buckets := newMonthBuckets()
	for r := accountRow + 2; r < len(ctx.Trans); r++ {
		first := cell(ctx.Trans, r, 0)
		if first == "" || first == "Closing Balance" || strings.Contains(first, "Total") {
			break
		}
		i := amount(ctx.Trans, r, layout.TransDebitCol-1)
		h := amount(ctx.Trans, r, layout.TransCreditCol-1)
		month := monthKey(first, false, ctx.Cfg.Dates.CellFormat)

		colB := strings.ToUpper(cell(ctx.Trans, r, 1))
		colC := strings.ToUpper(cell(ctx.Trans, r, 2))

		if colC != "HMRC" {
			buckets.add(month, "liability", i)
		} else {
			buckets.add(month, "payment", h.Sub(i))
		}
		if colB == "MANUAL JOURNAL" {
			buckets.sub(month, "liability", h)
		}
	}

	row, err := ctx.headers("Month", "Liability", "Payment", "Outstanding", "Payment Date")
	if err != nil {
		return err
	}
	if err := ctx.writeRow(row, "Opening Balance", f64(opening)); err != nil {
		return err
	}
	row++

	totalLiability := opening
	totalPayment := decimal.Zero
	for _, month := range buckets.order {
		liability := buckets.get(month, "liability")
		payment := buckets.get(month, "payment")
		outstanding := liability.Sub(payment)
		if outstanding.IsNegative() {
			outstanding = decimal.Zero
		}
		if err := ctx.writeRow(row, month, f64(liability), f64(payment), f64(outstanding)); err != nil {
			return err
		}
		totalLiability = totalLiability.Add(liability)
		totalPayment = totalPayment.Add(payment)
		row++
	}

	totalOutstanding := totalLiability.Sub(totalPayment)
	if err := ctx.writeRow(row, "Balance", f64(totalLiability), f64(totalPayment), f64(totalOutstanding)); err != nil {
		return err
	}
	if err := ctx.write(layout.SummaryValueCol, layout.SummaryValueRow, f64(totalOutstanding)); err != nil {
		return err
	}

	if ctx.PL != nil {
		return b.taxTable(ctx)
	}
	return nil
}

// taxTable writes the corporation-tax estimate block alongside the VAT
// summary. Column two holds the current month, column three the year to
// date.
func (b *vatSummary) taxTable(ctx *Context) error {
	profit, profitYTD := decimal.Zero, decimal.Zero
	dep, depYTD := decimal.Zero, decimal.Zero
	for r := range ctx.PL {
		label := cell(ctx.PL, r, 0)
		if label == "" {
			continue
		}
		monthly := amount(ctx.PL, r, 1)
		ytd := amount(ctx.PL, r, 2)
		switch {
		case strings.Contains(label, "Profit after Taxation") || strings.Contains(label, "Corporation Tax Expense"):
			profit = profit.Add(monthly)
			profitYTD = profitYTD.Add(ytd)
		case strings.Contains(label, "Depreciation"):
			dep = dep.Add(monthly)
			depYTD = depYTD.Add(ytd)
		}
	}

	netProfit := profit.Add(dep)
	netProfitYTD := profitYTD.Add(depYTD)
	ctCharge := ctx.Cfg.Tax.Charge(netProfit)
	ctChargeYTD := ctx.Cfg.Tax.Charge(netProfitYTD)

	monthLabel := ctx.targetCell(layout.PeriodDateCell)
	if t, ok := dates.ParseCell(monthLabel, ctx.Cfg.Dates.CellFormat); ok {
		monthLabel = t.Format("Jan'06")
	}

	rows := []struct {
		label        string
		monthly, ytd any
	}{
		{"", monthLabel, "YTD"},
		{"Net profit before tax", f64(profit), f64(profitYTD)},
		{"", nil, nil},
		{"Depreciation", f64(dep), f64(depYTD)},
		{"", nil, nil},
		{"Net profit", f64(netProfit), f64(netProfitYTD)},
		{"", nil, nil},
		{"Corporation Tax rate", ctx.Cfg.Tax.RateUpTo50K, ctx.Cfg.Tax.RateUpTo50K},
		{"", nil, nil},
		{"CT charge", f64(ctCharge), f64(ctChargeYTD)},
		{"", nil, nil},
		{"Total CT", f64(ctCharge), f64(ctChargeYTD)},
	}
	for i, tr := range rows {
		row := layout.SummaryStartRow + i
		if err := ctx.write(layout.TaxTableStartCol, row, tr.label); err != nil {
			return err
		}
		if tr.monthly != nil {
			if err := ctx.write(layout.TaxTableStartCol+1, row, tr.monthly); err != nil {
				return err
			}
		}
		if tr.ytd != nil {
			if err := ctx.write(layout.TaxTableStartCol+2, row, tr.ytd); err != nil {
				return err
			}
		}
	}
	return nil
}

// liabilityDifference (format6) totals monthly liability and payment
// columns into a running difference without the HMRC payment split.
type liabilityDifference struct{}

func (b *liabilityDifference) Name() string { return "format6" }

func (b *liabilityDifference) Build(ctx *Context) error {
	accountRow, ok := findAccountRow(ctx.Trans, ctx.Account)
	if !ok {
		ctx.Log.Add("format6", ctx.Account, "account not found in transactions sheet")
		return nil
	}
	opening := amount(ctx.Trans, accountRow+1, layout.TransDebitCol-1)

	buckets := newMonthBuckets()
	for r := accountRow + 2; r < len(ctx.Trans); r++ {
		first := cell(ctx.Trans, r, 0)
		if first == "" || first == "Closing Balance" || strings.Contains(first, "Total") {
			break
		}
		i := amount(ctx.Trans, r, layout.TransDebitCol-1)
		h := amount(ctx.Trans, r, layout.TransCreditCol-1)
		month := monthKey(first, false, ctx.Cfg.Dates.CellFormat)

		if strings.ToUpper(cell(ctx.Trans, r, 2)) != "HMRC" {
			buckets.add(month, "liability", i)
		}
		buckets.add(month, "payment", h)
	}

	row, err := ctx.headers("Description", "Liability", "Payment", "Difference")
	if err != nil {
		return err
	}
	if err := ctx.writeRow(row, "Opening Balance", f64(opening), nil, f64(opening)); err != nil {
		return err
	}
	row++

	totalLiability := opening
	totalPayment := decimal.Zero
	for _, month := range buckets.order {
		liability := buckets.get(month, "liability")
		payment := buckets.get(month, "payment")
		if err := ctx.writeRow(row, month, f64(liability), f64(payment), f64(liability.Sub(payment))); err != nil {
			return err
		}
		totalLiability = totalLiability.Add(liability)
		totalPayment = totalPayment.Add(payment)
		row++
	}
	return ctx.writeRow(row, "Balance", f64(totalLiability), f64(totalPayment), f64(totalLiability.Sub(totalPayment)))
}

// journalVsSpend (format7) compares manual-journal liabilities against
// spend-money payments month by month.
type journalVsSpend struct{}

func (b *journalVsSpend) Name() string { return "format7" }

func (b *journalVsSpend) Build(ctx *Context) error {
	accountRow, ok := findAccountRow(ctx.Trans, ctx.Account)
	if !ok {
		ctx.Log.Add("format7", ctx.Account, "account not found in transactions sheet")
		return nil
	}
	opening := amount(ctx.Trans, accountRow+1, layout.TransDebitCol-1)

	buckets := newMonthBuckets()
	for r := accountRow + 2; r < len(ctx.Trans); r++ {
		first := cell(ctx.Trans, r, 0)
		if first == "" || first == "Closing Balance" || strings.HasPrefix(first, "Total") {
			break
		}
		i := amount(ctx.Trans, r, layout.TransDebitCol-1)
		h := amount(ctx.Trans, r, layout.TransCreditCol-1)
		month := monthKey(first, false, ctx.Cfg.Dates.CellFormat)

		switch cell(ctx.Trans, r, 1) {
		case "Manual Journal":
			buckets.add(month, "liability", i.Sub(h))
		case "Spend Money":
			buckets.add(month, "payment", h)
		}
	}

	row, err := ctx.headers("Month", "Liability", "Payment", "Outstanding")
	if err != nil {
		return err
	}
	if err := ctx.writeRow(row, "Opening Balance", f64(opening), nil, f64(opening)); err != nil {
		return err
	}
	row++

	total := opening
	for _, month := range buckets.order {
		liability := buckets.get(month, "liability")
		payment := buckets.get(month, "payment")
		outstanding := liability.Sub(payment)
		if err := ctx.writeRow(row, month, f64(liability), f64(payment)); err != nil {
			return err
		}
		if !outstanding.IsZero() {
			if err := ctx.write(4, row, f64(outstanding)); err != nil {
				return err
			}
		}
		total = total.Add(outstanding)
		row++
	}

	if err := ctx.write(1, row, "Outstanding Total"); err != nil {
		return err
	}
	return ctx.write(4, row, f64(total))
}
