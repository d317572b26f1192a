package statutory

import "github.com/shopspring/decimal"

var twelve = decimal.NewFromInt(12)

// PCB computes the monthly tax deduction by projecting the current
// month's statutory base over the rest of the year, taxing the
// resulting annual chargeable income through the resident bracket
// table, and spreading the balance over the remaining months.
func (c *Calculator) PCB(in PCBInput, p Profile) decimal.Decimal {
	if in.Month < 1 || in.Month > 12 {
		return decimal.Zero
	}
	t := c.tables
	remaining := decimal.NewFromInt(int64(12 - in.Month + 1))

	annualIncome := in.MonthlyBase.Mul(remaining).Add(in.YTDBase)

	epfRelief := in.EPFEmployee.Mul(twelve)
	if epfRelief.GreaterThan(t.EPFReliefCap) {
		epfRelief = t.EPFReliefCap
	}
	relief := t.PersonalRelief.Add(epfRelief)
	spouseEligible := p.IsMarried && !p.SpouseWorking
	if spouseEligible {
		relief = relief.Add(t.SpouseRelief)
	}
	if p.ChildrenCount > 0 {
		relief = relief.Add(t.ChildRelief.Mul(decimal.NewFromInt(int64(p.ChildrenCount))))
	}

	chargeable := annualIncome.Sub(relief)
	if chargeable.Sign() <= 0 {
		return decimal.Zero
	}

	tax := c.annualTax(chargeable)
	if chargeable.LessThanOrEqual(t.RebateIncomeCeiling) {
		rebate := t.TaxRebate
		if spouseEligible {
			rebate = rebate.Add(t.TaxRebate)
		}
		tax = tax.Sub(rebate)
	}
	tax = tax.Sub(in.YTDPCB)
	if tax.Sign() <= 0 {
		return decimal.Zero
	}
	monthly := tax.Div(remaining).Round(2)
	if monthly.Sign() < 0 {
		return decimal.Zero
	}
	return monthly
}

func (c *Calculator) annualTax(chargeable decimal.Decimal) decimal.Decimal {
	tax := decimal.Zero
	lower := decimal.Zero
	for _, b := range c.tables.TaxBrackets {
		top := b.UpTo
		if top.IsZero() {
			// open-ended highest band
			tax = tax.Add(chargeable.Sub(lower).Mul(b.Rate))
			break
		}
		if chargeable.LessThanOrEqual(top) {
			tax = tax.Add(chargeable.Sub(lower).Mul(b.Rate))
			break
		}
		tax = tax.Add(top.Sub(lower).Mul(b.Rate))
		lower = top
	}
	return tax
}
