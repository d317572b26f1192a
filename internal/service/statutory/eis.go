package statutory

import "github.com/shopspring/decimal"

// EIS computes the employment insurance contribution, the same rate on
// both sides against wages capped at the scheme ceiling. Employees who
// have reached 60 are exempt.
func (c *Calculator) EIS(wages decimal.Decimal, age int) Contribution {
	if wages.Sign() <= 0 || age >= seniorAge {
		return Contribution{Employee: decimal.Zero, Employer: decimal.Zero}
	}
	t := c.tables
	base := wages
	if base.GreaterThan(t.EISWageCeiling) {
		base = t.EISWageCeiling
	}
	amount := roundUpSen(base.Mul(t.EISRate))
	return Contribution{Employee: amount, Employer: amount}
}
