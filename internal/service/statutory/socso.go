package statutory

import "github.com/shopspring/decimal"

// socsoMidpoint maps gross wages to the midpoint of their RM100-wide
// contribution bracket. Wages above the ceiling all fall into the top
// bracket, whose midpoint sits RM50 beyond the ceiling boundary.
func (c *Calculator) socsoMidpoint(wages decimal.Decimal) decimal.Decimal {
	t := c.tables
	half := t.SocsoBracketWidth.Div(decimal.NewFromInt(2))
	if wages.GreaterThan(t.SocsoWageCeiling.Sub(t.SocsoBracketWidth)) {
		return t.SocsoWageCeiling.Sub(half)
	}
	bracket := wages.Div(t.SocsoBracketWidth).RoundCeil(0)
	if bracket.Sign() <= 0 {
		bracket = decimal.NewFromInt(1)
	}
	return bracket.Mul(t.SocsoBracketWidth).Sub(half)
}

// Socso computes the employment-injury and invalidity contribution.
// Below 60 both parties contribute (category 1); from 60 only the
// employer pays the injury-scheme rate (category 2). Each amount is
// the rate applied to the bracket midpoint, rounded up to 5 sen.
func (c *Calculator) Socso(wages decimal.Decimal, age int) Contribution {
	if wages.Sign() <= 0 {
		return Contribution{Employee: decimal.Zero, Employer: decimal.Zero}
	}
	t := c.tables
	mid := c.socsoMidpoint(wages)

	if age >= seniorAge {
		return Contribution{
			Employee: decimal.Zero,
			Employer: roundUpFiveSen(mid.Mul(t.SocsoSeniorEmployerRate)),
		}
	}
	return Contribution{
		Employee: roundUpFiveSen(mid.Mul(t.SocsoEmployeeRate)),
		Employer: roundUpFiveSen(mid.Mul(t.SocsoEmployerRate)),
	}
}
