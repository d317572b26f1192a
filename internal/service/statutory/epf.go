package statutory

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/employee"
)

const seniorAge = 60

// EPF computes both sides of the EPF contribution. Amounts round up
// to the next whole Ringgit, each side independently.
func (c *Calculator) EPF(base decimal.Decimal, p Profile, age int) (Contribution, []string) {
	if p.EPFType == employee.EPFNone || base.Sign() <= 0 {
		return Contribution{Employee: decimal.Zero, Employer: decimal.Zero}, nil
	}

	t := c.tables
	var warnings []string

	empRate := t.EPFEmployeeRate
	var erRate decimal.Decimal
	erFlat := decimal.Zero

	switch {
	case p.IsMalaysian && age < seniorAge:
		if base.LessThanOrEqual(t.EPFEmployerWageStep) {
			erRate = t.EPFEmployerRateLow
		} else {
			erRate = t.EPFEmployerRateHigh
		}
	case p.IsMalaysian:
		empRate = decimal.Zero
		erRate = t.EPFSeniorEmployerRate
	case age >= seniorAge:
		empRate = t.EPFSeniorForeignEmpRate
		erRate = t.EPFSeniorForeignErRate
	default:
		// foreigner opt-in: employee at the standard rate, employer flat
		erFlat = t.EPFForeignerEmployerFlat
	}

	if p.EPFType == employee.EPFVoluntaryHigher {
		if p.VoluntaryEPFRate == nil {
			warnings = append(warnings, "voluntary EPF selected without a rate, using standard rate")
		} else {
			rate := *p.VoluntaryEPFRate
			if rate.GreaterThan(t.EPFMaxVoluntaryRate) {
				warnings = append(warnings, fmt.Sprintf("voluntary EPF rate %s capped at %s", rate, t.EPFMaxVoluntaryRate))
				rate = t.EPFMaxVoluntaryRate
			}
			empRate = rate
		}
	}

	out := Contribution{
		Employee: roundUpRinggit(base.Mul(empRate)),
	}
	if erFlat.Sign() > 0 {
		out.Employer = erFlat
	} else {
		out.Employer = roundUpRinggit(base.Mul(erRate))
	}
	return out, warnings
}
