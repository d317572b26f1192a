package statutory

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/employee"
)

// Profile carries the employee facts the schemes depend on. Missing
// facts never fail a payroll run; the calculator falls back to the
// most common case and reports a warning instead.
type Profile struct {
	ICNumber         string
	IsMalaysian      bool
	EPFType          employee.EPFContributionType
	VoluntaryEPFRate *decimal.Decimal
	IsMarried        bool
	SpouseWorking    bool
	ChildrenCount    int
}

// Contribution is one scheme's employee and employer amounts.
type Contribution struct {
	Employee decimal.Decimal
	Employer decimal.Decimal
}

// Result bundles all four schemes for one payroll item.
type Result struct {
	EPF      Contribution
	Socso    Contribution
	EIS      Contribution
	PCB      decimal.Decimal
	Warnings []string
}

// PCBInput carries the year-to-date figures the projection needs.
type PCBInput struct {
	MonthlyBase decimal.Decimal // basic + commission + bonus for this month
	Month       int             // 1..12
	YTDBase     decimal.Decimal // statutory base already paid this year
	YTDPCB      decimal.Decimal // tax already deducted this year
	EPFEmployee decimal.Decimal // this month's employee EPF, for the relief cap
}

// Calculator computes Malaysian statutory contributions from a single
// versioned table set. All methods are pure and safe for concurrent use.
type Calculator struct {
	tables *Tables
}

func NewCalculator(tables *Tables) *Calculator {
	return &Calculator{tables: tables}
}

func (c *Calculator) Version() string { return c.tables.Version }

// All runs every scheme against one employee for the given period.
// socsoBase and eisBase are gross wages; epfBase and pcb.MonthlyBase
// exclude the allowance-type earnings.
func (c *Calculator) All(p Profile, epfBase, socsoBase decimal.Decimal, pcb PCBInput, periodStart time.Time) Result {
	var r Result

	age, known := ageFromProfile(p, periodStart)
	if !known && p.EPFType != employee.EPFNone {
		r.Warnings = append(r.Warnings, fmt.Sprintf("birth date not derivable from IC %q, contributions assume below 60", p.ICNumber))
		age = 0
	}

	var w []string
	r.EPF, w = c.EPF(epfBase, p, age)
	r.Warnings = append(r.Warnings, w...)
	r.Socso = c.Socso(socsoBase, age)
	r.EIS = c.EIS(socsoBase, age)
	r.PCB = c.PCB(pcb, p)
	return r
}

func ageFromProfile(p Profile, at time.Time) (int, bool) {
	birth, ok := employee.BirthDateFromIC(p.ICNumber, at)
	if !ok {
		return 0, false
	}
	age := at.Year() - birth.Year()
	if at.YearDay() < birth.YearDay() {
		age--
	}
	return age, true
}

// roundUpRinggit rounds a positive amount up to the next whole Ringgit.
func roundUpRinggit(v decimal.Decimal) decimal.Decimal {
	return v.RoundCeil(0)
}

// roundUpSen rounds up to the next sen.
func roundUpSen(v decimal.Decimal) decimal.Decimal {
	return v.RoundCeil(2)
}

var twenty = decimal.NewFromInt(20)

// roundUpFiveSen rounds up to the next 5-sen step.
func roundUpFiveSen(v decimal.Decimal) decimal.Decimal {
	return v.Mul(twenty).RoundCeil(0).Div(twenty)
}
