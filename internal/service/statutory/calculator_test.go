package statutory

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/employee"
)

func newTestCalculator(t *testing.T) *Calculator {
	t.Helper()
	tables, err := Load(DefaultVersion)
	require.NoError(t, err)
	return NewCalculator(tables)
}

func dec(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

func TestLoadUnknownVersion(t *testing.T) {
	_, err := Load("1999-01")
	assert.ErrorIs(t, err, ErrTableVersionMissing)
}

func TestEPFBelowSixty(t *testing.T) {
	c := newTestCalculator(t)
	p := Profile{IsMalaysian: true, EPFType: employee.EPFNormal}

	got, warnings := c.EPF(dec("3000"), p, 30)
	assert.Empty(t, warnings)
	assert.True(t, got.Employee.Equal(dec("330")), "employee %s", got.Employee)
	assert.True(t, got.Employer.Equal(dec("360")), "employer %s", got.Employer)
}

func TestEPFEmployerRateSteps(t *testing.T) {
	c := newTestCalculator(t)
	p := Profile{IsMalaysian: true, EPFType: employee.EPFNormal}

	low, _ := c.EPF(dec("5000"), p, 30)
	assert.True(t, low.Employer.Equal(dec("600")), "at step: %s", low.Employer)

	high, _ := c.EPF(dec("5001"), p, 30)
	// 13% of 5000.01+ rounds up to the next Ringgit
	assert.True(t, high.Employer.Equal(dec("651")), "above step: %s", high.Employer)
}

func TestEPFRoundsUpToRinggit(t *testing.T) {
	c := newTestCalculator(t)
	p := Profile{IsMalaysian: true, EPFType: employee.EPFNormal}

	got, _ := c.EPF(dec("3333"), p, 30)
	// 11% of 3333 is 366.63
	assert.True(t, got.Employee.Equal(dec("367")), "employee %s", got.Employee)
}

func TestEPFSeniorMalaysian(t *testing.T) {
	c := newTestCalculator(t)
	p := Profile{IsMalaysian: true, EPFType: employee.EPFNormal}

	got, _ := c.EPF(dec("3000"), p, 61)
	assert.True(t, got.Employee.IsZero())
	assert.True(t, got.Employer.Equal(dec("120")), "employer %s", got.Employer)
}

func TestEPFForeignerOptIn(t *testing.T) {
	c := newTestCalculator(t)
	p := Profile{IsMalaysian: false, EPFType: employee.EPFNormal}

	got, _ := c.EPF(dec("3000"), p, 30)
	assert.True(t, got.Employee.Equal(dec("330")))
	assert.True(t, got.Employer.Equal(dec("5")), "employer %s", got.Employer)
}

func TestEPFVoluntaryHigherRate(t *testing.T) {
	c := newTestCalculator(t)
	rate := dec("0.15")
	p := Profile{IsMalaysian: true, EPFType: employee.EPFVoluntaryHigher, VoluntaryEPFRate: &rate}

	got, warnings := c.EPF(dec("3000"), p, 30)
	assert.Empty(t, warnings)
	assert.True(t, got.Employee.Equal(dec("450")), "employee %s", got.Employee)
	assert.True(t, got.Employer.Equal(dec("360")), "employer unchanged: %s", got.Employer)
}

func TestEPFVoluntaryWithoutRateWarns(t *testing.T) {
	c := newTestCalculator(t)
	p := Profile{IsMalaysian: true, EPFType: employee.EPFVoluntaryHigher}

	got, warnings := c.EPF(dec("3000"), p, 30)
	require.Len(t, warnings, 1)
	assert.True(t, got.Employee.Equal(dec("330")))
}

func TestEPFNoneContributesNothing(t *testing.T) {
	c := newTestCalculator(t)
	p := Profile{IsMalaysian: true, EPFType: employee.EPFNone}

	got, _ := c.EPF(dec("3000"), p, 30)
	assert.True(t, got.Employee.IsZero())
	assert.True(t, got.Employer.IsZero())
}

func TestSocsoBracketMidpoint(t *testing.T) {
	c := newTestCalculator(t)

	got := c.Socso(dec("3300"), 30)
	// bracket (3200, 3300], midpoint 3250
	assert.True(t, got.Employee.Equal(dec("16.25")), "employee %s", got.Employee)
	assert.True(t, got.Employer.Equal(dec("56.90")), "employer %s", got.Employer)
}

func TestSocsoCeilingBracket(t *testing.T) {
	c := newTestCalculator(t)

	at := c.Socso(dec("6000"), 30)
	above := c.Socso(dec("25000"), 30)
	assert.True(t, at.Employee.Equal(dec("29.75")), "employee %s", at.Employee)
	assert.True(t, at.Employer.Equal(dec("104.15")), "employer %s", at.Employer)
	assert.True(t, above.Employee.Equal(at.Employee))
	assert.True(t, above.Employer.Equal(at.Employer))
}

func TestSocsoSeniorEmployerOnly(t *testing.T) {
	c := newTestCalculator(t)

	got := c.Socso(dec("3300"), 62)
	assert.True(t, got.Employee.IsZero())
	// 1.25% of 3250, rounded up to 5 sen
	assert.True(t, got.Employer.Equal(dec("40.65")), "employer %s", got.Employer)
}

func TestSocsoZeroWages(t *testing.T) {
	c := newTestCalculator(t)
	got := c.Socso(decimal.Zero, 30)
	assert.True(t, got.Employee.IsZero())
	assert.True(t, got.Employer.IsZero())
}

func TestEISCappedBase(t *testing.T) {
	c := newTestCalculator(t)

	got := c.EIS(dec("3300"), 30)
	assert.True(t, got.Employee.Equal(dec("6.60")), "employee %s", got.Employee)
	assert.True(t, got.Employer.Equal(dec("6.60")))

	capped := c.EIS(dec("9000"), 30)
	assert.True(t, capped.Employee.Equal(dec("12")), "capped %s", capped.Employee)
}

func TestEISSeniorExempt(t *testing.T) {
	c := newTestCalculator(t)
	got := c.EIS(dec("3300"), 60)
	assert.True(t, got.Employee.IsZero())
	assert.True(t, got.Employer.IsZero())
}

func TestPCBLowIncomeRebateZeroesTax(t *testing.T) {
	c := newTestCalculator(t)

	got := c.PCB(PCBInput{
		MonthlyBase: dec("3000"),
		Month:       3,
		YTDBase:     dec("6000"),
		YTDPCB:      decimal.Zero,
		EPFEmployee: dec("330"),
	}, Profile{IsMalaysian: true})
	assert.True(t, got.IsZero(), "pcb %s", got)
}

func TestPCBHigherIncome(t *testing.T) {
	c := newTestCalculator(t)

	got := c.PCB(PCBInput{
		MonthlyBase: dec("10000"),
		Month:       1,
		YTDBase:     decimal.Zero,
		YTDPCB:      decimal.Zero,
		EPFEmployee: dec("1100"),
	}, Profile{IsMalaysian: true})
	// chargeable 120000 - 9000 personal - 4000 EPF cap = 107000
	// tax 150 + 450 + 900 + 2200 + 5700 + 1750 = 11150, over 12 months
	assert.True(t, got.Equal(dec("929.17")), "pcb %s", got)
}

func TestPCBReliefsReduceTax(t *testing.T) {
	c := newTestCalculator(t)

	in := PCBInput{
		MonthlyBase: dec("10000"),
		Month:       1,
		EPFEmployee: dec("1100"),
	}
	single := c.PCB(in, Profile{IsMalaysian: true})
	family := c.PCB(in, Profile{IsMalaysian: true, IsMarried: true, ChildrenCount: 2})
	assert.True(t, family.LessThan(single))
}

func TestPCBNeverNegative(t *testing.T) {
	c := newTestCalculator(t)

	got := c.PCB(PCBInput{
		MonthlyBase: dec("3000"),
		Month:       11,
		YTDBase:     dec("30000"),
		YTDPCB:      dec("5000"),
		EPFEmployee: dec("330"),
	}, Profile{IsMalaysian: true})
	assert.True(t, got.IsZero())
}

func TestAllMissingICWarns(t *testing.T) {
	c := newTestCalculator(t)
	p := Profile{IsMalaysian: true, EPFType: employee.EPFNormal, ICNumber: ""}

	r := c.All(p, dec("3000"), dec("3300"), PCBInput{MonthlyBase: dec("3000"), Month: 3, EPFEmployee: dec("330")}, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NotEmpty(t, r.Warnings)
	// falls back to below-60 treatment
	assert.True(t, r.EPF.Employee.Equal(dec("330")))
	assert.True(t, r.Socso.Employee.Equal(dec("16.25")))
}

func TestAllSeniorFromIC(t *testing.T) {
	c := newTestCalculator(t)
	p := Profile{IsMalaysian: true, EPFType: employee.EPFNormal, ICNumber: "600101-01-1234"}

	r := c.All(p, dec("3000"), dec("3300"), PCBInput{MonthlyBase: dec("3000"), Month: 3, EPFEmployee: decimal.Zero}, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	assert.Empty(t, r.Warnings)
	assert.True(t, r.EPF.Employee.IsZero())
	assert.True(t, r.EIS.Employee.IsZero())
	assert.True(t, r.Socso.Employee.IsZero())
	assert.False(t, r.Socso.Employer.IsZero())
}
