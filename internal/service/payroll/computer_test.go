package payroll

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/employee"
	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/payroll"
	attendancesvc "github.com/contactevin2u/AAHRMS-sub003/internal/service/attendance"
	"github.com/contactevin2u/AAHRMS-sub003/internal/service/statutory"
)

func testCalculator(t *testing.T) *statutory.Calculator {
	t.Helper()
	tables, err := statutory.Load(statutory.DefaultVersion)
	require.NoError(t, err)
	return statutory.NewCalculator(tables)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func officeEmployee() employee.Employee {
	return employee.Employee{
		ID:                   "emp-1",
		CompanyID:            "co-1",
		EmployeeCode:         "E001",
		Name:                 "Aina Rahman",
		ICNumber:             "950101-01-1234",
		EPFContributionType:  employee.EPFNormal,
		Status:               employee.StatusActive,
		WorkType:             employee.WorkFullTime,
		DefaultBasicSalary:   dec("3000"),
		DefaultAllowance:     dec("300"),
		PayrollStructureCode: StructureOffice,
	}
}

func baseInput(emp employee.Employee) ComputeInput {
	return ComputeInput{
		Employee:         emp,
		Month:            1,
		Year:             2026,
		PeriodStart:      time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		WorkDaysPerMonth: 26,
	}
}

func TestComputeItemOfficeFullMonth(t *testing.T) {
	calc := testCalculator(t)
	item := ComputeItem(calc, baseInput(officeEmployee()))

	assert.Equal(t, "3000.00", item.BasicSalary.StringFixed(2))
	assert.Equal(t, "300.00", item.FixedAllowance.StringFixed(2))
	// no attendance bonus configured for the employee
	assert.True(t, item.AttendanceBonus.IsZero())

	assert.Equal(t, "330.00", item.EPFEmployee.StringFixed(2))
	assert.Equal(t, "360.00", item.EPFEmployer.StringFixed(2))
	assert.Equal(t, "16.25", item.SocsoEmployee.StringFixed(2))
	assert.Equal(t, "56.90", item.SocsoEmployer.StringFixed(2))
	assert.Equal(t, "6.60", item.EISEmployee.StringFixed(2))
	assert.Equal(t, "6.60", item.EISEmployer.StringFixed(2))
	assert.Equal(t, "0.00", item.PCB.StringFixed(2))

	assert.Equal(t, "3300.00", item.GrossSalary.StringFixed(2))
	assert.Equal(t, "352.85", item.TotalDeductions.StringFixed(2))
	assert.Equal(t, "2947.15", item.NetPay.StringFixed(2))
	assert.Equal(t, "3723.50", item.EmployerTotalCost.StringFixed(2))
	assert.Empty(t, item.Warnings)
}

func TestComputeItemCarriesForwardBasicSalary(t *testing.T) {
	calc := testCalculator(t)
	emp := officeEmployee()
	emp.DefaultBasicSalary = decimal.Zero

	in := baseInput(emp)
	in.Prior = &payroll.Item{BasicSalary: dec("2800"), FixedAllowance: dec("300")}

	item := ComputeItem(calc, in)

	assert.Equal(t, "2800.00", item.BasicSalary.StringFixed(2))
	assert.Contains(t, item.Warnings, "basic salary carried forward from previous month")
}

func TestComputeItemPriorItemOverridesDefaults(t *testing.T) {
	calc := testCalculator(t)
	emp := officeEmployee()

	// a raise edited into last month's run wins over the stored defaults
	in := baseInput(emp)
	in.Prior = &payroll.Item{BasicSalary: dec("3500"), FixedAllowance: dec("450")}

	item := ComputeItem(calc, in)

	assert.Equal(t, "3500.00", item.BasicSalary.StringFixed(2))
	assert.Equal(t, "450.00", item.FixedAllowance.StringFixed(2))
	assert.Empty(t, item.Warnings)
}

func TestComputeItemOvertime(t *testing.T) {
	calc := testCalculator(t)
	emp := officeEmployee()
	emp.DefaultBasicSalary = dec("4160")
	emp.DefaultAllowance = decimal.Zero

	in := baseInput(emp)
	in.Attendance = attendancesvc.Aggregates{OTHours: dec("2")}

	item := ComputeItem(calc, in)

	// daily 160, hourly 20, OT at 1.5x
	assert.Equal(t, "60.00", item.OTAmount.StringFixed(2))
	assert.Equal(t, "2.00", item.OTHours.StringFixed(2))
}

func TestComputeItemOvertimeRateOverride(t *testing.T) {
	calc := testCalculator(t)
	emp := officeEmployee()
	emp.DefaultBasicSalary = dec("4160")
	emp.OTRate = dec("25")

	in := baseInput(emp)
	in.Attendance = attendancesvc.Aggregates{OTHours: dec("2")}

	item := ComputeItem(calc, in)

	assert.Equal(t, "50.00", item.OTAmount.StringFixed(2))
}

func TestComputeItemAbsenceAndAttendanceBonus(t *testing.T) {
	calc := testCalculator(t)
	emp := officeEmployee()
	emp.DefaultBasicSalary = dec("2600")
	emp.DefaultAllowance = decimal.Zero
	emp.AttendanceBonus = dec("100")

	in := baseInput(emp)
	in.Attendance = attendancesvc.Aggregates{AbsentDays: 1, LateDays: 1}

	item := ComputeItem(calc, in)

	// daily rate 100
	assert.Equal(t, "100.00", item.AbsentDayDeduction.StringFixed(2))
	assert.Equal(t, 1, item.AbsentDays)
	assert.Equal(t, 1, item.LateDays)
	// two offences, bonus gone
	assert.True(t, item.AttendanceBonus.IsZero())
}

func TestComputeItemAttendanceBonusSteps(t *testing.T) {
	calc := testCalculator(t)
	emp := officeEmployee()
	emp.AttendanceBonus = dec("100")

	clean := ComputeItem(calc, baseInput(emp))
	assert.Equal(t, "100.00", clean.AttendanceBonus.StringFixed(2))

	in := baseInput(emp)
	in.Attendance = attendancesvc.Aggregates{LateDays: 1}
	oneOffence := ComputeItem(calc, in)
	assert.Equal(t, "50.00", oneOffence.AttendanceBonus.StringFixed(2))
}

func TestComputeItemUnpaidLeaveOutsideTotalDeductions(t *testing.T) {
	calc := testCalculator(t)
	emp := officeEmployee()
	emp.DefaultBasicSalary = dec("2600")

	in := baseInput(emp)
	in.UnpaidLeaveDays = dec("2")

	item := ComputeItem(calc, in)

	assert.Equal(t, "200.00", item.UnpaidLeaveDeduction.StringFixed(2))

	// gross and net both drop by the unpaid amount, the deduction
	// total does not include it
	earnings := item.EarningsTotal()
	assert.Equal(t,
		earnings.Sub(item.UnpaidLeaveDeduction).Sub(item.TotalDeductions).StringFixed(2),
		item.NetPay.StringFixed(2))
	assert.Equal(t,
		item.GrossSalary.Sub(item.EPFEmployee).Sub(item.SocsoEmployee).Sub(item.EISEmployee).Sub(item.PCB).StringFixed(2),
		item.NetPay.StringFixed(2))
}

func TestComputeItemIndoorSalesCommissionBeatsFloor(t *testing.T) {
	calc := testCalculator(t)
	emp := officeEmployee()
	emp.PayrollStructureCode = StructureIndoorSales
	emp.DefaultBasicSalary = dec("4000")
	emp.DefaultAllowance = decimal.Zero
	emp.CommissionRate = dec("6")

	in := baseInput(emp)
	in.MonthlySales = dec("80000")

	item := ComputeItem(calc, in)

	// 6% of 80,000 beats the 4,000 floor and becomes the basic salary
	assert.Equal(t, "4800.00", item.BasicSalary.StringFixed(2))
	assert.True(t, item.CommissionAmount.IsZero())
	// 11% of 4,800
	assert.Equal(t, "528.00", item.EPFEmployee.StringFixed(2))
}

func TestComputeItemIndoorSalesFloorBeatsCommission(t *testing.T) {
	calc := testCalculator(t)
	emp := officeEmployee()
	emp.PayrollStructureCode = StructureIndoorSales
	emp.DefaultBasicSalary = dec("4000")
	emp.CommissionRate = dec("6")

	in := baseInput(emp)
	in.MonthlySales = dec("50000")

	item := ComputeItem(calc, in)

	// 6% of 50,000 = 3,000 loses to the floor
	assert.Equal(t, "4000.00", item.BasicSalary.StringFixed(2))
	assert.True(t, item.CommissionAmount.IsZero())
}

func TestComputeItemOutdoorSalesIncentive(t *testing.T) {
	calc := testCalculator(t)
	emp := officeEmployee()
	emp.PayrollStructureCode = StructureOutdoorSales
	emp.DefaultIncentive = dec("500")

	item := ComputeItem(calc, baseInput(emp))

	assert.Equal(t, "500.00", item.IncentiveAmount.StringFixed(2))
}

func TestComputeItemDriverTripsAndOutstation(t *testing.T) {
	calc := testCalculator(t)
	emp := officeEmployee()
	emp.PayrollStructureCode = StructureDriver
	emp.OutstationRate = dec("200")

	in := baseInput(emp)
	in.Earnings = map[payroll.EarningKind]decimal.Decimal{
		payroll.EarningTrip: dec("450"),
	}

	item := ComputeItem(calc, in)

	assert.Equal(t, "450.00", item.CommissionAmount.StringFixed(2))
	assert.Equal(t, "200.00", item.OutstationAmount.StringFixed(2))
}

func TestComputeItemDriverExplicitOutstationWins(t *testing.T) {
	calc := testCalculator(t)
	emp := officeEmployee()
	emp.PayrollStructureCode = StructureDriver
	emp.OutstationRate = dec("200")

	in := baseInput(emp)
	in.Earnings = map[payroll.EarningKind]decimal.Decimal{
		payroll.EarningOutstation: dec("350"),
	}

	item := ComputeItem(calc, in)

	assert.Equal(t, "350.00", item.OutstationAmount.StringFixed(2))
}

func TestComputeItemPartTime(t *testing.T) {
	calc := testCalculator(t)
	rate := dec("10")
	emp := officeEmployee()
	emp.WorkType = employee.WorkPartTime
	emp.HourlyRate = &rate

	in := baseInput(emp)
	in.Attendance = attendancesvc.Aggregates{
		WorkedHours: dec("80.75"),
		AbsentDays:  3,
	}

	item := ComputeItem(calc, in)

	// paid hours floor to the half hour: 80.5 * 10
	assert.Equal(t, "805.00", item.BasicSalary.StringFixed(2))
	// part-timers get no absence deductions
	assert.Equal(t, 0, item.AbsentDays)
	assert.True(t, item.AbsentDayDeduction.IsZero())
	assert.True(t, item.AttendanceBonus.IsZero())
}

func TestComputeItemPartTimeMissingRate(t *testing.T) {
	calc := testCalculator(t)
	emp := officeEmployee()
	emp.WorkType = employee.WorkPartTime
	emp.HourlyRate = nil

	item := ComputeItem(calc, baseInput(emp))

	assert.True(t, item.BasicSalary.IsZero())
	assert.Contains(t, item.Warnings, "part-time employee has no hourly rate")
	assert.Contains(t, item.Warnings, "no earnings for this period")
}

func TestComputeItemClaimsStayOutOfStatutoryWages(t *testing.T) {
	calc := testCalculator(t)

	plain := ComputeItem(calc, baseInput(officeEmployee()))

	withClaims := baseInput(officeEmployee())
	withClaims.ClaimsAmount = dec("500")
	claimed := ComputeItem(calc, withClaims)

	assert.Equal(t, plain.SocsoEmployee.StringFixed(2), claimed.SocsoEmployee.StringFixed(2))
	assert.Equal(t, plain.EISEmployee.StringFixed(2), claimed.EISEmployee.StringFixed(2))
	assert.Equal(t, plain.EPFEmployee.StringFixed(2), claimed.EPFEmployee.StringFixed(2))
	// but the reimbursement lands in net pay
	assert.Equal(t,
		plain.NetPay.Add(dec("500")).StringFixed(2),
		claimed.NetPay.StringFixed(2))
}

func TestComputeItemOverridesKeepCalculatedValues(t *testing.T) {
	calc := testCalculator(t)
	item := ComputeItem(calc, baseInput(officeEmployee()))

	override := dec("400")
	item.EPFOverride = &override
	applyStatutory(calc, &item, statutoryProfile(officeEmployee()), 1,
		time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), YTD{})
	deriveTotals(&item)

	assert.Equal(t, "400.00", item.EPFEmployee.StringFixed(2))
	assert.Equal(t, "330.00", item.EPFEmployeeCalculated.StringFixed(2))
	// employer side never follows the employee override
	assert.Equal(t, "360.00", item.EPFEmployer.StringFixed(2))
}

func TestComputeItemStructureCodeDefaultsToOffice(t *testing.T) {
	calc := testCalculator(t)
	emp := officeEmployee()
	emp.PayrollStructureCode = ""

	item := ComputeItem(calc, baseInput(emp))

	assert.Equal(t, StructureOffice, item.StructureCode)
}

func TestComputeItemRecordsTableVersion(t *testing.T) {
	calc := testCalculator(t)
	item := ComputeItem(calc, baseInput(officeEmployee()))

	assert.Equal(t, statutory.DefaultVersion, item.TableVersion)
}
