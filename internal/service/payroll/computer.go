package payroll

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/employee"
	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/payroll"
	attendancesvc "github.com/contactevin2u/AAHRMS-sub003/internal/service/attendance"
	"github.com/contactevin2u/AAHRMS-sub003/internal/service/statutory"
)

// Payroll structure codes. They select which earning lines a
// department's employees are paid through.
const (
	StructureOffice       = "office"
	StructureIndoorSales  = "indoor_sales"
	StructureOutdoorSales = "outdoor_sales"
	StructureDriver       = "driver"
)

var (
	hoursPerDay  = decimal.NewFromInt(8)
	otMultiplier = decimal.RequireFromString("1.5")
	oneHundred   = decimal.NewFromInt(100)
	two          = decimal.NewFromInt(2)
)

// YTD carries the year-to-date figures feeding the tax projection.
type YTD struct {
	Base decimal.Decimal
	PCB  decimal.Decimal
}

// ComputeInput is everything ComputeItem folds into one payroll item.
// All fields are plain data; the function touches no storage.
type ComputeInput struct {
	Employee         employee.Employee
	Month            int
	Year             int
	PeriodStart      time.Time
	WorkDaysPerMonth int

	Attendance      attendancesvc.Aggregates
	UnpaidLeaveDays decimal.Decimal
	Earnings        map[payroll.EarningKind]decimal.Decimal
	MonthlySales    decimal.Decimal
	ClaimsAmount    decimal.Decimal

	// Prior month's item, for salary carry-forward.
	Prior *payroll.Item
	YTD   YTD
}

func (in ComputeInput) earning(kind payroll.EarningKind) decimal.Decimal {
	if v, ok := in.Earnings[kind]; ok {
		return v
	}
	return decimal.Zero
}

// ComputeItem builds one employee's payroll item from attendance facts,
// configured earnings and the statutory tables. It never fails: data
// problems become warnings on the item instead.
func ComputeItem(calc *statutory.Calculator, in ComputeInput) payroll.Item {
	emp := in.Employee
	item := payroll.Item{
		CompanyID:         emp.CompanyID,
		EmployeeID:        emp.ID,
		EmployeeName:      emp.Name,
		EmployeeCode:      emp.EmployeeCode,
		StructureCode:     structureCode(emp),
		BankName:          emp.BankName,
		BankAccountNumber: emp.BankAccountNumber,
		TableVersion:      calc.Version(),
	}

	if emp.WorkType == employee.WorkPartTime {
		computePartTime(&item, in)
	} else {
		computeFullTime(&item, in)
	}

	item.ClaimsAmount = in.ClaimsAmount.Round(2)

	p := statutoryProfile(emp)
	applyStatutory(calc, &item, p, in.Month, in.PeriodStart, in.YTD)
	deriveTotals(&item)

	if item.EarningsTotal().IsZero() {
		item.Warnings = append(item.Warnings, "no earnings for this period")
	}
	if item.NetPay.Sign() < 0 {
		item.Warnings = append(item.Warnings, fmt.Sprintf("net pay is negative: %s", item.NetPay))
	}
	return item
}

func structureCode(emp employee.Employee) string {
	if emp.PayrollStructureCode != "" {
		return emp.PayrollStructureCode
	}
	return StructureOffice
}

func statutoryProfile(emp employee.Employee) statutory.Profile {
	return statutory.Profile{
		ICNumber:         emp.ICNumber,
		IsMalaysian:      emp.IsMalaysian(),
		EPFType:          emp.EPFContributionType,
		VoluntaryEPFRate: emp.VoluntaryEPFRate,
		IsMarried:        emp.MaritalStatus == "married",
		SpouseWorking:    emp.SpouseWorking,
		ChildrenCount:    emp.ChildrenCount,
	}
}

func computeFullTime(item *payroll.Item, in ComputeInput) {
	emp := in.Employee

	basic := emp.DefaultBasicSalary
	allowance := emp.DefaultAllowance
	if in.Prior != nil {
		// the prior item wins over the defaults, so a raise edited into
		// last month's run sticks
		if in.Prior.BasicSalary.Sign() > 0 {
			if basic.Sign() <= 0 {
				item.Warnings = append(item.Warnings, "basic salary carried forward from previous month")
			}
			basic = in.Prior.BasicSalary
		}
		allowance = in.Prior.FixedAllowance
	}

	if item.StructureCode == StructureIndoorSales {
		// commission-or-floor: the larger of the basic floor and the
		// month's computed commission becomes the basic salary
		calcCommission := in.MonthlySales.Mul(emp.CommissionRate).Div(oneHundred)
		if calcCommission.GreaterThan(basic) {
			basic = calcCommission
		}
	}
	item.BasicSalary = basic.Round(2)

	workDays := in.WorkDaysPerMonth
	if workDays <= 0 {
		workDays = 26
	}
	daily := basic.Div(decimal.NewFromInt(int64(workDays)))
	hourly := daily.Div(hoursPerDay)

	otRate := hourly.Mul(otMultiplier)
	if emp.OTRate.Sign() > 0 {
		otRate = emp.OTRate
	}

	item.FixedAllowance = allowance.Add(in.earning(payroll.EarningAllowance)).Round(2)
	item.OTHours = in.Attendance.OTHours
	item.OTAmount = otRate.Mul(in.Attendance.OTHours).Round(2)
	item.PHDaysWorked = in.Attendance.PHDaysWorked
	item.PHPay = daily.Mul(decimal.NewFromInt(int64(in.Attendance.PHDaysWorked))).Round(2)
	item.Bonus = emp.DefaultBonus.Round(2)

	applyStructureEarnings(item, in)

	offences := in.Attendance.LateDays + in.Attendance.AbsentDays
	item.AttendanceBonus = attendanceBonus(emp.AttendanceBonus, offences)

	item.UnpaidLeaveDays = in.UnpaidLeaveDays
	item.AbsentDays = in.Attendance.AbsentDays
	item.LateDays = in.Attendance.LateDays
	item.ShortHours = in.Attendance.ShortHours

	item.UnpaidLeaveDeduction = daily.Mul(in.UnpaidLeaveDays).Round(2)
	item.AbsentDayDeduction = daily.Mul(decimal.NewFromInt(int64(in.Attendance.AbsentDays))).Round(2)
	item.ShortHoursDeduction = hourly.Mul(in.Attendance.ShortHours).Round(2)
}

// applyStructureEarnings fills the variable-pay lines. The structure
// decides what gets computed on top of the configured entries, and for
// indoor sales no commission line survives at all.
func applyStructureEarnings(item *payroll.Item, in ComputeInput) {
	emp := in.Employee

	commission := in.earning(payroll.EarningCommission)
	tradeCommission := in.earning(payroll.EarningTradeCommission)
	incentive := in.earning(payroll.EarningIncentive)
	outstation := in.earning(payroll.EarningOutstation)

	switch item.StructureCode {
	case StructureIndoorSales:
		// the computed commission already competed for the basic salary
		commission = decimal.Zero
	case StructureOutdoorSales:
		incentive = incentive.Add(emp.DefaultIncentive)
	case StructureDriver:
		// drivers earn per-trip commission alongside outstation pay
		commission = commission.Add(in.earning(payroll.EarningTrip))
		if emp.OutstationRate.Sign() > 0 && outstation.IsZero() {
			outstation = emp.OutstationRate
		}
	}

	item.CommissionAmount = commission.Round(2)
	item.TradeCommissionAmount = tradeCommission.Round(2)
	item.IncentiveAmount = incentive.Round(2)
	item.OutstationAmount = outstation.Round(2)
}

// computePartTime pays by the half-hour worked. Part-timers have no
// absence or short-hours deductions; unworked time is simply unpaid.
func computePartTime(item *payroll.Item, in ComputeInput) {
	emp := in.Employee

	if emp.HourlyRate == nil || emp.HourlyRate.Sign() <= 0 {
		item.Warnings = append(item.Warnings, "part-time employee has no hourly rate")
		return
	}
	hourly := *emp.HourlyRate

	paidHours := in.Attendance.WorkedHours.Sub(in.Attendance.OTHours)
	if paidHours.Sign() < 0 {
		paidHours = decimal.Zero
	}
	// floor to half-hour steps
	paidHours = paidHours.Mul(two).RoundFloor(0).Div(two)

	item.BasicSalary = hourly.Mul(paidHours).Round(2)
	item.OTHours = in.Attendance.OTHours
	item.OTAmount = hourly.Mul(otMultiplier).Mul(in.Attendance.OTHours).Round(2)
	item.PHDaysWorked = in.Attendance.PHDaysWorked
}

// attendanceBonus steps the configured amount down by offence count:
// full at zero offences, half at one, nothing past that. Employees
// with no configured amount get no bonus.
func attendanceBonus(configured decimal.Decimal, offences int) decimal.Decimal {
	if configured.Sign() <= 0 {
		return decimal.Zero
	}
	switch offences {
	case 0:
		return configured.Round(2)
	case 1:
		return configured.Div(two).Round(2)
	default:
		return decimal.Zero
	}
}

// applyStatutory computes the four schemes from the item's earning
// lines and applies any stored overrides. The computed EPF and PCB stay
// on the item for audit even when overridden.
func applyStatutory(calc *statutory.Calculator, item *payroll.Item, p statutory.Profile, month int, periodStart time.Time, ytd YTD) {
	// Claims are reimbursements, not wages.
	wages := item.EarningsTotal().Sub(item.ClaimsAmount)
	epfBase := item.BasicSalary.
		Add(item.CommissionAmount).
		Add(item.TradeCommissionAmount).
		Add(item.Bonus)

	result := calc.All(p, epfBase, wages, statutory.PCBInput{
		MonthlyBase: epfBase,
		Month:       month,
		YTDBase:     ytd.Base,
		YTDPCB:      ytd.PCB,
		EPFEmployee: decimal.Zero,
	}, periodStart)

	// EPF relief in the projection uses the computed employee EPF.
	result.PCB = calc.PCB(statutory.PCBInput{
		MonthlyBase: epfBase,
		Month:       month,
		YTDBase:     ytd.Base,
		YTDPCB:      ytd.PCB,
		EPFEmployee: result.EPF.Employee,
	}, p)

	item.EPFEmployeeCalculated = result.EPF.Employee
	item.PCBCalculated = result.PCB

	item.EPFEmployee = result.EPF.Employee
	if item.EPFOverride != nil {
		item.EPFEmployee = item.EPFOverride.Round(2)
	}
	item.EPFEmployer = result.EPF.Employer
	item.SocsoEmployee = result.Socso.Employee
	item.SocsoEmployer = result.Socso.Employer
	item.EISEmployee = result.EIS.Employee
	item.EISEmployer = result.EIS.Employer
	item.PCB = result.PCB
	if item.PCBOverride != nil {
		item.PCB = item.PCBOverride.Round(2)
	}

	item.Warnings = append(item.Warnings, result.Warnings...)
}

// deriveTotals recomputes the derived money fields from the item's
// lines. Unpaid leave reduces gross and net directly and is therefore
// not part of TotalDeductions.
func deriveTotals(item *payroll.Item) {
	earnings := item.EarningsTotal()

	gross := earnings.
		Sub(item.UnpaidLeaveDeduction).
		Sub(item.AbsentDayDeduction).
		Sub(item.ShortHoursDeduction)
	if gross.Sign() < 0 {
		gross = decimal.Zero
	}
	item.GrossSalary = gross.Round(2)

	item.TotalDeductions = item.DeductionsTotal().Round(2)
	item.NetPay = earnings.
		Sub(item.UnpaidLeaveDeduction).
		Sub(item.TotalDeductions).
		Round(2)
	item.EmployerTotalCost = item.GrossSalary.
		Add(item.EPFEmployer).
		Add(item.SocsoEmployer).
		Add(item.EISEmployer).
		Round(2)
}
