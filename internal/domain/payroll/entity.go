package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodType enum
type PeriodType string

const (
	PeriodCalendarMonth PeriodType = "calendar_month"
	PeriodMidMonth      PeriodType = "mid_month"
)

// PeriodConfig - payroll period configuration, keyed by
// (company, department, active); a department row overrides the
// company-wide row.
type PeriodConfig struct {
	ID           string
	CompanyID    string
	DepartmentID *string
	Active       bool

	PeriodType     PeriodType
	PeriodStartDay int
	PeriodEndDay   int

	PaymentDay         int
	PaymentMonthOffset int

	CommissionPeriodOffset int
	WorkDaysPerMonth       int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EarningKind enum for flexible monthly entries.
type EarningKind string

const (
	EarningCommission      EarningKind = "commission"
	EarningTradeCommission EarningKind = "trade_commission"
	EarningAllowance       EarningKind = "allowance"
	EarningIncentive       EarningKind = "incentive"
	EarningOutstation      EarningKind = "outstation"
	EarningTrip            EarningKind = "trip"
)

// EarningEntry - a configured commission/allowance line for one
// employee in one month.
type EarningEntry struct {
	ID         string
	CompanyID  string
	EmployeeID string
	Month      int
	Year       int
	Kind       EarningKind
	Label      *string
	Amount     decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// RunStatus enum. The only transition is draft -> finalized.
type RunStatus string

const (
	RunDraft     RunStatus = "draft"
	RunFinalized RunStatus = "finalized"
)

// Run - one payroll batch for (company, month, year, scope). Scope is a
// department, an outlet, or company-wide when both IDs are nil. Totals
// are a cached aggregation over the run's items.
type Run struct {
	ID           string
	CompanyID    string
	Month        int
	Year         int
	DepartmentID *string
	OutletID     *string

	Status      RunStatus
	PeriodStart time.Time
	PeriodEnd   time.Time
	PaymentDue  time.Time

	WorkDaysPerMonth int
	TableVersion     string
	Notes            *string

	TotalGross        decimal.Decimal
	TotalDeductions   decimal.Decimal
	TotalNet          decimal.Decimal
	TotalEmployerCost decimal.Decimal
	EmployeeCount     int

	Warnings []string

	FinalizedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined fields
	DepartmentName *string
	OutletName     *string
}

// Item - one employee's payroll lines inside a run. Employee fields are
// denormalized snapshots taken at compute time; every monetary field is
// reproducible from the item's stored raw inputs.
type Item struct {
	ID         string
	RunID      string
	CompanyID  string
	EmployeeID string

	// Snapshots
	EmployeeName      string
	EmployeeCode      string
	StructureCode     string
	BankName          *string
	BankAccountNumber *string

	// Earnings
	BasicSalary           decimal.Decimal
	FixedAllowance        decimal.Decimal
	OTHours               decimal.Decimal
	OTAmount              decimal.Decimal
	PHDaysWorked          int
	PHPay                 decimal.Decimal
	IncentiveAmount       decimal.Decimal
	CommissionAmount      decimal.Decimal
	TradeCommissionAmount decimal.Decimal
	OutstationAmount      decimal.Decimal
	Bonus                 decimal.Decimal
	AttendanceBonus       decimal.Decimal
	ClaimsAmount          decimal.Decimal

	// Attendance facts feeding deductions
	UnpaidLeaveDays decimal.Decimal
	AbsentDays      int
	LateDays        int
	ShortHours      decimal.Decimal

	// Deductions
	UnpaidLeaveDeduction decimal.Decimal
	AbsentDayDeduction   decimal.Decimal
	ShortHoursDeduction  decimal.Decimal
	AdvanceDeduction     decimal.Decimal
	OtherDeductions      decimal.Decimal
	DeductionRemarks     *string

	// Statutory - effective values (override applied when present)
	EPFEmployee   decimal.Decimal
	EPFEmployer   decimal.Decimal
	SocsoEmployee decimal.Decimal
	SocsoEmployer decimal.Decimal
	EISEmployee   decimal.Decimal
	EISEmployer   decimal.Decimal
	PCB           decimal.Decimal

	// Overrides and the computed values kept for audit
	EPFOverride           *decimal.Decimal
	PCBOverride           *decimal.Decimal
	EPFEmployeeCalculated decimal.Decimal
	PCBCalculated         decimal.Decimal

	// Derived totals
	GrossSalary       decimal.Decimal
	TotalDeductions   decimal.Decimal
	NetPay            decimal.Decimal
	EmployerTotalCost decimal.Decimal

	TableVersion string
	Warnings     []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EarningsTotal sums every earning line on the item.
func (i Item) EarningsTotal() decimal.Decimal {
	return i.BasicSalary.
		Add(i.FixedAllowance).
		Add(i.OTAmount).
		Add(i.PHPay).
		Add(i.IncentiveAmount).
		Add(i.CommissionAmount).
		Add(i.TradeCommissionAmount).
		Add(i.OutstationAmount).
		Add(i.Bonus).
		Add(i.AttendanceBonus).
		Add(i.ClaimsAmount)
}

// DeductionsTotal sums the deduction lines (employer contributions
// excluded). Unpaid leave stays outside this total: net pay subtracts
// it separately, so including it here would double-count.
func (i Item) DeductionsTotal() decimal.Decimal {
	return i.AbsentDayDeduction.
		Add(i.ShortHoursDeduction).
		Add(i.AdvanceDeduction).
		Add(i.OtherDeductions).
		Add(i.EPFEmployee).
		Add(i.SocsoEmployee).
		Add(i.EISEmployee).
		Add(i.PCB)
}
