package payroll

import (
	"github.com/contactevin2u/AAHRMS-sub003/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== RUN DTOs ==========

type CreateRunRequest struct {
	Month        int     `json:"month"`
	Year         int     `json:"year"`
	DepartmentID *string `json:"department_id,omitempty"`
	OutletID     *string `json:"outlet_id,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

func (r *CreateRunRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be a valid payroll year"})
	}
	if r.DepartmentID != nil && r.OutletID != nil {
		errs = append(errs, validator.ValidationError{Field: "scope", Message: "department_id and outlet_id are mutually exclusive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ScopeUnit enum for bulk creation.
type ScopeUnit string

const (
	ScopeDepartment ScopeUnit = "department"
	ScopeOutlet     ScopeUnit = "outlet"
)

type CreateAllRunsRequest struct {
	Month int       `json:"month"`
	Year  int       `json:"year"`
	Unit  ScopeUnit `json:"unit"`
}

func (r *CreateAllRunsRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be a valid payroll year"})
	}
	if r.Unit != ScopeDepartment && r.Unit != ScopeOutlet {
		errs = append(errs, validator.ValidationError{Field: "unit", Message: "must be 'department' or 'outlet'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SkippedUnit struct {
	UnitID   string `json:"unit_id"`
	UnitName string `json:"unit_name"`
	Reason   string `json:"reason"`
}

type CreateAllRunsResponse struct {
	Created []RunResponse `json:"created"`
	Skipped []SkippedUnit `json:"skipped"`
}

type RunResponse struct {
	ID                string   `json:"id"`
	Month             int      `json:"month"`
	Year              int      `json:"year"`
	DepartmentID      *string  `json:"department_id,omitempty"`
	DepartmentName    *string  `json:"department_name,omitempty"`
	OutletID          *string  `json:"outlet_id,omitempty"`
	OutletName        *string  `json:"outlet_name,omitempty"`
	Status            string   `json:"status"`
	PeriodStart       string   `json:"period_start"`
	PeriodEnd         string   `json:"period_end"`
	PaymentDue        string   `json:"payment_due"`
	WorkDaysPerMonth  int      `json:"work_days_per_month"`
	TableVersion      string   `json:"statutory_table_version"`
	TotalGross        string   `json:"total_gross"`
	TotalDeductions   string   `json:"total_deductions"`
	TotalNet          string   `json:"total_net"`
	TotalEmployerCost string   `json:"total_employer_cost"`
	EmployeeCount     int      `json:"employee_count"`
	Warnings          []string `json:"warnings,omitempty"`
	FinalizedAt       *string  `json:"finalized_at,omitempty"`
	Notes             *string  `json:"notes,omitempty"`
}

type RunDetailResponse struct {
	Run   RunResponse    `json:"run"`
	Items []ItemResponse `json:"items"`
}

type ListRunsResponse struct {
	Data       []RunResponse `json:"data"`
	TotalCount int64         `json:"total_count"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
}

// ========== ITEM DTOs ==========

// UpdateItemRequest - per-item edit while the run is draft. Statutory
// lines are recomputed after the edit; explicit overrides replace the
// computed EPF/PCB while the computed values stay stored for audit.
type UpdateItemRequest struct {
	ID               string
	BasicSalary      *decimal.Decimal `json:"basic_salary,omitempty"`
	FixedAllowance   *decimal.Decimal `json:"fixed_allowance,omitempty"`
	Bonus            *decimal.Decimal `json:"bonus,omitempty"`
	IncentiveAmount  *decimal.Decimal `json:"incentive_amount,omitempty"`
	CommissionAmount *decimal.Decimal `json:"commission_amount,omitempty"`
	AdvanceDeduction *decimal.Decimal `json:"advance_deduction,omitempty"`
	OtherDeductions  *decimal.Decimal `json:"other_deductions,omitempty"`
	DeductionRemarks *string          `json:"deduction_remarks,omitempty"`
	EPFOverride      *decimal.Decimal `json:"epf_override,omitempty"`
	PCBOverride      *decimal.Decimal `json:"pcb_override,omitempty"`
	ClearEPFOverride bool             `json:"clear_epf_override,omitempty"`
	ClearPCBOverride bool             `json:"clear_pcb_override,omitempty"`
}

func (r *UpdateItemRequest) Validate() error {
	var errs validator.ValidationErrors

	nonNeg := map[string]*decimal.Decimal{
		"basic_salary":      r.BasicSalary,
		"fixed_allowance":   r.FixedAllowance,
		"bonus":             r.Bonus,
		"incentive_amount":  r.IncentiveAmount,
		"commission_amount": r.CommissionAmount,
		"advance_deduction": r.AdvanceDeduction,
		"other_deductions":  r.OtherDeductions,
		"epf_override":      r.EPFOverride,
		"pcb_override":      r.PCBOverride,
	}
	for field, d := range nonNeg {
		if d != nil && d.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be non-negative"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ItemResponse struct {
	ID            string `json:"id"`
	RunID         string `json:"run_id"`
	EmployeeID    string `json:"employee_id"`
	EmployeeName  string `json:"employee_name"`
	EmployeeCode  string `json:"employee_code"`
	StructureCode string `json:"payroll_structure_code"`

	BasicSalary           string `json:"basic_salary"`
	FixedAllowance        string `json:"fixed_allowance"`
	OTHours               string `json:"ot_hours"`
	OTAmount              string `json:"ot_amount"`
	PHDaysWorked          int    `json:"ph_days_worked"`
	PHPay                 string `json:"ph_pay"`
	IncentiveAmount       string `json:"incentive_amount"`
	CommissionAmount      string `json:"commission_amount"`
	TradeCommissionAmount string `json:"trade_commission_amount"`
	OutstationAmount      string `json:"outstation_amount"`
	Bonus                 string `json:"bonus"`
	AttendanceBonus       string `json:"attendance_bonus"`
	ClaimsAmount          string `json:"claims_amount"`

	UnpaidLeaveDays      string  `json:"unpaid_leave_days"`
	UnpaidLeaveDeduction string  `json:"unpaid_leave_deduction"`
	AbsentDays           int     `json:"absent_days"`
	AbsentDayDeduction   string  `json:"absent_day_deduction"`
	ShortHours           string  `json:"short_hours"`
	ShortHoursDeduction  string  `json:"short_hours_deduction"`
	AdvanceDeduction     string  `json:"advance_deduction"`
	OtherDeductions      string  `json:"other_deductions"`
	DeductionRemarks     *string `json:"deduction_remarks,omitempty"`

	EPFEmployee   string `json:"epf_employee"`
	EPFEmployer   string `json:"epf_employer"`
	SocsoEmployee string `json:"socso_employee"`
	SocsoEmployer string `json:"socso_employer"`
	EISEmployee   string `json:"eis_employee"`
	EISEmployer   string `json:"eis_employer"`
	PCB           string `json:"pcb"`

	EPFOverride           *string `json:"epf_override,omitempty"`
	PCBOverride           *string `json:"pcb_override,omitempty"`
	EPFEmployeeCalculated string  `json:"epf_employee_calculated"`
	PCBCalculated         string  `json:"pcb_calculated"`

	GrossSalary       string `json:"gross_salary"`
	TotalDeductions   string `json:"total_deductions"`
	NetPay            string `json:"net_pay"`
	EmployerTotalCost string `json:"employer_total_cost"`

	TableVersion string   `json:"statutory_table_version"`
	Warnings     []string `json:"warnings,omitempty"`
}

type RecalculateAllResponse struct {
	Recalculated int `json:"recalculated"`
	Total        int `json:"total"`
}

type DeleteDraftsResponse struct {
	Deleted int64 `json:"deleted"`
}

// ========== PAYSLIP DTOs ==========

type PayslipLine struct {
	Label  string `json:"label"`
	Amount string `json:"amount"`
}

type PayslipResponse struct {
	ItemID        string        `json:"item_id"`
	EmployeeName  string        `json:"employee_name"`
	EmployeeCode  string        `json:"employee_code"`
	PeriodLabel   string        `json:"period_label"`
	PeriodStart   string        `json:"period_start"`
	PeriodEnd     string        `json:"period_end"`
	PaymentDue    string        `json:"payment_due"`
	Earnings      []PayslipLine `json:"earnings"`
	Deductions    []PayslipLine `json:"deductions"`
	GrossSalary   string        `json:"gross_salary"`
	TotalDeducted string        `json:"total_deductions"`
	NetPay        string        `json:"net_pay"`
}

// ========== EARNING ENTRY DTOs ==========

type CreateEarningEntryRequest struct {
	EmployeeID string          `json:"employee_id"`
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	Kind       string          `json:"kind"`
	Label      *string         `json:"label,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
}

func (r *CreateEarningEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be a valid payroll year"})
	}
	kinds := []string{
		string(EarningCommission), string(EarningTradeCommission), string(EarningAllowance),
		string(EarningIncentive), string(EarningOutstation), string(EarningTrip),
	}
	if !validator.IsInSlice(r.Kind, kinds) {
		errs = append(errs, validator.ValidationError{Field: "kind", Message: "is not a recognised earning kind"})
	}
	if r.Amount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
