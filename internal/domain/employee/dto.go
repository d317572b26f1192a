package employee

import (
	"github.com/contactevin2u/AAHRMS-sub003/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

var payrollStructureCodes = []string{"office", "indoor_sales", "outdoor_sales", "driver"}

type CreateEmployeeRequest struct {
	EmployeeCode string  `json:"employee_code"`
	Name         string  `json:"name"`
	ICNumber     string  `json:"ic_number"`
	DepartmentID *string `json:"department_id,omitempty"`
	OutletID     *string `json:"outlet_id,omitempty"`

	EPFContributionType string           `json:"epf_contribution_type"`
	VoluntaryEPFRate    *decimal.Decimal `json:"voluntary_epf_rate,omitempty"`
	MaritalStatus       string           `json:"marital_status"`
	SpouseWorking       bool             `json:"spouse_working"`
	ChildrenCount       int              `json:"children_count"`

	EmploymentType string `json:"employment_type"`
	WorkType       string `json:"work_type"`
	JoinDate       string `json:"join_date"`

	BankName          *string `json:"bank_name,omitempty"`
	BankAccountNumber *string `json:"bank_account_number,omitempty"`

	HourlyRate           *decimal.Decimal `json:"hourly_rate,omitempty"`
	DefaultBasicSalary   decimal.Decimal  `json:"default_basic_salary"`
	DefaultAllowance     decimal.Decimal  `json:"default_allowance"`
	CommissionRate       decimal.Decimal  `json:"commission_rate"`
	PerTripRate          decimal.Decimal  `json:"per_trip_rate"`
	OTRate               decimal.Decimal  `json:"ot_rate"`
	OutstationRate       decimal.Decimal  `json:"outstation_rate"`
	DefaultBonus         decimal.Decimal  `json:"default_bonus"`
	DefaultIncentive     decimal.Decimal  `json:"default_incentive"`
	AttendanceBonus      decimal.Decimal  `json:"attendance_bonus"`
	PayrollStructureCode string           `json:"payroll_structure_code"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "employee_code", Message: "is required"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if validator.IsEmpty(r.ICNumber) {
		errs = append(errs, validator.ValidationError{Field: "ic_number", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.JoinDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "join_date", Message: "must be YYYY-MM-DD"})
	}
	if r.WorkType != string(WorkFullTime) && r.WorkType != string(WorkPartTime) {
		errs = append(errs, validator.ValidationError{Field: "work_type", Message: "must be 'full_time' or 'part_time'"})
	}
	epfTypes := []string{string(EPFNormal), string(EPFVoluntaryHigher), string(EPFNone)}
	if !validator.IsInSlice(r.EPFContributionType, epfTypes) {
		errs = append(errs, validator.ValidationError{Field: "epf_contribution_type", Message: "is not a recognised contribution type"})
	}
	if r.PayrollStructureCode != "" && !validator.IsInSlice(r.PayrollStructureCode, payrollStructureCodes) {
		errs = append(errs, validator.ValidationError{Field: "payroll_structure_code", Message: "is not a recognised structure"})
	}
	if r.WorkType == string(WorkPartTime) && (r.HourlyRate == nil || !r.HourlyRate.IsPositive()) {
		errs = append(errs, validator.ValidationError{Field: "hourly_rate", Message: "is required for part-time employees"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateEmployeeRequest - nil fields are left unchanged.
type UpdateEmployeeRequest struct {
	ID           string
	Name         *string `json:"name,omitempty"`
	DepartmentID *string `json:"department_id,omitempty"`
	OutletID     *string `json:"outlet_id,omitempty"`

	EPFContributionType *string          `json:"epf_contribution_type,omitempty"`
	VoluntaryEPFRate    *decimal.Decimal `json:"voluntary_epf_rate,omitempty"`
	MaritalStatus       *string          `json:"marital_status,omitempty"`
	SpouseWorking       *bool            `json:"spouse_working,omitempty"`
	ChildrenCount       *int             `json:"children_count,omitempty"`

	BankName          *string `json:"bank_name,omitempty"`
	BankAccountNumber *string `json:"bank_account_number,omitempty"`

	HourlyRate           *decimal.Decimal `json:"hourly_rate,omitempty"`
	DefaultBasicSalary   *decimal.Decimal `json:"default_basic_salary,omitempty"`
	DefaultAllowance     *decimal.Decimal `json:"default_allowance,omitempty"`
	CommissionRate       *decimal.Decimal `json:"commission_rate,omitempty"`
	PerTripRate          *decimal.Decimal `json:"per_trip_rate,omitempty"`
	OTRate               *decimal.Decimal `json:"ot_rate,omitempty"`
	OutstationRate       *decimal.Decimal `json:"outstation_rate,omitempty"`
	DefaultBonus         *decimal.Decimal `json:"default_bonus,omitempty"`
	DefaultIncentive     *decimal.Decimal `json:"default_incentive,omitempty"`
	AttendanceBonus      *decimal.Decimal `json:"attendance_bonus,omitempty"`
	PayrollStructureCode *string          `json:"payroll_structure_code,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.PayrollStructureCode != nil && *r.PayrollStructureCode != "" &&
		!validator.IsInSlice(*r.PayrollStructureCode, payrollStructureCodes) {
		errs = append(errs, validator.ValidationError{Field: "payroll_structure_code", Message: "is not a recognised structure"})
	}
	if r.DefaultBasicSalary != nil && r.DefaultBasicSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "default_basic_salary", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID           string  `json:"id"`
	EmployeeCode string  `json:"employee_code"`
	Name         string  `json:"name"`
	ICNumber     string  `json:"ic_number"`
	DepartmentID *string `json:"department_id,omitempty"`
	OutletID     *string `json:"outlet_id,omitempty"`

	EPFContributionType string `json:"epf_contribution_type"`
	MaritalStatus       string `json:"marital_status"`
	SpouseWorking       bool   `json:"spouse_working"`
	ChildrenCount       int    `json:"children_count"`

	Status         string `json:"status"`
	EmploymentType string `json:"employment_type"`
	WorkType       string `json:"work_type"`
	JoinDate       string `json:"join_date"`

	BankName          *string `json:"bank_name,omitempty"`
	BankAccountNumber *string `json:"bank_account_number,omitempty"`

	HourlyRate           *string `json:"hourly_rate,omitempty"`
	DefaultBasicSalary   string  `json:"default_basic_salary"`
	DefaultAllowance     string  `json:"default_allowance"`
	CommissionRate       string  `json:"commission_rate"`
	PerTripRate          string  `json:"per_trip_rate"`
	OTRate               string  `json:"ot_rate"`
	OutstationRate       string  `json:"outstation_rate"`
	DefaultBonus         string  `json:"default_bonus"`
	DefaultIncentive     string  `json:"default_incentive"`
	AttendanceBonus      string  `json:"attendance_bonus"`
	PayrollStructureCode string  `json:"payroll_structure_code"`
}
