package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status enum
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusResigned Status = "resigned"
)

// EmploymentType enum
type EmploymentType string

const (
	EmploymentProbation EmploymentType = "probation"
	EmploymentConfirmed EmploymentType = "confirmed"
	EmploymentContract  EmploymentType = "contract"
	EmploymentPartTime  EmploymentType = "part_time"
)

// WorkType enum
type WorkType string

const (
	WorkFullTime WorkType = "full_time"
	WorkPartTime WorkType = "part_time"
)

// EPFContributionType enum
type EPFContributionType string

const (
	EPFNormal          EPFContributionType = "normal"
	EPFVoluntaryHigher EPFContributionType = "voluntary_higher"
	EPFNone            EPFContributionType = "none"
)

// Employee - statutory subject and salary component defaults.
// EmployeeCode is the stable per-tenant code; ID is the row identity.
type Employee struct {
	ID           string
	CompanyID    string
	DepartmentID *string
	OutletID     *string
	EmployeeCode string
	Name         string

	// Statutory profile
	ICNumber            string
	DateOfBirth         *time.Time
	EPFContributionType EPFContributionType
	VoluntaryEPFRate    *decimal.Decimal
	MaritalStatus       string
	SpouseWorking       bool
	ChildrenCount       int

	// Employment
	Status         Status
	EmploymentType EmploymentType
	WorkType       WorkType
	JoinDate       time.Time

	// Bank details for the bank file export
	BankName          *string
	BankAccountNumber *string

	// Default salary components
	HourlyRate           *decimal.Decimal
	DefaultBasicSalary   decimal.Decimal
	DefaultAllowance     decimal.Decimal
	CommissionRate       decimal.Decimal
	PerTripRate          decimal.Decimal
	OTRate               decimal.Decimal
	OutstationRate       decimal.Decimal
	DefaultBonus         decimal.Decimal
	DefaultIncentive     decimal.Decimal
	AttendanceBonus      decimal.Decimal
	PayrollStructureCode string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsMalaysian reports whether the employee holds a Malaysian IC
// (12 digit NRIC, with or without dashes).
func (e Employee) IsMalaysian() bool {
	digits := 0
	for _, r := range e.ICNumber {
		if r >= '0' && r <= '9' {
			digits++
		} else if r != '-' {
			return false
		}
	}
	return digits == 12
}

// AgeAt returns the employee's age in whole years at the given date.
// Falls back to the IC-derived birth date when DateOfBirth is not set.
func (e Employee) AgeAt(at time.Time) (int, bool) {
	dob := e.DateOfBirth
	if dob == nil {
		derived, ok := BirthDateFromIC(e.ICNumber, at)
		if !ok {
			return 0, false
		}
		dob = &derived
	}
	age := at.Year() - dob.Year()
	if at.Month() < dob.Month() || (at.Month() == dob.Month() && at.Day() < dob.Day()) {
		age--
	}
	if age < 0 {
		return 0, false
	}
	return age, true
}

// BirthDateFromIC derives a birth date from the first six digits of a
// Malaysian IC number (YYMMDD). The century is picked so the resulting
// date is not in the future relative to ref.
func BirthDateFromIC(ic string, ref time.Time) (time.Time, bool) {
	var digits []rune
	for _, r := range ic {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) != 12 {
		return time.Time{}, false
	}
	yy := int(digits[0]-'0')*10 + int(digits[1]-'0')
	mm := int(digits[2]-'0')*10 + int(digits[3]-'0')
	dd := int(digits[4]-'0')*10 + int(digits[5]-'0')
	if mm < 1 || mm > 12 || dd < 1 || dd > 31 {
		return time.Time{}, false
	}
	year := 2000 + yy
	candidate := time.Date(year, time.Month(mm), dd, 0, 0, 0, 0, time.UTC)
	if candidate.After(ref) {
		year -= 100
		candidate = time.Date(year, time.Month(mm), dd, 0, 0, 0, 0, time.UTC)
	}
	return candidate, true
}
