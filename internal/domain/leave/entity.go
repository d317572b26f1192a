package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

// LeaveType - carries the paid/unpaid flag driving payroll deductions.
type LeaveType struct {
	ID                  string
	CompanyID           string
	Name                string
	IsPaid              bool
	DefaultEntitledDays decimal.Decimal
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// RequestStatus enum
type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestApproved  RequestStatus = "approved"
	RequestRejected  RequestStatus = "rejected"
	RequestCancelled RequestStatus = "cancelled"
)

// LeaveRequest - a dated span of leave days.
type LeaveRequest struct {
	ID          string
	CompanyID   string
	EmployeeID  string
	LeaveTypeID string
	StartDate   time.Time
	EndDate     time.Time
	TotalDays   decimal.Decimal
	Status      RequestStatus
	Reason      *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined fields
	LeaveTypeName *string
	IsPaid        *bool
}

// LeaveBalance - one per employee x leave type x year.
// Remaining = Entitled + CarriedForward - Used.
type LeaveBalance struct {
	ID             string
	CompanyID      string
	EmployeeID     string
	LeaveTypeID    string
	Year           int
	EntitledDays   decimal.Decimal
	UsedDays       decimal.Decimal
	CarriedForward decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Remaining returns the days still available on the balance.
func (b LeaveBalance) Remaining() decimal.Decimal {
	return b.EntitledDays.Add(b.CarriedForward).Sub(b.UsedDays)
}

// RoundingMode enum for join-date proration.
type RoundingMode string

const (
	RoundUp       RoundingMode = "up"
	RoundDown     RoundingMode = "down"
	RoundNearHalf RoundingMode = "nearest_half"
)

// Settings - tenant leave configuration.
type Settings struct {
	CompanyID           string
	CountJoinMonth      bool
	CarryForwardEnabled bool
	MaxCarryForwardDays decimal.Decimal
	ProrationRounding   RoundingMode
}
