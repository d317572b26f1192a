package claim

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status enum
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Claim - an approved expense claim is paid out through payroll exactly
// once: LinkedPayrollItemID is set on run finalization and never reused.
type Claim struct {
	ID                  string
	CompanyID           string
	EmployeeID          string
	ClaimDate           time.Time
	Amount              decimal.Decimal
	Description         *string
	Status              Status
	LinkedPayrollItemID *string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
