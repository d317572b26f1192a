package claim

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type ClaimRepository interface {
	Create(ctx context.Context, c Claim) (Claim, error)
	GetByID(ctx context.Context, id string, companyID string) (Claim, error)
	UpdateStatus(ctx context.Context, id string, companyID string, status Status) error

	// SumApprovedUnlinked totals approved, not-yet-linked claims whose
	// claim date falls inside [start, end].
	SumApprovedUnlinked(ctx context.Context, companyID, employeeID string, start, end time.Time) (decimal.Decimal, error)

	// LinkToPayrollItem stamps itemID onto every approved, unlinked,
	// in-period claim for the employee. The WHERE guard on NULL makes
	// concurrent finalizations of overlapping runs safe. Returns the
	// number of claims linked.
	LinkToPayrollItem(ctx context.Context, companyID, employeeID, itemID string, start, end time.Time) (int64, error)

	ListByEmployeePeriod(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]Claim, error)
}
