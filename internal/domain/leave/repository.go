package leave

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type LeaveRepository interface {
	// Settings
	GetSettings(ctx context.Context, companyID string) (Settings, error)

	// Types
	CreateType(ctx context.Context, lt LeaveType) (LeaveType, error)
	GetTypeByID(ctx context.Context, id string, companyID string) (LeaveType, error)
	ListTypes(ctx context.Context, companyID string) ([]LeaveType, error)

	// Balances
	GetBalance(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) (LeaveBalance, error)
	ListBalances(ctx context.Context, companyID, employeeID string, year int) ([]LeaveBalance, error)
	UpsertBalance(ctx context.Context, b LeaveBalance) (LeaveBalance, error)
	AddUsedDays(ctx context.Context, companyID, employeeID, leaveTypeID string, year int, days decimal.Decimal) error

	// Requests
	CreateRequest(ctx context.Context, req LeaveRequest) (LeaveRequest, error)
	GetRequestByID(ctx context.Context, id string, companyID string) (LeaveRequest, error)
	UpdateRequestStatus(ctx context.Context, id string, companyID string, status RequestStatus) error
	ListApprovedByPeriod(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]LeaveRequest, error)
}
