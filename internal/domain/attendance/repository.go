package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	Create(ctx context.Context, s ClockSession) (ClockSession, error)
	Update(ctx context.Context, s ClockSession) error
	Delete(ctx context.Context, id string, companyID string) error
	GetByID(ctx context.Context, id string, companyID string) (ClockSession, error)
	GetByEmployeeDate(ctx context.Context, companyID string, employeeID string, workDate time.Time) (ClockSession, error)
	ListByEmployeePeriod(ctx context.Context, companyID string, employeeID string, start, end time.Time) ([]ClockSession, error)

	// ListStrayFirstIns returns sessions whose only datum is a ClockIn1
	// strictly before the cutoff time-of-day, ordered by work date.
	// Feed for the midnight-crossing repair.
	ListStrayFirstIns(ctx context.Context, companyID string, cutoff time.Duration) ([]ClockSession, error)
}
