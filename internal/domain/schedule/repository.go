package schedule

import (
	"context"
	"time"
)

type ScheduleRepository interface {
	// Shift templates
	CreateShiftTemplate(ctx context.Context, tpl ShiftTemplate) (ShiftTemplate, error)
	GetShiftTemplate(ctx context.Context, id string, companyID string) (ShiftTemplate, error)
	ListShiftTemplates(ctx context.Context, companyID string) ([]ShiftTemplate, error)
	DeleteShiftTemplate(ctx context.Context, id string, companyID string) error

	// Assignments
	UpsertAssignment(ctx context.Context, a Assignment) (Assignment, error)
	GetAssignmentsByPeriod(ctx context.Context, companyID string, employeeID string, start, end time.Time) ([]Assignment, error)

	// Holidays
	CreateHoliday(ctx context.Context, h Holiday) (Holiday, error)
	GetHolidaysByPeriod(ctx context.Context, companyID string, start, end time.Time) ([]Holiday, error)
}
