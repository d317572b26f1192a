package schedule

import "time"

// ShiftTemplate - a named shift with clock times in the tenant's local
// timezone, stored "15:04". StandardMinutes overrides the default paid
// span used for overtime derivation when set.
type ShiftTemplate struct {
	ID              string
	CompanyID       string
	Code            string
	StartTime       string
	EndTime         string
	IsOff           bool
	Color           string
	StandardMinutes *int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Assignment - one shift (or off day) per employee per date.
// Unique on (employee_id, schedule_date).
type Assignment struct {
	ID              string
	CompanyID       string
	EmployeeID      string
	ScheduleDate    time.Time
	ShiftTemplateID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined shift fields
	ShiftCode            *string
	ShiftStartTime       *string
	ShiftEndTime         *string
	ShiftIsOff           *bool
	ShiftStandardMinutes *int
}

// Holiday - public holiday calendar entry.
type Holiday struct {
	ID        string
	CompanyID string
	Date      time.Time
	Name      string
}

// IsWorkingDay reports whether the assignment schedules actual work.
func (a Assignment) IsWorkingDay() bool {
	if a.ShiftTemplateID == nil {
		return false
	}
	if a.ShiftIsOff != nil && *a.ShiftIsOff {
		return false
	}
	return true
}

// ScheduledMinutes returns the paid span for overtime and short-hours
// derivation: the template override when present, 450 otherwise.
func (a Assignment) ScheduledMinutes() int {
	if a.ShiftStandardMinutes != nil && *a.ShiftStandardMinutes > 0 {
		return *a.ShiftStandardMinutes
	}
	return DefaultStandardMinutes
}

// DefaultStandardMinutes is the per-shift paid span (7.5 hours).
const DefaultStandardMinutes = 450
