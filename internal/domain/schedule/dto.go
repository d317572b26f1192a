package schedule

import (
	"github.com/contactevin2u/AAHRMS-sub003/internal/pkg/validator"
)

type CreateShiftTemplateRequest struct {
	Code            string `json:"code"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	IsOff           bool   `json:"is_off"`
	Color           string `json:"color"`
	StandardMinutes *int   `json:"standard_minutes,omitempty"`
}

func (r *CreateShiftTemplateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{Field: "code", Message: "is required"})
	}
	if !r.IsOff {
		if !validator.IsValidClockTime(r.StartTime) {
			errs = append(errs, validator.ValidationError{Field: "start_time", Message: "must be HH:MM"})
		}
		if !validator.IsValidClockTime(r.EndTime) {
			errs = append(errs, validator.ValidationError{Field: "end_time", Message: "must be HH:MM"})
		}
	}
	if r.StandardMinutes != nil && *r.StandardMinutes <= 0 {
		errs = append(errs, validator.ValidationError{Field: "standard_minutes", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AssignShiftRequest - one employee-date cell of the roster. A nil
// template clears the cell back to an unscheduled day.
type AssignShiftRequest struct {
	EmployeeID      string  `json:"employee_id"`
	ScheduleDate    string  `json:"schedule_date"`
	ShiftTemplateID *string `json:"shift_template_id,omitempty"`
}

func (r *AssignShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.ScheduleDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "schedule_date", Message: "must be YYYY-MM-DD"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateHolidayRequest struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

func (r *CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
