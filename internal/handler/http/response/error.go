package response

import (
	"errors"
	"net/http"

	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/attendance"
	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/claim"
	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/company"
	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/employee"
	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/leave"
	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/payroll"
	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/schedule"
	"github.com/contactevin2u/AAHRMS-sub003/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// A duplicate run carries the id of the run that already covers
	// the period and scope
	var dup *payroll.DuplicateRunError
	if errors.As(err, &dup) {
		ConflictWithDetails(w, "Payroll run already exists for this period and scope",
			map[string]string{"existing_id": dup.ExistingID})
		return
	}

	switch {
	// Payroll domain errors
	case errors.Is(err, payroll.ErrRunNotFound):
		NotFound(w, "Payroll run not found")
	case errors.Is(err, payroll.ErrDuplicateRun):
		Conflict(w, "Payroll run already exists for this period and scope")
	case errors.Is(err, payroll.ErrRunFinalized):
		Conflict(w, "Payroll run is finalized and cannot be modified")
	case errors.Is(err, payroll.ErrAlreadyFinalized):
		Conflict(w, "Payroll run is already finalized")
	case errors.Is(err, payroll.ErrRunNotFinalized):
		Conflict(w, "Payroll run is not finalized yet")
	case errors.Is(err, payroll.ErrEmptyRun):
		BadRequest(w, "Payroll run has no items", nil)
	case errors.Is(err, payroll.ErrItemNotFound):
		NotFound(w, "Payroll item not found")
	case errors.Is(err, payroll.ErrItemExists):
		Conflict(w, "Payroll item already exists for this employee")
	case errors.Is(err, payroll.ErrPeriodConfigNotFound):
		NotFound(w, "Payroll period configuration not found")
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrICNumberExists):
		Conflict(w, "IC number already registered")
	case errors.Is(err, employee.ErrNoActiveEmployees):
		BadRequest(w, "No active employees in scope", nil)

	// Company domain errors
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, company.ErrDepartmentNotFound):
		NotFound(w, "Department not found")
	case errors.Is(err, company.ErrOutletNotFound):
		NotFound(w, "Outlet not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveBalanceNotFound):
		NotFound(w, "Leave balance not found")
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		Conflict(w, "Leave request already processed")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrSessionNotFound):
		NotFound(w, "Clock session not found")
	case errors.Is(err, attendance.ErrSessionFull):
		Conflict(w, "Clock session already has four punches")
	case errors.Is(err, attendance.ErrPunchOutOfOrder):
		BadRequest(w, "Punch is earlier than the previous punch", nil)
	case errors.Is(err, attendance.ErrSessionDateConflict):
		Conflict(w, "Clock session already exists for this work date")

	// Claim domain errors
	case errors.Is(err, claim.ErrClaimNotFound):
		NotFound(w, "Claim not found")
	case errors.Is(err, claim.ErrClaimAlreadyLinked):
		Conflict(w, "Claim already linked to a payroll item")

	// Schedule domain errors
	case errors.Is(err, schedule.ErrShiftTemplateNotFound):
		NotFound(w, "Shift template not found")
	case errors.Is(err, schedule.ErrShiftTemplateInUse):
		Conflict(w, "Shift template is referenced by schedule assignments")
	case errors.Is(err, schedule.ErrAssignmentNotFound):
		NotFound(w, "Schedule assignment not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
