package payroll

import "errors"

var (
	ErrRunNotFound          = errors.New("payroll run not found")
	ErrDuplicateRun         = errors.New("payroll run already exists for this period and scope")
	ErrRunFinalized         = errors.New("payroll run is finalized, cannot modify")
	ErrAlreadyFinalized     = errors.New("payroll run already finalized")
	ErrEmptyRun             = errors.New("payroll run has no items")
	ErrItemNotFound         = errors.New("payroll item not found")
	ErrItemExists           = errors.New("payroll item already exists for this employee")
	ErrPeriodConfigNotFound = errors.New("payroll period configuration not found")
	ErrRunNotFinalized      = errors.New("payroll run is not finalized")
	ErrInvalidPeriod        = errors.New("invalid payroll period")
)

// DuplicateRunError wraps ErrDuplicateRun with the conflicting run id so
// the host can point the caller at the existing run.
type DuplicateRunError struct {
	ExistingID string
}

func (e *DuplicateRunError) Error() string {
	return ErrDuplicateRun.Error()
}

func (e *DuplicateRunError) Unwrap() error {
	return ErrDuplicateRun
}
