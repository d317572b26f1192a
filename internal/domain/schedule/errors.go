package schedule

import "errors"

var (
	ErrShiftTemplateNotFound = errors.New("shift template not found")
	ErrShiftTemplateInUse    = errors.New("shift template referenced by schedule assignments")
	ErrAssignmentNotFound    = errors.New("schedule assignment not found")
	ErrAssignmentLocked      = errors.New("schedule assignment belongs to a finalized period")
)
