package company

import "errors"

var (
	ErrCompanyNotFound    = errors.New("company not found")
	ErrDepartmentNotFound = errors.New("department not found")
	ErrOutletNotFound     = errors.New("outlet not found")
)
