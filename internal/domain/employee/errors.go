package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmployeeCodeExists = errors.New("employee code already exists")
	ErrICNumberExists     = errors.New("ic number already registered")
	ErrNoActiveEmployees  = errors.New("no active employees in scope")
)
