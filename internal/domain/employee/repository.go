package employee

import "context"

// EmployeeRepository defines data access methods for employees.
// All methods take companyID to prevent cross-company data access.
type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	Update(ctx context.Context, emp Employee) error
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)
	GetByCode(ctx context.Context, code string, companyID string) (Employee, error)
	GetActiveByCompanyID(ctx context.Context, companyID string) ([]Employee, error)
	GetActiveByDepartment(ctx context.Context, companyID string, departmentID string) ([]Employee, error)
	GetActiveByOutlet(ctx context.Context, companyID string, outletID string) ([]Employee, error)
	Deactivate(ctx context.Context, id string, companyID string) error
}
