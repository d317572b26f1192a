package company

import "context"

type CompanyRepository interface {
	GetByID(ctx context.Context, id string) (Company, error)
	ListDepartments(ctx context.Context, companyID string) ([]Department, error)
	ListOutlets(ctx context.Context, companyID string) ([]Outlet, error)
	GetDepartment(ctx context.Context, id string, companyID string) (Department, error)
	GetOutlet(ctx context.Context, id string, companyID string) (Outlet, error)
}
