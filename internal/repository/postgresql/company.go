package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/company"
	"github.com/contactevin2u/AAHRMS-sub003/internal/pkg/database"
)

type companyRepositoryImpl struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepositoryImpl{db: db}
}

// GetByID implements company.CompanyRepository.
func (c *companyRepositoryImpl) GetByID(ctx context.Context, id string) (company.Company, error) {
	q := GetQuerier(ctx, c.db)

	query := `SELECT id, name, timezone, created_at, updated_at FROM companies WHERE id = $1`

	var com company.Company
	err := q.QueryRow(ctx, query, id).Scan(&com.ID, &com.Name, &com.Timezone, &com.CreatedAt, &com.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to get company %s: %w", id, err)
	}
	return com, nil
}

// ListDepartments implements company.CompanyRepository.
func (c *companyRepositoryImpl) ListDepartments(ctx context.Context, companyID string) ([]company.Department, error) {
	q := GetQuerier(ctx, c.db)

	query := `SELECT id, company_id, name, created_at, updated_at FROM departments WHERE company_id = $1 ORDER BY name`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []company.Department
	for rows.Next() {
		var d company.Department
		if err := rows.Scan(&d.ID, &d.CompanyID, &d.Name, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return departments, nil
}

// ListOutlets implements company.CompanyRepository.
func (c *companyRepositoryImpl) ListOutlets(ctx context.Context, companyID string) ([]company.Outlet, error) {
	q := GetQuerier(ctx, c.db)

	query := `SELECT id, company_id, name, created_at, updated_at FROM outlets WHERE company_id = $1 ORDER BY name`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var outlets []company.Outlet
	for rows.Next() {
		var o company.Outlet
		if err := rows.Scan(&o.ID, &o.CompanyID, &o.Name, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		outlets = append(outlets, o)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return outlets, nil
}

// GetDepartment implements company.CompanyRepository.
func (c *companyRepositoryImpl) GetDepartment(ctx context.Context, id string, companyID string) (company.Department, error) {
	q := GetQuerier(ctx, c.db)

	query := `SELECT id, company_id, name, created_at, updated_at FROM departments WHERE id = $1 AND company_id = $2`

	var d company.Department
	err := q.QueryRow(ctx, query, id, companyID).Scan(&d.ID, &d.CompanyID, &d.Name, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Department{}, company.ErrDepartmentNotFound
		}
		return company.Department{}, fmt.Errorf("failed to get department %s: %w", id, err)
	}
	return d, nil
}

// GetOutlet implements company.CompanyRepository.
func (c *companyRepositoryImpl) GetOutlet(ctx context.Context, id string, companyID string) (company.Outlet, error) {
	q := GetQuerier(ctx, c.db)

	query := `SELECT id, company_id, name, created_at, updated_at FROM outlets WHERE id = $1 AND company_id = $2`

	var o company.Outlet
	err := q.QueryRow(ctx, query, id, companyID).Scan(&o.ID, &o.CompanyID, &o.Name, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Outlet{}, company.ErrOutletNotFound
		}
		return company.Outlet{}, fmt.Errorf("failed to get outlet %s: %w", id, err)
	}
	return o, nil
}
