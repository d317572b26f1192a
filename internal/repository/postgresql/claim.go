package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/claim"
	"github.com/contactevin2u/AAHRMS-sub003/internal/pkg/database"
)

type claimRepositoryImpl struct {
	db *database.DB
}

func NewClaimRepository(db *database.DB) claim.ClaimRepository {
	return &claimRepositoryImpl{db: db}
}

const claimColumns = `
	id, company_id, employee_id, claim_date, amount, description,
	status, linked_payroll_item_id, created_at, updated_at`

func scanClaim(row pgx.Row) (claim.Claim, error) {
	var c claim.Claim
	err := row.Scan(
		&c.ID, &c.CompanyID, &c.EmployeeID, &c.ClaimDate, &c.Amount, &c.Description,
		&c.Status, &c.LinkedPayrollItemID, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

// Create implements claim.ClaimRepository.
func (r *claimRepositoryImpl) Create(ctx context.Context, c claim.Claim) (claim.Claim, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO claims (company_id, employee_id, claim_date, amount, description, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + claimColumns

	created, err := scanClaim(q.QueryRow(ctx, query,
		c.CompanyID, c.EmployeeID, c.ClaimDate, c.Amount, c.Description, c.Status,
	))
	if err != nil {
		return claim.Claim{}, fmt.Errorf("failed to create claim: %w", err)
	}
	return created, nil
}

// GetByID implements claim.ClaimRepository.
func (r *claimRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (claim.Claim, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + claimColumns + ` FROM claims WHERE id = $1 AND company_id = $2`

	c, err := scanClaim(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return claim.Claim{}, claim.ErrClaimNotFound
		}
		return claim.Claim{}, fmt.Errorf("failed to get claim %s: %w", id, err)
	}
	return c, nil
}

// UpdateStatus implements claim.ClaimRepository. Linked claims are
// immutable.
func (r *claimRepositoryImpl) UpdateStatus(ctx context.Context, id string, companyID string, status claim.Status) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE claims
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND company_id = $3 AND linked_payroll_item_id IS NULL
	`

	tag, err := q.Exec(ctx, query, status, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to update claim %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return claim.ErrClaimAlreadyLinked
	}
	return nil
}

// SumApprovedUnlinked implements claim.ClaimRepository.
func (r *claimRepositoryImpl) SumApprovedUnlinked(ctx context.Context, companyID, employeeID string, start, end time.Time) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM claims
		WHERE company_id = $1 AND employee_id = $2 AND status = $3
			AND linked_payroll_item_id IS NULL
			AND claim_date >= $4 AND claim_date <= $5
	`

	var total decimal.Decimal
	err := q.QueryRow(ctx, query, companyID, employeeID, claim.StatusApproved, start, end).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum approved claims: %w", err)
	}
	return total, nil
}

// LinkToPayrollItem implements claim.ClaimRepository. The IS NULL guard
// makes the stamp an at-most-once operation even when overlapping runs
// finalize concurrently.
func (r *claimRepositoryImpl) LinkToPayrollItem(ctx context.Context, companyID, employeeID, itemID string, start, end time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE claims
		SET linked_payroll_item_id = $1, updated_at = NOW()
		WHERE company_id = $2 AND employee_id = $3 AND status = $4
			AND linked_payroll_item_id IS NULL
			AND claim_date >= $5 AND claim_date <= $6
	`

	tag, err := q.Exec(ctx, query, itemID, companyID, employeeID, claim.StatusApproved, start, end)
	if err != nil {
		return 0, fmt.Errorf("failed to link claims to payroll item %s: %w", itemID, err)
	}
	return tag.RowsAffected(), nil
}

// ListByEmployeePeriod implements claim.ClaimRepository.
func (r *claimRepositoryImpl) ListByEmployeePeriod(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]claim.Claim, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + claimColumns + `
		FROM claims
		WHERE company_id = $1 AND employee_id = $2 AND claim_date >= $3 AND claim_date <= $4
		ORDER BY claim_date`

	rows, err := q.Query(ctx, query, companyID, employeeID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var claims []claim.Claim
	for rows.Next() {
		c, err := scanClaim(rows)
		if err != nil {
			return nil, err
		}
		claims = append(claims, c)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return claims, nil
}
