package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/leave"
	"github.com/contactevin2u/AAHRMS-sub003/internal/pkg/database"
)

type leaveRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepositoryImpl{db: db}
}

// GetSettings implements leave.LeaveRepository. Companies without a
// settings row get the defaults.
func (l *leaveRepositoryImpl) GetSettings(ctx context.Context, companyID string) (leave.Settings, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT company_id, count_join_month, carry_forward_enabled, max_carry_forward_days, proration_rounding
		FROM leave_settings
		WHERE company_id = $1
	`

	var s leave.Settings
	err := q.QueryRow(ctx, query, companyID).Scan(
		&s.CompanyID, &s.CountJoinMonth, &s.CarryForwardEnabled, &s.MaxCarryForwardDays, &s.ProrationRounding,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Settings{
				CompanyID:           companyID,
				CountJoinMonth:      false,
				CarryForwardEnabled: false,
				MaxCarryForwardDays: decimal.Zero,
				ProrationRounding:   leave.RoundNearHalf,
			}, nil
		}
		return leave.Settings{}, fmt.Errorf("failed to get leave settings: %w", err)
	}
	return s, nil
}

// CreateType implements leave.LeaveRepository.
func (l *leaveRepositoryImpl) CreateType(ctx context.Context, lt leave.LeaveType) (leave.LeaveType, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		INSERT INTO leave_types (company_id, name, is_paid, default_entitled_days)
		VALUES ($1, $2, $3, $4)
		RETURNING id, company_id, name, is_paid, default_entitled_days, created_at, updated_at
	`

	var created leave.LeaveType
	err := q.QueryRow(ctx, query, lt.CompanyID, lt.Name, lt.IsPaid, lt.DefaultEntitledDays).Scan(
		&created.ID, &created.CompanyID, &created.Name, &created.IsPaid,
		&created.DefaultEntitledDays, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return leave.LeaveType{}, fmt.Errorf("failed to create leave type: %w", err)
	}
	return created, nil
}

// GetTypeByID implements leave.LeaveRepository.
func (l *leaveRepositoryImpl) GetTypeByID(ctx context.Context, id string, companyID string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT id, company_id, name, is_paid, default_entitled_days, created_at, updated_at
		FROM leave_types
		WHERE id = $1 AND company_id = $2
	`

	var lt leave.LeaveType
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&lt.ID, &lt.CompanyID, &lt.Name, &lt.IsPaid, &lt.DefaultEntitledDays, &lt.CreatedAt, &lt.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveType{}, fmt.Errorf("failed to get leave type %s: %w", id, err)
	}
	return lt, nil
}

// ListTypes implements leave.LeaveRepository.
func (l *leaveRepositoryImpl) ListTypes(ctx context.Context, companyID string) ([]leave.LeaveType, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT id, company_id, name, is_paid, default_entitled_days, created_at, updated_at
		FROM leave_types
		WHERE company_id = $1
		ORDER BY name
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []leave.LeaveType
	for rows.Next() {
		var lt leave.LeaveType
		if err := rows.Scan(
			&lt.ID, &lt.CompanyID, &lt.Name, &lt.IsPaid, &lt.DefaultEntitledDays, &lt.CreatedAt, &lt.UpdatedAt,
		); err != nil {
			return nil, err
		}
		types = append(types, lt)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return types, nil
}

// GetBalance implements leave.LeaveRepository.
func (l *leaveRepositoryImpl) GetBalance(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT id, company_id, employee_id, leave_type_id, year,
			entitled_days, used_days, carried_forward, created_at, updated_at
		FROM leave_balances
		WHERE company_id = $1 AND employee_id = $2 AND leave_type_id = $3 AND year = $4
	`

	var b leave.LeaveBalance
	err := q.QueryRow(ctx, query, companyID, employeeID, leaveTypeID, year).Scan(
		&b.ID, &b.CompanyID, &b.EmployeeID, &b.LeaveTypeID, &b.Year,
		&b.EntitledDays, &b.UsedDays, &b.CarriedForward, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveBalance{}, leave.ErrLeaveBalanceNotFound
		}
		return leave.LeaveBalance{}, fmt.Errorf("failed to get leave balance: %w", err)
	}
	return b, nil
}

// ListBalances implements leave.LeaveRepository.
func (l *leaveRepositoryImpl) ListBalances(ctx context.Context, companyID, employeeID string, year int) ([]leave.LeaveBalance, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT id, company_id, employee_id, leave_type_id, year,
			entitled_days, used_days, carried_forward, created_at, updated_at
		FROM leave_balances
		WHERE company_id = $1 AND employee_id = $2 AND year = $3
	`

	rows, err := q.Query(ctx, query, companyID, employeeID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []leave.LeaveBalance
	for rows.Next() {
		var b leave.LeaveBalance
		if err := rows.Scan(
			&b.ID, &b.CompanyID, &b.EmployeeID, &b.LeaveTypeID, &b.Year,
			&b.EntitledDays, &b.UsedDays, &b.CarriedForward, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return balances, nil
}

// UpsertBalance implements leave.LeaveRepository.
func (l *leaveRepositoryImpl) UpsertBalance(ctx context.Context, b leave.LeaveBalance) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		INSERT INTO leave_balances (company_id, employee_id, leave_type_id, year, entitled_days, used_days, carried_forward)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (employee_id, leave_type_id, year)
		DO UPDATE SET entitled_days = EXCLUDED.entitled_days, carried_forward = EXCLUDED.carried_forward, updated_at = NOW()
		RETURNING id, company_id, employee_id, leave_type_id, year,
			entitled_days, used_days, carried_forward, created_at, updated_at
	`

	var saved leave.LeaveBalance
	err := q.QueryRow(ctx, query,
		b.CompanyID, b.EmployeeID, b.LeaveTypeID, b.Year, b.EntitledDays, b.UsedDays, b.CarriedForward,
	).Scan(
		&saved.ID, &saved.CompanyID, &saved.EmployeeID, &saved.LeaveTypeID, &saved.Year,
		&saved.EntitledDays, &saved.UsedDays, &saved.CarriedForward, &saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		return leave.LeaveBalance{}, fmt.Errorf("failed to upsert leave balance: %w", err)
	}
	return saved, nil
}

// AddUsedDays implements leave.LeaveRepository.
func (l *leaveRepositoryImpl) AddUsedDays(ctx context.Context, companyID, employeeID, leaveTypeID string, year int, days decimal.Decimal) error {
	q := GetQuerier(ctx, l.db)

	query := `
		UPDATE leave_balances
		SET used_days = used_days + $1, updated_at = NOW()
		WHERE company_id = $2 AND employee_id = $3 AND leave_type_id = $4 AND year = $5
	`

	tag, err := q.Exec(ctx, query, days, companyID, employeeID, leaveTypeID, year)
	if err != nil {
		return fmt.Errorf("failed to add used leave days: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveBalanceNotFound
	}
	return nil
}

const leaveRequestColumns = `
	lr.id, lr.company_id, lr.employee_id, lr.leave_type_id,
	lr.start_date, lr.end_date, lr.total_days, lr.status, lr.reason,
	lr.created_at, lr.updated_at, lt.name, lt.is_paid`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var r leave.LeaveRequest
	err := row.Scan(
		&r.ID, &r.CompanyID, &r.EmployeeID, &r.LeaveTypeID,
		&r.StartDate, &r.EndDate, &r.TotalDays, &r.Status, &r.Reason,
		&r.CreatedAt, &r.UpdatedAt, &r.LeaveTypeName, &r.IsPaid,
	)
	return r, err
}

// CreateRequest implements leave.LeaveRepository.
func (l *leaveRepositoryImpl) CreateRequest(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		WITH inserted AS (
			INSERT INTO leave_requests (company_id, employee_id, leave_type_id, start_date, end_date, total_days, status, reason)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING *
		)
		SELECT ` + leaveRequestColumns + `
		FROM inserted lr
		JOIN leave_types lt ON lt.id = lr.leave_type_id
	`

	created, err := scanLeaveRequest(q.QueryRow(ctx, query,
		req.CompanyID, req.EmployeeID, req.LeaveTypeID, req.StartDate, req.EndDate, req.TotalDays, req.Status, req.Reason,
	))
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return created, nil
}

// GetRequestByID implements leave.LeaveRepository.
func (l *leaveRepositoryImpl) GetRequestByID(ctx context.Context, id string, companyID string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		JOIN leave_types lt ON lt.id = lr.leave_type_id
		WHERE lr.id = $1 AND lr.company_id = $2
	`

	req, err := scanLeaveRequest(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request %s: %w", id, err)
	}
	return req, nil
}

// UpdateRequestStatus implements leave.LeaveRepository.
func (l *leaveRepositoryImpl) UpdateRequestStatus(ctx context.Context, id string, companyID string, status leave.RequestStatus) error {
	q := GetQuerier(ctx, l.db)

	query := `
		UPDATE leave_requests
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND company_id = $3 AND status = $4
	`

	tag, err := q.Exec(ctx, query, status, id, companyID, leave.RequestPending)
	if err != nil {
		return fmt.Errorf("failed to update leave request %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestAlreadyProcessed
	}
	return nil
}

// ListApprovedByPeriod implements leave.LeaveRepository. Returns
// requests overlapping [start, end], not only those fully inside it.
func (l *leaveRepositoryImpl) ListApprovedByPeriod(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		JOIN leave_types lt ON lt.id = lr.leave_type_id
		WHERE lr.company_id = $1 AND lr.employee_id = $2 AND lr.status = $3
			AND lr.start_date <= $5 AND lr.end_date >= $4
		ORDER BY lr.start_date
	`

	rows, err := q.Query(ctx, query, companyID, employeeID, leave.RequestApproved, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		req, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return requests, nil
}
