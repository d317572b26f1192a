package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/payroll"
	"github.com/contactevin2u/AAHRMS-sub003/internal/pkg/database"
)

type payrollRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepositoryImpl{db: db}
}

// GetPeriodConfig implements payroll.PayrollRepository. Prefers the
// department-specific row, falls back to the company-wide one.
func (p *payrollRepositoryImpl) GetPeriodConfig(ctx context.Context, companyID string, departmentID *string) (payroll.PeriodConfig, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT id, company_id, department_id, active, period_type, period_start_day, period_end_day,
			payment_day, payment_month_offset, commission_period_offset, work_days_per_month,
			created_at, updated_at
		FROM payroll_period_configs
		WHERE company_id = $1 AND active = TRUE
			AND (department_id IS NOT DISTINCT FROM $2 OR department_id IS NULL)
		ORDER BY department_id IS NULL
		LIMIT 1
	`

	var cfg payroll.PeriodConfig
	err := q.QueryRow(ctx, query, companyID, departmentID).Scan(
		&cfg.ID, &cfg.CompanyID, &cfg.DepartmentID, &cfg.Active, &cfg.PeriodType,
		&cfg.PeriodStartDay, &cfg.PeriodEndDay, &cfg.PaymentDay, &cfg.PaymentMonthOffset,
		&cfg.CommissionPeriodOffset, &cfg.WorkDaysPerMonth, &cfg.CreatedAt, &cfg.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PeriodConfig{}, payroll.ErrPeriodConfigNotFound
		}
		return payroll.PeriodConfig{}, fmt.Errorf("failed to get period config: %w", err)
	}
	return cfg, nil
}

// UpsertPeriodConfig implements payroll.PayrollRepository.
func (p *payrollRepositoryImpl) UpsertPeriodConfig(ctx context.Context, cfg payroll.PeriodConfig) (payroll.PeriodConfig, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		INSERT INTO payroll_period_configs (
			company_id, department_id, active, period_type, period_start_day, period_end_day,
			payment_day, payment_month_offset, commission_period_offset, work_days_per_month
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (company_id, department_id)
		DO UPDATE SET active = EXCLUDED.active, period_type = EXCLUDED.period_type,
			period_start_day = EXCLUDED.period_start_day, period_end_day = EXCLUDED.period_end_day,
			payment_day = EXCLUDED.payment_day, payment_month_offset = EXCLUDED.payment_month_offset,
			commission_period_offset = EXCLUDED.commission_period_offset,
			work_days_per_month = EXCLUDED.work_days_per_month, updated_at = NOW()
		RETURNING id, company_id, department_id, active, period_type, period_start_day, period_end_day,
			payment_day, payment_month_offset, commission_period_offset, work_days_per_month,
			created_at, updated_at
	`

	var saved payroll.PeriodConfig
	err := q.QueryRow(ctx, query,
		cfg.CompanyID, cfg.DepartmentID, cfg.Active, cfg.PeriodType, cfg.PeriodStartDay, cfg.PeriodEndDay,
		cfg.PaymentDay, cfg.PaymentMonthOffset, cfg.CommissionPeriodOffset, cfg.WorkDaysPerMonth,
	).Scan(
		&saved.ID, &saved.CompanyID, &saved.DepartmentID, &saved.Active, &saved.PeriodType,
		&saved.PeriodStartDay, &saved.PeriodEndDay, &saved.PaymentDay, &saved.PaymentMonthOffset,
		&saved.CommissionPeriodOffset, &saved.WorkDaysPerMonth, &saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		return payroll.PeriodConfig{}, fmt.Errorf("failed to upsert period config: %w", err)
	}
	return saved, nil
}

// CreateEarningEntry implements payroll.PayrollRepository.
func (p *payrollRepositoryImpl) CreateEarningEntry(ctx context.Context, e payroll.EarningEntry) (payroll.EarningEntry, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		INSERT INTO earning_entries (company_id, employee_id, month, year, kind, label, amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, company_id, employee_id, month, year, kind, label, amount, created_at, updated_at
	`

	var created payroll.EarningEntry
	err := q.QueryRow(ctx, query, e.CompanyID, e.EmployeeID, e.Month, e.Year, e.Kind, e.Label, e.Amount).Scan(
		&created.ID, &created.CompanyID, &created.EmployeeID, &created.Month, &created.Year,
		&created.Kind, &created.Label, &created.Amount, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return payroll.EarningEntry{}, fmt.Errorf("failed to create earning entry: %w", err)
	}
	return created, nil
}

// SumEarningsByKind implements payroll.PayrollRepository.
func (p *payrollRepositoryImpl) SumEarningsByKind(ctx context.Context, companyID, employeeID string, month, year int) (map[payroll.EarningKind]decimal.Decimal, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT kind, COALESCE(SUM(amount), 0)
		FROM earning_entries
		WHERE company_id = $1 AND employee_id = $2 AND month = $3 AND year = $4
		GROUP BY kind
	`

	rows, err := q.Query(ctx, query, companyID, employeeID, month, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sums := make(map[payroll.EarningKind]decimal.Decimal)
	for rows.Next() {
		var kind payroll.EarningKind
		var total decimal.Decimal
		if err := rows.Scan(&kind, &total); err != nil {
			return nil, err
		}
		sums[kind] = total
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return sums, nil
}

// GetMonthlySales implements payroll.PayrollRepository.
func (p *payrollRepositoryImpl) GetMonthlySales(ctx context.Context, companyID, employeeID string, month, year int) (decimal.Decimal, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM sales_records
		WHERE company_id = $1 AND employee_id = $2
			AND EXTRACT(MONTH FROM sale_date) = $3 AND EXTRACT(YEAR FROM sale_date) = $4
	`

	var total decimal.Decimal
	err := q.QueryRow(ctx, query, companyID, employeeID, month, year).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get monthly sales: %w", err)
	}
	return total, nil
}

const runColumns = `
	r.id, r.company_id, r.month, r.year, r.department_id, r.outlet_id,
	r.status, r.period_start, r.period_end, r.payment_due,
	r.work_days_per_month, r.table_version, r.notes,
	r.total_gross, r.total_deductions, r.total_net, r.total_employer_cost, r.employee_count,
	r.warnings, r.finalized_at, r.created_at, r.updated_at,
	d.name, o.name`

const runJoins = `
	FROM payroll_runs r
	LEFT JOIN departments d ON d.id = r.department_id
	LEFT JOIN outlets o ON o.id = r.outlet_id`

func scanRun(row pgx.Row) (payroll.Run, error) {
	var r payroll.Run
	err := row.Scan(
		&r.ID, &r.CompanyID, &r.Month, &r.Year, &r.DepartmentID, &r.OutletID,
		&r.Status, &r.PeriodStart, &r.PeriodEnd, &r.PaymentDue,
		&r.WorkDaysPerMonth, &r.TableVersion, &r.Notes,
		&r.TotalGross, &r.TotalDeductions, &r.TotalNet, &r.TotalEmployerCost, &r.EmployeeCount,
		&r.Warnings, &r.FinalizedAt, &r.CreatedAt, &r.UpdatedAt,
		&r.DepartmentName, &r.OutletName,
	)
	return r, err
}

// CreateRun implements payroll.PayrollRepository. A partial unique
// index on (company_id, month, year, department_id, outlet_id) backs
// the duplicate detection so concurrent creates cannot both succeed.
func (p *payrollRepositoryImpl) CreateRun(ctx context.Context, run payroll.Run) (payroll.Run, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		WITH inserted AS (
			INSERT INTO payroll_runs (
				company_id, month, year, department_id, outlet_id,
				status, period_start, period_end, payment_due,
				work_days_per_month, table_version, notes,
				total_gross, total_deductions, total_net, total_employer_cost, employee_count, warnings
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
			RETURNING *
		)
		SELECT ` + runColumns + `
		FROM inserted r
		LEFT JOIN departments d ON d.id = r.department_id
		LEFT JOIN outlets o ON o.id = r.outlet_id
	`

	created, err := scanRun(q.QueryRow(ctx, query,
		run.CompanyID, run.Month, run.Year, run.DepartmentID, run.OutletID,
		run.Status, run.PeriodStart, run.PeriodEnd, run.PaymentDue,
		run.WorkDaysPerMonth, run.TableVersion, run.Notes,
		run.TotalGross, run.TotalDeductions, run.TotalNet, run.TotalEmployerCost, run.EmployeeCount, run.Warnings,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			existing, lookupErr := p.GetRunByScope(ctx, run.CompanyID, run.Month, run.Year, run.DepartmentID, run.OutletID)
			if lookupErr != nil {
				return payroll.Run{}, payroll.ErrDuplicateRun
			}
			return payroll.Run{}, &payroll.DuplicateRunError{ExistingID: existing.ID}
		}
		return payroll.Run{}, fmt.Errorf("failed to create payroll run: %w", err)
	}
	return created, nil
}

// GetRunByID implements payroll.PayrollRepository.
func (p *payrollRepositoryImpl) GetRunByID(ctx context.Context, id string, companyID string) (payroll.Run, error) {
	q := GetQuerier(ctx, p.db)

	query := `SELECT ` + runColumns + runJoins + ` WHERE r.id = $1 AND r.company_id = $2`

	run, err := scanRun(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Run{}, payroll.ErrRunNotFound
		}
		return payroll.Run{}, fmt.Errorf("failed to get payroll run %s: %w", id, err)
	}
	return run, nil
}

// GetRunByScope implements payroll.PayrollRepository.
func (p *payrollRepositoryImpl) GetRunByScope(ctx context.Context, companyID string, month, year int, departmentID, outletID *string) (payroll.Run, error) {
	q := GetQuerier(ctx, p.db)

	query := `SELECT ` + runColumns + runJoins + `
		WHERE r.company_id = $1 AND r.month = $2 AND r.year = $3
			AND r.department_id IS NOT DISTINCT FROM $4
			AND r.outlet_id IS NOT DISTINCT FROM $5`

	run, err := scanRun(q.QueryRow(ctx, query, companyID, month, year, departmentID, outletID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Run{}, payroll.ErrRunNotFound
		}
		return payroll.Run{}, fmt.Errorf("failed to get payroll run by scope: %w", err)
	}
	return run, nil
}

// ListRuns implements payroll.PayrollRepository.
func (p *payrollRepositoryImpl) ListRuns(ctx context.Context, companyID string, filter payroll.RunFilter) ([]payroll.Run, int64, error) {
	q := GetQuerier(ctx, p.db)

	where := `WHERE r.company_id = $1`
	args := []any{companyID}
	if filter.Month != nil {
		args = append(args, *filter.Month)
		where += fmt.Sprintf(" AND r.month = $%d", len(args))
	}
	if filter.Year != nil {
		args = append(args, *filter.Year)
		where += fmt.Sprintf(" AND r.year = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		where += fmt.Sprintf(" AND r.status = $%d", len(args))
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM payroll_runs r ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll runs: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	args = append(args, limit, (page-1)*limit)
	query := `SELECT ` + runColumns + runJoins + ` ` + where +
		fmt.Sprintf(` ORDER BY r.year DESC, r.month DESC, r.created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var runs []payroll.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, 0, err
		}
		runs = append(runs, run)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, err
	}
	return runs, total, nil
}

// UpdateRunTotals implements payroll.PayrollRepository.
func (p *payrollRepositoryImpl) UpdateRunTotals(ctx context.Context, id string, companyID string, totals payroll.RunTotals) error {
	q := GetQuerier(ctx, p.db)

	query := `
		UPDATE payroll_runs
		SET total_gross = $1, total_deductions = $2, total_net = $3,
			total_employer_cost = $4, employee_count = $5, warnings = $6,
			updated_at = NOW()
		WHERE id = $7 AND company_id = $8
	`

	tag, err := q.Exec(ctx, query,
		totals.TotalGross, totals.TotalDeductions, totals.TotalNet,
		totals.TotalEmployerCost, totals.EmployeeCount, totals.Warnings,
		id, companyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update run totals %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrRunNotFound
	}
	return nil
}

// FinalizeRun implements payroll.PayrollRepository. The status guard in
// the WHERE clause makes double finalization detectable.
func (p *payrollRepositoryImpl) FinalizeRun(ctx context.Context, id string, companyID string, at time.Time) error {
	q := GetQuerier(ctx, p.db)

	query := `
		UPDATE payroll_runs
		SET status = $1, finalized_at = $2, updated_at = NOW()
		WHERE id = $3 AND company_id = $4 AND status = $5
	`

	tag, err := q.Exec(ctx, query, payroll.RunFinalized, at, id, companyID, payroll.RunDraft)
	if err != nil {
		return fmt.Errorf("failed to finalize payroll run %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrAlreadyFinalized
	}
	return nil
}

// DeleteRun implements payroll.PayrollRepository. Finalized runs are
// immutable; only drafts can be deleted.
func (p *payrollRepositoryImpl) DeleteRun(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, p.db)

	query := `DELETE FROM payroll_runs WHERE id = $1 AND company_id = $2 AND status = $3`

	tag, err := q.Exec(ctx, query, id, companyID, payroll.RunDraft)
	if err != nil {
		return fmt.Errorf("failed to delete payroll run %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrRunNotFound
	}
	return nil
}

// DeleteDraftRuns implements payroll.PayrollRepository.
func (p *payrollRepositoryImpl) DeleteDraftRuns(ctx context.Context, companyID string, month, year int) (int64, error) {
	q := GetQuerier(ctx, p.db)

	query := `DELETE FROM payroll_runs WHERE company_id = $1 AND month = $2 AND year = $3 AND status = $4`

	tag, err := q.Exec(ctx, query, companyID, month, year, payroll.RunDraft)
	if err != nil {
		return 0, fmt.Errorf("failed to delete draft runs: %w", err)
	}
	return tag.RowsAffected(), nil
}

const itemColumns = `
	id, run_id, company_id, employee_id,
	employee_name, employee_code, structure_code, bank_name, bank_account_number,
	basic_salary, fixed_allowance, ot_hours, ot_amount, ph_days_worked, ph_pay,
	incentive_amount, commission_amount, trade_commission_amount, outstation_amount,
	bonus, attendance_bonus, claims_amount,
	unpaid_leave_days, absent_days, late_days, short_hours,
	unpaid_leave_deduction, absent_day_deduction, short_hours_deduction,
	advance_deduction, other_deductions, deduction_remarks,
	epf_employee, epf_employer, socso_employee, socso_employer,
	eis_employee, eis_employer, pcb,
	epf_override, pcb_override, epf_employee_calculated, pcb_calculated,
	gross_salary, total_deductions, net_pay, employer_total_cost,
	table_version, warnings, created_at, updated_at`

func scanItem(row pgx.Row) (payroll.Item, error) {
	var i payroll.Item
	err := row.Scan(
		&i.ID, &i.RunID, &i.CompanyID, &i.EmployeeID,
		&i.EmployeeName, &i.EmployeeCode, &i.StructureCode, &i.BankName, &i.BankAccountNumber,
		&i.BasicSalary, &i.FixedAllowance, &i.OTHours, &i.OTAmount, &i.PHDaysWorked, &i.PHPay,
		&i.IncentiveAmount, &i.CommissionAmount, &i.TradeCommissionAmount, &i.OutstationAmount,
		&i.Bonus, &i.AttendanceBonus, &i.ClaimsAmount,
		&i.UnpaidLeaveDays, &i.AbsentDays, &i.LateDays, &i.ShortHours,
		&i.UnpaidLeaveDeduction, &i.AbsentDayDeduction, &i.ShortHoursDeduction,
		&i.AdvanceDeduction, &i.OtherDeductions, &i.DeductionRemarks,
		&i.EPFEmployee, &i.EPFEmployer, &i.SocsoEmployee, &i.SocsoEmployer,
		&i.EISEmployee, &i.EISEmployer, &i.PCB,
		&i.EPFOverride, &i.PCBOverride, &i.EPFEmployeeCalculated, &i.PCBCalculated,
		&i.GrossSalary, &i.TotalDeductions, &i.NetPay, &i.EmployerTotalCost,
		&i.TableVersion, &i.Warnings, &i.CreatedAt, &i.UpdatedAt,
	)
	return i, err
}

func itemArgs(i payroll.Item) []any {
	return []any{
		i.RunID, i.CompanyID, i.EmployeeID,
		i.EmployeeName, i.EmployeeCode, i.StructureCode, i.BankName, i.BankAccountNumber,
		i.BasicSalary, i.FixedAllowance, i.OTHours, i.OTAmount, i.PHDaysWorked, i.PHPay,
		i.IncentiveAmount, i.CommissionAmount, i.TradeCommissionAmount, i.OutstationAmount,
		i.Bonus, i.AttendanceBonus, i.ClaimsAmount,
		i.UnpaidLeaveDays, i.AbsentDays, i.LateDays, i.ShortHours,
		i.UnpaidLeaveDeduction, i.AbsentDayDeduction, i.ShortHoursDeduction,
		i.AdvanceDeduction, i.OtherDeductions, i.DeductionRemarks,
		i.EPFEmployee, i.EPFEmployer, i.SocsoEmployee, i.SocsoEmployer,
		i.EISEmployee, i.EISEmployer, i.PCB,
		i.EPFOverride, i.PCBOverride, i.EPFEmployeeCalculated, i.PCBCalculated,
		i.GrossSalary, i.TotalDeductions, i.NetPay, i.EmployerTotalCost,
		i.TableVersion, i.Warnings,
	}
}

// CreateItem implements payroll.PayrollRepository.
func (p *payrollRepositoryImpl) CreateItem(ctx context.Context, item payroll.Item) (payroll.Item, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		INSERT INTO payroll_items (
			run_id, company_id, employee_id,
			employee_name, employee_code, structure_code, bank_name, bank_account_number,
			basic_salary, fixed_allowance, ot_hours, ot_amount, ph_days_worked, ph_pay,
			incentive_amount, commission_amount, trade_commission_amount, outstation_amount,
			bonus, attendance_bonus, claims_amount,
			unpaid_leave_days, absent_days, late_days, short_hours,
			unpaid_leave_deduction, absent_day_deduction, short_hours_deduction,
			advance_deduction, other_deductions, deduction_remarks,
			epf_employee, epf_employer, socso_employee, socso_employer,
			eis_employee, eis_employer, pcb,
			epf_override, pcb_override, epf_employee_calculated, pcb_calculated,
			gross_salary, total_deductions, net_pay, employer_total_cost,
			table_version, warnings
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30,
			$31, $32, $33, $34, $35, $36, $37, $38, $39, $40, $41, $42, $43, $44,
			$45, $46, $47, $48
		)
		RETURNING ` + itemColumns

	created, err := scanItem(q.QueryRow(ctx, query, itemArgs(item)...))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return payroll.Item{}, payroll.ErrItemExists
		}
		return payroll.Item{}, fmt.Errorf("failed to create payroll item: %w", err)
	}
	return created, nil
}

// GetItemByID implements payroll.PayrollRepository.
func (p *payrollRepositoryImpl) GetItemByID(ctx context.Context, id string, companyID string) (payroll.Item, error) {
	q := GetQuerier(ctx, p.db)

	query := `SELECT ` + itemColumns + ` FROM payroll_items WHERE id = $1 AND company_id = $2`

	item, err := scanItem(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Item{}, payroll.ErrItemNotFound
		}
		return payroll.Item{}, fmt.Errorf("failed to get payroll item %s: %w", id, err)
	}
	return item, nil
}

// ListItemsByRun implements payroll.PayrollRepository.
func (p *payrollRepositoryImpl) ListItemsByRun(ctx context.Context, runID string, companyID string) ([]payroll.Item, error) {
	q := GetQuerier(ctx, p.db)

	query := `SELECT ` + itemColumns + `
		FROM payroll_items
		WHERE run_id = $1 AND company_id = $2
		ORDER BY employee_code`

	rows, err := q.Query(ctx, query, runID, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []payroll.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateItem implements payroll.PayrollRepository.
func (p *payrollRepositoryImpl) UpdateItem(ctx context.Context, item payroll.Item) error {
	q := GetQuerier(ctx, p.db)

	query := `
		UPDATE payroll_items SET
			basic_salary = $1, fixed_allowance = $2, ot_hours = $3, ot_amount = $4,
			ph_days_worked = $5, ph_pay = $6, incentive_amount = $7, commission_amount = $8,
			trade_commission_amount = $9, outstation_amount = $10, bonus = $11,
			attendance_bonus = $12, claims_amount = $13,
			unpaid_leave_days = $14, absent_days = $15, late_days = $16, short_hours = $17,
			unpaid_leave_deduction = $18, absent_day_deduction = $19, short_hours_deduction = $20,
			advance_deduction = $21, other_deductions = $22, deduction_remarks = $23,
			epf_employee = $24, epf_employer = $25, socso_employee = $26, socso_employer = $27,
			eis_employee = $28, eis_employer = $29, pcb = $30,
			epf_override = $31, pcb_override = $32, epf_employee_calculated = $33, pcb_calculated = $34,
			gross_salary = $35, total_deductions = $36, net_pay = $37, employer_total_cost = $38,
			table_version = $39, warnings = $40, updated_at = NOW()
		WHERE id = $41 AND company_id = $42
	`

	tag, err := q.Exec(ctx, query,
		item.BasicSalary, item.FixedAllowance, item.OTHours, item.OTAmount,
		item.PHDaysWorked, item.PHPay, item.IncentiveAmount, item.CommissionAmount,
		item.TradeCommissionAmount, item.OutstationAmount, item.Bonus,
		item.AttendanceBonus, item.ClaimsAmount,
		item.UnpaidLeaveDays, item.AbsentDays, item.LateDays, item.ShortHours,
		item.UnpaidLeaveDeduction, item.AbsentDayDeduction, item.ShortHoursDeduction,
		item.AdvanceDeduction, item.OtherDeductions, item.DeductionRemarks,
		item.EPFEmployee, item.EPFEmployer, item.SocsoEmployee, item.SocsoEmployer,
		item.EISEmployee, item.EISEmployer, item.PCB,
		item.EPFOverride, item.PCBOverride, item.EPFEmployeeCalculated, item.PCBCalculated,
		item.GrossSalary, item.TotalDeductions, item.NetPay, item.EmployerTotalCost,
		item.TableVersion, item.Warnings, item.ID, item.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update payroll item %s: %w", item.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrItemNotFound
	}
	return nil
}

// DeleteItem implements payroll.PayrollRepository.
func (p *payrollRepositoryImpl) DeleteItem(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, p.db)

	query := `DELETE FROM payroll_items WHERE id = $1 AND company_id = $2`

	tag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete payroll item %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrItemNotFound
	}
	return nil
}

// GetPriorItem implements payroll.PayrollRepository.
func (p *payrollRepositoryImpl) GetPriorItem(ctx context.Context, companyID, employeeID string, month, year int) (payroll.Item, error) {
	q := GetQuerier(ctx, p.db)

	prevMonth, prevYear := month-1, year
	if prevMonth == 0 {
		prevMonth, prevYear = 12, year-1
	}

	query := `
		SELECT ` + itemColumns + `
		FROM payroll_items
		WHERE company_id = $1 AND employee_id = $2
			AND run_id IN (SELECT id FROM payroll_runs WHERE company_id = $1 AND month = $3 AND year = $4)
		ORDER BY created_at DESC
		LIMIT 1
	`

	item, err := scanItem(q.QueryRow(ctx, query, companyID, employeeID, prevMonth, prevYear))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Item{}, payroll.ErrItemNotFound
		}
		return payroll.Item{}, fmt.Errorf("failed to get prior payroll item: %w", err)
	}
	return item, nil
}

// GetYearToDate implements payroll.PayrollRepository. Only finalized
// runs count; drafts are still mutable.
func (p *payrollRepositoryImpl) GetYearToDate(ctx context.Context, companyID, employeeID string, year, beforeMonth int) (payroll.YearToDate, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT
			COALESCE(SUM(i.basic_salary + i.commission_amount + i.trade_commission_amount + i.bonus), 0),
			COALESCE(SUM(i.pcb), 0)
		FROM payroll_items i
		JOIN payroll_runs r ON r.id = i.run_id
		WHERE i.company_id = $1 AND i.employee_id = $2
			AND r.status = $3 AND r.year = $4 AND r.month < $5
	`

	var ytd payroll.YearToDate
	err := q.QueryRow(ctx, query, companyID, employeeID, payroll.RunFinalized, year, beforeMonth).
		Scan(&ytd.StatutoryBase, &ytd.PCB)
	if err != nil {
		return payroll.YearToDate{}, fmt.Errorf("failed to get year-to-date figures: %w", err)
	}
	return ytd, nil
}
