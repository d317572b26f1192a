package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/employee"
	"github.com/contactevin2u/AAHRMS-sub003/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	id, company_id, department_id, outlet_id, employee_code, name,
	ic_number, date_of_birth, epf_contribution_type, voluntary_epf_rate,
	marital_status, spouse_working, children_count,
	status, employment_type, work_type, join_date,
	bank_name, bank_account_number,
	hourly_rate, default_basic_salary, default_allowance, commission_rate,
	per_trip_rate, ot_rate, outstation_rate, default_bonus, default_incentive,
	attendance_bonus, payroll_structure_code, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.CompanyID, &emp.DepartmentID, &emp.OutletID, &emp.EmployeeCode, &emp.Name,
		&emp.ICNumber, &emp.DateOfBirth, &emp.EPFContributionType, &emp.VoluntaryEPFRate,
		&emp.MaritalStatus, &emp.SpouseWorking, &emp.ChildrenCount,
		&emp.Status, &emp.EmploymentType, &emp.WorkType, &emp.JoinDate,
		&emp.BankName, &emp.BankAccountNumber,
		&emp.HourlyRate, &emp.DefaultBasicSalary, &emp.DefaultAllowance, &emp.CommissionRate,
		&emp.PerTripRate, &emp.OTRate, &emp.OutstationRate, &emp.DefaultBonus, &emp.DefaultIncentive,
		&emp.AttendanceBonus, &emp.PayrollStructureCode, &emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO employees (
			company_id, department_id, outlet_id, employee_code, name,
			ic_number, date_of_birth, epf_contribution_type, voluntary_epf_rate,
			marital_status, spouse_working, children_count,
			status, employment_type, work_type, join_date,
			bank_name, bank_account_number,
			hourly_rate, default_basic_salary, default_allowance, commission_rate,
			per_trip_rate, ot_rate, outstation_rate, default_bonus, default_incentive,
			attendance_bonus, payroll_structure_code
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9,
			$10, $11, $12,
			$13, $14, $15, $16,
			$17, $18,
			$19, $20, $21, $22,
			$23, $24, $25, $26, $27,
			$28, $29
		)
		RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		emp.CompanyID, emp.DepartmentID, emp.OutletID, emp.EmployeeCode, emp.Name,
		emp.ICNumber, emp.DateOfBirth, emp.EPFContributionType, emp.VoluntaryEPFRate,
		emp.MaritalStatus, emp.SpouseWorking, emp.ChildrenCount,
		emp.Status, emp.EmploymentType, emp.WorkType, emp.JoinDate,
		emp.BankName, emp.BankAccountNumber,
		emp.HourlyRate, emp.DefaultBasicSalary, emp.DefaultAllowance, emp.CommissionRate,
		emp.PerTripRate, emp.OTRate, emp.OutstationRate, emp.DefaultBonus, emp.DefaultIncentive,
		emp.AttendanceBonus, emp.PayrollStructureCode,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "employees_company_id_ic_number_key":
				return employee.Employee{}, employee.ErrICNumberExists
			default:
				return employee.Employee{}, employee.ErrEmployeeCodeExists
			}
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return created, nil
}

// Update implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Update(ctx context.Context, emp employee.Employee) error {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees SET
			department_id = $1, outlet_id = $2, name = $3,
			ic_number = $4, date_of_birth = $5, epf_contribution_type = $6, voluntary_epf_rate = $7,
			marital_status = $8, spouse_working = $9, children_count = $10,
			status = $11, employment_type = $12, work_type = $13, join_date = $14,
			bank_name = $15, bank_account_number = $16,
			hourly_rate = $17, default_basic_salary = $18, default_allowance = $19, commission_rate = $20,
			per_trip_rate = $21, ot_rate = $22, outstation_rate = $23, default_bonus = $24, default_incentive = $25,
			attendance_bonus = $26, payroll_structure_code = $27, updated_at = NOW()
		WHERE id = $28 AND company_id = $29
	`

	tag, err := q.Exec(ctx, query,
		emp.DepartmentID, emp.OutletID, emp.Name,
		emp.ICNumber, emp.DateOfBirth, emp.EPFContributionType, emp.VoluntaryEPFRate,
		emp.MaritalStatus, emp.SpouseWorking, emp.ChildrenCount,
		emp.Status, emp.EmploymentType, emp.WorkType, emp.JoinDate,
		emp.BankName, emp.BankAccountNumber,
		emp.HourlyRate, emp.DefaultBasicSalary, emp.DefaultAllowance, emp.CommissionRate,
		emp.PerTripRate, emp.OTRate, emp.OutstationRate, emp.DefaultBonus, emp.DefaultIncentive,
		emp.AttendanceBonus, emp.PayrollStructureCode, emp.ID, emp.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update employee %s: %w", emp.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1 AND company_id = $2`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee %s: %w", id, err)
	}
	return emp, nil
}

// GetByCode implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByCode(ctx context.Context, code string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_code = $1 AND company_id = $2`

	emp, err := scanEmployee(q.QueryRow(ctx, query, code, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by code %s: %w", code, err)
	}
	return emp, nil
}

func (e *employeeRepositoryImpl) listActive(ctx context.Context, query string, args ...any) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return employees, nil
}

// GetActiveByCompanyID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetActiveByCompanyID(ctx context.Context, companyID string) ([]employee.Employee, error) {
	query := `SELECT ` + employeeColumns + `
		FROM employees
		WHERE company_id = $1 AND status = $2
		ORDER BY employee_code`
	return e.listActive(ctx, query, companyID, employee.StatusActive)
}

// GetActiveByDepartment implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetActiveByDepartment(ctx context.Context, companyID string, departmentID string) ([]employee.Employee, error) {
	query := `SELECT ` + employeeColumns + `
		FROM employees
		WHERE company_id = $1 AND status = $2 AND department_id = $3
		ORDER BY employee_code`
	return e.listActive(ctx, query, companyID, employee.StatusActive, departmentID)
}

// GetActiveByOutlet implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetActiveByOutlet(ctx context.Context, companyID string, outletID string) ([]employee.Employee, error) {
	query := `SELECT ` + employeeColumns + `
		FROM employees
		WHERE company_id = $1 AND status = $2 AND outlet_id = $3
		ORDER BY employee_code`
	return e.listActive(ctx, query, companyID, employee.StatusActive, outletID)
}

// Deactivate implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Deactivate(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, e.db)

	query := `UPDATE employees SET status = $1, updated_at = NOW() WHERE id = $2 AND company_id = $3`

	tag, err := q.Exec(ctx, query, employee.StatusInactive, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to deactivate employee %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}
