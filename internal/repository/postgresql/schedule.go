package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/schedule"
	"github.com/contactevin2u/AAHRMS-sub003/internal/pkg/database"
)

type scheduleRepositoryImpl struct {
	db *database.DB
}

func NewScheduleRepository(db *database.DB) schedule.ScheduleRepository {
	return &scheduleRepositoryImpl{db: db}
}

// CreateShiftTemplate implements schedule.ScheduleRepository.
func (s *scheduleRepositoryImpl) CreateShiftTemplate(ctx context.Context, tpl schedule.ShiftTemplate) (schedule.ShiftTemplate, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		INSERT INTO shift_templates (company_id, code, start_time, end_time, is_off, color, standard_minutes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, company_id, code, start_time, end_time, is_off, color, standard_minutes, created_at, updated_at
	`

	var created schedule.ShiftTemplate
	err := q.QueryRow(ctx, query,
		tpl.CompanyID, tpl.Code, tpl.StartTime, tpl.EndTime, tpl.IsOff, tpl.Color, tpl.StandardMinutes,
	).Scan(
		&created.ID, &created.CompanyID, &created.Code, &created.StartTime, &created.EndTime,
		&created.IsOff, &created.Color, &created.StandardMinutes, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return schedule.ShiftTemplate{}, fmt.Errorf("failed to create shift template: %w", err)
	}
	return created, nil
}

// GetShiftTemplate implements schedule.ScheduleRepository.
func (s *scheduleRepositoryImpl) GetShiftTemplate(ctx context.Context, id string, companyID string) (schedule.ShiftTemplate, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, company_id, code, start_time, end_time, is_off, color, standard_minutes, created_at, updated_at
		FROM shift_templates
		WHERE id = $1 AND company_id = $2
	`

	var tpl schedule.ShiftTemplate
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&tpl.ID, &tpl.CompanyID, &tpl.Code, &tpl.StartTime, &tpl.EndTime,
		&tpl.IsOff, &tpl.Color, &tpl.StandardMinutes, &tpl.CreatedAt, &tpl.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.ShiftTemplate{}, schedule.ErrShiftTemplateNotFound
		}
		return schedule.ShiftTemplate{}, fmt.Errorf("failed to get shift template %s: %w", id, err)
	}
	return tpl, nil
}

// ListShiftTemplates implements schedule.ScheduleRepository.
func (s *scheduleRepositoryImpl) ListShiftTemplates(ctx context.Context, companyID string) ([]schedule.ShiftTemplate, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, company_id, code, start_time, end_time, is_off, color, standard_minutes, created_at, updated_at
		FROM shift_templates
		WHERE company_id = $1
		ORDER BY code
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []schedule.ShiftTemplate
	for rows.Next() {
		var tpl schedule.ShiftTemplate
		if err := rows.Scan(
			&tpl.ID, &tpl.CompanyID, &tpl.Code, &tpl.StartTime, &tpl.EndTime,
			&tpl.IsOff, &tpl.Color, &tpl.StandardMinutes, &tpl.CreatedAt, &tpl.UpdatedAt,
		); err != nil {
			return nil, err
		}
		templates = append(templates, tpl)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return templates, nil
}

// DeleteShiftTemplate implements schedule.ScheduleRepository.
func (s *scheduleRepositoryImpl) DeleteShiftTemplate(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, s.db)

	query := `DELETE FROM shift_templates WHERE id = $1 AND company_id = $2`

	tag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return schedule.ErrShiftTemplateInUse
		}
		return fmt.Errorf("failed to delete shift template %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrShiftTemplateNotFound
	}
	return nil
}

// UpsertAssignment implements schedule.ScheduleRepository.
func (s *scheduleRepositoryImpl) UpsertAssignment(ctx context.Context, a schedule.Assignment) (schedule.Assignment, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		INSERT INTO schedule_assignments (company_id, employee_id, schedule_date, shift_template_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (employee_id, schedule_date)
		DO UPDATE SET shift_template_id = EXCLUDED.shift_template_id, updated_at = NOW()
		RETURNING id, company_id, employee_id, schedule_date, shift_template_id, created_at, updated_at
	`

	var saved schedule.Assignment
	err := q.QueryRow(ctx, query, a.CompanyID, a.EmployeeID, a.ScheduleDate, a.ShiftTemplateID).Scan(
		&saved.ID, &saved.CompanyID, &saved.EmployeeID, &saved.ScheduleDate, &saved.ShiftTemplateID,
		&saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		return schedule.Assignment{}, fmt.Errorf("failed to upsert schedule assignment: %w", err)
	}
	return saved, nil
}

// GetAssignmentsByPeriod implements schedule.ScheduleRepository.
func (s *scheduleRepositoryImpl) GetAssignmentsByPeriod(ctx context.Context, companyID string, employeeID string, start, end time.Time) ([]schedule.Assignment, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT sa.id, sa.company_id, sa.employee_id, sa.schedule_date, sa.shift_template_id,
			sa.created_at, sa.updated_at,
			st.code, st.start_time, st.end_time, st.is_off, st.standard_minutes
		FROM schedule_assignments sa
		LEFT JOIN shift_templates st ON st.id = sa.shift_template_id
		WHERE sa.company_id = $1 AND sa.employee_id = $2
			AND sa.schedule_date >= $3 AND sa.schedule_date <= $4
		ORDER BY sa.schedule_date
	`

	rows, err := q.Query(ctx, query, companyID, employeeID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []schedule.Assignment
	for rows.Next() {
		var a schedule.Assignment
		if err := rows.Scan(
			&a.ID, &a.CompanyID, &a.EmployeeID, &a.ScheduleDate, &a.ShiftTemplateID,
			&a.CreatedAt, &a.UpdatedAt,
			&a.ShiftCode, &a.ShiftStartTime, &a.ShiftEndTime, &a.ShiftIsOff, &a.ShiftStandardMinutes,
		); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return assignments, nil
}

// CreateHoliday implements schedule.ScheduleRepository.
func (s *scheduleRepositoryImpl) CreateHoliday(ctx context.Context, h schedule.Holiday) (schedule.Holiday, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		INSERT INTO holidays (company_id, holiday_date, name)
		VALUES ($1, $2, $3)
		RETURNING id, company_id, holiday_date, name
	`

	var created schedule.Holiday
	err := q.QueryRow(ctx, query, h.CompanyID, h.Date, h.Name).Scan(&created.ID, &created.CompanyID, &created.Date, &created.Name)
	if err != nil {
		return schedule.Holiday{}, fmt.Errorf("failed to create holiday: %w", err)
	}
	return created, nil
}

// GetHolidaysByPeriod implements schedule.ScheduleRepository.
func (s *scheduleRepositoryImpl) GetHolidaysByPeriod(ctx context.Context, companyID string, start, end time.Time) ([]schedule.Holiday, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, company_id, holiday_date, name
		FROM holidays
		WHERE company_id = $1 AND holiday_date >= $2 AND holiday_date <= $3
		ORDER BY holiday_date
	`

	rows, err := q.Query(ctx, query, companyID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holidays []schedule.Holiday
	for rows.Next() {
		var h schedule.Holiday
		if err := rows.Scan(&h.ID, &h.CompanyID, &h.Date, &h.Name); err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return holidays, nil
}
