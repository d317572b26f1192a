package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/attendance"
	"github.com/contactevin2u/AAHRMS-sub003/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const clockSessionColumns = `
	id, company_id, employee_id, work_date,
	clock_in_1, clock_out_1, clock_in_2, clock_out_2,
	clock_in_1_meta, clock_out_1_meta, clock_in_2_meta, clock_out_2_meta,
	status, worked_minutes, created_at, updated_at`

func scanClockSession(row pgx.Row) (attendance.ClockSession, error) {
	var cs attendance.ClockSession
	err := row.Scan(
		&cs.ID, &cs.CompanyID, &cs.EmployeeID, &cs.WorkDate,
		&cs.ClockIn1, &cs.ClockOut1, &cs.ClockIn2, &cs.ClockOut2,
		&cs.ClockIn1Meta, &cs.ClockOut1Meta, &cs.ClockIn2Meta, &cs.ClockOut2Meta,
		&cs.Status, &cs.WorkedMinutes, &cs.CreatedAt, &cs.UpdatedAt,
	)
	return cs, err
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) Create(ctx context.Context, s attendance.ClockSession) (attendance.ClockSession, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO clock_sessions (
			company_id, employee_id, work_date,
			clock_in_1, clock_out_1, clock_in_2, clock_out_2,
			clock_in_1_meta, clock_out_1_meta, clock_in_2_meta, clock_out_2_meta,
			status, worked_minutes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + clockSessionColumns

	created, err := scanClockSession(q.QueryRow(ctx, query,
		s.CompanyID, s.EmployeeID, s.WorkDate,
		s.ClockIn1, s.ClockOut1, s.ClockIn2, s.ClockOut2,
		s.ClockIn1Meta, s.ClockOut1Meta, s.ClockIn2Meta, s.ClockOut2Meta,
		s.Status, s.WorkedMinutes,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.ClockSession{}, attendance.ErrSessionDateConflict
		}
		return attendance.ClockSession{}, fmt.Errorf("failed to create clock session: %w", err)
	}
	return created, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) Update(ctx context.Context, s attendance.ClockSession) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE clock_sessions SET
			clock_in_1 = $1, clock_out_1 = $2, clock_in_2 = $3, clock_out_2 = $4,
			clock_in_1_meta = $5, clock_out_1_meta = $6, clock_in_2_meta = $7, clock_out_2_meta = $8,
			status = $9, worked_minutes = $10, updated_at = NOW()
		WHERE id = $11 AND company_id = $12
	`

	tag, err := q.Exec(ctx, query,
		s.ClockIn1, s.ClockOut1, s.ClockIn2, s.ClockOut2,
		s.ClockIn1Meta, s.ClockOut1Meta, s.ClockIn2Meta, s.ClockOut2Meta,
		s.Status, s.WorkedMinutes, s.ID, s.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update clock session %s: %w", s.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrSessionNotFound
	}
	return nil
}

// Delete implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, a.db)

	query := `DELETE FROM clock_sessions WHERE id = $1 AND company_id = $2`

	tag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete clock session %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrSessionNotFound
	}
	return nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (attendance.ClockSession, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + clockSessionColumns + ` FROM clock_sessions WHERE id = $1 AND company_id = $2`

	cs, err := scanClockSession(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ClockSession{}, attendance.ErrSessionNotFound
		}
		return attendance.ClockSession{}, fmt.Errorf("failed to get clock session %s: %w", id, err)
	}
	return cs, nil
}

// GetByEmployeeDate implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) GetByEmployeeDate(ctx context.Context, companyID string, employeeID string, workDate time.Time) (attendance.ClockSession, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + clockSessionColumns + `
		FROM clock_sessions
		WHERE company_id = $1 AND employee_id = $2 AND work_date = $3`

	cs, err := scanClockSession(q.QueryRow(ctx, query, companyID, employeeID, workDate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ClockSession{}, attendance.ErrSessionNotFound
		}
		return attendance.ClockSession{}, fmt.Errorf("failed to get clock session for %s on %s: %w", employeeID, workDate.Format("2006-01-02"), err)
	}
	return cs, nil
}

// ListByEmployeePeriod implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) ListByEmployeePeriod(ctx context.Context, companyID string, employeeID string, start, end time.Time) ([]attendance.ClockSession, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + clockSessionColumns + `
		FROM clock_sessions
		WHERE company_id = $1 AND employee_id = $2 AND work_date >= $3 AND work_date <= $4
		ORDER BY work_date`

	rows, err := q.Query(ctx, query, companyID, employeeID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []attendance.ClockSession
	for rows.Next() {
		cs, err := scanClockSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, cs)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// ListStrayFirstIns implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) ListStrayFirstIns(ctx context.Context, companyID string, cutoff time.Duration) ([]attendance.ClockSession, error) {
	q := GetQuerier(ctx, a.db)

	// A stray first-in is the lone punch an overnight shift leaves on
	// the next calendar day. Comparing against the punch's own
	// time-of-day keeps the query timezone-correct: timestamps are
	// stored in the tenant's local time.
	query := `SELECT ` + clockSessionColumns + `
		FROM clock_sessions
		WHERE company_id = $1
			AND clock_in_1 IS NOT NULL
			AND clock_out_1 IS NULL AND clock_in_2 IS NULL AND clock_out_2 IS NULL
			AND (EXTRACT(HOUR FROM clock_in_1) * 60 + EXTRACT(MINUTE FROM clock_in_1)) < $2
		ORDER BY employee_id, work_date`

	rows, err := q.Query(ctx, query, companyID, int(cutoff.Minutes()))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []attendance.ClockSession
	for rows.Next() {
		cs, err := scanClockSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, cs)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}
