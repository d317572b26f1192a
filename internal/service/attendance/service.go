package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/attendance"
	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/employee"
	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/leave"
	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/schedule"
)

type AttendanceService struct {
	attendanceRepo attendance.AttendanceRepository
	scheduleRepo   schedule.ScheduleRepository
	leaveRepo      leave.LeaveRepository
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	scheduleRepo schedule.ScheduleRepository,
	leaveRepo leave.LeaveRepository,
) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		scheduleRepo:   scheduleRepo,
		leaveRepo:      leaveRepo,
	}
}

// Punch records one clock event into the employee's session for the
// day, filling the first free slot in order. The work date is the
// punch's calendar date; overnight spills are folded back later by
// RepairMidnightSessions.
func (s *AttendanceService) Punch(ctx context.Context, companyID, employeeID string, at time.Time, meta *string) (attendance.ClockSession, error) {
	workDate := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())

	session, err := s.attendanceRepo.GetByEmployeeDate(ctx, companyID, employeeID, workDate)
	if err != nil {
		if !errors.Is(err, attendance.ErrSessionNotFound) {
			return attendance.ClockSession{}, err
		}
		created, err := s.attendanceRepo.Create(ctx, attendance.ClockSession{
			CompanyID:    companyID,
			EmployeeID:   employeeID,
			WorkDate:     workDate,
			ClockIn1:     &at,
			ClockIn1Meta: meta,
			Status:       attendance.SessionOpen,
		})
		if err != nil {
			return attendance.ClockSession{}, fmt.Errorf("create clock session: %w", err)
		}
		return created, nil
	}

	if err := placePunch(&session, at, meta); err != nil {
		return attendance.ClockSession{}, err
	}
	session.WorkedMinutes = SessionWorkedMinutes(session)
	if session.ClockOut2 != nil {
		session.Status = attendance.SessionCompleted
	}
	if err := s.attendanceRepo.Update(ctx, session); err != nil {
		return attendance.ClockSession{}, fmt.Errorf("update clock session: %w", err)
	}
	return session, nil
}

func placePunch(s *attendance.ClockSession, at time.Time, meta *string) error {
	slots := []struct {
		t *time.Time
		m *string
	}{
		{s.ClockIn1, s.ClockIn1Meta},
		{s.ClockOut1, s.ClockOut1Meta},
		{s.ClockIn2, s.ClockIn2Meta},
		{s.ClockOut2, s.ClockOut2Meta},
	}

	var last *time.Time
	for i, slot := range slots {
		if slot.t != nil {
			last = slot.t
			continue
		}
		if last != nil && at.Before(*last) {
			return attendance.ErrPunchOutOfOrder
		}
		switch i {
		case 0:
			s.ClockIn1, s.ClockIn1Meta = &at, meta
		case 1:
			s.ClockOut1, s.ClockOut1Meta = &at, meta
		case 2:
			s.ClockIn2, s.ClockIn2Meta = &at, meta
		case 3:
			s.ClockOut2, s.ClockOut2Meta = &at, meta
		}
		return nil
	}
	return attendance.ErrSessionFull
}

// PeriodAggregates assembles the attendance facts for one employee over
// [start, end].
func (s *AttendanceService) PeriodAggregates(ctx context.Context, emp employee.Employee, start, end time.Time) (Aggregates, error) {
	assignments, err := s.scheduleRepo.GetAssignmentsByPeriod(ctx, emp.CompanyID, emp.ID, start, end)
	if err != nil {
		return Aggregates{}, fmt.Errorf("load schedule assignments: %w", err)
	}
	sessions, err := s.attendanceRepo.ListByEmployeePeriod(ctx, emp.CompanyID, emp.ID, start, end)
	if err != nil {
		return Aggregates{}, fmt.Errorf("load clock sessions: %w", err)
	}
	holidays, err := s.scheduleRepo.GetHolidaysByPeriod(ctx, emp.CompanyID, start, end)
	if err != nil {
		return Aggregates{}, fmt.Errorf("load holidays: %w", err)
	}
	leaves, err := s.leaveRepo.ListApprovedByPeriod(ctx, emp.CompanyID, emp.ID, start, end)
	if err != nil {
		return Aggregates{}, fmt.Errorf("load approved leave: %w", err)
	}

	return AggregatePeriod(PeriodInput{
		Assignments: assignments,
		Sessions:    sessions,
		Holidays:    holidays,
		Leaves:      leaves,
		PartTime:    emp.WorkType == employee.WorkPartTime,
	}), nil
}
