package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/attendance"
)

// StrayCutoff bounds how late a lone next-day first-in can be and still
// be treated as the missing clock-out of the previous day's shift.
const StrayCutoff = 90 * time.Minute // 01:30

// RepairMidnightSessions folds stray early-morning first-ins back into
// the open session they escaped from. An overnight shift punched out
// after midnight lands as a lone ClockIn1 on the next calendar day; the
// repair moves that punch, metadata included, to the previous day's
// final clock-out, recomputes the span and removes the stray row.
//
// Running it twice is a no-op: a repaired session is no longer open and
// a consumed stray row no longer exists.
func (s *AttendanceService) RepairMidnightSessions(ctx context.Context, companyID string) (int, error) {
	strays, err := s.attendanceRepo.ListStrayFirstIns(ctx, companyID, StrayCutoff)
	if err != nil {
		return 0, fmt.Errorf("list stray first-ins: %w", err)
	}

	repaired := 0
	for _, stray := range strays {
		prevDate := stray.WorkDate.AddDate(0, 0, -1)
		prev, err := s.attendanceRepo.GetByEmployeeDate(ctx, companyID, stray.EmployeeID, prevDate)
		if err != nil {
			if errors.Is(err, attendance.ErrSessionNotFound) {
				continue
			}
			return repaired, err
		}
		if !prev.IsOpen() {
			continue
		}

		prev.ClockOut2 = stray.ClockIn1
		prev.ClockOut2Meta = stray.ClockIn1Meta
		prev.Status = attendance.SessionCompleted
		prev.WorkedMinutes = SessionWorkedMinutes(prev)
		if err := s.attendanceRepo.Update(ctx, prev); err != nil {
			return repaired, fmt.Errorf("close session %s: %w", prev.ID, err)
		}

		slog.Info("repaired midnight-crossing session",
			"employee_id", stray.EmployeeID,
			"work_date", prevDate.Format("2006-01-02"),
			"clock_out", prev.ClockOut2,
		)

		if stray.HasDataBeyondFirstIn() {
			stray.ClockIn1 = nil
			stray.ClockIn1Meta = nil
			stray.WorkedMinutes = SessionWorkedMinutes(stray)
			if err := s.attendanceRepo.Update(ctx, stray); err != nil {
				return repaired, fmt.Errorf("blank stray session %s: %w", stray.ID, err)
			}
		} else {
			if err := s.attendanceRepo.Delete(ctx, stray.ID, companyID); err != nil {
				return repaired, fmt.Errorf("delete stray session %s: %w", stray.ID, err)
			}
		}

		repaired++
	}
	return repaired, nil
}
