package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/attendance"
)

type fakeAttendanceRepo struct {
	attendance.AttendanceRepository
	sessions map[string]attendance.ClockSession
}

func newFakeAttendanceRepo(sessions ...attendance.ClockSession) *fakeAttendanceRepo {
	f := &fakeAttendanceRepo{sessions: make(map[string]attendance.ClockSession)}
	for _, s := range sessions {
		f.sessions[s.ID] = s
	}
	return f
}

func (f *fakeAttendanceRepo) GetByEmployeeDate(_ context.Context, companyID, employeeID string, workDate time.Time) (attendance.ClockSession, error) {
	for _, s := range f.sessions {
		if s.CompanyID == companyID && s.EmployeeID == employeeID && s.WorkDate.Equal(workDate) {
			return s, nil
		}
	}
	return attendance.ClockSession{}, attendance.ErrSessionNotFound
}

func (f *fakeAttendanceRepo) Update(_ context.Context, s attendance.ClockSession) error {
	f.sessions[s.ID] = s
	return nil
}

func (f *fakeAttendanceRepo) Delete(_ context.Context, id string, _ string) error {
	delete(f.sessions, id)
	return nil
}

func (f *fakeAttendanceRepo) ListStrayFirstIns(_ context.Context, companyID string, cutoff time.Duration) ([]attendance.ClockSession, error) {
	var out []attendance.ClockSession
	for _, s := range f.sessions {
		if s.CompanyID != companyID || s.ClockIn1 == nil || s.HasDataBeyondFirstIn() {
			continue
		}
		minute := s.ClockIn1.Hour()*60 + s.ClockIn1.Minute()
		if minute < int(cutoff.Minutes()) {
			out = append(out, s)
		}
	}
	return out, nil
}

func TestRepairMidnightSessions(t *testing.T) {
	meta := `{"photo":"out.jpg"}`
	open := attendance.ClockSession{
		ID:         "s-prev",
		CompanyID:  "co-1",
		EmployeeID: "emp-1",
		WorkDate:   day(3),
		ClockIn1:   tm(3, 21, 0),
		Status:     attendance.SessionOpen,
	}
	stray := attendance.ClockSession{
		ID:           "s-stray",
		CompanyID:    "co-1",
		EmployeeID:   "emp-1",
		WorkDate:     day(4),
		ClockIn1:     tm(4, 0, 45),
		ClockIn1Meta: &meta,
		Status:       attendance.SessionOpen,
	}
	repo := newFakeAttendanceRepo(open, stray)
	svc := NewAttendanceService(repo, nil, nil)

	repaired, err := svc.RepairMidnightSessions(context.Background(), "co-1")
	require.NoError(t, err)
	assert.Equal(t, 1, repaired)

	closed := repo.sessions["s-prev"]
	require.NotNil(t, closed.ClockOut2)
	assert.Equal(t, *tm(4, 0, 45), *closed.ClockOut2)
	require.NotNil(t, closed.ClockOut2Meta)
	assert.Equal(t, meta, *closed.ClockOut2Meta)
	assert.Equal(t, attendance.SessionCompleted, closed.Status)
	// 21:00 on the 3rd through 00:45 on the 4th
	assert.Equal(t, 225, closed.WorkedMinutes)

	_, exists := repo.sessions["s-stray"]
	assert.False(t, exists, "stray row should be deleted")
}

func TestRepairMidnightSessionsIdempotent(t *testing.T) {
	open := attendance.ClockSession{
		ID:         "s-prev",
		CompanyID:  "co-1",
		EmployeeID: "emp-1",
		WorkDate:   day(3),
		ClockIn1:   tm(3, 21, 0),
		Status:     attendance.SessionOpen,
	}
	stray := attendance.ClockSession{
		ID:         "s-stray",
		CompanyID:  "co-1",
		EmployeeID: "emp-1",
		WorkDate:   day(4),
		ClockIn1:   tm(4, 0, 45),
		Status:     attendance.SessionOpen,
	}
	repo := newFakeAttendanceRepo(open, stray)
	svc := NewAttendanceService(repo, nil, nil)

	first, err := svc.RepairMidnightSessions(context.Background(), "co-1")
	require.NoError(t, err)
	assert.Equal(t, 1, first)

	second, err := svc.RepairMidnightSessions(context.Background(), "co-1")
	require.NoError(t, err)
	assert.Equal(t, 0, second)
}

func TestRepairSkipsLateMorningPunch(t *testing.T) {
	// 06:30 is a normal early start, not an overnight spill
	early := attendance.ClockSession{
		ID:         "s-early",
		CompanyID:  "co-1",
		EmployeeID: "emp-1",
		WorkDate:   day(4),
		ClockIn1:   tm(4, 6, 30),
		Status:     attendance.SessionOpen,
	}
	repo := newFakeAttendanceRepo(early)
	svc := NewAttendanceService(repo, nil, nil)

	repaired, err := svc.RepairMidnightSessions(context.Background(), "co-1")
	require.NoError(t, err)
	assert.Equal(t, 0, repaired)
}

func TestRepairSkipsWhenNoPriorOpenSession(t *testing.T) {
	stray := attendance.ClockSession{
		ID:         "s-stray",
		CompanyID:  "co-1",
		EmployeeID: "emp-1",
		WorkDate:   day(4),
		ClockIn1:   tm(4, 0, 45),
		Status:     attendance.SessionOpen,
	}
	repo := newFakeAttendanceRepo(stray)
	svc := NewAttendanceService(repo, nil, nil)

	repaired, err := svc.RepairMidnightSessions(context.Background(), "co-1")
	require.NoError(t, err)
	assert.Equal(t, 0, repaired)

	_, exists := repo.sessions["s-stray"]
	assert.True(t, exists, "stray without a prior open session stays untouched")
}
