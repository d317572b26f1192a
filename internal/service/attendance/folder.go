package attendance

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/attendance"
	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/leave"
	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/schedule"
)

const (
	// Raw overtime below an hour is noise, not overtime.
	minOTMinutes = 60
	// Counted overtime is paid in half-hour steps.
	otStepMinutes = 30
	// Grace applied to both late arrival and short-hours shortfall.
	graceMinutes = 15
)

// Aggregates are the attendance facts for one employee over one payroll
// period. Everything payroll needs from raw punches is here.
type Aggregates struct {
	ScheduledDays int
	WorkedDays    int
	WorkedMinutes int
	WorkedHours   decimal.Decimal

	OTMinutes int
	OTHours   decimal.Decimal

	PHDaysWorked int
	AbsentDays   int
	LateDays     int

	ShortMinutes int
	ShortHours   decimal.Decimal
}

// SessionWorkedMinutes totals the in/out pairs of one session. A pair
// whose out lands before its in crossed midnight; the out is pushed to
// the next day before measuring. Incomplete pairs contribute nothing.
func SessionWorkedMinutes(s attendance.ClockSession) int {
	total := 0
	total += pairMinutes(s.ClockIn1, s.ClockOut1)
	total += pairMinutes(s.ClockIn2, s.ClockOut2)
	if s.ClockOut1 == nil && s.ClockIn2 == nil {
		// single-span session punched as in1/out2
		total += pairMinutes(s.ClockIn1, s.ClockOut2)
	}
	return total
}

func pairMinutes(in, out *time.Time) int {
	if in == nil || out == nil {
		return 0
	}
	o := *out
	if o.Before(*in) {
		o = o.Add(24 * time.Hour)
	}
	return int(o.Sub(*in).Minutes())
}

// PeriodInput is everything AggregatePeriod folds over.
type PeriodInput struct {
	Assignments []schedule.Assignment
	Sessions    []attendance.ClockSession
	Holidays    []schedule.Holiday
	Leaves      []leave.LeaveRequest
	PartTime    bool
}

// AggregatePeriod folds one period of punches, schedule and leave into
// payroll-ready attendance facts.
func AggregatePeriod(in PeriodInput) Aggregates {
	sessionsByDate := make(map[string]attendance.ClockSession, len(in.Sessions))
	for _, s := range in.Sessions {
		sessionsByDate[dateKey(s.WorkDate)] = s
	}
	holidayDates := make(map[string]bool, len(in.Holidays))
	for _, h := range in.Holidays {
		holidayDates[dateKey(h.Date)] = true
	}

	var agg Aggregates
	for _, a := range in.Assignments {
		if !a.IsWorkingDay() {
			continue
		}
		agg.ScheduledDays++
		key := dateKey(a.ScheduleDate)
		s, punched := sessionsByDate[key]

		worked := 0
		if punched {
			worked = SessionWorkedMinutes(s)
		}
		if worked == 0 {
			if !in.PartTime && !onLeave(in.Leaves, a.ScheduleDate) && !holidayDates[key] {
				agg.AbsentDays++
			}
			continue
		}

		agg.WorkedDays++
		agg.WorkedMinutes += worked
		if holidayDates[key] {
			agg.PHDaysWorked++
		}

		scheduled := a.ScheduledMinutes()
		if worked > scheduled {
			agg.OTMinutes += countedOT(worked - scheduled)
		} else if !in.PartTime && scheduled-worked > graceMinutes {
			agg.ShortMinutes += scheduled - worked
		}
		if !in.PartTime && isLate(a, s) {
			agg.LateDays++
		}
	}

	sixty := decimal.NewFromInt(60)
	agg.WorkedHours = decimal.NewFromInt(int64(agg.WorkedMinutes)).Div(sixty).Round(2)
	agg.OTHours = decimal.NewFromInt(int64(agg.OTMinutes)).Div(sixty).Round(2)
	agg.ShortHours = decimal.NewFromInt(int64(agg.ShortMinutes)).Div(sixty).Round(2)
	return agg
}

// countedOT drops raw overtime under an hour and floors the rest to
// half-hour steps.
func countedOT(raw int) int {
	if raw < minOTMinutes {
		return 0
	}
	return raw - raw%otStepMinutes
}

func isLate(a schedule.Assignment, s attendance.ClockSession) bool {
	if s.ClockIn1 == nil || a.ShiftStartTime == nil {
		return false
	}
	startMin, ok := parseClock(*a.ShiftStartTime)
	if !ok {
		return false
	}
	inMin := s.ClockIn1.Hour()*60 + s.ClockIn1.Minute()
	return inMin > startMin+graceMinutes
}

func parseClock(v string) (int, bool) {
	parts := strings.Split(v, ":")
	if len(parts) < 2 {
		return 0, false
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

func onLeave(leaves []leave.LeaveRequest, date time.Time) bool {
	for _, l := range leaves {
		if !date.Before(l.StartDate) && !date.After(l.EndDate) {
			return true
		}
	}
	return false
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
