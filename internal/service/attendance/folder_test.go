package attendance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/attendance"
	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/leave"
	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/schedule"
)

func decimalFromStr(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

func tm(day, hour, min int) *time.Time {
	t := time.Date(2025, 3, day, hour, min, 0, 0, time.UTC)
	return &t
}

func day(d int) time.Time {
	return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
}

func workingAssignment(d int, start, end string) schedule.Assignment {
	tplID := "tpl-1"
	off := false
	return schedule.Assignment{
		ID:              "a-" + start,
		EmployeeID:      "emp-1",
		ScheduleDate:    day(d),
		ShiftTemplateID: &tplID,
		ShiftStartTime:  &start,
		ShiftEndTime:    &end,
		ShiftIsOff:      &off,
	}
}

func TestSessionWorkedMinutesTwoPairs(t *testing.T) {
	s := attendance.ClockSession{
		ClockIn1:  tm(3, 9, 0),
		ClockOut1: tm(3, 13, 0),
		ClockIn2:  tm(3, 14, 0),
		ClockOut2: tm(3, 18, 0),
	}
	assert.Equal(t, 480, SessionWorkedMinutes(s))
}

func TestSessionWorkedMinutesSingleSpan(t *testing.T) {
	s := attendance.ClockSession{
		ClockIn1:  tm(3, 9, 0),
		ClockOut2: tm(3, 17, 30),
	}
	assert.Equal(t, 510, SessionWorkedMinutes(s))
}

func TestSessionWorkedMinutesCrossesMidnight(t *testing.T) {
	// 21:00 in, 00:45 out recorded on the same work date
	s := attendance.ClockSession{
		ClockIn1:  tm(3, 21, 0),
		ClockOut2: tm(3, 0, 45),
	}
	assert.Equal(t, 225, SessionWorkedMinutes(s))
}

func TestSessionWorkedMinutesIncompletePair(t *testing.T) {
	s := attendance.ClockSession{ClockIn1: tm(3, 9, 0)}
	assert.Equal(t, 0, SessionWorkedMinutes(s))
}

func TestCountedOTThresholdAndSteps(t *testing.T) {
	assert.Equal(t, 0, countedOT(59))
	assert.Equal(t, 60, countedOT(60))
	assert.Equal(t, 60, countedOT(89))
	assert.Equal(t, 90, countedOT(90))
	assert.Equal(t, 120, countedOT(149))
}

func TestAggregatePeriodOvertime(t *testing.T) {
	// 7.5h scheduled, 9h40m worked: raw OT 130 counts as 120
	agg := AggregatePeriod(PeriodInput{
		Assignments: []schedule.Assignment{workingAssignment(3, "09:00", "18:00")},
		Sessions: []attendance.ClockSession{{
			EmployeeID: "emp-1",
			WorkDate:   day(3),
			ClockIn1:   tm(3, 9, 0),
			ClockOut2:  tm(3, 18, 40),
		}},
	})
	assert.Equal(t, 120, agg.OTMinutes)
	assert.True(t, agg.OTHours.Equal(decimalFromStr("2")), "ot hours %s", agg.OTHours)
	assert.Equal(t, 0, agg.AbsentDays)
}

func TestAggregatePeriodAbsentDay(t *testing.T) {
	agg := AggregatePeriod(PeriodInput{
		Assignments: []schedule.Assignment{
			workingAssignment(3, "09:00", "18:00"),
			workingAssignment(4, "09:00", "18:00"),
		},
		Sessions: []attendance.ClockSession{{
			EmployeeID: "emp-1",
			WorkDate:   day(3),
			ClockIn1:   tm(3, 9, 0),
			ClockOut2:  tm(3, 16, 30),
		}},
	})
	assert.Equal(t, 1, agg.AbsentDays)
	assert.Equal(t, 2, agg.ScheduledDays)
	assert.Equal(t, 1, agg.WorkedDays)
}

func TestAggregatePeriodLeaveCoversAbsence(t *testing.T) {
	agg := AggregatePeriod(PeriodInput{
		Assignments: []schedule.Assignment{workingAssignment(4, "09:00", "18:00")},
		Leaves: []leave.LeaveRequest{{
			StartDate: day(4),
			EndDate:   day(5),
		}},
	})
	assert.Equal(t, 0, agg.AbsentDays)
}

func TestAggregatePeriodHolidayWorked(t *testing.T) {
	agg := AggregatePeriod(PeriodInput{
		Assignments: []schedule.Assignment{workingAssignment(3, "09:00", "18:00")},
		Sessions: []attendance.ClockSession{{
			WorkDate:  day(3),
			ClockIn1:  tm(3, 9, 0),
			ClockOut2: tm(3, 16, 30),
		}},
		Holidays: []schedule.Holiday{{Date: day(3), Name: "Test Holiday"}},
	})
	assert.Equal(t, 1, agg.PHDaysWorked)
}

func TestAggregatePeriodHolidayNotWorkedNotAbsent(t *testing.T) {
	agg := AggregatePeriod(PeriodInput{
		Assignments: []schedule.Assignment{workingAssignment(3, "09:00", "18:00")},
		Holidays:    []schedule.Holiday{{Date: day(3), Name: "Test Holiday"}},
	})
	assert.Equal(t, 0, agg.AbsentDays)
	assert.Equal(t, 0, agg.PHDaysWorked)
}

func TestAggregatePeriodLateWithGrace(t *testing.T) {
	onTime := AggregatePeriod(PeriodInput{
		Assignments: []schedule.Assignment{workingAssignment(3, "09:00", "18:00")},
		Sessions: []attendance.ClockSession{{
			WorkDate:  day(3),
			ClockIn1:  tm(3, 9, 15),
			ClockOut2: tm(3, 17, 0),
		}},
	})
	assert.Equal(t, 0, onTime.LateDays)

	late := AggregatePeriod(PeriodInput{
		Assignments: []schedule.Assignment{workingAssignment(3, "09:00", "18:00")},
		Sessions: []attendance.ClockSession{{
			WorkDate:  day(3),
			ClockIn1:  tm(3, 9, 16),
			ClockOut2: tm(3, 17, 0),
		}},
	})
	assert.Equal(t, 1, late.LateDays)
}

func TestAggregatePeriodShortHours(t *testing.T) {
	// 7.5h scheduled, 6h30m worked: one hour short
	agg := AggregatePeriod(PeriodInput{
		Assignments: []schedule.Assignment{workingAssignment(3, "09:00", "18:00")},
		Sessions: []attendance.ClockSession{{
			WorkDate:  day(3),
			ClockIn1:  tm(3, 9, 0),
			ClockOut2: tm(3, 15, 30),
		}},
	})
	assert.Equal(t, 60, agg.ShortMinutes)
	assert.True(t, agg.ShortHours.Equal(decimalFromStr("1")))
}

func TestAggregatePeriodShortGrace(t *testing.T) {
	// 15 minutes short stays inside the grace
	agg := AggregatePeriod(PeriodInput{
		Assignments: []schedule.Assignment{workingAssignment(3, "09:00", "18:00")},
		Sessions: []attendance.ClockSession{{
			WorkDate:  day(3),
			ClockIn1:  tm(3, 9, 0),
			ClockOut2: tm(3, 16, 15),
		}},
	})
	assert.Equal(t, 0, agg.ShortMinutes)
}

func TestAggregatePeriodPartTimeSkipsAbsencesAndShortfall(t *testing.T) {
	agg := AggregatePeriod(PeriodInput{
		Assignments: []schedule.Assignment{
			workingAssignment(3, "09:00", "18:00"),
			workingAssignment(4, "09:00", "18:00"),
		},
		Sessions: []attendance.ClockSession{{
			WorkDate:  day(3),
			ClockIn1:  tm(3, 9, 0),
			ClockOut2: tm(3, 13, 0),
		}},
		PartTime: true,
	})
	assert.Equal(t, 0, agg.AbsentDays)
	assert.Equal(t, 0, agg.ShortMinutes)
	assert.Equal(t, 240, agg.WorkedMinutes)
}

func TestAggregatePeriodOffDaysIgnored(t *testing.T) {
	off := true
	tplID := "tpl-off"
	agg := AggregatePeriod(PeriodInput{
		Assignments: []schedule.Assignment{{
			ScheduleDate:    day(3),
			ShiftTemplateID: &tplID,
			ShiftIsOff:      &off,
		}},
	})
	assert.Equal(t, 0, agg.ScheduledDays)
	assert.Equal(t, 0, agg.AbsentDays)
}
