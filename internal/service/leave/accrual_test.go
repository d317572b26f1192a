package leave

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/leave"
)

func dec(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func defaultSettings() leave.Settings {
	return leave.Settings{
		CountJoinMonth:    false,
		ProrationRounding: leave.RoundNearHalf,
	}
}

func TestProratedEntitlementFullYear(t *testing.T) {
	got := ProratedEntitlement(dec("14"), date(2023, 5, 10), 2025, defaultSettings())
	assert.True(t, got.Equal(dec("14")), "got %s", got)
}

func TestProratedEntitlementFutureJoiner(t *testing.T) {
	got := ProratedEntitlement(dec("14"), date(2026, 1, 5), 2025, defaultSettings())
	assert.True(t, got.IsZero())
}

func TestProratedEntitlementLateJoinExcludesJoinMonth(t *testing.T) {
	// joined 20 June: July through December count, 14 x 5/12 = 5.83
	// rounded to the nearest half day
	got := ProratedEntitlement(dec("14"), date(2025, 6, 20), 2025, defaultSettings())
	assert.True(t, got.Equal(dec("6")), "got %s", got)
}

func TestProratedEntitlementEarlyJoinCountsJoinMonth(t *testing.T) {
	// joined 10 June: June through December, 14 x 7/12 = 8.17 -> 8
	got := ProratedEntitlement(dec("14"), date(2025, 6, 10), 2025, defaultSettings())
	assert.True(t, got.Equal(dec("8")), "got %s", got)
}

func TestProratedEntitlementCountJoinMonthSetting(t *testing.T) {
	s := defaultSettings()
	s.CountJoinMonth = true
	// late join still counts the join month when the tenant says so
	got := ProratedEntitlement(dec("14"), date(2025, 6, 20), 2025, s)
	assert.True(t, got.Equal(dec("8")), "got %s", got)
}

func TestProratedEntitlementRoundingModes(t *testing.T) {
	s := defaultSettings()
	join := date(2025, 6, 20) // 5 months, 14 x 5/12 = 5.8333

	s.ProrationRounding = leave.RoundUp
	assert.True(t, ProratedEntitlement(dec("14"), join, 2025, s).Equal(dec("6")))

	s.ProrationRounding = leave.RoundDown
	assert.True(t, ProratedEntitlement(dec("14"), join, 2025, s).Equal(dec("5")))

	s.ProrationRounding = leave.RoundNearHalf
	assert.True(t, ProratedEntitlement(dec("14"), join, 2025, s).Equal(dec("6")))
}

func TestProratedEntitlementDecemberLateJoin(t *testing.T) {
	got := ProratedEntitlement(dec("14"), date(2025, 12, 20), 2025, defaultSettings())
	assert.True(t, got.IsZero())
}

func TestCarryForwardDisabled(t *testing.T) {
	s := defaultSettings()
	prev := leave.LeaveBalance{EntitledDays: dec("14"), UsedDays: dec("4")}
	assert.True(t, CarryForward(prev, s).IsZero())
}

func TestCarryForwardBounded(t *testing.T) {
	s := defaultSettings()
	s.CarryForwardEnabled = true
	s.MaxCarryForwardDays = dec("5")

	prev := leave.LeaveBalance{EntitledDays: dec("14"), UsedDays: dec("4")}
	assert.True(t, CarryForward(prev, s).Equal(dec("5")))

	prev.UsedDays = dec("11")
	assert.True(t, CarryForward(prev, s).Equal(dec("3")))
}

func TestCarryForwardNeverNegative(t *testing.T) {
	s := defaultSettings()
	s.CarryForwardEnabled = true
	s.MaxCarryForwardDays = dec("5")

	prev := leave.LeaveBalance{EntitledDays: dec("14"), UsedDays: dec("16")}
	assert.True(t, CarryForward(prev, s).IsZero())
}

func boolPtr(b bool) *bool { return &b }

func TestUnpaidLeaveDaysOnlyUnpaid(t *testing.T) {
	requests := []leave.LeaveRequest{
		{StartDate: date(2025, 3, 3), EndDate: date(2025, 3, 4), TotalDays: dec("2"), IsPaid: boolPtr(false)},
		{StartDate: date(2025, 3, 10), EndDate: date(2025, 3, 12), TotalDays: dec("3"), IsPaid: boolPtr(true)},
	}
	got := UnpaidLeaveDays(requests, date(2025, 3, 1), date(2025, 3, 31))
	assert.True(t, got.Equal(dec("2")), "got %s", got)
}

func TestUnpaidLeaveDaysClippedToPeriod(t *testing.T) {
	requests := []leave.LeaveRequest{
		{StartDate: date(2025, 2, 27), EndDate: date(2025, 3, 2), TotalDays: dec("4"), IsPaid: boolPtr(false)},
	}
	got := UnpaidLeaveDays(requests, date(2025, 3, 1), date(2025, 3, 31))
	assert.True(t, got.Equal(dec("2")), "got %s", got)
}

func TestUnpaidLeaveDaysHalfDayRequest(t *testing.T) {
	requests := []leave.LeaveRequest{
		{StartDate: date(2025, 3, 5), EndDate: date(2025, 3, 5), TotalDays: dec("0.5"), IsPaid: boolPtr(false)},
	}
	got := UnpaidLeaveDays(requests, date(2025, 3, 1), date(2025, 3, 31))
	assert.True(t, got.Equal(dec("0.5")), "got %s", got)
}
