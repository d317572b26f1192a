package period

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/payroll"
)

var kl = mustLoadKL()

func mustLoadKL() *time.Location {
	loc, err := time.LoadLocation("Asia/Kuala_Lumpur")
	if err != nil {
		panic(err)
	}
	return loc
}

func calendarConfig() payroll.PeriodConfig {
	return payroll.PeriodConfig{
		PeriodType:             payroll.PeriodCalendarMonth,
		PeriodStartDay:         1,
		PeriodEndDay:           31,
		PaymentDay:             28,
		PaymentMonthOffset:     0,
		CommissionPeriodOffset: 1,
		WorkDaysPerMonth:       26,
	}
}

func TestResolveCalendarMonth(t *testing.T) {
	r := NewResolver(nil, kl)

	res, err := r.ResolveWithConfig(calendarConfig(), 3, 2025)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, kl), res.Period.Start)
	assert.Equal(t, time.Date(2025, 3, 31, 0, 0, 0, 0, kl), res.Period.End)
	assert.Equal(t, "2025-03", res.Period.Label)
	assert.Equal(t, time.Date(2025, 3, 28, 0, 0, 0, 0, kl), res.PaymentDue)
}

func TestResolveFebruaryClampsEnd(t *testing.T) {
	r := NewResolver(nil, kl)

	res, err := r.ResolveWithConfig(calendarConfig(), 2, 2025)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, kl), res.Period.End)

	leap, err := r.ResolveWithConfig(calendarConfig(), 2, 2024)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, kl), leap.Period.End)
}

func TestResolveMidMonthCrossesBoundary(t *testing.T) {
	cfg := calendarConfig()
	cfg.PeriodType = payroll.PeriodMidMonth
	cfg.PeriodStartDay = 16
	cfg.PeriodEndDay = 15

	r := NewResolver(nil, kl)
	res, err := r.ResolveWithConfig(cfg, 3, 2025)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 2, 16, 0, 0, 0, 0, kl), res.Period.Start)
	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, kl), res.Period.End)
}

func TestResolveMidMonthJanuaryStartsPriorYear(t *testing.T) {
	cfg := calendarConfig()
	cfg.PeriodType = payroll.PeriodMidMonth
	cfg.PeriodStartDay = 16
	cfg.PeriodEndDay = 15

	r := NewResolver(nil, kl)
	res, err := r.ResolveWithConfig(cfg, 1, 2025)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 12, 16, 0, 0, 0, 0, kl), res.Period.Start)
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, kl), res.Period.End)
}

func TestResolvePaymentMonthOffset(t *testing.T) {
	cfg := calendarConfig()
	cfg.PaymentDay = 5
	cfg.PaymentMonthOffset = 1

	r := NewResolver(nil, kl)

	res, err := r.ResolveWithConfig(cfg, 12, 2025)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, kl), res.PaymentDue)
}

func TestResolveCommissionPeriodShiftsBack(t *testing.T) {
	r := NewResolver(nil, kl)

	res, err := r.ResolveWithConfig(calendarConfig(), 1, 2025)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, kl), res.CommissionPeriod.Start)
	assert.Equal(t, time.Date(2024, 12, 31, 0, 0, 0, 0, kl), res.CommissionPeriod.End)
}

func TestResolveRejectsBadMonth(t *testing.T) {
	r := NewResolver(nil, kl)

	_, err := r.Resolve(context.Background(), "company-1", nil, 13, 2025)
	assert.ErrorIs(t, err, payroll.ErrInvalidPeriod)

	_, err = r.Resolve(context.Background(), "company-1", nil, 0, 2025)
	assert.ErrorIs(t, err, payroll.ErrInvalidPeriod)
}
