package period

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/payroll"
)

// Period is a closed date span in the tenant's timezone.
type Period struct {
	Start time.Time
	End   time.Time
	Label string
}

// Resolution is everything the orchestrator needs to know about one
// payroll month: the attendance span, the payment due date and the
// commission span (usually the prior month, so that sales close before
// payroll is computed).
type Resolution struct {
	Period           Period
	PaymentDue       time.Time
	CommissionPeriod Period
	WorkDaysPerMonth int
}

// Resolver turns (month, year) plus a tenant's period configuration
// into concrete dates.
type Resolver struct {
	repo payroll.PayrollRepository
	loc  *time.Location
}

func NewResolver(repo payroll.PayrollRepository, loc *time.Location) *Resolver {
	if loc == nil {
		loc = time.UTC
	}
	return &Resolver{repo: repo, loc: loc}
}

// defaultConfig covers tenants that never configured a period: a plain
// calendar month paid on its last day, commission from the prior month.
func defaultConfig() payroll.PeriodConfig {
	return payroll.PeriodConfig{
		PeriodType:             payroll.PeriodCalendarMonth,
		PeriodStartDay:         1,
		PeriodEndDay:           31,
		PaymentDay:             31,
		PaymentMonthOffset:     0,
		CommissionPeriodOffset: 1,
		WorkDaysPerMonth:       26,
	}
}

// Resolve computes the period for (month, year) under the company's
// configuration, preferring a department-specific row.
func (r *Resolver) Resolve(ctx context.Context, companyID string, departmentID *string, month, year int) (Resolution, error) {
	if month < 1 || month > 12 {
		return Resolution{}, fmt.Errorf("month %d: %w", month, payroll.ErrInvalidPeriod)
	}
	if year < 2000 || year > 2100 {
		return Resolution{}, fmt.Errorf("year %d: %w", year, payroll.ErrInvalidPeriod)
	}

	cfg, err := r.repo.GetPeriodConfig(ctx, companyID, departmentID)
	if err != nil {
		if !errors.Is(err, payroll.ErrPeriodConfigNotFound) {
			return Resolution{}, err
		}
		cfg = defaultConfig()
	}
	return r.ResolveWithConfig(cfg, month, year)
}

// ResolveWithConfig computes the period under an explicit configuration.
func (r *Resolver) ResolveWithConfig(cfg payroll.PeriodConfig, month, year int) (Resolution, error) {
	period, err := r.span(cfg, month, year)
	if err != nil {
		return Resolution{}, err
	}

	payMonth, payYear := shiftMonth(month, year, cfg.PaymentMonthOffset)
	payment := r.date(payYear, payMonth, cfg.PaymentDay)

	comMonth, comYear := shiftMonth(month, year, -cfg.CommissionPeriodOffset)
	commission, err := r.span(cfg, comMonth, comYear)
	if err != nil {
		return Resolution{}, err
	}

	workDays := cfg.WorkDaysPerMonth
	if workDays <= 0 {
		workDays = 26
	}

	return Resolution{
		Period:           period,
		PaymentDue:       payment,
		CommissionPeriod: commission,
		WorkDaysPerMonth: workDays,
	}, nil
}

// span computes the attendance span labelled (month, year). A mid-month
// configuration whose start day exceeds its end day begins in the
// previous calendar month.
func (r *Resolver) span(cfg payroll.PeriodConfig, month, year int) (Period, error) {
	label := fmt.Sprintf("%04d-%02d", year, month)

	switch cfg.PeriodType {
	case payroll.PeriodCalendarMonth:
		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, r.loc)
		end := start.AddDate(0, 1, -1)
		return Period{Start: start, End: end, Label: label}, nil

	case payroll.PeriodMidMonth:
		startMonth, startYear := month, year
		if cfg.PeriodStartDay > cfg.PeriodEndDay {
			startMonth, startYear = shiftMonth(month, year, -1)
		}
		start := r.date(startYear, startMonth, cfg.PeriodStartDay)
		end := r.date(year, month, cfg.PeriodEndDay)
		if !end.After(start) {
			return Period{}, fmt.Errorf("start %s after end %s: %w",
				start.Format("2006-01-02"), end.Format("2006-01-02"), payroll.ErrInvalidPeriod)
		}
		return Period{Start: start, End: end, Label: label}, nil

	default:
		return Period{}, fmt.Errorf("period type %q: %w", cfg.PeriodType, payroll.ErrInvalidPeriod)
	}
}

// date builds a date clamping day to the month's length, so "day 31"
// means the last day of February in February.
func (r *Resolver) date(year, month, day int) time.Time {
	last := daysInMonth(year, month)
	if day > last {
		day = last
	}
	if day < 1 {
		day = 1
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, r.loc)
}

func daysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func shiftMonth(month, year, offset int) (int, int) {
	m := month + offset
	for m < 1 {
		m += 12
		year--
	}
	for m > 12 {
		m -= 12
		year++
	}
	return m, year
}
