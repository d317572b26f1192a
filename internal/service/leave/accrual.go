package leave

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/leave"
)

var (
	twelve = decimal.NewFromInt(12)
	two    = decimal.NewFromInt(2)
)

// Joins after this day of the month may exclude the join month from
// proration, per tenant settings.
const midMonthDay = 15

// ProratedEntitlement scales the annual entitlement for an employee who
// joined partway into the year. The join month counts as a full month
// unless the employee joined after the 15th and the tenant excludes
// such months.
func ProratedEntitlement(entitled decimal.Decimal, joinDate time.Time, year int, settings leave.Settings) decimal.Decimal {
	if joinDate.Year() < year {
		return entitled
	}
	if joinDate.Year() > year {
		return decimal.Zero
	}

	months := 12 - int(joinDate.Month()) + 1
	if joinDate.Day() > midMonthDay && !settings.CountJoinMonth {
		months--
	}
	if months <= 0 {
		return decimal.Zero
	}
	if months >= 12 {
		return entitled
	}

	raw := entitled.Mul(decimal.NewFromInt(int64(months))).Div(twelve)
	return roundDays(raw, settings.ProrationRounding)
}

func roundDays(v decimal.Decimal, mode leave.RoundingMode) decimal.Decimal {
	switch mode {
	case leave.RoundUp:
		return v.RoundCeil(0)
	case leave.RoundDown:
		return v.RoundFloor(0)
	default:
		// nearest half day
		return v.Mul(two).Round(0).Div(two)
	}
}

// CarryForward computes the days brought into the new year from last
// year's remaining balance, bounded by the tenant cap.
func CarryForward(previous leave.LeaveBalance, settings leave.Settings) decimal.Decimal {
	if !settings.CarryForwardEnabled {
		return decimal.Zero
	}
	remaining := previous.Remaining()
	if remaining.Sign() <= 0 {
		return decimal.Zero
	}
	if settings.MaxCarryForwardDays.Sign() > 0 && remaining.GreaterThan(settings.MaxCarryForwardDays) {
		return settings.MaxCarryForwardDays
	}
	return remaining
}

// UnpaidLeaveDays totals the unpaid-leave days that fall inside
// [start, end]. A request spilling over the period boundary contributes
// only its in-period days.
func UnpaidLeaveDays(requests []leave.LeaveRequest, start, end time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, r := range requests {
		if r.IsPaid == nil || *r.IsPaid {
			continue
		}
		total = total.Add(daysInside(r, start, end))
	}
	return total
}

func daysInside(r leave.LeaveRequest, start, end time.Time) decimal.Decimal {
	from := r.StartDate
	if from.Before(start) {
		from = start
	}
	to := r.EndDate
	if to.After(end) {
		to = end
	}
	if to.Before(from) {
		return decimal.Zero
	}

	overlap := decimal.NewFromInt(int64(to.Sub(from).Hours()/24) + 1)
	// TotalDays can be fractional (half days); never report more days
	// than the request itself holds.
	if overlap.GreaterThan(r.TotalDays) && r.TotalDays.Sign() > 0 {
		return r.TotalDays
	}
	return overlap
}
