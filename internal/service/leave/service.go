package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/employee"
	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/leave"
	"github.com/contactevin2u/AAHRMS-sub003/internal/pkg/validator"
)

type LeaveService struct {
	leaveRepo    leave.LeaveRepository
	employeeRepo employee.EmployeeRepository
}

func NewLeaveService(leaveRepo leave.LeaveRepository, employeeRepo employee.EmployeeRepository) *LeaveService {
	return &LeaveService{leaveRepo: leaveRepo, employeeRepo: employeeRepo}
}

// InitializeYear seeds every active employee's balances for the year:
// prorated entitlement for the current year's joiners plus bounded
// carry-forward from last year's remainder. Re-running refreshes
// entitlement and carry-forward but never touches used days.
func (s *LeaveService) InitializeYear(ctx context.Context, companyID string, year int) (int, error) {
	settings, err := s.leaveRepo.GetSettings(ctx, companyID)
	if err != nil {
		return 0, err
	}
	types, err := s.leaveRepo.ListTypes(ctx, companyID)
	if err != nil {
		return 0, err
	}
	employees, err := s.employeeRepo.GetActiveByCompanyID(ctx, companyID)
	if err != nil {
		return 0, err
	}

	seeded := 0
	for _, emp := range employees {
		for _, lt := range types {
			if !lt.IsPaid {
				continue
			}

			carried := decimal.Zero
			if prev, err := s.leaveRepo.GetBalance(ctx, companyID, emp.ID, lt.ID, year-1); err == nil {
				carried = CarryForward(prev, settings)
			} else if !errors.Is(err, leave.ErrLeaveBalanceNotFound) {
				return seeded, err
			}

			entitled := ProratedEntitlement(lt.DefaultEntitledDays, emp.JoinDate, year, settings)
			_, err := s.leaveRepo.UpsertBalance(ctx, leave.LeaveBalance{
				CompanyID:      companyID,
				EmployeeID:     emp.ID,
				LeaveTypeID:    lt.ID,
				Year:           year,
				EntitledDays:   entitled,
				CarriedForward: carried,
			})
			if err != nil {
				return seeded, fmt.Errorf("seed balance for employee %s type %s: %w", emp.ID, lt.ID, err)
			}
			seeded++
		}
	}
	slog.Info("initialized leave balances", "company_id", companyID, "year", year, "balances", seeded)
	return seeded, nil
}

// SubmitRequest validates the dates and files a pending request.
func (s *LeaveService) SubmitRequest(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	if req.EndDate.Before(req.StartDate) {
		return leave.LeaveRequest{}, validator.ValidationErrors{
			{Field: "end_date", Message: "must not be before start_date"},
		}
	}
	if _, err := s.leaveRepo.GetTypeByID(ctx, req.LeaveTypeID, req.CompanyID); err != nil {
		return leave.LeaveRequest{}, err
	}
	if req.TotalDays.Sign() <= 0 {
		req.TotalDays = calendarDays(req.StartDate, req.EndDate)
	}
	req.Status = leave.RequestPending
	return s.leaveRepo.CreateRequest(ctx, req)
}

// Approve moves a pending request to approved, charging the balance for
// paid leave types. Unpaid leave needs no balance; payroll deducts it.
func (s *LeaveService) Approve(ctx context.Context, id string, companyID string) error {
	req, err := s.leaveRepo.GetRequestByID(ctx, id, companyID)
	if err != nil {
		return err
	}
	if req.Status != leave.RequestPending {
		return leave.ErrLeaveRequestAlreadyProcessed
	}

	if req.IsPaid != nil && *req.IsPaid {
		year := req.StartDate.Year()
		balance, err := s.leaveRepo.GetBalance(ctx, companyID, req.EmployeeID, req.LeaveTypeID, year)
		if err != nil {
			return err
		}
		if balance.Remaining().LessThan(req.TotalDays) {
			return leave.ErrInsufficientBalance
		}
		if err := s.leaveRepo.AddUsedDays(ctx, companyID, req.EmployeeID, req.LeaveTypeID, year, req.TotalDays); err != nil {
			return err
		}
	}

	return s.leaveRepo.UpdateRequestStatus(ctx, id, companyID, leave.RequestApproved)
}

// Reject moves a pending request to rejected.
func (s *LeaveService) Reject(ctx context.Context, id string, companyID string) error {
	req, err := s.leaveRepo.GetRequestByID(ctx, id, companyID)
	if err != nil {
		return err
	}
	if req.Status != leave.RequestPending {
		return leave.ErrLeaveRequestAlreadyProcessed
	}
	return s.leaveRepo.UpdateRequestStatus(ctx, id, companyID, leave.RequestRejected)
}

// UnpaidDaysInPeriod totals the employee's approved unpaid-leave days
// inside [start, end], the figure payroll turns into a deduction.
func (s *LeaveService) UnpaidDaysInPeriod(ctx context.Context, companyID, employeeID string, start, end time.Time) (decimal.Decimal, error) {
	requests, err := s.leaveRepo.ListApprovedByPeriod(ctx, companyID, employeeID, start, end)
	if err != nil {
		return decimal.Zero, err
	}
	return UnpaidLeaveDays(requests, start, end), nil
}

// Balances lists the employee's balances for the year.
func (s *LeaveService) Balances(ctx context.Context, companyID, employeeID string, year int) ([]leave.LeaveBalance, error) {
	return s.leaveRepo.ListBalances(ctx, companyID, employeeID, year)
}

func calendarDays(start, end time.Time) decimal.Decimal {
	return decimal.NewFromInt(int64(end.Sub(start).Hours()/24) + 1)
}
