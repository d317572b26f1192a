package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"

	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/claim"
	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/company"
	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/employee"
	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/payroll"
	"github.com/contactevin2u/AAHRMS-sub003/internal/pkg/database"
	"github.com/contactevin2u/AAHRMS-sub003/internal/repository/postgresql"
	attendancesvc "github.com/contactevin2u/AAHRMS-sub003/internal/service/attendance"
	leavesvc "github.com/contactevin2u/AAHRMS-sub003/internal/service/leave"
	"github.com/contactevin2u/AAHRMS-sub003/internal/service/period"
	"github.com/contactevin2u/AAHRMS-sub003/internal/service/statutory"
)

type PayrollServiceImpl struct {
	db            *database.DB
	payrollRepo   payroll.PayrollRepository
	employeeRepo  employee.EmployeeRepository
	companyRepo   company.CompanyRepository
	claimRepo     claim.ClaimRepository
	attendanceSvc *attendancesvc.AttendanceService
	leaveSvc      *leavesvc.LeaveService
	resolver      *period.Resolver
	calc          *statutory.Calculator
}

func NewPayrollService(
	db *database.DB,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	companyRepo company.CompanyRepository,
	claimRepo claim.ClaimRepository,
	attendanceSvc *attendancesvc.AttendanceService,
	leaveSvc *leavesvc.LeaveService,
	resolver *period.Resolver,
	calc *statutory.Calculator,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		db:            db,
		payrollRepo:   payrollRepo,
		employeeRepo:  employeeRepo,
		companyRepo:   companyRepo,
		claimRepo:     claimRepo,
		attendanceSvc: attendanceSvc,
		leaveSvc:      leaveSvc,
		resolver:      resolver,
		calc:          calc,
	}
}

// Helper to get company_id and user_id from JWT context
func getClaimsFromContext(ctx context.Context) (companyID, userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	userID, _ = claims["user_id"].(string)

	return companyID, userID, nil
}

// ========== RUN LIFECYCLE ==========

// CreateRun computes a draft run for one scope. Every active employee
// in scope gets an item; employees whose data is incomplete produce
// warnings, never a failed run.
func (s *PayrollServiceImpl) CreateRun(ctx context.Context, req payroll.CreateRunRequest) (payroll.RunResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RunResponse{}, err
	}
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.RunResponse{}, err
	}

	run, err := s.createRunForScope(ctx, companyID, req)
	if err != nil {
		return payroll.RunResponse{}, err
	}
	return toRunResponse(run), nil
}

func (s *PayrollServiceImpl) createRunForScope(ctx context.Context, companyID string, req payroll.CreateRunRequest) (payroll.Run, error) {
	res, err := s.resolver.Resolve(ctx, companyID, req.DepartmentID, req.Month, req.Year)
	if err != nil {
		return payroll.Run{}, err
	}

	employees, err := s.employeesInScope(ctx, companyID, req.DepartmentID, req.OutletID)
	if err != nil {
		return payroll.Run{}, err
	}
	if len(employees) == 0 {
		return payroll.Run{}, employee.ErrNoActiveEmployees
	}

	var created payroll.Run
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		created, err = s.payrollRepo.CreateRun(txCtx, payroll.Run{
			CompanyID:         companyID,
			Month:             req.Month,
			Year:              req.Year,
			DepartmentID:      req.DepartmentID,
			OutletID:          req.OutletID,
			Status:            payroll.RunDraft,
			PeriodStart:       res.Period.Start,
			PeriodEnd:         res.Period.End,
			PaymentDue:        res.PaymentDue,
			WorkDaysPerMonth:  res.WorkDaysPerMonth,
			TableVersion:      s.calc.Version(),
			Notes:             req.Notes,
			TotalGross:        decimal.Zero,
			TotalDeductions:   decimal.Zero,
			TotalNet:          decimal.Zero,
			TotalEmployerCost: decimal.Zero,
		})
		if err != nil {
			return err
		}

		var items []payroll.Item
		for _, emp := range employees {
			item, err := s.computeForEmployee(txCtx, emp, created, res)
			if err != nil {
				return fmt.Errorf("compute payroll for employee %s: %w", emp.EmployeeCode, err)
			}
			item.RunID = created.ID
			saved, err := s.payrollRepo.CreateItem(txCtx, item)
			if err != nil {
				return err
			}
			items = append(items, saved)
		}

		return s.refreshRunTotals(txCtx, &created, items)
	})
	if err != nil {
		return payroll.Run{}, err
	}

	slog.Info("created payroll run",
		"run_id", created.ID, "company_id", companyID,
		"month", req.Month, "year", req.Year, "employees", created.EmployeeCount)
	return created, nil
}

func (s *PayrollServiceImpl) employeesInScope(ctx context.Context, companyID string, departmentID, outletID *string) ([]employee.Employee, error) {
	switch {
	case departmentID != nil:
		if _, err := s.companyRepo.GetDepartment(ctx, *departmentID, companyID); err != nil {
			return nil, err
		}
		return s.employeeRepo.GetActiveByDepartment(ctx, companyID, *departmentID)
	case outletID != nil:
		if _, err := s.companyRepo.GetOutlet(ctx, *outletID, companyID); err != nil {
			return nil, err
		}
		return s.employeeRepo.GetActiveByOutlet(ctx, companyID, *outletID)
	default:
		return s.employeeRepo.GetActiveByCompanyID(ctx, companyID)
	}
}

// computeForEmployee gathers one employee's inputs and runs the
// computation. Attendance and leave come from the run period; sales
// commission comes from the configured commission period.
func (s *PayrollServiceImpl) computeForEmployee(ctx context.Context, emp employee.Employee, run payroll.Run, res period.Resolution) (payroll.Item, error) {
	agg, err := s.attendanceSvc.PeriodAggregates(ctx, emp, run.PeriodStart, run.PeriodEnd)
	if err != nil {
		return payroll.Item{}, err
	}
	unpaidDays, err := s.leaveSvc.UnpaidDaysInPeriod(ctx, emp.CompanyID, emp.ID, run.PeriodStart, run.PeriodEnd)
	if err != nil {
		return payroll.Item{}, err
	}
	earnings, err := s.payrollRepo.SumEarningsByKind(ctx, emp.CompanyID, emp.ID, run.Month, run.Year)
	if err != nil {
		return payroll.Item{}, err
	}
	sales, err := s.payrollRepo.GetMonthlySales(ctx, emp.CompanyID, emp.ID,
		int(res.CommissionPeriod.Start.Month()), res.CommissionPeriod.Start.Year())
	if err != nil {
		return payroll.Item{}, err
	}
	claims, err := s.claimRepo.SumApprovedUnlinked(ctx, emp.CompanyID, emp.ID, run.PeriodStart, run.PeriodEnd)
	if err != nil {
		return payroll.Item{}, err
	}
	ytd, err := s.payrollRepo.GetYearToDate(ctx, emp.CompanyID, emp.ID, run.Year, run.Month)
	if err != nil {
		return payroll.Item{}, err
	}

	var prior *payroll.Item
	if p, err := s.payrollRepo.GetPriorItem(ctx, emp.CompanyID, emp.ID, run.Month, run.Year); err == nil {
		prior = &p
	} else if !errors.Is(err, payroll.ErrItemNotFound) {
		return payroll.Item{}, err
	}

	return ComputeItem(s.calc, ComputeInput{
		Employee:         emp,
		Month:            run.Month,
		Year:             run.Year,
		PeriodStart:      run.PeriodStart,
		WorkDaysPerMonth: run.WorkDaysPerMonth,
		Attendance:       agg,
		UnpaidLeaveDays:  unpaidDays,
		Earnings:         earnings,
		MonthlySales:     sales,
		ClaimsAmount:     claims,
		Prior:            prior,
		YTD:              YTD{Base: ytd.StatutoryBase, PCB: ytd.PCB},
	}), nil
}

// refreshRunTotals recomputes the cached totals from the items and
// persists them on the run.
func (s *PayrollServiceImpl) refreshRunTotals(ctx context.Context, run *payroll.Run, items []payroll.Item) error {
	totals := payroll.RunTotals{
		TotalGross:        decimal.Zero,
		TotalDeductions:   decimal.Zero,
		TotalNet:          decimal.Zero,
		TotalEmployerCost: decimal.Zero,
		EmployeeCount:     len(items),
	}
	for _, item := range items {
		totals.TotalGross = totals.TotalGross.Add(item.GrossSalary)
		totals.TotalDeductions = totals.TotalDeductions.Add(item.TotalDeductions)
		totals.TotalNet = totals.TotalNet.Add(item.NetPay)
		totals.TotalEmployerCost = totals.TotalEmployerCost.Add(item.EmployerTotalCost)
		for _, w := range item.Warnings {
			totals.Warnings = append(totals.Warnings, fmt.Sprintf("%s: %s", item.EmployeeCode, w))
		}
	}

	if err := s.payrollRepo.UpdateRunTotals(ctx, run.ID, run.CompanyID, totals); err != nil {
		return err
	}
	run.TotalGross = totals.TotalGross
	run.TotalDeductions = totals.TotalDeductions
	run.TotalNet = totals.TotalNet
	run.TotalEmployerCost = totals.TotalEmployerCost
	run.EmployeeCount = totals.EmployeeCount
	run.Warnings = totals.Warnings
	return nil
}

// CreateAllRuns creates a draft run per department or per outlet.
// Units that already have a run, or have no active employees, are
// reported as skipped rather than failing the batch.
func (s *PayrollServiceImpl) CreateAllRuns(ctx context.Context, req payroll.CreateAllRunsRequest) (payroll.CreateAllRunsResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.CreateAllRunsResponse{}, err
	}
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.CreateAllRunsResponse{}, err
	}

	type unit struct{ id, name string }
	var units []unit
	if req.Unit == payroll.ScopeDepartment {
		departments, err := s.companyRepo.ListDepartments(ctx, companyID)
		if err != nil {
			return payroll.CreateAllRunsResponse{}, err
		}
		for _, d := range departments {
			units = append(units, unit{id: d.ID, name: d.Name})
		}
	} else {
		outlets, err := s.companyRepo.ListOutlets(ctx, companyID)
		if err != nil {
			return payroll.CreateAllRunsResponse{}, err
		}
		for _, o := range outlets {
			units = append(units, unit{id: o.ID, name: o.Name})
		}
	}

	var resp payroll.CreateAllRunsResponse
	for _, u := range units {
		scopeReq := payroll.CreateRunRequest{Month: req.Month, Year: req.Year}
		if req.Unit == payroll.ScopeDepartment {
			id := u.id
			scopeReq.DepartmentID = &id
		} else {
			id := u.id
			scopeReq.OutletID = &id
		}

		run, err := s.createRunForScope(ctx, companyID, scopeReq)
		if err != nil {
			switch {
			case errors.Is(err, payroll.ErrDuplicateRun):
				resp.Skipped = append(resp.Skipped, payroll.SkippedUnit{UnitID: u.id, UnitName: u.name, Reason: "run already exists"})
			case errors.Is(err, employee.ErrNoActiveEmployees):
				resp.Skipped = append(resp.Skipped, payroll.SkippedUnit{UnitID: u.id, UnitName: u.name, Reason: "no active employees"})
			default:
				return payroll.CreateAllRunsResponse{}, fmt.Errorf("create run for %s: %w", u.name, err)
			}
			continue
		}
		resp.Created = append(resp.Created, toRunResponse(run))
	}
	return resp, nil
}

// GetRun returns the run with all its items.
func (s *PayrollServiceImpl) GetRun(ctx context.Context, runID string) (payroll.RunDetailResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.RunDetailResponse{}, err
	}

	run, err := s.payrollRepo.GetRunByID(ctx, runID, companyID)
	if err != nil {
		return payroll.RunDetailResponse{}, err
	}
	items, err := s.payrollRepo.ListItemsByRun(ctx, runID, companyID)
	if err != nil {
		return payroll.RunDetailResponse{}, err
	}

	detail := payroll.RunDetailResponse{Run: toRunResponse(run)}
	for _, item := range items {
		detail.Items = append(detail.Items, toItemResponse(item))
	}
	return detail, nil
}

// ListRuns lists runs with optional month/year/status filters.
func (s *PayrollServiceImpl) ListRuns(ctx context.Context, filter payroll.RunFilter) (payroll.ListRunsResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.ListRunsResponse{}, err
	}

	runs, total, err := s.payrollRepo.ListRuns(ctx, companyID, filter)
	if err != nil {
		return payroll.ListRunsResponse{}, err
	}

	resp := payroll.ListRunsResponse{TotalCount: total, Page: filter.Page, Limit: filter.Limit}
	if resp.Page <= 0 {
		resp.Page = 1
	}
	if resp.Limit <= 0 {
		resp.Limit = 20
	}
	for _, run := range runs {
		resp.Data = append(resp.Data, toRunResponse(run))
	}
	return resp, nil
}

// FinalizeRun freezes a draft: claims are stamped with their payroll
// item and the run stops accepting edits. Values on the items are
// never recomputed here; what was reviewed is what is paid.
func (s *PayrollServiceImpl) FinalizeRun(ctx context.Context, runID string) (payroll.RunResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.RunResponse{}, err
	}

	run, err := s.payrollRepo.GetRunByID(ctx, runID, companyID)
	if err != nil {
		return payroll.RunResponse{}, err
	}
	if run.Status == payroll.RunFinalized {
		return payroll.RunResponse{}, payroll.ErrAlreadyFinalized
	}

	items, err := s.payrollRepo.ListItemsByRun(ctx, runID, companyID)
	if err != nil {
		return payroll.RunResponse{}, err
	}
	if len(items) == 0 {
		return payroll.RunResponse{}, payroll.ErrEmptyRun
	}

	now := time.Now()
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		for _, item := range items {
			linked, err := s.claimRepo.LinkToPayrollItem(txCtx, companyID, item.EmployeeID, item.ID, run.PeriodStart, run.PeriodEnd)
			if err != nil {
				return err
			}
			if linked > 0 {
				slog.Info("linked claims to payroll item", "item_id", item.ID, "claims", linked)
			}
		}

		return s.payrollRepo.FinalizeRun(txCtx, runID, companyID, now)
	})
	if err != nil {
		return payroll.RunResponse{}, err
	}

	run.Status = payroll.RunFinalized
	run.FinalizedAt = &now
	for _, item := range items {
		if item.NetPay.Sign() < 0 {
			run.Warnings = append(run.Warnings, fmt.Sprintf("%s: net pay is negative: %s", item.EmployeeCode, item.NetPay))
		}
	}

	slog.Info("finalized payroll run", "run_id", runID, "company_id", companyID)
	return toRunResponse(run), nil
}

// DeleteRun removes a draft run and its items.
func (s *PayrollServiceImpl) DeleteRun(ctx context.Context, runID string) error {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	run, err := s.payrollRepo.GetRunByID(ctx, runID, companyID)
	if err != nil {
		return err
	}
	if run.Status == payroll.RunFinalized {
		return payroll.ErrRunFinalized
	}
	return s.payrollRepo.DeleteRun(ctx, runID, companyID)
}

// DeleteAllDrafts removes every draft run of the month. Finalized runs
// are untouched.
func (s *PayrollServiceImpl) DeleteAllDrafts(ctx context.Context, month, year int) (payroll.DeleteDraftsResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.DeleteDraftsResponse{}, err
	}
	if month < 1 || month > 12 {
		return payroll.DeleteDraftsResponse{}, fmt.Errorf("month %d: %w", month, payroll.ErrInvalidPeriod)
	}

	deleted, err := s.payrollRepo.DeleteDraftRuns(ctx, companyID, month, year)
	if err != nil {
		return payroll.DeleteDraftsResponse{}, err
	}
	return payroll.DeleteDraftsResponse{Deleted: deleted}, nil
}

// ========== ITEM OPERATIONS ==========

// UpdateItem applies a manual edit to one item of a draft run and
// recomputes statutory lines and totals from the edited values.
func (s *PayrollServiceImpl) UpdateItem(ctx context.Context, req payroll.UpdateItemRequest) (payroll.ItemResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.ItemResponse{}, err
	}
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.ItemResponse{}, err
	}

	item, err := s.payrollRepo.GetItemByID(ctx, req.ID, companyID)
	if err != nil {
		return payroll.ItemResponse{}, err
	}
	run, err := s.payrollRepo.GetRunByID(ctx, item.RunID, companyID)
	if err != nil {
		return payroll.ItemResponse{}, err
	}
	if run.Status == payroll.RunFinalized {
		return payroll.ItemResponse{}, payroll.ErrRunFinalized
	}

	applyItemEdits(&item, req)

	emp, err := s.employeeRepo.GetByID(ctx, item.EmployeeID, companyID)
	if err != nil {
		return payroll.ItemResponse{}, err
	}
	ytd, err := s.payrollRepo.GetYearToDate(ctx, companyID, item.EmployeeID, run.Year, run.Month)
	if err != nil {
		return payroll.ItemResponse{}, err
	}

	item.Warnings = nil
	applyStatutory(s.calc, &item, statutoryProfile(emp), run.Month, run.PeriodStart, YTD{Base: ytd.StatutoryBase, PCB: ytd.PCB})
	deriveTotals(&item)

	if err := s.persistItemAndTotals(ctx, &run, item); err != nil {
		return payroll.ItemResponse{}, err
	}
	return toItemResponse(item), nil
}

func applyItemEdits(item *payroll.Item, req payroll.UpdateItemRequest) {
	if req.BasicSalary != nil {
		item.BasicSalary = req.BasicSalary.Round(2)
	}
	if req.FixedAllowance != nil {
		item.FixedAllowance = req.FixedAllowance.Round(2)
	}
	if req.Bonus != nil {
		item.Bonus = req.Bonus.Round(2)
	}
	if req.IncentiveAmount != nil {
		item.IncentiveAmount = req.IncentiveAmount.Round(2)
	}
	if req.CommissionAmount != nil {
		item.CommissionAmount = req.CommissionAmount.Round(2)
	}
	if req.AdvanceDeduction != nil {
		item.AdvanceDeduction = req.AdvanceDeduction.Round(2)
	}
	if req.OtherDeductions != nil {
		item.OtherDeductions = req.OtherDeductions.Round(2)
	}
	if req.DeductionRemarks != nil {
		item.DeductionRemarks = req.DeductionRemarks
	}
	if req.EPFOverride != nil {
		item.EPFOverride = req.EPFOverride
	}
	if req.ClearEPFOverride {
		item.EPFOverride = nil
	}
	if req.PCBOverride != nil {
		item.PCBOverride = req.PCBOverride
	}
	if req.ClearPCBOverride {
		item.PCBOverride = nil
	}
}

func (s *PayrollServiceImpl) persistItemAndTotals(ctx context.Context, run *payroll.Run, item payroll.Item) error {
	return postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if err := s.payrollRepo.UpdateItem(txCtx, item); err != nil {
			return err
		}
		items, err := s.payrollRepo.ListItemsByRun(txCtx, run.ID, run.CompanyID)
		if err != nil {
			return err
		}
		return s.refreshRunTotals(txCtx, run, items)
	})
}

// RecalculateItem rebuilds one item from current source data. Manual
// overrides and manual deductions survive the rebuild.
func (s *PayrollServiceImpl) RecalculateItem(ctx context.Context, itemID string) (payroll.ItemResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.ItemResponse{}, err
	}

	item, err := s.payrollRepo.GetItemByID(ctx, itemID, companyID)
	if err != nil {
		return payroll.ItemResponse{}, err
	}
	run, err := s.payrollRepo.GetRunByID(ctx, item.RunID, companyID)
	if err != nil {
		return payroll.ItemResponse{}, err
	}
	if run.Status == payroll.RunFinalized {
		return payroll.ItemResponse{}, payroll.ErrRunFinalized
	}

	fresh, err := s.recomputeItem(ctx, item, run)
	if err != nil {
		return payroll.ItemResponse{}, err
	}

	if err := s.persistItemAndTotals(ctx, &run, fresh); err != nil {
		return payroll.ItemResponse{}, err
	}
	return toItemResponse(fresh), nil
}

func (s *PayrollServiceImpl) recomputeItem(ctx context.Context, item payroll.Item, run payroll.Run) (payroll.Item, error) {
	emp, err := s.employeeRepo.GetByID(ctx, item.EmployeeID, run.CompanyID)
	if err != nil {
		return payroll.Item{}, err
	}
	res, err := s.resolver.Resolve(ctx, run.CompanyID, run.DepartmentID, run.Month, run.Year)
	if err != nil {
		return payroll.Item{}, err
	}

	fresh, err := s.computeForEmployee(ctx, emp, run, res)
	if err != nil {
		return payroll.Item{}, err
	}
	fresh.ID = item.ID
	fresh.RunID = item.RunID

	// carry over the manual edits
	fresh.AdvanceDeduction = item.AdvanceDeduction
	fresh.OtherDeductions = item.OtherDeductions
	fresh.DeductionRemarks = item.DeductionRemarks
	fresh.EPFOverride = item.EPFOverride
	fresh.PCBOverride = item.PCBOverride
	if fresh.EPFOverride != nil {
		fresh.EPFEmployee = fresh.EPFOverride.Round(2)
	}
	if fresh.PCBOverride != nil {
		fresh.PCB = fresh.PCBOverride.Round(2)
	}
	deriveTotals(&fresh)
	return fresh, nil
}

// RecalculateAll rebuilds every item of a draft run.
func (s *PayrollServiceImpl) RecalculateAll(ctx context.Context, runID string) (payroll.RecalculateAllResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.RecalculateAllResponse{}, err
	}

	run, err := s.payrollRepo.GetRunByID(ctx, runID, companyID)
	if err != nil {
		return payroll.RecalculateAllResponse{}, err
	}
	if run.Status == payroll.RunFinalized {
		return payroll.RecalculateAllResponse{}, payroll.ErrRunFinalized
	}

	items, err := s.payrollRepo.ListItemsByRun(ctx, runID, companyID)
	if err != nil {
		return payroll.RecalculateAllResponse{}, err
	}

	resp := payroll.RecalculateAllResponse{Total: len(items)}
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		var updated []payroll.Item
		for _, item := range items {
			fresh, err := s.recomputeItem(txCtx, item, run)
			if err != nil {
				return fmt.Errorf("recompute item for %s: %w", item.EmployeeCode, err)
			}
			if err := s.payrollRepo.UpdateItem(txCtx, fresh); err != nil {
				return err
			}
			updated = append(updated, fresh)
			resp.Recalculated++
		}
		return s.refreshRunTotals(txCtx, &run, updated)
	})
	if err != nil {
		return payroll.RecalculateAllResponse{}, err
	}
	return resp, nil
}

// DeleteItem removes one item from a draft run.
func (s *PayrollServiceImpl) DeleteItem(ctx context.Context, itemID string) error {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	item, err := s.payrollRepo.GetItemByID(ctx, itemID, companyID)
	if err != nil {
		return err
	}
	run, err := s.payrollRepo.GetRunByID(ctx, item.RunID, companyID)
	if err != nil {
		return err
	}
	if run.Status == payroll.RunFinalized {
		return payroll.ErrRunFinalized
	}

	return postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if err := s.payrollRepo.DeleteItem(txCtx, itemID, companyID); err != nil {
			return err
		}
		items, err := s.payrollRepo.ListItemsByRun(txCtx, run.ID, companyID)
		if err != nil {
			return err
		}
		return s.refreshRunTotals(txCtx, &run, items)
	})
}

// CreateEarningEntry records a commission/allowance line for a month.
func (s *PayrollServiceImpl) CreateEarningEntry(ctx context.Context, req payroll.CreateEarningEntryRequest) (payroll.EarningEntry, error) {
	if err := req.Validate(); err != nil {
		return payroll.EarningEntry{}, err
	}
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.EarningEntry{}, err
	}
	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID); err != nil {
		return payroll.EarningEntry{}, err
	}

	return s.payrollRepo.CreateEarningEntry(ctx, payroll.EarningEntry{
		CompanyID:  companyID,
		EmployeeID: req.EmployeeID,
		Month:      req.Month,
		Year:       req.Year,
		Kind:       payroll.EarningKind(req.Kind),
		Label:      req.Label,
		Amount:     req.Amount,
	})
}

// ========== RESPONSE MAPPING ==========

func toRunResponse(run payroll.Run) payroll.RunResponse {
	resp := payroll.RunResponse{
		ID:                run.ID,
		Month:             run.Month,
		Year:              run.Year,
		DepartmentID:      run.DepartmentID,
		DepartmentName:    run.DepartmentName,
		OutletID:          run.OutletID,
		OutletName:        run.OutletName,
		Status:            string(run.Status),
		PeriodStart:       run.PeriodStart.Format("2006-01-02"),
		PeriodEnd:         run.PeriodEnd.Format("2006-01-02"),
		PaymentDue:        run.PaymentDue.Format("2006-01-02"),
		WorkDaysPerMonth:  run.WorkDaysPerMonth,
		TableVersion:      run.TableVersion,
		TotalGross:        run.TotalGross.StringFixed(2),
		TotalDeductions:   run.TotalDeductions.StringFixed(2),
		TotalNet:          run.TotalNet.StringFixed(2),
		TotalEmployerCost: run.TotalEmployerCost.StringFixed(2),
		EmployeeCount:     run.EmployeeCount,
		Warnings:          run.Warnings,
		Notes:             run.Notes,
	}
	if run.FinalizedAt != nil {
		v := run.FinalizedAt.Format(time.RFC3339)
		resp.FinalizedAt = &v
	}
	return resp
}

func toItemResponse(item payroll.Item) payroll.ItemResponse {
	resp := payroll.ItemResponse{
		ID:            item.ID,
		RunID:         item.RunID,
		EmployeeID:    item.EmployeeID,
		EmployeeName:  item.EmployeeName,
		EmployeeCode:  item.EmployeeCode,
		StructureCode: item.StructureCode,

		BasicSalary:           item.BasicSalary.StringFixed(2),
		FixedAllowance:        item.FixedAllowance.StringFixed(2),
		OTHours:               item.OTHours.StringFixed(2),
		OTAmount:              item.OTAmount.StringFixed(2),
		PHDaysWorked:          item.PHDaysWorked,
		PHPay:                 item.PHPay.StringFixed(2),
		IncentiveAmount:       item.IncentiveAmount.StringFixed(2),
		CommissionAmount:      item.CommissionAmount.StringFixed(2),
		TradeCommissionAmount: item.TradeCommissionAmount.StringFixed(2),
		OutstationAmount:      item.OutstationAmount.StringFixed(2),
		Bonus:                 item.Bonus.StringFixed(2),
		AttendanceBonus:       item.AttendanceBonus.StringFixed(2),
		ClaimsAmount:          item.ClaimsAmount.StringFixed(2),

		UnpaidLeaveDays:      item.UnpaidLeaveDays.StringFixed(1),
		UnpaidLeaveDeduction: item.UnpaidLeaveDeduction.StringFixed(2),
		AbsentDays:           item.AbsentDays,
		AbsentDayDeduction:   item.AbsentDayDeduction.StringFixed(2),
		ShortHours:           item.ShortHours.StringFixed(2),
		ShortHoursDeduction:  item.ShortHoursDeduction.StringFixed(2),
		AdvanceDeduction:     item.AdvanceDeduction.StringFixed(2),
		OtherDeductions:      item.OtherDeductions.StringFixed(2),
		DeductionRemarks:     item.DeductionRemarks,

		EPFEmployee:   item.EPFEmployee.StringFixed(2),
		EPFEmployer:   item.EPFEmployer.StringFixed(2),
		SocsoEmployee: item.SocsoEmployee.StringFixed(2),
		SocsoEmployer: item.SocsoEmployer.StringFixed(2),
		EISEmployee:   item.EISEmployee.StringFixed(2),
		EISEmployer:   item.EISEmployer.StringFixed(2),
		PCB:           item.PCB.StringFixed(2),

		EPFEmployeeCalculated: item.EPFEmployeeCalculated.StringFixed(2),
		PCBCalculated:         item.PCBCalculated.StringFixed(2),

		GrossSalary:       item.GrossSalary.StringFixed(2),
		TotalDeductions:   item.TotalDeductions.StringFixed(2),
		NetPay:            item.NetPay.StringFixed(2),
		EmployerTotalCost: item.EmployerTotalCost.StringFixed(2),

		TableVersion: item.TableVersion,
		Warnings:     item.Warnings,
	}
	if item.EPFOverride != nil {
		v := item.EPFOverride.StringFixed(2)
		resp.EPFOverride = &v
	}
	if item.PCBOverride != nil {
		v := item.PCBOverride.StringFixed(2)
		resp.PCBOverride = &v
	}
	return resp
}
