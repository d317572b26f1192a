package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/employee"
	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/schedule"
)

type ScheduleService struct {
	scheduleRepo schedule.ScheduleRepository
	employeeRepo employee.EmployeeRepository
}

func NewScheduleService(scheduleRepo schedule.ScheduleRepository, employeeRepo employee.EmployeeRepository) *ScheduleService {
	return &ScheduleService{scheduleRepo: scheduleRepo, employeeRepo: employeeRepo}
}

func companyFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}
	return companyID, nil
}

func (s *ScheduleService) CreateShiftTemplate(ctx context.Context, req schedule.CreateShiftTemplateRequest) (schedule.ShiftTemplate, error) {
	if err := req.Validate(); err != nil {
		return schedule.ShiftTemplate{}, err
	}
	companyID, err := companyFromContext(ctx)
	if err != nil {
		return schedule.ShiftTemplate{}, err
	}

	return s.scheduleRepo.CreateShiftTemplate(ctx, schedule.ShiftTemplate{
		CompanyID:       companyID,
		Code:            req.Code,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		IsOff:           req.IsOff,
		Color:           req.Color,
		StandardMinutes: req.StandardMinutes,
	})
}

func (s *ScheduleService) ListShiftTemplates(ctx context.Context) ([]schedule.ShiftTemplate, error) {
	companyID, err := companyFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.scheduleRepo.ListShiftTemplates(ctx, companyID)
}

func (s *ScheduleService) DeleteShiftTemplate(ctx context.Context, id string) error {
	companyID, err := companyFromContext(ctx)
	if err != nil {
		return err
	}
	return s.scheduleRepo.DeleteShiftTemplate(ctx, id, companyID)
}

// Assign writes one roster cell, replacing any previous shift on the
// same employee and date.
func (s *ScheduleService) Assign(ctx context.Context, req schedule.AssignShiftRequest) (schedule.Assignment, error) {
	if err := req.Validate(); err != nil {
		return schedule.Assignment{}, err
	}
	companyID, err := companyFromContext(ctx)
	if err != nil {
		return schedule.Assignment{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID); err != nil {
		return schedule.Assignment{}, err
	}
	if req.ShiftTemplateID != nil {
		if _, err := s.scheduleRepo.GetShiftTemplate(ctx, *req.ShiftTemplateID, companyID); err != nil {
			return schedule.Assignment{}, err
		}
	}

	date, _ := time.Parse("2006-01-02", req.ScheduleDate)
	return s.scheduleRepo.UpsertAssignment(ctx, schedule.Assignment{
		CompanyID:       companyID,
		EmployeeID:      req.EmployeeID,
		ScheduleDate:    date,
		ShiftTemplateID: req.ShiftTemplateID,
	})
}

func (s *ScheduleService) AssignmentsByPeriod(ctx context.Context, employeeID string, start, end time.Time) ([]schedule.Assignment, error) {
	companyID, err := companyFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.scheduleRepo.GetAssignmentsByPeriod(ctx, companyID, employeeID, start, end)
}

func (s *ScheduleService) CreateHoliday(ctx context.Context, req schedule.CreateHolidayRequest) (schedule.Holiday, error) {
	if err := req.Validate(); err != nil {
		return schedule.Holiday{}, err
	}
	companyID, err := companyFromContext(ctx)
	if err != nil {
		return schedule.Holiday{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	return s.scheduleRepo.CreateHoliday(ctx, schedule.Holiday{
		CompanyID: companyID,
		Date:      date,
		Name:      req.Name,
	})
}

func (s *ScheduleService) HolidaysByPeriod(ctx context.Context, start, end time.Time) ([]schedule.Holiday, error) {
	companyID, err := companyFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.scheduleRepo.GetHolidaysByPeriod(ctx, companyID, start, end)
}
