package employee

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/employee"
)

type EmployeeService struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) *EmployeeService {
	return &EmployeeService{employeeRepo: employeeRepo}
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

func (s *EmployeeService) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	companyID, err := companyFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	joinDate, _ := time.Parse("2006-01-02", req.JoinDate)
	emp := employee.Employee{
		CompanyID:    companyID,
		DepartmentID: req.DepartmentID,
		OutletID:     req.OutletID,
		EmployeeCode: req.EmployeeCode,
		Name:         req.Name,
		ICNumber:     req.ICNumber,

		EPFContributionType: employee.EPFContributionType(req.EPFContributionType),
		VoluntaryEPFRate:    req.VoluntaryEPFRate,
		MaritalStatus:       req.MaritalStatus,
		SpouseWorking:       req.SpouseWorking,
		ChildrenCount:       req.ChildrenCount,

		Status:         employee.StatusActive,
		EmploymentType: employee.EmploymentType(req.EmploymentType),
		WorkType:       employee.WorkType(req.WorkType),
		JoinDate:       joinDate,

		BankName:          req.BankName,
		BankAccountNumber: req.BankAccountNumber,

		HourlyRate:           req.HourlyRate,
		DefaultBasicSalary:   req.DefaultBasicSalary,
		DefaultAllowance:     req.DefaultAllowance,
		CommissionRate:       req.CommissionRate,
		PerTripRate:          req.PerTripRate,
		OTRate:               req.OTRate,
		OutstationRate:       req.OutstationRate,
		DefaultBonus:         req.DefaultBonus,
		DefaultIncentive:     req.DefaultIncentive,
		AttendanceBonus:      req.AttendanceBonus,
		PayrollStructureCode: req.PayrollStructureCode,
	}

	created, err := s.employeeRepo.Create(ctx, emp)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("created employee", "employee_id", created.ID, "company_id", companyID, "code", created.EmployeeCode)
	return toResponse(created), nil
}

func (s *EmployeeService) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	companyID, err := companyFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	applyUpdates(&emp, req)
	if err := s.employeeRepo.Update(ctx, emp); err != nil {
		return employee.EmployeeResponse{}, err
	}
	return toResponse(emp), nil
}

func applyUpdates(emp *employee.Employee, req employee.UpdateEmployeeRequest) {
	if req.Name != nil {
		emp.Name = *req.Name
	}
	if req.DepartmentID != nil {
		emp.DepartmentID = req.DepartmentID
	}
	if req.OutletID != nil {
		emp.OutletID = req.OutletID
	}
	if req.EPFContributionType != nil {
		emp.EPFContributionType = employee.EPFContributionType(*req.EPFContributionType)
	}
	if req.VoluntaryEPFRate != nil {
		emp.VoluntaryEPFRate = req.VoluntaryEPFRate
	}
	if req.MaritalStatus != nil {
		emp.MaritalStatus = *req.MaritalStatus
	}
	if req.SpouseWorking != nil {
		emp.SpouseWorking = *req.SpouseWorking
	}
	if req.ChildrenCount != nil {
		emp.ChildrenCount = *req.ChildrenCount
	}
	if req.BankName != nil {
		emp.BankName = req.BankName
	}
	if req.BankAccountNumber != nil {
		emp.BankAccountNumber = req.BankAccountNumber
	}
	if req.HourlyRate != nil {
		emp.HourlyRate = req.HourlyRate
	}
	if req.DefaultBasicSalary != nil {
		emp.DefaultBasicSalary = *req.DefaultBasicSalary
	}
	if req.DefaultAllowance != nil {
		emp.DefaultAllowance = *req.DefaultAllowance
	}
	if req.CommissionRate != nil {
		emp.CommissionRate = *req.CommissionRate
	}
	if req.PerTripRate != nil {
		emp.PerTripRate = *req.PerTripRate
	}
	if req.OTRate != nil {
		emp.OTRate = *req.OTRate
	}
	if req.OutstationRate != nil {
		emp.OutstationRate = *req.OutstationRate
	}
	if req.DefaultBonus != nil {
		emp.DefaultBonus = *req.DefaultBonus
	}
	if req.DefaultIncentive != nil {
		emp.DefaultIncentive = *req.DefaultIncentive
	}
	if req.AttendanceBonus != nil {
		emp.AttendanceBonus = *req.AttendanceBonus
	}
	if req.PayrollStructureCode != nil {
		emp.PayrollStructureCode = *req.PayrollStructureCode
	}
}

func (s *EmployeeService) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	companyID, err := companyFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	emp, err := s.employeeRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return toResponse(emp), nil
}

func (s *EmployeeService) GetByCode(ctx context.Context, code string) (employee.EmployeeResponse, error) {
	companyID, err := companyFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	emp, err := s.employeeRepo.GetByCode(ctx, code, companyID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return toResponse(emp), nil
}

func (s *EmployeeService) ListActive(ctx context.Context) ([]employee.EmployeeResponse, error) {
	companyID, err := companyFromContext(ctx)
	if err != nil {
		return nil, err
	}
	employees, err := s.employeeRepo.GetActiveByCompanyID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	out := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		out = append(out, toResponse(emp))
	}
	return out, nil
}

func (s *EmployeeService) Deactivate(ctx context.Context, id string) error {
	companyID, err := companyFromContext(ctx)
	if err != nil {
		return err
	}
	if err := s.employeeRepo.Deactivate(ctx, id, companyID); err != nil {
		return err
	}
	slog.Info("deactivated employee", "employee_id", id, "company_id", companyID)
	return nil
}

func toResponse(emp employee.Employee) employee.EmployeeResponse {
	resp := employee.EmployeeResponse{
		ID:           emp.ID,
		EmployeeCode: emp.EmployeeCode,
		Name:         emp.Name,
		ICNumber:     emp.ICNumber,
		DepartmentID: emp.DepartmentID,
		OutletID:     emp.OutletID,

		EPFContributionType: string(emp.EPFContributionType),
		MaritalStatus:       emp.MaritalStatus,
		SpouseWorking:       emp.SpouseWorking,
		ChildrenCount:       emp.ChildrenCount,

		Status:         string(emp.Status),
		EmploymentType: string(emp.EmploymentType),
		WorkType:       string(emp.WorkType),
		JoinDate:       emp.JoinDate.Format("2006-01-02"),

		BankName:          emp.BankName,
		BankAccountNumber: emp.BankAccountNumber,

		DefaultBasicSalary:   emp.DefaultBasicSalary.StringFixed(2),
		DefaultAllowance:     emp.DefaultAllowance.StringFixed(2),
		CommissionRate:       emp.CommissionRate.String(),
		PerTripRate:          emp.PerTripRate.StringFixed(2),
		OTRate:               emp.OTRate.StringFixed(2),
		OutstationRate:       emp.OutstationRate.StringFixed(2),
		DefaultBonus:         emp.DefaultBonus.StringFixed(2),
		DefaultIncentive:     emp.DefaultIncentive.StringFixed(2),
		AttendanceBonus:      emp.AttendanceBonus.StringFixed(2),
		PayrollStructureCode: emp.PayrollStructureCode,
	}
	if emp.HourlyRate != nil {
		v := emp.HourlyRate.StringFixed(2)
		resp.HourlyRate = &v
	}
	return resp
}
