package claim

import (
	"context"
	"log/slog"
	"time"

	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/claim"
	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/employee"
	"github.com/contactevin2u/AAHRMS-sub003/internal/pkg/validator"
)

type ClaimService struct {
	claimRepo    claim.ClaimRepository
	employeeRepo employee.EmployeeRepository
}

func NewClaimService(claimRepo claim.ClaimRepository, employeeRepo employee.EmployeeRepository) *ClaimService {
	return &ClaimService{claimRepo: claimRepo, employeeRepo: employeeRepo}
}

// Submit files a pending claim for an active employee.
func (s *ClaimService) Submit(ctx context.Context, c claim.Claim) (claim.Claim, error) {
	if c.Amount.Sign() <= 0 {
		return claim.Claim{}, validator.ValidationErrors{
			{Field: "amount", Message: "must be greater than zero"},
		}
	}
	if _, err := s.employeeRepo.GetByID(ctx, c.EmployeeID, c.CompanyID); err != nil {
		return claim.Claim{}, err
	}

	c.Status = claim.StatusPending
	created, err := s.claimRepo.Create(ctx, c)
	if err != nil {
		return claim.Claim{}, err
	}
	slog.Info("claim submitted", "claim_id", created.ID, "employee_id", created.EmployeeID)
	return created, nil
}

// Approve marks a pending claim approved; the next finalized payroll run
// covering its claim date pays it out.
func (s *ClaimService) Approve(ctx context.Context, id string, companyID string) error {
	return s.setStatus(ctx, id, companyID, claim.StatusApproved)
}

// Reject marks a pending claim rejected.
func (s *ClaimService) Reject(ctx context.Context, id string, companyID string) error {
	return s.setStatus(ctx, id, companyID, claim.StatusRejected)
}

func (s *ClaimService) setStatus(ctx context.Context, id string, companyID string, status claim.Status) error {
	c, err := s.claimRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return err
	}
	if c.LinkedPayrollItemID != nil {
		return claim.ErrClaimAlreadyLinked
	}
	return s.claimRepo.UpdateStatus(ctx, id, companyID, status)
}

// ListByEmployeePeriod lists an employee's claims dated inside [start, end].
func (s *ClaimService) ListByEmployeePeriod(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]claim.Claim, error) {
	return s.claimRepo.ListByEmployeePeriod(ctx, companyID, employeeID, start, end)
}
