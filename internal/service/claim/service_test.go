package claim

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/claim"
	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/employee"
	"github.com/contactevin2u/AAHRMS-sub003/internal/pkg/validator"
)

type fakeClaimRepo struct {
	claim.ClaimRepository

	claims map[string]claim.Claim
}

func newFakeClaimRepo() *fakeClaimRepo {
	return &fakeClaimRepo{claims: map[string]claim.Claim{}}
}

func (r *fakeClaimRepo) Create(_ context.Context, c claim.Claim) (claim.Claim, error) {
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now()
	r.claims[c.ID] = c
	return c, nil
}

func (r *fakeClaimRepo) GetByID(_ context.Context, id string, companyID string) (claim.Claim, error) {
	c, ok := r.claims[id]
	if !ok || c.CompanyID != companyID {
		return claim.Claim{}, claim.ErrClaimNotFound
	}
	return c, nil
}

func (r *fakeClaimRepo) UpdateStatus(_ context.Context, id string, companyID string, status claim.Status) error {
	c, ok := r.claims[id]
	if !ok || c.CompanyID != companyID || c.LinkedPayrollItemID != nil {
		return claim.ErrClaimAlreadyLinked
	}
	c.Status = status
	r.claims[id] = c
	return nil
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository

	employees map[string]employee.Employee
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id string, companyID string) (employee.Employee, error) {
	emp, ok := r.employees[id]
	if !ok || emp.CompanyID != companyID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func testEmployees() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", CompanyID: "co-1", EmployeeCode: "E001"},
	}}
}

func dec(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

func TestSubmitRejectsNonPositiveAmount(t *testing.T) {
	svc := NewClaimService(newFakeClaimRepo(), testEmployees())

	_, err := svc.Submit(context.Background(), claim.Claim{
		CompanyID:  "co-1",
		EmployeeID: "emp-1",
		Amount:     decimal.Zero,
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "amount", verrs[0].Field)
}

func TestSubmitUnknownEmployee(t *testing.T) {
	svc := NewClaimService(newFakeClaimRepo(), testEmployees())

	_, err := svc.Submit(context.Background(), claim.Claim{
		CompanyID:  "co-1",
		EmployeeID: "missing",
		Amount:     dec("120.50"),
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestSubmitFilesPendingClaim(t *testing.T) {
	repo := newFakeClaimRepo()
	svc := NewClaimService(repo, testEmployees())

	created, err := svc.Submit(context.Background(), claim.Claim{
		CompanyID:  "co-1",
		EmployeeID: "emp-1",
		ClaimDate:  time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC),
		Amount:     dec("120.50"),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, claim.StatusPending, created.Status)
}

func TestApproveMarksClaim(t *testing.T) {
	repo := newFakeClaimRepo()
	svc := NewClaimService(repo, testEmployees())

	created, err := svc.Submit(context.Background(), claim.Claim{
		CompanyID:  "co-1",
		EmployeeID: "emp-1",
		Amount:     dec("45.00"),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Approve(context.Background(), created.ID, "co-1"))
	assert.Equal(t, claim.StatusApproved, repo.claims[created.ID].Status)
}

func TestApproveRefusesLinkedClaim(t *testing.T) {
	repo := newFakeClaimRepo()
	svc := NewClaimService(repo, testEmployees())

	itemID := uuid.NewString()
	id := uuid.NewString()
	repo.claims[id] = claim.Claim{
		ID:                  id,
		CompanyID:           "co-1",
		EmployeeID:          "emp-1",
		Status:              claim.StatusApproved,
		LinkedPayrollItemID: &itemID,
	}

	err := svc.Approve(context.Background(), id, "co-1")
	assert.ErrorIs(t, err, claim.ErrClaimAlreadyLinked)
}

func TestRejectMarksClaim(t *testing.T) {
	repo := newFakeClaimRepo()
	svc := NewClaimService(repo, testEmployees())

	created, err := svc.Submit(context.Background(), claim.Claim{
		CompanyID:  "co-1",
		EmployeeID: "emp-1",
		Amount:     dec("45.00"),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Reject(context.Background(), created.ID, "co-1"))
	assert.Equal(t, claim.StatusRejected, repo.claims[created.ID].Status)
}
