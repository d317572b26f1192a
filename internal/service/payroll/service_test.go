package payroll

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/company"
	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/employee"
	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/payroll"
	"github.com/contactevin2u/AAHRMS-sub003/internal/service/period"
)

const testCompanyID = "co-1"

func authedContext(t *testing.T) context.Context {
	t.Helper()
	auth := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := auth.Encode(map[string]interface{}{
		"company_id": testCompanyID,
		"user_id":    "user-1",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

type fakePayrollRepo struct {
	payroll.PayrollRepository
	runs          map[string]payroll.Run
	items         map[string][]payroll.Item
	deletedRuns   []string
	draftsDeleted int64
	savedTotals   *payroll.RunTotals
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{
		runs:  make(map[string]payroll.Run),
		items: make(map[string][]payroll.Item),
	}
}

func (f *fakePayrollRepo) GetPeriodConfig(ctx context.Context, companyID string, departmentID *string) (payroll.PeriodConfig, error) {
	return payroll.PeriodConfig{}, payroll.ErrPeriodConfigNotFound
}

func (f *fakePayrollRepo) GetRunByID(ctx context.Context, id string, companyID string) (payroll.Run, error) {
	run, ok := f.runs[id]
	if !ok || run.CompanyID != companyID {
		return payroll.Run{}, payroll.ErrRunNotFound
	}
	return run, nil
}

func (f *fakePayrollRepo) ListRuns(ctx context.Context, companyID string, filter payroll.RunFilter) ([]payroll.Run, int64, error) {
	var out []payroll.Run
	for _, run := range f.runs {
		if run.CompanyID == companyID {
			out = append(out, run)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakePayrollRepo) ListItemsByRun(ctx context.Context, runID string, companyID string) ([]payroll.Item, error) {
	return f.items[runID], nil
}

func (f *fakePayrollRepo) GetItemByID(ctx context.Context, id string, companyID string) (payroll.Item, error) {
	for _, items := range f.items {
		for _, item := range items {
			if item.ID == id && item.CompanyID == companyID {
				return item, nil
			}
		}
	}
	return payroll.Item{}, payroll.ErrItemNotFound
}

func (f *fakePayrollRepo) DeleteRun(ctx context.Context, id string, companyID string) error {
	if _, ok := f.runs[id]; !ok {
		return payroll.ErrRunNotFound
	}
	delete(f.runs, id)
	f.deletedRuns = append(f.deletedRuns, id)
	return nil
}

func (f *fakePayrollRepo) UpdateRunTotals(ctx context.Context, id string, companyID string, totals payroll.RunTotals) error {
	run, ok := f.runs[id]
	if !ok || run.CompanyID != companyID {
		return payroll.ErrRunNotFound
	}
	f.savedTotals = &totals
	return nil
}

func (f *fakePayrollRepo) DeleteDraftRuns(ctx context.Context, companyID string, month, year int) (int64, error) {
	var n int64
	for id, run := range f.runs {
		if run.CompanyID == companyID && run.Month == month && run.Year == year && run.Status == payroll.RunDraft {
			delete(f.runs, id)
			n++
		}
	}
	f.draftsDeleted = n
	return n, nil
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	active map[string][]employee.Employee
}

func (f *fakeEmployeeRepo) GetActiveByDepartment(ctx context.Context, companyID string, departmentID string) ([]employee.Employee, error) {
	return f.active[departmentID], nil
}

type fakeCompanyRepo struct {
	company.CompanyRepository
	departments []company.Department
}

func (f *fakeCompanyRepo) ListDepartments(ctx context.Context, companyID string) ([]company.Department, error) {
	return f.departments, nil
}

func (f *fakeCompanyRepo) GetDepartment(ctx context.Context, id string, companyID string) (company.Department, error) {
	for _, d := range f.departments {
		if d.ID == id {
			return d, nil
		}
	}
	return company.Department{}, company.ErrDepartmentNotFound
}

func testService(repo *fakePayrollRepo, empRepo *fakeEmployeeRepo, coRepo *fakeCompanyRepo) *PayrollServiceImpl {
	return &PayrollServiceImpl{
		payrollRepo:  repo,
		employeeRepo: empRepo,
		companyRepo:  coRepo,
		resolver:     period.NewResolver(repo, nil),
	}
}

func draftRun(id string) payroll.Run {
	return payroll.Run{
		ID:          id,
		CompanyID:   testCompanyID,
		Month:       1,
		Year:        2026,
		Status:      payroll.RunDraft,
		PeriodStart: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC),
		PaymentDue:  time.Date(2026, time.February, 7, 0, 0, 0, 0, time.UTC),
		TotalGross:  decimal.Zero, TotalDeductions: decimal.Zero,
		TotalNet: decimal.Zero, TotalEmployerCost: decimal.Zero,
	}
}

func finalizedRun(id string) payroll.Run {
	run := draftRun(id)
	run.Status = payroll.RunFinalized
	at := time.Date(2026, time.February, 1, 10, 0, 0, 0, time.UTC)
	run.FinalizedAt = &at
	return run
}

func sampleItem(id, runID string) payroll.Item {
	bank := "Maybank"
	account := "512345678901"
	return payroll.Item{
		ID:                id,
		RunID:             runID,
		CompanyID:         testCompanyID,
		EmployeeID:        "emp-1",
		EmployeeName:      "Aina Rahman",
		EmployeeCode:      "E001",
		BankName:          &bank,
		BankAccountNumber: &account,
		BasicSalary:       decimal.RequireFromString("3000"),
		GrossSalary:       decimal.RequireFromString("3000"),
		TotalDeductions:   decimal.RequireFromString("353.55"),
		NetPay:            decimal.RequireFromString("2646.45"),
	}
}

func TestRefreshRunTotalsMatchesItemSums(t *testing.T) {
	repo := newFakePayrollRepo()
	run := draftRun("run-1")
	repo.runs[run.ID] = run
	s := testService(repo, &fakeEmployeeRepo{}, &fakeCompanyRepo{})

	first := sampleItem("item-1", run.ID)
	first.GrossSalary = decimal.RequireFromString("3300.00")
	first.TotalDeductions = decimal.RequireFromString("352.85")
	first.NetPay = decimal.RequireFromString("2947.15")
	first.EmployerTotalCost = decimal.RequireFromString("3723.50")

	second := sampleItem("item-2", run.ID)
	second.EmployeeCode = "E002"
	second.GrossSalary = decimal.RequireFromString("2600.00")
	second.TotalDeductions = decimal.RequireFromString("286.00")
	second.NetPay = decimal.RequireFromString("2314.00")
	second.EmployerTotalCost = decimal.RequireFromString("2936.40")
	second.Warnings = []string{"basic salary carried forward from previous month"}

	items := []payroll.Item{first, second}
	require.NoError(t, s.refreshRunTotals(context.Background(), &run, items))

	assert.Equal(t, "5900.00", run.TotalGross.StringFixed(2))
	assert.Equal(t, "638.85", run.TotalDeductions.StringFixed(2))
	assert.Equal(t, "5261.15", run.TotalNet.StringFixed(2))
	assert.Equal(t, "6659.90", run.TotalEmployerCost.StringFixed(2))
	assert.Equal(t, 2, run.EmployeeCount)
	assert.Equal(t, []string{"E002: basic salary carried forward from previous month"}, run.Warnings)

	// the cached aggregation on the run row got the same numbers
	require.NotNil(t, repo.savedTotals)
	assert.True(t, repo.savedTotals.TotalGross.Equal(run.TotalGross))
	assert.True(t, repo.savedTotals.TotalDeductions.Equal(run.TotalDeductions))
	assert.True(t, repo.savedTotals.TotalNet.Equal(run.TotalNet))
	assert.True(t, repo.savedTotals.TotalEmployerCost.Equal(run.TotalEmployerCost))
	assert.Equal(t, 2, repo.savedTotals.EmployeeCount)
}

func TestGetRunReturnsItems(t *testing.T) {
	repo := newFakePayrollRepo()
	repo.runs["run-1"] = draftRun("run-1")
	repo.items["run-1"] = []payroll.Item{sampleItem("item-1", "run-1")}
	svc := testService(repo, &fakeEmployeeRepo{}, &fakeCompanyRepo{})

	detail, err := svc.GetRun(authedContext(t), "run-1")
	require.NoError(t, err)

	assert.Equal(t, "run-1", detail.Run.ID)
	assert.Equal(t, "draft", detail.Run.Status)
	require.Len(t, detail.Items, 1)
	assert.Equal(t, "3000.00", detail.Items[0].BasicSalary)
	assert.Equal(t, "2646.45", detail.Items[0].NetPay)
}

func TestGetRunUnknownID(t *testing.T) {
	svc := testService(newFakePayrollRepo(), &fakeEmployeeRepo{}, &fakeCompanyRepo{})

	_, err := svc.GetRun(authedContext(t), "missing")
	assert.ErrorIs(t, err, payroll.ErrRunNotFound)
}

func TestGetRunRequiresClaims(t *testing.T) {
	svc := testService(newFakePayrollRepo(), &fakeEmployeeRepo{}, &fakeCompanyRepo{})

	_, err := svc.GetRun(context.Background(), "run-1")
	assert.Error(t, err)
}

func TestListRunsDefaultsPaging(t *testing.T) {
	repo := newFakePayrollRepo()
	repo.runs["run-1"] = draftRun("run-1")
	svc := testService(repo, &fakeEmployeeRepo{}, &fakeCompanyRepo{})

	resp, err := svc.ListRuns(authedContext(t), payroll.RunFilter{})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.TotalCount)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 20, resp.Limit)
}

func TestCreateRunRejectsInvalidRequest(t *testing.T) {
	svc := testService(newFakePayrollRepo(), &fakeEmployeeRepo{}, &fakeCompanyRepo{})

	_, err := svc.CreateRun(authedContext(t), payroll.CreateRunRequest{Month: 13, Year: 2026})
	assert.Error(t, err)
}

func TestCreateRunRejectsConflictingScope(t *testing.T) {
	svc := testService(newFakePayrollRepo(), &fakeEmployeeRepo{}, &fakeCompanyRepo{})

	dept, outlet := "dept-1", "outlet-1"
	_, err := svc.CreateRun(authedContext(t), payroll.CreateRunRequest{
		Month: 1, Year: 2026, DepartmentID: &dept, OutletID: &outlet,
	})
	assert.Error(t, err)
}

func TestCreateAllRunsSkipsEmptyDepartments(t *testing.T) {
	repo := newFakePayrollRepo()
	coRepo := &fakeCompanyRepo{departments: []company.Department{
		{ID: "dept-1", CompanyID: testCompanyID, Name: "Operations"},
		{ID: "dept-2", CompanyID: testCompanyID, Name: "Logistics"},
	}}
	svc := testService(repo, &fakeEmployeeRepo{active: map[string][]employee.Employee{}}, coRepo)

	resp, err := svc.CreateAllRuns(authedContext(t), payroll.CreateAllRunsRequest{
		Month: 1, Year: 2026, Unit: payroll.ScopeDepartment,
	})
	require.NoError(t, err)

	assert.Empty(t, resp.Created)
	require.Len(t, resp.Skipped, 2)
	assert.Equal(t, "no active employees", resp.Skipped[0].Reason)
}

func TestFinalizeRunGuards(t *testing.T) {
	repo := newFakePayrollRepo()
	repo.runs["done"] = finalizedRun("done")
	repo.runs["empty"] = draftRun("empty")
	svc := testService(repo, &fakeEmployeeRepo{}, &fakeCompanyRepo{})
	ctx := authedContext(t)

	_, err := svc.FinalizeRun(ctx, "done")
	assert.ErrorIs(t, err, payroll.ErrAlreadyFinalized)

	_, err = svc.FinalizeRun(ctx, "empty")
	assert.ErrorIs(t, err, payroll.ErrEmptyRun)
}

func TestDeleteRunRefusesFinalized(t *testing.T) {
	repo := newFakePayrollRepo()
	repo.runs["done"] = finalizedRun("done")
	svc := testService(repo, &fakeEmployeeRepo{}, &fakeCompanyRepo{})

	err := svc.DeleteRun(authedContext(t), "done")
	assert.ErrorIs(t, err, payroll.ErrRunFinalized)
	assert.Empty(t, repo.deletedRuns)
}

func TestDeleteRunRemovesDraft(t *testing.T) {
	repo := newFakePayrollRepo()
	repo.runs["run-1"] = draftRun("run-1")
	svc := testService(repo, &fakeEmployeeRepo{}, &fakeCompanyRepo{})

	require.NoError(t, svc.DeleteRun(authedContext(t), "run-1"))
	assert.Equal(t, []string{"run-1"}, repo.deletedRuns)
}

func TestDeleteAllDraftsLeavesFinalized(t *testing.T) {
	repo := newFakePayrollRepo()
	repo.runs["draft-1"] = draftRun("draft-1")
	repo.runs["done"] = finalizedRun("done")
	svc := testService(repo, &fakeEmployeeRepo{}, &fakeCompanyRepo{})

	resp, err := svc.DeleteAllDrafts(authedContext(t), 1, 2026)
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.Deleted)
	_, stillThere := repo.runs["done"]
	assert.True(t, stillThere)
}

func TestDeleteAllDraftsValidatesMonth(t *testing.T) {
	svc := testService(newFakePayrollRepo(), &fakeEmployeeRepo{}, &fakeCompanyRepo{})

	_, err := svc.DeleteAllDrafts(authedContext(t), 0, 2026)
	assert.ErrorIs(t, err, payroll.ErrInvalidPeriod)
}

func TestRecalculateItemRefusesFinalizedRun(t *testing.T) {
	repo := newFakePayrollRepo()
	repo.runs["done"] = finalizedRun("done")
	repo.items["done"] = []payroll.Item{sampleItem("item-1", "done")}
	svc := testService(repo, &fakeEmployeeRepo{}, &fakeCompanyRepo{})

	_, err := svc.RecalculateItem(authedContext(t), "item-1")
	assert.ErrorIs(t, err, payroll.ErrRunFinalized)
}

func TestUpdateItemRefusesFinalizedRun(t *testing.T) {
	repo := newFakePayrollRepo()
	repo.runs["done"] = finalizedRun("done")
	repo.items["done"] = []payroll.Item{sampleItem("item-1", "done")}
	svc := testService(repo, &fakeEmployeeRepo{}, &fakeCompanyRepo{})

	_, err := svc.UpdateItem(authedContext(t), payroll.UpdateItemRequest{ID: "item-1"})
	assert.ErrorIs(t, err, payroll.ErrRunFinalized)
}

func TestBankFileRequiresFinalizedRun(t *testing.T) {
	repo := newFakePayrollRepo()
	repo.runs["run-1"] = draftRun("run-1")
	svc := testService(repo, &fakeEmployeeRepo{}, &fakeCompanyRepo{})

	_, _, err := svc.BankFile(authedContext(t), "run-1")
	assert.ErrorIs(t, err, payroll.ErrRunNotFinalized)
}

func TestBankFileOutput(t *testing.T) {
	repo := newFakePayrollRepo()
	repo.runs["done"] = finalizedRun("done")

	paid := sampleItem("item-1", "done")
	skipped := sampleItem("item-2", "done")
	skipped.EmployeeName = "Unpaid Person"
	skipped.NetPay = decimal.Zero
	repo.items["done"] = []payroll.Item{paid, skipped}

	svc := testService(repo, &fakeEmployeeRepo{}, &fakeCompanyRepo{})

	data, filename, err := svc.BankFile(authedContext(t), "done")
	require.NoError(t, err)

	assert.Equal(t, "bank_file_2026_01.csv", filename)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Bank Name,Account Number,Employee Name,Net Pay", lines[0])
	assert.Equal(t, "Maybank,512345678901,Aina Rahman,2646.45", lines[1])
	assert.NotContains(t, string(data), "Unpaid Person")
}

func TestPayslipDropsZeroLines(t *testing.T) {
	repo := newFakePayrollRepo()
	repo.runs["done"] = finalizedRun("done")
	item := sampleItem("item-1", "done")
	item.EPFEmployee = decimal.RequireFromString("330")
	item.PCB = decimal.Zero
	repo.items["done"] = []payroll.Item{item}
	svc := testService(repo, &fakeEmployeeRepo{}, &fakeCompanyRepo{})

	slip, err := svc.Payslip(authedContext(t), "item-1")
	require.NoError(t, err)

	assert.Equal(t, "January 2026", slip.PeriodLabel)
	require.Len(t, slip.Earnings, 1)
	assert.Equal(t, "Basic Salary", slip.Earnings[0].Label)
	for _, line := range slip.Deductions {
		assert.NotEqual(t, "PCB", line.Label)
	}
	assert.Equal(t, "2646.45", slip.NetPay)
}

func TestPayslipPDFProducesDocument(t *testing.T) {
	repo := newFakePayrollRepo()
	repo.runs["done"] = finalizedRun("done")
	repo.items["done"] = []payroll.Item{sampleItem("item-1", "done")}
	svc := testService(repo, &fakeEmployeeRepo{}, &fakeCompanyRepo{})

	data, filename, err := svc.PayslipPDF(authedContext(t), "item-1")
	require.NoError(t, err)

	assert.Equal(t, "payslip_E001.pdf", filename)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
}
