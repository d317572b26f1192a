package payroll

import "context"

// PayrollService is the payroll command surface exposed over HTTP.
// Company scope comes from the JWT claims in ctx.
type PayrollService interface {
	CreateRun(ctx context.Context, req CreateRunRequest) (RunResponse, error)
	CreateAllRuns(ctx context.Context, req CreateAllRunsRequest) (CreateAllRunsResponse, error)
	GetRun(ctx context.Context, runID string) (RunDetailResponse, error)
	ListRuns(ctx context.Context, filter RunFilter) (ListRunsResponse, error)
	FinalizeRun(ctx context.Context, runID string) (RunResponse, error)
	DeleteRun(ctx context.Context, runID string) error
	DeleteAllDrafts(ctx context.Context, month, year int) (DeleteDraftsResponse, error)

	UpdateItem(ctx context.Context, req UpdateItemRequest) (ItemResponse, error)
	RecalculateItem(ctx context.Context, itemID string) (ItemResponse, error)
	RecalculateAll(ctx context.Context, runID string) (RecalculateAllResponse, error)
	DeleteItem(ctx context.Context, itemID string) error

	BankFile(ctx context.Context, runID string) ([]byte, string, error)
	Payslip(ctx context.Context, itemID string) (PayslipResponse, error)
	PayslipPDF(ctx context.Context, itemID string) ([]byte, string, error)

	CreateEarningEntry(ctx context.Context, req CreateEarningEntryRequest) (EarningEntry, error)
}
