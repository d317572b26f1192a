package payroll

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// YearToDate - accumulated statutory figures from finalized items
// earlier in the year, feeding the tax projection.
type YearToDate struct {
	StatutoryBase decimal.Decimal
	PCB           decimal.Decimal
}

// RunTotals - the cached aggregation stored on the run row.
type RunTotals struct {
	TotalGross        decimal.Decimal
	TotalDeductions   decimal.Decimal
	TotalNet          decimal.Decimal
	TotalEmployerCost decimal.Decimal
	EmployeeCount     int
	Warnings          []string
}

// PayrollRepository defines data access for runs, items, period
// configuration and the flexible earning entries. All methods include
// companyID to prevent cross-company data access.
type PayrollRepository interface {
	// Period configuration
	GetPeriodConfig(ctx context.Context, companyID string, departmentID *string) (PeriodConfig, error)
	UpsertPeriodConfig(ctx context.Context, cfg PeriodConfig) (PeriodConfig, error)

	// Earning entries
	CreateEarningEntry(ctx context.Context, e EarningEntry) (EarningEntry, error)
	SumEarningsByKind(ctx context.Context, companyID, employeeID string, month, year int) (map[EarningKind]decimal.Decimal, error)
	GetMonthlySales(ctx context.Context, companyID, employeeID string, month, year int) (decimal.Decimal, error)

	// Runs
	CreateRun(ctx context.Context, run Run) (Run, error)
	GetRunByID(ctx context.Context, id string, companyID string) (Run, error)
	GetRunByScope(ctx context.Context, companyID string, month, year int, departmentID, outletID *string) (Run, error)
	ListRuns(ctx context.Context, companyID string, filter RunFilter) ([]Run, int64, error)
	UpdateRunTotals(ctx context.Context, id string, companyID string, totals RunTotals) error
	FinalizeRun(ctx context.Context, id string, companyID string, at time.Time) error
	DeleteRun(ctx context.Context, id string, companyID string) error
	DeleteDraftRuns(ctx context.Context, companyID string, month, year int) (int64, error)

	// Items
	CreateItem(ctx context.Context, item Item) (Item, error)
	GetItemByID(ctx context.Context, id string, companyID string) (Item, error)
	ListItemsByRun(ctx context.Context, runID string, companyID string) ([]Item, error)
	UpdateItem(ctx context.Context, item Item) error
	DeleteItem(ctx context.Context, id string, companyID string) error

	// GetPriorItem returns the employee's item from the run covering the
	// month immediately before (month, year), in a compatible scope.
	GetPriorItem(ctx context.Context, companyID, employeeID string, month, year int) (Item, error)

	// GetYearToDate sums the employee's statutory base and tax deducted
	// across finalized runs of the year before the given month.
	GetYearToDate(ctx context.Context, companyID, employeeID string, year, beforeMonth int) (YearToDate, error)
}

// RunFilter for run listings.
type RunFilter struct {
	Month  *int
	Year   *int
	Status *RunStatus
	Page   int
	Limit  int
}
