package payroll

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/payroll"
)

// BankFile renders the bank upload CSV for a finalized run. Rows carry
// the employee's bank details and net pay; employees with nothing to
// pay are left out.
func (s *PayrollServiceImpl) BankFile(ctx context.Context, runID string) ([]byte, string, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, "", err
	}

	run, err := s.payrollRepo.GetRunByID(ctx, runID, companyID)
	if err != nil {
		return nil, "", err
	}
	if run.Status != payroll.RunFinalized {
		return nil, "", payroll.ErrRunNotFinalized
	}

	items, err := s.payrollRepo.ListItemsByRun(ctx, runID, companyID)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Bank Name", "Account Number", "Employee Name", "Net Pay"}); err != nil {
		return nil, "", err
	}
	for _, item := range items {
		if item.NetPay.Sign() <= 0 {
			continue
		}
		bank, account := "", ""
		if item.BankName != nil {
			bank = *item.BankName
		}
		if item.BankAccountNumber != nil {
			account = *item.BankAccountNumber
		}
		row := []string{bank, account, item.EmployeeName, item.NetPay.StringFixed(2)}
		if err := w.Write(row); err != nil {
			return nil, "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("bank_file_%04d_%02d.csv", run.Year, run.Month)
	return buf.Bytes(), filename, nil
}
