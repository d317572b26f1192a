package payroll

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/payroll"
)

// Payslip assembles the line-level breakdown for one item. Zero lines
// are dropped so the slip only shows what actually moved.
func (s *PayrollServiceImpl) Payslip(ctx context.Context, itemID string) (payroll.PayslipResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	item, err := s.payrollRepo.GetItemByID(ctx, itemID, companyID)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}
	run, err := s.payrollRepo.GetRunByID(ctx, item.RunID, companyID)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	return buildPayslip(item, run), nil
}

func buildPayslip(item payroll.Item, run payroll.Run) payroll.PayslipResponse {
	resp := payroll.PayslipResponse{
		ItemID:        item.ID,
		EmployeeName:  item.EmployeeName,
		EmployeeCode:  item.EmployeeCode,
		PeriodLabel:   fmt.Sprintf("%s %d", time.Month(run.Month), run.Year),
		PeriodStart:   run.PeriodStart.Format("2006-01-02"),
		PeriodEnd:     run.PeriodEnd.Format("2006-01-02"),
		PaymentDue:    run.PaymentDue.Format("2006-01-02"),
		GrossSalary:   item.GrossSalary.StringFixed(2),
		TotalDeducted: item.TotalDeductions.StringFixed(2),
		NetPay:        item.NetPay.StringFixed(2),
	}

	earnings := []struct {
		label  string
		amount decimal.Decimal
	}{
		{"Basic Salary", item.BasicSalary},
		{"Fixed Allowance", item.FixedAllowance},
		{"Overtime", item.OTAmount},
		{"Public Holiday Pay", item.PHPay},
		{"Incentive", item.IncentiveAmount},
		{"Commission", item.CommissionAmount},
		{"Trade Commission", item.TradeCommissionAmount},
		{"Outstation Allowance", item.OutstationAmount},
		{"Bonus", item.Bonus},
		{"Attendance Bonus", item.AttendanceBonus},
		{"Claims Reimbursement", item.ClaimsAmount},
	}
	for _, e := range earnings {
		if e.amount.Sign() != 0 {
			resp.Earnings = append(resp.Earnings, payroll.PayslipLine{Label: e.label, Amount: e.amount.StringFixed(2)})
		}
	}

	deductions := []struct {
		label  string
		amount decimal.Decimal
	}{
		{"Unpaid Leave", item.UnpaidLeaveDeduction},
		{"Absence", item.AbsentDayDeduction},
		{"Short Hours", item.ShortHoursDeduction},
		{"Salary Advance", item.AdvanceDeduction},
		{"Other Deductions", item.OtherDeductions},
		{"EPF", item.EPFEmployee},
		{"SOCSO", item.SocsoEmployee},
		{"EIS", item.EISEmployee},
		{"PCB", item.PCB},
	}
	for _, d := range deductions {
		if d.amount.Sign() != 0 {
			resp.Deductions = append(resp.Deductions, payroll.PayslipLine{Label: d.label, Amount: d.amount.StringFixed(2)})
		}
	}

	return resp
}

// PayslipPDF renders the payslip as a one-page A4 PDF.
func (s *PayrollServiceImpl) PayslipPDF(ctx context.Context, itemID string) ([]byte, string, error) {
	slip, err := s.Payslip(ctx, itemID)
	if err != nil {
		return nil, "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Employee: %s (%s)", slip.EmployeeName, slip.EmployeeCode))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Period: %s (%s to %s)", slip.PeriodLabel, slip.PeriodStart, slip.PeriodEnd))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Payment Due: %s", slip.PaymentDue))
	pdf.Ln(10)

	writeSection := func(title string, lines []payroll.PayslipLine) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, title)
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		for _, line := range lines {
			pdf.Cell(120, 6, line.Label)
			pdf.CellFormat(40, 6, line.Amount, "", 0, "R", false, 0, "")
			pdf.Ln(6)
		}
		pdf.Ln(4)
	}
	writeSection("Earnings", slip.Earnings)
	writeSection("Deductions", slip.Deductions)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(120, 7, "Gross Salary")
	pdf.CellFormat(40, 7, slip.GrossSalary, "", 0, "R", false, 0, "")
	pdf.Ln(7)
	pdf.Cell(120, 7, "Total Deductions")
	pdf.CellFormat(40, 7, slip.TotalDeducted, "", 0, "R", false, 0, "")
	pdf.Ln(7)
	pdf.Cell(120, 7, "Net Pay")
	pdf.CellFormat(40, 7, slip.NetPay, "", 0, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("payslip_%s.pdf", slip.EmployeeCode)
	return buf.Bytes(), filename, nil
}
