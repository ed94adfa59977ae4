package payroll

import "context"

// PayrollService is the payroll engine plus payment ledger surface.
type PayrollService interface {
	// Calculate computes (or recomputes) the payroll for one employee and
	// period from assignments and attendance, creating the row on first run
	// and updating computed fields in place afterwards. Payment state is
	// never modified.
	Calculate(ctx context.Context, req CalculatePayrollRequest) (PayrollResponse, error)

	// Recalculate re-runs Calculate for an existing payroll's period.
	Recalculate(ctx context.Context, req RecalculatePayrollRequest) (PayrollResponse, error)

	GetPayroll(ctx context.Context, id string) (PayrollResponse, error)

	ListPayrolls(ctx context.Context, filter PayrollFilter) (ListPayrollResponse, error)

	// RecordPayment appends an installment and rolls the paid amount and
	// status forward. Fails with ErrInvalidAmount or ErrOverpayment without
	// mutating anything.
	RecordPayment(ctx context.Context, req RecordPaymentRequest) (PayrollResponse, error)

	// GetPaymentHistory returns installments ordered by installment number.
	GetPaymentHistory(ctx context.Context, payrollID string) ([]InstallmentResponse, error)

	GetOverview(ctx context.Context, filter PayrollFilter) (PayrollOverviewResponse, error)
}
