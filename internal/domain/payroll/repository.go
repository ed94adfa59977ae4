package payroll

import "context"

// TxRunner runs fn with a transaction bound to the context, so every
// repository call inside fn shares one transaction. Implemented by the
// postgresql package; test fakes run fn directly.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type PayrollRepository interface {
	GetByID(ctx context.Context, id string) (Payroll, error)
	GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (Payroll, error)

	Create(ctx context.Context, p Payroll) (Payroll, error)

	// UpdateComputed overwrites the engine-owned fields (salary components,
	// final salary, total days, remaining, status, note) and bumps the
	// version. Paid amount, payment date and installments are untouched.
	// Returns ErrPayrollModified when p.Version no longer matches the row.
	UpdateComputed(ctx context.Context, p Payroll) (Payroll, error)

	// ApplyPayment overwrites the ledger-owned fields (paid amount,
	// remaining, status, payment date) and bumps the version. Returns
	// ErrPayrollModified when p.Version no longer matches the row.
	ApplyPayment(ctx context.Context, p Payroll) (Payroll, error)

	List(ctx context.Context, filter PayrollFilter) ([]Payroll, int64, error)
	Overview(ctx context.Context, filter PayrollFilter) (PayrollOverviewResponse, error)
}

type InstallmentRepository interface {
	// Append inserts the next installment for the payroll, assigning
	// InstallmentNumber = max(existing)+1.
	Append(ctx context.Context, inst PaymentInstallment) (PaymentInstallment, error)

	// ListByPayroll returns installments ordered by installment number.
	ListByPayroll(ctx context.Context, payrollID string) ([]PaymentInstallment, error)
}
