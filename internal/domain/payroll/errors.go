package payroll

import "errors"

var (
	ErrPayrollNotFound = errors.New("payroll not found")

	// Ledger validation
	ErrInvalidAmount = errors.New("payment amount must be positive")
	ErrOverpayment   = errors.New("payment amount exceeds remaining balance")

	// ErrPayrollModified signals an optimistic-concurrency conflict: the row
	// changed between read and write. Callers retry the whole operation.
	ErrPayrollModified = errors.New("payroll was modified concurrently, retry the operation")

	// ErrPayrollStale marks the half-committed recalculation state: an
	// attendance or allowance edit persisted but the follow-up payroll
	// recalculation failed, so the stored payroll no longer reflects its
	// inputs. The edit is NOT rolled back; callers must surface this.
	ErrPayrollStale = errors.New("edit saved but payroll recalculation failed; stored payroll is stale")
)
