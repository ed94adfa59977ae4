package assignment

import "context"

// AssignmentService is the allowance-edit entry point. Updating an
// assignment re-runs the payroll calculation for the named period.
type AssignmentService interface {
	GetAssignment(ctx context.Context, id string) (AssignmentResponse, error)

	ListByEmployeeAndPeriod(ctx context.Context, employeeID string, month, year int) ([]AssignmentResponse, error)

	// UpdateAssignment merges the partial edit onto the stored row, persists
	// it, then recalculates the period's payroll. A recalculation failure
	// after a persisted edit surfaces as payroll.ErrPayrollStale.
	UpdateAssignment(ctx context.Context, req UpdateAssignmentRequest) (AssignmentResponse, error)
}
