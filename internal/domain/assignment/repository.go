package assignment

import "context"

type AssignmentRepository interface {
	GetByID(ctx context.Context, id string) (Assignment, error)

	// GetByEmployeeAndPeriod returns assignments whose active range overlaps
	// the given month/year.
	GetByEmployeeAndPeriod(ctx context.Context, employeeID string, month, year int) ([]Assignment, error)

	// Update persists the full assignment row. Callers merge partial edits
	// onto a fetched record first, so no field is ever nulled by omission.
	Update(ctx context.Context, a Assignment) error
}
