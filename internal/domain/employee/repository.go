package employee

import "context"

type EmployeeRepository interface {
	// GetByID resolves an employee reference. Returns ErrEmployeeNotFound
	// when the id does not exist.
	GetByID(ctx context.Context, id string) (Employee, error)
}
