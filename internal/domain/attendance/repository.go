package attendance

import "context"

type AttendanceRepository interface {
	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByEmployeeAndMonth returns every record dated inside the month,
	// ordered by date ascending.
	GetByEmployeeAndMonth(ctx context.Context, employeeID string, month, year int) ([]Attendance, error)

	// Update persists the full attendance row. Callers merge partial edits
	// onto a fetched record first.
	Update(ctx context.Context, a Attendance) error
}
