package attendance

import "context"

// AttendanceService is the attendance-edit entry point of the recalculation
// pipeline: merge-update the record, then re-run the payroll calculation for
// the record's period.
type AttendanceService interface {
	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)

	ListByEmployeeAndMonth(ctx context.Context, employeeID string, month, year int) ([]AttendanceResponse, error)

	// UpdateAttendance persists the edit, then recalculates the payroll for
	// the edited record's month — both the old and the new month when a date
	// edit moved the record across a month boundary. If any recalculation
	// fails after the edit was persisted, the returned error wraps
	// payroll.ErrPayrollStale so callers know a stored payroll no longer
	// reflects attendance.
	UpdateAttendance(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)
}
