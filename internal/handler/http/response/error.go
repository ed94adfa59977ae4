package response

import (
	"errors"
	"net/http"

	"github.com/facilops/payroll-backend-go/internal/domain/assignment"
	"github.com/facilops/payroll-backend-go/internal/domain/attendance"
	"github.com/facilops/payroll-backend-go/internal/domain/employee"
	"github.com/facilops/payroll-backend-go/internal/domain/payroll"
	"github.com/facilops/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Not found
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, assignment.ErrAssignmentNotFound):
		NotFound(w, "Assignment not found")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, payroll.ErrPayrollNotFound):
		NotFound(w, "Payroll not found")

	// Calculation input errors
	case errors.Is(err, assignment.ErrInvalidPlannedDays):
		BadRequest(w, "Contract assignment has no planned days", nil)
	case errors.Is(err, assignment.ErrInvalidType):
		BadRequest(w, "Unknown assignment type", nil)

	// Ledger errors
	case errors.Is(err, payroll.ErrInvalidAmount):
		BadRequest(w, "Payment amount must be positive", nil)
	case errors.Is(err, payroll.ErrOverpayment):
		Conflict(w, "Payment exceeds remaining amount")
	case errors.Is(err, payroll.ErrPayrollModified):
		Conflict(w, "Payroll was modified concurrently, retry the operation")
	case errors.Is(err, payroll.ErrPayrollStale):
		Conflict(w, "Record updated but payroll recalculation failed, recalculate manually")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
