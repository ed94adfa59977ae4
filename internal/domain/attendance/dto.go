package attendance

import (
	"github.com/facilops/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// UpdateAttendanceRequest carries a partial edit of one attendance record.
// The service merges it onto the fetched current row before persisting.
type UpdateAttendanceRequest struct {
	ID             string           `json:"-"`
	Date           *string          `json:"date,omitempty"`
	WorkHours      *decimal.Decimal `json:"work_hours,omitempty"`
	Bonus          *decimal.Decimal `json:"bonus,omitempty"`
	Penalty        *decimal.Decimal `json:"penalty,omitempty"`
	SupportCost    *decimal.Decimal `json:"support_cost,omitempty"`
	OvertimeAmount *decimal.Decimal `json:"overtime_amount,omitempty"`
	IsOvertime     *bool            `json:"is_overtime,omitempty"`
	Description    *string          `json:"description,omitempty"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Date != nil {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs = append(errs, validator.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"})
		}
	}
	if r.WorkHours != nil && r.WorkHours.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "work_hours", Message: "must be non-negative"})
	}
	if r.Bonus != nil && r.Bonus.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "bonus", Message: "must be non-negative"})
	}
	if r.Penalty != nil && r.Penalty.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "penalty", Message: "must be non-negative"})
	}
	if r.SupportCost != nil && r.SupportCost.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "support_cost", Message: "must be non-negative"})
	}
	if r.OvertimeAmount != nil && r.OvertimeAmount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "overtime_amount", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceResponse struct {
	ID             string          `json:"id"`
	AssignmentID   string          `json:"assignment_id"`
	EmployeeID     string          `json:"employee_id"`
	CustomerID     string          `json:"customer_id"`
	Date           string          `json:"date"`
	WorkHours      decimal.Decimal `json:"work_hours"`
	Bonus          decimal.Decimal `json:"bonus"`
	Penalty        decimal.Decimal `json:"penalty"`
	SupportCost    decimal.Decimal `json:"support_cost"`
	OvertimeAmount decimal.Decimal `json:"overtime_amount"`
	IsOvertime     bool            `json:"is_overtime"`
	Description    *string         `json:"description,omitempty"`
}

func ToResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:             a.ID,
		AssignmentID:   a.AssignmentID,
		EmployeeID:     a.EmployeeID,
		CustomerID:     a.CustomerID,
		Date:           a.Date.Format("2006-01-02"),
		WorkHours:      a.WorkHours,
		Bonus:          a.Bonus,
		Penalty:        a.Penalty,
		SupportCost:    a.SupportCost,
		OvertimeAmount: a.OvertimeAmount,
		IsOvertime:     a.IsOvertime,
		Description:    a.Description,
	}
}
