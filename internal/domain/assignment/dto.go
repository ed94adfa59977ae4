package assignment

import (
	"github.com/facilops/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// UpdateAssignmentRequest carries a partial edit. Every field is optional;
// the service merges it onto the fetched current row before persisting, so a
// caller omitting a field can never null it out.
//
// PeriodMonth/PeriodYear name the payroll period to recalculate after the
// edit lands (an allowance change must flow back into that period's payroll).
type UpdateAssignmentRequest struct {
	ID                  string           `json:"-"`
	SalaryAtTime        *decimal.Decimal `json:"salary_at_time,omitempty"`
	PlannedDays         *int             `json:"planned_days,omitempty"`
	AdditionalAllowance *decimal.Decimal `json:"additional_allowance,omitempty"`
	Status              *string          `json:"status,omitempty"`
	EndDate             *string          `json:"end_date,omitempty"`
	PeriodMonth         int              `json:"period_month"`
	PeriodYear          int              `json:"period_year"`
}

func (r *UpdateAssignmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidPeriod(r.PeriodMonth, r.PeriodYear) {
		errs = append(errs, validator.ValidationError{Field: "period", Message: "period_month must be 1-12 and period_year >= 2000"})
	}
	if r.SalaryAtTime != nil && r.SalaryAtTime.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "salary_at_time", Message: "must be non-negative"})
	}
	if r.PlannedDays != nil && *r.PlannedDays <= 0 {
		errs = append(errs, validator.ValidationError{Field: "planned_days", Message: "must be positive"})
	}
	if r.AdditionalAllowance != nil && r.AdditionalAllowance.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "additional_allowance", Message: "must be non-negative"})
	}
	if r.Status != nil && *r.Status != string(StatusInProgress) && *r.Status != string(StatusCompleted) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be 'in_progress' or 'completed'"})
	}
	if r.EndDate != nil {
		if _, ok := validator.IsValidDate(*r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be YYYY-MM-DD"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AssignmentResponse struct {
	ID                  string          `json:"id"`
	EmployeeID          string          `json:"employee_id"`
	CustomerID          string          `json:"customer_id"`
	ContractID          *string         `json:"contract_id,omitempty"`
	Type                string          `json:"type"`
	SalaryAtTime        decimal.Decimal `json:"salary_at_time"`
	PlannedDays         int             `json:"planned_days"`
	AdditionalAllowance decimal.Decimal `json:"additional_allowance"`
	Status              string          `json:"status"`
	StartDate           string          `json:"start_date"`
	EndDate             *string         `json:"end_date,omitempty"`
}

func ToResponse(a Assignment) AssignmentResponse {
	var endDate *string
	if a.EndDate != nil {
		str := a.EndDate.Format("2006-01-02")
		endDate = &str
	}

	return AssignmentResponse{
		ID:                  a.ID,
		EmployeeID:          a.EmployeeID,
		CustomerID:          a.CustomerID,
		ContractID:          a.ContractID,
		Type:                string(a.Type),
		SalaryAtTime:        a.SalaryAtTime,
		PlannedDays:         a.PlannedDays,
		AdditionalAllowance: a.AdditionalAllowance,
		Status:              string(a.Status),
		StartDate:           a.StartDate.Format("2006-01-02"),
		EndDate:             endDate,
	}
}
