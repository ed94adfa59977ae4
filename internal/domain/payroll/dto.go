package payroll

import (
	"time"

	"github.com/facilops/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// CalculatePayrollRequest drives a full (re)calculation for one employee and
// period. InsuranceTotal/AdvanceTotal are overrides: when nil, any values
// already stored on the payroll are preserved, never reset to zero.
//
// AsOf is the reference date for elapsed-day gating. Handlers default it to
// the server's today; tests and backfills pin it explicitly.
type CalculatePayrollRequest struct {
	EmployeeID     string           `json:"employee_id"`
	Month          int              `json:"month"`
	Year           int              `json:"year"`
	InsuranceTotal *decimal.Decimal `json:"insurance_total,omitempty"`
	AdvanceTotal   *decimal.Decimal `json:"advance_total,omitempty"`
	Note           *string          `json:"note,omitempty"`
	AsOf           *string          `json:"as_of,omitempty"`
}

func (r *CalculatePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if !validator.IsValidPeriod(r.Month, r.Year) {
		errs = append(errs, validator.ValidationError{Field: "period", Message: "month must be 1-12 and year >= 2000"})
	}
	if r.InsuranceTotal != nil && r.InsuranceTotal.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "insurance_total", Message: "must be non-negative"})
	}
	if r.AdvanceTotal != nil && r.AdvanceTotal.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "advance_total", Message: "must be non-negative"})
	}
	if r.AsOf != nil {
		if _, ok := validator.IsValidDate(*r.AsOf); !ok {
			errs = append(errs, validator.ValidationError{Field: "as_of", Message: "must be YYYY-MM-DD"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RecalculatePayrollRequest re-runs the engine for an existing payroll,
// optionally overriding the adjustment inputs.
type RecalculatePayrollRequest struct {
	PayrollID      string           `json:"-"`
	InsuranceTotal *decimal.Decimal `json:"insurance_total,omitempty"`
	AdvanceTotal   *decimal.Decimal `json:"advance_total,omitempty"`
	AsOf           *string          `json:"as_of,omitempty"`
}

func (r *RecalculatePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PayrollID) {
		errs = append(errs, validator.ValidationError{Field: "payroll_id", Message: "is required"})
	}
	if r.InsuranceTotal != nil && r.InsuranceTotal.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "insurance_total", Message: "must be non-negative"})
	}
	if r.AdvanceTotal != nil && r.AdvanceTotal.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "advance_total", Message: "must be non-negative"})
	}
	if r.AsOf != nil {
		if _, ok := validator.IsValidDate(*r.AsOf); !ok {
			errs = append(errs, validator.ValidationError{Field: "as_of", Message: "must be YYYY-MM-DD"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RecordPaymentRequest records one installment. Amount sign and overpayment
// are ledger rules enforced in the service (ErrInvalidAmount /
// ErrOverpayment), not request-shape validation.
type RecordPaymentRequest struct {
	PayrollID   string          `json:"-"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate *string         `json:"payment_date,omitempty"`
}

func (r *RecordPaymentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PayrollID) {
		errs = append(errs, validator.ValidationError{Field: "payroll_id", Message: "is required"})
	}
	if r.PaymentDate != nil {
		if _, ok := validator.IsValidDate(*r.PaymentDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "payment_date", Message: "must be YYYY-MM-DD"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayrollResponse struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employee_id"`
	EmployeeName    string          `json:"employee_name,omitempty"`
	EmployeeCode    string          `json:"employee_code,omitempty"`
	Month           int             `json:"month"`
	Year            int             `json:"year"`
	BaseSalary      decimal.Decimal `json:"base_salary"`
	BonusTotal      decimal.Decimal `json:"bonus_total"`
	PenaltyTotal    decimal.Decimal `json:"penalty_total"`
	AllowanceTotal  decimal.Decimal `json:"allowance_total"`
	OvertimeTotal   decimal.Decimal `json:"overtime_total"`
	InsuranceTotal  decimal.Decimal `json:"insurance_total"`
	AdvanceTotal    decimal.Decimal `json:"advance_total"`
	FinalSalary     decimal.Decimal `json:"final_salary"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	Status          string          `json:"status"`
	TotalDays       int             `json:"total_days"`
	PaymentDate     *string         `json:"payment_date,omitempty"`
	Note            *string         `json:"note,omitempty"`
}

type InstallmentResponse struct {
	ID                string          `json:"id"`
	PayrollID         string          `json:"payroll_id"`
	InstallmentNumber int             `json:"installment_number"`
	PaymentDate       string          `json:"payment_date"`
	Amount            decimal.Decimal `json:"amount"`
	RecordedBy        *string         `json:"recorded_by,omitempty"`
}

type PayrollFilter struct {
	Month      *int
	Year       *int
	Status     *string
	EmployeeID *string
	Page       int
	Limit      int
}

type ListPayrollResponse struct {
	Data       []PayrollResponse `json:"data"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
}

// PayrollOverviewResponse is the reporting rollup over a filtered payroll
// set: summed final salaries plus a count per payment status.
type PayrollOverviewResponse struct {
	TotalFinalSalary    decimal.Decimal `json:"total_final_salary"`
	PaidPayrolls        int64           `json:"paid_payrolls"`
	UnpaidPayrolls      int64           `json:"unpaid_payrolls"`
	PartialPaidPayrolls int64           `json:"partial_paid_payrolls"`
}

func ToResponse(p Payroll) PayrollResponse {
	var paymentDate *string
	if p.PaymentDate != nil {
		str := p.PaymentDate.Format(time.RFC3339)
		paymentDate = &str
	}

	employeeName := ""
	employeeCode := ""
	if p.EmployeeName != nil {
		employeeName = *p.EmployeeName
	}
	if p.EmployeeCode != nil {
		employeeCode = *p.EmployeeCode
	}

	return PayrollResponse{
		ID:              p.ID,
		EmployeeID:      p.EmployeeID,
		EmployeeName:    employeeName,
		EmployeeCode:    employeeCode,
		Month:           p.Month,
		Year:            p.Year,
		BaseSalary:      p.BaseSalary,
		BonusTotal:      p.BonusTotal,
		PenaltyTotal:    p.PenaltyTotal,
		AllowanceTotal:  p.AllowanceTotal,
		OvertimeTotal:   p.OvertimeTotal,
		InsuranceTotal:  p.InsuranceTotal,
		AdvanceTotal:    p.AdvanceTotal,
		FinalSalary:     p.FinalSalary,
		PaidAmount:      p.PaidAmount,
		RemainingAmount: p.RemainingAmount,
		Status:          string(p.Status),
		TotalDays:       p.TotalDays,
		PaymentDate:     paymentDate,
		Note:            p.Note,
	}
}

func ToResponses(payrolls []Payroll) []PayrollResponse {
	result := make([]PayrollResponse, 0, len(payrolls))
	for _, p := range payrolls {
		result = append(result, ToResponse(p))
	}
	return result
}

func ToInstallmentResponse(i PaymentInstallment) InstallmentResponse {
	return InstallmentResponse{
		ID:                i.ID,
		PayrollID:         i.PayrollID,
		InstallmentNumber: i.InstallmentNumber,
		PaymentDate:       i.PaymentDate.Format(time.RFC3339),
		Amount:            i.Amount,
		RecordedBy:        i.RecordedBy,
	}
}
