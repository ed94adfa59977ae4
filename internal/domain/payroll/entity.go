package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollStatus enum, driven forward by payments and recomputed on every
// recalculation. A finalSalary increase can legitimately move a settled
// payroll back to partial_paid.
type PayrollStatus string

const (
	StatusUnpaid      PayrollStatus = "unpaid"
	StatusPartialPaid PayrollStatus = "partial_paid"
	StatusPaid        PayrollStatus = "paid"
)

// Payroll is the computed salary statement for one employee and one
// month/year. Exactly one row exists per (employee, month, year); it is
// created on first calculation and mutated in place afterwards.
//
// The computed fields (BaseSalary through FinalSalary, TotalDays) belong to
// the engine and are overwritten on every recalculation. PaidAmount,
// PaymentDate and the installments belong to the ledger and are never
// touched by recalculation.
type Payroll struct {
	ID              string
	EmployeeID      string
	Month           int
	Year            int
	BaseSalary      decimal.Decimal
	BonusTotal      decimal.Decimal
	PenaltyTotal    decimal.Decimal
	AllowanceTotal  decimal.Decimal
	OvertimeTotal   decimal.Decimal
	InsuranceTotal  decimal.Decimal
	AdvanceTotal    decimal.Decimal
	FinalSalary     decimal.Decimal
	PaidAmount      decimal.Decimal
	RemainingAmount decimal.Decimal
	Status          PayrollStatus
	TotalDays       int
	PaymentDate     *time.Time
	Note            *string
	Version         int
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

// PaymentInstallment is one recorded payment against a payroll's remaining
// balance. Append-only; InstallmentNumber increases monotonically per
// payroll and the ordered sequence reconstructs PaidAmount as a running sum.
type PaymentInstallment struct {
	ID                string
	PayrollID         string
	InstallmentNumber int
	PaymentDate       time.Time
	Amount            decimal.Decimal
	RecordedBy        *string
	CreatedAt         time.Time
}
