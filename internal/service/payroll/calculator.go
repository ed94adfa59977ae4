package payroll

import (
	"fmt"

	"github.com/facilops/payroll-backend-go/internal/domain/assignment"
	"github.com/facilops/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// paymentTolerance absorbs rounding noise when comparing a payment against
// the remaining balance (0.01 currency unit).
var paymentTolerance = decimal.New(1, -2)

// AccruedSalary computes the base salary one assignment has earned after
// realWorkDays elapsed days.
//
// Contract-prorated assignments carry the whole contract amount in
// SalaryAtTime, so the daily rate is SalaryAtTime / PlannedDays; every other
// type carries a per-day rate directly. PlannedDays must be positive for the
// prorated formula; zero would otherwise divide away silently.
func AccruedSalary(a assignment.Assignment, realWorkDays int) (decimal.Decimal, error) {
	days := decimal.NewFromInt(int64(realWorkDays))

	switch a.Type {
	case assignment.TypeFixedByContract:
		if a.PlannedDays <= 0 {
			return decimal.Zero, fmt.Errorf("%w: assignment %s has planned_days=%d", assignment.ErrInvalidPlannedDays, a.ID, a.PlannedDays)
		}
		dailyRate := a.SalaryAtTime.Div(decimal.NewFromInt(int64(a.PlannedDays)))
		return dailyRate.Mul(days), nil
	case assignment.TypeFixedByDay, assignment.TypeTemporary, assignment.TypeFixedByCompany, assignment.TypeSupport:
		return a.SalaryAtTime.Mul(days), nil
	default:
		return decimal.Zero, fmt.Errorf("%w: %q on assignment %s", assignment.ErrInvalidType, a.Type, a.ID)
	}
}

// FinalSalary applies the settlement formula:
//
//	final = base + bonus + allowance - penalty - insurance
//
// The advance total is deliberately absent. The business tracks a requested
// advance on the payroll as a note only; it does not reduce the final salary.
// Flagged with product as possibly unintended, kept as documented behavior.
func FinalSalary(base, bonus, allowance, penalty, insurance decimal.Decimal) decimal.Decimal {
	return base.Add(bonus).Add(allowance).Sub(penalty).Sub(insurance)
}

// Remaining clamps finalSalary - paidAmount at zero so an overpaid or
// reduced-after-payment payroll never reports a negative balance.
func Remaining(finalSalary, paidAmount decimal.Decimal) decimal.Decimal {
	remaining := finalSalary.Sub(paidAmount)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// StatusFor derives the payment status from the threshold rule: zero paid is
// unpaid, paid >= final is paid, anything between is partial.
func StatusFor(paidAmount, finalSalary decimal.Decimal) payroll.PayrollStatus {
	switch {
	case paidAmount.IsZero():
		return payroll.StatusUnpaid
	case paidAmount.GreaterThanOrEqual(finalSalary):
		return payroll.StatusPaid
	default:
		return payroll.StatusPartialPaid
	}
}
