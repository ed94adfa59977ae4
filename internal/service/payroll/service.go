package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/facilops/payroll-backend-go/internal/domain/assignment"
	"github.com/facilops/payroll-backend-go/internal/domain/attendance"
	"github.com/facilops/payroll-backend-go/internal/domain/employee"
	"github.com/facilops/payroll-backend-go/internal/domain/payroll"
	"github.com/facilops/payroll-backend-go/internal/pkg/jwt"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	tx              payroll.TxRunner
	payrollRepo     payroll.PayrollRepository
	installmentRepo payroll.InstallmentRepository
	employeeRepo    employee.EmployeeRepository
	assignmentRepo  assignment.AssignmentRepository
	attendanceRepo  AttendanceReader
}

// AttendanceReader is the slice of the attendance repository the engine
// needs; the engine never writes attendance.
type AttendanceReader interface {
	GetByEmployeeAndMonth(ctx context.Context, employeeID string, month, year int) ([]attendance.Attendance, error)
}

func NewPayrollService(
	tx payroll.TxRunner,
	payrollRepo payroll.PayrollRepository,
	installmentRepo payroll.InstallmentRepository,
	employeeRepo employee.EmployeeRepository,
	assignmentRepo assignment.AssignmentRepository,
	attendanceRepo AttendanceReader,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		tx:              tx,
		payrollRepo:     payrollRepo,
		installmentRepo: installmentRepo,
		employeeRepo:    employeeRepo,
		assignmentRepo:  assignmentRepo,
		attendanceRepo:  attendanceRepo,
	}
}

// ========== CALCULATION ==========

func (s *PayrollServiceImpl) Calculate(ctx context.Context, req payroll.CalculatePayrollRequest) (payroll.PayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return payroll.PayrollResponse{}, err
	}

	asOf := time.Now()
	if req.AsOf != nil {
		parsed, err := time.Parse("2006-01-02", *req.AsOf)
		if err != nil {
			return payroll.PayrollResponse{}, fmt.Errorf("invalid as_of date: %w", err)
		}
		asOf = parsed
	}

	assignments, err := s.assignmentRepo.GetByEmployeeAndPeriod(ctx, req.EmployeeID, req.Month, req.Year)
	if err != nil {
		return payroll.PayrollResponse{}, fmt.Errorf("failed to load assignments: %w", err)
	}

	records, err := s.attendanceRepo.GetByEmployeeAndMonth(ctx, req.EmployeeID, req.Month, req.Year)
	if err != nil {
		return payroll.PayrollResponse{}, fmt.Errorf("failed to load attendance: %w", err)
	}

	groups := GroupByAssignment(records)

	baseSalary := decimal.Zero
	bonusTotal := decimal.Zero
	penaltyTotal := decimal.Zero
	allowanceTotal := decimal.Zero
	overtimeTotal := decimal.Zero
	totalDays := 0

	for _, a := range assignments {
		group := groups[a.ID]
		days := RealWorkDays(group, asOf)

		accrued, err := AccruedSalary(a, days)
		if err != nil {
			return payroll.PayrollResponse{}, err
		}

		totals := MonthlyTotals(group)

		baseSalary = baseSalary.Add(accrued)
		bonusTotal = bonusTotal.Add(totals.Bonus)
		penaltyTotal = penaltyTotal.Add(totals.Penalty)
		// Support cost is an allowance-category amount, folded in alongside
		// the assignment's manual allowance.
		allowanceTotal = allowanceTotal.Add(a.AdditionalAllowance).Add(totals.Support)
		overtimeTotal = overtimeTotal.Add(totals.Overtime)
		totalDays += days
	}

	var result payroll.Payroll
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.payrollRepo.GetByEmployeePeriod(ctx, req.EmployeeID, req.Month, req.Year)
		exists := err == nil
		if err != nil && !errors.Is(err, payroll.ErrPayrollNotFound) {
			return err
		}

		// Adjustment inputs: explicit values win, otherwise whatever the
		// payroll already carries survives the recalculation.
		insuranceTotal := decimal.Zero
		advanceTotal := decimal.Zero
		note := req.Note
		if exists {
			insuranceTotal = existing.InsuranceTotal
			advanceTotal = existing.AdvanceTotal
			if note == nil {
				note = existing.Note
			}
		}
		if req.InsuranceTotal != nil {
			insuranceTotal = *req.InsuranceTotal
		}
		if req.AdvanceTotal != nil {
			advanceTotal = *req.AdvanceTotal
		}

		finalSalary := FinalSalary(baseSalary, bonusTotal, allowanceTotal, penaltyTotal, insuranceTotal)

		if exists {
			existing.BaseSalary = baseSalary
			existing.BonusTotal = bonusTotal
			existing.PenaltyTotal = penaltyTotal
			existing.AllowanceTotal = allowanceTotal
			existing.OvertimeTotal = overtimeTotal
			existing.InsuranceTotal = insuranceTotal
			existing.AdvanceTotal = advanceTotal
			existing.FinalSalary = finalSalary
			existing.TotalDays = totalDays
			existing.Note = note
			existing.RemainingAmount = Remaining(finalSalary, existing.PaidAmount)
			existing.Status = StatusFor(existing.PaidAmount, finalSalary)

			updated, err := s.payrollRepo.UpdateComputed(ctx, existing)
			if err != nil {
				return err
			}
			result = updated
			return nil
		}

		created, err := s.payrollRepo.Create(ctx, payroll.Payroll{
			EmployeeID:      req.EmployeeID,
			Month:           req.Month,
			Year:            req.Year,
			BaseSalary:      baseSalary,
			BonusTotal:      bonusTotal,
			PenaltyTotal:    penaltyTotal,
			AllowanceTotal:  allowanceTotal,
			OvertimeTotal:   overtimeTotal,
			InsuranceTotal:  insuranceTotal,
			AdvanceTotal:    advanceTotal,
			FinalSalary:     finalSalary,
			PaidAmount:      decimal.Zero,
			RemainingAmount: Remaining(finalSalary, decimal.Zero),
			Status:          payroll.StatusUnpaid,
			TotalDays:       totalDays,
			Note:            note,
		})
		if err != nil {
			return err
		}
		result = created
		return nil
	})
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	return payroll.ToResponse(result), nil
}

func (s *PayrollServiceImpl) Recalculate(ctx context.Context, req payroll.RecalculatePayrollRequest) (payroll.PayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollResponse{}, err
	}

	p, err := s.payrollRepo.GetByID(ctx, req.PayrollID)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	return s.Calculate(ctx, payroll.CalculatePayrollRequest{
		EmployeeID:     p.EmployeeID,
		Month:          p.Month,
		Year:           p.Year,
		InsuranceTotal: req.InsuranceTotal,
		AdvanceTotal:   req.AdvanceTotal,
		AsOf:           req.AsOf,
	})
}

// ========== LEDGER ==========

func (s *PayrollServiceImpl) RecordPayment(ctx context.Context, req payroll.RecordPaymentRequest) (payroll.PayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollResponse{}, err
	}

	paymentDate := time.Now()
	if req.PaymentDate != nil {
		parsed, err := time.Parse("2006-01-02", *req.PaymentDate)
		if err != nil {
			return payroll.PayrollResponse{}, fmt.Errorf("invalid payment_date: %w", err)
		}
		paymentDate = parsed
	}

	// Who recorded the payment, when a verified token is present.
	var recordedBy *string
	if userID, err := jwt.UserFromContext(ctx); err == nil {
		recordedBy = &userID
	}

	var result payroll.Payroll
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := s.payrollRepo.GetByID(ctx, req.PayrollID)
		if err != nil {
			return err
		}

		if !req.Amount.IsPositive() {
			return fmt.Errorf("%w: got %s for payroll %s", payroll.ErrInvalidAmount, req.Amount, p.ID)
		}
		if req.Amount.GreaterThan(p.RemainingAmount.Add(paymentTolerance)) {
			return fmt.Errorf("%w: amount %s, remaining %s on payroll %s", payroll.ErrOverpayment, req.Amount, p.RemainingAmount, p.ID)
		}

		if _, err := s.installmentRepo.Append(ctx, payroll.PaymentInstallment{
			PayrollID:   p.ID,
			PaymentDate: paymentDate,
			Amount:      req.Amount,
			RecordedBy:  recordedBy,
		}); err != nil {
			return err
		}

		p.PaidAmount = p.PaidAmount.Add(req.Amount)
		p.RemainingAmount = Remaining(p.FinalSalary, p.PaidAmount)
		p.Status = StatusFor(p.PaidAmount, p.FinalSalary)
		if p.Status == payroll.StatusPaid {
			// Fully settled marker.
			p.PaymentDate = &paymentDate
		}

		updated, err := s.payrollRepo.ApplyPayment(ctx, p)
		if err != nil {
			return err
		}
		result = updated
		return nil
	})
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	return payroll.ToResponse(result), nil
}

func (s *PayrollServiceImpl) GetPaymentHistory(ctx context.Context, payrollID string) ([]payroll.InstallmentResponse, error) {
	if _, err := s.payrollRepo.GetByID(ctx, payrollID); err != nil {
		return nil, err
	}

	installments, err := s.installmentRepo.ListByPayroll(ctx, payrollID)
	if err != nil {
		return nil, err
	}

	result := make([]payroll.InstallmentResponse, 0, len(installments))
	for _, inst := range installments {
		result = append(result, payroll.ToInstallmentResponse(inst))
	}
	return result, nil
}

// ========== QUERIES ==========

func (s *PayrollServiceImpl) GetPayroll(ctx context.Context, id string) (payroll.PayrollResponse, error) {
	p, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	return payroll.ToResponse(p), nil
}

func (s *PayrollServiceImpl) ListPayrolls(ctx context.Context, filter payroll.PayrollFilter) (payroll.ListPayrollResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	payrolls, totalCount, err := s.payrollRepo.List(ctx, filter)
	if err != nil {
		return payroll.ListPayrollResponse{}, err
	}

	return payroll.ListPayrollResponse{
		Data:       payroll.ToResponses(payrolls),
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *PayrollServiceImpl) GetOverview(ctx context.Context, filter payroll.PayrollFilter) (payroll.PayrollOverviewResponse, error) {
	return s.payrollRepo.Overview(ctx, filter)
}
