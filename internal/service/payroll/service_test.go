package payroll

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/facilops/payroll-backend-go/internal/domain/assignment"
	"github.com/facilops/payroll-backend-go/internal/domain/attendance"
	"github.com/facilops/payroll-backend-go/internal/domain/employee"
	"github.com/facilops/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ========== FAKES ==========

type fakeTxRunner struct{}

func (fakeTxRunner) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakePayrollRepo struct {
	payrolls map[string]payroll.Payroll
	seq      int
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{payrolls: make(map[string]payroll.Payroll)}
}

func (r *fakePayrollRepo) GetByID(_ context.Context, id string) (payroll.Payroll, error) {
	p, ok := r.payrolls[id]
	if !ok {
		return payroll.Payroll{}, payroll.ErrPayrollNotFound
	}
	return p, nil
}

func (r *fakePayrollRepo) GetByEmployeePeriod(_ context.Context, employeeID string, month, year int) (payroll.Payroll, error) {
	for _, p := range r.payrolls {
		if p.EmployeeID == employeeID && p.Month == month && p.Year == year {
			return p, nil
		}
	}
	return payroll.Payroll{}, payroll.ErrPayrollNotFound
}

func (r *fakePayrollRepo) Create(_ context.Context, p payroll.Payroll) (payroll.Payroll, error) {
	r.seq++
	p.ID = fmt.Sprintf("pay-%d", r.seq)
	p.Version = 1
	r.payrolls[p.ID] = p
	return p, nil
}

func (r *fakePayrollRepo) UpdateComputed(_ context.Context, p payroll.Payroll) (payroll.Payroll, error) {
	stored, ok := r.payrolls[p.ID]
	if !ok {
		return payroll.Payroll{}, payroll.ErrPayrollNotFound
	}
	if stored.Version != p.Version {
		return payroll.Payroll{}, payroll.ErrPayrollModified
	}

	stored.BaseSalary = p.BaseSalary
	stored.BonusTotal = p.BonusTotal
	stored.PenaltyTotal = p.PenaltyTotal
	stored.AllowanceTotal = p.AllowanceTotal
	stored.OvertimeTotal = p.OvertimeTotal
	stored.InsuranceTotal = p.InsuranceTotal
	stored.AdvanceTotal = p.AdvanceTotal
	stored.FinalSalary = p.FinalSalary
	stored.RemainingAmount = p.RemainingAmount
	stored.Status = p.Status
	stored.TotalDays = p.TotalDays
	stored.Note = p.Note
	stored.Version++
	r.payrolls[p.ID] = stored
	return stored, nil
}

func (r *fakePayrollRepo) ApplyPayment(_ context.Context, p payroll.Payroll) (payroll.Payroll, error) {
	stored, ok := r.payrolls[p.ID]
	if !ok {
		return payroll.Payroll{}, payroll.ErrPayrollNotFound
	}
	if stored.Version != p.Version {
		return payroll.Payroll{}, payroll.ErrPayrollModified
	}

	stored.PaidAmount = p.PaidAmount
	stored.RemainingAmount = p.RemainingAmount
	stored.Status = p.Status
	stored.PaymentDate = p.PaymentDate
	stored.Version++
	r.payrolls[p.ID] = stored
	return stored, nil
}

func (r *fakePayrollRepo) List(_ context.Context, filter payroll.PayrollFilter) ([]payroll.Payroll, int64, error) {
	var result []payroll.Payroll
	for _, p := range r.payrolls {
		if filter.EmployeeID != nil && p.EmployeeID != *filter.EmployeeID {
			continue
		}
		result = append(result, p)
	}
	return result, int64(len(result)), nil
}

func (r *fakePayrollRepo) Overview(_ context.Context, _ payroll.PayrollFilter) (payroll.PayrollOverviewResponse, error) {
	overview := payroll.PayrollOverviewResponse{TotalFinalSalary: decimal.Zero}
	for _, p := range r.payrolls {
		overview.TotalFinalSalary = overview.TotalFinalSalary.Add(p.FinalSalary)
		switch p.Status {
		case payroll.StatusPaid:
			overview.PaidPayrolls++
		case payroll.StatusUnpaid:
			overview.UnpaidPayrolls++
		case payroll.StatusPartialPaid:
			overview.PartialPaidPayrolls++
		}
	}
	return overview, nil
}

type fakeInstallmentRepo struct {
	installments map[string][]payroll.PaymentInstallment
	seq          int
}

func newFakeInstallmentRepo() *fakeInstallmentRepo {
	return &fakeInstallmentRepo{installments: make(map[string][]payroll.PaymentInstallment)}
}

func (r *fakeInstallmentRepo) Append(_ context.Context, inst payroll.PaymentInstallment) (payroll.PaymentInstallment, error) {
	r.seq++
	inst.ID = fmt.Sprintf("inst-%d", r.seq)
	inst.InstallmentNumber = len(r.installments[inst.PayrollID]) + 1
	inst.CreatedAt = time.Now()
	r.installments[inst.PayrollID] = append(r.installments[inst.PayrollID], inst)
	return inst, nil
}

func (r *fakeInstallmentRepo) ListByPayroll(_ context.Context, payrollID string) ([]payroll.PaymentInstallment, error) {
	return r.installments[payrollID], nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

type fakeAssignmentRepo struct {
	assignments []assignment.Assignment
}

func (r *fakeAssignmentRepo) GetByID(_ context.Context, id string) (assignment.Assignment, error) {
	for _, a := range r.assignments {
		if a.ID == id {
			return a, nil
		}
	}
	return assignment.Assignment{}, assignment.ErrAssignmentNotFound
}

func (r *fakeAssignmentRepo) GetByEmployeeAndPeriod(_ context.Context, employeeID string, _, _ int) ([]assignment.Assignment, error) {
	var result []assignment.Assignment
	for _, a := range r.assignments {
		if a.EmployeeID == employeeID {
			result = append(result, a)
		}
	}
	return result, nil
}

func (r *fakeAssignmentRepo) Update(_ context.Context, updated assignment.Assignment) error {
	for i, a := range r.assignments {
		if a.ID == updated.ID {
			r.assignments[i] = updated
			return nil
		}
	}
	return assignment.ErrAssignmentNotFound
}

type fakeAttendanceReader struct {
	records []attendance.Attendance
}

func (r *fakeAttendanceReader) GetByEmployeeAndMonth(_ context.Context, employeeID string, month, year int) ([]attendance.Attendance, error) {
	var result []attendance.Attendance
	for _, rec := range r.records {
		if rec.EmployeeID == employeeID && int(rec.Date.Month()) == month && rec.Date.Year() == year {
			result = append(result, rec)
		}
	}
	return result, nil
}

// ========== FIXTURE ==========

const testEmployeeID = "emp-1"

type fixture struct {
	svc             payroll.PayrollService
	payrollRepo     *fakePayrollRepo
	installmentRepo *fakeInstallmentRepo
	assignmentRepo  *fakeAssignmentRepo
	attendanceRepo  *fakeAttendanceReader
}

// newFixture wires the service over one contract assignment (9,000,000 over
// 30 planned days) and one day-rate assignment (450,000/day), each with 10
// elapsed attendance days in March 2025. Accrued base with asOf at month end:
// 3,000,000 + 4,500,000 = 7,500,000.
func newFixture() *fixture {
	assignments := []assignment.Assignment{
		{
			ID:           "asg-contract",
			EmployeeID:   testEmployeeID,
			CustomerID:   "cust-1",
			Type:         assignment.TypeFixedByContract,
			SalaryAtTime: decimal.NewFromInt(9000000),
			PlannedDays:  30,
			Status:       assignment.StatusInProgress,
			StartDate:    day(2025, 3, 1),
		},
		{
			ID:           "asg-day",
			EmployeeID:   testEmployeeID,
			CustomerID:   "cust-2",
			Type:         assignment.TypeFixedByDay,
			SalaryAtTime: decimal.NewFromInt(450000),
			Status:       assignment.StatusInProgress,
			StartDate:    day(2025, 3, 1),
		},
	}

	var records []attendance.Attendance
	for d := 1; d <= 10; d++ {
		records = append(records,
			attendance.Attendance{
				ID:           fmt.Sprintf("att-c-%d", d),
				AssignmentID: "asg-contract",
				EmployeeID:   testEmployeeID,
				Date:         day(2025, 3, d),
			},
			attendance.Attendance{
				ID:           fmt.Sprintf("att-d-%d", d),
				AssignmentID: "asg-day",
				EmployeeID:   testEmployeeID,
				Date:         day(2025, 3, d),
			},
		)
	}

	f := &fixture{
		payrollRepo:     newFakePayrollRepo(),
		installmentRepo: newFakeInstallmentRepo(),
		assignmentRepo:  &fakeAssignmentRepo{assignments: assignments},
		attendanceRepo:  &fakeAttendanceReader{records: records},
	}
	f.svc = NewPayrollService(
		fakeTxRunner{},
		f.payrollRepo,
		f.installmentRepo,
		&fakeEmployeeRepo{employees: map[string]employee.Employee{
			testEmployeeID: {ID: testEmployeeID, EmployeeCode: "EMP-001", FullName: "Budi Santoso"},
		}},
		f.assignmentRepo,
		f.attendanceRepo,
	)
	return f
}

func strPtr(s string) *string { return &s }

func decPtr(d decimal.Decimal) *decimal.Decimal { return &d }

func calcRequest() payroll.CalculatePayrollRequest {
	return payroll.CalculatePayrollRequest{
		EmployeeID: testEmployeeID,
		Month:      3,
		Year:       2025,
		AsOf:       strPtr("2025-03-31"),
	}
}

// ========== CALCULATION ==========

func TestCalculateCreatesPayroll(t *testing.T) {
	f := newFixture()

	result, err := f.svc.Calculate(context.Background(), calcRequest())
	require.NoError(t, err)

	assert.True(t, result.BaseSalary.Equal(decimal.NewFromInt(7500000)), "base %s", result.BaseSalary)
	assert.True(t, result.FinalSalary.Equal(decimal.NewFromInt(7500000)))
	assert.True(t, result.PaidAmount.IsZero())
	assert.True(t, result.RemainingAmount.Equal(decimal.NewFromInt(7500000)))
	assert.Equal(t, string(payroll.StatusUnpaid), result.Status)
	assert.Equal(t, 20, result.TotalDays)
}

func TestCalculateIsIdempotent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.svc.Calculate(ctx, calcRequest())
	require.NoError(t, err)

	second, err := f.svc.Calculate(ctx, calcRequest())
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.True(t, first.FinalSalary.Equal(second.FinalSalary))
	assert.Len(t, f.payrollRepo.payrolls, 1)
}

func TestCalculateGatesFutureAttendance(t *testing.T) {
	f := newFixture()

	req := calcRequest()
	req.AsOf = strPtr("2025-03-05")

	result, err := f.svc.Calculate(context.Background(), req)
	require.NoError(t, err)

	// 5 elapsed days per assignment: 9,000,000/30*5 + 450,000*5 = 3,750,000.
	assert.Equal(t, 10, result.TotalDays)
	assert.True(t, result.BaseSalary.Equal(decimal.NewFromInt(3750000)), "base %s", result.BaseSalary)
}

func TestCalculateFoldsAdjustments(t *testing.T) {
	f := newFixture()

	f.attendanceRepo.records[0].Bonus = decimal.NewFromInt(200000)
	f.attendanceRepo.records[0].Penalty = decimal.NewFromInt(50000)
	f.attendanceRepo.records[1].SupportCost = decimal.NewFromInt(100000)
	f.assignmentRepo.assignments[1].AdditionalAllowance = decimal.NewFromInt(150000)

	req := calcRequest()
	req.InsuranceTotal = decPtr(decimal.NewFromInt(300000))

	result, err := f.svc.Calculate(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, result.BonusTotal.Equal(decimal.NewFromInt(200000)))
	assert.True(t, result.PenaltyTotal.Equal(decimal.NewFromInt(50000)))
	// Support cost folds in with the assignment allowance.
	assert.True(t, result.AllowanceTotal.Equal(decimal.NewFromInt(250000)), "allowance %s", result.AllowanceTotal)

	// 7,500,000 + 200,000 + 250,000 - 50,000 - 300,000
	assert.True(t, result.FinalSalary.Equal(decimal.NewFromInt(7600000)), "final %s", result.FinalSalary)
}

func TestCalculateAdvanceDoesNotReduceFinalSalary(t *testing.T) {
	f := newFixture()

	req := calcRequest()
	req.AdvanceTotal = decPtr(decimal.NewFromInt(1000000))

	result, err := f.svc.Calculate(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, result.AdvanceTotal.Equal(decimal.NewFromInt(1000000)))
	assert.True(t, result.FinalSalary.Equal(decimal.NewFromInt(7500000)))
}

func TestCalculatePreservesStoredInsurance(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	req := calcRequest()
	req.InsuranceTotal = decPtr(decimal.NewFromInt(300000))
	_, err := f.svc.Calculate(ctx, req)
	require.NoError(t, err)

	// Recalculate without an override: the stored insurance must survive.
	result, err := f.svc.Calculate(ctx, calcRequest())
	require.NoError(t, err)

	assert.True(t, result.InsuranceTotal.Equal(decimal.NewFromInt(300000)))
	assert.True(t, result.FinalSalary.Equal(decimal.NewFromInt(7200000)))
}

func TestCalculateEmployeeNotFound(t *testing.T) {
	f := newFixture()

	req := calcRequest()
	req.EmployeeID = "emp-unknown"

	_, err := f.svc.Calculate(context.Background(), req)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestCalculateInvalidPeriod(t *testing.T) {
	f := newFixture()

	req := calcRequest()
	req.Month = 13

	_, err := f.svc.Calculate(context.Background(), req)
	assert.Error(t, err)
}

func TestCalculateContractWithoutPlannedDays(t *testing.T) {
	f := newFixture()
	f.assignmentRepo.assignments[0].PlannedDays = 0

	_, err := f.svc.Calculate(context.Background(), calcRequest())
	assert.ErrorIs(t, err, assignment.ErrInvalidPlannedDays)
}

// ========== RECALCULATION ==========

func TestRecalculatePreservesPaymentState(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.svc.Calculate(ctx, calcRequest())
	require.NoError(t, err)

	_, err = f.svc.RecordPayment(ctx, payroll.RecordPaymentRequest{
		PayrollID: created.ID,
		Amount:    decimal.NewFromInt(3000000),
	})
	require.NoError(t, err)

	// Edit attendance: one extra bonus, then recalculate.
	f.attendanceRepo.records[0].Bonus = decimal.NewFromInt(500000)

	result, err := f.svc.Recalculate(ctx, payroll.RecalculatePayrollRequest{
		PayrollID: created.ID,
		AsOf:      strPtr("2025-03-31"),
	})
	require.NoError(t, err)

	assert.True(t, result.FinalSalary.Equal(decimal.NewFromInt(8000000)))
	assert.True(t, result.PaidAmount.Equal(decimal.NewFromInt(3000000)), "paid must survive recalculation")
	assert.True(t, result.RemainingAmount.Equal(decimal.NewFromInt(5000000)))
	assert.Equal(t, string(payroll.StatusPartialPaid), result.Status)

	installments, err := f.svc.GetPaymentHistory(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, installments, 1, "installments must survive recalculation")
}

func TestRecalculateDowngradesPaidStatus(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.svc.Calculate(ctx, calcRequest())
	require.NoError(t, err)

	_, err = f.svc.RecordPayment(ctx, payroll.RecordPaymentRequest{
		PayrollID: created.ID,
		Amount:    decimal.NewFromInt(7500000),
	})
	require.NoError(t, err)

	// The final salary grows after full settlement; the payroll reopens.
	f.attendanceRepo.records[0].Bonus = decimal.NewFromInt(500000)

	result, err := f.svc.Recalculate(ctx, payroll.RecalculatePayrollRequest{
		PayrollID: created.ID,
		AsOf:      strPtr("2025-03-31"),
	})
	require.NoError(t, err)

	assert.Equal(t, string(payroll.StatusPartialPaid), result.Status)
	assert.True(t, result.RemainingAmount.Equal(decimal.NewFromInt(500000)))
}

func TestRecalculateUnknownPayroll(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Recalculate(context.Background(), payroll.RecalculatePayrollRequest{
		PayrollID: "pay-unknown",
	})
	assert.ErrorIs(t, err, payroll.ErrPayrollNotFound)
}

// ========== LEDGER ==========

func TestRecordPaymentPartial(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.svc.Calculate(ctx, calcRequest())
	require.NoError(t, err)

	result, err := f.svc.RecordPayment(ctx, payroll.RecordPaymentRequest{
		PayrollID:   created.ID,
		Amount:      decimal.NewFromInt(2000000),
		PaymentDate: strPtr("2025-04-01"),
	})
	require.NoError(t, err)

	assert.True(t, result.PaidAmount.Equal(decimal.NewFromInt(2000000)))
	assert.True(t, result.RemainingAmount.Equal(decimal.NewFromInt(5500000)))
	assert.Equal(t, string(payroll.StatusPartialPaid), result.Status)
	assert.Nil(t, result.PaymentDate, "payment date only set on full settlement")
}

func TestRecordPaymentSettles(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.svc.Calculate(ctx, calcRequest())
	require.NoError(t, err)

	_, err = f.svc.RecordPayment(ctx, payroll.RecordPaymentRequest{
		PayrollID: created.ID,
		Amount:    decimal.NewFromInt(2000000),
	})
	require.NoError(t, err)

	result, err := f.svc.RecordPayment(ctx, payroll.RecordPaymentRequest{
		PayrollID: created.ID,
		Amount:    decimal.NewFromInt(5500000),
	})
	require.NoError(t, err)

	assert.Equal(t, string(payroll.StatusPaid), result.Status)
	assert.True(t, result.RemainingAmount.IsZero())
	assert.NotNil(t, result.PaymentDate)

	// Paid amount equals the sum of installments.
	installments, err := f.svc.GetPaymentHistory(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, installments, 2)
	sum := decimal.Zero
	for _, inst := range installments {
		sum = sum.Add(inst.Amount)
	}
	assert.True(t, result.PaidAmount.Equal(sum))
	assert.Equal(t, 1, installments[0].InstallmentNumber)
	assert.Equal(t, 2, installments[1].InstallmentNumber)
}

func TestRecordPaymentRejectsOverpayment(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.svc.Calculate(ctx, calcRequest())
	require.NoError(t, err)

	_, err = f.svc.RecordPayment(ctx, payroll.RecordPaymentRequest{
		PayrollID: created.ID,
		Amount:    decimal.NewFromInt(8000000),
	})
	assert.ErrorIs(t, err, payroll.ErrOverpayment)

	// Nothing was mutated by the rejected payment.
	current, err := f.svc.GetPayroll(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, current.PaidAmount.IsZero())
	installments, err := f.svc.GetPaymentHistory(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, installments)
}

func TestRecordPaymentToleratesRoundingNoise(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.svc.Calculate(ctx, calcRequest())
	require.NoError(t, err)

	// Within the 0.01 tolerance above remaining.
	amount := decimal.NewFromInt(7500000).Add(decimal.New(1, -2))
	result, err := f.svc.RecordPayment(ctx, payroll.RecordPaymentRequest{
		PayrollID: created.ID,
		Amount:    amount,
	})
	require.NoError(t, err)

	assert.Equal(t, string(payroll.StatusPaid), result.Status)
	assert.True(t, result.RemainingAmount.IsZero(), "remaining clamps at zero")
}

func TestRecordPaymentRejectsNonPositiveAmount(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.svc.Calculate(ctx, calcRequest())
	require.NoError(t, err)

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-1000)} {
		_, err := f.svc.RecordPayment(ctx, payroll.RecordPaymentRequest{
			PayrollID: created.ID,
			Amount:    amount,
		})
		assert.ErrorIs(t, err, payroll.ErrInvalidAmount)
	}
}

func TestRecordPaymentUnknownPayroll(t *testing.T) {
	f := newFixture()

	_, err := f.svc.RecordPayment(context.Background(), payroll.RecordPaymentRequest{
		PayrollID: "pay-unknown",
		Amount:    decimal.NewFromInt(1000),
	})
	assert.ErrorIs(t, err, payroll.ErrPayrollNotFound)
}

func TestGetPaymentHistoryUnknownPayroll(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetPaymentHistory(context.Background(), "pay-unknown")
	assert.ErrorIs(t, err, payroll.ErrPayrollNotFound)
}

// ========== QUERIES ==========

func TestListPayrollsDefaultsPagination(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Calculate(ctx, calcRequest())
	require.NoError(t, err)

	result, err := f.svc.ListPayrolls(ctx, payroll.PayrollFilter{})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 20, result.Limit)
	assert.Equal(t, int64(1), result.TotalCount)
	require.Len(t, result.Data, 1)
}

func TestGetOverview(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.svc.Calculate(ctx, calcRequest())
	require.NoError(t, err)

	_, err = f.svc.RecordPayment(ctx, payroll.RecordPaymentRequest{
		PayrollID: created.ID,
		Amount:    decimal.NewFromInt(7500000),
	})
	require.NoError(t, err)

	overview, err := f.svc.GetOverview(ctx, payroll.PayrollFilter{})
	require.NoError(t, err)

	assert.True(t, overview.TotalFinalSalary.Equal(decimal.NewFromInt(7500000)))
	assert.Equal(t, int64(1), overview.PaidPayrolls)
	assert.Equal(t, int64(0), overview.UnpaidPayrolls)
}
