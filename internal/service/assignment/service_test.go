package assignment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/facilops/payroll-backend-go/internal/domain/assignment"
	"github.com/facilops/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAssignmentRepo struct {
	assignments map[string]assignment.Assignment
}

func (r *fakeAssignmentRepo) GetByID(_ context.Context, id string) (assignment.Assignment, error) {
	a, ok := r.assignments[id]
	if !ok {
		return assignment.Assignment{}, assignment.ErrAssignmentNotFound
	}
	return a, nil
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

func (r *fakeAssignmentRepo) Update(_ context.Context, a assignment.Assignment) error {
	if _, ok := r.assignments[a.ID]; !ok {
		return assignment.ErrAssignmentNotFound
	}
	r.assignments[a.ID] = a
	return nil
}

type stubPayrollService struct {
	calculateCalls []payroll.CalculatePayrollRequest
	calculateErr   error
}

func (s *stubPayrollService) Calculate(_ context.Context, req payroll.CalculatePayrollRequest) (payroll.PayrollResponse, error) {
	s.calculateCalls = append(s.calculateCalls, req)
	return payroll.PayrollResponse{}, s.calculateErr
}

func (s *stubPayrollService) Recalculate(context.Context, payroll.RecalculatePayrollRequest) (payroll.PayrollResponse, error) {
	return payroll.PayrollResponse{}, nil
}

func (s *stubPayrollService) GetPayroll(context.Context, string) (payroll.PayrollResponse, error) {
	return payroll.PayrollResponse{}, nil
}

func (s *stubPayrollService) ListPayrolls(context.Context, payroll.PayrollFilter) (payroll.ListPayrollResponse, error) {
	return payroll.ListPayrollResponse{}, nil
}

func (s *stubPayrollService) RecordPayment(context.Context, payroll.RecordPaymentRequest) (payroll.PayrollResponse, error) {
	return payroll.PayrollResponse{}, nil
}

func (s *stubPayrollService) GetPaymentHistory(context.Context, string) ([]payroll.InstallmentResponse, error) {
	return nil, nil
}

func (s *stubPayrollService) GetOverview(context.Context, payroll.PayrollFilter) (payroll.PayrollOverviewResponse, error) {
	return payroll.PayrollOverviewResponse{}, nil
}

func testAssignment() assignment.Assignment {
	return assignment.Assignment{
		ID:                  "asg-1",
		EmployeeID:          "emp-1",
		CustomerID:          "cust-1",
		Type:                assignment.TypeFixedByContract,
		SalaryAtTime:        decimal.NewFromInt(9000000),
		PlannedDays:         30,
		AdditionalAllowance: decimal.NewFromInt(100000),
		Status:              assignment.StatusInProgress,
		StartDate:           time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func newTestService() (assignment.AssignmentService, *fakeAssignmentRepo, *stubPayrollService) {
	repo := &fakeAssignmentRepo{assignments: map[string]assignment.Assignment{"asg-1": testAssignment()}}
	payrollSvc := &stubPayrollService{}
	return NewAssignmentService(repo, payrollSvc), repo, payrollSvc
}

func decPtr(d decimal.Decimal) *decimal.Decimal { return &d }

func TestGetAssignment(t *testing.T) {
	svc, _, _ := newTestService()

	result, err := svc.GetAssignment(context.Background(), "asg-1")
	require.NoError(t, err)
	assert.Equal(t, "asg-1", result.ID)
	assert.Equal(t, string(assignment.TypeFixedByContract), result.Type)
}

func TestUpdateAssignmentMergesAndRecalculates(t *testing.T) {
	svc, repo, payrollSvc := newTestService()

	result, err := svc.UpdateAssignment(context.Background(), assignment.UpdateAssignmentRequest{
		ID:                  "asg-1",
		AdditionalAllowance: decPtr(decimal.NewFromInt(250000)),
		PeriodMonth:         3,
		PeriodYear:          2025,
	})
	require.NoError(t, err)

	assert.True(t, result.AdditionalAllowance.Equal(decimal.NewFromInt(250000)))
	// Omitted fields round-trip unchanged.
	assert.True(t, result.SalaryAtTime.Equal(decimal.NewFromInt(9000000)))
	assert.Equal(t, 30, result.PlannedDays)

	stored := repo.assignments["asg-1"]
	assert.True(t, stored.AdditionalAllowance.Equal(decimal.NewFromInt(250000)))

	require.Len(t, payrollSvc.calculateCalls, 1)
	call := payrollSvc.calculateCalls[0]
	assert.Equal(t, "emp-1", call.EmployeeID)
	assert.Equal(t, 3, call.Month)
	assert.Equal(t, 2025, call.Year)
}

func TestUpdateAssignmentRecalculationFailure(t *testing.T) {
	svc, repo, payrollSvc := newTestService()
	payrollSvc.calculateErr = errors.New("db down")

	result, err := svc.UpdateAssignment(context.Background(), assignment.UpdateAssignmentRequest{
		ID:                  "asg-1",
		AdditionalAllowance: decPtr(decimal.NewFromInt(250000)),
		PeriodMonth:         3,
		PeriodYear:          2025,
	})

	require.ErrorIs(t, err, payroll.ErrPayrollStale)
	assert.True(t, result.AdditionalAllowance.Equal(decimal.NewFromInt(250000)))
	assert.True(t, repo.assignments["asg-1"].AdditionalAllowance.Equal(decimal.NewFromInt(250000)))
}

func TestUpdateAssignmentRequiresPeriod(t *testing.T) {
	svc, _, payrollSvc := newTestService()

	_, err := svc.UpdateAssignment(context.Background(), assignment.UpdateAssignmentRequest{
		ID:                  "asg-1",
		AdditionalAllowance: decPtr(decimal.NewFromInt(250000)),
	})

	assert.Error(t, err)
	assert.Empty(t, payrollSvc.calculateCalls)
}

func TestUpdateAssignmentNotFound(t *testing.T) {
	svc, _, payrollSvc := newTestService()

	_, err := svc.UpdateAssignment(context.Background(), assignment.UpdateAssignmentRequest{
		ID:          "asg-missing",
		PeriodMonth: 3,
		PeriodYear:  2025,
	})

	assert.ErrorIs(t, err, assignment.ErrAssignmentNotFound)
	assert.Empty(t, payrollSvc.calculateCalls)
}

func TestUpdateAssignmentInvalidStatus(t *testing.T) {
	svc, _, _ := newTestService()

	status := "archived"
	_, err := svc.UpdateAssignment(context.Background(), assignment.UpdateAssignmentRequest{
		ID:          "asg-1",
		Status:      &status,
		PeriodMonth: 3,
		PeriodYear:  2025,
	})

	assert.Error(t, err)
}

func TestUpdateAssignmentCompletesWithEndDate(t *testing.T) {
	svc, repo, _ := newTestService()

	status := string(assignment.StatusCompleted)
	endDate := "2025-03-20"
	result, err := svc.UpdateAssignment(context.Background(), assignment.UpdateAssignmentRequest{
		ID:          "asg-1",
		Status:      &status,
		EndDate:     &endDate,
		PeriodMonth: 3,
		PeriodYear:  2025,
	})
	require.NoError(t, err)

	assert.Equal(t, string(assignment.StatusCompleted), result.Status)
	require.NotNil(t, result.EndDate)
	assert.Equal(t, "2025-03-20", *result.EndDate)
	assert.Equal(t, assignment.StatusCompleted, repo.assignments["asg-1"].Status)
}
