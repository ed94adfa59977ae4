package assignment

import (
	"context"
	"fmt"

	"github.com/facilops/payroll-backend-go/internal/domain/assignment"
	"github.com/facilops/payroll-backend-go/internal/domain/payroll"
	"github.com/facilops/payroll-backend-go/internal/pkg/validator"
)

type AssignmentServiceImpl struct {
	assignmentRepo assignment.AssignmentRepository
	payrollService payroll.PayrollService
}

func NewAssignmentService(
	assignmentRepo assignment.AssignmentRepository,
	payrollService payroll.PayrollService,
) assignment.AssignmentService {
	return &AssignmentServiceImpl{
		assignmentRepo: assignmentRepo,
		payrollService: payrollService,
	}
}

func (s *AssignmentServiceImpl) GetAssignment(ctx context.Context, id string) (assignment.AssignmentResponse, error) {
	a, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return assignment.AssignmentResponse{}, err
	}
	return assignment.ToResponse(a), nil
}

func (s *AssignmentServiceImpl) ListByEmployeeAndPeriod(ctx context.Context, employeeID string, month, year int) ([]assignment.AssignmentResponse, error) {
	assignments, err := s.assignmentRepo.GetByEmployeeAndPeriod(ctx, employeeID, month, year)
	if err != nil {
		return nil, err
	}

	result := make([]assignment.AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		result = append(result, assignment.ToResponse(a))
	}
	return result, nil
}

// UpdateAssignment merges the edit onto the stored row, persists it, then
// recalculates the named period's payroll so an allowance change flows back
// into the final salary. Same stale-payroll semantics as attendance edits.
func (s *AssignmentServiceImpl) UpdateAssignment(ctx context.Context, req assignment.UpdateAssignmentRequest) (assignment.AssignmentResponse, error) {
	if err := req.Validate(); err != nil {
		return assignment.AssignmentResponse{}, err
	}

	current, err := s.assignmentRepo.GetByID(ctx, req.ID)
	if err != nil {
		return assignment.AssignmentResponse{}, err
	}

	if req.SalaryAtTime != nil {
		current.SalaryAtTime = *req.SalaryAtTime
	}
	if req.PlannedDays != nil {
		current.PlannedDays = *req.PlannedDays
	}
	if req.AdditionalAllowance != nil {
		current.AdditionalAllowance = *req.AdditionalAllowance
	}
	if req.Status != nil {
		current.Status = assignment.AssignmentStatus(*req.Status)
	}
	if req.EndDate != nil {
		if parsed, ok := validator.IsValidDate(*req.EndDate); ok {
			current.EndDate = &parsed
		}
	}

	if err := s.assignmentRepo.Update(ctx, current); err != nil {
		return assignment.AssignmentResponse{}, err
	}

	_, err = s.payrollService.Calculate(ctx, payroll.CalculatePayrollRequest{
		EmployeeID: current.EmployeeID,
		Month:      req.PeriodMonth,
		Year:       req.PeriodYear,
	})
	if err != nil {
		return assignment.ToResponse(current), fmt.Errorf("%w: %v", payroll.ErrPayrollStale, err)
	}

	return assignment.ToResponse(current), nil
}
