package attendance

import (
	"context"
	"fmt"

	"github.com/facilops/payroll-backend-go/internal/domain/attendance"
	"github.com/facilops/payroll-backend-go/internal/domain/payroll"
	"github.com/facilops/payroll-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	payrollService payroll.PayrollService
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	payrollService payroll.PayrollService,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		payrollService: payrollService,
	}
}

func (s *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	record, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.ToResponse(record), nil
}

func (s *AttendanceServiceImpl) ListByEmployeeAndMonth(ctx context.Context, employeeID string, month, year int) ([]attendance.AttendanceResponse, error) {
	records, err := s.attendanceRepo.GetByEmployeeAndMonth(ctx, employeeID, month, year)
	if err != nil {
		return nil, err
	}

	result := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		result = append(result, attendance.ToResponse(r))
	}
	return result, nil
}

// UpdateAttendance runs the edit stage then the recalculation stage of the
// pipeline. The stages are not one transaction: the attendance store and the
// payroll store are only linked by the recalculation call, so a failure in
// stage two leaves a persisted edit and a stale payroll. That state is
// reported via payroll.ErrPayrollStale instead of being hidden or rolled
// back.
func (s *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	current, err := s.attendanceRepo.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	// A date edit can move the record into a different month, in which case
	// the original period's payroll also holds a day that no longer belongs
	// to it and must be recomputed too.
	originalMonth := int(current.Date.Month())
	originalYear := current.Date.Year()

	// Merge the edit onto the fetched row so omitted fields round-trip
	// unchanged.
	if req.Date != nil {
		if parsed, ok := validator.IsValidDate(*req.Date); ok {
			current.Date = parsed
		}
	}
	if req.WorkHours != nil {
		current.WorkHours = *req.WorkHours
	}
	if req.Bonus != nil {
		current.Bonus = *req.Bonus
	}
	if req.Penalty != nil {
		current.Penalty = *req.Penalty
	}
	if req.SupportCost != nil {
		current.SupportCost = *req.SupportCost
	}
	if req.OvertimeAmount != nil {
		current.OvertimeAmount = *req.OvertimeAmount
	}
	if req.IsOvertime != nil {
		current.IsOvertime = *req.IsOvertime
	}
	if req.Description != nil {
		current.Description = req.Description
	}

	if err := s.attendanceRepo.Update(ctx, current); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	// Recalculate the edited record's period, and the original period when
	// the edit moved the record across a month boundary. Adjustment overrides
	// are omitted so stored insurance/advance survive. Both periods are
	// attempted even if the first fails, so neither payroll is left stale
	// without at least a recalculation attempt.
	periods := [][2]int{{int(current.Date.Month()), current.Date.Year()}}
	if originalMonth != periods[0][0] || originalYear != periods[0][1] {
		periods = append(periods, [2]int{originalMonth, originalYear})
	}

	var recalcErr error
	for _, period := range periods {
		_, err := s.payrollService.Calculate(ctx, payroll.CalculatePayrollRequest{
			EmployeeID: current.EmployeeID,
			Month:      period[0],
			Year:       period[1],
		})
		if err != nil && recalcErr == nil {
			recalcErr = err
		}
	}
	if recalcErr != nil {
		return attendance.ToResponse(current), fmt.Errorf("%w: %v", payroll.ErrPayrollStale, recalcErr)
	}

	return attendance.ToResponse(current), nil
}
