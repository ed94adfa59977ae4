package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/facilops/payroll-backend-go/internal/domain/attendance"
	"github.com/facilops/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `id, assignment_id, employee_id, customer_id, date, work_hours,
	   bonus, penalty, support_cost, overtime_amount, is_overtime, description,
	   created_at, updated_at`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var a attendance.Attendance
	err := row.Scan(
		&a.ID, &a.AssignmentID, &a.EmployeeID, &a.CustomerID, &a.Date, &a.WorkHours,
		&a.Bonus, &a.Penalty, &a.SupportCost, &a.OvertimeAmount, &a.IsOvertime, &a.Description,
		&a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM attendances WHERE id = $1`, attendanceColumns)

	a, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return a, nil
}

func (r *attendanceRepository) GetByEmployeeAndMonth(ctx context.Context, employeeID string, month, year int) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendances
		WHERE employee_id = $1 AND date >= $2 AND date < $3
		ORDER BY date
	`, attendanceColumns)

	rows, err := q.Query(ctx, query, employeeID, monthStart, monthEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, a)
	}

	return records, nil
}

func (r *attendanceRepository) Update(ctx context.Context, a attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET date = $2, work_hours = $3, bonus = $4, penalty = $5, support_cost = $6,
			overtime_amount = $7, is_overtime = $8, description = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		a.ID, a.Date, a.WorkHours, a.Bonus, a.Penalty, a.SupportCost,
		a.OvertimeAmount, a.IsOvertime, a.Description,
	).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to update attendance: %w", err)
	}

	return nil
}
