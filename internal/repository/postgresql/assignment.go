package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/facilops/payroll-backend-go/internal/domain/assignment"
	"github.com/facilops/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type assignmentRepository struct {
	db *database.DB
}

func NewAssignmentRepository(db *database.DB) assignment.AssignmentRepository {
	return &assignmentRepository{db: db}
}

const assignmentColumns = `id, employee_id, customer_id, contract_id, type, salary_at_time,
	   planned_days, additional_allowance, status, start_date, end_date,
	   created_at, updated_at`

func scanAssignment(row pgx.Row) (assignment.Assignment, error) {
	var a assignment.Assignment
	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.CustomerID, &a.ContractID, &a.Type, &a.SalaryAtTime,
		&a.PlannedDays, &a.AdditionalAllowance, &a.Status, &a.StartDate, &a.EndDate,
		&a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

func (r *assignmentRepository) GetByID(ctx context.Context, id string) (assignment.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM assignments WHERE id = $1`, assignmentColumns)

	a, err := scanAssignment(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return assignment.Assignment{}, assignment.ErrAssignmentNotFound
		}
		return assignment.Assignment{}, fmt.Errorf("failed to get assignment: %w", err)
	}

	return a, nil
}

func (r *assignmentRepository) GetByEmployeeAndPeriod(ctx context.Context, employeeID string, month, year int) ([]assignment.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	periodStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	periodEnd := periodStart.AddDate(0, 1, 0).Add(-time.Nanosecond)

	// An assignment overlaps the period if it started before the period ends
	// and has not ended before the period starts.
	query := fmt.Sprintf(`
		SELECT %s
		FROM assignments
		WHERE employee_id = $1
		  AND start_date <= $2
		  AND (end_date IS NULL OR end_date >= $3)
		ORDER BY start_date
	`, assignmentColumns)

	rows, err := q.Query(ctx, query, employeeID, periodEnd, periodStart)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	defer rows.Close()

	var assignments []assignment.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}

	return assignments, nil
}

func (r *assignmentRepository) Update(ctx context.Context, a assignment.Assignment) error {
	q := GetQuerier(ctx, r.db)

	// Full-row update: the service merged the edit onto the fetched record,
	// so every column round-trips.
	query := `
		UPDATE assignments
		SET salary_at_time = $2, planned_days = $3, additional_allowance = $4,
			status = $5, end_date = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		a.ID, a.SalaryAtTime, a.PlannedDays, a.AdditionalAllowance, a.Status, a.EndDate,
	).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return assignment.ErrAssignmentNotFound
		}
		return fmt.Errorf("failed to update assignment: %w", err)
	}

	return nil
}
