package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/facilops/payroll-backend-go/internal/domain/payroll"
	"github.com/facilops/payroll-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

const payrollColumns = `p.id, p.employee_id, p.month, p.year, p.base_salary, p.bonus_total,
	   p.penalty_total, p.allowance_total, p.overtime_total, p.insurance_total,
	   p.advance_total, p.final_salary, p.paid_amount, p.remaining_amount,
	   p.status, p.total_days, p.payment_date, p.note, p.version,
	   p.created_at, p.updated_at,
	   e.full_name AS employee_name, e.employee_code AS employee_code`

func scanPayroll(row pgx.Row) (payroll.Payroll, error) {
	var p payroll.Payroll
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.Month, &p.Year, &p.BaseSalary, &p.BonusTotal,
		&p.PenaltyTotal, &p.AllowanceTotal, &p.OvertimeTotal, &p.InsuranceTotal,
		&p.AdvanceTotal, &p.FinalSalary, &p.PaidAmount, &p.RemainingAmount,
		&p.Status, &p.TotalDays, &p.PaymentDate, &p.Note, &p.Version,
		&p.CreatedAt, &p.UpdatedAt,
		&p.EmployeeName, &p.EmployeeCode,
	)
	return p, err
}

func (r *payrollRepository) GetByID(ctx context.Context, id string) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM payrolls p
		LEFT JOIN employees e ON p.employee_id = e.id
		WHERE p.id = $1
	`, payrollColumns)

	p, err := scanPayroll(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Payroll{}, payroll.ErrPayrollNotFound
		}
		return payroll.Payroll{}, fmt.Errorf("failed to get payroll: %w", err)
	}

	return p, nil
}

func (r *payrollRepository) GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM payrolls p
		LEFT JOIN employees e ON p.employee_id = e.id
		WHERE p.employee_id = $1 AND p.month = $2 AND p.year = $3
	`, payrollColumns)

	p, err := scanPayroll(q.QueryRow(ctx, query, employeeID, month, year))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Payroll{}, payroll.ErrPayrollNotFound
		}
		return payroll.Payroll{}, fmt.Errorf("failed to get payroll by period: %w", err)
	}

	return p, nil
}

func (r *payrollRepository) Create(ctx context.Context, p payroll.Payroll) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	id := uuid.Must(uuid.NewV7()).String()

	query := `
		INSERT INTO payrolls (
			id, employee_id, month, year, base_salary, bonus_total, penalty_total,
			allowance_total, overtime_total, insurance_total, advance_total,
			final_salary, paid_amount, remaining_amount, status, total_days, note, version
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, 1)
		RETURNING id
	`

	_, err := q.Exec(ctx, query,
		id, p.EmployeeID, p.Month, p.Year, p.BaseSalary, p.BonusTotal, p.PenaltyTotal,
		p.AllowanceTotal, p.OvertimeTotal, p.InsuranceTotal, p.AdvanceTotal,
		p.FinalSalary, p.PaidAmount, p.RemainingAmount, p.Status, p.TotalDays, p.Note,
	)
	if err != nil {
		return payroll.Payroll{}, fmt.Errorf("failed to create payroll: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *payrollRepository) UpdateComputed(ctx context.Context, p payroll.Payroll) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payrolls
		SET base_salary = $3, bonus_total = $4, penalty_total = $5,
			allowance_total = $6, overtime_total = $7, insurance_total = $8,
			advance_total = $9, final_salary = $10, remaining_amount = $11,
			status = $12, total_days = $13, note = $14,
			version = version + 1, updated_at = NOW()
		WHERE id = $1 AND version = $2
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		p.ID, p.Version, p.BaseSalary, p.BonusTotal, p.PenaltyTotal,
		p.AllowanceTotal, p.OvertimeTotal, p.InsuranceTotal,
		p.AdvanceTotal, p.FinalSalary, p.RemainingAmount,
		p.Status, p.TotalDays, p.Note,
	).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Payroll{}, r.versionConflictOrNotFound(ctx, p.ID)
		}
		return payroll.Payroll{}, fmt.Errorf("failed to update payroll: %w", err)
	}

	return r.GetByID(ctx, p.ID)
}

func (r *payrollRepository) ApplyPayment(ctx context.Context, p payroll.Payroll) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payrolls
		SET paid_amount = $3, remaining_amount = $4, status = $5, payment_date = $6,
			version = version + 1, updated_at = NOW()
		WHERE id = $1 AND version = $2
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		p.ID, p.Version, p.PaidAmount, p.RemainingAmount, p.Status, p.PaymentDate,
	).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Payroll{}, r.versionConflictOrNotFound(ctx, p.ID)
		}
		return payroll.Payroll{}, fmt.Errorf("failed to apply payment: %w", err)
	}

	return r.GetByID(ctx, p.ID)
}

// versionConflictOrNotFound disambiguates a zero-row optimistic update: the
// row either disappeared or moved past the expected version.
func (r *payrollRepository) versionConflictOrNotFound(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM payrolls WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check payroll existence: %w", err)
	}
	if exists {
		return payroll.ErrPayrollModified
	}
	return payroll.ErrPayrollNotFound
}

func (r *payrollRepository) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.Payroll, int64, error) {
	q := GetQuerier(ctx, r.db)

	where, args := buildPayrollFilter(filter)

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM payrolls p %s`, where)
	var totalCount int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count payrolls: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	query := fmt.Sprintf(`
		SELECT %s
		FROM payrolls p
		LEFT JOIN employees e ON p.employee_id = e.id
		%s
		ORDER BY p.year DESC, p.month DESC, p.created_at DESC
		LIMIT %d OFFSET %d
	`, payrollColumns, where, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payrolls: %w", err)
	}
	defer rows.Close()

	var payrolls []payroll.Payroll
	for rows.Next() {
		p, err := scanPayroll(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll: %w", err)
		}
		payrolls = append(payrolls, p)
	}

	return payrolls, totalCount, nil
}

func (r *payrollRepository) Overview(ctx context.Context, filter payroll.PayrollFilter) (payroll.PayrollOverviewResponse, error) {
	q := GetQuerier(ctx, r.db)

	where, args := buildPayrollFilter(filter)

	query := fmt.Sprintf(`
		SELECT COALESCE(SUM(p.final_salary), 0),
			   COUNT(*) FILTER (WHERE p.status = 'paid'),
			   COUNT(*) FILTER (WHERE p.status = 'unpaid'),
			   COUNT(*) FILTER (WHERE p.status = 'partial_paid')
		FROM payrolls p
		%s
	`, where)

	var overview payroll.PayrollOverviewResponse
	err := q.QueryRow(ctx, query, args...).Scan(
		&overview.TotalFinalSalary,
		&overview.PaidPayrolls,
		&overview.UnpaidPayrolls,
		&overview.PartialPaidPayrolls,
	)
	if err != nil {
		return payroll.PayrollOverviewResponse{}, fmt.Errorf("failed to get payroll overview: %w", err)
	}

	return overview, nil
}

func buildPayrollFilter(filter payroll.PayrollFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}
	argIdx := 1

	if filter.Month != nil {
		conditions = append(conditions, fmt.Sprintf("p.month = $%d", argIdx))
		args = append(args, *filter.Month)
		argIdx++
	}
	if filter.Year != nil {
		conditions = append(conditions, fmt.Sprintf("p.year = $%d", argIdx))
		args = append(args, *filter.Year)
		argIdx++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("p.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("p.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}
