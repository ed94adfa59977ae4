package postgresql

import (
	"context"
	"fmt"

	"github.com/facilops/payroll-backend-go/internal/domain/payroll"
	"github.com/facilops/payroll-backend-go/internal/pkg/database"
	"github.com/google/uuid"
)

type installmentRepository struct {
	db *database.DB
}

func NewInstallmentRepository(db *database.DB) payroll.InstallmentRepository {
	return &installmentRepository{db: db}
}

func (r *installmentRepository) Append(ctx context.Context, inst payroll.PaymentInstallment) (payroll.PaymentInstallment, error) {
	q := GetQuerier(ctx, r.db)

	id := uuid.Must(uuid.NewV7()).String()

	// The installment number is assigned here, not by the caller, so the
	// sequence stays gapless and monotonic per payroll.
	query := `
		INSERT INTO payment_installments (id, payroll_id, installment_number, payment_date, amount, recorded_by)
		VALUES (
			$1, $2,
			(SELECT COALESCE(MAX(installment_number), 0) + 1 FROM payment_installments WHERE payroll_id = $2),
			$3, $4, $5
		)
		RETURNING id, payroll_id, installment_number, payment_date, amount, recorded_by, created_at
	`

	var created payroll.PaymentInstallment
	err := q.QueryRow(ctx, query,
		id, inst.PayrollID, inst.PaymentDate, inst.Amount, inst.RecordedBy,
	).Scan(
		&created.ID, &created.PayrollID, &created.InstallmentNumber,
		&created.PaymentDate, &created.Amount, &created.RecordedBy, &created.CreatedAt,
	)
	if err != nil {
		return payroll.PaymentInstallment{}, fmt.Errorf("failed to append installment: %w", err)
	}

	return created, nil
}

func (r *installmentRepository) ListByPayroll(ctx context.Context, payrollID string) ([]payroll.PaymentInstallment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, payroll_id, installment_number, payment_date, amount, recorded_by, created_at
		FROM payment_installments
		WHERE payroll_id = $1
		ORDER BY installment_number
	`

	rows, err := q.Query(ctx, query, payrollID)
	if err != nil {
		return nil, fmt.Errorf("failed to list installments: %w", err)
	}
	defer rows.Close()

	var installments []payroll.PaymentInstallment
	for rows.Next() {
		var inst payroll.PaymentInstallment
		if err := rows.Scan(
			&inst.ID, &inst.PayrollID, &inst.InstallmentNumber,
			&inst.PaymentDate, &inst.Amount, &inst.RecordedBy, &inst.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan installment: %w", err)
		}
		installments = append(installments, inst)
	}

	return installments, nil
}
