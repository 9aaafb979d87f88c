package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/payflowhq/payflow_backend/internal/apperrors"
	"github.com/payflowhq/payflow_backend/internal/core/domain"
	portsrepo "github.com/payflowhq/payflow_backend/internal/core/ports/repositories"
	"github.com/payflowhq/payflow_backend/internal/models"
)

type PgxSalaryRepository struct {
	BaseRepository
}

func newPgxSalaryRepository(db *pgxpool.Pool) portsrepo.SalaryRepositoryFacade {
	return &PgxSalaryRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.SalaryRepositoryFacade = (*PgxSalaryRepository)(nil)

const salaryPlanColumns = `salary_plan_id, user_id, amount, currency_code, pay_day, is_active, last_paid_at,
		created_at, created_by, last_updated_at, last_updated_by`

func toDomainSalaryPlan(m models.SalaryPlan) domain.SalaryPlan {
	d := domain.SalaryPlan{
		SalaryPlanID: m.SalaryPlanID,
		UserID:       m.UserID,
		Amount:       m.Amount,
		CurrencyCode: m.CurrencyCode,
		PayDay:       m.PayDay,
		IsActive:     m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
	if m.LastPaidAt.Valid {
		t := m.LastPaidAt.Time
		d.LastPaidAt = &t
	}
	return d
}

func scanSalaryPlan(row pgx.Row) (models.SalaryPlan, error) {
	var m models.SalaryPlan
	err := row.Scan(
		&m.SalaryPlanID,
		&m.UserID,
		&m.Amount,
		&m.CurrencyCode,
		&m.PayDay,
		&m.IsActive,
		&m.LastPaidAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxSalaryRepository) SaveSalaryPlan(ctx context.Context, plan domain.SalaryPlan) error {
	query := `
        INSERT INTO salary_plans (salary_plan_id, user_id, amount, currency_code, pay_day, is_active,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
    `
	_, err := r.Pool.Exec(ctx, query,
		plan.SalaryPlanID,
		plan.UserID,
		plan.Amount,
		plan.CurrencyCode,
		plan.PayDay,
		plan.IsActive,
		plan.CreatedAt,
		plan.CreatedBy,
		plan.LastUpdatedAt,
		plan.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save salary plan: %w", err)
	}
	return nil
}

func (r *PgxSalaryRepository) FindSalaryPlanByID(ctx context.Context, planID string) (*domain.SalaryPlan, error) {
	query := `SELECT ` + salaryPlanColumns + ` FROM salary_plans WHERE salary_plan_id = $1;`
	m, err := scanSalaryPlan(r.Pool.QueryRow(ctx, query, planID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find salary plan by ID %s: %w", planID, err)
	}
	d := toDomainSalaryPlan(m)
	return &d, nil
}

func (r *PgxSalaryRepository) FindSalaryPlansByUser(ctx context.Context, userID string) ([]domain.SalaryPlan, error) {
	query := `
        SELECT ` + salaryPlanColumns + `
        FROM salary_plans
        WHERE user_id = $1
        ORDER BY created_at ASC;
    `
	return r.querySalaryPlans(ctx, query, userID)
}

func (r *PgxSalaryRepository) FindActiveSalaryPlans(ctx context.Context) ([]domain.SalaryPlan, error) {
	query := `
        SELECT ` + salaryPlanColumns + `
        FROM salary_plans
        WHERE is_active = TRUE
        ORDER BY created_at ASC;
    `
	return r.querySalaryPlans(ctx, query)
}

func (r *PgxSalaryRepository) querySalaryPlans(ctx context.Context, query string, args ...any) ([]domain.SalaryPlan, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query salary plans: %w", err)
	}
	defer rows.Close()

	plans := []domain.SalaryPlan{}
	for rows.Next() {
		m, err := scanSalaryPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary plan row: %w", err)
		}
		plans = append(plans, toDomainSalaryPlan(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating salary plan rows: %w", rows.Err())
	}
	return plans, nil
}

func (r *PgxSalaryRepository) UpdateSalaryPlan(ctx context.Context, plan domain.SalaryPlan) error {
	query := `
        UPDATE salary_plans
        SET amount = $1, currency_code = $2, pay_day = $3, is_active = $4,
            last_updated_at = $5, last_updated_by = $6
        WHERE salary_plan_id = $7;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		plan.Amount,
		plan.CurrencyCode,
		plan.PayDay,
		plan.IsActive,
		plan.LastUpdatedAt,
		plan.LastUpdatedBy,
		plan.SalaryPlanID,
	)
	if err != nil {
		return fmt.Errorf("failed to update salary plan: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxSalaryRepository) MarkSalaryPlansPaidInTx(ctx context.Context, tx pgx.Tx, planIDs []string, paidBy string, at time.Time) error {
	if len(planIDs) == 0 {
		return nil
	}
	query := `
        UPDATE salary_plans
        SET last_paid_at = $1, last_updated_at = $1, last_updated_by = $2
        WHERE salary_plan_id = ANY($3);
    `
	cmdTag, err := tx.Exec(ctx, query, at, paidBy, planIDs)
	if err != nil {
		return fmt.Errorf("failed to mark salary plans paid: %w", err)
	}
	if int(cmdTag.RowsAffected()) != len(planIDs) {
		return fmt.Errorf("%w: expected %d salary plans to record payment, got %d", apperrors.ErrConsistency, len(planIDs), cmdTag.RowsAffected())
	}
	return nil
}
