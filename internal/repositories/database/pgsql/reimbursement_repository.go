package pgsql

import (
	"context"
	"database/sql"
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

type PgxReimbursementRepository struct {
	BaseRepository
}

func newPgxReimbursementRepository(db *pgxpool.Pool) portsrepo.ReimbursementRepositoryFacade {
	return &PgxReimbursementRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.ReimbursementRepositoryFacade = (*PgxReimbursementRepository)(nil)

const reimbursementColumns = `reimbursement_id, user_id, amount, currency_code, usd_amount, exchange_rate, rate_source,
		is_fallback_rate, description, expense_date, status, reviewed_by, reviewed_at, review_note,
		created_at, created_by, last_updated_at, last_updated_by`

func toDomainReimbursement(m models.Reimbursement) domain.Reimbursement {
	d := domain.Reimbursement{
		ReimbursementID: m.ReimbursementID,
		UserID:          m.UserID,
		Amount:          m.Amount,
		CurrencyCode:    m.CurrencyCode,
		USDAmount:       m.USDAmount,
		ExchangeRate:    m.ExchangeRate,
		RateSource:      domain.RateSource(m.RateSource),
		IsFallbackRate:  m.IsFallbackRate,
		Description:     m.Description,
		ExpenseDate:     m.ExpenseDate,
		Status:          domain.ReimbursementStatus(m.Status),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
	if m.ReviewedBy.Valid {
		v := m.ReviewedBy.String
		d.ReviewedBy = &v
	}
	if m.ReviewedAt.Valid {
		t := m.ReviewedAt.Time
		d.ReviewedAt = &t
	}
	if m.ReviewNote.Valid {
		v := m.ReviewNote.String
		d.ReviewNote = &v
	}
	return d
}

func scanReimbursement(row pgx.Row) (models.Reimbursement, error) {
	var m models.Reimbursement
	err := row.Scan(
		&m.ReimbursementID,
		&m.UserID,
		&m.Amount,
		&m.CurrencyCode,
		&m.USDAmount,
		&m.ExchangeRate,
		&m.RateSource,
		&m.IsFallbackRate,
		&m.Description,
		&m.ExpenseDate,
		&m.Status,
		&m.ReviewedBy,
		&m.ReviewedAt,
		&m.ReviewNote,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxReimbursementRepository) SaveReimbursement(ctx context.Context, d domain.Reimbursement) error {
	query := `
        INSERT INTO reimbursements (reimbursement_id, user_id, amount, currency_code, usd_amount, exchange_rate, rate_source,
            is_fallback_rate, description, expense_date, status, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
    `
	_, err := r.Pool.Exec(ctx, query,
		d.ReimbursementID,
		d.UserID,
		d.Amount,
		d.CurrencyCode,
		d.USDAmount,
		d.ExchangeRate,
		string(d.RateSource),
		d.IsFallbackRate,
		d.Description,
		d.ExpenseDate,
		string(d.Status),
		d.CreatedAt,
		d.CreatedBy,
		d.LastUpdatedAt,
		d.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save reimbursement: %w", err)
	}
	return nil
}

func (r *PgxReimbursementRepository) FindReimbursementByID(ctx context.Context, reimbursementID string) (*domain.Reimbursement, error) {
	query := `SELECT ` + reimbursementColumns + ` FROM reimbursements WHERE reimbursement_id = $1;`
	m, err := scanReimbursement(r.Pool.QueryRow(ctx, query, reimbursementID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reimbursement by ID %s: %w", reimbursementID, err)
	}
	d := toDomainReimbursement(m)
	return &d, nil
}

func (r *PgxReimbursementRepository) FindReimbursementsByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Reimbursement, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `
        SELECT ` + reimbursementColumns + `
        FROM reimbursements
        WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3;
    `
	return r.queryReimbursements(ctx, query, userID, limit, offset)
}

func (r *PgxReimbursementRepository) FindReimbursementsByStatus(ctx context.Context, status domain.ReimbursementStatus, limit, offset int) ([]domain.Reimbursement, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `
        SELECT ` + reimbursementColumns + `
        FROM reimbursements
        WHERE status = $1
        ORDER BY created_at ASC
        LIMIT $2 OFFSET $3;
    `
	return r.queryReimbursements(ctx, query, string(status), limit, offset)
}

func (r *PgxReimbursementRepository) queryReimbursements(ctx context.Context, query string, args ...any) ([]domain.Reimbursement, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reimbursements: %w", err)
	}
	defer rows.Close()

	result := []domain.Reimbursement{}
	for rows.Next() {
		m, err := scanReimbursement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reimbursement row: %w", err)
		}
		result = append(result, toDomainReimbursement(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating reimbursement rows: %w", rows.Err())
	}
	return result, nil
}

func (r *PgxReimbursementRepository) UpdateReimbursement(ctx context.Context, d domain.Reimbursement) error {
	reviewedBy := sql.NullString{}
	if d.ReviewedBy != nil {
		reviewedBy = sql.NullString{String: *d.ReviewedBy, Valid: true}
	}
	reviewedAt := sql.NullTime{}
	if d.ReviewedAt != nil {
		reviewedAt = sql.NullTime{Time: *d.ReviewedAt, Valid: true}
	}
	reviewNote := sql.NullString{}
	if d.ReviewNote != nil {
		reviewNote = sql.NullString{String: *d.ReviewNote, Valid: true}
	}

	query := `
        UPDATE reimbursements
        SET status = $1, reviewed_by = $2, reviewed_at = $3, review_note = $4,
            last_updated_at = $5, last_updated_by = $6
        WHERE reimbursement_id = $7;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		string(d.Status),
		reviewedBy,
		reviewedAt,
		reviewNote,
		d.LastUpdatedAt,
		d.LastUpdatedBy,
		d.ReimbursementID,
	)
	if err != nil {
		return fmt.Errorf("failed to update reimbursement: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxReimbursementRepository) MarkReimbursementsPaidInTx(ctx context.Context, tx pgx.Tx, ids []string, paidBy string, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	query := `
        UPDATE reimbursements
        SET status = $1, last_updated_at = $2, last_updated_by = $3
        WHERE reimbursement_id = ANY($4) AND status = $5;
    `
	cmdTag, err := tx.Exec(ctx, query,
		string(domain.ReimbursementPaid),
		at,
		paidBy,
		ids,
		string(domain.ReimbursementApproved),
	)
	if err != nil {
		return fmt.Errorf("failed to mark reimbursements paid: %w", err)
	}
	if int(cmdTag.RowsAffected()) != len(ids) {
		return fmt.Errorf("%w: expected %d reimbursements to transition to PAID, got %d", apperrors.ErrConsistency, len(ids), cmdTag.RowsAffected())
	}
	return nil
}
