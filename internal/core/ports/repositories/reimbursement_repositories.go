package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/payflowhq/payflow_backend/internal/core/domain"
)

// ReimbursementReader defines read operations for reimbursement claims.
type ReimbursementReader interface {
	// FindReimbursementByID retrieves a specific claim.
	FindReimbursementByID(ctx context.Context, reimbursementID string) (*domain.Reimbursement, error)

	// FindReimbursementsByUser retrieves a paginated list of a user's claims.
	FindReimbursementsByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Reimbursement, error)

	// FindReimbursementsByStatus retrieves claims in a given status across all
	// users, oldest first.
	FindReimbursementsByStatus(ctx context.Context, status domain.ReimbursementStatus, limit, offset int) ([]domain.Reimbursement, error)
}

// ReimbursementWriter defines write operations for reimbursement claims.
type ReimbursementWriter interface {
	// SaveReimbursement persists a new claim.
	SaveReimbursement(ctx context.Context, r domain.Reimbursement) error

	// UpdateReimbursement rewrites an existing claim.
	UpdateReimbursement(ctx context.Context, r domain.Reimbursement) error

	// MarkReimbursementsPaidInTx transitions the given claims to PAID within tx.
	MarkReimbursementsPaidInTx(ctx context.Context, tx pgx.Tx, ids []string, paidBy string, at time.Time) error
}

// ReimbursementRepositoryFacade combines reimbursement repository interfaces
// with transaction management (payout runs mark many claims paid atomically).
type ReimbursementRepositoryFacade interface {
	TransactionManager
	ReimbursementReader
	ReimbursementWriter
}
