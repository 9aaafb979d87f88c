package services

import (
	"context"

	"github.com/payflowhq/payflow_backend/internal/core/domain"
	"github.com/payflowhq/payflow_backend/internal/dto"
)

// ReimbursementSvcFacade defines the reimbursement claim workflow.
type ReimbursementSvcFacade interface {
	// Submit creates a new claim for the acting user, capturing the
	// USD-equivalent amount with the currently resolvable rate.
	Submit(ctx context.Context, req dto.CreateReimbursementRequest, actorID string) (*domain.Reimbursement, error)

	// GetByID retrieves a claim, enforcing owner-or-admin access.
	GetByID(ctx context.Context, reimbursementID string, requesterID string) (*domain.Reimbursement, error)

	// ListByUser retrieves a page of a user's claims.
	ListByUser(ctx context.Context, userID string, requesterID string, limit, offset int) ([]domain.Reimbursement, error)

	// ListByStatus retrieves claims in a status across all users; admin only.
	ListByStatus(ctx context.Context, status domain.ReimbursementStatus, requesterID string, limit, offset int) ([]domain.Reimbursement, error)

	// Review approves or rejects a submitted claim; admin only.
	Review(ctx context.Context, reimbursementID string, req dto.ReviewReimbursementRequest, reviewerID string) (*domain.Reimbursement, error)
}
