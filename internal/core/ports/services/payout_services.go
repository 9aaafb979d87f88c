package services

import (
	"context"

	"github.com/payflowhq/payflow_backend/internal/core/domain"
	"github.com/payflowhq/payflow_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// PayoutSvcFacade builds settlement batches for the external multisig tool.
type PayoutSvcFacade interface {
	// Aggregate groups monetary items by recipient, sums them exactly,
	// resolves destination addresses, and produces the payout payload.
	// Empty input yields an empty result, never an error.
	Aggregate(items []domain.PayoutItem, settlementRate decimal.Decimal) domain.AggregationResult

	// BuildPayout aggregates the currently approved reimbursements (and due
	// salaries when requested) and, unless DryRun, marks them paid in one
	// transaction. Admin only.
	BuildPayout(ctx context.Context, req dto.BuildPayoutRequest, actorID string) (*domain.AggregationResult, error)
}
