package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/payflowhq/payflow_backend/internal/apperrors"
	"github.com/payflowhq/payflow_backend/internal/core/domain"
	portsrepo "github.com/payflowhq/payflow_backend/internal/core/ports/repositories"
	portssvc "github.com/payflowhq/payflow_backend/internal/core/ports/services"
	"github.com/payflowhq/payflow_backend/internal/dto"
	"github.com/payflowhq/payflow_backend/internal/middleware"
	"github.com/payflowhq/payflow_backend/internal/utils"
)

// settlementDecimals is the minor-unit scale of the settlement asset (USDC
// uses 6 on-chain decimals).
const settlementDecimals = 6

// payoutListPageSize bounds a single payout run.
const payoutListPageSize = 1000

// payoutService aggregates approved monetary items into per-recipient
// settlement batches shaped for the external multisig wallet tool.
type payoutService struct {
	reimbursementRepo portsrepo.ReimbursementRepositoryFacade
	salaryRepo        portsrepo.SalaryRepositoryFacade
	userRepo          portsrepo.UserRepositoryFacade
	now               func() time.Time
}

// NewPayoutService creates a new payout service.
func NewPayoutService(
	reimbursementRepo portsrepo.ReimbursementRepositoryFacade,
	salaryRepo portsrepo.SalaryRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
) portssvc.PayoutSvcFacade {
	return &payoutService{
		reimbursementRepo: reimbursementRepo,
		salaryRepo:        salaryRepo,
		userRepo:          userRepo,
		now:               func() time.Time { return time.Now().UTC() },
	}
}

var _ portssvc.PayoutSvcFacade = (*payoutService)(nil)

// Aggregate groups items by recipient in first-occurrence order, sums each
// recipient's USD amounts exactly, and emits one multisig transaction per
// recipient with a resolvable EVM address. Recipients without one appear in
// Batches and Issues but never in Transactions; every input item lands in
// exactly one batch.
func (s *payoutService) Aggregate(items []domain.PayoutItem, settlementRate decimal.Decimal) domain.AggregationResult {
	if settlementRate.IsZero() {
		settlementRate = decimal.NewFromInt(1)
	}

	result := domain.AggregationResult{
		Items:        items,
		Batches:      []domain.PayoutBatch{},
		Issues:       []domain.PayoutIssue{},
		Transactions: []domain.PayoutTransaction{},
	}

	order := make([]string, 0, len(items))
	byRecipient := make(map[string]*domain.PayoutBatch)
	for _, item := range items {
		batch, ok := byRecipient[item.RecipientID]
		if !ok {
			order = append(order, item.RecipientID)
			batch = &domain.PayoutBatch{
				RecipientID: item.RecipientID,
				EVMAddress:  item.EVMAddress,
				Total:       decimal.Zero,
			}
			byRecipient[item.RecipientID] = batch
		}
		batch.Total = batch.Total.Add(item.USDAmount)
		batch.ItemIDs = append(batch.ItemIDs, item.ItemID)
		if batch.EVMAddress == "" {
			batch.EVMAddress = item.EVMAddress
		}
	}

	for _, recipientID := range order {
		batch := byRecipient[recipientID]
		result.Batches = append(result.Batches, *batch)

		if !utils.IsEVMAddress(batch.EVMAddress) {
			result.Issues = append(result.Issues, domain.PayoutIssue{
				Kind:        domain.PayoutIssueMissingAddress,
				RecipientID: recipientID,
				Detail:      fmt.Sprintf("recipient %s has no EVM-compatible address", recipientID),
			})
			continue
		}

		settlementAmount := batch.Total.Mul(settlementRate).Shift(settlementDecimals).Round(0)
		result.Transactions = append(result.Transactions, domain.PayoutTransaction{
			To:    batch.EVMAddress,
			Value: settlementAmount.String(),
			Metadata: domain.PayoutMetadata{
				RecipientID: recipientID,
				ItemIDs:     batch.ItemIDs,
			},
		})
	}
	return result
}

// BuildPayout collects approved reimbursements (and due salaries when
// requested), aggregates them, and marks every item that made it into the
// transaction list as paid, atomically. Admin only.
func (s *payoutService) BuildPayout(ctx context.Context, req dto.BuildPayoutRequest, actorID string) (*domain.AggregationResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.userRepo.FindUserByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrForbidden
		}
		return nil, err
	}
	if !actor.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	approved, err := s.reimbursementRepo.FindReimbursementsByStatus(ctx, domain.ReimbursementApproved, payoutListPageSize, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load approved reimbursements: %w", err)
	}

	var duePlans []domain.SalaryPlan
	if req.IncludeSalaries {
		plans, perr := s.salaryRepo.FindActiveSalaryPlans(ctx)
		if perr != nil {
			return nil, fmt.Errorf("failed to load salary plans: %w", perr)
		}
		today := s.now()
		for _, plan := range plans {
			if plan.DueOn(today) {
				duePlans = append(duePlans, plan)
			}
		}
	}

	recipientIDs := make([]string, 0, len(approved)+len(duePlans))
	for _, r := range approved {
		recipientIDs = append(recipientIDs, r.UserID)
	}
	for _, p := range duePlans {
		recipientIDs = append(recipientIDs, p.UserID)
	}
	recipients, err := s.userRepo.FindUsersByIDs(ctx, recipientIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipients: %w", err)
	}

	items := make([]domain.PayoutItem, 0, len(approved)+len(duePlans))
	for _, r := range approved {
		items = append(items, domain.PayoutItem{
			ItemID:      r.ReimbursementID,
			Kind:        domain.PayoutItemReimbursement,
			RecipientID: r.UserID,
			USDAmount:   r.USDAmount,
			EVMAddress:  recipients[r.UserID].EVMAddress,
		})
	}
	for _, p := range duePlans {
		// Salary plans are denominated in USD-pegged currencies only, so the
		// plan amount is already the USD-equivalent.
		items = append(items, domain.PayoutItem{
			ItemID:      p.SalaryPlanID,
			Kind:        domain.PayoutItemSalary,
			RecipientID: p.UserID,
			USDAmount:   p.Amount,
			EVMAddress:  recipients[p.UserID].EVMAddress,
		})
	}

	rate := decimal.NewFromInt(1)
	if req.SettlementRate != nil {
		rate = *req.SettlementRate
	}
	result := s.Aggregate(items, rate)

	if req.DryRun {
		return &result, nil
	}

	// Only items that made it into the transaction list get marked paid;
	// recipients reported in Issues keep their items pending.
	paidReimbursements := make([]string, 0, len(approved))
	paidPlans := make([]string, 0, len(duePlans))
	settled := make(map[string]bool)
	for _, txn := range result.Transactions {
		settled[txn.Metadata.RecipientID] = true
	}
	for _, r := range approved {
		if settled[r.UserID] {
			paidReimbursements = append(paidReimbursements, r.ReimbursementID)
		}
	}
	for _, p := range duePlans {
		if settled[p.UserID] {
			paidPlans = append(paidPlans, p.SalaryPlanID)
		}
	}

	if len(paidReimbursements) > 0 || len(paidPlans) > 0 {
		tx, terr := s.reimbursementRepo.Begin(ctx)
		if terr != nil {
			return nil, terr
		}
		defer s.reimbursementRepo.Rollback(ctx, tx)

		now := s.now()
		if len(paidReimbursements) > 0 {
			if err := s.reimbursementRepo.MarkReimbursementsPaidInTx(ctx, tx, paidReimbursements, actorID, now); err != nil {
				return nil, fmt.Errorf("failed to mark reimbursements paid: %w", err)
			}
		}
		if len(paidPlans) > 0 {
			if err := s.salaryRepo.MarkSalaryPlansPaidInTx(ctx, tx, paidPlans, actorID, now); err != nil {
				return nil, fmt.Errorf("failed to mark salaries paid: %w", err)
			}
		}
		if err := s.reimbursementRepo.Commit(ctx, tx); err != nil {
			return nil, err
		}
	}

	logger.Info("Payout batch built",
		slog.Int("items", len(items)),
		slog.Int("batches", len(result.Batches)),
		slog.Int("transactions", len(result.Transactions)),
		slog.Int("issues", len(result.Issues)))
	return &result, nil
}
