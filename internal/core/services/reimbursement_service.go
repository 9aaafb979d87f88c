package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/payflowhq/payflow_backend/internal/apperrors"
	"github.com/payflowhq/payflow_backend/internal/core/domain"
	portsrepo "github.com/payflowhq/payflow_backend/internal/core/ports/repositories"
	portssvc "github.com/payflowhq/payflow_backend/internal/core/ports/services"
	"github.com/payflowhq/payflow_backend/internal/dto"
	"github.com/payflowhq/payflow_backend/internal/middleware"
)

var (
	ErrAlreadyReviewed = errors.New("reimbursement has already been reviewed")
)

// reimbursementService implements the expense claim workflow. The
// USD-equivalent of each claim is captured at submission time with whatever
// rate is resolvable; a fallback rate never blocks submission, it is just
// tagged on the stored claim.
type reimbursementService struct {
	reimbursementRepo portsrepo.ReimbursementRepositoryFacade
	userRepo          portsrepo.UserReader
	rateSvc           portssvc.RateSvcFacade
	now               func() time.Time
}

// NewReimbursementService creates a new reimbursement service.
func NewReimbursementService(
	reimbursementRepo portsrepo.ReimbursementRepositoryFacade,
	userRepo portsrepo.UserReader,
	rateSvc portssvc.RateSvcFacade,
) portssvc.ReimbursementSvcFacade {
	return &reimbursementService{
		reimbursementRepo: reimbursementRepo,
		userRepo:          userRepo,
		rateSvc:           rateSvc,
		now:               func() time.Time { return time.Now().UTC() },
	}
}

var _ portssvc.ReimbursementSvcFacade = (*reimbursementService)(nil)

func (s *reimbursementService) requireAdmin(ctx context.Context, userID string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrForbidden
		}
		return err
	}
	if !user.IsAdmin() {
		return apperrors.ErrForbidden
	}
	return nil
}

// Submit creates a new claim for the acting user.
func (s *reimbursementService) Submit(ctx context.Context, req dto.CreateReimbursementRequest, actorID string) (*domain.Reimbursement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	quote, err := s.rateSvc.ResolveUSDRate(ctx, req.CurrencyCode)
	if err != nil {
		return nil, fmt.Errorf("%w: unsupported currency %s", apperrors.ErrValidation, req.CurrencyCode)
	}

	now := s.now()
	r := domain.Reimbursement{
		ReimbursementID: uuid.NewString(),
		UserID:          actorID,
		Amount:          amount,
		CurrencyCode:    req.CurrencyCode,
		USDAmount:       amount.Mul(quote.RateToUSD),
		ExchangeRate:    quote.RateToUSD,
		RateSource:      quote.Source,
		IsFallbackRate:  quote.IsFallback(),
		Description:     req.Description,
		ExpenseDate:     req.ExpenseDate,
		Status:          domain.ReimbursementSubmitted,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.reimbursementRepo.SaveReimbursement(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to save reimbursement: %w", err)
	}

	logger.Info("Reimbursement submitted",
		slog.String("reimbursement_id", r.ReimbursementID),
		slog.String("usd_amount", r.USDAmount.String()),
		slog.String("rate_source", string(r.RateSource)))
	return &r, nil
}

func (s *reimbursementService) GetByID(ctx context.Context, reimbursementID string, requesterID string) (*domain.Reimbursement, error) {
	r, err := s.reimbursementRepo.FindReimbursementByID(ctx, reimbursementID)
	if err != nil {
		return nil, err
	}
	if r.UserID != requesterID {
		if err := s.requireAdmin(ctx, requesterID); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (s *reimbursementService) ListByUser(ctx context.Context, userID string, requesterID string, limit, offset int) ([]domain.Reimbursement, error) {
	if userID != requesterID {
		if err := s.requireAdmin(ctx, requesterID); err != nil {
			return nil, err
		}
	}
	return s.reimbursementRepo.FindReimbursementsByUser(ctx, userID, limit, offset)
}

func (s *reimbursementService) ListByStatus(ctx context.Context, status domain.ReimbursementStatus, requesterID string, limit, offset int) ([]domain.Reimbursement, error) {
	if err := s.requireAdmin(ctx, requesterID); err != nil {
		return nil, err
	}
	return s.reimbursementRepo.FindReimbursementsByStatus(ctx, status, limit, offset)
}

// Review approves or rejects a submitted claim. Claims that already left the
// SUBMITTED state cannot be reviewed again.
func (s *reimbursementService) Review(ctx context.Context, reimbursementID string, req dto.ReviewReimbursementRequest, reviewerID string) (*domain.Reimbursement, error) {
	if err := s.requireAdmin(ctx, reviewerID); err != nil {
		return nil, err
	}

	r, err := s.reimbursementRepo.FindReimbursementByID(ctx, reimbursementID)
	if err != nil {
		return nil, err
	}
	if r.Status != domain.ReimbursementSubmitted {
		return nil, fmt.Errorf("%w: status is %s", ErrAlreadyReviewed, r.Status)
	}

	now := s.now()
	if req.Approve {
		r.Status = domain.ReimbursementApproved
	} else {
		r.Status = domain.ReimbursementRejected
	}
	r.ReviewedBy = &reviewerID
	r.ReviewedAt = &now
	r.ReviewNote = req.Note
	r.LastUpdatedAt = now
	r.LastUpdatedBy = reviewerID

	if err := s.reimbursementRepo.UpdateReimbursement(ctx, *r); err != nil {
		return nil, fmt.Errorf("failed to update reimbursement %s: %w", reimbursementID, err)
	}
	return r, nil
}
