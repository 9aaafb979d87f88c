package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/payflowhq/payflow_backend/internal/apperrors"
	"github.com/payflowhq/payflow_backend/internal/core/domain"
	portsrepo "github.com/payflowhq/payflow_backend/internal/core/ports/repositories"
	portssvc "github.com/payflowhq/payflow_backend/internal/core/ports/services"
	"github.com/payflowhq/payflow_backend/internal/dto"
)

// salaryService implements admin-managed salary scheduling.
type salaryService struct {
	salaryRepo portsrepo.SalaryRepositoryFacade
	userRepo   portsrepo.UserReader
	now        func() time.Time
}

// NewSalaryService creates a new salary service.
func NewSalaryService(salaryRepo portsrepo.SalaryRepositoryFacade, userRepo portsrepo.UserReader) portssvc.SalarySvcFacade {
	return &salaryService{
		salaryRepo: salaryRepo,
		userRepo:   userRepo,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

var _ portssvc.SalarySvcFacade = (*salaryService)(nil)

func (s *salaryService) requireAdmin(ctx context.Context, userID string) error {
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

func (s *salaryService) CreatePlan(ctx context.Context, req dto.CreateSalaryPlanRequest, actorID string) (*domain.SalaryPlan, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	// Recipient must exist and be approved before a plan can target them.
	recipient, err := s.userRepo.FindUserByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if recipient.Status != domain.UserApproved {
		return nil, fmt.Errorf("%w: user %s is not approved", apperrors.ErrValidation, req.UserID)
	}

	now := s.now()
	plan := domain.SalaryPlan{
		SalaryPlanID: uuid.NewString(),
		UserID:       req.UserID,
		Amount:       amount,
		CurrencyCode: req.CurrencyCode,
		PayDay:       req.PayDay,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.salaryRepo.SaveSalaryPlan(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to save salary plan: %w", err)
	}
	return &plan, nil
}

func (s *salaryService) UpdatePlan(ctx context.Context, planID string, req dto.UpdateSalaryPlanRequest, actorID string) (*domain.SalaryPlan, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	plan, err := s.salaryRepo.FindSalaryPlanByID(ctx, planID)
	if err != nil {
		return nil, err
	}

	if req.Amount != nil {
		amount, perr := parseAmount(*req.Amount)
		if perr != nil {
			return nil, perr
		}
		if amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
		}
		plan.Amount = amount
	}
	if req.PayDay != nil {
		plan.PayDay = *req.PayDay
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}
	plan.LastUpdatedAt = s.now()
	plan.LastUpdatedBy = actorID

	if err := s.salaryRepo.UpdateSalaryPlan(ctx, *plan); err != nil {
		return nil, fmt.Errorf("failed to update salary plan %s: %w", planID, err)
	}
	return plan, nil
}

func (s *salaryService) GetPlan(ctx context.Context, planID string, requesterID string) (*domain.SalaryPlan, error) {
	plan, err := s.salaryRepo.FindSalaryPlanByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan.UserID != requesterID {
		if err := s.requireAdmin(ctx, requesterID); err != nil {
			return nil, err
		}
	}
	return plan, nil
}

func (s *salaryService) ListPlansByUser(ctx context.Context, userID string, requesterID string) ([]domain.SalaryPlan, error) {
	if userID != requesterID {
		if err := s.requireAdmin(ctx, requesterID); err != nil {
			return nil, err
		}
	}
	return s.salaryRepo.FindSalaryPlansByUser(ctx, userID)
}

func (s *salaryService) ListDuePlans(ctx context.Context, on time.Time, requesterID string) ([]domain.SalaryPlan, error) {
	if err := s.requireAdmin(ctx, requesterID); err != nil {
		return nil, err
	}
	plans, err := s.salaryRepo.FindActiveSalaryPlans(ctx)
	if err != nil {
		return nil, err
	}
	due := make([]domain.SalaryPlan, 0, len(plans))
	for _, plan := range plans {
		if plan.DueOn(on) {
			due = append(due, plan)
		}
	}
	return due, nil
}
