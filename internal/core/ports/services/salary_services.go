package services

import (
	"context"
	"time"

	"github.com/payflowhq/payflow_backend/internal/core/domain"
	"github.com/payflowhq/payflow_backend/internal/dto"
)

// SalarySvcFacade defines admin-managed salary scheduling.
type SalarySvcFacade interface {
	// CreatePlan sets up a recurring salary for a user; admin only.
	CreatePlan(ctx context.Context, req dto.CreateSalaryPlanRequest, actorID string) (*domain.SalaryPlan, error)

	// UpdatePlan edits a plan's amount, payday or active flag; admin only.
	UpdatePlan(ctx context.Context, planID string, req dto.UpdateSalaryPlanRequest, actorID string) (*domain.SalaryPlan, error)

	// GetPlan retrieves a plan, enforcing owner-or-admin access.
	GetPlan(ctx context.Context, planID string, requesterID string) (*domain.SalaryPlan, error)

	// ListPlansByUser retrieves all plans of a user.
	ListPlansByUser(ctx context.Context, userID string, requesterID string) ([]domain.SalaryPlan, error)

	// ListDuePlans retrieves active plans with a payment due on the given
	// date; admin only.
	ListDuePlans(ctx context.Context, on time.Time, requesterID string) ([]domain.SalaryPlan, error)
}
