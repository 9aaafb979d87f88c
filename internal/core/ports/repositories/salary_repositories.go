package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/payflowhq/payflow_backend/internal/core/domain"
)

// SalaryReader defines read operations for salary plans.
type SalaryReader interface {
	// FindSalaryPlanByID retrieves a specific plan.
	FindSalaryPlanByID(ctx context.Context, planID string) (*domain.SalaryPlan, error)

	// FindSalaryPlansByUser retrieves all plans for one user.
	FindSalaryPlansByUser(ctx context.Context, userID string) ([]domain.SalaryPlan, error)

	// FindActiveSalaryPlans retrieves every active plan.
	FindActiveSalaryPlans(ctx context.Context) ([]domain.SalaryPlan, error)
}

// SalaryWriter defines write operations for salary plans.
type SalaryWriter interface {
	// SaveSalaryPlan persists a new plan.
	SaveSalaryPlan(ctx context.Context, plan domain.SalaryPlan) error

	// UpdateSalaryPlan rewrites an existing plan.
	UpdateSalaryPlan(ctx context.Context, plan domain.SalaryPlan) error

	// MarkSalaryPlansPaidInTx records a payout for the given plans within tx.
	MarkSalaryPlansPaidInTx(ctx context.Context, tx pgx.Tx, planIDs []string, paidBy string, at time.Time) error
}

// SalaryRepositoryFacade combines all salary repository interfaces.
type SalaryRepositoryFacade interface {
	TransactionManager
	SalaryReader
	SalaryWriter
}
