package services

import (
	portsrepo "github.com/payflowhq/payflow_backend/internal/core/ports/repositories"
	portssvc "github.com/payflowhq/payflow_backend/internal/core/ports/services"
	"github.com/payflowhq/payflow_backend/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, rateFetcher portssvc.RateFetcher) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Asset = NewAssetService(repos.AssetRepo, repos.UserRepo)
	container.Rates = NewExchangeRateService(rateFetcher)
	container.Reimbursement = NewReimbursementService(repos.ReimbursementRepo, repos.UserRepo, container.Rates)
	container.Salary = NewSalaryService(repos.SalaryRepo, repos.UserRepo)
	container.Payout = NewPayoutService(repos.ReimbursementRepo, repos.SalaryRepo, repos.UserRepo)

	container.Token = NewTokenService(cfg, container.User)
	container.GoogleOAuth = NewGoogleOAuthService(cfg)

	return container
}
