package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/payflowhq/payflow_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AssetRepo:         newPgxAssetRepository(dbPool),
		UserRepo:          newPgxUserRepository(dbPool),
		ReimbursementRepo: newPgxReimbursementRepository(dbPool),
		SalaryRepo:        newPgxSalaryRepository(dbPool),
	}
}
