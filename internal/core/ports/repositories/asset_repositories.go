package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/payflowhq/payflow_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AssetReader defines read operations for asset data.
type AssetReader interface {
	// FindAssetByID retrieves a specific asset by its ID.
	FindAssetByID(ctx context.Context, assetID string) (*domain.Asset, error)

	// FindAssetsByUser retrieves a paginated list of a user's assets.
	FindAssetsByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Asset, error)

	// FindAssetByIDForUpdate retrieves an asset within tx, locking its row so
	// concurrent ledger writes against the same asset serialize.
	FindAssetByIDForUpdate(ctx context.Context, tx pgx.Tx, assetID string) (*domain.Asset, error)
}

// AssetWriter defines write operations for asset data.
type AssetWriter interface {
	// SaveAssetWithSeedRecord persists a new asset together with its INITIAL
	// record in one transaction.
	SaveAssetWithSeedRecord(ctx context.Context, asset domain.Asset, seed domain.AssetRecord) error

	// UpdateAsset updates an asset's mutable descriptive fields.
	UpdateAsset(ctx context.Context, asset domain.Asset) error

	// UpdateAssetValueInTx sets the asset's running value within tx.
	UpdateAssetValueInTx(ctx context.Context, tx pgx.Tx, assetID string, value decimal.Decimal, updatedBy string, at time.Time) error

	// DeleteAssetWithRecords removes an asset and all its records in one
	// transaction (records first, then the asset row).
	DeleteAssetWithRecords(ctx context.Context, assetID string) error
}

// AssetRecordReader defines read operations for asset records.
type AssetRecordReader interface {
	// FindRecordByID retrieves a single record.
	FindRecordByID(ctx context.Context, recordID string) (*domain.AssetRecord, error)

	// FindRecordsByAssetID retrieves all records of an asset.
	FindRecordsByAssetID(ctx context.Context, assetID string) ([]domain.AssetRecord, error)

	// FindRecordsByAssetIDInTx retrieves all records of an asset within tx so
	// a replay sees a consistent snapshot.
	FindRecordsByAssetIDInTx(ctx context.Context, tx pgx.Tx, assetID string) ([]domain.AssetRecord, error)
}

// AssetRecordWriter defines write operations for asset records. All mutation
// happens inside transactions owned by the ledger service.
type AssetRecordWriter interface {
	// SaveRecordInTx inserts a new record within tx.
	SaveRecordInTx(ctx context.Context, tx pgx.Tx, record domain.AssetRecord) error

	// UpdateRecordInTx rewrites a record's stored fields within tx.
	UpdateRecordInTx(ctx context.Context, tx pgx.Tx, record domain.AssetRecord) error

	// UpdateRecordDerivedInTx writes back only the derived fields of a record
	// after a replay.
	UpdateRecordDerivedInTx(ctx context.Context, tx pgx.Tx, recordID string, amountChange, valueAfter decimal.Decimal, updatedBy string, at time.Time) error

	// DeleteRecordInTx removes a record within tx.
	DeleteRecordInTx(ctx context.Context, tx pgx.Tx, recordID string) error
}

// AssetRepositoryFacade combines all asset-related repository interfaces with
// transaction management.
type AssetRepositoryFacade interface {
	TransactionManager
	AssetReader
	AssetWriter
	AssetRecordReader
	AssetRecordWriter
}
