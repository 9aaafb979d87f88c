package services

import (
	"context"

	"github.com/payflowhq/payflow_backend/internal/core/domain"
	"github.com/payflowhq/payflow_backend/internal/dto"
)

// AssetReaderSvc defines read operations for assets and their records.
type AssetReaderSvc interface {
	// GetAssetByID retrieves an asset, enforcing owner-or-admin access.
	GetAssetByID(ctx context.Context, assetID string, requesterID string) (*domain.Asset, error)

	// ListAssets retrieves a page of the given user's assets.
	ListAssets(ctx context.Context, userID string, limit, offset int) ([]domain.Asset, error)

	// ListRecords retrieves an asset's history in ordering-key order, starting
	// after the given pagination token.
	ListRecords(ctx context.Context, assetID string, requesterID string, limit int, token string) ([]domain.AssetRecord, string, error)
}

// AssetWriterSvc defines lifecycle operations for assets.
type AssetWriterSvc interface {
	// CreateAsset creates an asset seeded with its INITIAL record.
	CreateAsset(ctx context.Context, req dto.CreateAssetRequest, creatorUserID string) (*domain.Asset, error)

	// UpdateAsset updates descriptive fields of an asset.
	UpdateAsset(ctx context.Context, assetID string, req dto.UpdateAssetRequest, requesterID string) (*domain.Asset, error)

	// DeleteAsset removes an asset and all its records.
	DeleteAsset(ctx context.Context, assetID string, requesterID string) error
}

// AssetLedgerSvc defines the ledger engine operations.
type AssetLedgerSvc interface {
	// ApplyRecord appends a new record and updates the asset's running value
	// in one atomic step (the fast path; assumes the record's date is the
	// latest). Returns the updated asset and the new record.
	ApplyRecord(ctx context.Context, assetID string, req dto.ApplyRecordRequest, actorID string) (*domain.Asset, *domain.AssetRecord, error)

	// Recalculate replays the asset's full record history, rewriting derived
	// fields and the asset's current value atomically.
	Recalculate(ctx context.Context, assetID string, actorID string) (*domain.Asset, error)

	// UpdateRecord edits a historical record and recalculates the history.
	UpdateRecord(ctx context.Context, recordID string, req dto.UpdateRecordRequest, actorID string) (*domain.Asset, error)

	// DeleteRecord removes a historical record and recalculates the history.
	DeleteRecord(ctx context.Context, recordID string, actorID string) (*domain.Asset, error)
}

// AssetSvcFacade combines all asset-related service interfaces.
type AssetSvcFacade interface {
	AssetReaderSvc
	AssetWriterSvc
	AssetLedgerSvc
}
