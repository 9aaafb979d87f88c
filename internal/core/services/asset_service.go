package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/payflowhq/payflow_backend/internal/apperrors"
	"github.com/payflowhq/payflow_backend/internal/core/domain"
	portsrepo "github.com/payflowhq/payflow_backend/internal/core/ports/repositories"
	portssvc "github.com/payflowhq/payflow_backend/internal/core/ports/services"
	"github.com/payflowhq/payflow_backend/internal/dto"
	"github.com/payflowhq/payflow_backend/internal/middleware"
	"github.com/payflowhq/payflow_backend/internal/utils/pagination"
	"github.com/payflowhq/payflow_backend/internal/utils/valuation"
)

// assetService implements the asset ledger engine. Every value mutation runs
// inside a single database transaction with the asset row locked FOR UPDATE,
// so concurrent writes against the same asset serialize while different
// assets proceed in parallel.
type assetService struct {
	assetRepo portsrepo.AssetRepositoryFacade
	userRepo  portsrepo.UserReader
	now       func() time.Time
}

// NewAssetService creates a new asset ledger service.
func NewAssetService(assetRepo portsrepo.AssetRepositoryFacade, userRepo portsrepo.UserReader) portssvc.AssetSvcFacade {
	return &assetService{
		assetRepo: assetRepo,
		userRepo:  userRepo,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

var _ portssvc.AssetSvcFacade = (*assetService)(nil)

// authorize returns nil when the requester owns the asset or is an admin.
func (s *assetService) authorize(ctx context.Context, asset *domain.Asset, requesterID string) error {
	if asset.UserID == requesterID {
		return nil
	}
	requester, err := s.userRepo.FindUserByID(ctx, requesterID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrForbidden
		}
		return fmt.Errorf("failed to resolve requester %s: %w", requesterID, err)
	}
	if !requester.IsAdmin() {
		return apperrors.ErrForbidden
	}
	return nil
}

func parseAmount(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, fmt.Errorf("%w: amount is required", apperrors.ErrValidation)
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: amount %q is not numeric", apperrors.ErrValidation, raw)
	}
	return amount, nil
}

// CreateAsset creates an asset together with its INITIAL seed record; the
// seed's value-after equals the initial value so the asset invariant holds
// from the first row.
func (s *assetService) CreateAsset(ctx context.Context, req dto.CreateAssetRequest, creatorUserID string) (*domain.Asset, error) {
	initialValue, err := parseAmount(req.InitialValue)
	if err != nil {
		return nil, err
	}

	now := s.now()
	status := domain.AssetStatus(req.Status)
	if status == "" {
		status = domain.AssetActive
	}

	asset := domain.Asset{
		AssetID:      uuid.NewString(),
		UserID:       creatorUserID,
		Name:         req.Name,
		AssetType:    req.AssetType,
		CurrencyCode: req.CurrencyCode,
		InitialValue: initialValue,
		CurrentValue: initialValue,
		Status:       status,
		PurchaseDate: req.PurchaseDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	seed := domain.AssetRecord{
		RecordID:     uuid.NewString(),
		AssetID:      asset.AssetID,
		UserID:       creatorUserID,
		RecordType:   domain.RecordInitial,
		AmountChange: decimal.Zero,
		ValueAfter:   initialValue,
		Date:         req.PurchaseDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.assetRepo.SaveAssetWithSeedRecord(ctx, asset, seed); err != nil {
		return nil, fmt.Errorf("failed to save asset: %w", err)
	}
	return &asset, nil
}

func (s *assetService) GetAssetByID(ctx context.Context, assetID string, requesterID string) (*domain.Asset, error) {
	asset, err := s.assetRepo.FindAssetByID(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, asset, requesterID); err != nil {
		return nil, err
	}
	return asset, nil
}

func (s *assetService) ListAssets(ctx context.Context, userID string, limit, offset int) ([]domain.Asset, error) {
	return s.assetRepo.FindAssetsByUser(ctx, userID, limit, offset)
}

func (s *assetService) UpdateAsset(ctx context.Context, assetID string, req dto.UpdateAssetRequest, requesterID string) (*domain.Asset, error) {
	asset, err := s.assetRepo.FindAssetByID(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, asset, requesterID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		asset.Name = *req.Name
	}
	if req.AssetType != nil {
		asset.AssetType = *req.AssetType
	}
	if req.Status != nil {
		asset.Status = domain.AssetStatus(*req.Status)
	}
	asset.LastUpdatedAt = s.now()
	asset.LastUpdatedBy = requesterID

	if err := s.assetRepo.UpdateAsset(ctx, *asset); err != nil {
		return nil, fmt.Errorf("failed to update asset %s: %w", assetID, err)
	}
	return asset, nil
}

// DeleteAsset removes the asset and its whole record history; records go
// first so the asset row is never left without its cascade.
func (s *assetService) DeleteAsset(ctx context.Context, assetID string, requesterID string) error {
	asset, err := s.assetRepo.FindAssetByID(ctx, assetID)
	if err != nil {
		return err
	}
	if err := s.authorize(ctx, asset, requesterID); err != nil {
		return err
	}
	return s.assetRepo.DeleteAssetWithRecords(ctx, assetID)
}

// ApplyRecord is the new-record fast path: it derives the record's stored
// fields from the asset's current value and persists record plus asset value
// in one transaction. It assumes the record's date is the latest; historical
// inserts go through UpdateRecord/Recalculate instead.
func (s *assetService) ApplyRecord(ctx context.Context, assetID string, req dto.ApplyRecordRequest, actorID string) (*domain.Asset, *domain.AssetRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	rawAmount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, nil, err
	}

	tx, err := s.assetRepo.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer s.assetRepo.Rollback(ctx, tx)

	asset, err := s.assetRepo.FindAssetByIDForUpdate(ctx, tx, assetID)
	if err != nil {
		return nil, nil, err
	}
	if err := s.authorize(ctx, asset, actorID); err != nil {
		return nil, nil, err
	}

	now := s.now()
	date := now
	if req.Date != nil {
		date = *req.Date
	}

	recordType := domain.RecordType(req.RecordType)
	amountChange, valueAfter := valuation.NextValues(recordType, rawAmount, asset.CurrentValue)

	record := domain.AssetRecord{
		RecordID:     uuid.NewString(),
		AssetID:      asset.AssetID,
		UserID:       actorID,
		RecordType:   recordType,
		AmountChange: amountChange,
		ValueAfter:   valueAfter,
		Date:         date,
		Note:         req.Note,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.assetRepo.SaveRecordInTx(ctx, tx, record); err != nil {
		return nil, nil, fmt.Errorf("failed to save record for asset %s: %w", assetID, err)
	}
	if err := s.assetRepo.UpdateAssetValueInTx(ctx, tx, assetID, valueAfter, actorID, now); err != nil {
		return nil, nil, fmt.Errorf("failed to update asset value for %s: %w", assetID, err)
	}
	if err := s.assetRepo.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}

	asset.CurrentValue = valueAfter
	asset.LastUpdatedAt = now
	asset.LastUpdatedBy = actorID

	logger.Info("Record applied",
		slog.String("asset_id", assetID),
		slog.String("record_type", string(recordType)),
		slog.String("value_after", valueAfter.String()))
	return asset, &record, nil
}

// recalculateInTx replays the asset's full history inside tx, writes back
// records whose derived fields changed, and returns the final running value.
// The asset row must already be locked by the caller.
func (s *assetService) recalculateInTx(ctx context.Context, tx pgx.Tx, asset *domain.Asset, actorID string) (decimal.Decimal, error) {
	records, err := s.assetRepo.FindRecordsByAssetIDInTx(ctx, tx, asset.AssetID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load records for asset %s: %w", asset.AssetID, err)
	}
	for i := range records {
		if records[i].AssetID != asset.AssetID {
			return decimal.Zero, fmt.Errorf("%w: record %s belongs to asset %s, expected %s",
				apperrors.ErrConsistency, records[i].RecordID, records[i].AssetID, asset.AssetID)
		}
	}

	changed, running := valuation.Replay(asset.InitialValue, records)

	now := s.now()
	for _, rec := range changed {
		if err := s.assetRepo.UpdateRecordDerivedInTx(ctx, tx, rec.RecordID, rec.AmountChange, rec.ValueAfter, actorID, now); err != nil {
			return decimal.Zero, fmt.Errorf("failed to write back record %s: %w", rec.RecordID, err)
		}
	}
	if err := s.assetRepo.UpdateAssetValueInTx(ctx, tx, asset.AssetID, running, actorID, now); err != nil {
		return decimal.Zero, fmt.Errorf("failed to update asset value for %s: %w", asset.AssetID, err)
	}
	return running, nil
}

// Recalculate replays an asset's full record history in chronological order,
// re-deriving every record's derived field and the asset's current value.
func (s *assetService) Recalculate(ctx context.Context, assetID string, actorID string) (*domain.Asset, error) {
	tx, err := s.assetRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.assetRepo.Rollback(ctx, tx)

	asset, err := s.assetRepo.FindAssetByIDForUpdate(ctx, tx, assetID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, asset, actorID); err != nil {
		return nil, err
	}

	running, err := s.recalculateInTx(ctx, tx, asset, actorID)
	if err != nil {
		return nil, err
	}
	if err := s.assetRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	asset.CurrentValue = running
	return asset, nil
}

// UpdateRecord edits a historical record's authoritative field, event date or
// note, then cascades the change through every subsequent record via a full
// replay, all in one transaction.
func (s *assetService) UpdateRecord(ctx context.Context, recordID string, req dto.UpdateRecordRequest, actorID string) (*domain.Asset, error) {
	record, err := s.assetRepo.FindRecordByID(ctx, recordID)
	if err != nil {
		return nil, err
	}

	tx, err := s.assetRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.assetRepo.Rollback(ctx, tx)

	asset, err := s.assetRepo.FindAssetByIDForUpdate(ctx, tx, record.AssetID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: record %s references missing asset %s",
				apperrors.ErrConsistency, recordID, record.AssetID)
		}
		return nil, err
	}
	if err := s.authorize(ctx, asset, actorID); err != nil {
		return nil, err
	}

	if req.Amount != nil {
		amount, perr := parseAmount(*req.Amount)
		if perr != nil {
			return nil, perr
		}
		// The edit lands on the record's authoritative field; the replay
		// recomputes the derived counterpart.
		if record.RecordType.Kind() == domain.KindTarget {
			record.ValueAfter = amount
		} else {
			record.AmountChange = amount
		}
	}
	if req.Date != nil {
		record.Date = *req.Date
	}
	if req.Note != nil {
		record.Note = req.Note
	}
	record.LastUpdatedAt = s.now()
	record.LastUpdatedBy = actorID

	if err := s.assetRepo.UpdateRecordInTx(ctx, tx, *record); err != nil {
		return nil, fmt.Errorf("failed to update record %s: %w", recordID, err)
	}

	running, err := s.recalculateInTx(ctx, tx, asset, actorID)
	if err != nil {
		return nil, err
	}
	if err := s.assetRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	asset.CurrentValue = running
	return asset, nil
}

// DeleteRecord removes a historical record and replays the remaining history.
func (s *assetService) DeleteRecord(ctx context.Context, recordID string, actorID string) (*domain.Asset, error) {
	record, err := s.assetRepo.FindRecordByID(ctx, recordID)
	if err != nil {
		return nil, err
	}

	tx, err := s.assetRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.assetRepo.Rollback(ctx, tx)

	asset, err := s.assetRepo.FindAssetByIDForUpdate(ctx, tx, record.AssetID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: record %s references missing asset %s",
				apperrors.ErrConsistency, recordID, record.AssetID)
		}
		return nil, err
	}
	if err := s.authorize(ctx, asset, actorID); err != nil {
		return nil, err
	}

	if err := s.assetRepo.DeleteRecordInTx(ctx, tx, recordID); err != nil {
		return nil, fmt.Errorf("failed to delete record %s: %w", recordID, err)
	}

	running, err := s.recalculateInTx(ctx, tx, asset, actorID)
	if err != nil {
		return nil, err
	}
	if err := s.assetRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	asset.CurrentValue = running
	return asset, nil
}

// ListRecords returns a page of the asset's history in ordering-key order
// together with a token for the next page.
func (s *assetService) ListRecords(ctx context.Context, assetID string, requesterID string, limit int, token string) ([]domain.AssetRecord, string, error) {
	asset, err := s.assetRepo.FindAssetByID(ctx, assetID)
	if err != nil {
		return nil, "", err
	}
	if err := s.authorize(ctx, asset, requesterID); err != nil {
		return nil, "", err
	}

	records, err := s.assetRepo.FindRecordsByAssetID(ctx, assetID)
	if err != nil {
		return nil, "", err
	}
	valuation.SortRecords(records)

	start := 0
	if token != "" {
		afterDate, afterCreated, derr := pagination.DecodeToken(token)
		if derr != nil {
			return nil, "", fmt.Errorf("%w: %v", apperrors.ErrValidation, derr)
		}
		for start < len(records) {
			r := records[start]
			if r.Date.After(afterDate) || (r.Date.Equal(afterDate) && r.CreatedAt.After(afterCreated)) {
				break
			}
			start++
		}
	}

	if limit <= 0 || limit > 100 {
		limit = 50
	}
	end := start + limit
	if end > len(records) {
		end = len(records)
	}
	page := records[start:end]

	nextToken := ""
	if end < len(records) && len(page) > 0 {
		last := page[len(page)-1]
		nextToken = pagination.EncodeToken(last.Date, last.CreatedAt)
	}
	return page, nextToken, nil
}
