package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/payflowhq/payflow_backend/internal/apperrors"
	"github.com/payflowhq/payflow_backend/internal/core/domain"
	portsrepo "github.com/payflowhq/payflow_backend/internal/core/ports/repositories"
	"github.com/payflowhq/payflow_backend/internal/models"
)

type PgxAssetRepository struct {
	BaseRepository
}

func newPgxAssetRepository(db *pgxpool.Pool) portsrepo.AssetRepositoryFacade {
	return &PgxAssetRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.AssetRepositoryFacade = (*PgxAssetRepository)(nil)

const assetColumns = `asset_id, user_id, name, asset_type, currency_code, initial_value, current_value, status, purchase_date,
		created_at, created_by, last_updated_at, last_updated_by`

const recordColumns = `record_id, asset_id, user_id, record_type, amount_change, value_after, date, note,
		created_at, created_by, last_updated_at, last_updated_by`

func toDomainAsset(m models.Asset) domain.Asset {
	return domain.Asset{
		AssetID:      m.AssetID,
		UserID:       m.UserID,
		Name:         m.Name,
		AssetType:    m.AssetType,
		CurrencyCode: m.CurrencyCode,
		InitialValue: m.InitialValue,
		CurrentValue: m.CurrentValue,
		Status:       domain.AssetStatus(m.Status),
		PurchaseDate: m.PurchaseDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func toDomainRecord(m models.AssetRecord) domain.AssetRecord {
	d := domain.AssetRecord{
		RecordID:     m.RecordID,
		AssetID:      m.AssetID,
		UserID:       m.UserID,
		RecordType:   domain.RecordType(m.RecordType),
		AmountChange: m.AmountChange,
		ValueAfter:   m.ValueAfter,
		Date:         m.Date,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
	if m.Note.Valid {
		note := m.Note.String
		d.Note = &note
	}
	return d
}

func scanAsset(row pgx.Row) (models.Asset, error) {
	var m models.Asset
	err := row.Scan(
		&m.AssetID,
		&m.UserID,
		&m.Name,
		&m.AssetType,
		&m.CurrencyCode,
		&m.InitialValue,
		&m.CurrentValue,
		&m.Status,
		&m.PurchaseDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanRecord(row pgx.Row) (models.AssetRecord, error) {
	var m models.AssetRecord
	err := row.Scan(
		&m.RecordID,
		&m.AssetID,
		&m.UserID,
		&m.RecordType,
		&m.AmountChange,
		&m.ValueAfter,
		&m.Date,
		&m.Note,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxAssetRepository) FindAssetByID(ctx context.Context, assetID string) (*domain.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE asset_id = $1;`
	m, err := scanAsset(r.Pool.QueryRow(ctx, query, assetID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find asset by ID %s: %w", assetID, err)
	}
	d := toDomainAsset(m)
	return &d, nil
}

// FindAssetByIDForUpdate locks the asset row for the duration of tx so
// concurrent ledger writes against the same asset serialize.
func (r *PgxAssetRepository) FindAssetByIDForUpdate(ctx context.Context, tx pgx.Tx, assetID string) (*domain.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE asset_id = $1 FOR UPDATE;`
	m, err := scanAsset(tx.QueryRow(ctx, query, assetID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find asset for update %s: %w", assetID, err)
	}
	d := toDomainAsset(m)
	return &d, nil
}

func (r *PgxAssetRepository) FindAssetsByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Asset, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
        SELECT ` + assetColumns + `
        FROM assets
        WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3;
    `
	rows, err := r.Pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query assets: %w", err)
	}
	defer rows.Close()

	assets := []domain.Asset{}
	for rows.Next() {
		m, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset row: %w", err)
		}
		assets = append(assets, toDomainAsset(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating asset rows: %w", rows.Err())
	}
	return assets, nil
}

// SaveAssetWithSeedRecord inserts the asset and its seed record atomically so
// no asset ever exists without its history anchor.
func (r *PgxAssetRepository) SaveAssetWithSeedRecord(ctx context.Context, asset domain.Asset, seed domain.AssetRecord) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	query := `
        INSERT INTO assets (asset_id, user_id, name, asset_type, currency_code, initial_value, current_value, status, purchase_date,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
    `
	_, err = tx.Exec(ctx, query,
		asset.AssetID,
		asset.UserID,
		asset.Name,
		asset.AssetType,
		asset.CurrencyCode,
		asset.InitialValue,
		asset.CurrentValue,
		string(asset.Status),
		asset.PurchaseDate,
		asset.CreatedAt,
		asset.CreatedBy,
		asset.LastUpdatedAt,
		asset.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save asset: %w", err)
	}

	if err := r.SaveRecordInTx(ctx, tx, seed); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func (r *PgxAssetRepository) UpdateAsset(ctx context.Context, asset domain.Asset) error {
	query := `
        UPDATE assets
        SET name = $1, asset_type = $2, status = $3, last_updated_at = $4, last_updated_by = $5
        WHERE asset_id = $6;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		asset.Name,
		asset.AssetType,
		string(asset.Status),
		asset.LastUpdatedAt,
		asset.LastUpdatedBy,
		asset.AssetID,
	)
	if err != nil {
		return fmt.Errorf("failed to update asset: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxAssetRepository) UpdateAssetValueInTx(ctx context.Context, tx pgx.Tx, assetID string, value decimal.Decimal, updatedBy string, at time.Time) error {
	query := `
        UPDATE assets
        SET current_value = $1, last_updated_at = $2, last_updated_by = $3
        WHERE asset_id = $4;
    `
	cmdTag, err := tx.Exec(ctx, query, value, at, updatedBy, assetID)
	if err != nil {
		return fmt.Errorf("failed to update asset value: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxAssetRepository) DeleteAssetWithRecords(ctx context.Context, assetID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM asset_records WHERE asset_id = $1;`, assetID); err != nil {
		return fmt.Errorf("failed to delete asset records: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM assets WHERE asset_id = $1;`, assetID)
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

func (r *PgxAssetRepository) FindRecordByID(ctx context.Context, recordID string) (*domain.AssetRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM asset_records WHERE record_id = $1;`
	m, err := scanRecord(r.Pool.QueryRow(ctx, query, recordID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find record by ID %s: %w", recordID, err)
	}
	d := toDomainRecord(m)
	return &d, nil
}

func (r *PgxAssetRepository) FindRecordsByAssetID(ctx context.Context, assetID string) ([]domain.AssetRecord, error) {
	return r.findRecords(ctx, r.Pool, assetID)
}

func (r *PgxAssetRepository) FindRecordsByAssetIDInTx(ctx context.Context, tx pgx.Tx, assetID string) ([]domain.AssetRecord, error) {
	return r.findRecords(ctx, tx, assetID)
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *PgxAssetRepository) findRecords(ctx context.Context, q querier, assetID string) ([]domain.AssetRecord, error) {
	query := `
        SELECT ` + recordColumns + `
        FROM asset_records
        WHERE asset_id = $1
        ORDER BY date ASC, created_at ASC;
    `
	rows, err := q.Query(ctx, query, assetID)
	if err != nil {
		return nil, fmt.Errorf("failed to query asset records: %w", err)
	}
	defer rows.Close()

	records := []domain.AssetRecord{}
	for rows.Next() {
		m, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record row: %w", err)
		}
		records = append(records, toDomainRecord(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating record rows: %w", rows.Err())
	}
	return records, nil
}

func (r *PgxAssetRepository) SaveRecordInTx(ctx context.Context, tx pgx.Tx, record domain.AssetRecord) error {
	note := sql.NullString{}
	if record.Note != nil {
		note = sql.NullString{String: *record.Note, Valid: true}
	}
	query := `
        INSERT INTO asset_records (record_id, asset_id, user_id, record_type, amount_change, value_after, date, note,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
    `
	_, err := tx.Exec(ctx, query,
		record.RecordID,
		record.AssetID,
		record.UserID,
		string(record.RecordType),
		record.AmountChange,
		record.ValueAfter,
		record.Date,
		note,
		record.CreatedAt,
		record.CreatedBy,
		record.LastUpdatedAt,
		record.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save asset record: %w", err)
	}
	return nil
}

func (r *PgxAssetRepository) UpdateRecordInTx(ctx context.Context, tx pgx.Tx, record domain.AssetRecord) error {
	note := sql.NullString{}
	if record.Note != nil {
		note = sql.NullString{String: *record.Note, Valid: true}
	}
	query := `
        UPDATE asset_records
        SET record_type = $1, amount_change = $2, value_after = $3, date = $4, note = $5,
            last_updated_at = $6, last_updated_by = $7
        WHERE record_id = $8;
    `
	cmdTag, err := tx.Exec(ctx, query,
		string(record.RecordType),
		record.AmountChange,
		record.ValueAfter,
		record.Date,
		note,
		record.LastUpdatedAt,
		record.LastUpdatedBy,
		record.RecordID,
	)
	if err != nil {
		return fmt.Errorf("failed to update asset record: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxAssetRepository) UpdateRecordDerivedInTx(ctx context.Context, tx pgx.Tx, recordID string, amountChange, valueAfter decimal.Decimal, updatedBy string, at time.Time) error {
	query := `
        UPDATE asset_records
        SET amount_change = $1, value_after = $2, last_updated_at = $3, last_updated_by = $4
        WHERE record_id = $5;
    `
	cmdTag, err := tx.Exec(ctx, query, amountChange, valueAfter, at, updatedBy, recordID)
	if err != nil {
		return fmt.Errorf("failed to update derived record fields: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxAssetRepository) DeleteRecordInTx(ctx context.Context, tx pgx.Tx, recordID string) error {
	cmdTag, err := tx.Exec(ctx, `DELETE FROM asset_records WHERE record_id = $1;`, recordID)
	if err != nil {
		return fmt.Errorf("failed to delete asset record: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
