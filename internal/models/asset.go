package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Asset represents a row of the assets table.
type Asset struct {
	AssetID      string          `db:"asset_id"`
	UserID       string          `db:"user_id"`
	Name         string          `db:"name"`
	AssetType    string          `db:"asset_type"`
	CurrencyCode string          `db:"currency_code"`
	InitialValue decimal.Decimal `db:"initial_value"`
	CurrentValue decimal.Decimal `db:"current_value"`
	Status       string          `db:"status"`
	PurchaseDate time.Time       `db:"purchase_date"`
	AuditFields
}

// AssetRecord represents a row of the asset_records table.
type AssetRecord struct {
	RecordID     string          `db:"record_id"`
	AssetID      string          `db:"asset_id"`
	UserID       string          `db:"user_id"`
	RecordType   string          `db:"record_type"`
	AmountChange decimal.Decimal `db:"amount_change"`
	ValueAfter   decimal.Decimal `db:"value_after"`
	Date         time.Time       `db:"date"`
	Note         sql.NullString  `db:"note"`
	AuditFields
}
