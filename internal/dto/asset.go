package dto

import (
	"time"

	"github.com/payflowhq/payflow_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAssetRequest is the payload for creating an asset. InitialValue is a
// string so malformed numbers surface as validation errors instead of silent
// zero values.
type CreateAssetRequest struct {
	Name         string    `json:"name" binding:"required"`
	AssetType    string    `json:"assetType" binding:"required"`
	CurrencyCode string    `json:"currencyCode" binding:"required,len=3"`
	InitialValue string    `json:"initialValue" binding:"required"`
	Status       string    `json:"status"`
	PurchaseDate time.Time `json:"purchaseDate" binding:"required"`
}

// UpdateAssetRequest carries the mutable descriptive fields of an asset.
// Value changes go through records, never through this endpoint.
type UpdateAssetRequest struct {
	Name      *string `json:"name"`
	AssetType *string `json:"assetType"`
	Status    *string `json:"status"`
}

// ApplyRecordRequest is the payload for appending a record to an asset.
// Amount is the raw user-supplied amount: a signed delta for delta-kind
// records, the asserted value-after for revaluations.
type ApplyRecordRequest struct {
	RecordType string     `json:"recordType" binding:"required"`
	Amount     string     `json:"amount" binding:"required"`
	Date       *time.Time `json:"date"`
	Note       *string    `json:"note"`
}

// UpdateRecordRequest is the payload for editing a historical record. Only
// the authoritative amount, the event date, and the note are editable; the
// derived counterpart is recomputed by the full replay.
type UpdateRecordRequest struct {
	Amount *string    `json:"amount"`
	Date   *time.Time `json:"date"`
	Note   *string    `json:"note"`
}

// AssetResponse is the API representation of an asset.
type AssetResponse struct {
	AssetID      string          `json:"assetID"`
	UserID       string          `json:"userID"`
	Name         string          `json:"name"`
	AssetType    string          `json:"assetType"`
	CurrencyCode string          `json:"currencyCode"`
	InitialValue decimal.Decimal `json:"initialValue"`
	CurrentValue decimal.Decimal `json:"currentValue"`
	Status       string          `json:"status"`
	PurchaseDate time.Time       `json:"purchaseDate"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// ToAssetResponse maps a domain asset to its API representation.
func ToAssetResponse(a *domain.Asset) AssetResponse {
	return AssetResponse{
		AssetID:      a.AssetID,
		UserID:       a.UserID,
		Name:         a.Name,
		AssetType:    a.AssetType,
		CurrencyCode: a.CurrencyCode,
		InitialValue: a.InitialValue,
		CurrentValue: a.CurrentValue,
		Status:       string(a.Status),
		PurchaseDate: a.PurchaseDate,
		CreatedAt:    a.CreatedAt,
	}
}

// ListAssetsResponse wraps a page of assets.
type ListAssetsResponse struct {
	Assets []AssetResponse `json:"assets"`
}

// RecordResponse is the API representation of an asset record.
type RecordResponse struct {
	RecordID     string          `json:"recordID"`
	AssetID      string          `json:"assetID"`
	UserID       string          `json:"userID"`
	RecordType   string          `json:"recordType"`
	AmountChange decimal.Decimal `json:"amountChange"`
	ValueAfter   decimal.Decimal `json:"valueAfter"`
	Date         time.Time       `json:"date"`
	Note         *string         `json:"note,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// ToRecordResponse maps a domain record to its API representation.
func ToRecordResponse(r *domain.AssetRecord) RecordResponse {
	return RecordResponse{
		RecordID:     r.RecordID,
		AssetID:      r.AssetID,
		UserID:       r.UserID,
		RecordType:   string(r.RecordType),
		AmountChange: r.AmountChange,
		ValueAfter:   r.ValueAfter,
		Date:         r.Date,
		Note:         r.Note,
		CreatedAt:    r.CreatedAt,
	}
}

// ListRecordsResponse wraps an asset's record history together with a
// pagination token for fetching the next page.
type ListRecordsResponse struct {
	Records   []RecordResponse `json:"records"`
	NextToken string           `json:"nextToken,omitempty"`
}

// ApplyRecordResponse returns both sides of a successful apply.
type ApplyRecordResponse struct {
	Asset  AssetResponse  `json:"asset"`
	Record RecordResponse `json:"record"`
}
