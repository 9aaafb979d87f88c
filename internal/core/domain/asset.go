package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetStatus is a free-form status tag; ACTIVE and INACTIVE are the values
// the UI uses, but any string is accepted.
type AssetStatus string

const (
	AssetActive   AssetStatus = "ACTIVE"
	AssetInactive AssetStatus = "INACTIVE"
)

// Asset is a tracked item of value owned by a user (physical, cash, or
// crypto). CurrentValue is the running total and must always equal the
// ValueAfter of the most recent record in the asset's history; with no
// records it equals InitialValue.
type Asset struct {
	AssetID      string          `json:"assetID"`
	UserID       string          `json:"userID"`
	Name         string          `json:"name"`
	AssetType    string          `json:"assetType"` // free-form category tag
	CurrencyCode string          `json:"currencyCode"`
	InitialValue decimal.Decimal `json:"initialValue"` // set once at creation
	CurrentValue decimal.Decimal `json:"currentValue"`
	Status       AssetStatus     `json:"status"`
	PurchaseDate time.Time       `json:"purchaseDate"`
	AuditFields
}
