package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReimbursementStatus tracks the review workflow of a reimbursement claim.
type ReimbursementStatus string

const (
	ReimbursementSubmitted ReimbursementStatus = "SUBMITTED"
	ReimbursementApproved  ReimbursementStatus = "APPROVED"
	ReimbursementRejected  ReimbursementStatus = "REJECTED"
	ReimbursementPaid      ReimbursementStatus = "PAID"
)

// RateSource records where a reimbursement's USD conversion rate came from.
type RateSource string

const (
	RateSourceLive     RateSource = "LIVE"
	RateSourceCache    RateSource = "CACHE"
	RateSourceFallback RateSource = "FALLBACK"
	RateSourceManual   RateSource = "MANUAL"
)

// Reimbursement is an expense claim submitted by a user. The USD-equivalent
// amount is captured at submission time so later rate movements do not change
// what was approved. IsFallbackRate marks conversions that used the static
// fallback table instead of a real quote.
type Reimbursement struct {
	ReimbursementID string              `json:"reimbursementID"`
	UserID          string              `json:"userID"`
	Amount          decimal.Decimal     `json:"amount"`
	CurrencyCode    string              `json:"currencyCode"`
	USDAmount       decimal.Decimal     `json:"usdAmount"`
	ExchangeRate    decimal.Decimal     `json:"exchangeRate"`
	RateSource      RateSource          `json:"rateSource"`
	IsFallbackRate  bool                `json:"isFallbackRate"`
	Description     string              `json:"description"`
	ExpenseDate     time.Time           `json:"expenseDate"`
	Status          ReimbursementStatus `json:"status"`
	ReviewedBy      *string             `json:"reviewedBy,omitempty"`
	ReviewedAt      *time.Time          `json:"reviewedAt,omitempty"`
	ReviewNote      *string             `json:"reviewNote,omitempty"`
	AuditFields
}
