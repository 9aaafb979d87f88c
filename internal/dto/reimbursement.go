package dto

import (
	"time"

	"github.com/payflowhq/payflow_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateReimbursementRequest is the payload for submitting an expense claim.
// Amount is a string so non-numeric input is a validation error.
type CreateReimbursementRequest struct {
	Amount       string    `json:"amount" binding:"required"`
	CurrencyCode string    `json:"currencyCode" binding:"required"`
	Description  string    `json:"description" binding:"required"`
	ExpenseDate  time.Time `json:"expenseDate" binding:"required"`
}

// ReviewReimbursementRequest is the admin decision on a submitted claim.
type ReviewReimbursementRequest struct {
	Approve bool    `json:"approve"`
	Note    *string `json:"note"`
}

// ReimbursementResponse is the API representation of a claim.
type ReimbursementResponse struct {
	ReimbursementID string          `json:"reimbursementID"`
	UserID          string          `json:"userID"`
	Amount          decimal.Decimal `json:"amount"`
	CurrencyCode    string          `json:"currencyCode"`
	USDAmount       decimal.Decimal `json:"usdAmount"`
	ExchangeRate    decimal.Decimal `json:"exchangeRate"`
	RateSource      string          `json:"rateSource"`
	IsFallbackRate  bool            `json:"isFallbackRate"`
	Description     string          `json:"description"`
	ExpenseDate     time.Time       `json:"expenseDate"`
	Status          string          `json:"status"`
	ReviewedBy      *string         `json:"reviewedBy,omitempty"`
	ReviewNote      *string         `json:"reviewNote,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ToReimbursementResponse maps a domain claim to its API representation.
func ToReimbursementResponse(r *domain.Reimbursement) ReimbursementResponse {
	return ReimbursementResponse{
		ReimbursementID: r.ReimbursementID,
		UserID:          r.UserID,
		Amount:          r.Amount,
		CurrencyCode:    r.CurrencyCode,
		USDAmount:       r.USDAmount,
		ExchangeRate:    r.ExchangeRate,
		RateSource:      string(r.RateSource),
		IsFallbackRate:  r.IsFallbackRate,
		Description:     r.Description,
		ExpenseDate:     r.ExpenseDate,
		Status:          string(r.Status),
		ReviewedBy:      r.ReviewedBy,
		ReviewNote:      r.ReviewNote,
		CreatedAt:       r.CreatedAt,
	}
}

// ListReimbursementsResponse wraps a page of claims.
type ListReimbursementsResponse struct {
	Reimbursements []ReimbursementResponse `json:"reimbursements"`
}
