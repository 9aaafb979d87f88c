package dto

import (
	"time"

	"github.com/payflowhq/payflow_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSalaryPlanRequest is the admin payload for setting up a recurring
// salary. PayDay is capped at 28 so every month has the payday.
type CreateSalaryPlanRequest struct {
	UserID       string `json:"userID" binding:"required"`
	Amount       string `json:"amount" binding:"required"`
	CurrencyCode string `json:"currencyCode" binding:"required"`
	PayDay       int    `json:"payDay" binding:"required,min=1,max=28"`
}

// UpdateSalaryPlanRequest carries a plan's editable fields.
type UpdateSalaryPlanRequest struct {
	Amount   *string `json:"amount"`
	PayDay   *int    `json:"payDay" binding:"omitempty,min=1,max=28"`
	IsActive *bool   `json:"isActive"`
}

// SalaryPlanResponse is the API representation of a salary plan.
type SalaryPlanResponse struct {
	SalaryPlanID string          `json:"salaryPlanID"`
	UserID       string          `json:"userID"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
	PayDay       int             `json:"payDay"`
	IsActive     bool            `json:"isActive"`
	LastPaidAt   *time.Time      `json:"lastPaidAt,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// ToSalaryPlanResponse maps a domain plan to its API representation.
func ToSalaryPlanResponse(p *domain.SalaryPlan) SalaryPlanResponse {
	return SalaryPlanResponse{
		SalaryPlanID: p.SalaryPlanID,
		UserID:       p.UserID,
		Amount:       p.Amount,
		CurrencyCode: p.CurrencyCode,
		PayDay:       p.PayDay,
		IsActive:     p.IsActive,
		LastPaidAt:   p.LastPaidAt,
		CreatedAt:    p.CreatedAt,
	}
}

// ListSalaryPlansResponse wraps a list of plans.
type ListSalaryPlansResponse struct {
	Plans []SalaryPlanResponse `json:"plans"`
}
