package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalaryPlan is an admin-managed recurring payment schedule for one user.
// PayDay is the day of month (1-28) the salary becomes due.
type SalaryPlan struct {
	SalaryPlanID string          `json:"salaryPlanID"`
	UserID       string          `json:"userID"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
	PayDay       int             `json:"payDay"`
	IsActive     bool            `json:"isActive"`
	LastPaidAt   *time.Time      `json:"lastPaidAt,omitempty"`
	AuditFields
}

// DueOn reports whether the plan has a payment due on the given date, i.e.
// the plan is active, the date is on or after this month's payday, and no
// payment has been recorded for the current period yet.
func (p SalaryPlan) DueOn(on time.Time) bool {
	if !p.IsActive {
		return false
	}
	due := time.Date(on.Year(), on.Month(), p.PayDay, 0, 0, 0, 0, on.Location())
	if on.Before(due) {
		return false
	}
	return p.LastPaidAt == nil || p.LastPaidAt.Before(due)
}
