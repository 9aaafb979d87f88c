package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// SalaryPlan represents a row of the salary_plans table.
type SalaryPlan struct {
	SalaryPlanID string          `db:"salary_plan_id"`
	UserID       string          `db:"user_id"`
	Amount       decimal.Decimal `db:"amount"`
	CurrencyCode string          `db:"currency_code"`
	PayDay       int             `db:"pay_day"`
	IsActive     bool            `db:"is_active"`
	LastPaidAt   sql.NullTime    `db:"last_paid_at"`
	AuditFields
}
