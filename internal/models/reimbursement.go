package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Reimbursement represents a row of the reimbursements table.
type Reimbursement struct {
	ReimbursementID string          `db:"reimbursement_id"`
	UserID          string          `db:"user_id"`
	Amount          decimal.Decimal `db:"amount"`
	CurrencyCode    string          `db:"currency_code"`
	USDAmount       decimal.Decimal `db:"usd_amount"`
	ExchangeRate    decimal.Decimal `db:"exchange_rate"`
	RateSource      string          `db:"rate_source"`
	IsFallbackRate  bool            `db:"is_fallback_rate"`
	Description     string          `db:"description"`
	ExpenseDate     time.Time       `db:"expense_date"`
	Status          string          `db:"status"`
	ReviewedBy      sql.NullString  `db:"reviewed_by"`
	ReviewedAt      sql.NullTime    `db:"reviewed_at"`
	ReviewNote      sql.NullString  `db:"review_note"`
	AuditFields
}
