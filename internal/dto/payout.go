package dto

import "github.com/shopspring/decimal"

// BuildPayoutRequest is the admin payload for generating a payout batch from
// the currently approved reimbursements (and optionally due salaries).
// SettlementRate converts USD-equivalent amounts to the settlement unit and
// defaults to 1.
type BuildPayoutRequest struct {
	IncludeSalaries bool             `json:"includeSalaries"`
	SettlementRate  *decimal.Decimal `json:"settlementRate"`
	DryRun          bool             `json:"dryRun"`
}
