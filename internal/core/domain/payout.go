package domain

import "github.com/shopspring/decimal"

// PayoutItemKind identifies where a monetary item in a payout run came from.
type PayoutItemKind string

const (
	PayoutItemReimbursement PayoutItemKind = "REIMBURSEMENT"
	PayoutItemSalary        PayoutItemKind = "SALARY"
)

// PayoutItem is one approved monetary item ready for settlement. USDAmount is
// the already-converted USD-equivalent value.
type PayoutItem struct {
	ItemID      string          `json:"itemID"`
	Kind        PayoutItemKind  `json:"kind"`
	RecipientID string          `json:"recipientID"`
	USDAmount   decimal.Decimal `json:"usdAmount"`
	EVMAddress  string          `json:"evmAddress"` // empty when the recipient has none
}

// PayoutBatch is the grouped, summed set of items for one recipient.
type PayoutBatch struct {
	RecipientID string          `json:"recipientID"`
	EVMAddress  string          `json:"evmAddress,omitempty"`
	Total       decimal.Decimal `json:"total"`
	ItemIDs     []string        `json:"itemIDs"`
}

// PayoutIssueMissingAddress is reported for recipients without a resolvable
// EVM address; their batches are excluded from the transaction list.
const PayoutIssueMissingAddress = "missing_evm_address"

// PayoutIssue describes why a recipient batch could not be settled.
type PayoutIssue struct {
	Kind        string `json:"kind"`
	RecipientID string `json:"recipientID"`
	Detail      string `json:"detail,omitempty"`
}

// PayoutTransaction is one entry of the multisig-tool payload.
type PayoutTransaction struct {
	To       string         `json:"to"`
	Value    string         `json:"value"` // settlement amount in minor units, integer string
	Metadata PayoutMetadata `json:"metadata"`
}

// PayoutMetadata ties a payload entry back to its recipient and member items.
type PayoutMetadata struct {
	RecipientID string   `json:"recipientId"`
	ItemIDs     []string `json:"memberItemIds"`
}

// AggregationResult is the full outcome of a payout aggregation run. Every
// input item appears in exactly one batch; batches with unresolved addresses
// appear in Issues but never in Transactions.
type AggregationResult struct {
	Items        []PayoutItem        `json:"items"`
	Batches      []PayoutBatch       `json:"batches"`
	Issues       []PayoutIssue       `json:"issues"`
	Transactions []PayoutTransaction `json:"payoutPayload"`
}
