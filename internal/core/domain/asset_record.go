package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordType identifies what a record's stored amount means. The set is open:
// the four named types have defined semantics, anything else behaves like a
// plain delta.
type RecordType string

const (
	// RecordInitial seeds an asset's history; during replay it resets the
	// running value to the asset's initial value.
	RecordInitial RecordType = "INITIAL"
	// RecordRevaluation asserts a target value; the delta is derived.
	RecordRevaluation RecordType = "REVALUATION"
	// RecordAddition and RecordConsumption assert a signed delta; the
	// resulting value is derived.
	RecordAddition    RecordType = "ADDITION"
	RecordConsumption RecordType = "CONSUMPTION"
)

// RecordKind classifies how a record participates in the ledger replay.
type RecordKind int

const (
	// KindDelta means AmountChange is authoritative and ValueAfter is derived.
	KindDelta RecordKind = iota
	// KindTarget means ValueAfter is authoritative and AmountChange is derived.
	KindTarget
	// KindReset forces the running value back to the asset's initial value,
	// overriding whatever the record has stored.
	KindReset
)

// Kind classifies the record type. Unrecognized types are delta-kind, so the
// classification is total and never fails.
func (t RecordType) Kind() RecordKind {
	switch t {
	case RecordInitial:
		return KindReset
	case RecordRevaluation:
		return KindTarget
	default:
		return KindDelta
	}
}

// AssetRecord is one timestamped event changing an asset's value.
//
// Date is the user-supplied event time and is the primary ordering key;
// CreatedAt breaks ties so that same-dated entries keep insertion order.
type AssetRecord struct {
	RecordID     string          `json:"recordID"`
	AssetID      string          `json:"assetID"`
	UserID       string          `json:"userID"` // acting user
	RecordType   RecordType      `json:"recordType"`
	AmountChange decimal.Decimal `json:"amountChange"` // signed delta
	ValueAfter   decimal.Decimal `json:"valueAfter"`   // running value after this record
	Date         time.Time       `json:"date"`
	Note         *string         `json:"note,omitempty"`
	AuditFields
}
