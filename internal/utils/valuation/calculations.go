package valuation

import (
	"sort"

	"github.com/payflowhq/payflow_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// NextValues computes the stored fields of a record appended at the end of an
// asset's history, given the asset's current running value. For target-kind
// records the raw amount is the asserted value-after; for everything else it
// is the signed delta.
func NextValues(recordType domain.RecordType, rawAmount, previous decimal.Decimal) (amountChange, valueAfter decimal.Decimal) {
	if recordType.Kind() == domain.KindTarget {
		valueAfter = rawAmount
		amountChange = valueAfter.Sub(previous)
		return amountChange, valueAfter
	}
	amountChange = rawAmount
	valueAfter = previous.Add(amountChange)
	return amountChange, valueAfter
}

// SortRecords orders records by (date asc, createdAt asc). Date is the
// primary temporal ordering; creation time breaks ties so same-dated entries
// keep insertion order. The input slice is sorted in place.
func SortRecords(records []domain.AssetRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date) {
			return records[i].Date.Before(records[j].Date)
		}
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
}

// Replay walks an asset's full record history in ordering-key order,
// re-deriving every record's derived field from the asset's initial value.
//
// The authoritative field of each record is never touched: a delta record
// keeps its AmountChange, a target record keeps its ValueAfter. Only the
// derived counterpart changes. Reset records force both fields regardless of
// what was stored. The returned slice holds the records whose stored fields
// actually changed, compared with exact decimal equality; running is the
// asset's value after the last record, or initialValue when there are none.
func Replay(initialValue decimal.Decimal, records []domain.AssetRecord) (changed []domain.AssetRecord, running decimal.Decimal) {
	SortRecords(records)

	running = initialValue
	for i := range records {
		rec := &records[i]
		var amountChange, valueAfter decimal.Decimal

		switch rec.RecordType.Kind() {
		case domain.KindReset:
			amountChange = decimal.Zero
			valueAfter = initialValue
		case domain.KindTarget:
			valueAfter = rec.ValueAfter
			amountChange = valueAfter.Sub(running)
		default:
			amountChange = rec.AmountChange
			valueAfter = running.Add(amountChange)
		}

		if !rec.AmountChange.Equal(amountChange) || !rec.ValueAfter.Equal(valueAfter) {
			rec.AmountChange = amountChange
			rec.ValueAfter = valueAfter
			changed = append(changed, *rec)
		}
		running = valueAfter
	}
	return changed, running
}
