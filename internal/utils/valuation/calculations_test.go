package valuation

import (
	"testing"
	"time"

	"github.com/payflowhq/payflow_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func rec(id string, rt domain.RecordType, amountChange, valueAfter string, date, createdAt time.Time) domain.AssetRecord {
	return domain.AssetRecord{
		RecordID:     id,
		AssetID:      "asset-1",
		RecordType:   rt,
		AmountChange: dec(amountChange),
		ValueAfter:   dec(valueAfter),
		Date:         date,
		AuditFields:  domain.AuditFields{CreatedAt: createdAt},
	}
}

func TestNextValues_DeltaKind(t *testing.T) {
	amountChange, valueAfter := NextValues(domain.RecordAddition, dec("250.50"), dec("1000"))
	assert.True(t, dec("250.50").Equal(amountChange))
	assert.True(t, dec("1250.50").Equal(valueAfter))

	// Consumptions carry their sign in the amount itself.
	amountChange, valueAfter = NextValues(domain.RecordConsumption, dec("-300"), dec("1250.50"))
	assert.True(t, dec("-300").Equal(amountChange))
	assert.True(t, dec("950.50").Equal(valueAfter))
}

func TestNextValues_TargetKind(t *testing.T) {
	amountChange, valueAfter := NextValues(domain.RecordRevaluation, dec("1200"), dec("1000"))
	assert.True(t, dec("200").Equal(amountChange))
	assert.True(t, dec("1200").Equal(valueAfter))

	// A revaluation below the running value yields a negative delta.
	amountChange, valueAfter = NextValues(domain.RecordRevaluation, dec("800"), dec("1000"))
	assert.True(t, dec("-200").Equal(amountChange))
	assert.True(t, dec("800").Equal(valueAfter))
}

func TestNextValues_UnknownTypeBehavesAsDelta(t *testing.T) {
	amountChange, valueAfter := NextValues(domain.RecordType("DIVIDEND"), dec("10"), dec("100"))
	assert.True(t, dec("10").Equal(amountChange))
	assert.True(t, dec("110").Equal(valueAfter))
}

func TestSortRecords_DateThenCreatedAt(t *testing.T) {
	day1 := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	t1 := time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, 3, 5, 11, 0, 0, 0, time.UTC)

	records := []domain.AssetRecord{
		rec("c", domain.RecordAddition, "1", "0", day2, t1),
		rec("b", domain.RecordAddition, "1", "0", day1, t2),
		rec("a", domain.RecordAddition, "1", "0", day1, t1),
	}
	SortRecords(records)

	assert.Equal(t, "a", records[0].RecordID)
	assert.Equal(t, "b", records[1].RecordID)
	assert.Equal(t, "c", records[2].RecordID)
}

func TestReplay_DeltaChainFromInitial(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC) }

	// Stored derived values are stale on purpose; the replay must rebuild
	// them from the initial value while keeping every AmountChange.
	records := []domain.AssetRecord{
		rec("r1", domain.RecordInitial, "0", "999", day(1), day(1)),
		rec("r2", domain.RecordAddition, "500", "0", day(2), day(2)),
		rec("r3", domain.RecordConsumption, "-200", "0", day(3), day(3)),
	}

	changed, running := Replay(dec("1000"), records)

	assert.True(t, dec("1300").Equal(running))
	require.Len(t, changed, 3)

	assert.True(t, records[0].ValueAfter.Equal(dec("1000")))
	assert.True(t, records[1].ValueAfter.Equal(dec("1500")))
	assert.True(t, records[2].ValueAfter.Equal(dec("1300")))

	// The running value always equals the last record's value-after.
	assert.True(t, running.Equal(records[len(records)-1].ValueAfter))
}

func TestReplay_TargetKeepsValueAfterDerivesDelta(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC) }

	records := []domain.AssetRecord{
		rec("r1", domain.RecordInitial, "0", "1000", day(1), day(1)),
		rec("r2", domain.RecordRevaluation, "0", "1250", day(2), day(2)),
		rec("r3", domain.RecordAddition, "100", "1350", day(3), day(3)),
	}

	changed, running := Replay(dec("1000"), records)

	// r2's asserted value-after survives; only its delta was rewritten.
	assert.True(t, records[1].ValueAfter.Equal(dec("1250")))
	assert.True(t, records[1].AmountChange.Equal(dec("250")))
	assert.True(t, running.Equal(dec("1350")))
	require.Len(t, changed, 1)
	assert.Equal(t, "r2", changed[0].RecordID)
}

func TestReplay_HistoricalInsertCascades(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC) }

	// A delta dated between existing records shifts everything after it.
	records := []domain.AssetRecord{
		rec("r1", domain.RecordInitial, "0", "1000", day(1), day(1)),
		rec("r3", domain.RecordAddition, "100", "1100", day(5), day(5)),
		rec("r2", domain.RecordAddition, "50", "0", day(3), day(6)),
	}

	_, running := Replay(dec("1000"), records)

	assert.True(t, running.Equal(dec("1150")))
	// After sorting, r2 sits between r1 and r3.
	assert.Equal(t, "r2", records[1].RecordID)
	assert.True(t, records[1].ValueAfter.Equal(dec("1050")))
	assert.True(t, records[2].ValueAfter.Equal(dec("1150")))
}

func TestReplay_ResetForcesInitialValue(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC) }

	// A second INITIAL mid-history resets the running value again.
	records := []domain.AssetRecord{
		rec("r1", domain.RecordInitial, "0", "1000", day(1), day(1)),
		rec("r2", domain.RecordAddition, "500", "1500", day(2), day(2)),
		rec("r3", domain.RecordInitial, "123", "456", day(3), day(3)),
		rec("r4", domain.RecordAddition, "10", "0", day(4), day(4)),
	}

	_, running := Replay(dec("1000"), records)

	assert.True(t, records[2].AmountChange.Equal(decimal.Zero))
	assert.True(t, records[2].ValueAfter.Equal(dec("1000")))
	assert.True(t, running.Equal(dec("1010")))
}

func TestReplay_Idempotent(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC) }

	records := []domain.AssetRecord{
		rec("r1", domain.RecordInitial, "0", "50", day(1), day(1)),
		rec("r2", domain.RecordRevaluation, "0", "80", day(2), day(2)),
		rec("r3", domain.RecordConsumption, "-30", "0", day(3), day(3)),
	}

	changed, first := Replay(dec("50"), records)
	assert.NotEmpty(t, changed)

	// A second replay over consistent records changes nothing.
	changed, second := Replay(dec("50"), records)
	assert.Empty(t, changed)
	assert.True(t, first.Equal(second))
}

func TestReplay_EmptyHistory(t *testing.T) {
	changed, running := Replay(dec("42"), nil)
	assert.Empty(t, changed)
	assert.True(t, running.Equal(dec("42")))
}
