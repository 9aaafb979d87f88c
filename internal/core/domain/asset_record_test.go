package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordTypeKind(t *testing.T) {
	assert.Equal(t, KindReset, RecordInitial.Kind())
	assert.Equal(t, KindTarget, RecordRevaluation.Kind())
	assert.Equal(t, KindDelta, RecordAddition.Kind())
	assert.Equal(t, KindDelta, RecordConsumption.Kind())

	// Unrecognized types degrade to delta semantics instead of failing.
	assert.Equal(t, KindDelta, RecordType("DIVIDEND").Kind())
	assert.Equal(t, KindDelta, RecordType("").Kind())
}
