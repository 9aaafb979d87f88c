package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSalaryPlanDueOn(t *testing.T) {
	day := func(m time.Month, d int) time.Time {
		return time.Date(2025, m, d, 0, 0, 0, 0, time.UTC)
	}

	plan := SalaryPlan{PayDay: 15, IsActive: true}

	assert.False(t, plan.DueOn(day(time.August, 14)), "not due before the payday")
	assert.True(t, plan.DueOn(day(time.August, 15)), "due on the payday itself")
	assert.True(t, plan.DueOn(day(time.August, 31)), "stays due until paid")

	paid := day(time.August, 16)
	plan.LastPaidAt = &paid
	assert.False(t, plan.DueOn(day(time.August, 20)), "already paid this period")
	assert.True(t, plan.DueOn(day(time.September, 15)), "due again next period")

	plan.IsActive = false
	assert.False(t, plan.DueOn(day(time.September, 15)), "inactive plans are never due")
}
