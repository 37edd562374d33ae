package quota_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/quota-engine/quota"
)

func TestDayCounter_MultipleBirthExtraDays(t *testing.T) {
	counter := quota.NewDayCounter(quota.NewEngine())
	event := quota.NewDate(2024, time.December, 1)

	days, err := counter.MultipleBirthExtraDays(1, quota.Coverage100, event)
	require.NoError(t, err)
	assert.Zero(t, days)

	days, err = counter.MultipleBirthExtraDays(2, quota.Coverage100, event)
	require.NoError(t, err)
	assert.Equal(t, 85, days)

	days, err = counter.MultipleBirthExtraDays(3, quota.Coverage80, event)
	require.NoError(t, err)
	assert.Equal(t, 288, days)
}

func TestDayCounter_FatherAroundBirthDays(t *testing.T) {
	counter := quota.NewDayCounter(quota.NewEngine())

	days, err := counter.FatherAroundBirthDays(quota.NewDate(2024, time.December, 1))
	require.NoError(t, err)
	assert.Equal(t, 10, days)

	// Before the minimum-rights regime the entitlement did not exist.
	days, err = counter.FatherAroundBirthDays(quota.NewDate(2022, time.August, 1))
	require.NoError(t, err)
	assert.Zero(t, days)
}

func TestDayCounter_RuleDateOverride(t *testing.T) {
	// The override pins the legislative snapshot regardless of event date.

	counter := quota.NewDayCounter(quota.NewEngine()).
		WithRuleDate(quota.NewDate(2022, time.August, 1))

	days, err := counter.FatherAroundBirthDays(quota.NewDate(2024, time.December, 1))
	require.NoError(t, err)
	assert.Zero(t, days)
}

func TestDayCounter_CloseCasesMinimumDays(t *testing.T) {
	counter := quota.NewDayCounter(quota.NewEngine())
	event := quota.NewDate(2024, time.December, 1)

	days, err := counter.CloseCasesMinimumDays(quota.RoleMother, true, event)
	require.NoError(t, err)
	assert.Equal(t, 110, days)

	days, err = counter.CloseCasesMinimumDays(quota.RoleMother, false, event)
	require.NoError(t, err)
	assert.Equal(t, 40, days)

	days, err = counter.CloseCasesMinimumDays(quota.RoleFather, true, event)
	require.NoError(t, err)
	assert.Equal(t, 40, days)
}

func TestDayCounter_FatherOnlyFloorDays(t *testing.T) {
	counter := quota.NewDayCounter(quota.NewEngine())
	event := quota.NewDate(2024, time.December, 1)

	days, err := counter.FatherOnlyFloorDays(1, false, quota.Coverage100, event)
	require.NoError(t, err)
	assert.Equal(t, 50, days)

	days, err = counter.FatherOnlyFloorDays(2, true, quota.Coverage80, event)
	require.NoError(t, err)
	assert.Equal(t, 201, days)
}

func TestDayCounter_DisabilityFreeDays(t *testing.T) {
	counter := quota.NewDayCounter(quota.NewEngine())

	days, err := counter.DisabilityFreeDays(quota.Coverage80, quota.NewDate(2022, time.August, 1))
	require.NoError(t, err)
	assert.Equal(t, 95, days)

	days, err = counter.DisabilityFreeDays(quota.Coverage80, quota.NewDate(2022, time.August, 2))
	require.NoError(t, err)
	assert.Zero(t, days)
}
