package quota_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/warp/quota-engine/quota"
)

// =============================================================================
// KEEP-MAX VIEW
// =============================================================================

func TestMerge_KeepMax_IncomparableStructures_PreviousWins(t *testing.T) {
	// GIVEN: A previous undifferentiated result and a fresh three-part one
	// WHEN: Reconciling
	// THEN: No shared main pool exists, so the previous side supplies every
	//       preservable account; only non-preservables come from fresh

	previous := map[quota.AccountType]int{quota.AccountParentalBenefit: 230}
	fresh := map[quota.AccountType]int{
		quota.AccountSharedPeriod:      80,
		quota.AccountMotherQuota:       75,
		quota.AccountFatherQuota:       75,
		quota.AccountPreBirth:          15,
		quota.AccountFatherAroundBirth: 10,
	}

	_, keepMax := quota.Merge(previous, fresh)
	assert.Equal(t, map[quota.AccountType]int{
		quota.AccountParentalBenefit:   230,
		quota.AccountFatherAroundBirth: 10,
	}, keepMax)
}

func TestMerge_KeepMax_ThreePartPreviousBeatsFreshUndifferentiated(t *testing.T) {
	previous := map[quota.AccountType]int{
		quota.AccountSharedPeriod: 80,
		quota.AccountMotherQuota:  75,
		quota.AccountFatherQuota:  75,
		quota.AccountPreBirth:     15,
	}
	fresh := map[quota.AccountType]int{
		quota.AccountParentalBenefit:   230,
		quota.AccountPreBirth:          15,
		quota.AccountFatherAroundBirth: 10,
	}

	_, keepMax := quota.Merge(previous, fresh)
	assert.Equal(t, map[quota.AccountType]int{
		quota.AccountSharedPeriod:      80,
		quota.AccountMotherQuota:       75,
		quota.AccountFatherQuota:       75,
		quota.AccountPreBirth:          15,
		quota.AccountFatherAroundBirth: 10,
	}, keepMax)
}

func TestMerge_KeepMax_LargerFreshSharedPeriod_FreshWins(t *testing.T) {
	previous := map[quota.AccountType]int{
		quota.AccountSharedPeriod: 80,
		quota.AccountMotherQuota:  75,
		quota.AccountFatherQuota:  75,
	}
	fresh := map[quota.AccountType]int{
		quota.AccountSharedPeriod: 120,
		quota.AccountMotherQuota:  75,
		quota.AccountFatherQuota:  75,
		quota.AccountPreBirth:     15,
	}

	_, keepMax := quota.Merge(previous, fresh)
	assert.Equal(t, fresh, keepMax)
}

func TestMerge_KeepMax_Tie_PreviousWins(t *testing.T) {
	// GIVEN: Equal shared periods but differing surrounding accounts
	// WHEN: Reconciling
	// THEN: A tie keeps the previous side wholesale

	previous := map[quota.AccountType]int{
		quota.AccountSharedPeriod:            120,
		quota.AccountMotherQuota:             75,
		quota.AccountFatherQuota:             75,
		quota.AccountMultipleBirthFreeDays:   10,
	}
	fresh := map[quota.AccountType]int{
		quota.AccountSharedPeriod:      120,
		quota.AccountMotherQuota:       80,
		quota.AccountFatherQuota:       80,
		quota.AccountFatherAroundBirth: 10,
	}

	_, keepMax := quota.Merge(previous, fresh)
	assert.Equal(t, map[quota.AccountType]int{
		quota.AccountSharedPeriod:          120,
		quota.AccountMotherQuota:           75,
		quota.AccountFatherQuota:           75,
		quota.AccountMultipleBirthFreeDays: 10,
		quota.AccountFatherAroundBirth:     10,
	}, keepMax)
}

func TestMerge_KeepMax_RebalancedTier_FreshWins(t *testing.T) {
	// The 2024 rebalance grew the 80% tier; the fresh side carries the
	// whole new structure, including its larger quotas.

	previous := map[quota.AccountType]int{
		quota.AccountSharedPeriod: 80,
		quota.AccountMotherQuota:  75,
		quota.AccountFatherQuota:  75,
	}
	fresh := map[quota.AccountType]int{
		quota.AccountSharedPeriod: 90,
		quota.AccountMotherQuota:  95,
		quota.AccountFatherQuota:  95,
	}

	_, keepMax := quota.Merge(previous, fresh)
	assert.Equal(t, fresh, keepMax)
}

func TestMerge_KeepMax_UndifferentiatedTie_FreshFloorsKept(t *testing.T) {
	// GIVEN: A previous father-only result and a fresh one evaluated under
	//        older rules that grant activity-free days instead of a floor
	// WHEN: Reconciling
	// THEN: The benefit pool stays previous; the activity-free days follow
	//       the fresh computation

	previous := map[quota.AccountType]int{quota.AccountParentalBenefit: 200}
	fresh := map[quota.AccountType]int{
		quota.AccountParentalBenefit:    200,
		quota.AccountDisabilityFreeDays: 75,
	}

	_, keepMax := quota.Merge(previous, fresh)
	assert.Equal(t, map[quota.AccountType]int{
		quota.AccountParentalBenefit:    200,
		quota.AccountDisabilityFreeDays: 75,
	}, keepMax)
}

// =============================================================================
// KEEP-ORIGINAL VIEW
// =============================================================================

func TestMerge_KeepOriginal_PreviousValuesStick(t *testing.T) {
	// Per account: a previously granted value always survives, accounts the
	// previous result never had come from the fresh computation.

	previous := map[quota.AccountType]int{
		quota.AccountSharedPeriod: 80,
		quota.AccountMotherQuota:  75,
	}
	fresh := map[quota.AccountType]int{
		quota.AccountSharedPeriod:      120,
		quota.AccountMotherQuota:       75,
		quota.AccountFatherQuota:       75,
		quota.AccountFatherAroundBirth: 10,
	}

	keepOriginal, _ := quota.Merge(previous, fresh)
	assert.Equal(t, map[quota.AccountType]int{
		quota.AccountSharedPeriod:      80,
		quota.AccountMotherQuota:       75,
		quota.AccountFatherQuota:       75,
		quota.AccountFatherAroundBirth: 10,
	}, keepOriginal)
}

func TestMerge_KeepOriginal_MinimumRightsAlwaysFresh(t *testing.T) {
	previous := map[quota.AccountType]int{
		quota.AccountParentalBenefit: 200,
		quota.AccountFatherOnlyFloor: 40,
	}
	fresh := map[quota.AccountType]int{
		quota.AccountParentalBenefit: 200,
		quota.AccountFatherOnlyFloor: 50,
	}

	keepOriginal, _ := quota.Merge(previous, fresh)
	assert.Equal(t, map[quota.AccountType]int{
		quota.AccountParentalBenefit: 200,
		quota.AccountFatherOnlyFloor: 50,
	}, keepOriginal)
}

// =============================================================================
// GENERAL PROPERTIES
// =============================================================================

func TestMerge_Idempotent(t *testing.T) {
	result := map[quota.AccountType]int{
		quota.AccountSharedPeriod: 80,
		quota.AccountMotherQuota:  75,
		quota.AccountFatherQuota:  75,
		quota.AccountPreBirth:     15,
	}

	keepOriginal, keepMax := quota.Merge(result, result)
	assert.Equal(t, result, keepOriginal)
	assert.Equal(t, result, keepMax)
}

func TestMerge_DropsNonPositiveEntries(t *testing.T) {
	previous := map[quota.AccountType]int{
		quota.AccountParentalBenefit: 230,
		quota.AccountPreBirth:        0,
	}
	fresh := map[quota.AccountType]int{
		quota.AccountParentalBenefit: 230,
	}

	keepOriginal, keepMax := quota.Merge(previous, fresh)
	assert.NotContains(t, keepOriginal, quota.AccountPreBirth)
	assert.NotContains(t, keepMax, quota.AccountPreBirth)
}
