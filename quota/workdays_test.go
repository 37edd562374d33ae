package quota_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/quota-engine/quota"
)

// 2019-07-01 is a Monday.
var monday = quota.NewDate(2019, time.July, 1)

func TestWorkdays_Vectors(t *testing.T) {
	cases := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{"monday to sunday", monday, monday.AddDate(0, 0, 6), 5},
		{"monday to next monday", monday, monday.AddDate(0, 0, 7), 6},
		{"monday plus sixteen days", monday, monday.AddDate(0, 0, 16), 13},
		{"tuesday to sunday", monday.AddDate(0, 0, 1), monday.AddDate(0, 0, 6), 4},
		{"monday to friday", monday, monday.AddDate(0, 0, 4), 5},
		{"single monday", monday, monday, 1},
		{"single saturday", monday.AddDate(0, 0, 5), monday.AddDate(0, 0, 5), 0},
		{"saturday to sunday", monday.AddDate(0, 0, 5), monday.AddDate(0, 0, 6), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := quota.Workdays(tc.from, tc.to)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestWorkdays_InvertedRange(t *testing.T) {
	_, err := quota.Workdays(monday, monday.AddDate(0, 0, -1))
	assert.ErrorIs(t, err, quota.ErrInvalidRange)
	assert.True(t, quota.IsInputError(err))
}

func TestWorkdays_RangeTooLarge(t *testing.T) {
	_, err := quota.Workdays(monday, monday.AddDate(200, 0, 0))
	assert.ErrorIs(t, err, quota.ErrRangeTooLarge)
	var rangeErr *quota.RangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.True(t, rangeErr.TooLarge)
}

// =============================================================================
// PREMATURE BONUS
// =============================================================================

func TestPrematureExtraDays_NineWeeksEarly(t *testing.T) {
	// GIVEN: A birth nine weeks before term
	// WHEN: Computing the bonus
	// THEN: 45 weekdays (birth date up to the day before term)

	counter := quota.NewDayCounter(quota.NewEngine())
	birth := quota.NewDate(2024, time.December, 1)
	due := birth.AddDate(0, 0, 9*7)

	days, err := counter.PrematureExtraDays(birth, due)
	require.NoError(t, err)
	assert.Equal(t, 45, days)
}

func TestPrematureExtraDays_EligibilityBoundary(t *testing.T) {
	counter := quota.NewDayCounter(quota.NewEngine())
	due := quota.NewDate(2025, time.March, 14)

	// 7 weeks and 4 days early: 53 days > threshold, qualifies.
	days, err := counter.PrematureExtraDays(due.AddDate(0, 0, -53), due)
	require.NoError(t, err)
	assert.Greater(t, days, 0)

	// 7 weeks and 1 day early: 50 days, does not qualify.
	days, err = counter.PrematureExtraDays(due.AddDate(0, 0, -50), due)
	require.NoError(t, err)
	assert.Zero(t, days)
}

func TestPrematureExtraDays_BeforeRegime_Zero(t *testing.T) {
	// Births before the extension existed never qualify, however early.

	counter := quota.NewDayCounter(quota.NewEngine())
	due := quota.NewDate(2019, time.June, 1)

	days, err := counter.PrematureExtraDays(due.AddDate(0, 0, -80), due)
	require.NoError(t, err)
	assert.Zero(t, days)
}

func TestPrematureExtraDays_BirthOnOrAfterDue_Zero(t *testing.T) {
	counter := quota.NewDayCounter(quota.NewEngine())
	due := quota.NewDate(2025, time.March, 14)

	days, err := counter.PrematureExtraDays(due, due)
	require.NoError(t, err)
	assert.Zero(t, days)
}
