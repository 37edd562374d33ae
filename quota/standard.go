/*
standard.go - The production parameter table

PURPOSE:
  The compiled-in, versioned table of legislative constants. Covers every
  parameter kind from the earliest regulated date forward with no gaps:
  values that were not yet in force are explicit zero intervals, so a
  resolution failure always means a genuine configuration gap.

REGIME BOUNDARIES:
  2010-01-01  earliest regulated date
  2019-01-01  revised 80% tier quotas
  2019-07-01  premature-birth extension introduced
  2022-08-02  minimum-rights regime, first step
  2024-07-01  80% tier rebalanced against the 100% tier
  2024-08-02  minimum-rights regime, second step

  Any change to this table requires a new release; there is no file or
  network configuration interface.
*/
package quota

import "time"

var (
	earliestRegulated = NewDate(2010, time.January, 1)

	quotaRevision80   = NewDate(2019, time.January, 1)
	dayBeforeRevision = NewDate(2018, time.December, 31)

	prematureRegimeStart = NewDate(2019, time.July, 1)

	minimumRightsRegime1 = NewDate(2022, time.August, 2)
	dayBeforeRegime1     = NewDate(2022, time.August, 1)

	rebalance80          = NewDate(2024, time.July, 1)
	dayBeforeRebalance80 = NewDate(2024, time.June, 30)

	minimumRightsRegime2 = NewDate(2024, time.August, 2)
	dayBeforeRegime2     = NewDate(2024, time.August, 1)
)

// closeCasesGapDisabled is deliberately impossible: it marks dates before
// the minimum-rights regime, where the closely-spaced-case detector must
// always answer false.
const closeCasesGapDisabled = -1

var standard = mustStandard()

// Standard returns the production parameter store. It is built once at
// process start and shared read-only by all callers.
func Standard() *ParameterStore { return standard }

func mustStandard() *ParameterStore {
	b := NewStoreBuilder()

	// Quotas, 100% tier: unchanged since the earliest regulated date.
	b.AddTiered(KindMotherQuotaDays, Coverage100, earliestRegulated, DistantFuture, 75)
	b.AddTiered(KindFatherQuotaDays, Coverage100, earliestRegulated, DistantFuture, 75)
	b.AddTiered(KindSharedPeriodDays, Coverage100, earliestRegulated, DistantFuture, 80)

	// Quotas, 80% tier: revised 2019, shared period rebalanced 2024.
	b.AddTiered(KindMotherQuotaDays, Coverage80, earliestRegulated, dayBeforeRevision, 75)
	b.AddTiered(KindMotherQuotaDays, Coverage80, quotaRevision80, DistantFuture, 95)
	b.AddTiered(KindFatherQuotaDays, Coverage80, earliestRegulated, dayBeforeRevision, 75)
	b.AddTiered(KindFatherQuotaDays, Coverage80, quotaRevision80, DistantFuture, 95)
	b.AddTiered(KindSharedPeriodDays, Coverage80, earliestRegulated, dayBeforeRevision, 130)
	b.AddTiered(KindSharedPeriodDays, Coverage80, quotaRevision80, dayBeforeRebalance80, 90)
	b.AddTiered(KindSharedPeriodDays, Coverage80, rebalance80, DistantFuture, 101)

	// Undifferentiated benefit.
	b.AddTiered(KindBenefitMotherOrAloneDays, Coverage100, earliestRegulated, DistantFuture, 230)
	b.AddTiered(KindBenefitMotherOrAloneDays, Coverage80, earliestRegulated, dayBeforeRebalance80, 280)
	b.AddTiered(KindBenefitMotherOrAloneDays, Coverage80, rebalance80, DistantFuture, 291)
	b.AddTiered(KindBenefitFatherOnlyDays, Coverage100, earliestRegulated, DistantFuture, 200)
	b.AddTiered(KindBenefitFatherOnlyDays, Coverage80, earliestRegulated, dayBeforeRebalance80, 250)
	b.AddTiered(KindBenefitFatherOnlyDays, Coverage80, rebalance80, DistantFuture, 261)
	b.AddTiered(KindPreBirthDays, Coverage100, earliestRegulated, DistantFuture, 15)
	b.AddTiered(KindPreBirthDays, Coverage80, earliestRegulated, DistantFuture, 15)

	// Multiple-birth extensions.
	b.AddTiered(KindExtraDaysTwoChildren, Coverage100, earliestRegulated, DistantFuture, 85)
	b.AddTiered(KindExtraDaysTwoChildren, Coverage80, earliestRegulated, dayBeforeRebalance80, 105)
	b.AddTiered(KindExtraDaysTwoChildren, Coverage80, rebalance80, DistantFuture, 106)
	b.AddTiered(KindExtraDaysThreePlus, Coverage100, earliestRegulated, DistantFuture, 230)
	b.AddTiered(KindExtraDaysThreePlus, Coverage80, earliestRegulated, dayBeforeRebalance80, 280)
	b.AddTiered(KindExtraDaysThreePlus, Coverage80, rebalance80, DistantFuture, 288)

	// Days exempt from the activity requirement when the mother is disabled.
	// Superseded by the minimum-rights floor from the first regime step.
	b.AddTiered(KindDisabilityFreeDays, Coverage100, earliestRegulated, dayBeforeRegime1, 75)
	b.AddTiered(KindDisabilityFreeDays, Coverage100, minimumRightsRegime1, DistantFuture, 0)
	b.AddTiered(KindDisabilityFreeDays, Coverage80, earliestRegulated, dayBeforeRegime1, 95)
	b.AddTiered(KindDisabilityFreeDays, Coverage80, minimumRightsRegime1, DistantFuture, 0)

	// Minimum-rights floors.
	b.Add(KindFatherOnlyFloorDays, earliestRegulated, dayBeforeRegime1, 0)
	b.Add(KindFatherOnlyFloorDays, minimumRightsRegime1, dayBeforeRegime2, 40)
	b.Add(KindFatherOnlyFloorDays, minimumRightsRegime2, DistantFuture, 50)
	b.AddTiered(KindDisabilityFloorDays, Coverage100, earliestRegulated, dayBeforeRegime1, 0)
	b.AddTiered(KindDisabilityFloorDays, Coverage100, minimumRightsRegime1, DistantFuture, 75)
	b.AddTiered(KindDisabilityFloorDays, Coverage80, earliestRegulated, dayBeforeRegime1, 0)
	b.AddTiered(KindDisabilityFloorDays, Coverage80, minimumRightsRegime1, DistantFuture, 95)
	b.Add(KindFatherAroundBirthDays, earliestRegulated, dayBeforeRegime1, 0)
	b.Add(KindFatherAroundBirthDays, minimumRightsRegime1, DistantFuture, 10)

	// Closely-spaced cases.
	b.Add(KindCloseCasesMotherBirthDays, earliestRegulated, dayBeforeRegime1, 0)
	b.Add(KindCloseCasesMotherBirthDays, minimumRightsRegime1, DistantFuture, 110)
	b.Add(KindCloseCasesMotherAdoptionDays, earliestRegulated, dayBeforeRegime1, 0)
	b.Add(KindCloseCasesMotherAdoptionDays, minimumRightsRegime1, DistantFuture, 40)
	b.Add(KindCloseCasesFatherDays, earliestRegulated, dayBeforeRegime1, 0)
	b.Add(KindCloseCasesFatherDays, minimumRightsRegime1, DistantFuture, 40)
	b.Add(KindCloseCasesGapWeeks, earliestRegulated, dayBeforeRegime1, closeCasesGapDisabled)
	b.Add(KindCloseCasesGapWeeks, minimumRightsRegime1, DistantFuture, 48)

	// Premature-birth threshold. Absent before the regime: eligibility
	// checks the regime start date before resolving.
	b.Add(KindPrematureThresholdDays, prematureRegimeStart, DistantFuture, 52)

	store, err := b.Build()
	if err != nil {
		// Construction defect in a literal table: the process must not start.
		panic(err)
	}
	return store
}
