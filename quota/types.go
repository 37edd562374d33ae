/*
Package quota computes parental-leave entitlement quotas ("account days").

PURPOSE:
  Given the facts of one case (who holds rights, number of children,
  birth/adoption dates, coverage percentage, proximity to a sibling case,
  disability status) and a compiled-in table of time-varying legislative
  parameters, the engine produces a mapping of account type to day count.
  A re-evaluation can be reconciled against a previously computed result so
  a legislative change never regresses an entitlement already granted.

KEY CONCEPTS IN THIS FILE (types.go):
  - AccountType: One category of leave entitlement (mother quota, shared
    period, minimum-rights floors, ...)
  - Category: Classification of accounts used by downstream consumers and
    by result reconciliation
  - Coverage: The wage-replacement tier (100% or 80%) chosen for the case
  - Rights/Role: Which parent(s) hold rights and who is applying

DESIGN PRINCIPLES:
  1. Purity: Every computation is a deterministic function of its inputs.
     No I/O, no clocks, no mutable globals.
  2. Immutability: CaseFacts are built once via a validating builder; the
     parameter table is built once and read-only thereafter.
  3. Per-call state: Each computation owns its own accumulator. The engine
     itself is safe for unlimited concurrent callers.

USAGE:
  facts, err := quota.NewFactsBuilder().
      Rights(quota.RightsBoth).
      Role(quota.RoleMother).
      BirthDate(quota.NewDate(2024, time.December, 1)).
      Coverage(quota.Coverage100).
      Build()
  result, err := quota.NewEngine().ComputeAccounts(facts)

SEE ALSO:
  - params.go: Temporal parameter store
  - standard.go: The compiled-in parameter table
  - pipeline.go: The ordered rule pipeline
  - merge.go: Reconciliation against prior results
*/
package quota

// =============================================================================
// ACCOUNT TYPES
// =============================================================================

type AccountType string

const (
	// Ordinary benefit-day accounts. A case gets either the three-part
	// model (shared period + both quotas) or undifferentiated benefit.
	AccountSharedPeriod    AccountType = "shared_period"
	AccountMotherQuota     AccountType = "mother_quota"
	AccountFatherQuota     AccountType = "father_quota"
	AccountParentalBenefit AccountType = "parental_benefit"
	AccountPreBirth        AccountType = "pre_birth" // birth cases only

	// Extension days. Rolled onto shared period or undifferentiated benefit.
	AccountMultipleBirthExtra AccountType = "multiple_birth_extra"
	AccountPrematureExtra     AccountType = "premature_extra"

	// Days exempt from the activity requirement.
	AccountMultipleBirthFreeDays AccountType = "multiple_birth_free_days"
	AccountDisabilityFreeDays    AccountType = "disability_free_days" // only relevant before the minimum-rights regime

	// Minimum-rights floors.
	AccountCloseCasesMother AccountType = "close_cases_mother"
	AccountCloseCasesFather AccountType = "close_cases_father"
	AccountFatherOnlyFloor  AccountType = "father_only_floor" // affected by multiple birth and maternal disability

	// Other.
	AccountFatherAroundBirth AccountType = "father_around_birth" // permits concurrent uptake around the birth
)

// AllAccountTypes lists every account in a stable order. Merge iterates this
// so reconciled maps come out deterministic.
var AllAccountTypes = []AccountType{
	AccountSharedPeriod,
	AccountMotherQuota,
	AccountFatherQuota,
	AccountParentalBenefit,
	AccountPreBirth,
	AccountMultipleBirthExtra,
	AccountPrematureExtra,
	AccountMultipleBirthFreeDays,
	AccountDisabilityFreeDays,
	AccountCloseCasesMother,
	AccountCloseCasesFather,
	AccountFatherOnlyFloor,
	AccountFatherAroundBirth,
}

// =============================================================================
// ACCOUNT CATEGORIES
// =============================================================================

type Category string

const (
	CategoryBenefitDays   Category = "benefit_days"
	CategoryExtension     Category = "extension"
	CategoryActivityFree  Category = "activity_free"
	CategoryMinimumRights Category = "minimum_rights"
	CategoryOther         Category = "other"
)

// Category returns the classification of an account. Categories drive
// downstream presentation and the merge engine's preservation rules, never
// the day-count computation itself.
func (a AccountType) Category() Category {
	switch a {
	case AccountSharedPeriod, AccountMotherQuota, AccountFatherQuota, AccountParentalBenefit, AccountPreBirth:
		return CategoryBenefitDays
	case AccountMultipleBirthExtra, AccountPrematureExtra:
		return CategoryExtension
	case AccountMultipleBirthFreeDays, AccountDisabilityFreeDays:
		return CategoryActivityFree
	case AccountCloseCasesMother, AccountCloseCasesFather, AccountFatherOnlyFloor:
		return CategoryMinimumRights
	default:
		return CategoryOther
	}
}

// =============================================================================
// COVERAGE TIER
// =============================================================================

// Coverage is the wage-replacement percentage for the case. CoverageNone
// marks parameters whose value does not depend on the tier.
type Coverage string

const (
	CoverageNone Coverage = ""
	Coverage100  Coverage = "100"
	Coverage80   Coverage = "80"
)

func CoverageFromPercent(percent int) (Coverage, error) {
	switch percent {
	case 100:
		return Coverage100, nil
	case 80:
		return Coverage80, nil
	default:
		return CoverageNone, &InvalidCoverageError{Percent: percent}
	}
}

// =============================================================================
// RIGHTS AND ROLE
// =============================================================================

// Rights describes which parent(s) hold a right to benefits.
type Rights string

const (
	RightsBoth          Rights = "both"
	RightsSoleApplicant Rights = "sole_applicant"
	RightsAloneCare     Rights = "alone_care"
)

// Role is the applying parent.
type Role string

const (
	RoleMother   Role = "mother"
	RoleFather   Role = "father"
	RoleCoMother Role = "co_mother"
)
