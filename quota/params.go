/*
params.go - Temporal parameter store

PURPOSE:
  Holds one entitlement constant per (parameter kind, coverage tier) over
  non-overlapping validity intervals, and resolves the constant in force on
  a query date. Legislative changes appear as new intervals, never as edits.

INVARIANTS:
  - Within one (kind, coverage) group no two intervals may intersect;
    registration of an overlapping interval fails the whole build.
  - The store is append-only during construction and read-only afterwards,
    so it is safely shared by unlimited concurrent callers.
  - A query date outside every registered interval is an error, never an
    implicit zero. Out-of-force values are modeled as explicit zero-valued
    intervals in the table.

SEE ALSO:
  - standard.go: The production table
  - errors.go: OverlapError, NoParameterError
*/
package quota

import (
	"fmt"
	"time"
)

// =============================================================================
// PARAMETER KINDS
// =============================================================================

// ParameterKind identifies one dimension of the legislative table.
type ParameterKind string

const (
	// Benefit-day counts per coverage tier.
	KindMotherQuotaDays          ParameterKind = "mother_quota_days"
	KindFatherQuotaDays          ParameterKind = "father_quota_days"
	KindSharedPeriodDays         ParameterKind = "shared_period_days"
	KindBenefitMotherOrAloneDays ParameterKind = "benefit_mother_or_alone_days"
	KindBenefitFatherOnlyDays    ParameterKind = "benefit_father_only_days"
	KindPreBirthDays             ParameterKind = "pre_birth_days"

	// Multiple-birth extension day counts per coverage tier.
	KindExtraDaysTwoChildren ParameterKind = "extra_days_two_children"
	KindExtraDaysThreePlus   ParameterKind = "extra_days_three_plus"

	// Minimum-rights day counts.
	KindFatherOnlyFloorDays   ParameterKind = "father_only_floor_days"   // tier-independent
	KindDisabilityFloorDays   ParameterKind = "disability_floor_days"    // per tier
	KindDisabilityFreeDays    ParameterKind = "disability_free_days"     // per tier, pre-regime only
	KindFatherAroundBirthDays ParameterKind = "father_around_birth_days" // tier-independent

	// Closely-spaced-case day counts and the gap threshold.
	KindCloseCasesMotherBirthDays    ParameterKind = "close_cases_mother_birth_days"
	KindCloseCasesMotherAdoptionDays ParameterKind = "close_cases_mother_adoption_days"
	KindCloseCasesFatherDays         ParameterKind = "close_cases_father_days"
	KindCloseCasesGapWeeks           ParameterKind = "close_cases_gap_weeks" // whole weeks, NOT a day count

	// Premature-birth threshold in days between birth and due date.
	KindPrematureThresholdDays ParameterKind = "premature_threshold_days"
)

// =============================================================================
// PARAMETER - one constant over one validity interval
// =============================================================================

// Parameter is an entitlement constant valid over the inclusive interval
// [From, To]. Coverage is CoverageNone for tier-independent kinds.
type Parameter struct {
	Coverage Coverage
	From     time.Time
	To       time.Time
	Value    int
}

func (p Parameter) covers(d time.Time) bool {
	return !beforeDay(d, p.From) && !afterDay(d, p.To)
}

// overlaps treats touching boundaries correctly: an interval ending the day
// before another begins does not overlap.
func (p Parameter) overlaps(other Parameter) bool {
	if p.Coverage != other.Coverage {
		return false
	}
	return p.covers(other.From) || p.covers(other.To) || p.enclosedBy(other)
}

func (p Parameter) enclosedBy(other Parameter) bool {
	return !afterDay(other.From, p.From) && !beforeDay(other.To, p.To)
}

// =============================================================================
// STORE BUILDER - append-only, fail-fast on overlap
// =============================================================================

type StoreBuilder struct {
	params map[ParameterKind][]Parameter
	err    error
}

func NewStoreBuilder() *StoreBuilder {
	return &StoreBuilder{params: make(map[ParameterKind][]Parameter)}
}

// Add registers a tier-independent parameter. Use DistantPast/DistantFuture
// for open-ended intervals.
func (b *StoreBuilder) Add(kind ParameterKind, from, to time.Time, value int) *StoreBuilder {
	return b.AddTiered(kind, CoverageNone, from, to, value)
}

// AddTiered registers a parameter for one coverage tier.
func (b *StoreBuilder) AddTiered(kind ParameterKind, coverage Coverage, from, to time.Time, value int) *StoreBuilder {
	if b.err != nil {
		return b
	}
	if afterDay(from, to) {
		b.err = fmt.Errorf("parameter %s: from %s after to %s: %w",
			kind, from.Format("2006-01-02"), to.Format("2006-01-02"), ErrInvalidRange)
		return b
	}
	next := Parameter{Coverage: coverage, From: Day(from), To: Day(to), Value: value}
	for _, existing := range b.params[kind] {
		if existing.overlaps(next) {
			b.err = &OverlapError{Kind: kind, Coverage: coverage}
			return b
		}
	}
	b.params[kind] = append(b.params[kind], next)
	return b
}

// Build finalizes the store. The first registration error is returned;
// nothing after it was recorded.
func (b *StoreBuilder) Build() (*ParameterStore, error) {
	if b.err != nil {
		return nil, b.err
	}
	params := make(map[ParameterKind][]Parameter, len(b.params))
	for kind, list := range b.params {
		params[kind] = append([]Parameter(nil), list...)
	}
	return &ParameterStore{params: params}, nil
}

// =============================================================================
// PARAMETER STORE - immutable after Build
// =============================================================================

type ParameterStore struct {
	params map[ParameterKind][]Parameter
}

// Resolve returns the constant in force for (kind, coverage) on the given
// date. A parameter registered with CoverageNone matches queries for any
// tier; a tiered parameter matches only its own tier.
func (s *ParameterStore) Resolve(kind ParameterKind, coverage Coverage, at time.Time) (int, error) {
	list, ok := s.params[kind]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownParameterKind, kind)
	}
	for _, p := range list {
		if (p.Coverage == coverage || p.Coverage == CoverageNone) && p.covers(at) {
			return p.Value, nil
		}
	}
	return 0, &NoParameterError{Kind: kind, Coverage: coverage, Date: Day(at)}
}
