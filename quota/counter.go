/*
counter.go - Single-figure day counter

PURPOSE:
  DayCounter answers "how many days would this one account get" questions
  without running the full pipeline. Callers that only need a single
  figure (screening, eligibility pre-checks, informational endpoints) use
  this instead of ComputeAccounts.

  An optional rule date overrides which legislative snapshot applies;
  when absent each method falls back to the natural anchor date of the
  question.
*/
package quota

import "time"

// DayCounter exposes single-account day counts.
type DayCounter struct {
	engine   *Engine
	ruleDate *time.Time
}

// NewDayCounter returns a counter backed by the given engine.
func NewDayCounter(engine *Engine) *DayCounter {
	return &DayCounter{engine: engine}
}

// WithRuleDate returns a counter that resolves every parameter at the
// given date instead of the question's natural anchor.
func (c *DayCounter) WithRuleDate(d time.Time) *DayCounter {
	day := Day(d)
	return &DayCounter{engine: c.engine, ruleDate: &day}
}

func (c *DayCounter) at(natural time.Time) time.Time {
	if c.ruleDate != nil {
		return *c.ruleDate
	}
	return Day(natural)
}

// PrematureExtraDays returns the premature-birth bonus for the given
// birth and due dates, or zero when the birth does not qualify.
func (c *DayCounter) PrematureExtraDays(birth, due time.Time) (int, error) {
	facts := CaseFacts{birthDate: datePtr(birth), dueDate: datePtr(due)}
	eligible, err := c.engine.prematureEligible(facts)
	if err != nil || !eligible {
		return 0, err
	}
	return c.engine.prematureDays(facts)
}

// MultipleBirthExtraDays returns the extension days for the given number
// of children at the given coverage tier. Zero for a single child.
func (c *DayCounter) MultipleBirthExtraDays(children int, coverage Coverage, event time.Time) (int, error) {
	if children <= 1 {
		return 0, nil
	}
	kind := KindExtraDaysTwoChildren
	if children > 2 {
		kind = KindExtraDaysThreePlus
	}
	return c.engine.store.Resolve(kind, coverage, c.at(event))
}

// FatherAroundBirthDays returns the days the father can take concurrently
// around the birth.
func (c *DayCounter) FatherAroundBirthDays(event time.Time) (int, error) {
	return c.engine.store.Resolve(KindFatherAroundBirthDays, CoverageNone, c.at(event))
}

// CloseCasesMinimumDays returns the minimum-rights days reserved for the
// given parent when two cases fall closely together.
func (c *DayCounter) CloseCasesMinimumDays(role Role, birth bool, event time.Time) (int, error) {
	kind := KindCloseCasesFatherDays
	if role == RoleMother {
		kind = KindCloseCasesMotherAdoptionDays
		if birth {
			kind = KindCloseCasesMotherBirthDays
		}
	}
	return c.engine.store.Resolve(kind, CoverageNone, c.at(event))
}

// FatherOnlyFloorDays returns the floor for a father-only case with the
// given multiple-birth and disability circumstances.
func (c *DayCounter) FatherOnlyFloorDays(children int, motherDisabled bool, coverage Coverage, event time.Time) (int, error) {
	facts := CaseFacts{
		coverage:       coverage,
		rights:         RightsSoleApplicant,
		role:           RoleFather,
		children:       children,
		motherDisabled: motherDisabled,
	}
	return c.engine.fatherOnlyFloor(facts, c.at(event))
}

// DisabilityFreeDays returns the activity-free days granted for maternal
// disability before the minimum-rights regime.
func (c *DayCounter) DisabilityFreeDays(coverage Coverage, event time.Time) (int, error) {
	return c.engine.store.Resolve(KindDisabilityFreeDays, coverage, c.at(event))
}

func datePtr(d time.Time) *time.Time {
	day := Day(d)
	return &day
}
