/*
minrights.go - Minimum-rights calculator

PURPOSE:
  Computes the floor accounts a case is entitled to regardless of how the
  main quota pipeline distributes days: the closely-spaced-case days, the
  days around the birth reserved for the father, the father-only floor
  when only the father has earned rights, and the activity-free days tied
  to the mother's disability.

  Unlike the main pipeline the entries here are independent of each other;
  each account is evaluated on its own and zero-valued entries are dropped
  from the result.
*/
package quota

import "time"

// MinimumRights computes the floor accounts for a case. The returned map
// only carries accounts with a positive day count.
func (e *Engine) MinimumRights(facts CaseFacts) (map[AccountType]int, error) {
	if facts.coverage == CoverageNone {
		return nil, ErrMissingCoverage
	}
	out := make(map[AccountType]int)
	asOf := facts.ConfigDate()

	tight, err := e.CloselySpaced(asOf, facts.FamilyEventDate(), facts.nextCaseEvent)
	if err != nil {
		return nil, err
	}
	if tight {
		if facts.MotherHasRight() {
			kind := KindCloseCasesMotherAdoptionDays
			if facts.IsBirth() {
				kind = KindCloseCasesMotherBirthDays
			}
			days, err := e.store.Resolve(kind, CoverageNone, asOf)
			if err != nil {
				return nil, err
			}
			out[AccountCloseCasesMother] = days
		}
		if facts.FatherHasRight() {
			days, err := e.store.Resolve(KindCloseCasesFatherDays, CoverageNone, asOf)
			if err != nil {
				return nil, err
			}
			out[AccountCloseCasesFather] = days
		}
	}

	if facts.IsBirth() {
		days, err := e.store.Resolve(KindFatherAroundBirthDays, CoverageNone, asOf)
		if err != nil {
			return nil, err
		}
		out[AccountFatherAroundBirth] = days
	}

	floor, err := e.fatherOnlyFloor(facts, asOf)
	if err != nil {
		return nil, err
	}
	out[AccountFatherOnlyFloor] = floor

	if facts.motherDisabled && facts.OnlyFatherHasRight() {
		days, err := e.store.Resolve(KindDisabilityFreeDays, facts.coverage, asOf)
		if err != nil {
			return nil, err
		}
		out[AccountDisabilityFreeDays] = days
	}

	for acct, days := range out {
		if days <= 0 {
			delete(out, acct)
		}
	}
	return out, nil
}

// fatherOnlyFloor resolves the floor for cases where only the father has
// earned rights. Multiple-birth days replace the plain floor but stack on
// top of the disability floor.
func (e *Engine) fatherOnlyFloor(facts CaseFacts, asOf time.Time) (int, error) {
	plain, err := e.store.Resolve(KindFatherOnlyFloorDays, CoverageNone, asOf)
	if err != nil {
		return 0, err
	}
	if plain == 0 || !facts.OnlyFatherHasRight() {
		return 0, nil
	}

	base := plain
	if facts.motherDisabled {
		base, err = e.store.Resolve(KindDisabilityFloorDays, facts.coverage, asOf)
		if err != nil {
			return 0, err
		}
	}

	extra := 0
	switch {
	case facts.children == 2:
		extra, err = e.store.Resolve(KindExtraDaysTwoChildren, facts.coverage, asOf)
	case facts.children > 2:
		extra, err = e.store.Resolve(KindExtraDaysThreePlus, facts.coverage, asOf)
	}
	if err != nil {
		return 0, err
	}
	if extra > 0 {
		if facts.motherDisabled {
			return base + extra, nil
		}
		return extra, nil
	}
	return base, nil
}
