/*
merge.go - Reconciliation of a fresh computation against a prior result

PURPOSE:
  When a case is re-evaluated under newer legislation, the entitlements
  already granted must not silently shrink or shift. Two reconciliation
  strategies are produced side by side:

  keep-original: every preservable account keeps its previous value when
    one exists; anything else comes from the fresh computation. This is
    the conservative view - days already granted stay exactly as granted.

  keep-max: the previous and fresh computations compete as wholes. The
    side with the strictly larger main pool (shared period when both have
    one, otherwise the undifferentiated benefit) supplies every
    preservable account wholesale; ties and incomparable structures fall
    back to the previous side. This view lets a beneficial law change
    through while still never regressing.

  Preservable accounts are the ordinary benefit days, the extension
  bonuses, and the multiple-birth free days. Minimum-rights floors and
  the remaining accounts always follow the fresh computation, since they
  are recomputed floors rather than granted pools.
*/
package quota

// preservable reports whether an account participates in reconciliation.
func preservable(a AccountType) bool {
	switch a.Category() {
	case CategoryBenefitDays, CategoryExtension:
		return true
	}
	return a == AccountMultipleBirthFreeDays
}

// Merge reconciles a fresh computation against a previously granted one.
// It returns the keep-original and keep-max views, both with non-positive
// entries dropped. The caller decides whether merging applies at all; an
// empty previous map here means every preservable account is absent on
// the previous side.
func Merge(previous, fresh map[AccountType]int) (keepOriginal, keepMax map[AccountType]int) {
	keepOriginal = make(map[AccountType]int)
	keepMax = make(map[AccountType]int)

	winner := authoritativeSide(previous, fresh)

	for _, acct := range AllAccountTypes {
		if !preservable(acct) {
			if days, ok := fresh[acct]; ok && days > 0 {
				keepOriginal[acct] = days
				keepMax[acct] = days
			}
			continue
		}

		if days, ok := previous[acct]; ok {
			if days > 0 {
				keepOriginal[acct] = days
			}
		} else if days, ok := fresh[acct]; ok && days > 0 {
			keepOriginal[acct] = days
		}

		if days, ok := winner[acct]; ok && days > 0 {
			keepMax[acct] = days
		}
	}
	return keepOriginal, keepMax
}

// authoritativeSide picks which computation supplies the preservable
// accounts in the keep-max view. Only a strictly larger main pool lets
// the fresh side win; ties keep the previous result.
func authoritativeSide(previous, fresh map[AccountType]int) map[AccountType]int {
	for _, pool := range []AccountType{AccountSharedPeriod, AccountParentalBenefit} {
		prevDays, inPrev := previous[pool]
		freshDays, inFresh := fresh[pool]
		if inPrev && inFresh {
			if freshDays > prevDays {
				return fresh
			}
			return previous
		}
	}
	return previous
}
