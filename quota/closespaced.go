/*
closespaced.go - Closely spaced case detection

PURPOSE:
  Decides whether two consecutive cases for the same family fall close
  enough together to trigger the minimum-rights accounts reserved for
  that situation.

RULE:
  The gap threshold is expressed in whole weeks and resolved at the
  configuration date of the earlier case. Before the regime that
  introduced it, the threshold is registered as disabled (negative) and
  the answer is always false. With a threshold of N weeks, the cases are
  closely spaced when the earlier event plus N weeks and one day still
  falls strictly after the next family event.
*/
package quota

import "time"

// CloselySpaced reports whether the family event of the current case and
// the next case's event fall within the configured gap. next may be nil
// when no follow-up case exists.
func (e *Engine) CloselySpaced(asOf, event time.Time, next *time.Time) (bool, error) {
	if next == nil {
		return false, nil
	}
	weeks, err := e.store.Resolve(KindCloseCasesGapWeeks, CoverageNone, Day(asOf))
	if err != nil {
		return false, err
	}
	if weeks < 0 {
		return false, nil
	}
	limit := Day(event).AddDate(0, 0, weeks*7+1)
	return limit.After(Day(*next)), nil
}
