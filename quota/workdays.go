/*
workdays.go - Weekday counting and the premature-birth bonus

PURPOSE:
  Counts Monday-Friday days in an inclusive date range without iterating
  each day, and derives the extra days awarded when a child is born well
  before term.

ALGORITHM:
  The range is padded out to full ISO weeks, the padded span is valued at
  five days per week, and the padding is subtracted again. The leading pad
  runs Monday up to the start date (capped at five, a Saturday or Sunday
  start contributes no extra weekdays); the trailing pad runs from the end
  date to the following Sunday, minus the two weekend days it always
  contains.

PREMATURE ELIGIBILITY:
  Both birth and due date must be known, the birth must fall within the
  premature regime, precede the due date, and leave a gap of more than 52
  calendar days. The bonus itself is the weekday count from birth up to
  (but not including) the due date.
*/
package quota

import "time"

// maxWorkdayRange guards the week multiplication against absurd ranges.
const maxWorkdayRange = 100 * 365

// Workdays counts Monday-Friday days in the inclusive range [from, to].
func Workdays(from, to time.Time) (int, error) {
	from, to = Day(from), Day(to)
	if from.After(to) {
		return 0, &RangeError{From: from, To: to}
	}
	if daysBetween(from, to) > maxWorkdayRange {
		return 0, &RangeError{From: from, To: to, TooLarge: true}
	}

	firstMonday := mondayOf(from)
	lastSunday := sundayOf(to)

	padBefore := daysBetween(firstMonday, from)
	padAfter := daysBetween(to, lastSunday)
	paddedWeeks := daysBetween(firstMonday, lastSunday.AddDate(0, 0, 1)) / 7

	padding := padBefore
	if padding > 5 {
		padding = 5
	}
	if padAfter > 2 {
		padding += padAfter - 2
	}
	return paddedWeeks*5 - padding, nil
}

// prematureEligible decides whether a birth qualifies for the premature
// bonus at all. The threshold parameter only exists inside the premature
// regime, so the regime check must come first.
func (e *Engine) prematureEligible(facts CaseFacts) (bool, error) {
	birth, due := facts.birthDate, facts.dueDate
	if birth == nil || due == nil {
		return false, nil
	}
	if birth.Before(prematureRegimeStart) {
		return false, nil
	}
	if !birth.Before(*due) {
		return false, nil
	}
	threshold, err := e.store.Resolve(KindPrematureThresholdDays, CoverageNone, *birth)
	if err != nil {
		return false, err
	}
	return daysBetween(*birth, *due) > threshold, nil
}

// prematureDays is the bonus size: weekdays from the birth up to the day
// before term.
func (e *Engine) prematureDays(facts CaseFacts) (int, error) {
	return Workdays(*facts.birthDate, facts.dueDate.AddDate(0, 0, -1))
}
