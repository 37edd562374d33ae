/*
errors.go - Centralized error types for the quota engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Callers can distinguish bad configuration from bad input with errors.Is.

ERROR CATEGORIES:
  1. Construction defects - overlapping parameter intervals, invalid facts
  2. Resolution errors    - parameter lookup outside every registered interval
  3. Arithmetic boundary  - workday ranges too large for the integer math

USAGE:
  result, err := engine.ComputeAccounts(facts)
  if quota.IsConfigError(err) {
      // configuration gap, not a claimant problem
  }

SEE ALSO:
  - params.go: Raises overlap and resolution errors
  - workdays.go: Raises range errors
  - facts.go: Raises construction errors
*/
package quota

import (
	"errors"
	"fmt"
	"time"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrOverlappingParameters is returned when two registered intervals for
	// the same (kind, coverage) pair intersect. Construction-time defect.
	ErrOverlappingParameters = errors.New("overlapping parameter intervals")

	// ErrUnknownParameterKind is returned when a kind has no registrations at
	// all. Developer error: the table must cover every kind it is asked for.
	ErrUnknownParameterKind = errors.New("parameter kind not configured")

	// ErrNoParameter is returned when no interval for a (kind, coverage)
	// covers the query date. Never silently defaulted to zero.
	ErrNoParameter = errors.New("no applicable parameter")

	// ErrInvalidRange is returned when a workday range starts after it ends.
	ErrInvalidRange = errors.New("invalid range: from after to")

	// ErrRangeTooLarge is returned when a workday range exceeds what the
	// integer arithmetic can represent.
	ErrRangeTooLarge = errors.New("range too large to count workdays")

	// ErrMissingCoverage is returned when a computation is requested without
	// a coverage tier on the facts.
	ErrMissingCoverage = errors.New("missing coverage tier")

	// ErrMissingEventDate is returned by the facts builder when no family
	// event date is present.
	ErrMissingEventDate = errors.New("missing family event date")

	// ErrIncompleteFacts is returned by the facts builder when rights or
	// role are absent.
	ErrIncompleteFacts = errors.New("incomplete case facts")

	// ErrUnknownRightsCombination is returned when the rights/role pair
	// matches none of the base account structures.
	ErrUnknownRightsCombination = errors.New("unknown combination of rights and role")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// NoParameterError reports a failed lookup against the parameter table.
type NoParameterError struct {
	Kind     ParameterKind
	Coverage Coverage
	Date     time.Time
}

func (e *NoParameterError) Error() string {
	if e.Coverage == CoverageNone {
		return fmt.Sprintf("no applicable parameter for %s on %s", e.Kind, e.Date.Format("2006-01-02"))
	}
	return fmt.Sprintf("no applicable parameter for %s at coverage %s%% on %s",
		e.Kind, e.Coverage, e.Date.Format("2006-01-02"))
}

func (e *NoParameterError) Unwrap() error { return ErrNoParameter }

// OverlapError reports two intersecting intervals registered for one kind.
type OverlapError struct {
	Kind     ParameterKind
	Coverage Coverage
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("overlapping intervals registered for %s (coverage %q)", e.Kind, e.Coverage)
}

func (e *OverlapError) Unwrap() error { return ErrOverlappingParameters }

// RangeError reports a workday range the calculator cannot handle.
type RangeError struct {
	From, To time.Time
	TooLarge bool
}

func (e *RangeError) Error() string {
	if e.TooLarge {
		return fmt.Sprintf("range %s..%s too large to count workdays",
			e.From.Format("2006-01-02"), e.To.Format("2006-01-02"))
	}
	return fmt.Sprintf("invalid range: from %s after to %s",
		e.From.Format("2006-01-02"), e.To.Format("2006-01-02"))
}

func (e *RangeError) Unwrap() error {
	if e.TooLarge {
		return ErrRangeTooLarge
	}
	return ErrInvalidRange
}

// InvalidCoverageError reports a coverage percentage outside the two
// admissible tiers.
type InvalidCoverageError struct {
	Percent int
}

func (e *InvalidCoverageError) Error() string {
	return fmt.Sprintf("invalid coverage percentage %d: must be 100 or 80", e.Percent)
}

func (e *InvalidCoverageError) Unwrap() error { return ErrMissingCoverage }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsConfigError reports whether the failure stems from the parameter table
// rather than from the submitted facts.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrOverlappingParameters) ||
		errors.Is(err, ErrUnknownParameterKind) ||
		errors.Is(err, ErrNoParameter)
}

// IsInputError reports whether the failure stems from the submitted facts.
func IsInputError(err error) bool {
	return errors.Is(err, ErrMissingCoverage) ||
		errors.Is(err, ErrMissingEventDate) ||
		errors.Is(err, ErrIncompleteFacts) ||
		errors.Is(err, ErrUnknownRightsCombination) ||
		errors.Is(err, ErrInvalidRange) ||
		errors.Is(err, ErrRangeTooLarge)
}
