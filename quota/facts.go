/*
facts.go - Case facts and their validating builder

PURPOSE:
  CaseFacts is the immutable representation of one calculation request.
  It is obtainable only through FactsBuilder, which enforces the
  construction invariants: rights and role must be set, and at least one
  family event date must be present.

DERIVED FIELDS:
  FamilyEventDate  adoption date, else birth date, else due date
  ConfigDate       the explicit rule-choice override, else the event date;
                   decides which legislative snapshot applies

SEE ALSO:
  - pipeline.go: Consumes the derived predicates
  - legacy/: Maps historical snapshot formats onto this builder
*/
package quota

import (
	"time"
)

// =============================================================================
// CASE FACTS - immutable after Build
// =============================================================================

type CaseFacts struct {
	coverage       Coverage
	rights         Rights
	role           Role
	children       int
	birthDate      *time.Time
	dueDate        *time.Time
	adoptionDate   *time.Time
	motherDisabled bool
	nextCaseEvent  *time.Time
	ruleChoiceDate *time.Time
	prior          map[AccountType]int
}

func (f CaseFacts) Coverage() Coverage      { return f.coverage }
func (f CaseFacts) Rights() Rights          { return f.rights }
func (f CaseFacts) Role() Role              { return f.role }
func (f CaseFacts) Children() int           { return f.children }
func (f CaseFacts) MotherDisabled() bool    { return f.motherDisabled }
func (f CaseFacts) BirthDate() *time.Time   { return copyDate(f.birthDate) }
func (f CaseFacts) DueDate() *time.Time     { return copyDate(f.dueDate) }
func (f CaseFacts) AdoptionDate() *time.Time { return copyDate(f.adoptionDate) }
func (f CaseFacts) NextCaseEvent() *time.Time { return copyDate(f.nextCaseEvent) }
func (f CaseFacts) RuleChoiceDate() *time.Time { return copyDate(f.ruleChoiceDate) }

// PriorAccounts returns the previously computed result attached for
// reconciliation, or nil when this is a first computation.
func (f CaseFacts) PriorAccounts() map[AccountType]int {
	if f.prior == nil {
		return nil
	}
	out := make(map[AccountType]int, len(f.prior))
	for k, v := range f.prior {
		out[k] = v
	}
	return out
}

// =============================================================================
// DERIVED PREDICATES
// =============================================================================

func (f CaseFacts) BothHaveRights() bool { return f.rights == RightsBoth }
func (f CaseFacts) AloneCare() bool      { return f.rights == RightsAloneCare }

// MotherHasRight: with shared rights either parent qualifies; otherwise the
// applying parent must be the mother.
func (f CaseFacts) MotherHasRight() bool {
	return f.BothHaveRights() || f.role == RoleMother
}

// FatherHasRight mirrors MotherHasRight for the father (or co-mother) side.
func (f CaseFacts) FatherHasRight() bool {
	return f.BothHaveRights() || f.role != RoleMother
}

// OnlyFatherHasRight: the sole-applicant form of rights, held by a
// non-mother. Alone-care is a separate configuration.
func (f CaseFacts) OnlyFatherHasRight() bool {
	return f.rights == RightsSoleApplicant && f.role != RoleMother
}

// IsBirth reports whether the case is a birth rather than an adoption.
func (f CaseFacts) IsBirth() bool {
	return f.birthDate != nil || f.dueDate != nil
}

// FamilyEventDate is the anchor date for the case.
func (f CaseFacts) FamilyEventDate() time.Time {
	switch {
	case f.adoptionDate != nil:
		return *f.adoptionDate
	case f.birthDate != nil:
		return *f.birthDate
	default:
		return *f.dueDate
	}
}

// ConfigDate decides which legislative snapshot applies: the explicit
// rule-choice override when present, else the family event date.
func (f CaseFacts) ConfigDate() time.Time {
	if f.ruleChoiceDate != nil {
		return *f.ruleChoiceDate
	}
	return f.FamilyEventDate()
}

func copyDate(d *time.Time) *time.Time {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

// =============================================================================
// FACTS BUILDER
// =============================================================================

// FactsBuilder is the only supported way to obtain a CaseFacts value.
type FactsBuilder struct {
	draft CaseFacts
}

func NewFactsBuilder() *FactsBuilder {
	return &FactsBuilder{draft: CaseFacts{children: 1}}
}

// NewFactsBuilderFrom starts from an existing facts value, for callers
// that need to attach fields (a prior result, a rule-choice override) to
// facts they did not build themselves.
func NewFactsBuilderFrom(f CaseFacts) *FactsBuilder {
	return &FactsBuilder{draft: f}
}

func (b *FactsBuilder) Coverage(c Coverage) *FactsBuilder { b.draft.coverage = c; return b }
func (b *FactsBuilder) Rights(r Rights) *FactsBuilder     { b.draft.rights = r; return b }
func (b *FactsBuilder) Role(r Role) *FactsBuilder         { b.draft.role = r; return b }
func (b *FactsBuilder) Children(n int) *FactsBuilder      { b.draft.children = n; return b }
func (b *FactsBuilder) MotherDisabled(v bool) *FactsBuilder {
	b.draft.motherDisabled = v
	return b
}

func (b *FactsBuilder) BirthDate(d time.Time) *FactsBuilder {
	day := Day(d)
	b.draft.birthDate = &day
	return b
}

func (b *FactsBuilder) DueDate(d time.Time) *FactsBuilder {
	day := Day(d)
	b.draft.dueDate = &day
	return b
}

func (b *FactsBuilder) AdoptionDate(d time.Time) *FactsBuilder {
	day := Day(d)
	b.draft.adoptionDate = &day
	return b
}

func (b *FactsBuilder) NextCaseEvent(d time.Time) *FactsBuilder {
	day := Day(d)
	b.draft.nextCaseEvent = &day
	return b
}

// RuleChoiceDate forces which configuration snapshot applies instead of the
// family event date.
func (b *FactsBuilder) RuleChoiceDate(d time.Time) *FactsBuilder {
	day := Day(d)
	b.draft.ruleChoiceDate = &day
	return b
}

// PriorAccounts attaches a previously computed result for reconciliation.
func (b *FactsBuilder) PriorAccounts(prior map[AccountType]int) *FactsBuilder {
	if len(prior) == 0 {
		b.draft.prior = nil
		return b
	}
	cp := make(map[AccountType]int, len(prior))
	for k, v := range prior {
		cp[k] = v
	}
	b.draft.prior = cp
	return b
}

// Build validates and returns the immutable facts value.
func (b *FactsBuilder) Build() (CaseFacts, error) {
	f := b.draft
	if f.rights == "" || f.role == "" {
		return CaseFacts{}, ErrIncompleteFacts
	}
	if f.birthDate == nil && f.dueDate == nil && f.adoptionDate == nil {
		return CaseFacts{}, ErrMissingEventDate
	}
	if f.children < 1 {
		return CaseFacts{}, ErrIncompleteFacts
	}
	return f, nil
}
