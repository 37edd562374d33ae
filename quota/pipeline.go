/*
pipeline.go - The ordered account construction pipeline

PURPOSE:
  Builds the fresh account map for a case by running a fixed sequence of
  steps. Each step inspects the case facts and registers (account,
  parameter) pairings; pairings for the same account accumulate. The
  final step resolves every pairing against the parameter store at the
  case's configuration date and applies bonus roll-on.

ORDER MATTERS:
  Later steps read decisions made by earlier ones (the multiple-birth
  step consults the father-only floor, the roll-on consults the account
  totals), so the sequence below is part of the contract, not an
  implementation detail.

SEE ALSO:
  - engine.go: Wraps the pipeline with reconciliation and auditing
  - params.go: Resolution rules for the registered pairings
*/
package quota

import "time"

// StepTrace records what one pipeline step did, for the audit payload.
type StepTrace struct {
	Step     string        `json:"step"`
	Fired    bool          `json:"fired"`
	Accounts []AccountType `json:"accounts,omitempty"`
}

// pairing ties an account to the parameter that funds it. An empty kind
// marks a computed value (the premature bonus) rather than a lookup.
type pairing struct {
	account AccountType
	kind    ParameterKind
}

// accumulator carries the pipeline state between steps.
type accumulator struct {
	facts    CaseFacts
	asOf     time.Time
	pairings []pairing
	trace    []StepTrace
}

func (a *accumulator) add(account AccountType, kind ParameterKind) {
	a.pairings = append(a.pairings, pairing{account: account, kind: kind})
}

func (a *accumulator) record(step string, touched ...AccountType) {
	a.trace = append(a.trace, StepTrace{Step: step, Fired: len(touched) > 0, Accounts: touched})
}

// buildAccounts runs the pipeline and returns the fresh account map plus
// the standalone bonus amounts before roll-on.
func (e *Engine) buildAccounts(facts CaseFacts) (map[AccountType]int, int, int, []StepTrace, error) {
	acc := &accumulator{facts: facts, asOf: facts.ConfigDate()}

	steps := []func(*accumulator) error{
		e.stepBaseStructure,
		e.stepBirth,
		e.stepMultipleBirth,
		e.stepFatherOnly,
		e.stepCloselySpaced,
	}
	for _, step := range steps {
		if err := step(acc); err != nil {
			return nil, 0, 0, nil, err
		}
	}
	return e.resolveAccounts(acc)
}

// stepBaseStructure picks the fundamental account structure from the
// rights configuration.
func (e *Engine) stepBaseStructure(acc *accumulator) error {
	f := acc.facts
	switch {
	case f.BothHaveRights():
		acc.add(AccountSharedPeriod, KindSharedPeriodDays)
		acc.add(AccountMotherQuota, KindMotherQuotaDays)
		acc.add(AccountFatherQuota, KindFatherQuotaDays)
		acc.record("base_structure", AccountSharedPeriod, AccountMotherQuota, AccountFatherQuota)
	case f.role == RoleMother || f.AloneCare():
		acc.add(AccountParentalBenefit, KindBenefitMotherOrAloneDays)
		acc.record("base_structure", AccountParentalBenefit)
	case f.OnlyFatherHasRight():
		acc.add(AccountParentalBenefit, KindBenefitFatherOnlyDays)
		acc.record("base_structure", AccountParentalBenefit)
	default:
		return ErrUnknownRightsCombination
	}
	return nil
}

// stepBirth adds the birth-only accounts: days before term for the
// mother, days around the birth for the father, and the premature bonus.
func (e *Engine) stepBirth(acc *accumulator) error {
	f := acc.facts
	if !f.IsBirth() {
		acc.record("birth")
		return nil
	}
	var touched []AccountType
	if f.MotherHasRight() {
		acc.add(AccountPreBirth, KindPreBirthDays)
		touched = append(touched, AccountPreBirth)
	}
	if f.FatherHasRight() {
		acc.add(AccountFatherAroundBirth, KindFatherAroundBirthDays)
		touched = append(touched, AccountFatherAroundBirth)
	}
	eligible, err := e.prematureEligible(f)
	if err != nil {
		return err
	}
	if eligible {
		acc.add(AccountPrematureExtra, "")
		touched = append(touched, AccountPrematureExtra)
	}
	acc.record("birth", touched...)
	return nil
}

// stepMultipleBirth adds the extra days for more than one child. The free
// days mirror is only available when both parents have rights, or when
// only the father has rights outside the floor regime.
func (e *Engine) stepMultipleBirth(acc *accumulator) error {
	f := acc.facts
	if f.children <= 1 {
		acc.record("multiple_birth")
		return nil
	}
	kind := KindExtraDaysTwoChildren
	if f.children > 2 {
		kind = KindExtraDaysThreePlus
	}
	acc.add(AccountMultipleBirthExtra, kind)
	touched := []AccountType{AccountMultipleBirthExtra}

	mirror := f.BothHaveRights()
	if !mirror && f.OnlyFatherHasRight() {
		floor, err := e.store.Resolve(KindFatherOnlyFloorDays, CoverageNone, acc.asOf)
		if err != nil {
			return err
		}
		mirror = floor == 0
	}
	if mirror {
		acc.add(AccountMultipleBirthFreeDays, kind)
		touched = append(touched, AccountMultipleBirthFreeDays)
	}
	acc.record("multiple_birth", touched...)
	return nil
}

// stepFatherOnly adds the floor for father-only cases. Inside the floor
// regime the multiple-birth kind replaces the plain floor but stacks on
// the disability floor; outside it a disabled mother yields activity-free
// days instead.
func (e *Engine) stepFatherOnly(acc *accumulator) error {
	f := acc.facts
	if !f.OnlyFatherHasRight() {
		acc.record("father_only_floor")
		return nil
	}
	floor, err := e.store.Resolve(KindFatherOnlyFloorDays, CoverageNone, acc.asOf)
	if err != nil {
		return err
	}
	multiKind := KindExtraDaysTwoChildren
	if f.children > 2 {
		multiKind = KindExtraDaysThreePlus
	}
	if floor > 0 {
		switch {
		case f.motherDisabled:
			acc.add(AccountFatherOnlyFloor, KindDisabilityFloorDays)
			if f.children > 1 {
				acc.add(AccountFatherOnlyFloor, multiKind)
			}
		case f.children > 1:
			acc.add(AccountFatherOnlyFloor, multiKind)
		default:
			acc.add(AccountFatherOnlyFloor, KindFatherOnlyFloorDays)
		}
		acc.record("father_only_floor", AccountFatherOnlyFloor)
		return nil
	}
	if f.motherDisabled {
		acc.add(AccountDisabilityFreeDays, KindDisabilityFreeDays)
		acc.record("father_only_floor", AccountDisabilityFreeDays)
		return nil
	}
	acc.record("father_only_floor")
	return nil
}

// stepCloselySpaced adds the dedicated accounts for cases following each
// other within the configured gap.
func (e *Engine) stepCloselySpaced(acc *accumulator) error {
	f := acc.facts
	tight, err := e.CloselySpaced(acc.asOf, f.FamilyEventDate(), f.nextCaseEvent)
	if err != nil {
		return err
	}
	if !tight {
		acc.record("closely_spaced")
		return nil
	}
	var touched []AccountType
	if f.MotherHasRight() {
		kind := KindCloseCasesMotherAdoptionDays
		if f.IsBirth() {
			kind = KindCloseCasesMotherBirthDays
		}
		acc.add(AccountCloseCasesMother, kind)
		touched = append(touched, AccountCloseCasesMother)
	}
	if f.FatherHasRight() {
		acc.add(AccountCloseCasesFather, KindCloseCasesFatherDays)
		touched = append(touched, AccountCloseCasesFather)
	}
	acc.record("closely_spaced", touched...)
	return nil
}

// resolveAccounts turns the registered pairings into day counts and
// applies the bonus roll-on: the multiple-birth and premature extras are
// added onto the shared period and the standalone benefit where those
// exist, while remaining visible as accounts of their own.
func (e *Engine) resolveAccounts(acc *accumulator) (map[AccountType]int, int, int, []StepTrace, error) {
	accounts := make(map[AccountType]int)
	for _, p := range acc.pairings {
		var days int
		var err error
		if p.kind == "" {
			days, err = e.prematureDays(acc.facts)
		} else {
			days, err = e.store.Resolve(p.kind, acc.facts.coverage, acc.asOf)
		}
		if err != nil {
			return nil, 0, 0, nil, err
		}
		accounts[p.account] += days
	}

	extraMulti := accounts[AccountMultipleBirthExtra]
	extraPremature := accounts[AccountPrematureExtra]
	if sum := extraMulti + extraPremature; sum > 0 {
		touched := make([]AccountType, 0, 2)
		if accounts[AccountSharedPeriod] > 0 {
			accounts[AccountSharedPeriod] += sum
			touched = append(touched, AccountSharedPeriod)
		}
		if accounts[AccountParentalBenefit] > 0 {
			accounts[AccountParentalBenefit] += sum
			touched = append(touched, AccountParentalBenefit)
		}
		acc.record("bonus_roll_on", touched...)
	} else {
		acc.record("bonus_roll_on")
	}

	for acct, days := range accounts {
		if days <= 0 {
			delete(accounts, acct)
		}
	}
	return accounts, extraMulti, extraPremature, acc.trace, nil
}
