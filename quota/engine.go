/*
engine.go - Computation orchestration

PURPOSE:
  Engine ties the parameter store, the rule pipeline, the minimum-rights
  calculator and the merge engine together behind one entry point,
  ComputeAccounts. The result carries three views of the account map
  (reconciled, keep-original, and the raw pre-merge computation) plus an
  audit payload describing what each pipeline step did.

CONCURRENCY:
  Engine holds no mutable state. One engine can serve any number of
  concurrent computations.
*/
package quota

import (
	"encoding/json"
	"time"
)

// Version identifies the rule set compiled into this engine. Stored with
// every persisted computation so old results can be interpreted later.
const Version = "2.1.0"

// Engine computes account maps from case facts.
type Engine struct {
	store *ParameterStore
}

// NewEngine returns an engine backed by the compiled-in parameter table.
func NewEngine() *Engine {
	return &Engine{store: Standard()}
}

// NewEngineWithStore returns an engine backed by a caller-supplied table.
// Used by tests and by tooling that replays historical tables.
func NewEngineWithStore(store *ParameterStore) *Engine {
	return &Engine{store: store}
}

// Result is the outcome of one computation.
type Result struct {
	// Accounts is the authoritative account map: the keep-max
	// reconciliation when a prior result was supplied, otherwise the
	// fresh computation.
	Accounts map[AccountType]int `json:"accounts"`

	// KeepOriginal is the conservative reconciliation view. Equal to
	// Accounts when no prior result was supplied.
	KeepOriginal map[AccountType]int `json:"keep_original"`

	// BeforeMerge is the fresh computation before any reconciliation.
	BeforeMerge map[AccountType]int `json:"before_merge"`

	// Standalone bonus amounts, also present inside the account maps.
	ExtraMultipleBirthDays int `json:"extra_multiple_birth_days"`
	ExtraPrematureDays     int `json:"extra_premature_days"`

	Version string `json:"version"`

	// Audit is a self-contained JSON document describing the evaluation.
	Audit json.RawMessage `json:"audit"`
}

type auditFacts struct {
	Coverage       Coverage   `json:"coverage"`
	Rights         Rights     `json:"rights"`
	Role           Role       `json:"role"`
	Children       int        `json:"children"`
	BirthDate      *time.Time `json:"birth_date,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	AdoptionDate   *time.Time `json:"adoption_date,omitempty"`
	MotherDisabled bool       `json:"mother_disabled"`
	NextCaseEvent  *time.Time `json:"next_case_event,omitempty"`
	RuleChoiceDate *time.Time `json:"rule_choice_date,omitempty"`
	ConfigDate     time.Time  `json:"config_date"`
}

type auditPayload struct {
	Facts   auditFacts  `json:"facts"`
	Steps   []StepTrace `json:"steps"`
	Merged  bool        `json:"merged"`
	Version string      `json:"version"`
}

// ComputeAccounts runs the full pipeline for one case.
func (e *Engine) ComputeAccounts(facts CaseFacts) (*Result, error) {
	if facts.coverage == CoverageNone {
		return nil, ErrMissingCoverage
	}

	fresh, extraMulti, extraPremature, trace, err := e.buildAccounts(facts)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Accounts:               fresh,
		KeepOriginal:           fresh,
		BeforeMerge:            fresh,
		ExtraMultipleBirthDays: extraMulti,
		ExtraPrematureDays:     extraPremature,
		Version:                Version,
	}

	merged := len(facts.prior) > 0
	if merged {
		keepOriginal, keepMax := Merge(facts.prior, fresh)
		res.Accounts = keepMax
		res.KeepOriginal = keepOriginal
	}

	audit, err := json.Marshal(auditPayload{
		Facts: auditFacts{
			Coverage:       facts.coverage,
			Rights:         facts.rights,
			Role:           facts.role,
			Children:       facts.children,
			BirthDate:      facts.birthDate,
			DueDate:        facts.dueDate,
			AdoptionDate:   facts.adoptionDate,
			MotherDisabled: facts.motherDisabled,
			NextCaseEvent:  facts.nextCaseEvent,
			RuleChoiceDate: facts.ruleChoiceDate,
			ConfigDate:     facts.ConfigDate(),
		},
		Steps:   trace,
		Merged:  merged,
		Version: Version,
	})
	if err != nil {
		return nil, err
	}
	res.Audit = audit
	return res, nil
}
