/*
Package legacy reads historical computation inputs and maps them onto
current case facts.

PURPOSE:
  Stored computations carry the exact rule input they were made from, in
  whatever wire format was current at the time. Two generations exist:

  v0 (late 2018 to mid 2019): a single "familiehendelsesdato" event date
     plus an "erFødsel" flag distinguishing birth from adoption.
  v1 (mid 2019 onward): separate birth, due and care-takeover dates, EEA
     rights flags folded into the plain rights flags, and a flag marking
     results granted under the minimum-rights regime.

  The generations are told apart by the presence of the
  "familiehendelsesdato" field; unknown fields are ignored so newer
  snapshots with extra fields still decode.

FIELD NAMES:
  The Norwegian JSON keys are the stored wire format and must match the
  historical payloads byte for byte; do not anglicize them.
*/
package legacy

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/warp/quota-engine/quota"
)

var (
	// ErrNoRightsHolder is returned when a snapshot grants rights to
	// neither parent. Such inputs were never valid in any generation.
	ErrNoRightsHolder = errors.New("snapshot grants rights to neither parent")

	// ErrUnknownCoverage is returned for a coverage code outside the two
	// historical values.
	ErrUnknownCoverage = errors.New("unknown coverage code")
)

// coverage codes as stored.
const (
	coverage100 = "DEKNINGSGRAD_100"
	coverage80  = "DEKNINGSGRAD_80"
)

// isoDate unmarshals the stored "2006-01-02" date strings, tolerating null.
type isoDate struct {
	time.Time
}

func (d *isoDate) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := time.Parse("2006-01-02", s)
	if err != nil {
		return fmt.Errorf("invalid snapshot date %q: %w", s, err)
	}
	d.Time = parsed
	return nil
}

type snapshotV0 struct {
	ErFødsel             bool     `json:"erFødsel"`
	AntallBarn           int      `json:"antallBarn"`
	MorRett              bool     `json:"morRett"`
	FarRett              bool     `json:"farRett"`
	Dekningsgrad         string   `json:"dekningsgrad"`
	FarAleneomsorg       bool     `json:"farAleneomsorg"`
	MorAleneomsorg       bool     `json:"morAleneomsorg"`
	Familiehendelsesdato *isoDate `json:"familiehendelsesdato"`
}

type snapshotV1 struct {
	Regelvalgsdato         *isoDate `json:"regelvalgsdato"`
	AntallBarn             int      `json:"antallBarn"`
	MorRett                bool     `json:"morRett"`
	FarRett                bool     `json:"farRett"`
	Dekningsgrad           string   `json:"dekningsgrad"`
	FarAleneomsorg         bool     `json:"farAleneomsorg"`
	MorAleneomsorg         bool     `json:"morAleneomsorg"`
	FarHarRettEØS          bool     `json:"farHarRettEØS"`
	MorHarRettEØS          bool     `json:"morHarRettEØS"`
	Fødselsdato            *isoDate `json:"fødselsdato"`
	Termindato             *isoDate `json:"termindato"`
	OmsorgsovertakelseDato *isoDate `json:"omsorgsovertakelseDato"`
	Minsterett             bool     `json:"minsterett"`
}

// Decode maps a stored snapshot of either generation onto current case
// facts.
func Decode(data []byte) (quota.CaseFacts, error) {
	var probe struct {
		Familiehendelsesdato json.RawMessage `json:"familiehendelsesdato"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return quota.CaseFacts{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if probe.Familiehendelsesdato != nil {
		return decodeV0(data)
	}
	return decodeV1(data)
}

func decodeV0(data []byte) (quota.CaseFacts, error) {
	var s snapshotV0
	if err := json.Unmarshal(data, &s); err != nil {
		return quota.CaseFacts{}, fmt.Errorf("decode v0 snapshot: %w", err)
	}

	b := quota.NewFactsBuilder().Children(s.AntallBarn)
	if err := applyCoverage(b, s.Dekningsgrad); err != nil {
		return quota.CaseFacts{}, err
	}
	if err := applyRights(b, s.MorRett, s.FarRett, s.MorAleneomsorg, s.FarAleneomsorg); err != nil {
		return quota.CaseFacts{}, err
	}
	if s.Familiehendelsesdato != nil {
		if s.ErFødsel {
			b.BirthDate(s.Familiehendelsesdato.Time)
		} else {
			b.AdoptionDate(s.Familiehendelsesdato.Time)
		}
	}
	return b.Build()
}

func decodeV1(data []byte) (quota.CaseFacts, error) {
	var s snapshotV1
	if err := json.Unmarshal(data, &s); err != nil {
		return quota.CaseFacts{}, fmt.Errorf("decode v1 snapshot: %w", err)
	}

	b := quota.NewFactsBuilder().Children(s.AntallBarn)
	if err := applyCoverage(b, s.Dekningsgrad); err != nil {
		return quota.CaseFacts{}, err
	}
	morRett := s.MorRett || s.MorHarRettEØS
	farRett := s.FarRett || s.FarHarRettEØS
	if err := applyRights(b, morRett, farRett, s.MorAleneomsorg, s.FarAleneomsorg); err != nil {
		return quota.CaseFacts{}, err
	}
	if s.Fødselsdato != nil {
		b.BirthDate(s.Fødselsdato.Time)
	}
	if s.Termindato != nil {
		b.DueDate(s.Termindato.Time)
	}
	if s.OmsorgsovertakelseDato != nil {
		b.AdoptionDate(s.OmsorgsovertakelseDato.Time)
	}
	regime := quota.NewDate(2022, time.August, 2)
	switch {
	case s.Regelvalgsdato != nil:
		b.RuleChoiceDate(s.Regelvalgsdato.Time)
	case s.Minsterett && eventBefore(&s, regime):
		// Granted under the minimum-rights regime even though the event
		// date predates it; pin the rules to the regime so a replay does
		// not hand out the pre-regime free days.
		b.RuleChoiceDate(regime)
	}
	return b.Build()
}

// eventBefore reports whether the snapshot's family event falls before
// the given date, using the same precedence as the facts themselves.
func eventBefore(s *snapshotV1, d time.Time) bool {
	for _, candidate := range []*isoDate{s.OmsorgsovertakelseDato, s.Fødselsdato, s.Termindato} {
		if candidate != nil {
			return candidate.Time.Before(d)
		}
	}
	return false
}

func applyCoverage(b *quota.FactsBuilder, code string) error {
	switch code {
	case coverage100:
		b.Coverage(quota.Coverage100)
	case coverage80:
		b.Coverage(quota.Coverage80)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCoverage, code)
	}
	return nil
}

// applyRights maps the historical rights flags onto the current
// rights/role pair. Snapshots never recorded who applied, so shared
// rights default to the mother's perspective; the account structure is
// identical either way.
func applyRights(b *quota.FactsBuilder, morRett, farRett, morAlene, farAlene bool) error {
	switch {
	case farAlene:
		b.Rights(quota.RightsAloneCare).Role(quota.RoleFather)
	case morAlene:
		b.Rights(quota.RightsAloneCare).Role(quota.RoleMother)
	case morRett && farRett:
		b.Rights(quota.RightsBoth).Role(quota.RoleMother)
	case morRett:
		b.Rights(quota.RightsSoleApplicant).Role(quota.RoleMother)
	case farRett:
		b.Rights(quota.RightsSoleApplicant).Role(quota.RoleFather)
	default:
		return ErrNoRightsHolder
	}
	return nil
}
