package legacy_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/quota-engine/legacy"
	"github.com/warp/quota-engine/quota"
)

// Stored payloads copied verbatim from real snapshot generations.

const snapshot2018 = `{
  "erFødsel" : true,
  "antallBarn" : 1,
  "morRett" : true,
  "farRett" : true,
  "dekningsgrad" : "DEKNINGSGRAD_100",
  "farAleneomsorg" : false,
  "morAleneomsorg" : false,
  "familiehendelsesdato" : "2019-01-22"
}`

const snapshot2019 = `{
  "antallBarn" : 1,
  "morRett" : true,
  "farRett" : true,
  "dekningsgrad" : "DEKNINGSGRAD_100",
  "farAleneomsorg" : false,
  "morAleneomsorg" : false,
  "fødselsdato" : null,
  "termindato" : "2019-07-26",
  "omsorgsovertakelseDato" : null
}`

const snapshot2022 = `{
  "regelvalgsdato" : null,
  "antallBarn" : 1,
  "morRett" : true,
  "farRett" : true,
  "dekningsgrad" : "DEKNINGSGRAD_80",
  "farAleneomsorg" : false,
  "morAleneomsorg" : false,
  "farHarRettEØS" : false,
  "morHarRettEØS" : false,
  "fødselsdato" : null,
  "termindato" : "2024-05-04",
  "omsorgsovertakelseDato" : null,
  "minsterett" : true
}`

func TestDecode_V0Birth(t *testing.T) {
	// The presence of familiehendelsesdato selects the oldest generation.

	facts, err := legacy.Decode([]byte(snapshot2018))
	require.NoError(t, err)

	assert.Equal(t, quota.RightsBoth, facts.Rights())
	assert.Equal(t, quota.Coverage100, facts.Coverage())
	assert.Equal(t, 1, facts.Children())
	assert.True(t, facts.IsBirth())
	assert.Equal(t, quota.NewDate(2019, time.January, 22), facts.FamilyEventDate())
}

func TestDecode_V0Adoption(t *testing.T) {
	payload := `{
	  "erFødsel" : false,
	  "antallBarn" : 2,
	  "morRett" : true,
	  "farRett" : false,
	  "dekningsgrad" : "DEKNINGSGRAD_80",
	  "farAleneomsorg" : false,
	  "morAleneomsorg" : false,
	  "familiehendelsesdato" : "2019-03-01"
	}`

	facts, err := legacy.Decode([]byte(payload))
	require.NoError(t, err)

	assert.Equal(t, quota.RightsSoleApplicant, facts.Rights())
	assert.Equal(t, quota.RoleMother, facts.Role())
	assert.Equal(t, 2, facts.Children())
	assert.False(t, facts.IsBirth())
	assert.Equal(t, quota.NewDate(2019, time.March, 1), facts.FamilyEventDate())
}

func TestDecode_V1DueDateOnly(t *testing.T) {
	facts, err := legacy.Decode([]byte(snapshot2019))
	require.NoError(t, err)

	assert.Equal(t, quota.RightsBoth, facts.Rights())
	assert.True(t, facts.IsBirth())
	assert.Nil(t, facts.BirthDate())
	require.NotNil(t, facts.DueDate())
	assert.Equal(t, quota.NewDate(2019, time.July, 26), facts.FamilyEventDate())
}

func TestDecode_V1MinimumRightsEra(t *testing.T) {
	// An event already inside the minimum-rights regime needs no pinning.

	facts, err := legacy.Decode([]byte(snapshot2022))
	require.NoError(t, err)

	assert.Equal(t, quota.Coverage80, facts.Coverage())
	assert.Nil(t, facts.RuleChoiceDate())
	assert.Equal(t, quota.NewDate(2024, time.May, 4), facts.ConfigDate())
}

func TestDecode_V1MinimumRightsGrantedBeforeRegime_PinsRules(t *testing.T) {
	// GIVEN: A snapshot flagged as minimum-rights whose event predates the
	//        regime
	// WHEN: Decoding
	// THEN: The rule choice date is pinned to the regime start so a replay
	//       applies the rules the grant was made under

	payload := `{
	  "antallBarn" : 1,
	  "morRett" : false,
	  "farRett" : true,
	  "dekningsgrad" : "DEKNINGSGRAD_100",
	  "farAleneomsorg" : false,
	  "morAleneomsorg" : false,
	  "fødselsdato" : "2022-07-15",
	  "termindato" : null,
	  "omsorgsovertakelseDato" : null,
	  "minsterett" : true
	}`

	facts, err := legacy.Decode([]byte(payload))
	require.NoError(t, err)

	assert.Equal(t, quota.RightsSoleApplicant, facts.Rights())
	assert.Equal(t, quota.RoleFather, facts.Role())
	require.NotNil(t, facts.RuleChoiceDate())
	assert.Equal(t, quota.NewDate(2022, time.August, 2), facts.ConfigDate())
}

func TestDecode_V1EEARightsFolded(t *testing.T) {
	payload := `{
	  "antallBarn" : 1,
	  "morRett" : false,
	  "farRett" : true,
	  "dekningsgrad" : "DEKNINGSGRAD_100",
	  "farAleneomsorg" : false,
	  "morAleneomsorg" : false,
	  "morHarRettEØS" : true,
	  "fødselsdato" : "2024-05-04",
	  "termindato" : null,
	  "omsorgsovertakelseDato" : null
	}`

	facts, err := legacy.Decode([]byte(payload))
	require.NoError(t, err)
	assert.Equal(t, quota.RightsBoth, facts.Rights())
}

func TestDecode_AloneCare(t *testing.T) {
	payload := `{
	  "antallBarn" : 1,
	  "morRett" : false,
	  "farRett" : true,
	  "dekningsgrad" : "DEKNINGSGRAD_100",
	  "farAleneomsorg" : true,
	  "morAleneomsorg" : false,
	  "fødselsdato" : "2024-05-04",
	  "termindato" : null,
	  "omsorgsovertakelseDato" : null
	}`

	facts, err := legacy.Decode([]byte(payload))
	require.NoError(t, err)
	assert.Equal(t, quota.RightsAloneCare, facts.Rights())
	assert.Equal(t, quota.RoleFather, facts.Role())
}

func TestDecode_NoRightsHolder(t *testing.T) {
	payload := `{
	  "antallBarn" : 1,
	  "morRett" : false,
	  "farRett" : false,
	  "dekningsgrad" : "DEKNINGSGRAD_100",
	  "farAleneomsorg" : false,
	  "morAleneomsorg" : false,
	  "fødselsdato" : "2024-05-04"
	}`

	_, err := legacy.Decode([]byte(payload))
	assert.ErrorIs(t, err, legacy.ErrNoRightsHolder)
}

func TestDecode_UnknownCoverage(t *testing.T) {
	payload := `{
	  "antallBarn" : 1,
	  "morRett" : true,
	  "farRett" : true,
	  "dekningsgrad" : "DEKNINGSGRAD_90",
	  "fødselsdato" : "2024-05-04"
	}`

	_, err := legacy.Decode([]byte(payload))
	assert.ErrorIs(t, err, legacy.ErrUnknownCoverage)
}

func TestDecode_Garbage(t *testing.T) {
	_, err := legacy.Decode([]byte("not json"))
	assert.Error(t, err)
}

func TestDecode_DecodedSnapshotComputes(t *testing.T) {
	// End to end: a decoded 2018 snapshot runs through the engine.

	facts, err := legacy.Decode([]byte(snapshot2018))
	require.NoError(t, err)

	result, err := quota.NewEngine().ComputeAccounts(facts)
	require.NoError(t, err)
	assert.Equal(t, map[quota.AccountType]int{
		quota.AccountSharedPeriod: 80,
		quota.AccountMotherQuota:  75,
		quota.AccountFatherQuota:  75,
		quota.AccountPreBirth:     15,
	}, result.Accounts)
}
