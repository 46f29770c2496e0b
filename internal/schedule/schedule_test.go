package schedule

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"tax-engine/internal/regime"
)

func writeSchedule(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schedule.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultMatchesEnactedRegimes(t *testing.T) {
	s := Default()
	require.NoError(t, s.Validate())

	in := regime.Income{Gross: 9_500_000, Rent: 1_800_000, Statutory: 760_000}
	set := s.Regimes()
	prior, ok := set.Get(regime.PriorName)
	require.True(t, ok)
	current, ok := set.Get(regime.CurrentName)
	require.True(t, ok)

	assert.Equal(t, regime.PriorTax(in.Gross, in.Statutory), prior.Assess(in).Tax)
	assert.Equal(t, regime.CurrentTax(in.Gross, in.Rent, in.Statutory), current.Assess(in).Tax)
}

func TestLoadEmptyPathReturnsDefault(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestLoadOverridesOnlyGivenKeys(t *testing.T) {
	path := writeSchedule(t, `
current:
  rent_relief_cap: 1000000
  bands:
    - width: 1000000
      rate: 0
    - unbounded: true
      rate: 0.2
`)
	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.20, s.Current.RentReliefRate)
	assert.Equal(t, 1_000_000.0, s.Current.RentReliefCap)
	require.Len(t, s.Current.Bands, 2)
	assert.Equal(t, Default().Prior, s.Prior)

	c := s.CurrentRegime()
	assert.Equal(t, 1_000_000.0, c.RentRelief(10_000_000))
	assert.InDelta(t, 200_000.0, c.Assess(regime.Income{Gross: 2_000_000}).Tax, 1e-6)
}

func TestLoadRejectsInvalidSchedules(t *testing.T) {
	cases := map[string]string{
		"bounded final band":   "prior:\n  bands:\n    - width: 100\n      rate: 0.1\n",
		"negative cap":         "current:\n  rent_relief_cap: -1\n",
		"rent rate above one":  "current:\n  rent_relief_rate: 1.5\n",
		"floor rate above one": "prior:\n  relief_floor_rate: 2\n",
		"gross rate above one": "prior:\n  relief_gross_rate: 1.01\n",
		"negative rent rate":   "current:\n  rent_relief_rate: -0.1\n",
		"not yaml":             "prior: [",
	}
	for name, body := range cases {
		_, err := Load(writeSchedule(t, body))
		assert.Error(t, err, name)
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Default().Marshal()
	require.NoError(t, err)

	var decoded Schedule
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, *Default(), decoded)
	assert.True(t, decoded.Prior.Bands[len(decoded.Prior.Bands)-1].Unbounded)
}
