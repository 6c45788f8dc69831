package policy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Empty(t *testing.T) {
	p, err := Load([]byte("{}"))
	require.NoError(t, err)
	assert.Equal(t, Default(), p, "an empty document is the default policy")
}

func TestLoad_Overrides(t *testing.T) {
	p, err := Load([]byte(`
tolerance_factor: 1.3
energy_threshold_eV: 0.05
min_bond_distance: 0.1
light_atom_max_mass: 10
pair_cutoffs:
  H-H: 0.8
  Li-N: 2.4
`))
	require.NoError(t, err)

	assert.InDelta(t, 1.3, p.ToleranceFactor, 1e-12)
	assert.InDelta(t, 0.05, p.EnergyThresholdEV, 1e-12)
	assert.InDelta(t, 0.1, p.MinBondDist, 1e-12)
	assert.InDelta(t, 10.0, p.LightAtomMaxMass, 1e-12)
	assert.Equal(t, map[string]float64{"H-H": 0.8, "Li-N": 2.4}, p.PairCutoffs)
}

func TestLoad_PartialDocumentKeepsDefaults(t *testing.T) {
	p, err := Load([]byte("energy_threshold_eV: 0.12\n"))
	require.NoError(t, err)
	assert.InDelta(t, 0.12, p.EnergyThresholdEV, 1e-12)
	assert.InDelta(t, DefaultToleranceFactor, p.ToleranceFactor, 1e-12)
	assert.InDelta(t, DefaultMinBondDistance, p.MinBondDist, 1e-12)
}

func TestLoad_CanonicalizesPairKeys(t *testing.T) {
	p, err := Load([]byte(`
pair_cutoffs:
  n-li: 2.4
  h-h: 0.8
`))
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"Li-N": 2.4, "H-H": 0.8}, p.PairCutoffs)
}

func TestLoad_ConflictingDuplicatePairKeys(t *testing.T) {
	// "Li-N" and "n-li" collapse to the same canonical key with
	// different values
	_, err := Load([]byte(`
pair_cutoffs:
  Li-N: 2.4
  n-li: 2.5
`))
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
	assert.Contains(t, err.Error(), "conflicting")
}

func TestLoad_AgreeingDuplicatePairKeys(t *testing.T) {
	p, err := Load([]byte(`
pair_cutoffs:
  Li-N: 2.4
  n-li: 2.4
`))
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"Li-N": 2.4}, p.PairCutoffs)
}

func TestLoad_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"negative tolerance", "tolerance_factor: -1\n"},
		{"zero threshold", "energy_threshold_eV: 0\n"},
		{"wrong type", "tolerance_factor: fast\n"},
		{"unknown field", "bond_tolerance: 1.2\n"},
		{"negative pair cutoff", "pair_cutoffs:\n  H-H: -0.5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.doc))
			require.Error(t, err)
			assert.True(t, IsConfigError(err), "got %v", err)
		})
	}
}

func TestLoad_UnknownSpeciesInPairKey(t *testing.T) {
	_, err := Load([]byte("pair_cutoffs:\n  H-Xq: 1.0\n"))
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("energy_threshold_eV: 0.1\n"), 0o644))

	p, err := LoadFile(path)
	require.NoError(t, err)
	assert.InDelta(t, 0.1, p.EnergyThresholdEV, 1e-12)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}
