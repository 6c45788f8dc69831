package policy

import (
	"sort"
	"strings"

	"github.com/latticelab/kscreen/internal/crystal"
)

// Defaults carried over from the original screening thresholds.
const (
	// DefaultToleranceFactor scales summed covalent radii into the
	// fallback bonding cutoff.
	DefaultToleranceFactor = 1.15

	// DefaultEnergyThresholdEV is the screening threshold for the
	// representative bond quantum energy: 0.081 eV (81 meV).
	DefaultEnergyThresholdEV = 0.081

	// DefaultMinBondDistance rejects numerically coincident sites.
	DefaultMinBondDistance = 0.4
)

// Policy is the immutable screening configuration. Build one with
// Default or Load, then adjust fields before calling Validate;
// analysis entry points treat it as read-only.
type Policy struct {
	// PairCutoffs maps canonical bond-type labels ("Li-N") to maximum
	// bond distances in Å, overriding the covalent-radius fallback.
	PairCutoffs map[string]float64

	// ToleranceFactor scales summed covalent radii for pairs without
	// an explicit cutoff.
	ToleranceFactor float64

	// EnergyThresholdEV is the minimum representative bond quantum
	// energy for an energy-pass verdict, in eV.
	EnergyThresholdEV float64

	// MinBondDist is the numerical floor in Å below which two sites
	// are treated as coincident, not bonded.
	MinBondDist float64

	// LightAtomMaxMass, when positive, restricts the bond quantum
	// estimator to bonds touching at least one atom of mass <= this
	// value (u). Zero disables the filter.
	LightAtomMaxMass float64
}

// Default returns the policy used when no configuration file is given.
func Default() Policy {
	return Policy{
		ToleranceFactor:   DefaultToleranceFactor,
		EnergyThresholdEV: DefaultEnergyThresholdEV,
		MinBondDist:       DefaultMinBondDistance,
	}
}

// Validate checks the policy invariants. It must be called (and pass)
// before the policy reaches any analysis call; Load validates
// automatically.
func (p Policy) Validate() error {
	if p.ToleranceFactor <= 0 {
		return configErrorf("tolerance_factor", "must be > 0, got %v", p.ToleranceFactor)
	}
	if p.EnergyThresholdEV <= 0 {
		return configErrorf("energy_threshold_eV", "must be > 0, got %v", p.EnergyThresholdEV)
	}
	if p.MinBondDist < 0 {
		return configErrorf("min_bond_distance", "must be >= 0, got %v", p.MinBondDist)
	}
	if p.LightAtomMaxMass < 0 {
		return configErrorf("light_atom_max_mass", "must be >= 0, got %v", p.LightAtomMaxMass)
	}
	for key, cutoff := range p.PairCutoffs {
		if cutoff <= 0 {
			return configErrorf("pair_cutoffs", "cutoff for %q must be > 0, got %v", key, cutoff)
		}
		canonical, err := canonicalPairKey(key)
		if err != nil {
			return err
		}
		if canonical != key {
			return configErrorf("pair_cutoffs", "key %q is not canonical (want %q)", key, canonical)
		}
	}
	return nil
}

// CutoffFor implements bondgraph.CutoffPolicy: the explicit pair
// entry when present, otherwise summed covalent radii times the
// tolerance factor.
func (p Policy) CutoffFor(a, b crystal.Element) float64 {
	if c, ok := p.PairCutoffs[crystal.BondType(a.Symbol, b.Symbol)]; ok {
		return c
	}
	return (a.CovalentRadius + b.CovalentRadius) * p.ToleranceFactor
}

// MinBondDistance implements bondgraph.CutoffPolicy.
func (p Policy) MinBondDistance() float64 { return p.MinBondDist }

// PairKeys returns the explicit pair-cutoff keys, sorted, for
// reporting and persistence.
func (p Policy) PairKeys() []string {
	keys := make([]string, 0, len(p.PairCutoffs))
	for k := range p.PairCutoffs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// canonicalPairKey normalizes a user-written pair key ("li-N",
// "N - Li") into the canonical sorted bond-type label, verifying both
// species exist in the element table.
func canonicalPairKey(key string) (string, error) {
	parts := strings.Split(key, "-")
	if len(parts) != 2 {
		return "", configErrorf("pair_cutoffs", "key %q is not a species pair", key)
	}
	a, err := crystal.LookupElement(parts[0])
	if err != nil {
		return "", configErrorf("pair_cutoffs", "key %q: %v", key, err)
	}
	b, err := crystal.LookupElement(parts[1])
	if err != nil {
		return "", configErrorf("pair_cutoffs", "key %q: %v", key, err)
	}
	return crystal.BondType(a.Symbol, b.Symbol), nil
}
