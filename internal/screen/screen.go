package screen

import (
	"errors"
	"fmt"
	"sort"

	"github.com/latticelab/kscreen/internal/bondgraph"
	"github.com/latticelab/kscreen/internal/crystal"
	"github.com/latticelab/kscreen/internal/policy"
)

// Screen runs the full pipeline for one structure: bonding graph,
// parity analysis, bond quantum estimate, combined verdict.
//
// A structure with zero bonds is a valid result — energy_pass=false
// with reason no_bonds_found — not an error. Errors are limited to
// geometry defects and analyzer invariant violations.
func Screen(s crystal.Structure, pol policy.Policy) (*ScreeningResult, error) {
	if err := pol.Validate(); err != nil {
		return nil, err
	}

	graph, err := bondgraph.Build(s, pol)
	if err != nil {
		return nil, fmt.Errorf("screen: %w", err)
	}

	parity, err := AnalyzeParity(graph)
	if err != nil {
		return nil, err
	}

	result := &ScreeningResult{
		Formula:    s.Formula(),
		K:          parity.K,
		ParityPass: parity.Pass(),
		Parity:     parity,
	}

	rep, err := RepresentativeBond(graph, pol)
	switch {
	case errors.Is(err, ErrNoBonds):
		result.EnergyPass = false
		result.EnergyReason = ReasonNoBondsFound
	case err != nil:
		return nil, err
	default:
		bond := rep
		result.ShortestBond = &bond
		result.PhononEnergyEV = bond.EnergyEV
		result.PhononEnergyMeV = bond.EnergyMeV
		result.EnergyPass = bond.EnergyEV >= pol.EnergyThresholdEV
		result.CriticalBonds = criticalBonds(graph, pol)
	}

	result.OverallPass = result.ParityPass && result.EnergyPass
	return result, nil
}

// criticalBonds returns the bonds individually at or above the
// threshold, shortest first.
func criticalBonds(g *bondgraph.NeighborGraph, pol policy.Policy) []BondRecord {
	var out []BondRecord
	for _, r := range EstimateBonds(g, pol) {
		if r.EnergyEV >= pol.EnergyThresholdEV {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return lessBond(out[i], out[j]) })
	return out
}
