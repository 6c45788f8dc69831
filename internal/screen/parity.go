package screen

import (
	"fmt"

	"github.com/latticelab/kscreen/internal/bondgraph"
)

// DegreeStats summarizes the degree sequence of a bonding graph.
type DegreeStats struct {
	Atoms     int     `json:"atoms"`
	Bonds     int     `json:"bonds"`
	MinDegree int     `json:"min_degree"`
	MaxDegree int     `json:"max_degree"`
	AvgDegree float64 `json:"avg_degree"`
	OddCount  int     `json:"odd_degree_count"`
	EvenCount int     `json:"even_degree_count"`
}

// ParityReport is the outcome of the parity analysis: K, the atoms
// responsible for it, and degree statistics for reporting.
type ParityReport struct {
	// K counts atoms of odd bonding degree. Always even for a valid
	// analysis (every edge contributes two degree units).
	K int `json:"K"`

	// OddAtoms lists the indices of odd-degree atoms, ascending.
	OddAtoms []int `json:"odd_atoms,omitempty"`

	Stats DegreeStats `json:"stats"`
}

// Pass reports the parity-pass condition: every atom has an even
// bonding count (K == 0). A degree of zero is even, so an isolated
// atom passes parity.
func (r ParityReport) Pass() bool { return r.K == 0 }

// AnalyzeParity computes the parity invariant K over g.
//
// The handshake lemma guarantees K is even for any finite graph; an
// odd K can only come from a defect in degree accounting, so it is
// returned as an InvariantError rather than a report.
func AnalyzeParity(g *bondgraph.NeighborGraph) (ParityReport, error) {
	degrees := g.Degrees()

	report := ParityReport{
		Stats: DegreeStats{
			Atoms: len(degrees),
			Bonds: g.NumEdges(),
		},
	}

	sum := 0
	for i, d := range degrees {
		if i == 0 || d < report.Stats.MinDegree {
			report.Stats.MinDegree = d
		}
		if d > report.Stats.MaxDegree {
			report.Stats.MaxDegree = d
		}
		sum += d
		if d%2 == 1 {
			report.OddAtoms = append(report.OddAtoms, i)
		}
	}
	report.K = len(report.OddAtoms)
	report.Stats.OddCount = report.K
	report.Stats.EvenCount = report.Stats.Atoms - report.K
	if report.Stats.Atoms > 0 {
		report.Stats.AvgDegree = float64(sum) / float64(report.Stats.Atoms)
	}

	if report.K%2 != 0 {
		return ParityReport{}, &InvariantError{
			Check:   "parity",
			Message: fmt.Sprintf("odd-degree atom count K=%d is odd", report.K),
		}
	}
	if sum != 2*g.NumEdges() {
		return ParityReport{}, &InvariantError{
			Check:   "handshake",
			Message: fmt.Sprintf("degree sum %d != 2 x %d edges", sum, g.NumEdges()),
		}
	}
	return report, nil
}
