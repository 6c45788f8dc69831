package bondgraph

import (
	"github.com/latticelab/kscreen/internal/crystal"
)

// BondEdge is one bond of the periodic graph: the unordered atom pair
// (I, J) with I <= J, the periodic image of J that bonds to I, the
// Cartesian distance, and the canonical bond-type label.
type BondEdge struct {
	I, J     int
	Image    [3]int  // lattice-translation triple applied to atom J
	Distance float64 // Å
	Type     string  // sorted species pair, e.g. "Li-N"
}

// CutoffPolicy supplies the maximum bond distance per species pair.
// Implemented by policy.Policy; tests use literal implementations.
type CutoffPolicy interface {
	// CutoffFor returns the bonding cutoff in Å for an unordered
	// species pair. Implementations fall back to summed covalent
	// radii scaled by a tolerance factor when no explicit entry
	// exists.
	CutoffFor(a, b crystal.Element) float64

	// MinBondDistance is the numerical floor below which two sites
	// are treated as coincident rather than bonded.
	MinBondDistance() float64
}

// NeighborGraph owns the full canonical edge set for one structure.
// It is built once by Build and read-only afterwards.
type NeighborGraph struct {
	structure crystal.Structure
	edges     []BondEdge
	degrees   []int
}

// Structure returns the structure the graph was built from.
func (g *NeighborGraph) Structure() crystal.Structure { return g.structure }

// Edges returns the canonical edge set. Callers must not mutate it.
func (g *NeighborGraph) Edges() []BondEdge { return g.edges }

// NumEdges returns the bond count.
func (g *NeighborGraph) NumEdges() int { return len(g.edges) }

// Degree returns atom i's bonding degree: the count of incident
// edges with every periodic image counted separately. Self-image
// bonds count twice.
func (g *NeighborGraph) Degree(i int) int { return g.degrees[i] }

// Degrees returns a copy of the per-atom degree sequence.
func (g *NeighborGraph) Degrees() []int {
	out := make([]int, len(g.degrees))
	copy(out, g.degrees)
	return out
}
