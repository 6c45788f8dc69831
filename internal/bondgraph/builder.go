package bondgraph

import (
	"fmt"
	"math"

	"github.com/latticelab/kscreen/internal/crystal"
)

// Build constructs the periodic bonding graph of s under pol.
//
// For every ordered pair (i, j) with i <= j it enumerates periodic
// images of j out to the radius needed to cover the largest cutoff
// any species pair in s can claim. The per-direction search bound is
// ceil(cutoff / h) where h is the perpendicular interplanar spacing;
// a fixed -1..1 window would miss bonds through oblique or short
// cells. A candidate becomes an edge when its distance lies in
// (MinBondDistance, CutoffFor(species pair)].
//
// A structure with no bonds under pol yields a graph with zero edges;
// that is a valid result, not an error.
func Build(s crystal.Structure, pol CutoffPolicy) (*NeighborGraph, error) {
	n := s.NumAtoms()
	if n == 0 {
		return nil, fmt.Errorf("build bond graph: structure has no atoms")
	}

	elems := make([]crystal.Element, n)
	for i := 0; i < n; i++ {
		el, err := crystal.LookupElement(s.Atom(i).Species)
		if err != nil {
			return nil, fmt.Errorf("build bond graph: %w", err)
		}
		elems[i] = el
	}

	maxCutoff := 0.0
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			if c := pol.CutoffFor(elems[i], elems[j]); c > maxCutoff {
				maxCutoff = c
			}
		}
	}

	bounds, err := imageSearchBounds(s.Lattice(), maxCutoff)
	if err != nil {
		return nil, fmt.Errorf("build bond graph: %w", err)
	}

	minDist := pol.MinBondDistance()
	var edges []BondEdge
	degrees := make([]int, n)

	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			cutoff := pol.CutoffFor(elems[i], elems[j])
			if cutoff <= 0 {
				continue
			}
			bondType := crystal.BondType(elems[i].Symbol, elems[j].Symbol)
			for nx := -bounds[0]; nx <= bounds[0]; nx++ {
				for ny := -bounds[1]; ny <= bounds[1]; ny++ {
					for nz := -bounds[2]; nz <= bounds[2]; nz++ {
						image := [3]int{nx, ny, nz}
						if i == j && !selfImageCanonical(image) {
							// skips the zero image and one of each
							// (t, -t) pair
							continue
						}
						d := s.Separation(i, j, image)
						if d <= minDist || d > cutoff {
							continue
						}
						edges = append(edges, BondEdge{
							I:        i,
							J:        j,
							Image:    image,
							Distance: d,
							Type:     bondType,
						})
						degrees[i]++
						degrees[j]++
					}
				}
			}
		}
	}

	return &NeighborGraph{structure: s, edges: edges, degrees: degrees}, nil
}

// imageSearchBounds returns, per lattice direction, the number of
// periodic images that must be searched so no neighbor within cutoff
// is missed.
func imageSearchBounds(l crystal.Lattice, cutoff float64) ([3]int, error) {
	var bounds [3]int
	h := l.PerpendicularSpacings()
	for d := 0; d < 3; d++ {
		if h[d] <= 0 {
			return bounds, fmt.Errorf("lattice direction %d has zero interplanar spacing", d)
		}
		bounds[d] = int(math.Ceil(cutoff / h[d]))
	}
	return bounds, nil
}

// selfImageCanonical reports whether a self-bond translation is the
// canonical representative of its (t, -t) pair: the first nonzero
// component is positive. The zero translation is not canonical — an
// atom does not bond to its un-translated self.
func selfImageCanonical(t [3]int) bool {
	for _, c := range t {
		if c > 0 {
			return true
		}
		if c < 0 {
			return false
		}
	}
	return false
}
