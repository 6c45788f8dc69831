// Package testutil provides shared structure fixtures for tests.
package testutil

import (
	"testing"

	"github.com/latticelab/kscreen/internal/crystal"
)

// vacuumBox is the cell edge used for non-periodic fixtures: large
// enough that no periodic image falls within any realistic cutoff.
const vacuumBox = 100.0

// CubicLattice returns a cubic lattice with edge a Å.
func CubicLattice(a float64) crystal.Lattice {
	return crystal.Lattice{Rows: [3][3]float64{
		{a, 0, 0},
		{0, a, 0},
		{0, 0, a},
	}}
}

// MustStructure builds a structure or fails the test.
func MustStructure(t *testing.T, lattice crystal.Lattice, sites []crystal.Site) crystal.Structure {
	t.Helper()
	s, err := crystal.NewStructure(lattice, sites)
	if err != nil {
		t.Fatalf("build fixture structure: %v", err)
	}
	return s
}

// Chain places n atoms of the given species along x with the given
// spacing, inside a vacuum box, so the chain has open ends and no
// periodic wrap-around.
func Chain(t *testing.T, species string, n int, spacing float64) crystal.Structure {
	t.Helper()
	sites := make([]crystal.Site, n)
	for i := range sites {
		sites[i] = crystal.Site{
			Species: species,
			Frac:    [3]float64{float64(i) * spacing / vacuumBox, 0.5, 0.5},
		}
	}
	return MustStructure(t, CubicLattice(vacuumBox), sites)
}

// SquareNet returns a two-atom cell forming a 2-D square net: atom B
// sits at the cell center of the a-b plane, so each atom reaches four
// images of the other at distance a/sqrt(2). The c axis is padded
// with vacuum.
func SquareNet(t *testing.T, species string, a float64) crystal.Structure {
	t.Helper()
	lattice := crystal.Lattice{Rows: [3][3]float64{
		{a, 0, 0},
		{0, a, 0},
		{0, 0, vacuumBox},
	}}
	return MustStructure(t, lattice, []crystal.Site{
		{Species: species, Frac: [3]float64{0, 0, 0}},
		{Species: species, Frac: [3]float64{0.5, 0.5, 0}},
	})
}

// Isolated returns a single atom alone in a vacuum box.
func Isolated(t *testing.T, species string) crystal.Structure {
	t.Helper()
	return MustStructure(t, CubicLattice(vacuumBox), []crystal.Site{
		{Species: species, Frac: [3]float64{0.5, 0.5, 0.5}},
	})
}
