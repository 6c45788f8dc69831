package crystal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cubic(a float64) Lattice {
	return Lattice{Rows: [3][3]float64{{a, 0, 0}, {0, a, 0}, {0, 0, a}}}
}

func TestNewStructure_Valid(t *testing.T) {
	s, err := NewStructure(cubic(4), []Site{
		{Species: "Li", Frac: [3]float64{0, 0, 0}, Label: "Li1"},
		{Species: "n", Frac: [3]float64{0.5, 0.5, 0.5}},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, s.NumAtoms())
	assert.Equal(t, "Li", s.Atom(0).Species)
	assert.Equal(t, "N", s.Atom(1).Species, "species symbols normalize on construction")
	assert.Equal(t, "Li1", s.Atom(0).Label)
	assert.InDelta(t, 6.94, s.Atom(0).Mass, 1e-9)
	assert.InDelta(t, 14.007, s.Atom(1).Mass, 1e-9)
}

func TestNewStructure_WrapsFractionalCoords(t *testing.T) {
	s, err := NewStructure(cubic(4), []Site{
		{Species: "Li", Frac: [3]float64{1.25, -0.25, 2.0}},
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.25, s.Atom(0).Frac[0], 1e-12)
	assert.InDelta(t, 0.75, s.Atom(0).Frac[1], 1e-12)
	assert.InDelta(t, 0.0, s.Atom(0).Frac[2], 1e-12)
}

func TestNewStructure_Errors(t *testing.T) {
	tests := []struct {
		name    string
		lattice Lattice
		sites   []Site
	}{
		{
			name:    "no atoms",
			lattice: cubic(4),
			sites:   nil,
		},
		{
			name:    "degenerate lattice",
			lattice: Lattice{Rows: [3][3]float64{{1, 0, 0}, {2, 0, 0}, {0, 0, 1}}},
			sites:   []Site{{Species: "Li"}},
		},
		{
			name:    "non-finite lattice",
			lattice: Lattice{Rows: [3][3]float64{{math.NaN(), 0, 0}, {0, 1, 0}, {0, 0, 1}}},
			sites:   []Site{{Species: "Li"}},
		},
		{
			name:    "non-finite coordinate",
			lattice: cubic(4),
			sites:   []Site{{Species: "Li", Frac: [3]float64{math.Inf(1), 0, 0}}},
		},
		{
			name:    "unknown species",
			lattice: cubic(4),
			sites:   []Site{{Species: "Xx"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStructure(tt.lattice, tt.sites)
			require.Error(t, err)
			assert.True(t, IsGeometryError(err), "want GeometryError, got %T", err)
		})
	}
}

func TestLattice_Determinant(t *testing.T) {
	assert.InDelta(t, 64.0, cubic(4).Determinant(), 1e-12)

	// negative determinant for a left-handed cell
	l := Lattice{Rows: [3][3]float64{{0, 1, 0}, {1, 0, 0}, {0, 0, 1}}}
	assert.InDelta(t, -1.0, l.Determinant(), 1e-12)
}

func TestLattice_FractionalRoundTrip(t *testing.T) {
	l := Lattice{Rows: [3][3]float64{
		{3.2, 0.1, 0.0},
		{-1.1, 2.9, 0.2},
		{0.0, 0.4, 5.0},
	}}
	frac := [3]float64{0.21, 0.73, 0.45}
	got := l.Fractional(l.Cartesian(frac))
	for k := 0; k < 3; k++ {
		assert.InDelta(t, frac[k], got[k], 1e-10)
	}
}

func TestLattice_PerpendicularSpacings_Cubic(t *testing.T) {
	h := cubic(4).PerpendicularSpacings()
	for k := 0; k < 3; k++ {
		assert.InDelta(t, 4.0, h[k], 1e-12)
	}
}

func TestLattice_PerpendicularSpacings_Oblique(t *testing.T) {
	// b is nearly parallel to a: spacing along b shrinks to the
	// perpendicular component, not |b|
	l := Lattice{Rows: [3][3]float64{
		{10, 0, 0},
		{9.5, 1, 0},
		{0, 0, 10},
	}}
	h := l.PerpendicularSpacings()
	assert.InDelta(t, 1.0, h[1], 1e-12)
	assert.Greater(t, 9.5, h[1], "oblique direction must be far below |b|")
}

func TestStructure_Separation(t *testing.T) {
	s, err := NewStructure(cubic(4), []Site{
		{Species: "Li", Frac: [3]float64{0, 0, 0}},
		{Species: "Li", Frac: [3]float64{0.5, 0, 0}},
	})
	require.NoError(t, err)

	assert.InDelta(t, 2.0, s.Separation(0, 1, [3]int{0, 0, 0}), 1e-12)
	assert.InDelta(t, 2.0, s.Separation(0, 1, [3]int{-1, 0, 0}), 1e-12, "image on the other side")
	assert.InDelta(t, 4.0, s.Separation(0, 0, [3]int{1, 0, 0}), 1e-12, "self image one cell over")
}
