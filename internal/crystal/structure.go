package crystal

import (
	"math"
)

// Atom is one site of a periodic structure. Frac holds fractional
// coordinates against the owning structure's lattice; Mass is the
// standard atomic mass resolved from the element table at
// construction time.
type Atom struct {
	Species string  // canonical element symbol, e.g. "Li"
	Mass    float64 // atomic mass in u
	Frac    [3]float64
	Label   string // optional site label from the source file
}

// Lattice is a 3x3 row-vector matrix: Rows[0] is the a translation
// vector in Å, Rows[1] b, Rows[2] c.
type Lattice struct {
	Rows [3][3]float64
}

// Determinant returns the signed cell volume.
func (l Lattice) Determinant() float64 {
	r := l.Rows
	return r[0][0]*(r[1][1]*r[2][2]-r[1][2]*r[2][1]) -
		r[0][1]*(r[1][0]*r[2][2]-r[1][2]*r[2][0]) +
		r[0][2]*(r[1][0]*r[2][1]-r[1][1]*r[2][0])
}

// Cartesian maps a fractional vector (including integer image
// offsets) to Cartesian Å coordinates.
func (l Lattice) Cartesian(frac [3]float64) [3]float64 {
	var out [3]float64
	for k := 0; k < 3; k++ {
		out[k] = frac[0]*l.Rows[0][k] + frac[1]*l.Rows[1][k] + frac[2]*l.Rows[2][k]
	}
	return out
}

// Fractional maps Cartesian Å coordinates back to fractional
// coordinates. Valid only for non-degenerate lattices; callers
// validate the determinant first.
func (l Lattice) Fractional(cart [3]float64) [3]float64 {
	det := l.Determinant()
	r := l.Rows
	// inverse matrix via adjugate / det
	inv := [3][3]float64{
		{
			(r[1][1]*r[2][2] - r[1][2]*r[2][1]) / det,
			(r[0][2]*r[2][1] - r[0][1]*r[2][2]) / det,
			(r[0][1]*r[1][2] - r[0][2]*r[1][1]) / det,
		},
		{
			(r[1][2]*r[2][0] - r[1][0]*r[2][2]) / det,
			(r[0][0]*r[2][2] - r[0][2]*r[2][0]) / det,
			(r[0][2]*r[1][0] - r[0][0]*r[1][2]) / det,
		},
		{
			(r[1][0]*r[2][1] - r[1][1]*r[2][0]) / det,
			(r[0][1]*r[2][0] - r[0][0]*r[2][1]) / det,
			(r[0][0]*r[1][1] - r[0][1]*r[1][0]) / det,
		},
	}
	var out [3]float64
	for k := 0; k < 3; k++ {
		out[k] = cart[0]*inv[0][k] + cart[1]*inv[1][k] + cart[2]*inv[2][k]
	}
	return out
}

// PerpendicularSpacings returns, per lattice direction, the distance
// between adjacent lattice planes perpendicular to that direction:
// h_i = V / |a_j x a_k|. This is the quantity that bounds how many
// periodic images must be searched to cover a given cutoff radius —
// for oblique or short cells it can be much smaller than |a_i|.
func (l Lattice) PerpendicularSpacings() [3]float64 {
	vol := math.Abs(l.Determinant())
	var h [3]float64
	for i := 0; i < 3; i++ {
		j, k := (i+1)%3, (i+2)%3
		cross := crossProduct(l.Rows[j], l.Rows[k])
		area := vectorNorm(cross)
		if area == 0 {
			h[i] = 0
			continue
		}
		h[i] = vol / area
	}
	return h
}

func crossProduct(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func vectorNorm(v [3]float64) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// Structure is an immutable candidate material: an ordered atom list
// plus its lattice. Construct via NewStructure, which resolves masses
// and validates geometry; a zero Structure is not usable.
type Structure struct {
	atoms   []Atom
	lattice Lattice
}

// NewStructure validates and assembles a Structure. Species symbols
// and labels are normalized; masses are resolved from the element
// table. Returns a GeometryError when the lattice is degenerate, a
// coordinate is not finite, the atom list is empty, or a species is
// unknown.
//
// Fractional coordinates are wrapped into [0,1) so equivalent sites
// expressed in neighboring cells compare equal.
func NewStructure(lattice Lattice, sites []Site) (Structure, error) {
	if len(sites) == 0 {
		return Structure{}, geometryErrorf(-1, "structure has no atoms")
	}
	for i := 0; i < 3; i++ {
		for k := 0; k < 3; k++ {
			if !isFinite(lattice.Rows[i][k]) {
				return Structure{}, geometryErrorf(-1, "lattice component [%d][%d] is not finite", i, k)
			}
		}
	}
	if det := lattice.Determinant(); det == 0 || !isFinite(det) {
		return Structure{}, geometryErrorf(-1, "degenerate lattice (determinant %v)", lattice.Determinant())
	}

	atoms := make([]Atom, len(sites))
	for i, site := range sites {
		el, err := LookupElement(site.Species)
		if err != nil {
			return Structure{}, geometryErrorf(i, "%v", err)
		}
		var frac [3]float64
		for k, c := range site.Frac {
			if !isFinite(c) {
				return Structure{}, geometryErrorf(i, "fractional coordinate %d is not finite", k)
			}
			frac[k] = wrapFrac(c)
		}
		atoms[i] = Atom{
			Species: el.Symbol,
			Mass:    el.AtomicMass,
			Frac:    frac,
			Label:   NormalizeLabel(site.Label),
		}
	}
	return Structure{atoms: atoms, lattice: lattice}, nil
}

// Site is the raw per-atom input to NewStructure, as produced by a
// parser before normalization.
type Site struct {
	Species string
	Frac    [3]float64
	Label   string
}

// NumAtoms returns the atom count.
func (s Structure) NumAtoms() int { return len(s.atoms) }

// Atom returns the atom at index i.
func (s Structure) Atom(i int) Atom { return s.atoms[i] }

// Lattice returns the lattice matrix.
func (s Structure) Lattice() Lattice { return s.lattice }

// Separation returns the Cartesian distance in Å between atom i and
// the (nx,ny,nz) periodic image of atom j.
func (s Structure) Separation(i, j int, image [3]int) float64 {
	var d [3]float64
	for k := 0; k < 3; k++ {
		d[k] = s.atoms[j].Frac[k] + float64(image[k]) - s.atoms[i].Frac[k]
	}
	return vectorNorm(s.lattice.Cartesian(d))
}

func wrapFrac(c float64) float64 {
	w := c - math.Floor(c)
	if w >= 1 { // guards float rounding when c is a tiny negative
		w = 0
	}
	return w
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
