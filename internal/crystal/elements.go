package crystal

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Element carries the per-species constants the pipeline needs:
// standard atomic mass (u) and single-bond covalent radius (Å).
//
// Masses follow the CIAAW standard atomic weights; radii follow
// Cordero et al. 2008 single-bond values. Both are fixed published
// tables, not tunable parameters.
type Element struct {
	Symbol         string
	AtomicMass     float64
	CovalentRadius float64
}

// elementTable covers periods 1-6 of the main and transition blocks.
// Keyed by canonical (NFC, Title-case) symbol.
var elementTable = map[string]Element{
	"H":  {"H", 1.008, 0.31},
	"He": {"He", 4.0026, 0.28},
	"Li": {"Li", 6.94, 1.28},
	"Be": {"Be", 9.0122, 0.96},
	"B":  {"B", 10.81, 0.84},
	"C":  {"C", 12.011, 0.76},
	"N":  {"N", 14.007, 0.71},
	"O":  {"O", 15.999, 0.66},
	"F":  {"F", 18.998, 0.57},
	"Ne": {"Ne", 20.180, 0.58},
	"Na": {"Na", 22.990, 1.66},
	"Mg": {"Mg", 24.305, 1.41},
	"Al": {"Al", 26.982, 1.21},
	"Si": {"Si", 28.085, 1.11},
	"P":  {"P", 30.974, 1.07},
	"S":  {"S", 32.06, 1.05},
	"Cl": {"Cl", 35.45, 1.02},
	"Ar": {"Ar", 39.948, 1.06},
	"K":  {"K", 39.098, 2.03},
	"Ca": {"Ca", 40.078, 1.76},
	"Sc": {"Sc", 44.956, 1.70},
	"Ti": {"Ti", 47.867, 1.60},
	"V":  {"V", 50.942, 1.53},
	"Cr": {"Cr", 51.996, 1.39},
	"Mn": {"Mn", 54.938, 1.39},
	"Fe": {"Fe", 55.845, 1.32},
	"Co": {"Co", 58.933, 1.26},
	"Ni": {"Ni", 58.693, 1.24},
	"Cu": {"Cu", 63.546, 1.32},
	"Zn": {"Zn", 65.38, 1.22},
	"Ga": {"Ga", 69.723, 1.22},
	"Ge": {"Ge", 72.630, 1.20},
	"As": {"As", 74.922, 1.19},
	"Se": {"Se", 78.971, 1.20},
	"Br": {"Br", 79.904, 1.20},
	"Kr": {"Kr", 83.798, 1.16},
	"Rb": {"Rb", 85.468, 2.20},
	"Sr": {"Sr", 87.62, 1.95},
	"Y":  {"Y", 88.906, 1.90},
	"Zr": {"Zr", 91.224, 1.75},
	"Nb": {"Nb", 92.906, 1.64},
	"Mo": {"Mo", 95.95, 1.54},
	"Tc": {"Tc", 98.0, 1.47},
	"Ru": {"Ru", 101.07, 1.46},
	"Rh": {"Rh", 102.906, 1.42},
	"Pd": {"Pd", 106.42, 1.39},
	"Ag": {"Ag", 107.868, 1.45},
	"Cd": {"Cd", 112.414, 1.44},
	"In": {"In", 114.818, 1.42},
	"Sn": {"Sn", 118.710, 1.39},
	"Sb": {"Sb", 121.760, 1.39},
	"Te": {"Te", 127.60, 1.38},
	"I":  {"I", 126.904, 1.39},
	"Xe": {"Xe", 131.293, 1.40},
	"Cs": {"Cs", 132.905, 2.44},
	"Ba": {"Ba", 137.327, 2.15},
	"La": {"La", 138.905, 2.07},
	"Hf": {"Hf", 178.49, 1.75},
	"Ta": {"Ta", 180.948, 1.70},
	"W":  {"W", 183.84, 1.62},
	"Re": {"Re", 186.207, 1.51},
	"Os": {"Os", 190.23, 1.44},
	"Ir": {"Ir", 192.217, 1.41},
	"Pt": {"Pt", 195.084, 1.36},
	"Au": {"Au", 196.967, 1.36},
	"Hg": {"Hg", 200.592, 1.32},
	"Tl": {"Tl", 204.38, 1.45},
	"Pb": {"Pb", 207.2, 1.46},
	"Bi": {"Bi", 208.980, 1.48},
}

// NormalizeSymbol canonicalizes a species symbol read from a user
// file: NFC normalization, surrounding whitespace stripped, first
// letter upper-cased and the rest lower-cased ("LI" and "li" both
// resolve to "Li").
func NormalizeSymbol(symbol string) string {
	s := strings.TrimSpace(norm.NFC.String(symbol))
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// NormalizeLabel canonicalizes a free-form site label to NFC. Labels
// are carried verbatim otherwise.
func NormalizeLabel(label string) string {
	return norm.NFC.String(label)
}

// LookupElement resolves a species symbol against the element table.
// The symbol is normalized first, so any casing accepted by
// NormalizeSymbol resolves.
func LookupElement(symbol string) (Element, error) {
	el, ok := elementTable[NormalizeSymbol(symbol)]
	if !ok {
		return Element{}, fmt.Errorf("unknown species symbol %q", symbol)
	}
	return el, nil
}

// KnownSymbols returns every symbol in the element table, sorted.
// Used by policy validation to reject cutoff entries for species the
// pipeline cannot mass-resolve.
func KnownSymbols() []string {
	syms := make([]string, 0, len(elementTable))
	for s := range elementTable {
		syms = append(syms, s)
	}
	sort.Strings(syms)
	return syms
}
