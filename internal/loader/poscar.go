package loader

import (
	"math"
	"strconv"
	"strings"

	"github.com/latticelab/kscreen/internal/crystal"
)

// ParsePOSCAR decodes VASP POSCAR/CONTCAR content.
//
// Layout handled: comment line, scale factor (negative means target
// cell volume, per VASP convention), three lattice rows, VASP-5
// species symbol line, per-species counts, optional "Selective
// dynamics" line, then "Direct" or "Cartesian" coordinates. Trailing
// per-line tokens (selective-dynamics flags, site names) become the
// atom label.
func ParsePOSCAR(path string, data []byte) (crystal.Structure, error) {
	lines := splitLines(data)
	if len(lines) < 8 {
		return crystal.Structure{}, parseErrorf(path, 0, "file too short for POSCAR (%d lines)", len(lines))
	}

	scale, err := strconv.ParseFloat(strings.TrimSpace(lines[1]), 64)
	if err != nil {
		return crystal.Structure{}, parseErrorf(path, 2, "bad scale factor %q", strings.TrimSpace(lines[1]))
	}

	var lattice crystal.Lattice
	for i := 0; i < 3; i++ {
		row, err := parseFloats(lines[2+i], 3)
		if err != nil {
			return crystal.Structure{}, parseErrorf(path, 3+i, "bad lattice row: %v", err)
		}
		copy(lattice.Rows[i][:], row)
	}

	// negative scale is a target volume; positive scales the rows
	factor := scale
	if scale < 0 {
		vol := math.Abs(lattice.Determinant())
		if vol == 0 {
			return crystal.Structure{}, parseErrorf(path, 3, "degenerate lattice with volume-mode scale")
		}
		factor = math.Cbrt(-scale / vol)
	}
	for i := 0; i < 3; i++ {
		for k := 0; k < 3; k++ {
			lattice.Rows[i][k] *= factor
		}
	}

	symbols := strings.Fields(lines[5])
	if len(symbols) == 0 {
		return crystal.Structure{}, parseErrorf(path, 6, "missing species symbol line (VASP-4 files are not supported)")
	}
	if _, err := strconv.Atoi(symbols[0]); err == nil {
		return crystal.Structure{}, parseErrorf(path, 6, "line holds counts, not symbols (VASP-4 files are not supported)")
	}

	countFields := strings.Fields(lines[6])
	if len(countFields) != len(symbols) {
		return crystal.Structure{}, parseErrorf(path, 7, "%d species but %d counts", len(symbols), len(countFields))
	}
	counts := make([]int, len(countFields))
	total := 0
	for i, f := range countFields {
		c, err := strconv.Atoi(f)
		if err != nil || c < 1 {
			return crystal.Structure{}, parseErrorf(path, 7, "bad species count %q", f)
		}
		counts[i] = c
		total += c
	}

	cursor := 7
	if len(lines) > cursor && startsWithLetter(lines[cursor], 's') {
		cursor++ // Selective dynamics
	}
	if len(lines) <= cursor {
		return crystal.Structure{}, parseErrorf(path, cursor+1, "missing coordinate mode line")
	}
	cartesian := startsWithLetter(lines[cursor], 'c') || startsWithLetter(lines[cursor], 'k')
	if !cartesian && !startsWithLetter(lines[cursor], 'd') {
		return crystal.Structure{}, parseErrorf(path, cursor+1, "unknown coordinate mode %q", strings.TrimSpace(lines[cursor]))
	}
	cursor++

	if len(lines) < cursor+total {
		return crystal.Structure{}, parseErrorf(path, len(lines), "expected %d coordinate lines, found %d", total, len(lines)-cursor)
	}

	sites := make([]crystal.Site, 0, total)
	atom := 0
	for si, sym := range symbols {
		for c := 0; c < counts[si]; c++ {
			lineNo := cursor + atom
			fields := strings.Fields(lines[lineNo])
			if len(fields) < 3 {
				return crystal.Structure{}, parseErrorf(path, lineNo+1, "coordinate line has %d fields", len(fields))
			}
			var coord [3]float64
			for k := 0; k < 3; k++ {
				v, err := strconv.ParseFloat(fields[k], 64)
				if err != nil {
					return crystal.Structure{}, parseErrorf(path, lineNo+1, "bad coordinate %q", fields[k])
				}
				coord[k] = v
			}
			if cartesian {
				for k := 0; k < 3; k++ {
					coord[k] *= factor
				}
				coord = lattice.Fractional(coord)
			}
			label := ""
			if len(fields) > 3 {
				label = strings.Join(fields[3:], " ")
			}
			sites = append(sites, crystal.Site{Species: sym, Frac: coord, Label: label})
			atom++
		}
	}

	s, err := crystal.NewStructure(lattice, sites)
	if err != nil {
		return crystal.Structure{}, &ParseError{Path: path, Message: "invalid structure", Err: err}
	}
	return s, nil
}

func splitLines(data []byte) []string {
	raw := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	// trim trailing blank lines only; interior blanks are structural errors
	for len(raw) > 0 && strings.TrimSpace(raw[len(raw)-1]) == "" {
		raw = raw[:len(raw)-1]
	}
	return raw
}

func parseFloats(line string, want int) ([]float64, error) {
	fields := strings.Fields(line)
	if len(fields) < want {
		return nil, strconv.ErrSyntax
	}
	out := make([]float64, want)
	for i := 0; i < want; i++ {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func startsWithLetter(line string, letter byte) bool {
	t := strings.TrimSpace(line)
	if t == "" {
		return false
	}
	c := t[0] | 0x20 // ASCII lower-case
	return c == letter
}
