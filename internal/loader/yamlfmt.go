package loader

import (
	"gopkg.in/yaml.v3"

	"github.com/latticelab/kscreen/internal/crystal"
)

// structureDocument is the native YAML structure format:
//
//	name: Li2NH-P4nmm
//	lattice:
//	  - [3.70, 0.00, 0.00]
//	  - [0.00, 3.70, 0.00]
//	  - [0.00, 0.00, 5.10]
//	atoms:
//	  - {species: Li, frac: [0.0, 0.0, 0.0], label: Li1}
//	  - {species: N, frac: [0.5, 0.5, 0.5]}
type structureDocument struct {
	Name    string        `yaml:"name"`
	Lattice [][]float64   `yaml:"lattice"`
	Atoms   []atomElement `yaml:"atoms"`
}

type atomElement struct {
	Species string    `yaml:"species"`
	Frac    []float64 `yaml:"frac"`
	Label   string    `yaml:"label"`
}

// ParseYAML decodes the native YAML structure format.
func ParseYAML(path string, data []byte) (crystal.Structure, error) {
	var doc structureDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return crystal.Structure{}, &ParseError{Path: path, Message: "invalid YAML", Err: err}
	}

	if len(doc.Lattice) != 3 {
		return crystal.Structure{}, parseErrorf(path, 0, "lattice needs 3 rows, got %d", len(doc.Lattice))
	}
	var lattice crystal.Lattice
	for i, row := range doc.Lattice {
		if len(row) != 3 {
			return crystal.Structure{}, parseErrorf(path, 0, "lattice row %d needs 3 components, got %d", i, len(row))
		}
		copy(lattice.Rows[i][:], row)
	}

	if len(doc.Atoms) == 0 {
		return crystal.Structure{}, parseErrorf(path, 0, "no atoms")
	}
	sites := make([]crystal.Site, len(doc.Atoms))
	for i, a := range doc.Atoms {
		if len(a.Frac) != 3 {
			return crystal.Structure{}, parseErrorf(path, 0, "atom %d: frac needs 3 components, got %d", i, len(a.Frac))
		}
		sites[i] = crystal.Site{
			Species: a.Species,
			Frac:    [3]float64{a.Frac[0], a.Frac[1], a.Frac[2]},
			Label:   a.Label,
		}
	}

	s, err := crystal.NewStructure(lattice, sites)
	if err != nil {
		return crystal.Structure{}, &ParseError{Path: path, Message: "invalid structure", Err: err}
	}
	return s, nil
}
