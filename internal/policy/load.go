package policy

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var policySchema string

// policyDocument is the YAML wire form of a Policy. Absent fields fall
// back to Default values; pair keys are canonicalized after decode.
type policyDocument struct {
	PairCutoffs       map[string]float64 `yaml:"pair_cutoffs"`
	ToleranceFactor   *float64           `yaml:"tolerance_factor"`
	EnergyThresholdEV *float64           `yaml:"energy_threshold_eV"`
	MinBondDistance   *float64           `yaml:"min_bond_distance"`
	LightAtomMaxMass  *float64           `yaml:"light_atom_max_mass"`
}

// LoadFile reads, schema-checks, and decodes a policy YAML file.
func LoadFile(path string) (Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, &ConfigError{Message: fmt.Sprintf("read policy file %s", path), Err: err}
	}
	return Load(data)
}

// Load parses a policy document. The document is validated against
// the embedded CUE schema before decoding, so type and range
// violations surface as ConfigError with the schema's diagnostics
// rather than as half-decoded values.
func Load(data []byte) (Policy, error) {
	if err := validateSchema(data); err != nil {
		return Policy{}, err
	}

	var doc policyDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Policy{}, &ConfigError{Message: "decode policy document", Err: err}
	}

	p := Default()
	if doc.ToleranceFactor != nil {
		p.ToleranceFactor = *doc.ToleranceFactor
	}
	if doc.EnergyThresholdEV != nil {
		p.EnergyThresholdEV = *doc.EnergyThresholdEV
	}
	if doc.MinBondDistance != nil {
		p.MinBondDist = *doc.MinBondDistance
	}
	if doc.LightAtomMaxMass != nil {
		p.LightAtomMaxMass = *doc.LightAtomMaxMass
	}
	if len(doc.PairCutoffs) > 0 {
		p.PairCutoffs = make(map[string]float64, len(doc.PairCutoffs))
		for key, cutoff := range doc.PairCutoffs {
			canonical, err := canonicalPairKey(key)
			if err != nil {
				return Policy{}, err
			}
			if prev, dup := p.PairCutoffs[canonical]; dup && prev != cutoff {
				return Policy{}, configErrorf("pair_cutoffs",
					"conflicting cutoffs for %q (%v and %v)", canonical, prev, cutoff)
			}
			p.PairCutoffs[canonical] = cutoff
		}
	}

	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}

// validateSchema checks the raw YAML against the embedded CUE schema.
func validateSchema(data []byte) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(policySchema)
	if err := schema.Err(); err != nil {
		// The schema is embedded at build time; failure to compile it
		// is a programming defect, not user input.
		return fmt.Errorf("compile embedded policy schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Policy"))
	if err := def.Err(); err != nil {
		return fmt.Errorf("embedded policy schema has no #Policy: %w", err)
	}
	if err := cueyaml.Validate(data, def); err != nil {
		return &ConfigError{Message: "policy document violates schema", Err: err}
	}
	return nil
}
