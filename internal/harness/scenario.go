package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/latticelab/kscreen/internal/policy"
)

// Scenario defines a conformance scenario: a set of structure files
// screened under one policy, with per-structure verdict expectations.
// Scenarios keep the pipeline's observable behavior pinned across
// refactors; the rendered CSV doubles as a golden trace.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Policy is an optional inline policy document, in the same format
	// as a policy file. Empty means the default policy.
	Policy yaml.Node `yaml:"policy,omitempty"`

	// Structures lists structure file paths, relative to the scenario
	// file location.
	Structures []string `yaml:"structures"`

	// Expect lists per-structure verdict expectations. Subset match:
	// only the fields a clause sets are checked.
	Expect []Expectation `yaml:"expect"`
}

// Expectation pins the verdict for one named structure. Pointer fields
// distinguish "unset" from a deliberate false/zero.
type Expectation struct {
	// Name is the structure name as derived from its file name.
	Name string `yaml:"name"`

	K           *int     `yaml:"K,omitempty"`
	ParityPass  *bool    `yaml:"parity_pass,omitempty"`
	EnergyPass  *bool    `yaml:"energy_pass,omitempty"`
	OverallPass *bool    `yaml:"overall_pass,omitempty"`
	EnergyMeV   *float64 `yaml:"phonon_energy_meV,omitempty"`

	// Error, when set, expects the structure to fail with an error
	// containing this substring.
	Error string `yaml:"error,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file. Structure paths
// are resolved relative to the scenario file. Unknown fields are
// rejected so typos fail loudly instead of silently skipping checks.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("parse scenario YAML: %w", err)
	}

	base := filepath.Dir(path)
	for i, sp := range scenario.Structures {
		if !filepath.IsAbs(sp) {
			scenario.Structures[i] = filepath.Join(base, sp)
		}
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// ResolvePolicy decodes the scenario's inline policy document, or
// returns the default policy when none is given.
func (s *Scenario) ResolvePolicy() (policy.Policy, error) {
	if s.Policy.IsZero() {
		return policy.Default(), nil
	}
	data, err := yaml.Marshal(&s.Policy)
	if err != nil {
		return policy.Policy{}, fmt.Errorf("re-encode inline policy: %w", err)
	}
	return policy.Load(data)
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Structures) == 0 {
		return fmt.Errorf("structures list is required and must be non-empty")
	}
	if len(s.Expect) == 0 {
		return fmt.Errorf("expect list is required and must be non-empty")
	}

	for _, sp := range s.Structures {
		if _, err := os.Stat(sp); os.IsNotExist(err) {
			return fmt.Errorf("structure file not found: %s", sp)
		}
	}

	for i, exp := range s.Expect {
		if exp.Name == "" {
			return fmt.Errorf("expect[%d]: name is required", i)
		}
		if exp.Error != "" &&
			(exp.K != nil || exp.ParityPass != nil || exp.EnergyPass != nil ||
				exp.OverallPass != nil || exp.EnergyMeV != nil) {
			return fmt.Errorf("expect[%d]: error expectation excludes verdict fields", i)
		}
	}
	return nil
}
