package screen

// ScreeningResult is the verdict record for one structure. Created
// once by Screen and immutable afterwards; field names and units are
// a stable contract consumed by CSV reporting and dashboards.
type ScreeningResult struct {
	// Formula aggregates species counts, e.g. "H Li2 N".
	Formula string `json:"formula"`

	// K is the parity invariant: the count of odd-degree atoms.
	// Non-negative and even.
	K int `json:"K"`

	// ParityPass is true when K == 0.
	ParityPass bool `json:"parity_pass"`

	// Parity carries the degree statistics behind K.
	Parity ParityReport `json:"parity"`

	// ShortestBond is the representative bond, nil when the structure
	// has no bonds under the policy.
	ShortestBond *BondRecord `json:"shortest_bond,omitempty"`

	// PhononEnergyEV and PhononEnergyMeV are the representative bond
	// quantum ħω*/π. Zero when no bonds exist (see EnergyReason).
	PhononEnergyEV  float64 `json:"phonon_energy_eV"`
	PhononEnergyMeV float64 `json:"phonon_energy_meV"`

	// EnergyPass is true when the estimate meets the configured
	// threshold. Always false when no bonds exist.
	EnergyPass bool `json:"energy_pass"`

	// EnergyReason explains a failing energy verdict that did not come
	// from the threshold comparison; "no_bonds_found" is the only
	// value today.
	EnergyReason string `json:"energy_reason,omitempty"`

	// CriticalBonds lists bonds whose individual estimate meets the
	// threshold, shortest first.
	CriticalBonds []BondRecord `json:"critical_bonds,omitempty"`

	// OverallPass is ParityPass AND EnergyPass.
	OverallPass bool `json:"overall_pass"`
}
