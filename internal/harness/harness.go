// Package harness executes conformance scenarios end to end: structure
// files are parsed with the production loaders, screened through the
// real batch pipeline, and the outcomes are checked against the
// scenario's expectations. The rendered CSV is stable and is compared
// against golden files in tests.
package harness

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"

	"github.com/latticelab/kscreen/internal/loader"
	"github.com/latticelab/kscreen/internal/policy"
	"github.com/latticelab/kscreen/internal/report"
	"github.com/latticelab/kscreen/internal/screen"
)

// energyToleranceMeV is the slack allowed when a scenario pins a
// phonon energy. Wide enough to survive FP noise, narrow enough to
// catch a model change.
const energyToleranceMeV = 0.05

// Result is the outcome of one scenario run.
type Result struct {
	Scenario string
	Policy   policy.Policy
	Outcomes []screen.Outcome

	// Failures lists every expectation that did not hold, one message
	// per violation. Empty means the scenario passed.
	Failures []string
}

// Passed reports whether every expectation held.
func (r *Result) Passed() bool { return len(r.Failures) == 0 }

// CSV renders the outcomes as the stable CSV contract, for golden
// comparison.
func (r *Result) CSV() ([]byte, error) {
	rows := make([]report.Row, 0, len(r.Outcomes))
	for _, o := range r.Outcomes {
		rows = append(rows, report.RowFromOutcome(o))
	}
	var buf bytes.Buffer
	if err := report.WriteCSV(&buf, rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Run executes a scenario: resolve the policy, load every structure
// file, screen the batch, and evaluate expectations. Load failures are
// carried as per-structure outcomes so scenarios can expect them.
func Run(scenario *Scenario) (*Result, error) {
	pol, err := scenario.ResolvePolicy()
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	items := make([]screen.Item, 0, len(scenario.Structures))
	for _, path := range scenario.Structures {
		item := screen.Item{Name: loader.Name(path)}
		if s, err := loader.Load(path); err != nil {
			item.Err = err
		} else {
			item.Structure = s
		}
		items = append(items, item)
	}

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	outcomes, err := screen.Batch(items, pol, screen.WithWorkers(4), screen.WithLogger(quiet))
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	result := &Result{
		Scenario: scenario.Name,
		Policy:   pol,
		Outcomes: outcomes,
	}
	for _, exp := range scenario.Expect {
		evaluate(result, exp)
	}
	return result, nil
}

func evaluate(result *Result, exp Expectation) {
	outcome, ok := findOutcome(result.Outcomes, exp.Name)
	if !ok {
		result.fail("%s: no outcome with this name", exp.Name)
		return
	}

	if exp.Error != "" {
		if outcome.Err == nil {
			result.fail("%s: expected error containing %q, got a verdict", exp.Name, exp.Error)
		} else if !strings.Contains(outcome.Err.Error(), exp.Error) {
			result.fail("%s: error %q does not contain %q", exp.Name, outcome.Err, exp.Error)
		}
		return
	}

	if outcome.Err != nil {
		result.fail("%s: unexpected error: %v", exp.Name, outcome.Err)
		return
	}
	r := outcome.Result

	if exp.K != nil && r.K != *exp.K {
		result.fail("%s: K = %d, want %d", exp.Name, r.K, *exp.K)
	}
	if exp.ParityPass != nil && r.ParityPass != *exp.ParityPass {
		result.fail("%s: parity_pass = %v, want %v", exp.Name, r.ParityPass, *exp.ParityPass)
	}
	if exp.EnergyPass != nil && r.EnergyPass != *exp.EnergyPass {
		result.fail("%s: energy_pass = %v, want %v", exp.Name, r.EnergyPass, *exp.EnergyPass)
	}
	if exp.OverallPass != nil && r.OverallPass != *exp.OverallPass {
		result.fail("%s: overall_pass = %v, want %v", exp.Name, r.OverallPass, *exp.OverallPass)
	}
	if exp.EnergyMeV != nil && math.Abs(r.PhononEnergyMeV-*exp.EnergyMeV) > energyToleranceMeV {
		result.fail("%s: phonon_energy_meV = %.4f, want %.4f ± %.2f",
			exp.Name, r.PhononEnergyMeV, *exp.EnergyMeV, energyToleranceMeV)
	}
}

func findOutcome(outcomes []screen.Outcome, name string) (screen.Outcome, bool) {
	for _, o := range outcomes {
		if o.Name == name {
			return o, true
		}
	}
	return screen.Outcome{}, false
}

func (r *Result) fail(format string, args ...any) {
	r.Failures = append(r.Failures, fmt.Sprintf(format, args...))
}
