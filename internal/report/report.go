// Package report renders screening results for people and for
// machines. The CSV column set and the JSON field names are a stable
// contract consumed by dashboards and downstream tooling; changing
// them is a breaking change.
package report

import (
	"fmt"
	"io"

	"github.com/latticelab/kscreen/internal/policy"
	"github.com/latticelab/kscreen/internal/screen"
)

// WriteText renders the full per-structure report: parity section,
// graph statistics, shortest-bond section, and the combined verdict.
func WriteText(w io.Writer, name string, res *screen.ScreeningResult, pol policy.Policy) error {
	p := &printer{w: w}

	p.printf("SCREENING REPORT: %s\n", name)
	p.printf("  Formula: %s\n", res.Formula)
	p.printf("\n")

	p.printf("PARITY:\n")
	p.printf("  K = %d\n", res.K)
	p.printf("  parity_pass: %s\n", passFail(res.ParityPass))
	stats := res.Parity.Stats
	p.printf("  atoms: %d  bonds: %d\n", stats.Atoms, stats.Bonds)
	p.printf("  degree range: %d - %d  average: %.2f\n", stats.MinDegree, stats.MaxDegree, stats.AvgDegree)
	p.printf("  odd-degree atoms: %d  even-degree atoms: %d\n", stats.OddCount, stats.EvenCount)
	if len(res.Parity.OddAtoms) > 0 {
		p.printf("  odd atoms (first %d):", min(len(res.Parity.OddAtoms), 10))
		for i, idx := range res.Parity.OddAtoms {
			if i == 10 {
				p.printf(" ... and %d more", len(res.Parity.OddAtoms)-10)
				break
			}
			p.printf(" %d", idx)
		}
		p.printf("\n")
	}
	p.printf("\n")

	p.printf("BOND QUANTUM:\n")
	if res.ShortestBond == nil {
		p.printf("  no bonds found under the cutoff policy\n")
		p.printf("  energy_pass: FAIL (reason: %s)\n", res.EnergyReason)
	} else {
		b := res.ShortestBond
		p.printf("  shortest bond: %s at %.3f A\n", b.Type, b.Distance)
		p.printf("  reduced mass: %.2f u\n", b.ReducedMass)
		p.printf("  phonon energy: %.1f meV (threshold %.1f meV)\n",
			res.PhononEnergyMeV, pol.EnergyThresholdEV*1000)
		p.printf("  energy_pass: %s\n", passFail(res.EnergyPass))
		if len(res.CriticalBonds) > 0 {
			p.printf("  bonds above threshold (top %d):\n", min(len(res.CriticalBonds), 5))
			for i, cb := range res.CriticalBonds {
				if i == 5 {
					break
				}
				p.printf("    %s: %.3f A -> %.1f meV\n", cb.Type, cb.Distance, cb.EnergyMeV)
			}
		}
	}
	p.printf("\n")

	p.printf("VERDICT: overall_pass = %s\n", passFail(res.OverallPass))
	return p.err
}

// WriteBatchSummary renders one line per outcome, in batch order.
func WriteBatchSummary(w io.Writer, outcomes []screen.Outcome) error {
	p := &printer{w: w}
	passed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			p.printf("%-24s ERROR %v\n", o.Name, o.Err)
			continue
		}
		r := o.Result
		p.printf("%-24s K=%-4d parity=%-4s energy=%.1fmeV(%s)%s overall=%s\n",
			o.Name, r.K, passFail(r.ParityPass), r.PhononEnergyMeV,
			passFail(r.EnergyPass), reasonSuffix(r.EnergyReason), passFail(r.OverallPass))
		if r.OverallPass {
			passed++
		}
	}
	p.printf("%d/%d structures pass both conditions\n", passed, len(outcomes))
	return p.err
}

func passFail(b bool) string {
	if b {
		return "PASS"
	}
	return "FAIL"
}

func reasonSuffix(reason string) string {
	if reason == "" {
		return ""
	}
	return "[" + reason + "]"
}

// printer collects the first write error so report code stays linear.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
