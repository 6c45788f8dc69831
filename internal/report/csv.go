package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/latticelab/kscreen/internal/screen"
)

func formatFloat(f float64, prec int) string {
	return strconv.FormatFloat(f, 'f', prec, 64)
}

// CSVHeader is the stable column set. Order and names are load-bearing
// for downstream tooling.
var CSVHeader = []string{
	"name",
	"formula",
	"K",
	"parity_pass",
	"phonon_energy_eV",
	"phonon_energy_meV",
	"energy_pass",
	"shortest_bond_distance",
	"shortest_bond_type",
	"overall_pass",
	"error",
}

// Row is one CSV record, already stringified. Build rows with
// RowFromOutcome or from stored results.
type Row struct {
	Name         string
	Formula      string
	K            int
	ParityPass   bool
	EnergyEV     float64
	EnergyMeV    float64
	EnergyPass   bool
	HasBond      bool
	BondDistance float64
	BondType     string
	OverallPass  bool
	Error        string
}

// RowFromOutcome flattens a batch outcome into a CSV row.
func RowFromOutcome(o screen.Outcome) Row {
	if o.Err != nil {
		return Row{Name: o.Name, Error: o.Err.Error()}
	}
	r := o.Result
	row := Row{
		Name:        o.Name,
		Formula:     r.Formula,
		K:           r.K,
		ParityPass:  r.ParityPass,
		EnergyEV:    r.PhononEnergyEV,
		EnergyMeV:   r.PhononEnergyMeV,
		EnergyPass:  r.EnergyPass,
		OverallPass: r.OverallPass,
	}
	if r.ShortestBond != nil {
		row.HasBond = true
		row.BondDistance = r.ShortestBond.Distance
		row.BondType = r.ShortestBond.Type
	}
	return row
}

// WriteCSV emits the header plus one record per row.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(row.record()); err != nil {
			return fmt.Errorf("write csv row %q: %w", row.Name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func (r Row) record() []string {
	if r.Error != "" {
		return []string{r.Name, "", "", "", "", "", "", "", "", "", r.Error}
	}
	bondDistance, bondType := "", ""
	if r.HasBond {
		bondDistance = formatFloat(r.BondDistance, 4)
		bondType = r.BondType
	}
	return []string{
		r.Name,
		r.Formula,
		strconv.Itoa(r.K),
		strconv.FormatBool(r.ParityPass),
		formatFloat(r.EnergyEV, 4),
		formatFloat(r.EnergyMeV, 1),
		strconv.FormatBool(r.EnergyPass),
		bondDistance,
		bondType,
		strconv.FormatBool(r.OverallPass),
		r.Error,
	}
}
