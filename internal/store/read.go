package store

import (
	"context"
	"database/sql"
	"fmt"
)

// RunRecord describes one stored batch run.
type RunRecord struct {
	ID          string
	CreatedAt   string
	PolicyJSON  string
	ThresholdEV float64
}

// StoredResult is one persisted verdict row. When Error is non-empty
// the verdict fields are unset; when HasBond is false the structure
// had no bonds under the policy.
type StoredResult struct {
	Position     int
	Name         string
	Formula      string
	K            int
	ParityPass   bool
	EnergyEV     float64
	EnergyMeV    float64
	EnergyPass   bool
	EnergyReason string
	HasBond      bool
	BondDistance float64
	BondType     string
	OverallPass  bool
	Error        string
}

// ListRuns returns all stored runs, oldest first (UUIDv7 IDs sort by
// creation time).
func (s *Store) ListRuns(ctx context.Context) ([]RunRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, policy, threshold_ev
		FROM runs
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	runs := []RunRecord{}
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.PolicyJSON, &r.ThresholdEV); err != nil {
			return nil, fmt.Errorf("list runs: scan: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// ReadRun returns the run record and its results in batch input order.
func (s *Store) ReadRun(ctx context.Context, runID string) (RunRecord, []StoredResult, error) {
	var run RunRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, policy, threshold_ev FROM runs WHERE id = ?
	`, runID).Scan(&run.ID, &run.CreatedAt, &run.PolicyJSON, &run.ThresholdEV)
	if err == sql.ErrNoRows {
		return RunRecord{}, nil, fmt.Errorf("run %q not found", runID)
	}
	if err != nil {
		return RunRecord{}, nil, fmt.Errorf("read run: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT position, name, formula, k, parity_pass,
		       phonon_energy_ev, phonon_energy_mev, energy_pass, energy_reason,
		       shortest_bond_distance, shortest_bond_type, overall_pass, error
		FROM results
		WHERE run_id = ?
		ORDER BY position ASC
	`, runID)
	if err != nil {
		return RunRecord{}, nil, fmt.Errorf("read run results: %w", err)
	}
	defer rows.Close()

	results := []StoredResult{}
	for rows.Next() {
		var (
			r            StoredResult
			formula      sql.NullString
			k            sql.NullInt64
			parityPass   sql.NullInt64
			energyEV     sql.NullFloat64
			energyMeV    sql.NullFloat64
			energyPass   sql.NullInt64
			energyReason sql.NullString
			bondDistance sql.NullFloat64
			bondType     sql.NullString
			overallPass  sql.NullInt64
			errText      sql.NullString
		)
		if err := rows.Scan(&r.Position, &r.Name, &formula, &k, &parityPass,
			&energyEV, &energyMeV, &energyPass, &energyReason,
			&bondDistance, &bondType, &overallPass, &errText); err != nil {
			return RunRecord{}, nil, fmt.Errorf("read run results: scan: %w", err)
		}
		r.Formula = formula.String
		r.K = int(k.Int64)
		r.ParityPass = parityPass.Int64 == 1
		r.EnergyEV = energyEV.Float64
		r.EnergyMeV = energyMeV.Float64
		r.EnergyPass = energyPass.Int64 == 1
		r.EnergyReason = energyReason.String
		r.HasBond = bondType.Valid
		r.BondDistance = bondDistance.Float64
		r.BondType = bondType.String
		r.OverallPass = overallPass.Int64 == 1
		r.Error = errText.String
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return RunRecord{}, nil, fmt.Errorf("read run results: %w", err)
	}
	return run, results, nil
}
