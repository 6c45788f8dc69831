package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/latticelab/kscreen/internal/policy"
	"github.com/latticelab/kscreen/internal/screen"
)

// SaveRun records a completed batch: one runs row plus one results
// row per outcome, in input order, inside a single transaction.
// Returns the new run ID.
func (s *Store) SaveRun(ctx context.Context, pol policy.Policy, outcomes []screen.Outcome) (string, error) {
	policyJSON, err := json.Marshal(pol)
	if err != nil {
		return "", fmt.Errorf("save run: marshal policy: %w", err)
	}

	id := s.runID.Generate()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("save run: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, created_at, policy, threshold_ev)
		VALUES (?, ?, ?, ?)
	`, id, time.Now().UTC().Format(time.RFC3339), string(policyJSON), pol.EnergyThresholdEV)
	if err != nil {
		return "", fmt.Errorf("save run: insert run: %w", err)
	}

	for pos, outcome := range outcomes {
		if err := insertResult(ctx, tx, id, pos, outcome); err != nil {
			return "", fmt.Errorf("save run: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("save run: commit: %w", err)
	}
	return id, nil
}

func insertResult(ctx context.Context, tx *sql.Tx, runID string, pos int, o screen.Outcome) error {
	if o.Err != nil {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO results (run_id, position, name, error)
			VALUES (?, ?, ?, ?)
		`, runID, pos, o.Name, o.Err.Error())
		if err != nil {
			return fmt.Errorf("insert failed result %q: %w", o.Name, err)
		}
		return nil
	}

	r := o.Result
	var bondDistance sql.NullFloat64
	var bondType sql.NullString
	if r.ShortestBond != nil {
		bondDistance = sql.NullFloat64{Float64: r.ShortestBond.Distance, Valid: true}
		bondType = sql.NullString{String: r.ShortestBond.Type, Valid: true}
	}
	_, err := tx.ExecContext(ctx, `
		INSERT INTO results
		(run_id, position, name, formula, k, parity_pass,
		 phonon_energy_ev, phonon_energy_mev, energy_pass, energy_reason,
		 shortest_bond_distance, shortest_bond_type, overall_pass)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		runID, pos, o.Name, r.Formula, r.K, boolToInt(r.ParityPass),
		r.PhononEnergyEV, r.PhononEnergyMeV, boolToInt(r.EnergyPass), r.EnergyReason,
		bondDistance, bondType, boolToInt(r.OverallPass),
	)
	if err != nil {
		return fmt.Errorf("insert result %q: %w", o.Name, err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
