package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/latticelab/kscreen/internal/report"
	"github.com/latticelab/kscreen/internal/store"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Database string
	RunID    string
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a stored run as CSV",
		Long: `Re-emit a persisted batch run as CSV on stdout. Without --run the
latest run is exported.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "run ID to export (default: latest)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runExport(opts *ExportOptions, cmd *cobra.Command) error {
	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("close database", "error", closeErr)
		}
	}()

	ctx := context.Background()
	runID := opts.RunID
	if runID == "" {
		runs, err := st.ListRuns(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "list runs", err)
		}
		if len(runs) == 0 {
			return WrapExitError(ExitCommandError, "database holds no runs", nil)
		}
		runID = runs[len(runs)-1].ID
	}

	run, results, err := st.ReadRun(ctx, runID)
	if err != nil {
		return WrapExitError(ExitCommandError, "read run", err)
	}
	slog.Debug("exporting run", "run_id", run.ID, "created_at", run.CreatedAt, "results", len(results))

	rows := make([]report.Row, len(results))
	for i, r := range results {
		rows[i] = report.Row{
			Name:         r.Name,
			Formula:      r.Formula,
			K:            r.K,
			ParityPass:   r.ParityPass,
			EnergyEV:     r.EnergyEV,
			EnergyMeV:    r.EnergyMeV,
			EnergyPass:   r.EnergyPass,
			HasBond:      r.HasBond,
			BondDistance: r.BondDistance,
			BondType:     r.BondType,
			OverallPass:  r.OverallPass,
			Error:        r.Error,
		}
	}
	return report.WriteCSV(cmd.OutOrStdout(), rows)
}
