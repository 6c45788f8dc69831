package cli

import (
	"context"
	"log/slog"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/latticelab/kscreen/internal/loader"
	"github.com/latticelab/kscreen/internal/report"
	"github.com/latticelab/kscreen/internal/screen"
	"github.com/latticelab/kscreen/internal/store"
)

// BatchOptions holds flags for the batch command.
type BatchOptions struct {
	*RootOptions
	Workers  int
	Database string
	CSVPath  string
}

// NewBatchCommand creates the batch command.
func NewBatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "batch <structure-file-or-dir>...",
		Short: "Screen many structures in parallel",
		Long: `Screen every given structure file (directories are expanded to the
structure files they contain). Output preserves input order regardless
of worker count; a failure on one structure never aborts the batch.

With --db the run is persisted for later export; with --csv the
verdicts are written as CSV.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(opts, args, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "parallel workers (0 = all CPUs)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "persist the run to this SQLite database")
	cmd.Flags().StringVar(&opts.CSVPath, "csv", "", "write verdicts as CSV to this path")

	return cmd
}

func runBatch(opts *BatchOptions, args []string, cmd *cobra.Command) error {
	pol, err := loadPolicy(opts.RootOptions)
	if err != nil {
		return err
	}

	paths, err := collectStructurePaths(args)
	if err != nil {
		return WrapExitError(ExitCommandError, "collect inputs", err)
	}
	if len(paths) == 0 {
		return WrapExitError(ExitCommandError, "no structure files found", nil)
	}

	items := make([]screen.Item, len(paths))
	for i, path := range paths {
		structure, loadErr := loader.Load(path)
		items[i] = screen.Item{Name: loader.Name(path), Structure: structure, Err: loadErr}
	}

	slog.Info("screening batch", "structures", len(items), "workers", opts.Workers)
	outcomes, err := screen.Batch(items, pol, screen.WithWorkers(opts.Workers))
	if err != nil {
		return WrapExitError(ExitCommandError, "run batch", err)
	}

	if opts.Database != "" {
		st, err := store.Open(opts.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "open database", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				slog.Error("close database", "error", closeErr)
			}
		}()
		runID, err := st.SaveRun(context.Background(), pol, outcomes)
		if err != nil {
			return WrapExitError(ExitCommandError, "persist run", err)
		}
		slog.Info("run persisted", "run_id", runID, "db", opts.Database)
	}

	if opts.CSVPath != "" {
		if err := writeCSVFile(opts.CSVPath, outcomes); err != nil {
			return WrapExitError(ExitCommandError, "write csv", err)
		}
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if formatter.JSON() {
		return formatter.EmitJSON(batchJSON(outcomes))
	}
	return report.WriteBatchSummary(cmd.OutOrStdout(), outcomes)
}

// collectStructurePaths expands directories into the structure files
// they contain and returns a stable, sorted path list per argument.
func collectStructurePaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		var found []string
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			path := arg + string(os.PathSeparator) + e.Name()
			if loader.Recognized(path) {
				found = append(found, path)
			}
		}
		sort.Strings(found)
		paths = append(paths, found...)
	}
	return paths, nil
}

func writeCSVFile(path string, outcomes []screen.Outcome) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	rows := make([]report.Row, len(outcomes))
	for i, o := range outcomes {
		rows[i] = report.RowFromOutcome(o)
	}
	if err := report.WriteCSV(f, rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

type batchEntryJSON struct {
	Name   string                  `json:"name"`
	Result *screen.ScreeningResult `json:"result,omitempty"`
	Error  string                  `json:"error,omitempty"`
}

func batchJSON(outcomes []screen.Outcome) []batchEntryJSON {
	entries := make([]batchEntryJSON, len(outcomes))
	for i, o := range outcomes {
		entries[i] = batchEntryJSON{Name: o.Name, Result: o.Result}
		if o.Err != nil {
			entries[i].Error = o.Err.Error()
		}
	}
	return entries
}
