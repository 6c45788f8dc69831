package cli

import (
	"github.com/spf13/cobra"

	"github.com/latticelab/kscreen/internal/loader"
	"github.com/latticelab/kscreen/internal/report"
	"github.com/latticelab/kscreen/internal/screen"
)

// NewScreenCommand creates the single-structure screen command.
func NewScreenCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "screen <structure-file>",
		Short: "Screen one structure",
		Long: `Analyze one structure file (POSCAR/CONTCAR or native YAML) and print
the screening report.

The verdict is data: a structure that fails the parity or energy
condition still exits 0. A parse or geometry failure exits 2.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScreen(rootOpts, args[0], cmd)
		},
	}
}

func runScreen(opts *RootOptions, path string, cmd *cobra.Command) error {
	pol, err := loadPolicy(opts)
	if err != nil {
		return err
	}

	structure, err := loader.Load(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "load structure", err)
	}

	result, err := screen.Screen(structure, pol)
	if err != nil {
		if screen.IsInvariantError(err) {
			return WrapExitError(ExitDefect, "analyzer defect", err)
		}
		return WrapExitError(ExitCommandError, "screen structure", err)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if formatter.JSON() {
		return formatter.EmitJSON(result)
	}
	return report.WriteText(cmd.OutOrStdout(), loader.Name(path), result, pol)
}
