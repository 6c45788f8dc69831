// Package cli implements the kscreen command tree.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/latticelab/kscreen/internal/policy"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "text" | "json"
	PolicyFile string
}

// ValidFormats lists the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the kscreen root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "kscreen",
		Short: "Screen crystal structures for the parity/bond-quantum rule",
		Long: `kscreen converts periodic structures into bonding graphs, computes
the parity invariant K and a bond quantum energy estimate, and combines
both into a per-structure screening verdict.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			level := slog.LevelInfo
			if opts.Verbose {
				level = slog.LevelDebug
			}
			handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
			slog.SetDefault(slog.New(handler))
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json)")
	cmd.PersistentFlags().StringVar(&opts.PolicyFile, "policy", "", "path to policy YAML (default: built-in policy)")

	cmd.AddCommand(NewScreenCommand(opts))
	cmd.AddCommand(NewBatchCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewPolicyCommand(opts))

	return cmd
}

// loadPolicy resolves the effective policy: the --policy file when
// given, otherwise defaults. Configuration errors abort before any
// structure is touched.
func loadPolicy(opts *RootOptions) (policy.Policy, error) {
	if opts.PolicyFile == "" {
		return policy.Default(), nil
	}
	pol, err := policy.LoadFile(opts.PolicyFile)
	if err != nil {
		return policy.Policy{}, WrapExitError(ExitCommandError, "load policy", err)
	}
	return pol, nil
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
