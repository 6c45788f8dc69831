package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/latticelab/kscreen/internal/policy"
)

// NewPolicyCommand creates the policy command group.
func NewPolicyCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Inspect and validate screening policies",
	}
	cmd.AddCommand(newPolicyValidateCommand(rootOpts))
	cmd.AddCommand(newPolicyShowCommand(rootOpts))
	return cmd
}

func newPolicyValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <policy-file>",
		Short: "Validate a policy YAML against the schema",
		Long: `Check a policy document against the embedded schema and the policy
invariants (positive cutoffs, positive threshold, known species in
pair keys) without screening anything.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			pol, err := policy.LoadFile(args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid policy", err)
			}
			formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			if formatter.JSON() {
				return formatter.EmitJSON(map[string]any{"valid": true, "policy": pol})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: valid (threshold %.3f eV, tolerance %.2f, %d pair cutoffs)\n",
				args[0], pol.EnergyThresholdEV, pol.ToleranceFactor, len(pol.PairCutoffs))
			return nil
		},
	}
}

func newPolicyShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective policy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pol, err := loadPolicy(rootOpts)
			if err != nil {
				return err
			}
			formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			if formatter.JSON() {
				return formatter.EmitJSON(pol)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "energy_threshold_eV: %.3f\n", pol.EnergyThresholdEV)
			fmt.Fprintf(out, "tolerance_factor:    %.2f\n", pol.ToleranceFactor)
			fmt.Fprintf(out, "min_bond_distance:   %.2f\n", pol.MinBondDist)
			if pol.LightAtomMaxMass > 0 {
				fmt.Fprintf(out, "light_atom_max_mass: %.2f\n", pol.LightAtomMaxMass)
			}
			for _, key := range pol.PairKeys() {
				fmt.Fprintf(out, "pair_cutoffs.%s: %.3f\n", key, pol.PairCutoffs[key])
			}
			return nil
		},
	}
}
