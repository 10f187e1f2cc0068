package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewAssignCommand creates the assign command.
func NewAssignCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assign <participant-id>",
		Short: "Show a participant's presentation order and side flips",
		Long: `Derive the deterministic presentation order and per-item side
assignment for a participant. The output is a pure function of the
participant id and the canonical item list: running the command twice
always prints the same plan.

Example:
  pairwise assign alice
  pairwise assign "worker 007" --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(rootOpts)
			if err != nil {
				return err
			}
			defer rt.Close()

			a, err := rt.engine.Assignment(args[0])
			if err != nil {
				return err
			}
			return emit(cmd.OutOrStdout(), rootOpts.Format, a, func(w io.Writer) {
				fmt.Fprintf(w, "participant: %s\n", a.ParticipantID)
				for pos, idx := range a.Order {
					fmt.Fprintf(w, "%3d  item %3d  slot A: %s\n", pos, idx, slotA(a.Flips[idx]))
				}
			})
		},
	}
	return cmd
}
