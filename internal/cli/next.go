package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewNextCommand creates the next command.
func NewNextCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "next <participant-id>",
		Short: "Resolve the participant's next unanswered item",
		Long: `Walk the participant's presentation order and print the first item
without a recorded judgment, or report completion.

Example:
  pairwise next alice`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(rootOpts)
			if err != nil {
				return err
			}
			defer rt.Close()

			sess, err := rt.engine.NewSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			idx, done, err := rt.engine.NextItem(cmd.Context(), sess)
			if err != nil {
				return err
			}

			payload := struct {
				ParticipantID string `json:"participant_id"`
				Done          bool   `json:"done"`
				ItemIndex     *int   `json:"item_index,omitempty"`
			}{ParticipantID: sess.ParticipantID, Done: done}
			if !done {
				payload.ItemIndex = &idx
			}

			return emit(cmd.OutOrStdout(), rootOpts.Format, payload, func(w io.Writer) {
				if done {
					fmt.Fprintln(w, "all items answered")
					return
				}
				item, _ := rt.engine.Item(idx)
				fmt.Fprintf(w, "next: item %d (subject %s)\n", idx, item.SubjectID)
			})
		},
	}
	return cmd
}
