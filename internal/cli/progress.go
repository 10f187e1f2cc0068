package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"
)

// NewProgressCommand creates the progress command.
func NewProgressCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress <participant-id>",
		Short: "Show a participant's completion state",
		Long: `Scan the judgment log and report which canonical items the
participant has already judged, plus the restored survey profile.

Example:
  pairwise progress alice`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(rootOpts)
			if err != nil {
				return err
			}
			defer rt.Close()

			p := rt.engine.Progress(cmd.Context(), args[0])
			completed := make([]int, 0, len(p.Completed))
			for idx := range p.Completed {
				completed = append(completed, idx)
			}
			sort.Ints(completed)

			payload := struct {
				ParticipantID string `json:"participant_id"`
				Completed     []int  `json:"completed"`
				Total         int    `json:"total"`
				Skipped       int    `json:"skipped_rows,omitempty"`
			}{args[0], completed, len(rt.engine.Items()), p.Skipped}

			return emit(cmd.OutOrStdout(), rootOpts.Format, payload, func(w io.Writer) {
				fmt.Fprintf(w, "answered %d of %d items: %v\n", len(completed), payload.Total, completed)
				if p.Skipped > 0 {
					fmt.Fprintf(w, "skipped %d malformed log rows\n", p.Skipped)
				}
				if !p.Profile.Empty() {
					fmt.Fprintf(w, "profile: student=%s course_taken=%s course_grade=%s\n",
						p.Profile.Student, p.Profile.CourseTaken, p.Profile.CourseGrade)
				}
			})
		},
	}
	return cmd
}
