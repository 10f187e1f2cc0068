package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studykit/pairwise/internal/judgment"
)

// RecordOptions holds flags for the record command.
type RecordOptions struct {
	*RootOptions
	ItemIndex int
	Verdicts  []int
	Comment   string
	Student   string
	Taken     string
	Grade     string
}

// NewRecordCommand creates the record command.
func NewRecordCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RecordOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "record <participant-id>",
		Short: "Append one judgment to the log",
		Long: `Record a completed judgment for the given item. Verdicts are given
in the presented frame (-2 favors slot A strongly, +2 favors slot B
strongly), one per criterion in order: usefulness, readability,
persuasiveness, actionability, hallucination, overall. The engine
normalizes them through the item's side flip before appending.

Example:
  pairwise record alice --item 3 --verdicts=-1,0,1,0,2,-2 --comment "B more concrete"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(opts.Verdicts) != len(judgment.Criteria) {
				return fmt.Errorf("expected %d verdicts (one per criterion), got %d",
					len(judgment.Criteria), len(opts.Verdicts))
			}

			rt, err := setup(rootOpts)
			if err != nil {
				return err
			}
			defer rt.Close()

			sess, err := rt.engine.NewSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if opts.Student != "" || opts.Taken != "" || opts.Grade != "" {
				sess.Profile = judgment.Profile{
					Student:     opts.Student,
					CourseTaken: opts.Taken,
					CourseGrade: opts.Grade,
				}
			}

			presented := make(map[judgment.Criterion]judgment.Verdict, len(judgment.Criteria))
			for i, c := range judgment.Criteria {
				presented[c] = judgment.Verdict(opts.Verdicts[i])
			}

			if err := rt.engine.Record(cmd.Context(), sess, opts.ItemIndex, presented, opts.Comment); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "recorded item %d for %s\n", opts.ItemIndex, sess.ParticipantID)
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.ItemIndex, "item", 0, "canonical item index")
	cmd.Flags().IntSliceVar(&opts.Verdicts, "verdicts", nil, "presented-frame verdicts, one per criterion")
	cmd.Flags().StringVar(&opts.Comment, "comment", "", "free-text comment")
	cmd.Flags().StringVar(&opts.Student, "profile-student", "", "survey profile: enrolled student (yes/no)")
	cmd.Flags().StringVar(&opts.Taken, "profile-course-taken", "", "survey profile: took the course (yes/no)")
	cmd.Flags().StringVar(&opts.Grade, "profile-course-grade", "", "survey profile: course grade")
	_ = cmd.MarkFlagRequired("verdicts")

	return cmd
}
