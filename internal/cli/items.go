package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewItemsCommand creates the items command.
func NewItemsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "List the canonical item list",
		Long: `Reconcile the two source datasets and print the canonical item list
in pre-shuffle order.

Example:
  pairwise items --config study.yaml
  pairwise items --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(rootOpts)
			if err != nil {
				return err
			}
			defer rt.Close()

			items := rt.engine.Items()
			return emit(cmd.OutOrStdout(), rootOpts.Format, items, func(w io.Writer) {
				for _, item := range items {
					fmt.Fprintf(w, "%3d  %-20s grade=%s/%s  %q\n",
						item.Index, item.SubjectID,
						item.BaselineGrade, item.StudentGrade,
						item.AdviceTitle)
				}
				fmt.Fprintf(w, "%d items\n", len(items))
			})
		},
	}
	return cmd
}
