package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/arjunmalhotra/granola-sync/internal/domain/meeting/usecases"
	"github.com/arjunmalhotra/granola-sync/internal/output"
	"github.com/arjunmalhotra/granola-sync/internal/render"
)

func NewListCmd(deps *Dependencies) *cobra.Command {
	var days int
	var notesOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List meetings in the Granola cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(os.Stdout)

			items, err := deps.App.List.Execute(&usecases.ListOptions{
				Days:      days,
				NotesOnly: notesOnly,
			})
			if err != nil {
				return err
			}

			if len(items) == 0 {
				formatter.Info("No meetings found")
				return nil
			}

			formatter.MeetingListHeader(len(items))
			for _, item := range items {
				formatter.MeetingListItem(item, render.FormatDate(item.CreatedAt))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "Only meetings from the last N days (0 = all)")
	cmd.Flags().BoolVar(&notesOnly, "notes-only", false, "Only meetings that have notes")

	return cmd
}
