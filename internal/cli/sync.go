package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/arjunmalhotra/granola-sync/internal/domain/meeting/usecases"
	"github.com/arjunmalhotra/granola-sync/internal/ledger"
	"github.com/arjunmalhotra/granola-sync/internal/output"
)

func NewSyncCmd(deps *Dependencies) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Import new and changed meetings",
		Long:  "Read the Granola cache, write markdown notes for new or changed meetings, and update the sync ledger.\nUnchanged meetings are skipped; use --force to re-import everything.",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(os.Stdout)
			formatter.SyncStarted(force)

			if led, err := ledger.Load(deps.Config.LedgerPath); err == nil {
				if led.LastSync != nil {
					formatter.LastSync(*led.LastSync)
				} else {
					formatter.FirstSync()
				}
			}

			report, err := deps.App.Sync.Execute(&usecases.SyncOptions{Force: force})
			if err != nil {
				return err
			}

			for _, failure := range report.Failures {
				formatter.Warning(failure)
			}
			formatter.SyncReport(report)
			formatter.Success("Sync complete")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Reprocess all meetings regardless of change detection")

	return cmd
}
