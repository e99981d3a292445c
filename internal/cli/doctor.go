package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/arjunmalhotra/granola-sync/internal/ledger"
	"github.com/arjunmalhotra/granola-sync/internal/output"
)

func NewDoctorCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check prerequisites",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := output.NewFormatter(os.Stdout)
			ok := true

			if _, err := os.Stat(deps.Config.CachePath); err != nil {
				f.SetupCheck("Granola cache", false, "not found at "+deps.Config.CachePath+" (is Granola installed?)")
				ok = false
			} else {
				f.SetupCheck("Granola cache", true, deps.Config.CachePath)
			}

			if err := os.MkdirAll(deps.Config.VaultDir, 0o755); err != nil {
				f.SetupCheck("Vault directory", false, err.Error())
				ok = false
			} else {
				f.SetupCheck("Vault directory", true, deps.Config.VaultDir)
			}

			if _, err := ledger.Load(deps.Config.LedgerPath); err != nil {
				f.SetupCheck("Sync ledger", false, err.Error())
				ok = false
			} else {
				f.SetupCheck("Sync ledger", true, deps.Config.LedgerPath)
			}

			if ok {
				f.Success("\nAll prerequisites met. Ready to sync!")
			} else {
				f.Warning("\nSome prerequisites are missing.")
			}
			return nil
		},
	}
}
