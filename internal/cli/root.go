package cli

import (
	"github.com/spf13/cobra"

	"github.com/arjunmalhotra/granola-sync/config"
	"github.com/arjunmalhotra/granola-sync/internal/app"
	"github.com/arjunmalhotra/granola-sync/internal/version"
)

type Dependencies struct {
	App    *app.App
	Config *config.Config
}

func NewRootCmd(deps *Dependencies) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "granola-sync",
		Short: "Sync Granola meetings into a markdown knowledge base",
		Long:  "A CLI tool that incrementally imports meetings from the Granola desktop app's local cache into a folder tree of markdown notes, with cross-reference stubs and transcript files.",
	}

	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(version.Full() + "\n")

	rootCmd.AddCommand(NewSyncCmd(deps))
	rootCmd.AddCommand(NewListCmd(deps))
	rootCmd.AddCommand(NewDoctorCmd(deps))

	return rootCmd
}
