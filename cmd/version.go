package cmd

import (
	"github.com/spf13/cobra"

	"github.com/stanfield-dev/store.locator/cmd/state"
	"github.com/stanfield-dev/store.locator/lib/consts"
)

func getCmdVersion(gs *state.GlobalState) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show application version",
		Long:  "Show the application version and exit.",
		Run: func(_ *cobra.Command, _ []string) {
			printToStdout(gs, gs.BinaryName+" v"+consts.FullVersion()+"\n")
		},
	}
}
