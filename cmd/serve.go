package cmd

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/stanfield-dev/store.locator/cmd/state"
	"github.com/stanfield-dev/store.locator/errext"
	"github.com/stanfield-dev/store.locator/errext/exitcodes"
	"github.com/stanfield-dev/store.locator/web"
)

type cmdServe struct {
	globalState *state.GlobalState
}

func getCmdServe(gs *state.GlobalState) *cobra.Command {
	c := &cmdServe{globalState: gs}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the generated store locator site",
		Long:  "Serve the generated store locator site over HTTP until interrupted.",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}

	serveCmd.Flags().StringP("dir", "d", defaultOutDir, "`directory` containing the generated site")

	return serveCmd
}

func (c *cmdServe) run(cmd *cobra.Command, _ []string) error {
	gs := c.globalState

	dir := defaultOutDir
	if d := getNullString(cmd.Flags(), "dir"); d.Valid {
		dir = d.String
	}

	if ok, err := afero.DirExists(gs.FS, dir); err != nil || !ok {
		return errext.WithExitCodeIfNone(
			errext.WithHint(
				fmt.Errorf("the site directory %q does not exist", dir),
				"run 'store.locator build' first",
			), exitcodes.InvalidConfig)
	}

	ctx, cancel := context.WithCancel(gs.Ctx)
	defer cancel()

	sigC := make(chan os.Signal, 2)
	gs.SignalNotify(sigC, os.Interrupt, syscall.SIGTERM)
	defer gs.SignalStop(sigC)
	go func() {
		sig := <-sigC
		gs.Logger.WithField("sig", sig).Debug("stopping on signal")
		cancel()
	}()

	gs.Logger.WithField("addr", gs.Options.Address).Infof("serving %s on http://%s/", dir, gs.Options.Address)
	srv := web.GetServer(gs.Options.Address, gs.FS, dir, gs.Logger)
	if err := web.Run(ctx, srv, gs.Logger); err != nil {
		return errext.WithExitCodeIfNone(
			fmt.Errorf("error serving the site: %w", err), exitcodes.CannotStartServer)
	}
	return nil
}
