package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/guregu/null.v3"

	"github.com/stanfield-dev/store.locator/cmd/state"
	"github.com/stanfield-dev/store.locator/errext"
	"github.com/stanfield-dev/store.locator/errext/exitcodes"
	"github.com/stanfield-dev/store.locator/mapsapi"
	"github.com/stanfield-dev/store.locator/ui"
)

// Address used to validate a freshly entered API key with a single cheap
// geocode call.
const keyCheckAddress = "1600 Amphitheatre Parkway, Mountain View, CA"

type cmdLogin struct {
	globalState *state.GlobalState
}

func getCmdLogin(gs *state.GlobalState) *cobra.Command {
	c := &cmdLogin{globalState: gs}

	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Store the Google Maps API key",
		Long: `Store the Google Maps API key in the persistent configuration.

Once stored, 'store.locator build' picks the key up automatically, so it
doesn't have to be passed on every invocation.`,
		Args: cobra.NoArgs,
		RunE: c.run,
	}

	loginCmd.Flags().StringP("token", "t", "", "specify the API `key` to store")
	loginCmd.Flags().BoolP("show", "s", false, "display the stored key and exit")
	loginCmd.Flags().BoolP("reset", "r", false, "remove the stored key")

	return loginCmd
}

func (c *cmdLogin) run(cmd *cobra.Command, _ []string) error {
	gs := c.globalState

	diskConf, err := readDiskConfig(gs)
	if err != nil {
		return err
	}

	// Only the JSON file's own values are modified and written back; env
	// overrides stay where they are.
	currentConf := mapsapi.Config{}
	if diskConf.MapsAPI != nil {
		if jsonerr := json.Unmarshal(diskConf.MapsAPI, &currentConf); jsonerr != nil {
			return errext.WithExitCodeIfNone(jsonerr, exitcodes.InvalidConfig)
		}
	}
	newConf := currentConf

	show := getNullBool(cmd.Flags(), "show")
	reset := getNullBool(cmd.Flags(), "reset")
	token := getNullString(cmd.Flags(), "token")
	switch {
	case reset.Bool:
		newConf.Token = null.StringFromPtr(nil)
		printToStdout(gs, "  key reset\n")
	case show.Bool:
	case token.Valid:
		newConf.Token = token
	default:
		form := ui.Form{
			Banner: "Please enter your Google Maps API key",
			Fields: []ui.Field{
				ui.PasswordField{
					Key:   "Token",
					Label: "API key",
					Min:   20,
				},
			},
		}
		if !gs.Stdout.IsTTY {
			gs.Logger.Warn("Stdin is not a terminal, the API key will not be masked")
		}
		vals, err := form.Run(gs.Stdin, gs.Stdout)
		if err != nil {
			return err
		}
		newConf.Token = null.StringFrom(vals["Token"])
	}

	if newConf.Token.Valid && newConf.Token.String != "" && !show.Bool {
		// One cheap geocode call proves the key actually works before it is
		// persisted.
		consolidated, err := mapsapi.GetConsolidatedConfig(diskConf.MapsAPI, gs.Env)
		if err != nil {
			return errext.WithExitCodeIfNone(err, exitcodes.InvalidConfig)
		}
		client := mapsapi.NewClient(gs.Logger, newConf.Token.String, consolidated.Host.String)
		if _, err := client.Geocode(gs.Ctx, keyCheckAddress); err != nil {
			if errors.As(err, new(mapsapi.APIError)) || errors.Is(err, mapsapi.ErrNotAuthenticated) {
				return errext.WithExitCodeIfNone(
					fmt.Errorf("the entered API key was rejected: %w", err), exitcodes.InvalidConfig)
			}
			return errext.WithExitCodeIfNone(err, exitcodes.MapsAPIError)
		}
	}

	if data, err := json.Marshal(newConf); err == nil {
		diskConf.MapsAPI = data
	} else {
		return err
	}
	if err := writeDiskConfig(gs, diskConf); err != nil {
		return err
	}

	if newConf.Token.Valid && newConf.Token.String != "" {
		valueColor := getColor(gs.Options.NoColor || !gs.Stdout.IsTTY, color.FgCyan)
		printToStdout(gs, fmt.Sprintf("  key: %s\n", valueColor.Sprint(newConf.Token.String)))
	}
	return nil
}
