package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	stdlog "log"
	"runtime/debug"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/stanfield-dev/store.locator/cmd/state"
	"github.com/stanfield-dev/store.locator/errext"
	"github.com/stanfield-dev/store.locator/errext/exitcodes"
	"github.com/stanfield-dev/store.locator/lib/consts"
)

// Execute creates a GlobalState from the process environment and runs the
// root command. It is called by main.main() and only needs to happen once.
func Execute() {
	gs := state.NewGlobalState(context.Background())
	newRootCommand(gs).execute()
}

// ExecuteWithGlobalState runs the root command with an existing GlobalState.
func ExecuteWithGlobalState(gs *state.GlobalState) {
	newRootCommand(gs).execute()
}

// This is to keep all fields needed for the main/root command
type rootCommand struct {
	globalState *state.GlobalState
	cmd         *cobra.Command
}

func newRootCommand(gs *state.GlobalState) *rootCommand {
	c := &rootCommand{globalState: gs}
	// the base command when called without any subcommands.
	rootCmd := &cobra.Command{
		Use:           gs.BinaryName,
		Short:         "store.locator builds and serves a store locator site from a CSV of store addresses",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return c.setupLoggers()
		},
		Version: consts.FullVersion(),
	}

	rootCmd.PersistentFlags().AddFlagSet(rootCmdPersistentFlagSet(gs))
	rootCmd.SetArgs(gs.CmdArgs[1:])
	rootCmd.SetOut(gs.Stdout)
	rootCmd.SetErr(gs.Stderr)
	rootCmd.SetIn(gs.Stdin)

	subCommands := []func(*state.GlobalState) *cobra.Command{
		getCmdBuild, getCmdServe, getCmdLogin, getCmdVersion,
	}
	for _, sc := range subCommands {
		rootCmd.AddCommand(sc(gs))
	}

	c.cmd = rootCmd
	return c
}

func (c *rootCommand) execute() {
	ctx, cancel := context.WithCancel(c.globalState.Ctx)
	c.globalState.Ctx = ctx

	exitCode := -1
	defer func() {
		cancel()
		c.globalState.OSExit(exitCode)
	}()

	defer func() {
		if r := recover(); r != nil {
			exitCode = int(exitcodes.GoPanic)
			err := fmt.Errorf("unexpected store.locator panic: %s\n%s", r, debug.Stack())
			c.globalState.Logger.Error(err)
		}
	}()

	err := c.cmd.Execute()
	if err == nil {
		exitCode = 0
		return
	}

	var ecerr errext.HasExitCode
	if errors.As(err, &ecerr) {
		exitCode = int(ecerr.ExitCode())
	}

	errText, fields := errext.Format(err)
	c.globalState.Logger.WithFields(fields).Error(errText)
}

func rootCmdPersistentFlagSet(gs *state.GlobalState) *pflag.FlagSet {
	flags := pflag.NewFlagSet("", pflag.ContinueOnError)

	// We use `gs.Options.<value>` both as the destination and as the value
	// here, since the options could have already been set by their respective
	// environment variables. The DefValue is set explicitly so the help
	// message isn't messed up by pre-set values.
	flags.StringVar(&gs.Options.LogOutput, "log-output", gs.Options.LogOutput,
		"change the output for logs, possible values are stderr, stdout, none")
	flags.Lookup("log-output").DefValue = gs.DefaultOptions.LogOutput

	flags.StringVar(&gs.Options.LogFormat, "log-format", gs.Options.LogFormat, "log output format")
	flags.Lookup("log-format").DefValue = gs.DefaultOptions.LogFormat

	flags.StringVarP(&gs.Options.ConfigFilePath, "config", "c", gs.Options.ConfigFilePath, "JSON config file")
	flags.Lookup("config").DefValue = gs.DefaultOptions.ConfigFilePath
	must(cobra.MarkFlagFilename(flags, "config"))

	flags.BoolVar(&gs.Options.NoColor, "no-color", gs.Options.NoColor, "disable colored output")

	flags.BoolVarP(&gs.Options.Verbose, "verbose", "v", gs.DefaultOptions.Verbose, "enable verbose logging")
	flags.BoolVarP(&gs.Options.Quiet, "quiet", "q", gs.DefaultOptions.Quiet, "disable progress updates")
	flags.StringVarP(&gs.Options.Address, "address", "a", gs.Options.Address, "address for the serve command")
	flags.Lookup("address").DefValue = gs.DefaultOptions.Address

	return flags
}

// RawFormatter it does nothing with the message just prints it
type RawFormatter struct{}

// Format renders a single log entry
func (f RawFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	return append([]byte(entry.Message), '\n'), nil
}

func (c *rootCommand) setupLoggers() error {
	gs := c.globalState
	if gs.Options.Verbose {
		gs.Logger.SetLevel(logrus.DebugLevel)
	}

	loggerForceColors := false // disable color by default
	switch gs.Options.LogOutput {
	case "stderr":
		loggerForceColors = !gs.Options.NoColor && gs.Stderr.IsTTY
		gs.Logger.SetOutput(gs.Stderr)
	case "stdout":
		loggerForceColors = !gs.Options.NoColor && gs.Stdout.IsTTY
		gs.Logger.SetOutput(gs.Stdout)
	case "none":
		gs.Logger.SetOutput(io.Discard)
	default:
		return fmt.Errorf("unsupported log output '%s'", gs.Options.LogOutput)
	}

	switch gs.Options.LogFormat {
	case "raw":
		gs.Logger.SetFormatter(&RawFormatter{})
		gs.Logger.Debug("Logger format: RAW")
	case "json":
		gs.Logger.SetFormatter(&logrus.JSONFormatter{})
		gs.Logger.Debug("Logger format: JSON")
	default:
		gs.Logger.SetFormatter(&logrus.TextFormatter{
			ForceColors: loggerForceColors, DisableColors: gs.Options.NoColor,
		})
		gs.Logger.Debug("Logger format: TEXT")
	}

	// Sometimes the Go runtime uses the standard log output to log some
	// messages directly.
	stdlog.SetOutput(gs.Logger.Writer())
	return nil
}
