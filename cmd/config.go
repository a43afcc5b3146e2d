package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"gopkg.in/guregu/null.v3"

	"github.com/stanfield-dev/store.locator/cmd/state"
	"github.com/stanfield-dev/store.locator/errext"
	"github.com/stanfield-dev/store.locator/errext/exitcodes"
	"github.com/stanfield-dev/store.locator/mapsapi"
)

// Config is the persistent on-disk configuration.
type Config struct {
	Out   null.String `json:"out" envconfig:"STORELOCATOR_OUT"`
	Title null.String `json:"title" envconfig:"STORELOCATOR_TITLE"`

	// MapsAPI is kept raw here; mapsapi.GetConsolidatedConfig merges it with
	// the environment and its defaults.
	MapsAPI json.RawMessage `json:"mapsapi,omitempty"`
}

// Apply saves config non-zero config values from the passed config in the receiver.
func (c Config) Apply(cfg Config) Config {
	if cfg.Out.Valid {
		c.Out = cfg.Out
	}
	if cfg.Title.Valid {
		c.Title = cfg.Title
	}
	if cfg.MapsAPI != nil {
		c.MapsAPI = cfg.MapsAPI
	}
	return c
}

// Reads the configuration file from the filesystem. A missing file is not an
// error, just an empty config.
func readDiskConfig(gs *state.GlobalState) (Config, error) {
	realConfigFilePath := gs.Options.ConfigFilePath
	if realConfigFilePath == "" {
		realConfigFilePath = gs.DefaultOptions.ConfigFilePath
	}

	data, err := afero.ReadFile(gs.FS, realConfigFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("could not read the config file %q: %w", realConfigFilePath, err)
	}

	var conf Config
	if err := json.Unmarshal(data, &conf); err != nil {
		err = fmt.Errorf("could not parse the config file %q: %w", realConfigFilePath, err)
		return Config{}, errext.WithExitCodeIfNone(err, exitcodes.InvalidConfig)
	}
	return conf, nil
}

// Writes the configuration file back to the filesystem.
func writeDiskConfig(gs *state.GlobalState, conf Config) error {
	realConfigFilePath := gs.Options.ConfigFilePath
	if realConfigFilePath == "" {
		realConfigFilePath = gs.DefaultOptions.ConfigFilePath
	}

	data, err := json.MarshalIndent(conf, "", "  ")
	if err != nil {
		return err
	}

	if err := gs.FS.MkdirAll(filepath.Dir(realConfigFilePath), 0o755); err != nil {
		return err
	}
	return afero.WriteFile(gs.FS, realConfigFilePath, data, 0o644)
}

// getMapsConfig consolidates the Maps API config from the disk config, the
// environment and the --token CLI flag, in increasing order of precedence.
func getMapsConfig(gs *state.GlobalState, flags *pflag.FlagSet) (mapsapi.Config, error) {
	diskConf, err := readDiskConfig(gs)
	if err != nil {
		return mapsapi.Config{}, err
	}

	conf, err := mapsapi.GetConsolidatedConfig(diskConf.MapsAPI, gs.Env)
	if err != nil {
		return conf, errext.WithExitCodeIfNone(err, exitcodes.InvalidConfig)
	}

	if flags.Lookup("token") != nil {
		if token := getNullString(flags, "token"); token.Valid {
			conf.Token = token
		}
	}
	return conf, nil
}
