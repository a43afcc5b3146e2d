package state

import "path/filepath"

// GlobalOptions contains global config values that apply for all storelocator
// sub-commands.
type GlobalOptions struct {
	ConfigFilePath string
	Quiet          bool
	NoColor        bool
	Address        string
	LogOutput      string
	LogFormat      string
	Verbose        bool
}

// GetDefaultGlobalOptions returns the default global options.
func GetDefaultGlobalOptions(userOSConfigDir string) GlobalOptions {
	return GlobalOptions{
		Address:        "localhost:8787",
		ConfigFilePath: filepath.Join(userOSConfigDir, "storelocator", defaultConfigFileName),
		LogOutput:      "stderr",
	}
}

func consolidateGlobalOptions(defaults GlobalOptions, env map[string]string) GlobalOptions {
	result := defaults

	if val, ok := env["STORELOCATOR_CONFIG"]; ok {
		result.ConfigFilePath = val
	}
	if val, ok := env["STORELOCATOR_LOG_OUTPUT"]; ok {
		result.LogOutput = val
	}
	if val, ok := env["STORELOCATOR_LOG_FORMAT"]; ok {
		result.LogFormat = val
	}
	if val, ok := env["STORELOCATOR_ADDRESS"]; ok {
		result.Address = val
	}
	if env["STORELOCATOR_NO_COLOR"] != "" {
		result.NoColor = true
	}
	// Support https://no-color.org/, even an empty value should disable the
	// color output.
	if _, ok := env["NO_COLOR"]; ok {
		result.NoColor = true
	}
	return result
}
