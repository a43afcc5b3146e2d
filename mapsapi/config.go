package mapsapi

import (
	"encoding/json"

	"github.com/mstoykov/envconfig"
	"gopkg.in/guregu/null.v3"
)

// Config holds all the necessary data and options for talking to the Google
// Maps web services.
type Config struct {
	Token null.String `json:"token" envconfig:"STORELOCATOR_MAPS_TOKEN"`
	Host  null.String `json:"host" envconfig:"STORELOCATOR_MAPS_HOST"`

	// CachePath points at the sqlite file used to cache geocode lookups.
	// An empty/unset value disables the cache.
	CachePath null.String `json:"cachePath" envconfig:"STORELOCATOR_CACHE_PATH"`
}

// NewConfig creates a new Config instance with default values for some fields.
func NewConfig() Config {
	return Config{
		Host: null.NewString("https://maps.googleapis.com/maps/api", false),
	}
}

// Apply saves non-zero config values from the passed config in the receiver.
func (c Config) Apply(cfg Config) Config {
	if cfg.Token.Valid {
		c.Token = cfg.Token
	}
	if cfg.Host.Valid && cfg.Host.String != "" {
		c.Host = cfg.Host
	}
	if cfg.CachePath.Valid {
		c.CachePath = cfg.CachePath
	}
	return c
}

// GetConsolidatedConfig combines the default config values with the JSON
// config values and environment variables and returns the final result.
func GetConsolidatedConfig(jsonRawConf json.RawMessage, env map[string]string) (Config, error) {
	result := NewConfig()
	if jsonRawConf != nil {
		jsonConf := Config{}
		if err := json.Unmarshal(jsonRawConf, &jsonConf); err != nil {
			return result, err
		}
		result = result.Apply(jsonConf)
	}

	envConfig := Config{}
	if err := envconfig.Process("", &envConfig, func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}); err != nil {
		return result, err
	}
	result = result.Apply(envConfig)

	return result, nil
}
