package mapsapi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v3"
)

func TestConfigApply(t *testing.T) {
	t.Parallel()

	conf := NewConfig().Apply(Config{Token: null.StringFrom("json-token")})
	assert.Equal(t, "json-token", conf.Token.String)
	assert.Equal(t, "https://maps.googleapis.com/maps/api", conf.Host.String)

	conf = conf.Apply(Config{Host: null.StringFrom("https://proxy.local")})
	assert.Equal(t, "json-token", conf.Token.String)
	assert.Equal(t, "https://proxy.local", conf.Host.String)

	// an explicitly empty host must not clobber the default
	conf = NewConfig().Apply(Config{Host: null.StringFrom("")})
	assert.Equal(t, "https://maps.googleapis.com/maps/api", conf.Host.String)
}

func TestGetConsolidatedConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults only", func(t *testing.T) {
		t.Parallel()
		conf, err := GetConsolidatedConfig(nil, nil)
		require.NoError(t, err)
		assert.False(t, conf.Token.Valid)
		assert.Equal(t, "https://maps.googleapis.com/maps/api", conf.Host.String)
	})

	t.Run("env overrides json", func(t *testing.T) {
		t.Parallel()
		conf, err := GetConsolidatedConfig(
			json.RawMessage(`{"token": "json-token", "cachePath": "geo.db"}`),
			map[string]string{"STORELOCATOR_MAPS_TOKEN": "env-token"},
		)
		require.NoError(t, err)
		assert.Equal(t, "env-token", conf.Token.String)
		assert.Equal(t, "geo.db", conf.CachePath.String)
	})

	t.Run("invalid json", func(t *testing.T) {
		t.Parallel()
		_, err := GetConsolidatedConfig(json.RawMessage(`{"token": 12`), nil)
		require.Error(t, err)
	})
}
