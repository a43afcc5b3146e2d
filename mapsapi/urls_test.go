package mapsapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouteURL(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", RouteURL(nil))
	})

	t.Run("single address", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t,
			"https://www.google.com/maps/dir/?api=1&origin=1+Main+St",
			RouteURL([]string{"1 Main St"}))
	})

	t.Run("origin and destination", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t,
			"https://www.google.com/maps/dir/?api=1&origin=1+Main+St&destination=2+Oak+Ave",
			RouteURL([]string{"1 Main St", "2 Oak Ave"}))
	})

	t.Run("middle addresses become waypoints", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t,
			"https://www.google.com/maps/dir/?api=1&origin=a+st&destination=d+st&waypoints=b+st%7Cc+st",
			RouteURL([]string{"a st", "b st", "c st", "d st"}))
	})
}

func TestStaticMapURL(t *testing.T) {
	t.Parallel()

	c := NewClient(testLogger(), "secret-key", "https://maps.example.com")
	got := c.StaticMapURL([]Marker{
		{Label: "A-1", Lat: 34.05, Lng: -118.24},
		{Label: "B-2", Lat: 32.77, Lng: -96.79},
	})

	assert.Equal(t,
		"https://maps.example.com/staticmap?size=800x800&zoom=6"+
			"&markers=color:red%7Clabel:A-1%7C34.05,-118.24"+
			"&markers=color:red%7Clabel:B-2%7C32.77,-96.79"+
			"&key=secret-key",
		got)
}
