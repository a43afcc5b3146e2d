package mapsapi

import (
	"fmt"
	"net/url"
	"strings"
)

const directionsBaseURL = "https://www.google.com/maps/dir/?api=1"

// Marker is a labeled point rendered on a static map.
type Marker struct {
	Label string
	Lat   float64
	Lng   float64
}

// StaticMapURL returns the URL of a static map image with one red marker per
// location. No request is made; the hosting page embeds the URL directly.
func (c *Client) StaticMapURL(markers []Marker) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s/staticmap?size=800x800&zoom=6", c.baseURL)
	for _, m := range markers {
		fmt.Fprintf(&sb, "&markers=color:red%%7Clabel:%s%%7C%v,%v", url.QueryEscape(m.Label), m.Lat, m.Lng)
	}
	fmt.Fprintf(&sb, "&key=%s", url.QueryEscape(c.token))
	return sb.String()
}

// RouteURL returns a Google Maps directions link visiting all the given
// addresses in order: the first is the origin, the last the destination and
// everything in between a waypoint.
func RouteURL(addresses []string) string {
	if len(addresses) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(directionsBaseURL)
	fmt.Fprintf(&sb, "&origin=%s", url.QueryEscape(addresses[0]))

	if len(addresses) > 1 {
		fmt.Fprintf(&sb, "&destination=%s", url.QueryEscape(addresses[len(addresses)-1]))
	}

	if len(addresses) > 2 {
		waypoints := make([]string, 0, len(addresses)-2)
		for _, a := range addresses[1 : len(addresses)-1] {
			waypoints = append(waypoints, url.QueryEscape(a))
		}
		fmt.Fprintf(&sb, "&waypoints=%s", strings.Join(waypoints, "%7C"))
	}

	return sb.String()
}
