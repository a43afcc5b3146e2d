// Package mapsapi contains the REST client for the Google Maps web services
// used to build the store locator site: the Geocoding API, the Distance
// Matrix API and the Static Maps URL scheme.
package mapsapi
