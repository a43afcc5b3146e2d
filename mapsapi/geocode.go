package mapsapi

import (
	"context"
	"net/url"
)

// Location is the result of a forward geocode lookup.
type Location struct {
	FormattedAddress string  `json:"formatted_address"`
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
}

type geocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

func (r *geocodeResponse) apiStatus() (string, string) {
	return r.Status, r.ErrorMessage
}

// Geocode resolves a postal address to its full Google Maps street address
// and coordinates. Only the first (best) match is used.
func (c *Client) Geocode(ctx context.Context, address string) (*Location, error) {
	req, err := c.NewRequest(ctx, "geocode", url.Values{"address": {address}})
	if err != nil {
		return nil, err
	}

	resp := geocodeResponse{}
	if err := c.Do(req, &resp); err != nil {
		return nil, err
	}

	if len(resp.Results) == 0 {
		return nil, ErrNoResults
	}

	first := resp.Results[0]
	return &Location{
		FormattedAddress: first.FormattedAddress,
		Lat:              first.Geometry.Location.Lat,
		Lng:              first.Geometry.Location.Lng,
	}, nil
}
