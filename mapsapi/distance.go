package mapsapi

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// MaxMatrixSize is the largest full-mesh matrix a single Distance Matrix API
// request supports (10 origins x 10 destinations).
const MaxMatrixSize = 10

// MatrixElement holds the distance and travel time between one origin and one
// destination, as human-readable texts ("12.4 mi", "1 hour 3 mins").
type MatrixElement struct {
	Distance string
	Duration string
	OK       bool
}

// Matrix is a full-mesh distance/duration matrix. Rows are in origin order,
// row elements in destination order, as the API guarantees.
type Matrix struct {
	Addresses []string
	Rows      [][]MatrixElement
}

type distanceMatrixResponse struct {
	Status               string   `json:"status"`
	ErrorMessage         string   `json:"error_message"`
	DestinationAddresses []string `json:"destination_addresses"`
	Rows                 []struct {
		Elements []struct {
			Status   string `json:"status"`
			Distance struct {
				Text string `json:"text"`
			} `json:"distance"`
			Duration struct {
				Text string `json:"text"`
			} `json:"duration"`
		} `json:"elements"`
	} `json:"rows"`
}

func (r *distanceMatrixResponse) apiStatus() (string, string) {
	return r.Status, r.ErrorMessage
}

// DistanceMatrix fetches distances and travel times between all the given
// addresses, full mesh, in imperial units.
func (c *Client) DistanceMatrix(ctx context.Context, addresses []string) (*Matrix, error) {
	if len(addresses) == 0 {
		return nil, fmt.Errorf("no addresses to build a distance matrix from")
	}
	if len(addresses) > MaxMatrixSize {
		return nil, fmt.Errorf("distance matrix supports at most %d addresses, got %d", MaxMatrixSize, len(addresses))
	}

	joined := strings.Join(addresses, "|")
	req, err := c.NewRequest(ctx, "distancematrix", url.Values{
		"origins":      {joined},
		"destinations": {joined},
		"units":        {"imperial"},
	})
	if err != nil {
		return nil, err
	}

	resp := distanceMatrixResponse{}
	if err := c.Do(req, &resp); err != nil {
		return nil, err
	}

	if len(resp.Rows) != len(addresses) {
		return nil, fmt.Errorf("expected %d matrix rows, got %d", len(addresses), len(resp.Rows))
	}

	m := &Matrix{
		Addresses: resp.DestinationAddresses,
		Rows:      make([][]MatrixElement, len(resp.Rows)),
	}
	for i, row := range resp.Rows {
		m.Rows[i] = make([]MatrixElement, len(row.Elements))
		for j, el := range row.Elements {
			m.Rows[i][j] = MatrixElement{
				Distance: el.Distance.Text,
				Duration: el.Duration.Text,
				OK:       el.Status == StatusOK,
			}
		}
	}
	return m, nil
}
