// Package stores reads and organizes the store list that drives the site
// build. The input is a CSV file of format
// `Site ID,Site Name,Street Address,City,State` with a single header row.
package stores

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/stanfield-dev/store.locator/mapsapi"
)

// MaxBatchSize is the largest number of stores in a single batch. The
// Distance Matrix API caps a request at a 10x10 mesh, so state groups are
// split below that.
const MaxBatchSize = mapsapi.MaxMatrixSize - 1

const numFields = 5

// Store is one row of the input list.
type Store struct {
	ID      string
	Name    string
	Address string // "street, city, ST"
}

// State returns the two-letter state code the store's address ends with.
func (s Store) State() string {
	if len(s.Address) < 2 {
		return s.Address
	}
	return s.Address[len(s.Address)-2:]
}

// Located is a store together with its geocoded location.
type Located struct {
	Store
	mapsapi.Location
}

// Parse reads the store list from r, skipping the header row.
func Parse(r io.Reader) ([]Store, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not parse the stores list: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("the stores list contains no stores")
	}

	result := make([]Store, 0, len(records)-1)
	for _, rec := range records[1:] {
		result = append(result, Store{
			ID:      strings.TrimSpace(rec[0]),
			Name:    strings.TrimSpace(rec[1]),
			Address: fmt.Sprintf("%s, %s, %s", strings.TrimSpace(rec[2]), strings.TrimSpace(rec[3]), strings.TrimSpace(rec[4])),
		})
	}
	return result, nil
}

// ReadFile reads and parses the store list at path.
func ReadFile(fs afero.Fs, path string) ([]Store, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open the stores list %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return Parse(f)
}

// Batch sorts the located stores by state and groups them into per-state
// batches of at most MaxBatchSize, ready for one distance matrix request
// each. A state with more stores than fit in one batch gets several.
func Batch(located []Located) [][]Located {
	sorted := make([]Located, len(located))
	copy(sorted, located)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].State() < sorted[j].State()
	})

	var batches [][]Located
	var current []Located
	for _, loc := range sorted {
		switch {
		case len(current) == 0:
			current = []Located{loc}
		case len(current) == MaxBatchSize, loc.State() != current[0].State():
			batches = append(batches, current)
			current = []Located{loc}
		default:
			current = append(current, loc)
		}
	}
	if len(current) > 0 {
		batches = append(batches, current)
	}
	return batches
}

// Addresses returns the geocoded street addresses of the given stores, in
// order.
func Addresses(located []Located) []string {
	result := make([]string, len(located))
	for i, loc := range located {
		result[i] = loc.FormattedAddress
	}
	return result
}

// Markers returns the static map markers for the given stores, labeled with
// their site ids.
func Markers(located []Located) []mapsapi.Marker {
	result := make([]mapsapi.Marker, len(located))
	for i, loc := range located {
		result[i] = mapsapi.Marker{Label: loc.ID, Lat: loc.Lat, Lng: loc.Lng}
	}
	return result
}
