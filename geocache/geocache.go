// Package geocache persists geocode lookups in a local sqlite database so a
// rebuild of the site doesn't have to pay for the same Geocoding API calls
// again.
package geocache

import (
	"context"
	"database/sql"
	"errors"

	_ "modernc.org/sqlite"

	"github.com/stanfield-dev/store.locator/mapsapi"
)

// Cache is a sqlite-backed address -> location cache.
type Cache struct {
	db *sql.DB
}

// Open opens (and if needed creates) the cache database at path.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	_, err = db.ExecContext(
		context.Background(),
		`CREATE TABLE IF NOT EXISTS geocodes (
			address TEXT NOT NULL UNIQUE,
			formatted_address TEXT NOT NULL,
			lat REAL NOT NULL,
			lng REAL NOT NULL
		)`,
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Cache{db: db}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the cached location for the raw address, or ok=false on a miss.
func (c *Cache) Get(ctx context.Context, address string) (loc *mapsapi.Location, ok bool, err error) {
	row := c.db.QueryRowContext(
		ctx,
		`SELECT formatted_address, lat, lng FROM geocodes WHERE address = ?;`, address,
	)

	result := &mapsapi.Location{}
	err = row.Scan(&result.FormattedAddress, &result.Lat, &result.Lng)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return result, true, nil
}

// Put stores the location for the raw address, replacing any previous entry.
func (c *Cache) Put(ctx context.Context, address string, loc mapsapi.Location) error {
	_, err := c.db.ExecContext(
		ctx,
		`INSERT OR REPLACE INTO geocodes (address, formatted_address, lat, lng) VALUES (?, ?, ?, ?);`,
		address, loc.FormattedAddress, loc.Lat, loc.Lng,
	)
	return err
}
