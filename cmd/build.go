package cmd

import (
	"context"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/stanfield-dev/store.locator/cmd/state"
	"github.com/stanfield-dev/store.locator/errext"
	"github.com/stanfield-dev/store.locator/errext/exitcodes"
	"github.com/stanfield-dev/store.locator/geocache"
	"github.com/stanfield-dev/store.locator/mapsapi"
	"github.com/stanfield-dev/store.locator/site"
	"github.com/stanfield-dev/store.locator/stores"
)

const defaultOutDir = "html"
const defaultTitle = "Store Locator"

type cmdBuild struct {
	globalState *state.GlobalState
}

func getCmdBuild(gs *state.GlobalState) *cobra.Command {
	c := &cmdBuild{globalState: gs}

	buildCmd := &cobra.Command{
		Use:   "build <stores.csv>",
		Short: "Build the store locator site from a CSV of store addresses",
		Long: `Build the store locator site.

Geocodes every store in the given CSV list ('Site ID,Site Name,Street Address,
City,State', one header row), fetches the distances and travel times between
the stores of each state, and writes one HTML page per state plus an index
page with a state selector into the output directory.`,
		Args: exactArgsWithMsg(1, "arg should be the stores list CSV file"),
		RunE: c.run,
	}

	buildCmd.Flags().StringP("out", "o", defaultOutDir, "output `directory` for the generated site")
	buildCmd.Flags().String("title", defaultTitle, "title of the index page")
	buildCmd.Flags().StringP("token", "t", "", "Google Maps API `key` to use")
	buildCmd.Flags().String("cache", "", "sqlite `file` caching geocode lookups")

	return buildCmd
}

func (c *cmdBuild) run(cmd *cobra.Command, args []string) error {
	gs := c.globalState

	conf, err := getMapsConfig(gs, cmd.Flags())
	if err != nil {
		return err
	}
	if !conf.Token.Valid || conf.Token.String == "" {
		return errext.WithExitCodeIfNone(
			errext.WithHint(
				fmt.Errorf("no Google Maps API key configured"),
				"run 'store.locator login', pass --token or set STORELOCATOR_MAPS_TOKEN",
			), exitcodes.InvalidConfig)
	}
	if cache := getNullString(cmd.Flags(), "cache"); cache.Valid {
		conf.CachePath = cache
	}

	storeList, err := stores.ReadFile(gs.FS, args[0])
	if err != nil {
		return errext.WithExitCodeIfNone(err, exitcodes.InvalidInput)
	}
	gs.Logger.WithField("stores", len(storeList)).Debug("parsed the stores list")

	client := mapsapi.NewClient(gs.Logger, conf.Token.String, conf.Host.String)

	var cache *geocache.Cache
	if conf.CachePath.Valid && conf.CachePath.String != "" {
		cache, err = geocache.Open(conf.CachePath.String)
		if err != nil {
			return fmt.Errorf("could not open the geocode cache: %w", err)
		}
		defer func() {
			if cerr := cache.Close(); cerr != nil {
				gs.Logger.WithError(cerr).Warn("could not close the geocode cache")
			}
		}()
	}

	located, err := geocodeStores(gs.Ctx, client, cache, storeList, gs.Logger)
	if err != nil {
		return errext.WithExitCodeIfNone(err, exitcodes.MapsAPIError)
	}

	outDir := defaultOutDir
	if out := getNullString(cmd.Flags(), "out"); out.Valid {
		outDir = out.String
	}
	builder := site.NewBuilder(gs.FS, outDir, gs.Logger)
	if err := builder.Init(); err != nil {
		return err
	}

	summary := make([]table.Row, 0)
	for _, batch := range stores.Batch(located) {
		addresses := stores.Addresses(batch)

		matrix, err := client.DistanceMatrix(gs.Ctx, addresses)
		if err != nil {
			return errext.WithExitCodeIfNone(
				fmt.Errorf("could not fetch the distance matrix for state %q: %w", batch[0].State(), err),
				exitcodes.MapsAPIError)
		}

		file, err := builder.WritePage(site.Page{
			State:    batch[0].State(),
			Stores:   batch,
			Matrix:   matrix,
			MapURL:   client.StaticMapURL(stores.Markers(batch)),
			RouteURL: mapsapi.RouteURL(addresses),
		})
		if err != nil {
			return err
		}
		summary = append(summary, table.Row{batch[0].State(), len(batch), file})
	}

	title := defaultTitle
	if t := getNullString(cmd.Flags(), "title"); t.Valid {
		title = t.String
	}
	if err := builder.WriteIndex(title); err != nil {
		return err
	}

	gs.Logger.WithFields(logrus.Fields{"stores": len(located), "out": outDir}).Info("site built")

	if !gs.Options.Quiet {
		t := table.NewWriter()
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"State", "Stores", "Page"})
		t.AppendRows(summary)
		printToStdout(gs, t.Render()+"\n")
	}
	return nil
}

// geocodeStores resolves every store's address, going through the cache when
// one is configured.
func geocodeStores(
	ctx context.Context, client *mapsapi.Client, cache *geocache.Cache,
	storeList []stores.Store, logger logrus.FieldLogger,
) ([]stores.Located, error) {
	located := make([]stores.Located, 0, len(storeList))
	for _, store := range storeList {
		if cache != nil {
			loc, ok, err := cache.Get(ctx, store.Address)
			if err != nil {
				return nil, fmt.Errorf("could not read the geocode cache: %w", err)
			}
			if ok {
				located = append(located, stores.Located{Store: store, Location: *loc})
				continue
			}
		}

		logger.WithField("address", store.Address).Debug("geocoding address")
		loc, err := client.Geocode(ctx, store.Address)
		if err != nil {
			return nil, fmt.Errorf("could not geocode %q: %w", store.Address, err)
		}

		if cache != nil {
			if err := cache.Put(ctx, store.Address, *loc); err != nil {
				return nil, fmt.Errorf("could not update the geocode cache: %w", err)
			}
		}
		located = append(located, stores.Located{Store: store, Location: *loc})
	}
	return located, nil
}
