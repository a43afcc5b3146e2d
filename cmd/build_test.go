package cmd

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const buildTestCSV = `Site ID,Site Name,Street Address,City,State
MLO-251,MLO Los Angeles,15541 East Gale,City of Industry,CA
MLO-253,MLO Sacramento,400 Capitol Mall,Sacramento,CA
MLO-252,MLO Dallas,2200 Ross Ave,Dallas,TX
`

// fakeMapsAPI answers geocode and distance matrix requests with canned but
// well-formed payloads.
func fakeMapsAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/geocode/json", func(w http.ResponseWriter, r *http.Request) {
		address := r.URL.Query().Get("address")
		fmt.Fprintf(w, `{
			"status": "OK",
			"results": [{
				"formatted_address": %q,
				"geometry": {"location": {"lat": 34.05, "lng": -118.24}}
			}]
		}`, address+", USA")
	})

	mux.HandleFunc("/distancematrix/json", func(w http.ResponseWriter, r *http.Request) {
		n := 1
		for _, c := range r.URL.Query().Get("origins") {
			if c == '|' {
				n++
			}
		}

		element := `{"status": "OK", "distance": {"text": "12.4 mi"}, "duration": {"text": "18 mins"}}`
		row := `{"elements": [` + element
		for i := 1; i < n; i++ {
			row += "," + element
		}
		row += `]}`

		rows := row
		for i := 1; i < n; i++ {
			rows += "," + row
		}
		fmt.Fprintf(w, `{"status": "OK", "destination_addresses": [], "rows": [%s]}`, rows)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestBuildCommand(t *testing.T) {
	t.Parallel()

	srv := fakeMapsAPI(t)

	ts := newGlobalTestState(t)
	require.NoError(t, afero.WriteFile(ts.FS, "stores.csv", []byte(buildTestCSV), 0o644))
	ts.Env["STORELOCATOR_MAPS_TOKEN"] = "test-token"
	ts.Env["STORELOCATOR_MAPS_HOST"] = srv.URL
	ts.CmdArgs = []string{ts.BinaryName, "build", "stores.csv"}

	ExecuteWithGlobalState(ts.GlobalState)

	for _, file := range []string{"html/index.html", "html/CA-0.html", "html/TX-0.html",
		"html/css/styles.css", "html/js/store.locator.js"} {
		exists, err := afero.Exists(ts.FS, file)
		require.NoError(t, err)
		assert.True(t, exists, file)
	}

	index, err := afero.ReadFile(ts.FS, "html/index.html")
	require.NoError(t, err)
	assert.Contains(t, string(index), `value="CA-0.html"`)
	assert.Contains(t, string(index), `value="TX-0.html"`)

	// the summary table goes to stdout
	assert.Contains(t, ts.stdOut.String(), "CA-0.html")
}

func TestBuildCommandQuiet(t *testing.T) {
	t.Parallel()

	srv := fakeMapsAPI(t)

	ts := newGlobalTestState(t)
	require.NoError(t, afero.WriteFile(ts.FS, "stores.csv", []byte(buildTestCSV), 0o644))
	ts.Env["STORELOCATOR_MAPS_TOKEN"] = "test-token"
	ts.Env["STORELOCATOR_MAPS_HOST"] = srv.URL
	ts.CmdArgs = []string{ts.BinaryName, "build", "stores.csv", "--quiet"}

	ExecuteWithGlobalState(ts.GlobalState)
	assert.Empty(t, ts.stdOut.String())
}

func TestBuildCommandRequiresToken(t *testing.T) {
	t.Parallel()

	ts := newGlobalTestState(t)
	require.NoError(t, afero.WriteFile(ts.FS, "stores.csv", []byte(buildTestCSV), 0o644))
	ts.CmdArgs = []string{ts.BinaryName, "build", "stores.csv"}
	ts.expectedExitCode = 104

	ExecuteWithGlobalState(ts.GlobalState)
	assert.Contains(t, ts.stdErr.String(), "no Google Maps API key configured")

	var hint string
	for _, e := range ts.loggerHook.entries {
		if h, ok := e.Data["hint"].(string); ok {
			hint = h
		}
	}
	assert.Contains(t, hint, "store.locator login")
}

func TestBuildCommandMissingCSV(t *testing.T) {
	t.Parallel()

	ts := newGlobalTestState(t)
	ts.Env["STORELOCATOR_MAPS_TOKEN"] = "test-token"
	ts.CmdArgs = []string{ts.BinaryName, "build", "nope.csv"}
	ts.expectedExitCode = 105

	ExecuteWithGlobalState(ts.GlobalState)
	assert.Contains(t, ts.stdErr.String(), "nope.csv")
}

func TestBuildCommandNeedsExactlyOneArg(t *testing.T) {
	t.Parallel()

	ts := newGlobalTestState(t)
	ts.CmdArgs = []string{ts.BinaryName, "build"}
	ts.expectedExitCode = -1

	ExecuteWithGlobalState(ts.GlobalState)
	assert.Contains(t, ts.stdErr.String(), "stores list CSV file")
}
