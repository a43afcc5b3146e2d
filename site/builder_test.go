package site

import (
	"bytes"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stanfield-dev/store.locator/mapsapi"
	"github.com/stanfield-dev/store.locator/stores"
)

func testLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(bytes.NewBuffer(nil))
	return logger
}

func testBatch(ids ...string) []stores.Located {
	batch := make([]stores.Located, len(ids))
	for i, id := range ids {
		batch[i] = stores.Located{
			Store: stores.Store{ID: id, Name: "Store " + id, Address: "1 Main St, Springfield, CA"},
			Location: mapsapi.Location{
				FormattedAddress: id + " Main St, Springfield, CA 90001, USA",
				Lat:              34.05, Lng: -118.24,
			},
		}
	}
	return batch
}

func testMatrix(n int) *mapsapi.Matrix {
	m := &mapsapi.Matrix{Rows: make([][]mapsapi.MatrixElement, n)}
	for i := range m.Rows {
		m.Rows[i] = make([]mapsapi.MatrixElement, n)
		for j := range m.Rows[i] {
			m.Rows[i][j] = mapsapi.MatrixElement{Distance: "12.4 mi", Duration: "18 mins", OK: true}
		}
	}
	return m
}

func parseHTML(t *testing.T, fs afero.Fs, path string) *goquery.Document {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	require.NoError(t, err)
	return doc
}

func TestBuilderInitWritesAssets(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	b := NewBuilder(fs, "html", testLogger())
	require.NoError(t, b.Init())

	css, err := afero.ReadFile(fs, "html/css/styles.css")
	require.NoError(t, err)
	assert.Contains(t, string(css), "#contentArea")

	js, err := afero.ReadFile(fs, "html/js/store.locator.js")
	require.NoError(t, err)
	assert.Contains(t, string(js), `document.getElementById("stateSelectorButton")`)
	assert.Contains(t, string(js), `document.getElementById("googleMapBox").src = selector.value`)
}

func TestWritePageRendersMapRouteAndTable(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	b := NewBuilder(fs, "html", testLogger())
	require.NoError(t, b.Init())

	batch := testBatch("CA-1", "CA-2", "CA-3")
	file, err := b.WritePage(Page{
		State:    "CA",
		Stores:   batch,
		Matrix:   testMatrix(3),
		MapURL:   "https://maps.example.com/staticmap?size=800x800",
		RouteURL: "https://www.google.com/maps/dir/?api=1&origin=a",
	})
	require.NoError(t, err)
	require.Equal(t, "CA-0.html", file)

	doc := parseHTML(t, fs, "html/CA-0.html")

	img, ok := doc.Find("img").Attr("src")
	require.True(t, ok)
	assert.Contains(t, img, "staticmap")

	route, ok := doc.Find("button a").Attr("href")
	require.True(t, ok)
	assert.Contains(t, route, "maps/dir")

	// one header row plus one row per store
	assert.Equal(t, 4, doc.Find("table tr").Length())
	assert.Equal(t, 9, doc.Find("td.data").Length())
	firstCell := doc.Find("td.data").First().Text()
	assert.Contains(t, firstCell, "Miles: 12.4 mi")
	assert.Contains(t, firstCell, "Hours: 18 mins")
	assert.Equal(t, 3, doc.Find("td.columnHeader").Length())
	assert.Contains(t, doc.Find("td.columnHeader").First().Text(), "Store# CA-1")
}

func TestWritePageNumbersRepeatBatches(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	b := NewBuilder(fs, "html", testLogger())
	require.NoError(t, b.Init())

	for i, want := range []string{"CA-0.html", "CA-1.html"} {
		file, err := b.WritePage(Page{
			State:  "CA",
			Stores: testBatch("CA-A", "CA-B")[:2],
			Matrix: testMatrix(2),
		})
		require.NoError(t, err, "batch %d", i)
		assert.Equal(t, want, file)
	}
}

func TestWritePageValidatesItsInput(t *testing.T) {
	t.Parallel()

	b := NewBuilder(afero.NewMemMapFs(), "html", testLogger())

	_, err := b.WritePage(Page{State: "CA"})
	assert.Error(t, err)

	_, err = b.WritePage(Page{State: "CA", Stores: testBatch("CA-1", "CA-2"), Matrix: testMatrix(1)})
	assert.Error(t, err)
}

func TestWriteIndexListsStatePages(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	b := NewBuilder(fs, "html", testLogger())
	require.NoError(t, b.Init())

	for _, state := range []string{"CA", "CA", "TX"} {
		_, err := b.WritePage(Page{
			State:  state,
			Stores: testBatch(state + "-A"),
			Matrix: testMatrix(1),
		})
		require.NoError(t, err)
	}
	require.NoError(t, b.WriteIndex("Store Locator"))

	doc := parseHTML(t, fs, "html/index.html")

	assert.Equal(t, "Store Locator", doc.Find("title").Text())

	options := doc.Find("select#stateSelector option")
	require.Equal(t, 3, options.Length())

	var values, labels []string
	options.Each(func(_ int, s *goquery.Selection) {
		v, _ := s.Attr("value")
		values = append(values, v)
		labels = append(labels, s.Text())
	})
	assert.Equal(t, []string{"CA-0.html", "CA-1.html", "TX-0.html"}, values)
	assert.Equal(t, []string{"CA", "CA-1", "TX"}, labels)

	assert.Equal(t, 1, doc.Find("button#stateSelectorButton").Length())
	assert.Equal(t, 1, doc.Find("iframe#googleMapBox").Length())

	script, ok := doc.Find("script").Attr("src")
	require.True(t, ok)
	assert.Equal(t, "js/store.locator.js", script)
}

func TestIndexOptionsFeedTheWiring(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	b := NewBuilder(fs, "html", testLogger())
	require.NoError(t, b.Init())
	for _, state := range []string{"CA", "TX"} {
		_, err := b.WritePage(Page{State: state, Stores: testBatch(state), Matrix: testMatrix(1)})
		require.NoError(t, err)
	}

	options := b.Options()
	values := make([]string, len(options))
	for i, o := range options {
		values[i] = o.Value
	}

	trigger := NewButton(TriggerID)
	selector := NewSelector(SelectorID, values...)
	frame := NewFrame(FrameID)
	require.NoError(t, Bind(trigger, selector, frame))

	require.NoError(t, selector.Select("TX-0.html"))
	trigger.Click()
	assert.Equal(t, "TX-0.html", frame.Src())

	// the generated option set is closed, nothing else can reach the frame
	assert.Error(t, selector.Select("ZZ-9.html"))
}
