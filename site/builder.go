// Package site renders the store locator site: one HTML page per state batch
// and an index page whose selector, submit button and content iframe are
// wired together by the emitted script.
package site

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/stanfield-dev/store.locator/mapsapi"
	"github.com/stanfield-dev/store.locator/stores"
)

// Page holds everything needed to render one state batch.
type Page struct {
	State    string
	Stores   []stores.Located
	Matrix   *mapsapi.Matrix
	MapURL   string
	RouteURL string
}

// Option is one entry of the index page's state selector.
type Option struct {
	Value string
	Label string
}

// Builder writes the site onto the given filesystem, rooted at dir.
type Builder struct {
	fs     afero.Fs
	dir    string
	logger logrus.FieldLogger

	// number of pages written so far per state, to name repeat batches
	// CA-0.html, CA-1.html, ...
	batches map[string]int
	files   []string
}

// NewBuilder returns a Builder writing below dir on fs.
func NewBuilder(fs afero.Fs, dir string, logger logrus.FieldLogger) *Builder {
	return &Builder{
		fs:      fs,
		dir:     dir,
		logger:  logger,
		batches: make(map[string]int),
	}
}

// Init creates the output directory tree and writes the static assets (the
// stylesheet and the wiring script).
func (b *Builder) Init() error {
	for _, d := range []string{b.dir, path.Join(b.dir, "css"), path.Join(b.dir, "js")} {
		if err := b.fs.MkdirAll(d, 0o755); err != nil {
			return fmt.Errorf("could not create output directory %q: %w", d, err)
		}
	}
	if err := b.writeFile(path.Join("css", "styles.css"), []byte(stylesheet)); err != nil {
		return err
	}
	return b.writeFile(path.Join("js", "store.locator.js"), []byte(wiringScript))
}

type statePageRow struct {
	Origin   stores.Located
	Elements []mapsapi.MatrixElement
}

type statePageData struct {
	MapURL   string
	RouteURL string
	Stores   []stores.Located
	Rows     []statePageRow
}

// WritePage renders one state page and returns the file name it was written
// under, relative to the site root.
func (b *Builder) WritePage(p Page) (string, error) {
	if len(p.Stores) == 0 {
		return "", fmt.Errorf("no stores to render for state %q", p.State)
	}
	if p.Matrix == nil || len(p.Matrix.Rows) != len(p.Stores) {
		return "", fmt.Errorf("distance matrix for state %q does not match its %d stores", p.State, len(p.Stores))
	}

	data := statePageData{
		MapURL:   p.MapURL,
		RouteURL: p.RouteURL,
		Stores:   p.Stores,
		Rows:     make([]statePageRow, len(p.Stores)),
	}
	for i, origin := range p.Stores {
		data.Rows[i] = statePageRow{Origin: origin, Elements: p.Matrix.Rows[i]}
	}

	var buf bytes.Buffer
	if err := statePageTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("could not render the page for state %q: %w", p.State, err)
	}

	name := fmt.Sprintf("%s-%d.html", p.State, b.batches[p.State])
	b.batches[p.State]++

	if err := b.writeFile(name, buf.Bytes()); err != nil {
		return "", err
	}

	b.files = append(b.files, name)
	b.logger.WithFields(logrus.Fields{"state": p.State, "stores": len(p.Stores), "file": name}).
		Debug("wrote state page")
	return name, nil
}

// Options returns the selector options for the pages written so far, in
// write order. The first batch of a state is labeled with the bare state
// code, repeat batches with the full file base name.
func (b *Builder) Options() []Option {
	options := make([]Option, 0, len(b.files))
	for _, f := range b.files {
		base := strings.TrimSuffix(f, ".html")
		label := base
		if strings.HasSuffix(base, "-0") {
			label = strings.TrimSuffix(base, "-0")
		}
		options = append(options, Option{Value: f, Label: label})
	}
	return options
}

type indexData struct {
	Title   string
	Options []Option
}

// WriteIndex renders the index page listing all written state pages.
func (b *Builder) WriteIndex(title string) error {
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, indexData{Title: title, Options: b.Options()}); err != nil {
		return fmt.Errorf("could not render the index page: %w", err)
	}
	return b.writeFile("index.html", buf.Bytes())
}

func (b *Builder) writeFile(name string, data []byte) error {
	full := path.Join(b.dir, name)
	if err := afero.WriteFile(b.fs, full, data, 0o644); err != nil {
		return fmt.Errorf("could not write %q: %w", full, err)
	}
	return nil
}
