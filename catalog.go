// seehuhn.de/go/lut - 3D colour lookup tables for colour grading
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package lut

import (
	"fmt"
	"image"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/exp/maps"
	xdraw "golang.org/x/image/draw"
)

// Category groups catalog records by the kind of grade they perform.
type Category int

// The catalog categories.
const (
	CategoryCinematic Category = iota
	CategoryPortrait
	CategoryLandscape
	CategoryVintage
	CategoryCreative
	CategoryTechnical
)

func (c Category) String() string {
	switch c {
	case CategoryCinematic:
		return "cinematic"
	case CategoryPortrait:
		return "portrait"
	case CategoryLandscape:
		return "landscape"
	case CategoryVintage:
		return "vintage"
	case CategoryCreative:
		return "creative"
	case CategoryTechnical:
		return "technical"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// Record is a catalog entry: one LUT together with its metadata and
// user state. Each record owns exactly one grid, which is released
// when the record is removed from its catalog.
//
// Catalog methods return copies; mutating a returned Record has no
// effect on the catalog. All state changes go through catalog methods.
type Record struct {
	ID          string
	Name        string
	Description string
	Category    Category
	Format      string // format tag: "cube", "3dl", ..., "generated", "custom"
	Dimension   string // always "3D" for grids built by this package

	InputColorSpace  string
	OutputColorSpace string

	Created   time.Time
	ByteSize  int
	Thumbnail *Image

	Installed  bool
	Favorite   bool
	UsageCount int
	Rating     int // 1-5, 0 if unrated
	Tags       []string

	grid *Grid
}

func (r *Record) clone() *Record {
	c := *r
	c.Tags = slices.Clone(r.Tags)
	return &c
}

// thumbnailSize is the edge length of generated preview thumbnails.
const thumbnailSize = 64

// Catalog is an in-memory registry of LUTs. It is safe for concurrent
// use; all mutation goes through its methods.
//
// A Catalog has no ambient global state: create one with [NewCatalog],
// pass it to whoever needs it, and drop it when done.
type Catalog struct {
	mu      sync.RWMutex
	records map[string]*Record
	lastID  int

	now func() time.Time // for tests
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		records: make(map[string]*Record),
		now:     time.Now,
	}
}

// Len returns the number of installed LUTs.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// Add parses LUT file data and installs it under a new id. A parse or
// validation failure leaves the catalog unchanged.
func (c *Catalog) Add(name string, format Format, data []byte) (*Record, error) {
	g, err := Decode(format, data)
	if err != nil {
		return nil, err
	}

	in, out := format.colorSpaces()
	rec := &Record{
		Name:             name,
		Description:      g.Title,
		Category:         format.defaultCategory(),
		Format:           format.String(),
		InputColorSpace:  in,
		OutputColorSpace: out,
		grid:             g,
	}
	return c.install(rec)
}

// AddBuiltin generates one of the built-in looks and installs it.
func (c *Catalog) AddBuiltin(look BuiltinLook) (*Record, error) {
	g, err := Generate(look)
	if err != nil {
		return nil, err
	}

	info := builtinLooks[look]
	rec := &Record{
		Name:        info.name,
		Description: info.description,
		Category:    info.category,
		Format:      "generated",
		grid:        g,
	}
	return c.install(rec)
}

// AddCustom compiles a grid from the given adjustments and installs
// it. Because the grid is a pure function of size and adj, callers may
// reuse one record for repeated applications of the same parameters.
func (c *Catalog) AddCustom(name string, size int, adj Adjustments) (*Record, error) {
	g, err := Compile(size, adj)
	if err != nil {
		return nil, err
	}

	rec := &Record{
		Name: name,
		Description: fmt.Sprintf("exposure %+.2f, contrast %+.0f, saturation %+.0f",
			adj.Exposure, adj.Contrast, adj.Saturation),
		Category: CategoryCreative,
		Format:   "custom",
		grid:     g,
	}
	return c.install(rec)
}

func (c *Catalog) install(rec *Record) (*Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastID++
	rec.ID = fmt.Sprintf("lut-%d", c.lastID)
	rec.Dimension = "3D"
	rec.Created = c.now()
	rec.ByteSize = rec.grid.ByteSize()
	rec.Installed = true
	c.records[rec.ID] = rec
	return rec.clone(), nil
}

// Remove deletes a record and releases its grid. After Remove, any
// operation using the id fails with [ErrLUTNotFound].
func (c *Catalog) Remove(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, ok := c.records[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrLUTNotFound, id)
	}
	rec.grid = nil
	delete(c.records, id)
	return nil
}

// Get returns a copy of the record with the given id.
func (c *Catalog) Get(id string) (*Record, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rec, ok := c.records[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrLUTNotFound, id)
	}
	return rec.clone(), nil
}

// ToggleFavorite flips the favourite flag and returns the new state.
func (c *Catalog) ToggleFavorite(id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, ok := c.records[id]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrLUTNotFound, id)
	}
	rec.Favorite = !rec.Favorite
	return rec.Favorite, nil
}

// Rate sets the record's rating, clamped to the 1-5 scale.
func (c *Catalog) Rate(id string, rating int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, ok := c.records[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrLUTNotFound, id)
	}
	rec.Rating = min(max(rating, 1), 5)
	return nil
}

// AddTags appends tags to the record, skipping duplicates.
func (c *Catalog) AddTags(id string, tags ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, ok := c.records[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrLUTNotFound, id)
	}
	for _, t := range tags {
		if !slices.Contains(rec.Tags, t) {
			rec.Tags = append(rec.Tags, t)
		}
	}
	return nil
}

// RecordUsage increments the record's usage counter. The counter is
// only ever incremented; recommendation logic built on top of it is
// out of scope for this package.
func (c *Catalog) RecordUsage(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, ok := c.records[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrLUTNotFound, id)
	}
	rec.UsageCount++
	return nil
}

// All returns copies of all records, sorted by name.
func (c *Catalog) All() []*Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot(maps.Values(c.records))
}

// Search returns the records whose name, description or tags contain
// the query, compared case-insensitively. An empty query matches
// everything.
func (c *Catalog) Search(query string) []*Record {
	query = strings.ToLower(query)

	c.mu.RLock()
	defer c.mu.RUnlock()

	var hits []*Record
	for _, rec := range c.records {
		if recordMatches(rec, query) {
			hits = append(hits, rec)
		}
	}
	return c.snapshot(hits)
}

func recordMatches(rec *Record, query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(rec.Name), query) ||
		strings.Contains(strings.ToLower(rec.Description), query) {
		return true
	}
	for _, t := range rec.Tags {
		if strings.Contains(strings.ToLower(t), query) {
			return true
		}
	}
	return false
}

// ByCategory returns the records in the given category, sorted by
// name.
func (c *Catalog) ByCategory(cat Category) []*Record {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var hits []*Record
	for _, rec := range c.records {
		if rec.Category == cat {
			hits = append(hits, rec)
		}
	}
	return c.snapshot(hits)
}

// snapshot clones the records and sorts them by name. Callers must
// hold at least a read lock.
func (c *Catalog) snapshot(recs []*Record) []*Record {
	out := make([]*Record, len(recs))
	for i, rec := range recs {
		out[i] = rec.clone()
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Apply transforms src through the LUT with the given id, at the given
// strength, and composites the result onto the source with the given
// blend mode. With [BlendNormal] the transformed buffer is returned
// directly.
func (c *Catalog) Apply(id string, src *Image, strength int, mode BlendMode) (*Image, error) {
	c.mu.RLock()
	rec, ok := c.records[id]
	var g *Grid
	if ok {
		g = rec.grid
	}
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrLUTNotFound, id)
	}

	transformed, err := Apply(src, g, strength)
	if err != nil {
		return nil, err
	}
	if mode == BlendNormal {
		return transformed, nil
	}
	return Blend(src, transformed, mode)
}

// Export serialises the LUT with the given id in the given format.
func (c *Catalog) Export(id string, format Format) ([]byte, error) {
	c.mu.RLock()
	rec, ok := c.records[id]
	var g *Grid
	if ok {
		g = rec.grid
	}
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrLUTNotFound, id)
	}
	return Encode(g, format)
}

// Thumbnail renders a 64×64 preview of the LUT by grading a fixed
// two-axis gradient test pattern at full strength. The thumbnail is
// stored on the record and returned; encoding it to a displayable
// image format is the caller's concern.
func (c *Catalog) Thumbnail(id string) (*Image, error) {
	c.mu.RLock()
	rec, ok := c.records[id]
	var g *Grid
	if ok {
		g = rec.grid
	}
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrLUTNotFound, id)
	}

	thumb, err := Apply(gradientTestPattern(thumbnailSize), g, 100)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if rec, ok := c.records[id]; ok {
		rec.Thumbnail = thumb
	}
	c.mu.Unlock()
	return thumb, nil
}

// ThumbnailFromImage renders a 64×64 preview of the LUT applied to a
// caller-supplied image: the image is scaled down with bilinear
// filtering and then graded at full strength. The thumbnail is stored
// on the record and returned.
func (c *Catalog) ThumbnailFromImage(id string, src image.Image) (*Image, error) {
	c.mu.RLock()
	rec, ok := c.records[id]
	var g *Grid
	if ok {
		g = rec.grid
	}
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrLUTNotFound, id)
	}

	scaled := image.NewRGBA(image.Rect(0, 0, thumbnailSize, thumbnailSize))
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	thumb, err := Apply(FromImage(scaled), g, 100)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if rec, ok := c.records[id]; ok {
		rec.Thumbnail = thumb
	}
	c.mu.Unlock()
	return thumb, nil
}
