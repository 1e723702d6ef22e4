// Package page models a single printable month page: the title, the day
// grid, and the pebble cluster, together with the geometry that positions
// them on an A4 sheet.
package page

import (
	"encoding/json"

	"github.com/matzehuels/pebblecal/pkg/calgrid"
	"github.com/matzehuels/pebblecal/pkg/pebble"
)

// A4 portrait in PostScript points.
const (
	A4Width  = 595.0
	A4Height = 842.0
)

// Geometry positions the page elements. Coordinates are SVG points with the
// origin at the top-left corner.
type Geometry struct {
	PageWidth  float64
	PageHeight float64
	MarginX    float64 // left and right page margin
	TitleY     float64 // baseline of the month title
	TitleSize  float64
	GridTop    float64 // top edge of the first week row
	GapRatio   float64 // gap between day squares relative to square size
	PebbleTop  float64 // top edge of the pebble region
	CutLine    bool    // dashed trim mark between grid and pebbles
}

// DefaultGeometry matches the original printed layout.
func DefaultGeometry() Geometry {
	return Geometry{
		PageWidth:  A4Width,
		PageHeight: A4Height,
		MarginX:    57.0,
		TitleY:     100.0,
		TitleSize:  40.0,
		GridTop:    150.0,
		GapRatio:   0.12,
		PebbleTop:  560.0,
		CutLine:    true,
	}
}

// SquareSize returns the day square edge length and the gap between squares
// for the grid to span the printable width.
func (g Geometry) SquareSize() (size, gap float64) {
	inner := g.PageWidth - 2*g.MarginX
	size = inner / (float64(calgrid.Columns) + float64(calgrid.Columns-1)*g.GapRatio)
	gap = size * g.GapRatio
	return size, gap
}

// PebbleCanvas returns the placement canvas spanned by the pebble region.
func (g Geometry) PebbleCanvas() pebble.Canvas {
	return pebble.Canvas{
		Width:  g.PageWidth - 2*g.MarginX,
		Height: g.PageHeight - g.PebbleTop - g.MarginX,
	}
}

// Page is one composed month ready for rendering.
type Page struct {
	Month        int // 1..12, used for stable pebble identities
	Title        string
	WeekdayNames [7]string
	Weeks        [][]calgrid.DayCell
	Ornaments    []pebble.Ornament
	Canvas       pebble.Canvas // placement canvas the ornaments were laid out in
	Geometry     Geometry
}

// New assembles a page from a composed grid and placed ornaments.
func New(spec calgrid.MonthSpec, cells []calgrid.DayCell, orns []pebble.Ornament, canvas pebble.Canvas, geo Geometry) Page {
	return Page{
		Month:        int(spec.Month),
		Title:        spec.Title(),
		WeekdayNames: spec.WeekdayNames,
		Weeks:        calgrid.Weeks(cells),
		Ornaments:    orns,
		Canvas:       canvas,
		Geometry:     geo,
	}
}

// Marshal returns a stable byte encoding of the page, used for content
// addressed caching of rendered output.
func (p Page) Marshal() ([]byte, error) {
	return json.Marshal(p)
}
