// Package styles defines the visual appearance of rendered calendar pages.
//
// A Style turns the abstract page elements (day squares, the pebble cluster,
// titles) into SVG fragments. Two styles ship: Simple draws exact circles and
// crisp squares; Sketch draws each pebble as a jittered four-arc bezier blob,
// the shape the original artwork used.
package styles

import (
	"bytes"

	"github.com/matzehuels/pebblecal/pkg/emphasis"
)

// Style renders individual page elements into an SVG buffer.
type Style interface {
	// Name is the registry name used in flags and cache keys.
	Name() string
	// RenderDefs writes SVG <defs> content shared by the page.
	RenderDefs(buf *bytes.Buffer)
	// RenderPebble writes one ornament.
	RenderPebble(buf *bytes.Buffer, p Pebble)
	// RenderDay writes one dated day cell (square plus day number).
	RenderDay(buf *bytes.Buffer, d Day)
	// RenderLabel writes a free-standing text label.
	RenderLabel(buf *bytes.Buffer, l Label)
	// RenderCutLine writes the horizontal trim mark.
	RenderCutLine(buf *bytes.Buffer, c CutLine)
}

// Pebble is one ornament in page coordinates (SVG, y down).
type Pebble struct {
	ID       string  // stable identity, drives deterministic per-pebble jitter
	X, Y     float64 // center
	R        float64
	Rotation float64 // radians
	Fill     string  // CSS color
}

// Day is one dated day cell in page coordinates.
type Day struct {
	X, Y     float64 // top-left corner of the square
	Size     float64
	Label    string // day number
	Emphasis emphasis.Flag
	Weekend  bool
}

// Label is a positioned text element.
type Label struct {
	X, Y   float64
	Text   string
	Size   float64
	Anchor string // SVG text-anchor; empty means "start"
}

// CutLine is a dashed horizontal trim mark spanning the page.
type CutLine struct {
	Y     float64
	Width float64
}

// Stroke widths for day squares, carried over from the original artwork:
// weekends get the heavier line.
const (
	weekendStroke = 1.2
	regularStroke = 0.6
)

// Day square proportions from the original artwork.
const (
	cornerRatio = 0.15 // corner radius relative to square size
	textMargin  = 0.1  // day-number inset relative to square size
)

// fontAttrs returns the font-weight and font-style SVG attributes for an
// emphasis flag.
func fontAttrs(f emphasis.Flag) (weight, style string) {
	weight, style = "300", "normal"
	if f == emphasis.Bold || f == emphasis.Both {
		weight = "700"
	}
	if f == emphasis.Italic || f == emphasis.Both {
		style = "italic"
	}
	return weight, style
}
