package page

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/matzehuels/pebblecal/pkg/calgrid"
	"github.com/matzehuels/pebblecal/pkg/emphasis"
	"github.com/matzehuels/pebblecal/pkg/pebble"
)

func TestSquareSizeSpansPrintableWidth(t *testing.T) {
	geo := DefaultGeometry()
	size, gap := geo.SquareSize()
	inner := geo.PageWidth - 2*geo.MarginX
	got := 7*size + 6*gap
	if math.Abs(got-inner) > 1e-9 {
		t.Errorf("grid spans %.4f, want %.4f", got, inner)
	}
	if gap <= 0 || size <= 0 {
		t.Errorf("degenerate geometry: size=%.2f gap=%.2f", size, gap)
	}
}

func TestPebbleCanvasFitsPage(t *testing.T) {
	geo := DefaultGeometry()
	canvas := geo.PebbleCanvas()
	if canvas.Width <= 0 || canvas.Height <= 0 {
		t.Fatalf("empty canvas: %+v", canvas)
	}
	if geo.PebbleTop+canvas.Height > geo.PageHeight {
		t.Errorf("pebble region overflows the page")
	}
}

func TestNew(t *testing.T) {
	loc, err := calgrid.Lookup("sk")
	if err != nil {
		t.Fatal(err)
	}
	spec := loc.Spec(2023, time.July, false)
	cells, err := calgrid.Compose(spec, emphasis.Rule{})
	if err != nil {
		t.Fatal(err)
	}

	geo := DefaultGeometry()
	orns := []pebble.Ornament{{X: 30, Y: 40, Radius: 15, Shade: 0.5}}
	p := New(spec, cells, orns, geo.PebbleCanvas(), geo)

	if p.Month != 7 {
		t.Errorf("Month = %d, want 7", p.Month)
	}
	if p.Title != "Júl 2023" {
		t.Errorf("Title = %q", p.Title)
	}
	if len(p.Weeks) != 6 {
		t.Errorf("weeks = %d, want 6", len(p.Weeks))
	}
	if len(p.Ornaments) != 1 {
		t.Errorf("ornaments = %d, want 1", len(p.Ornaments))
	}
}

func TestMarshalStable(t *testing.T) {
	loc, err := calgrid.Lookup("en")
	if err != nil {
		t.Fatal(err)
	}
	spec := loc.Spec(2024, time.February, false)
	cells, err := calgrid.Compose(spec, emphasis.Rule{})
	if err != nil {
		t.Fatal(err)
	}
	p := New(spec, cells, nil, DefaultGeometry().PebbleCanvas(), DefaultGeometry())

	first, err := p.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	second, err := p.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Error("Marshal is not stable across calls")
	}
}
