package styles

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand/v2"
)

const sketchFontStack = `'Segoe Print', 'Comic Sans MS', cursive`

// kCircle approximates a quarter circle with a cubic bezier.
const kCircle = 0.5522847498

// Sketch draws pebbles as irregular four-arc bezier blobs, the hand-drawn
// shape of the original artwork. Blob jitter is derived from the pebble ID,
// so a given pebble always renders the same shape.
type Sketch struct{}

func (Sketch) Name() string { return "sketch" }

func (Sketch) RenderDefs(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "  <style>text { font-family: %s; }</style>\n", sketchFontStack)
}

func (Sketch) RenderPebble(buf *bytes.Buffer, p Pebble) {
	rng := jitterRNG(p.ID)
	deg := p.Rotation * 180 / math.Pi
	fmt.Fprintf(buf, `  <g transform="translate(%.2f %.2f) rotate(%.1f)"><path d="%s" fill="%s"/></g>`+"\n",
		p.X, p.Y, deg, blobPath(p.R, rng), p.Fill)
}

func (Sketch) RenderDay(buf *bytes.Buffer, d Day) {
	stroke := regularStroke + 0.2
	if d.Weekend {
		stroke = weekendStroke + 0.2
	}
	rx := d.Size * cornerRatio * 1.4
	fmt.Fprintf(buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.2f" fill="none" stroke="#222" stroke-width="%.1f" stroke-linejoin="round"/>`+"\n",
		d.X, d.Y, d.Size, d.Size, rx, stroke)

	weight, style := fontAttrs(d.Emphasis)
	tx := d.X + d.Size*textMargin
	ty := d.Y + d.Size - d.Size*textMargin
	fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" font-size="%.1f" font-weight="%s" font-style="%s">%s</text>`+"\n",
		tx, ty, d.Size*0.32, weight, style, d.Label)
}

func (Sketch) RenderLabel(buf *bytes.Buffer, l Label) {
	anchor := l.Anchor
	if anchor == "" {
		anchor = "start"
	}
	fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" font-size="%.1f" text-anchor="%s">%s</text>`+"\n",
		l.X, l.Y, l.Size, anchor, l.Text)
}

func (Sketch) RenderCutLine(buf *bytes.Buffer, c CutLine) {
	fmt.Fprintf(buf, `  <line x1="0" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#999" stroke-width="0.5" stroke-dasharray="4 6" stroke-linecap="round"/>`+"\n",
		c.Y, c.Width, c.Y)
}

// jitterRNG derives a deterministic generator from a pebble ID.
func jitterRNG(id string) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(id))
	s := h.Sum64()
	return rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
}

// blobPath builds the blob outline in local coordinates centered at the
// origin. Four anchor points sit on the axes at radii scaled by 0.7 to 1.3;
// each quarter arc is a cubic bezier whose control distance wobbles around
// the circle constant.
func blobPath(r float64, rng *rand.Rand) string {
	var radii [4]float64
	for i := range radii {
		radii[i] = r * (0.7 + rng.Float64()*0.6)
	}
	var ks [4]float64
	for i := range ks {
		ks[i] = kCircle + (rng.Float64()*0.12 - 0.05)
	}

	// Anchors at angles 0, 90, 180, 270 with per-anchor radii.
	angles := [4]float64{0, math.Pi / 2, math.Pi, 3 * math.Pi / 2}
	var px, py, tx, ty [4]float64
	for i, a := range angles {
		px[i] = radii[i] * math.Cos(a)
		py[i] = radii[i] * math.Sin(a)
		tx[i] = -math.Sin(a)
		ty[i] = math.Cos(a)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "M %.2f %.2f", px[0], py[0])
	for i := range 4 {
		j := (i + 1) % 4
		c1x := px[i] + ks[i]*radii[i]*tx[i]
		c1y := py[i] + ks[i]*radii[i]*ty[i]
		c2x := px[j] - ks[i]*radii[j]*tx[j]
		c2y := py[j] - ks[i]*radii[j]*ty[j]
		fmt.Fprintf(&buf, " C %.2f %.2f %.2f %.2f %.2f %.2f", c1x, c1y, c2x, c2y, px[j], py[j])
	}
	buf.WriteString(" Z")
	return buf.String()
}
