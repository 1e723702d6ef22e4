package styles

import (
	"bytes"
	"fmt"
)

const simpleFontStack = `'Helvetica Neue', Helvetica, Arial, sans-serif`

// Simple is a clean minimal style: exact circles for pebbles, crisp rounded
// squares for days, a standard sans-serif for text.
type Simple struct{}

func (Simple) Name() string { return "simple" }

func (Simple) RenderDefs(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "  <style>text { font-family: %s; }</style>\n", simpleFontStack)
}

func (Simple) RenderPebble(buf *bytes.Buffer, p Pebble) {
	fmt.Fprintf(buf, `  <circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>`+"\n",
		p.X, p.Y, p.R, p.Fill)
}

func (Simple) RenderDay(buf *bytes.Buffer, d Day) {
	stroke := regularStroke
	if d.Weekend {
		stroke = weekendStroke
	}
	rx := d.Size * cornerRatio
	fmt.Fprintf(buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.2f" fill="none" stroke="#000" stroke-width="%.1f"/>`+"\n",
		d.X, d.Y, d.Size, d.Size, rx, stroke)

	weight, style := fontAttrs(d.Emphasis)
	tx := d.X + d.Size*textMargin
	ty := d.Y + d.Size - d.Size*textMargin
	fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" font-size="%.1f" font-weight="%s" font-style="%s">%s</text>`+"\n",
		tx, ty, d.Size*0.32, weight, style, d.Label)
}

func (Simple) RenderLabel(buf *bytes.Buffer, l Label) {
	anchor := l.Anchor
	if anchor == "" {
		anchor = "start"
	}
	fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" font-size="%.1f" text-anchor="%s">%s</text>`+"\n",
		l.X, l.Y, l.Size, anchor, l.Text)
}

func (Simple) RenderCutLine(buf *bytes.Buffer, c CutLine) {
	fmt.Fprintf(buf, `  <line x1="0" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#999" stroke-width="0.4" stroke-dasharray="6 4"/>`+"\n",
		c.Y, c.Width, c.Y)
}
