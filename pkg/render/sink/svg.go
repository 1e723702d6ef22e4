// Package sink serializes composed pages into output formats. RenderSVG is
// the primary sink; PDF and PNG are produced by converting its output.
package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/pebblecal/pkg/render/page"
	"github.com/matzehuels/pebblecal/pkg/render/styles"
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style styles.Style
}

func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// RenderSVG renders a page to a standalone SVG document.
func RenderSVG(p page.Page, opts ...SVGOption) []byte {
	r := svgRenderer{style: styles.Simple{}}
	for _, opt := range opts {
		opt(&r)
	}

	geo := p.Geometry
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		geo.PageWidth, geo.PageHeight, geo.PageWidth, geo.PageHeight)

	r.style.RenderDefs(&buf)
	fmt.Fprintf(&buf, `  <rect width="%.1f" height="%.1f" fill="#fff"/>`+"\n", geo.PageWidth, geo.PageHeight)

	renderTitle(&buf, &r, p)
	renderGrid(&buf, &r, p)
	renderPebbles(&buf, &r, p)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderTitle(buf *bytes.Buffer, r *svgRenderer, p page.Page) {
	geo := p.Geometry
	r.style.RenderLabel(buf, styles.Label{
		X:      geo.PageWidth / 2,
		Y:      geo.TitleY,
		Text:   p.Title,
		Size:   geo.TitleSize,
		Anchor: "middle",
	})
}

func renderGrid(buf *bytes.Buffer, r *svgRenderer, p page.Page) {
	geo := p.Geometry
	size, gap := geo.SquareSize()

	// Weekday header, centered over each column.
	for col, name := range p.WeekdayNames {
		x := geo.MarginX + float64(col)*(size+gap) + size/2
		r.style.RenderLabel(buf, styles.Label{
			X:      x,
			Y:      geo.GridTop - size*0.2,
			Text:   name,
			Size:   size * 0.22,
			Anchor: "middle",
		})
	}

	for row, week := range p.Weeks {
		y := geo.GridTop + float64(row)*(size+gap)
		for _, cell := range week {
			if cell.Blank {
				continue
			}
			r.style.RenderDay(buf, styles.Day{
				X:        geo.MarginX + float64(cell.Column)*(size+gap),
				Y:        y,
				Size:     size,
				Label:    fmt.Sprintf("%d", cell.Date.Day),
				Emphasis: cell.Emphasis,
				Weekend:  cell.Weekend,
			})
		}
	}

	if geo.CutLine {
		r.style.RenderCutLine(buf, styles.CutLine{
			Y:     geo.PebbleTop - size*0.4,
			Width: geo.PageWidth,
		})
	}
}

func renderPebbles(buf *bytes.Buffer, r *svgRenderer, p page.Page) {
	geo := p.Geometry
	originX := (geo.PageWidth - p.Canvas.Width) / 2

	for i, o := range p.Ornaments {
		// Placement coordinates grow upward, SVG grows downward.
		r.style.RenderPebble(buf, styles.Pebble{
			ID:       fmt.Sprintf("pebble-%02d-%02d", p.Month, i),
			X:        originX + o.X,
			Y:        geo.PebbleTop + (p.Canvas.Height - o.Y),
			R:        o.Radius,
			Rotation: o.Rotation,
			Fill:     o.Grey(),
		})
	}
}
