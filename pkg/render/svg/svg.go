// Package svg renders treemap layouts as standalone SVG documents.
//
// The sink walks a [treemap.Layout] and emits one rectangle per leaf
// tile, colored by a [treemap.Palette], with labels sized and truncated
// to fit. Internal-node frames and a title banner are optional. Output
// is a complete SVG document ready to write to disk or embed.
package svg

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/mosaic/pkg/treemap"
)

const titleBand = 32.0

// Option customizes SVG rendering.
type Option func(*renderer)

type renderer struct {
	style   Style
	palette *treemap.Palette
	title   string
	frames  bool
}

// WithStyle selects the visual style. Defaults to [Flat].
func WithStyle(s Style) Option { return func(r *renderer) { r.style = s } }

// WithPalette selects the tile color palette. Defaults to the treemap
// package's default palette.
func WithPalette(p *treemap.Palette) Option { return func(r *renderer) { r.palette = p } }

// WithTitle draws a title banner above the map.
func WithTitle(title string) Option { return func(r *renderer) { r.title = title } }

// WithFrames outlines internal-node rectangles so the hierarchy's
// grouping stays visible between leaf tiles.
func WithFrames() Option { return func(r *renderer) { r.frames = true } }

// Render produces a complete SVG document for the layout.
// Zero-area tiles are skipped; labels are drawn only where they fit.
func Render(l *treemap.Layout, opts ...Option) []byte {
	r := newRenderer(opts...)

	width := l.Bounds.W
	height := l.Bounds.H
	offsetY := 0.0
	if r.title != "" {
		height += titleBand
		offsetY = titleBand
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf,
		"<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 0 %.1f %.1f\" width=\"%.0f\" height=\"%.0f\">\n",
		width, height, width, height)

	r.style.RenderDefs(&buf)

	if r.title != "" {
		fmt.Fprintf(&buf,
			"  <text class=\"title\" x=\"%.2f\" y=\"%.2f\" font-size=\"18\" font-family=\"sans-serif\" font-weight=\"bold\" text-anchor=\"middle\" dominant-baseline=\"central\">%s</text>\n",
			width/2, titleBand/2, EscapeXML(r.title))
	}

	for _, t := range l.Tiles {
		if !t.Leaf || t.Rect.Empty() {
			continue
		}
		r.style.RenderTile(&buf, r.box(t, offsetY))
	}

	if r.frames {
		for _, t := range l.Tiles {
			if t.Leaf || t.Rect.Empty() || t.Depth == 0 {
				continue
			}
			r.style.RenderFrame(&buf, r.box(t, offsetY))
		}
	}

	for _, t := range l.Tiles {
		if !t.Leaf || t.Rect.Empty() {
			continue
		}
		box := r.box(t, offsetY)
		if box.Label == "" || !FitsLabel(box) {
			continue
		}
		r.style.RenderLabel(&buf, box)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newRenderer(opts ...Option) renderer {
	r := renderer{style: Flat{}}
	for _, opt := range opts {
		opt(&r)
	}
	if r.palette == nil {
		p, err := treemap.PaletteByName(treemap.DefaultPalette)
		if err != nil {
			panic("svg: default palette missing: " + err.Error())
		}
		r.palette = p
	}
	return r
}

func (r *renderer) box(t treemap.Tile, offsetY float64) TileBox {
	return TileBox{
		Path:  t.Path,
		Label: t.Name,
		X:     t.Rect.X,
		Y:     t.Rect.Y + offsetY,
		W:     t.Rect.W,
		H:     t.Rect.H,
		CX:    t.Rect.CenterX(),
		CY:    t.Rect.CenterY() + offsetY,
		Fill:  r.palette.Hex(t),
		Depth: t.Depth,
	}
}
