// Package raster renders treemap layouts directly to PNG.
//
// Drawing happens natively on a gg canvas instead of converting SVG with
// an external tool, so PNG export works without librsvg or any other
// system dependency. Output is supersampled and downscaled for clean
// edges and text.
package raster

import (
	"bytes"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/fonts"
	"github.com/matzehuels/mosaic/pkg/treemap"
)

const (
	titleBand     = 32.0
	labelPts      = 13.0
	titlePts      = 18.0
	minLabelSpace = 16.0
)

// Option customizes PNG rendering.
type Option func(*renderer)

type renderer struct {
	palette *treemap.Palette
	title   string
	family  string
	scale   int
	frames  bool
}

// WithPalette selects the tile color palette.
func WithPalette(p *treemap.Palette) Option { return func(r *renderer) { r.palette = p } }

// WithTitle draws a title banner above the map.
func WithTitle(title string) Option { return func(r *renderer) { r.title = title } }

// WithFontFamily selects a system font family for labels. An empty
// family uses the built-in fallback face.
func WithFontFamily(family string) Option { return func(r *renderer) { r.family = family } }

// WithScale sets the supersampling factor (default 2). The canvas is
// drawn at scale times the layout size and downscaled to the target.
func WithScale(scale int) Option { return func(r *renderer) { r.scale = scale } }

// WithFrames outlines internal-node rectangles.
func WithFrames() Option { return func(r *renderer) { r.frames = true } }

// Render draws the layout to a PNG image. Zero-area tiles are skipped;
// labels are drawn only where the measured text fits.
func Render(l *treemap.Layout, opts ...Option) ([]byte, error) {
	r := renderer{scale: 2}
	for _, opt := range opts {
		opt(&r)
	}
	if r.palette == nil {
		p, err := treemap.PaletteByName(treemap.DefaultPalette)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "loading default palette")
		}
		r.palette = p
	}
	if err := errors.ValidateScale(r.scale); err != nil {
		return nil, err
	}

	s := float64(r.scale)
	offsetY := 0.0
	if r.title != "" {
		offsetY = titleBand
	}

	targetW := int(math.Ceil(l.Bounds.W))
	targetH := int(math.Ceil(l.Bounds.H + offsetY))
	dc := gg.NewContext(targetW*r.scale, targetH*r.scale)

	labelFace, err := fonts.Face(r.family, labelPts*s)
	if err != nil {
		return nil, err
	}
	titleFace, err := fonts.Face(r.family, titlePts*s)
	if err != nil {
		return nil, err
	}

	dc.SetHexColor("#ffffff")
	dc.Clear()

	for _, t := range l.Tiles {
		if !t.Leaf || t.Rect.Empty() {
			continue
		}
		x := (t.Rect.X - l.Bounds.X) * s
		y := (t.Rect.Y-l.Bounds.Y)*s + offsetY*s
		dc.DrawRectangle(x, y, t.Rect.W*s, t.Rect.H*s)
		dc.SetHexColor(r.palette.Hex(t))
		dc.FillPreserve()
		dc.SetHexColor("#333333")
		dc.SetLineWidth(s)
		dc.Stroke()
	}

	if r.frames {
		dc.SetLineWidth(1.5 * s)
		for _, t := range l.Tiles {
			if t.Leaf || t.Rect.Empty() || t.Depth == 0 {
				continue
			}
			x := (t.Rect.X - l.Bounds.X) * s
			y := (t.Rect.Y-l.Bounds.Y)*s + offsetY*s
			dc.DrawRectangle(x, y, t.Rect.W*s, t.Rect.H*s)
			dc.SetHexColor("#333333")
			dc.Stroke()
		}
	}

	dc.SetFontFace(labelFace)
	dc.SetHexColor("#111111")
	for _, t := range l.Tiles {
		if !t.Leaf || t.Rect.Empty() || t.Name == "" {
			continue
		}
		w, h := t.Rect.W*s, t.Rect.H*s
		if w < minLabelSpace*s || h < minLabelSpace*s {
			continue
		}
		label := fitLabel(dc, t.Name, w-6*s)
		if label == "" {
			continue
		}
		cx := (t.Rect.CenterX()-l.Bounds.X)*s
		cy := (t.Rect.CenterY()-l.Bounds.Y)*s + offsetY*s
		dc.DrawStringAnchored(label, cx, cy, 0.5, 0.5)
	}

	if r.title != "" {
		dc.SetFontFace(titleFace)
		dc.SetHexColor("#111111")
		dc.DrawStringAnchored(r.title, float64(targetW)*s/2, titleBand*s/2, 0.5, 0.5)
	}

	img := dc.Image()
	if r.scale > 1 {
		img = imaging.Resize(img, targetW, targetH, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailure, err, "encoding PNG")
	}
	return buf.Bytes(), nil
}

// fitLabel truncates the label until its measured width fits, returning
// an empty string when not even a shortened form fits.
func fitLabel(dc *gg.Context, label string, avail float64) string {
	if avail <= 0 {
		return ""
	}
	if w, _ := dc.MeasureString(label); w <= avail {
		return label
	}
	runes := []rune(label)
	for len(runes) > 1 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + ".."
		if w, _ := dc.MeasureString(candidate); w <= avail {
			return candidate
		}
	}
	return ""
}
