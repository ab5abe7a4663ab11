package pipeline

import (
	"bytes"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/layoutio"
	"github.com/matzehuels/mosaic/pkg/render/dot"
	"github.com/matzehuels/mosaic/pkg/render/raster"
	"github.com/matzehuels/mosaic/pkg/render/svg"
	"github.com/matzehuels/mosaic/pkg/render/term"
	"github.com/matzehuels/mosaic/pkg/tree"
	"github.com/matzehuels/mosaic/pkg/treemap"
)

// renderArtifacts generates output in every requested format. Options
// must already be validated; the style and palette names are resolved
// here exactly once and shared across formats.
func renderArtifacts(l *treemap.Layout, root *tree.Node, opts Options) (map[string][]byte, error) {
	palette, err := treemap.PaletteByName(opts.Palette)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPalette, err, "loading palette %q", opts.Palette)
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = svg.Render(l, svgOptions(palette, opts)...)
		case FormatPNG:
			data, err = raster.Render(l, rasterOptions(palette, opts)...)
		case FormatDOT:
			if root == nil {
				return nil, errors.New(errors.ErrCodeInvalidInput, "dot output requires the document tree")
			}
			data = []byte(dot.ToDOT(root, dot.Options{Detailed: opts.Detailed}))
		case FormatTXT:
			data = []byte(term.Render(l, termOptions(palette, opts)...))
		case FormatJSON:
			var buf bytes.Buffer
			if err = layoutio.WriteJSON(l, &buf); err == nil {
				data = buf.Bytes()
			}
		default:
			return nil, ValidateFormat(format)
		}

		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeRenderFailure, err, "rendering %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func svgOptions(palette *treemap.Palette, opts Options) []svg.Option {
	svgOpts := []svg.Option{svg.WithPalette(palette)}
	if style, ok := svg.StyleByName(opts.Style); ok {
		svgOpts = append(svgOpts, svg.WithStyle(style))
	}
	if opts.Title != "" {
		svgOpts = append(svgOpts, svg.WithTitle(opts.Title))
	}
	if opts.Frames {
		svgOpts = append(svgOpts, svg.WithFrames())
	}
	return svgOpts
}

func rasterOptions(palette *treemap.Palette, opts Options) []raster.Option {
	rasterOpts := []raster.Option{
		raster.WithPalette(palette),
		raster.WithScale(opts.Scale),
	}
	if opts.Title != "" {
		rasterOpts = append(rasterOpts, raster.WithTitle(opts.Title))
	}
	if opts.Font != "" {
		rasterOpts = append(rasterOpts, raster.WithFontFamily(opts.Font))
	}
	if opts.Frames {
		rasterOpts = append(rasterOpts, raster.WithFrames())
	}
	return rasterOpts
}

func termOptions(palette *treemap.Palette, opts Options) []term.Option {
	termOpts := []term.Option{
		term.WithPalette(palette),
		term.WithSize(opts.TermWidth, opts.TermHeight),
	}
	if opts.Title != "" {
		termOpts = append(termOpts, term.WithTitle(opts.Title))
	}
	return termOpts
}
