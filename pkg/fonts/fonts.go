// Package fonts resolves font faces for raster rendering.
//
// Faces come from two sources: system fonts located by family name via
// go-findfont, and the Go Regular typeface as a fallback that keeps
// rendering working on systems without any fonts installed.
package fonts

import (
	"os"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/matzehuels/mosaic/pkg/errors"
)

var (
	fallbackOnce sync.Once
	fallbackFont *truetype.Font
	fallbackErr  error
)

func fallback() (*truetype.Font, error) {
	fallbackOnce.Do(func() {
		fallbackFont, fallbackErr = truetype.Parse(goregular.TTF)
	})
	return fallbackFont, fallbackErr
}

// Default returns the fallback face (Go Regular) at the given point size.
func Default(points float64) (font.Face, error) {
	f, err := fallback()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parsing fallback font")
	}
	return newFace(f, points), nil
}

// Face returns a face for the named font family at the given point size.
// The family is resolved against the system font directories; an empty
// family selects the fallback face. Returns a FONT_NOT_FOUND error when
// the family cannot be located or parsed.
func Face(family string, points float64) (font.Face, error) {
	if family == "" {
		return Default(points)
	}

	path, err := findfont.Find(family + ".ttf")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFontNotFound, err, "locating font family %q", family)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFontNotFound, err, "reading font file %s", path)
	}

	f, err := truetype.Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFontNotFound, err, "parsing font file %s", path)
	}
	return newFace(f, points), nil
}

func newFace(f *truetype.Font, points float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{
		Size:    points,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
