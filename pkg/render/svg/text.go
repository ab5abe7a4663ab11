package svg

import (
	"bytes"
	"encoding/xml"
)

const (
	fontHeightRatio  = 0.6
	fontWidthRatio   = 0.85
	fontCharWidth    = 0.55
	fontSizeMin      = 8.0
	fontSizeMax      = 22.0
	rotateSizeDampen = 0.75

	// Tiles smaller than this draw no label at all.
	minLabelWidth  = 18.0
	minLabelHeight = 12.0
)

// FontSize returns the font size for a horizontal label in the tile.
func FontSize(t TileBox) float64 { return fontSizeFor(t.W, t.H, len(t.Label)) }

// FontSizeRotated returns the font size for a vertical label in the tile.
func FontSizeRotated(t TileBox) float64 {
	return fontSizeFor(t.H*rotateSizeDampen, t.W, len(t.Label))
}

func fontSizeFor(availWidth, availHeight float64, textLen int) float64 {
	n := max(1, textLen)
	byHeight := availHeight * fontHeightRatio
	byWidth := (availWidth * fontWidthRatio) / (float64(n) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, min(byHeight, byWidth)))
}

// ShouldRotate reports whether a label reads better rotated 90 degrees,
// which is the case for tall narrow tiles with names that don't fit
// horizontally.
func ShouldRotate(t TileBox) bool {
	if t.H <= t.W {
		return false
	}
	horizSize := fontSizeFor(t.W, t.H, len(t.Label))
	rotSize := fontSizeFor(t.H, t.W, len(t.Label))
	if len(t.Label) > 10 {
		return rotSize*1.1 >= horizSize
	}
	return rotSize > horizSize
}

// FitsLabel reports whether the tile has room for any label at all.
func FitsLabel(t TileBox) bool {
	longest, shortest := t.W, t.H
	if t.H > t.W {
		longest, shortest = t.H, t.W
	}
	return longest >= minLabelWidth && shortest >= minLabelHeight
}

// TruncateLabel shortens the label to what fits in the tile at the
// computed font size, appending ".." when characters are dropped.
func TruncateLabel(t TileBox, rotated bool) string {
	label := t.Label
	availW := t.W * fontWidthRatio
	if rotated {
		availW = t.H * fontWidthRatio
	}

	fontSize := FontSize(t)
	if rotated {
		fontSize = FontSizeRotated(t)
	}

	charWidth := fontSize * fontCharWidth
	maxChars := int(availW / charWidth)
	if maxChars < 3 {
		maxChars = 3
	}

	if len(label) <= maxChars {
		return label
	}
	return label[:maxChars-2] + ".."
}

// EscapeXML escapes a string for embedding in SVG text or attributes.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
