package layoutio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/mosaic/pkg/treemap"
)

// FormatVersion is the version written into exported documents and the
// only version [ReadJSON] accepts.
const FormatVersion = 1

type document struct {
	Version int    `json:"version"`
	Bounds  rect   `json:"bounds"`
	Tiles   []tile `json:"tiles"`
}

type rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

type tile struct {
	Path   string  `json:"path"`
	Name   string  `json:"name,omitempty"`
	Rect   rect    `json:"rect"`
	Depth  int     `json:"depth,omitempty"`
	Index  int     `json:"index,omitempty"`
	Leaf   bool    `json:"leaf,omitempty"`
	Weight float64 `json:"weight"`
}

func fromRect(r treemap.Rect) rect {
	return rect{X: r.X, Y: r.Y, W: r.W, H: r.H}
}

func toRect(r rect) treemap.Rect {
	return treemap.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H}
}

// WriteJSON encodes a layout as JSON and writes it to w.
// The output includes the bounds and every tile in document order, with
// a version marker. It can be re-imported with [ReadJSON] for round-trip
// processing.
func WriteJSON(l *treemap.Layout, w io.Writer) error {
	out := document{
		Version: FormatVersion,
		Bounds:  fromRect(l.Bounds),
		Tiles:   make([]tile, len(l.Tiles)),
	}

	for i, t := range l.Tiles {
		out.Tiles[i] = tile{
			Path:   t.Path,
			Name:   t.Name,
			Rect:   fromRect(t.Rect),
			Depth:  t.Depth,
			Index:  t.Index,
			Leaf:   t.Leaf,
			Weight: t.Weight,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a layout to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(l *treemap.Layout, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(l, f)
}
