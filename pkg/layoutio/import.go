package layoutio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/mosaic/pkg/treemap"
)

// ErrUnsupportedVersion is returned by [ReadJSON] when a document's
// version field does not match [FormatVersion].
var ErrUnsupportedVersion = errors.New("unsupported layout document version")

// ReadJSON decodes a JSON layout document from r.
//
// The input must be a JSON object with "version", "bounds", and "tiles"
// fields as produced by [WriteJSON]. ReadJSON returns an error if:
//   - The JSON is malformed or invalid
//   - The version field is missing or not [FormatVersion]
//
// Version mismatches wrap [ErrUnsupportedVersion]; use errors.Is to
// check for them.
//
// The returned layout is independent of r and can be used safely after
// ReadJSON returns. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*treemap.Layout, error) {
	var data document
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if data.Version != FormatVersion {
		return nil, fmt.Errorf("version %d: %w", data.Version, ErrUnsupportedVersion)
	}

	l := &treemap.Layout{
		Bounds: toRect(data.Bounds),
		Tiles:  make([]treemap.Tile, len(data.Tiles)),
	}
	for i, t := range data.Tiles {
		l.Tiles[i] = treemap.Tile{
			Path:   t.Path,
			Name:   t.Name,
			Rect:   toRect(t.Rect),
			Depth:  t.Depth,
			Index:  t.Index,
			Leaf:   t.Leaf,
			Weight: t.Weight,
		}
	}
	return l, nil
}

// ImportJSON reads a JSON file at path and returns the decoded layout.
//
// ImportJSON opens the file, decodes it using [ReadJSON], and closes the
// file. If the file cannot be opened, or if decoding fails, ImportJSON
// returns an error describing the failure. The error wraps the underlying
// cause with the file path for context.
func ImportJSON(path string) (*treemap.Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
