package input

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/tree"
)

// draft is a mutable node used while assembling trees from flat inputs.
// The tree package constructors are immutable, so path and outline
// decoding build drafts first and convert once the shape is final.
type draft struct {
	name     string
	weight   float64
	leaf     bool
	children []*draft
	byName   map[string]*draft
}

func (d *draft) child(name string) *draft {
	if c, ok := d.byName[name]; ok {
		return c
	}
	c := &draft{name: name}
	if d.byName == nil {
		d.byName = make(map[string]*draft)
	}
	d.byName[name] = c
	d.children = append(d.children, c)
	return c
}

// build converts the draft into immutable tree nodes. Weight errors from
// the tree constructors pass through unchanged.
func (d *draft) build() (*tree.Node, error) {
	if d.leaf {
		return tree.Leaf(d.name, d.weight)
	}
	children := make([]*tree.Node, len(d.children))
	for i, c := range d.children {
		n, err := c.build()
		if err != nil {
			return nil, err
		}
		children[i] = n
	}
	return tree.Branch(d.name, children...)
}

// decodeCSV reads path,weight rows. Paths are slash-separated leaf
// locations; intermediate nodes are created on first mention and keep
// that order. All rows must share one root segment.
func decodeCSV(r io.Reader) (*tree.Node, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true

	var root *draft
	row := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeMalformedInput, err, "decoding csv document")
		}
		row++

		path := strings.TrimSpace(rec[0])
		if row == 1 && strings.EqualFold(path, "path") {
			continue // header row
		}
		weight, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeMalformedInput, err, "csv row %d: weight %q", row, rec[1])
		}

		if err := insertPath(&root, path, weight, row); err != nil {
			return nil, err
		}
	}

	if root == nil {
		return nil, errors.New(errors.ErrCodeMalformedInput, "csv document has no data rows")
	}
	return root.build()
}

func insertPath(root **draft, path string, weight float64, row int) error {
	segments := strings.Split(path, "/")
	for _, s := range segments {
		if strings.TrimSpace(s) == "" {
			return errors.New(errors.ErrCodeInvalidInput, "csv row %d: path %q has an empty segment", row, path)
		}
	}

	if *root == nil {
		*root = &draft{name: segments[0]}
	} else if (*root).name != segments[0] {
		return errors.New(errors.ErrCodeInvalidInput,
			"csv row %d: root %q conflicts with earlier root %q", row, segments[0], (*root).name)
	}

	node := *root
	for _, s := range segments[1:] {
		if node.leaf {
			return errors.New(errors.ErrCodeInvalidInput,
				"csv row %d: path %q passes through leaf %q", row, path, node.name)
		}
		node = node.child(s)
	}
	if node.leaf {
		return errors.New(errors.ErrCodeInvalidInput, "csv row %d: duplicate path %q", row, path)
	}
	if len(node.children) > 0 {
		return errors.New(errors.ErrCodeInvalidInput,
			"csv row %d: path %q is already an internal node", row, path)
	}
	node.leaf = true
	node.weight = weight
	return nil
}
