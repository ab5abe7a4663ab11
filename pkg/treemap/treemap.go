package treemap

import (
	"errors"
	"math"

	"github.com/matzehuels/mosaic/pkg/tree"
)

var (
	// ErrNilRoot is returned by [Compute] when the root node is nil.
	ErrNilRoot = errors.New("root node must not be nil")

	// ErrZeroTotal is returned by [Compute] when the root's total weight
	// is zero. A weightless tree has no defined partition of the bounds.
	ErrZeroTotal = errors.New("tree has zero total weight")

	// ErrInvalidBounds is returned by [Compute] when the bounds have a
	// non-positive or non-finite extent.
	ErrInvalidBounds = errors.New("bounds must have positive finite extent")
)

// Tile is one rectangle of a computed layout. Leaf tiles form the draw
// command sequence consumed by render sinks; internal tiles carry the
// enclosing rectangles of their subtrees for frames, headers, and
// navigation.
type Tile struct {
	Path   string  // slash-joined ancestry, starting with the root name
	Name   string  // node display name, possibly empty
	Rect   Rect    // assigned rectangle
	Depth  int     // 0 for the root tile
	Index  int     // position among siblings, 0 for the root tile
	Leaf   bool    // terminal tile: drawn by sinks
	Weight float64 // effective weight (subtree total for internal tiles)
}

// Layout is the result of laying out one tree inside a bounding
// rectangle. Tiles are in document (pre-)order: each node's tile appears
// before its children's.
type Layout struct {
	Bounds Rect
	Tiles  []Tile
}

// Leaves returns the terminal tiles in document order. These are the
// draw commands of the layout: one rectangle and label per leaf.
func (l *Layout) Leaves() []Tile {
	var leaves []Tile
	for _, t := range l.Tiles {
		if t.Leaf {
			leaves = append(leaves, t)
		}
	}
	return leaves
}

// MaxDepth returns the deepest tile depth in the layout, or 0 when the
// layout holds a single tile.
func (l *Layout) MaxDepth() int {
	var max int
	for _, t := range l.Tiles {
		if t.Depth > max {
			max = t.Depth
		}
	}
	return max
}

// config collects layout options. The zero value is usable: split on
// AxisX first, no depth limit.
type config struct {
	axis     Axis
	maxDepth int
}

// Option customizes a layout computation.
type Option func(*config)

// WithAxis sets the axis divided at the root. Children of the root run
// left to right under AxisX (the default) and top to bottom under AxisY.
func WithAxis(a Axis) Option {
	return func(c *config) { c.axis = a }
}

// WithMaxDepth limits recursion: nodes at the given depth become terminal
// tiles carrying their subtree's aggregate weight. Zero means unlimited.
func WithMaxDepth(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxDepth = n
		}
	}
}

// Compute lays out the tree rooted at root inside bounds using the
// slice-and-dice strategy: each node's rectangle is divided among its
// children along the current axis in proportion to their share of the
// node's total weight, and each child is laid out with the flipped axis.
//
// Sub-rectangle boundaries derive from cumulative weight fractions, so
// children tile their parent exactly and the leaf areas sum to the
// bounds area within floating-point tolerance. A zero-weight subtree
// receives a zero-area tile, which sinks skip.
//
// Returns ErrNilRoot, ErrInvalidBounds, or ErrZeroTotal. The tree is not
// modified; Compute is a pure function and safe for concurrent use on a
// shared tree.
func Compute(root *tree.Node, bounds Rect, opts ...Option) (*Layout, error) {
	if root == nil {
		return nil, ErrNilRoot
	}
	if !validExtent(bounds.W) || !validExtent(bounds.H) ||
		math.IsNaN(bounds.X) || math.IsInf(bounds.X, 0) ||
		math.IsNaN(bounds.Y) || math.IsInf(bounds.Y, 0) {
		return nil, ErrInvalidBounds
	}
	if root.TotalWeight() == 0 {
		return nil, ErrZeroTotal
	}

	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}

	l := &Layout{Bounds: bounds, Tiles: make([]Tile, 0, root.CountNodes())}
	l.place(&cfg, root, root.Name(), bounds, cfg.axis, 0, 0)
	return l, nil
}

func validExtent(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// place assigns r to node n and recurses into its children along axis.
func (l *Layout) place(cfg *config, n *tree.Node, path string, r Rect, axis Axis, depth, index int) {
	terminal := n.IsLeaf() || (cfg.maxDepth > 0 && depth >= cfg.maxDepth)

	weight := n.Weight()
	if !n.IsLeaf() {
		weight = n.TotalWeight()
	}

	l.Tiles = append(l.Tiles, Tile{
		Path:   path,
		Name:   n.Name(),
		Rect:   r,
		Depth:  depth,
		Index:  index,
		Leaf:   terminal,
		Weight: weight,
	})
	if terminal {
		return
	}

	children := n.Children()
	total := n.TotalWeight()

	// A weightless subtree cannot be partitioned proportionally; every
	// descendant collapses onto the (already zero-area) anchor rectangle.
	if total == 0 {
		anchor := Rect{X: r.X, Y: r.Y}
		for i, c := range children {
			l.place(cfg, c, childPath(path, c.Name()), anchor, axis.Flip(), depth+1, i)
		}
		return
	}

	var cum float64
	for i, c := range children {
		before := cum / total
		cum += c.TotalWeight()
		after := cum / total

		var sub Rect
		if axis == AxisX {
			x0 := r.X + r.W*before
			x1 := r.X + r.W*after
			sub = Rect{X: x0, Y: r.Y, W: x1 - x0, H: r.H}
		} else {
			y0 := r.Y + r.H*before
			y1 := r.Y + r.H*after
			sub = Rect{X: r.X, Y: y0, W: r.W, H: y1 - y0}
		}
		l.place(cfg, c, childPath(path, c.Name()), sub, axis.Flip(), depth+1, i)
	}
}

func childPath(parent, name string) string {
	return parent + "/" + name
}
