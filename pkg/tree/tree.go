package tree

import (
	"errors"
	"math"
)

var (
	// ErrInvalidWeight is returned by [Leaf] when the weight is negative,
	// NaN, or infinite. Weights express a share of area and must be finite
	// and non-negative.
	ErrInvalidWeight = errors.New("weight must be a finite non-negative number")

	// ErrNilChild is returned by [Branch] when one of the children is nil.
	ErrNilChild = errors.New("child node must not be nil")

	// ErrSharedNode is returned by [Node.Validate] when the same node
	// appears more than once in a tree. Shared nodes turn the tree into a
	// DAG and break the area accounting of layouts.
	ErrSharedNode = errors.New("node appears more than once in the tree")
)

// Node is a vertex in a weighted tree. A leaf carries its own weight; an
// internal node's effective weight is the sum of its children's weights,
// recomputed on every query rather than cached, so it can never go stale.
//
// Nodes are immutable after construction. Build them with [Leaf] and
// [Branch]; the zero value is a nameless, weightless leaf.
type Node struct {
	name     string
	weight   float64
	children []*Node
}

// Leaf constructs a terminal node with the given display name and weight.
// Returns ErrInvalidWeight if the weight is negative, NaN, or infinite.
// A negative zero weight is normalized to zero.
func Leaf(name string, weight float64) (*Node, error) {
	if weight < 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
		return nil, ErrInvalidWeight
	}
	if weight == 0 {
		// Normalizes -0 so Weight never reports a signed zero.
		return &Node{name: name}, nil
	}
	return &Node{name: name, weight: weight}, nil
}

// Branch constructs an internal node over the given children, preserving
// their order. Returns ErrNilChild if any child is nil. A branch with no
// children behaves like a zero-weight leaf.
//
// The children slice is copied; later changes to the argument do not
// affect the node.
func Branch(name string, children ...*Node) (*Node, error) {
	for _, c := range children {
		if c == nil {
			return nil, ErrNilChild
		}
	}
	n := &Node{name: name}
	if len(children) > 0 {
		n.children = make([]*Node, len(children))
		copy(n.children, children)
	}
	return n, nil
}

// Name returns the node's display name. It may be empty, in which case
// renderers draw no label.
func (n *Node) Name() string { return n.name }

// Weight returns the node's stored weight. For internal nodes this is
// always zero; use [Node.TotalWeight] for the effective layout weight.
func (n *Node) Weight() float64 { return n.weight }

// Children returns the node's children in document order.
// The returned slice should not be modified - use it as a read-only view.
func (n *Node) Children() []*Node { return n.children }

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.children) == 0 }

// TotalWeight returns the sum of leaf weights in the subtree rooted at n.
// For a leaf this is its own weight. The sum is recomputed on every call.
func (n *Node) TotalWeight() float64 {
	if n.IsLeaf() {
		return n.weight
	}
	var total float64
	for _, c := range n.children {
		total += c.TotalWeight()
	}
	return total
}

// CountLeaves returns the number of leaves in the subtree rooted at n.
func (n *Node) CountLeaves() int {
	if n.IsLeaf() {
		return 1
	}
	var count int
	for _, c := range n.children {
		count += c.CountLeaves()
	}
	return count
}

// CountNodes returns the number of nodes in the subtree rooted at n,
// including n itself.
func (n *Node) CountNodes() int {
	count := 1
	for _, c := range n.children {
		count += c.CountNodes()
	}
	return count
}

// Depth returns the number of levels below n: zero for a leaf, one for a
// node whose children are all leaves, and so on.
func (n *Node) Depth() int {
	var max int
	for _, c := range n.children {
		if d := c.Depth() + 1; d > max {
			max = d
		}
	}
	return max
}

// Walk visits the subtree rooted at n in pre-order (each node before its
// children, children in document order). The callback receives the node
// and its depth relative to n (zero for n itself). Returning false prunes
// the node's children from the traversal.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(0, fn)
}

func (n *Node) walk(depth int, fn func(*Node, int) bool) {
	if !fn(n, depth) {
		return
	}
	for _, c := range n.children {
		c.walk(depth+1, fn)
	}
}

// Validate checks structural integrity of the subtree rooted at n and
// returns nil if valid. It verifies that no node object appears twice
// (which would make the structure a DAG rather than a tree) and that all
// stored weights are finite and non-negative.
//
// Constructor-built trees can only fail validation through node sharing.
// Returns ErrSharedNode, ErrInvalidWeight, or ErrNilChild.
func (n *Node) Validate() error {
	seen := make(map[*Node]struct{}, n.CountNodes())
	var check func(node *Node) error
	check = func(node *Node) error {
		if _, dup := seen[node]; dup {
			return ErrSharedNode
		}
		seen[node] = struct{}{}
		if node.weight < 0 || math.IsNaN(node.weight) || math.IsInf(node.weight, 0) {
			return ErrInvalidWeight
		}
		for _, c := range node.children {
			if c == nil {
				return ErrNilChild
			}
			if err := check(c); err != nil {
				return err
			}
		}
		return nil
	}
	return check(n)
}
