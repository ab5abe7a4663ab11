package treemap

// Rect is an axis-aligned rectangle. All coordinates are in user units
// (typically pixels in SVG), with the origin at the top left and Y
// increasing downward.
type Rect struct {
	X, Y float64
	W, H float64
}

// Area returns the rectangle's area.
func (r Rect) Area() float64 { return r.W * r.H }

// Empty reports whether the rectangle has zero area.
func (r Rect) Empty() bool { return r.W == 0 || r.H == 0 }

// CenterX returns the horizontal center point of the rectangle.
func (r Rect) CenterX() float64 { return r.X + r.W/2 }

// CenterY returns the vertical center point of the rectangle.
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Axis selects the direction a rectangle is divided in.
type Axis int

const (
	// AxisX divides the width: children are laid out left to right.
	AxisX Axis = iota
	// AxisY divides the height: children are laid out top to bottom.
	AxisY
)

// Flip returns the opposite axis. Slice-and-dice layouts flip the axis at
// every recursion depth.
func (a Axis) Flip() Axis {
	if a == AxisX {
		return AxisY
	}
	return AxisX
}

// String returns "x" or "y".
func (a Axis) String() string {
	if a == AxisX {
		return "x"
	}
	return "y"
}
