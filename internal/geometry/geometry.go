// Package geometry holds the rectangle value type used for on-screen
// placement of the bar and its components.
package geometry

// Geometry is a rectangle in window coordinates.
type Geometry struct {
	X      int16
	Y      int16
	Width  uint16
	Height uint16
}

// New builds a Geometry without struct literal syntax.
func New(x, y int16, width, height uint16) Geometry {
	return Geometry{X: x, Y: y, Width: width, Height: height}
}

// Empty reports whether the rectangle covers no pixels.
func (g Geometry) Empty() bool {
	return g.Width == 0 || g.Height == 0
}

// End returns the first x coordinate right of the rectangle.
func (g Geometry) End() int {
	return int(g.X) + int(g.Width)
}

// ContainsX reports whether x lies inside the horizontal extent.
func (g Geometry) ContainsX(x int16) bool {
	return !g.Empty() && int(x) >= int(g.X) && int(x) < g.End()
}
