package geom

import "math"

// A Box is an axis-aligned rectangle given by its top-left and bottom-right corners.
// Y grows downward, so TopLeft holds the minimum coordinates.
type Box struct {
	TopLeft     Point
	BottomRight Point
}

// NewBox returns the box spanned by two opposite corners given in any order.
func NewBox(a, b Point) Box {
	return Box{
		TopLeft:     Point{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)},
		BottomRight: Point{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)},
	}
}

// Square returns the square of half-side r centered on c.
func Square(c Point, r float64) Box {
	return Box{
		TopLeft:     Point{X: c.X - r, Y: c.Y - r},
		BottomRight: Point{X: c.X + r, Y: c.Y + r},
	}
}

// Center returns the center of b.
func (b Box) Center() Point {
	return Point{
		X: b.TopLeft.X + (b.BottomRight.X-b.TopLeft.X)/2,
		Y: b.TopLeft.Y + (b.BottomRight.Y-b.TopLeft.Y)/2,
	}
}

// Width returns the horizontal extent of b.
func (b Box) Width() float64 { return b.BottomRight.X - b.TopLeft.X }

// Height returns the vertical extent of b.
func (b Box) Height() float64 { return b.BottomRight.Y - b.TopLeft.Y }

// Contains reports whether p lies in b, edges included.
func (b Box) Contains(p Point) bool {
	return b.TopLeft.X <= p.X && p.X <= b.BottomRight.X &&
		b.TopLeft.Y <= p.Y && p.Y <= b.BottomRight.Y
}

// Intersects reports whether b and c overlap, touching edges included.
func (b Box) Intersects(c Box) bool {
	return b.BottomRight.X >= c.TopLeft.X && c.BottomRight.X >= b.TopLeft.X &&
		b.BottomRight.Y >= c.TopLeft.Y && c.BottomRight.Y >= b.TopLeft.Y
}

// DistSq returns the squared distance from p to the closest point of b,
// which is 0 when p is inside.
func (b Box) DistSq(p Point) float64 {
	dx := math.Max(0, math.Max(b.TopLeft.X-p.X, p.X-b.BottomRight.X))
	dy := math.Max(0, math.Max(b.TopLeft.Y-p.Y, p.Y-b.BottomRight.Y))
	return dx*dx + dy*dy
}

// Clamp returns the point of b closest to p.
func (b Box) Clamp(p Point) Point {
	return Point{
		X: math.Max(b.TopLeft.X, math.Min(p.X, b.BottomRight.X)),
		Y: math.Max(b.TopLeft.Y, math.Min(p.Y, b.BottomRight.Y)),
	}
}
