package geo

// Rect is an axis-aligned rectangle in drawing space.
type Rect struct {
	Min Point2D `json:"min"`
	Max Point2D `json:"max"`
}

// NewRect creates a rectangle from two corner points, normalizing the
// corner order.
func NewRect(a, b Point2D) Rect {
	r := Rect{Min: a, Max: b}
	if r.Min.X > r.Max.X {
		r.Min.X, r.Max.X = r.Max.X, r.Min.X
	}
	if r.Min.Y > r.Max.Y {
		r.Min.Y, r.Max.Y = r.Max.Y, r.Min.Y
	}
	return r
}

// Width returns the extent along X.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the extent along Y.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point2D {
	return MidPoint(r.Min, r.Max)
}

// IsEmpty returns true if the rectangle has zero or negative extent on
// either axis.
func (r Rect) IsEmpty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// Contains reports whether the point lies inside the rectangle,
// boundary included.
func (r Rect) Contains(p Point2D) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X &&
		p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Expand returns the rectangle grown by pad units on every side.
// Negative pad shrinks it.
func (r Rect) Expand(pad float64) Rect {
	return Rect{
		Min: Pt(r.Min.X-pad, r.Min.Y-pad),
		Max: Pt(r.Max.X+pad, r.Max.Y+pad),
	}
}
