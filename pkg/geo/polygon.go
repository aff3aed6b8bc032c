package geo

import "math"

// Polygon is a closed polygon defined by its vertices in order.
// Winding order is not significant; all predicates accept either.
type Polygon struct {
	Vertices []Point2D
}

// NewPolygon creates a polygon from a list of vertices.
func NewPolygon(pts ...Point2D) Polygon {
	return Polygon{Vertices: pts}
}

// Len returns the number of vertices.
func (p Polygon) Len() int {
	return len(p.Vertices)
}

// IsDegenerate returns true if the polygon has fewer than 3 vertices.
func (p Polygon) IsDegenerate() bool {
	return len(p.Vertices) < 3
}

// SignedArea returns the signed area using the shoelace formula.
// Positive for counterclockwise winding, negative for clockwise.
func (p Polygon) SignedArea() float64 {
	n := len(p.Vertices)
	if n < 3 {
		return 0
	}
	area := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += p.Vertices[i].X * p.Vertices[j].Y
		area -= p.Vertices[j].X * p.Vertices[i].Y
	}
	return area / 2
}

// Area returns the unsigned area of the polygon.
func (p Polygon) Area() float64 {
	return math.Abs(p.SignedArea())
}

// Centroid returns the centroid of the polygon.
func (p Polygon) Centroid() Point2D {
	n := len(p.Vertices)
	if n == 0 {
		return Point2D{}
	}
	a := p.SignedArea()
	if n < 3 || math.Abs(a) < 1e-12 {
		// Degenerate: return vertex average.
		sum := Point2D{}
		for _, v := range p.Vertices {
			sum = sum.Add(v)
		}
		return sum.Scale(1.0 / float64(n))
	}
	cx, cy := 0.0, 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := p.Vertices[i].X*p.Vertices[j].Y - p.Vertices[j].X*p.Vertices[i].Y
		cx += (p.Vertices[i].X + p.Vertices[j].X) * cross
		cy += (p.Vertices[i].Y + p.Vertices[j].Y) * cross
	}
	f := 1.0 / (6.0 * a)
	return Point2D{cx * f, cy * f}
}

// BoundingRect returns the axis-aligned bounding rectangle.
func (p Polygon) BoundingRect() Rect {
	if len(p.Vertices) == 0 {
		return Rect{}
	}
	r := Rect{Min: p.Vertices[0], Max: p.Vertices[0]}
	for _, v := range p.Vertices[1:] {
		if v.X < r.Min.X {
			r.Min.X = v.X
		}
		if v.Y < r.Min.Y {
			r.Min.Y = v.Y
		}
		if v.X > r.Max.X {
			r.Max.X = v.X
		}
		if v.Y > r.Max.Y {
			r.Max.Y = v.Y
		}
	}
	return r
}

// Contains reports whether the point is inside the polygon using the
// crossing-number rule. The result is independent of winding order.
// Edge convention: each edge is half-open, so a point exactly on the
// lower/left boundary of a cellwise-convex polygon counts as inside and
// the upper/right boundary counts as outside. The same input always
// yields the same answer.
func (p Polygon) Contains(pt Point2D) bool {
	n := len(p.Vertices)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		vi := p.Vertices[i]
		vj := p.Vertices[j]
		if (vi.Y > pt.Y) != (vj.Y > pt.Y) &&
			pt.X < (vj.X-vi.X)*(pt.Y-vi.Y)/(vj.Y-vi.Y)+vi.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

// Perimeter returns the total perimeter length.
func (p Polygon) Perimeter() float64 {
	n := len(p.Vertices)
	if n < 2 {
		return 0
	}
	total := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		total += p.Vertices[i].Distance(p.Vertices[j])
	}
	return total
}
