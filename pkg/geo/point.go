package geo

import "math"

// Point2D represents a point in drawing space (the XY plane of the
// source CAD layout).
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Point3D represents a point in scene space. The ground plane is XZ
// and Y is up.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Origin is the zero point.
var Origin = Point2D{0, 0}

// Pt is a shorthand constructor for Point2D.
func Pt(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

// Pt3 is a shorthand constructor for Point3D.
func Pt3(x, y, z float64) Point3D {
	return Point3D{X: x, Y: y, Z: z}
}

// Add returns p + q.
func (p Point2D) Add(q Point2D) Point2D {
	return Point2D{p.X + q.X, p.Y + q.Y}
}

// Sub returns p - q.
func (p Point2D) Sub(q Point2D) Point2D {
	return Point2D{p.X - q.X, p.Y - q.Y}
}

// Scale returns p * s.
func (p Point2D) Scale(s float64) Point2D {
	return Point2D{p.X * s, p.Y * s}
}

// Length returns the Euclidean length of the vector.
func (p Point2D) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Distance returns the Euclidean distance from p to q.
func (p Point2D) Distance(q Point2D) float64 {
	return p.Sub(q).Length()
}

// Lerp returns the linear interpolation between p and q at t in [0,1].
func (p Point2D) Lerp(q Point2D, t float64) Point2D {
	return Point2D{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// AngleTo returns the angle from p to q relative to the positive X axis.
func (p Point2D) AngleTo(q Point2D) float64 {
	d := q.Sub(p)
	return math.Atan2(d.Y, d.X)
}

// MidPoint returns the midpoint between p and q.
func MidPoint(p, q Point2D) Point2D {
	return p.Lerp(q, 0.5)
}

// GroundDistance returns the distance between two scene points
// projected onto the XZ ground plane.
func GroundDistance(a, b Point3D) float64 {
	return math.Hypot(a.X-b.X, a.Z-b.Z)
}

// LerpScene returns the linear interpolation between scene points a and
// b at t in [0,1].
func LerpScene(a, b Point3D, t float64) Point3D {
	return Point3D{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
		Z: a.Z + (b.Z-a.Z)*t,
	}
}
