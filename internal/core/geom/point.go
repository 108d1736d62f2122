// Package geom holds the 2D value types shared by the field map: points,
// polygons, path segments and the point-in-polygon test.
//
// The same types are used for world space (meters) and screen space
// (pixels); which one a value lives in is decided by the caller.
package geom

import "math"

// Point represents a 2D point or vector. Values are immutable in practice:
// every operation returns a new Point.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p * k.
func (p Point) Scale(k float64) Point { return Point{p.X * k, p.Y * k} }

// Lerp returns p + (q-p)*t. t is not clamped, so values outside [0, 1]
// extrapolate along the line through p and q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{p.X + (q.X-p.X)*t, p.Y + (q.Y-p.Y)*t}
}

// Len returns the distance from the origin.
func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }

// Dist returns the distance between p and q.
func Dist(p, q Point) float64 { return q.Sub(p).Len() }

// Unit returns p scaled to length 1. A zero-length vector yields the zero
// vector instead of NaN components.
func (p Point) Unit() Point {
	l := p.Len()
	if l == 0 {
		return Point{}
	}
	return Point{p.X / l, p.Y / l}
}

// Rotate rotates p counter-clockwise (in a y-up frame) by angle radians
// around the origin.
func (p Point) Rotate(angle float64) Point {
	sin, cos := math.Sincos(angle)
	return Point{p.X*cos - p.Y*sin, p.X*sin + p.Y*cos}
}

// Direction returns the unit vector (sin(angle), cos(angle)). Angle 0 points
// along +Y and positive angles turn toward +X.
func Direction(angle float64) Point {
	sin, cos := math.Sincos(angle)
	return Point{sin, cos}
}
