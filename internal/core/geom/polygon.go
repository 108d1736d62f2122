package geom

import "math"

// Polygon is an ordered ring of vertices. The last vertex implicitly
// connects back to the first for filling and hit testing.
type Polygon []Point

// RegularPolygon returns sides points evenly spaced by 2π/sides on a circle
// of the given radius around center. The first point sits at offset radians
// from the positive X axis. Every concentric ring of the reef is produced by
// this one generator with a different radius.
func RegularPolygon(center Point, radius float64, sides int, offset float64) Polygon {
	if sides <= 0 {
		return nil
	}
	step := 2 * math.Pi / float64(sides)
	points := make(Polygon, sides)
	for i := range points {
		angle := step*float64(i) + offset
		sin, cos := math.Sincos(angle)
		points[i] = Point{center.X + cos*radius, center.Y + sin*radius}
	}
	return points
}

// Map returns a new polygon with f applied to every vertex.
func (poly Polygon) Map(f func(Point) Point) Polygon {
	out := make(Polygon, len(poly))
	for i, p := range poly {
		out[i] = f(p)
	}
	return out
}

// Centroid returns the vertex average. It is the true centroid for the
// regular polygons and triangles this package works with.
func (poly Polygon) Centroid() Point {
	if len(poly) == 0 {
		return Point{}
	}
	var sum Point
	for _, p := range poly {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float64(len(poly)))
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min, Max Point
}

// Width returns Max.X - Min.X.
func (b Bounds) Width() float64 { return b.Max.X - b.Min.X }

// Height returns Max.Y - Min.Y.
func (b Bounds) Height() float64 { return b.Max.Y - b.Min.Y }

// BoundsOf returns the bounding box of all points of all polygons.
// The zero Bounds is returned when there are no points.
func BoundsOf(polys ...Polygon) Bounds {
	b := Bounds{
		Min: Point{math.Inf(1), math.Inf(1)},
		Max: Point{math.Inf(-1), math.Inf(-1)},
	}
	n := 0
	for _, poly := range polys {
		for _, p := range poly {
			b.Min.X = math.Min(b.Min.X, p.X)
			b.Min.Y = math.Min(b.Min.Y, p.Y)
			b.Max.X = math.Max(b.Max.X, p.X)
			b.Max.Y = math.Max(b.Max.Y, p.Y)
			n++
		}
	}
	if n == 0 {
		return Bounds{}
	}
	return b
}

// ContainsPoint reports whether p lies inside poly using the even-odd
// crossing rule: a horizontal ray from p toggles the result at every edge
// it crosses. Polygons with fewer than three vertices contain nothing.
//
// Points exactly on an edge are classified by whichever side the floating
// point comparisons fall on; callers must not rely on either answer.
func ContainsPoint(poly Polygon, p Point) bool {
	if len(poly) < 3 {
		return false
	}
	inside := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}
