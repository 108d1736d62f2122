package geom

// Segment is one piece of an open path: either a Line or an Arc. The set of
// implementations is closed; use a type switch over Line and Arc (or Walk)
// to consume a path.
type Segment interface {
	segment()
}

// Line is a straight segment from Start to End.
type Line struct {
	Start, End Point
}

// Arc is a circular arc around Center.
//
// StartAngle and EndAngle are radians in screen orientation: 0 points along
// +X and angles increase toward +Y of the screen, i.e. downward. The arc is
// swept from StartAngle to EndAngle with increasing angle, which is clockwise
// as displayed. Because the world→screen transforms flip Y, arcs authored in
// world coordinates must state their angles in this screen orientation.
type Arc struct {
	Center     Point
	Radius     float64
	StartAngle float64
	EndAngle   float64
}

func (Line) segment() {}
func (Arc) segment()  {}

// Path is an ordered, not necessarily closed, sequence of segments.
type Path []Segment

// Visitor receives the segments of a path in order.
type Visitor interface {
	Line(l Line)
	Arc(a Arc)
}

// Walk dispatches every segment of path to v. It panics on a Segment type
// outside the closed set, which can only happen through a programming error.
func Walk(path Path, v Visitor) {
	for _, seg := range path {
		switch s := seg.(type) {
		case Line:
			v.Line(s)
		case Arc:
			v.Arc(s)
		default:
			panic("geom: unknown path segment")
		}
	}
}

// Lines builds a path of Line segments joining consecutive points.
func Lines(points ...Point) Path {
	if len(points) < 2 {
		return nil
	}
	path := make(Path, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		path = append(path, Line{Start: points[i-1], End: points[i]})
	}
	return path
}
