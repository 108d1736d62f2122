// Package layout describes the static geometry of the field map in meters:
// the reef rings, the branches and their side profile, and the robot
// footprint. Field drawing sources authored in other units are converted
// here, once, at load time.
package layout

import (
	"math"

	"chosenoffset.com/fieldview/internal/core/geom"
)

// ReefSides is the number of sides of every reef ring.
const ReefSides = 6

// reefRingOffset puts the first ring vertex at the "top" (+Y) of the hexagon.
const reefRingOffset = math.Pi / 2

// Branch is one reef branch, identified by its FMS letter.
type Branch struct {
	ID     string
	Bottom geom.Point
	Top    geom.Point
}

// Robot is the robot footprint in meters.
type Robot struct {
	Width  float64
	Length float64
	Bumper float64
}

// Field is the complete static description the renderer draws from.
type Field struct {
	Game string

	// Size and Center of the whole field in meters.
	Size   geom.Point
	Center geom.Point

	// Top-down reef geometry, authored for the blue alliance.
	ReefCenter      geom.Point
	OuterRadius     float64
	InnerRadius     float64
	PerimeterRadius float64
	TroughRadius    float64
	Branches        []Branch

	// Side elevation of one branch. Points are relative to the center of
	// the bottom of the branch with +X toward the reef face and +Y up.
	BranchWidth      float64
	BranchProfile    geom.Path
	ReefBase         geom.Polygon
	StylizedReefBase geom.Polygon
	BranchMinY       float64
	BranchMaxY       float64

	Robot Robot
}

// Ring returns the reef hexagon of the given radius around ReefCenter.
func (f *Field) Ring(radius float64) geom.Polygon {
	return geom.RegularPolygon(f.ReefCenter, radius, ReefSides, reefRingOffset)
}

// Rings returns the outer, inner, perimeter and trough rings.
func (f *Field) Rings() (outer, inner, perimeter, trough geom.Polygon) {
	return f.Ring(f.OuterRadius), f.Ring(f.InnerRadius), f.Ring(f.PerimeterRadius), f.Ring(f.TroughRadius)
}

// Branch returns the branch with the given FMS letter.
func (f *Field) Branch(id string) (Branch, bool) {
	for _, b := range f.Branches {
		if b.ID == id {
			return b, true
		}
	}
	return Branch{}, false
}

func degToRad(deg float64) float64 { return deg / 180 * math.Pi }

// Reefscape returns the 2025 field.
func Reefscape() *Field {
	f, err := FromDescriptor(DefaultDescriptor())
	if err != nil {
		// The default descriptor is a constant; failing here is a programming error.
		panic(err)
	}
	return f
}

func reefscapeGeometry(f *Field) {
	f.ReefCenter = geom.Pt(4.489, 4.026)
	f.OuterRadius = 1.370996
	f.InnerRadius = 1.312337
	f.PerimeterRadius = 0.953950
	f.TroughRadius = 0.670377

	// Clockwise starting from J, at the "top" of the right side.
	f.Branches = []Branch{
		{"J", geom.Pt(4.610132, 4.564421), geom.Pt(4.737, 4.784)},
		{"I", geom.Pt(4.895292, 4.399783), geom.Pt(5.021, 4.619)},
		{"H", geom.Pt(5.016087, 4.190560), geom.Pt(5.270, 4.190)},
		{"G", geom.Pt(5.016087, 3.861285), geom.Pt(5.269, 3.862)},
		{"F", geom.Pt(4.895292, 3.652063), geom.Pt(5.022, 3.432)},
		{"E", geom.Pt(4.610131, 3.487425), geom.Pt(4.737, 3.269)},
		{"D", geom.Pt(4.368542, 3.487425), geom.Pt(4.241, 3.268)},
		{"C", geom.Pt(4.083381, 3.652063), geom.Pt(3.957, 3.433)},
		{"B", geom.Pt(3.962587, 3.861286), geom.Pt(3.709, 3.862)},
		{"A", geom.Pt(3.962587, 4.190561), geom.Pt(3.710, 4.190)},
		{"L", geom.Pt(4.083382, 4.399783), geom.Pt(3.957, 4.620)},
		{"K", geom.Pt(4.368542, 4.564421), geom.Pt(4.242, 4.783)},
	}

	f.BranchWidth = 0.042
	f.BranchProfile = geom.Path{
		geom.Line{Start: geom.Pt(0, 0), End: geom.Pt(0, 1.350)},
		geom.Arc{Center: geom.Pt(0.102, 1.350), Radius: 0.102, StartAngle: degToRad(180), EndAngle: degToRad(180 + 55)},
		geom.Line{Start: geom.Pt(0.043, 1.434), End: geom.Pt(0.211, 1.551)},
		geom.Arc{Center: geom.Pt(0.152, 1.634), Radius: 0.1016, StartAngle: degToRad(0), EndAngle: degToRad(55)},
		geom.Line{Start: geom.Pt(0.254, 1.634), End: geom.Pt(0.254, 1.809)},
		geom.Line{Start: geom.Pt(0.01, 1.006492), End: geom.Pt(0.253, 1.177)}, // L3
		geom.Line{Start: geom.Pt(0.01, 0.603), End: geom.Pt(0.253, 0.774)},    // L2
	}
	f.ReefBase = geom.Polygon{
		geom.Pt(-0.054, 0.498),
		geom.Pt(0.057, 0.498),
		geom.Pt(0.059, 0.451),
		geom.Pt(0.289, 0.390),
		geom.Pt(0.292, 0.438),
		geom.Pt(0.305, 0.438),
		geom.Pt(0.305, -0.016),
		geom.Pt(-0.054, -0.016),
	}
	f.StylizedReefBase = geom.Polygon{
		geom.Pt(-0.054, 0.498),
		geom.Pt(0.305, 0.438),
		geom.Pt(0.305, -0.016),
		geom.Pt(-0.054, -0.016),
	}
	f.BranchMinY = -0.016
	f.BranchMaxY = 1.809

	f.Robot = Robot{
		Width:  inchesToMeters(30),
		Length: inchesToMeters(30),
		Bumper: inchesToMeters(3.75),
	}
}
