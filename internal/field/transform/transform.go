// Package transform maps between world space (meters, y up) and screen
// space (pixels, y down) for the two views of the field map.
package transform

import (
	"errors"
	"fmt"

	"chosenoffset.com/fieldview/internal/core/geom"
	"chosenoffset.com/fieldview/internal/field"
)

// ErrDegenerate is returned when a transform would have a non-positive scale,
// e.g. before the window has a size.
var ErrDegenerate = errors.New("degenerate transform")

// Transform converts points and lengths between world and screen space.
// LengthToWorld(LengthToScreen(l)) == l up to rounding for every l >= 0.
type Transform interface {
	ToScreen(p geom.Point) geom.Point
	ToWorld(p geom.Point) geom.Point
	LengthToScreen(l float64) float64
	LengthToWorld(l float64) float64
}

// Viewport is the drawing surface size in pixels.
type Viewport struct {
	Width, Height float64
}

const (
	// ElevationFill is the fraction of the viewport height the elevation
	// view's vertical extent occupies.
	ElevationFill = 0.75
	// ElevationInset is the left and bottom inset of the elevation view as a
	// fraction of the viewport width and height.
	ElevationInset = 0.1

	// ReefMargin is the top and bottom margin of the reef view as a fraction
	// of the viewport height.
	ReefMargin = 0.2
	// ReefAnchor places the reef's min-Y edge at this fraction of the width.
	ReefAnchor = 0.8
)

// Elevation is the orthographic side view of a branch: world X to the
// right, world Y up.
type Elevation struct {
	vp    Viewport
	scale float64
}

var _ Transform = (*Elevation)(nil)

// NewElevation fits the world vertical extent [minY, maxY] into
// ElevationFill of the viewport height.
func NewElevation(vp Viewport, minY, maxY float64) (*Elevation, error) {
	scale := vp.Height * ElevationFill / (maxY - minY)
	if !(scale > 0) {
		return nil, fmt.Errorf("%w: elevation scale %v for viewport %vx%v", ErrDegenerate, scale, vp.Width, vp.Height)
	}
	return &Elevation{vp: vp, scale: scale}, nil
}

func (e *Elevation) ToScreen(p geom.Point) geom.Point {
	return geom.Point{
		X: p.X*e.scale + e.vp.Width*ElevationInset,
		Y: e.vp.Height - p.Y*e.scale - e.vp.Height*ElevationInset,
	}
}

func (e *Elevation) ToWorld(s geom.Point) geom.Point {
	return geom.Point{
		X: (s.X - e.vp.Width*ElevationInset) / e.scale,
		Y: (e.vp.Height - e.vp.Height*ElevationInset - s.Y) / e.scale,
	}
}

func (e *Elevation) LengthToScreen(l float64) float64 { return l * e.scale }
func (e *Elevation) LengthToWorld(l float64) float64  { return l / e.scale }

// Reef is the top-down view of the reef, rotated a quarter turn relative to
// the field: world +X points up the screen and world +Y points left.
type Reef struct {
	vp     Viewport
	bounds geom.Bounds
	scale  float64
}

var _ Transform = (*Reef)(nil)

// NewReef fits the X extent of bounds into the viewport height minus
// ReefMargin at the top and bottom.
func NewReef(vp Viewport, bounds geom.Bounds) (*Reef, error) {
	scale := vp.Height * (1 - ReefMargin*2) / bounds.Width()
	if !(scale > 0) {
		return nil, fmt.Errorf("%w: reef scale %v for viewport %vx%v", ErrDegenerate, scale, vp.Width, vp.Height)
	}
	return &Reef{vp: vp, bounds: bounds, scale: scale}, nil
}

func (r *Reef) ToScreen(p geom.Point) geom.Point {
	return geom.Point{
		X: r.vp.Width*ReefAnchor - (p.Y-r.bounds.Min.Y)*r.scale,
		Y: r.vp.Height - (p.X-r.bounds.Min.X)*r.scale - r.vp.Height*ReefMargin,
	}
}

func (r *Reef) ToWorld(s geom.Point) geom.Point {
	return geom.Point{
		X: (r.vp.Height-r.vp.Height*ReefMargin-s.Y)/r.scale + r.bounds.Min.X,
		Y: (r.vp.Width*ReefAnchor-s.X)/r.scale + r.bounds.Min.Y,
	}
}

func (r *Reef) LengthToScreen(l float64) float64 { return l * r.scale }
func (r *Reef) LengthToWorld(l float64) float64  { return l / r.scale }

// Mirror is the alliance reflection through the field center. It is a
// separate pre-transform step so the view transforms stay alliance-agnostic.
type Mirror struct {
	Center geom.Point
	Active bool
}

// MirrorFor returns the mirror for the active alliance. Only a known alliance
// that differs from reference activates it.
func MirrorFor(active, reference field.Alliance, center geom.Point) Mirror {
	return Mirror{Center: center, Active: active.Known() && active != reference}
}

// Apply reflects p through the center when the mirror is active.
func (m Mirror) Apply(p geom.Point) geom.Point {
	if !m.Active {
		return p
	}
	return Reflect(p, m.Center)
}

// Reflect returns 2*center - p. Reflecting twice returns p exactly only when
// both subtractions are exact, e.g. for coordinates on a power-of-two grid
// such as quarter meters. For general field coordinates the round trip can
// be off by a few ulps.
func Reflect(p, center geom.Point) geom.Point {
	return geom.Point{X: 2*center.X - p.X, Y: 2*center.Y - p.Y}
}

// Mirrored applies a Mirror before Inner.
type Mirrored struct {
	Inner  Transform
	Mirror Mirror
}

var _ Transform = Mirrored{}

func (m Mirrored) ToScreen(p geom.Point) geom.Point { return m.Inner.ToScreen(m.Mirror.Apply(p)) }
func (m Mirrored) ToWorld(s geom.Point) geom.Point  { return m.Mirror.Apply(m.Inner.ToWorld(s)) }
func (m Mirrored) LengthToScreen(l float64) float64 { return m.Inner.LengthToScreen(l) }
func (m Mirrored) LengthToWorld(l float64) float64  { return m.Inner.LengthToWorld(l) }

// Pose maps robot-local coordinates into Inner's world: rotate by Heading,
// then translate to Position.
type Pose struct {
	Inner    Transform
	Position geom.Point
	Heading  float64
}

var _ Transform = Pose{}

func (p Pose) ToScreen(local geom.Point) geom.Point {
	return p.Inner.ToScreen(local.Rotate(p.Heading).Add(p.Position))
}

func (p Pose) ToWorld(s geom.Point) geom.Point {
	return p.Inner.ToWorld(s).Sub(p.Position).Rotate(-p.Heading)
}

func (p Pose) LengthToScreen(l float64) float64 { return p.Inner.LengthToScreen(l) }
func (p Pose) LengthToWorld(l float64) float64  { return p.Inner.LengthToWorld(l) }
