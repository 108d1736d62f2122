// Package selection implements the clickable regions of the field map and
// their animated hover/selected feedback.
package selection

import (
	"math"

	"chosenoffset.com/fieldview/internal/core/geom"
	"chosenoffset.com/fieldview/internal/field"
	"chosenoffset.com/fieldview/internal/field/transform"
	"chosenoffset.com/fieldview/internal/render"
	"chosenoffset.com/fieldview/internal/render/color"
)

// Rate is the exponential approach rate of the label animation, per second.
const Rate = 15.0

// Label offsets in meters along the region's animation direction.
const (
	HoverOffset    = 0.02
	SelectedOffset = 0.05
)

// Label colors per state.
var (
	IdleColor     = color.MustParse("#888")
	HoverColor    = color.MustParse("#ccc")
	SelectedColor = color.MustParse("#aaffaa")
)

// State is the visual state of a region for one frame.
type State int

const (
	StateIdle State = iota
	StateHovered
	StateSelected
)

func (s State) String() string {
	switch s {
	case StateHovered:
		return "hovered"
	case StateSelected:
		return "selected"
	default:
		return "idle"
	}
}

// Resolve picks the state: selected wins over hovered, hovered over idle.
func Resolve(selected, hovered bool) State {
	switch {
	case selected:
		return StateSelected
	case hovered:
		return StateHovered
	default:
		return StateIdle
	}
}

func (s State) targets(direction geom.Point) (color.Color, geom.Point) {
	switch s {
	case StateSelected:
		return SelectedColor, direction.Scale(SelectedOffset)
	case StateHovered:
		return HoverColor, direction.Scale(HoverOffset)
	default:
		return IdleColor, geom.Point{}
	}
}

// Smoothing returns the fraction of the remaining distance to cover after
// dt seconds: 1 - e^(-Rate*dt). Splitting dt into several updates reaches
// the same value as one update of the total.
func Smoothing(dt float64) float64 {
	if dt <= 0 {
		return 0
	}
	return 1 - math.Exp(-Rate*dt)
}

// Definition is the static description of a region, in world coordinates.
type Definition struct {
	ID      string
	Polygon geom.Polygon

	Label         string
	LabelSize     float64 // meters
	LabelPosition geom.Point
	LabelAlign    render.TextAlign
	// AnimationAngle sets the label offset direction (sin(a), cos(a)).
	AnimationAngle float64

	// Selected reports whether the region is the externally selected one.
	Selected func(field.Snapshot) bool
	// OnSelect is called with ID when the pointer goes down inside Polygon.
	OnSelect func(id string)
}

// Region is a Definition plus its animation state. It is created once and
// updated once per frame.
type Region struct {
	def       Definition
	direction geom.Point

	seeded bool
	color  color.Color
	offset geom.Point
	state  State
}

// New creates the region for def.
func New(def Definition) *Region {
	return &Region{
		def:       def,
		direction: geom.Direction(def.AnimationAngle),
	}
}

func (r *Region) ID() string                   { return r.def.ID }
func (r *Region) Label() string                { return r.def.Label }
func (r *Region) Polygon() geom.Polygon        { return r.def.Polygon }
func (r *Region) LabelAlign() render.TextAlign { return r.def.LabelAlign }

// State returns the state computed by the last Update.
func (r *Region) State() State { return r.state }

// Selected returns whether the last Update found the region selected.
func (r *Region) Selected() bool { return r.state == StateSelected }

// Contains reports whether the screen point p lies inside the region's
// polygon once it is mapped through t.
func (r *Region) Contains(p geom.Point, t transform.Transform) bool {
	return geom.ContainsPoint(r.def.Polygon.Map(t.ToScreen), p)
}

// Update advances the animation by dt seconds toward the targets of the
// current state. The first call seeds the current values with the targets.
func (r *Region) Update(dt float64, hovered bool, snap field.Snapshot) {
	selected := r.def.Selected != nil && r.def.Selected(snap)
	r.state = Resolve(selected, hovered)
	targetColor, targetOffset := r.state.targets(r.direction)

	if !r.seeded {
		r.color = targetColor
		r.offset = targetOffset
		r.seeded = true
		return
	}

	k := Smoothing(dt)
	r.color = r.color.Lerp(targetColor, k)
	r.offset = r.offset.Lerp(targetOffset, k)
}

// LabelColor returns the current label color, or IdleColor before the first Update.
func (r *Region) LabelColor() color.Color {
	if !r.seeded {
		return IdleColor
	}
	return r.color
}

// Offset returns the current label offset in meters.
func (r *Region) Offset() geom.Point { return r.offset }

// Font returns the label font scaled into screen pixels.
func (r *Region) Font(t transform.Transform) render.Font {
	return render.Font{Size: t.LengthToScreen(r.def.LabelSize), Bold: true}
}

// LabelScreenPosition returns where the label is drawn, including the
// animated offset.
func (r *Region) LabelScreenPosition(t transform.Transform) geom.Point {
	return t.ToScreen(r.def.LabelPosition.Add(r.offset))
}

// Select invokes the region's OnSelect callback.
func (r *Region) Select() {
	if r.def.OnSelect != nil {
		r.def.OnSelect(r.def.ID)
	}
}

// PointerDown selects every region containing p and returns their IDs in
// order. Regions are tested independently, so overlapping regions all fire.
func PointerDown(regions []*Region, p geom.Point, t transform.Transform) []string {
	var fired []string
	for _, r := range regions {
		if r.Contains(p, t) {
			r.Select()
			fired = append(fired, r.def.ID)
		}
	}
	return fired
}
