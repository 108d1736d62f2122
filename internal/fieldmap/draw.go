package fieldmap

import (
	"math"

	"chosenoffset.com/fieldview/internal/core/geom"
	"chosenoffset.com/fieldview/internal/field"
	"chosenoffset.com/fieldview/internal/field/transform"
	"chosenoffset.com/fieldview/internal/render"
	"chosenoffset.com/fieldview/internal/render/color"
	"chosenoffset.com/fieldview/internal/selection"
)

var (
	branchColor  = color.MustParse("#a70fb9")
	outlineColor = color.MustParse("black")

	redLineColor  = color.MustParse("#a80004")
	blueLineColor = color.MustParse("#0432a8")

	perimeterColor = color.FromRGB(100, 100, 100)
	troughColor    = color.FromRGB(50, 50, 50)
	reefBaseColor  = color.MustParse("gray")

	redBumperColor  = color.MustParse("#990000")
	blueBumperColor = color.MustParse("#000099")
	robotBodyColor  = color.MustParse("#111111")
	headingColor    = color.MustParse("#cccccc")

	debugFillColor = color.FromRGB(0, 0, 0).WithAlpha(0.5)
)

const (
	// seamExpand pushes shaded triangle vertices this many pixels away from
	// the triangle centroid so anti-aliased edges overlap.
	seamExpand = 1.0
	// shadeStrength is the brightness swing across the shaded rings.
	shadeStrength = 0.4

	stylizedBranchScale  = 2.5
	stylizedProfileScale = 1.5

	headingStrokeWidth = 0.04 // meters

	debugStrokeWidth = 2.0
	labelStrokeWidth = 14.0
)

func fieldLineColor(alliance field.Alliance) color.Color {
	if alliance == field.AllianceRed {
		return redLineColor
	}
	return blueLineColor
}

// tracePolygon adds poly as a closed subpath. Polygons with fewer than three
// vertices add nothing and report false.
func tracePolygon(s render.Surface, poly geom.Polygon, toScreen func(geom.Point) geom.Point) bool {
	if len(poly) < 3 {
		return false
	}
	for i, p := range poly {
		sp := toScreen(p)
		if i == 0 {
			s.MoveTo(sp.X, sp.Y)
		} else {
			s.LineTo(sp.X, sp.Y)
		}
	}
	s.ClosePath()
	return true
}

func (m *Map) drawReef(s render.Surface, v views, alliance field.Alliance) {
	toScreen := v.mirroredReef.ToScreen

	// Hollow ring between the outer and inner reef lines
	s.BeginPath()
	tracePolygon(s, m.outer, toScreen)
	tracePolygon(s, m.inner, toScreen)
	s.SetFillColor(fieldLineColor(alliance))
	s.Fill(render.FillRuleEvenOdd)

	if m.opts.Stylized {
		outline := m.field.Ring(m.field.PerimeterRadius + v.reef.LengthToWorld(m.opts.OutlineThickness))
		s.BeginPath()
		if tracePolygon(s, outline, toScreen) {
			s.SetFillColor(outlineColor)
			s.Fill(render.FillRuleNonZero)
		}
	}

	center := v.mirror.Apply(m.field.ReefCenter)
	m.drawShaded(s, m.perimeter.Map(v.mirror.Apply), center, perimeterColor, v.reef)
	m.drawShaded(s, m.trough.Map(v.mirror.Apply), center, troughColor, v.reef)

	for _, b := range m.field.Branches {
		bottom := v.mirroredReef.ToScreen(b.Bottom)
		top := v.mirroredReef.ToScreen(b.Top)
		m.drawBranch(s, bottom, top, v.reef.LengthToScreen(m.field.BranchWidth))
	}
}

// drawShaded fills poly as a fan of triangles around center. Each
// triangle's brightness follows the height of its first vertex, which fakes
// a light source above the reef.
func (m *Map) drawShaded(s render.Surface, poly geom.Polygon, center geom.Point, base color.Color, t transform.Transform) {
	if len(poly) < 3 {
		return
	}

	for i := range poly {
		tri := [3]geom.Point{poly[i], poly[(i+1)%len(poly)], center}
		brightness := 1 + shadeStrength*(tri[0].Y-center.Y)/(m.field.BranchMaxY-center.Y)

		var screen [3]geom.Point
		for j, p := range tri {
			screen[j] = t.ToScreen(p)
		}
		centroid := geom.Polygon(screen[:]).Centroid()

		s.BeginPath()
		for j, p := range screen {
			p = p.Sub(centroid.Sub(p).Unit().Scale(seamExpand))
			if j == 0 {
				s.MoveTo(p.X, p.Y)
			} else {
				s.LineTo(p.X, p.Y)
			}
		}
		s.ClosePath()
		s.SetFillColor(base.AdjustBrightness(brightness))
		s.Fill(render.FillRuleNonZero)
	}
}

// drawBranch strokes one branch between screen points bottom and top.
func (m *Map) drawBranch(s render.Surface, bottom, top geom.Point, width float64) {
	s.SetLineCap(render.LineCapRound)
	s.SetLineJoin(render.LineJoinRound)

	if m.opts.Stylized {
		width *= stylizedBranchScale

		s.BeginPath()
		s.MoveTo(bottom.X, bottom.Y)
		s.LineTo(top.X, top.Y)
		s.SetLineWidth(width + m.opts.OutlineThickness*2)
		s.SetStrokeColor(outlineColor)
		s.Stroke()
		s.SetLineWidth(width)
		s.SetStrokeColor(branchColor)
		s.Stroke()
		return
	}

	// Dark bottom half, full color top half
	mid := bottom.Lerp(top, 0.5)
	s.SetLineWidth(width)
	s.BeginPath()
	s.MoveTo(bottom.X, bottom.Y)
	s.LineTo(mid.X, mid.Y)
	s.SetStrokeColor(branchColor.AdjustBrightness(0.8))
	s.Stroke()
	s.BeginPath()
	s.MoveTo(mid.X, mid.Y)
	s.LineTo(top.X, top.Y)
	s.SetStrokeColor(branchColor)
	s.Stroke()

	s.BeginPath()
	s.Arc(top.X, top.Y, width/2, 0, 2*math.Pi)
	s.SetFillColor(branchColor.AdjustBrightness(1.1))
	s.Fill(render.FillRuleNonZero)
}

func (m *Map) drawRobot(s render.Surface, reef transform.Transform, snap field.Snapshot) {
	position, heading, ok := snap.Pose()
	if !ok || !snap.Alliance.Known() {
		return
	}

	robot := m.field.Robot
	pose := transform.Pose{Inner: reef, Position: position, Heading: heading}
	hw, hl := robot.Width/2, robot.Length/2

	body := geom.Lines(
		geom.Pt(-hw, -hl),
		geom.Pt(hw, -hl),
		geom.Pt(hw, hl),
		geom.Pt(-hw, hl),
	)
	bumper := blueBumperColor
	if snap.Alliance == field.AllianceRed {
		bumper = redBumperColor
	}
	s.BeginPath()
	strokePath(s, body, pose, robot.Bumper*2, bumper, 0, true)
	s.SetFillColor(robotBodyColor)
	s.Fill(render.FillRuleNonZero)

	arrow := geom.Lines(
		geom.Pt(0, robot.Length*0.4),
		geom.Pt(robot.Width*0.15, robot.Length*0.2),
		geom.Pt(-robot.Width*0.15, robot.Length*0.2),
	)
	s.BeginPath()
	strokePath(s, arrow, pose, headingStrokeWidth, headingColor, 0, true)
	s.SetFillColor(headingColor)
	s.Fill(render.FillRuleNonZero)
}

func (m *Map) drawBranchProfile(s render.Surface, t transform.Transform) {
	f := m.field
	base := f.ReefBase
	width := f.BranchWidth
	if m.opts.Stylized {
		base = f.StylizedReefBase
		width *= stylizedProfileScale

		thickness := m.opts.OutlineThickness
		strokePath(s, f.BranchProfile, t, width+t.LengthToWorld(thickness)*2, outlineColor, thickness, false)

		s.BeginPath()
		if tracePolygon(s, base, t.ToScreen) {
			s.SetLineWidth(thickness * 2)
			s.SetStrokeColor(outlineColor)
			s.Stroke()
		}
	}

	strokePath(s, f.BranchProfile, t, width, branchColor, 1, false)

	s.BeginPath()
	if tracePolygon(s, base, t.ToScreen) {
		s.SetFillColor(reefBaseColor)
		s.Fill(render.FillRuleNonZero)
	}
}

func (m *Map) drawRegions(s render.Surface, regions []*selection.Region, t transform.Transform, snap field.Snapshot, in Input, dt float64) {
	for _, r := range regions {
		hovered := in.Pointer != nil && r.Contains(*in.Pointer, t)
		r.Update(dt, hovered, snap)

		if m.opts.DebugBoundaries {
			s.BeginPath()
			if tracePolygon(s, r.Polygon(), t.ToScreen) {
				s.SetFillColor(debugFillColor)
				s.Fill(render.FillRuleNonZero)
				s.SetStrokeColor(outlineColor)
				s.SetLineWidth(debugStrokeWidth)
				s.Stroke()
			}
		}

		s.SetFillColor(r.LabelColor())
		s.SetStrokeColor(outlineColor)
		s.SetLineWidth(labelStrokeWidth)
		s.SetTextBaseline(render.TextBaselineMiddle)
		s.SetFont(r.Font(t))
		s.SetTextAlign(r.LabelAlign())

		pos := r.LabelScreenPosition(t)
		s.StrokeText(r.Label(), pos.X, pos.Y)
		s.FillText(r.Label(), pos.X, pos.Y)
	}
}
