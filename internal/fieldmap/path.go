package fieldmap

import (
	"chosenoffset.com/fieldview/internal/core/geom"
	"chosenoffset.com/fieldview/internal/field/transform"
	"chosenoffset.com/fieldview/internal/render"
	"chosenoffset.com/fieldview/internal/render/color"
)

// pathTracer emits path segments onto a surface in screen space.
//
// With closed unset every segment is its own stroked path, and lines are
// lengthened by expand pixels at both ends so consecutive strokes overlap.
// With closed set the segments are appended to the caller's current path as
// one subpath; the caller closes and paints it.
type pathTracer struct {
	s      render.Surface
	t      transform.Transform
	expand float64
	closed bool
	moved  bool
}

var _ geom.Visitor = (*pathTracer)(nil)

func (p *pathTracer) Line(l geom.Line) {
	start := p.t.ToScreen(l.Start)
	end := p.t.ToScreen(l.End)

	if p.closed {
		if !p.moved {
			p.s.MoveTo(start.X, start.Y)
			p.moved = true
		}
		p.s.LineTo(end.X, end.Y)
		return
	}

	// Zero-length lines get no extension rather than NaN endpoints.
	ext := end.Sub(start).Unit().Scale(p.expand)
	start, end = start.Sub(ext), end.Add(ext)

	p.s.BeginPath()
	p.s.MoveTo(start.X, start.Y)
	p.s.LineTo(end.X, end.Y)
	p.s.Stroke()
}

func (p *pathTracer) Arc(a geom.Arc) {
	center := p.t.ToScreen(a.Center)
	radius := p.t.LengthToScreen(a.Radius)

	if !p.closed {
		p.s.BeginPath()
	}
	p.s.Arc(center.X, center.Y, radius, a.StartAngle, a.EndAngle)
	p.moved = true
	if !p.closed {
		p.s.Stroke()
	}
}

// strokePath strokes path with a world-space width. In closed mode the path
// stays current afterwards so the caller can fill it.
func strokePath(s render.Surface, path geom.Path, t transform.Transform, width float64, clr color.Color, expand float64, closed bool) {
	s.SetLineWidth(t.LengthToScreen(width))
	s.SetLineJoin(render.LineJoinRound)
	s.SetLineCap(render.LineCapButt)
	s.SetStrokeColor(clr)

	geom.Walk(path, &pathTracer{s: s, t: t, expand: expand, closed: closed})

	if closed {
		s.ClosePath()
		s.Stroke()
	}
}
