// Package headless provides a render.Surface that draws nothing and records
// every paint operation instead. It backs geometry and pipeline tests and
// the probe tool, where no window or GPU is available.
package headless

import (
	"image/color"
	"math"

	"chosenoffset.com/fieldview/internal/core/geom"
	"chosenoffset.com/fieldview/internal/render"
)

// Verb identifies a path construction command.
type Verb int

const (
	VerbMove Verb = iota
	VerbLine
	VerbArc
	VerbClose
)

// PathCmd is one recorded path command. Arc commands carry
// (cx, cy, radius, start, end) in Args; move and line carry (x, y).
type PathCmd struct {
	Verb Verb
	Args []float64
}

// OpKind identifies a paint operation.
type OpKind int

const (
	OpFill OpKind = iota
	OpStroke
	OpFillText
	OpStrokeText
)

func (k OpKind) String() string {
	switch k {
	case OpFill:
		return "fill"
	case OpStroke:
		return "stroke"
	case OpFillText:
		return "fillText"
	case OpStrokeText:
		return "strokeText"
	default:
		return "unknown"
	}
}

// Op is a recorded paint operation together with the style in effect.
type Op struct {
	Kind      OpKind
	Path      []PathCmd
	Color     color.Color
	LineWidth float64
	LineCap   render.LineCap
	LineJoin  render.LineJoin
	Rule      render.FillRule

	Text     string
	At       geom.Point
	Font     render.Font
	Align    render.TextAlign
	Baseline render.TextBaseline
}

// Points returns the move/line vertices of the op's path in order.
func (op Op) Points() []geom.Point {
	var pts []geom.Point
	for _, cmd := range op.Path {
		if cmd.Verb == VerbMove || cmd.Verb == VerbLine {
			pts = append(pts, geom.Pt(cmd.Args[0], cmd.Args[1]))
		}
	}
	return pts
}

// Subpaths counts the subpaths (move commands) of the op's path.
func (op Op) Subpaths() int {
	n := 0
	for _, cmd := range op.Path {
		if cmd.Verb == VerbMove {
			n++
		}
	}
	return n
}

// Recorder is a render.Surface that records instead of drawing.
type Recorder struct {
	width, height int

	path []PathCmd
	ops  []Op
	nan  bool

	fillColor   color.Color
	strokeColor color.Color
	lineWidth   float64
	lineCap     render.LineCap
	lineJoin    render.LineJoin
	font        render.Font
	align       render.TextAlign
	baseline    render.TextBaseline
}

var _ render.Surface = (*Recorder)(nil)

// NewRecorder creates a recorder reporting the given size.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{
		width:       width,
		height:      height,
		fillColor:   color.Black,
		strokeColor: color.Black,
		lineWidth:   1,
	}
}

// Ops returns the recorded operations in paint order.
func (r *Recorder) Ops() []Op { return r.ops }

// OpsOfKind returns the recorded operations of one kind in paint order.
func (r *Recorder) OpsOfKind(kind OpKind) []Op {
	var out []Op
	for _, op := range r.ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Texts returns the strings passed to FillText in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.OpsOfKind(OpFillText) {
		out = append(out, op.Text)
	}
	return out
}

// SawNaN reports whether any coordinate or length passed in was NaN.
func (r *Recorder) SawNaN() bool { return r.nan }

// Reset clears recorded operations and the current path, keeping the style.
func (r *Recorder) Reset() {
	r.ops = nil
	r.path = nil
	r.nan = false
}

func (r *Recorder) Size() (width, height int) { return r.width, r.height }

func (r *Recorder) BeginPath() { r.path = nil }

func (r *Recorder) MoveTo(x, y float64) { r.cmd(VerbMove, x, y) }

func (r *Recorder) LineTo(x, y float64) { r.cmd(VerbLine, x, y) }

func (r *Recorder) Arc(cx, cy, radius, startAngle, endAngle float64) {
	r.cmd(VerbArc, cx, cy, radius, startAngle, endAngle)
}

func (r *Recorder) ClosePath() { r.cmd(VerbClose) }

func (r *Recorder) cmd(verb Verb, args ...float64) {
	r.check(args...)
	r.path = append(r.path, PathCmd{Verb: verb, Args: args})
}

func (r *Recorder) check(values ...float64) {
	for _, v := range values {
		if math.IsNaN(v) {
			r.nan = true
		}
	}
}

func (r *Recorder) SetFillColor(clr color.Color)   { r.fillColor = clr }
func (r *Recorder) SetStrokeColor(clr color.Color) { r.strokeColor = clr }

func (r *Recorder) SetLineWidth(width float64) {
	r.check(width)
	r.lineWidth = width
}

func (r *Recorder) SetLineCap(lineCap render.LineCap)            { r.lineCap = lineCap }
func (r *Recorder) SetLineJoin(lineJoin render.LineJoin)         { r.lineJoin = lineJoin }
func (r *Recorder) SetFont(font render.Font)                     { r.font = font }
func (r *Recorder) SetTextAlign(align render.TextAlign)          { r.align = align }
func (r *Recorder) SetTextBaseline(baseline render.TextBaseline) { r.baseline = baseline }

func (r *Recorder) Fill(rule render.FillRule) {
	r.ops = append(r.ops, Op{
		Kind:  OpFill,
		Path:  r.snapshotPath(),
		Color: r.fillColor,
		Rule:  rule,
	})
}

func (r *Recorder) Stroke() {
	r.ops = append(r.ops, Op{
		Kind:      OpStroke,
		Path:      r.snapshotPath(),
		Color:     r.strokeColor,
		LineWidth: r.lineWidth,
		LineCap:   r.lineCap,
		LineJoin:  r.lineJoin,
	})
}

func (r *Recorder) FillText(text string, x, y float64) {
	r.text(OpFillText, r.fillColor, text, x, y)
}

func (r *Recorder) StrokeText(text string, x, y float64) {
	r.text(OpStrokeText, r.strokeColor, text, x, y)
}

func (r *Recorder) text(kind OpKind, clr color.Color, text string, x, y float64) {
	r.check(x, y)
	r.ops = append(r.ops, Op{
		Kind:      kind,
		Color:     clr,
		LineWidth: r.lineWidth,
		Text:      text,
		At:        geom.Pt(x, y),
		Font:      r.font,
		Align:     r.align,
		Baseline:  r.baseline,
	})
}

func (r *Recorder) snapshotPath() []PathCmd {
	out := make([]PathCmd, len(r.path))
	copy(out, r.path)
	return out
}
