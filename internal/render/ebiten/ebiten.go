package ebiten

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"chosenoffset.com/fieldview/internal/render"
)

// strokeTextSteps is the number of offset copies used to fake a text outline.
const strokeTextSteps = 16

// Fonts holds the parsed label typefaces.
type Fonts struct {
	regular *text.GoTextFaceSource
	bold    *text.GoTextFaceSource
}

// LoadFonts parses the embedded Go fonts.
func LoadFonts() (*Fonts, error) {
	regular, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to load regular font: %w", err)
	}
	bold, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to load bold font: %w", err)
	}
	return &Fonts{regular: regular, bold: bold}, nil
}

// Surface implements render.Surface on top of an ebiten.Image.
type Surface struct {
	dst   *ebiten.Image
	fonts *Fonts

	path vector.Path

	fillColor   color.Color
	strokeColor color.Color
	lineWidth   float64
	lineCap     render.LineCap
	lineJoin    render.LineJoin

	font     render.Font
	align    render.TextAlign
	baseline render.TextBaseline
}

var _ render.Surface = (*Surface)(nil)

// NewSurface creates a surface drawing into dst.
func NewSurface(dst *ebiten.Image, fonts *Fonts) *Surface {
	return &Surface{
		dst:         dst,
		fonts:       fonts,
		fillColor:   color.Black,
		strokeColor: color.Black,
		lineWidth:   1,
		font:        render.Font{Size: 10},
	}
}

// Reset points the surface at a new destination, keeping its path buffer.
func (s *Surface) Reset(dst *ebiten.Image) {
	s.dst = dst
	s.path.Reset()
}

// Size returns the destination size in pixels.
func (s *Surface) Size() (width, height int) {
	b := s.dst.Bounds()
	return b.Dx(), b.Dy()
}

// BeginPath discards the current path.
func (s *Surface) BeginPath() {
	s.path.Reset()
}

// MoveTo starts a new subpath at (x, y).
func (s *Surface) MoveTo(x, y float64) {
	s.path.MoveTo(float32(x), float32(y))
}

// LineTo adds a straight line to (x, y).
func (s *Surface) LineTo(x, y float64) {
	s.path.LineTo(float32(x), float32(y))
}

// Arc adds a clockwise arc around (cx, cy).
func (s *Surface) Arc(cx, cy, radius, startAngle, endAngle float64) {
	s.path.Arc(float32(cx), float32(cy), float32(radius), float32(startAngle), float32(endAngle), vector.Clockwise)
}

// ClosePath closes the current subpath.
func (s *Surface) ClosePath() {
	s.path.Close()
}

func (s *Surface) SetFillColor(clr color.Color)         { s.fillColor = clr }
func (s *Surface) SetStrokeColor(clr color.Color)       { s.strokeColor = clr }
func (s *Surface) SetLineWidth(width float64)           { s.lineWidth = width }
func (s *Surface) SetLineCap(lineCap render.LineCap)    { s.lineCap = lineCap }
func (s *Surface) SetLineJoin(lineJoin render.LineJoin) { s.lineJoin = lineJoin }
func (s *Surface) SetFont(font render.Font)             { s.font = font }
func (s *Surface) SetTextAlign(align render.TextAlign)  { s.align = align }

func (s *Surface) SetTextBaseline(baseline render.TextBaseline) { s.baseline = baseline }

// Fill fills the current path with the fill color.
func (s *Surface) Fill(rule render.FillRule) {
	vector.FillPath(s.dst, &s.path, &vector.FillOptions{FillRule: toEbitenFillRule(rule)}, drawOptions(s.fillColor))
}

// Stroke strokes the current path with the stroke color and line style.
// The path stays current, so it can be filled afterwards.
func (s *Surface) Stroke() {
	if s.lineWidth <= 0 {
		return
	}
	op := &vector.StrokeOptions{
		Width:      float32(s.lineWidth),
		LineCap:    toEbitenLineCap(s.lineCap),
		LineJoin:   toEbitenLineJoin(s.lineJoin),
		MiterLimit: 10,
	}
	vector.StrokePath(s.dst, &s.path, op, drawOptions(s.strokeColor))
}

func drawOptions(clr color.Color) *vector.DrawPathOptions {
	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(clr)
	return op
}

// FillText draws text in the fill color.
func (s *Surface) FillText(str string, x, y float64) {
	s.drawText(str, x, y, s.fillColor)
}

// StrokeText outlines text in the stroke color. The glyphs are stamped at
// offsets around a circle of half the line width.
func (s *Surface) StrokeText(str string, x, y float64) {
	radius := s.lineWidth / 2
	if radius <= 0 {
		return
	}
	for i := 0; i < strokeTextSteps; i++ {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / strokeTextSteps)
		s.drawText(str, x+cos*radius, y+sin*radius, s.strokeColor)
	}
}

func (s *Surface) drawText(str string, x, y float64, clr color.Color) {
	if s.fonts == nil || s.font.Size <= 0 {
		return
	}
	source := s.fonts.regular
	if s.font.Bold {
		source = s.fonts.bold
	}
	face := &text.GoTextFace{Source: source, Size: s.font.Size}

	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = toTextAlign(s.align)
	op.SecondaryAlign = toTextBaseline(s.baseline)
	text.Draw(s.dst, str, face, op)
}

func toEbitenFillRule(rule render.FillRule) vector.FillRule {
	if rule == render.FillRuleEvenOdd {
		return vector.FillRuleEvenOdd
	}
	return vector.FillRuleNonZero
}

func toEbitenLineCap(lineCap render.LineCap) vector.LineCap {
	switch lineCap {
	case render.LineCapRound:
		return vector.LineCapRound
	case render.LineCapSquare:
		return vector.LineCapSquare
	default:
		return vector.LineCapButt
	}
}

func toEbitenLineJoin(lineJoin render.LineJoin) vector.LineJoin {
	switch lineJoin {
	case render.LineJoinRound:
		return vector.LineJoinRound
	case render.LineJoinBevel:
		return vector.LineJoinBevel
	default:
		return vector.LineJoinMiter
	}
}

func toTextAlign(align render.TextAlign) text.Align {
	switch align {
	case render.TextAlignCenter:
		return text.AlignCenter
	case render.TextAlignRight:
		return text.AlignEnd
	default:
		return text.AlignStart
	}
}

func toTextBaseline(baseline render.TextBaseline) text.Align {
	switch baseline {
	case render.TextBaselineMiddle:
		return text.AlignCenter
	case render.TextBaselineBottom:
		return text.AlignEnd
	default:
		return text.AlignStart
	}
}

// EbitenInputManager implements the InputManager interface using Ebiten.
type EbitenInputManager struct{}

// NewInputManager creates a new Ebiten-based input manager.
func NewInputManager() render.InputManager {
	return &EbitenInputManager{}
}

// IsKeyJustPressed returns whether the specified key was just pressed this frame.
func (m *EbitenInputManager) IsKeyJustPressed(key render.Key) bool {
	return inpututil.IsKeyJustPressed(keyToEbitenKey(key))
}

// GetCursorPosition returns the current cursor position.
func (m *EbitenInputManager) GetCursorPosition() (x, y int) {
	return ebiten.CursorPosition()
}

// IsMouseButtonJustPressed returns whether the button went down this tick.
func (m *EbitenInputManager) IsMouseButtonJustPressed(button render.MouseButton) bool {
	return inpututil.IsMouseButtonJustPressed(mouseButtonToEbiten(button))
}

// IsMouseButtonJustReleased returns whether the button went up this tick.
func (m *EbitenInputManager) IsMouseButtonJustReleased(button render.MouseButton) bool {
	return inpututil.IsMouseButtonJustReleased(mouseButtonToEbiten(button))
}

// keyToEbitenKey converts a render.Key to an ebiten.Key.
func keyToEbitenKey(key render.Key) ebiten.Key {
	switch key {
	case render.KeyD:
		return ebiten.KeyD
	case render.KeyS:
		return ebiten.KeyS
	case render.KeyEscape:
		return ebiten.KeyEscape
	default:
		return 0
	}
}

// mouseButtonToEbiten converts a render.MouseButton to an ebiten.MouseButton.
func mouseButtonToEbiten(button render.MouseButton) ebiten.MouseButton {
	switch button {
	case render.MouseButtonRight:
		return ebiten.MouseButtonRight
	case render.MouseButtonMiddle:
		return ebiten.MouseButtonMiddle
	default:
		return ebiten.MouseButtonLeft
	}
}

// EbitenEngine implements the Engine interface using Ebiten.
type EbitenEngine struct {
	fonts *Fonts
}

// NewEngine creates a new Ebiten-based engine drawing labels with fonts.
func NewEngine(fonts *Fonts) render.Engine {
	return &EbitenEngine{fonts: fonts}
}

// SetWindowSize sets the window size in pixels.
func (e *EbitenEngine) SetWindowSize(width, height int) {
	ebiten.SetWindowSize(width, height)
}

// SetWindowTitle sets the window title.
func (e *EbitenEngine) SetWindowTitle(title string) {
	ebiten.SetWindowTitle(title)
}

// SetWindowResizable enables or disables window resizing.
func (e *EbitenEngine) SetWindowResizable(resizable bool) {
	if resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	} else {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	}
}

// RunGame runs the loop with the provided game.
func (e *EbitenEngine) RunGame(game render.Game) error {
	return ebiten.RunGame(&gameAdapter{game: game, fonts: e.fonts})
}

// gameAdapter adapts a render.Game to ebiten.Game interface.
type gameAdapter struct {
	game    render.Game
	fonts   *Fonts
	surface *Surface
}

// Update implements ebiten.Game.
func (a *gameAdapter) Update() error {
	return a.game.Update()
}

// Draw implements ebiten.Game.
func (a *gameAdapter) Draw(screen *ebiten.Image) {
	if a.surface == nil {
		a.surface = NewSurface(screen, a.fonts)
	} else {
		a.surface.Reset(screen)
	}
	a.game.Draw(a.surface)
}

// Layout implements ebiten.Game.
func (a *gameAdapter) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.game.Layout(outsideWidth, outsideHeight)
}
