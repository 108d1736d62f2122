package render

import (
	"image/color"
)

// FillRule selects how overlapping subpaths are filled.
type FillRule int

const (
	// FillRuleNonZero fills every region with a non-zero winding number.
	FillRuleNonZero FillRule = iota
	// FillRuleEvenOdd fills regions crossed an odd number of times, so a
	// ring drawn as two nested subpaths comes out hollow.
	FillRuleEvenOdd
)

// LineCap is the shape at the open ends of a stroked path.
type LineCap int

const (
	LineCapButt LineCap = iota
	LineCapRound
	LineCapSquare
)

// LineJoin is the shape drawn where two stroked segments meet.
type LineJoin int

const (
	LineJoinMiter LineJoin = iota
	LineJoinRound
	LineJoinBevel
)

// TextAlign is the horizontal anchor of text relative to its position.
type TextAlign int

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
	TextAlignRight
)

// TextBaseline is the vertical anchor of text relative to its position.
type TextBaseline int

const (
	TextBaselineTop TextBaseline = iota
	TextBaselineMiddle
	TextBaselineBottom
)

// Font describes label text. Size is in pixels.
type Font struct {
	Size float64
	Bold bool
}

// Surface is the drawing capability the field map needs from a rendering
// backend. It follows the immediate path model of a 2D canvas: build a path
// with MoveTo/LineTo/Arc, then Fill or Stroke it with the current style.
// All coordinates are screen pixels.
//
// Arc angles are radians with 0 along +X and increasing toward +Y (down on
// screen); the arc is swept with increasing angle, i.e. clockwise as seen.
type Surface interface {
	// Size returns the surface size in pixels.
	Size() (width, height int)

	// Path construction
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Arc(cx, cy, radius, startAngle, endAngle float64)
	ClosePath()

	// Style
	SetFillColor(clr color.Color)
	SetStrokeColor(clr color.Color)
	SetLineWidth(width float64)
	SetLineCap(lineCap LineCap)
	SetLineJoin(lineJoin LineJoin)

	// Painting the current path
	Fill(rule FillRule)
	Stroke()

	// Text operations
	SetFont(font Font)
	SetTextAlign(align TextAlign)
	SetTextBaseline(baseline TextBaseline)
	FillText(text string, x, y float64)
	StrokeText(text string, x, y float64)
}

// InputManager handles input from the user (keyboard, mouse, etc).
type InputManager interface {
	IsKeyJustPressed(key Key) bool
	GetCursorPosition() (x, y int)
	IsMouseButtonJustPressed(button MouseButton) bool
	IsMouseButtonJustReleased(button MouseButton) bool
}

// Key represents a keyboard key.
type Key int

// Key constants for the keys the display reacts to
const (
	KeyD Key = iota // Debug boundaries toggle
	KeyS            // Stylized mode toggle
	KeyEscape
)

// MouseButton represents a mouse button.
type MouseButton int

// Mouse button constants
const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

// Game represents the interface that the engine calls every tick and frame.
type Game interface {
	// Update updates the logic. It is called every tick (typically 60 times per second).
	Update() error

	// Draw draws the screen. It is called every frame.
	Draw(screen Surface)

	// Layout accepts the outside size (e.g., window size) and returns the logical screen size.
	// The logical screen size is used for rendering and input coordinates.
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// Engine represents the engine that manages the frame loop and window.
type Engine interface {
	// SetWindowSize sets the window size in pixels.
	SetWindowSize(width, height int)

	// SetWindowTitle sets the window title.
	SetWindowTitle(title string)

	// SetWindowResizable enables or disables window resizing.
	SetWindowResizable(resizable bool)

	// RunGame runs the loop with the provided game.
	// This is a blocking call that runs until the window closes.
	RunGame(game Game) error
}
