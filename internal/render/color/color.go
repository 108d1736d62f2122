// Package color is the RGB color model used by the field map.
//
// Channels are float64 in the 0..255 range. They are deliberately left
// unclamped after AdjustBrightness and extrapolating Lerp calls; the value is
// clamped only when it is handed to a drawing backend through RGBA.
package color

import (
	"errors"
	"fmt"
	stdcolor "image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ErrInvalidColorFormat is returned for strings that are neither a known
// color name nor '#' followed by 3 or 6 hex digits.
var ErrInvalidColorFormat = errors.New("invalid color format")

// Color is an RGB triple with channels nominally in 0..255.
type Color struct {
	R, G, B float64
}

var _ stdcolor.Color = Color{}

// FromRGB builds a color from explicit channel values.
func FromRGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// basicNames are the display's primary colors. They win over the CSS table,
// which maps "green" to #008000.
var basicNames = map[string]string{
	"red":     "#ff0000",
	"green":   "#00ff00",
	"blue":    "#0000ff",
	"yellow":  "#ffff00",
	"purple":  "#800080",
	"cyan":    "#00ffff",
	"magenta": "#ff00ff",
	"white":   "#ffffff",
	"black":   "#000000",
}

// Parse builds a color from a color name (e.g. "gray", "black") or a hex
// string of the form "#rgb" or "#rrggbb". The primary names red, green,
// blue, yellow, purple, cyan, magenta, white and black are full intensity
// ("green" is #00ff00); any other name is looked up in the CSS table.
func Parse(s string) (Color, error) {
	if hex, ok := basicNames[strings.ToLower(s)]; ok {
		s = hex
	} else if named, ok := colornames.Map[strings.ToLower(s)]; ok {
		return Color{R: float64(named.R), G: float64(named.G), B: float64(named.B)}, nil
	}
	if !strings.HasPrefix(s, "#") {
		return Color{}, fmt.Errorf("%w: %q is not a color name or hex string", ErrInvalidColorFormat, s)
	}

	digits := s[1:]
	if len(digits) != 3 && len(digits) != 6 {
		return Color{}, fmt.Errorf("%w: %q must have 3 or 6 hex digits", ErrInvalidColorFormat, s)
	}
	for _, r := range digits {
		if !isHexDigit(r) {
			return Color{}, fmt.Errorf("%w: %q contains non-hex digit %q", ErrInvalidColorFormat, s, r)
		}
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %v", ErrInvalidColorFormat, err)
	}
	return Color{
		R: math.Round(c.R * 255),
		G: math.Round(c.G * 255),
		B: math.Round(c.B * 255),
	}, nil
}

// MustParse is like Parse but panics on error. Use it for constant colors only.
func MustParse(s string) Color {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// AdjustBrightness multiplies every channel by k without clamping.
func (c Color) AdjustBrightness(k float64) Color {
	return Color{R: c.R * k, G: c.G * k, B: c.B * k}
}

// Lerp interpolates channel-wise from c toward other by t.
func (c Color) Lerp(other Color, t float64) Color {
	return Color{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
	}
}

func (c Color) unit() colorful.Color {
	return colorful.Color{R: c.R / 255, G: c.G / 255, B: c.B / 255}
}

// RGBA implements image/color.Color. Out-of-range channels are clamped here
// and nowhere else.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.unit().Clamped().RGBA()
}

// String formats the color like a CSS rgb() value.
func (c Color) String() string {
	return fmt.Sprintf("rgb(%g, %g, %g)", c.R, c.G, c.B)
}

// WithAlpha returns the clamped color with the given opacity in 0..1.
func (c Color) WithAlpha(alpha float64) stdcolor.NRGBA {
	r, g, b := c.unit().Clamped().RGB255()
	return stdcolor.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(math.Max(0, math.Min(1, alpha)) * 255))}
}
