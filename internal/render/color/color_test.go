package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Color
	}{
		{"six digit", "#a70fb9", FromRGB(0xa7, 0x0f, 0xb9)},
		{"six digit upper", "#A80004", FromRGB(0xa8, 0x00, 0x04)},
		{"three digit", "#ccc", FromRGB(0xcc, 0xcc, 0xcc)},
		{"three digit mixed", "#8af", FromRGB(0x88, 0xaa, 0xff)},
		{"name black", "black", FromRGB(0, 0, 0)},
		{"name gray", "gray", FromRGB(128, 128, 128)},
		{"name case insensitive", "White", FromRGB(255, 255, 255)},
		{"name green is full intensity", "green", FromRGB(0, 255, 0)},
		{"name purple", "Purple", FromRGB(128, 0, 128)},
		{"css only name", "darkgreen", FromRGB(0, 100, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseInvalid(t *testing.T) {
	for _, in := range []string{"", "#", "#12", "#1234", "#12345", "#1234567", "#ggg", "#12345z", "notacolor", "a70fb9"} {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			assert.ErrorIs(t, err, ErrInvalidColorFormat)
		})
	}
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() { MustParse("#xyz") })
	assert.NotPanics(t, func() { MustParse("#888") })
}

func TestAdjustBrightnessDoesNotClamp(t *testing.T) {
	c := FromRGB(200, 100, 50).AdjustBrightness(1.5)
	assert.Equal(t, FromRGB(300, 150, 75), c)

	r, g, b, a := c.RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(150*0x101), g)
	assert.Equal(t, uint32(75*0x101), b)
	assert.Equal(t, uint32(0xffff), a)
}

func TestLerp(t *testing.T) {
	a := FromRGB(0, 100, 200)
	b := FromRGB(100, 0, 50)

	assert.Equal(t, a, a.Lerp(b, 0))
	assert.Equal(t, b, a.Lerp(b, 1))
	assert.Equal(t, FromRGB(50, 50, 125), a.Lerp(b, 0.5))
}

func TestLerpSelfIsIdentity(t *testing.T) {
	colors := []Color{
		MustParse("#aaffaa"),
		MustParse("#888"),
		FromRGB(12.5, 300, -4),
	}
	for _, c := range colors {
		for _, tt := range []float64{-3, 0, 0.137, 0.5, 1, 7.25} {
			assert.Equal(t, c, c.Lerp(c, tt))
		}
	}
}

func TestWithAlpha(t *testing.T) {
	c := FromRGB(0, 0, 0).WithAlpha(0.5)
	assert.Equal(t, uint8(128), c.A)
	assert.Equal(t, uint8(0), c.R)

	c = FromRGB(400, 10, 10).WithAlpha(2)
	assert.Equal(t, uint8(255), c.R)
	assert.Equal(t, uint8(255), c.A)
}
