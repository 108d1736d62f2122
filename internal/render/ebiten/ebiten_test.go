package ebiten

import (
	"image/color"
	"testing"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/stretchr/testify/assert"

	"chosenoffset.com/fieldview/internal/render"
)

func TestFillRuleMapsToVector(t *testing.T) {
	assert.Equal(t, vector.FillRuleEvenOdd, toEbitenFillRule(render.FillRuleEvenOdd))
	assert.Equal(t, vector.FillRuleNonZero, toEbitenFillRule(render.FillRuleNonZero))
}

func TestStrokeStyleMapsToVector(t *testing.T) {
	assert.Equal(t, vector.LineCapRound, toEbitenLineCap(render.LineCapRound))
	assert.Equal(t, vector.LineCapSquare, toEbitenLineCap(render.LineCapSquare))
	assert.Equal(t, vector.LineCapButt, toEbitenLineCap(render.LineCapButt))

	assert.Equal(t, vector.LineJoinRound, toEbitenLineJoin(render.LineJoinRound))
	assert.Equal(t, vector.LineJoinBevel, toEbitenLineJoin(render.LineJoinBevel))
	assert.Equal(t, vector.LineJoinMiter, toEbitenLineJoin(render.LineJoinMiter))
}

func TestDrawOptionsCarryColor(t *testing.T) {
	op := drawOptions(color.Transparent)
	assert.True(t, op.AntiAlias)
	assert.Zero(t, op.ColorScale.A())

	op = drawOptions(color.White)
	assert.Equal(t, float32(1), op.ColorScale.R())
	assert.Equal(t, float32(1), op.ColorScale.A())
}

func TestTextAlignment(t *testing.T) {
	assert.Equal(t, text.AlignEnd, toTextAlign(render.TextAlignRight))
	assert.Equal(t, text.AlignCenter, toTextAlign(render.TextAlignCenter))
	assert.Equal(t, text.AlignCenter, toTextBaseline(render.TextBaselineMiddle))
}
