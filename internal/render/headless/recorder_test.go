package headless

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/fieldview/internal/core/geom"
	"chosenoffset.com/fieldview/internal/render"
)

func TestRecorderCapturesPathAndStyle(t *testing.T) {
	r := NewRecorder(800, 600)
	w, h := r.Size()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)

	r.BeginPath()
	r.MoveTo(0, 0)
	r.LineTo(10, 0)
	r.LineTo(10, 10)
	r.ClosePath()
	r.SetFillColor(color.White)
	r.Fill(render.FillRuleEvenOdd)

	r.SetLineWidth(3)
	r.SetLineCap(render.LineCapRound)
	r.Stroke()

	ops := r.Ops()
	require.Len(t, ops, 2)
	assert.Equal(t, OpFill, ops[0].Kind)
	assert.Equal(t, render.FillRuleEvenOdd, ops[0].Rule)
	assert.Equal(t, color.White, ops[0].Color)
	assert.Equal(t, []geom.Point{geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(10, 10)}, ops[0].Points())
	assert.Equal(t, 1, ops[0].Subpaths())

	assert.Equal(t, OpStroke, ops[1].Kind)
	assert.Equal(t, 3.0, ops[1].LineWidth)
	assert.Equal(t, render.LineCapRound, ops[1].LineCap)
	assert.False(t, r.SawNaN())
}

func TestRecorderPathIsSnapshotted(t *testing.T) {
	r := NewRecorder(100, 100)
	r.BeginPath()
	r.MoveTo(1, 1)
	r.Fill(render.FillRuleNonZero)
	r.LineTo(2, 2)
	r.Stroke()

	ops := r.Ops()
	require.Len(t, ops, 2)
	assert.Len(t, ops[0].Path, 1)
	assert.Len(t, ops[1].Path, 2)
}

func TestRecorderText(t *testing.T) {
	r := NewRecorder(100, 100)
	r.SetFont(render.Font{Size: 12, Bold: true})
	r.SetTextAlign(render.TextAlignRight)
	r.SetTextBaseline(render.TextBaselineMiddle)
	r.StrokeText("L4", 5, 6)
	r.FillText("L4", 5, 6)

	assert.Equal(t, []string{"L4"}, r.Texts())
	op := r.OpsOfKind(OpStrokeText)[0]
	assert.Equal(t, geom.Pt(5, 6), op.At)
	assert.Equal(t, render.TextAlignRight, op.Align)
	assert.True(t, op.Font.Bold)
}

func TestRecorderFlagsNaN(t *testing.T) {
	r := NewRecorder(10, 10)
	r.MoveTo(math.NaN(), 0)
	assert.True(t, r.SawNaN())

	r.Reset()
	assert.False(t, r.SawNaN())
	assert.Empty(t, r.Ops())
}
