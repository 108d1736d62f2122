package selection

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/fieldview/internal/core/geom"
	"chosenoffset.com/fieldview/internal/field"
	"chosenoffset.com/fieldview/internal/field/transform"
	"chosenoffset.com/fieldview/internal/render/color"
)

// identity maps world coordinates straight to screen pixels.
type identity struct{}

func (identity) ToScreen(p geom.Point) geom.Point { return p }
func (identity) ToWorld(p geom.Point) geom.Point  { return p }
func (identity) LengthToScreen(l float64) float64 { return l }
func (identity) LengthToWorld(l float64) float64  { return l }

var _ transform.Transform = identity{}

func square(x0, y0, x1, y1 float64) geom.Polygon {
	return geom.Polygon{geom.Pt(x0, y0), geom.Pt(x1, y0), geom.Pt(x1, y1), geom.Pt(x0, y1)}
}

func selectedWhen(v *bool) func(field.Snapshot) bool {
	return func(field.Snapshot) bool { return *v }
}

func assertColorNear(t *testing.T, want, got color.Color, delta float64) {
	t.Helper()
	assert.InDelta(t, want.R, got.R, delta)
	assert.InDelta(t, want.G, got.G, delta)
	assert.InDelta(t, want.B, got.B, delta)
}

func TestResolvePriority(t *testing.T) {
	assert.Equal(t, StateSelected, Resolve(true, true))
	assert.Equal(t, StateSelected, Resolve(true, false))
	assert.Equal(t, StateHovered, Resolve(false, true))
	assert.Equal(t, StateIdle, Resolve(false, false))
}

func TestFullViewportRegionBeforeUpdate(t *testing.T) {
	r := New(Definition{ID: "all", Polygon: square(0, 0, 800, 600)})

	assert.True(t, r.Contains(geom.Pt(400, 300), identity{}))
	assert.Equal(t, IdleColor, r.LabelColor())
}

func TestFirstUpdateSeedsTarget(t *testing.T) {
	selected := true
	r := New(Definition{ID: "r", Polygon: square(0, 0, 1, 1), Selected: selectedWhen(&selected)})

	r.Update(0.016, false, field.Snapshot{})
	assert.Equal(t, SelectedColor, r.LabelColor())
	assert.Equal(t, StateSelected, r.State())
	assert.True(t, r.Selected())

	// AnimationAngle 0 points along +Y.
	assert.InDelta(t, 0, r.Offset().X, 1e-12)
	assert.InDelta(t, SelectedOffset, r.Offset().Y, 1e-12)
}

func TestConvergesToTarget(t *testing.T) {
	selected := false
	r := New(Definition{ID: "r", Polygon: square(0, 0, 1, 1), AnimationAngle: math.Pi / 2, Selected: selectedWhen(&selected)})
	r.Update(0.016, false, field.Snapshot{})
	assert.Equal(t, IdleColor, r.LabelColor())

	selected = true
	for i := 0; i < 300; i++ { // ~5 seconds at 60 Hz
		r.Update(1.0/60, false, field.Snapshot{})
	}
	assertColorNear(t, SelectedColor, r.LabelColor(), 1e-6)
	assert.InDelta(t, SelectedOffset, r.Offset().X, 1e-9)
	assert.InDelta(t, 0, r.Offset().Y, 1e-9)
}

func TestZeroDeltaIsNoOp(t *testing.T) {
	hovered := false
	r := New(Definition{ID: "r", Polygon: square(0, 0, 1, 1)})
	r.Update(0.016, hovered, field.Snapshot{})
	r.Update(0.05, true, field.Snapshot{})
	before, offset := r.LabelColor(), r.Offset()

	r.Update(0, false, field.Snapshot{})
	assert.Equal(t, before, r.LabelColor())
	assert.Equal(t, offset, r.Offset())

	r.Update(0, true, field.Snapshot{})
	assert.Equal(t, before, r.LabelColor())
}

func TestFrameRateIndependence(t *testing.T) {
	coarse := New(Definition{ID: "a", Polygon: square(0, 0, 1, 1)})
	fine := New(Definition{ID: "b", Polygon: square(0, 0, 1, 1)})
	coarse.Update(0, false, field.Snapshot{})
	fine.Update(0, false, field.Snapshot{})

	coarse.Update(0.1, true, field.Snapshot{})
	for i := 0; i < 10; i++ {
		fine.Update(0.01, true, field.Snapshot{})
	}

	assertColorNear(t, coarse.LabelColor(), fine.LabelColor(), 1e-9)
	assert.InDelta(t, coarse.Offset().Y, fine.Offset().Y, 1e-12)
}

func TestSmoothing(t *testing.T) {
	assert.Equal(t, 0.0, Smoothing(0))
	assert.Equal(t, 0.0, Smoothing(-1))
	assert.InDelta(t, 1-math.Exp(-1.5), Smoothing(0.1), 1e-12)
	assert.Less(t, Smoothing(100), 1.0+1e-12)
}

func TestLabelScreenPositionIncludesOffset(t *testing.T) {
	r := New(Definition{
		ID:             "r",
		Polygon:        square(0, 0, 1, 1),
		LabelPosition:  geom.Pt(10, 20),
		LabelSize:      0.5,
		AnimationAngle: math.Pi,
	})
	r.Update(0, true, field.Snapshot{})

	pos := r.LabelScreenPosition(identity{})
	assert.InDelta(t, 10, pos.X, 1e-12)
	assert.InDelta(t, 20-HoverOffset, pos.Y, 1e-12)

	font := r.Font(identity{})
	assert.Equal(t, 0.5, font.Size)
	assert.True(t, font.Bold)
}

func TestPointerDownFiresAllOverlapping(t *testing.T) {
	var fired []string
	onSelect := func(id string) { fired = append(fired, id) }

	regions := []*Region{
		New(Definition{ID: "left", Polygon: square(0, 0, 10, 10), OnSelect: onSelect}),
		New(Definition{ID: "overlap", Polygon: square(5, 5, 15, 15), OnSelect: onSelect}),
		New(Definition{ID: "far", Polygon: square(100, 100, 110, 110), OnSelect: onSelect}),
		New(Definition{ID: "degenerate", Polygon: geom.Polygon{geom.Pt(0, 0), geom.Pt(20, 20)}, OnSelect: onSelect}),
	}

	ids := PointerDown(regions, geom.Pt(7, 7), identity{})
	require.Equal(t, []string{"left", "overlap"}, ids)
	assert.Equal(t, []string{"left", "overlap"}, fired)

	fired = nil
	assert.Empty(t, PointerDown(regions, geom.Pt(50, 50), identity{}))
	assert.Empty(t, fired)
}

func TestSelectWithoutCallback(t *testing.T) {
	r := New(Definition{ID: "r", Polygon: square(0, 0, 1, 1)})
	assert.NotPanics(t, r.Select)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "hovered", StateHovered.String())
	assert.Equal(t, "selected", StateSelected.String())
}
