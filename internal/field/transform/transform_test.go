package transform

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/fieldview/internal/core/geom"
	"chosenoffset.com/fieldview/internal/field"
)

const eps = 1e-9

var (
	viewport   = Viewport{Width: 1280, Height: 800}
	reefBounds = geom.Bounds{Min: geom.Pt(3.3, 2.6), Max: geom.Pt(5.7, 5.4)}
)

func transforms(t *testing.T) map[string]Transform {
	t.Helper()
	elevation, err := NewElevation(viewport, -0.016, 1.809)
	require.NoError(t, err)
	reef, err := NewReef(viewport, reefBounds)
	require.NoError(t, err)

	center := geom.Pt(8.774, 4.026)
	return map[string]Transform{
		"elevation": elevation,
		"reef":      reef,
		"mirrored":  Mirrored{Inner: reef, Mirror: Mirror{Center: center, Active: true}},
		"pose":      Pose{Inner: reef, Position: geom.Pt(4, 3), Heading: math.Pi / 5},
	}
}

func TestLengthRoundTrip(t *testing.T) {
	for name, tr := range transforms(t) {
		t.Run(name, func(t *testing.T) {
			for _, l := range []float64{0, 1e-6, 0.042, 1, 3.14159, 250} {
				assert.InDelta(t, l, tr.LengthToWorld(tr.LengthToScreen(l)), eps*math.Max(1, l))
				assert.Greater(t, tr.LengthToScreen(1), 0.0)
			}
		})
	}
}

func TestPointRoundTrip(t *testing.T) {
	for name, tr := range transforms(t) {
		t.Run(name, func(t *testing.T) {
			for _, p := range []geom.Point{geom.Pt(0, 0), geom.Pt(4.489, 4.026), geom.Pt(-1.5, 12.25)} {
				back := tr.ToWorld(tr.ToScreen(p))
				assert.InDelta(t, p.X, back.X, 1e-6)
				assert.InDelta(t, p.Y, back.Y, 1e-6)
			}
		})
	}
}

func TestElevationLayout(t *testing.T) {
	e, err := NewElevation(viewport, 0, 2)
	require.NoError(t, err)

	// scale = 800 * 0.75 / 2 = 300 px per meter
	assert.InDelta(t, 300, e.LengthToScreen(1), eps)

	origin := e.ToScreen(geom.Pt(0, 0))
	assert.InDelta(t, 128, origin.X, eps)
	assert.InDelta(t, 720, origin.Y, eps)

	// World up is screen up.
	up := e.ToScreen(geom.Pt(0, 1))
	assert.Less(t, up.Y, origin.Y)
}

func TestReefAxesAreSwapped(t *testing.T) {
	r, err := NewReef(viewport, reefBounds)
	require.NoError(t, err)

	// scale = 800 * 0.6 / 2.4 = 200 px per meter
	assert.InDelta(t, 200, r.LengthToScreen(1), eps)

	min := r.ToScreen(reefBounds.Min)
	assert.InDelta(t, 1024, min.X, eps)
	assert.InDelta(t, 640, min.Y, eps)

	// +X world moves up the screen, +Y world moves left.
	px := r.ToScreen(reefBounds.Min.Add(geom.Pt(1, 0)))
	assert.InDelta(t, min.X, px.X, eps)
	assert.InDelta(t, min.Y-200, px.Y, eps)

	py := r.ToScreen(reefBounds.Min.Add(geom.Pt(0, 1)))
	assert.InDelta(t, min.X-200, py.X, eps)
	assert.InDelta(t, min.Y, py.Y, eps)
}

func TestDegenerateTransforms(t *testing.T) {
	_, err := NewElevation(Viewport{}, 0, 1)
	assert.ErrorIs(t, err, ErrDegenerate)

	_, err = NewElevation(viewport, 1, 1)
	assert.ErrorIs(t, err, ErrDegenerate)

	_, err = NewReef(viewport, geom.Bounds{})
	assert.ErrorIs(t, err, ErrDegenerate)

	_, err = NewReef(Viewport{Width: 100, Height: 0}, reefBounds)
	assert.ErrorIs(t, err, ErrDegenerate)
}

func TestReflectIsInvolution(t *testing.T) {
	centers := []geom.Point{geom.Pt(0, 0), geom.Pt(8.5, 4), geom.Pt(-2.25, 0.125)}
	points := []geom.Point{geom.Pt(0, 0), geom.Pt(4.5, 4.25), geom.Pt(-3.75, 10.5), geom.Pt(1024, -0.0625)}
	for _, c := range centers {
		for _, p := range points {
			assert.Equal(t, p, Reflect(Reflect(p, c), c))
		}
	}

	// Field coordinates come back to within rounding.
	c := geom.Pt(8.774, 4.026)
	for _, p := range []geom.Point{geom.Pt(4.489, 4.026), geom.Pt(5.016087, 4.19056), geom.Pt(3.302, 4.711)} {
		back := Reflect(Reflect(p, c), c)
		assert.InDelta(t, p.X, back.X, 1e-12)
		assert.InDelta(t, p.Y, back.Y, 1e-12)
	}

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10000; i++ {
		p := geom.Pt(rng.Float64()*2*c.X, rng.Float64()*2*c.Y)
		back := Reflect(Reflect(p, c), c)
		require.InDelta(t, p.X, back.X, 1e-13)
		require.InDelta(t, p.Y, back.Y, 1e-13)
	}
}

func TestMirrorFor(t *testing.T) {
	c := geom.Pt(8, 4)

	m := MirrorFor(field.AllianceRed, field.AllianceBlue, c)
	assert.True(t, m.Active)
	assert.Equal(t, geom.Pt(12, 5), m.Apply(geom.Pt(4, 3)))

	m = MirrorFor(field.AllianceBlue, field.AllianceBlue, c)
	assert.False(t, m.Active)
	assert.Equal(t, geom.Pt(4, 3), m.Apply(geom.Pt(4, 3)))

	m = MirrorFor(field.AllianceUnknown, field.AllianceBlue, c)
	assert.False(t, m.Active)
}

func TestPoseRotatesThenTranslates(t *testing.T) {
	e, err := NewElevation(viewport, 0, 2)
	require.NoError(t, err)

	pose := Pose{Inner: e, Position: geom.Pt(1, 1), Heading: math.Pi / 2}
	got := pose.ToScreen(geom.Pt(1, 0))
	want := e.ToScreen(geom.Pt(1, 2))
	assert.InDelta(t, want.X, got.X, eps)
	assert.InDelta(t, want.Y, got.Y, eps)
}
