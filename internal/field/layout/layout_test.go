package layout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/fieldview/internal/core/geom"
)

func TestReefscapeConvertsFeet(t *testing.T) {
	f := Reefscape()

	assert.Equal(t, "Reefscape", f.Game)
	assert.InDelta(t, 17.548, f.Size.X, 1e-3)
	assert.InDelta(t, 8.052, f.Size.Y, 1e-3)
	assert.InDelta(t, 8.774, f.Center.X, 1e-3)
	// The reef sits on the field's horizontal center line.
	assert.InDelta(t, f.ReefCenter.Y, f.Center.Y, 1e-3)
}

func TestRingsShareCenter(t *testing.T) {
	f := Reefscape()
	outer, inner, perimeter, trough := f.Rings()

	for name, ring := range map[string]geom.Polygon{"outer": outer, "inner": inner, "perimeter": perimeter, "trough": trough} {
		require.Len(t, ring, ReefSides, name)
		c := ring.Centroid()
		assert.InDelta(t, f.ReefCenter.X, c.X, 1e-9, name)
		assert.InDelta(t, f.ReefCenter.Y, c.Y, 1e-9, name)
	}

	// First vertex is the top of the hexagon.
	assert.InDelta(t, f.ReefCenter.X, outer[0].X, 1e-9)
	assert.InDelta(t, f.ReefCenter.Y+f.OuterRadius, outer[0].Y, 1e-9)

	assert.Greater(t, f.OuterRadius, f.InnerRadius)
	assert.Greater(t, f.InnerRadius, f.PerimeterRadius)
	assert.Greater(t, f.PerimeterRadius, f.TroughRadius)
}

func TestBranches(t *testing.T) {
	f := Reefscape()
	require.Len(t, f.Branches, 12)

	seen := map[string]bool{}
	for _, b := range f.Branches {
		assert.False(t, seen[b.ID], "duplicate branch %s", b.ID)
		seen[b.ID] = true

		// Tops point away from the reef center.
		assert.Greater(t, geom.Dist(f.ReefCenter, b.Top), geom.Dist(f.ReefCenter, b.Bottom), b.ID)
	}

	j, ok := f.Branch("J")
	require.True(t, ok)
	assert.Equal(t, geom.Pt(4.737, 4.784), j.Top)

	_, ok = f.Branch("Z")
	assert.False(t, ok)
}

func TestBranchProfileArcsMeetLines(t *testing.T) {
	f := Reefscape()

	// The arcs are stated in screen orientation; with the Y flip of the
	// elevation view the end of the back curve lands on the L4 tilt line.
	back := f.BranchProfile[1].(geom.Arc)
	end := geom.Pt(back.Radius, 0).Rotate(back.EndAngle)
	world := back.Center.Add(geom.Pt(end.X, -end.Y))
	tilt := f.BranchProfile[2].(geom.Line)
	assert.InDelta(t, tilt.Start.X, world.X, 2e-3)
	assert.InDelta(t, tilt.Start.Y, world.Y, 2e-3)
}

func TestRobotInMeters(t *testing.T) {
	r := Reefscape().Robot
	assert.InDelta(t, 0.762, r.Width, 1e-9)
	assert.InDelta(t, 0.762, r.Length, 1e-9)
	assert.InDelta(t, 0.09525, r.Bumper, 1e-9)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "field.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("game: Test\nfield-size: [10, 5]\nfield-unit: meter\n"), 0o644))
	f, err := Load(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "Test", f.Game)
	assert.Equal(t, geom.Pt(10, 5), f.Size)
	assert.Equal(t, geom.Pt(5, 2.5), f.Center)

	jsonPath := filepath.Join(dir, "field.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"field-size": [120, 60], "field-unit": "inch"}`), 0o644))
	f, err = Load(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "Reefscape", f.Game)
	assert.InDelta(t, 3.048, f.Size.X, 1e-9)

	f, err = Load(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "Reefscape", f.Game)

	badUnit := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(badUnit, []byte(`{"field-unit": "furlong"}`), 0o644))
	_, err = Load(badUnit)
	assert.ErrorIs(t, err, ErrUnknownUnit)

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{`), 0o644))
	_, err = Load(broken)
	assert.Error(t, err)
}
