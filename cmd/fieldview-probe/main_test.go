package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/fieldview/internal/field/layout"
	"chosenoffset.com/fieldview/internal/field/transform"
	"chosenoffset.com/fieldview/internal/fieldmap"
)

func defaultParams() probeParams {
	return probeParams{width: 1280, height: 720, pointerX: -1, pointerY: -1, alliance: "blue", stylized: true}
}

func TestReportListsLabels(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, report(defaultParams(), &out))

	assert.Contains(t, out.String(), "labels:    L1 L2 L3 L4")
	assert.NotContains(t, out.String(), "Pointer")
	assert.NotContains(t, out.String(), "WARNING")
}

func TestReportPointerOverLevel(t *testing.T) {
	f := layout.Reefscape()
	levels, _ := fieldmap.DefaultRegions(f, nil, nil)
	elevation, err := transform.NewElevation(transform.Viewport{Width: 1280, Height: 720}, f.BranchMinY, f.BranchMaxY)
	require.NoError(t, err)
	p := elevation.ToScreen(levels[2].Polygon.Centroid())

	params := defaultParams()
	params.pointerX, params.pointerY = p.X, p.Y

	var out bytes.Buffer
	require.NoError(t, report(params, &out))
	assert.Contains(t, out.String(), "level 3\n")
}

func TestReportRejectsBadInput(t *testing.T) {
	params := defaultParams()
	params.alliance = "green"
	assert.Error(t, report(params, &bytes.Buffer{}))

	params = defaultParams()
	params.width = 0
	assert.Error(t, report(params, &bytes.Buffer{}))
}

func TestReportUnknownAlliance(t *testing.T) {
	params := defaultParams()
	params.alliance = ""

	var out bytes.Buffer
	require.NoError(t, report(params, &out))
	assert.Contains(t, out.String(), "alliance: unknown")
}
