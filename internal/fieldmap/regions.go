package fieldmap

import (
	"fmt"
	"math"

	"chosenoffset.com/fieldview/internal/core/geom"
	"chosenoffset.com/fieldview/internal/field"
	"chosenoffset.com/fieldview/internal/field/layout"
	"chosenoffset.com/fieldview/internal/render"
	"chosenoffset.com/fieldview/internal/selection"
)

// Level region placement in the elevation view, meters.
const (
	levelLeft      = -0.35
	levelRight     = 0.40
	levelLabelX    = -0.12
	levelLabelSize = 0.1
)

// levelBands are the vertical extents of the scoring levels along the branch
// profile, bottom to top.
var levelBands = [...]struct{ bottom, top float64 }{
	{0.30, 0.55}, // L1, the trough
	{0.55, 0.90}, // L2
	{0.95, 1.30}, // L3
	{1.50, 1.90}, // L4
}

// Branch region placement in the reef view, meters.
const (
	branchHalfWidth  = 0.11
	branchOvershoot  = 0.10
	branchLabelReach = 0.25
	branchLabelSize  = 0.12
)

// LevelID returns the region ID of a scoring level, e.g. "L3".
func LevelID(level int) string { return fmt.Sprintf("L%d", level) }

// DefaultRegions builds the level regions of the elevation view and the
// branch regions of the reef view. onLevel receives the level number and
// onBranch the branch letter; either may be nil.
func DefaultRegions(f *layout.Field, onLevel func(level int), onBranch func(id string)) (levels, branches []selection.Definition) {
	for i, band := range levelBands {
		level := i + 1
		levels = append(levels, selection.Definition{
			ID: LevelID(level),
			Polygon: geom.Polygon{
				geom.Pt(levelLeft, band.bottom),
				geom.Pt(levelRight, band.bottom),
				geom.Pt(levelRight, band.top),
				geom.Pt(levelLeft, band.top),
			},
			Label:          LevelID(level),
			LabelSize:      levelLabelSize,
			LabelPosition:  geom.Pt(levelLabelX, (band.bottom+band.top)/2),
			LabelAlign:     render.TextAlignRight,
			AnimationAngle: -math.Pi / 2,
			Selected:       func(s field.Snapshot) bool { return s.LevelSelected(level) },
			OnSelect: func(string) {
				if onLevel != nil {
					onLevel(level)
				}
			},
		})
	}

	for _, b := range f.Branches {
		dir := b.Top.Sub(b.Bottom).Unit()
		side := geom.Pt(-dir.Y, dir.X).Scale(branchHalfWidth)
		tip := b.Top.Add(dir.Scale(branchOvershoot))

		branches = append(branches, selection.Definition{
			ID: b.ID,
			Polygon: geom.Polygon{
				b.Bottom.Add(side),
				tip.Add(side),
				tip.Sub(side),
				b.Bottom.Sub(side),
			},
			Label:          b.ID,
			LabelSize:      branchLabelSize,
			LabelPosition:  b.Top.Add(dir.Scale(branchLabelReach)),
			LabelAlign:     render.TextAlignCenter,
			AnimationAngle: math.Atan2(dir.X, dir.Y),
			Selected:       func(s field.Snapshot) bool { return s.BranchSelected(b.ID) },
			OnSelect: func(id string) {
				if onBranch != nil {
					onBranch(id)
				}
			},
		})
	}
	return levels, branches
}
