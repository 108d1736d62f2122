// Package fieldmap draws the operator's field map: the top-down reef view,
// the side elevation of a branch, the robot glyph and the selection regions
// on top of them. It is driven once per frame with a telemetry snapshot and
// the latest pointer position, and draws onto any render.Surface.
package fieldmap

import (
	"fmt"

	"go.uber.org/zap"

	"chosenoffset.com/fieldview/internal/core/geom"
	"chosenoffset.com/fieldview/internal/field"
	"chosenoffset.com/fieldview/internal/field/layout"
	"chosenoffset.com/fieldview/internal/field/transform"
	"chosenoffset.com/fieldview/internal/logging"
	"chosenoffset.com/fieldview/internal/render"
	"chosenoffset.com/fieldview/internal/selection"
)

// Options control how the map is drawn.
type Options struct {
	// Stylized draws flat fills with black outlines instead of gradients.
	Stylized bool
	// DebugBoundaries fills and strokes every region's hit polygon.
	DebugBoundaries bool
	// OutlineThickness is the stylized outline width in pixels.
	OutlineThickness float64
	// ReferenceAlliance is the alliance the field geometry is authored for.
	ReferenceAlliance field.Alliance
}

// DefaultOptions returns the options the display starts with.
func DefaultOptions() Options {
	return Options{
		Stylized:          true,
		OutlineThickness:  8,
		ReferenceAlliance: field.AllianceBlue,
	}
}

// Input is the pointer state threaded into each frame.
type Input struct {
	// Pointer is the last known pointer position in screen pixels, or nil
	// if the pointer has not entered the surface yet.
	Pointer *geom.Point
}

// Map is the render pipeline for one field.
type Map struct {
	field  *layout.Field
	opts   Options
	logger *zap.Logger

	outer, inner, perimeter, trough geom.Polygon

	// reefBounds holds the ring bounds unmirrored [0] and mirrored [1].
	reefBounds [2]geom.Bounds

	levels   []*selection.Region
	branches []*selection.Region
}

// New creates the pipeline. levels are drawn and hit-tested in the
// elevation view, branches in the (alliance mirrored) reef view.
func New(f *layout.Field, opts Options, levels, branches []selection.Definition, logger *zap.Logger) *Map {
	logger = logging.OrNop(logger)

	m := &Map{
		field:  f,
		opts:   opts,
		logger: logger,
	}
	m.outer, m.inner, m.perimeter, m.trough = f.Rings()

	rings := []geom.Polygon{m.outer, m.inner, m.perimeter, m.trough}
	m.reefBounds[0] = geom.BoundsOf(rings...)
	mirror := transform.Mirror{Center: f.Center, Active: true}
	mirrored := make([]geom.Polygon, len(rings))
	for i, ring := range rings {
		mirrored[i] = ring.Map(mirror.Apply)
	}
	m.reefBounds[1] = geom.BoundsOf(mirrored...)

	for _, def := range levels {
		m.levels = append(m.levels, selection.New(def))
	}
	for _, def := range branches {
		m.branches = append(m.branches, selection.New(def))
	}

	logger.Info("field map ready",
		zap.String("game", f.Game),
		zap.Any("reef_bounds", m.reefBounds[0]),
		zap.Any("reef_bounds_mirrored", m.reefBounds[1]),
		zap.Int("level_regions", len(m.levels)),
		zap.Int("branch_regions", len(m.branches)),
	)
	return m
}

// Options returns the current options.
func (m *Map) Options() Options { return m.opts }

// SetStylized switches between stylized and gradient drawing.
func (m *Map) SetStylized(on bool) { m.opts.Stylized = on }

// SetDebugBoundaries shows or hides region hit polygons.
func (m *Map) SetDebugBoundaries(on bool) { m.opts.DebugBoundaries = on }

// Levels returns the elevation view regions.
func (m *Map) Levels() []*selection.Region { return m.levels }

// Branches returns the reef view regions.
func (m *Map) Branches() []*selection.Region { return m.branches }

// views are the transforms of one frame.
type views struct {
	elevation *transform.Elevation
	// reef places absolute field coordinates; mirroredReef first reflects
	// blue-authored geometry onto the active alliance's reef.
	reef         *transform.Reef
	mirror       transform.Mirror
	mirroredReef transform.Mirrored
}

func (m *Map) views(width, height int, alliance field.Alliance) (views, error) {
	vp := transform.Viewport{Width: float64(width), Height: float64(height)}

	elevation, err := transform.NewElevation(vp, m.field.BranchMinY, m.field.BranchMaxY)
	if err != nil {
		return views{}, fmt.Errorf("failed to build elevation view: %w", err)
	}

	mirror := transform.MirrorFor(alliance, m.opts.ReferenceAlliance, m.field.Center)
	bounds := m.reefBounds[0]
	if mirror.Active {
		bounds = m.reefBounds[1]
	}
	reef, err := transform.NewReef(vp, bounds)
	if err != nil {
		return views{}, fmt.Errorf("failed to build reef view: %w", err)
	}

	return views{
		elevation:    elevation,
		reef:         reef,
		mirror:       mirror,
		mirroredReef: transform.Mirrored{Inner: reef, Mirror: mirror},
	}, nil
}

// Frame draws one frame and advances every region's animation by dt
// seconds. A surface without area yields an error wrapping
// transform.ErrDegenerate and draws nothing.
func (m *Map) Frame(s render.Surface, snap field.Snapshot, in Input, dt float64) error {
	w, h := s.Size()
	v, err := m.views(w, h, snap.Alliance)
	if err != nil {
		return err
	}

	// Step 1-4: reef rings, outline, shaded perimeter and trough, branches
	m.drawReef(s, v, snap.Alliance)

	// Step 5: robot glyph, in absolute field coordinates
	m.drawRobot(s, v.reef, snap)

	m.drawBranchProfile(s, v.elevation)

	// Step 6: region overlays on top of everything else
	m.drawRegions(s, m.levels, v.elevation, snap, in, dt)
	m.drawRegions(s, m.branches, v.mirroredReef, snap, in, dt)
	return nil
}

// PointerDown selects every region under p and returns their IDs, levels
// first. Overlapping regions all fire.
func (m *Map) PointerDown(width, height int, snap field.Snapshot, p geom.Point) ([]string, error) {
	v, err := m.views(width, height, snap.Alliance)
	if err != nil {
		return nil, err
	}

	fired := selection.PointerDown(m.levels, p, v.elevation)
	fired = append(fired, selection.PointerDown(m.branches, p, v.mirroredReef)...)
	if len(fired) > 0 {
		m.logger.Debug("pointer down", zap.Float64("x", p.X), zap.Float64("y", p.Y), zap.Strings("regions", fired))
	}
	return fired, nil
}
