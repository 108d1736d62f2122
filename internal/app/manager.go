// Package app ties the field map to the window: it turns input into
// pointer state and key toggles, feeds telemetry snapshots into each frame
// and publishes the operator's selections.
package app

import (
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"

	"chosenoffset.com/fieldview/internal/core/geom"
	"chosenoffset.com/fieldview/internal/field"
	"chosenoffset.com/fieldview/internal/field/layout"
	"chosenoffset.com/fieldview/internal/field/transform"
	"chosenoffset.com/fieldview/internal/fieldmap"
	"chosenoffset.com/fieldview/internal/logging"
	"chosenoffset.com/fieldview/internal/render"
	"chosenoffset.com/fieldview/internal/telemetry"
)

// ErrQuit is returned from Update when the operator asks to quit.
var ErrQuit = errors.New("quit requested")

// SnapshotSource supplies the telemetry state for a frame.
type SnapshotSource interface {
	Snapshot() field.Snapshot
}

// Publisher sends a value to a server topic.
type Publisher interface {
	Publish(topic, value string) error
}

// Config collects what the Manager is built from.
type Config struct {
	Field      *layout.Field
	MapOptions fieldmap.Options
	Input      render.InputManager
	Source     SnapshotSource
	Publisher  Publisher // may be nil
	Topics     telemetry.Topics
	Logger     *zap.Logger
	Width      int
	Height     int
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// Manager implements render.Game for the field view.
type Manager struct {
	ScreenWidth  int
	ScreenHeight int
	Map          *fieldmap.Map
	InputMgr     render.InputManager

	source    SnapshotSource
	publisher Publisher
	topics    telemetry.Topics
	logger    *zap.Logger
	clock     func() time.Time

	snapshot  field.Snapshot
	pointer   *geom.Point
	lastFrame time.Time
}

var _ render.Game = (*Manager)(nil)

// NewManager creates the manager and its field map.
func NewManager(c Config) *Manager {
	m := &Manager{
		ScreenWidth:  c.Width,
		ScreenHeight: c.Height,
		InputMgr:     c.Input,
		source:       c.Source,
		publisher:    c.Publisher,
		topics:       c.Topics,
		logger:       logging.OrNop(c.Logger),
		clock:        c.Clock,
	}
	if m.clock == nil {
		m.clock = time.Now
	}

	levels, branches := fieldmap.DefaultRegions(c.Field, m.selectLevel, m.selectBranch)
	m.Map = fieldmap.New(c.Field, c.MapOptions, levels, branches, m.logger)
	return m
}

// Update handles input. It is called every tick.
func (m *Manager) Update() error {
	if m.InputMgr.IsKeyJustPressed(render.KeyEscape) {
		return ErrQuit
	}
	if m.InputMgr.IsKeyJustPressed(render.KeyS) {
		m.Map.SetStylized(!m.Map.Options().Stylized)
		m.logger.Info("stylized mode", zap.Bool("on", m.Map.Options().Stylized))
	}
	if m.InputMgr.IsKeyJustPressed(render.KeyD) {
		m.Map.SetDebugBoundaries(!m.Map.Options().DebugBoundaries)
		m.logger.Info("debug boundaries", zap.Bool("on", m.Map.Options().DebugBoundaries))
	}

	m.snapshot = m.source.Snapshot()

	x, y := m.InputMgr.GetCursorPosition()
	m.pointer = nil
	if x >= 0 && y >= 0 && x < m.ScreenWidth && y < m.ScreenHeight {
		p := geom.Pt(float64(x), float64(y))
		m.pointer = &p
	}

	if m.pointer != nil && m.InputMgr.IsMouseButtonJustPressed(render.MouseButtonLeft) {
		if _, err := m.Map.PointerDown(m.ScreenWidth, m.ScreenHeight, m.snapshot, *m.pointer); err != nil {
			m.logger.Debug("pointer down ignored", zap.Error(err))
		}
	}
	return nil
}

// Draw renders one frame of the field map.
func (m *Manager) Draw(screen render.Surface) {
	now := m.clock()
	var dt float64
	if !m.lastFrame.IsZero() {
		dt = now.Sub(m.lastFrame).Seconds()
	}
	m.lastFrame = now

	err := m.Map.Frame(screen, m.snapshot, fieldmap.Input{Pointer: m.pointer}, dt)
	switch {
	case err == nil:
	case errors.Is(err, transform.ErrDegenerate):
		// The window has no area yet; nothing to draw.
	default:
		m.logger.Warn("frame skipped", zap.Error(err))
	}
}

// Layout handles window resize.
func (m *Manager) Layout(outsideWidth, outsideHeight int) (int, int) {
	m.ScreenWidth = outsideWidth
	m.ScreenHeight = outsideHeight
	return outsideWidth, outsideHeight
}

func (m *Manager) selectLevel(level int) {
	m.logger.Info("level selected", zap.Int("level", level))
	m.publish(m.topics.SelectedLevel, strconv.Itoa(level))
}

func (m *Manager) selectBranch(id string) {
	m.logger.Info("branch selected", zap.String("branch", id))
	m.publish(m.topics.SelectedBranch, id)
}

func (m *Manager) publish(topic, value string) {
	if m.publisher == nil {
		return
	}
	if err := m.publisher.Publish(topic, value); err != nil {
		m.logger.Warn("failed to publish selection", zap.String("topic", topic), zap.Error(err))
	}
}
