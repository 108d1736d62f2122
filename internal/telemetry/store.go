// Package telemetry keeps the latest robot-side values the field map draws
// from and talks to the robot's topic server over a websocket.
package telemetry

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"chosenoffset.com/fieldview/internal/core/geom"
	"chosenoffset.com/fieldview/internal/field"
	"chosenoffset.com/fieldview/internal/logging"
)

// Topics names the server topics the display reads and writes.
type Topics struct {
	SelectedBranch string `json:"selected_branch" yaml:"selected_branch"`
	SelectedLevel  string `json:"selected_level" yaml:"selected_level"`
	RobotPosition  string `json:"robot_position" yaml:"robot_position"`
	RobotAngle     string `json:"robot_angle" yaml:"robot_angle"`
	Alliance       string `json:"alliance" yaml:"alliance"`
}

// DefaultTopics returns the topic names published by the robot code.
func DefaultTopics() Topics {
	return Topics{
		SelectedBranch: "/FieldView/SelectedBranch",
		SelectedLevel:  "/FieldView/SelectedLevel",
		RobotPosition:  "/FieldView/RobotPosition",
		RobotAngle:     "/FieldView/RobotAngle",
		Alliance:       "/FieldView/Alliance",
	}
}

// List returns every topic name.
func (t Topics) List() []string {
	return []string{t.SelectedBranch, t.SelectedLevel, t.RobotPosition, t.RobotAngle, t.Alliance}
}

// ParsePosition decodes an "x,y" position in meters.
func ParsePosition(s string) (geom.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return geom.Point{}, fmt.Errorf("position %q: want \"x,y\"", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geom.Point{}, fmt.Errorf("position %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geom.Point{}, fmt.Errorf("position %q: %w", s, err)
	}
	return geom.Pt(x, y), nil
}

// ParseLevel decodes a scoring level. Whole-valued numbers such as "3.0"
// are accepted.
func ParseLevel(s string) (int, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("level %q: %w", s, err)
	}
	if v != float64(int(v)) {
		return 0, fmt.Errorf("level %q is not a whole number", s)
	}
	return int(v), nil
}

// Store holds the decoded value of every topic. It is written by the
// websocket client and read once per frame by the display.
type Store struct {
	topics Topics
	logger *zap.Logger

	mu        sync.RWMutex
	connected bool
	position  *geom.Point
	heading   *float64
	alliance  field.Alliance
	branch    *string
	level     *int
}

// NewStore creates an empty, disconnected store.
func NewStore(topics Topics, logger *zap.Logger) *Store {
	return &Store{topics: topics, logger: logging.OrNop(logger)}
}

// Topics returns the topic names the store decodes.
func (s *Store) Topics() Topics { return s.topics }

// SetConnected records whether the server connection is up.
func (s *Store) SetConnected(connected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = connected
}

// Connected reports whether the server connection is up.
func (s *Store) Connected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected
}

// Set decodes value for topic. A malformed value is rejected and the
// previous value is kept; topics the store does not know are ignored.
func (s *Store) Set(topic, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch topic {
	case s.topics.RobotPosition:
		p, err := ParsePosition(value)
		if err != nil {
			return err
		}
		s.position = &p
	case s.topics.RobotAngle:
		a, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return fmt.Errorf("angle %q: %w", value, err)
		}
		s.heading = &a
	case s.topics.Alliance:
		a, ok := field.ParseAlliance(strings.ToLower(strings.TrimSpace(value)))
		if !ok {
			return fmt.Errorf("alliance %q: want red or blue", value)
		}
		s.alliance = a
	case s.topics.SelectedBranch:
		b := strings.TrimSpace(value)
		s.branch = &b
	case s.topics.SelectedLevel:
		l, err := ParseLevel(value)
		if err != nil {
			return err
		}
		s.level = &l
	default:
		s.logger.Debug("ignoring unknown topic", zap.String("topic", topic))
	}
	return nil
}

// Snapshot returns a copy of the current values. While disconnected every
// value is reported absent.
func (s *Store) Snapshot() field.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.connected {
		return field.Snapshot{}
	}
	return field.Snapshot{
		Position:       clone(s.position),
		Heading:        clone(s.heading),
		Alliance:       s.alliance,
		SelectedBranch: clone(s.branch),
		SelectedLevel:  clone(s.level),
	}
}

func clone[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
