// Package field holds the data exchanged between the telemetry source and
// the field map: the alliance and the per-frame pose snapshot.
package field

import (
	"chosenoffset.com/fieldview/internal/core/geom"
)

// Alliance is the side of the field the operator is on.
type Alliance string

const (
	// AllianceUnknown means the alliance has not been reported.
	AllianceUnknown Alliance = ""
	AllianceRed     Alliance = "red"
	AllianceBlue    Alliance = "blue"
)

// ParseAlliance maps "red" and "blue" to their Alliance. Anything else is
// reported as not ok.
func ParseAlliance(s string) (Alliance, bool) {
	switch Alliance(s) {
	case AllianceRed, AllianceBlue:
		return Alliance(s), true
	default:
		return AllianceUnknown, false
	}
}

// Known reports whether the alliance was reported.
func (a Alliance) Known() bool { return a == AllianceRed || a == AllianceBlue }

// Snapshot is the externally supplied state consumed by one frame.
// A nil pointer (or AllianceUnknown) means the value is not available, and
// whatever depends on it is left out of the frame rather than guessed.
type Snapshot struct {
	Position       *geom.Point // robot position in meters
	Heading        *float64    // radians, 0 along +X
	Alliance       Alliance
	SelectedBranch *string
	SelectedLevel  *int
}

// Pose returns the robot position and heading when both are present.
func (s Snapshot) Pose() (geom.Point, float64, bool) {
	if s.Position == nil || s.Heading == nil {
		return geom.Point{}, 0, false
	}
	return *s.Position, *s.Heading, true
}

// BranchSelected reports whether id is the selected branch.
func (s Snapshot) BranchSelected(id string) bool {
	return s.SelectedBranch != nil && *s.SelectedBranch == id
}

// LevelSelected reports whether level is the selected level.
func (s Snapshot) LevelSelected(level int) bool {
	return s.SelectedLevel != nil && *s.SelectedLevel == level
}
