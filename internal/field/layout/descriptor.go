package layout

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"chosenoffset.com/fieldview/internal/core/geom"
)

// ErrUnknownUnit is returned for a descriptor unit other than meter, foot or inch.
var ErrUnknownUnit = errors.New("unknown field unit")

const (
	metersPerFoot = 0.3048
	metersPerInch = 0.0254
)

func inchesToMeters(in float64) float64 { return in * metersPerInch }

// Descriptor is the on-disk field description. Sizes are in Unit.
type Descriptor struct {
	Game      string     `json:"game" yaml:"game"`
	FieldSize [2]float64 `json:"field-size" yaml:"field-size"`
	FieldUnit string     `json:"field-unit" yaml:"field-unit"`
}

// DefaultDescriptor describes the 2025 field as published, in feet.
func DefaultDescriptor() Descriptor {
	return Descriptor{
		Game:      "Reefscape",
		FieldSize: [2]float64{57.573, 26.417},
		FieldUnit: "foot",
	}
}

// metersPer returns the conversion factor from unit to meters.
func metersPer(unit string) (float64, error) {
	switch strings.ToLower(unit) {
	case "meter", "meters", "m":
		return 1, nil
	case "foot", "feet", "ft":
		return metersPerFoot, nil
	case "inch", "inches", "in":
		return metersPerInch, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, unit)
	}
}

// FromDescriptor converts d to meters and attaches the reef geometry.
func FromDescriptor(d Descriptor) (*Field, error) {
	k, err := metersPer(d.FieldUnit)
	if err != nil {
		return nil, err
	}
	if d.FieldSize[0] <= 0 || d.FieldSize[1] <= 0 {
		return nil, fmt.Errorf("field size must be positive, got %v", d.FieldSize)
	}

	size := geom.Pt(d.FieldSize[0]*k, d.FieldSize[1]*k)
	f := &Field{
		Game:   d.Game,
		Size:   size,
		Center: size.Scale(0.5),
	}
	reefscapeGeometry(f)
	return f, nil
}

// Load reads a descriptor from a YAML or JSON file. An empty path or a
// missing file yields the default field.
func Load(path string) (*Field, error) {
	if path == "" {
		return Reefscape(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Reefscape(), nil
		}
		return nil, fmt.Errorf("failed to read field descriptor: %w", err)
	}

	d := DefaultDescriptor()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &d)
	default:
		err = json.Unmarshal(data, &d)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse field descriptor: %w", err)
	}

	return FromDescriptor(d)
}
