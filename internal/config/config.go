// Package config loads the display configuration from a YAML or JSON file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"chosenoffset.com/fieldview/internal/field"
	"chosenoffset.com/fieldview/internal/fieldmap"
	"chosenoffset.com/fieldview/internal/telemetry"
)

var (
	// ErrInvalidTeamNumber is returned for a team number outside 1..25599.
	ErrInvalidTeamNumber = errors.New("invalid team number")
	// ErrInvalidAddress is returned for a custom address that is not IPv4.
	ErrInvalidAddress = errors.New("invalid server address")
)

const maxTeamNumber = 25599

// AddressMode selects how the topic server address is found.
type AddressMode string

const (
	// ModeTeam uses the robot radio convention 10.TE.AM.2.
	ModeTeam AddressMode = "team"
	// ModeMDNS uses the roboRIO mDNS name for the team.
	ModeMDNS      AddressMode = "mdns"
	ModeLocalhost AddressMode = "localhost"
	ModeCustom    AddressMode = "custom"
)

// Config holds all display settings
type Config struct {
	Window  WindowConfig     `json:"window" yaml:"window"`
	Render  RenderConfig     `json:"render" yaml:"render"`
	Network NetworkConfig    `json:"network" yaml:"network"`
	Topics  telemetry.Topics `json:"topics" yaml:"topics"`
	Log     LogConfig        `json:"log" yaml:"log"`

	// FieldFile is an optional field descriptor; empty means the built-in field.
	FieldFile string `json:"field_file" yaml:"field_file"`
}

// WindowConfig is the initial window
type WindowConfig struct {
	Width  int    `json:"width" yaml:"width"`
	Height int    `json:"height" yaml:"height"`
	Title  string `json:"title" yaml:"title"`
}

// RenderConfig mirrors fieldmap.Options
type RenderConfig struct {
	Stylized          bool    `json:"stylized" yaml:"stylized"`
	DebugBoundaries   bool    `json:"debug_boundaries" yaml:"debug_boundaries"`
	OutlineThickness  float64 `json:"outline_thickness" yaml:"outline_thickness"` // pixels
	ReferenceAlliance string  `json:"reference_alliance" yaml:"reference_alliance"`
}

// NetworkConfig locates the topic server
type NetworkConfig struct {
	Mode              AddressMode `json:"mode" yaml:"mode"`
	TeamNumber        int         `json:"team_number" yaml:"team_number"`
	Address           string      `json:"address" yaml:"address"` // used with ModeCustom
	Port              int         `json:"port" yaml:"port"`
	Path              string      `json:"path" yaml:"path"`
	ReconnectInterval string      `json:"reconnect_interval" yaml:"reconnect_interval"` // e.g. "1s"
}

// LogConfig configures the zap logger
type LogConfig struct {
	Level       string `json:"level" yaml:"level"`
	Development bool   `json:"development" yaml:"development"`
}

// Default returns the settings used when no file is present.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "Field View",
		},
		Render: RenderConfig{
			Stylized:          true,
			DebugBoundaries:   false,
			OutlineThickness:  8,
			ReferenceAlliance: string(field.AllianceBlue),
		},
		Network: NetworkConfig{
			Mode:              ModeLocalhost,
			Port:              5810,
			Path:              "/fieldview",
			ReconnectInterval: "1s",
		},
		Topics: telemetry.DefaultTopics(),
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the config at path over the defaults and validates it. A
// missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	config := Default() // Start with defaults
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, config)
	default:
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return config, nil
}

// Validate checks the values Load cannot check by decoding alone.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Render.OutlineThickness < 0 {
		return fmt.Errorf("outline thickness must not be negative, got %v", c.Render.OutlineThickness)
	}
	if _, ok := field.ParseAlliance(c.Render.ReferenceAlliance); !ok {
		return fmt.Errorf("reference alliance must be red or blue, got %q", c.Render.ReferenceAlliance)
	}

	n := c.Network
	switch n.Mode {
	case ModeTeam, ModeMDNS:
		if n.TeamNumber < 1 || n.TeamNumber > maxTeamNumber {
			return fmt.Errorf("%w: %d", ErrInvalidTeamNumber, n.TeamNumber)
		}
	case ModeCustom:
		if ip := net.ParseIP(n.Address); ip == nil || ip.To4() == nil {
			return fmt.Errorf("%w: %q", ErrInvalidAddress, n.Address)
		}
	case ModeLocalhost:
	default:
		return fmt.Errorf("unknown address mode %q", n.Mode)
	}
	if n.Port < 1 || n.Port > 65535 {
		return fmt.Errorf("port out of range: %d", n.Port)
	}
	if _, err := c.ReconnectInterval(); err != nil {
		return err
	}
	return nil
}

// Host returns the topic server host for the configured address mode.
func (c *Config) Host() string {
	n := c.Network
	switch n.Mode {
	case ModeTeam:
		return fmt.Sprintf("10.%d.%d.2", n.TeamNumber/100, n.TeamNumber%100)
	case ModeMDNS:
		return fmt.Sprintf("roboRIO-%d-FRC.local", n.TeamNumber)
	case ModeCustom:
		return n.Address
	default:
		return "127.0.0.1"
	}
}

// ServerURL returns the websocket URL of the topic server.
func (c *Config) ServerURL() string {
	u := url.URL{
		Scheme: "ws",
		Host:   net.JoinHostPort(c.Host(), strconv.Itoa(c.Network.Port)),
		Path:   c.Network.Path,
	}
	return u.String()
}

// ReconnectInterval parses the reconnect interval.
func (c *Config) ReconnectInterval() (time.Duration, error) {
	d, err := time.ParseDuration(c.Network.ReconnectInterval)
	if err != nil {
		return 0, fmt.Errorf("reconnect interval: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("reconnect interval must be positive, got %v", d)
	}
	return d, nil
}

// MapOptions converts the render section to field map options. The config
// must have passed Validate.
func (c *Config) MapOptions() fieldmap.Options {
	reference, _ := field.ParseAlliance(c.Render.ReferenceAlliance)
	return fieldmap.Options{
		Stylized:          c.Render.Stylized,
		DebugBoundaries:   c.Render.DebugBoundaries,
		OutlineThickness:  c.Render.OutlineThickness,
		ReferenceAlliance: reference,
	}
}
