package gfx

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// Config holds window and renderer settings.
//
// Configs are usually built from DefaultConfig with the With methods:
//
//	cfg := gfx.DefaultConfig().
//	    WithTitle("triangle").
//	    WithSize(1024, 768)
//
// or loaded from a YAML file with LoadConfig.
type Config struct {
	// Title is the window title.
	Title string `yaml:"title"`

	// Width and Height are the initial window size in screen coordinates.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Backend names the HAL backend: vulkan, metal, dx12 or gl.
	Backend string `yaml:"backend"`

	// Color, when set, draws the triangle points in one flat color instead
	// of the default mesh. Accepts an SVG color name or #rrggbb / #rrggbbaa.
	// A mesh passed with WithMesh wins over Color.
	Color string `yaml:"color"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// FramesPerSecond caps the frame rate. 0 renders as fast as the
	// presentation mode allows (vsync).
	FramesPerSecond int `yaml:"frames_per_second"`
}

// DefaultConfig returns the default configuration: an 800x600 window on
// the Vulkan backend, logging at info.
func DefaultConfig() Config {
	return Config{
		Title:    "gfx",
		Width:    800,
		Height:   600,
		Backend:  "vulkan",
		LogLevel: "info",
	}
}

// WithTitle returns a copy of c with the window title set.
func (c Config) WithTitle(title string) Config {
	c.Title = title
	return c
}

// WithSize returns a copy of c with the window size set.
func (c Config) WithSize(width, height int) Config {
	c.Width = width
	c.Height = height
	return c
}

// WithBackend returns a copy of c with the backend name set.
func (c Config) WithBackend(name string) Config {
	c.Backend = name
	return c
}

// WithColor returns a copy of c with the flat mesh color set.
func (c Config) WithColor(color string) Config {
	c.Color = color
	return c
}

// WithLogLevel returns a copy of c with the log level set.
func (c Config) WithLogLevel(level string) Config {
	c.LogLevel = level
	return c
}

// WithFramesPerSecond returns a copy of c with the frame cap set.
func (c Config) WithFramesPerSecond(fps int) Config {
	c.FramesPerSecond = fps
	return c
}

// Validate reports the first invalid setting in c.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, c.Width, c.Height)
	}
	if _, err := parseBackend(c.Backend); err != nil {
		return err
	}
	if c.Color != "" {
		if _, err := ParseColor(c.Color); err != nil {
			return err
		}
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if c.FramesPerSecond < 0 {
		return fmt.Errorf("gfx: negative frames_per_second %d", c.FramesPerSecond)
	}
	return nil
}

// SlogLevel converts LogLevel to a slog.Level. An empty level means info.
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	name := c.LogLevel
	if name == "" {
		name = "info"
	}
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("gfx: log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// LoadConfig reads a YAML config file. Keys missing from the file keep
// their DefaultConfig values. The result is validated.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("gfx: read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML config data over DefaultConfig and validates it.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("gfx: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// parseBackend maps a backend name to the HAL backend identifier.
func parseBackend(name string) (gputypes.Backend, error) {
	switch strings.ToLower(name) {
	case "", "vulkan":
		return gputypes.BackendVulkan, nil
	case "metal":
		return gputypes.BackendMetal, nil
	case "dx12":
		return gputypes.BackendDX12, nil
	case "gl":
		return gputypes.BackendGL, nil
	default:
		return gputypes.BackendVulkan, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
}

// ParseColor parses an SVG 1.1 color name ("crimson") or a hex color
// ("#ff0000", "#ff000080") into RGBA components in [0, 1].
func ParseColor(s string) (mgl32.Vec4, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		return parseHexColor(s)
	}
	c, ok := colornames.Map[strings.ToLower(s)]
	if !ok {
		return mgl32.Vec4{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
	}
	return mgl32.Vec4{
		float32(c.R) / 255,
		float32(c.G) / 255,
		float32(c.B) / 255,
		float32(c.A) / 255,
	}, nil
}

func parseHexColor(s string) (mgl32.Vec4, error) {
	digits := s[1:]
	if len(digits) != 6 && len(digits) != 8 {
		return mgl32.Vec4{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
	}
	raw, err := hex.DecodeString(digits)
	if err != nil {
		return mgl32.Vec4{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
	}
	out := mgl32.Vec4{0, 0, 0, 1}
	for i, b := range raw {
		out[i] = float32(b) / 255
	}
	return out, nil
}
