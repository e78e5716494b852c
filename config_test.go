package gfx

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Width != 800 || cfg.Height != 600 {
		t.Errorf("size = %dx%d, want 800x600", cfg.Width, cfg.Height)
	}
	if cfg.Backend != "vulkan" {
		t.Errorf("Backend = %q, want vulkan", cfg.Backend)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestConfigWith(t *testing.T) {
	base := DefaultConfig()
	cfg := base.
		WithTitle("tri").
		WithSize(320, 240).
		WithBackend("gl").
		WithColor("crimson").
		WithLogLevel("debug").
		WithFramesPerSecond(30)

	want := Config{
		Title:           "tri",
		Width:           320,
		Height:          240,
		Backend:         "gl",
		Color:           "crimson",
		LogLevel:        "debug",
		FramesPerSecond: 30,
	}
	if cfg != want {
		t.Errorf("cfg = %+v, want %+v", cfg, want)
	}
	if base != DefaultConfig() {
		t.Error("With methods modified the receiver")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{"zero width", DefaultConfig().WithSize(0, 10), ErrInvalidSize},
		{"negative height", DefaultConfig().WithSize(10, -1), ErrInvalidSize},
		{"bad backend", DefaultConfig().WithBackend("glide"), ErrUnknownBackend},
		{"bad color", DefaultConfig().WithColor("notacolor"), ErrUnknownColor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}

	if err := DefaultConfig().WithLogLevel("loud").Validate(); err == nil {
		t.Error("Validate() accepted log level \"loud\"")
	}
	if err := DefaultConfig().WithFramesPerSecond(-1).Validate(); err == nil {
		t.Error("Validate() accepted negative frames per second")
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := Config{LogLevel: tt.in}.SlogLevel()
		if err != nil {
			t.Errorf("SlogLevel(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("SlogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseConfig(t *testing.T) {
	data := []byte(`
title: hello triangle
width: 1024
color: "#ff000080"
frames_per_second: 60
`)
	cfg, err := ParseConfig(data)
	if err != nil {
		t.Fatalf("ParseConfig() failed: %v", err)
	}
	if cfg.Title != "hello triangle" || cfg.Width != 1024 || cfg.FramesPerSecond != 60 {
		t.Errorf("cfg = %+v", cfg)
	}
	// Keys absent from the document keep their defaults.
	if cfg.Height != 600 || cfg.Backend != "vulkan" || cfg.LogLevel != "info" {
		t.Errorf("defaults not kept: %+v", cfg)
	}
}

func TestParseConfigErrors(t *testing.T) {
	if _, err := ParseConfig([]byte("width: [1, 2")); err == nil {
		t.Error("ParseConfig() accepted malformed YAML")
	}
	if _, err := ParseConfig([]byte("height: 0")); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("ParseConfig(height: 0) = %v, want ErrInvalidSize", err)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gfx.yaml")
	if err := os.WriteFile(path, []byte("backend: gl\nlog_level: debug\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if cfg.Backend != "gl" || cfg.LogLevel != "debug" {
		t.Errorf("cfg = %+v", cfg)
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadConfig(missing) = %v, want os.ErrNotExist", err)
	}
}

func TestParseBackend(t *testing.T) {
	tests := []struct {
		name string
		want gputypes.Backend
	}{
		{"", gputypes.BackendVulkan},
		{"Vulkan", gputypes.BackendVulkan},
		{"metal", gputypes.BackendMetal},
		{"dx12", gputypes.BackendDX12},
		{"gl", gputypes.BackendGL},
	}
	for _, tt := range tests {
		got, err := parseBackend(tt.name)
		if err != nil {
			t.Errorf("parseBackend(%q) error = %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseBackend(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want mgl32.Vec4
	}{
		{"red", mgl32.Vec4{1, 0, 0, 1}},
		{"Blue", mgl32.Vec4{0, 0, 1, 1}},
		{"#00ff00", mgl32.Vec4{0, 1, 0, 1}},
		{"#ffffff00", mgl32.Vec4{1, 1, 1, 0}},
		{" black ", mgl32.Vec4{0, 0, 0, 1}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q) error = %v", tt.in, err)
			continue
		}
		if !got.ApproxEqual(tt.want) {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"", "nocolor", "#fff", "#gggggg", "#1234567"} {
		if _, err := ParseColor(bad); !errors.Is(err, ErrUnknownColor) {
			t.Errorf("ParseColor(%q) = %v, want ErrUnknownColor", bad, err)
		}
	}
}
