package gfx

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Size is a drawable size in physical pixels.
type Size struct {
	Width  uint32
	Height uint32
}

// IsZero reports whether either dimension is zero, as for a minimized
// window.
func (s Size) IsZero() bool {
	return s.Width == 0 || s.Height == 0
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Window is the windowing boundary consumed by New.
type Window interface {
	// NativeHandles returns the platform display and window handles used
	// to create a presentation surface.
	NativeHandles() (display, window uintptr, err error)

	// Size returns the drawable size in physical pixels.
	Size() Size
}

// SurfaceConfig is the presentation configuration applied to a Surface.
type SurfaceConfig struct {
	Size   Size
	Format gputypes.TextureFormat

	// ViewFormat is the format acquired textures are viewed in. It equals
	// Format or is its sRGB variant.
	ViewFormat gputypes.TextureFormat
}

// srgbVariant returns the sRGB form of an 8-bit unorm color format, so
// shader output is gamma-encoded on write. Other formats are returned
// unchanged.
func srgbVariant(format gputypes.TextureFormat) gputypes.TextureFormat {
	switch format {
	case gputypes.TextureFormatRGBA8Unorm:
		return gputypes.TextureFormatRGBA8UnormSrgb
	case gputypes.TextureFormatBGRA8Unorm:
		return gputypes.TextureFormatBGRA8UnormSrgb
	default:
		return format
	}
}

// Surface is the presentable drawing target tied to a window.
type Surface interface {
	// Formats returns the supported texture formats in preference order.
	Formats() []gputypes.TextureFormat

	// Configure (re)creates the swapchain for cfg.
	Configure(cfg SurfaceConfig) error

	// Acquire returns the next presentable texture.
	Acquire() (hal.Texture, error)

	// Present queues an acquired texture for display.
	Present(tex hal.Texture) error

	// Discard releases an acquired texture without presenting it.
	Discard(tex hal.Texture)

	// Destroy unconfigures and releases the surface.
	Destroy()
}

// halSurface is the Surface backed by a HAL surface.
type halSurface struct {
	surface hal.Surface
	adapter hal.Adapter
	device  hal.Device
	queue   hal.Queue

	configured bool
}

func (s *halSurface) Formats() []gputypes.TextureFormat {
	caps := s.adapter.SurfaceCapabilities(s.surface)
	if caps == nil {
		return nil
	}
	return caps.Formats
}

func (s *halSurface) Configure(cfg SurfaceConfig) error {
	var viewFormats []gputypes.TextureFormat
	if cfg.ViewFormat != cfg.Format && cfg.ViewFormat != gputypes.TextureFormatUndefined {
		viewFormats = []gputypes.TextureFormat{cfg.ViewFormat}
	}
	err := s.surface.Configure(s.device, &hal.SurfaceConfiguration{
		Width:       cfg.Size.Width,
		Height:      cfg.Size.Height,
		Format:      cfg.Format,
		ViewFormats: viewFormats,
		Usage:       gputypes.TextureUsageRenderAttachment,
		PresentMode: hal.PresentModeFifo,
		AlphaMode:   hal.CompositeAlphaModeOpaque,
	})
	if err != nil {
		return fmt.Errorf("configure surface %s: %w", cfg.Size, err)
	}
	s.configured = true
	return nil
}

func (s *halSurface) Acquire() (hal.Texture, error) {
	acquired, err := s.surface.AcquireTexture(nil)
	if err != nil {
		return nil, err
	}
	if acquired.Suboptimal {
		Logger().Warn("gfx: surface texture is suboptimal; resize pending")
	}
	return acquired.Texture, nil
}

func (s *halSurface) Present(tex hal.Texture) error {
	st, ok := tex.(hal.SurfaceTexture)
	if !ok {
		return fmt.Errorf("present: %T is not a surface texture", tex)
	}
	return s.queue.Present(s.surface, st, nil)
}

func (s *halSurface) Discard(tex hal.Texture) {
	if st, ok := tex.(hal.SurfaceTexture); ok {
		s.surface.DiscardTexture(st)
	}
}

func (s *halSurface) Destroy() {
	if s.surface == nil {
		return
	}
	if s.configured {
		s.surface.Unconfigure(s.device)
		s.configured = false
	}
	s.surface.Destroy()
	s.surface = nil
}
