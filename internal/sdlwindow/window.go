// Package sdlwindow adapts an SDL2 window to gfx.Window.
//
// SDL must be initialized with sdl.INIT_VIDEO before Open is called, and all
// calls must happen on the main OS thread.
package sdlwindow

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/gogpu/gfx"
)

// ErrUnsupportedSubsystem is returned by NativeHandles when SDL runs on a
// window system the HAL cannot create a surface for.
var ErrUnsupportedSubsystem = errors.New("sdlwindow: unsupported window subsystem")

// Window is an SDL window usable as a gfx render target.
type Window struct {
	win *sdl.Window

	// metalView backs the CAMetalLayer handed out on Cocoa.
	metalView    sdl.MetalView
	hasMetalView bool
}

var _ gfx.Window = (*Window)(nil)

// Open creates a resizable, high-DPI aware window from cfg.
func Open(cfg gfx.Config) (*Window, error) {
	win, err := sdl.CreateWindow(cfg.Title,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		int32(cfg.Width),
		int32(cfg.Height),
		windowFlags(cfg.Backend))
	if err != nil {
		return nil, fmt.Errorf("sdlwindow: create window: %w", err)
	}
	gfx.Logger().Debug("sdlwindow: window created", "title", cfg.Title, "width", cfg.Width, "height", cfg.Height)
	return &Window{win: win}, nil
}

// windowFlags picks the creation flags for a backend. Only Vulkan needs a
// dedicated flag; the other backends build surfaces from the raw handles.
func windowFlags(backend string) uint32 {
	flags := uint32(sdl.WINDOW_SHOWN | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if backend == "" || strings.EqualFold(backend, "vulkan") {
		flags |= sdl.WINDOW_VULKAN
	}
	return flags
}

// SDL returns the underlying SDL window.
func (w *Window) SDL() *sdl.Window {
	return w.win
}

// ID returns the SDL window ID, matching WindowEvent.WindowID.
func (w *Window) ID() uint32 {
	id, err := w.win.GetID()
	if err != nil {
		return 0
	}
	return id
}

// Owns reports whether ev was sent to this window.
func (w *Window) Owns(ev *sdl.WindowEvent) bool {
	return ownsEvent(w.ID(), ev)
}

func ownsEvent(id uint32, ev *sdl.WindowEvent) bool {
	return ev != nil && id != 0 && ev.WindowID == id
}

// NativeHandles returns the platform display and window handles.
//
// On Cocoa the window handle is the CAMetalLayer of an SDL Metal view
// attached to the window, which is what a Metal surface is created from.
// The view is created on first use and released by Close.
func (w *Window) NativeHandles() (display, window uintptr, err error) {
	info, err := w.win.GetWMInfo()
	if err != nil {
		return 0, 0, fmt.Errorf("sdlwindow: window manager info: %w", err)
	}
	switch info.Subsystem {
	case sdl.SYSWM_X11:
		x11 := info.GetX11Info()
		return handle(x11.Display), uintptr(x11.Window), nil
	case sdl.SYSWM_WINDOWS:
		return 0, handle(info.GetWindowsInfo().Window), nil
	case sdl.SYSWM_COCOA:
		return 0, w.metalLayer(), nil
	default:
		return 0, 0, fmt.Errorf("%w: %d", ErrUnsupportedSubsystem, info.Subsystem)
	}
}

// Size returns the drawable size in physical pixels. On high-DPI displays
// this is larger than the window size in screen coordinates.
func (w *Window) Size() gfx.Size {
	return drawableSize(w.win.VulkanGetDrawableSize())
}

func drawableSize(width, height int32) gfx.Size {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return gfx.Size{Width: uint32(width), Height: uint32(height)}
}

func (w *Window) metalLayer() uintptr {
	if !w.hasMetalView {
		w.metalView = sdl.Metal_CreateView(w.win)
		w.hasMetalView = true
	}
	return handle(sdl.Metal_GetLayer(w.metalView))
}

// Close destroys the Metal view, if any, and the SDL window.
func (w *Window) Close() error {
	if w.hasMetalView {
		sdl.Metal_DestroyView(w.metalView)
		w.hasMetalView = false
	}
	if w.win == nil {
		return nil
	}
	err := w.win.Destroy()
	w.win = nil
	return err
}

// handle converts an SDL pointer field to a uintptr handle.
func handle(p unsafe.Pointer) uintptr {
	return uintptr(p)
}
