package gfx

import "errors"

// Errors returned by gfx.
var (
	// ErrNilWindow is returned when New is called without a window.
	ErrNilWindow = errors.New("gfx: nil window")

	// ErrNoBackend is returned when the configured HAL backend is not
	// compiled in or not registered.
	ErrNoBackend = errors.New("gfx: GPU backend not available")

	// ErrUnknownBackend is returned for a backend name gfx does not know.
	ErrUnknownBackend = errors.New("gfx: unknown backend")

	// ErrNoAdapter is returned when no GPU adapter can drive the surface.
	ErrNoAdapter = errors.New("gfx: no GPU adapter available")

	// ErrNoSurfaceFormat is returned when the surface reports no supported
	// texture formats for the selected adapter.
	ErrNoSurfaceFormat = errors.New("gfx: surface reports no supported formats")

	// ErrSurfaceAcquire is returned when the next presentable image
	// cannot be acquired.
	ErrSurfaceAcquire = errors.New("gfx: failed to acquire surface texture")

	// ErrClosed is returned when a State is used after Close.
	ErrClosed = errors.New("gfx: state is closed")

	// ErrEmptyMesh is returned when a mesh has no indices.
	ErrEmptyMesh = errors.New("gfx: mesh has no indices")

	// ErrIndexOutOfRange is returned when an index refers past the end of
	// the vertex list.
	ErrIndexOutOfRange = errors.New("gfx: index out of range")

	// ErrIncompleteTriangle is returned when the index count is not a
	// multiple of three.
	ErrIncompleteTriangle = errors.New("gfx: index count is not a multiple of 3")

	// ErrTooManyVertices is returned when a mesh cannot be addressed with
	// 16-bit indices.
	ErrTooManyVertices = errors.New("gfx: too many vertices for 16-bit indices")

	// ErrUnknownColor is returned by ParseColor for unrecognized input.
	ErrUnknownColor = errors.New("gfx: unknown color")

	// ErrInvalidSize is returned when a configured window size is not
	// positive.
	ErrInvalidSize = errors.New("gfx: invalid size")
)
