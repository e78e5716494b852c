// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gfx

import (
	"fmt"
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	_ "github.com/gogpu/wgpu/hal/vulkan" // register the Vulkan HAL backend
)

// frameTimeout bounds the fence wait after each submitted frame.
const frameTimeout = 5 * time.Second

// State owns the GPU device, the presentation surface, the render pipeline
// and the mesh buffers, and draws the mesh once per Render call.
//
// State is NOT safe for concurrent use. Create, resize, render and close it
// from the goroutine that runs the window's event loop.
type State struct {
	window     Window
	size       Size
	format     gputypes.TextureFormat
	viewFormat gputypes.TextureFormat

	instance hal.Instance
	adapter  hal.Adapter
	device   hal.Device
	queue    hal.Queue
	surface  Surface

	pipeline *trianglePipeline
	buffers  *meshBuffers

	closed bool
}

var _ gpucontext.DeviceProvider = (*State)(nil)

// New creates a State rendering into window.
//
// New selects the configured HAL backend, creates a surface for the window,
// picks an adapter, opens a device, negotiates the surface format (the first
// one the surface reports), builds the render pipeline, uploads the mesh and
// configures the surface at the window's current size.
//
// The mesh is the one given with WithMesh, else the triangle points in
// Config.Color, else DefaultMesh.
//
// Errors are not retried; callers are expected to treat them as fatal.
func New(window Window, opts ...Option) (*State, error) {
	if window == nil {
		return nil, ErrNilWindow
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.config.Validate(); err != nil {
		return nil, err
	}
	mesh, err := o.resolveMesh()
	if err != nil {
		return nil, err
	}

	api := o.api
	if api == nil {
		b, err := parseBackend(o.config.Backend)
		if err != nil {
			return nil, err
		}
		backend, ok := hal.GetBackend(b)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNoBackend, o.config.Backend)
		}
		api = backend
	}

	instance, err := api.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("gfx: create instance: %w", err)
	}

	display, handle, err := window.NativeHandles()
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("gfx: window handles: %w", err)
	}
	surface, err := instance.CreateSurface(display, handle)
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("gfx: create surface: %w", err)
	}

	selected := selectAdapter(instance.EnumerateAdapters(surface))
	if selected == nil {
		surface.Destroy()
		instance.Destroy()
		return nil, ErrNoAdapter
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		surface.Destroy()
		instance.Destroy()
		return nil, fmt.Errorf("%w: open device: %w", ErrNoAdapter, err)
	}
	Logger().Info("gfx: adapter selected", "name", selected.Info.Name, "type", selected.Info.DeviceType)

	hs := &halSurface{
		surface: surface,
		adapter: selected.Adapter,
		device:  openDev.Device,
		queue:   openDev.Queue,
	}
	s, err := newState(window, openDev.Device, openDev.Queue, hs, mesh)
	if err != nil {
		hs.Destroy()
		openDev.Device.Destroy()
		instance.Destroy()
		return nil, err
	}
	s.instance = instance
	s.adapter = selected.Adapter
	return s, nil
}

// selectAdapter prefers a discrete or integrated GPU and falls back to the
// first adapter. Returns nil if adapters is empty.
func selectAdapter(adapters []hal.ExposedAdapter) *hal.ExposedAdapter {
	if len(adapters) == 0 {
		return nil
	}
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			return &adapters[i]
		}
	}
	return &adapters[0]
}

// newState builds the pipeline and buffers on an open device and performs
// the first surface configuration. On error everything newState created is
// released; device, queue and surface stay owned by the caller.
func newState(window Window, device hal.Device, queue hal.Queue, surface Surface, mesh *Mesh) (*State, error) {
	formats := surface.Formats()
	if len(formats) == 0 {
		return nil, ErrNoSurfaceFormat
	}
	format := formats[0]
	viewFormat := srgbVariant(format)
	Logger().Info("gfx: surface format negotiated",
		"format", format, "view_format", viewFormat, "available", len(formats))

	if mesh == nil {
		mesh = DefaultMesh()
	}

	pipeline, err := createTrianglePipeline(device, viewFormat)
	if err != nil {
		return nil, fmt.Errorf("gfx: %w", err)
	}
	buffers, err := uploadMesh(device, queue, mesh)
	if err != nil {
		pipeline.destroy(device)
		return nil, fmt.Errorf("gfx: %w", err)
	}

	s := &State{
		window:     window,
		size:       window.Size(),
		format:     format,
		viewFormat: viewFormat,
		device:     device,
		queue:      queue,
		surface:    surface,
		pipeline:   pipeline,
		buffers:    buffers,
	}
	if err := s.configureSurface(); err != nil {
		buffers.destroy(device)
		pipeline.destroy(device)
		return nil, err
	}
	return s, nil
}

// Window returns the window the state renders into.
func (s *State) Window() Window {
	return s.window
}

// Size returns the size the surface is configured for.
func (s *State) Size() Size {
	return s.size
}

// SurfaceFormat returns the negotiated surface texture format.
func (s *State) SurfaceFormat() gputypes.TextureFormat {
	return s.format
}

// ViewFormat returns the format frames are rendered in: the sRGB variant
// of SurfaceFormat when one exists, otherwise SurfaceFormat itself.
func (s *State) ViewFormat() gputypes.TextureFormat {
	return s.viewFormat
}

// IndexCount returns the number of indices drawn per frame.
func (s *State) IndexCount() uint32 {
	if s.buffers == nil {
		return 0
	}
	return s.buffers.indexCount
}

// Device returns the device for other gogpu components to share, or nil
// after Close.
func (s *State) Device() gpucontext.Device {
	if s.device == nil {
		return nil
	}
	return sharedDevice{device: s.device}
}

// Queue returns the queue paired with Device.
func (s *State) Queue() gpucontext.Queue {
	if s.queue == nil {
		return nil
	}
	return s.queue
}

// Adapter returns the adapter the device was opened on. It is nil for
// states built on an injected device.
func (s *State) Adapter() gpucontext.Adapter {
	if s.adapter == nil {
		return nil
	}
	return s.adapter
}

// HalDevice returns the HAL device so other gogpu components can share it.
func (s *State) HalDevice() any {
	return s.device
}

// HalQueue returns the HAL queue so other gogpu components can share it.
func (s *State) HalQueue() any {
	return s.queue
}

// configureSurface applies the current size and format to the surface.
// A zero-sized surface is left unconfigured.
func (s *State) configureSurface() error {
	if s.size.IsZero() {
		Logger().Debug("gfx: skipping surface configuration for zero size", "size", s.size)
		return nil
	}
	cfg := SurfaceConfig{Size: s.size, Format: s.format, ViewFormat: s.viewFormat}
	if err := s.surface.Configure(cfg); err != nil {
		return fmt.Errorf("gfx: %w", err)
	}
	return nil
}

// Resize records the new drawable size and reconfigures the surface.
// A zero width or height is recorded without touching the surface; Render
// does nothing until a non-zero size arrives.
func (s *State) Resize(size Size) error {
	if s.closed {
		return ErrClosed
	}
	s.size = size
	Logger().Info("gfx: resize", "size", size)
	return s.configureSurface()
}

// Render draws one frame: acquire the next surface texture, clear it to
// transparent, draw the mesh with a single indexed draw call, submit, wait
// for the GPU and present.
func (s *State) Render() error {
	if s.closed {
		return ErrClosed
	}
	if s.size.IsZero() {
		return nil
	}

	tex, err := s.surface.Acquire()
	if err != nil {
		Logger().Warn("gfx: surface acquire failed", "size", s.size, "err", err)
		return fmt.Errorf("%w: %w", ErrSurfaceAcquire, err)
	}

	view, err := s.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:  "gfx_surface_view",
		Format: s.viewFormat,
	})
	if err != nil {
		s.surface.Discard(tex)
		return fmt.Errorf("gfx: create surface view: %w", err)
	}

	err = s.encodeSubmit(view)
	s.device.DestroyTextureView(view)
	if err != nil {
		Logger().Warn("gfx: discarding surface texture", "err", err)
		s.surface.Discard(tex)
		return err
	}

	if err := s.surface.Present(tex); err != nil {
		return fmt.Errorf("gfx: present: %w", err)
	}
	return nil
}

// encodeSubmit records the frame's render pass into view and waits for the
// GPU to finish it.
func (s *State) encodeSubmit(view hal.TextureView) error {
	encoder, err := s.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "gfx_frame_encoder",
	})
	if err != nil {
		return fmt.Errorf("gfx: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("gfx_frame"); err != nil {
		return fmt.Errorf("gfx: begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "gfx_render_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: gputypes.Color{R: 0, G: 0, B: 0, A: 0},
		}},
	})
	rp.SetPipeline(s.pipeline.pipeline)
	rp.SetVertexBuffer(0, s.buffers.vertexBuf, 0)
	rp.SetIndexBuffer(s.buffers.indexBuf, gputypes.IndexFormatUint16, 0)
	rp.DrawIndexed(s.buffers.indexCount, 1, 0, 0, 0)
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("gfx: end encoding: %w", err)
	}
	defer s.device.FreeCommandBuffer(cmdBuf)

	fence, err := s.device.CreateFence()
	if err != nil {
		return fmt.Errorf("gfx: create fence: %w", err)
	}
	defer s.device.DestroyFence(fence)

	if err := s.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("gfx: submit: %w", err)
	}

	// The frame must complete before the texture is presented.
	ok, err := s.device.Wait(fence, 1, frameTimeout)
	if err != nil || !ok {
		return fmt.Errorf("gfx: wait for GPU: ok=%v err=%w", ok, err)
	}
	return nil
}

// Close releases all GPU resources in reverse creation order. Close is
// idempotent; the State cannot be used afterwards.
func (s *State) Close() {
	if s.closed {
		return
	}
	s.closed = true

	s.buffers.destroy(s.device)
	s.buffers = nil
	s.pipeline.destroy(s.device)
	s.pipeline = nil

	if s.surface != nil {
		s.surface.Destroy()
		s.surface = nil
	}
	if s.instance != nil {
		// Devices opened by New are owned here; injected ones are not.
		s.device.Destroy()
		s.instance.Destroy()
		s.instance = nil
	}
	s.adapter = nil
	s.device = nil
	s.queue = nil
	Logger().Debug("gfx: state closed")
}

// sharedDevice exposes the State's device as a gpucontext.Device. The State
// owns the device: Destroy does nothing and Close releases it.
type sharedDevice struct {
	device hal.Device
}

// Poll returns immediately; every frame is fence-waited in Render.
func (d sharedDevice) Poll(wait bool) {}

func (d sharedDevice) Destroy() {}

// HalDevice returns the underlying HAL device.
func (d sharedDevice) HalDevice() any {
	return d.device
}
