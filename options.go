package gfx

import (
	"fmt"

	"github.com/gogpu/wgpu/hal"
)

// Option configures a State during creation.
//
// Example:
//
//	// Default triangle on Vulkan
//	state, err := gfx.New(window)
//
//	// A built element on a custom configuration
//	mesh, _ := gfx.NewElement().WithShape(points).WithColor(red).Mesh()
//	state, err := gfx.New(window, gfx.WithConfig(cfg), gfx.WithMesh(mesh))
type Option func(*options)

// instanceCreator is satisfied by HAL backends.
type instanceCreator interface {
	CreateInstance(desc *hal.InstanceDescriptor) (hal.Instance, error)
}

type options struct {
	config Config
	mesh   *Mesh
	api    instanceCreator
}

func defaultOptions() options {
	return options{
		config: DefaultConfig(),
		mesh:   nil, // resolved by resolveMesh
	}
}

// WithConfig sets the configuration used by New. Backend selects the HAL
// backend; Color, when set and no WithMesh is given, draws the triangle
// points in that flat color.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.config = cfg
	}
}

// WithBackend overrides the configured backend name.
func WithBackend(name string) Option {
	return func(o *options) {
		o.config.Backend = name
	}
}

// WithMesh uploads m instead of the default mesh. It takes precedence over
// Config.Color.
func WithMesh(m *Mesh) Option {
	return func(o *options) {
		o.mesh = m
	}
}

// withAPI injects a HAL backend directly, bypassing registry lookup.
func withAPI(api instanceCreator) Option {
	return func(o *options) {
		o.api = api
	}
}

// resolveMesh picks the mesh New uploads: the WithMesh mesh, else the
// triangle points in Config.Color, else DefaultMesh.
func (o *options) resolveMesh() (*Mesh, error) {
	if o.mesh != nil {
		return o.mesh, nil
	}
	if o.config.Color == "" {
		return DefaultMesh(), nil
	}
	color, err := ParseColor(o.config.Color)
	if err != nil {
		return nil, err
	}
	m, err := NewElement().WithShape(TrianglePoints()).WithColor(color).Mesh()
	if err != nil {
		return nil, fmt.Errorf("gfx: color mesh: %w", err)
	}
	return m, nil
}
