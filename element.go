package gfx

import "github.com/go-gl/mathgl/mgl32"

// Element describes a shape as an ordered list of points sharing one flat
// color. Element is a value type: every With method returns a modified copy,
// so calls chain naturally.
//
//	verts := gfx.NewElement().
//	    WithShape(points).
//	    WithColor(mgl32.Vec4{0, 0, 1, 1}).
//	    Build()
type Element struct {
	shape []mgl32.Vec3
	color mgl32.Vec4
}

// NewElement returns an empty element colored transparent black.
func NewElement() Element {
	return Element{}
}

// WithShape sets the element's points. The slice is not copied.
func (e Element) WithShape(points []mgl32.Vec3) Element {
	e.shape = points
	return e
}

// WithColor sets the color shared by every vertex.
func (e Element) WithColor(color mgl32.Vec4) Element {
	e.color = color
	return e
}

// Shape returns the element's points.
func (e Element) Shape() []mgl32.Vec3 {
	return e.shape
}

// Color returns the element's color.
func (e Element) Color() mgl32.Vec4 {
	return e.color
}

// Build converts the element into vertices, one per point, in order.
// The color is taken at Build time.
func (e Element) Build() []Vertex {
	out := make([]Vertex, 0, len(e.shape))
	for _, p := range e.shape {
		out = append(out, Vertex{Position: p, Color: e.color})
	}
	return out
}

// Mesh builds the element and indexes its vertices sequentially, so every
// three consecutive points form one triangle.
func (e Element) Mesh() (*Mesh, error) {
	vertices := e.Build()
	indices := make([]uint16, len(vertices))
	for i := range indices {
		indices[i] = uint16(i) //nolint:gosec // bounded by NewMesh
	}
	return NewMesh(vertices, indices)
}
