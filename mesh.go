package gfx

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// maxVertices is the number of vertices addressable with 16-bit indices.
const maxVertices = 1 << 16

// Mesh is an indexed triangle list ready for upload. A Mesh is immutable
// after construction.
type Mesh struct {
	vertices []Vertex
	indices  []uint16
}

// NewMesh validates and wraps vertices and triangle-list indices.
//
// Returns an error if:
//   - there are more vertices than 16-bit indices can address
//   - indices is empty
//   - the index count is not a multiple of 3
//   - any index is >= len(vertices)
func NewMesh(vertices []Vertex, indices []uint16) (*Mesh, error) {
	if len(vertices) > maxVertices {
		return nil, fmt.Errorf("%w: %d", ErrTooManyVertices, len(vertices))
	}
	if len(indices) == 0 {
		return nil, ErrEmptyMesh
	}
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("%w: %d indices", ErrIncompleteTriangle, len(indices))
	}
	for i, idx := range indices {
		if int(idx) >= len(vertices) {
			return nil, fmt.Errorf("%w: indices[%d]=%d, %d vertices", ErrIndexOutOfRange, i, idx, len(vertices))
		}
	}
	return &Mesh{vertices: vertices, indices: indices}, nil
}

// defaultMeshColor is the flat color of DefaultMesh: red, zero alpha.
var defaultMeshColor = mgl32.Vec4{1, 0, 0, 0}

// DefaultMesh returns the mesh drawn when New is given no mesh and no
// color: the triangle points built as one Element in flat red with zero
// alpha, indexed 0, 1, 2.
func DefaultMesh() *Mesh {
	return &Mesh{
		vertices: NewElement().WithColor(defaultMeshColor).WithShape(TrianglePoints()).Build(),
		indices:  []uint16{0, 1, 2},
	}
}

// TriangleMesh returns the triangle with per-vertex red, green and blue
// half-transparent colors and indices 0, 1, 2. Pass it to WithMesh to draw
// a shaded triangle instead of DefaultMesh.
func TriangleMesh() *Mesh {
	return &Mesh{
		vertices: []Vertex{
			{Position: mgl32.Vec3{-0.0868241, 0.49240386, 0.0}, Color: mgl32.Vec4{1.0, 0.0, 0.0, 0.5}},   // A
			{Position: mgl32.Vec3{-0.49513406, 0.06958647, 0.0}, Color: mgl32.Vec4{0.0, 1.0, 0.0, 0.5}},  // B
			{Position: mgl32.Vec3{-0.21918549, -0.44939706, 0.0}, Color: mgl32.Vec4{0.0, 0.0, 1.0, 0.5}}, // C
		},
		indices: []uint16{0, 1, 2},
	}
}

// TrianglePoints returns the positions A, B and C shared by DefaultMesh
// and TriangleMesh.
func TrianglePoints() []mgl32.Vec3 {
	return []mgl32.Vec3{
		{-0.0868241, 0.49240386, 0.0},   // A
		{-0.49513406, 0.06958647, 0.0},  // B
		{-0.21918549, -0.44939706, 0.0}, // C
	}
}

// Vertices returns the mesh vertices.
func (m *Mesh) Vertices() []Vertex {
	return m.vertices
}

// Indices returns the mesh indices.
func (m *Mesh) Indices() []uint16 {
	return m.indices
}

// IndexCount returns the number of indices drawn for the mesh.
func (m *Mesh) IndexCount() uint32 {
	return uint32(len(m.indices)) //nolint:gosec // bounded by maxVertices check
}

// VertexBytes returns the vertex buffer contents.
func (m *Mesh) VertexBytes() []byte {
	return encodeVertices(m.vertices)
}

// IndexBytes returns the index buffer contents, padded to 4 bytes.
func (m *Mesh) IndexBytes() []byte {
	return encodeIndices(m.indices)
}
