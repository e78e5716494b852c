// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gfx

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
)

// VertexStride is the byte stride of one Vertex in a vertex buffer.
// Layout per vertex:
//
//	position (vec3<f32>) = 12 bytes (location 0)
//	padding  (f32)       =  4 bytes
//	color    (vec4<f32>) = 16 bytes (location 1)
//
// Total = 32 bytes per vertex.
const VertexStride = 32

const (
	positionOffset = 0
	colorOffset    = 16
)

// Vertex is a single mesh vertex with a flat RGBA color.
type Vertex struct {
	Position mgl32.Vec3
	_        float32
	Color    mgl32.Vec4
}

// vertexLayout returns the vertex buffer layout for the triangle pipeline.
func vertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: VertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: positionOffset, ShaderLocation: 0},
				{Format: gputypes.VertexFormatFloat32x4, Offset: colorOffset, ShaderLocation: 1},
			},
		},
	}
}

// encodeVertices writes vertices as little-endian float32 data using the
// VertexStride layout. The padding word is always zero.
func encodeVertices(vertices []Vertex) []byte {
	buf := make([]byte, len(vertices)*VertexStride)
	for i := range vertices {
		v := &vertices[i]
		off := i * VertexStride
		for j, f := range v.Position {
			binary.LittleEndian.PutUint32(buf[off+positionOffset+j*4:], math.Float32bits(f))
		}
		for j, f := range v.Color {
			binary.LittleEndian.PutUint32(buf[off+colorOffset+j*4:], math.Float32bits(f))
		}
	}
	return buf
}

// encodeIndices writes 16-bit indices in little-endian order. The result is
// padded to a multiple of 4 bytes because queue writes must be 4-byte
// aligned.
func encodeIndices(indices []uint16) []byte {
	n := len(indices) * 2
	if n%4 != 0 {
		n += 2
	}
	buf := make([]byte, n)
	for i, idx := range indices {
		binary.LittleEndian.PutUint16(buf[i*2:], idx)
	}
	return buf
}
