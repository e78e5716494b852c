// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gfx

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// trianglePipeline holds the GPU objects of the fixed render pipeline.
type trianglePipeline struct {
	shader     hal.ShaderModule
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline
}

// createTrianglePipeline compiles the triangle shader and creates a render
// pipeline targeting format. Blending is REPLACE (no blend state), back
// faces are culled and there is no depth/stencil or multisampling.
func createTrianglePipeline(device hal.Device, format gputypes.TextureFormat) (*trianglePipeline, error) {
	if triangleShaderSource == "" {
		return nil, fmt.Errorf("triangle shader source is empty")
	}
	p := &trianglePipeline{}

	shader, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "gfx_triangle_shader",
		Source: hal.ShaderSource{WGSL: triangleShaderSource},
	})
	if err != nil {
		return nil, fmt.Errorf("compile triangle shader: %w", err)
	}
	p.shader = shader

	pipeLayout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label: "gfx_render_pipeline_layout",
	})
	if err != nil {
		p.destroy(device)
		return nil, fmt.Errorf("create pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	pipeline, err := device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "gfx_render_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: vertexEntryPoint,
			Buffers:    vertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: fragmentEntryPoint,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    format,
					Blend:     nil, // replace
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology:  gputypes.PrimitiveTopologyTriangleList,
			FrontFace: gputypes.FrontFaceCCW,
			CullMode:  gputypes.CullModeBack,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		p.destroy(device)
		return nil, fmt.Errorf("create render pipeline: %w", err)
	}
	p.pipeline = pipeline

	Logger().Debug("gfx: render pipeline created", "format", format)
	return p, nil
}

// destroy releases pipeline resources in reverse creation order.
func (p *trianglePipeline) destroy(device hal.Device) {
	if p == nil || device == nil {
		return
	}
	if p.pipeline != nil {
		device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.pipeLayout != nil {
		device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.shader != nil {
		device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}

// meshBuffers holds the uploaded vertex and index buffers of one mesh.
type meshBuffers struct {
	vertexBuf  hal.Buffer
	indexBuf   hal.Buffer
	indexCount uint32
}

// uploadMesh creates the vertex and index buffers for m and writes their
// contents through queue.
func uploadMesh(device hal.Device, queue hal.Queue, m *Mesh) (*meshBuffers, error) {
	vertexBuf, err := createAndUploadBuffer(device, queue, "gfx_vertex_buffer", m.VertexBytes(),
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, fmt.Errorf("create vertex buffer: %w", err)
	}

	indexBuf, err := createAndUploadBuffer(device, queue, "gfx_index_buffer", m.IndexBytes(),
		gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
	if err != nil {
		device.DestroyBuffer(vertexBuf)
		return nil, fmt.Errorf("create index buffer: %w", err)
	}

	Logger().Debug("gfx: mesh uploaded",
		"vertices", len(m.Vertices()), "indices", m.IndexCount())
	return &meshBuffers{
		vertexBuf:  vertexBuf,
		indexBuf:   indexBuf,
		indexCount: m.IndexCount(),
	}, nil
}

func (b *meshBuffers) destroy(device hal.Device) {
	if b == nil || device == nil {
		return
	}
	if b.indexBuf != nil {
		device.DestroyBuffer(b.indexBuf)
		b.indexBuf = nil
	}
	if b.vertexBuf != nil {
		device.DestroyBuffer(b.vertexBuf)
		b.vertexBuf = nil
	}
}

// createAndUploadBuffer creates a GPU buffer and uploads data.
func createAndUploadBuffer(device hal.Device, queue hal.Queue, label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	queue.WriteBuffer(buf, 0, data)
	return buf, nil
}
