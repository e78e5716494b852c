package gfx

import (
	_ "embed"
	"encoding/binary"
	"fmt"

	"github.com/gogpu/naga"
)

//go:embed shaders/triangle.wgsl
var triangleShaderSource string

const (
	vertexEntryPoint   = "vs_main"
	fragmentEntryPoint = "fs_main"
)

// ShaderSource returns the WGSL source of the triangle pipeline.
func ShaderSource() string {
	return triangleShaderSource
}

// CompileShader compiles the triangle shader to SPIR-V with naga and returns
// the SPIR-V words. It does not need a GPU and is used to validate the
// shader offline.
func CompileShader() ([]uint32, error) {
	spirvBytes, err := naga.Compile(triangleShaderSource)
	if err != nil {
		return nil, fmt.Errorf("gfx: compile shader: %w", err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("gfx: compile shader: SPIR-V length %d is not word aligned", len(spirvBytes))
	}

	// SPIR-V is little-endian 32-bit words.
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(spirvBytes[i*4:])
	}
	return words, nil
}
