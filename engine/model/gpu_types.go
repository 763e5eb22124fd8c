package model

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-desk/engine/shading"
	"github.com/cogentcore/webgpu/wgpu"
)

// GPUVertexSource is the canonical WGSL definition of the VertexInput struct for desk mesh pipelines.
// Matches GPUVertex layout exactly (40 bytes, tightly packed).
//
//go:embed assets/vertex.wgsl
var GPUVertexSource string

// GPUVertexStride is the byte distance between consecutive vertices in a vertex buffer.
const GPUVertexStride = 40

// GPUVertex is the GPU-aligned representation of a single mesh vertex.
// Matches the WGSL VertexInput struct layout exactly (see GPUVertexSource).
// Size: 40 bytes (vertex attributes are tightly packed, no padding required).
type GPUVertex struct {
	Position [3]float32 // offset  0: vertex position in model space (12 bytes)
	Normal   [3]float32 // offset 12: vertex normal for lighting (12 bytes)
	Color    [4]float32 // offset 24: per-vertex RGBA color (16 bytes)
}

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 40-byte buffer ready for GPU upload.
func (g *GPUVertex) Marshal() []byte {
	buf := make([]byte, GPUVertexStride)
	g.marshalInto(buf)
	return buf
}

func (g *GPUVertex) marshalInto(buf []byte) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Position[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.Normal[0]))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.Normal[1]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(g.Normal[2]))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(g.Color[0]))
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(g.Color[1]))
	binary.LittleEndian.PutUint32(buf[32:36], math.Float32bits(g.Color[2]))
	binary.LittleEndian.PutUint32(buf[36:40], math.Float32bits(g.Color[3]))
}

// ToGPUVertex converts a shading vertex into its vertex-buffer layout.
//
// Parameters:
//   - v: the local-space vertex
//
// Returns:
//   - GPUVertex: the GPU-aligned representation
func ToGPUVertex(v shading.Vertex) GPUVertex {
	return GPUVertex{
		Position: v.Position,
		Normal:   v.Normal,
		Color:    v.Color,
	}
}

// MarshalVertices serializes a vertex slice into one contiguous vertex buffer.
//
// Parameters:
//   - vertices: the vertices to serialize
//
// Returns:
//   - []byte: len(vertices) * GPUVertexStride bytes
func MarshalVertices(vertices []shading.Vertex) []byte {
	buf := make([]byte, len(vertices)*GPUVertexStride)
	for i, v := range vertices {
		g := ToGPUVertex(v)
		g.marshalInto(buf[i*GPUVertexStride:])
	}
	return buf
}

// MarshalIndices serializes a uint16 index slice as little-endian bytes.
// The buffer is padded to a multiple of 4 bytes as required for buffer writes.
//
// Parameters:
//   - indices: the triangle indices
//
// Returns:
//   - []byte: the serialized index buffer
func MarshalIndices(indices []uint16) []byte {
	size := len(indices) * 2
	size += (4 - size%4) % 4
	buf := make([]byte, size)
	for i, idx := range indices {
		binary.LittleEndian.PutUint16(buf[i*2:], idx)
	}
	return buf
}

// VertexBufferLayout describes how GPUVertex is laid out in a vertex buffer.
//
// Returns:
//   - wgpu.VertexBufferLayout: stride 40, three per-vertex attributes at locations 0..2
func VertexBufferLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: GPUVertexStride,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 24, ShaderLocation: 2},
		},
	}
}

// GPUModelDataSource is the canonical WGSL definition of the ModelData struct for per-object model matrices.
// Matches GPUModelData layout exactly (64 bytes).
//
//go:embed assets/model_data.wgsl
var GPUModelDataSource string

// GPUModelData is the GPU-aligned representation of a single per-object model matrix.
// Matches the WGSL ModelData struct layout exactly (see GPUModelDataSource).
// Size: 64 bytes (mat4x4<f32> = 16 × float32, no padding required).
type GPUModelData struct {
	Model [16]float32 // offset 0: 4×4 model-to-world transform matrix (64 bytes)
}

// Size returns the size of the GPUModelData struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUModelData) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUModelData struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload.
func (g *GPUModelData) Marshal() []byte {
	buf := make([]byte, 64)
	for i := 0; i < 16; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:(i+1)*4], math.Float32bits(g.Model[i]))
	}
	return buf
}

// ToGPUModelData converts a model snapshot into its uniform layout.
//
// Parameters:
//   - state: the model snapshot
//
// Returns:
//   - GPUModelData: the GPU-aligned representation
func ToGPUModelData(state shading.ModelState) GPUModelData {
	return GPUModelData{Model: state.Model}
}
