package light

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-desk/engine/shading"
)

// GPULightingUniformSource is the canonical WGSL definition of the LightingUniform struct.
// Matches GPULightingUniform layout exactly (144 bytes, uniform address space).
//
//go:embed assets/lighting_uniform.wgsl
var GPULightingUniformSource string

// GPULightingUniform is the GPU-aligned representation of the lighting snapshot.
// Matches the WGSL LightingUniform struct layout exactly (see GPULightingUniformSource).
// Size: 144 bytes.
//
// Layout:
//
//	array<vec4<f32>, 8> point_lights  (128 bytes, offset   0) xyz position, w intensity
//	u32                 num_lights    (  4 bytes, offset 128)
//	f32                 room_darkness (  4 bytes, offset 132)
//	vec2<f32>           _padding      (  8 bytes, offset 136)
type GPULightingUniform struct {
	PointLights  [shading.MaxLights][4]float32
	NumLights    uint32
	RoomDarkness float32
	_pad         [2]float32
}

// Size returns the size of the GPULightingUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (144)
func (u *GPULightingUniform) Size() int {
	return int(unsafe.Sizeof(*u))
}

// Marshal serializes the GPULightingUniform struct into a byte buffer suitable
// for GPU uniform upload.
//
// Returns:
//   - []byte: 144-byte buffer ready for GPU upload
func (u *GPULightingUniform) Marshal() []byte {
	buf := make([]byte, u.Size())
	off := 0
	for i := range u.PointLights {
		for j := range 4 {
			binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(u.PointLights[i][j]))
			off += 4
		}
	}
	binary.LittleEndian.PutUint32(buf[128:132], u.NumLights)
	binary.LittleEndian.PutUint32(buf[132:136], math.Float32bits(u.RoomDarkness))
	// 136..144 is padding and stays zero.
	return buf
}

// ToGPULightingUniform converts a lighting snapshot into its uniform layout.
// NumLights is clamped to shading.MaxLights so the shader loop stays in bounds.
//
// Parameters:
//   - ls: the lighting snapshot
//
// Returns:
//   - GPULightingUniform: the GPU-aligned representation
func ToGPULightingUniform(ls shading.LightingState) GPULightingUniform {
	u := GPULightingUniform{
		NumLights:    min(ls.NumLights, shading.MaxLights),
		RoomDarkness: ls.RoomDarkness,
	}
	for i, l := range ls.Lights {
		u.PointLights[i] = [4]float32{l.Position[0], l.Position[1], l.Position[2], l.Intensity}
	}
	return u
}
