package shading

import "github.com/go-gl/mathgl/mgl32"

// MaxLights is the fixed capacity of the point-light array in LightingState.
const MaxLights = 8

// CameraState is the per-frame camera snapshot consumed by both stages.
type CameraState struct {
	// ViewProj transforms world space into clip space (projection * view).
	ViewProj mgl32.Mat4
	// Position is the eye point in world space, used for fog distance.
	Position mgl32.Vec3
}

// ModelState is the local-to-world transform of one drawable.
type ModelState struct {
	Model mgl32.Mat4
}

// IdentityModel returns a ModelState that leaves vertices in place.
func IdentityModel() ModelState {
	return ModelState{Model: mgl32.Ident4()}
}

// PointLight is an omnidirectional light. A non-positive Intensity contributes nothing.
type PointLight struct {
	Position  mgl32.Vec3
	Intensity float32
}

// LightingState is the per-frame lighting snapshot. Only the first
// min(NumLights, MaxLights) entries of Lights are read.
type LightingState struct {
	Lights    [MaxLights]PointLight
	NumLights uint32
	// RoomDarkness blends the base light and fog between a bright room (0)
	// and a dark room (1).
	RoomDarkness float32
}

// ActiveLights returns the slice of lights that the fragment stage evaluates.
//
// Returns:
//   - []PointLight: Lights[:min(NumLights, MaxLights)]
func (ls *LightingState) ActiveLights() []PointLight {
	n := ls.NumLights
	if n > MaxLights {
		n = MaxLights
	}
	return ls.Lights[:n]
}

// Vertex is one mesh vertex in local space. Color is straight (not
// premultiplied) RGBA.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	Color    mgl32.Vec4
}

// VertexOutput is the result of the vertex stage for one vertex.
type VertexOutput struct {
	ClipPosition  mgl32.Vec4
	WorldPosition mgl32.Vec3
	WorldNormal   mgl32.Vec3
	Color         mgl32.Vec4
}

// Fragment holds the attributes interpolated across a triangle for one pixel.
// WorldNormal is generally not unit length after interpolation.
type Fragment struct {
	WorldPosition mgl32.Vec3
	WorldNormal   mgl32.Vec3
	Color         mgl32.Vec4
}
