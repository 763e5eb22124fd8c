package model

import (
	"github.com/Carmen-Shannon/oxy-desk/common"
	"github.com/Carmen-Shannon/oxy-desk/engine/shading"
	"github.com/go-gl/mathgl/mgl32"
)

// Transform places a mesh in the world: translation, orientation and a
// uniform scale, applied as T * R * S.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    float32
}

// IdentityTransform returns a Transform that leaves geometry in place.
func IdentityTransform() Transform {
	return Transform{Rotation: mgl32.QuatIdent(), Scale: 1}
}

// Matrix returns the local-to-world matrix of the transform.
func (t Transform) Matrix() mgl32.Mat4 {
	return common.BuildModelMatrix(t.Position, t.Rotation, t.Scale)
}

// ModelState returns the transform as a shading snapshot.
func (t Transform) ModelState() shading.ModelState {
	return shading.ModelState{Model: t.Matrix()}
}
