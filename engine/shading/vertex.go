package shading

import (
	"github.com/Carmen-Shannon/oxy-desk/common"
)

// TransformVertex maps a local-space vertex into clip space and world space.
//
// The normal is transformed by the upper-left 3x3 of the model matrix and
// renormalized. This is exact for rotations combined with uniform scale only;
// a non-uniformly scaled model receives skewed normals because the
// inverse-transpose is not used.
//
// Parameters:
//   - v: the local-space vertex
//   - cam: camera snapshot providing the view-projection matrix
//   - model: the drawable's local-to-world transform
//
// Returns:
//   - VertexOutput: clip position, world position, world normal and color
func TransformVertex(v Vertex, cam CameraState, model ModelState) VertexOutput {
	world := model.Model.Mul4x1(v.Position.Vec4(1))
	return VertexOutput{
		ClipPosition:  cam.ViewProj.Mul4x1(world),
		WorldPosition: world.Vec3(),
		WorldNormal:   common.SafeNormalize(model.Model.Mat3().Mul3x1(v.Normal)),
		Color:         v.Color,
	}
}
