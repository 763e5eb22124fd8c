package shading

import (
	"github.com/Carmen-Shannon/oxy-desk/common"
	"github.com/go-gl/mathgl/mgl32"
)

// ShadeFragment computes the final straight-alpha RGBA color of one fragment.
// The interpolated normal is renormalized, the lighting model's multiplier is
// applied to the surface color, and distance fog is composited on top. Alpha
// passes through unchanged and no channel is clamped.
//
// Parameters:
//   - f: interpolated fragment attributes
//   - cam: camera snapshot
//   - ls: lighting snapshot
//   - model: lighting model, DynamicLighting when nil
//
// Returns:
//   - mgl32.Vec4: the shaded color
func ShadeFragment(f Fragment, cam CameraState, ls LightingState, model LightingModel) mgl32.Vec4 {
	if model == nil {
		model = DynamicLighting{}
	}
	n := common.SafeNormalize(f.WorldNormal)
	total := model.Evaluate(n, f.WorldPosition, cam.Position, ls)

	surface := f.Color.Vec3()
	lit := mgl32.Vec3{surface[0] * total[0], surface[1] * total[1], surface[2] * total[2]}
	return ApplyFog(lit, f.WorldPosition, cam.Position, ls.RoomDarkness).Vec4(f.Color[3])
}
