package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Lerp linearly interpolates between a and b. The result is exactly a at t = 0
// and exactly b at t = 1.
//
// Parameters:
//   - a: value at t = 0
//   - b: value at t = 1
//   - t: interpolation factor
//
// Returns:
//   - float32: a*(1-t) + b*t
func Lerp(a, b, t float32) float32 {
	return a*(1-t) + b*t
}

// LerpVec3 linearly interpolates each component of a and b, using the same
// weighting as Lerp.
//
// Parameters:
//   - a: value at t = 0
//   - b: value at t = 1
//   - t: interpolation factor
//
// Returns:
//   - mgl32.Vec3: a*(1-t) + b*t
func LerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Mul(1 - t).Add(b.Mul(t))
}

// SafeNormalize returns v scaled to unit length. A zero-length vector is
// returned unchanged instead of producing Inf/NaN components.
//
// Parameters:
//   - v: the vector to normalize
//
// Returns:
//   - mgl32.Vec3: the normalized vector, or the zero vector
func SafeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l == 0 {
		return mgl32.Vec3{}
	}
	inv := 1.0 / l
	return mgl32.Vec3{v[0] * inv, v[1] * inv, v[2] * inv}
}

// Perspective creates a right-handed perspective projection matrix with the
// WebGPU clip-space depth range [0, 1]. mgl32.Perspective targets the OpenGL
// range [-1, 1] and is not used for that reason.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the column-major projection matrix
func Perspective(fovY, aspect, near, far float32) mgl32.Mat4 {
	f := 1.0 / float32(math.Tan(float64(fovY)/2.0))
	var out mgl32.Mat4
	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	return out
}

// BuildModelMatrix constructs a local-to-world matrix from a translation, a
// rotation and a uniform scale factor: T * R * S.
//
// Parameters:
//   - position: translation in world space
//   - rotation: orientation quaternion (need not be normalized)
//   - scale: uniform scale factor
//
// Returns:
//   - mgl32.Mat4: the column-major model matrix
func BuildModelMatrix(position mgl32.Vec3, rotation mgl32.Quat, scale float32) mgl32.Mat4 {
	t := mgl32.Translate3D(position[0], position[1], position[2])
	r := rotation.Normalize().Mat4()
	s := mgl32.Scale3D(scale, scale, scale)
	return t.Mul4(r).Mul4(s)
}
