package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithPosition sets the initial camera position.
//
// Parameters:
//   - position: world-space coordinates
//
// Returns:
//   - CameraControllerOption: functional option to set the position
func WithPosition(position mgl32.Vec3) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.position = position
	}
}

// WithLookAt sets the point the camera initially faces. The initial yaw and
// pitch are derived from it once all options are applied.
//
// Parameters:
//   - target: world-space look-at point
//
// Returns:
//   - CameraControllerOption: functional option to set the look-at point
func WithLookAt(target mgl32.Vec3) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.lookAt = target
	}
}

// WithSensitivity sets the look sensitivity in radians per input unit.
//
// Parameters:
//   - sensitivity: multiplier applied by Rotate
//
// Returns:
//   - CameraControllerOption: functional option to set the sensitivity
func WithSensitivity(sensitivity float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.sensitivity = sensitivity
	}
}

// WithPitchLimits sets the lowest and highest pitch angles.
//
// Parameters:
//   - minPitch: lowest pitch in radians (looking down)
//   - maxPitch: highest pitch in radians (looking up)
//
// Returns:
//   - CameraControllerOption: functional option to set the pitch limits
func WithPitchLimits(minPitch, maxPitch float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minPitch = minPitch
		cc.maxPitch = maxPitch
	}
}

// WithYawRange sets how far the camera may turn either side of its initial yaw.
//
// Parameters:
//   - yawRange: half-width of the yaw window in radians
//
// Returns:
//   - CameraControllerOption: functional option to set the yaw range
func WithYawRange(yawRange float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.yawRange = yawRange
	}
}
