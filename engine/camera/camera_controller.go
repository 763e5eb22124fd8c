package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraController defines the first-person look controls for a camera.
// Controllers own positional state (position, yaw, pitch). Camera reads from
// the controller and computes view/projection matrices.
//
// Yaw is measured from the +Z axis toward +X, pitch from the horizontal plane.
// Both are clamped to limits fixed at construction, with the yaw window
// centred on the initial yaw.
type CameraController interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: world-space camera position
	Position() mgl32.Vec3

	// SetPosition sets the camera's world-space position directly.
	//
	// Parameters:
	//   - position: world-space coordinates
	SetPosition(position mgl32.Vec3)

	// Target returns a point one unit along the look direction.
	//
	// Returns:
	//   - mgl32.Vec3: world-space look-at point
	Target() mgl32.Vec3

	// Yaw returns the horizontal look angle in radians.
	Yaw() float32

	// Pitch returns the vertical look angle in radians.
	Pitch() float32

	// Rotate applies a look delta, typically mouse movement in pixels. Positive
	// dx turns right, positive dy looks down. Both angles are clamped.
	//
	// Parameters:
	//   - dx: horizontal delta scaled by Sensitivity
	//   - dy: vertical delta scaled by Sensitivity
	Rotate(dx, dy float32)

	// Forward returns the unit look direction projected onto the ground plane.
	//
	// Returns:
	//   - mgl32.Vec3: horizontal forward vector
	Forward() mgl32.Vec3

	// Right returns the unit vector to the right of Forward.
	//
	// Returns:
	//   - mgl32.Vec3: horizontal right vector
	Right() mgl32.Vec3

	// LookDirection returns the unit look direction including pitch.
	//
	// Returns:
	//   - mgl32.Vec3: look direction
	LookDirection() mgl32.Vec3

	// Move translates the camera along its local axes.
	//
	// Parameters:
	//   - forward: distance along Forward
	//   - right: distance along Right
	//   - up: distance along world +Y
	Move(forward, right, up float32)

	// Reset restores the initial position, yaw and pitch.
	Reset()

	// Sensitivity returns the radians-per-unit multiplier applied by Rotate.
	//
	// Returns:
	//   - float32: look sensitivity
	Sensitivity() float32
}
