package scene

import (
	"math"

	"github.com/Carmen-Shannon/oxy-desk/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
)

// Config groups the static layout of the desk scene.
type Config struct {
	// DeskWidth, DeskDepth and DeskHeight size the desk; objects stand on y = DeskHeight.
	DeskWidth  float32
	DeskDepth  float32
	DeskHeight float32
	// DeskColor is the packed 0xRRGGBB desk color.
	DeskColor uint32

	// FloorHalfSize is half the edge length of the square floor plane at y = 0.
	FloorHalfSize float32
	// FloorColor is the packed 0xRRGGBB floor color.
	FloorColor uint32

	// CameraPosition and CameraTarget place the camera.
	CameraPosition mgl32.Vec3
	CameraTarget   mgl32.Vec3
	// Fov is the vertical field of view in radians.
	Fov  float32
	Near float32
	Far  float32

	// DragLimitX and DragLimitZ bound dragged objects to |x| <= DragLimitX, |z| <= DragLimitZ.
	DragLimitX float32
	DragLimitZ float32
	// DragPlaneOffset lifts the drag plane above the desk surface.
	DragPlaneOffset float32
	// DropRate is how fast a released object eases to its resting height, as the fraction
	// of the remaining distance covered per second. Zero or less lands objects on the next Update.
	DropRate float32

	// RoomDarkness is the initial darkness level in [0, 1].
	RoomDarkness float32
}

// DefaultConfig returns the layout of the default desk scene.
//
// Returns:
//   - Config: the default configuration
func DefaultConfig() Config {
	return Config{
		DeskWidth:       10,
		DeskDepth:       7,
		DeskHeight:      0.75,
		DeskColor:       0x8b5a2b,
		FloorHalfSize:   50,
		FloorColor:      0x2d2d44,
		CameraPosition:  camera.DefaultPosition,
		CameraTarget:    camera.DefaultLookAt,
		Fov:             45 * math.Pi / 180,
		Near:            0.1,
		Far:             100,
		DragLimitX:      4.5,
		DragLimitZ:      3.0,
		DragPlaneOffset: 0.5,
		DropRate:        9,
		RoomDarkness:    1,
	}
}
