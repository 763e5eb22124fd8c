package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-desk/common"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	defaultSensitivity = 0.002
	defaultMinPitch    = -1.55 // ~89 degrees down
	defaultMaxPitch    = 0.42  // ~24 degrees up
	defaultYawRange    = 1.40  // ~80 degrees either side
)

var (
	// DefaultPosition is the seated eye point in front of the desk.
	DefaultPosition = mgl32.Vec3{0, 3.2, 6.5}
	// DefaultLookAt is the point on the desk the camera initially faces.
	DefaultLookAt = mgl32.Vec3{0, 0.75, 0}

	worldUp = mgl32.Vec3{0, 1, 0}
)

// cameraControllerImpl is the single implementation of CameraController.
type cameraControllerImpl struct {
	mu *sync.Mutex

	position mgl32.Vec3
	lookAt   mgl32.Vec3
	yaw      float32
	pitch    float32

	sensitivity float32
	minPitch    float32
	maxPitch    float32
	yawRange    float32
	minYaw      float32
	maxYaw      float32

	// Restored by Reset.
	defaultPosition mgl32.Vec3
	defaultYaw      float32
	defaultPitch    float32
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a first-person controller looking from
// DefaultPosition toward DefaultLookAt unless options override them.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:          &sync.Mutex{},
		position:    DefaultPosition,
		lookAt:      DefaultLookAt,
		sensitivity: defaultSensitivity,
		minPitch:    defaultMinPitch,
		maxPitch:    defaultMaxPitch,
		yawRange:    defaultYawRange,
	}

	for _, option := range options {
		option(cc)
	}

	cc.yaw, cc.pitch = AnglesFromLookAt(cc.position, cc.lookAt)
	cc.minYaw = cc.yaw - cc.yawRange
	cc.maxYaw = cc.yaw + cc.yawRange
	cc.defaultPosition = cc.position
	cc.defaultYaw = cc.yaw
	cc.defaultPitch = cc.pitch
	return cc
}

// AnglesFromLookAt derives the yaw and pitch that face target from position.
// Coincident points yield zero angles.
//
// Parameters:
//   - position: eye position
//   - target: point to face
//
// Returns:
//   - yaw: atan2(dx, dz)
//   - pitch: asin(dy / |d|)
func AnglesFromLookAt(position, target mgl32.Vec3) (yaw, pitch float32) {
	d := target.Sub(position)
	l := d.Len()
	if l == 0 {
		return 0, 0
	}
	yaw = float32(math.Atan2(float64(d[0]), float64(d[2])))
	pitch = float32(math.Asin(float64(mgl32.Clamp(d[1]/l, -1, 1))))
	return yaw, pitch
}

// direction returns the look direction for a yaw/pitch pair.
func direction(yaw, pitch float32) mgl32.Vec3 {
	sy, cy := math.Sincos(float64(yaw))
	sp, cp := math.Sincos(float64(pitch))
	return mgl32.Vec3{float32(sy * cp), float32(sp), float32(cy * cp)}
}

func (cc *cameraControllerImpl) Position() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position
}

func (cc *cameraControllerImpl) SetPosition(position mgl32.Vec3) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.position = position
}

func (cc *cameraControllerImpl) Target() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position.Add(direction(cc.yaw, cc.pitch))
}

func (cc *cameraControllerImpl) Yaw() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.yaw
}

func (cc *cameraControllerImpl) Pitch() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.pitch
}

func (cc *cameraControllerImpl) Rotate(dx, dy float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.yaw = mgl32.Clamp(cc.yaw-dx*cc.sensitivity, cc.minYaw, cc.maxYaw)
	cc.pitch = mgl32.Clamp(cc.pitch-dy*cc.sensitivity, cc.minPitch, cc.maxPitch)
}

func (cc *cameraControllerImpl) Forward() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.forward()
}

func (cc *cameraControllerImpl) Right() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return common.SafeNormalize(cc.forward().Cross(worldUp))
}

func (cc *cameraControllerImpl) LookDirection() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return common.SafeNormalize(direction(cc.yaw, cc.pitch))
}

func (cc *cameraControllerImpl) Move(forward, right, up float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	f := cc.forward()
	r := common.SafeNormalize(f.Cross(worldUp))
	cc.position = cc.position.Add(f.Mul(forward)).Add(r.Mul(right)).Add(worldUp.Mul(up))
}

func (cc *cameraControllerImpl) Reset() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.position = cc.defaultPosition
	cc.yaw = cc.defaultYaw
	cc.pitch = cc.defaultPitch
}

func (cc *cameraControllerImpl) Sensitivity() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.sensitivity
}

// forward computes the horizontal look direction. Caller must hold the mutex.
func (cc *cameraControllerImpl) forward() mgl32.Vec3 {
	s, c := math.Sincos(float64(cc.yaw))
	return common.SafeNormalize(mgl32.Vec3{float32(s), 0, float32(c)})
}
