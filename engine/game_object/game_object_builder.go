package game_object

import (
	"github.com/go-gl/mathgl/mgl32"
)

// GameObjectBuilderOption is a functional option for configuring a GameObject during construction.
type GameObjectBuilderOption func(*gameObject)

// WithID sets the ID of the GameObject.
//
// Parameters:
//   - id: unique identifier for the GameObject
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the ID
func WithID(id uint64) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.id = id
	}
}

// WithEnabled sets whether the GameObject is enabled for rendering.
//
// Parameters:
//   - enabled: true to render the object, false to skip it
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Enabled state
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.enabled.Store(enabled)
	}
}

// WithPosition sets the initial world position of the GameObject's base.
//
// Parameters:
//   - position: the world-space position
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the initial position
func WithPosition(position mgl32.Vec3) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.transform.Position = position
	}
}

// WithScale sets the initial uniform scale of the GameObject. The value is
// clamped to [MinScale, MaxScale].
//
// Parameters:
//   - scale: the uniform scale factor
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the initial scale
func WithScale(scale float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.transform.Scale = scale
	}
}

// WithRotation sets the initial orientation of the GameObject.
//
// Parameters:
//   - rotation: the orientation quaternion
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the initial rotation
func WithRotation(rotation mgl32.Quat) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.transform.Rotation = rotation
	}
}

// WithColors overrides the type's default main and accent colors.
//
// Parameters:
//   - color: packed 0xRRGGBB main color
//   - accent: packed 0xRRGGBB accent color
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the colors
func WithColors(color, accent uint32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.color, obj.accent = color, accent
	}
}

// WithLampOn sets the initial switch state of a lamp.
//
// Parameters:
//   - on: true to start lit
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the lamp state
func WithLampOn(on bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.lampOn = on
	}
}

// WithGlobeRotating starts a globe spinning from construction.
//
// Parameters:
//   - rotating: true to spin
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the globe state
func WithGlobeRotating(rotating bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.globeRotating = rotating
	}
}
