package scene

import (
	"github.com/Carmen-Shannon/oxy-desk/common"
	"github.com/Carmen-Shannon/oxy-desk/engine/camera"
	"github.com/Carmen-Shannon/oxy-desk/engine/game_object"
	"github.com/Carmen-Shannon/oxy-desk/engine/raster"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithName sets the scene's identifier.
//
// Parameters:
//   - name: the scene name
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithName(name string) SceneBuilderOption {
	return func(s *scene) {
		s.name = common.Coalesce(name, DefaultName)
	}
}

// WithActive sets whether the scene is active for rendering.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithConfig replaces the default scene layout.
//
// Parameters:
//   - config: the layout to use
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithConfig(config Config) SceneBuilderOption {
	return func(s *scene) {
		s.config = config
	}
}

// WithCamera supplies the camera instead of building one from the config.
//
// Parameters:
//   - cam: the camera
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCamera(cam camera.Camera) SceneBuilderOption {
	return func(s *scene) {
		s.cam = cam
	}
}

// WithRasterizer supplies the rasterizer. A supplied rasterizer is not closed by Scene.Close.
//
// Parameters:
//   - r: the rasterizer
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithRasterizer(r raster.Rasterizer) SceneBuilderOption {
	return func(s *scene) {
		s.rast = r
	}
}

// WithRasterizerOptions configures the rasterizer the scene creates when none is supplied.
//
// Parameters:
//   - options: rasterizer options such as raster.WithWorkers
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithRasterizerOptions(options ...raster.RasterizerBuilderOption) SceneBuilderOption {
	return func(s *scene) {
		s.rastOpts = append(s.rastOpts, options...)
	}
}

// WithObjects adds initial objects to the scene. Every object must carry a unique non-zero ID.
//
// Parameters:
//   - objects: the objects to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithObjects(objects ...game_object.GameObject) SceneBuilderOption {
	return func(s *scene) {
		s.initial = append(s.initial, objects...)
	}
}

// WithDefaultObjects toggles the default lamp, mug, globe and books. Enabled by default.
//
// Parameters:
//   - enabled: true to place the default objects
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithDefaultObjects(enabled bool) SceneBuilderOption {
	return func(s *scene) {
		s.defaults = enabled
	}
}

// WithRoomDarkness sets the initial darkness level, overriding Config.RoomDarkness.
//
// Parameters:
//   - roomDarkness: darkness in [0, 1]
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithRoomDarkness(roomDarkness float32) SceneBuilderOption {
	return func(s *scene) {
		s.darkness = roomDarkness
		s.darknessSet = true
	}
}
