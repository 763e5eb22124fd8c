package engine

import (
	"github.com/Carmen-Shannon/oxy-desk/common"
	"github.com/Carmen-Shannon/oxy-desk/engine/scene"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithTickRate sets the engine tick rate in ticks per second.
// Values <= 0 will be treated as the default (60).
//
// Parameters:
//   - tps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(tps int) EngineBuilderOption {
	return func(e *engine) {
		if tps <= 0 {
			tps = DefaultTickRate
		}
		e.tickRate = tps
	}
}

// WithScene registers a scene at the given z-index key during engine construction.
// The highest-keyed active scene is the one presented.
//
// Parameters:
//   - key: the z-index of the scene
//   - s: the Scene to register
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(key int, s scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scenes[key] = s
	}
}

// WithSize sets the framebuffer resolution in pixels.
// Non-positive dimensions are rejected by NewEngine.
//
// Parameters:
//   - width: framebuffer width
//   - height: framebuffer height
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithSize(width, height int) EngineBuilderOption {
	return func(e *engine) {
		e.width = width
		e.height = height
	}
}

// WithScale sets the integer window scale applied to the framebuffer.
// Values < 1 are ignored.
//
// Parameters:
//   - scale: window pixels per framebuffer pixel
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScale(scale int) EngineBuilderOption {
	return func(e *engine) {
		if scale >= 1 {
			e.scale = scale
		}
	}
}

// WithTitle sets the window title. An empty title keeps DefaultTitle.
func WithTitle(title string) EngineBuilderOption {
	return func(e *engine) {
		e.title = common.Coalesce(title, DefaultTitle)
	}
}

// withInput replaces the input source; used by tests.
func withInput(in inputSource) EngineBuilderOption {
	return func(e *engine) {
		e.input = in
	}
}
