package light

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-desk/engine/shading"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultLampIntensity is the intensity given to a lit desk lamp.
const DefaultLampIntensity = 2.5

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	mu        *sync.Mutex
	position  mgl32.Vec3
	intensity float32
	enabled   bool
}

// Light defines the interface for a point light source in the scene.
//
// Lights are scene-level entities owned by whatever emits them (a desk lamp
// for example). Each frame the scene collects the enabled lights into a
// LightingBuilder, which produces the immutable shading.LightingState that
// the shading stages read.
type Light interface {
	// Position returns the world-space position of the light.
	//
	// Returns:
	//   - mgl32.Vec3: position as (x, y, z)
	Position() mgl32.Vec3

	// Intensity returns the scalar intensity multiplier for the light.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// Enabled returns whether this light is active for rendering.
	// Disabled lights are skipped when building the lighting snapshot.
	//
	// Returns:
	//   - bool: true if the light is enabled
	Enabled() bool

	// SetPosition sets the world-space position of the light.
	//
	// Parameters:
	//   - position: world-space coordinates
	SetPosition(position mgl32.Vec3)

	// SetIntensity sets the scalar intensity multiplier.
	//
	// Parameters:
	//   - intensity: the intensity value
	SetIntensity(intensity float32)

	// SetEnabled enables or disables the light for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// PointLight returns the light as a shading snapshot entry.
	//
	// Returns:
	//   - shading.PointLight: position and intensity
	PointLight() shading.PointLight
}

var _ Light = &lightImpl{}

// NewLight creates a new enabled point light at the origin with
// DefaultLampIntensity and any provided options applied.
//
// Parameters:
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(opts ...LightBuilderOption) Light {
	l := &lightImpl{
		mu:        &sync.Mutex{},
		intensity: DefaultLampIntensity,
		enabled:   true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Position() mgl32.Vec3 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.position
}

func (l *lightImpl) Intensity() float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.intensity
}

func (l *lightImpl) Enabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enabled
}

func (l *lightImpl) SetPosition(position mgl32.Vec3) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.position = position
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.intensity = intensity
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = enabled
}

func (l *lightImpl) PointLight() shading.PointLight {
	l.mu.Lock()
	defer l.mu.Unlock()
	return shading.PointLight{Position: l.position, Intensity: l.intensity}
}
