package light

import (
	"github.com/Carmen-Shannon/oxy-desk/common"
	"github.com/Carmen-Shannon/oxy-desk/engine/shading"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultRoomDarkness is the darkness of the room before anything changes it.
const DefaultRoomDarkness = 1.0

// lightingBuilderImpl is the implementation of the LightingBuilder interface.
type lightingBuilderImpl struct {
	lights       []Light
	roomDarkness float32
}

// LightingBuilder collects any number of lights and produces the fixed-size
// lighting snapshot consumed by the shading stages.
//
// A LightingBuilder is not safe for concurrent use. Build copies everything
// it needs, so the returned snapshot stays valid after the builder or its
// lights change.
type LightingBuilder interface {
	// AddLight appends a light. Nil lights are ignored.
	//
	// Parameters:
	//   - l: the light to add
	AddLight(l Light)

	// Lights returns the lights added so far.
	//
	// Returns:
	//   - []Light: the collected lights in insertion order
	Lights() []Light

	// SetRoomDarkness sets the room darkness, clamped to [0, 1].
	//
	// Parameters:
	//   - roomDarkness: 0 for a bright room, 1 for a dark room
	SetRoomDarkness(roomDarkness float32)

	// RoomDarkness returns the current room darkness.
	//
	// Returns:
	//   - float32: darkness in [0, 1]
	RoomDarkness() float32

	// Build produces the lighting snapshot. Disabled lights are skipped and
	// enabled lights beyond shading.MaxLights are dropped with a warning.
	//
	// Returns:
	//   - shading.LightingState: the snapshot
	Build() shading.LightingState
}

var _ LightingBuilder = &lightingBuilderImpl{}

// NewLightingBuilder creates an empty LightingBuilder at DefaultRoomDarkness.
//
// Parameters:
//   - opts: variadic list of LightingBuilderOption functions
//
// Returns:
//   - LightingBuilder: a new LightingBuilder instance
func NewLightingBuilder(opts ...LightingBuilderOption) LightingBuilder {
	b := &lightingBuilderImpl{
		roomDarkness: DefaultRoomDarkness,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *lightingBuilderImpl) AddLight(l Light) {
	if l == nil {
		return
	}
	b.lights = append(b.lights, l)
}

func (b *lightingBuilderImpl) Lights() []Light {
	return b.lights
}

func (b *lightingBuilderImpl) SetRoomDarkness(roomDarkness float32) {
	b.roomDarkness = mgl32.Clamp(roomDarkness, 0, 1)
}

func (b *lightingBuilderImpl) RoomDarkness() float32 {
	return b.roomDarkness
}

func (b *lightingBuilderImpl) Build() shading.LightingState {
	ls := shading.LightingState{RoomDarkness: b.roomDarkness}
	dropped := 0
	for _, l := range b.lights {
		if !l.Enabled() {
			continue
		}
		if ls.NumLights >= shading.MaxLights {
			dropped++
			continue
		}
		ls.Lights[ls.NumLights] = l.PointLight()
		ls.NumLights++
	}
	if dropped > 0 {
		common.Logger().Warn("lighting: too many enabled lights, extra lights dropped",
			"max", shading.MaxLights, "dropped", dropped)
	}
	return ls
}
