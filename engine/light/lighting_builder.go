package light

// LightingBuilderOption is a function that configures a LightingBuilder during construction.
type LightingBuilderOption func(*lightingBuilderImpl)

// WithRoomDarkness is an option builder that sets the initial room darkness,
// clamped to [0, 1].
//
// Parameters:
//   - roomDarkness: 0 for a bright room, 1 for a dark room
//
// Returns:
//   - LightingBuilderOption: a function that applies the darkness to a lightingBuilderImpl
func WithRoomDarkness(roomDarkness float32) LightingBuilderOption {
	return func(b *lightingBuilderImpl) {
		b.SetRoomDarkness(roomDarkness)
	}
}

// WithLights is an option builder that adds lights to the builder.
//
// Parameters:
//   - lights: the lights to add
//
// Returns:
//   - LightingBuilderOption: a function that adds the lights to a lightingBuilderImpl
func WithLights(lights ...Light) LightingBuilderOption {
	return func(b *lightingBuilderImpl) {
		for _, l := range lights {
			b.AddLight(l)
		}
	}
}
