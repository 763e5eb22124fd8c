package shading

import (
	"github.com/Carmen-Shannon/oxy-desk/common"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// FogStart is the eye distance where fog begins.
	FogStart = 10.0
	// FogRange is the distance over which fog reaches full strength.
	FogRange = 40.0
	// FogMinFactor is the lowest fog factor; at least 40% of the lit color survives.
	FogMinFactor = 0.4
)

var (
	fogColorBright = mgl32.Vec3{0.1, 0.1, 0.18}
	fogColorDark   = mgl32.Vec3{0.02, 0.02, 0.04}
)

// FogFactor returns the share of the lit color kept at an eye distance:
// 1 up to FogStart, falling linearly to FogMinFactor at FogStart + 0.6*FogRange.
//
// Parameters:
//   - distance: distance from the eye to the fragment
//
// Returns:
//   - float32: factor in [FogMinFactor, 1]
func FogFactor(distance float32) float32 {
	return mgl32.Clamp(1-(distance-FogStart)/FogRange, FogMinFactor, 1)
}

// FogColor returns the fog color for a darkness level. The renderer also
// clears the framebuffer to this color.
func FogColor(roomDarkness float32) mgl32.Vec3 {
	return common.LerpVec3(fogColorBright, fogColorDark, roomDarkness)
}

// ApplyFog blends a lit color toward the fog color by eye distance. The result
// equals lit exactly when the fog factor is 1. No clamping is applied.
//
// Parameters:
//   - lit: the lit surface color
//   - worldPos: fragment position
//   - cameraPos: eye position
//   - roomDarkness: selects the fog color
//
// Returns:
//   - mgl32.Vec3: the fogged color
func ApplyFog(lit, worldPos, cameraPos mgl32.Vec3, roomDarkness float32) mgl32.Vec3 {
	f := FogFactor(worldPos.Sub(cameraPos).Len())
	return common.LerpVec3(FogColor(roomDarkness), lit, f)
}
