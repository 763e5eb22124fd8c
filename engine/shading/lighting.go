package shading

import (
	"github.com/Carmen-Shannon/oxy-desk/common"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	ambientBright = 0.25
	ambientDark   = 0.03
	// ambientBlueBoost tints the ambient term toward blue.
	ambientBlueBoost = 1.2

	ceilingBright = 0.15
	ceilingDark   = 0.02
	// ceilingBlueScale slightly warms the ceiling light.
	ceilingBlueScale = 0.9

	attenuationLinear    = 0.3
	attenuationQuadratic = 0.1
	// pointFill is the orientation-independent share of a point light.
	pointFill = 0.3
)

var (
	// CeilingDirection is the unit direction toward the fixed ceiling light.
	CeilingDirection = mgl32.Vec3{0.3, 1.0, 0.2}.Normalize()

	// LampColor is the warm color shared by all point lights.
	LampColor = mgl32.Vec3{1.0, 0.9, 0.7}
)

// LightingModel computes the linear RGB light multiplier reaching a surface.
// Implementations must be pure and safe for concurrent use.
type LightingModel interface {
	// Evaluate returns the total light for one fragment.
	//
	// Parameters:
	//   - normal: unit surface normal in world space
	//   - worldPos: fragment position in world space
	//   - cameraPos: eye position in world space
	//   - ls: the lighting snapshot
	//
	// Returns:
	//   - mgl32.Vec3: per-channel light multiplier, unclamped
	Evaluate(normal, worldPos, cameraPos mgl32.Vec3, ls LightingState) mgl32.Vec3
}

// DynamicLighting is the default model: ambient and ceiling base light driven
// by room darkness plus up to MaxLights point lights.
type DynamicLighting struct{}

var _ LightingModel = DynamicLighting{}

// Evaluate implements LightingModel.
func (DynamicLighting) Evaluate(normal, worldPos, _ mgl32.Vec3, ls LightingState) mgl32.Vec3 {
	total := AmbientLight(ls.RoomDarkness).Add(CeilingLight(normal, ls.RoomDarkness))
	return total.Add(AccumulatePointLights(normal, worldPos, ls))
}

// StaticLighting is the single directional light model used before the
// dynamic model existed. It ignores point lights and room darkness.
type StaticLighting struct {
	// Direction points toward the light and must be unit length.
	Direction mgl32.Vec3
	Ambient   float32
	Diffuse   float32
}

var _ LightingModel = StaticLighting{}

// NewStaticLighting returns the static model with its stock light direction
// and ambient/diffuse balance.
func NewStaticLighting() StaticLighting {
	return StaticLighting{
		Direction: mgl32.Vec3{0.5, 1.0, 0.3}.Normalize(),
		Ambient:   0.3,
		Diffuse:   0.7,
	}
}

// Evaluate implements LightingModel.
func (s StaticLighting) Evaluate(normal, _, _ mgl32.Vec3, _ LightingState) mgl32.Vec3 {
	l := s.Ambient + max(normal.Dot(s.Direction), 0)*s.Diffuse
	return mgl32.Vec3{l, l, l}
}

// AmbientLight returns the room ambient term for a darkness level.
//
// Parameters:
//   - roomDarkness: 0 for a bright room, 1 for a dark room
//
// Returns:
//   - mgl32.Vec3: (a, a, 1.2a) with a = lerp(0.25, 0.03, roomDarkness)
func AmbientLight(roomDarkness float32) mgl32.Vec3 {
	a := common.Lerp(ambientBright, ambientDark, roomDarkness)
	return mgl32.Vec3{a, a, a * ambientBlueBoost}
}

// CeilingLight returns the diffuse term of the fixed overhead light.
//
// Parameters:
//   - normal: unit surface normal
//   - roomDarkness: 0 for a bright room, 1 for a dark room
//
// Returns:
//   - mgl32.Vec3: (d, d, 0.9d) with d = max(N·L, 0) * lerp(0.15, 0.02, roomDarkness)
func CeilingLight(normal mgl32.Vec3, roomDarkness float32) mgl32.Vec3 {
	d := max(normal.Dot(CeilingDirection), 0) * common.Lerp(ceilingBright, ceilingDark, roomDarkness)
	return mgl32.Vec3{d, d, d * ceilingBlueScale}
}

// Attenuation returns the distance falloff of a point light. It is finite for
// every non-negative distance, including zero.
//
// Parameters:
//   - intensity: the light's intensity
//   - distance: distance from the light to the fragment
//
// Returns:
//   - float32: intensity / (1 + 0.3d + 0.1d²)
func Attenuation(intensity, distance float32) float32 {
	return intensity / (1 + attenuationLinear*distance + attenuationQuadratic*distance*distance)
}

// PointLightContribution returns the light one point light adds to a fragment:
// a Lambert diffuse term plus a fill term that ignores orientation. Lights with
// non-positive intensity contribute zero.
//
// Parameters:
//   - light: the point light
//   - normal: unit surface normal
//   - worldPos: fragment position
//
// Returns:
//   - mgl32.Vec3: the light's contribution
func PointLightContribution(light PointLight, normal, worldPos mgl32.Vec3) mgl32.Vec3 {
	if light.Intensity <= 0 {
		return mgl32.Vec3{}
	}
	toLight := light.Position.Sub(worldPos)
	atten := Attenuation(light.Intensity, toLight.Len())
	nDotL := max(normal.Dot(common.SafeNormalize(toLight)), 0)
	return LampColor.Mul(nDotL * atten).Add(LampColor.Mul(atten * pointFill))
}

// AccumulatePointLights sums PointLightContribution over the active lights.
//
// Parameters:
//   - normal: unit surface normal
//   - worldPos: fragment position
//   - ls: the lighting snapshot
//
// Returns:
//   - mgl32.Vec3: the summed contribution, zero when no light is active
func AccumulatePointLights(normal, worldPos mgl32.Vec3, ls LightingState) mgl32.Vec3 {
	var sum mgl32.Vec3
	for _, l := range ls.ActiveLights() {
		sum = sum.Add(PointLightContribution(l, normal, worldPos))
	}
	return sum
}
