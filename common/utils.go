package common

import "github.com/go-gl/mathgl/mgl32"

// Coalesce picks the first argument that differs from T's zero value. Builders
// use it to fall back to a default when an option is left empty.
//
// Parameters:
//   - values: candidates in priority order
//
// Returns:
//   - T: the first non-zero candidate, or the zero value when none is set
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// HexToRGB converts a packed 0xRRGGBB color into normalized RGB components.
//
// Parameters:
//   - hex: the packed color
//
// Returns:
//   - r, g, b: components in [0, 1]
func HexToRGB(hex uint32) (r, g, b float32) {
	r = float32((hex>>16)&0xff) / 255.0
	g = float32((hex>>8)&0xff) / 255.0
	b = float32(hex&0xff) / 255.0
	return r, g, b
}

// HexToRGBA converts a packed 0xRRGGBB color into a normalized RGBA vector
// with the given alpha.
//
// Parameters:
//   - hex: the packed color
//   - alpha: the alpha component
//
// Returns:
//   - mgl32.Vec4: the color as (r, g, b, alpha)
func HexToRGBA(hex uint32, alpha float32) mgl32.Vec4 {
	r, g, b := HexToRGB(hex)
	return mgl32.Vec4{r, g, b, alpha}
}
