package model

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Face shading multipliers applied to box sides so that unlit geometry still
// reads as three-dimensional.
const (
	boxFrontShade  = 0.9
	boxBackShade   = 0.8
	boxRightShade  = 0.85
	boxLeftShade   = 0.75
	boxBottomShade = 0.7
)

var (
	axisX = mgl32.Vec3{1, 0, 0}
	axisY = mgl32.Vec3{0, 1, 0}
	axisZ = mgl32.Vec3{0, 0, 1}
)

// NewBox creates an axis-aligned box centred on the Y axis whose bottom face
// sits at yOffset. Side faces are tinted by fixed per-face multipliers.
//
// Parameters:
//   - width: extent along X
//   - height: extent along Y
//   - depth: extent along Z
//   - color: base RGBA color (used unmodified on the top face)
//   - yOffset: height of the bottom face
//
// Returns:
//   - *Mesh: a 24-vertex, 12-triangle mesh
func NewBox(width, height, depth float32, color mgl32.Vec4, yOffset float32) *Mesh {
	m := NewMesh()
	hw, hd := width/2, depth/2
	y0, y1 := yOffset, yOffset+height

	front := shade(color, boxFrontShade)
	m.AddQuad(
		vertex(mgl32.Vec3{-hw, y0, hd}, axisZ, front),
		vertex(mgl32.Vec3{hw, y0, hd}, axisZ, front),
		vertex(mgl32.Vec3{hw, y1, hd}, axisZ, front),
		vertex(mgl32.Vec3{-hw, y1, hd}, axisZ, front),
	)

	back := shade(color, boxBackShade)
	m.AddQuad(
		vertex(mgl32.Vec3{hw, y0, -hd}, axisZ.Mul(-1), back),
		vertex(mgl32.Vec3{-hw, y0, -hd}, axisZ.Mul(-1), back),
		vertex(mgl32.Vec3{-hw, y1, -hd}, axisZ.Mul(-1), back),
		vertex(mgl32.Vec3{hw, y1, -hd}, axisZ.Mul(-1), back),
	)

	right := shade(color, boxRightShade)
	m.AddQuad(
		vertex(mgl32.Vec3{hw, y0, hd}, axisX, right),
		vertex(mgl32.Vec3{hw, y0, -hd}, axisX, right),
		vertex(mgl32.Vec3{hw, y1, -hd}, axisX, right),
		vertex(mgl32.Vec3{hw, y1, hd}, axisX, right),
	)

	left := shade(color, boxLeftShade)
	m.AddQuad(
		vertex(mgl32.Vec3{-hw, y0, -hd}, axisX.Mul(-1), left),
		vertex(mgl32.Vec3{-hw, y0, hd}, axisX.Mul(-1), left),
		vertex(mgl32.Vec3{-hw, y1, hd}, axisX.Mul(-1), left),
		vertex(mgl32.Vec3{-hw, y1, -hd}, axisX.Mul(-1), left),
	)

	m.AddQuad(
		vertex(mgl32.Vec3{-hw, y1, hd}, axisY, color),
		vertex(mgl32.Vec3{hw, y1, hd}, axisY, color),
		vertex(mgl32.Vec3{hw, y1, -hd}, axisY, color),
		vertex(mgl32.Vec3{-hw, y1, -hd}, axisY, color),
	)

	bottom := shade(color, boxBottomShade)
	m.AddQuad(
		vertex(mgl32.Vec3{-hw, y0, -hd}, axisY.Mul(-1), bottom),
		vertex(mgl32.Vec3{hw, y0, -hd}, axisY.Mul(-1), bottom),
		vertex(mgl32.Vec3{hw, y0, hd}, axisY.Mul(-1), bottom),
		vertex(mgl32.Vec3{-hw, y0, hd}, axisY.Mul(-1), bottom),
	)
	return m
}

// NewCylinder creates a cylinder around the Y axis whose base sits at yOffset.
// Either cap may be left open (a mug body has no top).
//
// Parameters:
//   - radius: cylinder radius
//   - height: extent along Y
//   - segments: number of side facets (values below 3 are raised to 3)
//   - color: RGBA color of every vertex
//   - yOffset: height of the base
//   - closedBottom: whether to emit the bottom cap
//   - closedTop: whether to emit the top cap
//
// Returns:
//   - *Mesh: the cylinder mesh
func NewCylinder(radius, height float32, segments int, color mgl32.Vec4, yOffset float32, closedBottom, closedTop bool) *Mesh {
	m := NewMesh()
	segments = max(segments, 3)
	y0, y1 := yOffset, yOffset+height
	down := axisY.Mul(-1)

	for i := range segments {
		a0 := float64(i) / float64(segments) * 2 * math.Pi
		a1 := float64(i+1) / float64(segments) * 2 * math.Pi
		c0, s0 := float32(math.Cos(a0)), float32(math.Sin(a0))
		c1, s1 := float32(math.Cos(a1)), float32(math.Sin(a1))
		n0 := mgl32.Vec3{c0, 0, s0}
		n1 := mgl32.Vec3{c1, 0, s1}
		x0, z0 := c0*radius, s0*radius
		x1, z1 := c1*radius, s1*radius

		// Angle grows from +X towards +Z, which runs clockwise seen from
		// outside, so each facet is emitted from a0 up and across to a1.
		m.AddQuad(
			vertex(mgl32.Vec3{x0, y0, z0}, n0, color),
			vertex(mgl32.Vec3{x0, y1, z0}, n0, color),
			vertex(mgl32.Vec3{x1, y1, z1}, n1, color),
			vertex(mgl32.Vec3{x1, y0, z1}, n1, color),
		)

		if closedBottom {
			m.AddTriangle(
				vertex(mgl32.Vec3{0, y0, 0}, down, color),
				vertex(mgl32.Vec3{x0, y0, z0}, down, color),
				vertex(mgl32.Vec3{x1, y0, z1}, down, color),
			)
		}
		if closedTop {
			m.AddTriangle(
				vertex(mgl32.Vec3{0, y1, 0}, axisY, color),
				vertex(mgl32.Vec3{x1, y1, z1}, axisY, color),
				vertex(mgl32.Vec3{x0, y1, z0}, axisY, color),
			)
		}
	}
	return m
}

// NewSphere creates a UV sphere centred at (0, yOffset, 0).
//
// Parameters:
//   - radius: sphere radius
//   - hSegments: longitudinal slices (values below 3 are raised to 3)
//   - vSegments: latitudinal stacks (values below 2 are raised to 2)
//   - color: RGBA color of every vertex
//   - yOffset: height of the centre
//
// Returns:
//   - *Mesh: the sphere mesh
func NewSphere(radius float32, hSegments, vSegments int, color mgl32.Vec4, yOffset float32) *Mesh {
	m := NewMesh()
	hSegments = max(hSegments, 3)
	vSegments = max(vSegments, 2)

	point := func(theta, phi float64) (mgl32.Vec3, mgl32.Vec3) {
		n := mgl32.Vec3{
			float32(math.Sin(phi) * math.Cos(theta)),
			float32(math.Cos(phi)),
			float32(math.Sin(phi) * math.Sin(theta)),
		}
		return mgl32.Vec3{n[0] * radius, n[1]*radius + yOffset, n[2] * radius}, n
	}

	for i := range hSegments {
		t0 := float64(i) / float64(hSegments) * 2 * math.Pi
		t1 := float64(i+1) / float64(hSegments) * 2 * math.Pi
		for j := range vSegments {
			p0 := float64(j) / float64(vSegments) * math.Pi
			p1 := float64(j+1) / float64(vSegments) * math.Pi

			q00, n00 := point(t0, p0)
			q10, n10 := point(t1, p0)
			q11, n11 := point(t1, p1)
			q01, n01 := point(t0, p1)
			m.AddQuad(
				vertex(q00, n00, color),
				vertex(q10, n10, color),
				vertex(q11, n11, color),
				vertex(q01, n01, color),
			)
		}
	}
	return m
}

// NewPlane creates a horizontal, upward-facing square centred on the origin.
//
// Parameters:
//   - halfSize: half the edge length
//   - y: height of the plane
//   - color: RGBA color of every vertex
//
// Returns:
//   - *Mesh: a two-triangle mesh
func NewPlane(halfSize, y float32, color mgl32.Vec4) *Mesh {
	m := NewMesh()
	m.Vertices = append(m.Vertices,
		vertex(mgl32.Vec3{-halfSize, y, -halfSize}, axisY, color),
		vertex(mgl32.Vec3{halfSize, y, -halfSize}, axisY, color),
		vertex(mgl32.Vec3{halfSize, y, halfSize}, axisY, color),
		vertex(mgl32.Vec3{-halfSize, y, halfSize}, axisY, color),
	)
	m.Indices = append(m.Indices, 0, 3, 2, 0, 2, 1)
	return m
}
