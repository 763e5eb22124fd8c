package raster

import (
	"math"

	"github.com/Carmen-Shannon/oxy-desk/common"
	"github.com/Carmen-Shannon/oxy-desk/engine/shading"
	"github.com/go-gl/mathgl/mgl32"
)

// minClipW rejects vertices at or behind the eye after near clipping.
const minClipW = 1e-6

// screenVertex is a clipped vertex after the perspective divide and viewport mapping.
// Attributes are pre-divided by w for perspective-correct interpolation.
type screenVertex struct {
	x, y, z  float32
	invW     float32
	worldPos mgl32.Vec3
	normal   mgl32.Vec3
	color    mgl32.Vec4
}

// setupTriangle is a screen-space triangle ready for scan conversion. Vertices are ordered
// so that area is positive; pixel bounds are inclusive and clamped to the framebuffer.
type setupTriangle struct {
	v                      [3]screenVertex
	area                   float32
	minX, minY, maxX, maxY int
}

// lerpOutput interpolates every vertex output attribute linearly in clip space.
func lerpOutput(a, b shading.VertexOutput, t float32) shading.VertexOutput {
	return shading.VertexOutput{
		ClipPosition:  a.ClipPosition.Add(b.ClipPosition.Sub(a.ClipPosition).Mul(t)),
		WorldPosition: common.LerpVec3(a.WorldPosition, b.WorldPosition, t),
		WorldNormal:   common.LerpVec3(a.WorldNormal, b.WorldNormal, t),
		Color:         a.Color.Add(b.Color.Sub(a.Color).Mul(t)),
	}
}

// clipNear clips a triangle against the WebGPU near plane (clip z >= 0) and appends the
// resulting polygon, zero to four vertices in the original winding, to dst.
func clipNear(tri [3]shading.VertexOutput, dst []shading.VertexOutput) []shading.VertexOutput {
	for i := range 3 {
		cur, next := tri[i], tri[(i+1)%3]
		curIn := cur.ClipPosition[2] >= 0
		nextIn := next.ClipPosition[2] >= 0
		if curIn {
			dst = append(dst, cur)
		}
		if curIn != nextIn {
			t := cur.ClipPosition[2] / (cur.ClipPosition[2] - next.ClipPosition[2])
			dst = append(dst, lerpOutput(cur, next, t))
		}
	}
	return dst
}

// toScreen performs the perspective divide and maps NDC to pixel coordinates with y down.
func toScreen(o shading.VertexOutput, width, height int) screenVertex {
	invW := 1 / o.ClipPosition[3]
	ndcX := o.ClipPosition[0] * invW
	ndcY := o.ClipPosition[1] * invW
	return screenVertex{
		x:        (ndcX*0.5 + 0.5) * float32(width),
		y:        (0.5 - ndcY*0.5) * float32(height),
		z:        o.ClipPosition[2] * invW,
		invW:     invW,
		worldPos: o.WorldPosition.Mul(invW),
		normal:   o.WorldNormal.Mul(invW),
		color:    o.Color.Mul(invW),
	}
}

// edge returns twice the signed area of (a, b, p) in screen space.
func edge(ax, ay, bx, by, px, py float32) float32 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

// setup builds a screen-space triangle from three clipped vertices. Counter-clockwise
// triangles in NDC are front facing; the y flip of the viewport makes them clockwise on
// screen. ok is false for degenerate, back-facing (when cullBack is set) or off-screen
// triangles.
func setup(a, b, c shading.VertexOutput, width, height int, cullBack bool) (tri setupTriangle, ok bool) {
	if a.ClipPosition[3] < minClipW || b.ClipPosition[3] < minClipW || c.ClipPosition[3] < minClipW {
		return tri, false
	}
	v0, v1, v2 := toScreen(a, width, height), toScreen(b, width, height), toScreen(c, width, height)
	area := edge(v0.x, v0.y, v1.x, v1.y, v2.x, v2.y)
	if area == 0 || area != area {
		return tri, false
	}
	frontFacing := area < 0
	if cullBack && !frontFacing {
		return tri, false
	}
	if area < 0 {
		v1, v2 = v2, v1
		area = -area
	}

	minX := int(math.Floor(float64(min(v0.x, v1.x, v2.x))))
	maxX := int(math.Ceil(float64(max(v0.x, v1.x, v2.x))))
	minY := int(math.Floor(float64(min(v0.y, v1.y, v2.y))))
	maxY := int(math.Ceil(float64(max(v0.y, v1.y, v2.y))))
	tri = setupTriangle{
		v:    [3]screenVertex{v0, v1, v2},
		area: area,
		minX: max(minX, 0),
		minY: max(minY, 0),
		maxX: min(maxX, width-1),
		maxY: min(maxY, height-1),
	}
	if tri.minX > tri.maxX || tri.minY > tri.maxY {
		return tri, false
	}
	return tri, true
}

// coverage returns the normalized barycentric weights of a pixel center, and false when
// the center lies outside the triangle.
func (t *setupTriangle) coverage(px, py float32) (b0, b1, b2 float32, inside bool) {
	v0, v1, v2 := &t.v[0], &t.v[1], &t.v[2]
	w0 := edge(v1.x, v1.y, v2.x, v2.y, px, py)
	w1 := edge(v2.x, v2.y, v0.x, v0.y, px, py)
	w2 := edge(v0.x, v0.y, v1.x, v1.y, px, py)
	if w0 < 0 || w1 < 0 || w2 < 0 {
		return 0, 0, 0, false
	}
	inv := 1 / t.area
	return w0 * inv, w1 * inv, w2 * inv, true
}

// interpolate reconstructs perspective-correct fragment attributes and the screen-linear
// depth at the given barycentric weights.
func (t *setupTriangle) interpolate(b0, b1, b2 float32) (shading.Fragment, float32) {
	v0, v1, v2 := &t.v[0], &t.v[1], &t.v[2]
	z := b0*v0.z + b1*v1.z + b2*v2.z
	w := 1 / (b0*v0.invW + b1*v1.invW + b2*v2.invW)
	return shading.Fragment{
		WorldPosition: v0.worldPos.Mul(b0).Add(v1.worldPos.Mul(b1)).Add(v2.worldPos.Mul(b2)).Mul(w),
		WorldNormal:   v0.normal.Mul(b0).Add(v1.normal.Mul(b1)).Add(v2.normal.Mul(b2)).Mul(w),
		Color:         v0.color.Mul(b0).Add(v1.color.Mul(b1)).Add(v2.color.Mul(b2)).Mul(w),
	}, z
}
