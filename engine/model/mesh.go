package model

import (
	"math"

	"github.com/Carmen-Shannon/oxy-desk/common"
	"github.com/Carmen-Shannon/oxy-desk/engine/shading"
	"github.com/go-gl/mathgl/mgl32"
)

// MaxMeshVertices is the number of vertices addressable by 16-bit indices.
const MaxMeshVertices = math.MaxUint16 + 1

// Mesh is an indexed triangle list in local space. Front faces wind
// counter-clockwise when viewed from outside.
type Mesh struct {
	Vertices []shading.Vertex
	Indices  []uint16
}

// NewMesh creates an empty Mesh.
//
// Returns:
//   - *Mesh: the empty mesh
func NewMesh() *Mesh {
	return &Mesh{}
}

// AddQuad appends four vertices in counter-clockwise order as the two
// triangles (v0, v1, v2) and (v0, v2, v3).
//
// Parameters:
//   - v0, v1, v2, v3: the quad corners in winding order
func (m *Mesh) AddQuad(v0, v1, v2, v3 shading.Vertex) {
	base := uint16(len(m.Vertices))
	m.Vertices = append(m.Vertices, v0, v1, v2, v3)
	m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
}

// AddTriangle appends a single triangle.
//
// Parameters:
//   - v0, v1, v2: the triangle corners in winding order
func (m *Mesh) AddTriangle(v0, v1, v2 shading.Vertex) {
	base := uint16(len(m.Vertices))
	m.Vertices = append(m.Vertices, v0, v1, v2)
	m.Indices = append(m.Indices, base, base+1, base+2)
}

// Merge appends other's geometry, rebasing its indices. other is left unchanged.
//
// Parameters:
//   - other: the mesh to append
func (m *Mesh) Merge(other *Mesh) {
	if other == nil {
		return
	}
	base := uint16(len(m.Vertices))
	m.Vertices = append(m.Vertices, other.Vertices...)
	for _, idx := range other.Indices {
		m.Indices = append(m.Indices, idx+base)
	}
}

// Transform applies mat to every vertex in place. Positions are transformed as
// points; normals by the upper-left 3x3 of mat and renormalized.
//
// Parameters:
//   - mat: the local transform to bake into the mesh
func (m *Mesh) Transform(mat mgl32.Mat4) {
	normalMat := mat.Mat3()
	for i := range m.Vertices {
		v := &m.Vertices[i]
		v.Position = mat.Mul4x1(v.Position.Vec4(1)).Vec3()
		v.Normal = common.SafeNormalize(normalMat.Mul3x1(v.Normal))
	}
}

// Translate offsets every vertex position in place.
//
// Parameters:
//   - offset: the translation to add
func (m *Mesh) Translate(offset mgl32.Vec3) {
	for i := range m.Vertices {
		m.Vertices[i].Position = m.Vertices[i].Position.Add(offset)
	}
}

// Bounds returns the radius of the smallest origin-centred sphere that
// contains every vertex.
//
// Returns:
//   - float32: the bounding radius, or 0 for an empty mesh
func (m *Mesh) Bounds() float32 {
	var maxDistSq float32
	for _, v := range m.Vertices {
		if d := v.Position.Dot(v.Position); d > maxDistSq {
			maxDistSq = d
		}
	}
	return float32(math.Sqrt(float64(maxDistSq)))
}

// TriangleCount returns the number of indexed triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the three vertices of triangle i.
//
// Parameters:
//   - i: the triangle index in [0, TriangleCount())
//
// Returns:
//   - a, b, c: the triangle corners in winding order
func (m *Mesh) Triangle(i int) (a, b, c shading.Vertex) {
	return m.Vertices[m.Indices[i*3]], m.Vertices[m.Indices[i*3+1]], m.Vertices[m.Indices[i*3+2]]
}

// Clone returns a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	return &Mesh{
		Vertices: append([]shading.Vertex(nil), m.Vertices...),
		Indices:  append([]uint16(nil), m.Indices...),
	}
}

// vertex is shorthand for building a shading.Vertex.
func vertex(position, normal mgl32.Vec3, color mgl32.Vec4) shading.Vertex {
	return shading.Vertex{Position: position, Normal: normal, Color: color}
}

// shade scales the RGB channels of c, leaving alpha untouched.
func shade(c mgl32.Vec4, f float32) mgl32.Vec4 {
	return mgl32.Vec4{c[0] * f, c[1] * f, c[2] * f, c[3]}
}
